// Package session is the per-run context that owns the combat core: the
// logical clock, the physics space, the projectile pool, the gate table and
// every armed turret and target. Nothing in the core is global; two sessions
// never share state.
package session

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/milk9111/rangedcombat/levels"
	"github.com/milk9111/rangedcombat/molds"
	"github.com/milk9111/rangedcombat/physics"
	"github.com/milk9111/rangedcombat/projectile"
	"github.com/milk9111/rangedcombat/sched"
	"github.com/milk9111/rangedcombat/targeting"
)

var (
	ErrNoMold  = errors.New("session: no such attack mold")
	ErrNoStore = errors.New("session: nil mold store")
)

type Session struct {
	cfg   Config
	root  *slog.Logger
	log   *slog.Logger
	store *molds.Store
	sched *sched.Scheduler
	space *physics.Space
	pool  *projectile.Pool
	gates *targeting.GateTable
	rng   *rand.Rand

	turrets []*Turret
	targets []*Target
	impacts ImpactTally
}

// ImpactTally counts what projectiles hit during the session.
type ImpactTally struct {
	Hits   int
	Damage int
	Misses int
}

func New(cfg Config, store *molds.Store, logger *slog.Logger) (*Session, error) {
	if store == nil {
		return nil, ErrNoStore
	}
	if logger == nil {
		logger = slog.Default()
	}
	cfg = cfg.normalize()
	s := &Session{
		cfg:   cfg,
		root:  logger,
		log:   logger.With("component", "session"),
		store: store,
		sched: sched.New(),
		space: physics.New(cfg.Gravity, logger),
		gates: targeting.NewGateTable(),
		rng:   rand.New(rand.NewSource(cfg.Seed)), // #nosec G404 -- deterministic spread
	}
	s.pool = projectile.NewPool(s.space, s.sched, store, logger)
	s.pool.OnImpact.Subscribe(s.tally)
	return s, nil
}

func (s *Session) Config() Config { return s.cfg }
func (s *Session) Logger() *slog.Logger { return s.log }
func (s *Session) Store() *molds.Store { return s.store }
func (s *Session) Scheduler() *sched.Scheduler { return s.sched }
func (s *Session) Space() *physics.Space { return s.space }
func (s *Session) Pool() *projectile.Pool { return s.pool }
func (s *Session) Gates() *targeting.GateTable { return s.gates }
func (s *Session) Turrets() []*Turret { return s.turrets }
func (s *Session) Targets() []*Target { return s.targets }
func (s *Session) Impacts() ImpactTally { return s.impacts }
func (s *Session) Now() time.Duration { return s.sched.Now() }

// Update advances the session by dt: bodies move and contacts resolve
// first, then every task due at the new time runs.
func (s *Session) Update(dt time.Duration) {
	if dt <= 0 {
		return
	}
	s.space.Step(dt.Seconds())
	s.sched.Tick(dt)
}

// Run steps the session at its tick rate until the clock reaches d.
func (s *Session) Run(d time.Duration) {
	step := s.cfg.Step()
	for s.sched.Now() < d {
		s.Update(step)
	}
}

// Refresh points every turret at the store's current attack mold, e.g.
// after a reload. Turrets whose mold disappeared keep the old one.
func (s *Session) Refresh() {
	for _, t := range s.turrets {
		m, ok := s.store.Attack(t.attack)
		if !ok {
			s.log.Warn("attack mold gone, keeping previous", "turret", t.name, "attack", t.attack)
			continue
		}
		if err := t.pattern.SetMold(m); err != nil {
			s.log.Warn("refresh failed", "turret", t.name, "err", err)
		}
	}
}

// Load builds every wall, target and turret of lvl and starts the turrets.
func (s *Session) Load(lvl *levels.Level) error {
	if lvl == nil {
		return fmt.Errorf("session: load: %w", levels.ErrInvalidLevel)
	}
	for _, w := range lvl.Walls {
		s.space.AddWall(w.Min.Vec3(), w.Max.Vec3())
	}
	for _, t := range lvl.Targets {
		faction, err := levels.ParseFaction(t.Faction)
		if err != nil {
			return fmt.Errorf("session: load %s: %w", lvl.Name, err)
		}
		s.SpawnTarget(TargetSpec{
			Name:     t.Name,
			Faction:  faction,
			Health:   t.Health,
			Position: t.Position.Vec3(),
			Velocity: t.Velocity.Vec3(),
			Radius:   t.Radius,
			Height:   t.Height,
			Mass:     t.Mass,
		})
	}
	for _, t := range lvl.Turrets {
		faction, err := levels.ParseFaction(t.Faction)
		if err != nil {
			return fmt.Errorf("session: load %s: %w", lvl.Name, err)
		}
		turret, err := s.Arm(TurretSpec{
			Name:     t.Name,
			Attack:   t.Attack,
			Faction:  faction,
			Position: t.Position.Vec3(),
			Facing:   t.Facing.Vec3(),
			Health:   t.Health,
		})
		if err != nil {
			return fmt.Errorf("session: load %s: %w", lvl.Name, err)
		}
		turret.Start()
	}
	s.log.Info("level loaded", "level", lvl.Name, "walls", len(lvl.Walls), "turrets", len(lvl.Turrets), "targets", len(lvl.Targets))
	return nil
}

// Close releases every turret and target.
func (s *Session) Close() {
	for len(s.turrets) > 0 {
		s.turrets[len(s.turrets)-1].Release()
	}
	for _, t := range s.targets {
		t.Body.Remove()
	}
	s.targets = nil
	s.pool.OnImpact.Clear()
}

func (s *Session) tally(i projectile.Impact) {
	if i.Target == nil {
		s.impacts.Misses++
		return
	}
	s.impacts.Hits++
	s.impacts.Damage += i.Damage
}

func (s *Session) newRand() *rand.Rand {
	return rand.New(rand.NewSource(s.rng.Int63())) // #nosec G404 -- deterministic spread
}

func (s *Session) removeTurret(t *Turret) {
	for i, o := range s.turrets {
		if o == t {
			s.turrets = append(s.turrets[:i], s.turrets[i+1:]...)
			return
		}
	}
}
