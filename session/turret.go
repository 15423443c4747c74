package session

import (
	"fmt"
	"time"

	"github.com/milk9111/rangedcombat/common"
	"github.com/milk9111/rangedcombat/component"
	"github.com/milk9111/rangedcombat/physics"
	"github.com/milk9111/rangedcombat/sched"
	"github.com/milk9111/rangedcombat/targeting"
	"github.com/milk9111/rangedcombat/weapon"
)

// TurretSpec describes a weapon mount.
type TurretSpec struct {
	Name     string
	Attack   string
	Faction  component.Faction
	Position common.Vec3
	Facing   common.Vec3
	// Health makes the turret itself a target; zero means it cannot be hurt.
	Health int
	Radius float64
}

// Turret binds an attack pattern and an aim loop to a rotating muzzle and
// a collider of its own that its projectiles pass through.
type Turret struct {
	name    string
	attack  string
	faction component.Faction
	session *Session

	pose    common.Pose
	desired common.Vec3
	turner  *sched.Handle
	last    time.Duration

	health  *component.Health
	body    *physics.Body
	pattern *weapon.AttackPattern
	aim     *targeting.AimLoop

	released bool
}

// Arm builds a turret for spec. It is idle until Start.
func (s *Session) Arm(spec TurretSpec) (*Turret, error) {
	m, ok := s.store.Attack(spec.Attack)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNoMold, spec.Attack)
	}
	facing := spec.Facing.Normalize()
	if facing.IsZero() {
		facing = common.Forward
	}
	if spec.Radius <= 0 {
		spec.Radius = 0.5
	}
	if spec.Name == "" {
		spec.Name = fmt.Sprintf("%s-%d", spec.Attack, len(s.turrets)+1)
	}

	t := &Turret{
		name:    spec.Name,
		attack:  spec.Attack,
		faction: spec.Faction,
		session: s,
		pose:    common.Pose{Position: spec.Position, Forward: facing},
	}

	actor := physics.ActorSpec{
		Position: spec.Position,
		Radius:   spec.Radius,
		Height:   2 * spec.Position.Y,
		Mass:     50,
		Layer:    spec.Faction.ActorLayer(),
	}
	if spec.Health > 0 {
		t.health = component.NewHealth(spec.Health)
		t.health.Extent = common.V3(spec.Radius, spec.Position.Y, spec.Radius)
		t.health.OnDeath.Subscribe(func(*component.Health) {
			s.log.Info("turret destroyed", "turret", t.name)
			t.Stop()
		})
		actor.Damageable = t.health
	}
	t.body = s.space.AddActor(actor)
	if t.health != nil {
		t.health.Body = t.body
	}

	pattern, err := weapon.New(weapon.Config{
		Mold:      m,
		Scheduler: s.sched,
		Pool:      s.pool,
		Muzzle:    t,
		Faction:   spec.Faction,
		Ignore:    []component.Shape{t.body.Shape()},
		Rand:      s.newRand(),
		Logger:    s.root,
	})
	if err != nil {
		t.body.Remove()
		return nil, fmt.Errorf("session: arm %s: %w", spec.Name, err)
	}
	t.pattern = pattern

	buf := make([]component.Shape, s.cfg.ScanCapacity)
	t.aim, err = targeting.NewAimLoop(targeting.LoopConfig{
		Scheduler: s.sched,
		Scanner:   targeting.NewScanner(s.space, s.space, buf, s.root),
		Pattern:   pattern,
		Muzzle:    t,
		Gates:     s.gates,
		Rotate:    t.face,
		Interval:  s.cfg.AimInterval,
		Logger:    s.root,
	})
	if err != nil {
		t.body.Remove()
		return nil, fmt.Errorf("session: arm %s: %w", spec.Name, err)
	}

	s.turrets = append(s.turrets, t)
	s.log.Debug("turret armed", "turret", t.name, "attack", spec.Attack, "faction", spec.Faction)
	return t, nil
}

func (t *Turret) Name() string { return t.name }
func (t *Turret) Attack() string { return t.attack }
func (t *Turret) Faction() component.Faction { return t.faction }
func (t *Turret) Pattern() *weapon.AttackPattern { return t.pattern }
func (t *Turret) Aim() *targeting.AimLoop { return t.aim }
func (t *Turret) Body() *physics.Body { return t.body }

// Health returns the turret's health, or nil when it cannot be hurt.
func (t *Turret) Health() *component.Health { return t.health }

// FirePoint is where projectiles leave the turret.
func (t *Turret) FirePoint() common.Pose { return t.pose }

// Start arms the aim loop and the rotation task.
func (t *Turret) Start() {
	if t.released || (t.health != nil && !t.health.IsAlive()) {
		return
	}
	t.aim.Start()
	if t.turner.Active() {
		return
	}
	t.last = t.session.sched.Now()
	t.turner = t.session.sched.Go("turret-turn", func(now time.Duration) sched.Step {
		dt := (now - t.last).Seconds()
		t.last = now
		t.turn(dt)
		return sched.Yield()
	})
}

// Stop halts aiming, rotation and any burst in flight.
func (t *Turret) Stop() {
	t.aim.Stop()
	t.turner.Cancel()
	t.turner = nil
	t.desired = common.Vec3{}
}

// Release stops the turret, drops its observers and removes its collider.
func (t *Turret) Release() {
	if t.released {
		return
	}
	t.Stop()
	t.aim.Release()
	t.pattern.Release()
	if t.health != nil {
		t.health.OnChange.Clear()
		t.health.OnDeath.Clear()
	}
	t.body.Remove()
	t.released = true
	t.session.removeTurret(t)
}

func (t *Turret) face(dir common.Vec3) {
	t.desired = dir
}

// turn rotates the muzzle toward the requested direction at the mold's
// rotation speed; zero speed snaps.
func (t *Turret) turn(dt float64) {
	if t.desired.IsZero() {
		return
	}
	speed := t.pattern.Mold().RotationSpeed
	if speed <= 0 {
		t.pose.Forward = t.desired.Normalize()
		return
	}
	t.pose.Forward = common.RotateTowards(t.pose.Forward, t.desired, common.Radians(speed)*dt)
}
