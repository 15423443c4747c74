// Package weapon drives firing cadence: single shots and bursts gated by a
// cooldown, a per-tick shoot loop, and volleys of spread projectiles.
package weapon

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/milk9111/rangedcombat/common"
	"github.com/milk9111/rangedcombat/component"
	"github.com/milk9111/rangedcombat/molds"
	"github.com/milk9111/rangedcombat/projectile"
	"github.com/milk9111/rangedcombat/sched"
)

// State is the firing state of an AttackPattern.
type State uint8

const (
	StateIdle State = iota
	StateCooling
	StateSingleShot
	StateBursting
)

func (s State) String() string {
	switch s {
	case StateCooling:
		return "cooling"
	case StateSingleShot:
		return "single_shot"
	case StateBursting:
		return "bursting"
	default:
		return "idle"
	}
}

// Verdict is the answer of a Gate.
type Verdict uint8

const (
	// Pass allows the volley.
	Pass Verdict = iota
	// Hold skips this volley; the target is kept.
	Hold
	// Lost skips this volley; the gate owner has dropped the target.
	Lost
)

func (v Verdict) String() string {
	switch v {
	case Hold:
		return "hold"
	case Lost:
		return "lost"
	default:
		return "pass"
	}
}

// Gate is consulted before every volley.
type Gate func() Verdict

// Muzzle provides the point projectiles leave from.
type Muzzle interface {
	FirePoint() common.Pose
}

// ShotEvent is emitted after each volley.
type ShotEvent struct {
	At       time.Duration
	Origin   common.Pose
	Launched int
	Skipped  int
	Volley   int
}

// Stats counts what a pattern has fired.
type Stats struct {
	Triggers int
	Volleys  int
	Shots    int
	Skipped  int
	Aborted  int
}

type Config struct {
	Mold      *molds.AttackMold
	Scheduler *sched.Scheduler
	Pool      *projectile.Pool
	Muzzle    Muzzle
	Faction   component.Faction
	// Ignore is handed to every projectile so it never hits its firer.
	Ignore []component.Shape
	Rand   *rand.Rand
	Logger *slog.Logger
}

var ErrIncomplete = errors.New("weapon: incomplete config")

// AttackPattern turns triggers into volleys at the cadence of its mold.
// At most one cadence task and one shoot loop run per instance.
type AttackPattern struct {
	mold    *molds.AttackMold
	sched   *sched.Scheduler
	pool    *projectile.Pool
	muzzle  Muzzle
	faction component.Faction
	ignore  []component.Shape
	rng     *rand.Rand
	log     *slog.Logger

	state    State
	start    time.Duration
	lastShot time.Duration
	readyAt  time.Duration
	fired    int
	// volleyTick is the scheduler tick of the last volley; hasFired guards
	// its zero value.
	volleyTick uint64
	hasFired   bool

	looping bool
	loop    *sched.Handle
	cadence *sched.Handle

	gate     Gate
	distance func() float64
	released bool
	stats    Stats

	OnShoot component.Emitter[ShotEvent]
}

func New(cfg Config) (*AttackPattern, error) {
	if cfg.Mold == nil || cfg.Scheduler == nil || cfg.Pool == nil || cfg.Muzzle == nil {
		return nil, ErrIncomplete
	}
	if cfg.Rand == nil {
		cfg.Rand = rand.New(rand.NewSource(1)) // #nosec G404 -- spread only
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &AttackPattern{
		mold:    cfg.Mold,
		sched:   cfg.Scheduler,
		pool:    cfg.Pool,
		muzzle:  cfg.Muzzle,
		faction: cfg.Faction,
		ignore:  cfg.Ignore,
		rng:     cfg.Rand,
		log:     cfg.Logger.With("component", "weapon", "attack", cfg.Mold.Name),
	}, nil
}

// State returns the current firing state. A finished cooldown reads Idle.
func (a *AttackPattern) State() State {
	if a.state == StateCooling && a.sched.Now() >= a.readyAt {
		return StateIdle
	}
	return a.state
}

func (a *AttackPattern) Mold() *molds.AttackMold { return a.mold }
func (a *AttackPattern) Stats() Stats { return a.stats }
func (a *AttackPattern) Looping() bool { return a.looping }

// ReadyAt returns when the current cooldown ends.
func (a *AttackPattern) ReadyAt() time.Duration { return a.readyAt }

// SetMold swaps the mold, e.g. after a reload. It applies from the next
// trigger on.
func (a *AttackPattern) SetMold(m *molds.AttackMold) error {
	if m == nil {
		return fmt.Errorf("weapon: set mold: %w", ErrIncomplete)
	}
	a.mold = m
	return nil
}

// SetGate installs the predicate checked before every volley; nil removes it.
func (a *AttackPattern) SetGate(g Gate) { a.gate = g }

// SetDistance installs the function used to scale spread; nil means zero.
func (a *AttackPattern) SetDistance(fn func() float64) { a.distance = fn }

// CanAttack reports whether a trigger would start a new sequence. A pattern
// never fires twice in one scheduler tick.
func (a *AttackPattern) CanAttack() bool {
	if a.released || a.firedThisTick() {
		return false
	}
	switch a.state {
	case StateIdle:
		return true
	case StateCooling:
		return a.sched.Now() >= a.readyAt
	default:
		return false
	}
}

// Trigger starts a single shot or a burst if the pattern can attack and the
// gate passes. It reports whether a sequence started.
func (a *AttackPattern) Trigger() bool {
	if !a.CanAttack() {
		a.log.Debug("trigger ignored", "state", a.State())
		return false
	}
	if a.checkGate() != Pass {
		return false
	}

	now := a.sched.Now()
	a.stats.Triggers++
	a.start = now
	a.fired = 0

	if a.mold.Mode != molds.FireBurst {
		a.state = StateSingleShot
		a.fire(now)
		wait := max(a.mold.CooldownDuration(), a.mold.ShotDelayDuration())
		a.cool(now + wait)
		return true
	}

	a.state = StateBursting
	a.fire(now)
	if a.fired >= a.mold.Volleys() {
		a.finishBurst()
		return true
	}
	a.cadence = a.sched.Spawn("burst", sched.TaskFunc(a.burstStep), sched.Until(a.lastShot+a.mold.ShotDelayDuration()))
	return true
}

func (a *AttackPattern) burstStep(now time.Duration) sched.Step {
	if a.state != StateBursting {
		return sched.Done()
	}
	verdict := a.checkGate()
	if a.state != StateBursting {
		// the gate owner cancelled us
		return sched.Done()
	}
	if verdict == Hold {
		// keep the target, retry this volley next tick
		return sched.Yield()
	}
	if verdict != Pass {
		a.stats.Aborted++
		a.log.Debug("burst aborted by gate", "fired", a.fired)
		a.cadence = nil
		a.finishBurst()
		return sched.Done()
	}
	a.fire(now)
	if a.fired >= a.mold.Volleys() {
		a.cadence = nil
		a.finishBurst()
		return sched.Done()
	}
	return sched.Until(a.lastShot + a.mold.ShotDelayDuration())
}

func (a *AttackPattern) firedThisTick() bool {
	return a.hasFired && a.volleyTick == a.sched.Ticks()
}

func (a *AttackPattern) finishBurst() {
	a.cool(max(a.start+a.mold.CooldownDuration(), a.lastShot+a.mold.BurstPauseDuration()))
}

func (a *AttackPattern) cool(readyAt time.Duration) {
	a.state = StateCooling
	a.readyAt = readyAt
}

func (a *AttackPattern) checkGate() Verdict {
	if a.gate == nil {
		return Pass
	}
	return a.gate()
}

// StartShootLoop spawns the per-tick driver that triggers whenever the
// pattern can attack. Calling it while a loop runs does nothing.
func (a *AttackPattern) StartShootLoop() {
	if a.released || a.loop.Active() {
		return
	}
	a.looping = true
	a.loop = a.sched.Go("shoot-loop", func(time.Duration) sched.Step {
		if !a.looping {
			return sched.Done()
		}
		if a.CanAttack() {
			a.Trigger()
		}
		return sched.Yield()
	})
}

// StopShootLoop clears the loop flag and cancels the driver. A burst in
// progress keeps going.
func (a *AttackPattern) StopShootLoop() {
	a.looping = false
	a.loop.Cancel()
	a.loop = nil
}

// Cancel stops the loop, clears the gate and cancels an in-flight burst.
// A cancelled burst fires nothing more and cools down from now.
func (a *AttackPattern) Cancel() {
	a.StopShootLoop()
	a.gate = nil
	a.distance = nil
	if a.cadence.Active() {
		a.cadence.Cancel()
		a.stats.Aborted++
	}
	a.cadence = nil
	if a.state == StateBursting {
		now := a.sched.Now()
		a.cool(max(a.start+a.mold.CooldownDuration(), now+a.mold.BurstPauseDuration()))
	}
}

// Release cancels everything and drops every observer. A released pattern
// never fires again.
func (a *AttackPattern) Release() {
	a.Cancel()
	a.OnShoot.Clear()
	a.released = true
}
