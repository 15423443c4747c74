package targeting

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/milk9111/rangedcombat/ballistics"
	"github.com/milk9111/rangedcombat/common"
	"github.com/milk9111/rangedcombat/component"
	"github.com/milk9111/rangedcombat/molds"
	"github.com/milk9111/rangedcombat/sched"
	"github.com/milk9111/rangedcombat/weapon"
)

// DefaultInterval is how often the aim loop scans or revalidates.
const DefaultInterval = 25 * time.Millisecond

var ErrIncomplete = errors.New("targeting: incomplete config")

// State is the aim loop's phase.
type State uint8

const (
	StateStopped State = iota
	StateAcquiring
	StateTracking
)

func (s State) String() string {
	switch s {
	case StateAcquiring:
		return "acquiring"
	case StateTracking:
		return "tracking"
	default:
		return "stopped"
	}
}

// TargetEvent is emitted when the loop acquires or drops a target.
type TargetEvent struct {
	Target   component.Damageable
	Acquired bool
	Reason   string
	At       time.Duration
}

type LoopConfig struct {
	Scheduler *sched.Scheduler
	Scanner   *Scanner
	Pattern   *weapon.AttackPattern
	Muzzle    weapon.Muzzle
	// Gates defaults to NewGateTable().
	Gates *GateTable
	// Rotate receives the lead direction on every tracking tick.
	Rotate   func(dir common.Vec3)
	Interval time.Duration
	Logger   *slog.Logger
}

// AimLoop scans for a target, keeps it while it stays valid, leads it for
// the muzzle and drives the attack pattern's shoot loop and gate.
type AimLoop struct {
	sched    *sched.Scheduler
	scanner  *Scanner
	pattern  *weapon.AttackPattern
	muzzle   weapon.Muzzle
	gates    *GateTable
	rotate   func(dir common.Vec3)
	interval time.Duration
	log      *slog.Logger

	mold  *molds.AttackMold
	kinds []GateKind

	state   State
	handle  *sched.Handle
	target  component.Damageable
	body    component.RigidBody
	hadBody bool
	aim     common.Vec3

	OnTargetChanged component.Emitter[TargetEvent]
}

func NewAimLoop(cfg LoopConfig) (*AimLoop, error) {
	if cfg.Scheduler == nil || cfg.Scanner == nil || cfg.Pattern == nil || cfg.Muzzle == nil {
		return nil, ErrIncomplete
	}
	if cfg.Gates == nil {
		cfg.Gates = NewGateTable()
	}
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultInterval
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	m := cfg.Pattern.Mold()
	kinds, err := ParseGateKinds(m.Gates)
	if err != nil {
		return nil, fmt.Errorf("targeting: attack %q: %w", m.Name, err)
	}
	return &AimLoop{
		sched:    cfg.Scheduler,
		scanner:  cfg.Scanner,
		pattern:  cfg.Pattern,
		muzzle:   cfg.Muzzle,
		gates:    cfg.Gates,
		rotate:   cfg.Rotate,
		interval: cfg.Interval,
		log:      cfg.Logger.With("component", "aim", "attack", m.Name),
		mold:     m,
		kinds:    kinds,
	}, nil
}

func (a *AimLoop) State() State { return a.state }

// Target returns the tracked target, if any.
func (a *AimLoop) Target() (component.Damageable, bool) {
	return a.target, a.target != nil
}

// Aim returns the last lead direction; zero while not tracking.
func (a *AimLoop) Aim() common.Vec3 { return a.aim }

// Start arms the loop. Starting a running loop does nothing.
func (a *AimLoop) Start() {
	if a.handle.Active() {
		return
	}
	a.state = StateAcquiring
	a.handle = a.sched.Every("aim", a.interval, a.tick)
}

// Stop cancels the loop and the attack pattern. Nothing the loop started
// runs after Stop returns.
func (a *AimLoop) Stop() {
	a.handle.Cancel()
	a.handle = nil
	a.pattern.Cancel()
	prev := a.target
	a.clearTarget()
	a.state = StateStopped
	if prev != nil {
		a.OnTargetChanged.Emit(TargetEvent{Target: prev, Reason: "stopped", At: a.sched.Now()})
	}
}

// Release stops the loop and drops every observer.
func (a *AimLoop) Release() {
	a.Stop()
	a.OnTargetChanged.Clear()
}

func (a *AimLoop) tick(now time.Duration) bool {
	ctx := a.context()
	switch a.state {
	case StateTracking:
		if reason := a.invalid(ctx); reason != "" {
			a.lose(now, reason)
			return true
		}
	case StateAcquiring:
		target, ok := a.scanner.Scan(ctx)
		if !ok {
			return true
		}
		a.acquire(now, target)
	default:
		return false
	}
	a.track(ctx)
	return true
}

func (a *AimLoop) context() AimContext {
	m := a.pattern.Mold()
	if m != a.mold {
		a.refresh(m)
	}
	return AimContext{
		Origin:       a.muzzle.FirePoint(),
		TargetMask:   m.TargetMask(),
		TargetOffset: m.TargetOffset.Vec3(),
		FiringRadius: m.FiringRadius,
	}
}

// refresh re-reads gate kinds after the pattern's mold was swapped. A bad
// list keeps the previous kinds.
func (a *AimLoop) refresh(m *molds.AttackMold) {
	a.mold = m
	kinds, err := ParseGateKinds(m.Gates)
	if err != nil {
		a.log.Warn("keeping previous gates", "err", err)
		return
	}
	a.kinds = kinds
}

func (a *AimLoop) acquire(now time.Duration, target component.Damageable) {
	a.target = target
	a.body, a.hadBody = target.RigidBody()
	a.state = StateTracking
	a.pattern.SetGate(a.gate)
	a.pattern.SetDistance(a.distance)
	a.pattern.StartShootLoop()
	a.log.Debug("target acquired", "at", component.PositionOf(target))
	a.OnTargetChanged.Emit(TargetEvent{Target: target, Acquired: true, At: now})
}

func (a *AimLoop) invalid(ctx AimContext) string {
	d := a.target
	switch {
	case d == nil:
		return "gone"
	case !d.IsAlive():
		return "dead"
	case !d.IsStanding():
		return "down"
	case !component.PositionOf(d).WithinAxes(ctx.Origin.Position, ctx.FiringRadius):
		return "out of range"
	}
	if a.hadBody {
		if rb, ok := d.RigidBody(); !ok || !rb.Valid() {
			return "body removed"
		}
	}
	return ""
}

func (a *AimLoop) track(ctx AimContext) {
	pos := component.PositionOf(a.target).Add(ctx.TargetOffset)
	var vel common.Vec3
	if a.hadBody && a.body.Valid() {
		vel = a.body.Velocity()
	}
	a.aim = ballistics.LeadDirection(pos, vel, ctx.Origin.Position, a.pattern.Mold().ProjectileSpeed)
	if a.rotate != nil && !a.aim.IsZero() {
		a.rotate(a.aim)
	}
}

// lose drops the target and stops the shoot loop; a burst already in flight
// sees the gate report Lost and aborts.
func (a *AimLoop) lose(now time.Duration, reason string) {
	prev := a.target
	a.clearTarget()
	if a.state != StateStopped {
		a.state = StateAcquiring
	}
	a.pattern.StopShootLoop()
	a.log.Debug("target lost", "reason", reason)
	if prev != nil {
		a.OnTargetChanged.Emit(TargetEvent{Target: prev, Reason: reason, At: now})
	}
}

func (a *AimLoop) clearTarget() {
	a.target = nil
	a.body = nil
	a.hadBody = false
	a.aim = common.Vec3{}
}

func (a *AimLoop) gate() weapon.Verdict {
	if a.target == nil {
		return weapon.Lost
	}
	m := a.pattern.Mold()
	v := a.gates.Eval(a.kinds, GateInput{
		Muzzle:    a.muzzle.FirePoint(),
		Target:    a.target,
		Offset:    m.TargetOffset.Vec3(),
		Direction: a.aim,
		MinAngle:  common.Radians(m.MinAngleToShoot),
		Scanner:   a.scanner,
	})
	if v == weapon.Lost {
		a.lose(a.sched.Now(), "gate")
	}
	return v
}

func (a *AimLoop) distance() float64 {
	if a.target == nil {
		return 0
	}
	return component.PositionOf(a.target).Distance(a.muzzle.FirePoint().Position)
}
