package weapon

import (
	"math"
	"testing"
	"time"

	"github.com/milk9111/rangedcombat/common"
	"github.com/milk9111/rangedcombat/component"
	"github.com/milk9111/rangedcombat/molds"
	"github.com/milk9111/rangedcombat/physics"
	"github.com/milk9111/rangedcombat/projectile"
	"github.com/milk9111/rangedcombat/sched"
)

type fixedMuzzle struct {
	pose common.Pose
}

func (m fixedMuzzle) FirePoint() common.Pose { return m.pose }

type rig struct {
	sched   *sched.Scheduler
	pool    *projectile.Pool
	store   *molds.Store
	pattern *AttackPattern
	shots   []ShotEvent
}

func newRig(t *testing.T, attack molds.AttackMold, slug molds.ProjectileMold) *rig {
	t.Helper()
	store := molds.NewStore("", nil)
	if slug.Name == "" {
		slug.Name = "slug"
	}
	if slug.MaxFlightTime == 0 {
		slug.MaxFlightTime = 0.05
	}
	if err := store.PutProjectile(&slug); err != nil {
		t.Fatalf("put projectile: %v", err)
	}
	if attack.Name == "" {
		attack.Name = "test"
	}
	if attack.Projectile == "" {
		attack.Projectile = slug.Name
	}
	if attack.FiringRadius == 0 {
		attack.FiringRadius = 20
	}
	if attack.ProjectileSpeed == 0 {
		attack.ProjectileSpeed = 20
	}
	attack.Targets = []string{"enemy"}
	if err := store.PutAttack(&attack); err != nil {
		t.Fatalf("put attack: %v", err)
	}

	r := &rig{sched: sched.New(), store: store}
	r.pool = projectile.NewPool(physics.New(common.Gravity, nil), r.sched, store, nil)
	m, _ := store.Attack(attack.Name)
	p, err := New(Config{
		Mold:      m,
		Scheduler: r.sched,
		Pool:      r.pool,
		Muzzle:    fixedMuzzle{pose: common.Pose{Position: common.V3(0, 1, 0), Forward: common.Forward}},
		Faction:   component.FactionFriendly,
	})
	if err != nil {
		t.Fatalf("new pattern: %v", err)
	}
	p.OnShoot.Subscribe(func(ev ShotEvent) { r.shots = append(r.shots, ev) })
	r.pattern = p
	return r
}

func (r *rig) runUntil(end, step time.Duration, each func()) {
	for r.sched.Now() < end {
		r.sched.Tick(step)
		if each != nil {
			each()
		}
	}
}

func TestSingleShotCooldown(t *testing.T) {
	cases := []struct {
		name     string
		cooldown float64
		delay    float64
		ready    time.Duration
	}{
		{"cooldown_dominates", 1.0, 0.25, time.Second},
		{"shot_delay_dominates", 0, 0.25, 250 * time.Millisecond},
		{"equal", 0.5, 0.5, 500 * time.Millisecond},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r := newRig(t, molds.AttackMold{Mode: molds.FireSingle, Cooldown: c.cooldown, ShotDelay: c.delay}, molds.ProjectileMold{})
			p := r.pattern

			if !p.CanAttack() || !p.Trigger() {
				t.Fatalf("first trigger refused")
			}
			if p.CanAttack() {
				t.Fatalf("CanAttack true right after firing")
			}
			if p.Trigger() {
				t.Fatalf("second trigger fired while cooling")
			}

			step := 10 * time.Millisecond
			r.runUntil(c.ready-step, step, func() {
				if p.CanAttack() {
					t.Fatalf("CanAttack true at %v, want false until %v", r.sched.Now(), c.ready)
				}
			})
			r.sched.Tick(step)
			if !p.CanAttack() {
				t.Fatalf("CanAttack false at %v", r.sched.Now())
			}
			if len(r.shots) != 1 || r.shots[0].Launched != 1 {
				t.Fatalf("shots = %+v, want one volley of one projectile", r.shots)
			}
		})
	}
}

func TestBurstCadence(t *testing.T) {
	r := newRig(t, molds.AttackMold{Mode: molds.FireBurst, BurstSize: 3, ShotDelay: 0.1, BurstPause: 1.0}, molds.ProjectileMold{})
	p := r.pattern

	if !p.Trigger() {
		t.Fatalf("trigger refused")
	}
	step := 10 * time.Millisecond
	r.runUntil(1190*time.Millisecond, step, func() {
		if p.CanAttack() {
			t.Fatalf("CanAttack true at %v", r.sched.Now())
		}
	})
	r.sched.Tick(step)
	if !p.CanAttack() {
		t.Fatalf("CanAttack false at %v, want true at 1.2s", r.sched.Now())
	}

	want := []time.Duration{0, 100 * time.Millisecond, 200 * time.Millisecond}
	if len(r.shots) != len(want) {
		t.Fatalf("got %d volleys, want %d", len(r.shots), len(want))
	}
	for i, ev := range r.shots {
		if ev.At != want[i] || ev.Volley != i+1 {
			t.Fatalf("volley %d at %v (#%d), want %v", i, ev.At, ev.Volley, want[i])
		}
	}
	if got := p.Stats(); got.Triggers != 1 || got.Volleys != 3 || got.Shots != 3 {
		t.Fatalf("stats = %+v", got)
	}
}

func TestBurstCooldownDominatesPause(t *testing.T) {
	r := newRig(t, molds.AttackMold{Mode: molds.FireBurst, Cooldown: 3, BurstSize: 2, ShotDelay: 0.4, BurstPause: 0.5}, molds.ProjectileMold{})
	r.pattern.Trigger()
	r.runUntil(time.Second, 100*time.Millisecond, nil)
	if got := r.pattern.ReadyAt(); got != 3*time.Second {
		t.Fatalf("readyAt = %v, want 3s", got)
	}
}

func TestCancelMidBurst(t *testing.T) {
	r := newRig(t, molds.AttackMold{Mode: molds.FireBurst, BurstSize: 5, ShotDelay: 0.1, BurstPause: 1.0}, molds.ProjectileMold{})
	p := r.pattern
	p.Trigger()
	r.runUntil(150*time.Millisecond, 10*time.Millisecond, nil)
	if len(r.shots) != 2 {
		t.Fatalf("volleys before cancel = %d, want 2", len(r.shots))
	}

	p.Cancel()
	r.runUntil(3*time.Second, 10*time.Millisecond, nil)

	if len(r.shots) != 2 {
		t.Fatalf("cancelled burst kept firing: %d volleys", len(r.shots))
	}
	if got := p.ReadyAt(); got != 1150*time.Millisecond {
		t.Fatalf("readyAt = %v, want 1.15s", got)
	}
	if r.sched.Len() != 0 {
		t.Fatalf("%d tasks left after cancel", r.sched.Len())
	}
}

func TestShootLoop(t *testing.T) {
	r := newRig(t, molds.AttackMold{Mode: molds.FireSingle, Cooldown: 0.5}, molds.ProjectileMold{})
	p := r.pattern

	p.StartShootLoop()
	p.StartShootLoop()
	if r.sched.Len() != 1 {
		t.Fatalf("tasks = %d, want a single loop driver", r.sched.Len())
	}

	r.runUntil(1600*time.Millisecond, 16*time.Millisecond, nil)
	want := []time.Duration{16, 528, 1040, 1552}
	if len(r.shots) != len(want) {
		t.Fatalf("got %d volleys, want %d", len(r.shots), len(want))
	}
	for i, ev := range r.shots {
		if ev.At != want[i]*time.Millisecond {
			t.Fatalf("volley %d at %v, want %vms", i, ev.At, want[i])
		}
	}

	p.StopShootLoop()
	r.runUntil(5*time.Second, 16*time.Millisecond, nil)
	if len(r.shots) != len(want) {
		t.Fatalf("loop fired after stop")
	}
	if p.Looping() || r.sched.Len() != 0 {
		t.Fatalf("loop still scheduled")
	}
}

func TestGateHoldsAndAbortsBurst(t *testing.T) {
	r := newRig(t, molds.AttackMold{Mode: molds.FireBurst, BurstSize: 3, ShotDelay: 0.1, BurstPause: 0.5}, molds.ProjectileMold{})
	p := r.pattern

	verdict := Hold
	p.SetGate(func() Verdict { return verdict })
	if p.Trigger() {
		t.Fatalf("trigger fired through a holding gate")
	}
	if !p.CanAttack() {
		t.Fatalf("held trigger changed state")
	}

	verdict = Pass
	p.Trigger()
	verdict = Lost
	r.runUntil(time.Second, 10*time.Millisecond, nil)

	if len(r.shots) != 1 {
		t.Fatalf("volleys = %d, want 1", len(r.shots))
	}
	if got := p.Stats(); got.Aborted != 1 {
		t.Fatalf("aborted = %d, want 1", got.Aborted)
	}
	if got := p.ReadyAt(); got != 500*time.Millisecond {
		t.Fatalf("readyAt = %v, want 0.5s", got)
	}
}

func TestOneVolleyPerTick(t *testing.T) {
	cases := []struct {
		name string
		mold molds.AttackMold
		loop bool
	}{
		{"single_without_delays", molds.AttackMold{Mode: molds.FireSingle}, false},
		{"burst_of_one_without_delays", molds.AttackMold{Mode: molds.FireBurst, BurstSize: 1}, false},
		{"loop_and_trigger", molds.AttackMold{Mode: molds.FireSingle}, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r := newRig(t, c.mold, molds.ProjectileMold{})
			p := r.pattern
			if c.loop {
				p.StartShootLoop()
			}

			r.sched.Tick(10 * time.Millisecond)
			p.Trigger()
			if p.CanAttack() || p.Trigger() {
				t.Fatalf("pattern fired again in the same tick")
			}
			if len(r.shots) != 1 {
				t.Fatalf("volleys after one tick = %d, want 1", len(r.shots))
			}

			r.sched.Tick(10 * time.Millisecond)
			p.Trigger()
			if len(r.shots) != 2 {
				t.Fatalf("volleys after two ticks = %d, want 2", len(r.shots))
			}
		})
	}
}

func TestHoldDelaysBurstVolley(t *testing.T) {
	r := newRig(t, molds.AttackMold{Mode: molds.FireBurst, BurstSize: 3, ShotDelay: 0.1, BurstPause: 0.5}, molds.ProjectileMold{})
	p := r.pattern

	verdict := Pass
	p.SetGate(func() Verdict { return verdict })
	p.Trigger()

	verdict = Hold
	r.runUntil(150*time.Millisecond, 10*time.Millisecond, nil)
	if len(r.shots) != 1 || p.State() != StateBursting {
		t.Fatalf("held burst: volleys=%d state=%v", len(r.shots), p.State())
	}

	verdict = Pass
	r.runUntil(time.Second, 10*time.Millisecond, nil)
	if len(r.shots) != 3 {
		t.Fatalf("volleys = %d, want the full burst of 3", len(r.shots))
	}
	if r.shots[1].At != 160*time.Millisecond {
		t.Fatalf("second volley at %v, want 160ms", r.shots[1].At)
	}
	if got := p.Stats(); got.Aborted != 0 {
		t.Fatalf("aborted = %d, want 0", got.Aborted)
	}
}

func TestVolleySkipsExhaustedSlots(t *testing.T) {
	r := newRig(t,
		molds.AttackMold{Mode: molds.FireSingle, ProjectilesPerShot: 3},
		molds.ProjectileMold{PoolSize: 2},
	)
	r.pattern.Trigger()
	if len(r.shots) != 1 {
		t.Fatalf("no OnShoot event")
	}
	if ev := r.shots[0]; ev.Launched != 2 || ev.Skipped != 1 {
		t.Fatalf("event = %+v, want 2 launched 1 skipped", ev)
	}
}

func TestVolleyWithUnknownProjectileFiresNothing(t *testing.T) {
	r := newRig(t, molds.AttackMold{Mode: molds.FireSingle, Projectile: "ghost"}, molds.ProjectileMold{})
	if !r.pattern.Trigger() {
		t.Fatalf("trigger refused")
	}
	if ev := r.shots[0]; ev.Launched != 0 || ev.Skipped != 1 {
		t.Fatalf("event = %+v", ev)
	}
}

func TestSpread(t *testing.T) {
	t.Run("zero_spread_fires_straight", func(t *testing.T) {
		r := newRig(t, molds.AttackMold{Mode: molds.FireSingle, ProjectilesPerShot: 4}, molds.ProjectileMold{})
		r.pattern.Trigger()
		for _, pr := range r.pool.Active() {
			if !pr.Direction().ApproxEqual(common.Forward, 1e-9) {
				t.Fatalf("direction %v, want forward", pr.Direction())
			}
		}
	})

	t.Run("spread_grows_with_distance", func(t *testing.T) {
		r := newRig(t, molds.AttackMold{
			Mode:               molds.FireSingle,
			ProjectilesPerShot: 16,
			MaxSpread:          molds.Spread{Horizontal: 10, Vertical: 4},
		}, molds.ProjectileMold{})
		r.pattern.SetDistance(func() float64 { return 40 })
		r.pattern.Trigger()

		widest := 0.0
		for _, pr := range r.pool.Active() {
			yaw, pitch := common.YawPitch(pr.Direction())
			if math.Abs(common.Degrees(yaw)) > 10+1e-9 || math.Abs(common.Degrees(pitch)) > 4+1e-9 {
				t.Fatalf("direction %v outside the spread cone", pr.Direction())
			}
			widest = math.Max(widest, math.Abs(yaw))
		}
		if widest == 0 {
			t.Fatalf("no spread applied at full distance")
		}
	})
}

func TestReleaseDropsObservers(t *testing.T) {
	r := newRig(t, molds.AttackMold{Mode: molds.FireSingle}, molds.ProjectileMold{})
	p := r.pattern
	p.StartShootLoop()
	p.Release()

	if p.OnShoot.Len() != 0 {
		t.Fatalf("observers survived release")
	}
	if p.CanAttack() || p.Trigger() {
		t.Fatalf("released pattern can still fire")
	}
	p.StartShootLoop()
	if r.sched.Len() != 0 {
		t.Fatalf("released pattern restarted its loop")
	}
}
