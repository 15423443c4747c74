package weapon

import (
	"time"

	"github.com/milk9111/rangedcombat/common"
	"github.com/milk9111/rangedcombat/projectile"
)

// fire launches one volley and records it.
func (a *AttackPattern) fire(now time.Duration) {
	ev := a.volley(now)
	a.fired++
	a.lastShot = now
	a.volleyTick = a.sched.Ticks()
	a.hasFired = true
	a.stats.Volleys++
	a.stats.Shots += ev.Launched
	a.stats.Skipped += ev.Skipped
	ev.Volley = a.fired
	a.OnShoot.Emit(ev)
}

func (a *AttackPattern) volley(now time.Duration) ShotEvent {
	pose := a.muzzle.FirePoint()
	ev := ShotEvent{At: now, Origin: pose}

	h, v := a.spread()
	count := a.mold.ProjectilesPerShot
	if count <= 0 {
		count = 1
	}
	for range count {
		p, ok := a.pool.Acquire(a.mold.Projectile)
		if !ok {
			ev.Skipped++
			continue
		}
		dir := common.Offset(pose.Forward, common.Radians(a.jitter(h)), common.Radians(a.jitter(v)))
		p.Launch(projectile.Shot{
			From:      pose.Position,
			Direction: dir,
			Speed:     a.mold.ProjectileSpeed,
			Faction:   a.faction,
			Ignore:    a.ignore,
		})
		ev.Launched++
	}
	if ev.Skipped > 0 {
		a.log.Warn("volley skipped projectiles", "projectile", a.mold.Projectile, "skipped", ev.Skipped)
	}
	return ev
}

// spread returns the horizontal and vertical half-angles in degrees for the
// current target distance.
func (a *AttackPattern) spread() (h, v float64) {
	t := 0.0
	if a.distance != nil && a.mold.FiringRadius > 0 {
		t = common.Clamp01(a.distance() / a.mold.FiringRadius)
	}
	pct := a.mold.SpreadCurve.Evaluate(t)
	h = common.Lerp(a.mold.MinSpread.Horizontal, a.mold.MaxSpread.Horizontal, pct)
	v = common.Lerp(a.mold.MinSpread.Vertical, a.mold.MaxSpread.Vertical, pct)
	return h, v
}

func (a *AttackPattern) jitter(r float64) float64 {
	if r <= 0 {
		return 0
	}
	return (a.rng.Float64()*2 - 1) * r
}
