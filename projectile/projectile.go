package projectile

import (
	"github.com/google/uuid"
	"github.com/milk9111/rangedcombat/common"
	"github.com/milk9111/rangedcombat/component"
	"github.com/milk9111/rangedcombat/molds"
	"github.com/milk9111/rangedcombat/physics"
	"github.com/milk9111/rangedcombat/sched"
)

// State is where a projectile is in its lifecycle.
type State uint8

const (
	// StateIdle projectiles sit in the pool.
	StateIdle State = iota
	StateAcquired
	StateFlying
	StateLingering
)

func (s State) String() string {
	switch s {
	case StateAcquired:
		return "acquired"
	case StateFlying:
		return "flying"
	case StateLingering:
		return "lingering"
	default:
		return "idle"
	}
}

// Shot describes one launch.
type Shot struct {
	From      common.Vec3
	Direction common.Vec3
	Speed     float64
	Faction   component.Faction
	// Ignore lists colliders this shot never interacts with, typically the
	// firer's own shapes.
	Ignore []component.Shape
}

// Impact is emitted when a projectile resolves its first contact.
type Impact struct {
	ID        uuid.UUID
	Kind      string
	Impact    component.ImpactKind
	Point     common.Vec3
	Other     component.Shape
	Target    component.Damageable
	Damage    int
	Particles string
}

// Projectile is a pooled shot. It is owned by exactly one shot between
// Acquire and Release.
type Projectile struct {
	id    uuid.UUID
	kind  string
	mold  *molds.ProjectileMold
	pool  *Pool
	body  *physics.ProjectileBody
	layer component.Layer

	state        State
	interactable bool
	direction    common.Vec3
	faction      component.Faction
	ignore       map[component.Shape]struct{}

	linger *sched.Handle
	flight *sched.Handle

	OnImpact component.Emitter[Impact]
}

func (p *Projectile) ID() uuid.UUID { return p.id }
func (p *Projectile) Kind() string { return p.kind }
func (p *Projectile) State() State { return p.state }
func (p *Projectile) Interactable() bool { return p.interactable }
func (p *Projectile) Faction() component.Faction { return p.faction }
func (p *Projectile) Direction() common.Vec3 { return p.direction }
func (p *Projectile) Body() *physics.ProjectileBody { return p.body }
func (p *Projectile) Mold() *molds.ProjectileMold { return p.mold }
func (p *Projectile) Position() common.Vec3 { return p.body.Position() }

// Launch places the projectile and sends it flying. Only an acquired
// projectile can be launched.
func (p *Projectile) Launch(shot Shot) {
	if p.state != StateAcquired {
		p.pool.log.Debug("launch ignored", "id", p.id, "state", p.state)
		return
	}
	dir := shot.Direction.Normalize()
	if dir.IsZero() {
		dir = common.Forward
	}

	p.direction = dir
	p.faction = shot.Faction
	p.layer = shot.Faction.ProjectileLayer()
	for _, s := range shot.Ignore {
		if s != nil {
			p.ignore[s] = struct{}{}
		}
	}

	p.body.SetFilter(p.layer, p.mold.BeforeCollision())
	p.body.Place(shot.From)
	p.body.Launch(dir.Scale(shot.Speed))
	p.interactable = true
	p.state = StateFlying

	if d := p.mold.MaxFlightDuration(); d > 0 {
		p.flight = p.pool.sched.After("projectile-flight", d, func() {
			p.flight = nil
			p.pool.Release(p)
		})
	}
}

// HandleContact resolves the first qualifying contact of a flying
// projectile. Later contacts, and contacts with ignored colliders, are
// dropped.
func (p *Projectile) HandleContact(c component.Contact) {
	if p.state != StateFlying || !p.interactable || c.Other == nil {
		return
	}
	if _, ok := p.ignore[c.Other]; ok {
		return
	}

	other := c.Other.Layer()
	if other.Has(component.LayerProjectiles) && other == p.layer {
		p.interactable = false
		p.pool.log.Debug("projectile pair cancelled", "id", p.id, "kind", p.kind)
		p.pool.Release(p)
		return
	}

	p.interactable = false
	impact := Impact{
		ID:        p.id,
		Kind:      p.kind,
		Impact:    p.mold.Impact,
		Point:     c.Point,
		Other:     c.Other,
		Particles: p.mold.ImpactParticles,
	}
	if target := c.Other.Damageable(); target != nil {
		impact.Target = target
		if p.mold.Damage > 0 {
			target.ChangeHealthBy(-p.mold.Damage)
			impact.Damage = p.mold.Damage
		}
	}
	if p.mold.PushForce > 0 {
		if rb, ok := c.Other.Body(); ok {
			rb.ApplyImpulse(p.direction.Scale(p.mold.PushForce))
		}
	}
	p.pool.log.Debug("projectile impact", "id", p.id, "kind", p.kind, "damage", impact.Damage, "point", c.Point)
	p.pool.OnImpact.Emit(impact)
	p.OnImpact.Emit(impact)
	if p.state != StateFlying {
		// an observer released it
		return
	}

	lifetime := p.mold.LifetimeAfterHitDuration()
	if lifetime <= 0 {
		p.pool.Release(p)
		return
	}

	p.flight.Cancel()
	p.flight = nil
	p.body.SetFilter(p.layer, p.mold.AfterCollision())
	if p.mold.Impact == component.ImpactBlunt {
		p.body.Fall(c.Point)
	} else {
		p.body.Freeze(c.Point)
	}
	p.state = StateLingering
	p.linger = p.pool.sched.After("projectile-linger", lifetime, func() {
		p.linger = nil
		p.pool.Release(p)
	})
}

func (p *Projectile) reset() {
	p.linger.Cancel()
	p.flight.Cancel()
	p.linger = nil
	p.flight = nil
	p.body.Disable()
	p.interactable = false
	p.direction = common.Vec3{}
	p.faction = component.FactionNeutral
	clear(p.ignore)
	p.OnImpact.Clear()
	p.state = StateIdle
}
