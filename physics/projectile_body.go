package physics

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/rangedcombat/common"
	"github.com/milk9111/rangedcombat/component"
)

// Motion is how a projectile body moves each step.
type Motion uint8

const (
	MotionIdle Motion = iota
	MotionFlying
	MotionFrozen
	MotionFalling
	MotionResting
)

func (m Motion) String() string {
	switch m {
	case MotionFlying:
		return "flying"
	case MotionFrozen:
		return "frozen"
	case MotionFalling:
		return "falling"
	case MotionResting:
		return "resting"
	default:
		return "idle"
	}
}

// ProjectileBody is a small sphere swept along its velocity every step.
// Bodies are pooled: a disabled body stays in the space but takes part in
// no query or contact until it is launched again.
type ProjectileBody struct {
	space   *Space
	cpBody  *cp.Body
	col     *collider
	pos     common.Vec3
	vel     common.Vec3
	radius  float64
	motion  Motion
	enabled bool
}

// NewProjectileBody creates a disabled projectile body whose contacts are
// delivered to handler.
func (s *Space) NewProjectileBody(radius float64, handler component.ContactHandler) *ProjectileBody {
	if radius <= 0 {
		radius = 0.05
	}
	cpBody := cp.NewKinematicBody()
	shape := cp.NewCircle(cpBody, radius, cp.Vector{})

	p := &ProjectileBody{
		space:  s,
		cpBody: cpBody,
		radius: radius,
	}
	p.col = &collider{
		space:      s,
		shape:      shape,
		lo:         -radius,
		hi:         radius,
		projectile: p,
		handler:    handler,
	}
	p.col.applyFilter(component.LayerFriendlyProjectile, component.LayerAll)

	s.space.AddBody(cpBody)
	s.space.AddShape(shape)
	s.colliders[shape] = p.col
	s.projectiles = append(s.projectiles, p)
	return p
}

// Shape returns the collider of p.
func (p *ProjectileBody) Shape() component.Shape {
	return p.col
}

func (p *ProjectileBody) Radius() float64 {
	return p.radius
}

func (p *ProjectileBody) Motion() Motion {
	return p.motion
}

func (p *ProjectileBody) Enabled() bool {
	return p.enabled
}

// SetFilter moves p to layer and limits what it touches to mask.
func (p *ProjectileBody) SetFilter(layer, mask component.Layer) {
	if p.col.removed {
		return
	}
	p.col.applyFilter(layer, mask)
}

// Place teleports p without changing how it moves.
func (p *ProjectileBody) Place(pos common.Vec3) {
	if p.col.removed {
		return
	}
	p.pos = pos
	p.cpBody.SetPosition(flat(pos))
	p.col.reindex()
}

// Launch enables p and sends it off with velocity v.
func (p *ProjectileBody) Launch(v common.Vec3) {
	if p.col.removed {
		return
	}
	p.vel = v
	p.motion = MotionFlying
	p.enabled = true
}

// Freeze stops p at the given point; it stays enabled for its remaining
// collision layers.
func (p *ProjectileBody) Freeze(at common.Vec3) {
	p.Place(at)
	p.vel = common.Vec3{}
	p.motion = MotionFrozen
}

// Fall drops p from the given point under gravity.
func (p *ProjectileBody) Fall(at common.Vec3) {
	p.Place(at)
	p.vel = common.Vec3{}
	p.motion = MotionFalling
}

// Disable parks p. It keeps its shape so the pool can reuse it.
func (p *ProjectileBody) Disable() {
	p.enabled = false
	p.motion = MotionIdle
	p.vel = common.Vec3{}
}

func (p *ProjectileBody) Position() common.Vec3 {
	return p.pos
}

func (p *ProjectileBody) Velocity() common.Vec3 {
	return p.vel
}

// ApplyImpulse treats projectiles as unit mass.
func (p *ProjectileBody) ApplyImpulse(impulse common.Vec3) {
	if !p.Valid() {
		return
	}
	p.vel = p.vel.Add(impulse)
}

// Valid reports whether p is launched and still in its space.
func (p *ProjectileBody) Valid() bool {
	return p != nil && p.enabled && p.col != nil && !p.col.removed
}

// Remove takes p out of the space for good.
func (p *ProjectileBody) Remove() {
	if p.col.removed {
		return
	}
	p.Disable()
	s := p.space
	s.remove(p.col)
	s.space.RemoveBody(p.cpBody)
	for i, q := range s.projectiles {
		if q == p {
			s.projectiles = append(s.projectiles[:i], s.projectiles[i+1:]...)
			break
		}
	}
}

// integrate moves p by one step and reports whether its path needs a sweep.
func (p *ProjectileBody) integrate(dt, gravity float64) bool {
	if !p.Valid() {
		return false
	}
	switch p.motion {
	case MotionFlying:
	case MotionFalling:
		p.vel.Y -= gravity * dt
	default:
		return false
	}
	p.pos = p.pos.Add(p.vel.Scale(dt))
	if p.motion == MotionFalling && p.pos.Y <= p.radius {
		p.pos.Y = p.radius
		p.vel = common.Vec3{}
		p.motion = MotionResting
	}
	p.cpBody.SetPosition(flat(p.pos))
	return true
}
