package physics

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/rangedcombat/common"
	"github.com/milk9111/rangedcombat/component"
)

// ActorSpec describes an upright cylinder collider, e.g. a soldier or a
// training dummy.
type ActorSpec struct {
	// Position is the centre of the cylinder.
	Position   common.Vec3
	Velocity   common.Vec3
	Radius     float64
	Height     float64
	Mass       float64
	Layer      component.Layer
	Damageable component.Damageable
}

// Body is a kinematic actor body. Its velocity is set by game code and by
// impulses; the Space integrates its position.
type Body struct {
	space  *Space
	cpBody *cp.Body
	col    *collider
	pos    common.Vec3
	vel    common.Vec3
	mass   float64
}

// AddActor registers an actor collider and returns its body.
func (s *Space) AddActor(spec ActorSpec) *Body {
	if spec.Radius <= 0 {
		spec.Radius = 0.5
	}
	if spec.Height <= 0 {
		spec.Height = 2 * spec.Radius
	}
	if spec.Mass <= 0 {
		spec.Mass = 1
	}
	if spec.Layer == 0 {
		spec.Layer = component.LayerNeutral
	}

	cpBody := cp.NewKinematicBody()
	cpBody.SetPosition(flat(spec.Position))
	shape := cp.NewCircle(cpBody, spec.Radius, cp.Vector{})

	b := &Body{
		space:  s,
		cpBody: cpBody,
		pos:    spec.Position,
		vel:    spec.Velocity,
		mass:   spec.Mass,
	}
	b.col = &collider{
		space:      s,
		shape:      shape,
		lo:         -spec.Height / 2,
		hi:         spec.Height / 2,
		body:       b,
		damageable: spec.Damageable,
	}
	b.col.applyFilter(spec.Layer, component.LayerAll)

	s.space.AddBody(cpBody)
	s.space.AddShape(shape)
	s.colliders[shape] = b.col
	s.actors = append(s.actors, b)
	s.log.Debug("actor added", "layer", spec.Layer, "pos", spec.Position)
	return b
}

// Shape returns the collider of b.
func (b *Body) Shape() component.Shape {
	return b.col
}

func (b *Body) Position() common.Vec3 {
	return b.pos
}

func (b *Body) Velocity() common.Vec3 {
	return b.vel
}

func (b *Body) SetVelocity(v common.Vec3) {
	b.vel = v
}

// SetPosition teleports the body.
func (b *Body) SetPosition(p common.Vec3) {
	if !b.Valid() {
		return
	}
	b.pos = p
	b.sync()
}

// ApplyImpulse changes the velocity by impulse / mass.
func (b *Body) ApplyImpulse(impulse common.Vec3) {
	if !b.Valid() {
		return
	}
	b.vel = b.vel.Add(impulse.Scale(1 / b.mass))
}

// Valid reports whether the body is still part of its space.
func (b *Body) Valid() bool {
	return b != nil && b.col != nil && !b.col.removed
}

// Remove takes the body out of the space. Later calls are no-ops.
func (b *Body) Remove() {
	if !b.Valid() {
		return
	}
	s := b.space
	s.remove(b.col)
	s.space.RemoveBody(b.cpBody)
	for i, a := range s.actors {
		if a == b {
			s.actors = append(s.actors[:i], s.actors[i+1:]...)
			break
		}
	}
}

func (b *Body) integrate(dt float64) {
	if b.vel.IsZero() {
		return
	}
	b.pos = b.pos.Add(b.vel.Scale(dt))
	b.cpBody.SetPosition(flat(b.pos))
}

func (b *Body) sync() {
	b.cpBody.SetPosition(flat(b.pos))
	b.col.reindex()
}
