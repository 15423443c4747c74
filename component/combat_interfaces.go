package component

import "github.com/milk9111/rangedcombat/common"

//go:generate go tool mockgen -destination=./mocks/combat_interfaces_mock.go -package=mocks . Damageable,RigidBody,Shape,Proximity,Occlusion

// Damageable is the capability a target must provide to be shot at.
type Damageable interface {
	// ChangeHealthBy applies a signed health delta; damage is negative.
	ChangeHealthBy(delta int)
	CurrentHealth() int
	IsAlive() bool
	IsStanding() bool
	// RigidBody returns the physics body driving the target, if any.
	RigidBody() (RigidBody, bool)
	Bounds() common.Bounds
}

// RigidBody exposes the parts of a simulated body the combat core reads or
// pushes.
type RigidBody interface {
	Position() common.Vec3
	Velocity() common.Vec3
	ApplyImpulse(impulse common.Vec3)
	// Valid reports whether the body still exists in its simulation.
	Valid() bool
}

// Shape is a collider handle returned from scene queries and contacts.
type Shape interface {
	Layer() Layer
	// Damageable returns the capability attached to this collider, or nil.
	Damageable() Damageable
	Body() (RigidBody, bool)
}

// Proximity finds colliders near a point.
type Proximity interface {
	// OverlapSphere writes up to len(results) colliders on mask within
	// radius of origin and returns how many were written.
	OverlapSphere(origin common.Vec3, radius float64, mask Layer, results []Shape) int
}

// Occlusion casts rays against the scene.
type Occlusion interface {
	// Raycast reports whether anything on mask lies within maxDistance of
	// from along dir.
	Raycast(from, dir common.Vec3, maxDistance float64, mask Layer) bool
}

// Contact reports a collision between the receiving collider and Other.
type Contact struct {
	Other Shape
	Point common.Vec3
}

// ContactHandler receives contacts for colliders it owns.
type ContactHandler interface {
	HandleContact(c Contact)
}

// PositionOf returns the world position used to aim at d.
func PositionOf(d Damageable) common.Vec3 {
	if d == nil {
		return common.Vec3{}
	}
	return d.Bounds().Center()
}
