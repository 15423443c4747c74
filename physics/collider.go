package physics

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/rangedcombat/component"
)

// collider is the component.Shape behind every cp shape the Space owns.
type collider struct {
	space  *Space
	shape  *cp.Shape
	layer  component.Layer
	filter cp.ShapeFilter

	// lo and hi bound the collider vertically. Actor and projectile
	// extents are relative to their body's Y; wall extents are absolute.
	lo, hi float64

	body       *Body
	projectile *ProjectileBody
	damageable component.Damageable
	handler    component.ContactHandler
	removed    bool
}

func (c *collider) Layer() component.Layer {
	return c.layer
}

func (c *collider) Damageable() component.Damageable {
	return c.damageable
}

func (c *collider) Body() (component.RigidBody, bool) {
	switch {
	case c.body != nil && c.body.Valid():
		return c.body, true
	case c.projectile != nil && c.projectile.Valid():
		return c.projectile, true
	}
	return nil, false
}

func (c *collider) active() bool {
	if c == nil || c.removed {
		return false
	}
	if c.projectile != nil {
		return c.projectile.enabled
	}
	return true
}

// vertical returns the absolute vertical extent of the collider.
func (c *collider) vertical() (lo, hi float64) {
	switch {
	case c.body != nil:
		y := c.body.pos.Y
		return y + c.lo, y + c.hi
	case c.projectile != nil:
		y := c.projectile.pos.Y
		return y + c.lo, y + c.hi
	}
	return c.lo, c.hi
}

func (c *collider) applyFilter(layer, mask component.Layer) {
	c.layer = layer
	c.filter = cp.ShapeFilter{Group: 0, Categories: uint(layer), Mask: uint(mask)}
	c.shape.SetFilter(c.filter)
	c.shape.SetSensor(true)
}

// reindex refreshes the shape's cached bounds in the spatial index after its
// body was moved outside a step.
func (c *collider) reindex() {
	if c.removed {
		return
	}
	space := c.space.space
	space.RemoveShape(c.shape)
	space.AddShape(c.shape)
}
