package component

import "github.com/milk9111/rangedcombat/common"

// HealthChange is emitted whenever a Health's value changes.
type HealthChange struct {
	Health *Health
	Delta  int
	Died   bool
}

// Health is a reusable Damageable for any entity that can take damage.
type Health struct {
	Max      int
	Current  int
	Dead     bool
	Standing bool

	// Body is optional; without one Bounds is centred on Anchor.
	Body   RigidBody
	Extent common.Vec3
	Anchor common.Vec3

	OnChange Emitter[HealthChange]
	OnDeath  Emitter[*Health]
}

// NewHealth creates a standing Health with max/current initialized.
func NewHealth(max int) *Health {
	if max <= 0 {
		max = 1
	}
	return &Health{Max: max, Current: max, Standing: true}
}

// ChangeHealthBy applies delta, clamping to [0, Max]. Dead targets ignore
// further changes.
func (h *Health) ChangeHealthBy(delta int) {
	if h == nil || h.Dead || delta == 0 {
		return
	}
	before := h.Current
	h.Current += delta
	if h.Current < 0 {
		h.Current = 0
	}
	if h.Current > h.Max {
		h.Current = h.Max
	}
	died := h.Current <= 0
	if died {
		h.Dead = true
		h.Standing = false
	}
	h.OnChange.Emit(HealthChange{Health: h, Delta: h.Current - before, Died: died})
	if died {
		h.OnDeath.Emit(h)
	}
}

func (h *Health) CurrentHealth() int {
	if h == nil {
		return 0
	}
	return h.Current
}

// IsAlive reports whether the entity is alive.
func (h *Health) IsAlive() bool {
	return h != nil && !h.Dead && h.Current > 0
}

func (h *Health) IsStanding() bool {
	return h != nil && h.Standing
}

// RigidBody returns the attached body while it is still simulated.
func (h *Health) RigidBody() (RigidBody, bool) {
	if h == nil || h.Body == nil || !h.Body.Valid() {
		return nil, false
	}
	return h.Body, true
}

// Bounds is centred on the body when present, otherwise on Anchor.
func (h *Health) Bounds() common.Bounds {
	if h == nil {
		return common.Bounds{}
	}
	center := h.Anchor
	if h.Body != nil && h.Body.Valid() {
		center = h.Body.Position()
	}
	return common.BoundsAround(center, h.Extent)
}

// Heal restores health up to Max.
func (h *Health) Heal(amount int) {
	if amount <= 0 {
		return
	}
	h.ChangeHealthBy(amount)
}

// Revive resets a dead Health to full and stands it back up.
func (h *Health) Revive() {
	if h == nil {
		return
	}
	h.Dead = false
	h.Standing = true
	h.Current = h.Max
}
