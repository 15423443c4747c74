package targeting

import (
	"errors"
	"fmt"

	"github.com/milk9111/rangedcombat/common"
	"github.com/milk9111/rangedcombat/component"
	"github.com/milk9111/rangedcombat/weapon"
)

var ErrUnknownGate = errors.New("targeting: unknown gate")

// GateKind names one check run before every volley.
type GateKind uint8

const (
	// GateAlways passes unconditionally.
	GateAlways GateKind = iota
	// GateFacing holds until the muzzle points within the mold's minimum
	// angle of the aim direction.
	GateFacing
	// GateLineOfSight loses the target once the environment blocks it.
	GateLineOfSight

	gateKindCount
)

var gateNames = [gateKindCount]string{
	GateAlways:      "always",
	GateFacing:      "facing",
	GateLineOfSight: "line_of_sight",
}

func (k GateKind) String() string {
	if k < gateKindCount {
		return gateNames[k]
	}
	return fmt.Sprintf("gate(%d)", uint8(k))
}

// ParseGateKind maps a mold gate name onto its kind.
func ParseGateKind(name string) (GateKind, error) {
	for k, n := range gateNames {
		if n == name {
			return GateKind(k), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownGate, name)
}

// ParseGateKinds parses every name, failing on the first unknown one.
func ParseGateKinds(names []string) ([]GateKind, error) {
	kinds := make([]GateKind, 0, len(names))
	for _, n := range names {
		k, err := ParseGateKind(n)
		if err != nil {
			return nil, err
		}
		kinds = append(kinds, k)
	}
	return kinds, nil
}

// GateInput is what a gate sees when the attack pattern asks it.
type GateInput struct {
	Muzzle    common.Pose
	Target    component.Damageable
	Offset    common.Vec3
	Direction common.Vec3
	// MinAngle is in radians.
	MinAngle float64
	Scanner  *Scanner
}

type GateFunc func(in GateInput) weapon.Verdict

// GateTable maps each kind onto its check.
type GateTable struct {
	funcs [gateKindCount]GateFunc
}

// NewGateTable returns a table with every built-in kind registered.
func NewGateTable() *GateTable {
	t := &GateTable{}
	t.Register(GateAlways, func(GateInput) weapon.Verdict { return weapon.Pass })
	t.Register(GateFacing, facing)
	t.Register(GateLineOfSight, lineOfSight)
	return t
}

// Register replaces the check for kind. Unknown kinds are ignored.
func (t *GateTable) Register(kind GateKind, fn GateFunc) {
	if kind >= gateKindCount {
		return
	}
	t.funcs[kind] = fn
}

// Eval runs kinds in order. A target that is gone is Lost before any gate
// runs; otherwise the first Lost wins and any Hold holds.
func (t *GateTable) Eval(kinds []GateKind, in GateInput) weapon.Verdict {
	if in.Target == nil || !in.Target.IsAlive() || !in.Target.IsStanding() {
		return weapon.Lost
	}
	verdict := weapon.Pass
	for _, k := range kinds {
		if k >= gateKindCount || t.funcs[k] == nil {
			continue
		}
		switch t.funcs[k](in) {
		case weapon.Lost:
			return weapon.Lost
		case weapon.Hold:
			verdict = weapon.Hold
		}
	}
	return verdict
}

func facing(in GateInput) weapon.Verdict {
	if in.Direction.IsZero() {
		return weapon.Pass
	}
	if common.Angle(in.Muzzle.Forward, in.Direction) > in.MinAngle+1e-6 {
		return weapon.Hold
	}
	return weapon.Pass
}

func lineOfSight(in GateInput) weapon.Verdict {
	if in.Scanner == nil {
		return weapon.Pass
	}
	if !in.Scanner.Visible(in.Muzzle.Position, component.PositionOf(in.Target), in.Offset) {
		return weapon.Lost
	}
	return weapon.Pass
}
