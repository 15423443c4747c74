package ballistics

import (
	"math"
	"testing"

	"github.com/milk9111/rangedcombat/common"
)

const tol = 1e-6

func TestLeadDirectionStationaryTargetIsDirect(t *testing.T) {
	shooter := common.V3(1, 2, 3)
	target := common.V3(-4, 6, 10)
	want := target.Sub(shooter).Normalize()

	for _, speed := range []float64{0.5, 1, 20, 1000} {
		got := LeadDirection(target, common.Vec3{}, shooter, speed)
		if !got.ApproxEqual(want, tol) {
			t.Fatalf("speed %v: got %v want %v", speed, got, want)
		}
	}
}

func TestLeadDirectionNonPositiveSpeedIsDirect(t *testing.T) {
	shooter := common.Vec3{}
	target := common.V3(0, 0, 10)
	want := common.V3(0, 0, 1)

	velocities := []common.Vec3{
		common.V3(5, 0, 0),
		common.V3(-3, 2, 1),
		common.V3(0, 0, 100),
	}
	for _, speed := range []float64{0, -1, -50} {
		for _, vel := range velocities {
			got := LeadDirection(target, vel, shooter, speed)
			if !got.ApproxEqual(want, tol) {
				t.Fatalf("speed %v vel %v: got %v want %v", speed, vel, got, want)
			}
		}
	}
}

func TestSolveLeadsTargetMovingAway(t *testing.T) {
	shooter := common.Vec3{}
	target := common.V3(10, 0, 0)
	vel := common.V3(5, 0, 0)

	sol := Solve(target, vel, shooter, 20)
	if !sol.Lead {
		t.Fatalf("expected a lead solution")
	}
	if sol.Point.X <= target.X {
		t.Fatalf("intercept point %v should be ahead of target %v", sol.Point, target)
	}
	if math.Abs(sol.Time-2.0/3.0) > 1e-6 {
		t.Fatalf("intercept time = %v, want 2/3", sol.Time)
	}
}

func TestSolveLeadsCrossingTarget(t *testing.T) {
	shooter := common.Vec3{}
	target := common.V3(10, 0, 0)
	vel := common.V3(0, 0, 5)

	sol := Solve(target, vel, shooter, 20)
	direct := target.Normalize()
	if !sol.Lead {
		t.Fatalf("expected a lead solution")
	}
	if sol.Direction.ApproxEqual(direct, 1e-3) {
		t.Fatalf("lead direction %v should differ from direct aim %v", sol.Direction, direct)
	}
	if sol.Direction.Z <= 0 {
		t.Fatalf("lead direction %v should point ahead of the target's motion", sol.Direction)
	}

	// the projectile and the target reach the intercept point together
	flown := sol.Direction.Scale(20 * sol.Time)
	if !flown.ApproxEqual(sol.Point, 1e-6) {
		t.Fatalf("projectile at %v, target at %v", flown, sol.Point)
	}
}

func TestSolveFallsBackWhenTargetOutruns(t *testing.T) {
	shooter := common.Vec3{}
	target := common.V3(10, 0, 0)
	vel := common.V3(50, 0, 0)

	sol := Solve(target, vel, shooter, 20)
	if sol.Lead {
		t.Fatalf("expected direct aim fallback, got %+v", sol)
	}
	if !sol.Direction.ApproxEqual(common.V3(1, 0, 0), tol) {
		t.Fatalf("direction = %v", sol.Direction)
	}
}

func TestSmallestPositiveRoot(t *testing.T) {
	cases := []struct {
		name    string
		a, b, c float64
		want    float64
		ok      bool
	}{
		{"two_positive", 1, -3, 2, 1, true},
		{"one_positive", 1, -1, -2, 2, true},
		{"none_positive", 1, 3, 2, 0, false},
		{"no_real", 1, 0, 1, 0, false},
		{"linear", 0, -2, 4, 2, true},
		{"linear_past", 0, 2, 4, 0, false},
		{"degenerate", 0, 0, 4, 0, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, ok := smallestPositiveRoot(c.a, c.b, c.c)
			if ok != c.ok {
				t.Fatalf("ok = %v, want %v", ok, c.ok)
			}
			if ok && math.Abs(got-c.want) > tol {
				t.Fatalf("root = %v, want %v", got, c.want)
			}
		})
	}
}
