// Package ballistics computes firing directions that lead moving targets.
package ballistics

import (
	"math"

	"github.com/milk9111/rangedcombat/common"
)

const epsilon = 1e-9

// Solution describes where and when a projectile fired along Direction
// meets the target. Lead is false when the solver fell back to direct aim.
type Solution struct {
	Direction common.Vec3
	Point     common.Vec3
	Time      float64
	Lead      bool
}

// LeadDirection returns the unit direction a projectile travelling at speed
// must be fired from shooter to meet a target at target moving with
// velocity. Unsolvable cases aim directly at the target.
func LeadDirection(target, velocity, shooter common.Vec3, speed float64) common.Vec3 {
	return Solve(target, velocity, shooter, speed).Direction
}

// Solve finds the smallest positive t with |target + velocity*t - shooter| = speed*t.
func Solve(target, velocity, shooter common.Vec3, speed float64) Solution {
	rel := target.Sub(shooter)
	direct := Solution{Direction: rel.Normalize(), Point: target}
	if speed > 0 {
		direct.Time = rel.Len() / speed
	}

	if speed <= 0 || velocity.IsZero() {
		return direct
	}

	// (|v|^2 - s^2) t^2 + 2 (rel.v) t + |rel|^2 = 0
	a := velocity.LenSq() - speed*speed
	b := 2 * rel.Dot(velocity)
	c := rel.LenSq()

	t, ok := smallestPositiveRoot(a, b, c)
	if !ok {
		return direct
	}

	point := target.Add(velocity.Scale(t))
	dir := point.Sub(shooter).Normalize()
	if dir.IsZero() {
		return direct
	}
	return Solution{Direction: dir, Point: point, Time: t, Lead: true}
}

func smallestPositiveRoot(a, b, c float64) (float64, bool) {
	if math.Abs(a) < epsilon {
		// target and projectile share a speed: b t + c = 0
		if math.Abs(b) < epsilon {
			return 0, false
		}
		t := -c / b
		return t, t > 0
	}

	disc := b*b - 4*a*c
	if disc < 0 {
		return 0, false
	}
	sq := math.Sqrt(disc)
	t1 := (-b - sq) / (2 * a)
	t2 := (-b + sq) / (2 * a)
	if t1 > t2 {
		t1, t2 = t2, t1
	}
	switch {
	case t1 > 0:
		return t1, true
	case t2 > 0:
		return t2, true
	default:
		return 0, false
	}
}
