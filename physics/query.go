package physics

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/rangedcombat/common"
	"github.com/milk9111/rangedcombat/component"
)

var (
	_ component.Proximity = (*Space)(nil)
	_ component.Occlusion = (*Space)(nil)
)

// OverlapSphere writes the colliders on mask touching the sphere into
// results, in the order the spatial index reports them, and returns how
// many were written. It never writes past len(results).
func (s *Space) OverlapSphere(origin common.Vec3, radius float64, mask component.Layer, results []component.Shape) int {
	if s == nil || radius < 0 || mask == 0 || len(results) == 0 {
		return 0
	}
	n := 0
	s.pointQuery(flat(origin), radius, queryFilter(mask), func(col *collider, distance float64) {
		if n >= len(results) || !col.active() {
			return
		}
		lo, hi := col.vertical()
		gap := math.Max(0, math.Max(lo-origin.Y, origin.Y-hi))
		d := math.Max(0, distance)
		if d*d+gap*gap > radius*radius {
			return
		}
		results[n] = col
		n++
	})
	return n
}

// Raycast reports whether a collider on mask lies within maxDistance of
// from along dir.
func (s *Space) Raycast(from, dir common.Vec3, maxDistance float64, mask component.Layer) bool {
	if s == nil || maxDistance <= 0 || mask == 0 {
		return false
	}
	dir = dir.Normalize()
	if dir.IsZero() {
		return false
	}
	to := from.Add(dir.Scale(maxDistance))
	a, b := flat(from), flat(to)

	blocked := false
	if math.Hypot(b.X-a.X, b.Y-a.Y) < 1e-9 {
		s.pointQuery(a, 0, queryFilter(mask), func(col *collider, distance float64) {
			if blocked || distance > 0 {
				return
			}
			if col.active() && spans(col, from.Y, to.Y) {
				blocked = true
			}
		})
		return blocked
	}

	s.space.SegmentQuery(a, b, 0, queryFilter(mask), func(shape *cp.Shape, point, normal cp.Vector, alpha float64, data interface{}) {
		if blocked {
			return
		}
		col, ok := s.colliders[shape]
		if !ok || !col.active() {
			return
		}
		// the segment is inside the footprint from alpha until it leaves
		exit := 1.0
		var back cp.SegmentQueryInfo
		if shape.SegmentQuery(b, a, 0, &back) {
			exit = 1 - back.Alpha
		}
		if exit < alpha {
			exit = alpha
		}
		if spans(col, common.Lerp(from.Y, to.Y, alpha), common.Lerp(from.Y, to.Y, exit)) {
			blocked = true
		}
	}, nil)
	return blocked
}

// pointQuery calls fn for every collider passing filter whose footprint
// lies within radius of p, in spatial index order.
func (s *Space) pointQuery(p cp.Vector, radius float64, filter cp.ShapeFilter, fn func(col *collider, distance float64)) {
	s.space.BBQuery(cp.NewBBForCircle(p, radius), filter, func(shape *cp.Shape, data interface{}) {
		col, ok := s.colliders[shape]
		if !ok {
			return
		}
		info := shape.PointQuery(p)
		if info.Distance > radius {
			return
		}
		fn(col, info.Distance)
	}, nil)
}

// spans reports whether the vertical interval between y0 and y1 meets the
// collider's vertical extent.
func spans(col *collider, y0, y1 float64) bool {
	if y0 > y1 {
		y0, y1 = y1, y0
	}
	lo, hi := col.vertical()
	return y1 >= lo && y0 <= hi
}
