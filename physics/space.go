// Package physics adapts a Chipmunk space to the 3D combat world. The ground
// plane (X, Z) is simulated by cp; every collider also carries a vertical
// extent that queries and contacts check on top of cp's 2D answer.
package physics

import (
	"log/slog"
	"math"
	"sort"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/rangedcombat/common"
	"github.com/milk9111/rangedcombat/component"
)

// Space owns the cp space and every collider registered with it. It is not
// safe for concurrent use.
type Space struct {
	space   *cp.Space
	gravity float64
	log     *slog.Logger

	colliders   map[*cp.Shape]*collider
	actors      []*Body
	projectiles []*ProjectileBody
	walls       []common.Bounds

	pending []contact
}

type contact struct {
	a, b  *collider
	alpha float64
	point common.Vec3
}

// New creates an empty space. gravity pulls falling projectiles down along Y.
func New(gravity float64, logger *slog.Logger) *Space {
	if logger == nil {
		logger = slog.Default()
	}
	space := cp.NewSpace()
	space.Iterations = 10
	space.SetGravity(cp.Vector{})
	return &Space{
		space:     space,
		gravity:   gravity,
		log:       logger.With("component", "physics"),
		colliders: make(map[*cp.Shape]*collider),
	}
}

// Space returns the underlying Chipmunk space.
func (s *Space) Space() *cp.Space {
	if s == nil {
		return nil
	}
	return s.space
}

// AddWall adds a static box on LayerEnvironment spanning min to max.
func (s *Space) AddWall(min, max common.Vec3) component.Shape {
	b := common.Bounds{Min: min, Max: max}
	bb := cp.BB{L: min.X, B: min.Z, R: max.X, T: max.Z}
	shape := cp.NewBox2(s.space.StaticBody, bb, 0)
	col := &collider{
		space: s,
		shape: shape,
		layer: component.LayerEnvironment,
		lo:    min.Y,
		hi:    max.Y,
	}
	col.applyFilter(component.LayerEnvironment, component.LayerAll)
	s.space.AddShape(shape)
	s.colliders[shape] = col
	s.walls = append(s.walls, b)
	return col
}

// Walls returns the bounds of every static wall.
func (s *Space) Walls() []common.Bounds {
	return s.walls
}

// Step integrates bodies by dt seconds, then reports projectile contacts
// found along each projectile's path. Handlers run after every body has
// moved, so they may freely re-filter, freeze or disable bodies.
func (s *Space) Step(dt float64) {
	if s == nil || dt <= 0 {
		return
	}

	for _, b := range s.actors {
		b.integrate(dt)
	}

	type sweep struct {
		p        *ProjectileBody
		from, to common.Vec3
	}
	sweeps := make([]sweep, 0, len(s.projectiles))
	for _, p := range s.projectiles {
		from := p.pos
		if p.integrate(dt, s.gravity) {
			sweeps = append(sweeps, sweep{p: p, from: from, to: p.pos})
		}
	}

	s.space.Step(dt)

	s.pending = s.pending[:0]
	for _, sw := range sweeps {
		s.sweep(sw.p, sw.from, sw.to)
	}
	s.dispatch()
}

func (s *Space) sweep(p *ProjectileBody, from, to common.Vec3) {
	start := len(s.pending)
	self := p.col
	filter := self.filter
	a := flat(from)
	b := flat(to)

	hit := func(other *collider, alpha float64) {
		if other == self || !other.active() {
			return
		}
		y := common.Lerp(from.Y, to.Y, alpha)
		lo, hi := other.vertical()
		if y+p.radius < lo || y-p.radius > hi {
			return
		}
		s.pending = append(s.pending, contact{
			a:     self,
			b:     other,
			alpha: alpha,
			point: from.Add(to.Sub(from).Scale(alpha)),
		})
	}

	if math.Hypot(b.X-a.X, b.Y-a.Y) < 1e-9 {
		s.pointQuery(b, p.radius, filter, func(other *collider, distance float64) {
			hit(other, 1)
		})
	} else {
		s.space.SegmentQuery(a, b, p.radius, filter, func(shape *cp.Shape, point, normal cp.Vector, alpha float64, data interface{}) {
			if other, ok := s.colliders[shape]; ok {
				hit(other, alpha)
			}
		}, nil)
	}

	found := s.pending[start:]
	sort.SliceStable(found, func(i, j int) bool { return found[i].alpha < found[j].alpha })
}

func (s *Space) dispatch() {
	if len(s.pending) == 0 {
		return
	}
	type pair struct{ a, b *collider }
	seen := make(map[pair]bool, len(s.pending))
	for _, c := range s.pending {
		if seen[pair{c.a, c.b}] || seen[pair{c.b, c.a}] {
			continue
		}
		seen[pair{c.a, c.b}] = true
		if !c.a.active() || !c.b.active() {
			continue
		}

		if c.a.handler != nil {
			c.a.handler.HandleContact(component.Contact{Other: c.b, Point: c.point})
		}
		if c.b.handler != nil {
			c.b.handler.HandleContact(component.Contact{Other: c.a, Point: c.point})
		}
	}
	s.pending = s.pending[:0]
}

func (s *Space) remove(col *collider) {
	if col == nil || col.removed {
		return
	}
	col.removed = true
	s.space.RemoveShape(col.shape)
	delete(s.colliders, col.shape)
}

func flat(v common.Vec3) cp.Vector {
	return cp.Vector{X: v.X, Y: v.Z}
}

func queryFilter(mask component.Layer) cp.ShapeFilter {
	return cp.ShapeFilter{Group: 0, Categories: ^uint(0), Mask: uint(mask)}
}
