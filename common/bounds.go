package common

// Bounds is an axis-aligned bounding volume.
type Bounds struct {
	Min, Max Vec3
}

// BoundsAround builds a box centred on c with the given half extents.
func BoundsAround(c Vec3, half Vec3) Bounds {
	return Bounds{Min: c.Sub(half), Max: c.Add(half)}
}

func (b Bounds) Center() Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

func (b Bounds) Size() Vec3 {
	return b.Max.Sub(b.Min)
}

func (b Bounds) Contains(p Vec3) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

func (b Bounds) Intersects(o Bounds) bool {
	return b.Min.X <= o.Max.X && b.Max.X >= o.Min.X &&
		b.Min.Y <= o.Max.Y && b.Max.Y >= o.Min.Y &&
		b.Min.Z <= o.Max.Z && b.Max.Z >= o.Min.Z
}
