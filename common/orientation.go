package common

import "math"

// maxPitch keeps offset directions away from the poles so yaw stays defined.
const maxPitch = math.Pi/2 - 1e-6

// Pose is a position with a facing direction, e.g. a muzzle fire point.
type Pose struct {
	Position Vec3
	Forward  Vec3
}

// YawPitch decomposes a direction into yaw around Up (0 facing +Z, positive
// toward +X) and pitch above the horizontal plane.
func YawPitch(dir Vec3) (yaw, pitch float64) {
	dir = dir.Normalize()
	if dir.IsZero() {
		return 0, 0
	}
	yaw = math.Atan2(dir.X, dir.Z)
	pitch = math.Asin(math.Max(-1, math.Min(1, dir.Y)))
	return yaw, pitch
}

// FromYawPitch is the inverse of YawPitch.
func FromYawPitch(yaw, pitch float64) Vec3 {
	cp := math.Cos(pitch)
	return Vec3{
		X: math.Sin(yaw) * cp,
		Y: math.Sin(pitch),
		Z: math.Cos(yaw) * cp,
	}
}

// Offset rotates dir by the given yaw and pitch deltas in radians.
func Offset(dir Vec3, dyaw, dpitch float64) Vec3 {
	if dir.IsZero() {
		return dir
	}
	yaw, pitch := YawPitch(dir)
	pitch += dpitch
	if pitch > maxPitch {
		pitch = maxPitch
	} else if pitch < -maxPitch {
		pitch = -maxPitch
	}
	return FromYawPitch(yaw+dyaw, pitch)
}

// RotateTowards turns current toward target by at most maxStep radians and
// returns the resulting unit direction.
func RotateTowards(current, target Vec3, maxStep float64) Vec3 {
	current = current.Normalize()
	target = target.Normalize()
	if target.IsZero() {
		return current
	}
	if current.IsZero() {
		return target
	}
	angle := Angle(current, target)
	if angle <= maxStep || angle < epsilon {
		return target
	}
	if maxStep <= 0 {
		return current
	}

	axis := current.Cross(target).Normalize()
	if axis.IsZero() {
		// opposite directions: turn around Up, or sideways when looking straight up
		axis = Up
		if math.Abs(current.Dot(Up)) > 0.99 {
			axis = Vec3{X: 1}
		}
	}
	return rotateAround(current, axis, maxStep).Normalize()
}

// rotateAround applies Rodrigues' rotation of v around a unit axis.
func rotateAround(v, axis Vec3, angle float64) Vec3 {
	c := math.Cos(angle)
	s := math.Sin(angle)
	return v.Scale(c).
		Add(axis.Cross(v).Scale(s)).
		Add(axis.Scale(axis.Dot(v) * (1 - c)))
}
