package common

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Axis vectors in the engine's right-handed, Y-up coordinate system.
var (
	AxisX = mgl32.Vec3{1, 0, 0}
	AxisY = mgl32.Vec3{0, 1, 0}
	AxisZ = mgl32.Vec3{0, 0, 1}
)

// ClampToMagnitude limits the magnitude of v to at most |limit| while keeping the sign of v.
// Used to keep a decay step from pushing a value past zero.
//
// Parameters:
//   - v: the value to clamp
//   - limit: the magnitude bound (its sign is ignored)
//
// Returns:
//   - float32: sign(v) * min(|v|, |limit|)
func ClampToMagnitude(v, limit float32) float32 {
	m := math32.Min(math32.Abs(v), math32.Abs(limit))
	if v < 0 {
		return -m
	}
	return m
}

// YawRotation builds a quaternion rotating by angle radians around the world up axis.
//
// Parameters:
//   - angle: rotation in radians (positive turns counter-clockwise seen from above)
//
// Returns:
//   - mgl32.Quat: the rotation
func YawRotation(angle float32) mgl32.Quat {
	return mgl32.QuatRotate(angle, AxisY)
}

// Yaw extracts the rotation around the up axis from a quaternion, in radians within (-π, π].
// Only meaningful for rotations composed purely of yaw.
//
// Parameters:
//   - q: the orientation
//
// Returns:
//   - float32: the yaw angle in radians
func Yaw(q mgl32.Quat) float32 {
	forward := q.Rotate(AxisZ)
	return math32.Atan2(forward[0], forward[2])
}

// WrapAngle maps an angle in radians into (-π, π].
//
// Parameters:
//   - a: the angle in radians
//
// Returns:
//   - float32: the equivalent angle within (-π, π]
func WrapAngle(a float32) float32 {
	a = math32.Mod(a+math32.Pi, 2*math32.Pi)
	if a <= 0 {
		a += 2 * math32.Pi
	}
	return a - math32.Pi
}
