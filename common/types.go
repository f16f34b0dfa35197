// package common contains common types that are used throughout this engine. They are not interface-wrapped structs, just plain structs that express
// commonly used data-types.
package common

import "github.com/go-gl/mathgl/mgl32"

// Transform is the world-space placement of a character as handed to renderers and cameras.
type Transform struct {
	// Position is the world-space translation.
	Position mgl32.Vec3

	// Orientation is the world-space rotation as a unit quaternion.
	Orientation mgl32.Quat
}

// IdentityTransform returns a Transform at the origin with no rotation.
//
// Returns:
//   - Transform: the identity transform
func IdentityTransform() Transform {
	return Transform{Orientation: mgl32.QuatIdent()}
}
