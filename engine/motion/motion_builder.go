package motion

import "github.com/go-gl/mathgl/mgl32"

// IntegratorBuilderOption is a functional option for configuring an Integrator.
type IntegratorBuilderOption func(*integratorImpl)

// WithTunables sets the integrator coefficients.
//
// Parameters:
//   - t: the coefficients
//
// Returns:
//   - IntegratorBuilderOption: functional option to set the coefficients
func WithTunables(t Tunables) IntegratorBuilderOption {
	return func(i *integratorImpl) {
		i.tunables = t
	}
}

// WithPosition sets the starting position.
//
// Parameters:
//   - p: the world position
//
// Returns:
//   - IntegratorBuilderOption: functional option to set the position
func WithPosition(p mgl32.Vec3) IntegratorBuilderOption {
	return func(i *integratorImpl) {
		i.initial.Position = p
	}
}

// WithOrientation sets the starting orientation.
//
// Parameters:
//   - q: the orientation, normalized on use
//
// Returns:
//   - IntegratorBuilderOption: functional option to set the orientation
func WithOrientation(q mgl32.Quat) IntegratorBuilderOption {
	return func(i *integratorImpl) {
		i.initial.Orientation = q.Normalize()
	}
}
