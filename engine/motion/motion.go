package motion

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-avatar/common"
	"github.com/Carmen-Shannon/oxy-avatar/engine/input"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Tunables are the fixed coefficients of the integrator.
//
// Acceleration.Z is the longitudinal acceleration in units/s²; Acceleration.Y is the turn rate
// factor, applied on top of TurnRate. Deceleration is a per-axis decay coefficient multiplied with
// the current velocity each frame; it should be negative.
type Tunables struct {
	Acceleration     mgl32.Vec3
	Deceleration     mgl32.Vec3
	SprintMultiplier float32
	TurnRate         float32
}

// DefaultTunables returns the stock character coefficients.
//
// Returns:
//   - Tunables: acceleration (1, 0.25, 50), deceleration (-0.0005, -0.0001, -5), sprint x2, turn rate 4π
func DefaultTunables() Tunables {
	return Tunables{
		Acceleration:     mgl32.Vec3{1, 0.25, 50},
		Deceleration:     mgl32.Vec3{-0.0005, -0.0001, -5},
		SprintMultiplier: 2,
		TurnRate:         4 * math32.Pi,
	}
}

// MotionState is the kinematic state of one character. Velocity is in the character's local frame.
type MotionState struct {
	Velocity    mgl32.Vec3
	Orientation mgl32.Quat
	Position    mgl32.Vec3
}

// NewMotionState returns a character at rest at the origin facing +Z.
//
// Returns:
//   - MotionState: the rest state
func NewMotionState() MotionState {
	return MotionState{Orientation: mgl32.QuatIdent()}
}

// Forward returns the world-space direction the character faces.
func (s MotionState) Forward() mgl32.Vec3 {
	return s.Orientation.Rotate(common.AxisZ).Normalize()
}

// Yaw returns the heading around the up axis in radians.
func (s MotionState) Yaw() float32 {
	return common.Yaw(s.Orientation)
}

// Integrate advances s by dt seconds under the given input.
//
// Velocity first decays by velocity ⊙ Deceleration × dt, each axis clamped so the decay never
// crosses zero. Forward and backward then add and subtract Acceleration.Z × dt (doubled when
// sprinting) and may cancel. Left and right each compose a yaw of ±TurnRate × dt × Acceleration.Y
// onto the orientation; sprint does not change the turn rate. Finally the position moves along the
// new local +X and +Z axes by the local velocity. Nothing writes Velocity.X, so it only ever decays.
//
// Parameters:
//   - s: the current state
//   - t: the coefficients
//   - dt: elapsed time in seconds
//   - signals: the control snapshot for this frame
//
// Returns:
//   - MotionState: the next state
func Integrate(s MotionState, t Tunables, dt float32, signals input.ControlSignals) MotionState {
	velocity := s.Velocity
	decay := mgl32.Vec3{
		velocity[0] * t.Deceleration[0],
		velocity[1] * t.Deceleration[1],
		velocity[2] * t.Deceleration[2],
	}.Mul(dt)
	for i := range decay {
		decay[i] = common.ClampToMagnitude(decay[i], velocity[i])
	}
	velocity = velocity.Add(decay)

	acc := t.Acceleration
	if signals.Sprint {
		acc = acc.Mul(t.SprintMultiplier)
	}
	if signals.Forward {
		velocity[2] += acc[2] * dt
	}
	if signals.Backward {
		velocity[2] -= acc[2] * dt
	}

	orientation := s.Orientation
	turn := t.TurnRate * dt * t.Acceleration[1]
	if signals.Left {
		orientation = orientation.Mul(common.YawRotation(turn))
	}
	if signals.Right {
		orientation = orientation.Mul(common.YawRotation(-turn))
	}
	orientation = orientation.Normalize()

	forward := orientation.Rotate(common.AxisZ).Normalize()
	sideways := orientation.Rotate(common.AxisX).Normalize()
	position := s.Position.
		Add(sideways.Mul(velocity[0] * dt)).
		Add(forward.Mul(velocity[2] * dt))

	return MotionState{
		Velocity:    velocity,
		Orientation: orientation,
		Position:    position,
	}
}

// Integrator owns a MotionState and advances it once per frame.
type Integrator interface {
	// Update integrates one frame and stores the result.
	//
	// Parameters:
	//   - dt: elapsed time in seconds
	//   - signals: the control snapshot for this frame
	//
	// Returns:
	//   - MotionState: the new state
	Update(dt float32, signals input.ControlSignals) MotionState

	// State returns the current state.
	State() MotionState

	// SetState replaces the current state, e.g. to teleport the character.
	SetState(s MotionState)

	// Reset returns to the initial state the integrator was built with.
	Reset()

	// Tunables returns the coefficients in use.
	Tunables() Tunables

	// SetTunables replaces the coefficients from the next Update on.
	SetTunables(t Tunables)
}

// integratorImpl is the implementation of the Integrator interface.
type integratorImpl struct {
	mu *sync.Mutex

	tunables Tunables
	initial  MotionState
	state    MotionState
}

var _ Integrator = &integratorImpl{}

// NewIntegrator creates an Integrator at rest with DefaultTunables.
//
// Parameters:
//   - options: functional options to configure the integrator
//
// Returns:
//   - Integrator: the newly created integrator
func NewIntegrator(options ...IntegratorBuilderOption) Integrator {
	i := &integratorImpl{
		mu:       &sync.Mutex{},
		tunables: DefaultTunables(),
		initial:  NewMotionState(),
	}
	for _, opt := range options {
		opt(i)
	}
	i.state = i.initial
	return i
}

func (i *integratorImpl) Update(dt float32, signals input.ControlSignals) MotionState {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.state = Integrate(i.state, i.tunables, dt, signals)
	return i.state
}

func (i *integratorImpl) State() MotionState {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.state
}

func (i *integratorImpl) SetState(s MotionState) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.state = s
}

func (i *integratorImpl) Reset() {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.state = i.initial
}

func (i *integratorImpl) Tunables() Tunables {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.tunables
}

func (i *integratorImpl) SetTunables(t Tunables) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.tunables = t
}
