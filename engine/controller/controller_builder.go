package controller

import (
	"github.com/Carmen-Shannon/oxy-avatar/common"
	"github.com/Carmen-Shannon/oxy-avatar/engine/animation"
	"github.com/Carmen-Shannon/oxy-avatar/engine/fsm"
	"github.com/Carmen-Shannon/oxy-avatar/engine/input"
	"github.com/Carmen-Shannon/oxy-avatar/engine/motion"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/sirupsen/logrus"
)

// ControllerBuilderOption is a functional option for configuring a Controller.
type ControllerBuilderOption func(*controllerImpl)

// WithName sets the name used in log fields.
func WithName(name string) ControllerBuilderOption {
	return func(c *controllerImpl) {
		c.name = common.Coalesce(name, c.name)
	}
}

// WithClipNames sets which model clips play in the idle and walking states.
// Empty names keep the defaults.
//
// Parameters:
//   - idle: the clip name for the idle state
//   - walking: the clip name for the walking state
//
// Returns:
//   - ControllerBuilderOption: functional option to set the clip names
func WithClipNames(idle, walking string) ControllerBuilderOption {
	return func(c *controllerImpl) {
		c.idleClip = common.Coalesce(idle, c.idleClip)
		c.walkingClip = common.Coalesce(walking, c.walkingClip)
	}
}

// WithBlendDuration sets the cross-fade window used on every state transition.
func WithBlendDuration(seconds float32) ControllerBuilderOption {
	return func(c *controllerImpl) {
		c.blend = seconds
	}
}

// WithTunables sets the motion coefficients.
func WithTunables(t motion.Tunables) ControllerBuilderOption {
	return func(c *controllerImpl) {
		c.tunables = t
	}
}

// WithStartTransform places the character before the first Update.
//
// Parameters:
//   - position: the starting position
//   - orientation: the starting orientation
//
// Returns:
//   - ControllerBuilderOption: functional option to set the start transform
func WithStartTransform(position mgl32.Vec3, orientation mgl32.Quat) ControllerBuilderOption {
	return func(c *controllerImpl) {
		c.motionOpts = append(c.motionOpts, motion.WithPosition(position), motion.WithOrientation(orientation))
	}
}

// WithSampler shares an existing input sampler instead of creating one.
func WithSampler(s input.Sampler) ControllerBuilderOption {
	return func(c *controllerImpl) {
		c.sampler = s
	}
}

// WithMixer uses an existing mixer instead of creating one.
func WithMixer(m animation.Mixer) ControllerBuilderOption {
	return func(c *controllerImpl) {
		c.mixer = m
	}
}

// WithSink registers a transform sink at construction.
func WithSink(sink TransformSink) ControllerBuilderOption {
	return func(c *controllerImpl) {
		if sink != nil {
			c.sinks = append(c.sinks, sink)
		}
	}
}

// WithTransitionHook adds a callback for every locomotion state change.
func WithTransitionHook(hook fsm.TransitionHook) ControllerBuilderOption {
	return func(c *controllerImpl) {
		if hook != nil {
			c.hooks = append(c.hooks, hook)
		}
	}
}

// WithLogger sets the logger shared by the controller and its components.
func WithLogger(log *logrus.Logger) ControllerBuilderOption {
	return func(c *controllerImpl) {
		if log != nil {
			c.log = log
		}
	}
}
