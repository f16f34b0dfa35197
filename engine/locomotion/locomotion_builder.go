package locomotion

import (
	"github.com/Carmen-Shannon/oxy-avatar/engine/fsm"
	"github.com/sirupsen/logrus"
)

// machineConfig collects options before the underlying fsm.Machine is built.
type machineConfig struct {
	blend      float32
	fsmOptions []fsm.MachineBuilderOption
}

// MachineBuilderOption is a functional option for configuring a locomotion machine.
type MachineBuilderOption func(*machineConfig)

// WithBlendDuration sets the cross-fade window used on every transition. Negative values are ignored.
//
// Parameters:
//   - seconds: the blend window
//
// Returns:
//   - MachineBuilderOption: functional option to set the blend window
func WithBlendDuration(seconds float32) MachineBuilderOption {
	return func(c *machineConfig) {
		if seconds >= 0 {
			c.blend = seconds
		}
	}
}

// WithTransitionHook adds a hook called after every completed transition.
//
// Parameters:
//   - hook: the callback
//
// Returns:
//   - MachineBuilderOption: functional option to add the hook
func WithTransitionHook(hook fsm.TransitionHook) MachineBuilderOption {
	return func(c *machineConfig) {
		c.fsmOptions = append(c.fsmOptions, fsm.WithTransitionHook(hook))
	}
}

// WithLogger sets the logger transitions are reported to.
//
// Parameters:
//   - log: the logger
//
// Returns:
//   - MachineBuilderOption: functional option to set the logger
func WithLogger(log *logrus.Logger) MachineBuilderOption {
	return func(c *machineConfig) {
		c.fsmOptions = append(c.fsmOptions, fsm.WithLogger(log))
	}
}
