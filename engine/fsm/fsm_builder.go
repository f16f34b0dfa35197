package fsm

import "github.com/sirupsen/logrus"

// MachineBuilderOption is a functional option for configuring a Machine.
type MachineBuilderOption func(*machineImpl)

// WithTransitionHook adds a hook called after every completed transition, outside the machine lock.
//
// Parameters:
//   - hook: the callback
//
// Returns:
//   - MachineBuilderOption: functional option to add the hook
func WithTransitionHook(hook TransitionHook) MachineBuilderOption {
	return func(m *machineImpl) {
		if hook != nil {
			m.hooks = append(m.hooks, hook)
		}
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
	return func(m *machineImpl) {
		if log != nil {
			m.log = log
		}
	}
}
