package input

import "github.com/sirupsen/logrus"

// SamplerBuilderOption is a functional option for configuring a Sampler.
type SamplerBuilderOption func(*samplerImpl)

// WithBinding binds a single key code to a control, replacing any existing binding for that key.
// Binding a key to ControlNone removes it.
//
// Parameters:
//   - keyCode: the virtual key code
//   - c: the control to bind
//
// Returns:
//   - SamplerBuilderOption: functional option to set the binding
func WithBinding(keyCode uint32, c Control) SamplerBuilderOption {
	return func(s *samplerImpl) {
		if c == ControlNone {
			delete(s.bindings, keyCode)
			return
		}
		s.bindings[keyCode] = c
	}
}

// WithBindings replaces the whole binding table.
//
// Parameters:
//   - bindings: key code to control map (copied)
//
// Returns:
//   - SamplerBuilderOption: functional option to set the bindings
func WithBindings(bindings map[uint32]Control) SamplerBuilderOption {
	return func(s *samplerImpl) {
		s.bindings = make(map[uint32]Control, len(bindings))
		for k, c := range bindings {
			if c != ControlNone {
				s.bindings[k] = c
			}
		}
	}
}

// WithLogger sets the logger used for input tracing.
//
// Parameters:
//   - log: the logger
//
// Returns:
//   - SamplerBuilderOption: functional option to set the logger
func WithLogger(log *logrus.Logger) SamplerBuilderOption {
	return func(s *samplerImpl) {
		if log != nil {
			s.log = log
		}
	}
}
