package animation

import "github.com/sirupsen/logrus"

// MixerBuilderOption is a functional option for configuring a Mixer.
type MixerBuilderOption func(*mixerImpl)

// RegistryBuilderOption is a functional option for configuring a Registry.
type RegistryBuilderOption func(*registryImpl)

// WithTimeScale scales every delta the mixer receives. Zero freezes the mixer clock.
//
// Parameters:
//   - timeScale: the global playback multiplier
//
// Returns:
//   - MixerBuilderOption: functional option to set the time-scale
func WithTimeScale(timeScale float32) MixerBuilderOption {
	return func(m *mixerImpl) {
		m.timeScale = timeScale
	}
}

// WithLogger sets the logger used for registration messages.
//
// Parameters:
//   - log: the logger
//
// Returns:
//   - RegistryBuilderOption: functional option to set the logger
func WithLogger(log *logrus.Logger) RegistryBuilderOption {
	return func(r *registryImpl) {
		if log != nil {
			r.log = log
		}
	}
}
