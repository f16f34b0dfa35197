package loader

import (
	"github.com/Carmen-Shannon/oxy-avatar/engine/animation"
	"github.com/sirupsen/logrus"
)

// LoaderBuilderOption is a functional option for configuring a Loader via NewLoader.
type LoaderBuilderOption func(*loader)

// WithLogger is an option builder that sets the logger load results are reported to.
//
// Parameters:
//   - log: the logger
//
// Returns:
//   - LoaderBuilderOption: a function that applies the logger option to a loader
func WithLogger(log *logrus.Logger) LoaderBuilderOption {
	return func(l *loader) {
		if log != nil {
			l.log = log
		}
	}
}

// WithClips is an option builder that pre-populates the cache, e.g. for clips built in code.
//
// Parameters:
//   - key: the cache key (path or name)
//   - clips: the clips to cache
//
// Returns:
//   - LoaderBuilderOption: a function that applies the clips option to a loader
func WithClips(key string, clips []animation.Clip) LoaderBuilderOption {
	return func(l *loader) {
		l.cache[key] = clips
	}
}
