package crowd

import "github.com/sirupsen/logrus"

// CrowdBuilderOption is a functional option for configuring a Crowd.
type CrowdBuilderOption func(*crowdImpl)

// WithWorkers sets how many controllers may update in parallel.
//
// Parameters:
//   - n: the worker count; values below 1 are ignored
//
// Returns:
//   - CrowdBuilderOption: functional option to set the worker count
func WithWorkers(n int) CrowdBuilderOption {
	return func(c *crowdImpl) {
		if n > 0 {
			c.workers = n
		}
	}
}

// WithQueueSize sets the task queue capacity of the pool.
func WithQueueSize(n int) CrowdBuilderOption {
	return func(c *crowdImpl) {
		if n > 0 {
			c.queue = n
		}
	}
}

// WithPanicReporting toggles sending recovered panics to Sentry.
func WithPanicReporting(enabled bool) CrowdBuilderOption {
	return func(c *crowdImpl) {
		c.report = enabled
	}
}

func WithLogger(log *logrus.Logger) CrowdBuilderOption {
	return func(c *crowdImpl) {
		if log != nil {
			c.log = log
		}
	}
}
