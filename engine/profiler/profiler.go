package profiler

import (
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
)

// Profiler counts ticks and periodically logs the tick rate alongside heap and GC statistics.
// It is not safe for concurrent use; call Tick from the goroutine that drives the loop.
type Profiler struct {
	label    string
	interval time.Duration
	log      *logrus.Logger
	now      func() time.Time

	ticks          int
	lastTime       time.Time
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64

	last Stats
}

// Stats is one reporting window.
type Stats struct {
	TicksPerSecond float64
	HeapMB         float64
	AllocRateMB    float64
	SysMB          float64
	GCCount        uint32
	LastPauseUs    uint64
	MaxPauseUs     uint64
}

// NewProfiler creates a Profiler that reports once per second to the standard logrus logger.
//
// Parameters:
//   - options: functional options to configure the profiler
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(options ...ProfilerBuilderOption) *Profiler {
	p := &Profiler{
		label:    "tick",
		interval: time.Second,
		log:      logrus.StandardLogger(),
		now:      time.Now,
	}
	for _, opt := range options {
		opt(p)
	}
	p.lastTime = p.now()
	return p
}

// Tick records one tick and logs a report once the interval has elapsed.
//
// Returns:
//   - bool: true if a report was produced this tick
func (p *Profiler) Tick() bool {
	p.ticks++
	current := p.now()
	elapsed := current.Sub(p.lastTime)
	if elapsed < p.interval || elapsed <= 0 {
		return false
	}

	runtime.ReadMemStats(&p.memStats)
	seconds := elapsed.Seconds()
	s := Stats{
		TicksPerSecond: float64(p.ticks) / seconds,
		HeapMB:         float64(p.memStats.Alloc) / 1024 / 1024,
		SysMB:          float64(p.memStats.Sys) / 1024 / 1024,
		AllocRateMB:    float64(p.memStats.TotalAlloc-p.lastTotalAlloc) / 1024 / 1024 / seconds,
		GCCount:        p.memStats.NumGC,
	}
	if s.GCCount > 0 {
		// PauseNs is a ring of the last 256 pauses.
		s.LastPauseUs = p.memStats.PauseNs[(s.GCCount-1)%256] / 1000
		start := p.lastGCCount
		if s.GCCount-start > 256 {
			start = s.GCCount - 256
		}
		for i := start; i < s.GCCount; i++ {
			if pause := p.memStats.PauseNs[i%256] / 1000; pause > s.MaxPauseUs {
				s.MaxPauseUs = pause
			}
		}
	}

	p.log.WithFields(logrus.Fields{
		"rate":       s.TicksPerSecond,
		"heap_mb":    s.HeapMB,
		"alloc_mb_s": s.AllocRateMB,
		"gc":         s.GCCount,
		"gc_last_us": s.LastPauseUs,
		"gc_max_us":  s.MaxPauseUs,
		"sys_mb":     s.SysMB,
	}).Infof("%s profile", p.label)

	p.ticks = 0
	p.lastTime = current
	p.lastGCCount = s.GCCount
	p.lastTotalAlloc = p.memStats.TotalAlloc
	p.last = s
	return true
}

// Last returns the most recent report, or the zero value before the first one.
func (p *Profiler) Last() Stats {
	return p.last
}
