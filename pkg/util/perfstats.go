package util

import (
	"runtime"
	"time"

	log "github.com/sirupsen/logrus"
)

// PerfStats provides a snapshot of memory allocation at a given point in time.
type PerfStats struct {
	// Starting time
	startTime time.Time
	// Starting total memory allocation
	startMem uint64
	// Starting number of gc events
	startGc uint32
}

// PerfSnapshot records the difference between two points in time.
type PerfSnapshot struct {
	// Elapsed wall-clock time
	Elapsed time.Duration
	// Bytes allocated
	Allocated uint64
	// Number of gc events
	GcEvents uint32
}

// NewPerfStats creates a new snapshot of the current amount of memory allocated.
func NewPerfStats() *PerfStats {
	var m runtime.MemStats

	startTime := time.Now()

	runtime.ReadMemStats(&m)

	return &PerfStats{startTime, m.TotalAlloc, m.NumGC}
}

// Snapshot returns the difference between the state now and as it was when the
// PerfStats object was created.
func (p *PerfStats) Snapshot() PerfSnapshot {
	var m runtime.MemStats

	runtime.ReadMemStats(&m)

	return PerfSnapshot{time.Since(p.startTime), m.TotalAlloc - p.startMem, m.NumGC - p.startGc}
}

// Log logs the difference between the state now and as it was when the PerfStats object was created.
func (p *PerfStats) Log(prefix string) {
	s := p.Snapshot()
	alloc := s.Allocated / 1024 / 1024

	log.Debugf("%s took %0.3fs using %v Mb (%v GC events)", prefix, s.Elapsed.Seconds(), alloc, s.GcEvents)
}
