package app

import (
	"fmt"
	"sync/atomic"
	"time"
)

// Metrics times the event loop: how long key and mouse events take to
// handle and how long frames take to draw.
type Metrics struct {
	frameCount   atomic.Uint64
	frameTotalNs atomic.Int64
	frameMaxNs   atomic.Int64

	eventCount   atomic.Uint64
	eventTotalNs atomic.Int64
	eventMaxNs   atomic.Int64
	eventErrors  atomic.Uint64

	startTime time.Time
}

// NewMetrics creates a metrics tracker starting now.
func NewMetrics() *Metrics {
	return &Metrics{startTime: time.Now()}
}

// RecordFrame records the time taken to draw a frame.
func (m *Metrics) RecordFrame(d time.Duration) {
	m.frameCount.Add(1)
	m.frameTotalNs.Add(d.Nanoseconds())
	storeMax(&m.frameMaxNs, d.Nanoseconds())
}

// RecordEvent records the time taken to handle an event and whether the
// handler failed.
func (m *Metrics) RecordEvent(d time.Duration, failed bool) {
	m.eventCount.Add(1)
	m.eventTotalNs.Add(d.Nanoseconds())
	storeMax(&m.eventMaxNs, d.Nanoseconds())
	if failed {
		m.eventErrors.Add(1)
	}
}

func storeMax(v *atomic.Int64, ns int64) {
	for {
		old := v.Load()
		if ns <= old || v.CompareAndSwap(old, ns) {
			return
		}
	}
}

// MetricsSnapshot is a point-in-time view of Metrics.
type MetricsSnapshot struct {
	Uptime time.Duration

	Frames   uint64
	AvgFrame time.Duration
	MaxFrame time.Duration

	Events      uint64
	EventErrors uint64
	AvgEvent    time.Duration
	MaxEvent    time.Duration
}

// Snapshot returns the current values.
func (m *Metrics) Snapshot() MetricsSnapshot {
	s := MetricsSnapshot{
		Uptime:      time.Since(m.startTime),
		Frames:      m.frameCount.Load(),
		MaxFrame:    time.Duration(m.frameMaxNs.Load()),
		Events:      m.eventCount.Load(),
		EventErrors: m.eventErrors.Load(),
		MaxEvent:    time.Duration(m.eventMaxNs.Load()),
	}
	if s.Frames > 0 {
		s.AvgFrame = time.Duration(m.frameTotalNs.Load() / int64(s.Frames))
	}
	if s.Events > 0 {
		s.AvgEvent = time.Duration(m.eventTotalNs.Load() / int64(s.Events))
	}
	return s
}

// String summarizes the snapshot for the log.
func (s MetricsSnapshot) String() string {
	return fmt.Sprintf("%d frames (avg %s, max %s), %d events (avg %s, max %s, %d failed) in %s",
		s.Frames, s.AvgFrame, s.MaxFrame,
		s.Events, s.AvgEvent, s.MaxEvent, s.EventErrors,
		s.Uptime.Round(time.Second))
}

// Timer measures elapsed time.
type Timer struct {
	start time.Time
}

// StartTimer creates a timer starting now.
func StartTimer() Timer {
	return Timer{start: time.Now()}
}

// Elapsed returns the time since the timer started.
func (t Timer) Elapsed() time.Duration {
	return time.Since(t.start)
}
