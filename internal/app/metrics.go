package app

import (
	"sync/atomic"
	"time"
)

// Metrics tracks highlight and render activity.
type Metrics struct {
	// Highlight passes
	passCount     atomic.Uint64
	passTotalNs   atomic.Int64
	passMinNs     atomic.Int64
	passMaxNs     atomic.Int64
	passFailures  atomic.Uint64
	themeReloads  atomic.Uint64
	reloadFailure atomic.Uint64

	// Rendering
	renderCount   atomic.Uint64
	renderTotalNs atomic.Int64
	drawCalls     atomic.Uint64

	// Event processing
	eventCount atomic.Uint64

	startTime time.Time
}

// MetricsSnapshot is a point-in-time copy of Metrics.
type MetricsSnapshot struct {
	Passes        uint64
	PassAvg       time.Duration
	PassMin       time.Duration
	PassMax       time.Duration
	PassFailures  uint64
	ThemeReloads  uint64
	ReloadFailure uint64
	Renders       uint64
	RenderAvg     time.Duration
	DrawCalls     uint64
	Events        uint64
	Uptime        time.Duration
}

// NewMetrics creates a new metrics tracker.
func NewMetrics() *Metrics {
	m := &Metrics{startTime: time.Now()}
	// Initialize min to max int64 so the first pass is smaller
	m.passMinNs.Store(1<<63 - 1)
	return m
}

// RecordPass records one highlight pass and the number of highlighters
// that failed in it.
func (m *Metrics) RecordPass(d time.Duration, failures int) {
	ns := d.Nanoseconds()
	m.passCount.Add(1)
	m.passTotalNs.Add(ns)
	m.passFailures.Add(uint64(failures))

	for {
		old := m.passMinNs.Load()
		if ns >= old || m.passMinNs.CompareAndSwap(old, ns) {
			break
		}
	}
	for {
		old := m.passMaxNs.Load()
		if ns <= old || m.passMaxNs.CompareAndSwap(old, ns) {
			break
		}
	}
}

// RecordThemeReload records a theme reload from disk.
func (m *Metrics) RecordThemeReload(ok bool) {
	if ok {
		m.themeReloads.Add(1)
	} else {
		m.reloadFailure.Add(1)
	}
}

// RecordRender records a frame and the draw calls it made.
func (m *Metrics) RecordRender(d time.Duration, calls int) {
	m.renderCount.Add(1)
	m.renderTotalNs.Add(d.Nanoseconds())
	m.drawCalls.Add(uint64(calls))
}

// RecordEvent records a processed backend event.
func (m *Metrics) RecordEvent() {
	m.eventCount.Add(1)
}

// Snapshot returns a snapshot of current metrics.
func (m *Metrics) Snapshot() MetricsSnapshot {
	s := MetricsSnapshot{
		Passes:        m.passCount.Load(),
		PassMax:       time.Duration(m.passMaxNs.Load()),
		PassFailures:  m.passFailures.Load(),
		ThemeReloads:  m.themeReloads.Load(),
		ReloadFailure: m.reloadFailure.Load(),
		Renders:       m.renderCount.Load(),
		DrawCalls:     m.drawCalls.Load(),
		Events:        m.eventCount.Load(),
		Uptime:        time.Since(m.startTime),
	}
	if s.Passes > 0 {
		s.PassAvg = time.Duration(m.passTotalNs.Load() / int64(s.Passes))
		s.PassMin = time.Duration(m.passMinNs.Load())
	}
	if s.Renders > 0 {
		s.RenderAvg = time.Duration(m.renderTotalNs.Load() / int64(s.Renders))
	}
	return s
}
