package monitoring

import "time"

// Timer measures one row evaluation
type Timer struct {
	start   time.Time
	metrics *Metrics
	fixture string
}

// NewTimer creates a new timer
func NewTimer(metrics *Metrics, fixture string) *Timer {
	return &Timer{
		start:   time.Now(),
		metrics: metrics,
		fixture: fixture,
	}
}

// Stop stops the timer and records the row
func (t *Timer) Stop(outcome string) time.Duration {
	duration := time.Since(t.start)
	if t.metrics != nil {
		t.metrics.RecordRow(t.fixture, outcome, duration)
	}
	return duration
}
