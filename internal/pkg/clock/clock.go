package clock

import "time"

// Clock abstracts time lookup so that time-sensitive logic (coupon
// validity windows, usage timestamps) can be tested deterministically.
type Clock interface {
	Now() time.Time
}

// RealClock is the production implementation backed by the system clock.
type RealClock struct{}

// NewRealClock creates a new RealClock.
func NewRealClock() Clock {
	return &RealClock{}
}

// Now returns the current system time in UTC.
func (c *RealClock) Now() time.Time {
	return time.Now().UTC()
}

// MockClock is a test implementation with a settable current time.
type MockClock struct {
	current time.Time
}

// NewMockClock creates a MockClock frozen at the given time.
func NewMockClock(start time.Time) *MockClock {
	return &MockClock{current: start}
}

// Now returns the mock current time.
func (m *MockClock) Now() time.Time {
	return m.current
}

// Set replaces the mock current time.
func (m *MockClock) Set(t time.Time) {
	m.current = t
}

// Advance moves the mock clock forward by d.
func (m *MockClock) Advance(d time.Duration) {
	m.current = m.current.Add(d)
}
