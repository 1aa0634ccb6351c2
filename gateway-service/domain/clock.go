package domain

import "time"

// Clock supplies the current instant, injected so validation is testable
type Clock interface {
	Now() time.Time
}

// UTCClock is the production Clock
type UTCClock struct{}

// NewClock creates a new UTCClock
func NewClock() *UTCClock {
	return &UTCClock{}
}

// Now returns the current UTC time
func (c *UTCClock) Now() time.Time {
	return time.Now().UTC()
}
