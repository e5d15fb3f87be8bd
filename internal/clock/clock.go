// Package clock abstracts the current time so recency decisions are testable.
package clock

import "time"

// Clock reports the current instant.
type Clock interface {
	Now() time.Time
}

// System is the production clock.
type System struct{}

func (System) Now() time.Time {
	return time.Now()
}

// Fixed always reports the same instant.
type Fixed struct {
	Instant time.Time
}

func (clock Fixed) Now() time.Time {
	return clock.Instant
}
