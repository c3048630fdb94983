// Package clock abstracts the time source so jobs and services can be
// tested against a fixed date instead of the ambient wall clock.
package clock

import "time"

type Clock interface {
	Now() time.Time
}

// System reads the real wall clock.
type System struct{}

func (System) Now() time.Time { return time.Now() }

// Fixed always returns the same instant. Test helper.
type Fixed struct {
	T time.Time
}

func (f Fixed) Now() time.Time { return f.T }
