package service

import "time"

// Option configures the clock of a service.
type Option func(*clock)

type clock struct {
	now func() time.Time
	loc *time.Location
}

func newClock(opts []Option) clock {
	c := clock{now: time.Now, loc: time.Local}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// WithClock overrides the wall clock.
func WithClock(now func() time.Time) Option {
	return func(c *clock) { c.now = now }
}

// WithLocation sets the time zone used for hour-of-day rules.
func WithLocation(loc *time.Location) Option {
	return func(c *clock) { c.loc = loc }
}
