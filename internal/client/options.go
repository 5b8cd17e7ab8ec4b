package client

import "time"

type Option func(*Controller)

// WithTimeZone sets the zone dates are displayed in. Defaults to time.Local.
func WithTimeZone(loc *time.Location) Option {
	return func(c *Controller) {
		if loc != nil {
			c.tz = loc
		}
	}
}

// WithOnChange registers a callback that receives a snapshot after every state change.
func WithOnChange(fn func(State)) Option {
	return func(c *Controller) {
		c.onChange = fn
	}
}

// WithMaxSpanDays overrides the widest history range the controller will request.
func WithMaxSpanDays(days int) Option {
	return func(c *Controller) {
		if days > 0 {
			c.maxDays = days
		}
	}
}
