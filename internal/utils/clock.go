package utils

import (
	"time"

	"github.com/hashir13-debug/bites-tracking/internal/model"
)

// Clock supplies the current time and renders it for the dashboard
type Clock struct {
	Now      func() time.Time
	Location *time.Location
}

// NewClock returns a wall clock that displays times in loc (server local when nil)
func NewClock(loc *time.Location) *Clock {
	if loc == nil {
		loc = time.Local
	}
	return &Clock{Now: time.Now, Location: loc}
}

// UTC returns the current instant in UTC
func (c *Clock) UTC() time.Time {
	return c.Now().UTC()
}

// Display formats t as "hh:mm AM/PM" in the clock's location
func (c *Clock) Display(t time.Time) string {
	return t.In(c.Location).Format(model.ClockLayout)
}
