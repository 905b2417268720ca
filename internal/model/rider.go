package model

import "time"

const (
	RiderStatusAvailable = "Available"
	RiderStatusOnRoute   = "On Route"

	// DeviceNotRegistered marks a rider whose device has not checked in yet.
	DeviceNotRegistered = "Not Registered"
	// TimeNotSet is the placeholder for r_time and a_time.
	TimeNotSet = "--"

	// ClockLayout renders report and assignment times as "hh:mm AM/PM".
	ClockLayout = "03:04 PM"
)

// Rider represents a delivery rider identified by a short numeric code
type Rider struct {
	ID          int       `json:"-"`
	Name        string    `json:"name"`
	Code        string    `json:"code"`
	Status      string    `json:"status"`
	RTime       string    `json:"r_time"` // last status report, local clock
	ATime       string    `json:"a_time"` // last on-route assignment, local clock
	DeviceInfo  string    `json:"device"`
	LastClickAt time.Time `json:"-"` // UTC time of the last accepted status update
	CreatedAt   time.Time `json:"-"`
}

// NewRider returns a rider with every field at its default. The last click is
// backdated so the first status update is never throttled.
func NewRider(name, code string, now time.Time) *Rider {
	now = now.UTC()
	return &Rider{
		Name:        name,
		Code:        code,
		Status:      RiderStatusAvailable,
		RTime:       TimeNotSet,
		ATime:       TimeNotSet,
		DeviceInfo:  DeviceNotRegistered,
		LastClickAt: now.Add(-10 * time.Minute),
		CreatedAt:   now,
	}
}

// NextUpdateAt is the earliest UTC instant at which a status update is accepted.
func (r *Rider) NextUpdateAt(cooldown time.Duration) time.Time {
	return r.LastClickAt.Add(cooldown)
}
