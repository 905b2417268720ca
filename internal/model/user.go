package model

import "time"

const (
	RoleSuperadmin = "superadmin"
	RoleAdmin      = "admin"

	// DeviceNoLogin is stored until the user logs in for the first time.
	DeviceNoLogin = "No Login Yet"
)

// User is a dashboard account (superadmin or admin)
type User struct {
	ID           int       `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Do not expose password hash in JSON responses
	Role         string    `json:"role"`
	LastDevice   string    `json:"device"`
	CreatedAt    time.Time `json:"created_at"`
}

// AdminSummary is the row shape returned by the admin listing
type AdminSummary struct {
	ID     int    `json:"id"`
	Email  string `json:"email"`
	Device string `json:"device"`
}

// Summary strips a user down to the fields shown on the admin dashboard.
func (u *User) Summary() AdminSummary {
	return AdminSummary{ID: u.ID, Email: u.Email, Device: u.LastDevice}
}
