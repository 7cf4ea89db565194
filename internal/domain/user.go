package domain

import "time"

// User owns exactly one wallet, created atomically with the user row.
type User struct {
	ID            string
	Email         string
	Phone         string
	PasswordHash  string
	FirstName     string
	LastName      string
	IsBlacklisted bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
