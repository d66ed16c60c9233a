package domain

import "time"

// Role represents a user's role in the marketplace.
type Role string

const (
	RoleUser  Role = "user"
	RoleHost  Role = "host"
	RoleAdmin Role = "admin"
)

// User represents a registered account. Renters carry RoleUser; hosts
// list cars under RoleHost.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
}
