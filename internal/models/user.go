package models

import "time"

// Role is a flat permission group. There is no hierarchy; routes declare
// the exact set of roles they accept.
type Role string

const (
	RoleCitizen Role = "Citizen"
	RolePolice  Role = "Police"
	RoleAdmin   Role = "Admin"
)

// ValidRole reports whether r is one of the known roles.
func ValidRole(r Role) bool {
	switch r {
	case RoleCitizen, RolePolice, RoleAdmin:
		return true
	}
	return false
}

// User represents a registered account in the system.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never expose this to the client
	Role         Role      `json:"role"`
	Phone        string    `json:"phone,omitempty"`
	RewardPoints int       `json:"rewardPoints"`
	CreatedAt    time.Time `json:"createdAt"`
}
