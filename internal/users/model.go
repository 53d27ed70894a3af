package users

import "time"

// Roles a user can hold. Role gates read access to other users' resumes.
const (
	RoleCandidate = "CANDIDATE"
	RoleRecruiter = "RECRUITER"
	RoleAdmin     = "ADMIN"
)

// ValidRole reports whether the role is one of the known roles.
func ValidRole(role string) bool {
	switch role {
	case RoleCandidate, RoleRecruiter, RoleAdmin:
		return true
	}
	return false
}

// IsStaff reports whether the role may read arbitrary users' records.
func IsStaff(role string) bool {
	return role == RoleAdmin || role == RoleRecruiter
}

// User is an account holder.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	PhotoURL     string
	Role         string
	CreatedAt    time.Time
}
