package domain

// Role is the platform-wide role carried in the session token.
type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleGuide Role = "GUIDE"
	RoleUser  Role = "USER"
)

// ParseRole returns the Role for s and whether it is one of the known roles.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleAdmin, RoleGuide, RoleUser:
		return Role(s), true
	default:
		return "", false
	}
}
