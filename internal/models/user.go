package models

import (
	"database/sql"
	"time"
)

// User is a row of the users table.
// Google accounts have no password hash; local accounts have no provider user id.
type User struct {
	UserID         string         `db:"user_id"`
	Email          string         `db:"email"`
	Name           string         `db:"name"`
	PasswordHash   sql.NullString `db:"password_hash"`
	AuthProvider   string         `db:"auth_provider"`
	ProviderUserID sql.NullString `db:"provider_user_id"`
	Role           string         `db:"role"`
	AuditFields
	DeletedAt *time.Time `db:"deleted_at"`
}
