package dto

import "time"

// LoginResponse represents the response for a successful sign-in.
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      UserResponse `json:"user"`
	// RedirectURL is the home path of the user's role.
	RedirectURL string `json:"redirectUrl"`
}
