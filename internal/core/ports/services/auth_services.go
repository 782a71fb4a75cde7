package services

import (
	"context"

	"github.com/borport/borport_backend/internal/dto"
)

// AuthSvc issues sessions.
type AuthSvc interface {
	// Login checks credentials and returns a signed session.
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)

	// LoginWithGoogle verifies a Google ID token and returns a signed session.
	LoginWithGoogle(ctx context.Context, idToken string) (*dto.LoginResponse, error)
}
