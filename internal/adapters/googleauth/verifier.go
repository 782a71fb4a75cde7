// Package googleauth validates Google sign-in ID tokens.
package googleauth

import (
	"context"
	"fmt"

	"github.com/borport/borport_backend/internal/apperrors"
	"github.com/borport/borport_backend/internal/core/domain"
	"github.com/borport/borport_backend/internal/core/ports/gateways"
	"google.golang.org/api/idtoken"
)

type validateFunc func(ctx context.Context, idToken string, audience string) (*idtoken.Payload, error)

// Verifier checks the signature, expiry and audience of Google ID tokens.
type Verifier struct {
	clientID string
	validate validateFunc
}

var _ gateways.GoogleTokenVerifier = (*Verifier)(nil)

func NewVerifier(clientID string) *Verifier {
	return &Verifier{clientID: clientID, validate: idtoken.Validate}
}

func (v *Verifier) Verify(ctx context.Context, idToken string) (*domain.GoogleUserInfo, error) {
	if v.clientID == "" {
		return nil, fmt.Errorf("%w: google sign-in is not configured", apperrors.ErrInternal)
	}
	payload, err := v.validate(ctx, idToken, v.clientID)
	if err != nil {
		return nil, fmt.Errorf("%w: google ID token validation failed: %v", apperrors.ErrUnauthorized, err)
	}
	return userInfoFromClaims(payload), nil
}

func userInfoFromClaims(p *idtoken.Payload) *domain.GoogleUserInfo {
	info := &domain.GoogleUserInfo{Subject: p.Subject}
	if email, ok := p.Claims["email"].(string); ok {
		info.Email = email
	}
	switch v := p.Claims["email_verified"].(type) {
	case bool:
		info.EmailVerified = v
	case string:
		info.EmailVerified = v == "true"
	}
	if name, ok := p.Claims["name"].(string); ok {
		info.Name = name
	}
	return info
}
