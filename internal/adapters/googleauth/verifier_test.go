package googleauth

import (
	"context"
	"errors"
	"testing"

	"github.com/borport/borport_backend/internal/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/idtoken"
)

func TestVerify(t *testing.T) {
	v := NewVerifier("client-id")
	v.validate = func(_ context.Context, token, audience string) (*idtoken.Payload, error) {
		assert.Equal(t, "client-id", audience)
		if token != "good" {
			return nil, errors.New("idtoken: token expired")
		}
		return &idtoken.Payload{Subject: "sub-1", Claims: map[string]any{
			"email": "a@example.com", "email_verified": true, "name": "Ana",
		}}, nil
	}

	info, err := v.Verify(context.Background(), "good")
	require.NoError(t, err)
	assert.Equal(t, "sub-1", info.Subject)
	assert.Equal(t, "a@example.com", info.Email)
	assert.True(t, info.EmailVerified)
	assert.Equal(t, "Ana", info.Name)

	_, err = v.Verify(context.Background(), "bad")
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestVerify_NotConfigured(t *testing.T) {
	_, err := NewVerifier("").Verify(context.Background(), "any")
	assert.ErrorIs(t, err, apperrors.ErrInternal)
}

func TestUserInfoFromClaims_StringVerified(t *testing.T) {
	info := userInfoFromClaims(&idtoken.Payload{Subject: "s", Claims: map[string]any{"email_verified": "true"}})
	assert.True(t, info.EmailVerified)
}
