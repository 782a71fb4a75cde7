package services

import (
	"context"
	"fmt"

	"github.com/borport/borport_backend/internal/apperrors"
	"github.com/borport/borport_backend/internal/authz"
	"github.com/borport/borport_backend/internal/core/domain"
	"github.com/borport/borport_backend/internal/core/ports/gateways"
	portssvc "github.com/borport/borport_backend/internal/core/ports/services"
	"github.com/borport/borport_backend/internal/dto"
	"github.com/borport/borport_backend/internal/platform/config"
	"github.com/borport/borport_backend/internal/utils"
)

// authService issues session tokens for password and Google sign-ins.
type authService struct {
	BaseService
	cfg          *config.Config
	userService  portssvc.UserSvcFacade
	googleVerify gateways.GoogleTokenVerifier
}

// NewAuthService creates a new auth service. googleVerify may be nil when Google sign-in is not configured.
func NewAuthService(cfg *config.Config, userService portssvc.UserSvcFacade, googleVerify gateways.GoogleTokenVerifier) portssvc.AuthSvc {
	return &authService{cfg: cfg, userService: userService, googleVerify: googleVerify}
}

var _ portssvc.AuthSvc = (*authService)(nil)

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.userService.AuthenticateUser(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}
	return s.issueSession(user)
}

func (s *authService) LoginWithGoogle(ctx context.Context, idToken string) (*dto.LoginResponse, error) {
	if s.googleVerify == nil {
		return nil, fmt.Errorf("%w: google sign-in is not configured", apperrors.ErrUnauthorized)
	}
	info, err := s.googleVerify.Verify(ctx, idToken)
	if err != nil {
		s.LogError(ctx, err, "Google ID token rejected")
		return nil, fmt.Errorf("%w: invalid google token", apperrors.ErrUnauthorized)
	}
	user, err := s.userService.FindOrCreateGoogleUser(ctx, *info)
	if err != nil {
		return nil, err
	}
	return s.issueSession(user)
}

func (s *authService) issueSession(user *domain.User) (*dto.LoginResponse, error) {
	token, expiresAt, err := utils.GenerateJWT(user.UserID, string(user.Role), s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		return nil, fmt.Errorf("failed to generate session token: %w", err)
	}
	return &dto.LoginResponse{
		Token:       token,
		ExpiresAt:   expiresAt,
		User:        dto.ToUserResponse(user),
		RedirectURL: authz.HomeFor(user.Role),
	}, nil
}
