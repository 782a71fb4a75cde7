package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/borport/borport_backend/internal/utils"
)

// ErrNoSession is returned when a request carries no session token at all.
var ErrNoSession = errors.New("no session token")

// Session is the identity resolved from a request.
// Role is the raw claim and is not guaranteed to be a known role.
type Session struct {
	UserID string
	Role   string
}

// SessionResolver extracts and validates the session token of a request.
type SessionResolver struct {
	secret     string
	cookieName string
}

func NewSessionResolver(jwtSecret, cookieName string) *SessionResolver {
	return &SessionResolver{secret: jwtSecret, cookieName: cookieName}
}

// CookieName is the name of the session cookie.
func (r *SessionResolver) CookieName() string {
	return r.cookieName
}

// Resolve reads the Authorization bearer header, falling back to the session cookie.
// Any failure, including a malformed header, is an error; callers treat it as no session.
func (r *SessionResolver) Resolve(req *http.Request) (*Session, error) {
	tokenString, err := r.extractToken(req)
	if err != nil {
		return nil, err
	}
	claims, err := utils.ParseAndValidateJWT(tokenString, r.secret)
	if err != nil {
		return nil, err
	}
	return &Session{UserID: claims.Subject, Role: claims.Role}, nil
}

func (r *SessionResolver) extractToken(req *http.Request) (string, error) {
	if authHeader := req.Header.Get("Authorization"); authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" || parts[1] == "" {
			return "", errors.New("authorization header format must be Bearer {token}")
		}
		return parts[1], nil
	}
	if r.cookieName != "" {
		if cookie, err := req.Cookie(r.cookieName); err == nil && cookie.Value != "" {
			return cookie.Value, nil
		}
	}
	return "", ErrNoSession
}
