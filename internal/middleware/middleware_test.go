package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/borport/borport_backend/internal/core/domain"
	"github.com/borport/borport_backend/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSecret = "test-secret"
	testCookie = "borport_session"
)

func generateTestToken(t *testing.T, userID, role string, expiry time.Duration) string {
	t.Helper()
	token, _, err := utils.GenerateJWT(userID, role, testSecret, expiry, "borport-test")
	require.NoError(t, err)
	return token
}

func newGateRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RouteGate(NewSessionResolver(testSecret, testCookie)))
	r.NoRoute(func(c *gin.Context) { c.String(http.StatusOK, "page") })
	return r
}

func TestRouteGate(t *testing.T) {
	router := newGateRouter()

	tests := []struct {
		name         string
		path         string
		token        string
		viaCookie    bool
		wantStatus   int
		wantLocation string
	}{
		{"root is public", "/", "", false, http.StatusOK, ""},
		{"static asset is public", "/img/hero.webp", "", false, http.StatusOK, ""},
		{"api is not gated", "/api/booking-history", "", false, http.StatusOK, ""},
		{"no session goes to login", "/booking-history", "", false, http.StatusTemporaryRedirect, "/login"},
		{"garbage token goes to login", "/booking-history", "not-a-jwt", false, http.StatusTemporaryRedirect, "/login"},
		{"expired token goes to login", "/booking-history", generateTestToken(t, "u1", "USER", -time.Minute), false, http.StatusTemporaryRedirect, "/login"},
		{"unknown role goes to login", "/booking-history", generateTestToken(t, "u1", "ROOT", time.Hour), false, http.StatusTemporaryRedirect, "/login"},
		{"user on history passes", "/booking-history", generateTestToken(t, "u1", "USER", time.Hour), false, http.StatusOK, ""},
		{"user via cookie passes", "/booking-history", generateTestToken(t, "u1", "USER", time.Hour), true, http.StatusOK, ""},
		{"user on admin goes home", "/admin/dashboard", generateTestToken(t, "u1", "USER", time.Hour), false, http.StatusTemporaryRedirect, "/"},
		{"guide on admin goes to dashboard", "/admin/withdrawals", generateTestToken(t, "g1", "GUIDE", time.Hour), false, http.StatusTemporaryRedirect, "/guide-dashboard"},
		{"admin on guide page goes to admin home", "/guide-dashboard", generateTestToken(t, "a1", "ADMIN", time.Hour), true, http.StatusTemporaryRedirect, "/admin/dashboard"},
		{"admin on admin page passes", "/admin/dashboard", generateTestToken(t, "a1", "ADMIN", time.Hour), false, http.StatusOK, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.token != "" {
				if tt.viaCookie {
					req.AddCookie(&http.Cookie{Name: testCookie, Value: tt.token})
				} else {
					req.Header.Set("Authorization", "Bearer "+tt.token)
				}
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantLocation, w.Header().Get("Location"))
		})
	}
}

func newAPIRouter(roles ...domain.Role) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	chain := []gin.HandlerFunc{AuthMiddleware(NewSessionResolver(testSecret, testCookie))}
	if len(roles) > 0 {
		chain = append(chain, RequireRole(roles...))
	}
	chain = append(chain, func(c *gin.Context) {
		userID, _ := GetUserIDFromContext(c)
		role, _ := GetRoleFromContext(c)
		c.JSON(http.StatusOK, gin.H{"userID": userID, "role": role})
	})
	r.GET("/api/thing", chain...)
	return r
}

func TestAuthMiddleware(t *testing.T) {
	router := newAPIRouter()

	t.Run("missing token", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/thing", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Authentication required")
	})

	t.Run("bad header format", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/thing", nil)
		req.Header.Set("Authorization", "Token abc")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("expired token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/thing", nil)
		req.Header.Set("Authorization", "Bearer "+generateTestToken(t, "u1", "USER", -time.Minute))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Token has expired")
	})

	t.Run("unknown role", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/thing", nil)
		req.Header.Set("Authorization", "Bearer "+generateTestToken(t, "u1", "ROOT", time.Hour))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("valid cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/thing", nil)
		req.AddCookie(&http.Cookie{Name: testCookie, Value: generateTestToken(t, "u1", "GUIDE", time.Hour)})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"userID":"u1","role":"GUIDE"}`, w.Body.String())
	})
}

func TestRequireRole(t *testing.T) {
	router := newAPIRouter(domain.RoleAdmin)

	req := httptest.NewRequest(http.MethodGet, "/api/thing", nil)
	req.Header.Set("Authorization", "Bearer "+generateTestToken(t, "u1", "USER", time.Hour))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/thing", nil)
	req.Header.Set("Authorization", "Bearer "+generateTestToken(t, "a1", "ADMIN", time.Hour))
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRateLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	lim, err := NewMemoryLimiter("2-M")
	require.NoError(t, err)

	r := gin.New()
	r.POST("/api/auth/login", RateLimit(lim), func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/auth/login", nil))
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestNewMemoryLimiter_InvalidRate(t *testing.T) {
	_, err := NewMemoryLimiter("lots")
	assert.Error(t, err)
}
