package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/borport/borport_backend/internal/apperrors"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantError  string
	}{
		{"validation", fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation), http.StatusBadRequest, "amount must be positive"},
		{"wrapped not found", fmt.Errorf("failed to load booking: %w", fmt.Errorf("%w: booking b1", apperrors.ErrNotFound)), http.StatusNotFound, "booking b1"},
		{"bare sentinel", apperrors.ErrForbidden, http.StatusForbidden, "forbidden"},
		{"duplicate", fmt.Errorf("%w: already reviewed", apperrors.ErrDuplicate), http.StatusConflict, "already reviewed"},
		{"conflict", fmt.Errorf("%w: date unavailable", apperrors.ErrConflict), http.StatusConflict, "date unavailable"},
		{"unauthorized", fmt.Errorf("%w: invalid credentials", apperrors.ErrUnauthorized), http.StatusUnauthorized, "invalid credentials"},
		{"insufficient balance", fmt.Errorf("debit: %w", apperrors.ErrInsufficientBalance), http.StatusBadRequest, "Insufficient balance"},
		{"upstream hides detail", fmt.Errorf("%w: paypal returned 500", apperrors.ErrUpstream), http.StatusInternalServerError, "Something failed"},
		{"unknown", assert.AnError, http.StatusInternalServerError, "Something failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			respondError(c, tt.err, "Something failed")

			assert.Equal(t, tt.wantStatus, w.Code)
			var body ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.wantError, body.Error)
		})
	}
}

func TestSPAHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	dir := t.TempDir()
	require.NoError(t, writeFile(dir, "index.html", "<html>app</html>"))
	require.NoError(t, writeFile(dir, "app.js", "console.log(1)"))

	r := gin.New()
	r.NoRoute(spaHandler(dir))

	tests := []struct {
		name       string
		path       string
		wantStatus int
		wantBody   string
	}{
		{"asset", "/app.js", http.StatusOK, "console.log(1)"},
		{"client route falls back to index", "/guide-posts/abc", http.StatusOK, "<html>app</html>"},
		{"unknown api path", "/api/nope", http.StatusNotFound, `{"error":"Not found"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))
			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantBody, w.Body.String())
		})
	}
}
