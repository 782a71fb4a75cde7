package paypal

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/borport/borport_backend/internal/apperrors"
	"github.com/borport/borport_backend/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const completedOrder = `{
	"id": "ORDER-1",
	"status": "COMPLETED",
	"purchase_units": [{"payments": {"captures": [
		{"id": "CAP-1", "status": "COMPLETED", "amount": {"currency_code": "USD", "value": "51.00"}}
	]}}]
}`

type fakePayPal struct {
	t            *testing.T
	captureCode  int
	captureBody  string
	orderBody    string
	tokenCalls   atomic.Int32
	captureCalls atomic.Int32
	orderCalls   atomic.Int32
	requestIDs   []string
}

func (f *fakePayPal) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		f.tokenCalls.Add(1)
		user, pass, ok := r.BasicAuth()
		assert.True(f.t, ok)
		assert.Equal(f.t, "client", user)
		assert.Equal(f.t, "secret", pass)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"access_token": "tok", "token_type": "Bearer", "expires_in": 3600})
	})
	mux.HandleFunc("/v2/checkout/orders/ORDER-1/capture", func(w http.ResponseWriter, r *http.Request) {
		f.captureCalls.Add(1)
		assert.Equal(f.t, http.MethodPost, r.Method)
		assert.Equal(f.t, "Bearer tok", r.Header.Get("Authorization"))
		f.requestIDs = append(f.requestIDs, r.Header.Get("PayPal-Request-Id"))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(f.captureCode)
		_, _ = w.Write([]byte(f.captureBody))
	})
	mux.HandleFunc("/v2/checkout/orders/ORDER-1", func(w http.ResponseWriter, r *http.Request) {
		f.orderCalls.Add(1)
		assert.Equal(f.t, http.MethodGet, r.Method)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(f.orderBody))
	})
	return mux
}

func newTestClient(t *testing.T, f *fakePayPal) *Client {
	srv := httptest.NewServer(f.handler())
	t.Cleanup(srv.Close)
	return NewClient(Config{BaseURL: srv.URL + "/", ClientID: "client", ClientSecret: "secret", HTTPClient: srv.Client()}, nil)
}

func TestCaptureOrder_Completed(t *testing.T) {
	f := &fakePayPal{t: t, captureCode: http.StatusCreated, captureBody: completedOrder}
	c := newTestClient(t, f)

	res, err := c.CaptureOrder(t.Context(), "ORDER-1")

	require.NoError(t, err)
	assert.True(t, res.Completed())
	assert.Equal(t, "ORDER-1", res.OrderID)
	assert.Equal(t, "CAP-1", res.CaptureID)
	assert.Equal(t, "USD", res.Currency)
	assert.True(t, decimal.RequireFromString("51.00").Equal(res.Amount))
	assert.Equal(t, []string{"capture-ORDER-1"}, f.requestIDs)
}

func TestCaptureOrder_TokenIsReused(t *testing.T) {
	f := &fakePayPal{t: t, captureCode: http.StatusCreated, captureBody: completedOrder}
	c := newTestClient(t, f)

	_, err := c.CaptureOrder(t.Context(), "ORDER-1")
	require.NoError(t, err)
	_, err = c.CaptureOrder(t.Context(), "ORDER-1")
	require.NoError(t, err)

	assert.Equal(t, int32(1), f.tokenCalls.Load())
	assert.Equal(t, int32(2), f.captureCalls.Load())
}

func TestCaptureOrder_AlreadyCapturedFetchesOrder(t *testing.T) {
	f := &fakePayPal{
		t:           t,
		captureCode: http.StatusUnprocessableEntity,
		captureBody: `{"name":"UNPROCESSABLE_ENTITY","details":[{"issue":"ORDER_ALREADY_CAPTURED"}]}`,
		orderBody:   completedOrder,
	}
	c := newTestClient(t, f)

	res, err := c.CaptureOrder(t.Context(), "ORDER-1")

	require.NoError(t, err)
	assert.Equal(t, domain.CaptureStatusCompleted, res.Status)
	assert.Equal(t, "CAP-1", res.CaptureID)
	assert.Equal(t, int32(1), f.orderCalls.Load())
}

func TestCaptureOrder_Declined(t *testing.T) {
	f := &fakePayPal{
		t:           t,
		captureCode: http.StatusUnprocessableEntity,
		captureBody: `{"name":"UNPROCESSABLE_ENTITY","details":[{"issue":"INSTRUMENT_DECLINED"}]}`,
	}
	c := newTestClient(t, f)

	res, err := c.CaptureOrder(t.Context(), "ORDER-1")

	require.NoError(t, err)
	assert.False(t, res.Completed())
	assert.Equal(t, "INSTRUMENT_DECLINED", res.Status)
	assert.Equal(t, int32(0), f.orderCalls.Load())
}

func TestCaptureOrder_PendingCaptureIsNotCompleted(t *testing.T) {
	body := `{"id":"ORDER-1","status":"COMPLETED","purchase_units":[{"payments":{"captures":[
		{"id":"CAP-1","status":"PENDING","amount":{"currency_code":"USD","value":"51.00"}}]}}]}`
	f := &fakePayPal{t: t, captureCode: http.StatusCreated, captureBody: body}
	c := newTestClient(t, f)

	res, err := c.CaptureOrder(t.Context(), "ORDER-1")

	require.NoError(t, err)
	assert.Equal(t, "PENDING", res.Status)
	assert.False(t, res.Completed())
}

func TestCaptureOrder_ServerError(t *testing.T) {
	f := &fakePayPal{t: t, captureCode: http.StatusInternalServerError, captureBody: `{}`}
	c := newTestClient(t, f)

	_, err := c.CaptureOrder(t.Context(), "ORDER-1")

	assert.ErrorIs(t, err, apperrors.ErrUpstream)
}

func TestCaptureOrder_AuthFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"invalid_client"}`))
	}))
	t.Cleanup(srv.Close)
	c := NewClient(Config{BaseURL: srv.URL, ClientID: "x", ClientSecret: "y", HTTPClient: srv.Client()}, nil)

	_, err := c.CaptureOrder(t.Context(), "ORDER-1")

	assert.ErrorIs(t, err, apperrors.ErrUpstream)
}
