// Package paypal captures PayPal Orders v2 payments.
package paypal

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/borport/borport_backend/internal/apperrors"
	"github.com/borport/borport_backend/internal/core/domain"
	"github.com/borport/borport_backend/internal/core/ports/gateways"
	"github.com/shopspring/decimal"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

const (
	tokenPath     = "/v1/oauth2/token"
	ordersPath    = "/v2/checkout/orders/"
	issueCaptured = "ORDER_ALREADY_CAPTURED"

	defaultTimeout = 20 * time.Second
)

// Config configures a Client.
type Config struct {
	BaseURL      string
	ClientID     string
	ClientSecret string

	// HTTPClient is used for both token and API calls. Defaults to a client with a 20s timeout.
	HTTPClient *http.Client
}

// Client is a PayPal Orders API client authenticated with client credentials.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

var _ gateways.PaymentCapturer = (*Client)(nil)

// NewClient builds a client whose requests carry a cached, auto-refreshed access token.
func NewClient(cfg Config, logger *slog.Logger) *Client {
	base := cfg.HTTPClient
	if base == nil {
		base = &http.Client{Timeout: defaultTimeout}
	}
	if logger == nil {
		logger = slog.Default()
	}
	baseURL := strings.TrimRight(cfg.BaseURL, "/")

	cc := clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     baseURL + tokenPath,
		AuthStyle:    oauth2.AuthStyleInHeader,
	}
	tokenCtx := context.WithValue(context.Background(), oauth2.HTTPClient, base)
	httpClient := cc.Client(tokenCtx)
	httpClient.Timeout = base.Timeout

	return &Client{baseURL: baseURL, http: httpClient, logger: logger}
}

type money struct {
	CurrencyCode string `json:"currency_code"`
	Value        string `json:"value"`
}

type capture struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Amount money  `json:"amount"`
}

type orderResponse struct {
	ID            string `json:"id"`
	Status        string `json:"status"`
	PurchaseUnits []struct {
		Payments struct {
			Captures []capture `json:"captures"`
		} `json:"payments"`
	} `json:"purchase_units"`
}

type errorResponse struct {
	Name    string `json:"name"`
	Message string `json:"message"`
	Details []struct {
		Issue       string `json:"issue"`
		Description string `json:"description"`
	} `json:"details"`
}

func (e errorResponse) issue() string {
	if len(e.Details) > 0 && e.Details[0].Issue != "" {
		return e.Details[0].Issue
	}
	return e.Name
}

// CaptureOrder captures orderID. Declines come back as a result with a non-COMPLETED status;
// transport, auth and 5xx failures come back as errors wrapping apperrors.ErrUpstream.
func (c *Client) CaptureOrder(ctx context.Context, orderID string) (*domain.CaptureResult, error) {
	logger := c.logger.With(slog.String("order_id", orderID))
	endpoint := c.baseURL + ordersPath + url.PathEscape(orderID) + "/capture"

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBufferString("{}"))
	if err != nil {
		return nil, fmt.Errorf("failed to build capture request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Prefer", "return=representation")
	req.Header.Set("PayPal-Request-Id", "capture-"+orderID)

	status, body, err := c.do(req)
	if err != nil {
		return nil, err
	}

	switch {
	case status >= 200 && status < 300:
		return parseOrder(orderID, body)
	case status == http.StatusUnprocessableEntity || status == http.StatusNotFound || status == http.StatusBadRequest:
		var perr errorResponse
		_ = json.Unmarshal(body, &perr)
		issue := perr.issue()
		if issue == issueCaptured {
			logger.Info("Order already captured, fetching its current state")
			return c.GetOrder(ctx, orderID)
		}
		logger.Warn("PayPal declined capture", slog.Int("status", status), slog.String("issue", issue))
		if issue == "" {
			issue = "DECLINED"
		}
		return &domain.CaptureResult{OrderID: orderID, Status: issue, Amount: decimal.Zero}, nil
	default:
		logger.Error("PayPal capture failed", slog.Int("status", status), slog.String("body", truncate(body)))
		return nil, fmt.Errorf("%w: paypal capture returned HTTP %d", apperrors.ErrUpstream, status)
	}
}

// GetOrder fetches the current state of orderID.
func (c *Client) GetOrder(ctx context.Context, orderID string) (*domain.CaptureResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+ordersPath+url.PathEscape(orderID), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build order request: %w", err)
	}
	status, body, err := c.do(req)
	if err != nil {
		return nil, err
	}
	if status < 200 || status >= 300 {
		return nil, fmt.Errorf("%w: paypal order lookup returned HTTP %d", apperrors.ErrUpstream, status)
	}
	return parseOrder(orderID, body)
}

func (c *Client) do(req *http.Request) (int, []byte, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		var rerr *oauth2.RetrieveError
		if errors.As(err, &rerr) {
			return 0, nil, fmt.Errorf("%w: paypal authentication failed: %v", apperrors.ErrUpstream, err)
		}
		return 0, nil, fmt.Errorf("%w: paypal request failed: %v", apperrors.ErrUpstream, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return 0, nil, fmt.Errorf("%w: failed to read paypal response: %v", apperrors.ErrUpstream, err)
	}
	return resp.StatusCode, body, nil
}

func parseOrder(orderID string, body []byte) (*domain.CaptureResult, error) {
	var order orderResponse
	if err := json.Unmarshal(body, &order); err != nil {
		return nil, fmt.Errorf("%w: malformed paypal order response: %v", apperrors.ErrUpstream, err)
	}

	result := &domain.CaptureResult{OrderID: orderID, Status: order.Status, Amount: decimal.Zero}
	if order.ID != "" {
		result.OrderID = order.ID
	}
	for _, pu := range order.PurchaseUnits {
		for _, cp := range pu.Payments.Captures {
			result.CaptureID = cp.ID
			result.Currency = cp.Amount.CurrencyCode
			if amount, err := decimal.NewFromString(cp.Amount.Value); err == nil {
				result.Amount = amount
			}
			// A completed order can still hold a pending or declined capture.
			if cp.Status != "" && cp.Status != domain.CaptureStatusCompleted {
				result.Status = cp.Status
			}
			return result, nil
		}
	}
	return result, nil
}

func truncate(b []byte) string {
	const limit = 512
	if len(b) > limit {
		return string(b[:limit])
	}
	return string(b)
}
