// Package client is the Go SDK for the payroll API: a thin HTTP client
// plus a session manager that keeps a signed-in identity fresh.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/evento-nomina/payroll-system/internal/core/domain"
)

const defaultTimeout = 10 * time.Second

// APIError carries the server's error envelope verbatim.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// AuthPayload is the server response to sign-up and sign-in.
type AuthPayload struct {
	User    *domain.Account `json:"user"`
	Profile *domain.Profile `json:"profile"`
	Token   string          `json:"token"`
}

// IdentityPayload is the server response to verify.
type IdentityPayload struct {
	User    *domain.Account `json:"user"`
	Profile *domain.Profile `json:"profile"`
}

// Client is an HTTP client for the payroll API.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	Logger     zerolog.Logger
}

// New creates a payroll API client.
func New(baseURL string, log zerolog.Logger) *Client {
	return &Client{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: defaultTimeout},
		Logger:     log,
	}
}

// do performs a request and decodes the JSON response into out. A
// non-nil token travels as a bearer header. Non-2xx responses surface
// as *APIError with the server's message.
func (c *Client) do(ctx context.Context, method, path, token string, body, out any) error {
	url := c.BaseURL + path

	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	c.Logger.Debug().Str("method", method).Str("url", url).Msg("api request")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	c.Logger.Debug().Int("status", resp.StatusCode).Msg("api response")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var envelope struct {
			Error string `json:"error"`
		}
		msg := http.StatusText(resp.StatusCode)
		if err := json.Unmarshal(respBody, &envelope); err == nil && envelope.Error != "" {
			msg = envelope.Error
		}
		return &APIError{StatusCode: resp.StatusCode, Message: msg}
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("parse response: %w", err)
		}
	}
	return nil
}

// SignUp registers a new account and returns the initial session.
func (c *Client) SignUp(ctx context.Context, email, password, fullName string) (*AuthPayload, error) {
	req := map[string]string{"email": email, "password": password, "full_name": fullName}
	var payload AuthPayload
	if err := c.do(ctx, http.MethodPost, "/auth/signup", "", req, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// SignIn exchanges credentials for a session.
func (c *Client) SignIn(ctx context.Context, email, password string) (*AuthPayload, error) {
	req := map[string]string{"email": email, "password": password}
	var payload AuthPayload
	if err := c.do(ctx, http.MethodPost, "/auth/signin", "", req, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// Verify asks the server who the token belongs to. This is the only
// trusted identity source; decoding the token locally is never
// authoritative.
func (c *Client) Verify(ctx context.Context, token string) (*IdentityPayload, error) {
	var payload IdentityPayload
	if err := c.do(ctx, http.MethodGet, "/auth/verify", token, nil, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// Refresh exchanges the current token for a fresh one.
func (c *Client) Refresh(ctx context.Context, token string) (string, error) {
	var payload struct {
		Token string `json:"token"`
	}
	if err := c.do(ctx, http.MethodPost, "/auth/refresh", token, nil, &payload); err != nil {
		return "", err
	}
	return payload.Token, nil
}

// SubmitReportRequest mirrors the report submission body.
type SubmitReportRequest struct {
	Event      domain.Event `json:"event"`
	StartTime  time.Time    `json:"start_time"`
	EndTime    time.Time    `json:"end_time"`
	HourlyRate float64      `json:"hourly_rate"`
	Notes      string       `json:"notes,omitempty"`
}

// SubmitReport files a work session. The idempotency key lets retries
// replay the original result instead of double-filing.
func (c *Client) SubmitReport(ctx context.Context, token, idempotencyKey string, req SubmitReportRequest) (*domain.WorkSession, error) {
	url := c.BaseURL + "/v1/reports"
	data, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+token)
	if idempotencyKey != "" {
		httpReq.Header.Set("Idempotency-Key", idempotencyKey)
	}

	resp, err := c.HTTPClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var envelope struct {
			Error string `json:"error"`
		}
		msg := http.StatusText(resp.StatusCode)
		if err := json.Unmarshal(respBody, &envelope); err == nil && envelope.Error != "" {
			msg = envelope.Error
		}
		return nil, &APIError{StatusCode: resp.StatusCode, Message: msg}
	}

	var session domain.WorkSession
	if err := json.Unmarshal(respBody, &session); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}
	return &session, nil
}

// ListReports returns all work sessions (admin only).
func (c *Client) ListReports(ctx context.Context, token string) ([]domain.WorkSession, error) {
	var sessions []domain.WorkSession
	if err := c.do(ctx, http.MethodGet, "/v1/reports", token, nil, &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

// ApproveReport approves a pending session (admin only).
func (c *Client) ApproveReport(ctx context.Context, token, id string) (*domain.WorkSession, error) {
	var session domain.WorkSession
	if err := c.do(ctx, http.MethodPatch, "/v1/reports/"+id+"/approve", token, nil, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// RejectReport rejects a pending session (admin only).
func (c *Client) RejectReport(ctx context.Context, token, id string) (*domain.WorkSession, error) {
	var session domain.WorkSession
	if err := c.do(ctx, http.MethodPatch, "/v1/reports/"+id+"/reject", token, nil, &session); err != nil {
		return nil, err
	}
	return &session, nil
}
