package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/evento-nomina/payroll-system/internal/core/domain"
)

func authPayloadJSON(role string) map[string]any {
	return map[string]any{
		"user":    map[string]any{"id": "acc_1", "email": "alice@example.com"},
		"profile": map[string]any{"account_id": "acc_1", "role": role, "full_name": "Alice Lidell"},
		"token":   "token123",
	}
}

func TestClient_SignIn_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/signin" || r.Method != http.MethodPost {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var req map[string]string
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req["email"] != "alice@example.com" || req["password"] != "secretpwd" {
			t.Fatalf("unexpected credentials: %+v", req)
		}
		_ = json.NewEncoder(w).Encode(authPayloadJSON(domain.RoleEmployee))
	}))
	defer srv.Close()

	c := New(srv.URL, zerolog.Nop())
	payload, err := c.SignIn(context.Background(), "alice@example.com", "secretpwd")
	if err != nil {
		t.Fatalf("sign in: %v", err)
	}
	if payload.Token != "token123" {
		t.Fatalf("unexpected token: %s", payload.Token)
	}
	if payload.User.ID != "acc_1" || payload.Profile.Role != domain.RoleEmployee {
		t.Fatalf("unexpected payload: %+v", payload)
	}
}

func TestClient_SignIn_ErrorEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid credentials"})
	}))
	defer srv.Close()

	c := New(srv.URL, zerolog.Nop())
	_, err := c.SignIn(context.Background(), "alice@example.com", "wrong")

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", apiErr.StatusCode)
	}
	if apiErr.Message != "invalid credentials" {
		t.Fatalf("server message not preserved: %q", apiErr.Message)
	}
}

func TestClient_Verify_SendsBearerHeader(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer token123" {
			t.Fatalf("unexpected authorization header: %q", got)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"user":    map[string]any{"id": "acc_1", "email": "alice@example.com"},
			"profile": map[string]any{"account_id": "acc_1", "role": domain.RoleAdmin},
		})
	}))
	defer srv.Close()

	c := New(srv.URL, zerolog.Nop())
	payload, err := c.Verify(context.Background(), "token123")
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if payload.Profile.Role != domain.RoleAdmin {
		t.Fatalf("unexpected role: %s", payload.Profile.Role)
	}
}

func TestClient_SubmitReport_Headers(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer token123" {
			t.Fatalf("unexpected authorization header: %q", got)
		}
		if got := r.Header.Get("Idempotency-Key"); got != "key-1" {
			t.Fatalf("unexpected idempotency key: %q", got)
		}
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(domain.WorkSession{ID: "sess_1", Status: domain.SessionActive})
	}))
	defer srv.Close()

	c := New(srv.URL, zerolog.Nop())
	start := time.Date(2026, 8, 1, 17, 0, 0, 0, time.UTC)
	session, err := c.SubmitReport(context.Background(), "token123", "key-1", SubmitReportRequest{
		Event:      domain.Event{Name: "Gala", Location: "Hall", StartsAt: start, EndsAt: start.Add(8 * time.Hour)},
		StartTime:  start,
		EndTime:    start.Add(7 * time.Hour),
		HourlyRate: 20,
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if session.ID != "sess_1" || session.Status != domain.SessionActive {
		t.Fatalf("unexpected session: %+v", session)
	}
}

func TestClient_NonJSONErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream blew up"))
	}))
	defer srv.Close()

	c := New(srv.URL, zerolog.Nop())
	_, err := c.ListReports(context.Background(), "token123")

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", apiErr.StatusCode)
	}
	if apiErr.Message != http.StatusText(http.StatusBadGateway) {
		t.Fatalf("expected status text fallback, got %q", apiErr.Message)
	}
}
