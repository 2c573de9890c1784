package dishq

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func translateServer(t *testing.T, status int, body any, gotReq **http.Request) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/v1/translate" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if gotReq != nil {
			*gotReq = r.Clone(r.Context())
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	}))
}

func TestClient_Translate(t *testing.T) {
	var gotReq *http.Request
	srv := translateServer(t, http.StatusOK, map[string]any{
		"response":          "?query=pasta&diet=vegan&maxReadyTime=20",
		"originalInput":     "vegan pasta under 20 minutes",
		"remainingRequests": 4,
	}, &gotReq)
	defer srv.Close()

	c := New(srv.URL, WithAPIKey("test-key"))

	res, err := c.Translate(context.Background(), "vegan pasta under 20 minutes")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Response != "?query=pasta&diet=vegan&maxReadyTime=20" {
		t.Errorf("unexpected response %q", res.Response)
	}
	if res.RemainingRequests != 4 {
		t.Errorf("expected 4 remaining, got %d", res.RemainingRequests)
	}
	if got := gotReq.Header.Get("Authorization"); got != "Bearer test-key" {
		t.Errorf("unexpected auth header %q", got)
	}
}

func TestClient_TranslateErrorMapping(t *testing.T) {
	cases := []struct {
		name     string
		status   int
		message  string
		sentinel error
	}{
		{
			name:     "rate limited",
			status:   http.StatusTooManyRequests,
			message:  "Rate limit exceeded. Please try again later.",
			sentinel: ErrRateLimited,
		},
		{
			name:     "moderation rejection",
			status:   http.StatusBadRequest,
			message:  "Content flagged as inappropriate: violence",
			sentinel: ErrModerationRejected,
		},
		{
			name:     "invalid input",
			status:   http.StatusBadRequest,
			message:  "input must not be empty",
			sentinel: ErrInvalidInput,
		},
		{
			name:     "upstream failure",
			status:   http.StatusInternalServerError,
			message:  "Translation service temporarily unavailable",
			sentinel: ErrUpstream,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := translateServer(t, tc.status, map[string]string{"error": tc.message}, nil)
			defer srv.Close()

			c := New(srv.URL)
			_, err := c.Translate(context.Background(), "pasta")
			if !errors.Is(err, tc.sentinel) {
				t.Fatalf("expected %v, got %v", tc.sentinel, err)
			}

			var apiErr *APIError
			if !errors.As(err, &apiErr) {
				t.Fatal("expected APIError")
			}
			if apiErr.StatusCode != tc.status {
				t.Errorf("expected status %d, got %d", tc.status, apiErr.StatusCode)
			}
			if apiErr.Message != tc.message {
				t.Errorf("expected message %q, got %q", tc.message, apiErr.Message)
			}
		})
	}
}

func TestClient_AdvisoryLimiterFailsFast(t *testing.T) {
	roundTrips := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		roundTrips++
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"response": "?query=pasta", "originalInput": "pasta", "remainingRequests": 0,
		})
	}))
	defer srv.Close()

	c := New(srv.URL, WithAdvisoryLimit(1, time.Hour))

	if _, err := c.Translate(context.Background(), "pasta"); err != nil {
		t.Fatalf("first call should pass: %v", err)
	}
	_, err := c.Translate(context.Background(), "pasta")
	if !errors.Is(err, ErrRateLimited) {
		t.Fatalf("expected ErrRateLimited, got %v", err)
	}
	if roundTrips != 1 {
		t.Errorf("exhausted advisory window must not reach the server, got %d round-trips", roundTrips)
	}
}

func TestClient_ObservesServerRemaining(t *testing.T) {
	srv := translateServer(t, http.StatusOK, map[string]any{
		"response": "?query=pasta", "originalInput": "pasta", "remainingRequests": 2,
	}, nil)
	defer srv.Close()

	// Local window is loose; the server report tightens it.
	c := New(srv.URL, WithAdvisoryLimit(10, time.Hour))

	if _, err := c.Translate(context.Background(), "pasta"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r := c.limiter.Remaining(); r != 2 {
		t.Errorf("expected local remaining reconciled to 2, got %d", r)
	}
}
