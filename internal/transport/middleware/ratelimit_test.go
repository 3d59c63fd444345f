package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func limitedHandler(rl *RateLimiter, maxPerMinute int) http.Handler {
	return rl.Limit(maxPerMinute)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
}

func doFrom(handler http.Handler, addr string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", nil)
	req.RemoteAddr = addr
	handler.ServeHTTP(rec, req)
	return rec
}

func TestRateLimiter_AllowsUnderLimit(t *testing.T) {
	rl := NewRateLimiter(time.Minute)
	defer rl.Stop()
	handler := limitedHandler(rl, 10)

	for i := 0; i < 10; i++ {
		if rec := doFrom(handler, "1.2.3.4:1234"); rec.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d, want 200", i, rec.Code)
		}
	}
}

func TestRateLimiter_BlocksOverLimit(t *testing.T) {
	rl := NewRateLimiter(time.Minute)
	defer rl.Stop()
	handler := limitedHandler(rl, 5)

	for i := 0; i < 5; i++ {
		if rec := doFrom(handler, "1.2.3.4:1234"); rec.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d, want 200", i, rec.Code)
		}
	}

	rec := doFrom(handler, "1.2.3.4:1234")
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Error("Retry-After header missing on a limited response")
	}
}

func TestRateLimiter_DifferentIPsIndependent(t *testing.T) {
	rl := NewRateLimiter(time.Minute)
	defer rl.Stop()
	handler := limitedHandler(rl, 2)

	for i := 0; i < 3; i++ {
		doFrom(handler, "1.1.1.1:1234")
	}

	if rec := doFrom(handler, "2.2.2.2:5678"); rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200 for an unrelated address", rec.Code)
	}
}

func TestRateLimiter_TokenRefill(t *testing.T) {
	rl := NewRateLimiter(time.Minute)
	defer rl.Stop()
	// 60 per minute refills one token per second.
	handler := limitedHandler(rl, 60)

	for i := 0; i < 60; i++ {
		doFrom(handler, "3.3.3.3:1234")
	}
	if rec := doFrom(handler, "3.3.3.3:1234"); rec.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429 once the bucket is drained", rec.Code)
	}

	time.Sleep(1100 * time.Millisecond)

	if rec := doFrom(handler, "3.3.3.3:1234"); rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200 after refill", rec.Code)
	}
}
