package api

import (
	"net/http/httptest"
	"testing"
	"time"
)

func testLimiter(max int) (*windowLimiter, *time.Time) {
	now := time.Date(2026, time.June, 1, 12, 0, 0, 0, time.UTC)
	limiter := newWindowLimiter(time.Minute, max)
	limiter.now = func() time.Time { return now }
	limiter.chance = func() float64 { return 1 } // never sweep unless asked
	return limiter, &now
}

func TestLimiterAllowsUpToMax(t *testing.T) {
	limiter, _ := testLimiter(20)

	for i := 0; i < 20; i++ {
		if !limiter.Allow("203.0.113.9") {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	for i := 0; i < 5; i++ {
		if limiter.Allow("203.0.113.9") {
			t.Fatalf("request %d should be rejected", 21+i)
		}
	}

	// Rejections must not advance the counter past max.
	if got := limiter.clients["203.0.113.9"].count; got != 20 {
		t.Fatalf("count = %d, want 20", got)
	}
}

func TestLimiterResetsAfterWindow(t *testing.T) {
	limiter, now := testLimiter(2)

	limiter.Allow("198.51.100.4")
	limiter.Allow("198.51.100.4")
	if limiter.Allow("198.51.100.4") {
		t.Fatal("third request in window should be rejected")
	}

	*now = now.Add(61 * time.Second)
	if !limiter.Allow("198.51.100.4") {
		t.Fatal("request after window elapsed should be allowed")
	}
	if got := limiter.clients["198.51.100.4"].count; got != 1 {
		t.Fatalf("fresh window count = %d, want 1", got)
	}
}

func TestLimiterIsolatesClients(t *testing.T) {
	limiter, _ := testLimiter(1)

	if !limiter.Allow("203.0.113.9") {
		t.Fatal("first client should be allowed")
	}
	if !limiter.Allow("203.0.113.10") {
		t.Fatal("second client has its own window")
	}
	if limiter.Allow("203.0.113.9") {
		t.Fatal("first client should now be limited")
	}
}

func TestLimiterSweepsExpiredWindows(t *testing.T) {
	limiter, now := testLimiter(5)

	limiter.Allow("stale-client")
	*now = now.Add(2 * time.Minute)

	limiter.chance = func() float64 { return 0 } // force the sweep
	limiter.Allow("fresh-client")

	if _, ok := limiter.clients["stale-client"]; ok {
		t.Fatal("expired window should have been swept")
	}
	if _, ok := limiter.clients["fresh-client"]; !ok {
		t.Fatal("active window should survive the sweep")
	}
}

func TestLimiterUnknownBucketShared(t *testing.T) {
	limiter, _ := testLimiter(1)

	if !limiter.Allow("") {
		t.Fatal("first unidentified request should be allowed")
	}
	if limiter.Allow("") {
		t.Fatal("unidentified clients share one window")
	}
}

func TestClientAddressPrefersRealIP(t *testing.T) {
	req := httptest.NewRequest("POST", "/api/generate-excuses", nil)
	req.Header.Set("X-Real-IP", "198.51.100.4")
	req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	req.RemoteAddr = "127.0.0.1:1234"

	if got := clientAddress(req); got != "198.51.100.4" {
		t.Fatalf("expected real IP, got %q", got)
	}
}

func TestClientAddressForwardedForFallback(t *testing.T) {
	req := httptest.NewRequest("POST", "/api/generate-excuses", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	req.RemoteAddr = "127.0.0.1:1234"

	if got := clientAddress(req); got != "203.0.113.9" {
		t.Fatalf("expected leftmost forwarded IP, got %q", got)
	}
}

func TestClientAddressRemoteAddrFallback(t *testing.T) {
	req := httptest.NewRequest("POST", "/api/generate-excuses", nil)
	req.RemoteAddr = "192.0.2.7:4455"

	if got := clientAddress(req); got != "192.0.2.7" {
		t.Fatalf("expected remote addr host, got %q", got)
	}
}
