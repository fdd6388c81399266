package ratelimit

import (
	"net/http/httptest"
	"testing"
	"time"
)

func TestAllowWithinLimit(t *testing.T) {
	rl := NewLoginRateLimiter(3, time.Minute)
	defer rl.Stop()

	for i := 0; i < 3; i++ {
		if !rl.Allow("1.2.3.4") {
			t.Fatalf("attempt %d should be allowed", i+1)
		}
	}
	if rl.Allow("1.2.3.4") {
		t.Fatal("fourth attempt should be blocked")
	}

	// Other IPs are unaffected.
	if !rl.Allow("5.6.7.8") {
		t.Fatal("different ip should be allowed")
	}
}

func TestResetClearsCounter(t *testing.T) {
	rl := NewLoginRateLimiter(2, time.Minute)
	defer rl.Stop()

	rl.Allow("1.2.3.4")
	rl.Allow("1.2.3.4")
	if rl.Allow("1.2.3.4") {
		t.Fatal("should be blocked before reset")
	}

	rl.Reset("1.2.3.4")
	if !rl.Allow("1.2.3.4") {
		t.Fatal("should be allowed after reset")
	}
}

func TestWindowExpiry(t *testing.T) {
	rl := NewLoginRateLimiter(1, 10*time.Millisecond)
	defer rl.Stop()

	rl.Allow("1.2.3.4")
	if rl.Allow("1.2.3.4") {
		t.Fatal("should be blocked within window")
	}

	time.Sleep(20 * time.Millisecond)
	if !rl.Allow("1.2.3.4") {
		t.Fatal("should be allowed after window expiry")
	}
}

func TestRetryAfterSeconds(t *testing.T) {
	rl := NewLoginRateLimiter(1, time.Minute)
	defer rl.Stop()

	if got := rl.RetryAfterSeconds("1.2.3.4"); got != 0 {
		t.Fatalf("unlimited ip should report 0, got %d", got)
	}

	rl.Allow("1.2.3.4")
	got := rl.RetryAfterSeconds("1.2.3.4")
	if got < 1 || got > 61 {
		t.Fatalf("expected retry within the window, got %d", got)
	}
}

func TestExtractIP(t *testing.T) {
	req := httptest.NewRequest("POST", "/login/", nil)
	req.RemoteAddr = "10.0.0.1:54321"

	if got := ExtractIP(req); got != "10.0.0.1" {
		t.Fatalf("expected remote addr host, got %s", got)
	}

	req.Header.Set("X-Real-IP", "20.0.0.2")
	if got := ExtractIP(req); got != "20.0.0.2" {
		t.Fatalf("expected x-real-ip, got %s", got)
	}

	req.Header.Set("X-Forwarded-For", "30.0.0.3, 20.0.0.2")
	if got := ExtractIP(req); got != "30.0.0.3" {
		t.Fatalf("expected first forwarded hop, got %s", got)
	}
}

func TestFormatRetryMessage(t *testing.T) {
	if got := FormatRetryMessage(30); got != "30 second(s)" {
		t.Fatalf("unexpected message: %s", got)
	}
	if got := FormatRetryMessage(120); got != "2 minute(s)" {
		t.Fatalf("unexpected message: %s", got)
	}
}
