package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRateLimit_BurstThenReject(t *testing.T) {
	rl := NewIPRateLimiter(1, 2)
	fixed := time.Date(2024, 5, 15, 12, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return fixed }

	h := RateLimit(rl)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	do := func(remote string) int {
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = remote
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, do("10.0.0.1:1000"))
	assert.Equal(t, http.StatusOK, do("10.0.0.1:1001"))
	assert.Equal(t, http.StatusTooManyRequests, do("10.0.0.1:1002"))

	// Other clients have their own bucket.
	assert.Equal(t, http.StatusOK, do("10.0.0.2:1000"))

	// Tokens refill over time.
	fixed = fixed.Add(time.Second)
	assert.Equal(t, http.StatusOK, do("10.0.0.1:1003"))
}

func TestIPRateLimiter_Prune(t *testing.T) {
	rl := NewIPRateLimiter(1, 1)
	now := time.Date(2024, 5, 15, 12, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	rl.allow("10.0.0.1")
	now = now.Add(5 * time.Minute)
	rl.allow("10.0.0.2")
	now = now.Add(6 * time.Minute)

	assert.Equal(t, 1, rl.Prune())
	assert.Len(t, rl.visitors, 1)
	assert.Contains(t, rl.visitors, "10.0.0.2")
}
