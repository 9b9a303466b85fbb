package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestLimiter(perSecond, perMinute int, clock *time.Time) *RateLimiter {
	rl := NewRateLimiter(perSecond, perMinute, time.Minute)
	rl.now = func() time.Time { return *clock }
	return rl
}

func TestRateLimiter_Allow(t *testing.T) {
	t.Parallel()

	clock := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	rl := newTestLimiter(2, 100, &clock)

	assert.True(t, rl.Allow("1.1.1.1"))
	assert.True(t, rl.Allow("1.1.1.1"))
	assert.False(t, rl.Allow("1.1.1.1"), "third request in the same second")

	// 其他 IP 不受影响
	assert.True(t, rl.Allow("2.2.2.2"))

	// 封禁期间一直拒绝
	clock = clock.Add(30 * time.Second)
	assert.False(t, rl.Allow("1.1.1.1"))

	// 封禁结束后恢复
	clock = clock.Add(31 * time.Second)
	assert.True(t, rl.Allow("1.1.1.1"))
}

func TestRateLimiter_PerMinute(t *testing.T) {
	t.Parallel()

	clock := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	rl := newTestLimiter(100, 3, &clock)

	for range 3 {
		assert.True(t, rl.Allow("1.1.1.1"))
		clock = clock.Add(2 * time.Second)
	}
	assert.False(t, rl.Allow("1.1.1.1"))
}

func TestRateLimiter_Prune(t *testing.T) {
	t.Parallel()

	clock := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	rl := newTestLimiter(10, 10, &clock)

	rl.Allow("1.1.1.1")
	clock = clock.Add(11 * time.Minute)
	rl.Allow("2.2.2.2")
	rl.prune()

	assert.NotContains(t, rl.requests, "1.1.1.1")
	assert.Contains(t, rl.requests, "2.2.2.2")
}

func TestOriginChecker(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		allowed []string
		origin  string
		want    bool
	}{
		{"wildcard", []string{"*"}, "http://evil.com", true},
		{"listed", []string{"http://arcade.local"}, "http://arcade.local", true},
		{"case insensitive", []string{"http://Arcade.local"}, "http://arcade.LOCAL", true},
		{"not listed", []string{"http://arcade.local"}, "http://evil.com", false},
		{"no origin header", []string{"http://arcade.local"}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := httptest.NewRequest(http.MethodGet, "/ws", nil)
			if tt.origin != "" {
				r.Header.Set("Origin", tt.origin)
			}
			assert.Equal(t, tt.want, NewOriginChecker(tt.allowed).Check(r))
		})
	}
}

func TestClientIP(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest(http.MethodGet, "/ws", nil)
	r.RemoteAddr = "10.0.0.1:5555"
	assert.Equal(t, "10.0.0.1", clientIP(r))

	r.RemoteAddr = "10.0.0.2"
	assert.Equal(t, "10.0.0.2", clientIP(r))
}
