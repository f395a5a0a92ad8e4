package server

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func requestWithOrigin(t *testing.T, origin string) *http.Request {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, "/ws", nil)
	if err != nil {
		t.Fatal(err)
	}
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	return req
}

func TestOriginChecker_Wildcard(t *testing.T) {
	t.Parallel()

	oc := NewOriginChecker([]string{"*"})
	assert.True(t, oc.CheckOrigin(requestWithOrigin(t, "https://evil.example")))
}

func TestOriginChecker_AllowList(t *testing.T) {
	t.Parallel()

	oc := NewOriginChecker([]string{"https://game.example"})
	assert.True(t, oc.CheckOrigin(requestWithOrigin(t, "https://game.example")))
	assert.False(t, oc.CheckOrigin(requestWithOrigin(t, "https://evil.example")))
}

func TestOriginChecker_NoOriginHeader(t *testing.T) {
	t.Parallel()

	// Non-browser clients send no Origin header and are let through
	oc := NewOriginChecker([]string{"https://game.example"})
	assert.True(t, oc.CheckOrigin(requestWithOrigin(t, "")))
}

func TestMessageRateLimiter_AllowsWithinLimit(t *testing.T) {
	t.Parallel()

	l := NewMessageRateLimiter(5)
	for i := 0; i < 5; i++ {
		assert.True(t, l.AllowMessage("c1"))
	}
}

func TestMessageRateLimiter_BlocksOverLimit(t *testing.T) {
	t.Parallel()

	l := NewMessageRateLimiter(3)
	for i := 0; i < 3; i++ {
		assert.True(t, l.AllowMessage("c1"))
	}
	assert.False(t, l.AllowMessage("c1"))
	assert.False(t, l.AllowMessage("c1"))
	assert.Equal(t, 2, l.WarningCount("c1"))
}

func TestMessageRateLimiter_PerClientCounters(t *testing.T) {
	t.Parallel()

	l := NewMessageRateLimiter(1)
	assert.True(t, l.AllowMessage("c1"))
	assert.False(t, l.AllowMessage("c1"))

	// A different client has its own window
	assert.True(t, l.AllowMessage("c2"))
}

func TestMessageRateLimiter_RemoveClient(t *testing.T) {
	t.Parallel()

	l := NewMessageRateLimiter(1)
	l.AllowMessage("c1")
	l.AllowMessage("c1")
	assert.Equal(t, 1, l.WarningCount("c1"))

	l.RemoveClient("c1")
	assert.Equal(t, 0, l.WarningCount("c1"))
	assert.True(t, l.AllowMessage("c1"))
}
