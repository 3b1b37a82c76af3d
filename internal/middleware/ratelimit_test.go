package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func doRequest(handler http.Handler, method string, path string, remoteAddr string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	req.RemoteAddr = remoteAddr
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestGeneralLimitEnforced(t *testing.T) {
	t.Parallel()

	limiter := NewRateLimitMiddleware(2, 10)
	handler := limiter.Handler(okHandler())

	assert.Equal(t, http.StatusOK, doRequest(handler, http.MethodGet, "/", "10.0.0.1:1234").Code)
	assert.Equal(t, http.StatusOK, doRequest(handler, http.MethodGet, "/", "10.0.0.1:1234").Code)

	rec := doRequest(handler, http.MethodGet, "/", "10.0.0.1:1234")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "60", rec.Header().Get("Retry-After"))
}

func TestUnlimitedWhenGeneralDisabled(t *testing.T) {
	t.Parallel()

	limiter := NewRateLimitMiddleware(0, 10)
	handler := limiter.Handler(okHandler())

	for i := 0; i < 50; i++ {
		assert.Equal(t, http.StatusOK, doRequest(handler, http.MethodGet, "/", "10.0.0.2:1234").Code)
	}
}

func TestAuthPostsUseTighterBucket(t *testing.T) {
	t.Parallel()

	limiter := NewRateLimitMiddleware(0, 2)
	handler := limiter.Handler(okHandler())

	assert.Equal(t, http.StatusOK, doRequest(handler, http.MethodPost, "/signin", "10.0.0.3:1234").Code)
	assert.Equal(t, http.StatusOK, doRequest(handler, http.MethodPost, "/signup", "10.0.0.3:1234").Code)
	assert.Equal(t, http.StatusTooManyRequests, doRequest(handler, http.MethodPost, "/signin", "10.0.0.3:1234").Code)

	// GET on the same paths rides the general bucket, here unlimited.
	assert.Equal(t, http.StatusOK, doRequest(handler, http.MethodGet, "/signin", "10.0.0.3:1234").Code)
}

func TestClientsLimitedIndependently(t *testing.T) {
	t.Parallel()

	limiter := NewRateLimitMiddleware(1, 10)
	handler := limiter.Handler(okHandler())

	assert.Equal(t, http.StatusOK, doRequest(handler, http.MethodGet, "/", "10.0.0.4:1234").Code)
	assert.Equal(t, http.StatusTooManyRequests, doRequest(handler, http.MethodGet, "/", "10.0.0.4:1234").Code)
	assert.Equal(t, http.StatusOK, doRequest(handler, http.MethodGet, "/", "10.0.0.5:1234").Code)
}

func TestForwardedForTakesPrecedence(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.6:1234"
	req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.6")
	assert.Equal(t, "203.0.113.9", extractClientIP(req))

	bare := httptest.NewRequest(http.MethodGet, "/", nil)
	bare.RemoteAddr = "10.0.0.7:5678"
	assert.Equal(t, "10.0.0.7", extractClientIP(bare))
}
