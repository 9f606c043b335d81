package httpx_test

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/roster/pkg/httpx"
	"github.com/stretchr/testify/require"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func requestFrom(ip string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = ip + ":12345"
	return req
}

func TestIPKeyExtractor(t *testing.T) {
	t.Run("extracts from RemoteAddr", func(t *testing.T) {
		require.Equal(t, "192.168.1.1", httpx.IPKeyExtractor(requestFrom("192.168.1.1")))
	})

	t.Run("prefers X-Forwarded-For", func(t *testing.T) {
		req := requestFrom("192.168.1.1")
		req.Header.Set("X-Forwarded-For", "203.0.113.1, 192.168.1.1")
		require.Equal(t, "203.0.113.1", httpx.IPKeyExtractor(req))
	})

	t.Run("uses X-Real-IP if X-Forwarded-For absent", func(t *testing.T) {
		req := requestFrom("192.168.1.1")
		req.Header.Set("X-Real-IP", "203.0.113.2")
		require.Equal(t, "203.0.113.2", httpx.IPKeyExtractor(req))
	})
}

func TestJSONFieldKeyExtractor(t *testing.T) {
	t.Run("reads field and restores body", func(t *testing.T) {
		body := `{"email":"  Alice@Example.com ","password":"x"}`
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))

		key := httpx.JSONFieldKeyExtractor("email")(req)
		require.Equal(t, "alice@example.com", key)

		rest, err := io.ReadAll(req.Body)
		require.NoError(t, err)
		require.Equal(t, body, string(rest))
	})

	t.Run("missing field", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"a"}`))
		require.Equal(t, "", httpx.JSONFieldKeyExtractor("email")(req))
	})

	t.Run("not json", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`email=a`))
		require.Equal(t, "", httpx.JSONFieldKeyExtractor("email")(req))
	})
}

func TestCompositeKeyExtractor(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"bob@example.com"}`))
	req.RemoteAddr = "192.168.1.1:12345"

	extract := httpx.CompositeKeyExtractor(":", httpx.IPKeyExtractor, httpx.JSONFieldKeyExtractor("email"))
	require.Equal(t, "192.168.1.1:bob@example.com", extract(req))

	anon := httpx.CompositeKeyExtractor(":", httpx.PrincipalKeyExtractor, httpx.IPKeyExtractor)
	require.Equal(t, "192.168.1.1", anon(requestFrom("192.168.1.1")))

	authed := requestFrom("192.168.1.1")
	authed = authed.WithContext(httpx.WithPrincipal(authed.Context(), httpx.Principal{ID: "id-1", Email: "a@x.com"}))
	require.Equal(t, "id-1:192.168.1.1", anon(authed))
}

func TestRateLimitMiddleware(t *testing.T) {
	t.Run("blocks requests over limit", func(t *testing.T) {
		h := httpx.RateLimitByIP(httpx.RateLimitConfig{Requests: 3, Window: time.Minute, Burst: 3})(okHandler())

		for i := range 3 {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, requestFrom("192.168.1.1"))
			require.Equal(t, http.StatusOK, rec.Code, "request %d should succeed", i+1)
		}

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, requestFrom("192.168.1.1"))
		require.Equal(t, http.StatusTooManyRequests, rec.Code)
		require.NotEmpty(t, rec.Header().Get("Retry-After"))
		require.Equal(t, "3", rec.Header().Get("X-RateLimit-Limit"))
		require.Equal(t, "1m0s", rec.Header().Get("X-RateLimit-Window"))
		require.Contains(t, rec.Body.String(), "rate_limit_exceeded")
	})

	t.Run("different keys are tracked separately", func(t *testing.T) {
		h := httpx.RateLimitByIP(httpx.RateLimitConfig{Requests: 1, Window: time.Minute, Burst: 1})(okHandler())

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, requestFrom("192.168.1.1"))
		require.Equal(t, http.StatusOK, rec.Code)

		rec = httptest.NewRecorder()
		h.ServeHTTP(rec, requestFrom("192.168.1.1"))
		require.Equal(t, http.StatusTooManyRequests, rec.Code)

		rec = httptest.NewRecorder()
		h.ServeHTTP(rec, requestFrom("192.168.1.2"))
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("rejected requests do not consume tokens", func(t *testing.T) {
		h := httpx.RateLimitByIP(httpx.RateLimitConfig{Requests: 600, Window: time.Minute, Burst: 1})(okHandler())

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, requestFrom("10.0.0.1"))
		require.Equal(t, http.StatusOK, rec.Code)

		rec = httptest.NewRecorder()
		h.ServeHTTP(rec, requestFrom("10.0.0.1"))
		require.Equal(t, http.StatusTooManyRequests, rec.Code)

		// 600/min refills one token every 100ms.
		time.Sleep(150 * time.Millisecond)
		rec = httptest.NewRecorder()
		h.ServeHTTP(rec, requestFrom("10.0.0.1"))
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("allows request when key extractor returns empty", func(t *testing.T) {
		empty := func(*http.Request) string { return "" }
		h := httpx.RateLimitMiddleware(httpx.RateLimitConfig{Requests: 1, Window: time.Minute, Burst: 1}, empty)(okHandler())

		for range 3 {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, requestFrom("192.168.1.1"))
			require.Equal(t, http.StatusOK, rec.Code)
		}
	})

	t.Run("ip and email buckets", func(t *testing.T) {
		h := httpx.RateLimitByIPAndJSONField(httpx.RateLimitConfig{Requests: 1, Window: time.Minute, Burst: 1}, "email")(okHandler())

		send := func(email string) int {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(fmt.Sprintf(`{"email":%q}`, email)))
			req.RemoteAddr = "192.168.1.1:12345"
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			return rec.Code
		}

		require.Equal(t, http.StatusOK, send("alice@example.com"))
		require.Equal(t, http.StatusTooManyRequests, send("ALICE@example.com"))
		require.Equal(t, http.StatusOK, send("bob@example.com"))
	})
}

func TestRateLimitProfiles(t *testing.T) {
	def := httpx.DefaultRateLimits()
	require.Less(t, def.Strict.Requests, def.Moderate.Requests)
	require.Less(t, def.Moderate.Requests, def.Lenient.Requests)
	require.Less(t, def.Lenient.Requests, def.Public.Requests)

	partial := httpx.RateLimitProfiles{Strict: httpx.RateLimitConfig{Requests: 50}}.Normalize()
	require.Equal(t, 50, partial.Strict.Requests)
	require.Equal(t, def.Strict.Window, partial.Strict.Window)
	require.Equal(t, def.Strict.Burst, partial.Strict.Burst)
	require.Equal(t, def.Public, partial.Public)
}

func BenchmarkRateLimitManyIPs(b *testing.B) {
	h := httpx.RateLimitByIP(httpx.RateLimitConfig{Requests: 1000000, Window: time.Minute, Burst: 1000})(okHandler())

	for i := 0; b.Loop(); i++ {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, requestFrom(fmt.Sprintf("192.168.%d.%d", i%255, (i/255)%255)))
	}
}
