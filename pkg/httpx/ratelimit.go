package httpx

import (
	"bytes"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/aussiebroadwan/roster/pkg/slogx"
	"golang.org/x/time/rate"
)

// RateLimitConfig defines one token-bucket profile. Fields carry env tags so
// a profile can be overridden through the application config, e.g.
// RATELIMIT_STRICT_REQUESTS=10 RATELIMIT_STRICT_WINDOW=30s.
type RateLimitConfig struct {
	// Requests allowed per Window.
	Requests int `env:"REQUESTS"`
	// Window over which Requests refill.
	Window time.Duration `env:"WINDOW"`
	// Burst is the bucket size.
	Burst int `env:"BURST"`
}

// RateLimitProfiles groups the profiles used by the router.
type RateLimitProfiles struct {
	// Strict guards credential endpoints (login, sign-up, register).
	Strict RateLimitConfig `envPrefix:"STRICT_"`
	// Moderate guards authenticated writes such as sending invitations.
	Moderate RateLimitConfig `envPrefix:"MODERATE_"`
	// Lenient guards authenticated reads.
	Lenient RateLimitConfig `envPrefix:"LENIENT_"`
	// Public guards unauthenticated lookups.
	Public RateLimitConfig `envPrefix:"PUBLIC_"`
}

// DefaultRateLimits returns the built-in profiles.
func DefaultRateLimits() RateLimitProfiles {
	return RateLimitProfiles{
		Strict:   RateLimitConfig{Requests: 5, Window: time.Minute, Burst: 5},
		Moderate: RateLimitConfig{Requests: 20, Window: time.Minute, Burst: 20},
		Lenient:  RateLimitConfig{Requests: 100, Window: time.Minute, Burst: 100},
		Public:   RateLimitConfig{Requests: 300, Window: time.Minute, Burst: 60},
	}
}

// Normalize replaces non-positive fields with those of def.
func (c RateLimitConfig) Normalize(def RateLimitConfig) RateLimitConfig {
	if c.Requests <= 0 {
		c.Requests = def.Requests
	}
	if c.Window <= 0 {
		c.Window = def.Window
	}
	if c.Burst <= 0 {
		c.Burst = def.Burst
	}
	return c
}

// Normalize applies RateLimitConfig.Normalize to every profile.
func (p RateLimitProfiles) Normalize() RateLimitProfiles {
	def := DefaultRateLimits()
	return RateLimitProfiles{
		Strict:   p.Strict.Normalize(def.Strict),
		Moderate: p.Moderate.Normalize(def.Moderate),
		Lenient:  p.Lenient.Normalize(def.Lenient),
		Public:   p.Public.Normalize(def.Public),
	}
}

// KeyExtractor derives the bucket key for a request. An empty key lets the
// request through unlimited.
type KeyExtractor func(*http.Request) string

// IPKeyExtractor returns the client IP, honouring X-Forwarded-For and
// X-Real-IP set by a fronting proxy.
func IPKeyExtractor(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); xri != "" {
		return xri
	}
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// PrincipalKeyExtractor returns the authenticated identity id, or "".
func PrincipalKeyExtractor(r *http.Request) string {
	if p, ok := PrincipalFromContext(r.Context()); ok {
		return p.ID
	}
	return ""
}

// CompositeKeyExtractor joins the non-empty keys of extractors with sep.
func CompositeKeyExtractor(sep string, extractors ...KeyExtractor) KeyExtractor {
	return func(r *http.Request) string {
		parts := make([]string, 0, len(extractors))
		for _, extract := range extractors {
			if key := extract(r); key != "" {
				parts = append(parts, key)
			}
		}
		return strings.Join(parts, sep)
	}
}

// JSONFieldKeyExtractor reads a top-level string field from a JSON body and
// restores the body for the next handler. Values are lower-cased so that
// "Alice@x" and "alice@x" share a bucket.
func JSONFieldKeyExtractor(field string) KeyExtractor {
	return func(r *http.Request) string {
		if r.Body == nil {
			return ""
		}
		body, err := io.ReadAll(io.LimitReader(r.Body, MaxBodyBytes))
		_ = r.Body.Close()
		r.Body = io.NopCloser(bytes.NewReader(body))
		if err != nil {
			return ""
		}

		var fields map[string]json.RawMessage
		if json.Unmarshal(body, &fields) != nil {
			return ""
		}
		var v string
		if json.Unmarshal(fields[field], &v) != nil {
			return ""
		}
		return strings.ToLower(strings.TrimSpace(v))
	}
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// limiterSet holds one token bucket per key and forgets idle ones.
type limiterSet struct {
	mu      sync.Mutex
	entries map[string]*limiterEntry
	limit   rate.Limit
	burst   int
	idle    time.Duration
	swept   time.Time
}

func newLimiterSet(cfg RateLimitConfig) *limiterSet {
	return &limiterSet{
		entries: make(map[string]*limiterEntry),
		limit:   rate.Limit(float64(cfg.Requests) / cfg.Window.Seconds()),
		burst:   cfg.Burst,
		idle:    max(cfg.Window*2, 5*time.Minute),
		swept:   time.Now(),
	}
}

func (s *limiterSet) get(key string, now time.Time) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	if now.Sub(s.swept) >= s.idle {
		for k, e := range s.entries {
			if now.Sub(e.lastSeen) >= s.idle {
				delete(s.entries, k)
			}
		}
		s.swept = now
	}

	e, ok := s.entries[key]
	if !ok {
		e = &limiterEntry{limiter: rate.NewLimiter(s.limit, s.burst)}
		s.entries[key] = e
	}
	e.lastSeen = now
	return e.limiter
}

// RateLimitMiddleware rejects requests with 429 once the bucket for their
// key is empty.
func RateLimitMiddleware(cfg RateLimitConfig, keyFn KeyExtractor) Middleware {
	cfg = cfg.Normalize(DefaultRateLimits().Lenient)
	set := newLimiterSet(cfg)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log := slogx.FromContext(r.Context())

			key := keyFn(r)
			if key == "" {
				log.Warn("rate limit: unable to extract key, allowing request")
				next.ServeHTTP(w, r)
				return
			}

			now := time.Now()
			limiter := set.get(key, now)
			res := limiter.ReserveN(now, 1)
			if delay := res.DelayFrom(now); delay > 0 {
				res.CancelAt(now)

				retryAfter := max(int(delay.Round(time.Second).Seconds()), 1)
				w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
				w.Header().Set("X-RateLimit-Limit", strconv.Itoa(cfg.Requests))
				w.Header().Set("X-RateLimit-Window", cfg.Window.String())

				log.Warn("rate limit exceeded",
					"key", key,
					"endpoint", r.URL.Path,
					"retry_after", retryAfter,
				)

				WriteJSON(w, http.StatusTooManyRequests, map[string]string{
					"error":             "rate_limit_exceeded",
					"error_description": "Too many requests. Please try again later.",
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RateLimitByIP limits by client IP.
func RateLimitByIP(cfg RateLimitConfig) Middleware {
	return RateLimitMiddleware(cfg, IPKeyExtractor)
}

// RateLimitByPrincipal limits by authenticated identity, falling back to IP.
// It must run after AuthnMiddleware to see the identity.
func RateLimitByPrincipal(cfg RateLimitConfig) Middleware {
	return RateLimitMiddleware(cfg, CompositeKeyExtractor(":",
		PrincipalKeyExtractor,
		IPKeyExtractor,
	))
}

// RateLimitByIPAndJSONField limits by IP plus a JSON body field, typically
// the email on credential endpoints.
func RateLimitByIPAndJSONField(cfg RateLimitConfig, field string) Middleware {
	return RateLimitMiddleware(cfg, CompositeKeyExtractor(":",
		IPKeyExtractor,
		JSONFieldKeyExtractor(field),
	))
}
