package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/angelmondragon/pawhaven-backend/api/responses"
	pkgerrors "github.com/angelmondragon/pawhaven-backend/pkg/errors"
	"github.com/angelmondragon/pawhaven-backend/pkg/logger"
)

// RateLimitStore counts attempts in fixed windows. *redis.Client satisfies it.
type RateLimitStore interface {
	FixedWindowAllow(ctx context.Context, key string, limit int64, window time.Duration) (bool, int64, error)
	RateLimitKey(parts ...string) string
}

// maxRateLimitBody caps how much of the body is buffered to find the email.
const maxRateLimitBody = 64 << 10

// AuthRateLimitPolicy throttles one auth endpoint per client IP and per
// email. A zero limit turns that counter off.
type AuthRateLimitPolicy struct {
	Name       string
	Window     time.Duration
	IPLimit    int
	EmailLimit int
}

func (p AuthRateLimitPolicy) enabled() bool {
	return p.Window > 0 && (p.IPLimit > 0 || p.EmailLimit > 0)
}

func (p AuthRateLimitPolicy) name() string {
	if name := strings.ToLower(strings.TrimSpace(p.Name)); name != "" {
		return name
	}
	return "auth"
}

// rateCounter is one (scope, subject) pair checked against its limit.
type rateCounter struct {
	scope   string
	subject string
	limit   int
}

// AuthRateLimit answers 429 with Retry-After once any counter passes its
// limit within the window. A nil store or a zero policy disables the check.
func AuthRateLimit(policy AuthRateLimitPolicy, store RateLimitStore, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if !policy.enabled() || store == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			counters, err := countersFor(policy, r)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "read request"))
				return
			}
			for _, c := range counters {
				if err := hit(r.Context(), store, policy, c, logg); err != nil {
					if pkgerrors.IsCode(err, pkgerrors.CodeRateLimit) {
						w.Header().Set("Retry-After", strconv.Itoa(int(policy.Window.Seconds())))
					}
					responses.WriteError(r.Context(), logg, w, err)
					return
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// countersFor collects the subjects to charge. Reading the email consumes the
// body, so it is buffered and put back for the handler.
func countersFor(policy AuthRateLimitPolicy, r *http.Request) ([]rateCounter, error) {
	var counters []rateCounter
	if policy.IPLimit > 0 {
		if ip := clientIP(r); ip != "" {
			counters = append(counters, rateCounter{scope: "ip", subject: ip, limit: policy.IPLimit})
		}
	}
	if policy.EmailLimit > 0 && r.Body != nil {
		body, err := io.ReadAll(io.LimitReader(r.Body, maxRateLimitBody))
		if err != nil {
			return nil, err
		}
		r.Body = io.NopCloser(bytes.NewReader(body))
		if email := normalizeEmail(extractEmail(body)); email != "" {
			counters = append(counters, rateCounter{scope: "email", subject: hashValue(email), limit: policy.EmailLimit})
		}
	}
	return counters, nil
}

func hit(ctx context.Context, store RateLimitStore, policy AuthRateLimitPolicy, c rateCounter, logg *logger.Logger) error {
	key := store.RateLimitKey(policy.name(), c.scope, c.subject)
	allowed, count, err := store.FixedWindowAllow(ctx, key, int64(c.limit), policy.Window)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "rate limiting")
	}
	if allowed {
		return nil
	}
	if logg != nil {
		logg.Warn(logg.WithFields(ctx, map[string]any{
			"policy":         policy.name(),
			"scope":          c.scope,
			"subject":        c.subject,
			"attempts":       count,
			"limit":          c.limit,
			"window_seconds": int(policy.Window.Seconds()),
		}), "auth.rate_limit.blocked")
	}
	return pkgerrors.New(pkgerrors.CodeRateLimit, "too many attempts, try again later")
}

// clientIP prefers the first X-Forwarded-For hop, then X-Real-IP, then the
// socket peer.
func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	if ip := strings.TrimSpace(r.Header.Get("X-Real-IP")); ip != "" {
		return ip
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil && host != "" {
		return host
	}
	return r.RemoteAddr
}

func extractEmail(payload []byte) string {
	var body struct {
		Email string `json:"email"`
	}
	if json.Unmarshal(payload, &body) != nil {
		return ""
	}
	return body.Email
}

func normalizeEmail(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

// hashValue keeps raw emails out of redis keys and logs.
func hashValue(value string) string {
	sum := sha256.Sum256([]byte(value))
	return hex.EncodeToString(sum[:])
}
