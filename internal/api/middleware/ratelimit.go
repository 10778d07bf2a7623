package middleware

import (
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/futig/lifestory-backend/internal/entity"
	"github.com/futig/lifestory-backend/internal/pkg/response"
	"github.com/go-chi/chi/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// RateLimiter keeps one token bucket per key. Buckets idle for longer than
// the expiry are dropped by the cache janitor.
type RateLimiter struct {
	name    string
	every   time.Duration
	burst   int
	buckets *cache.Cache
}

// NewRateLimiter allows burst requests per key, refilling one every interval
func NewRateLimiter(name string, every time.Duration, burst int, idleExpiry time.Duration) *RateLimiter {
	return &RateLimiter{
		name:    name,
		every:   every,
		burst:   burst,
		buckets: cache.New(idleExpiry, idleExpiry/2),
	}
}

// Allow takes a token from the key's bucket
func (rl *RateLimiter) Allow(key string) (bool, time.Duration) {
	limiter := rl.bucket(key)

	reservation := limiter.Reserve()
	delay := reservation.Delay()
	if delay == 0 {
		return true, 0
	}
	reservation.Cancel()

	return false, delay
}

func (rl *RateLimiter) bucket(key string) *rate.Limiter {
	if v, ok := rl.buckets.Get(key); ok {
		limiter := v.(*rate.Limiter)
		rl.buckets.SetDefault(key, limiter)
		return limiter
	}

	limiter := rate.NewLimiter(rate.Every(rl.every), rl.burst)
	if err := rl.buckets.Add(key, limiter, cache.DefaultExpiration); err != nil {
		// Another request created the bucket first
		if v, ok := rl.buckets.Get(key); ok {
			return v.(*rate.Limiter)
		}
	}
	return limiter
}

// PerToken limits requests by the session or invite token URL parameter
func (rl *RateLimiter) PerToken(param string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := chi.URLParam(r, param)
			if key == "" {
				next.ServeHTTP(w, r)
				return
			}

			allowed, retryAfter := rl.Allow(key)
			if !allowed {
				ctxzap.Warn(r.Context(), "rate limit exceeded",
					zap.String("limiter", rl.name),
					zap.Duration("retry_after", retryAfter),
				)
				w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(retryAfter.Seconds()))))
				response.Error(w, http.StatusTooManyRequests, entity.ErrRateLimited.Error())
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
