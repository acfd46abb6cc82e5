package server

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/spm-engineering/billing-service/internal/auth"
	"github.com/spm-engineering/billing-service/internal/config"
	"github.com/spm-engineering/billing-service/internal/logging"
	"github.com/spm-engineering/billing-service/internal/metrics"
)

const (
	requestIDHeader = "X-Request-ID"
	subjectKey      = "subject"
)

// RequestID propagates or assigns a request ID and stores it in the request context.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		ctx := context.WithValue(c.Request.Context(), logging.RequestIDKey, id)
		c.Request = c.Request.WithContext(ctx)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

// RequestLogger writes one structured entry per request.
func RequestLogger(logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := logging.Fields{
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
			"latency_ms": time.Since(start).Milliseconds(),
			"client_ip":  c.ClientIP(),
		}
		log := logger.WithContext(c.Request.Context())
		if c.Writer.Status() >= http.StatusInternalServerError {
			log.Error("request completed", fields)
			return
		}
		log.Info("request completed", fields)
	}
}

// Metrics records request counts and latency per route template.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.HTTPRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		metrics.HTTPDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

// CORS allows every origin outside production. In production only the
// configured origins are allowed, and none when the list is empty.
func CORS(cfg *config.Config) gin.HandlerFunc {
	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction() {
		corsConfig.AllowOrigins = cfg.CORS.AllowedOrigins
		if len(corsConfig.AllowOrigins) == 0 {
			corsConfig.AllowOriginFunc = func(string) bool { return false }
		}
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AddAllowMethods("GET", "POST", "PUT", "DELETE", "OPTIONS")
	corsConfig.AddAllowHeaders("Origin", "Content-Type", "Authorization", requestIDHeader)
	corsConfig.AddExposeHeaders("Content-Length", "Content-Disposition", requestIDHeader)
	if !corsConfig.AllowAllOrigins {
		corsConfig.AllowCredentials = true
	}
	return cors.New(corsConfig)
}

// CounterStore is the subset of the Redis client the rate limiter uses.
type CounterStore interface {
	Incr(ctx context.Context, key string) *redis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
}

// RateLimiter caps requests per client IP in a fixed window.
type RateLimiter struct {
	store  CounterStore
	prefix string
	limit  int64
	window time.Duration
	logger *logging.Logger
}

func NewRateLimiter(store CounterStore, prefix string, limit int64, window time.Duration) *RateLimiter {
	return &RateLimiter{
		store:  store,
		prefix: prefix,
		limit:  limit,
		window: window,
		logger: logging.NewLogger("rate-limiter"),
	}
}

// Middleware rejects the request with 429 once the window's budget is spent.
// Requests pass through when Redis cannot be reached.
func (rl *RateLimiter) Middleware(c *gin.Context) {
	ctx := c.Request.Context()
	key := rl.prefix + c.ClientIP()

	count, err := rl.store.Incr(ctx, key).Result()
	if err != nil {
		rl.logger.WithContext(ctx).Warn("rate limiter unavailable", logging.Fields{"error": err.Error()})
		c.Next()
		return
	}
	if count == 1 {
		if err := rl.store.Expire(ctx, key, rl.window).Err(); err != nil {
			rl.logger.Warn("failed to set rate limit window", logging.Fields{"key": key, "error": err.Error()})
		}
	}

	if count > rl.limit {
		rl.logger.WithContext(ctx).Warn("rate limit exceeded", logging.Fields{"client_ip": c.ClientIP(), "count": count})
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
			"success": false,
			"detail":  fmt.Sprintf("Too many attempts. Try again in %d seconds", int(rl.window.Seconds())),
		})
		return
	}
	c.Next()
}

// RequireToken rejects requests without a valid bearer token. The token may
// also come in the token query parameter, for pages opened in a new tab.
func RequireToken(tokens *auth.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !ok {
			raw = c.Query("token")
		}
		if strings.TrimSpace(raw) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "detail": "Not authenticated"})
			return
		}

		claims, err := tokens.Validate(strings.TrimSpace(raw))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "detail": "Invalid or expired token"})
			return
		}
		c.Set(subjectKey, claims.Subject)
		c.Next()
	}
}
