package middleware

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"fair_rps/internal/logger"

	"github.com/gin-gonic/gin"
	redis "github.com/redis/go-redis/v9"
)

// RedisLimiter is a fixed-window limiter shared by every server instance
// pointed at the same Redis.
type RedisLimiter struct {
	client *redis.Client
	max    int
	window time.Duration
}

// NewRedisLimiter connects to addr. It returns nil when addr is empty or Redis
// does not answer a ping, so callers can fall back to MemoryLimiter.
func NewRedisLimiter(addr, password string, db, maxRequests int, win time.Duration) *RedisLimiter {
	if addr == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("redis rate limiter disabled", "addr", addr, "error", err)
		_ = client.Close()
		return nil
	}
	return &RedisLimiter{client: client, max: maxRequests, window: win}
}

func (l *RedisLimiter) key(ident string) string {
	return "fair_rps:rl:" + strconv.FormatInt(int64(l.window.Seconds()), 10) + ":" + ident
}

// Allow increments the counter for ident. Redis errors fail open.
func (l *RedisLimiter) Allow(ctx context.Context, ident string) (bool, error) {
	key := l.key(ident)
	val, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		return true, err
	}
	if val == 1 {
		l.client.Expire(ctx, key, l.window)
	}
	return val <= int64(l.max), nil
}

func (l *RedisLimiter) Close() error {
	return l.client.Close()
}

// Middleware implements the limiter using Redis INCR/EXPIRE.
func (l *RedisLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, err := l.Allow(c.Request.Context(), c.ClientIP())
		if err != nil {
			c.Header("X-RateLimit-Error", "redis-error")
			c.Next()
			return
		}
		if !ok {
			RLBlocked.WithLabelValues(c.FullPath()).Inc()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}
		RLRequests.WithLabelValues(c.FullPath()).Inc()
		c.Next()
	}
}

// RateLimit returns the Redis limiter when it is reachable and the
// in-memory one otherwise.
func RateLimit(redisAddr, redisPassword string, redisDB, maxRequests int, win time.Duration) gin.HandlerFunc {
	if rl := NewRedisLimiter(redisAddr, redisPassword, redisDB, maxRequests, win); rl != nil {
		logger.Info("using redis rate limiter", "addr", redisAddr)
		return rl.Middleware()
	}
	return NewMemoryLimiter(maxRequests, win).Middleware()
}
