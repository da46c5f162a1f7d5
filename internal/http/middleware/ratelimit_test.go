package middleware

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestMemoryLimiterWindow(t *testing.T) {
	now := time.Unix(1000, 0)
	l := NewMemoryLimiter(2, time.Minute)
	l.now = func() time.Time { return now }

	if !l.Allow("a") || !l.Allow("a") {
		t.Fatalf("first two requests blocked")
	}
	if l.Allow("a") {
		t.Fatalf("third request allowed")
	}
	if !l.Allow("b") {
		t.Fatalf("other client blocked")
	}

	now = now.Add(61 * time.Second)
	if !l.Allow("a") {
		t.Fatalf("request blocked after window elapsed")
	}
}

func TestMemoryLimiterMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/test", NewMemoryLimiter(1, time.Minute).Middleware(), func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})

	if code := doFrom(r, "192.0.2.7"); code != 200 {
		t.Fatalf("expected 200 got %d", code)
	}
	if code := doFrom(r, "192.0.2.7"); code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 got %d", code)
	}
	if code := doFrom(r, "192.0.2.8"); code != 200 {
		t.Fatalf("other ip: expected 200 got %d", code)
	}
}
