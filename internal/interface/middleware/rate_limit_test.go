package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"

	"github.com/oksasatya/bootcamp-directory/internal/domain/entity"
)

func TestRateLimitWithoutRedisPassesThrough(t *testing.T) {
	r := gin.New()
	r.GET("/x", RateLimit(nil, 1, time.Minute, KeyByIP(), nil, nil), func(c *gin.Context) { c.Status(http.StatusNoContent) })

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
		assert.Equal(t, http.StatusNoContent, w.Code)
	}
}

func TestRateLimitFailsOpenWhenRedisIsDown(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 50 * time.Millisecond, MaxRetries: -1})
	t.Cleanup(func() { _ = rdb.Close() })
	r := gin.New()
	r.GET("/x", RateLimit(rdb, 1, time.Minute, KeyByIP(), nil, nil), func(c *gin.Context) { c.Status(http.StatusNoContent) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestKeys(t *testing.T) {
	r := gin.New()
	var keys []string
	r.Use(RealIP())
	r.GET("/auth/login/:id", func(c *gin.Context) {
		keys = append(keys, KeyByIP()(c), KeyByIPAndPath()(c), KeyByUserID()(c))
		setCurrentUser(c, &entity.User{ID: "u1"})
		keys = append(keys, KeyByUserID()(c))
	})
	req := httptest.NewRequest(http.MethodGet, "/auth/login/7", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	r.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, []string{
		"rl:ip:203.0.113.9",
		"rl:path:/auth/login/:id:ip:203.0.113.9",
		"rl:user:anon:ip:203.0.113.9",
		"rl:user:u1",
	}, keys)
}

func TestOnlyWhenPrivateIP(t *testing.T) {
	r := gin.New()
	r.Use(RealIP())
	r.GET("/debug", OnlyWhen(AllowPrivateIP()), func(c *gin.Context) { c.Status(http.StatusOK) })

	for ip, want := range map[string]int{
		"127.0.0.1":   http.StatusOK,
		"10.1.2.3":    http.StatusOK,
		"203.0.113.9": http.StatusNotFound,
	} {
		req := httptest.NewRequest(http.MethodGet, "/debug", nil)
		req.Header.Set("X-Real-IP", ip)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, want, w.Code, ip)
	}
}

func TestRequestIDIsEchoed(t *testing.T) {
	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/x", func(c *gin.Context) { c.String(http.StatusOK, c.GetString("request_id")) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Len(t, w.Body.String(), 36)
	assert.Equal(t, w.Body.String(), w.Header().Get("X-Request-ID"))

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("X-Request-ID", "6f1c1f3e-6b1e-4c55-9d1a-0a6f1e7c2b11")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "6f1c1f3e-6b1e-4c55-9d1a-0a6f1e7c2b11", w.Body.String())
}
