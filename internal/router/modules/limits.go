package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/bootcamp-directory/internal/interface/middleware"
)

// Limits builds per-minute redis rate limiters. A nil Redis disables them.
type Limits struct {
	Redis  *redis.Client
	Logger *logrus.Logger
	Allow  middleware.AllowFunc
}

func (l Limits) PerIP(max int) gin.HandlerFunc {
	return middleware.RateLimit(l.Redis, max, time.Minute, middleware.KeyByIP(), l.Allow, l.Logger)
}

func (l Limits) PerIPAndPath(max int) gin.HandlerFunc {
	return middleware.RateLimit(l.Redis, max, time.Minute, middleware.KeyByIPAndPath(), l.Allow, l.Logger)
}

// PerUser must run after Protect.
func (l Limits) PerUser(max int) gin.HandlerFunc {
	return middleware.RateLimit(l.Redis, max, time.Minute, middleware.KeyByUserID(), l.Allow, l.Logger)
}
