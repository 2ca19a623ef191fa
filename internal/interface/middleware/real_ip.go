package middleware

import (
	"net"
	"strings"

	"github.com/gin-gonic/gin"
)

// RealIP stores the caller's address under "real_ip". Proxy headers are
// checked in order CF-Connecting-IP, X-Real-IP, left-most X-Forwarded-For;
// the first one holding a valid IP wins, otherwise gin's ClientIP is used.
func RealIP() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("real_ip", realIP(c))
		c.Next()
	}
}

func realIP(c *gin.Context) string {
	candidates := []string{
		c.GetHeader("CF-Connecting-IP"),
		c.GetHeader("X-Real-IP"),
		strings.Split(c.GetHeader("X-Forwarded-For"), ",")[0],
	}
	for _, h := range candidates {
		if ip := net.ParseIP(strings.TrimSpace(h)); ip != nil {
			return ip.String()
		}
	}
	return c.ClientIP()
}
