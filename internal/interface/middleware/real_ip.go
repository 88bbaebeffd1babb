package middleware

import (
	"net"
	"strings"

	"github.com/gin-gonic/gin"
)

// DefaultIPHeaders are consulted by RealIP in order.
var DefaultIPHeaders = []string{"CF-Connecting-IP", "X-Forwarded-For", "X-Real-IP"}

// RealIP stores the client IP in the Gin context under "real_ip". The first
// header holding a parsable address wins; for lists the left-most entry is
// used. Without one it falls back to c.ClientIP().
func RealIP(headers ...string) gin.HandlerFunc {
	if len(headers) == 0 {
		headers = DefaultIPHeaders
	}
	return func(c *gin.Context) {
		c.Set("real_ip", resolveIP(c, headers))
		c.Next()
	}
}

func resolveIP(c *gin.Context, headers []string) string {
	for _, h := range headers {
		v := c.GetHeader(h)
		if v == "" {
			continue
		}
		first := strings.TrimSpace(strings.SplitN(v, ",", 2)[0])
		if ip := net.ParseIP(first); ip != nil {
			return ip.String()
		}
	}
	return c.ClientIP()
}
