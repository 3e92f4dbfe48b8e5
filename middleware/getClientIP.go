package middleware

import (
	"net"
	"strings"

	"github.com/gin-gonic/gin"
)

// clientKey identifies the caller for rate limiting: the principal when the
// request is authenticated, otherwise the client IP.
func clientKey(c *gin.Context) string {
	if id := c.GetString(principalID); id != "" {
		return "principal:" + id
	}
	return "ip:" + getClientIP(c)
}

func getClientIP(c *gin.Context) string {
	// First entry of X-Forwarded-For is the originating client.
	if xff := c.GetHeader("X-Forwarded-For"); xff != "" {
		if first := strings.TrimSpace(strings.Split(xff, ",")[0]); first != "" {
			return first
		}
	}
	if xri := strings.TrimSpace(c.GetHeader("X-Real-IP")); xri != "" {
		return xri
	}
	if host, _, err := net.SplitHostPort(c.Request.RemoteAddr); err == nil {
		return host
	}
	return c.Request.RemoteAddr
}
