package middleware

import (
	"net"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/catalog-backoffice/pkg/response"
)

func isPrivateIP(ip string) bool {
	parsed := net.ParseIP(ip)
	return parsed != nil && (parsed.IsLoopback() || parsed.IsPrivate())
}

// AllowPrivateIP bypasses the rate limit for loopback and RFC 1918 clients.
func AllowPrivateIP() AllowFunc {
	return func(c *gin.Context) bool {
		return isPrivateIP(ipFromCtx(c))
	}
}

// PrivateOnly rejects requests from public addresses.
func PrivateOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !isPrivateIP(ipFromCtx(c)) {
			response.Error(c, http.StatusForbidden, "forbidden", nil)
			return
		}
		c.Next()
	}
}
