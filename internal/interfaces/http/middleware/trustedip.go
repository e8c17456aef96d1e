package middleware

import (
	"net"
	"net/http"

	"github.com/gin-gonic/gin"

	"boardsync/internal/shared/logger"
	"boardsync/internal/shared/utils"
)

// TrustedIPs restricts an endpoint to a set of source addresses. Entries may
// be single IPs or CIDR ranges. An empty list disables the check.
func TrustedIPs(allowed []string, log logger.Interface) gin.HandlerFunc {
	var (
		ips  = make(map[string]struct{})
		nets []*net.IPNet
	)
	for _, entry := range allowed {
		if _, network, err := net.ParseCIDR(entry); err == nil {
			nets = append(nets, network)
			continue
		}
		ips[entry] = struct{}{}
	}

	return func(c *gin.Context) {
		if len(allowed) == 0 {
			c.Next()
			return
		}

		clientIP := c.ClientIP()
		if _, ok := ips[clientIP]; ok {
			c.Next()
			return
		}

		if ip := net.ParseIP(clientIP); ip != nil {
			for _, network := range nets {
				if network.Contains(ip) {
					c.Next()
					return
				}
			}
		}

		log.Warnw("rejected request from untrusted address",
			"client_ip", clientIP,
			"path", c.Request.URL.Path)
		utils.ErrorResponse(c, http.StatusForbidden, "Forbidden")
		c.Abort()
	}
}
