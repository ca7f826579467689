package middleware

import (
	"net"
	"net/http"
	"strings"
)

const clientTokenHeader = "X-Client-Token"

// ClientIP resolves the caller address, preferring proxy headers so
// rate limiting and order ownership survive a load balancer hop.
func ClientIP(r *http.Request) string {
	if r == nil {
		return ""
	}
	if header := r.Header.Get("X-Forwarded-For"); header != "" {
		for _, part := range strings.Split(header, ",") {
			if ip := strings.TrimSpace(part); ip != "" {
				return ip
			}
		}
	}
	if ip := strings.TrimSpace(r.Header.Get("X-Real-IP")); ip != "" {
		return ip
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil && host != "" {
		return host
	}
	return r.RemoteAddr
}

// ClientToken reads the anonymous client token from the header, falling
// back to the query string for links opened outside the storefront.
func ClientToken(r *http.Request) string {
	if token := strings.TrimSpace(r.Header.Get(clientTokenHeader)); token != "" {
		return token
	}
	return strings.TrimSpace(r.URL.Query().Get("token"))
}
