package web

import (
	"context"
	"net"
	"net/http"

	"github.com/JonMunkholm/menumanager/internal/core"
)

// WithRequestMetadata adds IP and User-Agent to context for audit logging.
func WithRequestMetadata(ctx context.Context, r *http.Request) context.Context {
	return core.WithRequestMeta(ctx, core.RequestMeta{
		IPAddress: clientIP(r), // already processed by TrustedRealIP
		UserAgent: r.Header.Get("User-Agent"),
	})
}

// clientIP returns the request's client address without its port.
func clientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
