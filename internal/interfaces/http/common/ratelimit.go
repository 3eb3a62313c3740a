package common

import (
	"context"
	"log"
	"net"
	"net/http"
	"strings"
)

// Limiter decides whether a client key may proceed.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// RateLimit rejects requests over quota with 429, keyed by client IP.
// When the limiter itself fails the request is let through and the failure logged.
func RateLimit(logger *log.Logger, limiter Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if limiter == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := ClientIP(r)
			allowed, err := limiter.Allow(r.Context(), key)
			if err != nil {
				if logger != nil {
					logger.Printf("レート制限の判定に失敗 ip=%q err=%v", key, err)
				}
				next.ServeHTTP(w, r)
				return
			}
			if !allowed {
				WriteJSON(logger, w, http.StatusTooManyRequests, ErrorResponse{Error: "Too many submissions, please try again later."})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ClientIP returns the host part of RemoteAddr, which chi's RealIP middleware
// has already rewritten from proxy headers.
func ClientIP(r *http.Request) string {
	addr := strings.TrimSpace(r.RemoteAddr)
	if host, _, err := net.SplitHostPort(addr); err == nil {
		return host
	}
	return addr
}
