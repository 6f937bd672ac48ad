package api

import (
	"net"
	"net/http"
)

// limitForms throttles POSTs per client IP. Page views pass through.
func (s *Server) limitForms(next http.Handler) http.Handler {
	if s.formLimiter == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			next.ServeHTTP(w, r)
			return
		}

		ip := clientIP(r)
		if s.formLimiter.Allow(ip) {
			next.ServeHTTP(w, r)
			return
		}

		s.logger.Warn("form rate limit exceeded", "ip", ip, "path", r.URL.Path)
		if s.metrics != nil {
			s.metrics.RateLimitedTotal.Inc()
		}
		w.Header().Set("Retry-After", "60")
		s.render(w, r, http.StatusTooManyRequests, "error", http.StatusText(http.StatusTooManyRequests),
			errorPage{Message: "Too many requests. Please try again later."})
	})
}

// clientIP is the host part of RemoteAddr. Proxy headers are resolved once,
// earlier in the chain, by middleware.RealIP.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
