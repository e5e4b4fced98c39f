package middleware

import (
	"net"
	"net/http"
	"strings"

	"github.com/lepotilnica/SalonBookingService/internal/api/handlers"
	"github.com/lepotilnica/SalonBookingService/pkg/metrics"
)

const msgTooManyRequests = "too many requests, please try again later"

// Limiter интерфейс лимитера запросов
type Limiter interface {
	Allow(token string) (bool, int)
	Name() string
}

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}

// RateLimit ограничивает частоту запросов по IP клиента.
// m может быть nil, если метрики выключены.
func RateLimit(limiter Limiter, m *metrics.Metrics, logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := ClientIP(r)

			allowed, _ := limiter.Allow(ip)
			if !allowed {
				logger.Warn("RateLimit: %s rejected for %s %s (limiter=%s)",
					ip, r.Method, r.URL.Path, limiter.Name())
				if m != nil {
					m.RateLimitRejections.WithLabelValues(limiter.Name()).Inc()
				}
				handlers.RespondError(w, http.StatusTooManyRequests, msgTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// ClientIP извлекает IP клиента с учетом обратного прокси
func ClientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		// Берем первый адрес цепочки, он принадлежит клиенту
		parts := strings.Split(forwarded, ",")
		return strings.TrimSpace(parts[0])
	}

	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return strings.TrimSpace(realIP)
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
