package middleware

import (
	"net/http"
	"strconv"

	"github.com/akinalp/vidtube/pkg"
	"github.com/akinalp/vidtube/pkg/ratelimit"
)

// RateLimit, credential endpoint'lerini IP bazlı deneme sınırına bağlar.
//
// Limit aşıldığında 429 + Retry-After döner, next ÇAĞRILMAZ.
// İstek 2xx ile biterse IP'nin sayacı sıfırlanır — başarılı login'den
// sonra kullanıcı kalan pencere boyunca bloke kalmaz. Handler limiter'ı
// bilmez; sıfırlama status code üzerinden buradan yapılır.
func RateLimit(limiter *ratelimit.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := ratelimit.ClientIP(r)

			if !limiter.Allow(ip) {
				w.Header().Set("Retry-After", strconv.Itoa(limiter.RetryAfter(ip)))
				pkg.ErrorWithMessage(w, http.StatusTooManyRequests, "too many attempts, try again later")
				return
			}

			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(sw, r)

			if sw.status >= 200 && sw.status < 300 {
				limiter.Reset(ip)
			}
		})
	}
}
