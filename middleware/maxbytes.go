package middleware

import "net/http"

// defaultMaxBodyBytes, JSON endpoint'leri için varsayılan body limiti (16kb).
const defaultMaxBodyBytes = 16 << 10

// MaxBytes, request body boyutunu sınırlayan middleware.
// Limit aşılırsa client 413 Request Entity Too Large alır.
// Multipart upload endpoint'lerine UYGULANMAZ — onların limiti
// ParseMultipartForm + dosya boyutu kontrolü ile ayrıca yönetilir.
func MaxBytes(maxBytes int64) func(http.Handler) http.Handler {
	if maxBytes <= 0 {
		maxBytes = defaultMaxBodyBytes
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			}
			next.ServeHTTP(w, r)
		})
	}
}
