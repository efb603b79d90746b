package middleware

import (
	"log"
	"net/http"
	"time"
)

// statusWriter, http.ResponseWriter'ı sarıp status code'u yakalar.
// WriteHeader hiç çağrılmazsa Go 200 varsayar — default da o.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// RequestLog, her request için tek satır log yazar: method, path, status, süre.
func RequestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(sw, r)

		log.Printf("[http] %s %s %d %s", r.Method, r.URL.Path, sw.status, time.Since(start))
	})
}
