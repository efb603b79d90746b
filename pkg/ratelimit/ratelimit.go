// Package ratelimit, IP bazlı sliding-window rate limiting sağlar.
//
// Login/register gibi credential endpoint'lerini brute-force denemelerine
// karşı korur. Sayaçlar in-memory tutulur (tek instance deploy için yeterli);
// arka plan goroutine'i süresi dolmuş kayıtları temizler.
//
// Leaf paket — proje içi hiçbir pakete bağımlı değildir, handlers ile
// middleware arasında import cycle yaratmadan her iki taraftan kullanılabilir.
package ratelimit

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
)

// window, bir IP için deneme sayacı ve pencere başlangıcı tutar.
// Pencere süresi dolunca sayaç sıfırdan başlar.
type window struct {
	attempts int
	start    time.Time
}

// Limiter, IP başına sliding-window deneme sınırı uygular.
type Limiter struct {
	mu       sync.Mutex
	windows  map[string]*window
	max      int
	duration time.Duration
	stop     chan struct{}
}

// New, limiter oluşturur ve temizleme goroutine'ini başlatır.
// max: pencere başına izin verilen deneme, duration: pencere süresi.
func New(max int, duration time.Duration) *Limiter {
	l := &Limiter{
		windows:  make(map[string]*window),
		max:      max,
		duration: duration,
		stop:     make(chan struct{}),
	}
	go l.cleanupLoop()
	return l
}

// Allow, verilen IP'nin yeni bir denemesine izin verilip verilmediğini döner.
// Her çağrı sayacı artırır — başarılı işlemden sonra Reset çağrılmalıdır,
// aksi halde meşru kullanıcı da pencere dolunca bloke olur.
func (l *Limiter) Allow(ip string) bool {
	now := time.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	w, ok := l.windows[ip]
	if !ok || now.Sub(w.start) > l.duration {
		l.windows[ip] = &window{attempts: 1, start: now}
		return true
	}

	w.attempts++
	return w.attempts <= l.max
}

// Reset, IP'nin sayacını siler (başarılı login sonrası).
func (l *Limiter) Reset(ip string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.windows, ip)
}

// RetryAfter, limit aşıldığında pencere sonuna kalan süreyi saniye olarak
// döner — HTTP Retry-After header değeri.
func (l *Limiter) RetryAfter(ip string) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	w, ok := l.windows[ip]
	if !ok {
		return 0
	}

	remaining := l.duration - time.Since(w.start)
	if remaining <= 0 {
		return 0
	}
	return int(remaining.Seconds()) + 1
}

// Stop, temizleme goroutine'ini durdurur.
func (l *Limiter) Stop() {
	close(l.stop)
}

func (l *Limiter) cleanupLoop() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			now := time.Now()
			l.mu.Lock()
			for ip, w := range l.windows {
				if now.Sub(w.start) > l.duration {
					delete(l.windows, ip)
				}
			}
			l.mu.Unlock()
		case <-l.stop:
			return
		}
	}
}

// ClientIP, request'ten client IP'sini çıkarır.
// Öncelik: X-Forwarded-For (ilk IP) > X-Real-IP > RemoteAddr.
// Reverse proxy arkasında RemoteAddr her zaman proxy'nin adresidir.
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if i := strings.IndexByte(xff, ','); i >= 0 {
			return strings.TrimSpace(xff[:i])
		}
		return strings.TrimSpace(xff)
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
