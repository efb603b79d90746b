package ratelimit

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestAllowUpToMax(t *testing.T) {
	l := New(3, time.Minute)
	defer l.Stop()

	require.True(t, l.Allow("1.2.3.4"))
	require.True(t, l.Allow("1.2.3.4"))
	require.True(t, l.Allow("1.2.3.4"))
	require.False(t, l.Allow("1.2.3.4"))

	// Farklı IP'ler birbirinden bağımsız sayılır
	require.True(t, l.Allow("5.6.7.8"))
}

func TestResetClearsCounter(t *testing.T) {
	l := New(2, time.Minute)
	defer l.Stop()

	require.True(t, l.Allow("1.2.3.4"))
	require.True(t, l.Allow("1.2.3.4"))
	require.False(t, l.Allow("1.2.3.4"))

	l.Reset("1.2.3.4")
	require.True(t, l.Allow("1.2.3.4"))
}

func TestWindowExpiry(t *testing.T) {
	l := New(1, 10*time.Millisecond)
	defer l.Stop()

	require.True(t, l.Allow("1.2.3.4"))
	require.False(t, l.Allow("1.2.3.4"))

	time.Sleep(20 * time.Millisecond)
	require.True(t, l.Allow("1.2.3.4"))
}

func TestRetryAfter(t *testing.T) {
	l := New(1, time.Minute)
	defer l.Stop()

	require.Zero(t, l.RetryAfter("1.2.3.4"))

	l.Allow("1.2.3.4")
	after := l.RetryAfter("1.2.3.4")
	require.Greater(t, after, 0)
	require.LessOrEqual(t, after, 61)
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		headers    map[string]string
		want       string
	}{
		{"remote addr", "10.0.0.1:5555", nil, "10.0.0.1"},
		{"x-real-ip", "10.0.0.1:5555", map[string]string{"X-Real-IP": "2.2.2.2"}, "2.2.2.2"},
		{"x-forwarded-for single", "10.0.0.1:5555", map[string]string{"X-Forwarded-For": "3.3.3.3"}, "3.3.3.3"},
		{"x-forwarded-for chain", "10.0.0.1:5555", map[string]string{"X-Forwarded-For": "4.4.4.4, 10.0.0.2"}, "4.4.4.4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/", nil)
			r.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			require.Equal(t, tt.want, ClientIP(r))
		})
	}
}
