// Package config, uygulamanın tüm konfigürasyonunu merkezi olarak yönetir.
// Environment variable'lardan okur, .env dosyasını da destekler.
//
// Her yerde ayrı ayrı os.Getenv() çağırmak yerine tek bir Config nesnesi taşırız —
// hangi ayarın nereden geldiği tek bir dosyadan okunabilir.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config, uygulamanın tüm konfigürasyon değerlerini taşır.
// Her alt bölüm ayrı bir struct — her struct tek bir concern'ü temsil eder.
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	Upload    UploadConfig
	S3        S3Config
	RateLimit RateLimitConfig
}

// ServerConfig, HTTP server ayarları.
type ServerConfig struct {
	Host string
	Port int
}

// DatabaseConfig, SQLite database ayarları.
type DatabaseConfig struct {
	Path string // SQLite dosya yolu (ör: ./data/vidtube.db)
}

// JWTConfig, JWT token ayarları.
//
// Access token süresi dakika, refresh token süresi gün cinsindendir.
// CookieExpiry ise tarayıcıya yazılan cookie'nin ömrüdür — imzalı refresh
// token'ın kendi süresinden BAĞIMSIZ bir değerdir, ikisi karıştırılmamalı.
type JWTConfig struct {
	Secret              string // Token imzalama anahtarı — GİZLİ TUTULMALI
	AccessTokenExpiry   int    // Dakika cinsinden (varsayılan: 15)
	RefreshTokenExpiry  int    // Gün cinsinden (varsayılan: 7)
	CookieExpiryMinutes int    // Cookie ömrü, dakika (varsayılan: 30)
}

// UploadConfig, multipart dosya yükleme ayarları.
type UploadConfig struct {
	MaxSize int64 // Byte cinsinden max dosya boyutu (varsayılan: 8MB)
}

// S3Config, medya host (S3 uyumlu — MinIO dahil) ayarları.
type S3Config struct {
	Endpoint      string // S3 API endpoint (ör: http://localhost:9000)
	Region        string
	Bucket        string
	AccessKey     string
	SecretKey     string
	PublicBaseURL string // Yüklenen dosyaların dışarıdan erişileceği taban URL
}

// RateLimitConfig, credential endpoint'leri (login/register) için
// IP bazlı deneme sınırı ayarları.
type RateLimitConfig struct {
	MaxAttempts   int // Pencere başına izin verilen deneme (varsayılan: 5)
	WindowMinutes int // Pencere süresi, dakika (varsayılan: 2)
}

// Load, environment variable'lardan Config oluşturur.
// .env dosyası varsa önce onu yükler (development kolaylığı için).
func Load() (*Config, error) {
	// .env dosyası yoksa hata vermez, sessizce devam eder.
	// Production'da bu dosya olmaz, gerçek env variable'lar kullanılır.
	_ = godotenv.Load()

	port, err := strconv.Atoi(getEnv("SERVER_PORT", "9090"))
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT: %w", err)
	}

	accessExpiry, err := strconv.Atoi(getEnv("JWT_ACCESS_EXPIRY_MINUTES", "15"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_ACCESS_EXPIRY_MINUTES: %w", err)
	}

	refreshExpiry, err := strconv.Atoi(getEnv("JWT_REFRESH_EXPIRY_DAYS", "7"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_REFRESH_EXPIRY_DAYS: %w", err)
	}

	cookieExpiry, err := strconv.Atoi(getEnv("COOKIE_EXPIRY_MINUTES", "30"))
	if err != nil {
		return nil, fmt.Errorf("invalid COOKIE_EXPIRY_MINUTES: %w", err)
	}

	maxSize, err := strconv.ParseInt(getEnv("UPLOAD_MAX_SIZE", "8388608"), 10, 64) // 8MB
	if err != nil {
		return nil, fmt.Errorf("invalid UPLOAD_MAX_SIZE: %w", err)
	}

	rateLimitAttempts, err := strconv.Atoi(getEnv("RATE_LIMIT_MAX_ATTEMPTS", "5"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_MAX_ATTEMPTS: %w", err)
	}

	rateLimitWindow, err := strconv.Atoi(getEnv("RATE_LIMIT_WINDOW_MINUTES", "2"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_WINDOW_MINUTES: %w", err)
	}

	jwtSecret := getEnv("JWT_SECRET", "")
	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is required")
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: port,
		},
		Database: DatabaseConfig{
			Path: getEnv("DATABASE_PATH", "./data/vidtube.db"),
		},
		JWT: JWTConfig{
			Secret:              jwtSecret,
			AccessTokenExpiry:   accessExpiry,
			RefreshTokenExpiry:  refreshExpiry,
			CookieExpiryMinutes: cookieExpiry,
		},
		Upload: UploadConfig{
			MaxSize: maxSize,
		},
		S3: S3Config{
			Endpoint:      getEnv("S3_ENDPOINT", "http://localhost:9000"),
			Region:        getEnv("S3_REGION", "us-east-1"),
			Bucket:        getEnv("S3_BUCKET", "vidtube-media"),
			AccessKey:     getEnv("S3_ACCESS_KEY", ""),
			SecretKey:     getEnv("S3_SECRET_KEY", ""),
			PublicBaseURL: getEnv("S3_PUBLIC_BASE_URL", ""),
		},
		RateLimit: RateLimitConfig{
			MaxAttempts:   rateLimitAttempts,
			WindowMinutes: rateLimitWindow,
		},
	}

	return cfg, nil
}

// Addr, HTTP server'ın dinleyeceği adresi döner (ör: "0.0.0.0:9090").
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// getEnv, environment variable'ı okur, yoksa fallback değeri döner.
func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}
