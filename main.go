// Package main, vidtube backend uygulamasının giriş noktasıdır.
//
// Bu dosyanın görevi — Dependency Injection "wire-up":
//  1. Config'i yükle
//  2. Database'i başlat
//  3. Repository'leri oluştur (DB bağlantısı ile)
//  4. Service'leri oluştur (repo + token issuer + medya host client ile)
//  5. Handler'ları oluştur (service'ler ile)
//  6. Middleware'ları oluştur
//  7. HTTP router'ı kur, route'ları bağla
//  8. CORS yapılandır
//  9. HTTP Server'ı başlat
// 10. Graceful shutdown
//
// Global değişken YOK — her şey bu fonksiyonda oluşturulup birbirine bağlanıyor.
package main

import (
	"context"
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/akinalp/vidtube/config"
	"github.com/akinalp/vidtube/database"
	"github.com/akinalp/vidtube/handlers"
	"github.com/akinalp/vidtube/middleware"
	"github.com/akinalp/vidtube/pkg/ratelimit"
	"github.com/akinalp/vidtube/repository"
	"github.com/akinalp/vidtube/services"
	"github.com/rs/cors"
)

func main() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.Println("[main] vidtube server starting...")

	// ─── 1. Config ───
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[main] failed to load config: %v", err)
	}
	log.Printf("[main] config loaded (port=%d)", cfg.Server.Port)

	// ─── 2. Database ───
	migrationsFS, err := fs.Sub(database.EmbeddedMigrations, "migrations")
	if err != nil {
		log.Fatalf("[main] failed to access embedded migrations: %v", err)
	}

	db, err := database.New(cfg.Database.Path, migrationsFS)
	if err != nil {
		log.Fatalf("[main] failed to initialize database: %v", err)
	}
	defer db.Close()

	// ─── 3. Repository Layer ───
	userRepo := repository.NewSQLiteUserRepo(db.Conn)

	// ─── 4. Service Layer ───
	tokenIssuer := services.NewJWTIssuer(
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)

	mediaService, err := services.NewS3MediaService(context.Background(), cfg.S3)
	if err != nil {
		log.Fatalf("[main] failed to initialize media service: %v", err)
	}

	authService := services.NewAuthService(userRepo, tokenIssuer, mediaService)

	// ─── 5. Handler Layer ───
	authHandler := handlers.NewAuthHandler(authService, cfg.Upload.MaxSize, cfg.JWT.CookieExpiryMinutes)

	// ─── 6. Middleware ───
	authMiddleware := middleware.NewAuthMiddleware(authService, userRepo)
	jsonBody := middleware.MaxBytes(16 << 10) // JSON endpoint'leri için 16kb limit

	// Credential endpoint'lerinde brute-force koruması
	loginLimiter := ratelimit.New(
		cfg.RateLimit.MaxAttempts,
		time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute,
	)
	defer loginLimiter.Stop()
	rateLimited := middleware.RateLimit(loginLimiter)

	// ─── 7. HTTP Router ───
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /api/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"status":"ok","service":"vidtube"}`)
	})

	// Public endpoint'ler (token gerekmez)
	mux.Handle("POST /api/register", rateLimited(http.HandlerFunc(authHandler.Register)))
	mux.Handle("POST /api/login", rateLimited(jsonBody(http.HandlerFunc(authHandler.Login))))
	mux.HandleFunc("GET /api/regenerateToken", authHandler.RefreshAccessToken)

	// Protected endpoint'ler — authMiddleware.Require() sarar
	mux.Handle("GET /api/logout", authMiddleware.Require(http.HandlerFunc(authHandler.Logout)))
	mux.Handle("GET /api/users/me", authMiddleware.Require(http.HandlerFunc(authHandler.Me)))

	// ─── 8. CORS ───
	// Tüm origin'lere açık — public API. Cookie tabanlı client'lar kendi
	// origin'lerini ayrıca tanımlamalı (credentials ile "*" birlikte çalışmaz).
	corsHandler := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	})

	handler := corsHandler.Handler(middleware.RequestLog(mux))

	// ─── 9. HTTP Server ───
	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// ─── 10. Graceful Shutdown ───
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("[main] server listening on %s", cfg.Server.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("[main] server error: %v", err)
		}
	}()

	<-done
	log.Println("[main] shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("[main] forced shutdown: %v", err)
	}

	log.Println("[main] server stopped gracefully")
}
