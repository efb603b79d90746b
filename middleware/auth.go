// Package middleware, HTTP request pipeline'ına eklenen ara katmanları barındırır.
//
// Go'da middleware bir fonksiyondur: func(next http.Handler) http.Handler.
// Middleware kendi işini yapar (ör: token doğrula), sonra next'i çağırır;
// hata varsa next çağrılmaz — request burada durur.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/akinalp/vidtube/handlers"
	"github.com/akinalp/vidtube/pkg"
	"github.com/akinalp/vidtube/repository"
	"github.com/akinalp/vidtube/services"
)

// AuthMiddleware, access token doğrulama middleware'ı.
type AuthMiddleware struct {
	authService services.AuthService
	userRepo    repository.UserRepository
}

// NewAuthMiddleware, constructor.
func NewAuthMiddleware(authService services.AuthService, userRepo repository.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{
		authService: authService,
		userRepo:    userRepo,
	}
}

// Require, access token zorunlu kılan middleware.
//
// Token iki yerden okunur: önce "Authorization: Bearer <token>" header'ı,
// yoksa "accessToken" cookie'si (tarayıcı client'ları cookie ile gelir).
// Token geçerliyse kullanıcı DB'den getirilip context'e eklenir;
// geçersizse 401 dönülür, next ÇAĞRILMAZ.
func (m *AuthMiddleware) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString := extractToken(r)
		if tokenString == "" {
			pkg.ErrorWithMessage(w, http.StatusUnauthorized, "access token required")
			return
		}

		claims, err := m.authService.ValidateAccessToken(tokenString)
		if err != nil {
			pkg.ErrorWithMessage(w, http.StatusUnauthorized, "invalid access token")
			return
		}

		// Token geçerli ama kullanıcı silinmiş olabilir — DB'den getir
		user, err := m.userRepo.GetByID(r.Context(), claims.UserID)
		if err != nil {
			pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found")
			return
		}

		// Hash ve refresh token context'te taşınmamalı
		ctx := context.WithValue(r.Context(), handlers.UserContextKey, user.Sanitized())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// extractToken, request'ten access token'ı çıkarır (header > cookie).
func extractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}

	if cookie, err := r.Cookie("accessToken"); err == nil {
		return cookie.Value
	}

	return ""
}
