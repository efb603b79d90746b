package models

import "github.com/golang-jwt/jwt/v5"

// Token türleri. Access token korumalı endpoint'lerde sunulur (dakika ömürlü),
// refresh token SADECE yeni bir access token almak için kullanılır (gün ömürlü).
// Kind claim'i, bir access token'ın refresh yerine kullanılmasını engeller.
const (
	TokenKindAccess  = "access"
	TokenKindRefresh = "refresh"
)

// TokenClaims, JWT token'ın içindeki veriler (payload).
//
// Bu struct models paketinde tanımlanır çünkü birden fazla katman
// (services, handlers, middleware) tarafından kullanılır —
// circular dependency'yi önler, her katman models'e bağımlı olabilir.
type TokenClaims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Kind     string `json:"kind"`
	jwt.RegisteredClaims
}
