// Package services, business logic katmanını barındırır.
//
// Service, handler (HTTP) ile repository (DB) arasında oturur:
// şifre hash'leme, JWT üretimi, credential zinciri kuralları burada yaşar.
// Service ASLA http.Request/Response bilmez, ASLA doğrudan SQL çalıştırmaz.
package services

import (
	"fmt"
	"time"

	"github.com/akinalp/vidtube/models"
	"github.com/akinalp/vidtube/pkg"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenIssuer, imzalı access/refresh token üretir ve doğrular.
//
// Her iki token da HS256 ile imzalanmış JWT'dir; aralarındaki fark
// süre (dakika vs gün) ve Kind claim'idir. Verify imza + süre kontrolü
// yapar — refresh token'ın HÂLÂ geçerli oturuma ait olup olmadığını
// bilemez, o kontrol AuthService'te stored token karşılaştırmasıyla yapılır.
type TokenIssuer interface {
	IssueAccessToken(user *models.User) (string, error)
	IssueRefreshToken(user *models.User) (string, error)
	Verify(tokenString string) (*models.TokenClaims, error)
}

// jwtIssuer, TokenIssuer'ın golang-jwt implementasyonu.
type jwtIssuer struct {
	secret     []byte
	accessExp  time.Duration
	refreshExp time.Duration
}

// NewJWTIssuer, constructor.
func NewJWTIssuer(secret string, accessExpMinutes, refreshExpDays int) TokenIssuer {
	return &jwtIssuer{
		secret:     []byte(secret),
		accessExp:  time.Duration(accessExpMinutes) * time.Minute,
		refreshExp: time.Duration(refreshExpDays) * 24 * time.Hour,
	}
}

func (i *jwtIssuer) IssueAccessToken(user *models.User) (string, error) {
	return i.sign(user, models.TokenKindAccess, i.accessExp)
}

func (i *jwtIssuer) IssueRefreshToken(user *models.User) (string, error) {
	return i.sign(user, models.TokenKindRefresh, i.refreshExp)
}

// sign, verilen türde bir token imzalar.
//
// ID (jti) claim'ine uuid yazılır — aynı saniye içinde üretilen iki token
// bile farklı string olur. Refresh rotasyonu buna dayanır: dönen token
// her zaman sunulandan farklıdır.
func (i *jwtIssuer) sign(user *models.User, kind string, exp time.Duration) (string, error) {
	now := time.Now()
	claims := &models.TokenClaims{
		UserID:   user.ID,
		Username: user.Username,
		Kind:     kind,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(now.Add(exp)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    "vidtube",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign %s token: %w", kind, err)
	}

	return signed, nil
}

// Verify, token'ın imzasını ve süresini doğrular, claims'i döner.
// İmza geçersiz veya süre dolmuşsa pkg.ErrInvalidToken döner.
func (i *jwtIssuer) Verify(tokenString string) (*models.TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.TokenClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return i.secret, nil
	})

	if err != nil {
		return nil, fmt.Errorf("%w: %v", pkg.ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*models.TokenClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("%w: invalid claims", pkg.ErrInvalidToken)
	}

	return claims, nil
}
