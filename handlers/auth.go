// Package handlers, HTTP request/response işlemlerini yönetir.
//
// Handler'ın görevi ince (thin) olmalı:
// 1. Request body'yi parse et (JSON/multipart → struct)
// 2. Service katmanını çağır
// 3. Sonucu HTTP response olarak döndür
//
// Handler ASLA iş mantığı içermez, ASLA doğrudan DB'ye erişmez.
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/akinalp/vidtube/models"
	"github.com/akinalp/vidtube/pkg"
	"github.com/akinalp/vidtube/services"
)

// Cookie isimleri — login yazan, logout temizleyen, refresh okuyan
// üç handler da aynı sabitleri kullanır.
const (
	accessTokenCookie  = "accessToken"
	refreshTokenCookie = "refreshToken"
)

// allowedImageMimes, avatar/kapak yüklemesinde kabul edilen resim MIME type'ları.
var allowedImageMimes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// AuthHandler, hesap endpoint'lerini yöneten struct.
// Service interface'i constructor'dan alınır (DI).
type AuthHandler struct {
	authService   services.AuthService
	maxUploadSize int64
	cookieTTL     time.Duration
}

// NewAuthHandler, constructor.
// cookieTTLMinutes: token cookie'lerinin tarayıcıdaki ömrü. İmzalı refresh
// token'ın kendi süresinden bağımsızdır (bkz. config.JWTConfig).
func NewAuthHandler(authService services.AuthService, maxUploadSize int64, cookieTTLMinutes int) *AuthHandler {
	return &AuthHandler{
		authService:   authService,
		maxUploadSize: maxUploadSize,
		cookieTTL:     time.Duration(cookieTTLMinutes) * time.Minute,
	}
}

// Register godoc
// POST /api/register
// Content-Type: multipart/form-data
// Fields: fullName, email, password, username
// Files: avatar (zorunlu, max 1), coverImage (opsiyonel, max 1)
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	// maxMemory parametresi dosyanın bellekte tutulacak kısmını belirler,
	// üzeri temp dosyaya yazılır.
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		pkg.Error(w, fmt.Errorf("%w: failed to parse multipart form", pkg.ErrBadRequest))
		return
	}

	req := &models.RegisterRequest{
		FullName: r.FormValue("fullName"),
		Email:    r.FormValue("email"),
		Password: r.FormValue("password"),
		Username: r.FormValue("username"),
	}

	avatar, avatarFile, err := h.formImage(r, "avatar")
	if err != nil {
		pkg.Error(w, err)
		return
	}
	if avatarFile != nil {
		defer avatarFile.Close()
	}

	coverImage, coverFile, err := h.formImage(r, "coverImage")
	if err != nil {
		pkg.Error(w, err)
		return
	}
	if coverFile != nil {
		defer coverFile.Close()
	}

	user, err := h.authService.Register(r.Context(), req, avatar, coverImage)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, "user successfully registered", user)
}

// Login godoc
// POST /api/login
// Body: { "email" | "username": "...", "password": "..." }
//
// Başarılı girişte token çifti hem response body'de döner hem de
// httpOnly cookie olarak yazılır.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	tokens, err := h.authService.Login(r.Context(), &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	h.setAuthCookies(w, tokens)
	pkg.JSON(w, http.StatusOK, "successful login", tokens)
}

// Logout godoc
// GET /api/logout
// Auth middleware gerektirir — context'te user bilgisi olur.
//
// Stored refresh token NULL'lanır ve her iki cookie temizlenir.
// Bu kullanıcıya daha önce verilmiş refresh token'lar kalıcı olarak geçersizdir.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	user, ok := r.Context().Value(UserContextKey).(*models.User)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	if err := h.authService.Logout(r.Context(), user.ID); err != nil {
		pkg.Error(w, err)
		return
	}

	h.clearAuthCookies(w)
	pkg.JSON(w, http.StatusOK, "successfully logged out", nil)
}

// RefreshAccessToken godoc
// GET /api/regenerateToken
//
// refreshToken cookie'sini okur; geçerliyse YENİ bir access+refresh çifti
// üretir (her refresh'te rotasyon), cookie'leri tazeler ve çifti döner.
func (h *AuthHandler) RefreshAccessToken(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(refreshTokenCookie)
	if err != nil {
		pkg.Error(w, fmt.Errorf("%w: refresh token cookie required", pkg.ErrUnauthorized))
		return
	}

	tokens, err := h.authService.RefreshAccessToken(r.Context(), cookie.Value)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	h.setAuthCookies(w, tokens)
	pkg.JSON(w, http.StatusOK, "access token regenerated", tokens)
}

// Me godoc
// GET /api/users/me
// Auth middleware gerektirir.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := r.Context().Value(UserContextKey).(*models.User)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	pkg.JSON(w, http.StatusOK, "", user)
}

// formImage, multipart form'dan bir resim dosyası okur ve validate eder.
// Alan hiç gönderilmemişse (nil, nil, nil) döner — opsiyonel dosyalar için.
// Döndürülen multipart.File'ı kapatmak çağıranın sorumluluğudur.
func (h *AuthHandler) formImage(r *http.Request, field string) (*services.ImageFile, multipart.File, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("%w: failed to read %s file", pkg.ErrBadRequest, field)
	}

	if header.Size > h.maxUploadSize {
		file.Close()
		return nil, nil, fmt.Errorf("%w: %s file too large", pkg.ErrBadRequest, field)
	}

	// MIME type kontrolü — sadece resim dosyaları kabul edilir
	contentType := header.Header.Get("Content-Type")
	mimeBase := strings.TrimSpace(strings.Split(contentType, ";")[0])
	if !allowedImageMimes[mimeBase] {
		file.Close()
		return nil, nil, fmt.Errorf("%w: %s must be an image (jpeg, png, gif, webp)", pkg.ErrBadRequest, field)
	}

	return &services.ImageFile{
		Content:     file,
		Filename:    header.Filename,
		ContentType: mimeBase,
	}, file, nil
}

// setAuthCookies, token çiftini httpOnly cookie olarak yazar.
// Cookie Expires = şimdi + cookieTTL (varsayılan 30dk) — imzalı refresh
// token'ın gün ölçekli süresinden kasıtlı olarak bağımsızdır.
func (h *AuthHandler) setAuthCookies(w http.ResponseWriter, tokens *services.AuthTokens) {
	expires := time.Now().Add(h.cookieTTL)

	http.SetCookie(w, &http.Cookie{
		Name:     accessTokenCookie,
		Value:    tokens.AccessToken,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     refreshTokenCookie,
		Value:    tokens.RefreshToken,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
	})
}

// clearAuthCookies, her iki token cookie'sini geçersiz kılar.
func (h *AuthHandler) clearAuthCookies(w http.ResponseWriter) {
	for _, name := range []string{accessTokenCookie, refreshTokenCookie} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
		})
	}
}

// UserContextKey, context'te kullanıcı bilgisi taşımak için kullanılan key.
// String key yerine özel tip — namespace collision'ı önler.
type contextKey string

const UserContextKey contextKey = "user"
