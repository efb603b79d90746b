// Package models, uygulamanın domain modellerini (veri yapıları) tanımlar.
//
// Model, veritabanındaki bir tablonun Go karşılığıdır; aynı zamanda API'den
// gelen/giden verilerin şeklini de belirler. `json:"username"` gibi tag'ler
// struct field'larının JSON'a nasıl serialize edileceğini söyler.
package models

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// emailRegex, basit email format kontrolü.
// RFC 5322'nin tamamını kapsamaz — amacımız bariz hatalı girdiyi yakalamak.
var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// User, bir kullanıcı hesabını temsil eder.
//
// PasswordHash ve RefreshToken alanları `json:"-"` taşır — API response'a
// ASLA dahil edilmezler. RefreshToken, kullanıcının tek canlı refresh
// credential'ıdır: login/refresh üzerine yazar, logout NULL'lar.
type User struct {
	ID            string    `json:"id"`
	Username      string    `json:"username"`
	Email         string    `json:"email"`
	FullName      string    `json:"fullName"`
	AvatarURL     string    `json:"avatar"`
	CoverImageURL *string   `json:"coverImage"` // *string = nullable, kapak resmi opsiyonel
	PasswordHash  string    `json:"-"`
	RefreshToken  *string   `json:"-"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Sanitized, API response'a uygun bir kopya döner.
// Hash ve refresh token zaten json:"-" ile gizli; yine de kopyada
// sıfırlanır ki model yanlışlıkla başka bir yere taşınırsa sızıntı olmasın.
func (u *User) Sanitized() *User {
	c := *u
	c.PasswordHash = ""
	c.RefreshToken = nil
	return &c
}

// RegisterRequest, kayıt formundan (multipart) gelen alanlar.
// Avatar ve kapak resmi dosya olarak ayrıca gelir — burada sadece text alanlar var.
type RegisterRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Username string `json:"username"`
}

// Validate, RegisterRequest'in geçerli olup olmadığını kontrol eder.
// Tüm alanlar zorunludur; email ayrıca format kontrolünden geçer.
func (r *RegisterRequest) Validate() error {
	r.FullName = strings.TrimSpace(r.FullName)
	r.Email = strings.TrimSpace(r.Email)
	r.Username = strings.TrimSpace(r.Username)

	if r.FullName == "" {
		return fmt.Errorf("fullName is required")
	}
	if r.Email == "" {
		return fmt.Errorf("email is required")
	}
	if !emailRegex.MatchString(r.Email) {
		return fmt.Errorf("invalid email format")
	}
	if r.Password == "" {
		return fmt.Errorf("password is required")
	}
	if r.Username == "" {
		return fmt.Errorf("username is required")
	}

	return nil
}

// LoginRequest, giriş yaparken gelen veri.
// Kullanıcı email VEYA username ile giriş yapabilir — en az biri dolu olmalı.
type LoginRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// Validate, LoginRequest'in geçerli olup olmadığını kontrol eder.
func (r *LoginRequest) Validate() error {
	r.Email = strings.TrimSpace(r.Email)
	r.Username = strings.TrimSpace(r.Username)

	if r.Email == "" && r.Username == "" {
		return fmt.Errorf("email or username is required")
	}
	if r.Password == "" {
		return fmt.Errorf("password is required")
	}
	return nil
}

// Identifier, login'de kullanılacak kimliği döner (email öncelikli).
func (r *LoginRequest) Identifier() string {
	if r.Email != "" {
		return r.Email
	}
	return r.Username
}
