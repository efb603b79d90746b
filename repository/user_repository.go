// Package repository, veritabanı erişim katmanını tanımlar.
//
// Service katmanı doğrudan SQL yazmaz — repository interface'i üzerinden
// çalışır. Interface sayesinde testlerde fake repository kullanılabilir ve
// SQLite'tan başka bir store'a geçiş sadece yeni bir implementasyon gerektirir.
package repository

import (
	"context"

	"github.com/akinalp/vidtube/models"
)

// UserRepository, kullanıcı kayıtları için veritabanı işlemleri.
type UserRepository interface {
	// Create, yeni kullanıcı ekler. Username veya email çakışırsa
	// pkg.ErrAlreadyExists döner.
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	// GetByUsernameOrEmail, verilen kimlik username ya da email kolonuyla
	// eşleşen kullanıcıyı döner — login her iki kimlikle yapılabilir.
	GetByUsernameOrEmail(ctx context.Context, identifier string) (*models.User, error)
	// ExistsByUsernameOrEmail, kayıt öncesi çakışma ön kontrolü.
	// Medya yüklemesinden ÖNCE çağrılır ki çakışan kayıt için boşuna upload yapılmasın.
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
	// UpdateRefreshToken, kullanıcının canlı refresh token'ını değiştirir.
	// nil → token'ı temizle (logout), *string → yeni token yaz (login/refresh).
	UpdateRefreshToken(ctx context.Context, userID string, token *string) error
}
