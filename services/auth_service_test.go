package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/akinalp/vidtube/models"
	"github.com/akinalp/vidtube/pkg"
	"github.com/stretchr/testify/require"
)

// --- fakes ---

// fakeUserRepo, UserRepository'nin in-memory implementasyonu.
// Gerçek DB gibi kopyalar döner — service'in elindeki struct'ı mutate
// etmesi store'u etkilemez.
type fakeUserRepo struct {
	users map[string]*models.User
	seq   int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*models.User)}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	for _, u := range f.users {
		if u.Username == user.Username || u.Email == user.Email {
			return fmt.Errorf("%w: user already exists", pkg.ErrAlreadyExists)
		}
	}
	f.seq++
	user.ID = fmt.Sprintf("u%d", f.seq)
	user.CreatedAt = time.Now()
	c := *user
	f.users[user.ID] = &c
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, pkg.ErrNotFound
	}
	c := *u
	return &c, nil
}

func (f *fakeUserRepo) GetByUsernameOrEmail(ctx context.Context, identifier string) (*models.User, error) {
	for _, u := range f.users {
		if u.Username == identifier || u.Email == identifier {
			c := *u
			return &c, nil
		}
	}
	return nil, pkg.ErrNotFound
}

func (f *fakeUserRepo) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	for _, u := range f.users {
		if u.Username == username || u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserRepo) UpdateRefreshToken(ctx context.Context, userID string, token *string) error {
	u, ok := f.users[userID]
	if !ok {
		return pkg.ErrNotFound
	}
	if token == nil {
		u.RefreshToken = nil
		return nil
	}
	c := *token
	u.RefreshToken = &c
	return nil
}

// storedToken, store'daki canlı refresh token'ı döner (test assertion'ları için).
func (f *fakeUserRepo) storedToken(userID string) *string {
	if u, ok := f.users[userID]; ok {
		return u.RefreshToken
	}
	return nil
}

// fakeUploader, MediaUploader'ın test implementasyonu.
type fakeUploader struct {
	failWith error
	uploads  int
}

func (f *fakeUploader) Upload(ctx context.Context, file *ImageFile) (string, error) {
	if f.failWith != nil {
		return "", f.failWith
	}
	f.uploads++
	return fmt.Sprintf("https://media.test/images/%d_%s", f.uploads, file.Filename), nil
}

// --- helpers ---

func newTestAuthService(t *testing.T) (AuthService, *fakeUserRepo, *fakeUploader) {
	t.Helper()
	repo := newFakeUserRepo()
	uploader := &fakeUploader{}
	issuer := NewJWTIssuer("test-secret", 15, 7)
	return NewAuthService(repo, issuer, uploader), repo, uploader
}

func pngFile(name string) *ImageFile {
	return &ImageFile{
		Content:     strings.NewReader("fake-png-bytes"),
		Filename:    name,
		ContentType: "image/png",
	}
}

func registerReq() *models.RegisterRequest {
	return &models.RegisterRequest{
		FullName: "Ann",
		Email:    "a@x.com",
		Password: "p",
		Username: "ann",
	}
}

func registerAnn(t *testing.T, svc AuthService) *models.User {
	t.Helper()
	user, err := svc.Register(context.Background(), registerReq(), pngFile("avatar.png"), nil)
	require.NoError(t, err)
	return user
}

// --- Register ---

func TestRegisterSuccess(t *testing.T) {
	svc, repo, _ := newTestAuthService(t)

	user, err := svc.Register(context.Background(), registerReq(), pngFile("avatar.png"), pngFile("cover.jpg"))
	require.NoError(t, err)

	require.NotEmpty(t, user.ID)
	require.Equal(t, "ann", user.Username)
	require.Contains(t, user.AvatarURL, "avatar.png")
	require.NotNil(t, user.CoverImageURL)

	// Dönen kayıt sanitized olmalı
	require.Empty(t, user.PasswordHash)
	require.Nil(t, user.RefreshToken)

	// Store'da hash var (plaintext değil)
	stored, err := repo.GetByID(context.Background(), user.ID)
	require.NoError(t, err)
	require.NotEmpty(t, stored.PasswordHash)
	require.NotEqual(t, "p", stored.PasswordHash)
}

func TestRegisterWithoutCoverImage(t *testing.T) {
	svc, _, _ := newTestAuthService(t)

	user, err := svc.Register(context.Background(), registerReq(), pngFile("avatar.png"), nil)
	require.NoError(t, err)
	require.Nil(t, user.CoverImageURL)
}

func TestRegisterRequiresAvatar(t *testing.T) {
	svc, _, uploader := newTestAuthService(t)

	_, err := svc.Register(context.Background(), registerReq(), nil, nil)
	require.True(t, errors.Is(err, pkg.ErrBadRequest))
	require.Zero(t, uploader.uploads)
}

func TestRegisterValidation(t *testing.T) {
	svc, _, _ := newTestAuthService(t)

	tests := []struct {
		name string
		req  *models.RegisterRequest
	}{
		{"empty fullName", &models.RegisterRequest{Email: "a@x.com", Password: "p", Username: "ann"}},
		{"empty email", &models.RegisterRequest{FullName: "Ann", Password: "p", Username: "ann"}},
		{"invalid email", &models.RegisterRequest{FullName: "Ann", Email: "not-an-email", Password: "p", Username: "ann"}},
		{"empty password", &models.RegisterRequest{FullName: "Ann", Email: "a@x.com", Username: "ann"}},
		{"empty username", &models.RegisterRequest{FullName: "Ann", Email: "a@x.com", Password: "p"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tt.req, pngFile("a.png"), nil)
			require.True(t, errors.Is(err, pkg.ErrBadRequest))
		})
	}
}

func TestRegisterDuplicateIdentityRejected(t *testing.T) {
	svc, repo, _ := newTestAuthService(t)
	original := registerAnn(t, svc)

	// Aynı email, farklı username
	dup := registerReq()
	dup.Username = "other"
	_, err := svc.Register(context.Background(), dup, pngFile("b.png"), nil)
	require.True(t, errors.Is(err, pkg.ErrAlreadyExists))

	// Aynı username, farklı email
	dup2 := registerReq()
	dup2.Email = "other@x.com"
	_, err = svc.Register(context.Background(), dup2, pngFile("c.png"), nil)
	require.True(t, errors.Is(err, pkg.ErrAlreadyExists))

	// Orijinal kayıt değişmemiş olmalı
	stored, err := repo.GetByID(context.Background(), original.ID)
	require.NoError(t, err)
	require.Equal(t, "a@x.com", stored.Email)
}

func TestRegisterAvatarUploadFailure(t *testing.T) {
	repo := newFakeUserRepo()
	uploader := &fakeUploader{failWith: fmt.Errorf("%w: bucket unreachable", pkg.ErrUploadFailed)}
	svc := NewAuthService(repo, NewJWTIssuer("test-secret", 15, 7), uploader)

	_, err := svc.Register(context.Background(), registerReq(), pngFile("a.png"), nil)
	require.True(t, errors.Is(err, pkg.ErrUploadFailed))

	// Upload hatasında kullanıcı oluşturulmamalı
	_, err = repo.GetByUsernameOrEmail(context.Background(), "ann")
	require.True(t, errors.Is(err, pkg.ErrNotFound))
}

// --- Login ---

func TestLoginSuccessByUsernameAndEmail(t *testing.T) {
	svc, repo, _ := newTestAuthService(t)
	user := registerAnn(t, svc)

	for _, req := range []*models.LoginRequest{
		{Username: "ann", Password: "p"},
		{Email: "a@x.com", Password: "p"},
	} {
		tokens, err := svc.Login(context.Background(), req)
		require.NoError(t, err)
		require.NotEmpty(t, tokens.AccessToken)
		require.NotEmpty(t, tokens.RefreshToken)

		// Refresh token persist edilmiş olmalı
		stored := repo.storedToken(user.ID)
		require.NotNil(t, stored)
		require.Equal(t, tokens.RefreshToken, *stored)

		// Dönen kullanıcı sanitized
		require.Empty(t, tokens.User.PasswordHash)
		require.Nil(t, tokens.User.RefreshToken)
	}
}

func TestLoginUnknownUser(t *testing.T) {
	svc, _, _ := newTestAuthService(t)

	_, err := svc.Login(context.Background(), &models.LoginRequest{Username: "ghost", Password: "p"})
	require.True(t, errors.Is(err, pkg.ErrNotFound))
}

func TestLoginWrongPasswordLeavesStoredTokenUntouched(t *testing.T) {
	svc, repo, _ := newTestAuthService(t)
	user := registerAnn(t, svc)

	// Önce geçerli bir oturum aç — store'da token olsun
	tokens, err := svc.Login(context.Background(), &models.LoginRequest{Username: "ann", Password: "p"})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), &models.LoginRequest{Username: "ann", Password: "wrong"})
	require.True(t, errors.Is(err, pkg.ErrUnauthorized))

	// Stored refresh token değişmemiş olmalı
	stored := repo.storedToken(user.ID)
	require.NotNil(t, stored)
	require.Equal(t, tokens.RefreshToken, *stored)
}

func TestLoginOverwritesPreviousRefreshToken(t *testing.T) {
	svc, repo, _ := newTestAuthService(t)
	user := registerAnn(t, svc)

	first, err := svc.Login(context.Background(), &models.LoginRequest{Username: "ann", Password: "p"})
	require.NoError(t, err)

	second, err := svc.Login(context.Background(), &models.LoginRequest{Username: "ann", Password: "p"})
	require.NoError(t, err)

	require.NotEqual(t, first.RefreshToken, second.RefreshToken)
	require.Equal(t, second.RefreshToken, *repo.storedToken(user.ID))

	// Eski token artık refresh için kullanılamaz
	_, err = svc.RefreshAccessToken(context.Background(), first.RefreshToken)
	require.True(t, errors.Is(err, pkg.ErrTokenMismatch))
}

// --- RefreshAccessToken ---

func TestRefreshRotatesTokens(t *testing.T) {
	svc, repo, _ := newTestAuthService(t)
	user := registerAnn(t, svc)

	tokens, err := svc.Login(context.Background(), &models.LoginRequest{Username: "ann", Password: "p"})
	require.NoError(t, err)

	rotated, err := svc.RefreshAccessToken(context.Background(), tokens.RefreshToken)
	require.NoError(t, err)

	// Rotasyon: dönen token sunulandan farklı, store yeni değeri yansıtıyor
	require.NotEqual(t, tokens.RefreshToken, rotated.RefreshToken)
	require.Equal(t, rotated.RefreshToken, *repo.storedToken(user.ID))

	// Bayat token reuse → mismatch
	_, err = svc.RefreshAccessToken(context.Background(), tokens.RefreshToken)
	require.True(t, errors.Is(err, pkg.ErrTokenMismatch))
}

func TestRefreshMissingToken(t *testing.T) {
	svc, _, _ := newTestAuthService(t)

	_, err := svc.RefreshAccessToken(context.Background(), "")
	require.True(t, errors.Is(err, pkg.ErrUnauthorized))
}

func TestRefreshInvalidToken(t *testing.T) {
	svc, _, _ := newTestAuthService(t)

	_, err := svc.RefreshAccessToken(context.Background(), "garbage")
	require.True(t, errors.Is(err, pkg.ErrInvalidToken))
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	svc, _, _ := newTestAuthService(t)
	registerAnn(t, svc)

	tokens, err := svc.Login(context.Background(), &models.LoginRequest{Username: "ann", Password: "p"})
	require.NoError(t, err)

	// Access token imzası geçerli ama kind yanlış
	_, err = svc.RefreshAccessToken(context.Background(), tokens.AccessToken)
	require.True(t, errors.Is(err, pkg.ErrInvalidToken))
}

func TestRefreshUnknownUser(t *testing.T) {
	repo := newFakeUserRepo()
	issuer := NewJWTIssuer("test-secret", 15, 7)
	svc := NewAuthService(repo, issuer, &fakeUploader{})

	// Store'da olmayan bir kullanıcı için imzası geçerli token üret
	token, err := issuer.IssueRefreshToken(&models.User{ID: "ghost", Username: "ghost"})
	require.NoError(t, err)

	_, err = svc.RefreshAccessToken(context.Background(), token)
	require.True(t, errors.Is(err, pkg.ErrNotFound))
}

// --- Logout ---

func TestLogoutClearsStoredTokenPermanently(t *testing.T) {
	svc, repo, _ := newTestAuthService(t)
	user := registerAnn(t, svc)

	tokens, err := svc.Login(context.Background(), &models.LoginRequest{Username: "ann", Password: "p"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), user.ID))
	require.Nil(t, repo.storedToken(user.ID))

	// Az önce temizlenen token ile refresh denemesi başarısız olmalı
	_, err = svc.RefreshAccessToken(context.Background(), tokens.RefreshToken)
	require.True(t, errors.Is(err, pkg.ErrTokenMismatch))
}

// --- ValidateAccessToken ---

func TestValidateAccessTokenRejectsRefreshToken(t *testing.T) {
	svc, _, _ := newTestAuthService(t)
	registerAnn(t, svc)

	tokens, err := svc.Login(context.Background(), &models.LoginRequest{Username: "ann", Password: "p"})
	require.NoError(t, err)

	claims, err := svc.ValidateAccessToken(tokens.AccessToken)
	require.NoError(t, err)
	require.Equal(t, "ann", claims.Username)

	_, err = svc.ValidateAccessToken(tokens.RefreshToken)
	require.True(t, errors.Is(err, pkg.ErrInvalidToken))
}
