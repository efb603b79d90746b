package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/akinalp/vidtube/models"
	"github.com/akinalp/vidtube/pkg"
	"github.com/akinalp/vidtube/repository"
	"golang.org/x/crypto/bcrypt"
)

// AuthService, credential/session yaşam döngüsünü yönetir:
// kayıt, giriş, çıkış ve access token yenileme.
//
// Oturum modeli: kullanıcı başına TEK canlı refresh token, user kaydında
// saklanır. Login ve refresh üzerine yazar (eski token anında geçersizleşir),
// logout NULL'lar. Bu, en basit revocation mekanizmasıdır — bedeli çoklu
// cihaz oturumlarının desteklenmemesi.
type AuthService interface {
	Register(ctx context.Context, req *models.RegisterRequest, avatar, coverImage *ImageFile) (*models.User, error)
	Login(ctx context.Context, req *models.LoginRequest) (*AuthTokens, error)
	Logout(ctx context.Context, userID string) error
	RefreshAccessToken(ctx context.Context, incomingToken string) (*AuthTokens, error)
	ValidateAccessToken(tokenString string) (*models.TokenClaims, error)
}

// AuthTokens, login/refresh sonrası dönen token çifti + sanitized kullanıcı.
type AuthTokens struct {
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
	User         *models.User `json:"user,omitempty"`
}

// authService, AuthService interface'inin implementasyonu.
type authService struct {
	userRepo repository.UserRepository
	issuer   TokenIssuer
	uploader MediaUploader
}

// NewAuthService, constructor.
func NewAuthService(userRepo repository.UserRepository, issuer TokenIssuer, uploader MediaUploader) AuthService {
	return &authService{
		userRepo: userRepo,
		issuer:   issuer,
		uploader: uploader,
	}
}

// Register, yeni kullanıcı kaydı oluşturur.
//
// Sıra önemli: önce validation ve çakışma ön kontrolü, SONRA medya upload.
// Çakışan bir kayıt için medya host'a boşuna dosya yazılmaz.
// Unique index'ler yarış durumunda da çakışmayı yakalar — ön kontrol
// sadece erken çıkış içindir, garanti index'tedir.
//
// Avatar zorunlu, kapak resmi opsiyoneldir. Kapak yüklemesi başarısız
// olursa kayıt DEVAM eder (kapaksız) — sadece avatar hatası kaydı durdurur.
func (s *authService) Register(ctx context.Context, req *models.RegisterRequest, avatar, coverImage *ImageFile) (*models.User, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	if avatar == nil {
		return nil, fmt.Errorf("%w: avatar file is required", pkg.ErrBadRequest)
	}

	exists, err := s.userRepo.ExistsByUsernameOrEmail(ctx, req.Username, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: user already exists", pkg.ErrAlreadyExists)
	}

	avatarURL, err := s.uploader.Upload(ctx, avatar)
	if err != nil {
		return nil, err // ErrUploadFailed
	}

	var coverURL *string
	if coverImage != nil {
		url, err := s.uploader.Upload(ctx, coverImage)
		if err != nil {
			// Kapak opsiyonel — upload hatası kaydı engellemez
			log.Printf("[auth] cover image upload failed, continuing without: %v", err)
		} else {
			coverURL = &url
		}
	}

	// Bcrypt hash (cost=12)
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:      req.Username,
		Email:         req.Email,
		FullName:      req.FullName,
		AvatarURL:     avatarURL,
		CoverImageURL: coverURL,
		PasswordHash:  string(hash),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err // ErrAlreadyExists olabilir (yarış durumu)
	}

	return user.Sanitized(), nil
}

// Login, kullanıcı girişi yapar.
//
// Şifre, SUNULAN plaintext ile stored hash arasında bcrypt karşılaştırmasıyla
// doğrulanır. Yanlış şifrede stored refresh token'a DOKUNULMAZ.
// Başarılı girişte yeni bir access+refresh çifti üretilir ve refresh token
// user kaydına yazılır — önceki değer ne olursa olsun üzerine yazılır,
// yani daha önce verilmiş her refresh token o anda geçersizleşir.
func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (*AuthTokens, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	user, err := s.userRepo.GetByUsernameOrEmail(ctx, req.Identifier())
	if err != nil {
		if errors.Is(err, pkg.ErrNotFound) {
			return nil, fmt.Errorf("%w: user does not exist", pkg.ErrNotFound)
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, fmt.Errorf("%w: incorrect password", pkg.ErrUnauthorized)
	}

	return s.issueAndStoreTokens(ctx, user)
}

// Logout, kullanıcının stored refresh token'ını temizler.
// Bu kullanıcı için daha önce verilmiş TÜM refresh token'lar kalıcı olarak
// geçersizleşir; yeni bir zincir ancak sonraki login'de başlar.
func (s *authService) Logout(ctx context.Context, userID string) error {
	return s.userRepo.UpdateRefreshToken(ctx, userID, nil)
}

// RefreshAccessToken, refresh token karşılığında yeni bir token çifti üretir.
//
// Kontrol zinciri:
//  1. Token boş → ErrUnauthorized
//  2. İmza/süre doğrulaması + kind kontrolü → ErrInvalidToken
//  3. Claim'deki kullanıcı yok → ErrNotFound
//  4. Gelen token stored değere eşit değil → ErrTokenMismatch
//     (bayat veya iptal edilmiş token'ın yeniden kullanımını yakalar)
//  5. Hepsi geçtiyse ROTASYON: yeni çift üretilir ve yenisi persist edilir.
//     Dönen refresh token her zaman sunulandan farklıdır (jti claim'i).
func (s *authService) RefreshAccessToken(ctx context.Context, incomingToken string) (*AuthTokens, error) {
	if incomingToken == "" {
		return nil, fmt.Errorf("%w: refresh token is required", pkg.ErrUnauthorized)
	}

	claims, err := s.issuer.Verify(incomingToken)
	if err != nil {
		return nil, err // ErrInvalidToken
	}

	if claims.Kind != models.TokenKindRefresh {
		return nil, fmt.Errorf("%w: not a refresh token", pkg.ErrInvalidToken)
	}

	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}

	if user.RefreshToken == nil || *user.RefreshToken != incomingToken {
		return nil, fmt.Errorf("%w: refresh token is no longer valid", pkg.ErrTokenMismatch)
	}

	return s.issueAndStoreTokens(ctx, user)
}

// ValidateAccessToken, access token'ı doğrular — middleware kullanır.
// Refresh token'ın korumalı endpoint'te kullanılmasını kind kontrolü engeller.
func (s *authService) ValidateAccessToken(tokenString string) (*models.TokenClaims, error) {
	claims, err := s.issuer.Verify(tokenString)
	if err != nil {
		return nil, err
	}

	if claims.Kind != models.TokenKindAccess {
		return nil, fmt.Errorf("%w: not an access token", pkg.ErrInvalidToken)
	}

	return claims, nil
}

// issueAndStoreTokens, yeni bir access+refresh çifti üretir ve refresh
// token'ı user kaydına yazar. Üretim hatası OLDUĞU GİBİ propagate edilir —
// yarım token çifti asla dönülmez.
func (s *authService) issueAndStoreTokens(ctx context.Context, user *models.User) (*AuthTokens, error) {
	accessToken, err := s.issuer.IssueAccessToken(user)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.issuer.IssueRefreshToken(user)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.UpdateRefreshToken(ctx, user.ID, &refreshToken); err != nil {
		return nil, err
	}

	return &AuthTokens{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user.Sanitized(),
	}, nil
}
