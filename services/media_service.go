// Media host client — avatar ve kapak resimlerini S3 uyumlu bir depoya yükler.
package services

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	vtconfig "github.com/akinalp/vidtube/config"
	"github.com/akinalp/vidtube/pkg"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// ImageFile, handler'dan service'e taşınan yüklenecek dosya.
// Service multipart detayı bilmez — sadece içerik + metadata alır.
type ImageFile struct {
	Content     io.Reader
	Filename    string
	ContentType string
}

// MediaUploader, bir dosyayı medya host'a yükleyip kalıcı URL döner.
type MediaUploader interface {
	Upload(ctx context.Context, file *ImageFile) (string, error)
}

// s3MediaService, MediaUploader'ın aws-sdk-go-v2 implementasyonu.
// MinIO gibi S3 uyumlu host'larla da çalışır (BaseEndpoint + path-style).
type s3MediaService struct {
	client        *s3.Client
	bucket        string
	publicBaseURL string
}

// NewS3MediaService, constructor. Static credential + custom endpoint ile
// client kurar; AWS'nin kendi S3'ü için S3_ENDPOINT boş bırakılabilir.
func NewS3MediaService(ctx context.Context, cfg vtconfig.S3Config) (MediaUploader, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			// MinIO bucket'ları subdomain olarak çözemez — path-style şart
			o.UsePathStyle = true
		}
	})

	publicBase := strings.TrimSuffix(cfg.PublicBaseURL, "/")
	if publicBase == "" {
		publicBase = strings.TrimSuffix(cfg.Endpoint, "/") + "/" + cfg.Bucket
	}

	return &s3MediaService{
		client:        client,
		bucket:        cfg.Bucket,
		publicBaseURL: publicBase,
	}, nil
}

// Upload, dosyayı bucket'a yazar ve kalıcı public URL döner.
// Hata, pkg.ErrUploadFailed'e sarılır — handler katmanı 400 olarak yansıtır.
func (s *s3MediaService) Upload(ctx context.Context, file *ImageFile) (string, error) {
	key := storageKey(file.Filename)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        file.Content,
		ContentType: aws.String(file.ContentType),
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", pkg.ErrUploadFailed, err)
	}

	return s.publicBaseURL + "/" + key, nil
}

// storageKey, çakışmayan bir object key üretir: images/yyyy/mm/{uuid}{ext}
// Uzantı orijinal dosya adından taşınır, ismin geri kalanı kullanılmaz —
// path traversal veya karakter seti derdi olmaz.
func storageKey(filename string) string {
	now := time.Now()
	ext := strings.ToLower(filepath.Ext(filename))
	return fmt.Sprintf("images/%d/%02d/%s%s", now.Year(), int(now.Month()), uuid.NewString(), ext)
}
