// Package pkg, projede paylaşılan utility'leri barındırır.
// Bu dosya domain-level error tanımlarını içerir.
//
// errors.New() ile sabit error değişkenleri tanımlarız — karşılaştırma
// string yerine errors.Is() ile yapılır:
//
//	if errors.Is(err, pkg.ErrNotFound) { ... }
package pkg

import "errors"

// Domain-level error'lar — her biri API'nin döndüğü bir hata türüne karşılık gelir.
// Service katmanı bunları %w ile sararak döner, response katmanı
// (pkg.Error) tek bir noktada HTTP status + payload'a çevirir.
var (
	ErrBadRequest    = errors.New("bad request")     // eksik/boş girdi
	ErrAlreadyExists = errors.New("already exists")  // username/email çakışması
	ErrUploadFailed  = errors.New("upload failed")   // medya host hatası
	ErrNotFound      = errors.New("not found")       // kullanıcı yok
	ErrUnauthorized  = errors.New("unauthorized")    // yanlış şifre / token yok
	ErrInvalidToken  = errors.New("invalid token")   // imza veya süre hatası
	ErrTokenMismatch = errors.New("token mismatch")  // refresh token bayat/reuse
	ErrInternal      = errors.New("internal error")
)
