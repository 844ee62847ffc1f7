package domain

import "errors"

var (
	ErrUserNotFound        = errors.New("kullanıcı bulunamadı")
	ErrJobNotFound         = errors.New("iş ilanı bulunamadı")
	ErrApplicationNotFound = errors.New("başvuru bulunamadı")
	ErrResumeNotFound      = errors.New("özgeçmiş bulunamadı")

	ErrUserAlreadyExists    = errors.New("bu e-posta adresi zaten kullanılıyor")
	ErrJobAlreadyExists     = errors.New("bu iş ilanı zaten mevcut")
	ErrDuplicateApplication = errors.New("bu ilana zaten başvurulmuş")

	ErrInvalidCredentials       = errors.New("geçersiz e-posta veya şifre")
	ErrMissingField             = errors.New("zorunlu alan eksik")
	ErrInvalidPassword          = errors.New("geçersiz şifre")
	ErrInvalidRole              = errors.New("geçersiz rol")
	ErrInvalidJobStatus         = errors.New("geçersiz ilan durumu")
	ErrInvalidApplicationStatus = errors.New("geçersiz başvuru durumu")
	ErrInvalidTransition        = errors.New("başvuru durumu geçişine izin verilmiyor")
	ErrInvalidInterviewDate     = errors.New("geçersiz mülakat tarihi")
	ErrUnsupportedResumeType    = errors.New("desteklenmeyen özgeçmiş dosya türü")
	ErrResumeTooLarge           = errors.New("özgeçmiş dosyası çok büyük")

	ErrUnauthorized = errors.New("kimlik doğrulaması gerekli")
	ErrForbidden    = errors.New("bu işlem için yetkiniz yok")
)
