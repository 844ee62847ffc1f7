package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime"

	"github.com/gabriel-vasile/mimetype"

	"hirehub/internal/domain"
	"hirehub/internal/storage"
	"hirehub/pkg/logger"
	"hirehub/pkg/metrics"
)

// sniffLen matches mimetype's default read limit.
const sniffLen = 3072

// BlobStore persists resume files.
type BlobStore interface {
	Save(owner int64, content io.Reader, ext string) (string, int64, error)
	Open(name string) (io.ReadCloser, int64, error)
	Remove(name string) error
}

type ResumeOptions struct {
	MaxBytes        int64
	SniffContent    bool
	ServeStoredType bool
}

type ResumeService struct {
	userRepo domain.UserRepository
	blobs    BlobStore
	auditSvc domain.AuditLogService
	opts     ResumeOptions
	logger   logger.Logger
}

func NewResumeService(
	userRepo domain.UserRepository,
	blobs BlobStore,
	auditSvc domain.AuditLogService,
	opts ResumeOptions,
	logger logger.Logger,
) domain.ResumeService {
	return &ResumeService{
		userRepo: userRepo,
		blobs:    blobs,
		auditSvc: auditSvc,
		opts:     opts,
		logger:   logger,
	}
}

func (s *ResumeService) StoreResume(ctx context.Context, userID int64, content io.Reader, declaredType string) (*domain.User, error) {
	pending, err := s.PrepareResume(ctx, userID, content, declaredType)
	if err != nil {
		return nil, err
	}
	return s.CommitResume(ctx, pending)
}

func (s *ResumeService) PrepareResume(ctx context.Context, userID int64, content io.Reader, declaredType string) (*domain.PendingResume, error) {
	pending, err := s.prepare(ctx, userID, content, declaredType)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrUnsupportedResumeType), errors.Is(err, domain.ErrResumeTooLarge):
		metrics.RecordResumeUpload("rejected")
	default:
		metrics.RecordResumeUpload("error")
	}
	return pending, err
}

func (s *ResumeService) prepare(ctx context.Context, userID int64, content io.Reader, declaredType string) (*domain.PendingResume, error) {
	contentType, _, err := mime.ParseMediaType(declaredType)
	if err != nil {
		return nil, fmt.Errorf("özgeçmiş yüklenemedi: %q: %w", declaredType, domain.ErrUnsupportedResumeType)
	}
	ext, ok := domain.ResumeExtensions[contentType]
	if !ok {
		return nil, fmt.Errorf("özgeçmiş yüklenemedi: %s: %w", contentType, domain.ErrUnsupportedResumeType)
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("özgeçmiş yüklenemedi: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("özgeçmiş yüklenemedi: %w", domain.ErrUserNotFound)
	}

	header := make([]byte, sniffLen)
	n, err := io.ReadFull(content, header)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("özgeçmiş okunamadı: %w", err)
	}
	header = header[:n]

	if s.opts.SniffContent {
		detected := mimetype.Detect(header)
		sniffedType, ok := allowedResumeType(detected)
		if !ok {
			s.logger.WarnContext(ctx, "Özgeçmiş içeriği bildirilen türle uyuşmuyor", map[string]interface{}{
				"user_id":  userID,
				"declared": contentType,
				"detected": detected.String(),
			})
			return nil, fmt.Errorf("özgeçmiş yüklenemedi: %s: %w", detected.String(), domain.ErrUnsupportedResumeType)
		}
		contentType = sniffedType
		ext = domain.ResumeExtensions[sniffedType]
	}

	body := io.LimitReader(io.MultiReader(bytes.NewReader(header), content), s.opts.MaxBytes+1)
	name, size, err := s.blobs.Save(userID, body, ext)
	if err != nil {
		s.logger.ErrorContext(ctx, "Özgeçmiş dosyası yazılamadı", map[string]interface{}{"user_id": userID, "error": err.Error()})
		return nil, fmt.Errorf("özgeçmiş yüklenemedi: %w", err)
	}

	if size > s.opts.MaxBytes {
		s.removeBlob(ctx, name)
		return nil, fmt.Errorf("özgeçmiş yüklenemedi: %d bayt: %w", size, domain.ErrResumeTooLarge)
	}

	return &domain.PendingResume{UserID: userID, Path: name, ContentType: contentType, Size: size}, nil
}

// CommitResume points the user at the pending file and removes the file it
// replaces. The pending file is removed when the commit fails.
func (s *ResumeService) CommitResume(ctx context.Context, pending *domain.PendingResume) (*domain.User, error) {
	user, err := s.commit(ctx, pending)
	if err != nil {
		s.removeBlob(ctx, pending.Path)
		metrics.RecordResumeUpload("error")
		return nil, err
	}
	metrics.RecordResumeUpload("success")
	return user, nil
}

func (s *ResumeService) commit(ctx context.Context, pending *domain.PendingResume) (*domain.User, error) {
	user, err := s.userRepo.FindByID(ctx, pending.UserID)
	if err != nil {
		return nil, fmt.Errorf("özgeçmiş kaydedilemedi: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("özgeçmiş kaydedilemedi: %w", domain.ErrUserNotFound)
	}

	if err := s.userRepo.UpdateResume(ctx, pending.UserID, pending.Path, pending.ContentType); err != nil {
		return nil, fmt.Errorf("özgeçmiş kaydedilemedi: %w", err)
	}

	if user.Resume != "" && user.Resume != pending.Path {
		s.removeBlob(ctx, user.Resume)
	}

	user.Resume = pending.Path
	user.ResumeContentType = pending.ContentType

	_ = s.auditSvc.LogAction(ctx, domain.EntityTypeUser, pending.UserID, domain.ActionTypeUpdate,
		fmt.Sprintf("Özgeçmiş yüklendi: %s (%d bayt)", pending.ContentType, pending.Size))

	return user, nil
}

func (s *ResumeService) DiscardResume(ctx context.Context, pending *domain.PendingResume) {
	s.removeBlob(ctx, pending.Path)
}

func (s *ResumeService) OpenResume(ctx context.Context, userID int64) (*domain.Resume, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("özgeçmiş okunamadı: %w", err)
	}
	if user == nil || user.Resume == "" {
		return nil, fmt.Errorf("özgeçmiş okunamadı: %d: %w", userID, domain.ErrResumeNotFound)
	}

	rc, size, err := s.blobs.Open(user.Resume)
	if err != nil {
		if errors.Is(err, storage.ErrBlobNotFound) {
			s.logger.WarnContext(ctx, "Kayıtlı özgeçmiş dosyası eksik", map[string]interface{}{"user_id": userID, "path": user.Resume})
			return nil, fmt.Errorf("özgeçmiş okunamadı: %w", domain.ErrResumeNotFound)
		}
		return nil, fmt.Errorf("özgeçmiş okunamadı: %w", err)
	}

	contentType := domain.MimeTypePDF
	if s.opts.ServeStoredType && user.ResumeContentType != "" {
		contentType = user.ResumeContentType
	}

	return &domain.Resume{Content: rc, Size: size, ContentType: contentType}, nil
}

func (s *ResumeService) removeBlob(ctx context.Context, name string) {
	if err := s.blobs.Remove(name); err != nil {
		s.logger.WarnContext(ctx, "Özgeçmiş dosyası silinemedi", map[string]interface{}{"path": name, "error": err.Error()})
	}
}

func allowedResumeType(detected *mimetype.MIME) (string, bool) {
	for contentType := range domain.ResumeExtensions {
		if detected.Is(contentType) {
			return contentType, true
		}
	}
	return "", false
}
