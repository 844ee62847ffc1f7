package service

import (
	"context"
	"fmt"
	"time"

	"hirehub/internal/domain"
	"hirehub/pkg/logger"
)

type InterviewService struct {
	repo             domain.InterviewRepository
	appRepo          domain.ApplicationRepository
	auditSvc         domain.AuditLogService
	verifyReferences bool
	logger           logger.Logger
}

func NewInterviewService(
	repo domain.InterviewRepository,
	appRepo domain.ApplicationRepository,
	auditSvc domain.AuditLogService,
	verifyReferences bool,
	logger logger.Logger,
) domain.InterviewService {
	return &InterviewService{
		repo:             repo,
		appRepo:          appRepo,
		auditSvc:         auditSvc,
		verifyReferences: verifyReferences,
		logger:           logger,
	}
}

func (s *InterviewService) ScheduleInterview(ctx context.Context, applicationID int64, date time.Time) (*domain.Interview, error) {
	if applicationID == 0 {
		return nil, fmt.Errorf("mülakat planlanamadı: %w", domain.ErrMissingField)
	}
	if date.IsZero() {
		return nil, fmt.Errorf("mülakat planlanamadı: %w", domain.ErrInvalidInterviewDate)
	}

	if s.verifyReferences {
		app, err := s.appRepo.FindByID(ctx, applicationID)
		if err != nil {
			return nil, fmt.Errorf("mülakat planlanamadı: %w", err)
		}
		if app == nil {
			return nil, fmt.Errorf("mülakat planlanamadı: %w", domain.ErrApplicationNotFound)
		}
	}

	interview := &domain.Interview{
		ApplicationID: applicationID,
		Date:          date,
		Status:        domain.InterviewStatusScheduled,
	}

	if err := s.repo.Create(ctx, interview); err != nil {
		return nil, fmt.Errorf("mülakat planlanamadı: %w", err)
	}

	_ = s.auditSvc.LogAction(ctx, domain.EntityTypeInterview, interview.ID, domain.ActionTypeCreate,
		fmt.Sprintf("Mülakat planlandı: başvuru=%d tarih=%s", applicationID, date.Format(time.RFC3339)))

	return interview, nil
}
