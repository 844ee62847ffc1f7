package service

import (
	"context"
	"fmt"

	"hirehub/internal/domain"
	"hirehub/pkg/logger"
	"hirehub/pkg/metrics"
)

type ApplicationService struct {
	repo     domain.ApplicationRepository
	jobRepo  domain.JobRepository
	userRepo domain.UserRepository
	auditSvc domain.AuditLogService
	policy   domain.ApplicationPolicy
	logger   logger.Logger
}

func NewApplicationService(
	repo domain.ApplicationRepository,
	jobRepo domain.JobRepository,
	userRepo domain.UserRepository,
	auditSvc domain.AuditLogService,
	policy domain.ApplicationPolicy,
	logger logger.Logger,
) domain.ApplicationService {
	if policy.Transitions == nil {
		policy.Transitions = domain.PermissiveTransitions{}
	}
	return &ApplicationService{
		repo:     repo,
		jobRepo:  jobRepo,
		userRepo: userRepo,
		auditSvc: auditSvc,
		policy:   policy,
		logger:   logger,
	}
}

func (s *ApplicationService) Apply(ctx context.Context, jobID, userID int64) (*domain.Application, error) {
	if jobID == 0 || userID == 0 {
		return nil, fmt.Errorf("başvuru oluşturulamadı: %w", domain.ErrMissingField)
	}

	if s.policy.VerifyReferences {
		if err := s.verifyReferences(ctx, jobID, userID); err != nil {
			return nil, fmt.Errorf("başvuru oluşturulamadı: %w", err)
		}
	}

	// Not atomic with the insert below; two racing applies can both pass.
	if s.policy.RejectDuplicates {
		exists, err := s.repo.ExistsForJobAndUser(ctx, jobID, userID)
		if err != nil {
			return nil, fmt.Errorf("başvuru oluşturulamadı: %w", err)
		}
		if exists {
			return nil, fmt.Errorf("başvuru oluşturulamadı: %w", domain.ErrDuplicateApplication)
		}
	}

	app := &domain.Application{
		JobID:  jobID,
		UserID: userID,
		Status: domain.ApplicationStatusApplied,
	}

	if err := s.repo.Create(ctx, app); err != nil {
		return nil, fmt.Errorf("başvuru oluşturulamadı: %w", err)
	}

	metrics.RecordApplicationCreated()
	s.audit(ctx, app.ID, domain.ActionTypeCreate, fmt.Sprintf("Başvuru oluşturuldu: ilan=%d kullanıcı=%d", jobID, userID))

	return app, nil
}

func (s *ApplicationService) verifyReferences(ctx context.Context, jobID, userID int64) error {
	job, err := s.jobRepo.FindByID(ctx, jobID)
	if err != nil {
		return err
	}
	if job == nil {
		return domain.ErrJobNotFound
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}

	return nil
}

func (s *ApplicationService) SetStatus(ctx context.Context, id int64, status domain.ApplicationStatus) (*domain.Application, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("başvuru durumu güncellenemedi: %w", domain.ErrInvalidApplicationStatus)
	}

	app, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("başvuru durumu güncellenemedi: %w", err)
	}
	if app == nil {
		return nil, fmt.Errorf("başvuru durumu güncellenemedi: %d: %w", id, domain.ErrApplicationNotFound)
	}

	from := app.Status
	if !s.policy.Transitions.Allow(from, status) {
		s.logger.WarnContext(ctx, "Başvuru durumu geçişi reddedildi", map[string]interface{}{
			"id":     id,
			"from":   from,
			"to":     status,
			"policy": s.policy.Transitions.Name(),
		})
		return nil, fmt.Errorf("başvuru durumu güncellenemedi: %s -> %s: %w", from, status, domain.ErrInvalidTransition)
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, fmt.Errorf("başvuru durumu güncellenemedi: %w", err)
	}
	app.Status = status

	metrics.RecordStatusChange(string(from), string(status))
	s.audit(ctx, id, domain.ActionTypeUpdate, fmt.Sprintf("Başvuru durumu: %s -> %s", from, status))

	return app, nil
}

func (s *ApplicationService) GetApplication(ctx context.Context, id int64) (*domain.ApplicationView, error) {
	view, err := s.repo.FindViewByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("başvuru bulunamadı: %w", err)
	}
	if view == nil {
		return nil, fmt.Errorf("başvuru ID'ye göre bulunamadı: %d: %w", id, domain.ErrApplicationNotFound)
	}
	return view, nil
}

func (s *ApplicationService) ListApplications(ctx context.Context) ([]*domain.ApplicationView, error) {
	views, err := s.repo.FindAllViews(ctx)
	if err != nil {
		return nil, fmt.Errorf("başvurular listelenemedi: %w", err)
	}
	return views, nil
}

func (s *ApplicationService) ListUserApplications(ctx context.Context, userID int64) ([]*domain.ApplicationView, error) {
	views, err := s.repo.FindViewsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("başvurular listelenemedi: %w", err)
	}
	return views, nil
}

func (s *ApplicationService) DeleteApplication(ctx context.Context, id int64) error {
	app, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("başvuru silinemedi: %w", err)
	}
	if app == nil {
		return fmt.Errorf("başvuru silinemedi: %d: %w", id, domain.ErrApplicationNotFound)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("başvuru silinemedi: %w", err)
	}

	s.audit(ctx, id, domain.ActionTypeDelete, fmt.Sprintf("Başvuru silindi: ilan=%d kullanıcı=%d", app.JobID, app.UserID))

	return nil
}

func (s *ApplicationService) audit(ctx context.Context, id int64, action domain.ActionType, details string) {
	_ = s.auditSvc.LogAction(ctx, domain.EntityTypeApplication, id, action, details)
}
