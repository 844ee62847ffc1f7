package service

import (
	"context"
	"fmt"
	"strings"

	"hirehub/internal/domain"
	"hirehub/pkg/logger"
)

type JobService struct {
	repo     domain.JobRepository
	auditSvc domain.AuditLogService
	logger   logger.Logger
}

func NewJobService(repo domain.JobRepository, auditSvc domain.AuditLogService, logger logger.Logger) domain.JobService {
	return &JobService{
		repo:     repo,
		auditSvc: auditSvc,
		logger:   logger,
	}
}

func (s *JobService) CreateJob(ctx context.Context, job *domain.Job) error {
	job.Title = strings.TrimSpace(job.Title)
	job.Company = strings.TrimSpace(job.Company)
	if job.Title == "" || job.Company == "" || strings.TrimSpace(job.Description) == "" || job.PostedBy == 0 {
		return fmt.Errorf("ilan oluşturulamadı: %w", domain.ErrMissingField)
	}

	if job.Status == "" {
		job.Status = domain.JobStatusOpen
	}
	if !job.Status.Valid() {
		return fmt.Errorf("ilan oluşturulamadı: %w", domain.ErrInvalidJobStatus)
	}

	if err := s.checkDuplicate(ctx, job.Title, job.PostedBy); err != nil {
		return fmt.Errorf("ilan oluşturulamadı: %w", err)
	}

	if err := s.repo.Create(ctx, job); err != nil {
		return fmt.Errorf("ilan oluşturulamadı: %w", err)
	}

	s.audit(ctx, job.ID, domain.ActionTypeCreate, fmt.Sprintf("İlan oluşturuldu: %s", job.Title))

	return nil
}

func (s *JobService) GetJobByID(ctx context.Context, id int64) (*domain.Job, error) {
	job, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("ilan bulunamadı: %w", err)
	}

	if job == nil {
		return nil, fmt.Errorf("ilan ID'ye göre bulunamadı: %d: %w", id, domain.ErrJobNotFound)
	}

	return job, nil
}

func (s *JobService) ListJobs(ctx context.Context) ([]*domain.Job, error) {
	jobs, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("ilanlar listelenemedi: %w", err)
	}
	return jobs, nil
}

func (s *JobService) ListJobsByOwner(ctx context.Context, postedBy int64) ([]*domain.Job, error) {
	jobs, err := s.repo.FindByOwner(ctx, postedBy)
	if err != nil {
		return nil, fmt.Errorf("ilanlar listelenemedi: %w", err)
	}
	return jobs, nil
}

func (s *JobService) UpdateJob(ctx context.Context, id int64, update domain.JobUpdate) (*domain.Job, error) {
	job, err := s.GetJobByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("ilan güncellenemedi: %w", err)
	}

	if update.Title != nil {
		title := strings.TrimSpace(*update.Title)
		if title == "" {
			return nil, fmt.Errorf("ilan güncellenemedi: %w", domain.ErrMissingField)
		}
		if title != job.Title {
			if err := s.checkDuplicate(ctx, title, job.PostedBy); err != nil {
				return nil, fmt.Errorf("ilan güncellenemedi: %w", err)
			}
		}
		job.Title = title
	}
	if update.Description != nil {
		job.Description = *update.Description
	}
	if update.Company != nil {
		job.Company = strings.TrimSpace(*update.Company)
	}
	if update.Location != nil {
		job.Location = *update.Location
	}
	if update.Type != nil {
		job.Type = *update.Type
	}
	if update.Salary != nil {
		job.Salary = update.Salary
	}
	if update.Status != nil {
		if !update.Status.Valid() {
			return nil, fmt.Errorf("ilan güncellenemedi: %w", domain.ErrInvalidJobStatus)
		}
		job.Status = *update.Status
	}

	if err := s.repo.Update(ctx, job); err != nil {
		return nil, fmt.Errorf("ilan güncellenemedi: %w", err)
	}

	s.audit(ctx, job.ID, domain.ActionTypeUpdate, fmt.Sprintf("İlan güncellendi: %s (%s)", job.Title, job.Status))

	return job, nil
}

func (s *JobService) DeleteJob(ctx context.Context, id int64) error {
	job, err := s.GetJobByID(ctx, id)
	if err != nil {
		return fmt.Errorf("ilan silinemedi: %w", err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("ilan silinemedi: %w", err)
	}

	s.audit(ctx, id, domain.ActionTypeDelete, fmt.Sprintf("İlan silindi: %s", job.Title))

	return nil
}

func (s *JobService) checkDuplicate(ctx context.Context, title string, postedBy int64) error {
	existing, err := s.repo.FindByTitleAndOwner(ctx, title, postedBy)
	if err != nil {
		s.logger.ErrorContext(ctx, "İlan başlığı kontrolü sırasında hata oluştu", map[string]interface{}{
			"title":     title,
			"posted_by": postedBy,
			"error":     err.Error(),
		})
		return err
	}
	if existing != nil {
		return domain.ErrJobAlreadyExists
	}
	return nil
}

func (s *JobService) audit(ctx context.Context, jobID int64, action domain.ActionType, details string) {
	_ = s.auditSvc.LogAction(ctx, domain.EntityTypeJob, jobID, action, details)
}
