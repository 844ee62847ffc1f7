package service

import (
	"context"
	"fmt"

	"hirehub/internal/domain"
	"hirehub/pkg/logger"
)

const (
	defaultAuditPageSize = 10
	maxAuditPageSize     = 100
)

type AuditLogService struct {
	repo   domain.AuditLogRepository
	logger logger.Logger
}

func NewAuditLogService(repo domain.AuditLogRepository, logger logger.Logger) domain.AuditLogService {
	return &AuditLogService{
		repo:   repo,
		logger: logger,
	}
}

func (s *AuditLogService) LogAction(ctx context.Context, entityType domain.EntityType, entityID int64, action domain.ActionType, details string) error {
	auditLog := &domain.AuditLog{
		EntityType: entityType,
		EntityID:   entityID,
		Action:     action,
		Details:    details,
	}

	if err := s.repo.Create(ctx, auditLog); err != nil {
		s.logger.ErrorContext(ctx, "Denetim kaydı oluşturulamadı", map[string]interface{}{
			"entity_type": entityType,
			"entity_id":   entityID,
			"action":      action,
			"error":       err.Error(),
		})
		return fmt.Errorf("denetim kaydı oluşturulamadı: %w", err)
	}

	return nil
}

func (s *AuditLogService) GetEntityLogs(ctx context.Context, entityType domain.EntityType, entityID int64) ([]*domain.AuditLog, error) {
	logs, err := s.repo.FindByEntityID(ctx, entityType, entityID)
	if err != nil {
		return nil, fmt.Errorf("denetim kayıtları bulunamadı: %w", err)
	}

	return logs, nil
}

func (s *AuditLogService) GetAllLogs(ctx context.Context, page, pageSize int) ([]*domain.AuditLog, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultAuditPageSize
	}
	if pageSize > maxAuditPageSize {
		pageSize = maxAuditPageSize
	}

	offset := (page - 1) * pageSize

	logs, err := s.repo.FindAll(ctx, pageSize, offset)
	if err != nil {
		return nil, fmt.Errorf("denetim kayıtları bulunamadı: %w", err)
	}

	return logs, nil
}
