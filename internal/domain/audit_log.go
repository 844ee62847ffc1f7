package domain

import (
	"context"
	"time"
)

type EntityType string
type ActionType string

const (
	EntityTypeUser        EntityType = "user"
	EntityTypeJob         EntityType = "job"
	EntityTypeApplication EntityType = "application"
	EntityTypeInterview   EntityType = "interview"

	ActionTypeCreate ActionType = "create"
	ActionTypeUpdate ActionType = "update"
	ActionTypeDelete ActionType = "delete"
)

func (e EntityType) Valid() bool {
	switch e {
	case EntityTypeUser, EntityTypeJob, EntityTypeApplication, EntityTypeInterview:
		return true
	}
	return false
}

type AuditLog struct {
	ID         int64      `json:"id"`
	EntityType EntityType `json:"entityType"`
	EntityID   int64      `json:"entityId"`
	Action     ActionType `json:"action"`
	Details    string     `json:"details,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
}

type AuditLogRepository interface {
	Create(ctx context.Context, log *AuditLog) error
	FindByEntityID(ctx context.Context, entityType EntityType, entityID int64) ([]*AuditLog, error)
	FindAll(ctx context.Context, limit, offset int) ([]*AuditLog, error)
}

type AuditLogService interface {
	LogAction(ctx context.Context, entityType EntityType, entityID int64, action ActionType, details string) error
	GetEntityLogs(ctx context.Context, entityType EntityType, entityID int64) ([]*AuditLog, error)
	GetAllLogs(ctx context.Context, page, pageSize int) ([]*AuditLog, error)
}
