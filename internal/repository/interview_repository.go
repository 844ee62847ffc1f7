package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"hirehub/internal/domain"
	"hirehub/pkg/logger"
)

type InterviewRepository struct {
	db     *sql.DB
	logger logger.Logger
}

func NewInterviewRepository(db *sql.DB, logger logger.Logger) domain.InterviewRepository {
	return &InterviewRepository{
		db:     db,
		logger: logger,
	}
}

func (r *InterviewRepository) Create(ctx context.Context, interview *domain.Interview) error {
	query := `
		INSERT INTO interviews (application_id, date, status, scheduled_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	interview.ScheduledAt = time.Now().UTC()
	if interview.Status == "" {
		interview.Status = domain.InterviewStatusScheduled
	}

	err := r.db.QueryRowContext(ctx,
		query,
		interview.ApplicationID,
		interview.Date.UTC(),
		string(interview.Status),
		interview.ScheduledAt,
	).Scan(&interview.ID)

	if err != nil {
		r.logger.ErrorContext(ctx, "Mülakat kaydı oluşturulamadı", map[string]interface{}{
			"application_id": interview.ApplicationID,
			"error":          err.Error(),
		})
		return fmt.Errorf("mülakat kaydı oluşturulamadı: %w", err)
	}

	return nil
}
