package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"hirehub/internal/domain"
	"hirehub/pkg/logger"
)

// Applications carry no foreign keys; a deleted job or user comes back as
// NULL columns from the outer joins below.
const applicationViewQuery = `
	SELECT a.id, a.job_id, a.user_id, a.status, a.applied_at,
	       j.id, j.title, j.company, j.salary, j.status, j.description,
	       u.id, u.username, u.email, u.role
	FROM applications a
	LEFT JOIN jobs j ON j.id = a.job_id
	LEFT JOIN users u ON u.id = a.user_id
`

type ApplicationRepository struct {
	db     *sql.DB
	logger logger.Logger
}

func NewApplicationRepository(db *sql.DB, logger logger.Logger) domain.ApplicationRepository {
	return &ApplicationRepository{
		db:     db,
		logger: logger,
	}
}

func scanApplicationView(row rowScanner) (*domain.ApplicationView, error) {
	var view domain.ApplicationView
	var status string

	var (
		jobID          sql.NullInt64
		jobTitle       sql.NullString
		jobCompany     sql.NullString
		jobSalary      sql.NullFloat64
		jobStatus      sql.NullString
		jobDescription sql.NullString

		userID       sql.NullInt64
		userName     sql.NullString
		userEmail    sql.NullString
		userRoleName sql.NullString
	)

	err := row.Scan(
		&view.ID,
		&view.JobID,
		&view.UserID,
		&status,
		&view.AppliedAt,
		&jobID,
		&jobTitle,
		&jobCompany,
		&jobSalary,
		&jobStatus,
		&jobDescription,
		&userID,
		&userName,
		&userEmail,
		&userRoleName,
	)
	if err != nil {
		return nil, err
	}

	view.Status = domain.ApplicationStatus(status)

	if jobID.Valid {
		view.Job = &domain.JobSummary{
			ID:          jobID.Int64,
			Title:       jobTitle.String,
			Company:     jobCompany.String,
			Status:      domain.JobStatus(jobStatus.String),
			Description: jobDescription.String,
		}
		if jobSalary.Valid {
			salary := jobSalary.Float64
			view.Job.Salary = &salary
		}
	}

	if userID.Valid {
		view.User = &domain.UserSummary{
			ID:       userID.Int64,
			Username: userName.String,
			Email:    userEmail.String,
			Role:     domain.Role(userRoleName.String),
		}
	}

	return &view, nil
}

func (r *ApplicationRepository) Create(ctx context.Context, app *domain.Application) error {
	query := `
		INSERT INTO applications (job_id, user_id, status, applied_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	if app.Status == "" {
		app.Status = domain.ApplicationStatusApplied
	}
	if app.AppliedAt.IsZero() {
		app.AppliedAt = time.Now().UTC()
	}

	err := r.db.QueryRowContext(ctx,
		query,
		app.JobID,
		app.UserID,
		string(app.Status),
		app.AppliedAt,
	).Scan(&app.ID)

	if err != nil {
		r.logger.ErrorContext(ctx, "Başvuru oluşturulamadı", map[string]interface{}{
			"job_id":  app.JobID,
			"user_id": app.UserID,
			"error":   err.Error(),
		})
		return fmt.Errorf("başvuru oluşturulamadı: %w", err)
	}

	return nil
}

func (r *ApplicationRepository) FindByID(ctx context.Context, id int64) (*domain.Application, error) {
	query := `SELECT id, job_id, user_id, status, applied_at FROM applications WHERE id = $1`

	var app domain.Application
	var status string

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&app.ID,
		&app.JobID,
		&app.UserID,
		&status,
		&app.AppliedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.logger.ErrorContext(ctx, "Başvuru ID'ye göre bulunamadı", map[string]interface{}{"id": id, "error": err.Error()})
		return nil, fmt.Errorf("başvuru okunamadı: %w", err)
	}

	app.Status = domain.ApplicationStatus(status)
	return &app, nil
}

func (r *ApplicationRepository) FindViewByID(ctx context.Context, id int64) (*domain.ApplicationView, error) {
	view, err := scanApplicationView(r.db.QueryRowContext(ctx, applicationViewQuery+` WHERE a.id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.logger.ErrorContext(ctx, "Başvuru ayrıntıları okunamadı", map[string]interface{}{"id": id, "error": err.Error()})
		return nil, fmt.Errorf("başvuru okunamadı: %w", err)
	}
	return view, nil
}

func (r *ApplicationRepository) FindAllViews(ctx context.Context) ([]*domain.ApplicationView, error) {
	return r.listViews(ctx, applicationViewQuery+` ORDER BY a.id`)
}

func (r *ApplicationRepository) FindViewsByUser(ctx context.Context, userID int64) ([]*domain.ApplicationView, error) {
	return r.listViews(ctx, applicationViewQuery+` WHERE a.user_id = $1 ORDER BY a.id`, userID)
}

func (r *ApplicationRepository) listViews(ctx context.Context, query string, args ...interface{}) ([]*domain.ApplicationView, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.ErrorContext(ctx, "Başvurular listelenemedi", map[string]interface{}{"error": err.Error()})
		return nil, fmt.Errorf("başvurular listelenemedi: %w", err)
	}
	defer rows.Close()

	views := make([]*domain.ApplicationView, 0)
	for rows.Next() {
		view, err := scanApplicationView(rows)
		if err != nil {
			r.logger.ErrorContext(ctx, "Başvuru verileri okunamadı", map[string]interface{}{"error": err.Error()})
			return nil, fmt.Errorf("başvuru verileri okunamadı: %w", err)
		}
		views = append(views, view)
	}

	if err = rows.Err(); err != nil {
		r.logger.ErrorContext(ctx, "Satır döngüsü sırasında hata oluştu", map[string]interface{}{"error": err.Error()})
		return nil, fmt.Errorf("başvuru verileri okunamadı: %w", err)
	}

	return views, nil
}

func (r *ApplicationRepository) ExistsForJobAndUser(ctx context.Context, jobID, userID int64) (bool, error) {
	query := `SELECT COUNT(1) FROM applications WHERE job_id = $1 AND user_id = $2`

	var count int64
	if err := r.db.QueryRowContext(ctx, query, jobID, userID).Scan(&count); err != nil {
		r.logger.ErrorContext(ctx, "Mükerrer başvuru kontrolü başarısız", map[string]interface{}{
			"job_id":  jobID,
			"user_id": userID,
			"error":   err.Error(),
		})
		return false, fmt.Errorf("başvuru kontrolü başarısız: %w", err)
	}

	return count > 0, nil
}

func (r *ApplicationRepository) UpdateStatus(ctx context.Context, id int64, status domain.ApplicationStatus) error {
	_, err := r.db.ExecContext(ctx, `UPDATE applications SET status = $1 WHERE id = $2`, string(status), id)
	if err != nil {
		r.logger.ErrorContext(ctx, "Başvuru durumu güncellenemedi", map[string]interface{}{
			"id":     id,
			"status": status,
			"error":  err.Error(),
		})
		return fmt.Errorf("başvuru durumu güncellenemedi: %w", err)
	}

	return nil
}

func (r *ApplicationRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM applications WHERE id = $1`, id)
	if err != nil {
		r.logger.ErrorContext(ctx, "Başvuru silinemedi", map[string]interface{}{"id": id, "error": err.Error()})
		return fmt.Errorf("başvuru silinemedi: %w", err)
	}

	return nil
}
