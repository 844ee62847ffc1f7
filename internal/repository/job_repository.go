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

const jobColumns = `id, title, description, company, location, type, status, salary, posted_by, created_at, updated_at`

type JobRepository struct {
	db     *sql.DB
	logger logger.Logger
}

func NewJobRepository(db *sql.DB, logger logger.Logger) domain.JobRepository {
	return &JobRepository{
		db:     db,
		logger: logger,
	}
}

func scanJob(row rowScanner) (*domain.Job, error) {
	var job domain.Job
	var status string
	var salary sql.NullFloat64

	err := row.Scan(
		&job.ID,
		&job.Title,
		&job.Description,
		&job.Company,
		&job.Location,
		&job.Type,
		&status,
		&salary,
		&job.PostedBy,
		&job.CreatedAt,
		&job.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	job.Status = domain.JobStatus(status)
	if salary.Valid {
		job.Salary = &salary.Float64
	}

	return &job, nil
}

func nullableSalary(salary *float64) sql.NullFloat64 {
	if salary == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *salary, Valid: true}
}

func (r *JobRepository) FindByID(ctx context.Context, id int64) (*domain.Job, error) {
	job, err := scanJob(r.db.QueryRowContext(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.logger.ErrorContext(ctx, "İlan ID'ye göre bulunamadı", map[string]interface{}{"id": id, "error": err.Error()})
		return nil, fmt.Errorf("ilan okunamadı: %w", err)
	}
	return job, nil
}

func (r *JobRepository) FindByTitleAndOwner(ctx context.Context, title string, postedBy int64) (*domain.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE title = $1 AND posted_by = $2`

	job, err := scanJob(r.db.QueryRowContext(ctx, query, title, postedBy))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.logger.ErrorContext(ctx, "İlan başlığa göre bulunamadı", map[string]interface{}{
			"title":     title,
			"posted_by": postedBy,
			"error":     err.Error(),
		})
		return nil, fmt.Errorf("ilan okunamadı: %w", err)
	}
	return job, nil
}

func (r *JobRepository) FindAll(ctx context.Context) ([]*domain.Job, error) {
	return r.list(ctx, `SELECT `+jobColumns+` FROM jobs ORDER BY id`)
}

func (r *JobRepository) FindByOwner(ctx context.Context, postedBy int64) ([]*domain.Job, error) {
	return r.list(ctx, `SELECT `+jobColumns+` FROM jobs WHERE posted_by = $1 ORDER BY id`, postedBy)
}

func (r *JobRepository) list(ctx context.Context, query string, args ...interface{}) ([]*domain.Job, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.ErrorContext(ctx, "İlanlar listelenemedi", map[string]interface{}{"error": err.Error()})
		return nil, fmt.Errorf("ilanlar listelenemedi: %w", err)
	}
	defer rows.Close()

	jobs := make([]*domain.Job, 0)
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			r.logger.ErrorContext(ctx, "İlan verileri okunamadı", map[string]interface{}{"error": err.Error()})
			return nil, fmt.Errorf("ilan verileri okunamadı: %w", err)
		}
		jobs = append(jobs, job)
	}

	if err = rows.Err(); err != nil {
		r.logger.ErrorContext(ctx, "Satır döngüsü sırasında hata oluştu", map[string]interface{}{"error": err.Error()})
		return nil, fmt.Errorf("ilan verileri okunamadı: %w", err)
	}

	return jobs, nil
}

func (r *JobRepository) Create(ctx context.Context, job *domain.Job) error {
	query := `
		INSERT INTO jobs (title, description, company, location, type, status, salary, posted_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`

	now := time.Now().UTC()
	job.CreatedAt = now
	job.UpdatedAt = now

	if job.Status == "" {
		job.Status = domain.JobStatusOpen
	}

	err := r.db.QueryRowContext(ctx,
		query,
		job.Title,
		job.Description,
		job.Company,
		job.Location,
		job.Type,
		string(job.Status),
		nullableSalary(job.Salary),
		job.PostedBy,
		job.CreatedAt,
		job.UpdatedAt,
	).Scan(&job.ID)

	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("ilan oluşturulamadı: %w", domain.ErrJobAlreadyExists)
		}
		r.logger.ErrorContext(ctx, "İlan oluşturulamadı", map[string]interface{}{"error": err.Error()})
		return fmt.Errorf("ilan oluşturulamadı: %w", err)
	}

	return nil
}

func (r *JobRepository) Update(ctx context.Context, job *domain.Job) error {
	query := `
		UPDATE jobs
		SET title = $1, description = $2, company = $3, location = $4, type = $5, status = $6, salary = $7, updated_at = $8
		WHERE id = $9
	`

	job.UpdatedAt = time.Now().UTC()

	_, err := r.db.ExecContext(ctx,
		query,
		job.Title,
		job.Description,
		job.Company,
		job.Location,
		job.Type,
		string(job.Status),
		nullableSalary(job.Salary),
		job.UpdatedAt,
		job.ID,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("ilan güncellenemedi: %w", domain.ErrJobAlreadyExists)
		}
		r.logger.ErrorContext(ctx, "İlan güncellenemedi", map[string]interface{}{"id": job.ID, "error": err.Error()})
		return fmt.Errorf("ilan güncellenemedi: %w", err)
	}

	return nil
}

func (r *JobRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		r.logger.ErrorContext(ctx, "İlan silinemedi", map[string]interface{}{"id": id, "error": err.Error()})
		return fmt.Errorf("ilan silinemedi: %w", err)
	}

	return nil
}
