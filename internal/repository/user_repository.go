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

const userColumns = `id, username, email, password_hash, role, skills, resume_path, resume_content_type, created_at, updated_at`

type UserRepository struct {
	db     *sql.DB
	logger logger.Logger
}

func NewUserRepository(db *sql.DB, logger logger.Logger) domain.UserRepository {
	return &UserRepository{
		db:     db,
		logger: logger,
	}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanUser(row rowScanner) (*domain.User, error) {
	var user domain.User
	var role, skills string

	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&role,
		&skills,
		&user.Resume,
		&user.ResumeContentType,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	user.Role = domain.Role(role)
	if user.Skills, err = decodeSkills(skills); err != nil {
		return nil, fmt.Errorf("yetenek listesi çözümlenemedi: %w", err)
	}

	return &user, nil
}

func (r *UserRepository) findOne(ctx context.Context, query string, arg interface{}) (*domain.User, error) {
	user, err := scanUser(r.db.QueryRowContext(ctx, query, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return user, err
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	user, err := r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	if err != nil {
		r.logger.ErrorContext(ctx, "Kullanıcı ID'ye göre bulunamadı", map[string]interface{}{"id": id, "error": err.Error()})
		return nil, fmt.Errorf("kullanıcı okunamadı: %w", err)
	}
	return user, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, err := r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	if err != nil {
		r.logger.ErrorContext(ctx, "Kullanıcı e-posta adresine göre bulunamadı", map[string]interface{}{"email": email, "error": err.Error()})
		return nil, fmt.Errorf("kullanıcı okunamadı: %w", err)
	}
	return user, nil
}

func (r *UserRepository) FindAll(ctx context.Context) ([]*domain.User, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY id`)
	if err != nil {
		r.logger.ErrorContext(ctx, "Kullanıcılar listelenemedi", map[string]interface{}{"error": err.Error()})
		return nil, fmt.Errorf("kullanıcılar listelenemedi: %w", err)
	}
	defer rows.Close()

	users := make([]*domain.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			r.logger.ErrorContext(ctx, "Kullanıcı verileri okunamadı", map[string]interface{}{"error": err.Error()})
			return nil, fmt.Errorf("kullanıcı verileri okunamadı: %w", err)
		}
		users = append(users, user)
	}

	if err = rows.Err(); err != nil {
		r.logger.ErrorContext(ctx, "Satır döngüsü sırasında hata oluştu", map[string]interface{}{"error": err.Error()})
		return nil, fmt.Errorf("kullanıcı verileri okunamadı: %w", err)
	}

	return users, nil
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (username, email, password_hash, role, skills, resume_path, resume_content_type, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`

	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	if user.Role == "" {
		user.Role = domain.RoleUser
	}
	if user.Skills == nil {
		user.Skills = []string{}
	}

	skills, err := encodeSkills(user.Skills)
	if err != nil {
		return fmt.Errorf("kullanıcı oluşturulamadı: %w", err)
	}

	err = r.db.QueryRowContext(ctx,
		query,
		user.Username,
		user.Email,
		user.PasswordHash,
		string(user.Role),
		skills,
		user.Resume,
		user.ResumeContentType,
		user.CreatedAt,
		user.UpdatedAt,
	).Scan(&user.ID)

	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("kullanıcı oluşturulamadı: %w", domain.ErrUserAlreadyExists)
		}
		r.logger.ErrorContext(ctx, "Kullanıcı oluşturulamadı", map[string]interface{}{"error": err.Error()})
		return fmt.Errorf("kullanıcı oluşturulamadı: %w", err)
	}

	return nil
}

func (r *UserRepository) Update(ctx context.Context, user *domain.User) error {
	query := `
		UPDATE users
		SET username = $1, email = $2, password_hash = $3, role = $4, skills = $5, updated_at = $6
		WHERE id = $7
	`

	user.UpdatedAt = time.Now().UTC()

	skills, err := encodeSkills(user.Skills)
	if err != nil {
		return fmt.Errorf("kullanıcı güncellenemedi: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		query,
		user.Username,
		user.Email,
		user.PasswordHash,
		string(user.Role),
		skills,
		user.UpdatedAt,
		user.ID,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("kullanıcı güncellenemedi: %w", domain.ErrUserAlreadyExists)
		}
		r.logger.ErrorContext(ctx, "Kullanıcı güncellenemedi", map[string]interface{}{"id": user.ID, "error": err.Error()})
		return fmt.Errorf("kullanıcı güncellenemedi: %w", err)
	}

	return nil
}

func (r *UserRepository) UpdateResume(ctx context.Context, id int64, path, contentType string) error {
	query := `UPDATE users SET resume_path = $1, resume_content_type = $2, updated_at = $3 WHERE id = $4`

	res, err := r.db.ExecContext(ctx, query, path, contentType, time.Now().UTC(), id)
	if err != nil {
		r.logger.ErrorContext(ctx, "Özgeçmiş yolu kaydedilemedi", map[string]interface{}{"id": id, "error": err.Error()})
		return fmt.Errorf("özgeçmiş yolu kaydedilemedi: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("özgeçmiş yolu kaydedilemedi: %w", domain.ErrUserNotFound)
	}

	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		r.logger.ErrorContext(ctx, "Kullanıcı silinemedi", map[string]interface{}{"id": id, "error": err.Error()})
		return fmt.Errorf("kullanıcı silinemedi: %w", err)
	}

	return nil
}
