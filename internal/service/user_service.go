package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"hirehub/internal/domain"
	"hirehub/pkg/logger"
	"hirehub/pkg/metrics"
)

// TokenIssuer signs session tokens for authenticated users.
type TokenIssuer interface {
	Issue(user *domain.User) (string, error)
}

// BlobRemover deletes a stored file by its relative path.
type BlobRemover interface {
	Remove(name string) error
}

type UserService struct {
	repo     domain.UserRepository
	auditSvc domain.AuditLogService
	tokens   TokenIssuer
	blobs    BlobRemover
	logger   logger.Logger
	hashCost int
}

func NewUserService(
	repo domain.UserRepository,
	auditSvc domain.AuditLogService,
	tokens TokenIssuer,
	blobs BlobRemover,
	logger logger.Logger,
) domain.UserService {
	return &UserService{
		repo:     repo,
		auditSvc: auditSvc,
		tokens:   tokens,
		blobs:    blobs,
		logger:   logger,
		hashCost: bcrypt.DefaultCost,
	}
}

func (s *UserService) Register(ctx context.Context, username, email, password string) (*domain.AuthResult, error) {
	result, err := s.create(ctx, username, email, password, domain.RoleUser)
	if err != nil {
		metrics.RecordAuthAttempt("register", "failure")
		return nil, err
	}
	metrics.RecordAuthAttempt("register", "success")
	return result, nil
}

func (s *UserService) CreateUserWithRole(ctx context.Context, username, email, password string, role domain.Role) (*domain.AuthResult, error) {
	if role == "" {
		role = domain.RoleRecruiter
	}
	if !role.Valid() {
		return nil, fmt.Errorf("kullanıcı oluşturulamadı: %w", domain.ErrInvalidRole)
	}
	return s.create(ctx, username, email, password, role)
}

func (s *UserService) create(ctx context.Context, username, email, password string, role domain.Role) (*domain.AuthResult, error) {
	username = strings.TrimSpace(username)
	email = normalizeEmail(email)
	if username == "" || email == "" || password == "" {
		return nil, fmt.Errorf("kullanıcı oluşturulamadı: %w", domain.ErrMissingField)
	}

	existingUser, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		s.logger.ErrorContext(ctx, "E-posta adresi kontrolü sırasında hata oluştu", map[string]interface{}{"email": email, "error": err.Error()})
		return nil, fmt.Errorf("kullanıcı oluşturulamadı: %w", err)
	}

	if existingUser != nil {
		return nil, fmt.Errorf("kullanıcı oluşturulamadı: %w", domain.ErrUserAlreadyExists)
	}

	hash, err := s.hashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("kullanıcı oluşturulamadı: %w", err)
	}

	user := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		Skills:       []string{},
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("kullanıcı oluşturulamadı: %w", err)
	}

	s.audit(ctx, user.ID, domain.ActionTypeCreate, fmt.Sprintf("Kullanıcı oluşturuldu: %s (%s)", user.Email, user.Role))

	token, err := s.tokens.Issue(user)
	if err != nil {
		s.logger.ErrorContext(ctx, "Oturum anahtarı oluşturulamadı", map[string]interface{}{"user_id": user.ID, "error": err.Error()})
		return nil, fmt.Errorf("oturum anahtarı oluşturulamadı: %w", err)
	}

	return &domain.AuthResult{Token: token, User: user}, nil
}

// Authenticate returns the same error for an unknown email and a wrong
// password.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	user, err := s.repo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, fmt.Errorf("giriş yapılamadı: %w", err)
	}

	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		metrics.RecordAuthAttempt("login", "failure")
		s.logger.WarnContext(ctx, "Başarısız giriş denemesi", map[string]interface{}{"email": email})
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		s.logger.ErrorContext(ctx, "Oturum anahtarı oluşturulamadı", map[string]interface{}{"user_id": user.ID, "error": err.Error()})
		return nil, fmt.Errorf("oturum anahtarı oluşturulamadı: %w", err)
	}

	metrics.RecordAuthAttempt("login", "success")
	return &domain.AuthResult{Token: token, User: user}, nil
}

func (s *UserService) GetUserByID(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("kullanıcı bulunamadı: %w", err)
	}

	if user == nil {
		return nil, fmt.Errorf("kullanıcı ID'ye göre bulunamadı: %d: %w", id, domain.ErrUserNotFound)
	}

	return user, nil
}

func (s *UserService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	users, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("kullanıcılar listelenemedi: %w", err)
	}
	return users, nil
}

func (s *UserService) UpdateUser(ctx context.Context, id int64, update domain.UserUpdate) (*domain.User, error) {
	user, err := s.GetUserByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("kullanıcı güncellenemedi: %w", err)
	}

	var changed []string

	if update.Username != nil {
		username := strings.TrimSpace(*update.Username)
		if username == "" {
			return nil, fmt.Errorf("kullanıcı güncellenemedi: %w", domain.ErrMissingField)
		}
		user.Username = username
		changed = append(changed, "username")
	}

	if update.Email != nil {
		email := normalizeEmail(*update.Email)
		if email == "" {
			return nil, fmt.Errorf("kullanıcı güncellenemedi: %w", domain.ErrMissingField)
		}
		if email != user.Email {
			emailUser, err := s.repo.FindByEmail(ctx, email)
			if err != nil {
				s.logger.ErrorContext(ctx, "E-posta adresi kontrolü sırasında hata oluştu", map[string]interface{}{"email": email, "error": err.Error()})
				return nil, fmt.Errorf("kullanıcı güncellenemedi: %w", err)
			}

			if emailUser != nil {
				return nil, fmt.Errorf("kullanıcı güncellenemedi: %w", domain.ErrUserAlreadyExists)
			}
		}
		user.Email = email
		changed = append(changed, "email")
	}

	if update.Skills != nil {
		user.Skills = normalizeSkills(*update.Skills)
		changed = append(changed, "skills")
	}

	if update.Role != nil {
		if !update.Role.Valid() {
			return nil, fmt.Errorf("kullanıcı güncellenemedi: %w", domain.ErrInvalidRole)
		}
		user.Role = *update.Role
		changed = append(changed, "role")
	}

	if update.Password != nil && *update.Password != "" {
		hash, err := s.hashPassword(*update.Password)
		if err != nil {
			return nil, fmt.Errorf("kullanıcı güncellenemedi: %w", err)
		}
		user.PasswordHash = hash
		changed = append(changed, "password")
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("kullanıcı güncellenemedi: %w", err)
	}

	s.audit(ctx, user.ID, domain.ActionTypeUpdate, fmt.Sprintf("Kullanıcı güncellendi: %s", strings.Join(changed, ",")))

	return user, nil
}

func (s *UserService) DeleteUser(ctx context.Context, id int64) error {
	existingUser, err := s.GetUserByID(ctx, id)
	if err != nil {
		return fmt.Errorf("kullanıcı silinemedi: %w", err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("kullanıcı silinemedi: %w", err)
	}

	// The account is gone either way; a leftover file is only logged.
	if existingUser.Resume != "" {
		if err := s.blobs.Remove(existingUser.Resume); err != nil {
			s.logger.WarnContext(ctx, "Silinen kullanıcının özgeçmiş dosyası kaldırılamadı", map[string]interface{}{
				"user_id": id,
				"path":    existingUser.Resume,
				"error":   err.Error(),
			})
		}
	}

	s.audit(ctx, id, domain.ActionTypeDelete, fmt.Sprintf("Kullanıcı silindi: %s", existingUser.Email))

	return nil
}

func (s *UserService) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", fmt.Errorf("şifre çok uzun: %w", domain.ErrInvalidPassword)
		}
		return "", fmt.Errorf("şifre özetlenemedi: %w", err)
	}
	return string(hash), nil
}

func (s *UserService) audit(ctx context.Context, userID int64, action domain.ActionType, details string) {
	// LogAction logs its own failures; the request never fails on audit.
	_ = s.auditSvc.LogAction(ctx, domain.EntityTypeUser, userID, action, details)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func normalizeSkills(skills []string) []string {
	out := make([]string, 0, len(skills))
	for _, skill := range skills {
		if skill = strings.TrimSpace(skill); skill != "" {
			out = append(out, skill)
		}
	}
	return out
}
