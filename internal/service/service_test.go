package service

import (
	"testing"
	"time"

	"github.com/spf13/afero"
	"golang.org/x/crypto/bcrypt"

	"hirehub/internal/database/databasetest"
	"hirehub/internal/domain"
	"hirehub/internal/repository"
	"hirehub/internal/storage"
	"hirehub/pkg/logger"
	"hirehub/pkg/token"
)

type testEnv struct {
	userRepo domain.UserRepository
	jobRepo  domain.JobRepository
	appRepo  domain.ApplicationRepository
	ivRepo   domain.InterviewRepository
	auditSvc domain.AuditLogService
	tokens   *token.Manager
	fs       afero.Fs
	blobs    *storage.BlobStore
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := databasetest.New(t)
	log := logger.Nop()

	fs := afero.NewMemMapFs()
	blobs, err := storage.NewBlobStore(fs, "/uploads")
	if err != nil {
		t.Fatal(err)
	}

	return &testEnv{
		userRepo: repository.NewUserRepository(db, log),
		jobRepo:  repository.NewJobRepository(db, log),
		appRepo:  repository.NewApplicationRepository(db, log),
		ivRepo:   repository.NewInterviewRepository(db, log),
		auditSvc: NewAuditLogService(repository.NewAuditLogRepository(db, log), log),
		tokens:   token.NewManager("test-secret", time.Hour),
		fs:       fs,
		blobs:    blobs,
	}
}

func (e *testEnv) users() *UserService {
	svc := NewUserService(e.userRepo, e.auditSvc, e.tokens, e.blobs, logger.Nop()).(*UserService)
	svc.hashCost = bcrypt.MinCost
	return svc
}

func (e *testEnv) jobs() domain.JobService {
	return NewJobService(e.jobRepo, e.auditSvc, logger.Nop())
}

func (e *testEnv) applications(policy domain.ApplicationPolicy) domain.ApplicationService {
	return NewApplicationService(e.appRepo, e.jobRepo, e.userRepo, e.auditSvc, policy, logger.Nop())
}

func (e *testEnv) interviews(verify bool) domain.InterviewService {
	return NewInterviewService(e.ivRepo, e.appRepo, e.auditSvc, verify, logger.Nop())
}

func (e *testEnv) resumes(opts ResumeOptions) domain.ResumeService {
	if opts.MaxBytes == 0 {
		opts.MaxBytes = 1 << 20
	}
	return NewResumeService(e.userRepo, e.blobs, e.auditSvc, opts, logger.Nop())
}
