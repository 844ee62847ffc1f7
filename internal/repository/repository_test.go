package repository

import (
	"context"
	"testing"

	qt "github.com/frankban/quicktest"

	"hirehub/internal/database/databasetest"
	"hirehub/internal/domain"
	"hirehub/pkg/logger"
)

type repos struct {
	users        domain.UserRepository
	jobs         domain.JobRepository
	applications domain.ApplicationRepository
	interviews   domain.InterviewRepository
	auditLogs    domain.AuditLogRepository
}

func newRepos(t *testing.T) repos {
	db := databasetest.New(t)
	log := logger.Nop()
	return repos{
		users:        NewUserRepository(db, log),
		jobs:         NewJobRepository(db, log),
		applications: NewApplicationRepository(db, log),
		interviews:   NewInterviewRepository(db, log),
		auditLogs:    NewAuditLogRepository(db, log),
	}
}

func createUser(c *qt.C, r repos, email string) *domain.User {
	user := &domain.User{Username: "ada", Email: email, PasswordHash: "hash"}
	c.Assert(r.users.Create(context.Background(), user), qt.IsNil)
	return user
}

func createJob(c *qt.C, r repos, title string, owner int64) *domain.Job {
	job := &domain.Job{Title: title, Description: "d", Company: "acme", PostedBy: owner}
	c.Assert(r.jobs.Create(context.Background(), job), qt.IsNil)
	return job
}
