package service

import (
	"context"
	"errors"
	"testing"

	qt "github.com/frankban/quicktest"

	"hirehub/internal/domain"
	"hirehub/pkg/cache"
	"hirehub/pkg/cache/cachetest"
	"hirehub/pkg/logger"
)

func newJob(title string, owner int64) *domain.Job {
	return &domain.Job{Title: title, Description: "Build services", Company: "acme", PostedBy: owner}
}

func TestCreateJob(t *testing.T) {
	c := qt.New(t)
	svc := newTestEnv(t).jobs()
	ctx := context.Background()

	job := newJob("Backend", 1)
	c.Assert(svc.CreateJob(ctx, job), qt.IsNil)
	c.Assert(job.Status, qt.Equals, domain.JobStatusOpen)

	err := svc.CreateJob(ctx, newJob("Backend", 1))
	c.Assert(errors.Is(err, domain.ErrJobAlreadyExists), qt.IsTrue)

	c.Assert(svc.CreateJob(ctx, newJob("Backend", 2)), qt.IsNil)

	err = svc.CreateJob(ctx, &domain.Job{Title: "No company", Description: "d", PostedBy: 1})
	c.Assert(errors.Is(err, domain.ErrMissingField), qt.IsTrue)

	bad := newJob("Weird", 1)
	bad.Status = "paused"
	err = svc.CreateJob(ctx, bad)
	c.Assert(errors.Is(err, domain.ErrInvalidJobStatus), qt.IsTrue)
}

func TestUpdateJob(t *testing.T) {
	c := qt.New(t)
	svc := newTestEnv(t).jobs()
	ctx := context.Background()

	a := newJob("A", 1)
	c.Assert(svc.CreateJob(ctx, a), qt.IsNil)
	c.Assert(svc.CreateJob(ctx, newJob("B", 1)), qt.IsNil)

	closed := domain.JobStatusClosed
	salary := 90000.0
	updated, err := svc.UpdateJob(ctx, a.ID, domain.JobUpdate{Status: &closed, Salary: &salary})
	c.Assert(err, qt.IsNil)
	c.Assert(updated.Status, qt.Equals, domain.JobStatusClosed)
	c.Assert(*updated.Salary, qt.Equals, 90000.0)
	c.Assert(updated.Title, qt.Equals, "A")

	taken := "B"
	_, err = svc.UpdateJob(ctx, a.ID, domain.JobUpdate{Title: &taken})
	c.Assert(errors.Is(err, domain.ErrJobAlreadyExists), qt.IsTrue)

	invalid := domain.JobStatus("draft")
	_, err = svc.UpdateJob(ctx, a.ID, domain.JobUpdate{Status: &invalid})
	c.Assert(errors.Is(err, domain.ErrInvalidJobStatus), qt.IsTrue)

	_, err = svc.UpdateJob(ctx, 404, domain.JobUpdate{Status: &closed})
	c.Assert(errors.Is(err, domain.ErrJobNotFound), qt.IsTrue)
}

func TestDeleteJob(t *testing.T) {
	c := qt.New(t)
	svc := newTestEnv(t).jobs()
	ctx := context.Background()

	job := newJob("A", 1)
	c.Assert(svc.CreateJob(ctx, job), qt.IsNil)
	c.Assert(svc.DeleteJob(ctx, job.ID), qt.IsNil)

	_, err := svc.GetJobByID(ctx, job.ID)
	c.Assert(errors.Is(err, domain.ErrJobNotFound), qt.IsTrue)
	c.Assert(errors.Is(svc.DeleteJob(ctx, job.ID), domain.ErrJobNotFound), qt.IsTrue)
}

func TestCachedJobServiceInvalidatesOnUpdate(t *testing.T) {
	c := qt.New(t)
	env := newTestEnv(t)
	ctx := context.Background()
	mem := cachetest.New()
	svc := NewCachedJobService(env.jobs(), mem, cache.NewCacheManager(mem, logger.Nop()), logger.Nop())

	job := newJob("Backend", 3)
	c.Assert(svc.CreateJob(ctx, job), qt.IsNil)

	got, err := svc.GetJobByID(ctx, job.ID)
	c.Assert(err, qt.IsNil)
	c.Assert(got.Status, qt.Equals, domain.JobStatusOpen)

	list, err := svc.ListJobs(ctx)
	c.Assert(err, qt.IsNil)
	c.Assert(list, qt.HasLen, 1)
	c.Assert(mem.Has(cache.JobListKey), qt.IsTrue)

	closed := domain.JobStatusClosed
	_, err = svc.UpdateJob(ctx, job.ID, domain.JobUpdate{Status: &closed})
	c.Assert(err, qt.IsNil)
	c.Assert(mem.Has(cache.JobListKey), qt.IsFalse)

	got, err = svc.GetJobByID(ctx, job.ID)
	c.Assert(err, qt.IsNil)
	c.Assert(got.Status, qt.Equals, domain.JobStatusClosed)

	list, err = svc.ListJobs(ctx)
	c.Assert(err, qt.IsNil)
	c.Assert(list[0].Status, qt.Equals, domain.JobStatusClosed)
}

func TestCachedJobServiceDropsDeletedJob(t *testing.T) {
	c := qt.New(t)
	env := newTestEnv(t)
	ctx := context.Background()
	mem := cachetest.New()
	svc := NewCachedJobService(env.jobs(), mem, cache.NewCacheManager(mem, logger.Nop()), logger.Nop())

	job := newJob("Backend", 3)
	c.Assert(svc.CreateJob(ctx, job), qt.IsNil)

	mine, err := svc.ListJobsByOwner(ctx, 3)
	c.Assert(err, qt.IsNil)
	c.Assert(mine, qt.HasLen, 1)
	_, err = svc.GetJobByID(ctx, job.ID)
	c.Assert(err, qt.IsNil)

	c.Assert(svc.DeleteJob(ctx, job.ID), qt.IsNil)
	c.Assert(mem.Has(cache.JobCacheKey(job.ID)), qt.IsFalse)

	_, err = svc.GetJobByID(ctx, job.ID)
	c.Assert(errors.Is(err, domain.ErrJobNotFound), qt.IsTrue)

	mine, err = svc.ListJobsByOwner(ctx, 3)
	c.Assert(err, qt.IsNil)
	c.Assert(mine, qt.HasLen, 0)
}

func TestCachedJobServiceDeleteSurvivesCacheOutage(t *testing.T) {
	c := qt.New(t)
	env := newTestEnv(t)
	ctx := context.Background()
	mem := cachetest.New()
	svc := NewCachedJobService(env.jobs(), mem, cache.NewCacheManager(mem, logger.Nop()), logger.Nop())

	job := newJob("Backend", 3)
	c.Assert(svc.CreateJob(ctx, job), qt.IsNil)
	_, err := svc.GetJobByID(ctx, job.ID)
	c.Assert(err, qt.IsNil)
	list, err := svc.ListJobs(ctx)
	c.Assert(err, qt.IsNil)
	c.Assert(list, qt.HasLen, 1)

	mem.Err = errors.New("redis down")
	c.Assert(svc.DeleteJob(ctx, job.ID), qt.IsNil)

	// Still down: reads go to the store.
	_, err = svc.GetJobByID(ctx, job.ID)
	c.Assert(errors.Is(err, domain.ErrJobNotFound), qt.IsTrue)

	mem.Err = nil
	c.Assert(mem.Has(cache.JobCacheKey(job.ID)), qt.IsTrue)

	_, err = svc.GetJobByID(ctx, job.ID)
	c.Assert(errors.Is(err, domain.ErrJobNotFound), qt.IsTrue)
	c.Assert(mem.Has(cache.JobCacheKey(job.ID)), qt.IsFalse)
	c.Assert(mem.Has(cache.JobListKey), qt.IsFalse)

	list, err = svc.ListJobs(ctx)
	c.Assert(err, qt.IsNil)
	c.Assert(list, qt.HasLen, 0)
}

func TestCachedJobServiceUpdateSurvivesCacheOutage(t *testing.T) {
	c := qt.New(t)
	env := newTestEnv(t)
	ctx := context.Background()
	mem := cachetest.New()
	svc := NewCachedJobService(env.jobs(), mem, cache.NewCacheManager(mem, logger.Nop()), logger.Nop())

	job := newJob("Backend", 3)
	c.Assert(svc.CreateJob(ctx, job), qt.IsNil)
	_, err := svc.GetJobByID(ctx, job.ID)
	c.Assert(err, qt.IsNil)

	mem.Err = errors.New("redis down")
	closed := domain.JobStatusClosed
	updated, err := svc.UpdateJob(ctx, job.ID, domain.JobUpdate{Status: &closed})
	c.Assert(err, qt.IsNil)
	c.Assert(updated.Status, qt.Equals, domain.JobStatusClosed)
	mem.Err = nil

	got, err := svc.GetJobByID(ctx, job.ID)
	c.Assert(err, qt.IsNil)
	c.Assert(got.Status, qt.Equals, domain.JobStatusClosed)

	got, err = svc.GetJobByID(ctx, job.ID)
	c.Assert(err, qt.IsNil)
	c.Assert(got.Status, qt.Equals, domain.JobStatusClosed)
}
