package api

import (
	"errors"
	"net/http"
	"testing"

	qt "github.com/frankban/quicktest"

	"hirehub/internal/domain"
	"hirehub/pkg/cache"
	"hirehub/pkg/cache/cachetest"
)

var errCacheDown = errors.New("redis: connection refused")

func TestCacheRoutes(t *testing.T) {
	c := qt.New(t)
	mem := cachetest.New()
	srv := newCachedTestServer(t, mem)
	_, adminToken := srv.account(c, "root", domain.RoleAdmin)
	recID, recToken := srv.account(c, "rec", domain.RoleRecruiter)
	job := createJob(c, srv, recID, recToken, "Go Engineer")

	w := srv.do(http.MethodPost, "/api/admin/cache/warmup", recToken, nil)
	c.Assert(w.Code, qt.Equals, http.StatusForbidden)

	w = srv.do(http.MethodPost, "/api/admin/cache/warmup", adminToken, nil)
	c.Assert(w.Code, qt.Equals, http.StatusOK)
	c.Assert(mem.Has(cache.JobListKey), qt.IsTrue)
	c.Assert(mem.Has(cache.JobCacheKey(job.ID)), qt.IsTrue)

	w = srv.do(http.MethodPost, "/api/admin/cache/invalidate", adminToken, map[string]int64{"jobId": job.ID})
	c.Assert(w.Code, qt.Equals, http.StatusOK)
	c.Assert(mem.Has(cache.JobCacheKey(job.ID)), qt.IsFalse)
	c.Assert(mem.Has(cache.JobListKey), qt.IsFalse)

	// Public reads repopulate the cache through read-through.
	w = srv.do(http.MethodGet, "/api/job/"+itoa(job.ID), "", nil)
	c.Assert(w.Code, qt.Equals, http.StatusOK)
	c.Assert(mem.Has(cache.JobCacheKey(job.ID)), qt.IsTrue)

	w = srv.do(http.MethodPost, "/api/admin/cache/invalidate", adminToken, nil)
	c.Assert(w.Code, qt.Equals, http.StatusOK)
	c.Assert(mem.Has(cache.JobCacheKey(job.ID)), qt.IsFalse)

	w = srv.do(http.MethodGet, "/api/admin/cache/health", adminToken, nil)
	c.Assert(w.Code, qt.Equals, http.StatusOK)

	w = srv.do(http.MethodGet, "/healthz", "", nil)
	var health HealthResponse
	decode(c, w, &health)
	c.Assert(health.Services["redis"], qt.Not(qt.IsNil))
}

func TestCachedJobReadsSurviveCacheOutage(t *testing.T) {
	c := qt.New(t)
	mem := cachetest.New()
	srv := newCachedTestServer(t, mem)
	recID, recToken := srv.account(c, "rec", domain.RoleRecruiter)
	createJob(c, srv, recID, recToken, "Go Engineer")

	mem.Err = errCacheDown

	w := srv.do(http.MethodGet, "/api/job", "", nil)
	c.Assert(w.Code, qt.Equals, http.StatusOK)
	var jobs []domain.Job
	decode(c, w, &jobs)
	c.Assert(jobs, qt.HasLen, 1)

	w = srv.do(http.MethodGet, "/healthz", "", nil)
	c.Assert(w.Code, qt.Equals, http.StatusServiceUnavailable)

	w = srv.do(http.MethodGet, "/readyz", "", nil)
	c.Assert(w.Code, qt.Equals, http.StatusOK)
}

func TestDeletedJobIsNotServedAfterCacheOutage(t *testing.T) {
	c := qt.New(t)
	mem := cachetest.New()
	srv := newCachedTestServer(t, mem)
	recID, recToken := srv.account(c, "rec", domain.RoleRecruiter)
	job := createJob(c, srv, recID, recToken, "Go Engineer")

	w := srv.do(http.MethodGet, "/api/job/"+itoa(job.ID), "", nil)
	c.Assert(w.Code, qt.Equals, http.StatusOK)
	c.Assert(mem.Has(cache.JobCacheKey(job.ID)), qt.IsTrue)

	mem.Err = errCacheDown
	w = srv.do(http.MethodDelete, "/api/recruiter/job/"+itoa(job.ID), recToken, nil)
	c.Assert(w.Code, qt.Equals, http.StatusOK)
	mem.Err = nil

	w = srv.do(http.MethodGet, "/api/job/"+itoa(job.ID), "", nil)
	c.Assert(w.Code, qt.Equals, http.StatusNotFound)
	c.Assert(msgOf(c, w), qt.Equals, "Job not found")

	w = srv.do(http.MethodGet, "/api/job", "", nil)
	c.Assert(w.Code, qt.Equals, http.StatusOK)
	var jobs []domain.Job
	decode(c, w, &jobs)
	c.Assert(jobs, qt.HasLen, 0)
}
