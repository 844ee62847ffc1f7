package service

import (
	"context"
	"errors"
	"sync"

	"hirehub/internal/domain"
	"hirehub/pkg/cache"
	"hirehub/pkg/logger"
)

// CachedJobService wraps JobService with a read-through cache. Every write
// drops the job and the listings that contain it. Keys that could not be
// dropped are remembered and read from the store until a later delete
// succeeds.
type CachedJobService struct {
	jobService   domain.JobService
	cache        cache.Cache
	cacheManager cache.CacheStrategy
	logger       logger.Logger

	mu    sync.Mutex
	stale map[string]struct{}
}

func NewCachedJobService(
	jobService domain.JobService,
	cacheInstance cache.Cache,
	cacheManager cache.CacheStrategy,
	logger logger.Logger,
) domain.JobService {
	return &CachedJobService{
		jobService:   jobService,
		cache:        cacheInstance,
		cacheManager: cacheManager,
		logger:       logger,
		stale:        make(map[string]struct{}),
	}
}

func (s *CachedJobService) GetJobByID(ctx context.Context, id int64) (*domain.Job, error) {
	key := cache.JobCacheKey(id)
	if s.isStale(ctx, key) {
		return s.jobService.GetJobByID(ctx, id)
	}

	var job *domain.Job
	err := s.cacheManager.ReadThrough(ctx, key, &job, func() (interface{}, error) {
		return s.jobService.GetJobByID(ctx, id)
	}, cache.LongExpiration)
	if err != nil {
		return nil, err
	}
	return job, nil
}

func (s *CachedJobService) ListJobs(ctx context.Context) ([]*domain.Job, error) {
	if s.isStale(ctx, cache.JobListKey) {
		return s.jobService.ListJobs(ctx)
	}

	var jobs []*domain.Job
	err := s.cacheManager.ReadThrough(ctx, cache.JobListKey, &jobs, func() (interface{}, error) {
		return s.jobService.ListJobs(ctx)
	}, cache.ShortExpiration)
	if err != nil {
		return nil, err
	}
	return jobs, nil
}

func (s *CachedJobService) ListJobsByOwner(ctx context.Context, postedBy int64) ([]*domain.Job, error) {
	key := cache.JobOwnerCacheKey(postedBy)
	if s.isStale(ctx, key) {
		return s.jobService.ListJobsByOwner(ctx, postedBy)
	}

	var jobs []*domain.Job
	err := s.cacheManager.ReadThrough(ctx, key, &jobs, func() (interface{}, error) {
		return s.jobService.ListJobsByOwner(ctx, postedBy)
	}, cache.ShortExpiration)
	if err != nil {
		return nil, err
	}
	return jobs, nil
}

func (s *CachedJobService) CreateJob(ctx context.Context, job *domain.Job) error {
	if err := s.jobService.CreateJob(ctx, job); err != nil {
		return err
	}

	s.drop(ctx, job.ID, cache.JobListKey, cache.JobOwnerCacheKey(job.PostedBy))
	return nil
}

// UpdateJob writes the merged job back to its key and drops the listings.
func (s *CachedJobService) UpdateJob(ctx context.Context, id int64, update domain.JobUpdate) (*domain.Job, error) {
	updated := &domain.Job{}
	err := s.cacheManager.WriteThrough(ctx, cache.JobCacheKey(id), updated, func(interface{}) error {
		job, err := s.jobService.UpdateJob(ctx, id, update)
		if err != nil {
			return err
		}
		*updated = *job
		return nil
	}, cache.LongExpiration)
	switch {
	case errors.Is(err, cache.ErrStale):
		s.markStale(ctx, id, cache.JobCacheKey(id))
	case err != nil:
		return nil, err
	}

	s.drop(ctx, id, cache.JobListKey, cache.JobOwnerCacheKey(updated.PostedBy))
	return updated, nil
}

func (s *CachedJobService) DeleteJob(ctx context.Context, id int64) error {
	job, _ := s.jobService.GetJobByID(ctx, id)

	if err := s.jobService.DeleteJob(ctx, id); err != nil {
		return err
	}

	if job == nil {
		s.drop(ctx, id, cache.JobCacheKey(id), cache.JobListKey)
		return nil
	}
	s.drop(ctx, id, cache.JobCacheKeys(id, job.PostedBy)...)
	return nil
}

func (s *CachedJobService) drop(ctx context.Context, jobID int64, keys ...string) {
	if err := s.cache.DeleteMultiple(ctx, keys); err != nil {
		s.logger.WarnContext(ctx, "İlan cache'i temizlenemedi", map[string]interface{}{
			"job_id": jobID,
			"keys":   keys,
			"error":  err.Error(),
		})
		s.markStale(ctx, jobID, keys...)
	}
}

func (s *CachedJobService) markStale(ctx context.Context, jobID int64, keys ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, key := range keys {
		s.stale[key] = struct{}{}
	}
	s.logger.WarnContext(ctx, "Cache anahtarları bayat olarak işaretlendi", map[string]interface{}{
		"job_id": jobID,
		"keys":   keys,
	})
}

// isStale retries the pending deletes and reports whether key is still
// unsafe to read from the cache.
func (s *CachedJobService) isStale(ctx context.Context, key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.stale) == 0 {
		return false
	}

	keys := make([]string, 0, len(s.stale))
	for k := range s.stale {
		keys = append(keys, k)
	}
	if err := s.cache.DeleteMultiple(ctx, keys); err != nil {
		_, ok := s.stale[key]
		return ok
	}

	s.stale = make(map[string]struct{})
	s.logger.InfoContext(ctx, "Bayat cache anahtarları temizlendi", map[string]interface{}{"keys": keys})
	return false
}
