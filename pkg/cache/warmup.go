package cache

import (
	"context"
	"fmt"
	"time"

	"hirehub/internal/domain"
	"hirehub/pkg/logger"
)

// WarmUpManager preloads the public job board into the cache.
type WarmUpManager struct {
	cache      Cache
	logger     logger.Logger
	jobService domain.JobService
}

func NewWarmUpManager(cache Cache, logger logger.Logger, jobService domain.JobService) *WarmUpManager {
	return &WarmUpManager{
		cache:      cache,
		logger:     logger,
		jobService: jobService,
	}
}

// WarmUpJobs caches the job list and every individual job in one pipeline.
func (w *WarmUpManager) WarmUpJobs(ctx context.Context) error {
	start := time.Now()

	jobs, err := w.jobService.ListJobs(ctx)
	if err != nil {
		return fmt.Errorf("ilan warm-up hatası: %w", err)
	}

	items := make(map[string]interface{}, len(jobs)+1)
	items[JobListKey] = jobs
	for _, job := range jobs {
		items[JobCacheKey(job.ID)] = job
	}

	if err := w.cache.SetMultiple(ctx, items, MediumExpiration); err != nil {
		return fmt.Errorf("ilan warm-up hatası: %w", err)
	}

	w.logger.Info("İlan warm-up tamamlandı", map[string]interface{}{
		"jobs":     len(jobs),
		"duration": time.Since(start),
	})
	return nil
}

// ScheduledWarmUp refreshes the job cache every interval until ctx is done.
func (w *WarmUpManager) ScheduledWarmUp(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	w.logger.Info("Scheduled warm-up başlatıldı", map[string]interface{}{
		"interval": interval,
	})

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("Scheduled warm-up durduruldu", map[string]interface{}{})
			return
		case <-ticker.C:
			if err := w.WarmUpJobs(ctx); err != nil {
				w.logger.Error("Scheduled warm-up hatası", map[string]interface{}{
					"error": err.Error(),
				})
			}
		}
	}
}
