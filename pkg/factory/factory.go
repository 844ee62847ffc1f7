package factory

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/afero"

	"hirehub/internal/config"
	"hirehub/internal/database"
	"hirehub/internal/domain"
	"hirehub/internal/repository"
	"hirehub/internal/service"
	"hirehub/internal/storage"
	"hirehub/pkg/cache"
	"hirehub/pkg/logger"
	"hirehub/pkg/token"
)

type Factory interface {
	GetLogger() logger.Logger
	GetConfig() *config.Config
	GetDB() *sql.DB
	GetDialect() database.Dialect
	GetRedisClient() *redis.Client
	GetCache() cache.Cache
	GetCacheManager() cache.CacheStrategy
	GetWarmUpManager() *cache.WarmUpManager
	GetTokenManager() *token.Manager

	GetUserRepository() domain.UserRepository
	GetJobRepository() domain.JobRepository
	GetApplicationRepository() domain.ApplicationRepository
	GetInterviewRepository() domain.InterviewRepository
	GetAuditLogRepository() domain.AuditLogRepository

	GetUserService() domain.UserService
	GetJobService() domain.JobService
	GetApplicationService() domain.ApplicationService
	GetInterviewService() domain.InterviewService
	GetResumeService() domain.ResumeService
	GetAuditLogService() domain.AuditLogService

	Close() error
}

type AppFactory struct {
	config        *config.Config
	logger        logger.Logger
	db            *sql.DB
	dialect       database.Dialect
	redisClient   *redis.Client
	cache         cache.Cache
	cacheManager  cache.CacheStrategy
	warmUpManager *cache.WarmUpManager
	tokens        *token.Manager
	blobs         *storage.BlobStore

	userRepository        domain.UserRepository
	jobRepository         domain.JobRepository
	applicationRepository domain.ApplicationRepository
	interviewRepository   domain.InterviewRepository
	auditLogRepository    domain.AuditLogRepository

	userService        domain.UserService
	jobService         domain.JobService
	applicationService domain.ApplicationService
	interviewService   domain.InterviewService
	resumeService      domain.ResumeService
	auditLogService    domain.AuditLogService
}

// NewFactory connects the database, and redis when enabled, and wires every
// repository and service. Without redis the job services run uncached.
func NewFactory(ctx context.Context, cfg *config.Config) (Factory, error) {
	log := logger.New(logger.LogLevel(cfg.LogLevel), cfg.AppEnv, os.Stdout)

	db, dialect, err := database.Open(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	blobs, err := storage.NewBlobStore(afero.NewOsFs(), cfg.Resume.Dir)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("özgeçmiş dizini hazırlanamadı: %w", err)
	}

	factory := &AppFactory{
		config:  cfg,
		logger:  log,
		db:      db,
		dialect: dialect,
		tokens:  token.NewManager(cfg.Auth.JWTSecret, cfg.Auth.JWTExpiresIn),
		blobs:   blobs,
	}

	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})

		if err := redisClient.Ping(ctx).Err(); err != nil {
			redisClient.Close()
			db.Close()
			return nil, fmt.Errorf("Redis bağlantısı kurulamadı: %w", err)
		}

		factory.redisClient = redisClient
		factory.cache = cache.NewGuardedCache(cache.NewRedisCache(redisClient, log, "hirehub"), log)
		factory.cacheManager = cache.NewCacheManager(factory.cache, log)
	}

	factory.initRepositories()
	factory.initServices()

	log.Info("Bağımlılıklar hazırlandı", map[string]interface{}{
		"db_driver":   cfg.Database.Driver,
		"redis":       cfg.Redis.Enabled,
		"transitions": factory.transitionPolicy().Name(),
	})

	return factory, nil
}

func (f *AppFactory) initRepositories() {
	f.userRepository = repository.NewUserRepository(f.db, f.logger)
	f.jobRepository = repository.NewJobRepository(f.db, f.logger)
	f.applicationRepository = repository.NewApplicationRepository(f.db, f.logger)
	f.interviewRepository = repository.NewInterviewRepository(f.db, f.logger)
	f.auditLogRepository = repository.NewAuditLogRepository(f.db, f.logger)
}

func (f *AppFactory) initServices() {
	f.auditLogService = service.NewAuditLogService(f.auditLogRepository, f.logger)

	f.userService = service.NewUserService(f.userRepository, f.auditLogService, f.tokens, f.blobs, f.logger)

	baseJobService := service.NewJobService(f.jobRepository, f.auditLogService, f.logger)
	f.jobService = baseJobService
	if f.cache != nil {
		// Wrap with caching
		f.jobService = service.NewCachedJobService(baseJobService, f.cache, f.cacheManager, f.logger)
		f.warmUpManager = cache.NewWarmUpManager(f.cache, f.logger, baseJobService)
	}

	appCfg := f.config.Application
	f.applicationService = service.NewApplicationService(
		f.applicationRepository,
		f.jobRepository,
		f.userRepository,
		f.auditLogService,
		domain.ApplicationPolicy{
			Transitions:      f.transitionPolicy(),
			VerifyReferences: appCfg.VerifyReferences,
			RejectDuplicates: appCfg.RejectDuplicates,
		},
		f.logger,
	)

	f.interviewService = service.NewInterviewService(
		f.interviewRepository,
		f.applicationRepository,
		f.auditLogService,
		appCfg.VerifyReferences,
		f.logger,
	)

	f.resumeService = service.NewResumeService(
		f.userRepository,
		f.blobs,
		f.auditLogService,
		service.ResumeOptions{
			MaxBytes:        f.config.Resume.MaxBytes,
			SniffContent:    f.config.Resume.SniffContent,
			ServeStoredType: f.config.Resume.ServeStoredType,
		},
		f.logger,
	)
}

func (f *AppFactory) transitionPolicy() domain.TransitionPolicy {
	if f.config.Application.StrictTransitions {
		return domain.StrictTransitions{}
	}
	return domain.PermissiveTransitions{}
}

func (f *AppFactory) Close() error {
	if f.redisClient != nil {
		if err := f.redisClient.Close(); err != nil {
			f.logger.Warn("Redis bağlantısı kapatılamadı", map[string]interface{}{"error": err.Error()})
		}
	}
	return f.db.Close()
}

func (f *AppFactory) GetLogger() logger.Logger {
	return f.logger
}

func (f *AppFactory) GetConfig() *config.Config {
	return f.config
}

func (f *AppFactory) GetDB() *sql.DB {
	return f.db
}

func (f *AppFactory) GetDialect() database.Dialect {
	return f.dialect
}

// GetRedisClient returns nil when redis is disabled.
func (f *AppFactory) GetRedisClient() *redis.Client {
	return f.redisClient
}

func (f *AppFactory) GetCache() cache.Cache {
	return f.cache
}

func (f *AppFactory) GetCacheManager() cache.CacheStrategy {
	return f.cacheManager
}

func (f *AppFactory) GetWarmUpManager() *cache.WarmUpManager {
	return f.warmUpManager
}

func (f *AppFactory) GetTokenManager() *token.Manager {
	return f.tokens
}

func (f *AppFactory) GetUserRepository() domain.UserRepository {
	return f.userRepository
}

func (f *AppFactory) GetJobRepository() domain.JobRepository {
	return f.jobRepository
}

func (f *AppFactory) GetApplicationRepository() domain.ApplicationRepository {
	return f.applicationRepository
}

func (f *AppFactory) GetInterviewRepository() domain.InterviewRepository {
	return f.interviewRepository
}

func (f *AppFactory) GetAuditLogRepository() domain.AuditLogRepository {
	return f.auditLogRepository
}

func (f *AppFactory) GetUserService() domain.UserService {
	return f.userService
}

func (f *AppFactory) GetJobService() domain.JobService {
	return f.jobService
}

func (f *AppFactory) GetApplicationService() domain.ApplicationService {
	return f.applicationService
}

func (f *AppFactory) GetInterviewService() domain.InterviewService {
	return f.interviewService
}

func (f *AppFactory) GetResumeService() domain.ResumeService {
	return f.resumeService
}

func (f *AppFactory) GetAuditLogService() domain.AuditLogService {
	return f.auditLogService
}
