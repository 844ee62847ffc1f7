package api

import (
	"database/sql"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"hirehub/internal/api/middleware"
	"hirehub/internal/domain"
	"hirehub/pkg/cache"
	"hirehub/pkg/logger"
)

// Dependencies is everything the HTTP surface needs. Cache and WarmUp are
// nil when redis is disabled.
type Dependencies struct {
	Users        domain.UserService
	Jobs         domain.JobService
	Applications domain.ApplicationService
	Interviews   domain.InterviewService
	Resumes      domain.ResumeService
	AuditLogs    domain.AuditLogService
	Tokens       middleware.TokenParser

	DB     *sql.DB
	Cache  cache.Cache
	WarmUp *cache.WarmUpManager

	AllowedOrigins []string
	Logger         logger.Logger
}

func NewRouter(deps Dependencies) *gin.Engine {
	log := deps.Logger

	r := gin.New()
	r.Use(
		middleware.Recovery(log),
		corsMiddleware(deps.AllowedOrigins),
		middleware.Tracing(),
		middleware.Metrics(),
		middleware.Logging(log),
	)

	health := NewHealthHandler(deps.DB, deps.Cache, log)
	r.GET("/healthz", health.HealthCheck)
	r.GET("/livez", health.LivenessCheck)
	r.GET("/readyz", health.ReadinessCheck)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	auth := NewAuthHandler(deps.Users, log)
	jobs := NewJobHandler(deps.Jobs, log)
	apps := NewApplicationHandler(deps.Applications, log)
	users := NewUserHandler(deps.Users, deps.Resumes, log)
	interviews := NewInterviewHandler(deps.Interviews, log)
	audits := NewAuditLogHandler(deps.AuditLogs, log)

	api := r.Group("/api")
	auth.RegisterRoutes(api)
	api.GET("/job", jobs.ListJobs)
	api.GET("/job/:id", jobs.GetJob)

	authed := api.Group("")
	authed.Use(middleware.Authenticate(deps.Tokens, log))

	authed.POST("/apply/:jobId", middleware.RequireRoles(domain.RoleUser, domain.RoleAdmin), apps.Apply)
	authed.GET("/applications", apps.ListApplications)
	authed.GET("/application/:userId", apps.ListUserApplications)
	authed.DELETE("/application/:id", apps.DeleteApplication)
	authed.GET("/profile/:id", users.GetProfile)
	authed.PUT("/edit_profile/:id", users.EditProfile)
	authed.DELETE("/user/:id", users.DeleteAccount)
	authed.GET("/resume/:id", users.DownloadResume)

	admin := authed.Group("/admin", middleware.RequireRoles(domain.RoleAdmin))
	admin.GET("/users", users.ListUsers)
	admin.GET("/user/:id", users.GetUser)
	admin.POST("/create_recruiter", users.CreateRecruiter)
	admin.PUT("/user/edit/:id", users.AdminUpdateUser)
	admin.DELETE("/user/:id", users.DeleteUser)
	admin.GET("/jobs", jobs.ListJobs)
	admin.GET("/job/:id", jobs.GetJob)
	admin.DELETE("/job/:id", jobs.DeleteJob)
	admin.GET("/applications", apps.ListAllApplications)
	admin.GET("/audit-logs", audits.GetAllLogs)
	admin.GET("/audit-logs/:entityType/:entityId", audits.GetEntityLogs)

	if deps.Cache != nil && deps.WarmUp != nil {
		caches := NewCacheHandler(deps.Cache, deps.WarmUp, log)
		admin.POST("/cache/warmup", caches.WarmUp)
		admin.POST("/cache/invalidate", caches.Invalidate)
		admin.GET("/cache/health", caches.Health)
	}

	recruiter := authed.Group("/recruiter", middleware.RequireRoles(domain.RoleRecruiter, domain.RoleAdmin))
	recruiter.POST("/createJob/:id", jobs.CreateJob)
	recruiter.GET("/jobs", jobs.ListOwnJobs)
	recruiter.GET("/job/:id", jobs.GetJob)
	recruiter.PUT("/job/:id", jobs.UpdateJob)
	recruiter.DELETE("/job/:id", jobs.DeleteJob)
	recruiter.GET("/applications", apps.ListAllApplications)
	recruiter.GET("/application/:id", apps.GetApplication)
	recruiter.PUT("/application/:id/status", apps.UpdateStatus)
	recruiter.POST("/schedule-interview", interviews.Schedule)

	return r
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders: []string{"Content-Length", "Content-Disposition"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cors.New(cfg)
}
