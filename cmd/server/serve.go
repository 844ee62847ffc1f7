package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-extras/cobraflags"
	"github.com/spf13/cobra"

	"hirehub/internal/api"
	"hirehub/internal/config"
	"hirehub/internal/database"
	"hirehub/pkg/cache"
	"hirehub/pkg/factory"
	"hirehub/pkg/tracing"
)

const (
	portFlag = "port"

	warmUpInterval  = cache.MediumExpiration / 2
	shutdownTimeout = 30 * time.Second
)

var serveFlags = map[string]cobraflags.Flag{
	portFlag: &cobraflags.StringFlag{
		Name:  portFlag,
		Value: "",
		Usage: "Port to listen on (overrides SERVER_PORT)",
	},
}

func newServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run migrations and start the HTTP server",
		RunE:  serveCommand,
	}
	cobraflags.RegisterMap(cmd, serveFlags)
	return cmd
}

func serveCommand(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if port := serveFlags[portFlag].GetString(); port != "" {
		cfg.Server.Port = port
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Tracing {
		shutdownTracing := tracing.Init()
		defer shutdownTracing(context.Background())
	}

	appFactory, err := factory.NewFactory(ctx, cfg)
	if err != nil {
		return err
	}
	defer appFactory.Close()

	log := appFactory.GetLogger()
	log.Info("Uygulama başlatılıyor", map[string]interface{}{"env": cfg.AppEnv})

	migrationService := database.NewMigrationService(appFactory.GetDB(), appFactory.GetDialect(), log)
	if err := migrationService.RunMigrations(ctx); err != nil {
		log.Error("Migrationlar uygulanamadı", map[string]interface{}{"error": err.Error()})
		return err
	}

	if cfg.AppEnv != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := api.NewRouter(api.Dependencies{
		Users:          appFactory.GetUserService(),
		Jobs:           appFactory.GetJobService(),
		Applications:   appFactory.GetApplicationService(),
		Interviews:     appFactory.GetInterviewService(),
		Resumes:        appFactory.GetResumeService(),
		AuditLogs:      appFactory.GetAuditLogService(),
		Tokens:         appFactory.GetTokenManager(),
		DB:             appFactory.GetDB(),
		Cache:          appFactory.GetCache(),
		WarmUp:         appFactory.GetWarmUpManager(),
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		Logger:         log,
	})

	if warmUp := appFactory.GetWarmUpManager(); warmUp != nil {
		if err := warmUp.WarmUpJobs(ctx); err != nil {
			log.Warn("İlk cache warm-up başarısız", map[string]interface{}{"error": err.Error()})
		}
		go warmUp.ScheduledWarmUp(ctx, warmUpInterval)
	}

	server := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       2 * cfg.Server.Timeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("HTTP sunucusu başlatılıyor", map[string]interface{}{"port": cfg.Server.Port})

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		log.Error("HTTP sunucusu başlatılamadı", map[string]interface{}{"error": err.Error()})
		return err
	}

	log.Info("Sunucu kapatılıyor...", map[string]interface{}{})

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Sunucu kapatılırken hata oluştu", map[string]interface{}{"error": err.Error()})
		return err
	}

	log.Info("Sunucu başarıyla kapatıldı", map[string]interface{}{})
	return nil
}
