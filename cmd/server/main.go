package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ptit-edu/portal-backend/internal/apiurl"
	"github.com/ptit-edu/portal-backend/internal/config"
	"github.com/ptit-edu/portal-backend/internal/database"
	"github.com/ptit-edu/portal-backend/internal/handler"
	"github.com/ptit-edu/portal-backend/internal/logger"
	"github.com/ptit-edu/portal-backend/internal/mailer"
	"github.com/ptit-edu/portal-backend/internal/middleware"
	"github.com/ptit-edu/portal-backend/internal/repository"
	"github.com/ptit-edu/portal-backend/internal/router"
	"github.com/ptit-edu/portal-backend/internal/service"
	"github.com/ptit-edu/portal-backend/internal/validator"
	"github.com/ptit-edu/portal-backend/internal/worker"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Msg("Starting PTIT portal backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Connect to PostgreSQL and Redis ───────────────────────────────
	var (
		pool *pgxpool.Pool
		rdb  *redis.Client
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		pool, err = database.NewPostgresPool(gctx, cfg, log)
		return err
	})
	g.Go(func() error {
		var err error
		rdb, err = database.NewRedisClient(gctx, cfg, log)
		return err
	})
	if err := g.Wait(); err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to data stores")
	}
	defer pool.Close()
	if rdb != nil {
		defer rdb.Close()
	}

	// ─── Initialize Repositories ───────────────────────────────────────
	contentRepo := repository.NewContentRepository(pool)
	campusRepo := repository.NewCampusRepository(pool)
	admissionRepo := repository.NewAdmissionRepository(pool)

	// ─── Initialize Services ──────────────────────────────────────────
	baseURL := cfg.PublicBaseURL
	if baseURL == "" {
		baseURL = apiurl.FromEnv()
	}
	cache := service.NewRedisListCache(rdb)

	contentService := service.NewContentService(contentRepo, cache, cfg.ContentCacheTTL, log)
	campusService := service.NewCampusService(campusRepo, cache, cfg.ContentCacheTTL, baseURL, log)
	authService := service.NewAuthService(cfg)
	exportService := service.NewExportService(admissionRepo, log)

	var generator service.Generator
	if cfg.GeminiAPIKey != "" {
		gemini, err := service.NewGeminiGenerator(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create Gemini client")
		}
		generator = gemini
	} else {
		log.Warn().Msg("GEMINI_API_KEY not set, chat will answer with the busy reply")
	}
	chatService := service.NewChatService(generator, cfg.ChatTimeout, log)

	// ─── Admission Mail ───────────────────────────────────────────────
	workerCtx, workerCancel := context.WithCancel(context.Background())
	workerDone := make(chan struct{})

	notifier, mailWorker := selectNotifier(cfg, rdb, log)
	if mailWorker != nil {
		go func() {
			defer close(workerDone)
			mailWorker.Start(workerCtx)
		}()
	} else {
		close(workerDone)
	}

	admissionService := service.NewAdmissionService(
		admissionRepo,
		service.NewAdmissionStorage(cfg.AdmissionDir),
		notifier,
		service.AdmissionLimits{MaxFiles: cfg.MaxUploadFiles, MaxBytes: cfg.MaxUploadBytes},
		log,
	)

	// ─── Rate Limiters ────────────────────────────────────────────────
	limiters := &router.Limiters{
		Chat:      middleware.NewRateLimiter(cfg.ChatRPM, time.Minute),
		Admission: middleware.NewRateLimiter(5, time.Minute),
		Login:     middleware.NewRateLimiter(10, time.Minute),
	}
	limiterDone := make(chan struct{})
	defer close(limiterDone)
	limiters.Chat.StartCleanup(limiterDone)
	limiters.Admission.StartCleanup(limiterDone)
	limiters.Login.StartCleanup(limiterDone)

	// ─── Initialize Handlers ──────────────────────────────────────────
	checks := map[string]handler.HealthCheck{"postgres": pool.Ping}
	if rdb != nil {
		checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	}

	handlers := &router.Handlers{
		Content:   handler.NewContentHandler(contentService, campusService, log),
		Chat:      handler.NewChatHandler(chatService, limiters.Chat, cfg.AllowedOrigins, log),
		Admission: handler.NewAdmissionHandler(admissionService, cfg.MaxUploadBytes, log),
		Staff:     handler.NewStaffHandler(authService, admissionService, exportService, log),
		Health:    handler.NewHealthHandler(checks),
	}

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(authService, handlers, limiters, cfg, log)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().
			Str("addr", ":"+cfg.ServerPort).
			Str("public_base_url", baseURL).
			Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	// 1. Stop accepting new HTTP requests (5s timeout).
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	// 2. Stop the mail worker and wait for its queue to drain.
	workerCancel()
	select {
	case <-workerDone:
	case <-time.After(30 * time.Second):
		log.Warn().Msg("Mail queue drain timed out")
	}

	log.Info().Msg("Shutdown complete")
}

// selectNotifier picks how admissions reach the staff inbox. With
// MAIL_ASYNC and Redis the mail is queued and sent by a worker; otherwise
// it is sent inline, or only logged when SMTP is not configured.
func selectNotifier(cfg *config.Config, rdb *redis.Client, log zerolog.Logger) (service.AdmissionNotifier, *worker.MailWorker) {
	if !cfg.MailEnabled() {
		log.Warn().Msg("EMAIL_USER/EMAIL_PASS not set, admission mail disabled")
		return mailer.NewDisabled(log), nil
	}

	smtp := mailer.NewSMTPMailer(cfg, log)
	if cfg.MailAsync && rdb != nil {
		queue := worker.NewMailQueue(rdb)
		return queue, worker.NewMailWorker(queue, smtp, log)
	}
	if cfg.MailAsync {
		log.Warn().Msg("MAIL_ASYNC requires REDIS_URL, sending admission mail inline")
	}
	return smtp, nil
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
