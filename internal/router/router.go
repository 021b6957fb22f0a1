package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/ptit-edu/portal-backend/internal/config"
	"github.com/ptit-edu/portal-backend/internal/handler"
	"github.com/ptit-edu/portal-backend/internal/middleware"
	"github.com/ptit-edu/portal-backend/internal/response"
	"github.com/rs/zerolog"
)

// publicMaxAge is the Cache-Control max-age for /public assets (one day).
const publicMaxAge = 86400

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Content   *handler.ContentHandler
	Chat      *handler.ChatHandler
	Admission *handler.AdmissionHandler
	Staff     *handler.StaffHandler
	Health    *handler.HealthHandler
}

// Limiters groups the rate limiters so main can stop their cleanup loops.
type Limiters struct {
	Chat      *middleware.RateLimiter
	Admission *middleware.RateLimiter
	Login     *middleware.RateLimiter
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	auth middleware.TokenValidator,
	handlers *Handlers,
	limiters *Limiters,
	cfg *config.Config,
	log zerolog.Logger,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.MaxMultipartMemory = cfg.MaxUploadBytes

	// ─── CORS ──────────────────────────────────────────────────────────
	// Restrict to AllowedOrigins when set, otherwise allow all so the Vite
	// dev server and headsets on the LAN work without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID", "Content-Disposition"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	router.Use(response.RequestIDMiddleware(), middleware.AccessLog(log))

	// 3D models and spreadsheets are already compressed.
	router.Use(middleware.BrotliWithConfig(middleware.BrotliConfig{
		Quality:   middleware.DefaultBrotliConfig.Quality,
		MinLength: middleware.DefaultBrotliConfig.MinLength,
		Skipper:   middleware.SkipPrefixes("/public/models", "/api/admin/admissions/export"),
	}))

	// ─── Static assets ─────────────────────────────────────────────────
	publicGroup := router.Group("/public")
	publicGroup.Use(middleware.CacheControl(publicMaxAge))
	{
		publicGroup.Static("/", cfg.PublicDir)
	}

	router.GET("/health", handlers.Health.Health)

	// ─── 1. Public site API (bare JSON bodies) ─────────────────────────
	api := router.Group("/api")
	{
		api.GET("/intro", handlers.Content.Intro)
		api.GET("/history", handlers.Content.History)
		api.GET("/achievements", handlers.Content.Achievements)
		api.GET("/partners", handlers.Content.Partners)
		api.GET("/campus", handlers.Content.Campus)

		api.POST("/chat", limiters.Chat.Middleware(), handlers.Chat.Chat)
		api.POST("/admission", limiters.Admission.Middleware(), handlers.Admission.Submit)
	}

	router.GET("/ws/chat", handlers.Chat.Stream)

	// ─── 2. Admission staff console ────────────────────────────────────
	router.POST("/api/admin/login", limiters.Login.Middleware(), handlers.Staff.Login)

	staff := router.Group("/api/admin")
	staff.Use(middleware.NoStore(), middleware.RequireStaffJWT(auth))
	{
		staff.GET("/admissions", handlers.Staff.ListAdmissions)
		staff.GET("/admissions/export", handlers.Staff.ExportAdmissions)
	}

	router.NoRoute(func(c *gin.Context) {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
	})

	return router
}
