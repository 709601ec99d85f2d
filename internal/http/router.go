// Package httpapi wires the HTTP transport (Gin) to application services,
// middleware, and route handlers. It centralizes cross-cutting concerns such
// as tracing, correlation IDs, logging, panic recovery, metrics, CORS,
// security headers, authentication, and rate limiting.
//
// Design goals:
//   - Put observability first (OTel + Prometheus)
//   - Safe-by-default middleware ordering (RequestID → logging → recovery)
//   - Deterministic, minimal router setup; all dependencies injected
//   - Production-ready CORS and security header posture
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/preptrack/go-prep-backend/internal/config"
	"github.com/preptrack/go-prep-backend/internal/domain"
	"github.com/preptrack/go-prep-backend/internal/http/handlers"
	"github.com/preptrack/go-prep-backend/internal/http/middleware"
	"github.com/preptrack/go-prep-backend/internal/repo"
	"github.com/preptrack/go-prep-backend/internal/services"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"
)

// catalogStoreShim adapts the repository free functions to the
// services.CatalogStore interface expected by the ImportService. This keeps
// services decoupled from the concrete repo package while reusing existing
// functions.
type catalogStoreShim struct{}

// FindByTitles proxies repo.FindByTitles.
func (catalogStoreShim) FindByTitles(ctx context.Context, db *gorm.DB, titles []string) ([]domain.Question, error) {
	return repo.FindByTitles(ctx, db, titles)
}

// CreateQuestion proxies repo.CreateQuestion.
func (catalogStoreShim) CreateQuestion(ctx context.Context, db *gorm.DB, q *domain.Question) error {
	return repo.CreateQuestion(ctx, db, q)
}

// UpdateQuestionFields proxies repo.UpdateQuestionFields.
func (catalogStoreShim) UpdateQuestionFields(ctx context.Context, db *gorm.DB, id string, fields map[string]any) error {
	return repo.UpdateQuestionFields(ctx, db, id, fields)
}

// AppendCompanyTag proxies repo.AppendCompanyTag.
func (catalogStoreShim) AppendCompanyTag(ctx context.Context, db *gorm.DB, questionID string, tag domain.CompanyTag) (bool, error) {
	return repo.AppendCompanyTag(ctx, db, questionID, tag)
}

// UpsertMetadata proxies repo.UpsertMetadata.
func (catalogStoreShim) UpsertMetadata(ctx context.Context, db *gorm.DB, key string, value int64) error {
	return repo.UpsertMetadata(ctx, db, key, value)
}

// RegisterRoutes attaches all middleware and HTTP endpoints to the given Gin
// engine. It configures observability (tracing, metrics), rate limiting, CORS
// and security headers, health and metrics endpoints, and then mounts the
// versioned public API and the admin surface under /api/v*.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate correlation id
//  3. Structured request logging
//  4. Recovery: capture panics after logger
//  5. Body size limiter
//  6. Metrics
//  7. Rate limiter (per user/IP)
//  8. CORS and Security headers
//  9. Response compression
func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg config.Config) {
	r.HandleMethodNotAllowed = true

	// 1) Trace all HTTP requests
	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))

	// 2) Correlate requests and logs
	r.Use(middleware.RequestID())

	// 3) Structured request logging
	r.Use(middleware.Logger())

	// 4) Panic recovery to JSON 500 (with request id)
	r.Use(middleware.Recovery())

	// 5) Global body size limit (10 MiB; covers CSV uploads)
	r.Use(limitBody(10 << 20))

	// 6) Prometheus metrics and /metrics endpoint
	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 7) Token-bucket rate limiter per user/IP
	rl := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByUserOrIP())
	r.Use(rl.Handler())

	// 8) CORS posture (safe defaults: allow all if none configured)
	if len(cfg.CORS.AllowedOrigins) == 0 {
		// Force ACAO: * even for requests without an Origin header (helps tests and simple health checks).
		r.Use(func(c *gin.Context) {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
			c.Next()
		})
		r.Use(cors.New(cors.Config{
			AllowAllOrigins:  true,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-User-ID"},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
			AllowCredentials: false, // must remain false with AllowAllOrigins
			MaxAge:           12 * time.Hour,
		}))
	} else {
		// Echo ACAO with the request Origin when it is in the allowlist (in addition to gin-contrib/cors).
		allowed := make(map[string]struct{}, len(cfg.CORS.AllowedOrigins))
		for _, o := range cfg.CORS.AllowedOrigins {
			allowed[o] = struct{}{}
		}
		r.Use(func(c *gin.Context) {
			if origin := c.GetHeader("Origin"); origin != "" {
				if _, ok := allowed[origin]; ok {
					h := c.Writer.Header()
					h.Set("Access-Control-Allow-Origin", origin)
					h.Add("Vary", "Origin")
				}
			}
			c.Next()
		})
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORS.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-User-ID"},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
			AllowCredentials: false,
			MaxAge:           12 * time.Hour,
		}))
	}

	// Security headers (HSTS only when enabled and request is HTTPS)
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:   cfg.Security.EnableHSTS,
		HSTSMaxAge:   cfg.Security.HSTSMaxAge,
		NoStore:      false,
		EnablePolicy: true,
	}))

	// 9) Compress catalog payloads
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	// Fallbacks
	r.NoRoute(func(c *gin.Context) {
		handlers.Fail(c, http.StatusNotFound, handlers.ErrCodeNotFound, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		handlers.Fail(c, http.StatusMethodNotAllowed, handlers.ErrCodeMethodNotAllowed, "method not allowed")
	})

	// Liveness/health
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	// Swagger UI (opt-in)
	if cfg.SwaggerEnabled {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// Dependency injection: services ← repo/db
	importSvc := &services.ImportService{DB: db, Store: catalogStoreShim{}}
	questionSvc := &services.QuestionService{DB: db}
	trackingSvc := &services.TrackingService{DB: db}
	requestSvc := &services.RequestService{DB: db}

	qh := handlers.NewQuestionHandlers(questionSvc)
	th := handlers.NewTrackingHandlers(trackingSvc)
	rh := handlers.NewRequestHandlers(requestSvc)
	ah := handlers.NewAdminHandlers(importSvc, questionSvc, cfg.UploadDir)

	// Public API: catalog reads stay anonymous-friendly, progress and request
	// endpoints resolve the caller via OptionalAuth plus their own guard.
	apiBase := cfg.APIBasePath // e.g. "/api/v1"
	api := groupWithPrefix(r, apiBase)
	api.Use(middleware.OptionalAuth(cfg.JWTSecret))
	{
		// Questions
		api.GET("/questions", qh.ListQuestions)
		api.GET("/questions/topics", qh.ListTopics)
		api.GET("/questions/:id", qh.GetQuestion)

		// Stats
		api.GET("/stats/home", qh.HomeStats)
		api.GET("/stats/companies", qh.CompanyStats)

		// Metadata
		api.GET("/meta/last-updated", qh.LastUpdated)

		// Tracking
		api.GET("/tracking", th.ListTracking)
		api.GET("/tracking/stats", th.TrackingStats)
		api.PUT("/tracking/:questionId", th.UpsertTracking)
		api.DELETE("/tracking/:questionId", th.DeleteTracking)

		// Company requests
		api.GET("/requests", rh.ListRequests)
		api.POST("/requests", rh.CreateRequest)
		api.GET("/requests/:id", rh.GetRequest)
		api.POST("/requests/:id/messages", rh.AddMessage)
	}

	// Admin surface: token and admin role required.
	admin := api.Group("/admin")
	admin.Use(middleware.Auth(cfg.JWTSecret), middleware.RequireAdmin())
	{
		admin.POST("/upload", ah.Upload)
		admin.POST("/questions", ah.BulkCreate)
		admin.PUT("/questions/:id", ah.UpdateQuestion)
		admin.DELETE("/questions/:id", ah.DeleteQuestion)
		admin.GET("/stats", ah.AdminStats)

		// Request moderation
		admin.PATCH("/requests/:id/status", rh.UpdateStatus)
	}
}

// limitBody returns a Gin middleware that caps the request body size for all
// endpoints to maxBytes using http.MaxBytesReader. Requests exceeding the cap
// will cause downstream body reads to error.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// groupWithPrefix mounts a group at prefix, treating "/" (or empty) as root.
func groupWithPrefix(r *gin.Engine, prefix string) *gin.RouterGroup {
	if prefix == "" || prefix == "/" {
		return r.Group("")
	}
	return r.Group(prefix)
}
