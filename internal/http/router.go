package http

import (
	"context"
	"io/fs"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/jobtrackr/jobtrackr/internal/auth"
	"github.com/jobtrackr/jobtrackr/internal/config"
	"github.com/jobtrackr/jobtrackr/internal/domain/user"
	"github.com/jobtrackr/jobtrackr/internal/http/handlers"
	"github.com/jobtrackr/jobtrackr/internal/http/middlewares"
	"github.com/jobtrackr/jobtrackr/internal/jobs"
	"github.com/jobtrackr/jobtrackr/internal/observability"
	"github.com/jobtrackr/jobtrackr/internal/repo/postgres"
	"github.com/jobtrackr/jobtrackr/web"
)

const maxBodyBytes = 1 << 20 // 1 MiB is plenty for any request here

// NewRouter wires repositories, the jobs service and all middleware
// into a gin engine. rdb may be nil; the auth rate limiter then runs
// in-process.
func NewRouter(log *slog.Logger, pool *pgxpool.Pool, rdb *redis.Client, prom *observability.Prom, cfg config.Config) *gin.Engine {
	if cfg.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}

	slog.SetDefault(log)

	r := gin.New()

	// middleware

	r.Use(gin.Recovery())
	r.Use(middlewares.RequestID())
	r.Use(middlewares.RequestLogger())
	r.Use(otelgin.Middleware("jobtrackr"))

	if prom != nil {
		r.Use(prom.GinHandleMiddleware())
	}

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddleware(cfg.AllowedOrigins))
	r.Use(middlewares.MaxBodyBytes(maxBodyBytes))

	// health + metrics

	ping := func() error {
		if pool == nil {
			return nil
		}

		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
		defer cancel()

		return pool.Ping(ctx)
	}

	h := handlers.NewHealthHandler(ping)
	r.GET("/healthz", h.Healthz)
	r.GET("/readyz", h.Readyz)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// wire up repositories
	usersRepo := postgres.NewUsersRepo(pool)
	applicationsRepo := postgres.NewApplicationsRepo(pool, prom)
	refreshRepo := postgres.NewRefreshTokensRepo(pool)

	jwtManager := auth.NewManager(cfg.JWTSecret, cfg.AccessTTL(), cfg.RefreshTTL())
	authMW := middlewares.NewAuthMiddleware(jwtManager, usersRepo)

	jobsService := jobs.NewService(applicationsRepo)

	authHandler := handlers.NewAuthHandler(usersRepo, jwtManager, refreshRepo, cfg)
	applicationsHandler := handlers.NewApplicationsHandler(jobsService)
	adminUsersHandler := handlers.NewAdminUsersHandler(usersRepo)

	// credential-stuffing protection on the unauthenticated routes
	var authLimiter gin.HandlerFunc

	if rdb != nil {
		authLimiter = middlewares.NewRedisRateLimiter(rdb, cfg.AuthRateLimit, cfg.AuthRateWindow).Middleware(middlewares.KeyByIP)
	} else {
		authLimiter = middlewares.NewRateLimiter(cfg.AuthRateLimit, cfg.AuthRateWindow).Middleware(middlewares.KeyByIP)
	}

	api := r.Group("/api")
	api.Use(middlewares.RequireJSON())

	usersGroup := api.Group("/users")
	usersGroup.POST("/register", authLimiter, authHandler.Register)
	usersGroup.POST("/login", authLimiter, authHandler.Login)
	usersGroup.POST("/refresh", authHandler.Refresh)
	usersGroup.POST("/logout", authHandler.Logout)
	usersGroup.GET("/me", authMW.RequireAuth(), authHandler.Me)

	jobsGroup := api.Group("/jobs")
	jobsGroup.Use(authMW.RequireAuth())
	jobsGroup.GET("", applicationsHandler.List)
	jobsGroup.POST("", applicationsHandler.Create)
	jobsGroup.GET("/:id", applicationsHandler.Get)
	jobsGroup.PUT("/:id", applicationsHandler.Update)
	jobsGroup.DELETE("/:id", applicationsHandler.Delete)

	adminGroup := api.Group("/admin")
	adminGroup.Use(authMW.RequireAuth(), authMW.RequireRole(user.RoleAdmin))
	adminGroup.GET("/users", adminUsersHandler.List)

	mountFrontend(r)

	return r
}

// mountFrontend serves the embedded single-page app for everything that
// is not an API route.
func mountFrontend(r *gin.Engine) {
	staticFS, err := fs.Sub(web.Static, "static")

	if err != nil {
		return
	}

	fileServer := http.FileServer(http.FS(staticFS))

	r.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api") {
			c.JSON(http.StatusNotFound, gin.H{
				"error": gin.H{
					"code":    "not_found",
					"message": "Route not found",
				},
			})
			return
		}

		fileServer.ServeHTTP(c.Writer, c.Request)
	})
}
