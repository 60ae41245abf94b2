package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"edustack/internal/auth"
	"edustack/internal/config"
	"edustack/internal/handler"
	"edustack/internal/httpmiddleware"
	"edustack/internal/repository"
	"edustack/internal/seed"
	"edustack/internal/store"
	"edustack/internal/validation"
)

func main() {
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.Production() {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := runHTTP(cfg); err != nil {
		log.Fatalf("http server failed: %v", err)
	}
}

func runHTTP(cfg config.App) error {
	ctx := context.Background()

	db, err := store.NewDB(ctx, cfg.DatabaseDriver, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := store.Migrate(ctx, db); err != nil {
		return err
	}
	repo := repository.NewRepository(db.Client)
	if cfg.SeedOnStart {
		if _, err := seed.Run(ctx, repo); err != nil {
			log.Printf("warning: seeding failed: %v", err)
		}
	}

	var (
		sessions    auth.SessionStore
		redisClient *store.Redis
	)
	if cfg.SessionBackend == "memory" {
		log.Println("sessions: in-memory store, sessions are lost on restart")
		sessions = auth.NewMemorySessions()
	} else {
		redisClient = store.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		defer redisClient.Close()
		if !redisClient.Healthy(ctx) {
			log.Printf("warning: redis not reachable at %s", cfg.RedisAddr)
		}
		sessions = auth.NewRedisSessions(redisClient.Client)
	}

	gate := auth.NewGate(sessions, auth.NewCookieSigner(cfg.SessionSecret, "edustack"), auth.CookieConfig{
		Name:   cfg.SessionCookie,
		TTL:    cfg.SessionTTL,
		Secure: cfg.CookieSecure,
	})
	h := handler.New(repo, validation.New(), gate)
	metrics := httpmiddleware.NewMetrics(prometheus.DefaultRegisterer)
	authLimit := httpmiddleware.NewSimpleTokenBucket(cfg.RateLimitPerMin, cfg.RateLimitPerMin)

	r := gin.New()

	// Recovery middleware
	r.Use(gin.Recovery())

	// Custom logger
	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		SkipPaths: []string{"/healthz", "/metrics"},
	}))

	r.Use(metrics.GinMiddleware())

	// Credentialed CORS for the dashboard dev server
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Security headers
	r.Use(securityHeaders())

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.GET("/healthz", func(c *gin.Context) {
		dbHealthy := db.Healthy(c.Request.Context())
		sessionsHealthy := redisClient == nil || redisClient.Healthy(c.Request.Context())
		status, label := http.StatusOK, "ok"
		if !dbHealthy || !sessionsHealthy {
			status, label = http.StatusServiceUnavailable, "degraded"
		}
		c.JSON(status, gin.H{"status": label, "db": dbHealthy, "sessions": sessionsHealthy})
	})

	h.Routes(r, authLimit.GinMiddleware())
	serveFrontend(r, cfg.FrontendDir, h.NotFound)

	// Graceful shutdown
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Starting server on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Give outstanding requests 10 seconds to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced shutdown: %v", err)
	}

	log.Println("Server exited")
	return nil
}

// serveFrontend serves a built single-page app from dir, falling back to
// index.html for client-side routes. Unknown /api paths stay JSON 404s.
func serveFrontend(r *gin.Engine, dir string, apiNotFound gin.HandlerFunc) {
	index := filepath.Join(dir, "index.html")
	if dir == "" {
		r.NoRoute(apiNotFound)
		return
	}
	if _, err := os.Stat(index); err != nil {
		log.Printf("warning: FRONTEND_DIR %s has no index.html, not serving it", dir)
		r.NoRoute(apiNotFound)
		return
	}
	fs := gin.Dir(dir, false)
	fileServer := http.FileServer(fs)
	r.NoRoute(func(c *gin.Context) {
		path := c.Request.URL.Path
		if strings.HasPrefix(path, "/api/") || path == "/api" || c.Request.Method != http.MethodGet {
			apiNotFound(c)
			return
		}
		if f, err := fs.Open(path); err == nil {
			stat, statErr := f.Stat()
			f.Close()
			if statErr == nil && !stat.IsDir() {
				fileServer.ServeHTTP(c.Writer, c.Request)
				return
			}
		}
		c.File(index)
	})
}

// Security headers middleware
func securityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")

		// Only add HSTS in production
		if gin.Mode() == gin.ReleaseMode {
			c.Header("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}

		c.Next()
	}
}
