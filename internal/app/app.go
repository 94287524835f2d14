package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"kazicare_backend/database"
	"kazicare_backend/internal/auth"
	"kazicare_backend/internal/config"
	"kazicare_backend/internal/email"
	"kazicare_backend/internal/handlers"
	"kazicare_backend/internal/logger"
	"kazicare_backend/internal/models"
	"kazicare_backend/internal/ratelimit"
	"kazicare_backend/internal/repositories"
	"kazicare_backend/internal/routes"
	"kazicare_backend/internal/services"
	"kazicare_backend/internal/validator"
	"kazicare_backend/internal/workers"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const cleanupInterval = time.Hour

// App holds the wired application.
type App struct {
	DB       *gorm.DB
	Router   *gin.Engine
	Services *services.ServiceContainer
	limiter  ratelimit.Limiter
	memory   *ratelimit.MemoryLimiter
	email    email.Provider
}

// New wires config, database, email, rate limiting, services and routes.
func New() (*App, error) {
	config.LoadConfig()
	cfg := config.GetConfig()

	logger.Init(cfg.Server.Env)

	db, err := database.Connect(cfg.Database.DSN)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db); err != nil {
		return nil, err
	}

	emailProvider := email.NewSMTPProvider(cfg)

	app := &App{
		DB:    db,
		email: emailProvider,
	}
	app.initLimiter(cfg)

	app.Services = services.NewServiceContainer(db, emailProvider)

	if cfg.Server.Env != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	app.Router = SetupRouter(app.Services, app.limiter)

	if err := app.seedFirstAdmin(); err != nil {
		return nil, err
	}

	return app, nil
}

// SetupRouter assembles the Gin engine from wired services. The test
// server uses it directly against its own database connection.
func SetupRouter(svc *services.ServiceContainer, limiter ratelimit.Limiter) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	v := validator.New()
	appHandlers := handlers.NewAppHandlers(svc, v, limiter)
	routes.SetupRoutes(router, appHandlers)

	return router
}

// initLimiter picks Redis when an address is configured, otherwise the
// in-process limiter. Single-instance deployments don't need Redis.
func (a *App) initLimiter(cfg *config.Config) {
	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := client.Ping(ctx).Err(); err == nil {
			a.limiter = ratelimit.NewRedisLimiter(client)
			logger.Info("rate limiting backed by redis", "addr", cfg.Redis.Addr)
			return
		}
		logger.Warn("redis unreachable, falling back to in-memory rate limiting", "addr", cfg.Redis.Addr)
	}

	a.memory = ratelimit.NewMemoryLimiter()
	a.limiter = a.memory
}

// seedFirstAdmin creates the bootstrap admin account from ADMIN_EMAIL and
// ADMIN_PASSWORD when no admin exists yet.
func (a *App) seedFirstAdmin() error {
	userRepo := repositories.NewUserRepository(a.DB)

	count, err := userRepo.CountByRole(models.UserRoleAdmin)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	adminEmail := os.Getenv("ADMIN_EMAIL")
	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminEmail == "" || adminPassword == "" {
		logger.Warn("no admin account exists and ADMIN_EMAIL/ADMIN_PASSWORD are unset")
		return nil
	}

	hash, err := auth.HashPassword(adminPassword)
	if err != nil {
		return err
	}

	admin := &models.User{
		Name:         "Administrator",
		Email:        adminEmail,
		PasswordHash: hash,
		Role:         models.UserRoleAdmin,
		IsVerified:   true,
	}
	if err := userRepo.Create(admin); err != nil {
		return err
	}

	logger.Info("seeded first admin account", "email", adminEmail)
	return nil
}

// Run starts the HTTP server and the cleanup worker, then blocks until
// SIGINT or SIGTERM and shuts down gracefully.
func (a *App) Run() error {
	cfg := config.GetConfig()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tokenRepo := repositories.NewRefreshTokenRepository(a.DB)
	window := time.Duration(cfg.RateLimit.JobPostWindow) * time.Second
	worker := workers.NewCleanupWorker(tokenRepo, a.memory, cleanupInterval, window)
	go worker.Start(ctx)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:    addr,
		Handler: a.Router,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}

	return a.email.Close()
}
