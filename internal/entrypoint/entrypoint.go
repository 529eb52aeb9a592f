package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookshelf/internal/audit"
	"github.com/mrlokans/bookshelf/internal/auth"
	"github.com/mrlokans/bookshelf/internal/config"
	"github.com/mrlokans/bookshelf/internal/database"
	auditrepo "github.com/mrlokans/bookshelf/internal/database/audit"
	"github.com/mrlokans/bookshelf/internal/database/books"
	"github.com/mrlokans/bookshelf/internal/database/comments"
	"github.com/mrlokans/bookshelf/internal/database/library"
	"github.com/mrlokans/bookshelf/internal/database/reviews"
	"github.com/mrlokans/bookshelf/internal/database/tokens"
	"github.com/mrlokans/bookshelf/internal/database/users"
	http_controllers "github.com/mrlokans/bookshelf/internal/http"
	"github.com/mrlokans/bookshelf/internal/scheduler"
	"github.com/mrlokans/bookshelf/internal/services"
	"github.com/mrlokans/bookshelf/internal/tasks"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Starting server at %s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// kill -2 is SIGINT, plain kill is SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server Shutdown: %v", err)
	}

	// Stop background work only after in-flight requests have drained
	if onShutdown != nil {
		onShutdown(ctx)
	}

	log.Println("Server exiting")
}

// jwtSecret returns the configured signing secret, generating a per-process
// one when none is set. Tokens signed with a generated secret do not survive
// a restart.
func jwtSecret(cfg config.Auth) string {
	if cfg.JWTSecret != "" {
		return cfg.JWTSecret
	}
	secret, err := auth.GenerateSecret()
	if err != nil {
		log.Fatalf("Failed to generate JWT secret: %v", err)
	}
	log.Printf("WARNING: AUTH_JWT_SECRET is not set. Generated a temporary secret; issued tokens will be invalid after restart.")
	return secret
}

// newRevoker picks the token denylist: Redis when REDIS_ADDR is set and
// reachable, the database otherwise.
func newRevoker(cfg config.Redis, db *database.Database) (auth.TokenRevoker, *auth.RedisTokenRevoker) {
	if cfg.Addr == "" {
		return tokens.NewRepository(db.DB), nil
	}

	redisRevoker := auth.NewRedisTokenRevoker(cfg.Addr, cfg.Password)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := redisRevoker.Ping(ctx); err != nil {
		log.Printf("WARNING: Redis at %s is unreachable (%v); revoked tokens are stored in the database", cfg.Addr, err)
		_ = redisRevoker.Close()
		return tokens.NewRepository(db.DB), nil
	}
	log.Printf("Token revocation backed by Redis at %s", cfg.Addr)
	return redisRevoker, redisRevoker
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting Bookshelf v%s", version)

	db, err := database.Open(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	// Repositories
	bookRepo := books.NewRepository(db.DB)
	userRepo := users.NewRepository(db.DB)
	reviewRepo := reviews.NewRepository(db.DB)
	tokenRepo := tokens.NewRepository(db.DB)

	auditService := audit.NewService(auditrepo.NewRepository(db.DB))

	// Authentication
	tokenService := auth.NewTokenService(jwtSecret(cfg.Auth), cfg.Auth.JWTIssuer, cfg.Auth.TokenExpiry)
	revoker, redisRevoker := newRevoker(cfg.Redis, db)
	limiter := auth.NewRateLimiter(auth.RateLimitConfig{
		MaxAttempts:     cfg.Auth.MaxLoginAttempts,
		WindowDuration:  cfg.Auth.RateLimitWindow,
		LockoutDuration: cfg.Auth.LockoutDuration,
	})
	authService := auth.NewService(userRepo, tokenService, revoker, limiter)

	healthChecks := map[string]http_controllers.HealthCheck{}
	if redisRevoker != nil {
		healthChecks["redis"] = redisRevoker.Ping
	}

	// Task queue and maintenance schedule
	var taskClient *tasks.Client
	var taskCtxCancel context.CancelFunc
	var maintenance *scheduler.MaintenanceScheduler
	if cfg.Tasks.Enabled {
		taskClient, err = tasks.NewClient(cfg.Database.Path, tasks.ConfigFrom(cfg.Tasks))
		if err != nil {
			log.Fatalf("Failed to initialize task queue: %v", err)
		}
		defer func() {
			if err := taskClient.Close(); err != nil {
				log.Printf("Error closing task client: %v", err)
			}
		}()

		taskClient.Register(
			tasks.NewCleanupAuditEventsQueue(auditService),
			tasks.NewCleanupRevokedTokensQueue(tokenRepo),
		)

		var taskCtx context.Context
		taskCtx, taskCtxCancel = context.WithCancel(context.Background())
		go taskClient.Start(taskCtx)

		maintenance = scheduler.NewMaintenanceScheduler(taskClient, cfg.Maintenance.Schedule, cfg.Audit.RetentionDays)
		if err := maintenance.Start(taskCtx); err != nil {
			log.Printf("WARNING: maintenance scheduler not started: %v", err)
		}
	} else {
		log.Printf("Task queue disabled; audit retention and token cleanup will not run")
	}

	routerCfg := http_controllers.RouterConfig{
		Books:              services.NewBookService(bookRepo, auditService),
		Reviews:            services.NewReviewService(bookRepo, reviewRepo, userRepo, auditService),
		Comments:           services.NewCommentService(bookRepo, comments.NewRepository(db.DB), auditService),
		Library:            services.NewLibraryService(bookRepo, library.NewRepository(db.DB), auditService),
		Users:              services.NewUserService(userRepo, cfg.Auth.BcryptCost, auditService),
		Auth:               authService,
		Tokens:             tokenService,
		Revoker:            revoker,
		Audit:              auditService,
		AuditRetentionDays: cfg.Audit.RetentionDays,
		Database:           db,
		HealthChecks:       healthChecks,
		Version:            version,
	}
	if taskClient != nil {
		routerCfg.TaskQueue = taskClient
	}

	router := http_controllers.NewRouter(routerCfg)

	onShutdown := func(ctx context.Context) {
		if maintenance != nil {
			maintenance.Stop()
		}
		if taskClient != nil && taskCtxCancel != nil {
			taskClient.Stop(ctx)
			taskCtxCancel()
		}
		limiter.Stop()
		auditService.Wait()
		if redisRevoker != nil {
			if err := redisRevoker.Close(); err != nil {
				log.Printf("Error closing redis client: %v", err)
			}
		}
	}

	Serve(router, cfg, onShutdown)
}
