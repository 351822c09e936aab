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

	"github.com/mrlokans/catalog/internal/auth"
	"github.com/mrlokans/catalog/internal/catalog"
	"github.com/mrlokans/catalog/internal/config"
	"github.com/mrlokans/catalog/internal/database"
	"github.com/mrlokans/catalog/internal/database/audit"
	http_controllers "github.com/mrlokans/catalog/internal/http"
	"github.com/mrlokans/catalog/internal/scheduler"
	"github.com/mrlokans/catalog/internal/tasks"
	"github.com/mrlokans/catalog/internal/validation"
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

	// Wait for SIGINT or SIGTERM, then drain in-flight requests
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server Shutdown: %v", err)
	}

	// Stop background work after the last request finished
	if onShutdown != nil {
		onShutdown(ctx)
	}

	log.Println("Server exiting")
}

// Services groups everything built on top of the database.
type Services struct {
	Catalog     *catalog.Service
	Auth        *auth.Service
	Audit       *audit.Repository
	Maintenance *scheduler.Maintenance
}

// NewServices wires the services of the application.
func NewServices(db *database.Database, cfg *config.Config) *Services {
	authService := auth.NewService(db, cfg.Auth)
	auditRepo := audit.NewRepository(db.DB)

	return &Services{
		Catalog:     catalog.NewService(db),
		Auth:        authService,
		Audit:       auditRepo,
		Maintenance: scheduler.NewMaintenance(authService, auditRepo, cfg.Audit.RetentionDays),
	}
}

// NewRouter builds the HTTP router from the configuration and services.
// maintenance may be nil when the scheduler is disabled.
func NewRouter(db *database.Database, services *Services, cfg *config.Config, maintenance *scheduler.MaintenanceScheduler, version string) *gin.Engine {
	limiter := auth.NewRateLimiter(auth.RateLimitConfig{
		MaxAttempts:     cfg.Auth.MaxLoginAttempts,
		WindowDuration:  cfg.Auth.RateLimitWindow,
		LockoutDuration: cfg.Auth.LockoutDuration,
	})

	return http_controllers.NewRouter(http_controllers.RouterConfig{
		Database:       db,
		Books:          services.Catalog,
		Authors:        services.Catalog,
		Reviews:        services.Catalog,
		Lookups:        services.Catalog,
		Audit:          services.Audit,
		Accounts:       services.Auth,
		AuthMiddleware: auth.NewMiddleware(services.Auth),
		LoginLimiter:   limiter,
		Statuses:       http_controllers.NewStatusTable(cfg.HTTP.StatusMode),
		Maintenance:    maintenanceStatus(maintenance),
		Version:        version,
	})
}

func maintenanceStatus(s *scheduler.MaintenanceScheduler) http_controllers.MaintenanceStatus {
	if s == nil {
		return nil
	}
	return s
}

func openDatabase(cfg *config.Config) *database.Database {
	db, err := database.NewDatabase(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	return db
}

func closeDatabase(db *database.Database) {
	if err := db.Close(); err != nil {
		log.Printf("Error closing database: %v", err)
	}
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting Library Catalog v%s", version)
	log.Printf("Status mode: %s", cfg.HTTP.StatusMode)

	validation.Setup()

	db := openDatabase(cfg)
	defer closeDatabase(db)

	services := NewServices(db, cfg)

	// Maintenance runs inline unless the task queue is enabled
	var job scheduler.Job = services.Maintenance
	var taskClient *tasks.Client
	var taskCtxCancel context.CancelFunc
	if cfg.Tasks.Enabled {
		var err error
		taskClient, err = tasks.NewClient(cfg.Database.Path, cfg.Tasks)
		if err != nil {
			log.Fatalf("Failed to initialize task queue: %v", err)
		}
		defer func() {
			if err := taskClient.Close(); err != nil {
				log.Printf("Error closing task client: %v", err)
			}
		}()

		taskClient.Register(tasks.NewMaintenanceQueue(services.Maintenance))

		var taskCtx context.Context
		taskCtx, taskCtxCancel = context.WithCancel(context.Background())
		go taskClient.Start(taskCtx)
		job = tasks.NewMaintenanceDispatcher(taskClient)
	}

	var maintenance *scheduler.MaintenanceScheduler
	if cfg.Maintenance.Enabled {
		maintenance = scheduler.NewMaintenanceScheduler(job, cfg.Maintenance.Schedule)
		if err := maintenance.Start(context.Background()); err != nil {
			log.Fatalf("Failed to start maintenance scheduler: %v", err)
		}
	} else {
		log.Printf("Maintenance scheduler: disabled")
	}

	router := NewRouter(db, services, cfg, maintenance, version)

	onShutdown := func(ctx context.Context) {
		if maintenance != nil {
			maintenance.Stop()
		}
		if taskClient != nil {
			taskClient.Stop(ctx)
			taskCtxCancel()
		}
	}

	Serve(router, cfg, onShutdown)
}

// Prune runs the maintenance job once and exits.
func Prune(cfg *config.Config) error {
	db := openDatabase(cfg)
	defer closeDatabase(db)

	services := NewServices(db, cfg)
	result, err := services.Maintenance.Run(context.Background())
	if err != nil {
		return err
	}

	log.Printf("Pruned %d expired tokens and %d audit events", result.TokensPruned, result.EventsPruned)
	return nil
}
