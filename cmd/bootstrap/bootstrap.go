package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"medical-data-app/config"
	deliveryHttp "medical-data-app/internal/delivery/http"
	"medical-data-app/internal/delivery/http/handler"
	"medical-data-app/internal/delivery/http/middleware"
	"medical-data-app/internal/infrastructure/cache"
	"medical-data-app/internal/infrastructure/database"
	"medical-data-app/internal/repository"
	"medical-data-app/internal/service"
	"medical-data-app/internal/usecase"
	"medical-data-app/pkg/jwt"
	"medical-data-app/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	Log         *logrus.Logger
	DB          *gorm.DB
	RedisClient *redis.Client
	Server      *http.Server
}

// New creates a new App instance with all dependencies initialized
func New(cfg *config.Config, log *logrus.Logger) (*App, error) {
	app := &App{Config: cfg, Log: log}

	if cfg.AntiForgery.Secret == "" {
		log.Warn("ANTIFORGERY_SECRET is empty, anti-forgery tokens are signed with an empty key")
	}

	if cfg.DB.AutoMigrate {
		if err := Migrate(cfg, log, func(m *database.Migrator) error { return m.Up() }); err != nil {
			return nil, err
		}
	}

	// Initialize database
	db, err := database.NewPostgresConnection(cfg.DB, log, cfg.App.IsDevelopment())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db

	// Initialize Redis
	redisClient, err := cache.NewRedisClient(cfg.Redis, log)
	if err != nil {
		app.Close()
		return nil, err
	}
	app.RedisClient = redisClient

	app.Server = initializeServer(cfg, log, db, redisClient)

	return app, nil
}

// SetupLogger configures the logrus standard logger
func SetupLogger(level string) *logrus.Logger {
	log := logrus.StandardLogger()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stdout)

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		log.Warnf("Unknown LOG_LEVEL %q, using info", level)
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)

	return log
}

// Migrate opens the embedded migrations against the configured database and
// runs fn with them.
func Migrate(cfg *config.Config, log *logrus.Logger, fn func(*database.Migrator) error) error {
	migrator, err := database.NewMigrator(database.MigrationURL(cfg.DB), log)
	if err != nil {
		return err
	}
	defer migrator.Close()

	return fn(migrator)
}

// initializeServer creates and configures the HTTP server
func initializeServer(cfg *config.Config, log *logrus.Logger, db *gorm.DB, redisClient *redis.Client) *http.Server {
	// Initialize anti-forgery tokens
	jwtService := jwt.NewJWTService(cfg.AntiForgery)
	antiForgeryService := service.NewAntiForgeryService(jwtService, redisClient, log)

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize repositories
	patientRepo := repository.NewPatientRepository()
	doctorRepo := repository.NewDoctorRepository()
	appointmentRepo := repository.NewAppointmentRepository()
	medicationRepo := repository.NewMedicationRepository()

	// Initialize usecases
	patientUsecase := usecase.NewPatientUsecase(db, log, patientRepo, appointmentRepo, medicationRepo, cfg.DeletePolicy)
	doctorUsecase := usecase.NewDoctorUsecase(db, log, doctorRepo, appointmentRepo, cfg.DeletePolicy)
	appointmentUsecase := usecase.NewAppointmentUsecase(db, log, appointmentRepo, patientRepo, doctorRepo)
	medicationUsecase := usecase.NewMedicationUsecase(db, log, medicationRepo, patientRepo, doctorRepo)

	// Initialize handlers
	patientHandler := handler.NewPatientHandler(patientUsecase, antiForgeryService, customValidator)
	doctorHandler := handler.NewDoctorHandler(doctorUsecase, antiForgeryService, customValidator)
	appointmentHandler := handler.NewAppointmentHandler(appointmentUsecase, antiForgeryService, customValidator)
	medicationHandler := handler.NewMedicationHandler(medicationUsecase, antiForgeryService, customValidator)

	// Initialize middleware
	antiForgeryMiddleware := middleware.NewAntiForgeryMiddleware(antiForgeryService, log)
	corsMiddleware := middleware.NewCORSMiddleware(cfg.App.CORSOrigin)

	// Initialize router
	router := deliveryHttp.NewRouter(
		log,
		patientHandler,
		doctorHandler,
		appointmentHandler,
		medicationHandler,
		antiForgeryMiddleware,
		corsMiddleware,
	)

	// Create server
	return &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.App.Port),
		Handler:           router.Setup(),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() error {
	errCh := make(chan error, 1)

	// Start server in goroutine
	go func() {
		app.Log.Infof("Server starting on port %s", app.Config.App.Port)
		app.Log.Infof("Environment: %s, delete policy: %s", app.Config.App.Env, app.Config.DeletePolicy)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		app.Close()
		return fmt.Errorf("failed to start server: %w", err)
	case <-quit:
	}

	app.Log.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	// Shutdown HTTP server gracefully
	if err := app.Server.Shutdown(ctx); err != nil {
		app.Log.Errorf("Server forced to shutdown: %v", err)
	}

	// Close connections
	app.Close()

	app.Log.Info("Server shutdown complete")
	return nil
}

// Close closes all connections (database, redis, etc.)
func (app *App) Close() {
	// Close database connection
	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	// Close Redis connection
	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
