package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/deniz/courseloop/docs" // generated swagger docs
	appControllers "github.com/deniz/courseloop/internal/app/controllers"
	appMigrations "github.com/deniz/courseloop/internal/app/migrations"
	appRepos "github.com/deniz/courseloop/internal/app/repositories"
	appRoutes "github.com/deniz/courseloop/internal/app/routes"
	appServices "github.com/deniz/courseloop/internal/app/services"
	"github.com/deniz/courseloop/internal/config"
	"github.com/deniz/courseloop/internal/db"
	appMiddleware "github.com/deniz/courseloop/internal/middleware"
	pkgAuth "github.com/deniz/courseloop/internal/pkg/auth"
	"github.com/deniz/courseloop/internal/pkg/logger"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Services             *appServices.Services
	AuthController       *appControllers.AuthController
	CourseController     *appControllers.CourseController
	ReviewController     *appControllers.ReviewController
	TranscriptController *appControllers.TranscriptController
	AuthMiddleware       *appMiddleware.AuthMiddleware
	Repos                *appRepos.Repositories
	JWTService           *pkgAuth.JWTService
	Logger               zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logger.Configure(logger.Config{
		Level:  logger.LogLevel(strings.ToLower(cfg.Logging.Level)),
		Pretty: strings.ToLower(cfg.Logging.Format) == "text",
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", cfg.Logging.Level).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection and runs migrations.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := database.Pool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		database.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(database.Pool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		database.Close()
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		database.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	lgr.Info().Msg("Database migrations successfully applied.")
	return database, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(database.Pool)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: cfg.AccessTokenExp(),
		TokenIssuer:    cfg.JWT.Issuer,
	})

	deps.Services = appServices.NewServices(deps.Repos, database, deps.JWTService)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.AuthController = appControllers.NewAuthController(deps.Services.Auth)
	deps.CourseController = appControllers.NewCourseController(deps.Services.Course)
	deps.ReviewController = appControllers.NewReviewController(deps.Services.Review, deps.Services.Course)
	deps.TranscriptController = appControllers.NewTranscriptController(deps.Services.Transcript)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.Default()

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json"), ginSwagger.DefaultModelsExpandDepth(1)))

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.CourseController,
		deps.ReviewController,
		deps.TranscriptController,
		deps.AuthMiddleware,
	)

	return router
}
