package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/sicfor/backend/internal/app/controllers"
	appMigrations "github.com/sicfor/backend/internal/app/migrations"
	appRepos "github.com/sicfor/backend/internal/app/repositories"
	appRoutes "github.com/sicfor/backend/internal/app/routes"
	appServices "github.com/sicfor/backend/internal/app/services"
	"github.com/sicfor/backend/internal/config"
	"github.com/sicfor/backend/internal/db"
	"github.com/sicfor/backend/internal/pkg/filestorage"
	"github.com/sicfor/backend/internal/pkg/logger"
	"github.com/sicfor/backend/internal/pkg/mediastore"
	"github.com/sicfor/backend/internal/seed"
)

// Service selects which of the two binaries is being assembled. Each one has
// its own config file, migration directory and route set.
type Service string

const (
	ServiceRecursos    Service = "recursos"
	ServiceEstudiantes Service = "estudiantes"
)

// Dependencies holds the assembled application objects of one service
type Dependencies struct {
	RecursoService       appServices.RecursoService
	EstudianteService    appServices.EstudianteService
	RecursoController    *appControllers.RecursoController
	EstudianteController *appControllers.EstudianteController
	FileStorage          *filestorage.LocalStorage
	Media                mediastore.Uploader
	Logger               zerolog.Logger
}

// LoadConfigAndSetupLogger loads the service configuration and initializes
// the logger. CONFIG_PATH overrides the default configs/<service>.yaml.
func LoadConfigAndSetupLogger(service Service) (*config.Config, zerolog.Logger, error) {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = filepath.Join("configs", string(service)+".yaml")
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Str("path", configPath).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().
		Str("service", string(service)).
		Str("logLevel", string(logLevel)).
		Str("logFormat", cfg.Logging.Format).
		Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection, runs the service's
// migrations and seeds sample data where applicable.
func SetupDatabase(service Service, cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	migrationsDir := filepath.Join("migrations", string(service))
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		database.Close()
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	lgr.Info().Str("path", migrationsDir).Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(database.Pool)
	if err := migrator.MigrateFromDirectory(ctx, migrationsDir); err != nil {
		database.Close()
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	if service == ServiceRecursos {
		recursoRepo := appRepos.NewRecursoRepository(database.Pool)
		if err := seed.SeedRecursos(ctx, recursoRepo); err != nil {
			// Sample data is a convenience, not a startup requirement
			lgr.Error().Err(err).Msg("Failed to seed sample data, proceeding anyway...")
		}
	}

	return database, nil
}

// setupMediaClient builds the cloud media client when an endpoint is
// configured. Without one the services reject cloud uploads at request time.
func setupMediaClient(cfg *config.Config, lgr zerolog.Logger) (mediastore.Uploader, error) {
	if cfg.Media.Endpoint == "" {
		lgr.Warn().Msg("No media endpoint configured, cloud uploads disabled")
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mediastore.New(ctx, mediastore.Config{
		Endpoint:  cfg.Media.Endpoint,
		AccessKey: cfg.Media.AccessKey,
		SecretKey: cfg.Media.SecretKey,
		Bucket:    cfg.Media.Bucket,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize media store: %w", err)
	}
	return client, nil
}

// BuildDependencies initializes the repositories, services and controllers of
// the selected service.
func BuildDependencies(service Service, cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	media, err := setupMediaClient(cfg, lgr)
	if err != nil {
		return nil, err
	}
	deps.Media = media

	switch service {
	case ServiceRecursos:
		fileStorage, err := filestorage.NewLocalStorage(cfg.Storage.UploadDir, "/uploads")
		if err != nil {
			return nil, fmt.Errorf("failed to initialize file storage: %w", err)
		}
		deps.FileStorage = fileStorage

		recursoRepo := appRepos.NewRecursoRepository(database.Pool)
		deps.RecursoService = appServices.NewRecursoService(recursoRepo, fileStorage, media, cfg.Media.BaseFolder)
		deps.RecursoController = appControllers.NewRecursoController(deps.RecursoService, cfg.Database.DBName)

	case ServiceEstudiantes:
		estudianteRepo := appRepos.NewEstudianteRepository(database)
		deps.EstudianteService = appServices.NewEstudianteService(estudianteRepo, media, cfg.Media.BaseFolder)
		deps.EstudianteController = appControllers.NewEstudianteController(deps.EstudianteService)

	default:
		return nil, fmt.Errorf("unknown service: %s", service)
	}

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and the routes of
// the selected service.
func SetupRouter(service Service, cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.Default()

	corsConfig := cors.DefaultConfig()
	origins := cfg.AllowedOrigins()
	if len(origins) == 1 && origins[0] == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = origins
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept"}
	router.Use(cors.New(corsConfig))

	switch service {
	case ServiceRecursos:
		router.GET("/", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"mensaje": "Servidor Grupo E - Gestión de Recursos",
				"versión": "1.0",
				"status":  "online",
			})
		})

		appRoutes.SetupRecursosRoutes(router, deps.RecursoController)

		if deps.FileStorage != nil {
			router.Static("/uploads", deps.FileStorage.BasePath())
			lgr.Info().Str("path", deps.FileStorage.BasePath()).Msg("Static file serving configured for uploads directory")
		}

		router.NoRoute(func(c *gin.Context) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Ruta no encontrada"})
		})

	case ServiceEstudiantes:
		appRoutes.SetupEstudiantesRoutes(router, deps.EstudianteController)
	}

	return router
}
