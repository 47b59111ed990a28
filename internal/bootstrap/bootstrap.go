package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appControllers "github.com/yigit/docsystem/internal/app/controllers"
	appMigrations "github.com/yigit/docsystem/internal/app/migrations"
	appRepos "github.com/yigit/docsystem/internal/app/repositories"
	appRoutes "github.com/yigit/docsystem/internal/app/routes"
	appServices "github.com/yigit/docsystem/internal/app/services"
	"github.com/yigit/docsystem/internal/config"
	"github.com/yigit/docsystem/internal/db"
	appMiddleware "github.com/yigit/docsystem/internal/middleware"
	"github.com/yigit/docsystem/internal/pkg/cache"
	"github.com/yigit/docsystem/internal/pkg/filestorage"
	"github.com/yigit/docsystem/internal/pkg/logger"
	"github.com/yigit/docsystem/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos       *appRepos.Repositories
	Services    *appServices.Services
	Controllers appRoutes.Controllers
	Cache       cache.Cache
	FileStorage *filestorage.LocalStorage
	Logger      zerolog.Logger

	closers []func() error
}

// Close releases resources opened while building the dependencies
func (d *Dependencies) Close() {
	for _, c := range d.closers {
		if err := c(); err != nil {
			d.Logger.Warn().Err(err).Msg("Failed to close dependency")
		}
	}
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.ParseLevel(cfg.Logging.Level)
	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: cfg.Logging.Format == "text",
	})

	lgr := logger.Get()
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection, applies the embedded
// migrations and seeds the default tags.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool
	lgr.Info().Msg("Database connection successfully established.")

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	lgr.Info().Msg("Running database migrations...")
	if err := appMigrations.NewMigrator(dbPool).Migrate(ctx); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		dbPool.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	if err := seed.CreateDefaultData(ctx, appRepos.NewTagRepository(dbPool), lgr); err != nil {
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return dbPool, nil
}

// SetupCache connects to redis when enabled. Any failure degrades to a cache
// that always misses.
func SetupCache(cfg *config.Config, lgr zerolog.Logger) (cache.Cache, func() error) {
	if !cfg.Redis.Enabled {
		lgr.Info().Msg("Redis disabled, lookups are not cached")
		return cache.NopCache{}, nil
	}

	rc, err := cache.NewRedisCache(cache.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		Prefix:   "docsystem:",
	})
	if err != nil {
		lgr.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("Redis unavailable, lookups are not cached")
		return cache.NopCache{}, nil
	}

	lgr.Info().Str("addr", cfg.Redis.Addr).Msg("Redis cache connected")
	return rc, rc.Close
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	var err error
	deps.FileStorage, err = filestorage.NewLocalStorage(cfg.Server.StoragePath)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	var closeCache func() error
	deps.Cache, closeCache = SetupCache(cfg, lgr)
	if closeCache != nil {
		deps.closers = append(deps.closers, closeCache)
	}

	deps.Repos = appRepos.NewRepositories(dbPool)
	deps.Services = appServices.NewServices(deps.Repos, deps.FileStorage, deps.Cache, cfg.RedisTTL())

	pager := appControllers.NewPager(cfg.Pagination.DefaultPageSize, cfg.Pagination.MaxPageSize)
	deps.Controllers = appRoutes.Controllers{
		Course:   appControllers.NewCourseController(deps.Services.Course, pager),
		Syllabus: appControllers.NewSyllabusController(deps.Services.Syllabus, deps.Services.Association, pager),
		Document: appControllers.NewDocumentController(deps.Services.Document, deps.Services.Syllabus, deps.Services.Association, pager),
		Tag:      appControllers.NewTagController(deps.Services.Tag),
	}

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(appMiddleware.RequestID(), appMiddleware.Logger(), gin.Recovery())

	appRoutes.SetupRouter(router, deps.Controllers)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
