// Package bootstrap assembles configuration, database, dependencies and the
// HTTP router.
package bootstrap

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/arjun/projecthub/internal/app/controllers"
	"github.com/arjun/projecthub/internal/app/migrations"
	"github.com/arjun/projecthub/internal/app/repositories"
	"github.com/arjun/projecthub/internal/app/routes"
	"github.com/arjun/projecthub/internal/app/services"
	"github.com/arjun/projecthub/internal/config"
	"github.com/arjun/projecthub/internal/db"
	"github.com/arjun/projecthub/internal/middleware"
	"github.com/arjun/projecthub/internal/pkg/auth"
	"github.com/arjun/projecthub/internal/pkg/email"
	"github.com/arjun/projecthub/internal/pkg/helpers"
	"github.com/arjun/projecthub/internal/pkg/logger"
	"github.com/arjun/projecthub/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos          *repositories.Repositories
	Services       *services.Services
	Controllers    routes.Controllers
	AuthMiddleware *middleware.AuthMiddleware
	JWTService     *auth.JWTService
	Logger         zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger
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
	lgr.Info().Str("logLevel", cfg.Logging.Level).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase connects to PostgreSQL, applies migrations and seeds the
// default coordinator account.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	lgr.Info().Msg("Database connection established")

	migrator := migrations.NewMigrator(database.Pool)
	if err := migrator.MigrateFromDirectory("migrations"); err != nil {
		lgr.Error().Err(err).Msg("Database migration failed")
		database.Close()
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	err = seed.CreateDefaultData(ctx, database, lgr, seed.DefaultCoordinator{
		Email:    cfg.Seed.CoordinatorEmail,
		Password: cfg.Seed.CoordinatorPassword,
		Name:     cfg.Seed.CoordinatorName,
		School:   cfg.Seed.CoordinatorSchool,
	})
	if err != nil {
		lgr.Error().Err(err).Msg("Seeding default data failed")
		database.Close()
		return nil, err
	}

	return database, nil
}

// BuildDependencies wires repositories, services, controllers and middleware
func BuildDependencies(cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) (*Dependencies, error) {
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, time.Hour),
		RefreshTokenExp: helpers.ParseDuration(cfg.JWT.RefreshTokenExpiration, 30*24*time.Hour),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	mailer := email.NewService(email.SMTPConfig{
		Host:      cfg.Email.Host,
		Port:      cfg.Email.Port,
		Username:  cfg.Email.Username,
		Password:  cfg.Email.Password,
		FromName:  cfg.Email.FromName,
		FromEmail: cfg.Email.FromEmail,
		UseTLS:    cfg.Email.UseTLS,
	}, lgr)

	repos := repositories.NewRepositories(database.Pool)
	purgeExpired(repos, lgr)
	svcs := services.NewServices(repos, database, jwtService, mailer)

	ctrls := routes.Controllers{
		Auth:         controllers.NewAuthController(svcs.AuthService, lgr),
		Group:        controllers.NewGroupController(svcs.GroupService, lgr),
		Supervisor:   controllers.NewSupervisorController(svcs.SupervisorService, lgr),
		Panel:        controllers.NewPanelController(svcs.PanelService, svcs.MarksService, lgr),
		Notification: controllers.NewNotificationController(svcs.NotificationService, lgr),
		Report:       controllers.NewReportController(svcs.ReportService, lgr),
		Dashboard:    controllers.NewDashboardController(svcs.DashboardService, lgr),
	}

	return &Dependencies{
		Repos:          repos,
		Services:       svcs,
		Controllers:    ctrls,
		AuthMiddleware: middleware.NewAuthMiddleware(jwtService),
		JWTService:     jwtService,
		Logger:         lgr,
	}, nil
}

// purgeExpired drops verification codes and refresh tokens past their expiry
func purgeExpired(repos *repositories.Repositories, lgr zerolog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if n, err := repos.OTPRepository.DeleteExpired(ctx); err != nil {
		lgr.Warn().Err(err).Msg("Purging expired verification codes failed")
	} else if n > 0 {
		lgr.Info().Int64("deleted", n).Msg("Purged expired verification codes")
	}
	if n, err := repos.TokenRepository.DeleteExpired(ctx); err != nil {
		lgr.Warn().Err(err).Msg("Purging expired refresh tokens failed")
	} else if n > 0 {
		lgr.Info().Int64("deleted", n).Msg("Purged expired refresh tokens")
	}
}

// SetupRouter builds the gin engine with middleware and routes
func SetupRouter(cfg *config.Config, deps *Dependencies) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.RequestLogger())
	router.Use(middleware.Recovery())

	routes.SetupRouter(router, deps.Controllers, deps.AuthMiddleware)
	return router
}
