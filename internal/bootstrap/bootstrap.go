package bootstrap

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	appControllers "github.com/yigit/scholarship/internal/app/controllers"
	appMigrations "github.com/yigit/scholarship/internal/app/migrations"
	appRepos "github.com/yigit/scholarship/internal/app/repositories"
	appRoutes "github.com/yigit/scholarship/internal/app/routes"
	appServices "github.com/yigit/scholarship/internal/app/services"
	"github.com/yigit/scholarship/internal/config"
	"github.com/yigit/scholarship/internal/db"
	appMiddleware "github.com/yigit/scholarship/internal/middleware"
	pkgAuth "github.com/yigit/scholarship/internal/pkg/auth"
	"github.com/yigit/scholarship/internal/pkg/email"
	"github.com/yigit/scholarship/internal/pkg/helpers"
	"github.com/yigit/scholarship/internal/pkg/logger"
	"github.com/yigit/scholarship/internal/pkg/otp"
	"github.com/yigit/scholarship/internal/seed"
)

// DefaultConfigPath is used when CONFIG_PATH is not set
const DefaultConfigPath = "configs/config.yaml"

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos              *appRepos.Repositories
	JWTService         *pkgAuth.JWTService
	Mailer             email.Sender
	OTPRegistry        *otp.Registry
	AuthService        *appServices.AuthService
	TwoFactorService   *appServices.TwoFactorService
	ApplicationService *appServices.ApplicationService
	CatalogService     *appServices.CatalogService
	ExpedienteService  *appServices.ExpedienteService
	ProfileService     *appServices.ProfileService
	PanelService       *appServices.PanelService
	Controllers        appRoutes.Controllers
	AuthMiddleware     *appMiddleware.AuthMiddleware
	Logger             zerolog.Logger
}

// OTPBackend is the configured code store plus what must be released on shutdown
type OTPBackend struct {
	Store  otp.Store
	purger *otp.Purger
	redis  *redis.Client
}

// Close stops the purge job and closes the redis client
func (b *OTPBackend) Close() error {
	if b == nil {
		return nil
	}
	b.purger.Stop()
	if b.redis != nil {
		return b.redis.Close()
	}
	return nil
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := config.GetEnv("CONFIG_PATH", DefaultConfigPath)
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Str("path", configPath).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logger.Configure(logger.ConfigFromStrings(cfg.Logging.Level, cfg.Logging.Format))

	lgr := logger.Get()
	lgr.Info().Str("logLevel", cfg.Logging.Level).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection, applies migrations and seeds catalogs.
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
	if err := appMigrations.NewMigrator(cfg.GetPostgresConnectionString(), lgr).Up(); err != nil {
		database.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	seedCtx, seedCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer seedCancel()
	if err := seed.CreateDefaultData(seedCtx, database.Pool, lgr); err != nil {
		// Catalog seeding is idempotent and retried on next start.
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return database, nil
}

// SetupOTPStore builds the configured one-time code store
func SetupOTPStore(cfg *config.Config, lgr zerolog.Logger) (*OTPBackend, error) {
	switch strings.ToLower(cfg.OTP.Store) {
	case config.OTPStoreRedis:
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		store := otp.NewRedisStore(rdb, cfg.Redis.KeyPrefix)

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := store.Ping(ctx); err != nil {
			_ = rdb.Close()
			return nil, fmt.Errorf("failed to reach redis at %s: %w", cfg.Redis.Addr, err)
		}
		lgr.Info().Str("addr", cfg.Redis.Addr).Msg("OTP store: redis")
		return &OTPBackend{Store: store, redis: rdb}, nil

	default:
		store := otp.NewMemoryStore()
		purger, err := otp.StartPurger(store, cfg.OTP.PurgeSchedule, time.Now, lgr)
		if err != nil {
			return nil, err
		}
		lgr.Info().Msg("OTP store: memory")
		return &OTPBackend{Store: store, purger: purger}, nil
	}
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, pool db.Pool, store otp.Store, lgr zerolog.Logger) *Dependencies {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(pool, helpers.ParseDuration(cfg.Database.QueryTimeout, appRepos.DefaultQueryTimeout))

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 7*24*time.Hour),
		TokenIssuer:    cfg.JWT.Issuer,
	})

	deps.Mailer = email.NewSMTPSender(email.SMTPConfig{
		Host:      cfg.SMTP.Host,
		Port:      cfg.SMTP.Port,
		Username:  cfg.SMTP.Username,
		Password:  cfg.SMTP.Password,
		FromName:  cfg.SMTP.FromName,
		FromEmail: cfg.SMTP.FromEmail,
		UseTLS:    cfg.SMTP.UseTLS,
		Timeout:   helpers.ParseDuration(cfg.SMTP.Timeout, 15*time.Second),
	}, lgr)

	deps.OTPRegistry = otp.NewRegistry(store, otp.WithTTL(helpers.ParseDuration(cfg.OTP.TTL, otp.DefaultTTL)))

	repos := deps.Repos
	deps.AuthService = appServices.NewAuthService(repos.UserRepository, deps.JWTService, lgr)
	deps.TwoFactorService = appServices.NewTwoFactorService(repos.UserRepository, deps.OTPRegistry, deps.Mailer, lgr)
	deps.ApplicationService = appServices.NewApplicationService(repos.StudentRepository, repos.ApplicationRepository,
		appServices.ApplicationPolicy{AllowUploadAfterSubmit: cfg.Applications.AllowUploadAfterSubmit}, lgr)
	deps.CatalogService = appServices.NewCatalogService(repos.CatalogRepository)
	deps.ExpedienteService = appServices.NewExpedienteService(repos.StudentRepository, repos.ApplicationRepository, repos.ExpedienteRepository, lgr)
	deps.ProfileService = appServices.NewProfileService(repos.UserRepository, repos.StudentRepository, repos.ProfileRepository, lgr)
	deps.PanelService = appServices.NewPanelService(repos.UserRepository, repos.StudentRepository, repos.PanelRepository)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.Controllers = appRoutes.Controllers{
		Auth:      appControllers.NewAuthController(deps.AuthService, lgr),
		TwoFactor: appControllers.NewTwoFactorController(deps.TwoFactorService, lgr),
		Student: appControllers.NewStudentController(
			deps.PanelService,
			deps.ProfileService,
			deps.ExpedienteService,
			deps.CatalogService,
			deps.ApplicationService,
			cfg.Applications.MaxUploadBytes,
			lgr,
		),
	}

	return deps
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, health appControllers.HealthChecker, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}
	appMiddleware.RegisterValidatorTagNames()

	router := gin.New()
	router.MaxMultipartMemory = cfg.Applications.MaxUploadBytes
	router.Use(
		appMiddleware.RequestID(),
		appMiddleware.RequestLogger(lgr),
		appMiddleware.Recovery(),
		appMiddleware.SecurityHeaders(),
		appMiddleware.Metrics(),
		// Multipart framing adds a little on top of the file itself.
		appMiddleware.BodyLimit(cfg.Applications.MaxUploadBytes+1<<20),
		appMiddleware.Timeout(helpers.ParseDuration(cfg.Server.RequestTimeout, 30*time.Second)),
	)

	appRoutes.SetupSwagger(router)

	controllers := deps.Controllers
	controllers.Health = appControllers.NewHealthController(health)
	appRoutes.SetupRouter(router, controllers, deps.AuthMiddleware, deps.TwoFactorService)

	return router
}
