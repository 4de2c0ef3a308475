package di

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/wire"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/FitWiseApp/projeto-monorepo/internal/app"
	"github.com/FitWiseApp/projeto-monorepo/internal/config"
	"github.com/FitWiseApp/projeto-monorepo/internal/database"
	"github.com/FitWiseApp/projeto-monorepo/internal/health"
	"github.com/FitWiseApp/projeto-monorepo/internal/http/handler"
	"github.com/FitWiseApp/projeto-monorepo/internal/http/middleware"
	"github.com/FitWiseApp/projeto-monorepo/internal/http/router"
	"github.com/FitWiseApp/projeto-monorepo/internal/observability"
	"github.com/FitWiseApp/projeto-monorepo/internal/repository"
	"github.com/FitWiseApp/projeto-monorepo/internal/security"
	"github.com/FitWiseApp/projeto-monorepo/internal/service"
)

var ConfigSet = wire.NewSet(config.Load)

var ObservabilitySet = wire.NewSet(
	provideObservabilityRuntime,
	provideAppLogger,
)

var RuntimeInfraSet = wire.NewSet(
	provideRuntimeDB,
	provideRedisClient,
	provideReadinessProbeRunner,
)

var RepositorySet = wire.NewSet(
	repository.NewUserRepository,
	repository.NewVerificationTokenRepository,
	repository.NewPasswordResetRepository,
	repository.NewRefreshTokenRepository,
	repository.NewGamificationRepository,
	repository.NewQuizResponseRepository,
)

var SecuritySet = wire.NewSet(
	provideJWTManager,
	providePasswordHasher,
)

var ServiceSet = wire.NewSet(
	provideTokenService,
	service.NewGamificationService,
	wire.Bind(new(service.UserVerifiedHandler), new(*service.GamificationService)),
	provideVerificationNotifier,
	provideResetNotifier,
	provideAuthService,
	wire.Bind(new(service.AuthWorkflows), new(*service.AuthService)),
)

var HTTPSet = wire.NewSet(
	handler.NewAuthHandler,
	handler.NewUserHandler,
	provideGlobalRateLimiter,
	provideAuthRateLimiter,
	provideRouterDependencies,
	router.NewRouter,
	provideHTTPServer,
)

var AppSet = wire.NewSet(app.New)

type GlobalRateLimiterFunc func(http.Handler) http.Handler
type AuthRateLimiterFunc func(http.Handler) http.Handler

type MigrationRunner struct {
	cfg *config.Config
	db  *gorm.DB
}

func NewMigrationRunner(cfg *config.Config, db *gorm.DB) *MigrationRunner {
	return &MigrationRunner{cfg: cfg, db: db}
}

func (m *MigrationRunner) Migrate() error {
	if err := database.Migrate(m.db); err != nil {
		return err
	}
	fmt.Println("migration complete")
	return nil
}

func (m *MigrationRunner) Seed() error {
	if err := database.Seed(m.db, m.cfg.BootstrapAdminEmail); err != nil {
		return err
	}
	fmt.Println("seed complete")
	return nil
}

func provideObservabilityRuntime(cfg *config.Config) (*observability.Runtime, error) {
	bootstrapLogger := observability.NewBootstrapLogger(cfg)
	return observability.InitRuntime(context.Background(), cfg, bootstrapLogger)
}

func provideAppLogger(cfg *config.Config, runtime *observability.Runtime) *slog.Logger {
	return observability.InitLogger(cfg, runtime.LoggerProvider)
}

func provideOpenDB(cfg *config.Config) (*gorm.DB, error) {
	return database.Open(cfg)
}

func provideRuntimeDB(cfg *config.Config) (*gorm.DB, error) {
	db, err := database.Open(cfg)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db); err != nil {
		return nil, err
	}
	if err := database.Seed(db, cfg.BootstrapAdminEmail); err != nil {
		return nil, err
	}
	return db, nil
}

func provideRedisClient(cfg *config.Config) (redis.UniversalClient, error) {
	if cfg.RedisURL == "" {
		return nil, nil
	}
	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("parse REDIS_URL: %w", err)
	}
	return redis.NewClient(opts), nil
}

func provideJWTManager(cfg *config.Config) *security.JWTManager {
	return security.NewJWTManager(cfg.JWTIssuer, cfg.JWTAudience, cfg.JWTAccessSecret, cfg.JWTRefreshSecret)
}

func providePasswordHasher(cfg *config.Config) (*security.PasswordHasher, error) {
	return security.NewPasswordHasher(cfg.BcryptCost)
}

func provideTokenService(cfg *config.Config, jwt *security.JWTManager, refreshRepo repository.RefreshTokenRepository) *service.TokenService {
	return service.NewTokenService(jwt, refreshRepo, cfg.RefreshTokenPepper, cfg.JWTAccessTTL, cfg.JWTRefreshTTL)
}

func provideVerificationNotifier(cfg *config.Config, logger *slog.Logger) service.EmailVerificationNotifier {
	if cfg.SMTPEnabled {
		return newSMTPNotifier(cfg)
	}
	return service.NewDevNotifier(cfg.FrontendBaseURL, logger)
}

func provideResetNotifier(cfg *config.Config, logger *slog.Logger) service.PasswordResetNotifier {
	if cfg.SMTPEnabled {
		return newSMTPNotifier(cfg)
	}
	return service.NewDevNotifier(cfg.FrontendBaseURL, logger)
}

func newSMTPNotifier(cfg *config.Config) *service.SMTPNotifier {
	return service.NewSMTPNotifier(
		cfg.SMTPHost, cfg.SMTPPort,
		cfg.SMTPUsername, cfg.SMTPPassword,
		cfg.EmailFrom, cfg.EmailFromName,
		cfg.FrontendBaseURL,
	)
}

func provideAuthService(
	cfg *config.Config,
	users repository.UserRepository,
	verifications repository.VerificationTokenRepository,
	resets repository.PasswordResetRepository,
	quizzes repository.QuizResponseRepository,
	hasher *security.PasswordHasher,
	tokens *service.TokenService,
	verifyMailer service.EmailVerificationNotifier,
	resetMailer service.PasswordResetNotifier,
	onVerified service.UserVerifiedHandler,
	logger *slog.Logger,
) *service.AuthService {
	return service.NewAuthService(
		users, verifications, resets, quizzes,
		hasher, tokens, verifyMailer, resetMailer, onVerified,
		cfg.VerifyTokenTTL, cfg.ResetTokenTTL,
		logger,
	)
}

func provideGlobalRateLimiter(cfg *config.Config, redisClient redis.UniversalClient) GlobalRateLimiterFunc {
	if redisClient != nil {
		redisLimiter := middleware.NewRedisFixedWindowLimiter(redisClient, "rl:api")
		return GlobalRateLimiterFunc(middleware.NewDistributedRateLimiter(
			redisLimiter,
			cfg.APIRateLimitPerMin,
			time.Minute,
			middleware.FailOpen,
			"api",
		).Middleware())
	}
	return GlobalRateLimiterFunc(middleware.NewRateLimiter(cfg.APIRateLimitPerMin, time.Minute).Middleware())
}

func provideAuthRateLimiter(cfg *config.Config, redisClient redis.UniversalClient) AuthRateLimiterFunc {
	if redisClient != nil {
		redisLimiter := middleware.NewRedisFixedWindowLimiter(redisClient, "rl:auth")
		return AuthRateLimiterFunc(middleware.NewDistributedRateLimiter(
			redisLimiter,
			cfg.AuthRateLimitPerMin,
			time.Minute,
			middleware.FailClosed,
			"auth",
		).Middleware())
	}
	return AuthRateLimiterFunc(middleware.NewRateLimiter(cfg.AuthRateLimitPerMin, time.Minute).Middleware())
}

func provideRouterDependencies(
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	jwt *security.JWTManager,
	globalRateLimiter GlobalRateLimiterFunc,
	authRateLimiter AuthRateLimiterFunc,
	readiness *health.ProbeRunner,
	cfg *config.Config,
) router.Dependencies {
	return router.Dependencies{
		AuthHandler:       authHandler,
		UserHandler:       userHandler,
		JWTManager:        jwt,
		CORSOrigins:       cfg.CORSAllowedOrigins,
		AuthRateLimitRPM:  cfg.AuthRateLimitPerMin,
		APIRateLimitRPM:   cfg.APIRateLimitPerMin,
		GlobalRateLimiter: globalRateLimiter,
		AuthRateLimiter:   authRateLimiter,
		Readiness:         readiness,
		EnableOTelHTTP:    cfg.OTELMetricsEnabled || cfg.OTELTracingEnabled,
	}
}

func provideHTTPServer(cfg *config.Config, h http.Handler) *http.Server {
	return &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           h,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}
}

func provideReadinessProbeRunner(db *gorm.DB, redisClient redis.UniversalClient) *health.ProbeRunner {
	checkers := make([]health.Checker, 0, 2)
	if c := health.NewDBChecker(db); c != nil {
		checkers = append(checkers, c)
	}
	if c := health.NewRedisChecker(redisClient); c != nil {
		checkers = append(checkers, c)
	}
	return health.NewProbeRunner(2*time.Second, 0, checkers...)
}
