package apiapp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/minio/minio-go/v7"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/ivankudzin/svcmarket/internal/config"
	"github.com/ivankudzin/svcmarket/internal/domain/model"
	s3infra "github.com/ivankudzin/svcmarket/internal/infra/s3"
	"github.com/ivankudzin/svcmarket/internal/jobs/cleanup"
	pgrepo "github.com/ivankudzin/svcmarket/internal/repo/postgres"
	redrepo "github.com/ivankudzin/svcmarket/internal/repo/redis"
	adminauthsvc "github.com/ivankudzin/svcmarket/internal/services/adminauth"
	assistantsvc "github.com/ivankudzin/svcmarket/internal/services/assistant"
	catalogsvc "github.com/ivankudzin/svcmarket/internal/services/catalog"
	listingsvc "github.com/ivankudzin/svcmarket/internal/services/listings"
	mediasvc "github.com/ivankudzin/svcmarket/internal/services/media"
	modsvc "github.com/ivankudzin/svcmarket/internal/services/moderation"
	planssvc "github.com/ivankudzin/svcmarket/internal/services/plans"
	ratesvc "github.com/ivankudzin/svcmarket/internal/services/rate"
	settingsvc "github.com/ivankudzin/svcmarket/internal/services/settings"
	userssvc "github.com/ivankudzin/svcmarket/internal/services/users"
)

const listCacheTTL = 5 * time.Minute

type App struct {
	cfg        config.Config
	logger     *zap.Logger
	server     *http.Server
	postgres   *pgxpool.Pool
	redis      *goredis.Client
	s3         *minio.Client
	httpRouter http.Handler

	cleanupJob *cleanup.Job
	jobsCancel context.CancelFunc
}

func New(ctx context.Context, cfg config.Config, log *zap.Logger) (*App, error) {
	if log == nil {
		return nil, fmt.Errorf("logger is nil")
	}

	r := chi.NewRouter()
	ApplyMiddlewares(r, log)

	var pool *pgxpool.Pool
	if p, err := pgrepo.NewPool(ctx, cfg.Postgres.DSN); err != nil {
		log.Warn("postgres init failed, continuing in degraded mode", zap.Error(err))
	} else {
		pool = p
	}

	redisClient := redrepo.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	cacheRepo := redrepo.NewCacheRepo(redisClient, listCacheTTL)
	sessionRepo := redrepo.NewSessionRepo(redisClient)
	rateRepo := redrepo.NewRateRepo(redisClient)

	userRepo := pgrepo.NewUserRepo(pool)
	moderationRepo := pgrepo.NewModerationRepo(pool)
	listingRepo := pgrepo.NewListingRepo(pool)
	categoryRepo := pgrepo.NewCategoryRepo(pool)
	suggestionRepo := pgrepo.NewSuggestionRepo(pool)
	planRepo := pgrepo.NewPlanRepo(pool)
	settingsRepo := pgrepo.NewSettingsRepo(pool)
	adminUserRepo := pgrepo.NewAdminUserRepo(pool)
	statsRepo := pgrepo.NewStatsRepo(pool)

	var s3Client *minio.Client
	if c, err := s3infra.NewClient(s3infra.Config{
		Endpoint:  cfg.S3.Endpoint,
		AccessKey: cfg.S3.AccessKey,
		SecretKey: cfg.S3.SecretKey,
		UseSSL:    cfg.S3.UseSSL,
	}); err != nil {
		log.Warn("s3 init failed, continuing in degraded mode", zap.Error(err))
	} else {
		s3Client = c
	}
	imageStorage := mediasvc.NewS3Storage(s3Client, cfg.S3.Bucket)

	jwtManager := adminauthsvc.NewJWTManager(cfg.Admin.JWTSecret, cfg.Admin.JWTAccessTTL)
	authService := adminauthsvc.NewService(adminUserRepo, sessionRepo, jwtManager, cfg.Admin.SessionTTL)
	rateLimiter := ratesvc.NewLimiter(rateRepo, cfg.Admin.LoginPerMinute, cfg.Admin.AssistPerMinute)
	userService := userssvc.NewService(userRepo)
	moderationService := modsvc.NewService(pool, userRepo, moderationRepo, log)
	listingService := listingsvc.NewService(
		listingRepo,
		categoryRepo,
		planRepo,
		cacheRepo,
		imageStorage,
		log,
		cfg.Market.ListingDurationDays,
		cfg.Market.MaxImagesDefault,
	)
	catalogService := catalogsvc.NewService(categoryRepo, suggestionRepo, cacheRepo, log)
	planService := planssvc.NewService(planRepo)
	settingsService := settingsvc.NewService(settingsRepo, model.Settings{
		RequireEmailVerification: cfg.Market.RequireEmailVerification,
		RequirePhoneVerification: cfg.Market.RequirePhoneVerification,
		ModerateNewListings:      cfg.Market.ModerateNewListings,
		ServiceFeePercent:        cfg.Market.ServiceFeePercent,
		FeaturedFeePercent:       cfg.Market.FeaturedFeePercent,
	})
	assistantService := assistantsvc.NewService(assistantsvc.Config{
		BaseURL: cfg.AI.BaseURL,
		APIKey:  cfg.AI.APIKey,
		Model:   cfg.AI.Model,
		Timeout: cfg.AI.Timeout,
	}, statsRepo, log)

	cleanupJob := cleanup.NewListingExpiryJob(listingRepo, cacheRepo, log)

	RegisterRoutes(r, Dependencies{
		AuthService:       authService,
		UserService:       userService,
		ModerationService: moderationService,
		ListingService:    listingService,
		CatalogService:    catalogService,
		PlanService:       planService,
		SettingsService:   settingsService,
		AssistantService:  assistantService,
		RateLimiter:       rateLimiter,
		Logger:            log,
		Config:            cfg,
	})

	server := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      r,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	return &App{
		cfg:        cfg,
		logger:     log,
		server:     server,
		postgres:   pool,
		redis:      redisClient,
		s3:         s3Client,
		httpRouter: r,
		cleanupJob: cleanupJob,
	}, nil
}

func (a *App) Run() error {
	jobsCtx, cancel := context.WithCancel(context.Background())
	a.jobsCancel = cancel
	go func() {
		if err := a.cleanupJob.RunLoop(jobsCtx, a.cfg.Market.CleanupInterval); err != nil && !errors.Is(err, context.Canceled) {
			a.logger.Warn("listing expiry loop stopped", zap.Error(err))
		}
	}()

	a.logger.Info("api server started", zap.String("addr", a.cfg.HTTP.Addr))
	err := a.server.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (a *App) Shutdown(ctx context.Context) error {
	var shutdownErr error

	if a.jobsCancel != nil {
		a.jobsCancel()
	}
	if err := a.server.Shutdown(ctx); err != nil {
		shutdownErr = err
	}
	if a.postgres != nil {
		a.postgres.Close()
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil && shutdownErr == nil {
			shutdownErr = err
		}
	}

	return shutdownErr
}

func (a *App) Handler() http.Handler {
	return a.httpRouter
}
