package app

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/templui/goalmaster/internal/config"
	"github.com/templui/goalmaster/internal/db"
	"github.com/templui/goalmaster/internal/llm"
	"github.com/templui/goalmaster/internal/metrics"
	"github.com/templui/goalmaster/internal/repository"
	"github.com/templui/goalmaster/internal/service"
	"github.com/templui/goalmaster/internal/storage"
)

type App struct {
	Cfg              *config.Config
	DB               *sqlx.DB
	Metrics          *metrics.Metrics
	AuthService      *service.AuthService
	UserService      *service.UserService
	EmailService     *service.EmailService
	GoalService      *service.GoalService
	ProgressService  *service.ProgressService
	AdvisorService   *service.AdvisorService
	CommunityService *service.CommunityService
}

type options struct {
	client  llm.Client
	storage storage.Storage
}

// Option overrides a dependency that New would otherwise build from config.
type Option func(*options)

// WithLLMClient replaces the text-generation client.
func WithLLMClient(c llm.Client) Option {
	return func(o *options) { o.client = c }
}

// WithStorage replaces the avatar object storage.
func WithStorage(s storage.Storage) Option {
	return func(o *options) { o.storage = s }
}

func New(ctx context.Context, cfg *config.Config, opts ...Option) (*App, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	// Database and migrations
	database, err := db.Open(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// Repositories
	userRepository := repository.NewUserRepository(database)
	goalRepository := repository.NewGoalRepository(database)
	progressLogRepository := repository.NewProgressLogRepository(database)
	actionPlanRepository := repository.NewActionPlanRepository(database)
	aiInteractionRepository := repository.NewAIInteractionRepository(database)
	communityRepository := repository.NewCommunityRepository(database)

	// Storage is optional; avatar uploads answer 503 without it.
	fileStorage := o.storage
	if fileStorage == nil && cfg.StorageEnabled() {
		s3Storage, err := storage.New(ctx, cfg)
		if err != nil {
			_ = database.Close()
			return nil, fmt.Errorf("failed to initialize storage: %w", err)
		}
		fileStorage = s3Storage
	}

	client := o.client
	if client == nil {
		if cfg.LLMEnabled() {
			client = llm.NewOpenAIClient(llm.OpenAIConfig{
				APIKey:  cfg.OpenAIAPIKey,
				BaseURL: cfg.OpenAIBaseURL,
				Model:   cfg.OpenAIModel,
				Timeout: cfg.OpenAITimeout,
			})
		} else {
			client = llm.Disabled()
		}
	}

	m := metrics.New()

	// Services
	emailService := service.NewEmailService(
		cfg.ResendAPIKey,
		cfg.EmailFrom,
		cfg.AppName,
		cfg.IsDevelopment(),
	)
	authService := service.NewAuthService(userRepository, emailService, cfg.JWTSecret, cfg.JWTExpiry)
	userService := service.NewUserService(userRepository, fileStorage)
	goalService := service.NewGoalService(goalRepository)
	progressService := service.NewProgressService(progressLogRepository, goalService)
	advisorService := service.NewAdvisorService(
		goalService,
		progressService,
		actionPlanRepository,
		aiInteractionRepository,
		client,
		m,
	)
	communityService := service.NewCommunityService(communityRepository)

	return &App{
		Cfg:              cfg,
		DB:               database,
		Metrics:          m,
		AuthService:      authService,
		UserService:      userService,
		EmailService:     emailService,
		GoalService:      goalService,
		ProgressService:  progressService,
		AdvisorService:   advisorService,
		CommunityService: communityService,
	}, nil
}

func (a *App) Close() error {
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}
