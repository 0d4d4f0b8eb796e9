// Package dependency provides dependency injection for the application.
package dependency

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/finance-tracker/personal-finance/config"
	"github.com/finance-tracker/personal-finance/internal/application/adapter"
	"github.com/finance-tracker/personal-finance/internal/application/usecase/auth"
	"github.com/finance-tracker/personal-finance/internal/application/usecase/category"
	"github.com/finance-tracker/personal-finance/internal/application/usecase/goal"
	"github.com/finance-tracker/personal-finance/internal/application/usecase/review"
	"github.com/finance-tracker/personal-finance/internal/application/usecase/statistics"
	"github.com/finance-tracker/personal-finance/internal/application/usecase/transaction"
	"github.com/finance-tracker/personal-finance/internal/application/usecase/user"
	"github.com/finance-tracker/personal-finance/internal/infra/server/router"
	"github.com/finance-tracker/personal-finance/internal/integration/adapters"
	"github.com/finance-tracker/personal-finance/internal/integration/email"
	"github.com/finance-tracker/personal-finance/internal/integration/email/templates"
	"github.com/finance-tracker/personal-finance/internal/integration/entrypoint/controller"
	"github.com/finance-tracker/personal-finance/internal/integration/entrypoint/job"
	"github.com/finance-tracker/personal-finance/internal/integration/entrypoint/middleware"
	"github.com/finance-tracker/personal-finance/internal/integration/kvstore"
	"github.com/finance-tracker/personal-finance/internal/integration/persistence"
)

// Overrides replaces external services, typically with fakes in tests.
type Overrides struct {
	Generator   adapter.TextGenerator
	EmailSender adapter.EmailSender
}

// Injector holds all application dependencies.
type Injector struct {
	Config        *config.Config
	DB            *gorm.DB
	Router        *router.Router
	EmailWorker   *email.Worker
	ReviewJob     *job.MonthlyReviewJob
	MonthlyReview *review.RunMonthlyBatchUseCase
}

// NewInjector creates a new dependency injector with all dependencies wired.
func NewInjector(
	cfg *config.Config,
	db *gorm.DB,
	redisClient *redis.Client,
	dbHealth, redisHealth controller.HealthChecker,
	overrides Overrides,
) (*Injector, error) {
	// Repositories
	userRepo := persistence.NewUserRepository(db)
	categoryRepo := persistence.NewCategoryRepository(db)
	transactionRepo := persistence.NewTransactionRepository(db)
	goalRepo := persistence.NewGoalRepository(db)
	statsRepo := persistence.NewStatisticsRepository(db)
	reviewRepo := persistence.NewMonthlyReviewRepository(db)
	emailQueueRepo := persistence.NewEmailQueueRepository(db)

	// Redis-backed stores
	refreshTokens := kvstore.NewRefreshTokenStore(redisClient)
	windowCounter := kvstore.NewWindowCounter(redisClient)
	jobLock := kvstore.NewJobLock(redisClient)

	// Adapters
	passwordService := adapters.NewPasswordService()
	tokenService := adapters.NewTokenService(&cfg.JWT, refreshTokens)

	generator := overrides.Generator
	if generator == nil {
		generator = adapters.NewGeminiService(&cfg.Gemini)
	}

	sender := overrides.EmailSender
	if sender == nil {
		if cfg.Email.ResendAPIKey != "" {
			sender = email.NewResendClient(cfg.Email.ResendAPIKey, cfg.Email.FromName, cfg.Email.FromEmail)
		} else {
			slog.Warn("RESEND_API_KEY not set, emails will only be logged")
			sender = email.NewLogSender()
		}
	}

	renderer, err := templates.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("failed to load email templates: %w", err)
	}
	notifier := email.NewNotifier(emailQueueRepo)

	// Auth and user use cases
	registerUseCase := auth.NewRegisterUserUseCase(userRepo, passwordService, tokenService)
	loginUseCase := auth.NewLoginUserUseCase(userRepo, passwordService, tokenService)
	refreshTokenUseCase := auth.NewRefreshTokenUseCase(tokenService)
	logoutUseCase := auth.NewLogoutUserUseCase(tokenService)
	getProfileUseCase := user.NewGetProfileUseCase(userRepo)
	updateProfileUseCase := user.NewUpdateProfileUseCase(userRepo)

	// Category use cases
	listCategoriesUseCase := category.NewListCategoriesUseCase(categoryRepo)
	createCategoryUseCase := category.NewCreateCategoryUseCase(categoryRepo)
	updateCategoryUseCase := category.NewUpdateCategoryUseCase(categoryRepo)
	deleteCategoryUseCase := category.NewDeleteCategoryUseCase(categoryRepo)

	// Transaction use cases
	listTransactionsUseCase := transaction.NewListTransactionsUseCase(transactionRepo)
	getTransactionUseCase := transaction.NewGetTransactionUseCase(transactionRepo)
	createTransactionUseCase := transaction.NewCreateTransactionUseCase(transactionRepo, categoryRepo)
	updateTransactionUseCase := transaction.NewUpdateTransactionUseCase(transactionRepo, categoryRepo)
	deleteTransactionUseCase := transaction.NewDeleteTransactionUseCase(transactionRepo)

	// Review pipeline
	monthDataBuilder := review.NewMonthDataBuilder(statsRepo, goalRepo)
	pipeline := review.NewPipeline(monthDataBuilder, generator, reviewRepo, cfg.Review.GenerationTimeout)
	getReviewUseCase := review.NewGetMonthlyReviewUseCase(reviewRepo, userRepo, monthDataBuilder, pipeline)
	listReviewsUseCase := review.NewListMonthlyReviewsUseCase(reviewRepo)
	batchUseCase := review.NewRunMonthlyBatchUseCase(userRepo, reviewRepo, monthDataBuilder, pipeline, notifier, cfg.Review.BatchConcurrency)

	// Controllers
	controllers := router.Controllers{
		Health: controller.NewHealthController(dbHealth, redisHealth),
		Auth:   controller.NewAuthController(registerUseCase, loginUseCase, refreshTokenUseCase, logoutUseCase),
		User:   controller.NewUserController(getProfileUseCase, updateProfileUseCase),
		Category: controller.NewCategoryController(
			listCategoriesUseCase,
			createCategoryUseCase,
			updateCategoryUseCase,
			deleteCategoryUseCase,
		),
		Transaction: controller.NewTransactionController(
			listTransactionsUseCase,
			getTransactionUseCase,
			createTransactionUseCase,
			updateTransactionUseCase,
			deleteTransactionUseCase,
		),
		Goal: controller.NewGoalController(controller.GoalUseCases{
			List:               goal.NewListGoalsUseCase(goalRepo),
			Create:             goal.NewCreateGoalUseCase(goalRepo),
			Get:                goal.NewGetGoalUseCase(goalRepo),
			Update:             goal.NewUpdateGoalUseCase(goalRepo),
			Delete:             goal.NewDeleteGoalUseCase(goalRepo),
			AddContribution:    goal.NewAddContributionUseCase(goalRepo),
			UpdateContribution: goal.NewUpdateContributionUseCase(goalRepo),
			DeleteContribution: goal.NewDeleteContributionUseCase(goalRepo),
			Statistics:         goal.NewGetGoalStatisticsUseCase(goalRepo),
		}),
		Statistics: controller.NewStatisticsController(controller.StatisticsUseCases{
			Monthly:    statistics.NewGetMonthlyStatisticsUseCase(statsRepo),
			Categories: statistics.NewGetCategoryStatisticsUseCase(statsRepo),
			Trends:     statistics.NewGetTrendsUseCase(statsRepo),
			Custom:     statistics.NewGetCustomStatisticsUseCase(statsRepo),
			Period:     statistics.NewGetPeriodStatisticsUseCase(statsRepo),
		}),
		MonthlyReview: controller.NewMonthlyReviewController(getReviewUseCase, listReviewsUseCase),
	}

	// Middleware
	authMiddleware := middleware.NewAuthMiddleware(tokenService)
	authLimiter := newRateLimiter(windowCounter, "auth", cfg.RateLimit.AuthRequests, cfg.RateLimit.AuthWindow)
	reviewLimiter := newRateLimiter(windowCounter, "monthly_review", cfg.RateLimit.ReviewRequests, cfg.RateLimit.ReviewWindow)

	worker := email.NewWorker(emailQueueRepo, sender, renderer, email.WorkerConfig{
		PollInterval: cfg.Email.PollInterval,
		BatchSize:    cfg.Email.BatchSize,
		AppBaseURL:   cfg.Email.AppBaseURL,
	})

	return &Injector{
		Config:        cfg,
		DB:            db,
		Router:        router.NewRouter(controllers, authMiddleware, authLimiter, reviewLimiter),
		EmailWorker:   worker,
		ReviewJob:     job.NewMonthlyReviewJob(batchUseCase, jobLock, cfg.Review.JobLockTTL),
		MonthlyReview: batchUseCase,
	}, nil
}

// newRateLimiter returns nil when the policy is disabled.
func newRateLimiter(counter middleware.WindowCounter, name string, limit int, window time.Duration) *middleware.RateLimiter {
	if limit <= 0 || window <= 0 {
		slog.Warn("Rate limit policy disabled", "policy", name)
		return nil
	}
	return middleware.NewRateLimiter(counter, middleware.RatePolicy{Name: name, Limit: limit, Window: window})
}
