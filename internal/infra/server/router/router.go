// Package router sets up the HTTP routing for the application.
package router

import (
	"log/slog"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/personal-finance/internal/integration/entrypoint/controller"
	"github.com/finance-tracker/personal-finance/internal/integration/entrypoint/dto"
	"github.com/finance-tracker/personal-finance/internal/integration/entrypoint/middleware"
)

// Controllers groups the HTTP handlers mounted by the router.
type Controllers struct {
	Health        *controller.HealthController
	Auth          *controller.AuthController
	User          *controller.UserController
	Category      *controller.CategoryController
	Transaction   *controller.TransactionController
	Goal          *controller.GoalController
	Statistics    *controller.StatisticsController
	MonthlyReview *controller.MonthlyReviewController
}

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine            *gin.Engine
	controllers       Controllers
	authMiddleware    *middleware.AuthMiddleware
	authRateLimiter   *middleware.RateLimiter
	reviewRateLimiter *middleware.RateLimiter
}

// NewRouter creates a new router instance with all dependencies. A nil rate
// limiter leaves its routes unthrottled.
func NewRouter(
	controllers Controllers,
	authMiddleware *middleware.AuthMiddleware,
	authRateLimiter *middleware.RateLimiter,
	reviewRateLimiter *middleware.RateLimiter,
) *Router {
	return &Router{
		controllers:       controllers,
		authMiddleware:    authMiddleware,
		authRateLimiter:   authRateLimiter,
		reviewRateLimiter: reviewRateLimiter,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string, allowedOrigins []string) *gin.Engine {
	switch environment {
	case "production":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	}

	if err := dto.RegisterValidators(); err != nil {
		slog.Error("Failed to register request validators", "error", err)
	}

	r.engine = gin.Default()
	r.engine.Use(cors.New(corsConfig(allowedOrigins)))

	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

func corsConfig(allowedOrigins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Retry-After", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(allowedOrigins) == 0 || (len(allowedOrigins) == 1 && allowedOrigins[0] == "*") {
		cfg.AllowAllOrigins = true
		cfg.AllowCredentials = false
	} else {
		cfg.AllowOrigins = allowedOrigins
	}
	return cfg
}

func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.controllers.Health.Check)
}

// throttle returns the limiter's middleware, or nothing when it is disabled.
func throttle(rl *middleware.RateLimiter) []gin.HandlerFunc {
	if rl == nil {
		return nil
	}
	return []gin.HandlerFunc{rl.Middleware()}
}

func (r *Router) setupAPIRoutes() {
	v1 := r.engine.Group("/api/v1")

	auth := v1.Group("/auth", throttle(r.authRateLimiter)...)
	{
		auth.POST("/register", r.controllers.Auth.Register)
		auth.POST("/login", r.controllers.Auth.Login)
		auth.POST("/refresh", r.controllers.Auth.Refresh)
		auth.POST("/logout", r.controllers.Auth.Logout)
	}

	protected := v1.Group("", r.authMiddleware.Authenticate())

	users := protected.Group("/users")
	{
		users.GET("/profile", r.controllers.User.GetProfile)
		users.PUT("/profile", r.controllers.User.UpdateProfile)
	}

	categories := protected.Group("/categories")
	{
		categories.GET("", r.controllers.Category.List)
		categories.POST("", r.controllers.Category.Create)
		categories.PUT("/:id", r.controllers.Category.Update)
		categories.DELETE("/:id", r.controllers.Category.Delete)
	}

	transactions := protected.Group("/transactions")
	{
		transactions.GET("", r.controllers.Transaction.List)
		transactions.POST("", r.controllers.Transaction.Create)
		transactions.GET("/:id", r.controllers.Transaction.Get)
		transactions.PUT("/:id", r.controllers.Transaction.Update)
		transactions.DELETE("/:id", r.controllers.Transaction.Delete)
	}

	goals := protected.Group("/goals")
	{
		goals.GET("", r.controllers.Goal.List)
		goals.POST("", r.controllers.Goal.Create)
		goals.GET("/statistics", r.controllers.Goal.Statistics)
		goals.GET("/:id", r.controllers.Goal.Get)
		goals.PUT("/:id", r.controllers.Goal.Update)
		goals.DELETE("/:id", r.controllers.Goal.Delete)
		goals.POST("/:id/contributions", r.controllers.Goal.AddContribution)
		goals.PUT("/:id/contributions/:contributionId", r.controllers.Goal.UpdateContribution)
		goals.DELETE("/:id/contributions/:contributionId", r.controllers.Goal.DeleteContribution)
	}

	statistics := protected.Group("/statistics")
	{
		statistics.GET("/monthly", r.controllers.Statistics.Monthly)
		statistics.GET("/categories", r.controllers.Statistics.Categories)
		statistics.GET("/trends", r.controllers.Statistics.Trends)
		statistics.GET("/custom", r.controllers.Statistics.Custom)
		statistics.GET("/period", r.controllers.Statistics.Period)
	}

	review := protected.Group("/monthly-review")
	{
		review.GET("", append(throttle(r.reviewRateLimiter), r.controllers.MonthlyReview.Get)...)
		review.GET("/all", r.controllers.MonthlyReview.List)
	}
}

// Engine returns the underlying Gin engine.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
