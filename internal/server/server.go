package server

import (
	"context"
	"net/http"

	"expense-manager/internal/config"
	"expense-manager/internal/handlers"
	"expense-manager/internal/middleware"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const maxBodySize = "1M"

// Handlers groups the HTTP handlers mounted by New.
type Handlers struct {
	Health   *handlers.HealthCheckHandler
	Auth     *handlers.AuthHandler
	User     *handlers.UserHandler
	Category *handlers.CategoryHandler
	Expense  *handlers.ExpenseHandler
	Income   *handlers.IncomeHandler
	Report   *handlers.ReportHandler
}

// New builds the echo instance with the middleware chain and every API route.
// ctx bounds the rate limiter's background cleanup.
func New(ctx context.Context, cfg *config.Config, h Handlers, requireAuth echo.MiddlewareFunc, gatherer prometheus.Gatherer) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handlers.NewValidator()
	e.HTTPErrorHandler = middleware.CustomHTTPErrorHandler

	e.Use(middleware.RequestID())
	e.Use(middleware.PanicRecovery())
	e.Use(middleware.SecurityHeaders())
	e.Use(echomw.BodyLimit(maxBodySize))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:  cfg.Server.CORSAllowOrigins,
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:  []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization, middleware.TraceIDHeader},
		ExposeHeaders: []string{middleware.TraceIDHeader},
	}))
	e.Use(middleware.RateLimiterWithConfig(ctx, cfg.Security.RateLimitPerSecond, cfg.Security.RateLimitBurst))

	e.GET("/health", h.Health.HealthCheck)
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	api := e.Group("/api/v1")

	auth := api.Group("/auth")
	auth.POST("/register", h.Auth.Register)
	auth.POST("/login", h.Auth.Login)
	auth.POST("/logout", h.Auth.Logout, requireAuth)

	protected := api.Group("", requireAuth)

	protected.GET("/users/me", h.User.GetMe)
	protected.PATCH("/users/me", h.User.UpdateMe)
	protected.DELETE("/users/me", h.User.DeleteMe)
	protected.PUT("/users/me/password", h.User.ChangePassword)

	protected.POST("/categories", h.Category.CreateCategory)
	protected.GET("/categories", h.Category.ListCategories)
	protected.GET("/categories/:id", h.Category.GetCategory)
	protected.PATCH("/categories/:id", h.Category.UpdateCategory)
	protected.DELETE("/categories/:id", h.Category.DeleteCategory)

	protected.POST("/expenses", h.Expense.CreateExpense)
	protected.GET("/expenses", h.Expense.ListExpenses)
	protected.GET("/expenses/:id", h.Expense.GetExpense)
	protected.PATCH("/expenses/:id", h.Expense.UpdateExpense)
	protected.DELETE("/expenses/:id", h.Expense.DeleteExpense)

	protected.POST("/incomes", h.Income.CreateIncome)
	protected.GET("/incomes", h.Income.ListIncomes)
	protected.GET("/incomes/:id", h.Income.GetIncome)
	protected.PATCH("/incomes/:id", h.Income.UpdateIncome)
	protected.DELETE("/incomes/:id", h.Income.DeleteIncome)

	// the three legacy report views all read the same monthly report
	for _, path := range []string{"/reports/monthly", "/reports/monthly-totals", "/reports/expenses-by-category", "/reports/balance-overview"} {
		protected.GET(path, h.Report.GetMonthlyReport)
	}
	protected.GET("/reports/categories", h.Report.GetCategoryReport)

	return e
}
