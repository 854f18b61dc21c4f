package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"expense-console/internal/apiclient"
	"expense-console/internal/config"
	"expense-console/internal/handlers"
	"expense-console/internal/middleware"
	"expense-console/internal/services"
	"expense-console/internal/session"
	"expense-console/web"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using environment variables")
	}

	cfg := config.Load()

	client := apiclient.New(cfg.API.BaseURL,
		apiclient.WithTimeout(cfg.API.Timeout),
		apiclient.WithMetrics(apiclient.NewPrometheusMetrics()),
	)

	authService := services.NewAuthService(client)
	expenseService := services.NewExpenseService(client)
	categoryService := services.NewCategoryService(client)
	userService := services.NewUserService(client)
	reportService := services.NewReportService(client)
	auditLogService := services.NewAuditLogService(client)

	sessions := session.NewManager(cfg.Session)

	renderer, err := handlers.NewRenderer(web.TemplatesFS)
	if err != nil {
		slog.Error("template parsing failed", "error", err)
		os.Exit(1)
	}

	e := echo.New()
	e.HideBanner = true
	e.Renderer = renderer
	e.Use(middleware.TraceID())
	e.Use(middleware.PanicRecovery())
	e.Use(middleware.SecurityHeaders())

	e.StaticFS("/static", echo.MustSubFS(web.StaticFS, "static"))
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	healthHandler := handlers.NewHealthHandler()
	e.GET("/healthz", healthHandler.Health)

	authHandler := handlers.NewAuthHandler(authService, sessions)
	authLimiter := middleware.NewRateLimiter(cfg.Limits.AuthRatePerSecond, cfg.Limits.AuthBurst)

	e.GET("/", func(c echo.Context) error {
		return c.Redirect(http.StatusFound, middleware.LoginRoute)
	})

	auth := e.Group("", authLimiter.Middleware())
	auth.GET("/login", authHandler.ShowLogin)
	auth.POST("/login", authHandler.Login)
	auth.GET("/register", authHandler.ShowRegister)
	auth.POST("/register", authHandler.Register)
	auth.GET("/register/verify", authHandler.ShowVerifyOTP)
	auth.POST("/register/verify", authHandler.VerifyOTP)
	auth.POST("/register/resend", authHandler.ResendOTP)
	e.POST("/logout", authHandler.Logout)

	dashboardHandler := handlers.NewDashboardHandler(reportService, expenseService)
	expenseHandler := handlers.NewExpenseHandler(expenseService, categoryService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	userHandler := handlers.NewUserHandler(userService)
	reportHandler := handlers.NewReportHandler(reportService, categoryService)
	auditLogHandler := handlers.NewAuditLogHandler(auditLogService)

	user := e.Group("/user", middleware.RequireAuth(sessions))
	user.GET("/dashboard", dashboardHandler.UserPage)
	user.GET("/expenses", expenseHandler.ListPage)
	user.POST("/expenses", expenseHandler.Create)
	user.POST("/expenses/:id", expenseHandler.Update)
	user.POST("/expenses/:id/delete", expenseHandler.Delete)

	admin := e.Group("/admin", middleware.RequireAuth(sessions), middleware.RequireAdmin())
	admin.GET("/dashboard", dashboardHandler.AdminPage)
	admin.GET("/users", userHandler.ListPage)
	admin.POST("/users", userHandler.Create)
	admin.POST("/users/:id", userHandler.Update)
	admin.POST("/users/:id/role", userHandler.UpdateRole)
	admin.POST("/users/:id/delete", userHandler.Delete)
	admin.POST("/users/:id/reset-password", userHandler.ResetPassword)
	admin.GET("/categories", categoryHandler.ListPage)
	admin.POST("/categories", categoryHandler.Create)
	admin.POST("/categories/:id", categoryHandler.Update)
	admin.POST("/categories/:id/delete", categoryHandler.Delete)
	admin.GET("/reports", reportHandler.Page)
	admin.GET("/audit-logs", auditLogHandler.Page)

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      e,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		slog.Info("console starting", "addr", cfg.Addr(), "api", cfg.API.BaseURL, "env", cfg.Server.Environment)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("forced shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("stopped")
}
