package cmd

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"

	config "task-manager-system.com/task-manager-system/internal/configs"
	httpapi "task-manager-system.com/task-manager-system/internal/http"
	middleware "task-manager-system.com/task-manager-system/internal/http/middlewares"
	"task-manager-system.com/task-manager-system/internal/ratelimit"
	repository "task-manager-system.com/task-manager-system/internal/repositories"
	"task-manager-system.com/task-manager-system/internal/services"
	"task-manager-system.com/task-manager-system/internal/storage"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  "Starts the task management HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(); err != nil {
			log.Println(".env file not found, using environment variables")
		}

		cfg := config.Load()
		database := config.New(cfg.DatabaseDSN)

		taskRepo := repository.NewTaskRepository(database)
		auditRepo := repository.NewAuditRepository(database)
		userRepo := repository.NewUserRepository(database)

		objectStore, err := storage.NewMinioStorage(
			cfg.MinioEndpoint,
			cfg.MinioAccessKey,
			cfg.MinioSecretKey,
			cfg.MinioBucket,
			cfg.MinioUseSSL,
		)
		if err != nil {
			log.Fatalf("failed to create object storage client: %v", err)
		}

		auditService := services.NewAuditService(auditRepo)
		taskService := services.NewTaskService(taskRepo, auditService, objectStore)
		authService := services.NewAuthService(userRepo, cfg.JWTSecret, time.Duration(cfg.TokenTTLHours)*time.Hour)

		var limiter ratelimit.Limiter
		if cfg.RedisAddr != "" {
			redisClient := config.NewRedisClient(cfg.RedisAddr)
			defer redisClient.Close()
			limiter = ratelimit.NewRedisLimiter(redisClient, cfg.RateLimit, time.Minute)
		} else {
			limiter = ratelimit.NewMemoryLimiter(cfg.RateLimit, time.Minute)
		}

		e := echo.New()
		e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
			AllowOrigins:     cfg.AllowedOrigins,
			AllowCredentials: true,
		}))
		e.Use(middleware.RateLimiter(limiter))

		httpapi.Register(
			e,
			httpapi.NewTaskHandler(taskService),
			httpapi.NewAuthHandler(authService),
			httpapi.NewAuditHandler(auditService),
			middleware.Auth(authService),
		)

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		go func() {
			log.Printf("HTTP server listening on %s", cfg.AppURL)
			if err := e.Start(cfg.AppURL); err != nil {
				log.Printf("server stopped: %v", err)
			}
		}()

		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(
			context.Background(),
			time.Duration(cfg.ShutdownTimeoutSeconds)*time.Second,
		)
		defer cancel()
		_ = e.Shutdown(shutdownCtx)

		log.Println("HTTP server shut down gracefully")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
