package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/smartlink-app/smartlink/cmd"
	"github.com/smartlink-app/smartlink/internal/ai"
	"github.com/smartlink-app/smartlink/internal/api"
	"github.com/smartlink-app/smartlink/internal/config"
	"github.com/smartlink-app/smartlink/internal/logger"
	"github.com/smartlink-app/smartlink/internal/monitor"
	"github.com/smartlink-app/smartlink/internal/repository"
	"github.com/smartlink-app/smartlink/internal/services"
)

// RunServerCmd represents the 'run-server' Cobra command.
// It is the entry point for launching the application server.
var RunServerCmd = &cobra.Command{
	Use:   "run-server",
	Short: "Starts the SmartLink API server and background processes.",
	Long: `This command initializes the database, configures the APIs,
starts the destination URL monitor, then launches the HTTP server
with graceful shutdown.`,
	Run: func(cobraCmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		if err := logger.Init(cfg.Logging.Level, cfg.Logging.Format); err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logger.Sync()

		store, err := repository.OpenStore(cfg.Database.Name)
		if err != nil {
			logger.Fatal("failed to open database", zap.Error(err))
		}
		defer store.Close()

		if err := store.AutoMigrate(); err != nil {
			logger.Fatal("failed to migrate database", zap.Error(err))
		}

		linkRepo := repository.NewLinkRepository(store.DB())
		clickRepo := repository.NewClickRepository(store.DB())
		userRepo := repository.NewUserRepository(store.DB())
		embeddingRepo := repository.NewEmbeddingRepository(store.DB())
		logger.Info("repositories initialized")

		aiClient := ai.NewClient(cfg.OpenAI.APIKey, cfg.OpenAI.ChatModel, cfg.OpenAI.EmbeddingModel, cfg.OpenAI.Temperature)

		linkService := services.NewLinkService(linkRepo, clickRepo)
		analyticsService := services.NewAnalyticsService(linkRepo, clickRepo)
		authService := services.NewAuthService(userRepo, cfg.Auth.JWTSecret,
			time.Duration(cfg.Auth.TokenTTLHours)*time.Hour, cfg.Auth.BcryptCost)
		chatService := services.NewChatService(embeddingRepo, aiClient, aiClient)
		logger.Info("services initialized")

		// The monitor runs until shutdown; cancelling the context stops it.
		monitorCtx, stopMonitor := context.WithCancel(context.Background())
		defer stopMonitor()

		monitorInterval := time.Duration(cfg.Monitor.IntervalMinutes) * time.Minute
		urlMonitor := monitor.NewURLMonitor(linkRepo, monitorInterval)
		go urlMonitor.Start(monitorCtx)

		router := gin.Default()
		api.SetupRoutes(router, api.Services{
			Store:     store,
			Links:     linkService,
			Analytics: analyticsService,
			Auth:      authService,
			Chat:      chatService,
			BaseURL:   cfg.Server.BaseURL,
		})
		logger.Info("API routes configured")

		serverAddr := fmt.Sprintf(":%d", cfg.Server.Port)
		srv := &http.Server{
			Addr:    serverAddr,
			Handler: router,
		}

		go func() {
			logger.Info("starting server", zap.String("addr", serverAddr))
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Fatal("failed to start server", zap.Error(err))
			}
		}()

		// Graceful shutdown on SIGINT or SIGTERM.
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		logger.Info("shutdown signal received, stopping server")

		stopMonitor()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("forced server shutdown", zap.Error(err))
		}

		logger.Info("server stopped cleanly")
	},
}

func init() {
	cmd.RootCmd.AddCommand(RunServerCmd)
}
