package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"diary/internal/config"
	"diary/internal/factory"
	"diary/internal/services/auth"
	sessionredis "diary/internal/sessions/redis"
	"diary/internal/web"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configFile string

	rootCmd := &cobra.Command{
		Use:   "diary",
		Short: "Personal diary card web server",
		Long: `diary serves a small personal-diary web application: users register,
log in, and keep short text cards in a paginated list.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cmd, configFile)
			if err != nil {
				return err
			}
			return run(cfg)
		},
		SilenceUsage: true,
	}

	rootCmd.Flags().StringVar(&configFile, "config", "", "Path to config file")
	rootCmd.Flags().String("server.host", "", "Listen host")
	rootCmd.Flags().Int("server.port", 8080, "Listen port")
	rootCmd.Flags().String("storage.type", "sqlite", "Storage backend: memory, sqlite")
	rootCmd.Flags().String("storage.dsn", "diary.db", "SQLite database path")
	rootCmd.Flags().String("sessions.type", "memory", "Session store: memory, redis")
	rootCmd.Flags().String("sessions.redis_url", "redis://localhost:6379", "Redis URL for the session store")
	rootCmd.Flags().Duration("sessions.ttl", 7*24*time.Hour, "Session lifetime")

	return rootCmd
}

func run(cfg config.Config) error {
	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	factoryCfg := factory.Config{
		Logger:       logger,
		StorageType:  cfg.Storage.Type,
		StorageDSN:   cfg.Storage.DSN,
		SessionsType: cfg.Sessions.Type,
		AuthConfig:   auth.Config{SessionDuration: cfg.Sessions.TTL},
	}

	if cfg.Sessions.Type == factory.SessionsTypeRedis {
		redisCfg := sessionredis.DefaultConfig()
		redisCfg.URL = cfg.Sessions.RedisURL
		factoryCfg.RedisConfig = &redisCfg
	}

	app, err := factory.New(factoryCfg)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		return err
	}
	defer func() { _ = app.Close() }()

	router := web.NewRouter(web.RouterConfig{
		Logger:      logger,
		AuthService: app.AuthService,
		CardService: app.CardService,
		Renderer:    app.Renderer,
	})

	serverConfig := web.DefaultServerConfig()
	serverConfig.Host = cfg.Server.Host
	serverConfig.Port = cfg.Server.Port
	server := web.NewServer(router, serverConfig, logger)

	// Handle graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutdown signal received")
		cancel()
	}()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("server started", slog.String("addr", server.Addr()))

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			return err
		}
	case <-ctx.Done():
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
			return err
		}
	}

	logger.Info("server stopped")
	return nil
}
