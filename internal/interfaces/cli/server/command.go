package server

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"registrar/internal/application/access"
	domainPermission "registrar/internal/domain/permission"
	"registrar/internal/domain/program"
	"registrar/internal/infrastructure/auth"
	"registrar/internal/infrastructure/cache"
	"registrar/internal/infrastructure/config"
	"registrar/internal/infrastructure/database"
	"registrar/internal/infrastructure/discovery"
	permissionInfra "registrar/internal/infrastructure/permission"
	"registrar/internal/infrastructure/persistence/models"
	"registrar/internal/infrastructure/repository"
	httpRouter "registrar/internal/interfaces/http"
	"registrar/internal/interfaces/http/handlers"
	"registrar/internal/interfaces/http/middleware"
	"registrar/internal/shared/logger"
)

var (
	env         string
	autoMigrate bool
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "server",
		Short: "Start the HTTP server",
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "release", "Environment (debug, test, release)")
	cmd.Flags().BoolVar(&autoMigrate, "auto-migrate", false, "Run schema migration for directory tables on startup")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	if envVar := os.Getenv("ENV"); envVar != "" {
		env = envVar
	}

	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	log := logger.NewLogger()

	log.Infow("starting server", "environment", env)

	gin.SetMode(cfg.Server.Mode)
	gin.DefaultWriter = io.Discard

	if err := database.Init(&cfg.Database); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer database.Close()

	if autoMigrate {
		if err := database.Get().AutoMigrate(&models.OrganizationModel{}, &models.ProgramModel{}); err != nil {
			return fmt.Errorf("failed to migrate directory tables: %w", err)
		}
		log.Infow("directory tables migrated")
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.GetAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}
	defer redisClient.Close()
	log.Infow("redis connection established")

	grantStore, err := permissionInfra.NewGrantStoreWithDB(database.Get(), log)
	if err != nil {
		return fmt.Errorf("failed to initialize grant store: %w", err)
	}

	catalog := domainPermission.DefaultCatalog()
	resolver := domainPermission.NewResolver(catalog, grantStore)

	parser := program.NewParser(log)
	fetcher := discovery.NewClient(&cfg.Discovery, log)
	metadataStore := cache.NewRedisMetadataStore(redisClient, log)
	programCache := cache.NewProgramCache(metadataStore, fetcher, parser, cfg.Discovery.CacheTTL(), log)

	directoryRepo := repository.NewDirectoryRepository(database.Get(), log)
	accessService := access.NewService(resolver, grantStore, directoryRepo, programCache, catalog, log)

	jwtService := auth.NewJWTService(cfg.Auth.JWT.Secret, cfg.Auth.JWT.AccessExpMinutes)
	authMiddleware := middleware.NewAuthMiddleware(jwtService, log)
	programHandler := handlers.NewProgramHandler(accessService, log)

	router := httpRouter.NewRouter(programHandler, authMiddleware, log)
	router.SetupRoutes()

	srv := &http.Server{
		Addr:         cfg.Server.GetAddr(),
		Handler:      router.Engine(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infow("server starting", "address", cfg.Server.GetAddr(), "mode", cfg.Server.Mode)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Errorw("failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "error", err)
		return err
	}

	log.Infow("server exited gracefully")
	return nil
}
