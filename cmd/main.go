package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Dosada05/padel-tournament/brackets"
	"github.com/Dosada05/padel-tournament/config"
	"github.com/Dosada05/padel-tournament/db"
	"github.com/Dosada05/padel-tournament/db/migrations"
	"github.com/Dosada05/padel-tournament/handlers"
	"github.com/Dosada05/padel-tournament/repositories"
	api "github.com/Dosada05/padel-tournament/routes"
	"github.com/Dosada05/padel-tournament/services"
	"github.com/Dosada05/padel-tournament/storage"
	"github.com/Dosada05/padel-tournament/utils"
	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 15 * time.Second

func main() {
	if len(os.Args) == 3 && os.Args[1] == "hash-password" {
		hash, err := utils.HashPassword(os.Args[2])
		if err != nil {
			fmt.Fprintln(os.Stderr, "hash-password:", err)
			os.Exit(1)
		}
		fmt.Println(hash)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, stdout io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)
	logger.Info("configuration loaded", slog.String("addr", cfg.HTTPAddr), slog.String("storage", cfg.StorageDriver))

	tournamentRepo, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	healthChecks := map[string]handlers.Pinger{"database": tournamentRepo}

	wsHub := brackets.NewHub(logger)
	opts := []services.TournamentServiceOption{services.WithNotifier(wsHub)}

	if cfg.RedisURL != "" {
		redisOpts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("invalid REDIS_URL: %w", err)
		}
		rdb := redis.NewClient(redisOpts)
		defer func() {
			if err := rdb.Close(); err != nil {
				logger.Error("failed to close redis client", slog.Any("error", err))
			}
		}()
		if err := rdb.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		opts = append(opts, services.WithLocker(services.NewRedisLocker(rdb, cfg.RedisLockTTL, logger)))
		healthChecks["redis"] = handlers.PingFunc(func(ctx context.Context) error { return rdb.Ping(ctx).Err() })
		logger.Info("redis tournament locks enabled")
	}

	if cfg.R2.Enabled() {
		uploader, err := storage.NewCloudflareR2Uploader(ctx, storage.CloudflareR2UploaderConfig{
			AccountID:       cfg.R2.AccountID,
			AccessKeyID:     cfg.R2.AccessKeyID,
			SecretAccessKey: cfg.R2.SecretAccessKey,
			BucketName:      cfg.R2.BucketName,
			PublicBaseURL:   cfg.R2.PublicBaseURL,
		})
		if err != nil {
			return fmt.Errorf("failed to initialize Cloudflare R2 uploader: %w", err)
		}
		opts = append(opts, services.WithArchiver(storage.NewArchiver(uploader)))
		logger.Info("Cloudflare R2 archive enabled", slog.String("bucket", cfg.R2.BucketName))
	}

	tournamentService := services.NewTournamentService(tournamentRepo, logger, opts...)
	authService := services.NewAuthService(cfg.OrganizerPasswordHash, logger)

	router := chi.NewRouter()
	api.SetupRoutes(
		router,
		api.Options{JWTSecret: []byte(cfg.JWTSecretKey), AllowedOrigins: cfg.CORSAllowedOrigins, Logger: logger},
		handlers.NewAuthHandler(authService, cfg.JWTSecretKey, cfg.TokenTTL),
		handlers.NewTournamentHandler(tournamentService),
		handlers.NewWebSocketHandler(wsHub, tournamentService, cfg.CORSAllowedOrigins, logger),
		handlers.NewHealthHandler(healthChecks, logger),
	)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return wsHub.Run(gctx)
	})
	g.Go(func() error {
		logger.Info("starting server", slog.String("address", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			return server.Close()
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("application exited")
	return nil
}

// openStore connects the configured storage driver and applies migrations.
func openStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (repositories.TournamentRepository, func(), error) {
	var (
		conn    *sql.DB
		dialect string
		err     error
	)
	switch cfg.StorageDriver {
	case config.DriverMemory:
		logger.Warn("using in-memory storage; tournaments are lost on restart")
		return repositories.NewMemoryTournamentRepository(), func() {}, nil
	case config.DriverPostgres:
		conn, err = db.Connect(cfg.DatabaseURL, 5*time.Second)
		dialect = migrations.Postgres
	case config.DriverLibSQL:
		conn, err = db.OpenLibSQL(ctx, cfg.SQLitePath)
		dialect = migrations.SQLite
	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	closeConn := func() {
		if err := conn.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
			return
		}
		logger.Info("database connection closed")
	}

	if err := migrations.Run(conn, dialect); err != nil {
		closeConn()
		return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	logger.Info("database ready", slog.String("dialect", dialect))

	if cfg.StorageDriver == config.DriverPostgres {
		return repositories.NewPostgresTournamentRepository(conn), closeConn, nil
	}
	return repositories.NewLibSQLTournamentRepository(conn), closeConn, nil
}
