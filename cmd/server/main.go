package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	redisv9 "github.com/redis/go-redis/v9"

	"movie_backend/internal/app/di"
	"movie_backend/internal/app/router"
	"movie_backend/internal/config"
	authadapters "movie_backend/internal/feature/auth/adapters"
	authhandler "movie_backend/internal/feature/auth/transport/handler"
	authusecase "movie_backend/internal/feature/auth/usecase"
	moviehandler "movie_backend/internal/feature/movies/transport/handler"
	movieusecase "movie_backend/internal/feature/movies/usecase"
	"movie_backend/internal/platform/db"
	"movie_backend/internal/platform/http/handler"
	jwtmw "movie_backend/internal/platform/jwt"
	"movie_backend/internal/platform/logger"
	"movie_backend/internal/platform/mongodb"
	infraredis "movie_backend/internal/platform/redis"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to optional YAML config file")
	flag.Parse()

	// .env はローカル開発用。存在しなければ環境変数のみを使用
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("[WARN] failed to load .env: %v", err)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	zl, err := logger.Init(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	if err := run(cfg); err != nil {
		slog.Error("server exited with error", "error", err)
		_ = zl.Sync()
		os.Exit(1)
	}
}

func run(cfg config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ユーザーストア（PostgreSQL / SQLite）
	gdb, err := db.OpenDB(db.Config{
		DatabaseURL:   cfg.DatabaseURL,
		SQLitePath:    cfg.SQLitePath,
		RunMigrations: cfg.RunMigrations,
	})
	if err != nil {
		return err
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		return err
	}
	defer func() { _ = sqlDB.Close() }()

	// 映画カタログ（MongoDB）
	mc, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.MongoURI, Database: cfg.MongoDatabase})
	if err != nil {
		return err
	}
	defer func() {
		if err := mc.Disconnect(context.Background()); err != nil {
			slog.Error("failed to disconnect MongoDB", "error", err)
		}
	}()
	coll := mc.Database(cfg.MongoDatabase).Collection(cfg.MoviesCollection)

	// Redis（任意）
	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword); err != nil {
		slog.Warn("Redis unavailable. Running without cache and rate limiting.", "error", err)
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				slog.Error("failed to close Redis client", "error", err)
			}
		}()
	}

	// Repository
	userRepo := authadapters.NewUserGorm(gdb)
	movieRepo := di.NewMovieRepository(coll, rdb, cfg.CacheTTL, cfg.CacheNamespace)

	// Token
	generator := jwtmw.NewGenerator(cfg.JWTSecret, cfg.JWTTTL)
	verifier := jwtmw.NewVerifier(cfg.JWTSecret)

	// Usecase
	authUC := authusecase.NewAuthUsecase(userRepo, generator, verifier)
	movieUC := movieusecase.NewMovieUsecase(movieRepo)

	// Handler
	authH := authhandler.NewAuthHandler(authUC)
	movieH := moviehandler.NewMovieHandler(movieUC)
	healthH := handler.NewHealthHandler(readinessChecks(sqlDB.PingContext, mongodb.Ping(mc), rdb))

	// ルータ生成
	if !strings.EqualFold(cfg.LogFormat, "console") {
		gin.SetMode(gin.ReleaseMode)
	}
	limiter := di.NewAuthRateLimiter(rdb, cfg.RateLimitNamespace, cfg.AuthRateLimitPerMinute)
	r := router.NewRouter(authH, movieH, healthH, authUC, limiter)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func readinessChecks(usersDB, mongo handler.PingFunc, rdb *redisv9.Client) map[string]handler.Pinger {
	checks := map[string]handler.Pinger{
		"users_db": usersDB,
		"mongo":    mongo,
	}
	if rdb != nil {
		checks["redis"] = handler.PingFunc(func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		})
	}
	return checks
}
