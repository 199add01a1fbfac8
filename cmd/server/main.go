package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"media_backend/internal/app/di"
	"media_backend/internal/app/router"
	authadapters "media_backend/internal/feature/auth/adapters"
	authhandler "media_backend/internal/feature/auth/transport/handler"
	authusecase "media_backend/internal/feature/auth/usecase"
	"media_backend/internal/platform/config"
	platformdb "media_backend/internal/platform/db"
	platformhttp "media_backend/internal/platform/http"
	jwtmw "media_backend/internal/platform/jwt"
	platformredis "media_backend/internal/platform/redis"
	"media_backend/internal/platform/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	if cfg.JWTSecret == "" {
		slog.Warn("JWT_SECRET is not set. Set a strong secret in production.")
	}

	// db
	db := platformdb.OpenDB(cfg)

	// Redis (optional; sessions fall back to MySQL without it)
	var rdb *redisv9.Client
	if addr := cfg.RedisAddr(); addr != "" {
		if tmp, err := platformredis.NewRedisClient(addr, cfg.RedisPassword, cfg.RedisDB); err != nil {
			slog.Warn("Redis unavailable, sessions stored in MySQL", "error", err)
		} else {
			rdb = tmp
			defer func() {
				if err := rdb.Close(); err != nil {
					slog.Error("failed to close Redis client", "error", err)
				}
			}()
		}
	}

	// media host
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	uploader, err := storage.NewS3Uploader(ctx, storage.Config{
		Region:          cfg.S3Region,
		BaseEndpoint:    cfg.S3Endpoint,
		Bucket:          cfg.S3Bucket,
		AccessKeyID:     cfg.S3AccessKey,
		SecretAccessKey: cfg.S3SecretKey,
		PublicBaseURL:   cfg.S3PublicBaseURL,
	}, platformhttp.NewHTTPClient(cfg.S3Timeout))
	cancel()
	if err != nil {
		slog.Error("failed to initialize media storage", "error", err)
		os.Exit(1)
	}

	// Repository
	userRepo := authadapters.NewUserMySQL(db)
	sessionRepo := di.NewSessionRepository(rdb, db)

	// Usecase
	tokens := jwtmw.NewGenerator(cfg.JWTSecret, cfg.AccessTokenTTL)
	authUC := authusecase.NewAuthUsecase(userRepo, sessionRepo, uploader, tokens, authusecase.Config{
		AccessTokenTTL:     cfg.AccessTokenTTL,
		RefreshTokenTTL:    cfg.RefreshTokenTTL,
		MaxSessionsPerUser: cfg.MaxSessionsPerUser,
	})

	// Handler
	authH := authhandler.NewAuthHandler(authUC, authhandler.Options{
		TempDir:         cfg.UploadTempDir,
		CookieSecure:    cfg.CookieSecure,
		RefreshTokenTTL: cfg.RefreshTokenTTL,
	})

	r := router.NewRouter(authH, jwtmw.MiddlewareConfig{
		Secret:               cfg.JWTSecret,
		VerifyIdentityExists: cfg.VerifyIdentityExists,
		Users:                userRepo,
	})

	if err := r.Run(cfg.HTTPAddr); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
