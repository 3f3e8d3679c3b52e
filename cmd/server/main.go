package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	"draftforge/internal/app"
	"draftforge/internal/config"
	"draftforge/internal/metrics"
	"draftforge/internal/ratelimit"
	"draftforge/internal/server"
	"draftforge/internal/util"
	"draftforge/pkg/ai"
	"draftforge/pkg/auth"
	"draftforge/pkg/storage"
	"draftforge/pkg/store"
)

func main() {
	// A missing .env is fine; config falls back to config.yaml values.
	_ = godotenv.Load()

	cfg, err := config.Load(config.ConfigPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	logger := util.InitLogger(cfg.LogLevel)

	sessionTTL, err := config.ParseSessionTTL(cfg.SessionTTL)
	if err != nil {
		log.Fatalf("failed to parse session TTL: %v", err)
	}
	jwtLeeway, err := config.ParseJWTLeeway(cfg.JWTLeeway)
	if err != nil {
		log.Fatalf("failed to parse JWT leeway: %v", err)
	}
	sessions, err := store.NewJWTSessionStore(cfg.JWTSecret, sessionTTL, store.JWTOptions{
		Issuer:   cfg.JWTIssuer,
		Audience: cfg.JWTAudience,
		Leeway:   jwtLeeway,
	})
	if err != nil {
		log.Fatalf("failed to init session store: %v", err)
	}

	dataStore, err := store.NewGormStore(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to init postgres store: %v", err)
	}

	generator, err := buildGenerator(cfg)
	if err != nil {
		log.Fatalf("failed to init generators: %v", err)
	}

	var identity auth.IdentityProvider
	if cfg.IdentityProvider == "oidc" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		identity, err = auth.NewOIDCProvider(ctx, cfg.OIDCIssuer, cfg.OIDCClientID, dataStore)
		cancel()
		if err != nil {
			log.Fatalf("failed to init oidc provider: %v", err)
		}
	}

	var archive storage.ObjectStore
	if cfg.ArchiveEnabled {
		archive, err = storage.NewMinioStore(cfg.ArchiveEndpoint, cfg.ArchiveAccessKey, cfg.ArchiveSecretKey, cfg.ArchiveBucket, cfg.ArchiveUseSSL)
		if err != nil {
			log.Fatalf("failed to init export archive: %v", err)
		}
	}

	appCore, err := app.New(app.Config{
		Store:     dataStore,
		Sessions:  sessions,
		Identity:  identity,
		Generator: generator,
		Archive:   archive,
	})
	if err != nil {
		log.Fatalf("failed to init app: %v", err)
	}

	var limiter *ratelimit.FixedWindow
	if cfg.LoginRateLimitPerMinute > 0 {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		limiter, err = ratelimit.NewFixedWindow(client, "", cfg.LoginRateLimitPerMinute, time.Minute)
		if err != nil {
			log.Fatalf("failed to init rate limiter: %v", err)
		}
	}

	metrics.RegisterCollectors(prometheus.DefaultRegisterer)

	httpServer := server.New(server.Config{
		App:     appCore,
		Limiter: limiter,
	})

	addr := ":" + cfg.Port
	srv := &http.Server{
		Addr:         addr,
		Handler:      httpServer.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	slog.Info("draftforge server listening", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server error", "err", err)
	}
}

// buildGenerator wires the primary Gemini model and the optional
// secondary into the single-fallback chain.
func buildGenerator(cfg config.FileConfig) (ai.TextGenerator, error) {
	client, err := ai.NewGeminiClient(cfg.GeminiAPIKey)
	if err != nil {
		return nil, err
	}
	primary := ai.NewGeminiGenerator(client, cfg.GenerationModel)

	var secondary ai.TextGenerator
	switch cfg.FallbackProvider {
	case "openai":
		secondary = ai.NewOpenAICompatGenerator(cfg.FallbackBaseURL, cfg.FallbackAPIKey, cfg.FallbackModel)
	case "ollama":
		secondary = ai.NewOllamaGenerator(cfg.FallbackBaseURL, cfg.FallbackModel)
	}
	return ai.NewFallbackGenerator(primary, secondary), nil
}
