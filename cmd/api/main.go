package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"soulsig/internal/config"
	"soulsig/internal/db"
	apihttp "soulsig/internal/http"
	"soulsig/internal/llm"
	"soulsig/internal/questionbank"
	"soulsig/internal/repository"
	"soulsig/internal/secrets"
	"soulsig/internal/service"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	catalog, err := questionbank.Load()
	if err != nil {
		logger.Fatal("load question banks", zap.Error(err))
	}
	if _, err := catalog.Bank(cfg.DefaultScheme); err != nil {
		logger.Fatal("default scheme not in catalog", zap.String("scheme", cfg.DefaultScheme), zap.Error(err))
	}

	sealKey, err := secrets.ParseKey(cfg.TokenSealKey)
	if err != nil {
		logger.Fatal("parse token seal key", zap.Error(err))
	}
	sealer, err := secrets.NewSealer(sealKey)
	if err != nil {
		logger.Fatal("init token sealer", zap.Error(err))
	}

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		logger.Fatal("db connect", zap.Error(err))
	}
	defer pool.Close()

	profileRepo := repository.NewPgProfileRepository(pool)
	assessmentRepo := repository.NewPgAssessmentRepository(pool)
	evidenceRepo := repository.NewPgEvidenceRepository(pool)
	signatureRepo := repository.NewPgSignatureRepository(pool)
	insightRepo := repository.NewPgInsightRepository(pool)
	connectionRepo := repository.NewPgConnectionRepository(pool)

	llmClient := llm.NewHTTPClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModel, logger)

	resultCache := service.NewMemoryResultCache()
	var insightLimiter service.InsightRateLimiter
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed", zap.Error(err))
		} else {
			resultCache = service.NewRedisResultCache(redisClient)
			insightLimiter = service.NewRedisInsightRateLimiter(redisClient, time.Hour, 1)
		}
		cancel()
	}

	profileSvc := service.NewProfileService(profileRepo, logger)
	signatureSvc := service.NewSignatureService(catalog, signatureRepo, profileRepo, logger)
	assessmentSvc := service.NewAssessmentService(catalog, assessmentRepo, profileRepo, signatureSvc, resultCache, cfg.DefaultScheme, logger)
	evidenceSvc := service.NewEvidenceService(evidenceRepo, profileRepo, assessmentRepo, connectionRepo, nil, cfg.BehavioralWeight, logger)
	insightSvc := service.NewInsightService(insightRepo, profileRepo, assessmentRepo, llmClient, insightLimiter, cfg.LLMModel, logger)
	connectionSvc := service.NewConnectionService(connectionRepo, sealer, logger)

	router := apihttp.NewRouter(
		logger,
		apihttp.NewProfileHandler(logger, profileSvc, assessmentSvc),
		apihttp.NewAssessmentHandler(logger, assessmentSvc),
		apihttp.NewEvidenceHandler(logger, evidenceSvc),
		apihttp.NewSignatureHandler(logger, signatureSvc),
		apihttp.NewInsightHandler(logger, insightSvc),
		apihttp.NewConnectionHandler(logger, connectionSvc),
	)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("starting server", zap.String("port", cfg.HTTPPort))

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server error", zap.Error(err))
	}
}
