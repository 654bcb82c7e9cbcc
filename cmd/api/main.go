package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/yourusername/quiz-pwa/internal/config"
	"github.com/yourusername/quiz-pwa/internal/domain/repository"
	"github.com/yourusername/quiz-pwa/internal/handler"
	"github.com/yourusername/quiz-pwa/internal/middleware"
	memoryRepo "github.com/yourusername/quiz-pwa/internal/repository/memory"
	pgRepo "github.com/yourusername/quiz-pwa/internal/repository/postgres"
	redisRepo "github.com/yourusername/quiz-pwa/internal/repository/redis"
	"github.com/yourusername/quiz-pwa/internal/repository/static"
	"github.com/yourusername/quiz-pwa/internal/service"
	"github.com/yourusername/quiz-pwa/internal/service/quizmanager"
	"github.com/yourusername/quiz-pwa/pkg/database"
)

func main() {
	// Загружаем конфигурацию
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}
	log.Printf("Загрузка конфигурации из %s", configPath)

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Printf("Failed to load config: %v", err)
		os.Exit(1)
	}

	isProduction := os.Getenv("GIN_MODE") == "release"
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Redis нужен как хранилище или как бэкенд rate limiter
	var redisClient redis.UniversalClient
	if cfg.Storage.Driver == config.StorageRedis || (cfg.RateLimit.Enabled && cfg.Redis.IsConfigured()) {
		redisClient, err = database.NewUniversalRedisClient(ctx, cfg.Redis)
		if err != nil {
			if cfg.Storage.Driver == config.StorageRedis {
				log.Printf("Failed to connect to Redis: %v", err)
				os.Exit(1)
			}
			log.Printf("Warning: Redis unavailable, rate limiting disabled: %v", err)
			redisClient = nil
		} else {
			log.Println("Successfully connected to Redis")
			defer redisClient.Close()
		}
	}

	// Хранилище ключей
	var store repository.KeyValueStore
	switch cfg.Storage.Driver {
	case config.StorageRedis:
		store, err = redisRepo.NewKVStore(redisClient)
		if err != nil {
			log.Printf("Failed to initialize Redis KV store: %v", err)
			os.Exit(1)
		}
	case config.StoragePostgres:
		db, err := database.NewPostgresDB(cfg.Database.PostgresConnectionString(), !isProduction)
		if err != nil {
			log.Printf("Failed to connect to database: %v", err)
			os.Exit(1)
		}
		if err := database.MigrateDB(db, cfg.Database.MigrationsPath); err != nil {
			log.Printf("Failed to migrate database: %v", err)
			os.Exit(1)
		}
		if sqlDB, err := db.DB(); err == nil {
			defer sqlDB.Close()
		}
		store = pgRepo.NewKVStore(db)
	default:
		log.Println("Using in-memory storage: history is lost on restart")
		store = memoryRepo.NewKVStore()
	}

	// Каталог вопросов
	questionRepo, err := static.LoadQuestionRepo(cfg.Quiz.QuestionsPath)
	if err != nil {
		log.Printf("Failed to load questions: %v", err)
		os.Exit(1)
	}

	sessions := service.NewSessionFactory(
		questionRepo,
		store,
		cfg.Storage.KeyPrefix,
		cfg.Quiz.QuizManagerConfig(),
		quizmanager.NewLockedRandom(cfg.Quiz.Seed),
	)
	log.Printf("Question selector strategy: %s", sessions.Strategy())

	quizHandler := handler.NewQuizHandler(sessions)
	historyHandler := handler.NewHistoryHandler(sessions)

	var answerLimiter gin.HandlerFunc
	if cfg.RateLimit.Enabled && redisClient != nil {
		limitCfg := middleware.DefaultAnswerRateLimitConfig()
		limitCfg.MaxRequests = cfg.RateLimit.MaxRequests
		limitCfg.Window = time.Duration(cfg.RateLimit.WindowSec) * time.Second
		limitCfg.KeyPrefix = cfg.Storage.KeyPrefix + limitCfg.KeyPrefix
		answerLimiter = middleware.NewRateLimiter(redisClient).Limit(limitCfg)
	}

	router := gin.Default()

	// В production не доверяем прокси-заголовкам, в development доверяем localhost
	trustedProxies := []string{"127.0.0.1", "::1"}
	if isProduction {
		trustedProxies = nil
	}
	if err := router.SetTrustedProxies(trustedProxies); err != nil {
		log.Printf("Warning: failed to set trusted proxies: %v", err)
	}

	corsConfig := cors.Config{
		AllowOrigins:  cfg.CORS.AllowOrigins,
		AllowMethods:  []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", middleware.ClientIDHeader},
		ExposeHeaders: []string{"Content-Length", "Content-Disposition", middleware.ClientIDHeader, "Retry-After"},
		MaxAge:        12 * time.Hour,
	}
	if len(corsConfig.AllowOrigins) == 0 {
		// Пустой список в cors.New вызывает panic
		corsConfig.AllowAllOrigins = true
	}
	router.Use(cors.New(corsConfig))

	handler.RegisterRoutes(router, quizHandler, historyHandler, answerLimiter)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		log.Printf("Starting server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Failed to start server: %v", err)
			cancel()
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case <-ctx.Done():
	}
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
		os.Exit(1)
	}

	log.Println("Server exited properly")
}
