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

	"github.com/redis/go-redis/v9"

	"github.com/sreemonkavungal/BurgerByte/internal/cache"
	"github.com/sreemonkavungal/BurgerByte/internal/events"
	"github.com/sreemonkavungal/BurgerByte/internal/httpapi"
	"github.com/sreemonkavungal/BurgerByte/internal/metrics"
	"github.com/sreemonkavungal/BurgerByte/internal/repository"
	"github.com/sreemonkavungal/BurgerByte/internal/service"
)

type Config struct {
	HTTPPort        string
	MongoURI        string
	MongoDatabase   string
	RedisAddr       string
	KafkaBrokers    string
	KafkaTopic      string
	JWTSecret       string
	TokenExpiry     time.Duration
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

func loadConfig() *Config {
	return &Config{
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		MongoURI:        getEnv("MONGODB_URI", "mongodb://localhost:27017"),
		MongoDatabase:   getEnv("MONGODB_DATABASE", "burgerbyte"),
		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		KafkaBrokers:    getEnv("KAFKA_BROKERS", ""),
		KafkaTopic:      getEnv("KAFKA_TOPIC", "order-events"),
		JWTSecret:       getEnv("JWT_SECRET", "dev-secret-change-me"),
		TokenExpiry:     24 * time.Hour,
		RequestTimeout:  30 * time.Second,
		ShutdownTimeout: 10 * time.Second,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func main() {
	cfg := loadConfig()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	db, err := repository.ConnectMongoDB(ctx, cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		log.Fatalf("failed to connect to MongoDB: %v", err)
	}
	defer func() {
		disconnectCtx, disconnectCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer disconnectCancel()
		if err := db.Client().Disconnect(disconnectCtx); err != nil {
			log.Printf("failed to disconnect from MongoDB: %v", err)
		}
	}()

	if err := repository.EnsureIndexes(ctx, db); err != nil {
		log.Fatalf("failed to create indexes: %v", err)
	}

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatalf("failed to ping Redis: %v", err)
	}
	defer redisClient.Close()

	var publisher events.Publisher = events.NopPublisher{}
	if cfg.KafkaBrokers != "" {
		kafkaPublisher := events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher
		log.Printf("publishing order events to %s (topic %s)", cfg.KafkaBrokers, cfg.KafkaTopic)
	} else {
		log.Println("KAFKA_BROKERS not set, order events disabled")
	}

	userRepo := repository.NewMongoUserRepository(db)
	productRepo := repository.NewMongoProductRepository(db)
	categoryRepo := repository.NewMongoCategoryRepository(db)
	orderRepo := repository.NewMongoOrderRepository(db)
	cartCache := cache.NewRedisCache(redisClient)

	router := httpapi.NewRouter(httpapi.RouterDeps{
		Auth:           service.NewAuthService(userRepo, cfg.JWTSecret, cfg.TokenExpiry),
		Cart:           service.NewCartService(userRepo, productRepo, cartCache),
		Orders:         service.NewOrderService(orderRepo, productRepo, publisher),
		Reports:        service.NewReportService(orderRepo),
		Users:          service.NewUserService(userRepo, productRepo),
		Catalog:        service.NewCatalogService(productRepo, categoryRepo),
		Metrics:        metrics.NewServerMetrics("api"),
		RequestTimeout: cfg.RequestTimeout,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("BurgerByte API starting on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("server exited")
}
