package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/RanjithMathi/freshto-gateway/internal/address"
	"github.com/RanjithMathi/freshto-gateway/internal/auth"
	"github.com/RanjithMathi/freshto-gateway/internal/backend"
	"github.com/RanjithMathi/freshto-gateway/internal/cart"
	"github.com/RanjithMathi/freshto-gateway/internal/catalog"
	"github.com/RanjithMathi/freshto-gateway/internal/checkout"
	"github.com/RanjithMathi/freshto-gateway/internal/httpapi"
	"github.com/RanjithMathi/freshto-gateway/internal/order"
	"github.com/RanjithMathi/freshto-gateway/internal/session"
)

type Config struct {
	HTTPPort        string
	BackendBaseURL  string
	RedisAddr       string
	RedisPassword   string
	KafkaBrokers    string
	RequestTimeout  time.Duration
	BackendTimeout  time.Duration
	ShutdownTimeout time.Duration
}

func loadConfig() *Config {
	return &Config{
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		BackendBaseURL:  getEnv("BACKEND_BASE_URL", "http://localhost:3000/api"),
		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:   getEnv("REDIS_PASSWORD", ""),
		KafkaBrokers:    getEnv("KAFKA_BROKERS", ""),
		RequestTimeout:  30 * time.Second,
		BackendTimeout:  10 * time.Second,
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

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	defer redisClient.Close()

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		cancel()
		log.Fatalf("Failed to connect to redis: %v", err)
	}
	cancel()

	sessions := session.NewRedisStore(redisClient)
	api := backend.NewClient(cfg.BackendBaseURL, cfg.BackendTimeout)
	authSvc := auth.NewService(auth.NewClient(api), sessions)

	// A 401/403 from the backend tears the session down, forcing a fresh
	// login instead of repeated failing calls.
	api.OnAuthFailure(func(ctx context.Context) {
		token := backend.TokenFrom(ctx)
		if token == "" {
			return
		}
		expireCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		authSvc.Expire(expireCtx, token)
	})

	cartStore := cart.NewStore()
	cartStore.SetNotifier(func(customerID int64, n cart.Notice) {
		log.Printf("cart notice: customer=%d %s", customerID, n.Message)
	})

	addressStore := address.NewStore(address.NewClient(api))
	orderClient := order.NewClient(api)
	orderStore := order.NewStore()
	manager := checkout.NewManager(cartStore, addressStore, orderClient, orderStore)

	handlers := httpapi.Handlers{
		Auth:     httpapi.NewAuthHandler(authSvc),
		Products: httpapi.NewProductHandler(catalog.NewClient(api)),
		Cart:     httpapi.NewCartHandler(cartStore, catalog.NewClient(api)),
		Address:  httpapi.NewAddressHandler(addressStore),
		Checkout: httpapi.NewCheckoutHandler(manager),
		Orders:   httpapi.NewOrdersHandler(orderClient, orderStore),
	}
	router := httpapi.NewRouter(handlers, authSvc, cfg.RequestTimeout)

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	consumerCtx, stopConsumer := context.WithCancel(context.Background())
	var wg sync.WaitGroup

	if cfg.KafkaBrokers != "" {
		consumer := order.NewConsumer(orderStore, strings.Split(cfg.KafkaBrokers, ",")...)
		wg.Add(1)
		go func() {
			defer wg.Done()
			log.Printf("order status consumer starting, brokers=%s", cfg.KafkaBrokers)
			consumer.Run(consumerCtx)
			consumer.Close()
		}()
	}

	go func() {
		log.Printf("Storefront gateway starting on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server...")
	stopConsumer()

	ctx, cancelShutdown := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancelShutdown()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}
	wg.Wait()

	log.Println("server exited")
}
