package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/gemforge/pricing-service/internal/services"
	transporthttp "github.com/gemforge/pricing-service/internal/transport/http"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}

func run() error {
	ctx := context.Background()

	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found, using system environment")
	}

	config := loadConfig()

	log.Printf("Starting Pricing Service...")
	log.Printf("Spanner Database: %s", config.SpannerDB)
	log.Printf("HTTP Port: %s", config.HTTPPort)

	serviceOpts, err := services.NewServiceOptions(ctx, config.SpannerDB)
	if err != nil {
		return fmt.Errorf("failed to initialize service: %w", err)
	}
	defer serviceOpts.Close()

	router := transporthttp.NewRouter(
		serviceOpts.PricingHandler,
		serviceOpts.CouponHandler,
		serviceOpts.AdminHandler,
	)

	httpServer := &http.Server{
		Addr:    ":" + config.HTTPPort,
		Handler: router,
	}

	go func() {
		log.Printf("HTTP server listening on :%s", config.HTTPPort)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("HTTP server error: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	log.Println("Shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}

	return nil
}

// Config holds application configuration.
type Config struct {
	SpannerDB string
	HTTPPort  string
}

// loadConfig loads configuration from environment variables with defaults.
func loadConfig() Config {
	spannerDB := os.Getenv("SPANNER_DATABASE")
	if spannerDB == "" {
		// Default for local development with emulator
		spannerDB = "projects/test-project/instances/dev-instance/databases/pricing-db"
	}

	httpPort := os.Getenv("HTTP_PORT")
	if httpPort == "" {
		httpPort = "8080"
	}

	return Config{
		SpannerDB: spannerDB,
		HTTPPort:  httpPort,
	}
}
