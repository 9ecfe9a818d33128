package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/palemoky/infinity-box/internal/config"
	"github.com/palemoky/infinity-box/internal/devserver"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "config file path")
	envPath := flag.String("env", ".env", "dotenv file path")
	flag.Parse()

	if err := config.LoadDotEnv(*envPath); err != nil {
		log.Printf("Ignoring env file: %v", err)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Printf("Failed to load config, using defaults: %v", err)
		cfg = config.Default()
	}

	secret := cfg.DevServer.SigningSecret
	if secret == "" {
		secret = uuid.NewString()
		log.Println("No signing secret configured, tokens will not survive a restart")
	}

	limiter := devserver.NewRateLimiter(cfg.DevServer.RatePerSecond, cfg.DevServer.RatePerMinute, cfg.DevServer.RateBanDuration())
	srv := devserver.New(
		devserver.NewLedger(cfg.DevServer.StartingCoins),
		devserver.NewTokenIssuer(secret),
		devserver.WithRateLimiter(limiter),
	)
	httpServer := &http.Server{
		Addr:              cfg.DevServer.ListenAddr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("Shutting down dev server...")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(ctx); err != nil {
			log.Printf("Shutdown error: %v", err)
		}
	}()

	log.Printf("🎰 Dev server listening on %s", cfg.DevServer.ListenAddr)
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("Dev server failed: %v", err)
	}
}
