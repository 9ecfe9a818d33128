package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/palemoky/infinity-box/internal/api"
	"github.com/palemoky/infinity-box/internal/auth"
	"github.com/palemoky/infinity-box/internal/config"
	"github.com/palemoky/infinity-box/internal/economy"
	"github.com/palemoky/infinity-box/internal/logger"
	"github.com/palemoky/infinity-box/internal/sound"
	"github.com/palemoky/infinity-box/internal/storage"
	"github.com/palemoky/infinity-box/internal/ui"
	"github.com/palemoky/infinity-box/internal/ui/model"
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

	if err := logger.Init(cfg.Log.Dir); err != nil {
		log.Printf("Failed to initialize log file: %v", err)
	}
	defer logger.Close()

	backend, err := storage.Open(cfg.Storage)
	if err != nil {
		log.Fatalf("Failed to open session storage: %v", err)
	}
	defer func() { _ = backend.Close() }()

	engine := economy.NewEngine(
		api.NewClient(cfg.Server.BaseURL, cfg.Server.RequestTimeoutDuration()),
		storage.NewSessionStore(backend, cfg.Storage.SessionKey),
		auth.NewTokenSource(cfg.Auth.Token, cfg.Auth.TokenFile),
		economy.Options{
			Policy:           economy.PolicyFromConfig(cfg.Economy),
			AutosaveInterval: cfg.Economy.AutosaveIntervalDuration(),
		},
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	engine.StartAutosave(ctx)

	var sounds model.Sounds
	if cfg.UI.Sound {
		mgr := sound.NewManager(cfg.UI.SoundDir)
		go func() {
			if err := mgr.Init(); err != nil {
				logger.LogError("Sound disabled: %v", err)
			}
		}()
		defer mgr.Close()
		sounds = mgr
	}

	p := tea.NewProgram(ui.NewArcadeModel(ctx, engine, sounds), tea.WithAltScreen())
	_, runErr := p.Run()

	shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
	defer stop()
	engine.Close(shutdownCtx)

	if runErr != nil {
		logger.LogError("Client exited with error: %v", runErr)
		fmt.Fprintf(os.Stderr, "Error running client: %v\n", runErr)
		os.Exit(1)
	}
}
