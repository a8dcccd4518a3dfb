package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"fracture-tutor/config"
	telegram "fracture-tutor/internal/api"
	"fracture-tutor/internal/container"
	"fracture-tutor/internal/domain/port"
	"fracture-tutor/internal/infrastructure/reference"
	"fracture-tutor/internal/infrastructure/storage"
	"fracture-tutor/internal/infrastructure/vision"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("failed to load config")
	}
	log.SetLevel(cfg.LogLevel)

	if cfg.TelegramToken == "" {
		log.Fatal("TELEGRAM_TOKEN is required")
	}

	// Эталон: внешний API, файл с эталоном или пустой статический источник
	var ref port.ReferenceSource
	switch {
	case cfg.ReferenceAPIURL != "":
		ref = reference.NewHTTPSource(cfg.ReferenceAPIURL, cfg.ReferenceAPITimeout, reference.DefaultColor)
		log.WithField("url", cfg.ReferenceAPIURL).Info("using reference API")
	case cfg.ReferenceFixturePath != "":
		fixtures, err := reference.LoadFixtureFile(cfg.ReferenceFixturePath, reference.DefaultColor)
		if err != nil {
			log.WithError(err).Fatal("failed to load reference fixtures")
		}
		ref = fixtures
		log.WithField("path", cfg.ReferenceFixturePath).Info("using reference fixtures")
	default:
		ref = reference.NewStaticSource()
		log.Warn("REFERENCE_API_URL is not set, every image is treated as having no fractures")
	}

	// Хранилища в памяти
	userRepo := storage.NewMemoryUserRepository()
	comparisons := storage.NewMemoryComparisonStore()

	deps := container.Deps{
		Users:       userRepo,
		Inspector:   vision.NewInspector(),
		Reference:   ref,
		Sink:        comparisons,
		Submissions: comparisons,
		Store:       comparisons,
	}
	if vision.OverlayEnabled {
		deps.Renderer = vision.NewGoCVRenderer()
	} else {
		log.Warn("built without gocv tag, comparison overlays are disabled")
	}

	appContainer := container.New(deps, container.Options{
		IoUThreshold:        cfg.IoUThreshold,
		MinBoxSize:          cfg.MinBoxSize,
		RequireFractureType: cfg.RequireFractureType,
	}, log)

	bot, err := telegram.NewBot(cfg.TelegramToken, appContainer, log)
	if err != nil {
		log.WithError(err).Fatal("failed to create bot")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("bot is running")
	if err := bot.Run(ctx); err != nil {
		log.WithError(err).Fatal("bot error")
	}
}
