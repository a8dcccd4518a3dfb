package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type Config struct {
	TelegramToken string

	ReferenceAPIURL      string
	ReferenceAPITimeout  time.Duration
	ReferenceFixturePath string

	IoUThreshold        float64
	MinBoxSize          float64
	RequireFractureType bool

	LogLevel logrus.Level
}

func Load() (*Config, error) {
	// Загружаем .env файл (игнорируем ошибку если файла нет)
	_ = godotenv.Load()

	cfg := &Config{
		TelegramToken:        os.Getenv("TELEGRAM_TOKEN"),
		ReferenceAPIURL:      os.Getenv("REFERENCE_API_URL"),
		ReferenceFixturePath: os.Getenv("REFERENCE_FIXTURES"),
	}

	timeout, err := floatEnv("REFERENCE_API_TIMEOUT", 30)
	if err != nil {
		return nil, err
	}
	cfg.ReferenceAPITimeout = time.Duration(timeout * float64(time.Second))

	if cfg.IoUThreshold, err = floatEnv("IOU_THRESHOLD", 0.3); err != nil {
		return nil, err
	}
	if cfg.IoUThreshold < 0 || cfg.IoUThreshold > 1 {
		return nil, fmt.Errorf("IOU_THRESHOLD must be in [0, 1], got %g", cfg.IoUThreshold)
	}

	if cfg.MinBoxSize, err = floatEnv("MIN_BOX_SIZE", 10); err != nil {
		return nil, err
	}

	if cfg.RequireFractureType, err = boolEnv("REQUIRE_FRACTURE_TYPE", true); err != nil {
		return nil, err
	}

	cfg.LogLevel = logrus.InfoLevel
	if raw := os.Getenv("LOG_LEVEL"); raw != "" {
		if cfg.LogLevel, err = logrus.ParseLevel(raw); err != nil {
			return nil, fmt.Errorf("LOG_LEVEL: %w", err)
		}
	}

	return cfg, nil
}

func floatEnv(key string, def float64) (float64, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return v, nil
}

func boolEnv(key string, def bool) (bool, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return v, nil
}
