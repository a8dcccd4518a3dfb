package config

import (
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"fracture-tutor/internal/domain/entity"
	"fracture-tutor/internal/engine/metrics"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"TELEGRAM_TOKEN", "REFERENCE_API_URL", "REFERENCE_API_TIMEOUT", "REFERENCE_FIXTURES",
		"IOU_THRESHOLD", "MIN_BOX_SIZE", "REQUIRE_FRACTURE_TYPE", "LOG_LEVEL",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 30*time.Second, cfg.ReferenceAPITimeout)
	require.Equal(t, 0.3, cfg.IoUThreshold)
	require.Equal(t, 10.0, cfg.MinBoxSize)
	require.True(t, cfg.RequireFractureType)
	require.Equal(t, logrus.InfoLevel, cfg.LogLevel)
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("TELEGRAM_TOKEN", "token")
	t.Setenv("REFERENCE_API_URL", "http://localhost:8000")
	t.Setenv("REFERENCE_API_TIMEOUT", "2.5")
	t.Setenv("REFERENCE_FIXTURES", "fixtures.json")
	t.Setenv("IOU_THRESHOLD", "0.5")
	t.Setenv("MIN_BOX_SIZE", "4")
	t.Setenv("REQUIRE_FRACTURE_TYPE", "false")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "token", cfg.TelegramToken)
	require.Equal(t, "http://localhost:8000", cfg.ReferenceAPIURL)
	require.Equal(t, 2500*time.Millisecond, cfg.ReferenceAPITimeout)
	require.Equal(t, "fixtures.json", cfg.ReferenceFixturePath)
	require.Equal(t, 0.5, cfg.IoUThreshold)
	require.Equal(t, 4.0, cfg.MinBoxSize)
	require.False(t, cfg.RequireFractureType)
	require.Equal(t, logrus.DebugLevel, cfg.LogLevel)
}

func TestLoad_InvalidValues(t *testing.T) {
	cases := map[string]string{
		"IOU_THRESHOLD":         "high",
		"MIN_BOX_SIZE":          "ten",
		"REFERENCE_API_TIMEOUT": "soon",
		"REQUIRE_FRACTURE_TYPE": "maybe",
		"LOG_LEVEL":             "loud",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(key, value)

			_, err := Load()
			require.Error(t, err)
			require.Contains(t, err.Error(), key)
		})
	}
}

func TestLoad_ThresholdOutOfRange(t *testing.T) {
	clearEnv(t)
	t.Setenv("IOU_THRESHOLD", "1.5")

	_, err := Load()
	require.Error(t, err)
}

func TestLoad_ZeroThresholdReachesCalculator(t *testing.T) {
	clearEnv(t)
	t.Setenv("IOU_THRESHOLD", "0")

	cfg, err := Load()
	require.NoError(t, err)

	calc := metrics.NewCalculator(cfg.IoUThreshold)
	require.Equal(t, 0.0, calc.Threshold())

	res := calc.Compare(
		[]entity.Detection{{ID: "s1", BoundingBox: entity.BoundingBox{Width: 40, Height: 25}}},
		[]entity.Detection{{ID: "a1", BoundingBox: entity.BoundingBox{X: 30, Y: 15, Width: 40, Height: 25}}},
	)
	require.Len(t, res.Matches, 1)
	require.Equal(t, 0.0, res.Metrics.IoUThreshold)
}
