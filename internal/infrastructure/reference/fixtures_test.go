package reference

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"fracture-tutor/internal/domain/entity"
)

func TestLoadFixtures(t *testing.T) {
	src, err := LoadFixtures(strings.NewReader(`{
		"img-1": [
			{"id": 1, "class_name": "spiral", "confidence": 0.9, "x_min": 10, "y_min": 10, "x_max": 60, "y_max": 50},
			{"source": "student", "x_min": 0, "y_min": 0, "x_max": 10, "y_max": 10},
			{"class_name": "oblique", "x_min": 100, "y_min": 100, "x_max": 120, "y_max": 130}
		],
		"img-2": []
	}`), "")
	require.NoError(t, err)

	dets, err := src.Detections(context.Background(), "img-1", nil)
	require.NoError(t, err)
	require.Len(t, dets, 2)
	require.Equal(t, "1", dets[0].ID)
	require.Equal(t, entity.FractureSpiral, dets[0].FractureType)
	require.Equal(t, DefaultColor, dets[0].Color)
	require.Equal(t, "ai-3", dets[1].ID)
	require.Equal(t, entity.BoundingBox{X: 100, Y: 100, Width: 20, Height: 30}, dets[1].BoundingBox)

	dets, err = src.Detections(context.Background(), "img-2", nil)
	require.NoError(t, err)
	require.Empty(t, dets)
}

func TestLoadFixtures_DuplicateIDs(t *testing.T) {
	_, err := LoadFixtures(strings.NewReader(`{"img": [{"id": "a"}, {"id": "a"}]}`), "")
	var verr *entity.ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestLoadFixtureFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fixtures.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"img": [{"id": 5, "x_min": 1, "y_min": 1, "x_max": 30, "y_max": 30}]}`), 0o600))

	src, err := LoadFixtureFile(path, "#00ff00")
	require.NoError(t, err)
	dets, err := src.Detections(context.Background(), "img", nil)
	require.NoError(t, err)
	require.Len(t, dets, 1)
	require.Equal(t, "#00ff00", dets[0].Color)

	_, err = LoadFixtureFile(filepath.Join(t.TempDir(), "missing.json"), "")
	require.Error(t, err)
}
