package reference

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"fracture-tutor/internal/domain/entity"
	"fracture-tutor/internal/engine/metrics"
)

func TestHTTPSource_Detections(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/detections", r.URL.Path)
		require.Equal(t, "img 1", r.URL.Query().Get("image_id"))
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.Equal(t, "xray", string(body))

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `[
			{"id": 1, "source": "ai", "class_name": "fracture", "fracture_type": "oblique", "confidence": 0.91,
			 "x_min": 10, "y_min": 20, "x_max": 60, "y_max": 80, "width": 50, "height": 60},
			{"id": 2, "source": "student", "class_name": "fracture", "confidence": null,
			 "x_min": 0, "y_min": 0, "x_max": 10, "y_max": 10, "width": 10, "height": 10}
		]`)
	}))
	defer srv.Close()

	src := NewHTTPSource(srv.URL+"/api", time.Second, "")
	dets, err := src.Detections(context.Background(), "img 1", []byte("xray"))
	require.NoError(t, err)
	require.Len(t, dets, 1)
	require.Equal(t, "1", dets[0].ID)
	require.Equal(t, entity.FractureOblique, dets[0].FractureType)
	require.Equal(t, DefaultColor, dets[0].Color)
	require.Equal(t, entity.BoundingBox{X: 10, Y: 20, Width: 50, Height: 60}, dets[0].BoundingBox)
}

func TestHTTPSource_EmptyReferenceSet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `[]`)
	}))
	defer srv.Close()

	dets, err := NewHTTPSource(srv.URL, 0, "#00ff00").Detections(context.Background(), "img", nil)
	require.NoError(t, err)
	require.Empty(t, dets)
}

func TestHTTPSource_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model is warming up", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := NewHTTPSource(srv.URL, time.Second, "").Detections(context.Background(), "img", nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "503")
	require.Contains(t, err.Error(), "model is warming up")
}

func TestHTTPSource_RecordsWithoutIDStayDistinct(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `[
			{"class_name": "spiral", "x_min": 0, "y_min": 0, "x_max": 50, "y_max": 50},
			{"class_name": "spiral", "x_min": 100, "y_min": 100, "x_max": 150, "y_max": 150},
			{"id": "det-7", "class_name": "oblique", "x_min": 200, "y_min": 200, "x_max": 250, "y_max": 250}
		]`)
	}))
	defer srv.Close()

	dets, err := NewHTTPSource(srv.URL, time.Second, "").Detections(context.Background(), "img", nil)
	require.NoError(t, err)
	require.Len(t, dets, 3)
	require.Equal(t, "ai-1", dets[0].ID)
	require.Equal(t, "ai-2", dets[1].ID)
	require.Equal(t, "det-7", dets[2].ID)

	student := []entity.Detection{
		{ID: "s1", BoundingBox: entity.BoundingBox{Width: 50, Height: 50}},
		{ID: "s2", BoundingBox: entity.BoundingBox{X: 100, Y: 100, Width: 50, Height: 50}},
	}
	res := metrics.NewCalculator(0.3).Compare(student, dets)
	require.Len(t, res.Matches, 2)
	require.NotEqual(t, res.Matches[0].AIID, res.Matches[1].AIID)
}

func TestHTTPSource_DuplicateIDs(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `[
			{"id": 4, "x_min": 0, "y_min": 0, "x_max": 50, "y_max": 50},
			{"id": "4", "x_min": 100, "y_min": 100, "x_max": 150, "y_max": 150}
		]`)
	}))
	defer srv.Close()

	_, err := NewHTTPSource(srv.URL, time.Second, "").Detections(context.Background(), "img", nil)
	var verr *entity.ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, []string{"4"}, verr.IDs)
}

func TestHTTPSource_BadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"detections": `)
	}))
	defer srv.Close()

	_, err := NewHTTPSource(srv.URL, time.Second, "").Detections(context.Background(), "img", nil)
	require.ErrorContains(t, err, "decode reference detections")
}

func TestStaticSource(t *testing.T) {
	src := NewStaticSource()
	src.Set("img", []entity.Detection{{ID: "a1"}})

	dets, err := src.Detections(context.Background(), "img", nil)
	require.NoError(t, err)
	require.Len(t, dets, 1)

	dets, err = src.Detections(context.Background(), "other", nil)
	require.NoError(t, err)
	require.Empty(t, dets)
}
