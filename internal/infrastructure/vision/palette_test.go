package vision

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"

	"fracture-tutor/internal/domain/entity"
)

func TestParseColor(t *testing.T) {
	require.Equal(t, color.RGBA{R: 0x3b, G: 0x82, B: 0xf6, A: 0xff}, ParseColor("#3b82f6", AIColor))
	require.Equal(t, color.RGBA{R: 0xff, G: 0x00, B: 0x00, A: 0xff}, ParseColor("#f00", AIColor))
	require.Equal(t, AIColor, ParseColor("red", AIColor))
	require.Equal(t, StudentColor, ParseColor("", StudentColor))
}

func TestDetectionColor_FallbackBySource(t *testing.T) {
	require.Equal(t, AIColor, DetectionColor(entity.Detection{Source: entity.SourceAI}))
	require.Equal(t, StudentColor, DetectionColor(entity.Detection{Source: entity.SourceStudent}))
	require.Equal(t, color.RGBA{R: 0x10, G: 0x20, B: 0x30, A: 0xff},
		DetectionColor(entity.Detection{Source: entity.SourceAI, Color: "#102030"}))
}

func TestTextColor(t *testing.T) {
	white := color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	black := color.RGBA{A: 0xff}
	require.Equal(t, white, TextColor(StudentColor))
	require.Equal(t, black, TextColor(color.RGBA{R: 0xfa, G: 0xfa, B: 0xd2, A: 0xff}))
}

func TestLabelText(t *testing.T) {
	conf := 0.876
	require.Equal(t, "spiral 88%", LabelText(entity.Detection{FractureType: entity.FractureSpiral, Label: "fracture", Confidence: &conf}))
	require.Equal(t, "Student #1", LabelText(entity.Detection{Label: "Student #1"}))
}
