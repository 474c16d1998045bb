package export

import (
	"strings"
	"testing"

	"github.com/san-kum/gravbench/internal/engine"
)

func TestHistoryToSVG(t *testing.T) {
	history := []engine.Sample{
		{Elapsed: 0.5, FPS: 60, Population: 2500},
		{Elapsed: 1.0, FPS: 45, Population: 3500},
		{Elapsed: 1.5, FPS: 30, Population: 3900},
	}

	svg := HistoryToSVG(history, 640, 320)
	if !strings.HasPrefix(svg, `<?xml`) {
		t.Error("missing xml header")
	}
	if !strings.Contains(svg, "<svg") || !strings.Contains(svg, "</svg>") {
		t.Error("not a complete svg document")
	}
	if strings.Count(svg, "<path") != 2 {
		t.Errorf("expected 2 curves, got %d", strings.Count(svg, "<path"))
	}
	if !strings.Contains(svg, "population (max 3900)") {
		t.Error("missing population legend")
	}
}

func TestHistoryToSVGTooShort(t *testing.T) {
	if svg := HistoryToSVG([]engine.Sample{{FPS: 60}}, 640, 320); svg != "" {
		t.Errorf("expected empty string for short history, got %d bytes", len(svg))
	}
	if svg := HistoryToSVG(nil, 640, 320); svg != "" {
		t.Error("expected empty string for nil history")
	}
}
