package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/gravbench/internal/engine"
)

// HistoryToSVG renders the fps history of a run as a polyline chart, with the
// population curve overlaid on its own scale. Returns "" for histories too
// short to chart.
func HistoryToSVG(history []engine.Sample, width, height int) string {
	if len(history) < 2 {
		return ""
	}

	maxFPS := 0.0
	maxPop := 0
	for _, s := range history {
		if s.FPS > maxFPS {
			maxFPS = s.FPS
		}
		if s.Population > maxPop {
			maxPop = s.Population
		}
	}
	if maxFPS == 0 {
		maxFPS = 1
	}
	if maxPop == 0 {
		maxPop = 1
	}
	// Headroom so the curves don't touch the frame.
	maxFPS *= 1.1

	first := history[0].Elapsed
	last := history[len(history)-1].Elapsed
	span := last - first
	if span == 0 {
		span = 1
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	writeLine := func(color string, value func(engine.Sample) float64) {
		sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="M`, color))
		for i, s := range history {
			x := (s.Elapsed - first) / span * float64(width)
			y := float64(height) - value(s)*float64(height)
			if i == 0 {
				sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
			} else {
				sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
			}
		}
		sb.WriteString("\"/>\n")
	}

	writeLine("#00ff88", func(s engine.Sample) float64 { return s.FPS / maxFPS })
	writeLine("#ff8800", func(s engine.Sample) float64 { return float64(s.Population) / float64(maxPop) })

	sb.WriteString(fmt.Sprintf(`<text x="8" y="16" fill="#00ff88" font-family="monospace" font-size="12">fps (max %.1f)</text>
<text x="8" y="32" fill="#ff8800" font-family="monospace" font-size="12">population (max %d)</text>
</svg>`, maxFPS/1.1, maxPop))

	return sb.String()
}
