package export

import (
	"fmt"
	"os"
	"strings"

	"github.com/entropylost/fracture2d/internal/physics"
	"github.com/entropylost/fracture2d/internal/scene"
)

// palette matches the interactive renderers: one color per scene block,
// cycling when a scene has more blocks than colors.
var palette = []string{"#2e7d32", "#1565c0", "#ef6c00", "#6a1b9a", "#c62828"}

const wallColor = "#9e9e9e"

// SnapshotSVG renders particles as filled circles and broken bonds as black
// crack lines. The unit box maps to a scale x scale image with y flipped to
// point up.
func SnapshotSVG(snap *physics.Snapshot, groups []int, scale float64) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#ffffff"/>
`, scale, scale, scale, scale))

	maxGroup := -1
	for _, g := range groups {
		if g > maxGroup {
			maxGroup = g
		}
	}

	for g := scene.WallGroup; g <= maxGroup; g++ {
		var circles strings.Builder
		for i := range snap.Particles {
			if groups[i] != g {
				continue
			}
			p := &snap.Particles[i]
			circles.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f"/>`+"\n",
				p.Position.X*scale, scale-p.Position.Y*scale, p.Radius*scale))
		}
		if circles.Len() == 0 {
			continue
		}
		sb.WriteString(fmt.Sprintf("<g fill=%q>\n", groupColor(g)))
		sb.WriteString(circles.String())
		sb.WriteString("</g>\n")
	}

	var lines strings.Builder
	for i := range snap.Particles {
		p := &snap.Particles[i]
		for _, b := range p.Bonds {
			if !b.Broken {
				continue
			}
			// When both directed records broke, the lower index draws the
			// crack once.
			if i > b.Endpoint && mirrorBroken(snap, i, b.Endpoint) {
				continue
			}
			q := &snap.Particles[b.Endpoint]
			lines.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f"/>`+"\n",
				p.Position.X*scale, scale-p.Position.Y*scale,
				q.Position.X*scale, scale-q.Position.Y*scale))
		}
	}
	if lines.Len() > 0 {
		sb.WriteString("<g stroke=\"#000000\" stroke-width=\"3\">\n")
		sb.WriteString(lines.String())
		sb.WriteString("</g>\n")
	}

	sb.WriteString("</svg>\n")
	return sb.String()
}

// WriteSVG renders a snapshot straight to a file.
func WriteSVG(path string, snap *physics.Snapshot, groups []int, scale float64) error {
	return os.WriteFile(path, []byte(SnapshotSVG(snap, groups, scale)), 0644)
}

func groupColor(g int) string {
	if g == scene.WallGroup {
		return wallColor
	}
	return palette[g%len(palette)]
}

func mirrorBroken(snap *physics.Snapshot, owner, endpoint int) bool {
	for _, b := range snap.Particles[endpoint].Bonds {
		if b.Endpoint == owner {
			return b.Broken
		}
	}
	return false
}
