package gui

import (
	"github.com/entropylost/fracture2d/internal/physics"
	"github.com/entropylost/fracture2d/internal/scene"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// toScreen maps a world position to window pixels: unit box centered,
// y up on screen.
func (a *App) toScreen(v physics.Vec2) rl.Vector2 {
	half := float32(windowSize) / 2
	return rl.NewVector2(
		half+float32((v.X-0.5)*a.Scale),
		half-float32((v.Y-0.5)*a.Scale),
	)
}

func (a *App) drawScene() {
	snap := a.Exp.Stepper().Snapshot()
	groups := a.Exp.Scene().Groups

	for i, p := range snap.Particles {
		rl.DrawCircleV(a.toScreen(p.Position), float32(p.Radius*a.Scale), groupColor(groups[i]))
	}

	// Cracks over circles. A crack whose mirrored record also broke just
	// draws the same segment twice.
	for _, p := range snap.Particles {
		from := a.toScreen(p.Position)
		for _, b := range p.Bonds {
			if !b.Broken {
				continue
			}
			to := a.toScreen(snap.Particles[b.Endpoint].Position)
			rl.DrawLineEx(from, to, 3, ColCrack)
		}
	}
}

func groupColor(g int) rl.Color {
	if g == scene.WallGroup {
		return ColWall
	}
	return groupPalette[g%len(groupPalette)]
}
