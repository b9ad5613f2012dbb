package gui

import (
	"fmt"

	"github.com/entropylost/fracture2d/internal/audio"
	"github.com/entropylost/fracture2d/internal/experiment"
	rl "github.com/gen2brain/raylib-go/raylib"
)

const windowSize = 800

// Scene colors on a white background, cracks in black
var (
	ColBg      = rl.NewColor(255, 255, 255, 255)
	ColCrack   = rl.NewColor(0, 0, 0, 255)
	ColWall    = rl.NewColor(158, 158, 158, 255)
	ColText    = rl.NewColor(80, 80, 80, 255)
	ColTextDim = rl.NewColor(170, 170, 170, 255)
	ColAlert   = rl.NewColor(198, 40, 40, 255)

	groupPalette = []rl.Color{
		rl.NewColor(46, 125, 50, 255),
		rl.NewColor(21, 101, 192, 255),
		rl.NewColor(239, 108, 0, 255),
		rl.NewColor(106, 27, 154, 255),
		rl.NewColor(198, 40, 40, 255),
	}
)

type App struct {
	Exp      *experiment.Experiment
	Running  bool
	Diverged bool
	Scale    float64
	Font     rl.Font

	// Audio
	Audio      *audio.Processor
	lastBroken int
}

func initWindow(fps float64) {
	rl.InitWindow(windowSize, windowSize, "fracture2d")
	rl.SetTargetFPS(int32(fps))
	rl.SetExitKey(0)
}

func loadFont() rl.Font {
	font := rl.LoadFontEx("/usr/share/fonts/liberation/LiberationMono-Regular.ttf", 32, nil, 0)
	rl.SetTextureFilter(font.Texture, rl.FilterBilinear)
	return font
}

// NewApp wraps a built experiment for windowed playback. With sound enabled
// it starts the crack sonification stream; failure to open one degrades to
// a silent session.
func NewApp(exp *experiment.Experiment, sound bool) *App {
	app := &App{
		Exp:     exp,
		Running: true,
		Scale:   exp.Config().RenderScale,
		Font:    loadFont(),
	}

	if sound {
		proc := audio.NewProcessor()
		if err := proc.Start(); err != nil {
			fmt.Printf("sound unavailable, continuing silent: %v\n", err)
		} else {
			app.Audio = proc
		}
	}

	return app
}

// Run opens the window, steps the experiment one frame batch per display
// frame, and blocks until the window closes.
func Run(exp *experiment.Experiment, sound bool) {
	initWindow(exp.Config().FPS)
	defer rl.CloseWindow()
	app := NewApp(exp, sound)
	app.RunLoop()
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() {
		if rl.IsKeyPressed(rl.KeyQ) || rl.IsKeyPressed(rl.KeyEscape) {
			break
		}
		a.Update()
		a.Draw()
	}
	if a.Audio != nil {
		a.Audio.Stop()
	}
}

func (a *App) Update() {
	if rl.IsKeyPressed(rl.KeySpace) && !a.Diverged {
		a.Running = !a.Running
	}
	if rl.IsKeyPressed(rl.KeyR) {
		if err := a.Exp.Reset(); err == nil {
			a.Running = true
			a.Diverged = false
			a.lastBroken = 0
		}
	}

	if !a.Running {
		return
	}

	st := a.Exp.Stepper()
	st.Frame()
	w := st.World()

	// Freeze on divergence. The HUD flags it; R rebuilds.
	if !w.IsValid() {
		a.Running = false
		a.Diverged = true
		return
	}

	if a.Audio != nil && a.Audio.Active {
		broken := w.BrokenBondCount()
		a.Audio.ReportBreaks(broken - a.lastBroken)
		a.Audio.SetEnergy(w.KineticEnergy())
		a.lastBroken = broken
	}
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)

	a.drawScene()
	a.DrawHUD()

	rl.EndDrawing()
}

func (a *App) DrawHUD() {
	st := a.Exp.Stepper()
	w := st.World()

	a.drawText("fracture2d", 20, 16, 24, ColText)
	a.drawText(fmt.Sprintf(":: %s", a.Exp.Config().Scene), 170, 21, 16, ColTextDim)

	status := "RUNNING"
	col := ColText
	if a.Diverged {
		status = "DIVERGED"
		col = ColAlert
	} else if !a.Running {
		status = "PAUSED"
		col = ColTextDim
	}
	a.drawText(status, 690, 16, 16, col)

	if a.Audio != nil && a.Audio.Active {
		a.drawText("SND [ON]", 690, 40, 14, ColTextDim)
	}

	a.drawText(fmt.Sprintf("%d FPS", int32(rl.GetFPS())), 20, 712, 14, ColTextDim)
	a.drawText(fmt.Sprintf("t=%.4fs  dt=%.2e  sub-step %d", st.Time(), st.Dt(), st.Step()), 20, 736, 14, ColText)
	a.drawText(fmt.Sprintf("damage %.1f%%  broken %d/%d  kinetic %.3f",
		w.Damage()*100, w.BrokenBondCount(), w.BondCount(), w.KineticEnergy()), 20, 760, 14, ColText)
	a.drawText("[SPACE] PAUSE  [R] RESET  [Q] QUIT", 520, 760, 14, ColTextDim)
}

func (a *App) drawText(text string, x, y int, size int, color rl.Color) {
	rl.DrawTextEx(a.Font, text, rl.NewVector2(float32(x), float32(y)), float32(size), 1, color)
}
