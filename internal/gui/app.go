package gui

import (
	"fmt"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"

	"github.com/san-kum/ballsim/internal/dynamo"
	"github.com/san-kum/ballsim/internal/physics"
	"github.com/san-kum/ballsim/internal/render"
	"github.com/san-kum/ballsim/internal/selection"
	"github.com/san-kum/ballsim/internal/sim"
)

const (
	buttonW = 64
	buttonH = 26
)

type Options struct {
	FPS    int
	Title  string
	Logger *zap.Logger
}

// App owns the session for the lifetime of the window. Everything runs on
// the goroutine that called Run, which raylib requires anyway.
type App struct {
	Session    *sim.Session
	Running    bool
	Telemetry  []float64 // kinetic energy per frame
	MaxHistory int
	Font       rl.Font

	surface *Surface
	buttons []selection.Button
	quit    bool
	log     *zap.Logger
}

func initWindow(bounds dynamo.Bounds, fps int, title string) {
	rl.InitWindow(int32(bounds.Width), int32(bounds.Height), title)
	rl.SetTargetFPS(int32(fps))
	rl.SetExitKey(0)
}

func NewApp(s *sim.Session, log *zap.Logger) *App {
	if log == nil {
		log = zap.NewNop()
	}
	return &App{
		Session:    s,
		Running:    true,
		Telemetry:  make([]float64, 0, 200),
		MaxHistory: 200,
		Font:       rl.GetFontDefault(),
		surface:    NewSurface(s.Bounds()),
		log:        log,
	}
}

// Run opens a window the size of the session bounds and blocks until it is
// closed or Q is pressed.
func Run(s *sim.Session, opts Options) error {
	if opts.FPS <= 0 {
		return fmt.Errorf("gui: fps must be positive, got %d", opts.FPS)
	}
	title := opts.Title
	if title == "" {
		title = "ballsim"
	}
	initWindow(s.Bounds(), opts.FPS, title)
	defer rl.CloseWindow()

	app := NewApp(s, opts.Logger)
	app.log.Info("window opened",
		zap.Float64("width", s.Bounds().Width),
		zap.Float64("height", s.Bounds().Height),
		zap.Int("fps", opts.FPS))
	app.RunLoop()
	app.log.Info("window closed", zap.Int("ticks", s.Tick()))
	return nil
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() && !a.quit {
		a.Update()
		a.Draw()
	}
}

// Update applies keyboard and mouse input for this frame.
func (a *App) Update() {
	if rl.IsKeyPressed(rl.KeyQ) {
		a.quit = true
		return
	}
	if rl.IsKeyPressed(rl.KeySpace) {
		a.Running = !a.Running
	}
	if rl.IsKeyPressed(rl.KeyR) {
		a.Session.Reset()
		a.Telemetry = a.Telemetry[:0]
	}
	if rl.IsKeyPressed(rl.KeyEscape) {
		a.Session.Dismiss()
	}
	for n, key := range []int32{rl.KeyOne, rl.KeyTwo, rl.KeyThree} {
		if rl.IsKeyPressed(key) {
			if c, ok := selection.PaletteIndex(n + 1); ok {
				a.Session.CommitColor(c)
			}
		}
	}

	m := rl.GetMousePosition()
	p := dynamo.Vec2{X: float64(m.X), Y: float64(m.Y)}
	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		if c, ok := selection.HitButton(a.buttons, p); ok {
			a.Session.CommitColor(c)
		} else {
			a.Session.PointerDown(p)
		}
	}
	if d := rl.GetMouseDelta(); d.X != 0 || d.Y != 0 {
		a.Session.PointerMove(p)
	}

	a.buttons = a.buttons[:0]
	if ov, ok := a.Session.Overlay(); ok {
		a.buttons = ov.Layout(buttonW, buttonH, a.Session.Bounds())
	}
}

// Draw runs one physics tick when not paused and paints the frame.
func (a *App) Draw() {
	rl.BeginDrawing()
	if a.Running {
		a.Session.Frame(a.surface)
		a.Telemetry = append(a.Telemetry, physics.KineticEnergy(a.Session.Balls()))
		if len(a.Telemetry) > a.MaxHistory {
			a.Telemetry = a.Telemetry[1:]
		}
	} else {
		render.Frame(a.surface, a.Session.Balls())
	}
	a.drawMenu()
	a.DrawHUD()
	rl.EndDrawing()
}

func (a *App) drawMenu() {
	for _, b := range a.buttons {
		x, y := int32(b.X), int32(b.Y)
		rl.DrawRectangle(x, y, buttonW, buttonH, BallColor(b.Color))
		rl.DrawRectangleLines(x, y, buttonW, buttonH, colHighlight)
		label := strings.ToUpper(string(b.Color)[:1]) + string(b.Color)[1:]
		a.drawText(label, int(x)+8, int(y)+6, 14, colHighlight)
	}
}

func (a *App) DrawHUD() {
	a.drawText("ballsim", 16, 12, 20, colHighlight)

	status, col := "RUNNING", colHighlight
	if !a.Running {
		status, col = "PAUSED", colDim
	}
	w := int(a.Session.Bounds().Width)
	h := int(a.Session.Bounds().Height)
	a.drawText(status, w-100, 14, 16, col)
	a.drawText(fmt.Sprintf("tick %d", a.Session.Tick()), w-100, 34, 14, colText)

	a.DrawTelemetry(16, h-80)
	a.drawText("[SPACE] PAUSE  [R] RESET  [1-3] COLOR  [ESC] CLOSE  [Q] QUIT", w-470, h-20, 12, colDim)
	a.drawText(fmt.Sprintf("%d FPS", int32(rl.GetFPS())), 16, h-20, 12, colDim)
}

func (a *App) drawText(text string, x, y int, size int, color rl.Color) {
	rl.DrawTextEx(a.Font, text, rl.NewVector2(float32(x), float32(y)), float32(size), 1, color)
}

// DrawTelemetry plots the energy history as a line strip in a 200x40 box.
func (a *App) DrawTelemetry(rectX, rectY int) {
	if len(a.Telemetry) < 2 {
		return
	}
	width, height := 200, 40

	minVal, maxVal := a.Telemetry[0], a.Telemetry[0]
	for _, v := range a.Telemetry {
		minVal = min(minVal, v)
		maxVal = max(maxVal, v)
	}
	if maxVal == minVal {
		maxVal = minVal + 1
	}

	points := make([]rl.Vector2, len(a.Telemetry))
	for i, val := range a.Telemetry {
		px := float32(rectX) + (float32(i)/float32(len(a.Telemetry)))*float32(width)
		norm := (val - minVal) / (maxVal - minVal)
		py := float32(rectY+height) - float32(norm)*float32(height)
		points[i] = rl.NewVector2(px, py)
	}

	rl.DrawLineStrip(points, colTrace)
	a.drawText(fmt.Sprintf("E: %.2f", a.Telemetry[len(a.Telemetry)-1]), rectX+width+10, rectY+height-10, 12, colText)
}
