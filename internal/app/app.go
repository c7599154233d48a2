//go:build ebiten

package app

import (
	"time"

	"forestfire/internal/core"
	"forestfire/internal/render"
	"forestfire/internal/ui"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const hudWidth = 240

// Game adapts a session to the ebiten.Game interface.
type Game struct {
	session *Session
	painter *render.GridPainter
	hud     *ui.HUD
	overlay *ui.Overlay

	scale int
}

// New constructs a Game for the provided simulation.
func New(sim core.Sim, scale int, interval time.Duration, seed int64, logger *log.Logger) *Game {
	if scale <= 0 {
		scale = 1
	}
	var palette []core.Color
	if p, ok := sim.(core.Paletted); ok {
		palette = p.Palette()
	}
	size := sim.Size()
	return &Game{
		session: NewSession(sim, interval, seed, logger),
		painter: render.NewGridPainter(size.W, size.H, palette),
		hud:     ui.NewHUD(sim, hudWidth),
		overlay: ui.NewOverlay(sim, scale),
		scale:   scale,
	}
}

// Session returns the run controller behind the window.
func (g *Game) Session() *Session { return g.session }

// Update handles per-frame input and advances the simulation on its cadence.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		g.session.Start()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.session.TogglePause()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.session.StepOnce()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.session.Reset(true)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.session.Reseed(time.Now().UnixNano())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyLeft) {
		g.session.Nudge("wind", -1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyRight) {
		g.session.Nudge("wind", 1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadSubtract) {
		g.session.Nudge("probability", -1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadAdd) {
		g.session.Nudge("probability", 1)
	}

	g.overlay.Update()
	g.hud.Update(g.viewWidth())

	g.session.Tick()
	g.hud.SetStatus(g.session.Status()...)
	g.overlay.SetNotice(g.session.Notice())
	return nil
}

// Draw renders the grid, the overlay and the HUD panel.
func (g *Game) Draw(screen *ebiten.Image) {
	g.painter.Blit(screen, g.session.Sim().Cells(), g.scale, 0, 0)
	g.overlay.Draw(screen)
	g.hud.Draw(screen, g.viewWidth(), g.scale)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.session.Sim().Size()
	h := s.H * g.scale
	if h < 320 {
		h = 320
	}
	return g.viewWidth() + g.hud.Width(), h
}

func (g *Game) viewWidth() int {
	return g.session.Sim().Size().W * g.scale
}
