//go:build ebiten

package ui

import (
	"image/color"

	"forestfire/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

type windProvider interface {
	WindVector() (dx, dy float64)
}

// Overlay draws the wind indicator, the key legend and the completion
// banner on top of the simulation view.
type Overlay struct {
	sim        core.Sim
	scale      int
	showLegend bool
	showWind   bool
	notice     string
}

// NewOverlay constructs a new overlay instance.
func NewOverlay(sim core.Sim, scale int) *Overlay {
	return &Overlay{sim: sim, scale: scale, showWind: true}
}

// SetNotice sets the banner text. An empty string hides the banner.
func (o *Overlay) SetNotice(msg string) { o.notice = msg }

// Update toggles overlay layers from the keyboard.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		o.showLegend = !o.showLegend
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit1) {
		o.showWind = !o.showWind
	}
}

// Draw renders the overlay onto the provided screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	size := o.sim.Size()
	if size.W <= 0 || size.H <= 0 {
		return
	}
	scale := o.scale
	if scale <= 0 {
		scale = 1
	}
	w, h := size.W*scale, size.H*scale
	if o.showWind {
		if provider, ok := o.sim.(windProvider); ok {
			o.drawWind(screen, provider, w)
		}
	}
	if o.showLegend {
		o.drawBlock(screen, LegendLines(), w, 0, color.RGBA{A: 200})
	}
	if o.notice != "" {
		lines := WrapText(o.notice, (w-2*bannerPadding)/glyphWidth)
		top := (h - len(lines)*bannerLineHeight - 2*bannerPadding) / 2
		o.drawBlock(screen, lines, w, top, color.RGBA{R: 20, G: 20, B: 24, A: 220})
	}
}

func (o *Overlay) drawBlock(screen *ebiten.Image, lines []string, width, top int, bg color.RGBA) {
	if len(lines) == 0 {
		return
	}
	height := len(lines)*bannerLineHeight + 2*bannerPadding
	vector.DrawFilledRect(screen, 0, float32(top), float32(width), float32(height), bg, false)
	face := basicfont.Face7x13
	for i, line := range lines {
		y := top + bannerPadding + (i+1)*bannerLineHeight - 4
		text.Draw(screen, line, face, bannerPadding, y, color.RGBA{R: 240, G: 240, B: 240, A: 255})
	}
}

func (o *Overlay) drawWind(screen *ebiten.Image, provider windProvider, width int) {
	dx, dy := provider.WindVector()
	if dx == 0 && dy == 0 {
		return
	}
	const (
		radius = 14
		margin = 8
		head   = 6
	)
	cx := float32(width - margin - radius)
	cy := float32(margin + radius)
	tipX := cx + float32(dx)*radius
	tipY := cy + float32(dy)*radius
	tailX := cx - float32(dx)*radius
	tailY := cy - float32(dy)*radius
	clr := color.RGBA{R: 250, G: 250, B: 255, A: 230}
	vector.DrawFilledCircle(screen, cx, cy, radius+3, color.RGBA{A: 140}, true)
	vector.StrokeLine(screen, tailX, tailY, tipX, tipY, 2, clr, true)
	// Arrow head: two strokes back from the tip, perpendicular spread.
	px, py := float32(-dy), float32(dx)
	vector.StrokeLine(screen, tipX, tipY, tipX-float32(dx)*head+px*head, tipY-float32(dy)*head+py*head, 2, clr, true)
	vector.StrokeLine(screen, tipX, tipY, tipX-float32(dx)*head-px*head, tipY-float32(dy)*head-py*head, 2, clr, true)
}

const (
	bannerPadding    = 10
	bannerLineHeight = 16
	glyphWidth       = 7
)
