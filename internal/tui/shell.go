// Package tui runs a simulation session in a terminal using tcell.
package tui

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"time"

	"forestfire/internal/app"
	"forestfire/internal/core"
	"forestfire/internal/sims/forestfire"
	"forestfire/internal/ui"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"
)

var (
	styleDefault = tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite)
	styleHeader  = styleDefault.Foreground(tcell.ColorAqua).Bold(true)
	styleStatus  = styleDefault.Foreground(tcell.ColorSilver)
	styleLegend  = styleDefault.Foreground(tcell.ColorGray)
	styleNotice  = styleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorWhite)
)

// DefaultFrame is the redraw period of the terminal shell.
const DefaultFrame = 100 * time.Millisecond

// Shell draws a session onto a tcell screen and maps keys to session
// controls. Each grid cell takes two columns so the board stays square.
type Shell struct {
	screen  tcell.Screen
	session *app.Session
	logger  *log.Logger
	frame   time.Duration

	glyphs     []rune
	styles     []tcell.Style
	showLegend bool
}

// New returns a shell for an initialised screen.
func New(screen tcell.Screen, session *app.Session, logger *log.Logger) *Shell {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	sh := &Shell{
		screen:  screen,
		session: session,
		logger:  logger,
		frame:   DefaultFrame,
		glyphs:  forestfire.Glyphs,

		showLegend: true,
	}
	if p, ok := session.Sim().(core.Paletted); ok {
		for _, c := range p.Palette() {
			sh.styles = append(sh.styles, styleDefault.Foreground(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))))
		}
	}
	return sh
}

// SetFrame changes the redraw period.
func (sh *Shell) SetFrame(d time.Duration) {
	if d > 0 {
		sh.frame = d
	}
}

// Run polls the session cadence and screen events until the user quits or
// ctx is cancelled.
func (sh *Shell) Run(ctx context.Context) error {
	events := make(chan tcell.Event)
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			ev := sh.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	ticker := time.NewTicker(sh.frame)
	defer ticker.Stop()

	sh.Draw()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-events:
			if !sh.HandleEvent(ev) {
				sh.logger.Debug("terminal shell closed")
				return nil
			}
			sh.Draw()
		case <-ticker.C:
			sh.session.Tick()
			sh.Draw()
		}
	}
}

// HandleEvent applies a screen event. It returns false when the user asked
// to quit.
func (sh *Shell) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		sh.screen.Sync()
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyEnter:
			sh.session.Start()
		case tcell.KeyLeft:
			sh.session.Nudge("wind", -1)
		case tcell.KeyRight:
			sh.session.Nudge("wind", 1)
		case tcell.KeyRune:
			return sh.handleRune(ev.Rune())
		}
	}
	return true
}

func (sh *Shell) handleRune(r rune) bool {
	switch r {
	case 'q', 'Q':
		return false
	case ' ':
		sh.session.TogglePause()
	case 'h', 'H':
		sh.showLegend = !sh.showLegend
	case 'n', 'N':
		sh.session.StepOnce()
	case 'r', 'R':
		sh.session.Reset(true)
	case 's', 'S':
		sh.session.Reseed(time.Now().UnixNano())
	case '-', '_':
		sh.session.Nudge("probability", -1)
	case '+', '=':
		sh.session.Nudge("probability", 1)
	}
	return true
}

// Draw repaints the grid, the run settings, the legend and any notice.
func (sh *Shell) Draw() {
	sh.screen.Clear()
	sim := sh.session.Sim()
	size := sim.Size()
	cells := sim.Cells()
	for y := 0; y < size.H; y++ {
		for x := 0; x < size.W; x++ {
			v := int(cells[y*size.W+x])
			sh.screen.SetContent(2*x, y, sh.glyph(v), nil, sh.style(v))
		}
	}

	row := size.H + 1
	drawText(sh.screen, 0, row, styleHeader, fmt.Sprintf("%s controls", sim.Name()))
	row++
	for _, line := range sh.settingLines() {
		drawText(sh.screen, 0, row, styleStatus, line)
		row++
	}
	for _, line := range sh.session.Status() {
		drawText(sh.screen, 0, row, styleStatus, line)
		row++
	}

	if sh.showLegend {
		legendX := 2*size.W + 3
		for i, line := range ui.LegendLines() {
			drawText(sh.screen, legendX, i, styleLegend, line)
		}
	}

	if notice := sh.session.Notice(); notice != "" {
		w, _ := sh.screen.Size()
		row++
		for _, line := range ui.WrapText(notice, w) {
			drawText(sh.screen, 0, row, styleNotice, line)
			row++
		}
	}
	sh.screen.Show()
}

func (sh *Shell) settingLines() []string {
	provider, ok := sh.session.Sim().(core.ParameterProvider)
	if !ok {
		return nil
	}
	var controls []core.ParameterControl
	if cp, ok := sh.session.Sim().(core.ParameterControlsProvider); ok {
		controls = cp.ParameterControls()
	}
	var lines []string
	for _, g := range provider.Parameters().Groups {
		for _, p := range g.Params {
			lines = append(lines, fmt.Sprintf("%s: %s", p.Label, displayValue(p, controls)))
		}
	}
	return lines
}

func displayValue(p core.Parameter, controls []core.ParameterControl) string {
	if p.Type != core.ParamTypeChoice {
		return p.Value
	}
	for _, c := range controls {
		if c.Key != p.Key {
			continue
		}
		if idx, err := strconv.Atoi(p.Value); err == nil && idx >= 0 && idx < len(c.Choices) {
			return c.Choices[idx]
		}
	}
	return p.Value
}

func (sh *Shell) glyph(v int) rune {
	if v >= 0 && v < len(sh.glyphs) {
		return sh.glyphs[v]
	}
	return '?'
}

func (sh *Shell) style(v int) tcell.Style {
	if v >= 0 && v < len(sh.styles) {
		return sh.styles[v]
	}
	return styleDefault
}

func drawText(s tcell.Screen, x, y int, style tcell.Style, text string) {
	for _, r := range text {
		s.SetContent(x, y, r, nil, style)
		x++
	}
}
