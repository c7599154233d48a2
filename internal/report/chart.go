package report

import (
	"errors"
	"fmt"
	"io"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"forestfire/internal/run"
	"forestfire/internal/sims/forestfire"
)

// ErrNotEnoughData is returned when a chart would have no range to plot.
var ErrNotEnoughData = errors.New("report: not enough data to chart")

func seriesColor(s forestfire.State) drawing.Color {
	c := forestfire.Palette()[s]
	return drawing.Color{R: c.R, G: c.G, B: c.B, A: c.A}
}

var windColors = map[forestfire.Direction]drawing.Color{
	forestfire.North: {R: 40, G: 90, B: 200, A: 255},
	forestfire.South: {R: 200, G: 60, B: 40, A: 255},
	forestfire.East:  {R: 40, G: 160, B: 80, A: 255},
	forestfire.West:  {R: 150, G: 80, B: 180, A: 255},
}

func intTick(v interface{}) string {
	if f, ok := v.(float64); ok {
		return fmt.Sprintf("%d", int(f))
	}
	return ""
}

// WriteHistoryChart renders untouched/burning/scorched counts per step as PNG.
func WriteHistoryChart(w io.Writer, res run.Result) error {
	if len(res.History) < 2 {
		return ErrNotEnoughData
	}
	steps := make([]float64, len(res.History))
	untouched := make([]float64, len(res.History))
	burning := make([]float64, len(res.History))
	scorched := make([]float64, len(res.History))
	for i, s := range res.History {
		steps[i] = float64(s.Step)
		untouched[i] = float64(s.Untouched)
		burning[i] = float64(s.Burning)
		scorched[i] = float64(s.Scorched)
	}

	graph := chart.Chart{
		Title:  fmt.Sprintf("Fire p=%.2f wind=%s seed=%d", res.Config.Probability, res.Config.Wind.Short(), res.Config.Seed),
		Width:  720,
		Height: 400,
		Background: chart.Style{
			Padding: chart.Box{Top: 48, Left: 16, Right: 16, Bottom: 16},
		},
		XAxis: chart.XAxis{Name: "step", ValueFormatter: intTick},
		YAxis: chart.YAxis{Name: "cells", ValueFormatter: intTick},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "untouched",
				XValues: steps,
				YValues: untouched,
				Style:   chart.Style{StrokeColor: seriesColor(forestfire.Untouched), StrokeWidth: 3},
			},
			chart.ContinuousSeries{
				Name:    "burning",
				XValues: steps,
				YValues: burning,
				Style:   chart.Style{StrokeColor: seriesColor(forestfire.Burning), StrokeWidth: 3},
			},
			chart.ContinuousSeries{
				Name:    "scorched",
				XValues: steps,
				YValues: scorched,
				Style:   chart.Style{StrokeColor: seriesColor(forestfire.Scorched), StrokeWidth: 3},
			},
		},
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}
	return graph.Render(chart.PNG, w)
}

// WriteSweepChart plots mean scorched percentage against probability, one
// line per wind direction.
func WriteSweepChart(w io.Writer, points []run.SweepPoint) error {
	byWind := map[forestfire.Direction]*chart.ContinuousSeries{}
	for _, pt := range points {
		s, ok := byWind[pt.Wind]
		if !ok {
			s = &chart.ContinuousSeries{
				Name:  "wind " + pt.Wind.Short(),
				Style: chart.Style{StrokeColor: windColors[pt.Wind], StrokeWidth: 2, DotWidth: 3, DotColor: windColors[pt.Wind]},
			}
			byWind[pt.Wind] = s
		}
		s.XValues = append(s.XValues, pt.Probability)
		s.YValues = append(s.YValues, 100*pt.MeanScorched)
	}

	var series []chart.Series
	for _, d := range forestfire.Directions() {
		s, ok := byWind[d]
		if !ok {
			continue
		}
		if len(s.XValues) < 2 {
			return ErrNotEnoughData
		}
		series = append(series, *s)
	}
	if len(series) == 0 {
		return ErrNotEnoughData
	}

	graph := chart.Chart{
		Title:  "Mean area burned",
		Width:  720,
		Height: 400,
		Background: chart.Style{
			Padding: chart.Box{Top: 48, Left: 16, Right: 16, Bottom: 16},
		},
		XAxis:  chart.XAxis{Name: "probability"},
		YAxis:  chart.YAxis{Name: "% scorched"},
		Series: series,
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}
	return graph.Render(chart.PNG, w)
}
