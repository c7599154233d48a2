package report

import (
	"fmt"
	"image/png"
	"io"
	"text/tabwriter"

	"forestfire/internal/render"
	"forestfire/internal/run"
	"forestfire/internal/sims/forestfire"
)

// Completion is the notice shown when a run ends.
func Completion(cycles int) string {
	return fmt.Sprintf("The simulation has completed. It took %d simulation cycles for the fire to go out.", cycles)
}

// WriteSummary prints a one-run report.
func WriteSummary(w io.Writer, res run.Result) error {
	_, err := fmt.Fprintf(w, "%s\nsize=%d probability=%.2f wind=%s seed=%d steps=%d scorched=%d (%.1f%%) untouched=%d\n",
		Completion(res.Cycles), res.Config.Size, res.Config.Probability, res.Config.Wind, res.Config.Seed,
		res.Steps, res.Scorched, 100*res.ScorchedFraction(), res.Untouched)
	return err
}

// WriteSweepTable prints sweep points as an aligned table.
func WriteSweepTable(w io.Writer, points []run.SweepPoint) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "probability\twind\truns\tmean steps\tmin\tmax\tscorched %\t")
	for _, pt := range points {
		fmt.Fprintf(tw, "%.2f\t%s\t%d\t%.2f\t%d\t%d\t%.1f\t\n",
			pt.Probability, pt.Wind.Short(), pt.Runs, pt.MeanSteps, pt.MinSteps, pt.MaxSteps, 100*pt.MeanScorched)
	}
	return tw.Flush()
}

// WriteFramePNG writes the forest's current state as a PNG.
func WriteFramePNG(w io.Writer, f *forestfire.Forest, scale int) error {
	vals := f.Values(nil)
	img := render.Image(vals, f.Size(), f.Size(), scale, gap(scale), forestfire.Palette(), gutter)
	return png.Encode(w, img)
}

// WriteASCII draws the forest with one glyph per cell.
func WriteASCII(w io.Writer, f *forestfire.Forest) error {
	vals := f.Values(nil)
	n := f.Size()
	line := make([]rune, 0, 2*n)
	for row := 0; row < n; row++ {
		line = line[:0]
		for col := 0; col < n; col++ {
			if col > 0 {
				line = append(line, ' ')
			}
			line = append(line, forestfire.Glyphs[vals[row*n+col]])
		}
		if _, err := fmt.Fprintln(w, string(line)); err != nil {
			return err
		}
	}
	return nil
}
