package ui

import "strings"

// LegendLines lists the keyboard controls shared by the shells.
func LegendLines() []string {
	return []string{
		"Enter  start / resume",
		"Space  pause",
		"N      single step",
		"R      reset to defaults",
		"S      reseed",
		"Left/Right  wind",
		"-/+    probability",
		"H      legend   Q quit",
	}
}

// WrapText breaks s on spaces into lines of at most width runes. Words
// longer than width get a line of their own.
func WrapText(s string, width int) []string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return nil
	}
	if width <= 0 {
		return []string{strings.Join(words, " ")}
	}
	var lines []string
	var b strings.Builder
	n := 0
	for _, w := range words {
		wl := len([]rune(w))
		if n > 0 && n+1+wl > width {
			lines = append(lines, b.String())
			b.Reset()
			n = 0
		}
		if n > 0 {
			b.WriteByte(' ')
			n++
		}
		b.WriteString(w)
		n += wl
	}
	return append(lines, b.String())
}
