package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/loomlang/loom/pattern"
)

// renderPattern prints the events of the first cycle, one row per onset.
func renderPattern(w io.Writer, pat pattern.Pattern) {
	events := pat.Query(pattern.Arc{Begin: 0, End: 1})
	for _, ev := range events {
		if !ev.HasOnset() {
			continue
		}
		arc := fmt.Sprintf("%.3f-%.3f", ev.Part.Begin, ev.Part.End)
		row := fmt.Sprintf("%s  %s", colorize(arc, colorMagenta), describeVoice(ev.Voice))
		fmt.Fprintln(w, row)
	}
}

func describeVoice(v pattern.Voice) string {
	var parts []string
	if v.Note != "" {
		parts = append(parts, colorize(v.Note, colorGreen))
	}
	if v.Sound != "" {
		name := v.Sound
		if v.Index != nil {
			name = fmt.Sprintf("%s:%d", name, *v.Index)
		}
		parts = append(parts, colorize(name, colorBlue))
	}
	if v.Freq > 0 {
		parts = append(parts, fmt.Sprintf("%.2fHz", v.Freq))
	}
	if v.Gain != nil {
		parts = append(parts, fmt.Sprintf("gain=%.2f", *v.Gain))
	}
	if v.Pan != nil {
		parts = append(parts, fmt.Sprintf("pan=%.2f", *v.Pan))
	}
	for _, f := range v.Filters {
		parts = append(parts, fmt.Sprintf("%s=%.0f", f.Kind, f.Cutoff))
	}
	if len(parts) == 0 {
		return "~"
	}
	return strings.Join(parts, " ")
}

const (
	colorBlack = iota + 30
	colorRed
	colorGreen
	colorYellow
	colorBlue
	colorMagenta
)

func colorize(text string, color int) string {
	return fmt.Sprintf("\033[%dm%s\033[0m", color, text)
}
