package theory

import (
	"fmt"
	"strings"
)

// Scales are named sets of semitone offsets from the tonic.
var scales = map[string][]int{
	"major":           {0, 2, 4, 5, 7, 9, 11},
	"ionian":          {0, 2, 4, 5, 7, 9, 11},
	"minor":           {0, 2, 3, 5, 7, 8, 10},
	"aeolian":         {0, 2, 3, 5, 7, 8, 10},
	"dorian":          {0, 2, 3, 5, 7, 9, 10},
	"phrygian":        {0, 1, 3, 5, 7, 8, 10},
	"lydian":          {0, 2, 4, 6, 7, 9, 11},
	"mixolydian":      {0, 2, 4, 5, 7, 9, 10},
	"locrian":         {0, 1, 3, 5, 6, 8, 10},
	"harmonicminor":   {0, 2, 3, 5, 7, 8, 11},
	"melodicminor":    {0, 2, 3, 5, 7, 9, 11},
	"majorpentatonic": {0, 2, 4, 7, 9},
	"minorpentatonic": {0, 3, 5, 7, 10},
	"blues":           {0, 3, 5, 6, 7, 10},
	"wholetone":       {0, 2, 4, 6, 8, 10},
	"chromatic":       {0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11},
}

// StepFunc maps a scale index to a note name. Indexes beyond the scale wrap
// into neighboring octaves; negative indexes step below the tonic.
type StepFunc func(index int) (string, error)

// Steps resolves a scale name of the form "tonic:mode" (e.g. "C:major",
// "a3:minor") or a bare mode name (tonic C). Returned note names keep the
// tonic's spelling and case convention for the letter: an octave number is
// only attached when the tonic carried one or the index leaves the tonic's
// octave.
func Steps(scaleName string) (StepFunc, error) {
	tonicName, mode := "c", strings.TrimSpace(scaleName)
	if i := strings.IndexAny(mode, ":@"); i >= 0 {
		tonicName, mode = strings.TrimSpace(mode[:i]), strings.TrimSpace(mode[i+1:])
	}
	steps, ok := scales[normalizeMode(mode)]
	if !ok {
		return nil, fmt.Errorf("unknown scale %q", mode)
	}
	tonic, err := ParseNote(tonicName)
	if err != nil {
		return nil, fmt.Errorf("scale %q: %w", scaleName, err)
	}
	explicitOctave := strings.IndexAny(tonicName, "0123456789") >= 0
	upper := tonicName != "" && tonicName[0] >= 'A' && tonicName[0] <= 'Z'

	return func(index int) (string, error) {
		octaves := floorDiv(index, len(steps))
		degree := mod(index, len(steps))
		var iv Interval
		if len(steps) == 7 {
			// Diatonic scales spell degree k on the k-th letter above the
			// tonic; others fall back to the canonical spelling for the
			// semitone distance.
			iv = Interval{Degree: degree + 7*octaves, Semitones: steps[degree] + 12*octaves}
		} else {
			iv = FromSemitones(steps[degree] + 12*octaves)
		}
		note := Transpose(tonic, iv)
		name := note.Name()
		if !explicitOctave && note.Octave == tonic.Octave {
			name = strings.TrimRight(name, "-0123456789")
		}
		if upper {
			name = strings.ToUpper(name[:1]) + name[1:]
		}
		return name, nil
	}, nil
}

func normalizeMode(mode string) string {
	mode = strings.ToLower(mode)
	mode = strings.ReplaceAll(mode, " ", "")
	mode = strings.ReplaceAll(mode, "_", "")
	return mode
}

func floorDiv(x, n int) int {
	q := x / n
	if x%n != 0 && (x < 0) != (n < 0) {
		q--
	}
	return q
}
