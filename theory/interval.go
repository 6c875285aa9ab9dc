package theory

import (
	"fmt"
	"strconv"
	"strings"
)

// Interval is a signed musical distance: Degree counts letter steps (0 is a
// unison, 4 a fifth), Semitones the chromatic distance. Keeping both is what
// preserves enharmonic spelling: transposing c by a fifth lands on g, not on
// some respelling of the same pitch.
type Interval struct {
	Degree    int
	Semitones int
}

func (iv Interval) Neg() Interval {
	return Interval{Degree: -iv.Degree, Semitones: -iv.Semitones}
}

// canonical spellings for 0..11 ascending semitones.
var canonical = [12]Interval{
	{0, 0},  // P1
	{1, 1},  // m2
	{1, 2},  // M2
	{2, 3},  // m3
	{2, 4},  // M3
	{3, 5},  // P4
	{4, 6},  // d5
	{4, 7},  // P5
	{5, 8},  // m6
	{5, 9},  // M6
	{6, 10}, // m7
	{6, 11}, // M7
}

// FromSemitones maps a signed semitone count to its canonical interval
// (tritones spell as diminished fifths).
func FromSemitones(semitones int) Interval {
	if semitones < 0 {
		return FromSemitones(-semitones).Neg()
	}
	octaves := semitones / 12
	iv := canonical[semitones%12]
	iv.Degree += 7 * octaves
	iv.Semitones += 12 * octaves
	return iv
}

var qualityOffsets = map[byte]map[int]int{
	// offset from the major/perfect semitone count, per quality
	'P': {0: 0, 3: 0, 4: 0},
	'M': {1: 0, 2: 0, 5: 0, 6: 0},
	'm': {1: -1, 2: -1, 5: -1, 6: -1},
	'A': {0: 1, 1: 1, 2: 1, 3: 1, 4: 1, 5: 1, 6: 1},
	'd': {0: -1, 1: -2, 2: -2, 3: -1, 4: -1, 5: -2, 6: -2},
}

// majorSemitones is the semitone count of the major/perfect interval for
// each degree within an octave.
var majorSemitones = [7]int{0, 2, 4, 5, 7, 9, 11}

// ParseInterval reads names like "P5", "m3", "M7", "A4", "d5", "P12", with
// an optional leading '-' for descending intervals.
func ParseInterval(name string) (Interval, error) {
	s := name
	neg := false
	if len(s) > 0 && s[0] == '-' {
		neg = true
		s = s[1:]
	}
	if len(s) < 2 {
		return Interval{}, fmt.Errorf("invalid interval %q", name)
	}
	quality := s[0]
	num, err := strconv.Atoi(s[1:])
	if err != nil || num < 1 {
		return Interval{}, fmt.Errorf("invalid interval %q", name)
	}
	degree := num - 1
	octaves := degree / 7
	within := degree % 7
	offsets, ok := qualityOffsets[quality]
	if !ok {
		return Interval{}, fmt.Errorf("invalid interval quality %q", name)
	}
	offset, ok := offsets[within]
	if !ok {
		return Interval{}, fmt.Errorf("interval %q mixes quality and degree", name)
	}
	iv := Interval{
		Degree:    degree,
		Semitones: majorSemitones[within] + offset + 12*octaves,
	}
	if neg {
		iv = iv.Neg()
	}
	return iv, nil
}

// Transpose moves a note by an interval, keeping scale-correct spelling:
// the letter moves by the interval's degree and the accidental absorbs
// whatever chromatic distance remains.
func Transpose(n Note, iv Interval) Note {
	li := letterIndex(n.Letter) + iv.Degree
	out := Note{
		Letter: letterOrder[mod(li, 7)],
		Octave: n.Octave + floorDiv(li, 7),
	}
	natural := out.MIDI()
	out.Accidental = n.MIDI() + iv.Semitones - natural
	return out
}

// TransposeName is the string-level convenience: parse, transpose, render.
// The letter case of the input is preserved, so a voice written as "C3"
// keeps reading as "G3" after a fifth up.
func TransposeName(name string, iv Interval) (string, error) {
	n, err := ParseNote(name)
	if err != nil {
		return "", err
	}
	out := Transpose(n, iv).Name()
	if name[0] >= 'A' && name[0] <= 'Z' {
		out = strings.ToUpper(out[:1]) + out[1:]
	}
	return out, nil
}

func letterIndex(letter byte) int {
	for i := 0; i < len(letterOrder); i++ {
		if letterOrder[i] == letter {
			return i
		}
	}
	return 0
}
