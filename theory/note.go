// Package theory provides the note, scale and interval arithmetic the
// pattern language resolves pitches with. Note names are letter + optional
// accidental + optional octave ("c", "eb3", "F#5"); middle C is C4 = MIDI 60
// and A4 = 440 Hz.
package theory

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	// DefaultOctave is assumed when a note name carries no octave number.
	DefaultOctave = 4

	midiA4 = 69
	freqA4 = 440.0
)

var letterOffsets = map[byte]int{
	'c': 0, 'd': 2, 'e': 4, 'f': 5, 'g': 7, 'a': 9, 'b': 11,
}

// letterOrder positions each letter within an octave, for interval math.
const letterOrder = "cdefgab"

// Note is a parsed note name.
type Note struct {
	Letter     byte // 'a'..'g', lower case
	Accidental int  // semitones: ... -1 flat, 0 natural, 1 sharp ...
	Octave     int
}

// ParseNote parses names like "c", "c#", "eb3", "F#5", "bbb2". The letter's
// case is not significant. Accidentals are '#'/'s' for sharp and 'b'/'f'
// for flat and may repeat.
func ParseNote(name string) (Note, error) {
	s := strings.TrimSpace(name)
	if s == "" {
		return Note{}, fmt.Errorf("empty note name")
	}
	letter := lower(s[0])
	if _, ok := letterOffsets[letter]; !ok {
		return Note{}, fmt.Errorf("invalid note name %q", name)
	}
	n := Note{Letter: letter, Octave: DefaultOctave}
	i := 1
	for ; i < len(s); i++ {
		switch lower(s[i]) {
		case '#', 's':
			n.Accidental++
		case 'b', 'f':
			n.Accidental--
		default:
			goto octave
		}
	}
octave:
	if i < len(s) {
		oct, err := strconv.Atoi(s[i:])
		if err != nil {
			return Note{}, fmt.Errorf("invalid note name %q", name)
		}
		n.Octave = oct
	}
	return n, nil
}

// MIDI returns the note's MIDI number (C4 = 60).
func (n Note) MIDI() int {
	return (n.Octave+1)*12 + letterOffsets[n.Letter] + n.Accidental
}

// Name renders the note back to text, with sharps/flats as '#'/'b'.
func (n Note) Name() string {
	var b strings.Builder
	b.WriteByte(n.Letter)
	for i := 0; i < n.Accidental; i++ {
		b.WriteByte('#')
	}
	for i := 0; i > n.Accidental; i-- {
		b.WriteByte('b')
	}
	b.WriteString(strconv.Itoa(n.Octave))
	return b.String()
}

// Freq returns the note's equal-temperament frequency in Hz.
func (n Note) Freq() float64 {
	return MIDIToFreq(float64(n.MIDI()))
}

// NoteToFreq resolves a note name directly to Hz.
func NoteToFreq(name string) (float64, error) {
	n, err := ParseNote(name)
	if err != nil {
		return 0, err
	}
	return n.Freq(), nil
}

// MIDIToFreq converts a (possibly fractional) MIDI number to Hz.
func MIDIToFreq(midi float64) float64 {
	return freqA4 * math.Pow(2, (midi-midiA4)/12)
}

// FreqToMIDI converts Hz to a fractional MIDI number.
func FreqToMIDI(hz float64) float64 {
	return midiA4 + 12*math.Log2(hz/freqA4)
}

// NearestNote returns the note name closest to the given frequency,
// spelling accidentals as sharps. Naturals win over enharmonic
// respellings: pitch class 5 is f, never e#.
func NearestNote(hz float64) Note {
	midi := int(math.Round(FreqToMIDI(hz)))
	octave := midi/12 - 1
	pc := mod(midi, 12)
	for _, letter := range []byte(letterOrder) {
		if letterOffsets[letter] == pc {
			return Note{Letter: letter, Octave: octave}
		}
	}
	for _, letter := range []byte(letterOrder) {
		if letterOffsets[letter]+1 == pc {
			return Note{Letter: letter, Accidental: 1, Octave: octave}
		}
	}
	return Note{Letter: 'c', Octave: octave} // unreachable
}

func lower(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + 'a' - 'A'
	}
	return c
}

func mod(x, n int) int {
	m := x % n
	if m < 0 {
		m += n
	}
	return m
}
