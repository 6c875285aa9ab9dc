package theory

import (
	"math"
	"testing"
)

func TestParseNote(t *testing.T) {
	tests := []struct {
		name string
		want Note
	}{
		{"c", Note{Letter: 'c', Octave: 4}},
		{"C", Note{Letter: 'c', Octave: 4}},
		{"c4", Note{Letter: 'c', Octave: 4}},
		{"c#", Note{Letter: 'c', Accidental: 1, Octave: 4}},
		{"cs", Note{Letter: 'c', Accidental: 1, Octave: 4}},
		{"eb3", Note{Letter: 'e', Accidental: -1, Octave: 3}},
		{"F#5", Note{Letter: 'f', Accidental: 1, Octave: 5}},
		{"bbb2", Note{Letter: 'b', Accidental: -2, Octave: 2}},
		{"a0", Note{Letter: 'a', Octave: 0}},
		{"c-1", Note{Letter: 'c', Octave: -1}},
	}
	for _, test := range tests {
		got, err := ParseNote(test.name)
		if err != nil {
			t.Fatalf("ParseNote(%q): %v", test.name, err)
		}
		if got != test.want {
			t.Errorf("ParseNote(%q): want %+v, got %+v", test.name, test.want, got)
		}
	}
}

func TestParseNoteErrors(t *testing.T) {
	for _, name := range []string{"", "h", "c4x", "4", "#"} {
		if _, err := ParseNote(name); err == nil {
			t.Errorf("ParseNote(%q): expected an error", name)
		}
	}
}

func TestMIDI(t *testing.T) {
	tests := []struct {
		name string
		want int
	}{
		{"c4", 60},
		{"c#4", 61},
		{"db4", 61},
		{"a4", 69},
		{"c-1", 0},
		{"g9", 127},
		{"b3", 59},
		{"cb4", 59},
	}
	for _, test := range tests {
		n, err := ParseNote(test.name)
		if err != nil {
			t.Fatal(err)
		}
		if got := n.MIDI(); got != test.want {
			t.Errorf("%q: want MIDI %v, got %v", test.name, test.want, got)
		}
	}
}

func TestName(t *testing.T) {
	for _, name := range []string{"c4", "c#4", "eb3", "bbb2", "a0"} {
		n, err := ParseNote(name)
		if err != nil {
			t.Fatal(err)
		}
		if got := n.Name(); got != name {
			t.Errorf("want %q, got %q", name, got)
		}
	}
}

func TestFreq(t *testing.T) {
	tests := []struct {
		name string
		want float64
	}{
		{"a4", 440},
		{"a3", 220},
		{"a5", 880},
		{"c4", 261.6256},
	}
	for _, test := range tests {
		hz, err := NoteToFreq(test.name)
		if err != nil {
			t.Fatal(err)
		}
		if math.Abs(hz-test.want) > 0.001 {
			t.Errorf("%q: want %v Hz, got %v", test.name, test.want, hz)
		}
	}
}

func TestMIDIFreqRoundTrip(t *testing.T) {
	for midi := 0.0; midi <= 127; midi++ {
		back := FreqToMIDI(MIDIToFreq(midi))
		if math.Abs(back-midi) > 1e-9 {
			t.Fatalf("midi %v: round trip gave %v", midi, back)
		}
	}
}

func TestNearestNote(t *testing.T) {
	tests := []struct {
		hz   float64
		want string
	}{
		{440, "a4"},
		{261.63, "c4"},
		{277.18, "c#4"},
		{329.63, "e4"},
		{349.23, "f4"}, // a natural, not e#
		{369.99, "f#4"},
		{466.16, "a#4"},
		{493.88, "b4"},
	}
	for _, test := range tests {
		if got := NearestNote(test.hz).Name(); got != test.want {
			t.Errorf("NearestNote(%v): want %q, got %q", test.hz, test.want, got)
		}
	}
}
