package theory

import "testing"

func TestParseInterval(t *testing.T) {
	tests := []struct {
		name string
		want Interval
	}{
		{"P1", Interval{0, 0}},
		{"m2", Interval{1, 1}},
		{"M2", Interval{1, 2}},
		{"m3", Interval{2, 3}},
		{"M3", Interval{2, 4}},
		{"P4", Interval{3, 5}},
		{"A4", Interval{3, 6}},
		{"d5", Interval{4, 6}},
		{"P5", Interval{4, 7}},
		{"M7", Interval{6, 11}},
		{"P8", Interval{7, 12}},
		{"P12", Interval{11, 19}},
		{"-P5", Interval{-4, -7}},
		{"-m3", Interval{-2, -3}},
	}
	for _, test := range tests {
		got, err := ParseInterval(test.name)
		if err != nil {
			t.Fatalf("ParseInterval(%q): %v", test.name, err)
		}
		if got != test.want {
			t.Errorf("ParseInterval(%q): want %+v, got %+v", test.name, test.want, got)
		}
	}
}

func TestParseIntervalErrors(t *testing.T) {
	for _, name := range []string{"", "5", "P", "X5", "P3", "m4", "P0", "-"} {
		if _, err := ParseInterval(name); err == nil {
			t.Errorf("ParseInterval(%q): expected an error", name)
		}
	}
}

func TestFromSemitones(t *testing.T) {
	tests := []struct {
		semitones int
		want      Interval
	}{
		{0, Interval{0, 0}},
		{6, Interval{4, 6}}, // tritone spells as a diminished fifth
		{7, Interval{4, 7}},
		{12, Interval{7, 12}},
		{14, Interval{8, 14}},
		{-7, Interval{-4, -7}},
	}
	for _, test := range tests {
		if got := FromSemitones(test.semitones); got != test.want {
			t.Errorf("FromSemitones(%v): want %+v, got %+v", test.semitones, test.want, got)
		}
	}
}

func TestTranspose(t *testing.T) {
	tests := []struct {
		note     string
		interval string
		want     string
	}{
		{"c4", "P5", "g4"},
		{"c4", "M3", "e4"},
		{"e4", "m3", "g4"},
		{"b3", "m2", "c4"},
		{"c4", "P8", "c5"},
		{"c4", "-P5", "f3"},
		{"f#4", "P5", "c#5"},
		{"bb3", "M3", "d4"},
		// Spelling follows the degree: a major third above eb is g, but an
		// augmented second above eb is f#, the same pitch spelled differently.
		{"eb4", "M3", "g4"},
		{"eb4", "A2", "f#4"},
		{"c4", "d5", "gb4"},
		{"c4", "A4", "f#4"},
	}
	for _, test := range tests {
		iv, err := ParseInterval(test.interval)
		if err != nil {
			t.Fatal(err)
		}
		n, err := ParseNote(test.note)
		if err != nil {
			t.Fatal(err)
		}
		if got := Transpose(n, iv).Name(); got != test.want {
			t.Errorf("%s + %s: want %q, got %q", test.note, test.interval, test.want, got)
		}
	}
}

func TestTransposeRoundTrip(t *testing.T) {
	notes := []string{"c4", "f#3", "eb5", "a0", "bb2"}
	intervals := []string{"m2", "M2", "m3", "M3", "P4", "d5", "P5", "M7", "P8", "P12"}
	for _, name := range notes {
		n, _ := ParseNote(name)
		for _, ivName := range intervals {
			iv, _ := ParseInterval(ivName)
			back := Transpose(Transpose(n, iv), iv.Neg())
			if back != n {
				t.Errorf("%s + %s - %s: got %+v", name, ivName, ivName, back)
			}
		}
	}
}

func TestTransposeName(t *testing.T) {
	tests := []struct {
		note     string
		interval string
		want     string
	}{
		{"c3", "P5", "g3"},
		{"C3", "P5", "G3"},
		{"C3", "-P5", "F2"},
		{"a4", "M3", "c#5"},
	}
	for _, test := range tests {
		iv, err := ParseInterval(test.interval)
		if err != nil {
			t.Fatal(err)
		}
		got, err := TransposeName(test.note, iv)
		if err != nil {
			t.Fatal(err)
		}
		if got != test.want {
			t.Errorf("%s + %s: want %q, got %q", test.note, test.interval, test.want, got)
		}
	}
}
