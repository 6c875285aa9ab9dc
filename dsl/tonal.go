package dsl

import (
	"math"

	"github.com/loomlang/loom/pattern"
	"github.com/loomlang/loom/theory"
)

// DefaultGain is applied exactly once, the first time resolution touches a
// voice, so index- and scale-driven voices are audible without an explicit
// gain call. An explicit gain is never overwritten.
const DefaultGain = 0.8

func withDefaultGain(v pattern.Voice) pattern.Voice {
	if v.Gain == nil {
		return v.WithGain(DefaultGain)
	}
	return v
}

// ResolveNote resolves a voice's pitch. The effective index is the explicit
// argument, else the voice's stored index, else its raw numeric value. With
// both an index and a scale the index steps through the scale to a note
// name; the consumed index and value are cleared so a later unrelated merge
// cannot re-resolve them. An index without a scale is stored as a sample
// index (sound-bank selection, not pitch). Otherwise the voice falls back
// to its note name — or its raw value read as a MIDI number — and derives
// the frequency from that. Resolution never drops a voice: whatever could
// be derived is kept.
func ResolveNote(v pattern.Voice, explicit *int) pattern.Voice {
	var index *int
	switch {
	case explicit != nil:
		index = explicit
	case v.Index != nil:
		index = v.Index
	case v.Value != nil:
		i := int(*v.Value)
		index = &i
	}

	if index != nil && v.Scale != "" {
		if name, ok := scaleStep(v.Scale, *index); ok {
			if hz, err := theory.NoteToFreq(name); err == nil {
				v = v.WithNote(name).WithFreq(hz).ClearIndex().ClearValue()
				return withDefaultGain(v)
			}
		}
		// Unresolvable scale: keep going, the event is still emitted with
		// whatever can be derived below.
	}

	if explicit != nil && v.Scale == "" {
		v = v.WithIndex(*explicit).ClearValue()
		if v.Note != "" {
			if hz, err := theory.NoteToFreq(v.Note); err == nil {
				v = v.WithFreq(hz)
			}
		}
		return withDefaultGain(v)
	}

	if v.Note != "" {
		if hz, err := theory.NoteToFreq(v.Note); err == nil {
			v = v.WithFreq(hz)
		}
		return withDefaultGain(v.ClearValue())
	}
	if v.Value != nil && v.Scale == "" && v.Index == nil {
		midi := *v.Value
		v = v.WithNote(theory.NearestNote(theory.MIDIToFreq(midi)).Name())
		v = v.WithFreq(theory.MIDIToFreq(midi))
		return withDefaultGain(v.ClearValue())
	}
	return withDefaultGain(v)
}

func scaleStep(scale string, index int) (string, bool) {
	steps, err := theory.Steps(scale)
	if err != nil {
		return "", false
	}
	name, err := steps(index)
	if err != nil {
		return "", false
	}
	return name, true
}

// TransposeAmount is the numeric-or-string coercion for transpose amounts:
// a number of semitones is tried first, then a named interval.
type TransposeAmount struct {
	Semitones *float64
	Interval  string
}

// Transpose shifts a voice's pitch. With a note name present the amount is
// converted to a canonical interval and applied by interval arithmetic,
// preserving enharmonic spelling. Without one, the frequency is shifted by
// 2^(semitones/12) and the nearest note name re-derived for display. The
// raw value is consumed either way.
func Transpose(v pattern.Voice, amount TransposeAmount) pattern.Voice {
	iv, ok := amount.interval()
	if !ok {
		// Malformed amount: documented default is no change.
		return withDefaultGain(v.ClearValue())
	}

	if v.Note != "" {
		if name, err := theory.TransposeName(v.Note, iv); err == nil {
			hz, _ := theory.NoteToFreq(name)
			return withDefaultGain(v.WithNote(name).WithFreq(hz).ClearValue())
		}
	}

	if v.Freq > 0 {
		hz := v.Freq * math.Pow(2, float64(iv.Semitones)/12)
		v = v.WithFreq(hz).WithNote(theory.NearestNote(hz).Name())
		return withDefaultGain(v.ClearValue())
	}
	return withDefaultGain(v.ClearValue())
}

func (a TransposeAmount) interval() (theory.Interval, bool) {
	if a.Semitones != nil {
		return theory.FromSemitones(int(*a.Semitones)), true
	}
	if a.Interval != "" {
		if iv, err := theory.ParseInterval(a.Interval); err == nil {
			return iv, true
		}
	}
	return theory.Interval{}, false
}
