package dsl

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/loomlang/loom/mini"
	"github.com/loomlang/loom/pattern"
	"github.com/loomlang/loom/theory"
)

// control describes one value parameter of the vocabulary: how a token
// becomes a control voice, how a raw pattern value is shaped into one, and
// how control data merges into source data.
type control struct {
	name    string
	aliases []string
	atom    mini.AtomFactory
	lift    func(pattern.Voice) pattern.Voice
	combine pattern.CombineFunc
}

// declareControl turns one control description into all three call shapes.
// The free function builds a standalone control pattern; the methods merge
// the control into their receiver, taking the constant fast path for plain
// number and bool literals.
func declareControl(c control) {
	method := func(recv pattern.Pattern, args Args) (pattern.Pattern, error) {
		arg := args.At(0)
		if arg.IsAbsent() {
			return recv, nil
		}
		if arg.IsLiteral() && !arg.IsString() {
			v, err := arg.Voice(c.atom)
			if err != nil {
				// A bad parameter must not silence the pattern.
				return recv, nil
			}
			return pattern.AppControlValue(recv, v, c.combine), nil
		}
		ctrl, err := arg.Pattern(c.atom, c.lift)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", c.name, err)
		}
		return pattern.AppControl(recv, ctrl, c.combine), nil
	}

	fn := func(args Args) (pattern.Pattern, error) {
		arg := args.At(0)
		if arg.IsAbsent() {
			return pattern.Silence, nil
		}
		if arg.IsLiteral() && !arg.IsString() {
			v, err := arg.Voice(c.atom)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", c.name, err)
			}
			return pattern.Pure(v), nil
		}
		pat, err := arg.Pattern(c.atom, c.lift)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", c.name, err)
		}
		return pat, nil
	}

	declare(c.name, fn, method)
	for _, a := range c.aliases {
		alias(a, c.name)
	}
}

// numericControl wires a parameter whose atoms are plain numbers applied
// through a field setter.
func numericControl(name string, set func(pattern.Voice, float64) pattern.Voice, aliases ...string) control {
	return control{
		name:    name,
		aliases: aliases,
		atom: func(token string) (pattern.Voice, error) {
			f, err := strconv.ParseFloat(token, 64)
			if err != nil {
				return pattern.Voice{}, fmt.Errorf("%s: not a number: %q", name, token)
			}
			return set(pattern.Voice{}, f), nil
		},
		lift: func(v pattern.Voice) pattern.Voice {
			if v.Value == nil {
				return v
			}
			return set(pattern.Voice{}, *v.Value)
		},
	}
}

// paramControl wires a numeric effect parameter stored in the voice's
// param map under key.
func paramControl(name, key string, aliases ...string) control {
	return numericControl(name, func(v pattern.Voice, f float64) pattern.Voice {
		return v.WithParam(key, f)
	}, aliases...)
}

func filterControl(name, kind string, aliases ...string) control {
	return numericControl(name, func(v pattern.Voice, f float64) pattern.Voice {
		return v.WithFilter(pattern.Filter{Kind: kind, Cutoff: f})
	}, aliases...)
}

func declareControls() {
	// Pitch and sound selection.
	declareControl(control{
		name: "note",
		atom: NoteFactory,
		lift: liftNote,
		combine: func(src, ctl pattern.Voice) pattern.Voice {
			return withDefaultGain(src.Merge(ctl))
		},
	})
	declareControl(control{
		name: "n",
		atom: mini.NumberFactory,
		combine: func(src, ctl pattern.Voice) pattern.Voice {
			if ctl.Value == nil && ctl.Index == nil {
				return src
			}
			index := ctl.Index
			if index == nil {
				i := int(*ctl.Value)
				index = &i
			}
			return ResolveNote(src, index)
		},
	})
	declareControl(control{
		name:    "sound",
		aliases: []string{"s"},
		atom:    SoundFactory,
	})
	declareControl(control{
		name: "scale",
		atom: ScaleFactory,
		combine: func(src, ctl pattern.Voice) pattern.Voice {
			if ctl.Scale == "" {
				return src
			}
			return ResolveNote(src.WithScale(ctl.Scale), nil)
		},
	})
	declareControl(control{
		name:    "transpose",
		aliases: []string{"up"},
		atom:    TransposeFactory,
		combine: func(src, ctl pattern.Voice) pattern.Voice {
			// Numeric semitones first, then a named interval.
			return Transpose(src, TransposeAmount{Semitones: ctl.Value, Interval: ctl.Note})
		},
	})

	// Level and placement.
	declareControl(numericControl("gain", pattern.Voice.WithGain))
	declareControl(numericControl("pan", pattern.Voice.WithPan))
	declareControl(paramControl("orbit", "orbit"))
	declareControl(paramControl("channel", "channel"))

	// Envelope stages.
	declareControl(numericControl("attack", pattern.Voice.WithAttack, "att"))
	declareControl(numericControl("decay", pattern.Voice.WithDecay))
	declareControl(numericControl("sustain", pattern.Voice.WithSustain, "sus"))
	declareControl(numericControl("release", pattern.Voice.WithRelease, "rel"))
	declareControl(paramControl("legato", "legato"))

	// Filters.
	declareControl(filterControl("cutoff", "lp", "lpf"))
	declareControl(paramControl("resonance", "resonance", "lpq"))
	declareControl(filterControl("hcutoff", "hp", "hpf"))
	declareControl(paramControl("hresonance", "hresonance", "hpq"))
	declareControl(filterControl("bandf", "bp", "bpf"))
	declareControl(paramControl("bandq", "bandq", "bpq"))

	// Effects.
	declareControl(paramControl("shape", "shape"))
	declareControl(paramControl("coarse", "coarse"))
	declareControl(paramControl("crush", "crush"))
	declareControl(paramControl("speed", "speed"))
	declareControl(paramControl("accelerate", "accelerate"))
	declareControl(paramControl("room", "room", "roomsize", "size", "rsize"))
	declareControl(paramControl("delay", "delay"))
	declareControl(paramControl("delaytime", "delaytime", "delayt"))
	declareControl(paramControl("delayfeedback", "delayfeedback", "delayfb"))
}

// NoteFactory reads a token as a pitch: a note name ("c", "eb3", "F#5") or
// a number read as MIDI. The frequency is derived immediately so note and
// freq stay consistent; the gain default is left to the merge so it cannot
// clobber an explicit gain on the source.
func NoteFactory(token string) (pattern.Voice, error) {
	var v pattern.Voice
	if f, err := strconv.ParseFloat(token, 64); err == nil {
		hz := theory.MIDIToFreq(f)
		return v.WithNote(theory.NearestNote(hz).Name()).WithFreq(hz), nil
	}
	v = v.WithNote(token)
	if hz, err := theory.NoteToFreq(token); err == nil {
		v = v.WithFreq(hz)
	}
	return v, nil
}

func liftNote(v pattern.Voice) pattern.Voice {
	if v.Note != "" || v.Value == nil {
		return v
	}
	hz := theory.MIDIToFreq(*v.Value)
	return pattern.Voice{}.WithNote(theory.NearestNote(hz).Name()).WithFreq(hz)
}

// SoundFactory reads sample atoms of the form "name" or "name:index".
func SoundFactory(token string) (pattern.Voice, error) {
	var v pattern.Voice
	name, index, found := strings.Cut(token, ":")
	if name == "" {
		return v, fmt.Errorf("sound: empty name in %q", token)
	}
	v = v.WithSound(name)
	if found {
		i, err := strconv.Atoi(index)
		if err != nil {
			return v, fmt.Errorf("sound: bad index in %q", token)
		}
		v = v.WithIndex(i)
	}
	return v, nil
}

func ScaleFactory(token string) (pattern.Voice, error) {
	if token == "" {
		return pattern.Voice{}, fmt.Errorf("scale: empty name")
	}
	return pattern.Voice{}.WithScale(token), nil
}

// TransposeFactory reads a transpose amount: a number of semitones, or a
// named interval kept in the note slot for the combine rule to coerce.
func TransposeFactory(token string) (pattern.Voice, error) {
	var v pattern.Voice
	if f, err := strconv.ParseFloat(token, 64); err == nil {
		return v.WithValue(f), nil
	}
	if _, err := theory.ParseInterval(token); err != nil {
		return v, fmt.Errorf("transpose: %w", err)
	}
	return v.WithNote(token), nil
}
