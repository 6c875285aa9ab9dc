package pattern

// Voice is the per-event payload: everything a single sound needs to know
// about itself. Voices are values; every update returns a copy, so a voice
// attached to one event is never visible to another.
type Voice struct {
	Note  string
	Freq  float64 // Hz, 0 means unset
	Sound string
	Scale string

	Index *int     // sample or scale index, consumed on note resolution
	Value *float64 // raw numeric payload from mini-notation

	Gain *float64
	Pan  *float64

	Attack  *float64
	Decay   *float64
	Sustain *float64
	Release *float64

	Filters []Filter
	Params  map[string]float64
}

// Filter is one entry in a voice's filter chain.
type Filter struct {
	Kind      string // "lp", "hp", "bp"
	Cutoff    float64
	Resonance float64
}

func (v Voice) WithNote(note string) Voice {
	v.Note = note
	return v
}

func (v Voice) WithFreq(hz float64) Voice {
	v.Freq = hz
	return v
}

func (v Voice) WithSound(sound string) Voice {
	v.Sound = sound
	return v
}

func (v Voice) WithScale(scale string) Voice {
	v.Scale = scale
	return v
}

func (v Voice) WithIndex(i int) Voice {
	v.Index = &i
	return v
}

func (v Voice) ClearIndex() Voice {
	v.Index = nil
	return v
}

func (v Voice) WithValue(val float64) Voice {
	v.Value = &val
	return v
}

func (v Voice) ClearValue() Voice {
	v.Value = nil
	return v
}

func (v Voice) WithGain(g float64) Voice {
	v.Gain = &g
	return v
}

func (v Voice) WithPan(p float64) Voice {
	v.Pan = &p
	return v
}

func (v Voice) WithAttack(s float64) Voice {
	v.Attack = &s
	return v
}

func (v Voice) WithDecay(s float64) Voice {
	v.Decay = &s
	return v
}

func (v Voice) WithSustain(s float64) Voice {
	v.Sustain = &s
	return v
}

func (v Voice) WithRelease(s float64) Voice {
	v.Release = &s
	return v
}

// WithFilter appends a filter without sharing the slice with the receiver.
func (v Voice) WithFilter(f Filter) Voice {
	filters := make([]Filter, len(v.Filters), len(v.Filters)+1)
	copy(filters, v.Filters)
	v.Filters = append(filters, f)
	return v
}

// WithParam sets a named effect parameter, cloning the map so previous
// versions of the voice keep their own view.
func (v Voice) WithParam(name string, val float64) Voice {
	params := make(map[string]float64, len(v.Params)+1)
	for k, x := range v.Params {
		params[k] = x
	}
	params[name] = val
	v.Params = params
	return v
}

func (v Voice) Param(name string) (float64, bool) {
	val, ok := v.Params[name]
	return val, ok
}

// Merge overlays the set fields of ctl onto v. Structure always comes from
// v's event; ctl only contributes values.
func (v Voice) Merge(ctl Voice) Voice {
	if ctl.Note != "" {
		v.Note = ctl.Note
	}
	if ctl.Freq != 0 {
		v.Freq = ctl.Freq
	}
	if ctl.Sound != "" {
		v.Sound = ctl.Sound
	}
	if ctl.Scale != "" {
		v.Scale = ctl.Scale
	}
	if ctl.Index != nil {
		v = v.WithIndex(*ctl.Index)
	}
	if ctl.Value != nil {
		v = v.WithValue(*ctl.Value)
	}
	if ctl.Gain != nil {
		v = v.WithGain(*ctl.Gain)
	}
	if ctl.Pan != nil {
		v = v.WithPan(*ctl.Pan)
	}
	if ctl.Attack != nil {
		v = v.WithAttack(*ctl.Attack)
	}
	if ctl.Decay != nil {
		v = v.WithDecay(*ctl.Decay)
	}
	if ctl.Sustain != nil {
		v = v.WithSustain(*ctl.Sustain)
	}
	if ctl.Release != nil {
		v = v.WithRelease(*ctl.Release)
	}
	for _, f := range ctl.Filters {
		v = v.WithFilter(f)
	}
	for name, val := range ctl.Params {
		v = v.WithParam(name, val)
	}
	return v
}
