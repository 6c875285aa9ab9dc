package pattern

// CombineFunc merges a control voice into a source voice. The result
// replaces the source event's voice; the event's timing is untouched.
type CombineFunc func(src, ctl Voice) Voice

// AppControl builds a pattern whose structure comes from source and whose
// values come from sampling control. For every source event the control is
// sampled at the event's whole-span start; when a control value is active
// there, combine merges it into the event's voice. When the control is
// silent at that instant the source event passes through unchanged: a
// control can never delete structure.
func AppControl(source, control Pattern, combine CombineFunc) Pattern {
	if combine == nil {
		combine = Voice.Merge
	}
	return QueryFunc(func(arc Arc) []Event {
		srcEvents := source.Query(arc)
		events := make([]Event, len(srcEvents))
		for i, ev := range srcEvents {
			events[i] = ev
			ctl, ok := SampleAt(control, ev.Whole.Begin)
			if !ok {
				continue
			}
			events[i].Voice = combine(ev.Voice, ctl)
		}
		return events
	})
}

// AppControlValue is the literal convenience path: the single voice is
// treated as a constant control spanning the whole timeline, skipping
// per-event sampling.
func AppControlValue(source Pattern, ctl Voice, combine CombineFunc) Pattern {
	if combine == nil {
		combine = Voice.Merge
	}
	return QueryFunc(func(arc Arc) []Event {
		srcEvents := source.Query(arc)
		events := make([]Event, len(srcEvents))
		for i, ev := range srcEvents {
			events[i] = ev
			events[i].Voice = combine(ev.Voice, ctl)
		}
		return events
	})
}

// Map rewrites every voice a pattern produces, leaving timing alone. It is
// how a control pattern's raw values are shaped into control data before a
// merge.
func Map(p Pattern, f func(Voice) Voice) Pattern {
	if f == nil {
		return p
	}
	return QueryFunc(func(arc Arc) []Event {
		events := p.Query(arc)
		out := make([]Event, len(events))
		for i, ev := range events {
			out[i] = ev
			out[i].Voice = f(ev.Voice)
		}
		return out
	})
}

// SampleAt returns the voice active in p at instant t, if any. Discrete
// patterns answer with the event whose part contains t; continuous signals
// answer with their value in a vanishing window around t.
func SampleAt(p Pattern, t float64) (Voice, bool) {
	for _, ev := range p.Query(Arc{t, t}) {
		if ev.Part.Contains(t) {
			return ev.Voice, true
		}
	}
	return Voice{}, false
}
