package pattern

import "math"

// Silence produces no events.
var Silence Pattern = QueryFunc(func(Arc) []Event { return nil })

// Pure repeats one voice once per cycle, filling the whole cycle.
func Pure(v Voice) Pattern {
	return QueryFunc(func(arc Arc) []Event {
		return perCycle(arc, func(cycle float64, part Arc) []Event {
			whole := Arc{cycle, cycle + 1}
			clipped, ok := part.Intersect(whole)
			if !ok {
				return nil
			}
			return []Event{{Whole: whole, Part: clipped, Voice: v}}
		})
	})
}

// Steady holds one voice for all time, with no per-cycle onsets. Used for
// lifting literal control values: the voice is "active" at every instant.
func Steady(v Voice) Pattern {
	return QueryFunc(func(arc Arc) []Event {
		return []Event{{Whole: arc, Part: arc, Voice: v}}
	})
}

// Slowcat plays one sub-pattern per cycle, cycling with period len(pats).
// Cycle k of the timeline plays pats[k mod n], and each sub-pattern steps
// through its own cycles in order: its turn number k div n, not the global
// cycle. Without the inner offset a slowcat nested under Fast would only
// ever show one branch.
func Slowcat(pats ...Pattern) Pattern {
	if len(pats) == 0 {
		return Silence
	}
	n := len(pats)
	return QueryFunc(func(arc Arc) []Event {
		return perCycle(arc, func(cycle float64, part Arc) []Event {
			i := mod(int(cycle), n)
			offset := cycle - math.Floor(cycle/float64(n))
			inner := pats[i].Query(Arc{part.Begin - offset, part.End - offset})
			events := make([]Event, len(inner))
			for j, ev := range inner {
				events[j] = Event{
					Whole: Arc{ev.Whole.Begin + offset, ev.Whole.End + offset},
					Part:  Arc{ev.Part.Begin + offset, ev.Part.End + offset},
					Voice: ev.Voice,
				}
			}
			return events
		})
	})
}

// Sequence subdivides each cycle evenly over the given sub-patterns.
func Sequence(pats ...Pattern) Pattern {
	if len(pats) == 0 {
		return Silence
	}
	return Fast(float64(len(pats)), Slowcat(pats...))
}

// Stack layers patterns over the same timeline.
func Stack(pats ...Pattern) Pattern {
	return QueryFunc(func(arc Arc) []Event {
		var events []Event
		for _, p := range pats {
			events = append(events, p.Query(arc)...)
		}
		return Sort(events)
	})
}

// Fast compresses time so the pattern plays rate times per cycle. A rate of
// zero or below yields silence rather than a degenerate query.
func Fast(rate float64, p Pattern) Pattern {
	if rate <= 0 {
		return Silence
	}
	return QueryFunc(func(arc Arc) []Event {
		inner := p.Query(Arc{arc.Begin * rate, arc.End * rate})
		events := make([]Event, len(inner))
		for i, ev := range inner {
			events[i] = Event{
				Whole: Arc{ev.Whole.Begin / rate, ev.Whole.End / rate},
				Part:  Arc{ev.Part.Begin / rate, ev.Part.End / rate},
				Voice: ev.Voice,
			}
		}
		return events
	})
}

// Slow stretches the pattern over rate cycles.
func Slow(rate float64, p Pattern) Pattern {
	if rate <= 0 {
		return Silence
	}
	return Fast(1/rate, p)
}

// Shift moves the pattern later in time by offset cycles.
func Shift(offset float64, p Pattern) Pattern {
	return QueryFunc(func(arc Arc) []Event {
		inner := p.Query(Arc{arc.Begin - offset, arc.End - offset})
		events := make([]Event, len(inner))
		for i, ev := range inner {
			events[i] = Event{
				Whole: Arc{ev.Whole.Begin + offset, ev.Whole.End + offset},
				Part:  Arc{ev.Part.Begin + offset, ev.Part.End + offset},
				Voice: ev.Voice,
			}
		}
		return events
	})
}

// Rev reverses each cycle in place: an event starting at the beginning of a
// cycle ends up ending at its end.
func Rev(p Pattern) Pattern {
	return QueryFunc(func(arc Arc) []Event {
		return perCycle(arc, func(cycle float64, part Arc) []Event {
			reflect := func(a Arc) Arc {
				return Arc{
					Begin: cycle + (cycle + 1 - a.End),
					End:   cycle + (cycle + 1 - a.Begin),
				}
			}
			inner := p.Query(reflect(part))
			events := make([]Event, len(inner))
			for i, ev := range inner {
				events[i] = Event{
					Whole: reflect(ev.Whole),
					Part:  reflect(ev.Part),
					Voice: ev.Voice,
				}
			}
			return Sort(events)
		})
	})
}

// Signal is a continuous pattern: no onsets, one event per queried arc, the
// value sampled from f at the arc's midpoint. f takes the cycle position and
// returns a unipolar value stored as the voice's raw Value.
func Signal(f func(t float64) float64) Pattern {
	return QueryFunc(func(arc Arc) []Event {
		var v Voice
		v = v.WithValue(f(arc.Midpoint()))
		return []Event{{Whole: arc, Part: arc, Voice: v}}
	})
}

// Sine is a unipolar sine wave with a period of one cycle.
func Sine() Pattern {
	return Signal(func(t float64) float64 {
		return (math.Sin(2*math.Pi*t) + 1) / 2
	})
}

// Saw rises from 0 to 1 over each cycle.
func Saw() Pattern {
	return Signal(func(t float64) float64 {
		return t - math.Floor(t)
	})
}

// Tri rises over the first half of each cycle and falls over the second.
func Tri() Pattern {
	return Signal(func(t float64) float64 {
		pos := t - math.Floor(t)
		if pos < 0.5 {
			return 2 * pos
		}
		return 2 - 2*pos
	})
}

// Square is 0 for the first half of each cycle and 1 for the second.
func Square() Pattern {
	return Signal(func(t float64) float64 {
		if t-math.Floor(t) < 0.5 {
			return 0
		}
		return 1
	})
}

func mod(x, n int) int {
	m := x % n
	if m < 0 {
		m += n
	}
	return m
}
