package pattern

import "log"

// Transform rewrites one pattern into another. Transforms come from user
// code at the REPL, so the conditional engine treats them as fallible: a
// transform that panics is logged and skipped, leaving the source audible.
type Transform func(Pattern) Pattern

// BindCycle is the time-indexed join behind every selector-driven
// combinator: for each cycle in the queried arc it samples sel at the cycle
// start, asks build for the pattern to play during that cycle, and queries
// it for the clipped sub-arc. Nothing is precomputed or cached, so a
// selector that changes between queries changes the structure it selects.
func BindCycle(sel Pattern, build func(cycle float64, ctl Voice, ok bool) Pattern) Pattern {
	return QueryFunc(func(arc Arc) []Event {
		return perCycle(arc, func(cycle float64, part Arc) []Event {
			ctl, ok := SampleAt(sel, cycle)
			return build(cycle, ctl, ok).Query(part)
		})
	})
}

// EveryCycle applies transform on one cycle out of every n. With pickFirst
// the transformed cycle is cycle 0 of each group of n, otherwise cycle n-1.
// n is itself a pattern, so the modulus may vary over time; the selection is
// always taken relative to the modulus active for the queried cycle. n = 1
// applies the transform on every cycle; a missing or non-positive n leaves
// the cycle untouched.
func EveryCycle(source, n Pattern, transform Transform, pickFirst bool) Pattern {
	return BindCycle(n, func(cycle float64, ctl Voice, ok bool) Pattern {
		if !ok || ctl.Value == nil {
			return source
		}
		modulus := int(*ctl.Value)
		if modulus < 1 {
			return source
		}
		k := mod(int(cycle), modulus)
		selected := k == modulus-1
		if pickFirst {
			selected = k == 0
		}
		if !selected {
			return source
		}
		return Apply(transform, source)
	})
}

// When samples condition at the midpoint of each source event's whole span
// and, when the sampled value is truthy, replaces the event with what the
// transformed source plays over the same fragment. Sampling at the midpoint
// rather than the start avoids ties exactly at event boundaries. A silent
// condition counts as false.
func When(source, condition Pattern, transform Transform) Pattern {
	transformed := Apply(transform, source)
	return QueryFunc(func(arc Arc) []Event {
		var events []Event
		for _, ev := range source.Query(arc) {
			ctl, ok := SampleAt(condition, ev.Whole.Midpoint())
			if !ok || !Truthy(ctl) {
				events = append(events, ev)
				continue
			}
			events = append(events, transformed.Query(ev.Part)...)
		}
		return Sort(events)
	})
}

// Truthy reports whether a control voice counts as true: a non-zero number,
// otherwise a non-empty note or sound name.
func Truthy(v Voice) bool {
	if v.Value != nil {
		return *v.Value != 0
	}
	return v.Note != "" || v.Sound != ""
}

// Apply runs a transform over source, isolating failures: a nil transform
// is the identity, and one that panics (user code) yields the source
// unchanged for the queried arc. One broken layer must not silence the rest
// of a performance.
func Apply(transform Transform, source Pattern) Pattern {
	if transform == nil {
		return source
	}
	return QueryFunc(func(arc Arc) (events []Event) {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("pattern: transform failed: %v", r)
				events = source.Query(arc)
			}
		}()
		return transform(source).Query(arc)
	})
}
