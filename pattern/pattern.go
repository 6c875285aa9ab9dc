package pattern

import (
	"fmt"
	"math"
	"sort"
)

// Time is measured in cycles. One cycle is the base repeating unit of the
// timeline, typically one bar.
//
// Arc is a half-open interval [Begin, End) of cycle time.
type Arc struct {
	Begin, End float64
}

func (a Arc) Duration() float64 { return a.End - a.Begin }

func (a Arc) Midpoint() float64 { return a.Begin + (a.End-a.Begin)/2 }

// Contains reports whether the instant t falls within the arc. A zero-width
// arc contains exactly its begin instant, so sampling an event boundary is
// well defined.
func (a Arc) Contains(t float64) bool {
	if a.Begin == a.End {
		return t == a.Begin
	}
	return t >= a.Begin && t < a.End
}

// Intersect clips a to b. The second return value is false when the arcs
// don't overlap.
func (a Arc) Intersect(b Arc) (Arc, bool) {
	begin := math.Max(a.Begin, b.Begin)
	end := math.Min(a.End, b.End)
	if begin > end || (begin == end && a.Begin != a.End && b.Begin != b.End) {
		return Arc{}, false
	}
	return Arc{begin, end}, true
}

func (a Arc) String() string {
	return fmt.Sprintf("[%g, %g)", a.Begin, a.End)
}

// Event is one dated occurrence of a voice. Whole is the event's full span;
// Part is the fragment of it that fell inside the queried arc. The event's
// onset is in the query iff Whole.Begin == Part.Begin.
type Event struct {
	Whole Arc
	Part  Arc
	Voice Voice
}

func (e Event) HasOnset() bool { return e.Whole.Begin == e.Part.Begin }

func (e Event) String() string {
	return fmt.Sprintf("%v %+v", e.Part, e.Voice)
}

// Pattern produces dated voice events over a cyclic timeline. Queries are
// pure: the same arc always yields the same events, and querying has no
// side effects.
type Pattern interface {
	Query(arc Arc) []Event
}

// QueryFunc adapts a plain query function to the Pattern interface.
type QueryFunc func(arc Arc) []Event

func (f QueryFunc) Query(arc Arc) []Event { return f(arc) }

// cycleOf returns the number of the cycle containing t.
func cycleOf(t float64) float64 { return math.Floor(t) }

// perCycle invokes f once per cycle touched by the arc, with the arc clipped
// to that cycle. Patterns whose behavior depends on the cycle number use
// this so a multi-cycle query behaves like a series of single-cycle ones.
func perCycle(arc Arc, f func(cycle float64, part Arc) []Event) []Event {
	var events []Event
	begin := arc.Begin
	for begin < arc.End || (begin == arc.End && arc.Begin == arc.End) {
		cycle := cycleOf(begin)
		end := math.Min(cycle+1, arc.End)
		events = append(events, f(cycle, Arc{begin, end})...)
		if end == arc.End || begin == arc.End {
			break
		}
		begin = end
	}
	return events
}

// Sort orders events by part begin, then whole begin. Queries over stacked
// patterns concatenate per-layer results; sorting keeps output stable for
// consumers that care about order (rendering, tests).
func Sort(events []Event) []Event {
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].Part.Begin != events[j].Part.Begin {
			return events[i].Part.Begin < events[j].Part.Begin
		}
		return events[i].Whole.Begin < events[j].Whole.Begin
	})
	return events
}
