package pattern

import (
	"reflect"
	"testing"
)

func note(name string) Voice { return Voice{Note: name} }

// onsetNotes reduces a query result to the note names of its onsets, in
// order.
func onsetNotes(events []Event) []string {
	var notes []string
	for _, ev := range Sort(events) {
		if ev.HasOnset() {
			notes = append(notes, ev.Voice.Note)
		}
	}
	return notes
}

func TestPure(t *testing.T) {
	events := Pure(note("c")).Query(Arc{0, 2})
	if want, got := 2, len(events); want != got {
		t.Fatalf("wrong number of events: want %v, got %v", want, got)
	}
	want := []Event{
		{Whole: Arc{0, 1}, Part: Arc{0, 1}, Voice: note("c")},
		{Whole: Arc{1, 2}, Part: Arc{1, 2}, Voice: note("c")},
	}
	if !reflect.DeepEqual(want, events) {
		t.Errorf("wrong events:\nwant: %v\ngot:  %v", want, events)
	}
}

func TestSequence(t *testing.T) {
	p := Sequence(Pure(note("a")), Pure(note("b")))
	events := p.Query(Arc{0, 1})
	want := []Event{
		{Whole: Arc{0, 0.5}, Part: Arc{0, 0.5}, Voice: note("a")},
		{Whole: Arc{0.5, 1}, Part: Arc{0.5, 1}, Voice: note("b")},
	}
	if !reflect.DeepEqual(want, events) {
		t.Errorf("wrong events:\nwant: %v\ngot:  %v", want, events)
	}
}

func TestSlowcatAlternates(t *testing.T) {
	p := Slowcat(Pure(note("a")), Pure(note("b")))
	want := []string{"a", "b", "a"}
	if got := onsetNotes(p.Query(Arc{0, 3})); !reflect.DeepEqual(want, got) {
		t.Errorf("wrong notes:\nwant: %v\ngot:  %v", want, got)
	}
}

func TestFastPartialQuery(t *testing.T) {
	p := Fast(2, Pure(note("c")))
	events := p.Query(Arc{0.25, 0.75})
	want := []Event{
		{Whole: Arc{0, 0.5}, Part: Arc{0.25, 0.5}, Voice: note("c")},
		{Whole: Arc{0.5, 1}, Part: Arc{0.5, 0.75}, Voice: note("c")},
	}
	if !reflect.DeepEqual(want, events) {
		t.Errorf("wrong events:\nwant: %v\ngot:  %v", want, events)
	}
	if events[0].HasOnset() {
		t.Error("fragment without its start should not have an onset")
	}
	if !events[1].HasOnset() {
		t.Error("fragment containing its start should have an onset")
	}
}

func TestFastBadRate(t *testing.T) {
	if events := Fast(0, Pure(note("c"))).Query(Arc{0, 1}); len(events) != 0 {
		t.Errorf("expected silence, got %v", events)
	}
}

func TestSlow(t *testing.T) {
	p := Slow(2, Sequence(Pure(note("a")), Pure(note("b"))))
	events := p.Query(Arc{0, 2})
	want := []Event{
		{Whole: Arc{0, 1}, Part: Arc{0, 1}, Voice: note("a")},
		{Whole: Arc{1, 2}, Part: Arc{1, 2}, Voice: note("b")},
	}
	if !reflect.DeepEqual(want, events) {
		t.Errorf("wrong events:\nwant: %v\ngot:  %v", want, events)
	}
}

func TestShift(t *testing.T) {
	p := Shift(0.25, Pure(note("c")))
	events := p.Query(Arc{0.25, 1.25})
	want := []Event{
		{Whole: Arc{0.25, 1.25}, Part: Arc{0.25, 1.25}, Voice: note("c")},
	}
	if !reflect.DeepEqual(want, events) {
		t.Errorf("wrong events:\nwant: %v\ngot:  %v", want, events)
	}
}

func TestRev(t *testing.T) {
	p := Rev(Sequence(Pure(note("a")), Pure(note("b")), Pure(note("c"))))
	want := []string{"c", "b", "a"}
	if got := onsetNotes(p.Query(Arc{0, 1})); !reflect.DeepEqual(want, got) {
		t.Errorf("wrong notes:\nwant: %v\ngot:  %v", want, got)
	}
	// Reversing twice restores the original order.
	want = []string{"a", "b", "c"}
	if got := onsetNotes(Rev(p).Query(Arc{0, 1})); !reflect.DeepEqual(want, got) {
		t.Errorf("wrong notes after double reverse:\nwant: %v\ngot:  %v", want, got)
	}
}

func TestStackSorted(t *testing.T) {
	p := Stack(
		Sequence(Pure(note("a")), Pure(note("b"))),
		Pure(note("c")),
	)
	want := []string{"a", "c", "b"}
	if got := onsetNotes(p.Query(Arc{0, 1})); !reflect.DeepEqual(want, got) {
		t.Errorf("wrong notes:\nwant: %v\ngot:  %v", want, got)
	}
}

func TestSignals(t *testing.T) {
	tests := []struct {
		name string
		pat  Pattern
		arc  Arc
		want float64
	}{
		{"saw midpoint", Saw(), Arc{0.25, 0.75}, 0.5},
		{"saw early", Saw(), Arc{0, 0.5}, 0.25},
		{"sine zero", Sine(), Arc{-0.25, 0.25}, 0.5},
		{"tri rising", Tri(), Arc{0.2, 0.3}, 0.5},
		{"square low", Square(), Arc{0, 0.5}, 0},
		{"square high", Square(), Arc{0.5, 1}, 1},
	}
	for _, test := range tests {
		events := test.pat.Query(test.arc)
		if len(events) != 1 {
			t.Fatalf("%s: want one event, got %v", test.name, events)
		}
		v := events[0].Voice
		if v.Value == nil {
			t.Fatalf("%s: signal event has no value", test.name)
		}
		if diff := *v.Value - test.want; diff > 1e-9 || diff < -1e-9 {
			t.Errorf("%s: want %v, got %v", test.name, test.want, *v.Value)
		}
		if events[0].HasOnset() && events[0].Whole != test.arc {
			t.Errorf("%s: signal should span the queried arc", test.name)
		}
	}
}

func TestSampleAt(t *testing.T) {
	seq := Sequence(Pure(note("a")), Pure(note("b")))
	tests := []struct {
		t    float64
		note string
		ok   bool
	}{
		{0, "a", true},
		{0.25, "a", true},
		{0.5, "b", true},
		{0.999, "b", true},
		{1.5, "b", true},
	}
	for _, test := range tests {
		v, ok := SampleAt(seq, test.t)
		if ok != test.ok || v.Note != test.note {
			t.Errorf("SampleAt(%v): want (%q, %v), got (%q, %v)",
				test.t, test.note, test.ok, v.Note, ok)
		}
	}
	if _, ok := SampleAt(Silence, 0.5); ok {
		t.Error("silence should have no sample")
	}
}
