package pattern

import (
	"reflect"
	"testing"
)

func TestAppControlKeepsStructure(t *testing.T) {
	source := Sequence(Pure(note("a")), Pure(note("b")), Pure(note("c")))
	control := Pure(Voice{}.WithGain(0.5))

	events := AppControl(source, control, nil).Query(Arc{0, 1})
	if want, got := 3, len(events); want != got {
		t.Fatalf("wrong number of events: want %v, got %v", want, got)
	}
	for i, ev := range events {
		if ev.Voice.Gain == nil || *ev.Voice.Gain != 0.5 {
			t.Errorf("event %d: gain not applied: %+v", i, ev.Voice)
		}
	}
	// Timing comes from the source alone.
	want := source.Query(Arc{0, 1})
	for i, ev := range events {
		if ev.Whole != want[i].Whole || ev.Part != want[i].Part {
			t.Errorf("event %d: timing changed: want %v %v, got %v %v",
				i, want[i].Whole, want[i].Part, ev.Whole, ev.Part)
		}
	}
}

func TestAppControlSamplesAtOnset(t *testing.T) {
	source := Sequence(Pure(note("a")), Pure(note("b")))
	control := Sequence(
		Pure(Voice{}.WithGain(0.2)),
		Pure(Voice{}.WithGain(0.9)),
	)
	events := AppControl(source, control, nil).Query(Arc{0, 1})
	gains := []float64{*events[0].Voice.Gain, *events[1].Voice.Gain}
	if want := []float64{0.2, 0.9}; !reflect.DeepEqual(want, gains) {
		t.Errorf("wrong gains:\nwant: %v\ngot:  %v", want, gains)
	}
}

func TestAppControlAbsenceIsNoOp(t *testing.T) {
	source := Sequence(Pure(note("a")), Pure(note("b")))
	// The control only covers the first half of the cycle.
	control := Sequence(Pure(Voice{}.WithGain(0.2)), Silence)

	events := AppControl(source, control, nil).Query(Arc{0, 1})
	if events[0].Voice.Gain == nil {
		t.Error("first event should have picked up the control")
	}
	if events[1].Voice.Gain != nil {
		t.Errorf("second event should be untouched, got %+v", events[1].Voice)
	}
	if events[1].Voice.Note != "b" {
		t.Errorf("second event lost its note: %+v", events[1].Voice)
	}
}

func TestAppControlContinuousControl(t *testing.T) {
	source := Sequence(Pure(note("a")), Pure(note("b")))
	combine := func(src, ctl Voice) Voice {
		if ctl.Value == nil {
			return src
		}
		return src.WithGain(*ctl.Value)
	}
	events := AppControl(source, Saw(), combine).Query(Arc{0, 1})
	gains := []float64{*events[0].Voice.Gain, *events[1].Voice.Gain}
	// A signal sampled at an instant yields its value at that instant.
	if want := []float64{0, 0.5}; !reflect.DeepEqual(want, gains) {
		t.Errorf("wrong gains:\nwant: %v\ngot:  %v", want, gains)
	}
}

func TestAppControlValue(t *testing.T) {
	source := Sequence(Pure(note("a")), Pure(note("b")))
	events := AppControlValue(source, Voice{}.WithPan(1), nil).Query(Arc{0, 1})
	for i, ev := range events {
		if ev.Voice.Pan == nil || *ev.Voice.Pan != 1 {
			t.Errorf("event %d: pan not applied: %+v", i, ev.Voice)
		}
	}
}

func TestMap(t *testing.T) {
	p := Map(Pure(note("a")), func(v Voice) Voice { return v.WithNote("b") })
	if got := onsetNotes(p.Query(Arc{0, 1})); !reflect.DeepEqual([]string{"b"}, got) {
		t.Errorf("wrong notes: %v", got)
	}
	// A nil mapper is the identity.
	orig := Pure(note("a"))
	if !reflect.DeepEqual(orig.Query(Arc{0, 1}), Map(orig, nil).Query(Arc{0, 1})) {
		t.Error("nil mapper should leave the pattern alone")
	}
}
