package script

import (
	"reflect"
	"strings"
	"testing"

	"github.com/loomlang/loom/pattern"
)

func evalPattern(t *testing.T, input string) pattern.Pattern {
	t.Helper()
	v, err := Eval(input)
	if err != nil {
		t.Fatalf("Eval(%q): %v", input, err)
	}
	p, ok := v.(pattern.Pattern)
	if !ok {
		t.Fatalf("Eval(%q): want a pattern, got %T", input, v)
	}
	return p
}

func notes(p pattern.Pattern, arc pattern.Arc) []string {
	var out []string
	for _, ev := range pattern.Sort(p.Query(arc)) {
		if ev.HasOnset() {
			out = append(out, ev.Voice.Note)
		}
	}
	return out
}

func TestEvalLiterals(t *testing.T) {
	if v, err := Eval("42"); err != nil || v != 42.0 {
		t.Errorf("want 42, got %v %v", v, err)
	}
	if v, err := Eval("-0.5"); err != nil || v != -0.5 {
		t.Errorf("want -0.5, got %v %v", v, err)
	}
	if v, err := Eval(`"c e g"`); err != nil || v != "c e g" {
		t.Errorf("want the raw string, got %v %v", v, err)
	}
}

func TestEvalFunctionCall(t *testing.T) {
	p := evalPattern(t, `note("c e g")`)
	want := []string{"c", "e", "g"}
	if got := notes(p, pattern.Arc{Begin: 0, End: 1}); !reflect.DeepEqual(want, got) {
		t.Errorf("wrong notes:\nwant: %v\ngot:  %v", want, got)
	}
}

func TestEvalMethodChain(t *testing.T) {
	p := evalPattern(t, `note("c e").fast(2).rev`)
	want := []string{"e", "c", "e", "c"}
	if got := notes(p, pattern.Arc{Begin: 0, End: 1}); !reflect.DeepEqual(want, got) {
		t.Errorf("wrong notes:\nwant: %v\ngot:  %v", want, got)
	}
}

func TestEvalStringReceiver(t *testing.T) {
	p := evalPattern(t, `"c e g".fast(2)`)
	if got := len(notes(p, pattern.Arc{Begin: 0, End: 1})); got != 6 {
		t.Errorf("want 6 onsets, got %v", got)
	}
}

func TestEvalEveryWithTransform(t *testing.T) {
	p := evalPattern(t, `note("c e").every(2, rev)`)
	tests := []struct {
		cycle float64
		want  []string
	}{
		{0, []string{"e", "c"}},
		{1, []string{"c", "e"}},
		{2, []string{"e", "c"}},
	}
	for _, test := range tests {
		arc := pattern.Arc{Begin: test.cycle, End: test.cycle + 1}
		if got := notes(p, arc); !reflect.DeepEqual(test.want, got) {
			t.Errorf("cycle %v:\nwant: %v\ngot:  %v", test.cycle, test.want, got)
		}
	}
}

func TestEvalCurriedTransform(t *testing.T) {
	p := evalPattern(t, `note("c e").every(2, fast(2))`)
	if got := len(notes(p, pattern.Arc{Begin: 0, End: 1})); got != 4 {
		t.Errorf("transformed cycle: want 4 onsets, got %v", got)
	}
	if got := len(notes(p, pattern.Arc{Begin: 1, End: 2})); got != 2 {
		t.Errorf("untouched cycle: want 2 onsets, got %v", got)
	}
}

func TestEvalWhen(t *testing.T) {
	p := evalPattern(t, `note("c d e f").when("t ~ t ~", rev)`)
	want := []string{"f", "d", "d", "f"}
	if got := notes(p, pattern.Arc{Begin: 0, End: 1}); !reflect.DeepEqual(want, got) {
		t.Errorf("wrong notes:\nwant: %v\ngot:  %v", want, got)
	}
}

func TestEvalControlChain(t *testing.T) {
	p := evalPattern(t, `note("c e g").n(0).scale("C:major")`)
	for _, ev := range p.Query(pattern.Arc{Begin: 0, End: 1}) {
		if ev.Voice.Note != "C" {
			t.Errorf("want note C, got %+v", ev.Voice)
		}
	}
}

func TestEvalZeroArgFunctions(t *testing.T) {
	for _, input := range []string{"silence", "sine", "saw()"} {
		if _, err := Eval(input); err != nil {
			t.Errorf("Eval(%q): %v", input, err)
		}
	}
}

func TestEvalErrors(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"nosuchfn(1)", "unknown function"},
		{`note("c").nosuchmethod(1)`, "unknown method"},
		{"nosuchname", "unknown name"},
		{`note("c"`, "unexpected end of input"},
		{`note("c e`, "unterminated string"},
		{"note(1,)", "unexpected"},
		{"$", "unexpected character"},
	}
	for _, test := range tests {
		_, err := Eval(test.input)
		if err == nil {
			t.Errorf("Eval(%q): expected an error", test.input)
			continue
		}
		if !strings.Contains(err.Error(), test.want) {
			t.Errorf("Eval(%q): want error containing %q, got %v", test.input, test.want, err)
		}
	}
}
