package dsl

import (
	"fmt"

	"github.com/loomlang/loom/mini"
	"github.com/loomlang/loom/pattern"
)

func declareCombinators() {
	declareRate("fast", pattern.Fast, "density")
	declareRate("slow", pattern.Slow, "sparsity")

	RegisterMethod("rev", func(recv pattern.Pattern, args Args) (pattern.Pattern, error) {
		return pattern.Rev(recv), nil
	})
	RegisterStringMethod("rev", noteStringMethod("rev"))

	declareEvery("every", true)
	declareEvery("firstOf", true)
	declareEvery("lastOf", false)

	RegisterMethod("when", func(recv pattern.Pattern, args Args) (pattern.Pattern, error) {
		cond, err := args.At(0).Pattern(mini.BoolFactory, nil)
		if err != nil {
			return nil, fmt.Errorf("when: %w", err)
		}
		return pattern.When(recv, cond, args.At(1).Transform()), nil
	})
	RegisterStringMethod("when", noteStringMethod("when"))

	RegisterMethod("off", func(recv pattern.Pattern, args Args) (pattern.Pattern, error) {
		offset := args.At(0).Float(0)
		shifted := pattern.Shift(offset, recv)
		return pattern.Stack(recv, pattern.Apply(args.At(1).Transform(), shifted)), nil
	})
	RegisterStringMethod("off", noteStringMethod("off"))

	RegisterMethod("shift", func(recv pattern.Pattern, args Args) (pattern.Pattern, error) {
		return pattern.Shift(args.At(0).Float(0), recv), nil
	})
	RegisterStringMethod("shift", noteStringMethod("shift"))

	RegisterFunc("stack", variadic(pattern.Stack))
	RegisterFunc("cat", variadic(pattern.Slowcat))
	RegisterFunc("slowcat", variadic(pattern.Slowcat))
	RegisterFunc("seq", variadic(pattern.Sequence))
	RegisterFunc("fastcat", variadic(pattern.Sequence))

	RegisterFunc("silence", func(Args) (pattern.Pattern, error) {
		return pattern.Silence, nil
	})
	alias("hush", "silence")
	RegisterFunc("sine", signalFunc(pattern.Sine))
	RegisterFunc("saw", signalFunc(pattern.Saw))
	RegisterFunc("tri", signalFunc(pattern.Tri))
	RegisterFunc("square", signalFunc(pattern.Square))
}

// declareRate registers a tempo-scaling method whose rate may itself be a
// pattern: a literal takes the direct path, anything else is resolved per
// cycle through the time-indexed join.
func declareRate(name string, scale func(float64, pattern.Pattern) pattern.Pattern, aliases ...string) {
	method := func(recv pattern.Pattern, args Args) (pattern.Pattern, error) {
		arg := args.At(0)
		if arg.IsAbsent() {
			return recv, nil
		}
		if arg.IsLiteral() && !arg.IsString() {
			return scale(arg.Float(1), recv), nil
		}
		rate, err := arg.Pattern(mini.NumberFactory, nil)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		return pattern.BindCycle(rate, func(_ float64, ctl pattern.Voice, ok bool) pattern.Pattern {
			if !ok || ctl.Value == nil {
				return recv
			}
			return scale(*ctl.Value, recv)
		}), nil
	}
	RegisterMethod(name, method)
	RegisterStringMethod(name, noteStringMethod(name))
	for _, a := range aliases {
		alias(a, name)
	}
}

func declareEvery(name string, pickFirst bool) {
	RegisterMethod(name, func(recv pattern.Pattern, args Args) (pattern.Pattern, error) {
		n, err := args.At(0).Pattern(mini.NumberFactory, nil)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		return pattern.EveryCycle(recv, n, args.At(1).Transform(), pickFirst), nil
	})
	RegisterStringMethod(name, noteStringMethod(name))
}

// noteStringMethod adapts a registered pattern method to a mini-notation
// receiver parsed as notes.
func noteStringMethod(name string) StringMethod {
	return func(recv string, args Args) (pattern.Pattern, error) {
		pat, err := mini.Parse(recv, NoteFactory)
		if err != nil {
			return nil, err
		}
		method, ok := ResolveMethod(name)
		if !ok {
			return nil, fmt.Errorf("unknown method %q", name)
		}
		return method(pat, args)
	}
}

// variadic lifts a pattern combinator over an argument list; strings parse
// as note patterns.
func variadic(combine func(...pattern.Pattern) pattern.Pattern) Func {
	return func(args Args) (pattern.Pattern, error) {
		pats := make([]pattern.Pattern, 0, len(args))
		for _, arg := range args {
			pat, err := arg.Pattern(NoteFactory, nil)
			if err != nil {
				return nil, err
			}
			pats = append(pats, pat)
		}
		return combine(pats...), nil
	}
}

func signalFunc(sig func() pattern.Pattern) Func {
	return func(Args) (pattern.Pattern, error) {
		return sig(), nil
	}
}
