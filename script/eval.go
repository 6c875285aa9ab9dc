package script

import (
	"fmt"

	"github.com/loomlang/loom/dsl"
	"github.com/loomlang/loom/pattern"
)

// Value is anything an expression can evaluate to: float64, string,
// pattern.Pattern or pattern.Transform.
type Value interface{}

// Eval parses and evaluates one expression against the dsl registry.
func Eval(input string) (Value, error) {
	e, err := parse(input)
	if err != nil {
		return nil, err
	}
	return eval(e)
}

func eval(e expr) (Value, error) {
	switch x := e.(type) {
	case numberExpr:
		return float64(x), nil
	case stringExpr:
		return string(x), nil
	case identExpr:
		return evalIdent(x)
	case *callExpr:
		return evalCall(x)
	}
	return nil, fmt.Errorf("unhandled expression %T", e)
}

// evalIdent resolves a bare name: a pattern method reads as a transform
// ("every(3, rev)"); otherwise a zero-argument function is invoked
// ("silence", "sine").
func evalIdent(e identExpr) (Value, error) {
	if method, ok := dsl.ResolveMethod(e.name); ok {
		return pattern.Transform(func(p pattern.Pattern) pattern.Pattern {
			out, err := method(p, nil)
			if err != nil {
				return p
			}
			return out
		}), nil
	}
	if fn, ok := dsl.ResolveFunction(e.name); ok {
		return fn(nil)
	}
	return nil, fmt.Errorf("unknown name %q at position %d", e.name, e.pos)
}

func evalCall(e *callExpr) (Value, error) {
	args, err := evalArgs(e.args)
	if err != nil {
		return nil, err
	}

	if e.recv == nil {
		if fn, ok := dsl.ResolveFunction(e.name); ok {
			return fn(args)
		}
		// A receiverless call to a method name is a curried transform:
		// fast(2) in argument position means "apply fast 2".
		if method, ok := dsl.ResolveMethod(e.name); ok {
			return pattern.Transform(func(p pattern.Pattern) pattern.Pattern {
				out, err := method(p, args)
				if err != nil {
					return p
				}
				return out
			}), nil
		}
		return nil, fmt.Errorf("unknown function %q at position %d", e.name, e.pos)
	}

	recv, err := eval(e.recv)
	if err != nil {
		return nil, err
	}
	switch r := recv.(type) {
	case pattern.Pattern:
		method, ok := dsl.ResolveMethod(e.name)
		if !ok {
			return nil, fmt.Errorf("unknown method %q at position %d", e.name, e.pos)
		}
		return method(r, args)
	case string:
		method, ok := dsl.ResolveStringMethod(e.name)
		if !ok {
			return nil, fmt.Errorf("unknown method %q at position %d", e.name, e.pos)
		}
		return method(r, args)
	default:
		return nil, fmt.Errorf("cannot call %q on %T", e.name, recv)
	}
}

func evalArgs(exprs []expr) (dsl.Args, error) {
	raw := make([]interface{}, len(exprs))
	for i, e := range exprs {
		v, err := eval(e)
		if err != nil {
			return nil, err
		}
		raw[i] = v
	}
	return dsl.NormalizeArgs(raw), nil
}
