package dsl

import (
	"fmt"
	"strconv"

	"github.com/loomlang/loom/mini"
	"github.com/loomlang/loom/pattern"
)

// Arg wraps one call-site value. The position is call-site metadata for
// diagnostics only; dispatch never looks at it.
type Arg struct {
	Pos int

	lit interface{} // float64, string or bool literal
	pat pattern.Pattern
	fn  pattern.Transform
}

// Args is a normalized argument list. Missing trailing arguments read as
// absent, which operations resolve to their own defaults (commonly
// identity).
type Args []Arg

// NormalizeArgs converts raw call-site values into the uniform argument
// shape. Patterns and transforms pass through; numbers, strings and bools
// stay literal until an operation decides what they mean — in particular a
// string is only parsed as mini-notation when an operation asks for it as a
// pattern, since the same list serves all three call shapes.
func NormalizeArgs(raw []interface{}) Args {
	args := make(Args, len(raw))
	for i, v := range raw {
		args[i] = Arg{Pos: i}
		switch x := v.(type) {
		case pattern.Pattern:
			args[i].pat = x
		case pattern.Transform:
			args[i].fn = x
		case func(pattern.Pattern) pattern.Pattern:
			args[i].fn = x
		case float64, string, bool:
			args[i].lit = x
		case int:
			args[i].lit = float64(x)
		case nil:
			// absent
		default:
			args[i].lit = fmt.Sprint(x)
		}
	}
	return args
}

// At returns the i-th argument, or an absent one when the list is shorter.
func (a Args) At(i int) Arg {
	if i < 0 || i >= len(a) {
		return Arg{Pos: i}
	}
	return a[i]
}

func (a Arg) IsAbsent() bool {
	return a.lit == nil && a.pat == nil && a.fn == nil
}

// IsLiteral reports whether the argument is a plain number, string or bool.
func (a Arg) IsLiteral() bool { return a.lit != nil }

// IsString reports a string literal, which operations treat as
// mini-notation source text rather than a constant.
func (a Arg) IsString() bool {
	_, ok := a.lit.(string)
	return ok
}

// Token renders a literal as mini-notation token text, the shape atom
// factories consume.
func (a Arg) Token() string {
	switch x := a.lit.(type) {
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case string:
		return x
	case bool:
		if x {
			return "1"
		}
		return "0"
	}
	return ""
}

// Voice materializes a literal argument through an atom factory.
func (a Arg) Voice(atom mini.AtomFactory) (pattern.Voice, error) {
	if !a.IsLiteral() {
		return pattern.Voice{}, fmt.Errorf("argument %d is not a literal", a.Pos)
	}
	return atom(a.Token())
}

// Pattern materializes the argument as a pattern: patterns pass through
// with lift applied to their voices, strings parse as mini-notation through
// the operation's atom factory, and numbers and bools become constant
// patterns valid for all time.
func (a Arg) Pattern(atom mini.AtomFactory, lift func(pattern.Voice) pattern.Voice) (pattern.Pattern, error) {
	switch {
	case a.pat != nil:
		return pattern.Map(a.pat, lift), nil
	case a.lit != nil:
		if s, ok := a.lit.(string); ok {
			return mini.Parse(s, atom)
		}
		v, err := atom(a.Token())
		if err != nil {
			return nil, err
		}
		return pattern.Steady(v), nil
	}
	return nil, fmt.Errorf("argument %d is not a pattern", a.Pos)
}

// Float reads a numeric argument, falling back to def when the argument is
// absent or not usable as a number. A bad parameter degrades, it never
// fails a pattern.
func (a Arg) Float(def float64) float64 {
	switch x := a.lit.(type) {
	case float64:
		return x
	case string:
		if f, err := strconv.ParseFloat(x, 64); err == nil {
			return f
		}
	case bool:
		if x {
			return 1
		}
		return 0
	}
	return def
}

func (a Arg) Int(def int) int {
	return int(a.Float(float64(def)))
}

// Str reads a string argument, falling back to def.
func (a Arg) Str(def string) string {
	if s, ok := a.lit.(string); ok {
		return s
	}
	return def
}

// Transform reads a transformation argument. Absent or mismatched
// arguments yield the identity transform.
func (a Arg) Transform() pattern.Transform {
	return a.fn
}
