package mini

import (
	"fmt"
	"strconv"

	"github.com/loomlang/loom/pattern"
)

// AtomFactory turns one mini-notation token into a voice. Note-producing
// and numeric-producing operations install different factories.
type AtomFactory func(token string) (pattern.Voice, error)

// NumberFactory reads tokens as plain numbers carried in the voice's raw
// value.
func NumberFactory(token string) (pattern.Voice, error) {
	f, err := strconv.ParseFloat(token, 64)
	if err != nil {
		return pattern.Voice{}, fmt.Errorf("not a number: %q", token)
	}
	var v pattern.Voice
	return v.WithValue(f), nil
}

// BoolFactory reads tokens as truth values: t/true/1 and f/false/0.
func BoolFactory(token string) (pattern.Voice, error) {
	var v pattern.Voice
	switch token {
	case "t", "true", "1":
		return v.WithValue(1), nil
	case "f", "false", "0":
		return v.WithValue(0), nil
	}
	return v, fmt.Errorf("not a truth value: %q", token)
}

// Parse reads mini-notation into a pattern, one top-level sequence per
// cycle. Comma-separated sequences play stacked; [..] groups subdivide
// their step; <..> alternates per cycle; *n and /n scale a term's tempo.
func Parse(input string, atom AtomFactory) (pattern.Pattern, error) {
	tokens, err := lex(input)
	if err != nil {
		return nil, err
	}
	p := parser{tokens: tokens, atom: atom}
	pat, err := p.parseGroup(typeEOF)
	if err != nil {
		return nil, err
	}
	if tok := p.next(); tok.typ != typeEOF {
		return nil, unexpected(tok)
	}
	return pat, nil
}

type parser struct {
	pos    int
	tokens []token
	atom   AtomFactory
}

func (p *parser) next() token {
	t := p.tokens[p.pos]
	if t.typ != typeEOF {
		p.pos++
	}
	return t
}

func (p *parser) peek() token {
	return p.tokens[p.pos]
}

// parseGroup reads comma-separated sequences up to the closing token and
// stacks them.
func (p *parser) parseGroup(close tokenType) (pattern.Pattern, error) {
	var layers []pattern.Pattern
	for {
		seq, err := p.parseSequence(close)
		if err != nil {
			return nil, err
		}
		layers = append(layers, seq)
		if p.peek().typ != typeComma {
			break
		}
		p.next()
	}
	if len(layers) == 1 {
		return layers[0], nil
	}
	return pattern.Stack(layers...), nil
}

// parseSequence reads terms until the closing token or a comma and
// subdivides one cycle evenly over them.
func (p *parser) parseSequence(close tokenType) (pattern.Pattern, error) {
	var terms []pattern.Pattern
	for {
		tok := p.peek()
		if tok.typ == close || tok.typ == typeComma || tok.typ == typeEOF {
			break
		}
		term, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		terms = append(terms, term)
	}
	switch len(terms) {
	case 0:
		return pattern.Silence, nil
	case 1:
		return terms[0], nil
	}
	return pattern.Sequence(terms...), nil
}

func (p *parser) parseTerm() (pattern.Pattern, error) {
	var term pattern.Pattern
	switch tok := p.next(); tok.typ {
	case typeAtom:
		v, err := p.atom(tok.text)
		if err != nil {
			return nil, fmt.Errorf("at position %d: %w", tok.pos, err)
		}
		term = pattern.Pure(v)
	case typeRest:
		term = pattern.Silence
	case typeOpenBracket:
		group, err := p.parseGroup(typeCloseBracket)
		if err != nil {
			return nil, err
		}
		if tok := p.next(); tok.typ != typeCloseBracket {
			return nil, unexpected(tok)
		}
		term = group
	case typeOpenAngle:
		alts, err := p.parseAlternation()
		if err != nil {
			return nil, err
		}
		term = alts
	default:
		return nil, unexpected(tok)
	}
	return p.parseModifiers(term)
}

// parseAlternation reads terms up to '>' and plays one per cycle.
func (p *parser) parseAlternation() (pattern.Pattern, error) {
	var terms []pattern.Pattern
	for p.peek().typ != typeCloseAngle {
		if p.peek().typ == typeEOF {
			return nil, unexpected(p.peek())
		}
		term, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		terms = append(terms, term)
	}
	p.next()
	return pattern.Slowcat(terms...), nil
}

func (p *parser) parseModifiers(term pattern.Pattern) (pattern.Pattern, error) {
	for {
		switch p.peek().typ {
		case typeStar:
			p.next()
			rate, err := p.parseRate()
			if err != nil {
				return nil, err
			}
			term = pattern.Fast(rate, term)
		case typeSlash:
			p.next()
			rate, err := p.parseRate()
			if err != nil {
				return nil, err
			}
			term = pattern.Slow(rate, term)
		default:
			return term, nil
		}
	}
}

func (p *parser) parseRate() (float64, error) {
	tok := p.next()
	if tok.typ != typeAtom {
		return 0, unexpected(tok)
	}
	rate, err := strconv.ParseFloat(tok.text, 64)
	if err != nil {
		return 0, fmt.Errorf("bad rate %q at position %d", tok.text, tok.pos)
	}
	return rate, nil
}

func unexpected(t token) error {
	if t.typ == typeEOF {
		return fmt.Errorf("unexpected end of pattern")
	}
	return fmt.Errorf("unexpected token %q at position %d", t.text, t.pos)
}
