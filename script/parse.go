package script

import (
	"fmt"
	"strconv"
)

type expr interface {
	isExpr()
}

func (numberExpr) isExpr() {}
func (stringExpr) isExpr() {}
func (identExpr) isExpr()  {}
func (*callExpr) isExpr()  {}

type numberExpr float64

type stringExpr string

type identExpr struct {
	name string
	pos  int
}

// callExpr is a call with an optional receiver: recv is nil for the free
// function shape.
type callExpr struct {
	recv expr
	name string
	pos  int
	args []expr
}

func parse(input string) (expr, error) {
	tokens, err := lex(input)
	if err != nil {
		return nil, err
	}
	p := parser{tokens: tokens}
	e, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if tok := p.next(); tok.typ != typeEOF {
		return nil, unexpected(tok)
	}
	return e, nil
}

type parser struct {
	pos    int
	tokens []token
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

// parseExpr reads a primary expression followed by any chain of method
// calls.
func (p *parser) parseExpr() (expr, error) {
	e, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for p.peek().typ == typeDot {
		p.next()
		name := p.next()
		if name.typ != typeIdentifier {
			return nil, unexpected(name)
		}
		call := &callExpr{recv: e, name: name.text, pos: name.pos}
		if p.peek().typ == typeLeftParen {
			args, err := p.parseArgs()
			if err != nil {
				return nil, err
			}
			call.args = args
		}
		e = call
	}
	return e, nil
}

func (p *parser) parsePrimary() (expr, error) {
	switch tok := p.next(); tok.typ {
	case typeNumber:
		f, err := strconv.ParseFloat(tok.text, 64)
		if err != nil {
			return nil, fmt.Errorf("bad number %q at position %d", tok.text, tok.pos)
		}
		return numberExpr(f), nil
	case typeString:
		return stringExpr(tok.text), nil
	case typeIdentifier:
		if p.peek().typ == typeLeftParen {
			args, err := p.parseArgs()
			if err != nil {
				return nil, err
			}
			return &callExpr{name: tok.text, pos: tok.pos, args: args}, nil
		}
		return identExpr{name: tok.text, pos: tok.pos}, nil
	default:
		return nil, unexpected(tok)
	}
}

func (p *parser) parseArgs() ([]expr, error) {
	p.next() // consume '('
	var args []expr
	if p.peek().typ == typeRightParen {
		p.next()
		return args, nil
	}
	for {
		arg, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		switch tok := p.next(); tok.typ {
		case typeComma:
		case typeRightParen:
			return args, nil
		default:
			return nil, unexpected(tok)
		}
	}
}

func unexpected(t token) error {
	if t.typ == typeEOF {
		return fmt.Errorf("unexpected end of input")
	}
	return fmt.Errorf("unexpected %q at position %d", t.text, t.pos)
}
