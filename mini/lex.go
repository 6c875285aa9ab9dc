// Package mini parses the mini-notation used for pattern literals:
// "c e g", "bd ~ sn", "[bd bd] sn", "<c e> g", "bd*2 sn, hh/2". What a
// plain token means is decided by the caller through an atom factory, so
// the same grammar serves note names, sample names and numbers.
package mini

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

type tokenType int

const (
	typeUnknown tokenType = iota
	typeAtom
	typeRest
	typeOpenBracket
	typeCloseBracket
	typeOpenAngle
	typeCloseAngle
	typeComma
	typeStar
	typeSlash
	typeEOF
)

const eof = -1

var simpleTokens = map[rune]tokenType{
	'~': typeRest,
	'[': typeOpenBracket,
	']': typeCloseBracket,
	'<': typeOpenAngle,
	'>': typeCloseAngle,
	',': typeComma,
	'*': typeStar,
	'/': typeSlash,
}

type token struct {
	typ  tokenType
	pos  int
	text string
}

func lex(input string) ([]token, error) {
	l := &lexer{input: input}
	return l.lex()
}

type lexer struct {
	input string

	width int
	start int
	pos   int

	tokens []token
	err    error
}

func (l *lexer) lex() ([]token, error) {
	for {
		switch r := l.next(); {
		case r == eof:
			l.yieldToken(typeEOF)
			return l.tokens, l.err
		case isAtomStart(r):
			l.lexAtom()
		case unicode.IsSpace(r):
			l.ignoreSpace()
		default:
			if typ, ok := simpleTokens[r]; ok {
				l.yieldToken(typ)
			} else {
				l.errorf("unexpected character: %#U", r)
			}
		}
		if l.err != nil {
			return l.tokens, l.err
		}
	}
}

func (l *lexer) next() rune {
	if len(l.input) == l.pos {
		l.width = 0
		return eof
	}
	r, w := utf8.DecodeRuneInString(l.input[l.pos:])
	l.width = w
	l.pos += l.width
	return r
}

func (l *lexer) peek() rune {
	r := l.next()
	l.backup()
	return r
}

func (l *lexer) backup() {
	l.pos -= l.width
}

func (l *lexer) yieldToken(t tokenType) {
	s := l.input[l.start:l.pos]
	l.tokens = append(l.tokens, token{t, l.pos, s})
	l.start = l.pos
	l.width = 0
}

func (l *lexer) errorf(format string, args ...interface{}) {
	l.err = fmt.Errorf(format, args...)
}

func (l *lexer) ignoreSpace() {
	for unicode.IsSpace(l.peek()) {
		l.next()
	}
	l.start = l.pos
}

// An atom is any run of name or number characters: "bd", "c#3", "808:2",
// "0.25", "-12". The factory gives it meaning later.
func isAtomStart(r rune) bool {
	return unicode.IsLetter(r) || isDigit(r) || r == '-' || r == '.'
}

func isAtomRune(r rune) bool {
	return unicode.IsLetter(r) || isDigit(r) ||
		strings.ContainsRune("#.:_-'", r)
}

func (l *lexer) lexAtom() {
	for {
		r := l.next()
		if isAtomRune(r) {
			continue
		}
		if r != eof {
			l.backup()
		}
		l.yieldToken(typeAtom)
		return
	}
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
