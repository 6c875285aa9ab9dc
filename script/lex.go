// Package script evaluates the live-coding language's surface syntax:
// chained calls like note("c e g").fast(2).every(3, rev). It owns no
// vocabulary of its own; every name is resolved late through the dsl
// registry, so anything declared there is callable here.
package script

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

type tokenType int

const (
	typeUnknown tokenType = iota
	typeNumber
	typeIdentifier
	typeString
	typeDot
	typeComma
	typeLeftParen
	typeRightParen
	typeEOF
)

const eof = -1

var simpleTokens = map[rune]tokenType{
	'.': typeDot,
	',': typeComma,
	'(': typeLeftParen,
	')': typeRightParen,
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
		case unicode.IsLetter(r) || r == '_':
			l.lexIdentifier()
		case l.isNumber(r):
			l.lexNumber()
		case r == '"':
			l.lexString()
		case unicode.IsSpace(r):
			l.ignoreSpace()
		default:
			if typ, ok := simpleTokens[r]; ok {
				l.yieldToken(typ)
			} else {
				l.invalidChar(r)
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
	l.tokens = append(l.tokens, token{t, l.start, s})
	l.start = l.pos
	l.width = 0
}

func (l *lexer) errorf(format string, args ...interface{}) {
	l.err = fmt.Errorf(format, args...)
}

func (l *lexer) invalidChar(r rune) {
	l.errorf("unexpected character: %#U", r)
}

func (l *lexer) ignoreSpace() {
	for unicode.IsSpace(l.peek()) {
		l.next()
	}
	l.start = l.pos
}

func (l *lexer) take(set string) int {
	var n int
	for strings.IndexRune(set, l.next()) >= 0 {
		n++
	}
	l.backup()
	return n
}

func (l *lexer) accept(set string) bool {
	if strings.IndexRune(set, l.next()) >= 0 {
		return true
	}
	l.backup()
	return false
}

func (l *lexer) lexIdentifier() {
	for {
		r := l.next()
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			continue
		}
		if r != eof {
			l.backup()
		}
		l.yieldToken(typeIdentifier)
		return
	}
}

const digits = "0123456789"

func (l *lexer) lexNumber() {
	l.backup()
	l.accept("-")
	l.take(digits)
	if l.accept(".") {
		l.take(digits)
	}
	l.yieldToken(typeNumber)
}

func (l *lexer) isNumber(r rune) bool {
	if isDigit(r) {
		return true
	}
	return r == '-' && isDigit(l.peek())
}

// lexString scans a double-quoted string; the quotes are kept out of the
// token text. There are no escapes: mini-notation never needs them.
func (l *lexer) lexString() {
	l.start = l.pos
	for {
		switch r := l.next(); r {
		case '"':
			l.backup()
			l.yieldToken(typeString)
			l.next()
			l.start = l.pos
			return
		case eof:
			l.errorf("unterminated string")
			return
		}
	}
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
