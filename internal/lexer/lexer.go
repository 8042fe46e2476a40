// Package lexer turns Lox source text into a token stream.
//
// Adapted from pongo2's lexer.go: the rune-at-a-time cursor (next/backup/
// peek/acceptRun) and the emit-on-recognize discipline are kept from a
// template scanner that also had to track line/column and report lexical
// errors with location info. What changed is the grammar —
// there are no template delimiters, verbatim blocks or comments-with-hash;
// instead there is Lox's closed punctuation/operator/keyword/literal set.
package lexer

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/loxlang/lox/internal/diag"
	"github.com/loxlang/lox/internal/loxerr"
	"github.com/loxlang/lox/internal/token"
)

const eof rune = -1

var tokenIdentifierStartChars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ_"
var tokenIdentifierChars = tokenIdentifierStartChars + "0123456789"
var tokenDigits = "0123456789"

// singleCharTokens maps a one-character lexeme to its token type for the
// characters that are never the first half of a two-character operator.
var singleCharTokens = map[rune]token.Type{
	'(': token.LeftParen, ')': token.RightParen,
	'{': token.LeftBrace, '}': token.RightBrace,
	',': token.Comma, '.': token.Dot, '-': token.Minus, '+': token.Plus,
	';': token.Semicolon, '*': token.Star,
}

// Lexer performs a single forward pass over the source with one rune of
// lookahead (two when checking for a number's fractional part), producing
// the ordered token sequence the parser consumes.
type Lexer struct {
	filename string
	input    string
	start    int // byte offset where the current lexeme begins
	pos      int // current byte offset (cursor)
	width    int // byte width of the last rune returned by next()

	line      int
	startLine int

	sink diag.Sink

	tokens []token.Token
}

// New constructs a Lexer for the given source. filename is used only for
// error reporting.
func New(filename, input string, sink diag.Sink) *Lexer {
	if sink == nil {
		sink = diag.Noop()
	}
	return &Lexer{
		filename:  filename,
		input:     input,
		line:      1,
		startLine: 1,
		sink:      sink,
	}
}

// Scan tokenizes the whole input and returns the token sequence, always
// terminated by a single EOF token. Returns a *loxerr.Error on the first
// lexical error (unterminated string, unrecognised character).
func (l *Lexer) Scan() ([]token.Token, error) {
	for {
		l.start = l.pos
		l.startLine = l.line

		r := l.next()
		switch {
		case r == eof:
			l.emit(token.EOF, "")
			l.sink.Tokenized(len(l.tokens))
			return l.tokens, nil
		case r == ' ' || r == '\r' || r == '\t':
			continue
		case r == '\n':
			l.line++
			continue
		case r == '/':
			if l.match('/') {
				for l.peek() != '\n' && l.peek() != eof {
					l.next()
				}
				continue
			}
			l.emit(token.Slash, "/")
		case r == '!':
			if l.match('=') {
				l.emit(token.BangEqual, "!=")
			} else {
				l.emit(token.Bang, "!")
			}
		case r == '=':
			if l.match('=') {
				l.emit(token.EqualEqual, "==")
			} else {
				l.emit(token.Equal, "=")
			}
		case r == '<':
			if l.match('=') {
				l.emit(token.LessEqual, "<=")
			} else {
				l.emit(token.Less, "<")
			}
		case r == '>':
			if l.match('=') {
				l.emit(token.GreaterEqual, ">=")
			} else {
				l.emit(token.Greater, ">")
			}
		case r == '"':
			if err := l.scanString(); err != nil {
				return nil, err
			}
		case isDigit(r):
			l.scanNumber()
		case isAlpha(r):
			l.scanIdentifier()
		default:
			if typ, ok := singleCharTokens[r]; ok {
				l.emit(typ, string(r))
				continue
			}
			return nil, loxerr.New(loxerr.Lex, l.filename, l.startLine, string(r),
				"unrecognised character '"+string(r)+"'")
		}
	}
}

func (l *Lexer) next() rune {
	if l.pos >= len(l.input) {
		l.width = 0
		return eof
	}
	r, w := utf8.DecodeRuneInString(l.input[l.pos:])
	l.width = w
	l.pos += w
	return r
}

func (l *Lexer) backup() {
	l.pos -= l.width
}

func (l *Lexer) peek() rune {
	r := l.next()
	l.backup()
	return r
}

func (l *Lexer) peekNext() rune {
	if l.pos >= len(l.input) {
		return eof
	}
	_, w := utf8.DecodeRuneInString(l.input[l.pos:])
	if l.pos+w >= len(l.input) {
		return eof
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.pos+w:])
	return r
}

// match consumes the next rune if it equals want.
func (l *Lexer) match(want rune) bool {
	if l.peek() != want {
		return false
	}
	l.next()
	return true
}

func (l *Lexer) value() string {
	return l.input[l.start:l.pos]
}

func (l *Lexer) emit(typ token.Type, lexeme string) {
	l.tokens = append(l.tokens, token.New(typ, lexeme, nil, l.startLine))
}

func (l *Lexer) scanString() error {
	for l.peek() != '"' {
		if l.peek() == eof {
			return loxerr.New(loxerr.Lex, l.filename, l.startLine, "", "unterminated string")
		}
		if l.peek() == '\n' {
			l.line++
		}
		l.next()
	}
	l.next() // closing quote
	literal := l.input[l.start+1 : l.pos-1]
	l.tokens = append(l.tokens, token.New(token.String, literal, literal, l.startLine))
	return nil
}

func (l *Lexer) scanNumber() {
	l.acceptRun(tokenDigits)
	if l.peek() == '.' && isDigit(l.peekNext()) {
		l.next() // consume '.'
		l.acceptRun(tokenDigits)
	}
	lexeme := l.value()
	f, _ := strconv.ParseFloat(lexeme, 64)
	l.tokens = append(l.tokens, token.New(token.Number, lexeme, f, l.startLine))
}

func (l *Lexer) scanIdentifier() {
	l.acceptRun(tokenIdentifierChars)
	lexeme := l.value()
	if typ, ok := token.Keywords[lexeme]; ok {
		l.emit(typ, lexeme)
		return
	}
	l.tokens = append(l.tokens, token.New(token.Identifier, lexeme, nil, l.startLine))
}

func (l *Lexer) acceptRun(valid string) {
	for strings.ContainsRune(valid, l.peek()) {
		l.next()
	}
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isAlpha(r rune) bool {
	return strings.ContainsRune(tokenIdentifierStartChars, r)
}
