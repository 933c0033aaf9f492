// Package lexer tokenizes surface source into a flat, finite, non-restartable
// token stream. It is grounded on the teacher's koi/koi/scanner package: the
// same offset-cursor design (cur/peek/consume/eof), generalized to the
// closed punctuation and keyword set of the Axis surface language.
package lexer

import (
	"fmt"
	"strings"

	"github.com/axis-lang/axis-core/axis/token"
	"github.com/axis-lang/axis-core/util"
)

// InvalidLiteralError reports a byte or literal the lexer cannot classify.
type InvalidLiteralError struct {
	Span token.Span
	Text string
}

func (e *InvalidLiteralError) Error() string {
	return fmt.Sprintf("%s: invalid literal: %q", e.Span, e.Text)
}

// UnexpectedEOFError reports source ending mid-construct (e.g. an
// unterminated line comment introducer, though `//` comments cannot
// actually be unterminated; reserved for future multi-byte constructs).
type UnexpectedEOFError struct {
	Span token.Span
}

func (e *UnexpectedEOFError) Error() string {
	return fmt.Sprintf("%s: unexpected end of file", e.Span)
}

// Lexer produces tokens for a single file, one at a time, in order. It is
// not restartable: once exhausted it only ever yields Eof.
type Lexer struct {
	file   *token.File
	src    []byte
	offset int
	errs   util.ErrorList
}

// New builds a Lexer over file's source.
func New(file *token.File) *Lexer {
	return &Lexer{file: file, src: file.Src}
}

// Errors returns every InvalidLiteralError/UnexpectedEOFError observed so
// far. Lexing keeps going after an error so a caller can collect every
// tokenization problem in one pass.
func (l *Lexer) Errors() []error {
	return l.errs.Errors()
}

// Err joins the accumulated lexer errors, or nil if none.
func (l *Lexer) Err() error {
	return l.errs.Err()
}

// ScanAll drains the lexer into a token slice ending with a single Eof
// token, regardless of errors encountered along the way.
func (l *Lexer) ScanAll() []token.Token {
	var toks []token.Token
	for {
		t := l.Next()
		toks = append(toks, t)
		if t.Kind == token.Eof {
			return toks
		}
	}
}

func (l *Lexer) eof() bool {
	return l.offset >= len(l.src)
}

func (l *Lexer) cur() byte {
	if l.eof() {
		return 0
	}
	return l.src[l.offset]
}

func (l *Lexer) peek() byte {
	if l.offset+1 >= len(l.src) {
		return 0
	}
	return l.src[l.offset+1]
}

func (l *Lexer) consume() byte {
	c := l.cur()
	l.offset++
	return c
}

func (l *Lexer) span(start int) token.Span {
	return l.file.Position(start)
}

// Next consumes and returns the next token, skipping whitespace and
// `//`-comments. Once the source is exhausted, Next always returns an Eof
// token at the final offset.
func (l *Lexer) Next() token.Token {
	l.skipTrivia()

	start := l.offset
	if l.eof() {
		return token.Token{Kind: token.Eof, Span: l.span(start)}
	}

	c := l.cur()

	switch {
	case isIdentStart(c):
		return l.scanIdent(start)
	case isDigit(c):
		return l.scanInt(start)
	}

	if tok, ok := l.scanPunct(start); ok {
		return tok
	}

	l.consume()
	l.errs.Add(&InvalidLiteralError{Span: l.span(start), Text: string(c)})
	return token.Token{Kind: token.Illegal, Lexeme: string(c), Span: l.span(start)}
}

func (l *Lexer) skipTrivia() {
	for !l.eof() {
		c := l.cur()
		if isWhitespace(c) {
			l.consume()
			continue
		}
		if c == '/' && l.peek() == '/' {
			for !l.eof() && l.cur() != '\n' {
				l.consume()
			}
			continue
		}
		break
	}
}

func (l *Lexer) scanIdent(start int) token.Token {
	for !l.eof() && isIdentCont(l.cur()) {
		l.consume()
	}
	lexeme := string(l.src[start:l.offset])

	if kind, ok := token.Lookup(lexeme); ok {
		return token.Token{Kind: kind, Lexeme: lexeme, Span: l.span(start)}
	}
	return token.Token{Kind: token.Ident, Lexeme: lexeme, Span: l.span(start)}
}

// scanInt accepts `0` or `[1-9][0-9]*`. A leading zero followed by more
// digits (e.g. `007`) is consumed greedily and reported as InvalidLiteral,
// since it matches neither production.
func (l *Lexer) scanInt(start int) token.Token {
	for !l.eof() && isDigit(l.cur()) {
		l.consume()
	}
	lexeme := string(l.src[start:l.offset])

	if len(lexeme) > 1 && lexeme[0] == '0' {
		l.errs.Add(&InvalidLiteralError{Span: l.span(start), Text: lexeme})
		return token.Token{Kind: token.Illegal, Lexeme: lexeme, Span: l.span(start)}
	}
	return token.Token{Kind: token.Int, Lexeme: lexeme, Span: l.span(start)}
}

// twoByteSymbols must be checked before their one-byte prefixes.
var twoByteSymbols = map[string]token.Kind{
	"->": token.Arrow,
	"=>": token.FatArrow,
}

var oneByteSymbols = map[byte]token.Kind{
	'(': token.LParen,
	')': token.RParen,
	'{': token.LBrace,
	'}': token.RBrace,
	'[': token.LBrack,
	']': token.RBrack,
	',': token.Comma,
	';': token.Semi,
	':': token.Colon,
	'|': token.Pipe,
	'=': token.Equals,
}

func (l *Lexer) scanPunct(start int) (token.Token, bool) {
	if l.offset+1 < len(l.src) {
		two := string(l.src[l.offset : l.offset+2])
		if kind, ok := twoByteSymbols[two]; ok {
			l.consume()
			l.consume()
			return token.Token{Kind: kind, Lexeme: two, Span: l.span(start)}, true
		}
	}

	if kind, ok := oneByteSymbols[l.cur()]; ok {
		c := l.consume()
		return token.Token{Kind: kind, Lexeme: string(c), Span: l.span(start)}, true
	}

	return token.Token{}, false
}

func isIdentStart(c byte) bool {
	return c == '_' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func isIdentCont(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func isWhitespace(c byte) bool {
	return strings.IndexByte(" \t\r\n", c) >= 0
}
