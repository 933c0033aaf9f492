// Package parser implements an LL(1) recursive-descent parser for the Axis
// surface grammar (spec.md §4.3): one parse function per grammar
// nonterminal, each consuming a deterministic token prefix, no
// backtracking, no speculative parsing. It is grounded on the teacher's
// koi/koi/parser package: the same expect/match/consume cursor discipline,
// generalized to the surface grammar's expression-oriented shape.
package parser

import (
	"fmt"

	"github.com/axis-lang/axis-core/axis/surface/ast"
	"github.com/axis-lang/axis-core/axis/token"
	"github.com/axis-lang/axis-core/util"
)

// ErrorKind classifies a parse failure.
type ErrorKind int

const (
	UnexpectedToken ErrorKind = iota
	UnexpectedEOF
	InvalidLiteral
)

func (k ErrorKind) String() string {
	switch k {
	case UnexpectedToken:
		return "UnexpectedToken"
	case UnexpectedEOF:
		return "UnexpectedEOF"
	case InvalidLiteral:
		return "InvalidLiteral"
	default:
		return "UnknownParseError"
	}
}

// Error is the sole structural failure type produced by the parser.
type Error struct {
	Kind   ErrorKind
	Span   token.Span
	Detail string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Span, e.Kind, e.Detail)
}

// topLevelSync are the token kinds a panic-recovering parser resumes at:
// the start of the next declaration, or end of file.
var topLevelSync = map[token.Kind]bool{
	token.Fn:   true,
	token.Enum: true,
	token.Eof:  true,
}

// Parser consumes a finite token slice (as produced by lexer.Lexer.ScanAll)
// and produces a SurfaceAst. It never backtracks: pos only moves forward.
type Parser struct {
	toks []token.Token
	pos  int
	errs util.ErrorList
}

// New builds a Parser over an already-lexed token stream.
func New(toks []token.Token) *Parser {
	return &Parser{toks: toks}
}

// Errors returns every accumulated parse error in document order.
func (p *Parser) Errors() []error {
	return p.errs.Errors()
}

// Err joins the accumulated parse errors, or nil if none.
func (p *Parser) Err() error {
	return p.errs.Err()
}

func (p *Parser) cur() token.Token {
	return p.toks[p.pos]
}

func (p *Parser) at(kind token.Kind) bool {
	return p.cur().Kind == kind
}

func (p *Parser) atAny(kinds ...token.Kind) bool {
	for _, k := range kinds {
		if p.at(k) {
			return true
		}
	}
	return false
}

func (p *Parser) advance() token.Token {
	t := p.cur()
	if t.Kind != token.Eof {
		p.pos++
	}
	return t
}

// expect consumes the current token if it matches kind, else records an
// UnexpectedToken/UnexpectedEOF error and returns the zero Token.
func (p *Parser) expect(kind token.Kind) (token.Token, bool) {
	if p.at(kind) {
		return p.advance(), true
	}
	p.errUnexpected(kind)
	return token.Token{}, false
}

func (p *Parser) errUnexpected(want token.Kind) {
	t := p.cur()
	if t.Kind == token.Eof {
		p.errs.Add(&Error{Kind: UnexpectedEOF, Span: t.Span, Detail: fmt.Sprintf("expected %s", want)})
		return
	}
	p.errs.Add(&Error{
		Kind:   UnexpectedToken,
		Span:   t.Span,
		Detail: fmt.Sprintf("expected %s, found %s %q", want, t.Kind, t.Lexeme),
	})
}

func (p *Parser) err(span token.Span, format string, args ...any) {
	p.errs.Add(&Error{Kind: UnexpectedToken, Span: span, Detail: fmt.Sprintf(format, args...)})
}

// syncToTopLevel discards tokens until a declaration boundary or Eof, so a
// single malformed declaration does not stop the whole file from parsing.
func (p *Parser) syncToTopLevel() {
	for !topLevelSync[p.cur().Kind] {
		p.advance()
	}
}

// Parse consumes the whole token stream and returns the resulting File.
// On error the returned File still holds every declaration parsed before
// and after the failure point; callers must consult Err() before trusting
// it, per spec.md §4.4's "no partial bundle is emitted" rule enforced one
// layer up in the orchestrator.
func (p *Parser) Parse() *ast.File {
	f := &ast.File{}
	for !p.at(token.Eof) {
		d := p.parseDecl()
		if d != nil {
			f.Decls = append(f.Decls, d)
		} else {
			p.syncToTopLevel()
		}
	}
	return f
}

func (p *Parser) parseDecl() ast.Decl {
	switch p.cur().Kind {
	case token.Fn:
		return p.parseFnDecl()
	case token.Enum:
		return p.parseEnumDecl()
	default:
		p.err(p.cur().Span, "expected fn or enum declaration, found %s %q", p.cur().Kind, p.cur().Lexeme)
		return nil
	}
}

func (p *Parser) parseType() (string, bool) {
	t, ok := p.expect(token.Ident)
	return t.Lexeme, ok
}
