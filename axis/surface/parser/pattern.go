package parser

import (
	"strconv"

	"github.com/axis-lang/axis-core/axis/surface/ast"
	"github.com/axis-lang/axis-core/axis/token"
)

// parsePattern handles the pattern grammar. A bare IDENT is always parsed
// as PVar here; lowering later reclassifies it as a field-less enum
// constructor pattern when the name resolves to one, mirroring how apply()
// leaves the Var-vs-constructor call decision to lowering as well.
func (p *Parser) parsePattern() ast.Pattern {
	t := p.cur()

	switch t.Kind {
	case token.Int:
		p.advance()
		n, err := strconv.ParseInt(t.Lexeme, 10, 64)
		if err != nil {
			p.errs.Add(&Error{Kind: InvalidLiteral, Span: t.Span, Detail: "integer literal out of range: " + t.Lexeme})
			return nil
		}
		return &ast.PInt{Value: n, PatSpan: t.Span}

	case token.True:
		p.advance()
		return &ast.PBool{Value: true, PatSpan: t.Span}

	case token.False:
		p.advance()
		return &ast.PBool{Value: false, PatSpan: t.Span}

	case token.LParen:
		return p.parseParenPattern()

	case token.Ident:
		p.advance()
		if p.at(token.LParen) {
			return p.parseEnumPattern(t)
		}
		return &ast.PVar{Name: t.Lexeme, PatSpan: t.Span}

	default:
		p.err(t.Span, "expected pattern, found %s %q", t.Kind, t.Lexeme)
		return nil
	}
}

func (p *Parser) parseParenPattern() ast.Pattern {
	start := p.cur().Span
	p.advance() // '('

	if p.at(token.RParen) {
		p.advance()
		return &ast.PUnit{PatSpan: start}
	}

	first := p.parsePattern()
	if first == nil {
		return nil
	}

	if !p.at(token.Comma) {
		if _, ok := p.expect(token.RParen); !ok {
			return nil
		}
		return first
	}

	elems := []ast.Pattern{first}
	for p.at(token.Comma) {
		p.advance()
		if p.at(token.RParen) {
			break
		}
		e := p.parsePattern()
		if e == nil {
			return nil
		}
		elems = append(elems, e)
	}

	if _, ok := p.expect(token.RParen); !ok {
		return nil
	}
	return &ast.PTuple{Elems: elems, PatSpan: start}
}

func (p *Parser) parseEnumPattern(nameTok token.Token) ast.Pattern {
	p.advance() // '('

	var inner []ast.Pattern
	if !p.at(token.RParen) {
		for {
			e := p.parsePattern()
			if e == nil {
				return nil
			}
			inner = append(inner, e)

			if p.at(token.Comma) {
				p.advance()
				continue
			}
			break
		}
	}

	if _, ok := p.expect(token.RParen); !ok {
		return nil
	}

	return &ast.PEnum{Name: nameTok.Lexeme, Inner: inner, PatSpan: nameTok.Span}
}
