package parser

import (
	"github.com/axis-lang/axis-core/axis/surface/ast"
	"github.com/axis-lang/axis-core/axis/token"
)

// parseFnDecl handles `fn IDENT '(' params? ')' '->' type block`.
func (p *Parser) parseFnDecl() *ast.FnDecl {
	start := p.cur().Span
	p.advance() // 'fn'

	name, ok := p.expect(token.Ident)
	if !ok {
		return nil
	}

	if _, ok := p.expect(token.LParen); !ok {
		return nil
	}

	var params []ast.Param
	if !p.at(token.RParen) {
		for {
			pname, ok := p.expect(token.Ident)
			if !ok {
				return nil
			}
			if _, ok := p.expect(token.Colon); !ok {
				return nil
			}
			ptyp, ok := p.parseType()
			if !ok {
				return nil
			}
			params = append(params, ast.Param{Name: pname.Lexeme, TypeAnnot: ptyp, ParamSpan: pname.Span})

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
	if _, ok := p.expect(token.Arrow); !ok {
		return nil
	}

	retTyp, ok := p.parseType()
	if !ok {
		return nil
	}

	body := p.parseBlock()
	if body == nil {
		return nil
	}

	return &ast.FnDecl{
		Name:        name.Lexeme,
		Params:      params,
		ReturnAnnot: retTyp,
		Body:        body,
		DeclSpan:    start,
	}
}

// parseEnumDecl handles `enum IDENT '{' variant (',' variant)* ','? '}'`.
func (p *Parser) parseEnumDecl() *ast.EnumDecl {
	start := p.cur().Span
	p.advance() // 'enum'

	name, ok := p.expect(token.Ident)
	if !ok {
		return nil
	}
	if _, ok := p.expect(token.LBrace); !ok {
		return nil
	}

	var variants []ast.EnumVariant
	for !p.at(token.RBrace) {
		v, ok := p.parseVariant()
		if !ok {
			return nil
		}
		variants = append(variants, v)

		if p.at(token.Comma) {
			p.advance()
			continue
		}
		break
	}

	if _, ok := p.expect(token.RBrace); !ok {
		return nil
	}

	return &ast.EnumDecl{Name: name.Lexeme, Variants: variants, DeclSpan: start}
}

func (p *Parser) parseVariant() (ast.EnumVariant, bool) {
	name, ok := p.expect(token.Ident)
	if !ok {
		return ast.EnumVariant{}, false
	}

	v := ast.EnumVariant{Name: name.Lexeme}
	if !p.at(token.LParen) {
		return v, true
	}
	p.advance() // '('

	for {
		fname, ok := p.expect(token.Ident)
		if !ok {
			return ast.EnumVariant{}, false
		}
		if _, ok := p.expect(token.Colon); !ok {
			return ast.EnumVariant{}, false
		}
		ftyp, ok := p.parseType()
		if !ok {
			return ast.EnumVariant{}, false
		}
		v.Fields = append(v.Fields, ast.EnumField{Name: fname.Lexeme, TypeAnnot: ftyp})

		if p.at(token.Comma) {
			p.advance()
			continue
		}
		break
	}

	if _, ok := p.expect(token.RParen); !ok {
		return ast.EnumVariant{}, false
	}
	return v, true
}
