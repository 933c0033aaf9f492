package parser

import (
	"strconv"

	"github.com/axis-lang/axis-core/axis/surface/ast"
	"github.com/axis-lang/axis-core/axis/token"
)

func (p *Parser) parseExpr() ast.Expr {
	switch p.cur().Kind {
	case token.If:
		return p.parseIf()
	case token.Match:
		return p.parseMatch()
	case token.LBrace:
		return p.parseBlock()
	case token.Pipe:
		return p.parseLambda()
	default:
		return p.parseApply()
	}
}

func (p *Parser) parseIf() ast.Expr {
	start := p.cur().Span
	p.advance() // 'if'

	cond := p.parseExpr()
	if cond == nil {
		return nil
	}
	then := p.parseBlock()
	if then == nil {
		return nil
	}
	if _, ok := p.expect(token.Else); !ok {
		return nil
	}
	els := p.parseBlock()
	if els == nil {
		return nil
	}

	return &ast.If{Cond: cond, Then: then, Else: els, IfSpan: start}
}

func (p *Parser) parseMatch() ast.Expr {
	start := p.cur().Span
	p.advance() // 'match'

	// A bare name directly before '{' is the scrutinee itself: the brace
	// opens the arm list, not a record literal.
	var scrutinee ast.Expr
	if t := p.cur(); t.Kind == token.Ident && p.toks[p.pos+1].Kind == token.LBrace {
		p.advance()
		scrutinee = &ast.Var{Name: t.Lexeme, VarSpan: t.Span}
	} else {
		scrutinee = p.parseExpr()
	}
	if scrutinee == nil {
		return nil
	}
	if _, ok := p.expect(token.LBrace); !ok {
		return nil
	}

	var arms []ast.Arm
	for !p.at(token.RBrace) {
		pat := p.parsePattern()
		if pat == nil {
			return nil
		}
		if _, ok := p.expect(token.FatArrow); !ok {
			return nil
		}
		body := p.parseExpr()
		if body == nil {
			return nil
		}
		arms = append(arms, ast.Arm{Pattern: pat, Body: body})

		if p.at(token.Comma) {
			p.advance()
			continue
		}
		break
	}

	if _, ok := p.expect(token.RBrace); !ok {
		return nil
	}
	if len(arms) == 0 {
		p.err(start, "match must have at least one arm")
		return nil
	}

	return &ast.Match{Scrutinee: scrutinee, Arms: arms, MatchSpan: start}
}

func (p *Parser) parseLambda() ast.Expr {
	start := p.cur().Span
	p.advance() // '|'

	param, ok := p.expect(token.Ident)
	if !ok {
		return nil
	}
	if _, ok := p.expect(token.Pipe); !ok {
		return nil
	}
	body := p.parseExpr()
	if body == nil {
		return nil
	}

	return &ast.Lambda{Param: param.Lexeme, Body: body, LambdaSpan: start}
}

func (p *Parser) parseApply() ast.Expr {
	callee := p.parseAtom()
	if callee == nil {
		return nil
	}

	for p.at(token.LParen) {
		start := p.cur().Span
		p.advance() // '('

		var args []ast.Expr
		if !p.at(token.RParen) {
			for {
				a := p.parseExpr()
				if a == nil {
					return nil
				}
				args = append(args, a)

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

		callee = &ast.App{Callee: callee, Args: args, CallSpan: start}
	}

	return callee
}

func (p *Parser) parseAtom() ast.Expr {
	t := p.cur()

	switch t.Kind {
	case token.Int:
		p.advance()
		n, err := strconv.ParseInt(t.Lexeme, 10, 64)
		if err != nil {
			p.errs.Add(&Error{Kind: InvalidLiteral, Span: t.Span, Detail: "integer literal out of range: " + t.Lexeme})
			return nil
		}
		return &ast.IntLit{Value: n, LitSpan: t.Span}

	case token.True:
		p.advance()
		return &ast.BoolLit{Value: true, LitSpan: t.Span}

	case token.False:
		p.advance()
		return &ast.BoolLit{Value: false, LitSpan: t.Span}

	case token.Proj:
		return p.parseProj()

	case token.LParen:
		return p.parseParenOrTuple()

	case token.Ident:
		p.advance()
		if p.at(token.LBrace) {
			return p.parseRecord(t)
		}
		return &ast.Var{Name: t.Lexeme, VarSpan: t.Span}

	default:
		p.err(t.Span, "expected expression, found %s %q", t.Kind, t.Lexeme)
		return nil
	}
}

func (p *Parser) parseProj() ast.Expr {
	start := p.cur().Span
	p.advance() // 'proj'

	if _, ok := p.expect(token.LParen); !ok {
		return nil
	}
	e := p.parseExpr()
	if e == nil {
		return nil
	}
	if _, ok := p.expect(token.Comma); !ok {
		return nil
	}
	idxTok, ok := p.expect(token.Int)
	if !ok {
		return nil
	}
	idx, err := strconv.Atoi(idxTok.Lexeme)
	if err != nil || idx < 0 {
		p.errs.Add(&Error{Kind: InvalidLiteral, Span: idxTok.Span, Detail: "invalid projection index: " + idxTok.Lexeme})
		return nil
	}
	if _, ok := p.expect(token.RParen); !ok {
		return nil
	}

	return &ast.Proj{Expr: e, Index: idx, ProjSpan: start}
}

// parseParenOrTuple handles the three `(` productions: unit, a single
// parenthesized expression (unwrapped), and a tuple. A tuple has two or
// more elements, or one element followed by a trailing comma (`(e,)`).
func (p *Parser) parseParenOrTuple() ast.Expr {
	start := p.cur().Span
	p.advance() // '('

	if p.at(token.RParen) {
		p.advance()
		return &ast.UnitLit{LitSpan: start}
	}

	first := p.parseExpr()
	if first == nil {
		return nil
	}

	if !p.at(token.Comma) {
		if _, ok := p.expect(token.RParen); !ok {
			return nil
		}
		return first
	}

	elems := []ast.Expr{first}
	for p.at(token.Comma) {
		p.advance()
		if p.at(token.RParen) {
			break
		}
		e := p.parseExpr()
		if e == nil {
			return nil
		}
		elems = append(elems, e)
	}

	if _, ok := p.expect(token.RParen); !ok {
		return nil
	}
	return &ast.Tuple{Elems: elems, TupleSpan: start}
}

func (p *Parser) parseRecord(nameTok token.Token) ast.Expr {
	p.advance() // '{'

	var fields []ast.RecordField
	for !p.at(token.RBrace) {
		fname, ok := p.expect(token.Ident)
		if !ok {
			return nil
		}
		if _, ok := p.expect(token.Colon); !ok {
			return nil
		}
		val := p.parseExpr()
		if val == nil {
			return nil
		}
		fields = append(fields, ast.RecordField{Name: fname.Lexeme, Value: val})

		if p.at(token.Comma) {
			p.advance()
			continue
		}
		break
	}

	if _, ok := p.expect(token.RBrace); !ok {
		return nil
	}

	return &ast.Record{TypeName: nameTok.Lexeme, Fields: fields, RecordSpan: nameTok.Span}
}

// parseBlock handles `'{' (let ';')* expr '}'`.
func (p *Parser) parseBlock() *ast.Block {
	start, ok := p.expect(token.LBrace)
	if !ok {
		return nil
	}

	var bindings []ast.LetBinding
	for p.at(token.Let) {
		p.advance() // 'let'
		name, ok := p.expect(token.Ident)
		if !ok {
			return nil
		}
		if _, ok := p.expect(token.Equals); !ok {
			return nil
		}
		val := p.parseExpr()
		if val == nil {
			return nil
		}
		if _, ok := p.expect(token.Semi); !ok {
			return nil
		}
		bindings = append(bindings, ast.LetBinding{Name: name.Lexeme, Value: val})
	}

	final := p.parseExpr()
	if final == nil {
		return nil
	}

	if _, ok := p.expect(token.RBrace); !ok {
		return nil
	}

	return &ast.Block{Bindings: bindings, Final: final, BlockSpan: start.Span}
}
