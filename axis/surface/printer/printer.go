// Package printer renders a SurfaceAst back into `.ax` source text. It
// exists to support the round-trip property in spec.md §8:
// lower(parse(pretty(ast))) must be equivalent to lower(ast). It is
// grounded on the teacher's koi/koi/ast/print.go DebugVisitor, adapted from
// a Visitor-dispatch walk to a type-switch walk since the surface grammar
// has many more node shapes than koi's handful of statement/expr kinds.
package printer

import (
	"fmt"
	"strings"

	"github.com/axis-lang/axis-core/axis/surface/ast"
	"github.com/axis-lang/axis-core/util"
)

// Print renders f as `.ax` source. Output is deterministic for a given
// AST: fixed indentation, no trailing whitespace, declarations and fields
// in the order the AST stores them.
func Print(f *ast.File) string {
	p := &printer{sb: &strings.Builder{}}
	for i, d := range f.Decls {
		if i > 0 {
			p.sb.WriteString("\n")
		}
		p.decl(d)
	}
	return p.sb.String()
}

type printer struct {
	sb     *strings.Builder
	indent int
}

func (p *printer) w(format string, args ...any) {
	fmt.Fprintf(p.sb, format, args...)
}

func (p *printer) nl() {
	p.sb.WriteString("\n")
	p.sb.WriteString(strings.Repeat("    ", p.indent))
}

func (p *printer) decl(d ast.Decl) {
	switch n := d.(type) {
	case *ast.FnDecl:
		p.fnDecl(n)
	case *ast.EnumDecl:
		p.enumDecl(n)
	default:
		util.Assert(false, "unhandled decl type %T", d)
	}
}

func (p *printer) fnDecl(n *ast.FnDecl) {
	p.w("fn %s(", n.Name)
	for i, param := range n.Params {
		if i > 0 {
			p.w(", ")
		}
		p.w("%s: %s", param.Name, param.TypeAnnot)
	}
	p.w(") -> %s ", n.ReturnAnnot)
	p.block(n.Body.(*ast.Block))
	p.w("\n")
}

func (p *printer) enumDecl(n *ast.EnumDecl) {
	p.w("enum %s {", n.Name)
	p.indent++
	for i, v := range n.Variants {
		if i > 0 {
			p.w(",")
		}
		p.nl()
		p.w("%s", v.Name)
		if len(v.Fields) > 0 {
			p.w("(")
			for j, f := range v.Fields {
				if j > 0 {
					p.w(", ")
				}
				p.w("%s: %s", f.Name, f.TypeAnnot)
			}
			p.w(")")
		}
	}
	p.indent--
	p.nl()
	p.w("}\n")
}

func (p *printer) expr(e ast.Expr) {
	switch n := e.(type) {
	case *ast.IntLit:
		p.w("%d", n.Value)
	case *ast.BoolLit:
		p.w("%t", n.Value)
	case *ast.UnitLit:
		p.w("()")
	case *ast.Var:
		p.w("%s", n.Name)
	case *ast.App:
		p.expr(n.Callee)
		p.w("(")
		for i, a := range n.Args {
			if i > 0 {
				p.w(", ")
			}
			p.expr(a)
		}
		p.w(")")
	case *ast.Lambda:
		p.w("|%s| ", n.Param)
		p.expr(n.Body)
	case *ast.Tuple:
		p.w("(")
		for i, el := range n.Elems {
			if i > 0 {
				p.w(", ")
			}
			p.expr(el)
		}
		p.w(")")
	case *ast.Proj:
		p.w("proj(")
		p.expr(n.Expr)
		p.w(", %d)", n.Index)
	case *ast.If:
		p.w("if ")
		p.expr(n.Cond)
		p.w(" ")
		p.block(n.Then.(*ast.Block))
		p.w(" else ")
		p.block(n.Else.(*ast.Block))
	case *ast.Record:
		p.w("%s { ", n.TypeName)
		for i, f := range n.Fields {
			if i > 0 {
				p.w(", ")
			}
			p.w("%s: ", f.Name)
			p.expr(f.Value)
		}
		p.w(" }")
	case *ast.Match:
		p.w("match ")
		p.expr(n.Scrutinee)
		p.w(" {")
		p.indent++
		for i, arm := range n.Arms {
			if i > 0 {
				p.w(",")
			}
			p.nl()
			p.pattern(arm.Pattern)
			p.w(" => ")
			p.expr(arm.Body)
		}
		p.indent--
		p.nl()
		p.w("}")
	case *ast.Block:
		p.block(n)
	default:
		util.Assert(false, "unhandled expr type %T", e)
	}
}

func (p *printer) block(b *ast.Block) {
	p.w("{")
	p.indent++
	for _, bind := range b.Bindings {
		p.nl()
		p.w("let %s = ", bind.Name)
		p.expr(bind.Value)
		p.w(";")
	}
	p.nl()
	p.expr(b.Final)
	p.indent--
	p.nl()
	p.w("}")
}

func (p *printer) pattern(pat ast.Pattern) {
	switch n := pat.(type) {
	case *ast.PInt:
		p.w("%d", n.Value)
	case *ast.PBool:
		p.w("%t", n.Value)
	case *ast.PUnit:
		p.w("()")
	case *ast.PVar:
		p.w("%s", n.Name)
	case *ast.PTuple:
		p.w("(")
		for i, el := range n.Elems {
			if i > 0 {
				p.w(", ")
			}
			p.pattern(el)
		}
		p.w(")")
	case *ast.PEnum:
		p.w("%s(", n.Name)
		for i, el := range n.Inner {
			if i > 0 {
				p.w(", ")
			}
			p.pattern(el)
		}
		p.w(")")
	default:
		util.Assert(false, "unhandled pattern type %T", pat)
	}
}
