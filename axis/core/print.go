package core

import (
	"fmt"
	"strings"
)

// Pretty renders t as a deterministic, byte-stable textual form: fixed
// two-space indentation, no trailing whitespace, children in the order the
// term stores them. Two calls on structurally identical terms always
// produce identical bytes, which is what the round-trip and re-run
// properties in spec.md §8 hold the printer to.
func Pretty(t Term) string {
	p := &pretty{sb: &strings.Builder{}}
	p.term(t)
	return p.sb.String()
}

type pretty struct {
	sb     *strings.Builder
	indent int
}

func (p *pretty) line(format string, args ...any) {
	p.sb.WriteString(strings.Repeat("  ", p.indent))
	fmt.Fprintf(p.sb, format, args...)
	p.sb.WriteString("\n")
}

func (p *pretty) open(format string, args ...any) {
	p.sb.WriteString(strings.Repeat("  ", p.indent))
	fmt.Fprintf(p.sb, format, args...)
	p.sb.WriteString("\n")
	p.indent++
}

func (p *pretty) close(s string) {
	p.indent--
	p.sb.WriteString(strings.Repeat("  ", p.indent))
	p.sb.WriteString(s)
	p.sb.WriteString("\n")
}

func (p *pretty) term(t Term) {
	switch n := t.(type) {
	case *IntLit:
		p.line("IntLit(%d)", n.Value)
	case *BoolLit:
		p.line("BoolLit(%t)", n.Value)
	case *UnitLit:
		p.line("UnitLit")
	case *StrLit:
		p.line("StrLit(%q)", n.Value)
	case *Var:
		p.line("Var(%s)", n.Name)
	case *Lam:
		p.open("Lam(%s)", n.Param)
		p.term(n.Body)
		p.close(")")
	case *App:
		p.open("App")
		p.term(n.Func)
		p.term(n.Arg)
		p.close(")")
	case *Tuple:
		p.open("Tuple(%d)", len(n.Elems))
		for _, e := range n.Elems {
			p.term(e)
		}
		p.close(")")
	case *Proj:
		p.open("Proj(%d)", n.Index)
		p.term(n.Expr)
		p.close(")")
	case *Let:
		p.open("Let(%s)", n.Name)
		p.term(n.Value)
		p.term(n.Body)
		p.close(")")
	case *If:
		p.open("If")
		p.term(n.Cond)
		p.term(n.Then)
		p.term(n.Else)
		p.close(")")
	case *Ctor:
		p.open("Ctor(%s, %d)", n.Name, len(n.Fields))
		for _, f := range n.Fields {
			p.term(f)
		}
		p.close(")")
	case *Match:
		p.open("Match")
		p.term(n.Scrutinee)
		for _, arm := range n.Arms {
			p.line("Arm(%s)", patternString(arm.Pattern))
			p.indent++
			p.term(arm.Body)
			p.indent--
		}
		p.close(")")
	default:
		panic(fmt.Sprintf("core.Pretty: unhandled term type %T", t))
	}
}

func patternString(pat Pattern) string {
	switch pat.Kind {
	case PatInt:
		return fmt.Sprintf("%d", pat.IntVal)
	case PatBool:
		return fmt.Sprintf("%t", pat.BoolVal)
	case PatUnit:
		return "()"
	case PatVar:
		return pat.Name
	case PatTuple:
		parts := make([]string, len(pat.Elems))
		for i, e := range pat.Elems {
			parts[i] = patternString(e)
		}
		return "(" + strings.Join(parts, ", ") + ")"
	case PatCtor:
		parts := make([]string, len(pat.Elems))
		for i, e := range pat.Elems {
			parts[i] = patternString(e)
		}
		return pat.Name + "(" + strings.Join(parts, ", ") + ")"
	default:
		panic(fmt.Sprintf("core.patternString: unhandled pattern kind %d", pat.Kind))
	}
}
