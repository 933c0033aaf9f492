package bundle

import (
	"github.com/axis-lang/axis-core/axis/core"
	"github.com/axis-lang/axis-core/axis/token"
)

// writeSpan encodes a Span as (file-index, line, column). The file name is
// interned into the same string table as every other name, so a
// file-index is simply the table index that names the file — spec.md
// §4.6 defines one string table for "all strings used in the term", and
// a span's filename is one of them.
func (e *encoder) writeSpan(sp token.Span) {
	e.u32(e.intern(sp.File))
	e.u32(uint32(sp.Line))
	e.u32(uint32(sp.Column))
}

// writeTerm encodes t per the tag table in spec.md §4.6. The switch is
// exhaustive over the thirteen closed CoreTerm variants; a missing case
// here is the compile-time-detectable gap §9 requires implementers to
// avoid.
func (e *encoder) writeTerm(t core.Term) {
	switch n := t.(type) {
	case *core.IntLit:
		e.u8(uint8(core.TagIntLit))
		e.i64(n.Value)
		e.writeSpan(n.Sp)

	case *core.BoolLit:
		e.u8(uint8(core.TagBoolLit))
		if n.Value {
			e.u8(1)
		} else {
			e.u8(0)
		}
		e.writeSpan(n.Sp)

	case *core.UnitLit:
		e.u8(uint8(core.TagUnitLit))
		e.writeSpan(n.Sp)

	case *core.StrLit:
		e.u8(uint8(core.TagStrLit))
		e.u32(e.intern(n.Value))
		e.writeSpan(n.Sp)

	case *core.Var:
		e.u8(uint8(core.TagVar))
		e.u32(e.intern(n.Name))
		e.writeSpan(n.Sp)

	case *core.Lam:
		e.u8(uint8(core.TagLam))
		e.u32(e.intern(n.Param))
		e.writeTerm(n.Body)
		e.writeSpan(n.Sp)

	case *core.App:
		e.u8(uint8(core.TagApp))
		e.writeTerm(n.Func)
		e.writeTerm(n.Arg)
		e.writeSpan(n.Sp)

	case *core.Tuple:
		e.u8(uint8(core.TagTuple))
		e.u32(uint32(len(n.Elems)))
		for _, el := range n.Elems {
			e.writeTerm(el)
		}
		e.writeSpan(n.Sp)

	case *core.Proj:
		e.u8(uint8(core.TagProj))
		e.writeTerm(n.Expr)
		e.u32(uint32(n.Index))
		e.writeSpan(n.Sp)

	case *core.Let:
		e.u8(uint8(core.TagLet))
		e.u32(e.intern(n.Name))
		e.writeTerm(n.Value)
		e.writeTerm(n.Body)
		e.writeSpan(n.Sp)

	case *core.If:
		e.u8(uint8(core.TagIf))
		e.writeTerm(n.Cond)
		e.writeTerm(n.Then)
		e.writeTerm(n.Else)
		e.writeSpan(n.Sp)

	case *core.Ctor:
		e.u8(uint8(core.TagCtor))
		e.u32(e.intern(n.Name))
		e.u32(uint32(len(n.Fields)))
		for _, f := range n.Fields {
			e.writeTerm(f)
		}
		e.writeSpan(n.Sp)

	case *core.Match:
		e.u8(uint8(core.TagMatch))
		e.writeTerm(n.Scrutinee)
		e.u32(uint32(len(n.Arms)))
		for _, arm := range n.Arms {
			e.writePattern(arm.Pattern)
			e.writeTerm(arm.Body)
		}
		e.writeSpan(n.Sp)

	default:
		panic("bundle.writeTerm: unhandled CoreTerm variant")
	}
}

// writePattern encodes a Pattern using the same tagged scheme (spec.md
// §4.6: "Pattern tags follow the same tagged scheme").
func (e *encoder) writePattern(p core.Pattern) {
	e.u8(uint8(p.Kind))
	switch p.Kind {
	case core.PatInt:
		e.i64(p.IntVal)
	case core.PatBool:
		if p.BoolVal {
			e.u8(1)
		} else {
			e.u8(0)
		}
	case core.PatUnit:
		// no payload
	case core.PatVar:
		e.u32(e.intern(p.Name))
	case core.PatTuple:
		e.u32(uint32(len(p.Elems)))
		for _, el := range p.Elems {
			e.writePattern(el)
		}
	case core.PatCtor:
		e.u32(e.intern(p.Name))
		e.u32(uint32(len(p.Elems)))
		for _, el := range p.Elems {
			e.writePattern(el)
		}
	default:
		panic("bundle.writePattern: unhandled pattern kind")
	}
	e.writeSpan(p.Sp)
}
