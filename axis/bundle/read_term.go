package bundle

import (
	"bytes"
	"encoding/binary"

	"github.com/axis-lang/axis-core/axis/core"
	"github.com/axis-lang/axis-core/axis/token"
)

type decoder struct {
	r       *bytes.Reader
	strings []string
}

func (d *decoder) str(idx uint32) (string, error) {
	if int(idx) >= len(d.strings) {
		return "", &MalformedBundleError{Detail: "string table index out of range"}
	}
	return d.strings[idx], nil
}

func (d *decoder) u8() (uint8, error) {
	return d.r.ReadByte()
}

func (d *decoder) u32() (uint32, error) {
	var v uint32
	err := binary.Read(d.r, binary.LittleEndian, &v)
	return v, err
}

func (d *decoder) i64() (int64, error) {
	var v int64
	err := binary.Read(d.r, binary.LittleEndian, &v)
	return v, err
}

func (d *decoder) readSpan() (token.Span, error) {
	fi, err := d.u32()
	if err != nil {
		return token.Span{}, &MalformedBundleError{Detail: "truncated span file-index"}
	}
	file, err := d.str(fi)
	if err != nil {
		return token.Span{}, err
	}
	line, err := d.u32()
	if err != nil {
		return token.Span{}, &MalformedBundleError{Detail: "truncated span line"}
	}
	col, err := d.u32()
	if err != nil {
		return token.Span{}, &MalformedBundleError{Detail: "truncated span column"}
	}
	return token.Span{File: file, Line: int(line), Column: int(col)}, nil
}

// readTerm decodes one CoreTerm, dispatching on the fixed tag byte table
// (spec.md §4.6). Every one of the thirteen tags is handled; an unknown
// tag is a malformed-bundle error, not a silent skip.
func (d *decoder) readTerm() (core.Term, error) {
	tag, err := d.u8()
	if err != nil {
		return nil, &MalformedBundleError{Detail: "truncated tag"}
	}

	switch core.Tag(tag) {
	case core.TagIntLit:
		v, err := d.i64()
		if err != nil {
			return nil, &MalformedBundleError{Detail: "truncated CIntLit"}
		}
		sp, err := d.readSpan()
		if err != nil {
			return nil, err
		}
		return &core.IntLit{Value: v, Sp: sp}, nil

	case core.TagBoolLit:
		v, err := d.u8()
		if err != nil {
			return nil, &MalformedBundleError{Detail: "truncated CBoolLit"}
		}
		sp, err := d.readSpan()
		if err != nil {
			return nil, err
		}
		return &core.BoolLit{Value: v != 0, Sp: sp}, nil

	case core.TagUnitLit:
		sp, err := d.readSpan()
		if err != nil {
			return nil, err
		}
		return &core.UnitLit{Sp: sp}, nil

	case core.TagStrLit:
		idx, err := d.u32()
		if err != nil {
			return nil, &MalformedBundleError{Detail: "truncated CStrLit"}
		}
		v, err := d.str(idx)
		if err != nil {
			return nil, err
		}
		sp, err := d.readSpan()
		if err != nil {
			return nil, err
		}
		return &core.StrLit{Value: v, Sp: sp}, nil

	case core.TagVar:
		idx, err := d.u32()
		if err != nil {
			return nil, &MalformedBundleError{Detail: "truncated CVar"}
		}
		name, err := d.str(idx)
		if err != nil {
			return nil, err
		}
		sp, err := d.readSpan()
		if err != nil {
			return nil, err
		}
		return &core.Var{Name: name, Sp: sp}, nil

	case core.TagLam:
		idx, err := d.u32()
		if err != nil {
			return nil, &MalformedBundleError{Detail: "truncated CLam"}
		}
		param, err := d.str(idx)
		if err != nil {
			return nil, err
		}
		body, err := d.readTerm()
		if err != nil {
			return nil, err
		}
		sp, err := d.readSpan()
		if err != nil {
			return nil, err
		}
		return &core.Lam{Param: param, Body: body, Sp: sp}, nil

	case core.TagApp:
		fn, err := d.readTerm()
		if err != nil {
			return nil, err
		}
		arg, err := d.readTerm()
		if err != nil {
			return nil, err
		}
		sp, err := d.readSpan()
		if err != nil {
			return nil, err
		}
		return &core.App{Func: fn, Arg: arg, Sp: sp}, nil

	case core.TagTuple:
		count, err := d.u32()
		if err != nil {
			return nil, &MalformedBundleError{Detail: "truncated CTuple count"}
		}
		elems := make([]core.Term, count)
		for i := range elems {
			elems[i], err = d.readTerm()
			if err != nil {
				return nil, err
			}
		}
		sp, err := d.readSpan()
		if err != nil {
			return nil, err
		}
		return &core.Tuple{Elems: elems, Sp: sp}, nil

	case core.TagProj:
		expr, err := d.readTerm()
		if err != nil {
			return nil, err
		}
		idx, err := d.u32()
		if err != nil {
			return nil, &MalformedBundleError{Detail: "truncated CProj index"}
		}
		sp, err := d.readSpan()
		if err != nil {
			return nil, err
		}
		return &core.Proj{Expr: expr, Index: int(idx), Sp: sp}, nil

	case core.TagLet:
		idx, err := d.u32()
		if err != nil {
			return nil, &MalformedBundleError{Detail: "truncated CLet"}
		}
		name, err := d.str(idx)
		if err != nil {
			return nil, err
		}
		value, err := d.readTerm()
		if err != nil {
			return nil, err
		}
		body, err := d.readTerm()
		if err != nil {
			return nil, err
		}
		sp, err := d.readSpan()
		if err != nil {
			return nil, err
		}
		return &core.Let{Name: name, Value: value, Body: body, Sp: sp}, nil

	case core.TagIf:
		cond, err := d.readTerm()
		if err != nil {
			return nil, err
		}
		then, err := d.readTerm()
		if err != nil {
			return nil, err
		}
		els, err := d.readTerm()
		if err != nil {
			return nil, err
		}
		sp, err := d.readSpan()
		if err != nil {
			return nil, err
		}
		return &core.If{Cond: cond, Then: then, Else: els, Sp: sp}, nil

	case core.TagCtor:
		idx, err := d.u32()
		if err != nil {
			return nil, &MalformedBundleError{Detail: "truncated CCtor"}
		}
		name, err := d.str(idx)
		if err != nil {
			return nil, err
		}
		count, err := d.u32()
		if err != nil {
			return nil, &MalformedBundleError{Detail: "truncated CCtor count"}
		}
		fields := make([]core.Term, count)
		for i := range fields {
			fields[i], err = d.readTerm()
			if err != nil {
				return nil, err
			}
		}
		sp, err := d.readSpan()
		if err != nil {
			return nil, err
		}
		return &core.Ctor{Name: name, Fields: fields, Sp: sp}, nil

	case core.TagMatch:
		scrutinee, err := d.readTerm()
		if err != nil {
			return nil, err
		}
		count, err := d.u32()
		if err != nil {
			return nil, &MalformedBundleError{Detail: "truncated CMatch arm-count"}
		}
		arms := make([]core.Arm, count)
		for i := range arms {
			pat, err := d.readPattern()
			if err != nil {
				return nil, err
			}
			body, err := d.readTerm()
			if err != nil {
				return nil, err
			}
			arms[i] = core.Arm{Pattern: pat, Body: body}
		}
		sp, err := d.readSpan()
		if err != nil {
			return nil, err
		}
		return &core.Match{Scrutinee: scrutinee, Arms: arms, Sp: sp}, nil

	default:
		return nil, &MalformedBundleError{Detail: "unknown tag byte"}
	}
}

func (d *decoder) readPattern() (core.Pattern, error) {
	kind, err := d.u8()
	if err != nil {
		return core.Pattern{}, &MalformedBundleError{Detail: "truncated pattern tag"}
	}

	var pat core.Pattern
	pat.Kind = core.PatternKind(kind)

	switch pat.Kind {
	case core.PatInt:
		v, err := d.i64()
		if err != nil {
			return core.Pattern{}, &MalformedBundleError{Detail: "truncated PatInt"}
		}
		pat.IntVal = v

	case core.PatBool:
		v, err := d.u8()
		if err != nil {
			return core.Pattern{}, &MalformedBundleError{Detail: "truncated PatBool"}
		}
		pat.BoolVal = v != 0

	case core.PatUnit:
		// no payload

	case core.PatVar:
		idx, err := d.u32()
		if err != nil {
			return core.Pattern{}, &MalformedBundleError{Detail: "truncated PatVar"}
		}
		name, err := d.str(idx)
		if err != nil {
			return core.Pattern{}, err
		}
		pat.Name = name

	case core.PatTuple:
		count, err := d.u32()
		if err != nil {
			return core.Pattern{}, &MalformedBundleError{Detail: "truncated PatTuple count"}
		}
		elems := make([]core.Pattern, count)
		for i := range elems {
			elems[i], err = d.readPattern()
			if err != nil {
				return core.Pattern{}, err
			}
		}
		pat.Elems = elems

	case core.PatCtor:
		idx, err := d.u32()
		if err != nil {
			return core.Pattern{}, &MalformedBundleError{Detail: "truncated PatCtor"}
		}
		name, err := d.str(idx)
		if err != nil {
			return core.Pattern{}, err
		}
		count, err := d.u32()
		if err != nil {
			return core.Pattern{}, &MalformedBundleError{Detail: "truncated PatCtor count"}
		}
		elems := make([]core.Pattern, count)
		for i := range elems {
			elems[i], err = d.readPattern()
			if err != nil {
				return core.Pattern{}, err
			}
		}
		pat.Name = name
		pat.Elems = elems

	default:
		return core.Pattern{}, &MalformedBundleError{Detail: "unknown pattern kind"}
	}

	sp, err := d.readSpan()
	if err != nil {
		return core.Pattern{}, err
	}
	pat.Sp = sp
	return pat, nil
}
