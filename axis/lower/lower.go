// Package lower rewrites a parsed surface file into a single closed
// axis/core.Term, resolving every name against a name environment seeded
// from the active registry and the file's own enum declarations (spec.md
// §4.4). It mirrors the role koi/koi/ir/build.go plays for the teacher —
// a single pass that walks an AST and emits IR — generalized from flat
// instruction emission into CoreTerm construction, and from a mutable
// scope stack into the persistent linked environment spec.md §9
// recommends.
package lower

import (
	"github.com/axis-lang/axis-core/axis/core"
	"github.com/axis-lang/axis-core/axis/registry"
	"github.com/axis-lang/axis-core/axis/surface/ast"
	"github.com/axis-lang/axis-core/axis/token"
	"github.com/axis-lang/axis-core/util"
)

// Result is the outcome of a successful Lower call.
type Result struct {
	Term           core.Term
	EntrypointName string
}

type lowerer struct {
	reg          *registry.ActiveRegistry
	ctors        map[string]ctorInfo
	enumVariants map[string][]string
	errs         util.ErrorList
}

// Lower resolves file against reg and produces the CoreTerm compiled from
// its entrypoint function (see selectEntrypoint). An empty file — no
// declarations at all — lowers to CUnitLit with an empty entrypoint name,
// per the empty-file boundary this repo adopts from
// original_source/core-compiler (SPEC_FULL.md, Supplemented Features #1).
func Lower(file *ast.File, reg *registry.ActiveRegistry) (*Result, error) {
	l := &lowerer{
		reg:          reg,
		ctors:        buildCtors(file),
		enumVariants: buildEnumVariants(file),
	}

	fn := selectEntrypoint(file)
	if fn == nil {
		return &Result{Term: &core.UnitLit{}, EntrypointName: ""}, nil
	}

	env := l.seedEnv()
	term := l.lowerFn(fn, env)

	if err := l.errs.Err(); err != nil {
		return nil, err
	}
	return &Result{Term: term, EntrypointName: fn.Name}, nil
}

// seedEnv builds the initial environment: every admitted-or-not registry
// entry (admission is checked at use, not at seeding — spec.md §4.1) and
// every enum constructor declared in the file.
func (l *lowerer) seedEnv() *Env {
	var env *Env
	for name, entry := range l.reg.Entries {
		env = env.Extend(name, Binding{
			Kind:     RegistryCallable,
			Arity:    entry.Arity,
			Admitted: entry.Admitted(l.reg.ActiveProfile),
		})
	}
	for name, info := range l.ctors {
		env = env.Extend(name, Binding{Kind: EnumCtor, Arity: info.Arity})
	}
	return env
}

// lowerFn implements rule 1: multi-parameter currying over a single
// synthetic "arg" parameter, projected positionally.
func (l *lowerer) lowerFn(fn *ast.FnDecl, env *Env) core.Term {
	sp := fn.Span()
	if len(fn.Params) == 0 {
		return &core.Lam{Param: "_", Body: l.lowerExpr(fn.Body, env, paramTypes(fn)), Sp: sp}
	}

	bodyEnv := env
	for _, p := range fn.Params {
		bodyEnv = bodyEnv.Extend(p.Name, Binding{Kind: LocalBinding})
	}
	inner := l.lowerExpr(fn.Body, bodyEnv, paramTypes(fn))

	for i := len(fn.Params) - 1; i >= 0; i-- {
		p := fn.Params[i]
		inner = &core.Let{
			Name:  p.Name,
			Value: &core.Proj{Expr: &core.Var{Name: "arg", Sp: sp}, Index: i, Sp: p.ParamSpan},
			Body:  inner,
			Sp:    sp,
		}
	}
	return &core.Lam{Param: "arg", Body: inner, Sp: sp}
}

func errTerm(sp token.Span) core.Term { return &core.UnitLit{Sp: sp} }

// lowerExpr dispatches every surface expression to its Core rewrite.
// ptypes carries the entrypoint's parameter type annotations, needed only
// to derive an enum type for match exhaustiveness (rule 5).
func (l *lowerer) lowerExpr(e ast.Expr, env *Env, ptypes map[string]string) core.Term {
	switch n := e.(type) {
	case *ast.IntLit:
		return &core.IntLit{Value: n.Value, Sp: n.LitSpan}
	case *ast.BoolLit:
		return &core.BoolLit{Value: n.Value, Sp: n.LitSpan}
	case *ast.UnitLit:
		return &core.UnitLit{Sp: n.LitSpan}
	case *ast.Var:
		return l.lowerVar(n, env)
	case *ast.App:
		return l.lowerApp(n, env, ptypes)
	case *ast.Lambda:
		return &core.Lam{Param: n.Param, Body: l.lowerExpr(n.Body, env.Extend(n.Param, Binding{Kind: LocalBinding}), ptypes), Sp: n.LambdaSpan}
	case *ast.Tuple:
		elems := make([]core.Term, len(n.Elems))
		for i, e := range n.Elems {
			elems[i] = l.lowerExpr(e, env, ptypes)
		}
		return &core.Tuple{Elems: elems, Sp: n.TupleSpan}
	case *ast.Proj:
		inner := l.lowerExpr(n.Expr, env, ptypes)
		if t, isTuple := n.Expr.(*ast.Tuple); isTuple {
			if n.Index < 0 || n.Index >= len(t.Elems) {
				l.errs.Add(&ProjOutOfBounds{Index: n.Index, Len: len(t.Elems), Sp: n.ProjSpan})
			}
		}
		return &core.Proj{Expr: inner, Index: n.Index, Sp: n.ProjSpan}
	case *ast.Let:
		return &core.Let{
			Name:  n.Name,
			Value: l.lowerExpr(n.Value, env, ptypes),
			Body:  l.lowerExpr(n.Body, env.Extend(n.Name, Binding{Kind: LocalBinding}), ptypes),
			Sp:    n.LetSpan,
		}
	case *ast.If:
		return &core.If{
			Cond: l.lowerExpr(n.Cond, env, ptypes),
			Then: l.lowerExpr(n.Then, env, ptypes),
			Else: l.lowerExpr(n.Else, env, ptypes),
			Sp:   n.IfSpan,
		}
	case *ast.Record:
		return l.lowerRecord(n, env, ptypes)
	case *ast.Match:
		return l.lowerMatch(n, env, ptypes)
	case *ast.Block:
		return l.lowerBlock(n, env, ptypes)
	default:
		panic("lower.lowerExpr: unhandled expression type")
	}
}

func (l *lowerer) lowerVar(n *ast.Var, env *Env) core.Term {
	b, ok := env.Lookup(n.Name)
	if !ok {
		l.errs.Add(&UnboundName{Name: n.Name, Sp: n.VarSpan})
		return errTerm(n.VarSpan)
	}
	switch b.Kind {
	case LocalBinding:
		return &core.Var{Name: n.Name, Sp: n.VarSpan}
	case RegistryCallable:
		if !b.Admitted {
			l.errs.Add(&ProfileDenied{Name: n.Name, Sp: n.VarSpan})
		}
		return &core.Var{Name: n.Name, Sp: n.VarSpan}
	case EnumCtor:
		if b.Arity != 0 {
			l.errs.Add(&ArityMismatch{Name: n.Name, Expected: b.Arity, Found: 0, Sp: n.VarSpan})
		}
		return &core.Ctor{Name: n.Name, Sp: n.VarSpan}
	default:
		panic("lower.lowerVar: unhandled binding kind")
	}
}

func (l *lowerer) lowerBlock(n *ast.Block, env *Env, ptypes map[string]string) core.Term {
	if len(n.Bindings) == 0 {
		return l.lowerExpr(n.Final, env, ptypes)
	}
	b := n.Bindings[0]
	value := l.lowerExpr(b.Value, env, ptypes)
	rest := &ast.Block{Bindings: n.Bindings[1:], Final: n.Final, BlockSpan: n.BlockSpan}
	body := l.lowerBlock(rest, env.Extend(b.Name, Binding{Kind: LocalBinding}), ptypes)
	return &core.Let{Name: b.Name, Value: value, Body: body, Sp: n.BlockSpan}
}

func (l *lowerer) lowerRecord(n *ast.Record, env *Env, ptypes map[string]string) core.Term {
	info, ok := l.ctors[n.TypeName]
	if !ok {
		l.errs.Add(&UnboundName{Name: n.TypeName, Sp: n.RecordSpan})
		return errTerm(n.RecordSpan)
	}
	if len(n.Fields) != len(info.Fields) {
		l.errs.Add(&MalformedSurface{
			Detail: "field count does not match declared fields of " + n.TypeName,
			Sp:     n.RecordSpan,
		})
		return errTerm(n.RecordSpan)
	}

	given := make(map[string]ast.Expr, len(n.Fields))
	for _, f := range n.Fields {
		if _, dup := given[f.Name]; dup {
			l.errs.Add(&MalformedSurface{Detail: "duplicate field " + f.Name + " for " + n.TypeName, Sp: n.RecordSpan})
		}
		given[f.Name] = f.Value
	}

	fields := make([]core.Term, len(info.Fields))
	ok = true
	for i, name := range info.Fields {
		v, found := given[name]
		if !found {
			l.errs.Add(&MalformedSurface{Detail: "missing field " + name + " for " + n.TypeName, Sp: n.RecordSpan})
			ok = false
			continue
		}
		fields[i] = l.lowerExpr(v, env, ptypes)
	}
	if !ok {
		return errTerm(n.RecordSpan)
	}
	return &core.Ctor{Name: n.TypeName, Fields: fields, Sp: n.RecordSpan}
}
