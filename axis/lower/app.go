package lower

import (
	"github.com/axis-lang/axis-core/axis/core"
	"github.com/axis-lang/axis-core/axis/surface/ast"
	"github.com/axis-lang/axis-core/axis/token"
)

// lowerApp implements rule 2 (application) and rule 3 (enum constructor
// call): a call's target determines whether it produces a CApp against a
// registry callable/local lambda, or a CCtor. Arity is checked against
// whatever declared it (registry entry or enum variant).
func (l *lowerer) lowerApp(n *ast.App, env *Env, ptypes map[string]string) core.Term {
	callee, ok := n.Callee.(*ast.Var)
	if !ok {
		// A call on something other than a bare name: (|x| x)(5), chained
		// application f(a)(b). Only single-argument shape is meaningful,
		// since every value callable in this grammar is a one-parameter
		// lambda.
		fn := l.lowerExpr(n.Callee, env, ptypes)
		return l.lowerCall(fn, n.Args, env, ptypes, n.CallSpan, -1)
	}

	b, ok := env.Lookup(callee.Name)
	if !ok {
		l.errs.Add(&UnboundName{Name: callee.Name, Sp: callee.VarSpan})
		return errTerm(n.CallSpan)
	}

	switch b.Kind {
	case LocalBinding:
		return l.lowerCall(&core.Var{Name: callee.Name, Sp: callee.VarSpan}, n.Args, env, ptypes, n.CallSpan, -1)

	case RegistryCallable:
		if !b.Admitted {
			l.errs.Add(&ProfileDenied{Name: callee.Name, Sp: callee.VarSpan})
		}
		if len(n.Args) != b.Arity {
			l.errs.Add(&ArityMismatch{Name: callee.Name, Expected: b.Arity, Found: len(n.Args), Sp: n.CallSpan})
		}
		return l.lowerCall(&core.Var{Name: callee.Name, Sp: callee.VarSpan}, n.Args, env, ptypes, n.CallSpan, b.Arity)

	case EnumCtor:
		if len(n.Args) != b.Arity {
			l.errs.Add(&ArityMismatch{Name: callee.Name, Expected: b.Arity, Found: len(n.Args), Sp: n.CallSpan})
		}
		fields := make([]core.Term, len(n.Args))
		for i, a := range n.Args {
			fields[i] = l.lowerExpr(a, env, ptypes)
		}
		return &core.Ctor{Name: callee.Name, Fields: fields, Sp: n.CallSpan}

	default:
		panic("lower.lowerApp: unhandled binding kind")
	}
}

// lowerCall wraps arguments into a CTuple, unless the call has exactly one
// argument and the target's declared arity is 1 (rule 2's single-argument
// exemption from tuple wrapping). arity is -1 when the target has no
// tracked arity (a local lambda binding), in which case a lone argument is
// still passed unwrapped since every lambda in this grammar takes exactly
// one parameter; any other argument count against such a target is
// malformed.
func (l *lowerer) lowerCall(fn core.Term, args []ast.Expr, env *Env, ptypes map[string]string, sp token.Span, arity int) core.Term {
	if arity < 0 && len(args) != 1 {
		l.errs.Add(&MalformedSurface{Detail: "calling a local value requires exactly one argument", Sp: sp})
	}

	lowered := make([]core.Term, len(args))
	for i, a := range args {
		lowered[i] = l.lowerExpr(a, env, ptypes)
	}

	if len(lowered) == 1 && (arity == 1 || arity < 0) {
		return &core.App{Func: fn, Arg: lowered[0], Sp: sp}
	}
	return &core.App{Func: fn, Arg: &core.Tuple{Elems: lowered, Sp: sp}, Sp: sp}
}
