package lower

import (
	"github.com/axis-lang/axis-core/axis/core"
	"github.com/axis-lang/axis-core/axis/surface/ast"
	"github.com/axis-lang/axis-core/axis/token"
)

// isZeroArgCtorPattern reports whether name is a declared enum constructor
// of arity zero — the case a bare identifier pattern like `Option_None`
// must resolve to, since the surface grammar has no parenthesized form for
// a field-less variant pattern (spec.md §8 scenario 4). Any other name is
// an ordinary variable binding.
func (l *lowerer) isZeroArgCtorPattern(name string) bool {
	info, ok := l.ctors[name]
	return ok && info.Arity == 0
}

// lowerPattern translates a surface pattern into its Core shape and returns
// the environment extended with every PVar it introduces as a
// LocalBinding, wherever in the pattern tree that PVar occurs (spec.md
// §4.4 rule 5: pattern translation is structural). A bare identifier that
// names a zero-arity enum constructor is reclassified here as a PatCtor
// pattern rather than a binding — the same call-site ambiguity rule 3
// resolves for expressions, applied to patterns.
func (l *lowerer) lowerPattern(pat ast.Pattern, env *Env) (core.Pattern, *Env) {
	switch p := pat.(type) {
	case *ast.PInt:
		return core.Pattern{Kind: core.PatInt, IntVal: p.Value, Sp: p.PatSpan}, env
	case *ast.PBool:
		return core.Pattern{Kind: core.PatBool, BoolVal: p.Value, Sp: p.PatSpan}, env
	case *ast.PUnit:
		return core.Pattern{Kind: core.PatUnit, Sp: p.PatSpan}, env
	case *ast.PVar:
		if l.isZeroArgCtorPattern(p.Name) {
			return core.Pattern{Kind: core.PatCtor, Name: p.Name, Sp: p.PatSpan}, env
		}
		return core.Pattern{Kind: core.PatVar, Name: p.Name, Sp: p.PatSpan}, env.Extend(p.Name, Binding{Kind: LocalBinding})
	case *ast.PTuple:
		elems := make([]core.Pattern, len(p.Elems))
		for i, e := range p.Elems {
			var cp core.Pattern
			cp, env = l.lowerPattern(e, env)
			elems[i] = cp
		}
		return core.Pattern{Kind: core.PatTuple, Elems: elems, Sp: p.PatSpan}, env
	case *ast.PEnum:
		elems := make([]core.Pattern, len(p.Inner))
		for i, e := range p.Inner {
			var cp core.Pattern
			cp, env = l.lowerPattern(e, env)
			elems[i] = cp
		}
		return core.Pattern{Kind: core.PatCtor, Name: p.Name, Elems: elems, Sp: p.PatSpan}, env
	default:
		panic("lower.lowerPattern: unhandled pattern type")
	}
}

// checkDuplicateBindings reports DuplicateBinding for any PVar name that
// occurs more than once within a single pattern (spec.md §3: "Pattern
// variable names are distinct within a single arm").
func (l *lowerer) checkDuplicateBindings(pat ast.Pattern) {
	seen := make(map[string]bool)
	var walk func(ast.Pattern)
	walk = func(p ast.Pattern) {
		switch n := p.(type) {
		case *ast.PVar:
			if l.isZeroArgCtorPattern(n.Name) {
				return
			}
			if seen[n.Name] {
				l.errs.Add(&DuplicateBinding{Name: n.Name, Sp: n.PatSpan})
			}
			seen[n.Name] = true
		case *ast.PTuple:
			for _, e := range n.Elems {
				walk(e)
			}
		case *ast.PEnum:
			for _, e := range n.Inner {
				walk(e)
			}
		}
	}
	walk(pat)
}

// tupleBinding is one PVar found beneath a chain of PTuple ancestors,
// together with the index path from the pattern's root needed to project
// it out of the matched value.
type tupleBinding struct {
	name string
	path []int
}

// collectTupleBindings walks pat looking for PVar leaves reachable through
// PTuple nesting only. Spec.md §4.4 rule 5 desugars tuple-pattern bindings
// into explicit CProj chains (mirroring rule 1's function-parameter
// currying); a PVar beneath a PEnum ancestor is left to whatever structural
// binding a downstream consumer of CMatch performs, since there is no
// explicit field-projection operator for constructor payloads.
func (l *lowerer) collectTupleBindings(pat ast.Pattern, path []int, out *[]tupleBinding) {
	switch p := pat.(type) {
	case *ast.PVar:
		if len(path) > 0 && !l.isZeroArgCtorPattern(p.Name) {
			cp := make([]int, len(path))
			copy(cp, path)
			*out = append(*out, tupleBinding{name: p.Name, path: cp})
		}
	case *ast.PTuple:
		for i, e := range p.Elems {
			l.collectTupleBindings(e, append(path, i), out)
		}
	}
}

func buildProj(root core.Term, path []int, sp token.Span) core.Term {
	t := root
	for _, idx := range path {
		t = &core.Proj{Expr: t, Index: idx, Sp: sp}
	}
	return t
}

// isIrrefutable reports whether pat matches every value of its shape by
// construction: an ordinary variable binding, or a PTuple whose elements
// are all themselves irrefutable. A tuple has exactly one shape (there is
// no tuple sum type to enumerate), so a PTuple built entirely out of
// bindings covers its scrutinee the same way a bare catch-all does. A
// zero-arg constructor pattern, any literal pattern, and a PEnum pattern
// are all refutable — they match only one case among possibly several.
func (l *lowerer) isIrrefutable(pat ast.Pattern) bool {
	switch p := pat.(type) {
	case *ast.PVar:
		return !l.isZeroArgCtorPattern(p.Name)
	case *ast.PTuple:
		for _, e := range p.Elems {
			if !l.isIrrefutable(e) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// checkExhaustive implements the heuristic decided for this frontend
// (spec.md §9 leaves non-derivable cases as "future work, not silent
// passes"): a top-level irrefutable arm (a catch-all PVar, or a PTuple
// built entirely of bindings) is trivially exhaustive; otherwise the
// scrutinee's enum type must be derivable — either the scrutinee is
// itself a direct constructor call, or a bare reference to a function
// parameter whose type annotation names the enum — and every variant of
// that enum must be covered by some arm's top-level PEnum pattern.
// Anything else is rejected as NonExhaustive rather than silently
// accepted.
func (l *lowerer) checkExhaustive(scrutinee ast.Expr, arms []ast.Arm, sp token.Span, ptypes map[string]string) {
	for _, arm := range arms {
		if l.isIrrefutable(arm.Pattern) {
			return
		}
	}

	enumName, ok := l.deriveEnumType(scrutinee, ptypes)
	if !ok {
		l.errs.Add(&NonExhaustive{Sp: sp})
		return
	}

	want := l.enumVariants[enumName]
	if want == nil {
		l.errs.Add(&NonExhaustive{Sp: sp})
		return
	}

	covered := make(map[string]bool)
	for _, arm := range arms {
		switch pat := arm.Pattern.(type) {
		case *ast.PEnum:
			covered[pat.Name] = true
		case *ast.PVar:
			if l.isZeroArgCtorPattern(pat.Name) {
				covered[pat.Name] = true
			}
		}
	}
	for _, v := range want {
		if !covered[v] {
			l.errs.Add(&NonExhaustive{Sp: sp})
			return
		}
	}
}

// deriveEnumType attempts to name the enum type of scrutinee, per the two
// derivable shapes spec.md §9 allows: a direct constructor-call scrutinee,
// or a bare variable whose declared parameter type names an enum.
func (l *lowerer) deriveEnumType(scrutinee ast.Expr, ptypes map[string]string) (string, bool) {
	switch e := scrutinee.(type) {
	case *ast.App:
		if v, ok := e.Callee.(*ast.Var); ok {
			if info, ok := l.ctors[v.Name]; ok {
				return info.EnumName, true
			}
		}
	case *ast.Var:
		if info, ok := l.ctors[e.Name]; ok {
			return info.EnumName, true
		}
		if annot, ok := ptypes[e.Name]; ok {
			if _, ok := l.enumVariants[annot]; ok {
				return annot, true
			}
		}
	}
	return "", false
}
