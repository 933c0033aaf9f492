package lower

import (
	"github.com/axis-lang/axis-core/axis/core"
	"github.com/axis-lang/axis-core/axis/surface/ast"
)

// lowerMatch implements rule 5. Each arm's pattern is translated
// structurally (lowerPattern); a PTuple sub-pattern additionally desugars
// into CLet-bound CProj chains wrapped around the arm's body, mirroring
// the explicit-projection idiom rule 1 uses for function parameters,
// since CTuple has no other extraction operator. A PVar bound beneath a
// PEnum ancestor is left as a structural pattern binding — there is no
// explicit accessor for constructor fields, so its resolution is left to
// whatever eventually walks the CMatch.
//
// Because CoreTerm is a tree, not a DAG (spec.md §9), a term needed in
// more than one place — the scrutinee re-embedded once per tuple binding
// — is lowered fresh each time rather than shared by pointer.
func (l *lowerer) lowerMatch(n *ast.Match, env *Env, ptypes map[string]string) core.Term {
	l.checkExhaustive(n.Scrutinee, n.Arms, n.MatchSpan, ptypes)

	scrut := l.lowerExpr(n.Scrutinee, env, ptypes)
	arms := make([]core.Arm, len(n.Arms))

	for i, arm := range n.Arms {
		l.checkDuplicateBindings(arm.Pattern)
		corePat, bindEnv := l.lowerPattern(arm.Pattern, env)
		body := l.lowerExpr(arm.Body, bindEnv, ptypes)

		var bindings []tupleBinding
		l.collectTupleBindings(arm.Pattern, nil, &bindings)
		for j := len(bindings) - 1; j >= 0; j-- {
			tb := bindings[j]
			proj := buildProj(l.lowerExpr(n.Scrutinee, env, ptypes), tb.path, arm.Pattern.Span())
			body = &core.Let{Name: tb.name, Value: proj, Body: body, Sp: arm.Pattern.Span()}
		}

		arms[i] = core.Arm{Pattern: corePat, Body: body}
	}

	return &core.Match{Scrutinee: scrut, Arms: arms, Sp: n.MatchSpan}
}
