package lower_test

import (
	"testing"

	"github.com/axis-lang/axis-core/axis/core"
	"github.com/axis-lang/axis-core/axis/lower"
	"github.com/axis-lang/axis-core/axis/registry"
	"github.com/axis-lang/axis-core/axis/surface/ast"
	"github.com/axis-lang/axis-core/axis/token"
)

func sp() token.Span { return token.Span{File: "t.ax", Line: 1, Column: 1} }

func regWithAdd(profile registry.ProfileID) *registry.ActiveRegistry {
	return &registry.ActiveRegistry{
		ActiveProfile: profile,
		Entries: map[string]*registry.Entry{
			"add": {
				Name:          "add",
				Arity:         2,
				Deterministic: true,
				Profiles:      map[registry.ProfileID]bool{"default": true},
			},
		},
	}
}

// scenario 1: fn main() { add(1, 2) } -> CLam("_", CApp(CVar "add", CTuple[1,2]))
func TestLowerScenario1RegistryCall(t *testing.T) {
	file := &ast.File{Decls: []ast.Decl{
		&ast.FnDecl{
			Name: "main",
			Body: &ast.App{
				Callee: &ast.Var{Name: "add", VarSpan: sp()},
				Args: []ast.Expr{
					&ast.IntLit{Value: 1, LitSpan: sp()},
					&ast.IntLit{Value: 2, LitSpan: sp()},
				},
				CallSpan: sp(),
			},
			DeclSpan: sp(),
		},
	}}

	result, err := lower.Lower(file, regWithAdd("default"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.EntrypointName != "main" {
		t.Fatalf("entrypoint = %q, want main", result.EntrypointName)
	}

	want := &core.Lam{
		Param: "_",
		Body: &core.App{
			Func: &core.Var{Name: "add"},
			Arg: &core.Tuple{Elems: []core.Term{
				&core.IntLit{Value: 1},
				&core.IntLit{Value: 2},
			}},
		},
	}
	if !core.Equal(result.Term, want) {
		t.Errorf("got:\n%s\nwant:\n%s", core.Pretty(result.Term), core.Pretty(want))
	}
}

// scenario 2: add(1) against a registry entry of arity 2 -> ArityMismatch
func TestLowerScenario2ArityMismatch(t *testing.T) {
	file := &ast.File{Decls: []ast.Decl{
		&ast.FnDecl{
			Name: "main",
			Body: &ast.App{
				Callee:   &ast.Var{Name: "add", VarSpan: sp()},
				Args:     []ast.Expr{&ast.IntLit{Value: 1, LitSpan: sp()}},
				CallSpan: sp(),
			},
			DeclSpan: sp(),
		},
	}}

	_, err := lower.Lower(file, regWithAdd("default"))
	if err == nil {
		t.Fatal("expected an ArityMismatch error")
	}
	var mismatch *lower.ArityMismatch
	if !containsErr(err, &mismatch) {
		t.Errorf("expected *lower.ArityMismatch in %v", err)
	}
}

// scenario 3: proj on a statically-known tuple literal with an out-of-bounds
// index (index 5 of a one-element tuple) -> ProjOutOfBounds
func TestLowerScenario3ProjOutOfBounds(t *testing.T) {
	file := &ast.File{Decls: []ast.Decl{
		&ast.FnDecl{
			Name: "main",
			Body: &ast.Proj{
				Expr: &ast.Tuple{
					Elems:     []ast.Expr{&ast.IntLit{Value: 1, LitSpan: sp()}},
					TupleSpan: sp(),
				},
				Index:    5,
				ProjSpan: sp(),
			},
			DeclSpan: sp(),
		},
	}}

	_, err := lower.Lower(file, emptyReg())
	if err == nil {
		t.Fatal("expected a ProjOutOfBounds error")
	}
	var oob *lower.ProjOutOfBounds
	if !containsErr(err, &oob) {
		t.Errorf("expected *lower.ProjOutOfBounds in %v", err)
	}
}

// scenario 4: match on Option_Some(3) covering both variants lowers with no
// CLet wrapper for the PEnum-bound "x" (only PTuple bindings desugar that way).
func TestLowerScenario4EnumMatch(t *testing.T) {
	file := &ast.File{Decls: []ast.Decl{
		&ast.EnumDecl{
			Name: "Option",
			Variants: []ast.EnumVariant{
				{Name: "None"},
				{Name: "Some", Fields: []ast.EnumField{{Name: "value", TypeAnnot: "int"}}},
			},
			DeclSpan: sp(),
		},
		&ast.FnDecl{
			Name: "main",
			Body: &ast.Match{
				Scrutinee: &ast.App{
					Callee:   &ast.Var{Name: "Option_Some", VarSpan: sp()},
					Args:     []ast.Expr{&ast.IntLit{Value: 3, LitSpan: sp()}},
					CallSpan: sp(),
				},
				Arms: []ast.Arm{
					{
						// The real parser produces a bare PVar for a
						// paren-less constructor reference like
						// "Option_None"; lowering must reclassify it.
						Pattern: &ast.PVar{Name: "Option_None", PatSpan: sp()},
						Body:    &ast.IntLit{Value: 0, LitSpan: sp()},
					},
					{
						Pattern: &ast.PEnum{Name: "Option_Some", Inner: []ast.Pattern{&ast.PVar{Name: "x", PatSpan: sp()}}, PatSpan: sp()},
						Body:    &ast.Var{Name: "x", VarSpan: sp()},
					},
				},
				MatchSpan: sp(),
			},
			DeclSpan: sp(),
		},
	}}

	result, err := lower.Lower(file, emptyReg())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := &core.Match{
		Scrutinee: &core.Ctor{Name: "Option_Some", Fields: []core.Term{&core.IntLit{Value: 3}}},
		Arms: []core.Arm{
			{Pattern: core.Pattern{Kind: core.PatCtor, Name: "Option_None"}, Body: &core.IntLit{Value: 0}},
			{
				Pattern: core.Pattern{Kind: core.PatCtor, Name: "Option_Some", Elems: []core.Pattern{{Kind: core.PatVar, Name: "x"}}},
				Body:    &core.Var{Name: "x"},
			},
		},
	}
	lam, ok := result.Term.(*core.Lam)
	if !ok {
		t.Fatalf("expected top-level Lam, got %T", result.Term)
	}
	if !core.Equal(lam.Body, want) {
		t.Errorf("got:\n%s\nwant:\n%s", core.Pretty(lam.Body), core.Pretty(want))
	}
}

// fn main() { match (1, 2) { (a, b) => a } } — the sole arm's PTuple
// pattern is irrefutable (spec.md §4.4 rule 5), so exhaustiveness holds
// without any enum derivation, and its body must be wrapped in a
// CLet-bound projection chain, one binding per element, in index order.
func TestLowerTuplePatternDesugarsToProjChain(t *testing.T) {
	scrutinee := &ast.Tuple{
		Elems:     []ast.Expr{&ast.IntLit{Value: 1, LitSpan: sp()}, &ast.IntLit{Value: 2, LitSpan: sp()}},
		TupleSpan: sp(),
	}
	file := &ast.File{Decls: []ast.Decl{
		&ast.FnDecl{
			Name: "main",
			Body: &ast.Match{
				Scrutinee: scrutinee,
				Arms: []ast.Arm{
					{
						Pattern: &ast.PTuple{
							Elems: []ast.Pattern{
								&ast.PVar{Name: "a", PatSpan: sp()},
								&ast.PVar{Name: "b", PatSpan: sp()},
							},
							PatSpan: sp(),
						},
						Body: &ast.Var{Name: "a", VarSpan: sp()},
					},
				},
				MatchSpan: sp(),
			},
			DeclSpan: sp(),
		},
	}}

	result, err := lower.Lower(file, emptyReg())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lam, ok := result.Term.(*core.Lam)
	if !ok {
		t.Fatalf("expected top-level Lam, got %T", result.Term)
	}
	match, ok := lam.Body.(*core.Match)
	if !ok {
		t.Fatalf("expected Match body, got %T", lam.Body)
	}
	if len(match.Arms) != 1 {
		t.Fatalf("expected 1 arm, got %d", len(match.Arms))
	}

	tuple := &core.Tuple{Elems: []core.Term{&core.IntLit{Value: 1}, &core.IntLit{Value: 2}}}
	want := &core.Let{
		Name:  "a",
		Value: &core.Proj{Expr: tuple, Index: 0},
		Body: &core.Let{
			Name:  "b",
			Value: &core.Proj{Expr: tuple, Index: 1},
			Body:  &core.Var{Name: "a"},
		},
	}
	if !core.Equal(match.Arms[0].Body, want) {
		t.Errorf("got:\n%s\nwant:\n%s", core.Pretty(match.Arms[0].Body), core.Pretty(want))
	}
}

func TestLowerNonExhaustiveMatch(t *testing.T) {
	file := &ast.File{Decls: []ast.Decl{
		&ast.EnumDecl{
			Name: "Option",
			Variants: []ast.EnumVariant{
				{Name: "None"},
				{Name: "Some", Fields: []ast.EnumField{{Name: "value", TypeAnnot: "int"}}},
			},
			DeclSpan: sp(),
		},
		&ast.FnDecl{
			Name: "main",
			Body: &ast.Match{
				Scrutinee: &ast.App{Callee: &ast.Var{Name: "Option_None", VarSpan: sp()}, CallSpan: sp()},
				Arms: []ast.Arm{
					{Pattern: &ast.PVar{Name: "Option_None", PatSpan: sp()}, Body: &ast.IntLit{Value: 0, LitSpan: sp()}},
				},
				MatchSpan: sp(),
			},
			DeclSpan: sp(),
		},
	}}

	_, err := lower.Lower(file, emptyReg())
	if err == nil {
		t.Fatal("expected NonExhaustive error")
	}
	var ne *lower.NonExhaustive
	if !containsErr(err, &ne) {
		t.Errorf("expected *lower.NonExhaustive in %v", err)
	}
}

func TestLowerProfileDenied(t *testing.T) {
	file := &ast.File{Decls: []ast.Decl{
		&ast.FnDecl{
			Name: "main",
			Body: &ast.App{
				Callee:   &ast.Var{Name: "add", VarSpan: sp()},
				Args:     []ast.Expr{&ast.IntLit{Value: 1, LitSpan: sp()}, &ast.IntLit{Value: 2, LitSpan: sp()}},
				CallSpan: sp(),
			},
			DeclSpan: sp(),
		},
	}}

	_, err := lower.Lower(file, regWithAdd("sandboxed"))
	if err == nil {
		t.Fatal("expected ProfileDenied error")
	}
	var pd *lower.ProfileDenied
	if !containsErr(err, &pd) {
		t.Errorf("expected *lower.ProfileDenied in %v", err)
	}
}

func TestLowerEmptyFileIsUnit(t *testing.T) {
	result, err := lower.Lower(&ast.File{}, emptyReg())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.EntrypointName != "" {
		t.Errorf("entrypoint = %q, want empty", result.EntrypointName)
	}
	if _, ok := result.Term.(*core.UnitLit); !ok {
		t.Errorf("expected UnitLit, got %T", result.Term)
	}
}

// A bare identifier pattern naming a zero-arg constructor (as the parser
// actually produces for "Option_None" with no trailing parens) must lower
// to a PatCtor, not a variable binding that would shadow exhaustiveness.
func TestLowerBareZeroArgCtorPatternIsNotABinding(t *testing.T) {
	file := &ast.File{Decls: []ast.Decl{
		&ast.EnumDecl{
			Name: "Option",
			Variants: []ast.EnumVariant{
				{Name: "None"},
				{Name: "Some", Fields: []ast.EnumField{{Name: "value", TypeAnnot: "int"}}},
			},
			DeclSpan: sp(),
		},
		&ast.FnDecl{
			Name: "main",
			Body: &ast.Match{
				Scrutinee: &ast.App{Callee: &ast.Var{Name: "Option_None", VarSpan: sp()}, CallSpan: sp()},
				Arms: []ast.Arm{
					{Pattern: &ast.PVar{Name: "Option_None", PatSpan: sp()}, Body: &ast.IntLit{Value: 1, LitSpan: sp()}},
					{Pattern: &ast.PEnum{Name: "Option_Some", Inner: []ast.Pattern{&ast.PVar{Name: "x", PatSpan: sp()}}, PatSpan: sp()}, Body: &ast.Var{Name: "x", VarSpan: sp()}},
				},
				MatchSpan: sp(),
			},
			DeclSpan: sp(),
		},
	}}

	result, err := lower.Lower(file, emptyReg())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lam := result.Term.(*core.Lam)
	match := lam.Body.(*core.Match)
	if match.Arms[0].Pattern.Kind != core.PatCtor || match.Arms[0].Pattern.Name != "Option_None" {
		t.Errorf("expected first arm pattern to be PatCtor(Option_None), got %+v", match.Arms[0].Pattern)
	}
	if _, isVar := match.Arms[0].Body.(*core.Var); isVar {
		t.Errorf("Option_None arm body must not reference a synthesized binding")
	}
}

func emptyReg() *registry.ActiveRegistry {
	return &registry.ActiveRegistry{ActiveProfile: "default", Entries: map[string]*registry.Entry{}}
}

// containsErr walks a possibly-joined error tree looking for a target type.
func containsErr[T any](err error, target *T) bool {
	type unwrapper interface{ Unwrap() []error }
	if u, ok := err.(unwrapper); ok {
		for _, e := range u.Unwrap() {
			if v, ok := e.(T); ok {
				*target = v
				return true
			}
			if containsErr(e, target) {
				return true
			}
		}
		return false
	}
	if v, ok := err.(T); ok {
		*target = v
		return true
	}
	return false
}
