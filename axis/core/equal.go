package core

import "hash/fnv"

// Equal reports whether a and b are structurally identical: same tag, same
// literal values, same child terms recursively. Spans are diagnostic only
// (spec.md §3) and are excluded from the comparison.
func Equal(a, b Term) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Tag() != b.Tag() {
		return false
	}

	switch x := a.(type) {
	case *IntLit:
		return x.Value == b.(*IntLit).Value
	case *BoolLit:
		return x.Value == b.(*BoolLit).Value
	case *UnitLit:
		return true
	case *StrLit:
		return x.Value == b.(*StrLit).Value
	case *Var:
		return x.Name == b.(*Var).Name
	case *Lam:
		y := b.(*Lam)
		return x.Param == y.Param && Equal(x.Body, y.Body)
	case *App:
		y := b.(*App)
		return Equal(x.Func, y.Func) && Equal(x.Arg, y.Arg)
	case *Tuple:
		y := b.(*Tuple)
		return equalTermSlice(x.Elems, y.Elems)
	case *Proj:
		y := b.(*Proj)
		return x.Index == y.Index && Equal(x.Expr, y.Expr)
	case *Let:
		y := b.(*Let)
		return x.Name == y.Name && Equal(x.Value, y.Value) && Equal(x.Body, y.Body)
	case *If:
		y := b.(*If)
		return Equal(x.Cond, y.Cond) && Equal(x.Then, y.Then) && Equal(x.Else, y.Else)
	case *Ctor:
		y := b.(*Ctor)
		return x.Name == y.Name && equalTermSlice(x.Fields, y.Fields)
	case *Match:
		y := b.(*Match)
		if !Equal(x.Scrutinee, y.Scrutinee) || len(x.Arms) != len(y.Arms) {
			return false
		}
		for i := range x.Arms {
			if !equalPattern(x.Arms[i].Pattern, y.Arms[i].Pattern) || !Equal(x.Arms[i].Body, y.Arms[i].Body) {
				return false
			}
		}
		return true
	default:
		panic("core.Equal: unhandled term type")
	}
}

func equalTermSlice(a, b []Term) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}

func equalPattern(a, b Pattern) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case PatInt:
		return a.IntVal == b.IntVal
	case PatBool:
		return a.BoolVal == b.BoolVal
	case PatUnit:
		return true
	case PatVar:
		return a.Name == b.Name
	case PatTuple:
		if len(a.Elems) != len(b.Elems) {
			return false
		}
		for i := range a.Elems {
			if !equalPattern(a.Elems[i], b.Elems[i]) {
				return false
			}
		}
		return true
	case PatCtor:
		if a.Name != b.Name || len(a.Elems) != len(b.Elems) {
			return false
		}
		for i := range a.Elems {
			if !equalPattern(a.Elems[i], b.Elems[i]) {
				return false
			}
		}
		return true
	default:
		panic("core.equalPattern: unhandled pattern kind")
	}
}

// Hash returns a structural digest of t: two structurally Equal terms
// always hash identically. It is computed over the canonical pretty-printed
// form, which already excludes spans and orders children deterministically.
func Hash(t Term) uint64 {
	h := fnv.New64a()
	h.Write([]byte(Pretty(t)))
	return h.Sum64()
}
