package lower

import (
	"github.com/axis-lang/axis-core/axis/surface/ast"
)

// ctorInfo describes one enum constructor's flat call signature.
type ctorInfo struct {
	EnumName string
	Arity    int
	Fields   []string // declared field names in order, for Record lowering
}

// buildCtors collects every enum variant declared in file into a table
// keyed by its flat constructor name ("EnumName_Variant"), the same
// spelling the surface grammar uses at call sites (spec.md §4.4 rule 3).
func buildCtors(file *ast.File) map[string]ctorInfo {
	ctors := make(map[string]ctorInfo)
	for _, decl := range file.Decls {
		ed, ok := decl.(*ast.EnumDecl)
		if !ok {
			continue
		}
		for _, v := range ed.Variants {
			flat := ed.Name + "_" + v.Name
			fields := make([]string, len(v.Fields))
			for i, f := range v.Fields {
				fields[i] = f.Name
			}
			ctors[flat] = ctorInfo{EnumName: ed.Name, Arity: len(v.Fields), Fields: fields}
		}
	}
	return ctors
}

// enumVariants maps an enum's declared name to the flat constructor names
// of all its variants, used by the exhaustiveness check.
func buildEnumVariants(file *ast.File) map[string][]string {
	out := make(map[string][]string)
	for _, decl := range file.Decls {
		ed, ok := decl.(*ast.EnumDecl)
		if !ok {
			continue
		}
		names := make([]string, len(ed.Variants))
		for i, v := range ed.Variants {
			names[i] = ed.Name + "_" + v.Name
		}
		out[ed.Name] = names
	}
	return out
}

// paramTypes maps a function's parameter names to their (opaque) type
// annotations, used to derive an enum type for exhaustiveness when the
// scrutinee is a bare reference to a typed parameter.
func paramTypes(fn *ast.FnDecl) map[string]string {
	out := make(map[string]string, len(fn.Params))
	for _, p := range fn.Params {
		out[p.Name] = p.TypeAnnot
	}
	return out
}

// selectEntrypoint picks the function whose body becomes the compiled
// bundle's CoreTerm: a function literally named "main" if one exists,
// else the first FnDecl in source order. Neither spec.md nor the source
// language it was distilled from states which declared function is the
// entrypoint when several exist; this is the decided resolution.
func selectEntrypoint(file *ast.File) *ast.FnDecl {
	var first *ast.FnDecl
	for _, decl := range file.Decls {
		fn, ok := decl.(*ast.FnDecl)
		if !ok {
			continue
		}
		if first == nil {
			first = fn
		}
		if fn.Name == "main" {
			return fn
		}
	}
	return first
}
