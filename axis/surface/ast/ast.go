// Package ast defines the SurfaceAst node set produced by the parser: flat
// function/enum declarations plus the expression and pattern grammar of
// spec.md §3-4.3. Node identity is by value; nodes are constructed
// bottom-up by the parser and never mutated afterward.
package ast

import "github.com/axis-lang/axis-core/axis/token"

// Node is implemented by every AST node; it exposes the span of the first
// token in the node for diagnostics.
type Node interface {
	Span() token.Span
}

// Decl is a top-level declaration: a function or an enum.
type Decl interface {
	Node
	declNode()
}

// Expr is any surface expression.
type Expr interface {
	Node
	exprNode()
}

// Pattern is a match-arm pattern.
type Pattern interface {
	Node
	patternNode()
}

// File is the parsed form of one `.ax` source file.
type File struct {
	Decls []Decl
}

// Param is a single function parameter: a name and its (opaque) type
// annotation.
type Param struct {
	Name       string
	TypeAnnot  string
	ParamSpan  token.Span
}

// FnDecl declares a function with an ordered parameter list, a return type
// annotation, and a body expression.
type FnDecl struct {
	Name         string
	Params       []Param
	ReturnAnnot  string
	Body         Expr
	DeclSpan     token.Span
}

func (d *FnDecl) Span() token.Span { return d.DeclSpan }
func (*FnDecl) declNode()          {}

// EnumField is one named, typed field of an enum variant.
type EnumField struct {
	Name      string
	TypeAnnot string
}

// EnumVariant is one constructor of an enum, with an ordered field list
// (empty for field-less variants).
type EnumVariant struct {
	Name   string
	Fields []EnumField
}

// EnumDecl declares an enum type as an ordered list of variants.
type EnumDecl struct {
	Name      string
	Variants  []EnumVariant
	DeclSpan  token.Span
}

func (d *EnumDecl) Span() token.Span { return d.DeclSpan }
func (*EnumDecl) declNode()          {}

// --- Expressions ---

type IntLit struct {
	Value    int64
	LitSpan  token.Span
}

func (e *IntLit) Span() token.Span { return e.LitSpan }
func (*IntLit) exprNode()          {}

type BoolLit struct {
	Value   bool
	LitSpan token.Span
}

func (e *BoolLit) Span() token.Span { return e.LitSpan }
func (*BoolLit) exprNode()          {}

type UnitLit struct {
	LitSpan token.Span
}

func (e *UnitLit) Span() token.Span { return e.LitSpan }
func (*UnitLit) exprNode()          {}

type Var struct {
	Name    string
	VarSpan token.Span
}

func (e *Var) Span() token.Span { return e.VarSpan }
func (*Var) exprNode()          {}

// App is a call `callee(args...)`. Zero-argument calls have an empty Args
// slice; the parser still emits an App node so lowering can tell `f()`
// (an application) apart from `f` (a bare reference).
type App struct {
	Callee   Expr
	Args     []Expr
	CallSpan token.Span
}

func (e *App) Span() token.Span { return e.CallSpan }
func (*App) exprNode()          {}

// Lambda is a single-parameter anonymous function `|x| e`.
type Lambda struct {
	Param      string
	Body       Expr
	LambdaSpan token.Span
}

func (e *Lambda) Span() token.Span { return e.LambdaSpan }
func (*Lambda) exprNode()          {}

// Tuple is a parenthesized, comma-separated list of two or more elements,
// or of one element followed by a trailing comma.
type Tuple struct {
	Elems     []Expr
	TupleSpan token.Span
}

func (e *Tuple) Span() token.Span { return e.TupleSpan }
func (*Tuple) exprNode()          {}

// Proj is an explicit tuple projection `proj(e, i)`.
type Proj struct {
	Expr     Expr
	Index    int
	ProjSpan token.Span
}

func (e *Proj) Span() token.Span { return e.ProjSpan }
func (*Proj) exprNode()          {}

// Let is a `let name = value` binding scoped over body. In the surface
// grammar this only appears inside Block; the standalone node exists so
// lowering has one shape to walk regardless of how many bindings a block
// carries.
type Let struct {
	Name    string
	Value   Expr
	Body    Expr
	LetSpan token.Span
}

func (e *Let) Span() token.Span { return e.LetSpan }
func (*Let) exprNode()          {}

type If struct {
	Cond    Expr
	Then    Expr
	Else    Expr
	IfSpan  token.Span
}

func (e *If) Span() token.Span { return e.IfSpan }
func (*If) exprNode()          {}

// RecordField is one `name: value` pair in a record literal.
type RecordField struct {
	Name  string
	Value Expr
}

// Record is a `TypeName { f1: e1, ... }` construction expression.
type Record struct {
	TypeName   string
	Fields     []RecordField
	RecordSpan token.Span
}

func (e *Record) Span() token.Span { return e.RecordSpan }
func (*Record) exprNode()          {}

// Arm is one `pattern => expr` match arm.
type Arm struct {
	Pattern Pattern
	Body    Expr
}

type Match struct {
	Scrutinee Expr
	Arms      []Arm
	MatchSpan token.Span
}

func (e *Match) Span() token.Span { return e.MatchSpan }
func (*Match) exprNode()          {}

// LetBinding is one `let name = value` line inside a Block.
type LetBinding struct {
	Name  string
	Value Expr
}

// Block is `{ let ...; let ...; expr }`: zero or more let-bindings followed
// by a mandatory final expression.
type Block struct {
	Bindings   []LetBinding
	Final      Expr
	BlockSpan  token.Span
}

func (e *Block) Span() token.Span { return e.BlockSpan }
func (*Block) exprNode()          {}

// --- Patterns ---

type PInt struct {
	Value int64
	PatSpan token.Span
}

func (p *PInt) Span() token.Span { return p.PatSpan }
func (*PInt) patternNode()       {}

type PBool struct {
	Value   bool
	PatSpan token.Span
}

func (p *PBool) Span() token.Span { return p.PatSpan }
func (*PBool) patternNode()       {}

type PUnit struct {
	PatSpan token.Span
}

func (p *PUnit) Span() token.Span { return p.PatSpan }
func (*PUnit) patternNode()       {}

type PVar struct {
	Name    string
	PatSpan token.Span
}

func (p *PVar) Span() token.Span { return p.PatSpan }
func (*PVar) patternNode()       {}

type PTuple struct {
	Elems   []Pattern
	PatSpan token.Span
}

func (p *PTuple) Span() token.Span { return p.PatSpan }
func (*PTuple) patternNode()       {}

// PEnum matches a flat constructor name with an ordered list of inner
// patterns (empty for field-less variants).
type PEnum struct {
	Name    string
	Inner   []Pattern
	PatSpan token.Span
}

func (p *PEnum) Span() token.Span { return p.PatSpan }
func (*PEnum) patternNode()       {}
