// Package ast defines the untyped syntax tree this compiler's core consumes
// from its upstream parser collaborator (spec §6). The lexer and parser
// that produce these trees are out of scope for this repository; this
// package fixes only the contract shape.
package ast

import "fmt"

// Pos is a source position, carried on every node for diagnostics.
type Pos struct {
	File   string
	Line   int
	Column int
}

func (p Pos) String() string {
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
}

// Module is a named module: an ordered sequence of declarations.
type Module struct {
	Name  string
	Decls []Decl
}

// Decl is either an external function declaration or a let binding.
type Decl interface {
	declNode()
}

// Extern declares a function whose body is provided outside the compiled
// program (an intrinsic or host function).
type Extern struct {
	Name string
	Type Type
	Pos  Pos
}

func (*Extern) declNode() {}

// Bind is a single `name = expr` pair, the unit a let-binding or top-level
// function declaration is built from.
type Bind struct {
	Name string
	Expr Expr
}

// Func is a top-level function declaration.
type Func struct {
	Bind Bind
	Pos  Pos
}

func (*Func) declNode() {}

// Expr is the untyped expression sum type: literals, variable references,
// lambdas, applications, conditionals, and let bindings.
type Expr interface {
	exprNode()
	Position() Pos
}

type exprBase struct {
	Pos Pos
}

func (e exprBase) Position() Pos { return e.Pos }

// UnitLit is the unit literal `()`.
type UnitLit struct{ exprBase }

func (*UnitLit) exprNode() {}

// I32Lit is a 32-bit integer literal.
type I32Lit struct {
	exprBase
	Value int32
}

func (*I32Lit) exprNode() {}

// BoolLit is a boolean literal.
type BoolLit struct {
	exprBase
	Value bool
}

func (*BoolLit) exprNode() {}

// Var is a reference to a named identifier.
type Var struct {
	exprBase
	Name string
}

func (*Var) exprNode() {}

// Lam is a lambda abstraction over one or more parameters.
type Lam struct {
	exprBase
	Params []string
	Body   Expr
}

func (*Lam) exprNode() {}

// App is a function application, callee applied to one or more arguments.
type App struct {
	exprBase
	Callee Expr
	Args   []Expr
}

func (*App) exprNode() {}

// If is a conditional expression.
type If struct {
	exprBase
	Cond Expr
	Then Expr
	Else Expr
}

func (*If) exprNode() {}

// Let is a non-recursive let binding: `let name = bound in body`.
type Let struct {
	exprBase
	Bound Bind
	Body  Expr
}

func (*Let) exprNode() {}

// NewUnitLit, NewI32Lit, NewBoolLit, NewVar, NewLam, NewApp, NewIf, and
// NewLet are convenience constructors that stamp a Pos, used by
// internal/testsupport to build fixtures in lieu of a parser.

func NewUnitLit(pos Pos) *UnitLit { return &UnitLit{exprBase{pos}} }
func NewI32Lit(pos Pos, v int32) *I32Lit { return &I32Lit{exprBase{pos}, v} }
func NewBoolLit(pos Pos, v bool) *BoolLit { return &BoolLit{exprBase{pos}, v} }
func NewVar(pos Pos, name string) *Var { return &Var{exprBase{pos}, name} }
func NewLam(pos Pos, params []string, body Expr) *Lam {
	return &Lam{exprBase{pos}, params, body}
}
func NewApp(pos Pos, callee Expr, args []Expr) *App {
	return &App{exprBase{pos}, callee, args}
}
func NewIf(pos Pos, cond, then, els Expr) *If {
	return &If{exprBase{pos}, cond, then, els}
}
func NewLet(pos Pos, bound Bind, body Expr) *Let {
	return &Let{exprBase{pos}, bound, body}
}
