// Package idtree defines IR1, the renamer's (C1) output: the untyped
// syntax tree with every identifier replaced by a symbol.Symbol carrying a
// fresh id and a fresh type-variable placeholder type.
package idtree

import (
	"fmt"
	"strings"

	"github.com/babelc/babelc/internal/symbol"
	"github.com/babelc/babelc/internal/types"
)

// Module is a named module: an ordered sequence of declarations.
type Module struct {
	Name  string
	Decls []Decl
}

// Decl is either an external function declaration or a let binding (one or
// more symbol = expression pairs).
type Decl interface {
	declNode()
}

// Extern is an external function declaration.
type Extern struct {
	Sym symbol.Symbol
}

func (*Extern) declNode() {}

// Let is a (possibly mutually-recursive group of) top-level let binding(s).
type Let struct {
	Binds []Bind
}

func (*Let) declNode() {}

// Bind is one `symbol = expr` pair.
type Bind struct {
	Sym  symbol.Symbol
	Expr Expr
}

// Expr is the IR1 expression sum type.
type Expr interface {
	exprNode()
	String() string
}

// UnitLit, I32Lit, BoolLit are literal expressions.
type UnitLit struct{}

func (UnitLit) exprNode()      {}
func (UnitLit) String() string { return "()" }

type I32Lit struct{ Value int32 }

func (I32Lit) exprNode()      {}
func (l I32Lit) String() string { return fmt.Sprintf("%d", l.Value) }

type BoolLit struct{ Value bool }

func (BoolLit) exprNode()      {}
func (l BoolLit) String() string { return fmt.Sprintf("%t", l.Value) }

// Var is a reference to a resolved symbol.
type Var struct{ Sym symbol.Symbol }

func (Var) exprNode()      {}
func (v Var) String() string { return v.Sym.String() }

// If is a conditional expression.
type If struct {
	Cond, Then, Else Expr
}

func (*If) exprNode() {}
func (e *If) String() string {
	return fmt.Sprintf("if %s then %s else %s", e.Cond, e.Then, e.Else)
}

// Let is a non-recursive let expression.
type LetExpr struct {
	Bound Bind
	Body  Expr
}

func (*LetExpr) exprNode() {}
func (e *LetExpr) String() string {
	return fmt.Sprintf("let %s = %s in %s", e.Bound.Sym, e.Bound.Expr, e.Body)
}

// Lam is a lambda abstraction.
type Lam struct {
	Params []symbol.Symbol
	Body   Expr
}

func (*Lam) exprNode() {}
func (e *Lam) String() string {
	names := make([]string, len(e.Params))
	for i, p := range e.Params {
		names[i] = p.Name
	}
	return fmt.Sprintf("\\%s -> %s", strings.Join(names, " "), e.Body)
}

// App is a function application.
type App struct {
	Callee Expr
	Args   []Expr
}

func (*App) exprNode() {}
func (e *App) String() string {
	args := make([]string, len(e.Args))
	for i, a := range e.Args {
		args[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", e.Callee, strings.Join(args, ", "))
}

// TyOf returns a freshly-minted, still-unresolved placeholder type
// (Var(fresh_tyvar(level))), used by the renamer when it binds a new
// identifier. Kept here rather than in internal/types because it is only
// ever called in the renamer's context of "the level at scope depth".
func TyOf(level int) types.Type {
	return types.Var{V: types.FreshTyVar(level)}
}
