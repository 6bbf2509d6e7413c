// Package xir defines IR2, the type inferrer's (C2) output: an explicitly
// typed IR with type abstractions (TyLam) and type applications (TyApp)
// marking where a polymorphic binding is generalized and instantiated.
package xir

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

// Decl is either an external function declaration or a let binding.
type Decl interface {
	declNode()
}

type Extern struct {
	Sym symbol.Symbol
}

func (*Extern) declNode() {}

type Let struct {
	Binds []Bind
}

func (*Let) declNode() {}

// Bind is one `symbol = expr` pair. The symbol's type is the (possibly
// polymorphic, via a surrounding TyLam in Expr) inferred type.
type Bind struct {
	Sym  symbol.Symbol
	Expr Expr
}

// Expr is the IR2 expression sum type.
type Expr interface {
	exprNode()
	String() string
}

type UnitLit struct{}

func (UnitLit) exprNode()      {}
func (UnitLit) String() string { return "()" }

type I32Lit struct{ Value int32 }

func (I32Lit) exprNode()      {}
func (l I32Lit) String() string { return fmt.Sprintf("%d", l.Value) }

type BoolLit struct{ Value bool }

func (BoolLit) exprNode()      {}
func (l BoolLit) String() string { return fmt.Sprintf("%t", l.Value) }

type Var struct{ Sym symbol.Symbol }

func (Var) exprNode()      {}
func (v Var) String() string { return v.Sym.String() }

// If carries its result type, inferred by C2.
type If struct {
	Cond, Then, Else Expr
	Ty               types.Type
}

func (*If) exprNode() {}
func (e *If) String() string {
	return fmt.Sprintf("if %s then %s else %s", e.Cond, e.Then, e.Else)
}

type LetExpr struct {
	Bound Bind
	Body  Expr
}

func (*LetExpr) exprNode() {}
func (e *LetExpr) String() string {
	return fmt.Sprintf("let %s = %s in %s", e.Bound.Sym, e.Bound.Expr, e.Body)
}

// Lam carries its return type explicitly, alongside its parameters'
// (already-typed) symbols.
type Lam struct {
	Params []symbol.Symbol
	Body   Expr
	RetTy  types.Type
}

func (*Lam) exprNode() {}
func (e *Lam) String() string {
	names := make([]string, len(e.Params))
	for i, p := range e.Params {
		names[i] = p.Name
	}
	return fmt.Sprintf("\\%s -> %s", strings.Join(names, " "), e.Body)
}

// App is a function application. Ty is the application's result type,
// annotated by C2 so that the specializer can substitute it directly
// without re-deriving it from the callee's (possibly still-polymorphic)
// type.
type App struct {
	Callee Expr
	Args   []Expr
	Ty     types.Type
}

func (*App) exprNode() {}
func (e *App) String() string {
	args := make([]string, len(e.Args))
	for i, a := range e.Args {
		args[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", e.Callee, strings.Join(args, ", "))
}

// TyLam is a type abstraction: `e` is polymorphic over Vars. It is
// introduced wherever C2 generalizes a let-bound expression's type and
// eliminated (along with TyApp) by the specializer (C3); spec.md invariant
// 3 requires that no TyLam survive specialization.
type TyLam struct {
	Vars []types.TyVar
	Expr Expr
}

func (*TyLam) exprNode() {}
func (e *TyLam) String() string {
	names := make([]string, len(e.Vars))
	for i, v := range e.Vars {
		names[i] = (types.Var{V: v}).String()
	}
	return fmt.Sprintf("Λ%s. %s", strings.Join(names, " "), e.Expr)
}

// TyApp instantiates a polymorphic expression (whose type must be a
// ForAll, spec.md invariant 2) at the given type arguments.
type TyApp struct {
	Expr Expr
	Args []types.Type
}

func (*TyApp) exprNode() {}
func (e *TyApp) String() string {
	args := make([]string, len(e.Args))
	for i, a := range e.Args {
		args[i] = a.String()
	}
	return fmt.Sprintf("%s[%s]", e.Expr, strings.Join(args, ", "))
}
