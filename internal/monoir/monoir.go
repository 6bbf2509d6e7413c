// Package monoir defines IR3, the simplifier's (C5) output: a monomorphic,
// first-order IR with its own concrete type algebra (no type variables, no
// ForAll, no TyLam/TyApp). This is what internal/backend consumes.
package monoir

import (
	"fmt"
	"strings"
)

// Type is IR3's closed type algebra: every type here is already concrete,
// since specialization (C3) has resolved every type variable to one of
// Unit, Bool, I32 or a Function built from those.
type Type interface {
	monoTyp()
	String() string
}

type UnitTy struct{}

func (UnitTy) monoTyp()      {}
func (UnitTy) String() string { return "Unit" }

type BoolTy struct{}

func (BoolTy) monoTyp()      {}
func (BoolTy) String() string { return "Bool" }

type I32Ty struct{}

func (I32Ty) monoTyp()      {}
func (I32Ty) String() string { return "I32" }

// FunctionTy is the type of a (possibly multi-argument) first-order
// function value after lambda lifting (C4); no function in IR3 closes
// over free variables.
type FunctionTy struct {
	ParamsTy []Type
	ReturnTy Type
}

func (FunctionTy) monoTyp() {}
func (t FunctionTy) String() string {
	params := make([]string, len(t.ParamsTy))
	for i, p := range t.ParamsTy {
		params[i] = p.String()
	}
	return fmt.Sprintf("(%s) -> %s", strings.Join(params, ", "), t.ReturnTy)
}

// TermVar is IR3's identifier: a mangled name, its monomorphic type, and
// the id it carried since renaming (C1). Specialization (C3) mangles the
// names of the functions it specializes; other identifiers keep their
// source names, so two TermVars with different types can share a name and
// an id (e.g. a parameter in two specializations of one function).
type TermVar struct {
	Name string
	Ty   Type
	ID   uint32
}

func (v TermVar) String() string { return v.Name }

// Module is a fully specialized, lambda-lifted, simplified compilation
// unit: a flat list of top-level functions and external declarations
// (spec.md §3's "monomorphic first-order IR" output of C5). It also has a
// list of types filled only through AddType, which C5 never calls, so
// Types() is empty for a module C5 built.
type Module struct {
	name     string
	types    []Type
	funcs    []Func
	extFuncs []TermVar
}

func NewModule(name string) *Module {
	return &Module{name: name}
}

func (m *Module) Name() string          { return m.name }
func (m *Module) Types() []Type         { return m.types }
func (m *Module) Funcs() []Func         { return m.funcs }
func (m *Module) Externs() []TermVar    { return m.extFuncs }
func (m *Module) AddFunc(f Func)        { m.funcs = append(m.funcs, f) }
func (m *Module) AddType(t Type)        { m.types = append(m.types, t) }
func (m *Module) AddExtern(v TermVar)   { m.extFuncs = append(m.extFuncs, v) }

// Func is a top-level function: every function in IR3 is top-level,
// lambda lifting (C4) having already hoisted every other lambda into one.
type Func struct {
	Name TermVar
	Body Expr
}

// Lam is a still-anonymous lambda value; it only appears as the direct
// body of a Func after lifting — C4's invariant is that no other Expr
// position holds one.
type Lam struct {
	Params []TermVar
	Body   Expr
}

// Expr is the IR3 expression sum type.
type Expr interface {
	monoExprNode()
	String() string
}

type UnitLit struct{}

func (UnitLit) monoExprNode()  {}
func (UnitLit) String() string { return "()" }

type I32Lit struct{ Value int32 }

func (I32Lit) monoExprNode()    {}
func (l I32Lit) String() string { return fmt.Sprintf("%d", l.Value) }

type BoolLit struct{ Value bool }

func (BoolLit) monoExprNode()    {}
func (l BoolLit) String() string { return fmt.Sprintf("%t", l.Value) }

// LamExpr wraps a Lam so it satisfies Expr; only ever appears as a Func's
// direct Body post-lift.
type LamExpr struct{ Lam *Lam }

func (LamExpr) monoExprNode() {}
func (e LamExpr) String() string {
	names := make([]string, len(e.Lam.Params))
	for i, p := range e.Lam.Params {
		names[i] = p.Name
	}
	return fmt.Sprintf("\\%s -> %s", strings.Join(names, " "), e.Lam.Body)
}

type App struct {
	Callee Expr
	Args   []Expr
}

func (*App) monoExprNode() {}
func (e *App) String() string {
	args := make([]string, len(e.Args))
	for i, a := range e.Args {
		args[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", e.Callee, strings.Join(args, ", "))
}

type Var struct{ Term TermVar }

func (Var) monoExprNode()    {}
func (v Var) String() string { return v.Term.String() }

// If carries its result type; C5 does not drop it since the backend needs
// a type on every branch point to allocate registers/stack slots.
type If struct {
	Cond, Then, Else Expr
	Ty               Type
}

func (*If) monoExprNode() {}
func (e *If) String() string {
	return fmt.Sprintf("if %s then %s else %s", e.Cond, e.Then, e.Else)
}

// Let is a non-recursive binding; by IR3, Bind is never a Lam (C4 hoists
// every nested lambda). Where C4 hoisted a let-bound lambda, the Let binds
// a fresh "@__fnanon_<id>" name to a Var of the hoisted function.
type Let struct {
	Term TermVar
	Bind Expr
	Body Expr
}

func (*Let) monoExprNode() {}
func (e *Let) String() string {
	return fmt.Sprintf("let %s = %s in %s", e.Term, e.Bind, e.Body)
}
