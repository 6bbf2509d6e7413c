package types

import (
	"fmt"
	"strings"
)

// Built-in type constant names.
const (
	I32  = "I32"
	Bool = "Bool"
	Unit = "Unit"
	Func = "Func"
)

// Type is the closed algebraic datatype of types: a type constant (Con), a
// type application (App), or a type variable (Var).
type Type interface {
	String() string
	typ()
}

// Con is a type constant: a built-in tycon (I32, Bool, Unit, Func) or a
// user-named nominal, together with its kind.
type Con struct {
	TyCon string
	K     Kind
}

func (Con) typ() {}
func (c Con) String() string { return c.TyCon }

// App is type application. Function types are encoded as
// App(Con(Func, k), [p1,…,pn, ret]).
type App struct {
	Con  Type
	Args []Type
}

func (App) typ() {}
func (a App) String() string {
	if con, ok := a.Con.(Con); ok && con.TyCon == Func && len(a.Args) > 0 {
		params := a.Args[:len(a.Args)-1]
		ret := a.Args[len(a.Args)-1]
		ps := make([]string, len(params))
		for i, p := range params {
			ps[i] = p.String()
		}
		return fmt.Sprintf("(%s) -> %s", strings.Join(ps, ", "), ret.String())
	}
	args := make([]string, len(a.Args))
	for i, arg := range a.Args {
		args[i] = arg.String()
	}
	return fmt.Sprintf("%s<%s>", a.Con.String(), strings.Join(args, ", "))
}

// Var is a type variable.
type Var struct {
	V TyVar
}

func (Var) typ() {}
func (v Var) String() string { return fmt.Sprintf("t%d", v.V.ID) }

// FuncType builds the function type App(Con(Func, kind), params+[ret]).
func FuncType(params []Type, ret Type) Type {
	k := Kind(KStar{})
	for range params {
		k = KFun{Arg: KStar{}, Result: k}
	}
	args := make([]Type, 0, len(params)+1)
	args = append(args, params...)
	args = append(args, ret)
	return App{Con: Con{TyCon: Func, K: k}, Args: args}
}

// AsFunc decomposes a function type produced by FuncType back into its
// parameter and return types. ok is false if ty is not App(Con(Func,_),_).
func AsFunc(ty Type) (params []Type, ret Type, ok bool) {
	app, isApp := ty.(App)
	if !isApp {
		return nil, nil, false
	}
	con, isCon := app.Con.(Con)
	if !isCon || con.TyCon != Func || len(app.Args) == 0 {
		return nil, nil, false
	}
	return app.Args[:len(app.Args)-1], app.Args[len(app.Args)-1], true
}

// I32Type, BoolType and UnitType are the built-in base types.
var (
	I32Type  Type = Con{TyCon: I32, K: KStar{}}
	BoolType Type = Con{TyCon: Bool, K: KStar{}}
	UnitType Type = Con{TyCon: Unit, K: KStar{}}
)

// ForAll is a type scheme: a vector of bound type variables plus a body
// type. A scheme is monomorphic iff Vars is empty.
type ForAll struct {
	Vars []TyVar
	Body Type
}

func (s ForAll) Monomorphic() bool { return len(s.Vars) == 0 }

func (s ForAll) String() string {
	if s.Monomorphic() {
		return s.Body.String()
	}
	names := make([]string, len(s.Vars))
	for i, v := range s.Vars {
		names[i] = Var{V: v}.String()
	}
	return fmt.Sprintf("forall %s. %s", strings.Join(names, " "), s.Body.String())
}

// Equals reports structural equality of two ground types (types with no
// free Var). Two Vars are equal only if they carry the same TyVar id.
func Equals(a, b Type) bool {
	switch a := a.(type) {
	case Con:
		b, ok := b.(Con)
		return ok && a.TyCon == b.TyCon && a.K.Equals(b.K)
	case App:
		b, ok := b.(App)
		if !ok || len(a.Args) != len(b.Args) || !Equals(a.Con, b.Con) {
			return false
		}
		for i := range a.Args {
			if !Equals(a.Args[i], b.Args[i]) {
				return false
			}
		}
		return true
	case Var:
		b, ok := b.(Var)
		return ok && a.V.Equal(b.V)
	default:
		return false
	}
}

// FreeVars returns the free (unbound) type variables occurring in ty, in
// first-occurrence order with duplicates removed.
func FreeVars(ty Type) []TyVar {
	var out []TyVar
	seen := make(map[uint32]bool)
	var walk func(Type)
	walk = func(t Type) {
		switch t := t.(type) {
		case Var:
			if !seen[t.V.ID] {
				seen[t.V.ID] = true
				out = append(out, t.V)
			}
		case App:
			walk(t.Con)
			for _, a := range t.Args {
				walk(a)
			}
		case Con:
		}
	}
	walk(ty)
	return out
}
