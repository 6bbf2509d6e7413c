package ast

import (
	"fmt"
	"strings"
)

// Kind is the surface kind grammar: Star classifies proper types, Fun
// classifies type constructors still awaiting arguments.
type Kind interface {
	kindNode()
	String() string
}

type KindStar struct{}

func (KindStar) kindNode()     {}
func (KindStar) String() string { return "*" }

type KindFun struct {
	Arg    Kind
	Result Kind
}

func (KindFun) kindNode() {}
func (k KindFun) String() string {
	return fmt.Sprintf("(%s -> %s)", k.Arg, k.Result)
}

// Built-in tycon names, shared with internal/types.
const (
	TyConI32  = "I32"
	TyConBool = "Bool"
	TyConUnit = "Unit"
	TyConFunc = "Func"
)

// Type is the surface type grammar: Con(tycon, kind) | Var(name) |
// App(Type, [Type]).
type Type interface {
	typeNode()
	String() string
}

type TyCon struct {
	Name string
	Kind Kind
}

func (TyCon) typeNode()     {}
func (t TyCon) String() string { return t.Name }

type TyVar struct {
	Name string
}

func (TyVar) typeNode()     {}
func (t TyVar) String() string { return t.Name }

type TyApp struct {
	Con  Type
	Args []Type
}

func (TyApp) typeNode() {}
func (t TyApp) String() string {
	args := make([]string, len(t.Args))
	for i, a := range t.Args {
		args[i] = a.String()
	}
	return fmt.Sprintf("%s<%s>", t.Con, strings.Join(args, ", "))
}

// FuncSurfaceType builds the surface function type App(Con(Func,k), params+[ret]).
func FuncSurfaceType(params []Type, ret Type) Type {
	k := Kind(KindStar{})
	for range params {
		k = KindFun{Arg: KindStar{}, Result: k}
	}
	args := make([]Type, 0, len(params)+1)
	args = append(args, params...)
	args = append(args, ret)
	return TyApp{Con: TyCon{Name: TyConFunc, Kind: k}, Args: args}
}
