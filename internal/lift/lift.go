// Package lift implements C4: it moves every lambda that is not already
// the immediate right-hand side of a let binding to a freshly-named
// top-level binding, replacing the original occurrence with a reference to
// it. Grounded on lambda_lift.rs's scoped, bottom-up traversal.
package lift

import (
	"fmt"

	"github.com/babelc/babelc/internal/diag"
	"github.com/babelc/babelc/internal/support"
	"github.com/babelc/babelc/internal/symbol"
	"github.com/babelc/babelc/internal/types"
	"github.com/babelc/babelc/internal/xir"
)

// Lifter threads a scoped rename map (original nested-let symbol id to the
// fresh top-level symbol that now stands for it, per lambda_lift.rs's
// `map: ScopedMap<u32, Symbol>`) and a scoped set of the names bound by
// the innermost enclosing lambda's parameter list or by a let inside that
// lambda's body, started afresh at every lambda, used only to recognize a
// genuinely captured free variable (lambda_lift.rs's language has none by
// construction; this repo checks the claim instead of assuming it).
type Lifter struct {
	names *support.ScopedMap[uint32, symbol.Symbol]
	bound *support.ScopedMap[uint32, struct{}]
	top   map[uint32]struct{}
}

// New returns a Lifter ready to process a set of modules.
func New() *Lifter {
	return &Lifter{
		names: support.NewScopedMap[uint32, symbol.Symbol](),
		bound: support.NewScopedMap[uint32, struct{}](),
	}
}

// Run lifts every lambda in every module, returning the set of modules
// with only-top-level-bound lambdas.
func (lf *Lifter) Run(modules []*xir.Module) ([]*xir.Module, error) {
	out := make([]*xir.Module, 0, len(modules))
	for _, m := range modules {
		om, err := lf.liftModule(m)
		if err != nil {
			return nil, err
		}
		out = append(out, om)
	}
	return out, nil
}

func (lf *Lifter) liftModule(m *xir.Module) (*xir.Module, error) {
	lf.top = topLevelIDs(m)

	var decls []xir.Decl
	for _, d := range m.Decls {
		switch d := d.(type) {
		case *xir.Extern:
			decls = append(decls, d)
		case *xir.Let:
			binds := make([]xir.Bind, 0, len(d.Binds))
			for _, b := range d.Binds {
				var acc []xir.Decl
				nb, err := lf.liftBind(b, &acc)
				if err != nil {
					return nil, err
				}
				decls = append(decls, acc...)
				binds = append(binds, nb)
			}
			decls = append(decls, &xir.Let{Binds: binds})
		default:
			return nil, diag.Newf(diag.LFT001, diag.PhaseLift, "unsupported declaration %T", d)
		}
	}
	return &xir.Module{Name: m.Name, Decls: decls}, nil
}

func topLevelIDs(m *xir.Module) map[uint32]struct{} {
	ids := make(map[uint32]struct{})
	for _, d := range m.Decls {
		switch d := d.(type) {
		case *xir.Extern:
			ids[d.Sym.ID] = struct{}{}
		case *xir.Let:
			for _, b := range d.Binds {
				ids[b.Sym.ID] = struct{}{}
			}
		}
	}
	return ids
}

// liftBind lifts a single binding's body, hoisting it to acc as a fresh
// top-level declaration (under its ORIGINAL symbol) whenever the result is
// a bare Lam nested more than one scope deep — i.e. not itself a top-level
// binding — and returns a replacement local binding that references the
// hoisted declaration under a freshly named symbol, matching
// lambda_lift.rs's `lift_bind` exactly (including which of the two symbols
// ends up fresh and which keeps the original name).
func (lf *Lifter) liftBind(b xir.Bind, acc *[]xir.Decl) (xir.Bind, error) {
	lf.names.BeginScope()
	lf.bound.BeginScope()
	defer lf.names.EndScope()
	defer lf.bound.EndScope()

	expr, err := lf.lift(b.Expr, acc, true)
	if err != nil {
		return xir.Bind{}, err
	}

	if _, isLam := expr.(*xir.Lam); isLam && lf.names.Scope() > 1 {
		fresh := symbol.New(fmt.Sprintf("@__fnanon_%d", symbol.Fresh()), b.Sym.Ty)
		lf.names.Insert(b.Sym.ID, fresh)
		lf.top[b.Sym.ID] = struct{}{}
		*acc = append(*acc, &xir.Let{Binds: []xir.Bind{{Sym: b.Sym, Expr: expr}}})
		return xir.Bind{Sym: fresh, Expr: xir.Var{Sym: b.Sym}}, nil
	}
	return xir.Bind{Sym: b.Sym, Expr: expr}, nil
}

func (lf *Lifter) lift(expr xir.Expr, acc *[]xir.Decl, letBound bool) (xir.Expr, error) {
	switch e := expr.(type) {
	case xir.UnitLit, xir.I32Lit, xir.BoolLit:
		return e, nil
	case xir.Var:
		if fresh, ok := lf.names.Get(e.Sym.ID); ok {
			return xir.Var{Sym: fresh}, nil
		}
		if err := lf.checkBound(e.Sym.ID); err != nil {
			return nil, err
		}
		return e, nil
	case *xir.TyLam:
		body, err := lf.lift(e.Expr, acc, false)
		if err != nil {
			return nil, err
		}
		return &xir.TyLam{Vars: e.Vars, Expr: body}, nil
	case *xir.TyApp:
		body, err := lf.lift(e.Expr, acc, false)
		if err != nil {
			return nil, err
		}
		return &xir.TyApp{Expr: body, Args: e.Args}, nil
	case *xir.If:
		cond, err := lf.lift(e.Cond, acc, false)
		if err != nil {
			return nil, err
		}
		then, err := lf.lift(e.Then, acc, false)
		if err != nil {
			return nil, err
		}
		els, err := lf.lift(e.Else, acc, false)
		if err != nil {
			return nil, err
		}
		return &xir.If{Cond: cond, Then: then, Else: els, Ty: e.Ty}, nil
	case *xir.App:
		callee, err := lf.lift(e.Callee, acc, false)
		if err != nil {
			return nil, err
		}
		args := make([]xir.Expr, len(e.Args))
		for i, a := range e.Args {
			ae, err := lf.lift(a, acc, false)
			if err != nil {
				return nil, err
			}
			args[i] = ae
		}
		return &xir.App{Callee: callee, Args: args, Ty: e.Ty}, nil
	case *xir.LetExpr:
		bound, err := lf.liftBind(e.Bound, acc)
		if err != nil {
			return nil, err
		}
		lf.bound.BeginScope()
		lf.bound.Insert(e.Bound.Sym.ID, struct{}{})
		body, err := lf.lift(e.Body, acc, false)
		lf.bound.EndScope()
		if err != nil {
			return nil, err
		}
		return &xir.LetExpr{Bound: bound, Body: body}, nil
	case *xir.Lam:
		outer := lf.bound
		lf.bound = support.NewScopedMap[uint32, struct{}]()
		for _, p := range e.Params {
			lf.bound.Insert(p.ID, struct{}{})
		}
		body, err := lf.lift(e.Body, acc, false)
		lf.bound = outer
		if err != nil {
			return nil, err
		}
		lam := &xir.Lam{Params: e.Params, Body: body, RetTy: e.RetTy}
		if letBound {
			return lam, nil
		}
		fnTy := types.FuncType(paramTypes(e.Params), e.RetTy)
		sym := symbol.New(fmt.Sprintf("@__anon_%d", symbol.Fresh()), fnTy)
		*acc = append(*acc, &xir.Let{Binds: []xir.Bind{{Sym: sym, Expr: lam}}})
		return xir.Var{Sym: sym}, nil
	default:
		return nil, diag.Newf(diag.LFT001, diag.PhaseLift, "unsupported expression %T", e)
	}
}

func paramTypes(params []symbol.Symbol) []types.Type {
	ts := make([]types.Type, len(params))
	for i, p := range params {
		ts[i] = p.Ty
	}
	return ts
}

// checkBound rejects a Var that refers to neither a name bound by the
// innermost enclosing lambda (its parameters and the lets inside it) nor a
// top-level declaration of this module, hoisted ones included; a lambda
// that captures a variable of an enclosing lambda is therefore rejected: the
// one shape spec.md's "no free-variable capture" note says must never
// arise from a correctly renamed (C1) and specialized (C3) program.
func (lf *Lifter) checkBound(id uint32) error {
	if _, ok := lf.bound.Get(id); ok {
		return nil
	}
	if _, ok := lf.top[id]; ok {
		return nil
	}
	return diag.Newf(diag.LFT001, diag.PhaseLift, "unexpected free variable (symbol id %d)", id)
}
