// Package simplify implements C5: it lowers IR2 (after C3 specialization
// and C4 lambda lifting) into IR3 (monoir), the monomorphic first-order
// form the backend consumes. It performs only type rewriting and
// structural flattening — no new control flow. Grounded almost verbatim
// on simplify.rs's process/process_bind/process/get_type.
package simplify

import (
	"github.com/babelc/babelc/internal/diag"
	"github.com/babelc/babelc/internal/monoir"
	"github.com/babelc/babelc/internal/symbol"
	"github.com/babelc/babelc/internal/types"
	"github.com/babelc/babelc/internal/xir"
)

// Run lowers every module independently.
func Run(modules []*xir.Module) ([]*monoir.Module, error) {
	out := make([]*monoir.Module, 0, len(modules))
	for _, m := range modules {
		mm, err := process(m)
		if err != nil {
			return nil, err
		}
		out = append(out, mm)
	}
	return out, nil
}

func process(m *xir.Module) (*monoir.Module, error) {
	mm := monoir.NewModule(m.Name)
	for _, d := range m.Decls {
		switch d := d.(type) {
		case *xir.Extern:
			sym, err := processSymbol(d.Sym)
			if err != nil {
				return nil, err
			}
			mm.AddExtern(sym)
		case *xir.Let:
			for _, b := range d.Binds {
				f, err := processBind(b)
				if err != nil {
					return nil, err
				}
				mm.AddFunc(f)
			}
		default:
			return nil, diag.Newf(diag.SIM001, diag.PhaseSimplify, "unsupported declaration %T", d)
		}
	}
	return mm, nil
}

func processSymbol(sym symbol.Symbol) (monoir.TermVar, error) {
	ty, err := getType(sym.Ty)
	if err != nil {
		return monoir.TermVar{}, err
	}
	return monoir.TermVar{Name: sym.Name, Ty: ty, ID: sym.ID}, nil
}

func processBind(b xir.Bind) (monoir.Func, error) {
	name, err := processSymbol(b.Sym)
	if err != nil {
		return monoir.Func{}, err
	}
	body, err := processExpr(b.Expr)
	if err != nil {
		return monoir.Func{}, err
	}
	return monoir.Func{Name: name, Body: body}, nil
}

func processExpr(expr xir.Expr) (monoir.Expr, error) {
	switch e := expr.(type) {
	case xir.UnitLit:
		return monoir.UnitLit{}, nil
	case xir.I32Lit:
		return monoir.I32Lit{Value: e.Value}, nil
	case xir.BoolLit:
		return monoir.BoolLit{Value: e.Value}, nil
	case xir.Var:
		sym, err := processSymbol(e.Sym)
		if err != nil {
			return nil, err
		}
		return monoir.Var{Term: sym}, nil
	case *xir.If:
		cond, err := processExpr(e.Cond)
		if err != nil {
			return nil, err
		}
		then, err := processExpr(e.Then)
		if err != nil {
			return nil, err
		}
		els, err := processExpr(e.Else)
		if err != nil {
			return nil, err
		}
		ty, err := getType(e.Ty)
		if err != nil {
			return nil, err
		}
		return &monoir.If{Cond: cond, Then: then, Else: els, Ty: ty}, nil
	case *xir.LetExpr:
		bind, err := processBind(e.Bound)
		if err != nil {
			return nil, err
		}
		body, err := processExpr(e.Body)
		if err != nil {
			return nil, err
		}
		return &monoir.Let{Term: bind.Name, Bind: bind.Body, Body: body}, nil
	case *xir.Lam:
		params := make([]monoir.TermVar, len(e.Params))
		for i, p := range e.Params {
			mp, err := processSymbol(p)
			if err != nil {
				return nil, err
			}
			params[i] = mp
		}
		body, err := processExpr(e.Body)
		if err != nil {
			return nil, err
		}
		return monoir.LamExpr{Lam: &monoir.Lam{Params: params, Body: body}}, nil
	case *xir.App:
		callee, err := processExpr(e.Callee)
		if err != nil {
			return nil, err
		}
		args := make([]monoir.Expr, len(e.Args))
		for i, a := range e.Args {
			ae, err := processExpr(a)
			if err != nil {
				return nil, err
			}
			args[i] = ae
		}
		return &monoir.App{Callee: callee, Args: args}, nil
	default:
		return nil, diag.Newf(diag.SIM001, diag.PhaseSimplify, "unsupported expression %T", e)
	}
}

// getType lowers a (by now ground, per C3's invariant) xir/types.Type into
// IR3's closed concrete algebra.
func getType(ty types.Type) (monoir.Type, error) {
	switch t := ty.(type) {
	case types.App:
		return getAppType(t)
	case types.Con:
		switch t.TyCon {
		case types.I32:
			return monoir.I32Ty{}, nil
		case types.Bool:
			return monoir.BoolTy{}, nil
		case types.Unit:
			return monoir.UnitTy{}, nil
		default:
			return nil, diag.Newf(diag.SIM001, diag.PhaseSimplify, "unsupported type constant %q", t.TyCon)
		}
	default:
		return nil, diag.Newf(diag.SIM001, diag.PhaseSimplify, "unsupported type %s", ty)
	}
}

func getAppType(app types.App) (monoir.Type, error) {
	con, ok := app.Con.(types.Con)
	if !ok || con.TyCon != types.Func {
		return nil, diag.Newf(diag.SIM001, diag.PhaseSimplify, "unsupported type application %s", app)
	}
	if len(app.Args) == 0 {
		return nil, diag.Newf(diag.SIM001, diag.PhaseSimplify, "function type with no return type: %s", app)
	}
	params := make([]monoir.Type, len(app.Args)-1)
	for i, a := range app.Args[:len(app.Args)-1] {
		pt, err := getType(a)
		if err != nil {
			return nil, err
		}
		params[i] = pt
	}
	ret, err := getType(app.Args[len(app.Args)-1])
	if err != nil {
		return nil, err
	}
	return monoir.FunctionTy{ParamsTy: params, ReturnTy: ret}, nil
}
