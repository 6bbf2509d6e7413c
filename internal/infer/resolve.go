package infer

import (
	"github.com/babelc/babelc/internal/types"
	"github.com/babelc/babelc/internal/xir"
)

// resolveExpr walks e, replacing every embedded Type with its current
// unifier binding. Unification mutates the union-find table as inference
// proceeds, so a Var created early in a body (e.g. a lambda parameter)
// may still be bound to something concrete by the time the body's last
// expression is inferred; this pass bakes the final answer back in once
// the whole body has been processed, which is what C3 relies on when it
// later asks "is this symbol's type already ground?".
func resolveExpr(u *types.Unifier, e xir.Expr) xir.Expr {
	switch e := e.(type) {
	case xir.UnitLit, xir.I32Lit, xir.BoolLit:
		return e
	case xir.Var:
		return xir.Var{Sym: e.Sym.WithType(u.Resolve(e.Sym.Ty))}
	case *xir.Lam:
		for i, p := range e.Params {
			e.Params[i] = p.WithType(u.Resolve(p.Ty))
		}
		e.RetTy = u.Resolve(e.RetTy)
		e.Body = resolveExpr(u, e.Body)
		return e
	case *xir.App:
		e.Callee = resolveExpr(u, e.Callee)
		for i, a := range e.Args {
			e.Args[i] = resolveExpr(u, a)
		}
		e.Ty = u.Resolve(e.Ty)
		return e
	case *xir.If:
		e.Cond = resolveExpr(u, e.Cond)
		e.Then = resolveExpr(u, e.Then)
		e.Else = resolveExpr(u, e.Else)
		e.Ty = u.Resolve(e.Ty)
		return e
	case *xir.LetExpr:
		e.Bound.Sym = e.Bound.Sym.WithType(u.Resolve(e.Bound.Sym.Ty))
		e.Bound.Expr = resolveExpr(u, e.Bound.Expr)
		e.Body = resolveExpr(u, e.Body)
		return e
	case *xir.TyLam:
		e.Expr = resolveExpr(u, e.Expr)
		return e
	case *xir.TyApp:
		e.Expr = resolveExpr(u, e.Expr)
		for i, a := range e.Args {
			e.Args[i] = u.Resolve(a)
		}
		return e
	default:
		return e
	}
}
