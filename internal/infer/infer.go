// Package infer implements C2: level-based Hindley-Milner type inference
// with let-generalization over IR1 (idtree), producing IR2 (xir) with
// explicit TyLam/TyApp markers at every generalization/instantiation
// point. Grounded on the reference inferrer's letrec-by-self-binding trick
// (typing/hm.rs's "HACK to handle recursion") and its Env/UnificationTable
// split (typecheck/env.rs, typecheck/unify.rs), reimplemented here on top
// of internal/types' union-find-backed Unifier.
package infer

import (
	"github.com/babelc/babelc/internal/diag"
	"github.com/babelc/babelc/internal/idtree"
	"github.com/babelc/babelc/internal/symbol"
	"github.com/babelc/babelc/internal/types"
	"github.com/babelc/babelc/internal/xir"
)

// Inferrer threads one Env and one Unifier across every module passed to
// a single Run call, mirroring spec.md §9's "whole module as one group"
// simplification: every top-level symbol is bound (monomorphically, at
// its C1-assigned placeholder type) before any top-level body is
// inferred, so forward references and direct self-recursion both resolve
// without a dedicated dependency-ordering pass.
type Inferrer struct {
	env     *types.Env
	unifier *types.Unifier
}

// New returns an Inferrer with a fresh top-level environment.
func New() *Inferrer {
	return &Inferrer{env: types.NewEnv(), unifier: types.NewUnifier()}
}

// Run infers types for every module, returning the corresponding IR2
// modules with every symbol's type resolved and substituted, and every
// let-generalization point marked with TyLam/TyApp.
func (inf *Inferrer) Run(modules []*idtree.Module) ([]*xir.Module, error) {
	for _, m := range modules {
		inf.prebind(m)
	}

	out := make([]*xir.Module, 0, len(modules))
	for _, m := range modules {
		xm, err := inf.inferModule(m)
		if err != nil {
			return nil, err
		}
		out = append(out, xm)
	}
	return out, nil
}

func (inf *Inferrer) prebind(m *idtree.Module) {
	for _, d := range m.Decls {
		switch d := d.(type) {
		case *idtree.Extern:
			inf.env.Bind(d.Sym.Name, types.ForAll{Body: d.Sym.Ty})
		case *idtree.Let:
			for _, b := range d.Binds {
				inf.env.Bind(b.Sym.Name, types.ForAll{Body: b.Sym.Ty})
			}
		}
	}
}

func (inf *Inferrer) inferModule(m *idtree.Module) (*xir.Module, error) {
	decls := make([]xir.Decl, 0, len(m.Decls))
	for _, d := range m.Decls {
		xd, err := inf.inferDecl(d)
		if err != nil {
			return nil, err
		}
		decls = append(decls, xd)
	}
	return &xir.Module{Name: m.Name, Decls: decls}, nil
}

func (inf *Inferrer) inferDecl(d idtree.Decl) (xir.Decl, error) {
	switch d := d.(type) {
	case *idtree.Extern:
		sym := d.Sym.WithType(inf.unifier.Resolve(d.Sym.Ty))
		return &xir.Extern{Sym: sym}, nil
	case *idtree.Let:
		binds := make([]xir.Bind, 0, len(d.Binds))
		for _, b := range d.Binds {
			xb, err := inf.inferTopLevelBind(b)
			if err != nil {
				return nil, err
			}
			binds = append(binds, xb)
		}
		return &xir.Let{Binds: binds}, nil
	default:
		return nil, diag.Newf(diag.TYP003, diag.PhaseInfer, "unsupported declaration %T", d)
	}
}

// inferTopLevelBind infers a top-level binding's body at level 1 and
// generalizes its type at level 0 — the top-level case of spec.md §4.2's
// "let x = e1 in e2" rule with L = 0. The binding's own level-0
// placeholder is unified with the body's type before generalizing only
// when a forward reference or the body itself has already constrained it
// (such a binding stays monomorphic); an unconstrained placeholder is
// bound to an instance of the generalized scheme afterwards instead, since
// unifying it first would lower every variable of the body's type to 0.
func (inf *Inferrer) inferTopLevelBind(b idtree.Bind) (xir.Bind, error) {
	body, bodyTy, err := inf.infer(b.Expr, 1)
	if err != nil {
		return xir.Bind{}, err
	}
	_, unconstrained := inf.unifier.Resolve(b.Sym.Ty).(types.Var)
	if !unconstrained {
		if err := inf.unifier.Unify(b.Sym.Ty, bodyTy); err != nil {
			return xir.Bind{}, wrapUnifyError(err)
		}
	}
	body = resolveExpr(inf.unifier, body)
	scheme := types.Generalize(inf.unifier, bodyTy, 0)
	if unconstrained {
		if err := inf.unifier.Unify(b.Sym.Ty, types.Instantiate(scheme, 0)); err != nil {
			return xir.Bind{}, wrapUnifyError(err)
		}
	}
	sym := b.Sym.WithType(scheme.Body)
	inf.env.Bind(b.Sym.Name, scheme)

	expr := body
	if !scheme.Monomorphic() {
		expr = &xir.TyLam{Vars: scheme.Vars, Expr: body}
	}
	return xir.Bind{Sym: sym, Expr: expr}, nil
}

// infer is the core HM judgment. level is the current let-nesting depth;
// every fresh type variable minted while inferring e is stamped with it.
func (inf *Inferrer) infer(e idtree.Expr, level int) (xir.Expr, types.Type, error) {
	switch e := e.(type) {
	case idtree.UnitLit:
		return xir.UnitLit{}, types.UnitType, nil
	case idtree.I32Lit:
		return xir.I32Lit{Value: e.Value}, types.I32Type, nil
	case idtree.BoolLit:
		return xir.BoolLit{Value: e.Value}, types.BoolType, nil
	case idtree.Var:
		return inf.inferVar(e, level)
	case *idtree.Lam:
		return inf.inferLam(e, level)
	case *idtree.App:
		return inf.inferApp(e, level)
	case *idtree.If:
		return inf.inferIf(e, level)
	case *idtree.LetExpr:
		return inf.inferLet(e, level)
	default:
		return nil, nil, diag.Newf(diag.TYP003, diag.PhaseInfer, "unsupported expression %T", e)
	}
}

// inferVar instantiates the referenced scheme with fresh variables at the
// current level. If the scheme is polymorphic the reference is wrapped in
// a TyApp recording the chosen instantiation.
func (inf *Inferrer) inferVar(v idtree.Var, level int) (xir.Expr, types.Type, error) {
	scheme, ok := inf.env.Lookup(v.Sym.Name)
	if !ok {
		return nil, nil, diag.Newf(diag.TYP003, diag.PhaseInfer, "unknown symbol %q", v.Sym.Name)
	}
	if scheme.Monomorphic() {
		sym := v.Sym.WithType(scheme.Body)
		return xir.Var{Sym: sym}, scheme.Body, nil
	}

	args := make([]types.Type, len(scheme.Vars))
	sub := types.NewSubst()
	for i, bv := range scheme.Vars {
		fresh := types.Var{V: types.FreshTyVar(level)}
		args[i] = fresh
		sub.Bind(bv, fresh)
	}
	instTy := sub.Apply(scheme.Body)
	sym := v.Sym.WithType(instTy)
	return &xir.TyApp{Expr: xir.Var{Sym: sym}, Args: args}, instTy, nil
}

func (inf *Inferrer) inferLam(l *idtree.Lam, level int) (xir.Expr, types.Type, error) {
	parent := inf.env
	inf.env = parent.Child()
	defer func() { inf.env = parent }()

	params := make([]symbol.Symbol, len(l.Params))
	paramTys := make([]types.Type, len(l.Params))
	for i, p := range l.Params {
		ty := types.Var{V: types.FreshTyVar(level)}
		inf.env.Bind(p.Name, types.ForAll{Body: ty})
		params[i] = p.WithType(ty)
		paramTys[i] = ty
	}
	body, bodyTy, err := inf.infer(l.Body, level)
	if err != nil {
		return nil, nil, err
	}
	fnTy := types.FuncType(paramTys, bodyTy)
	return &xir.Lam{Params: params, Body: body, RetTy: bodyTy}, fnTy, nil
}

func (inf *Inferrer) inferApp(a *idtree.App, level int) (xir.Expr, types.Type, error) {
	callee, calleeTy, err := inf.infer(a.Callee, level)
	if err != nil {
		return nil, nil, err
	}
	args := make([]xir.Expr, len(a.Args))
	argTys := make([]types.Type, len(a.Args))
	for i, arg := range a.Args {
		ae, aty, err := inf.infer(arg, level)
		if err != nil {
			return nil, nil, err
		}
		args[i] = ae
		argTys[i] = aty
	}
	retTy := types.Var{V: types.FreshTyVar(level)}
	want := types.FuncType(argTys, retTy)
	if err := inf.unifier.Unify(calleeTy, want); err != nil {
		return nil, nil, wrapUnifyError(err)
	}
	resolvedRet := inf.unifier.Resolve(retTy)
	return &xir.App{Callee: callee, Args: args, Ty: resolvedRet}, resolvedRet, nil
}

func (inf *Inferrer) inferIf(e *idtree.If, level int) (xir.Expr, types.Type, error) {
	cond, condTy, err := inf.infer(e.Cond, level)
	if err != nil {
		return nil, nil, err
	}
	if err := inf.unifier.Unify(condTy, types.BoolType); err != nil {
		return nil, nil, wrapUnifyError(err)
	}
	then, thenTy, err := inf.infer(e.Then, level)
	if err != nil {
		return nil, nil, err
	}
	els, elseTy, err := inf.infer(e.Else, level)
	if err != nil {
		return nil, nil, err
	}
	if err := inf.unifier.Unify(thenTy, elseTy); err != nil {
		return nil, nil, wrapUnifyError(err)
	}
	resultTy := inf.unifier.Resolve(thenTy)
	return &xir.If{Cond: cond, Then: then, Else: els, Ty: resultTy}, resultTy, nil
}

func (inf *Inferrer) inferLet(e *idtree.LetExpr, level int) (xir.Expr, types.Type, error) {
	boundExpr, boundTy, err := inf.infer(e.Bound.Expr, level+1)
	if err != nil {
		return nil, nil, err
	}
	// The let is non-recursive, so the bound name's C1 placeholder is not
	// unified with boundTy: its scope-depth level would cap the levels of
	// boundTy's variables and block their generalization.
	boundExpr = resolveExpr(inf.unifier, boundExpr)
	scheme := types.Generalize(inf.unifier, boundTy, level)
	sym := e.Bound.Sym.WithType(scheme.Body)

	bound := boundExpr
	if !scheme.Monomorphic() {
		bound = &xir.TyLam{Vars: scheme.Vars, Expr: boundExpr}
	}

	parent := inf.env
	inf.env = parent.Child()
	inf.env.Bind(e.Bound.Sym.Name, scheme)
	body, bodyTy, err := inf.infer(e.Body, level)
	inf.env = parent
	if err != nil {
		return nil, nil, err
	}
	return &xir.LetExpr{Bound: xir.Bind{Sym: sym, Expr: bound}, Body: body}, bodyTy, nil
}

func wrapUnifyError(err error) error {
	switch e := err.(type) {
	case *types.UnifyError:
		return diag.WithData(diag.WithData(
			diag.Newf(diag.TYP001, diag.PhaseInfer, "cannot unify %s with %s", e.T1, e.T2),
			"t1", e.T1.String()), "t2", e.T2.String())
	case *types.OccursError:
		return diag.WithData(diag.Newf(diag.TYP002, diag.PhaseInfer,
			"occurs check failed: %s occurs in %s", (types.Var{V: e.Var}).String(), e.In),
			"in", e.In.String())
	default:
		return err
	}
}
