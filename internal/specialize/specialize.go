// Package specialize implements C3: it replaces every polymorphic
// top-level binding with one monomorphic copy per distinct instantiation
// discovered at its call sites, and rewrites every TyApp into a reference
// to the right copy. Grounded almost verbatim on specialize.rs's two-pass
// collect/rewrite algorithm and its Instances table.
package specialize

import (
	"sort"

	"github.com/babelc/babelc/internal/diag"
	"github.com/babelc/babelc/internal/support"
	"github.com/babelc/babelc/internal/symbol"
	"github.com/babelc/babelc/internal/types"
	"github.com/babelc/babelc/internal/xir"
)

// Run specializes every module independently.
func Run(modules []*xir.Module) ([]*xir.Module, error) {
	out := make([]*xir.Module, 0, len(modules))
	for _, m := range modules {
		om, err := monoModule(m)
		if err != nil {
			return nil, err
		}
		out = append(out, om)
	}
	return out, nil
}

type indexedDecl struct {
	i int
	d xir.Decl
}

type indexedBind struct {
	i int
	b xir.Bind
}

// monoModule partitions a module's top-level bindings into monomorphic
// and polymorphic, specializes monomorphic bindings first (so that their
// rewriting discovers every instantiation a polymorphic callee needs),
// then emits one declaration per discovered instantiation for each
// polymorphic binding, finally restoring original declaration order for
// everything that isn't a freshly minted specialization.
func monoModule(m *xir.Module) (*xir.Module, error) {
	spec := newSpecializer()

	var decls []indexedDecl
	var monoExps, polyExps []indexedBind

	for i, d := range m.Decls {
		switch d := d.(type) {
		case *xir.Extern:
			decls = append(decls, indexedDecl{i, d})
		case *xir.Let:
			for _, b := range d.Binds {
				if spec.addIfPoly(b) {
					polyExps = append(polyExps, indexedBind{i, b})
				} else {
					monoExps = append(monoExps, indexedBind{i, b})
				}
			}
		default:
			return nil, diag.Newf(diag.SPZ001, diag.PhaseSpecialize, "unsupported declaration %T", d)
		}
	}

	for k := len(monoExps) - 1; k >= 0; k-- {
		ib := monoExps[k]
		sub := types.NewSubst()
		nb, err := spec.process(ib.b, sub, nil)
		if err != nil {
			return nil, err
		}
		decls = append(decls, indexedDecl{ib.i, &xir.Let{Binds: []xir.Bind{nb}}})
	}

	for k := len(polyExps) - 1; k >= 0; k-- {
		ib := polyExps[k]
		sub := types.NewSubst()
		binds, err := spec.processAll(ib.b, sub)
		if err != nil {
			return nil, err
		}
		for _, nb := range binds {
			decls = append(decls, indexedDecl{ib.i, &xir.Let{Binds: []xir.Bind{nb}}})
		}
	}

	sort.SliceStable(decls, func(a, b int) bool { return decls[a].i < decls[b].i })

	finalDecls := make([]xir.Decl, len(decls))
	for i, id := range decls {
		finalDecls[i] = id.d
	}
	return &xir.Module{Name: m.Name, Decls: finalDecls}, nil
}

// Specializer holds the per-run table of polymorphic bindings and their
// discovered instances, plus a scope stack mirroring the one in
// specialize.rs (so nested polymorphic lets shadow correctly) and a guard
// against polymorphic recursion.
type Specializer struct {
	entries   *support.ScopedMap[uint32, *Instances]
	activeKey map[uint32]string
}

func newSpecializer() *Specializer {
	return &Specializer{
		entries:   support.NewScopedMap[uint32, *Instances](),
		activeKey: make(map[uint32]string),
	}
}

// addIfPoly registers b as polymorphic (first TyLam with bound variables)
// if it isn't already tracked, and reports whether it is polymorphic.
func (s *Specializer) addIfPoly(b xir.Bind) bool {
	tylam, ok := b.Expr.(*xir.TyLam)
	if !ok || len(tylam.Vars) == 0 {
		return false
	}
	if _, exists := s.entries.Get(b.Sym.ID); !exists {
		s.entries.Insert(b.Sym.ID, newInstances(tylam.Vars))
	}
	return true
}

func (s *Specializer) isPoly(id uint32) bool {
	_, ok := s.entries.Get(id)
	return ok
}

// addInstance resolves the instantiation of a polymorphic reference and
// returns the monomorphic symbol standing for it, rejecting the call if
// it would instantiate a binding currently being specialized at a second,
// different type (polymorphic recursion, unsupported per spec.md §4.3).
func (s *Specializer) addInstance(ref symbol.Symbol, sub *types.Subst, args []types.Type) (symbol.Symbol, error) {
	instances, ok := s.entries.Get(ref.ID)
	if !ok {
		return symbol.Symbol{}, diag.Newf(diag.SPZ001, diag.PhaseSpecialize,
			"no recorded instances for polymorphic symbol %q", ref.Name)
	}
	resolved := instances.resolve(sub, args)
	key := mangleArgsKey(resolved)
	if active, tracking := s.activeKey[ref.ID]; tracking && active != key {
		return symbol.Symbol{}, diag.Newf(diag.SPZ002, diag.PhaseSpecialize,
			"polymorphic recursion unsupported: %q instantiated at a second type within its own body", ref.Name)
	}
	return instances.getOrAdd(key, resolved, ref, sub), nil
}

func (s *Specializer) processAll(bind xir.Bind, sub *types.Subst) ([]xir.Bind, error) {
	instances, ok := s.entries.Get(bind.Sym.ID)
	if !ok {
		return nil, nil
	}
	result := make([]xir.Bind, 0, len(instances.order))
	for _, key := range instances.order {
		entry := instances.byKey[key]
		tys := make([]types.Type, len(entry.args))
		for i, t := range entry.args {
			tys[i] = sub.Apply(t)
		}
		s.activeKey[bind.Sym.ID] = key
		specExpr, err := s.spec(bind.Expr, sub, tys)
		delete(s.activeKey, bind.Sym.ID)
		if err != nil {
			return nil, err
		}
		result = append(result, xir.Bind{Sym: entry.sym, Expr: specExpr})
	}
	return result, nil
}

func (s *Specializer) process(bind xir.Bind, sub *types.Subst, args []types.Type) (xir.Bind, error) {
	specExpr, err := s.spec(bind.Expr, sub, args)
	if err != nil {
		return xir.Bind{}, err
	}
	sym := bind.Sym.WithType(sub.Apply(bind.Sym.Ty))
	return xir.Bind{Sym: sym, Expr: specExpr}, nil
}

func (s *Specializer) spec(expr xir.Expr, sub *types.Subst, args []types.Type) (xir.Expr, error) {
	s.entries.BeginScope()
	defer s.entries.EndScope()
	return s.run(expr, sub, args)
}

func (s *Specializer) run(expr xir.Expr, sub *types.Subst, args []types.Type) (xir.Expr, error) {
	switch e := expr.(type) {
	case xir.UnitLit, xir.I32Lit, xir.BoolLit:
		return e, nil
	case xir.Var:
		if !s.isPoly(e.Sym.ID) {
			return xir.Var{Sym: e.Sym.WithType(sub.Apply(e.Sym.Ty))}, nil
		}
		sym, err := s.addInstance(e.Sym, sub, args)
		if err != nil {
			return nil, err
		}
		return xir.Var{Sym: sym}, nil
	case *xir.Lam:
		body, err := s.run(e.Body, sub, nil)
		if err != nil {
			return nil, err
		}
		params := make([]symbol.Symbol, len(e.Params))
		for i, p := range e.Params {
			params[i] = p.WithType(sub.Apply(p.Ty))
		}
		return &xir.Lam{Params: params, Body: body, RetTy: sub.Apply(e.RetTy)}, nil
	case *xir.If:
		cond, err := s.run(e.Cond, sub, nil)
		if err != nil {
			return nil, err
		}
		then, err := s.run(e.Then, sub, nil)
		if err != nil {
			return nil, err
		}
		els, err := s.run(e.Else, sub, nil)
		if err != nil {
			return nil, err
		}
		return &xir.If{Cond: cond, Then: then, Else: els, Ty: sub.Apply(e.Ty)}, nil
	case *xir.App:
		callee, err := s.run(e.Callee, sub, nil)
		if err != nil {
			return nil, err
		}
		args2 := make([]xir.Expr, len(e.Args))
		for i, a := range e.Args {
			ae, err := s.run(a, sub, nil)
			if err != nil {
				return nil, err
			}
			args2[i] = ae
		}
		return &xir.App{Callee: callee, Args: args2, Ty: sub.Apply(e.Ty)}, nil
	case *xir.TyLam:
		for i := 0; i < len(e.Vars) && i < len(args); i++ {
			sub.Bind(e.Vars[i], args[i])
		}
		return s.run(e.Expr, sub, nil)
	case *xir.TyApp:
		resolved := make([]types.Type, len(e.Args))
		for i, a := range e.Args {
			resolved[i] = sub.Apply(a)
		}
		return s.run(e.Expr, sub, resolved)
	case *xir.LetExpr:
		b := e.Bound
		if s.addIfPoly(b) {
			letBody, err := s.run(e.Body, sub, nil)
			if err != nil {
				return nil, err
			}
			binds, err := s.processAll(b, sub)
			if err != nil {
				return nil, err
			}
			result := letBody
			for _, nb := range binds {
				result = &xir.LetExpr{Bound: nb, Body: result}
			}
			return result, nil
		}
		letBody, err := s.run(e.Body, sub, nil)
		if err != nil {
			return nil, err
		}
		nb, err := s.process(b, sub, nil)
		if err != nil {
			return nil, err
		}
		return &xir.LetExpr{Bound: nb, Body: letBody}, nil
	default:
		return nil, diag.Newf(diag.SPZ001, diag.PhaseSpecialize, "unsupported expression %T", e)
	}
}
