// Package rename implements C1: it walks a parsed module, replacing every
// identifier with a symbol.Symbol and recording a call-reference graph
// between top-level bindings. Grounded on the reference renamer
// (rename.rs): a ScopedMap of names, a fresh type-variable placeholder for
// every binding, and a duplicate check scoped to the top level only.
package rename

import (
	"github.com/babelc/babelc/internal/ast"
	"github.com/babelc/babelc/internal/diag"
	"github.com/babelc/babelc/internal/idtree"
	"github.com/babelc/babelc/internal/support"
	"github.com/babelc/babelc/internal/symbol"
	"github.com/babelc/babelc/internal/types"
)

// Renamer holds the scoped name table and the call-reference graph
// accumulated across every module in a single compilation run. Top-level
// symbols across all input modules share one flat namespace (spec.md's
// "modules beyond a flat namespace" non-goal).
type Renamer struct {
	names      *support.ScopedMap[string, symbol.Symbol]
	callRefs   *support.Graph[symbol.Symbol]
	vertexOf   map[uint32]uint32 // symbol id -> call-ref graph vertex
	currentFn  []uint32          // stack of enclosing top-level symbol ids, for call-ref edges
}

// New returns a Renamer ready to process one or more modules.
func New() *Renamer {
	return &Renamer{
		names:    support.NewScopedMap[string, symbol.Symbol](),
		callRefs: support.NewGraph[symbol.Symbol](),
		vertexOf: make(map[uint32]uint32),
	}
}

// Run renames every module in order and returns the call-reference graph
// alongside the renamed modules; the graph's SCC decomposition (via
// support.SCC) is the caller's responsibility, since it is only needed by
// passes that care about mutual recursion (none in this pipeline today,
// but spec.md §4 names it as part of C1's contract).
func (r *Renamer) Run(modules []*ast.Module) ([]*idtree.Module, *support.Graph[symbol.Symbol], error) {
	out := make([]*idtree.Module, 0, len(modules))
	for _, m := range modules {
		im, err := r.convModule(m)
		if err != nil {
			return nil, nil, err
		}
		out = append(out, im)
	}
	return out, r.callRefs, nil
}

func (r *Renamer) convModule(m *ast.Module) (*idtree.Module, error) {
	decls := make([]idtree.Decl, 0, len(m.Decls))
	for _, d := range m.Decls {
		id, err := r.convDecl(d)
		if err != nil {
			return nil, err
		}
		decls = append(decls, id)
	}
	return &idtree.Module{Name: m.Name, Decls: decls}, nil
}

func (r *Renamer) newTyVar() types.Type {
	return idtree.TyOf(r.names.Scope())
}

func (r *Renamer) convTy(t ast.Type) (types.Type, error) {
	switch t := t.(type) {
	case ast.TyVar:
		return r.newTyVar(), nil
	case ast.TyCon:
		k, err := r.convKind(t.Kind)
		if err != nil {
			return nil, err
		}
		return types.Con{TyCon: t.Name, K: k}, nil
	case ast.TyApp:
		con, err := r.convTy(t.Con)
		if err != nil {
			return nil, err
		}
		args := make([]types.Type, len(t.Args))
		for i, a := range t.Args {
			at, err := r.convTy(a)
			if err != nil {
				return nil, err
			}
			args[i] = at
		}
		return types.App{Con: con, Args: args}, nil
	default:
		return nil, diag.Newf(diag.REN001, diag.PhaseRename, "unsupported surface type %T", t)
	}
}

func (r *Renamer) convKind(k ast.Kind) (types.Kind, error) {
	switch k := k.(type) {
	case nil:
		return types.KStar{}, nil
	case ast.KindStar:
		return types.KStar{}, nil
	case ast.KindFun:
		arg, err := r.convKind(k.Arg)
		if err != nil {
			return nil, err
		}
		res, err := r.convKind(k.Result)
		if err != nil {
			return nil, err
		}
		return types.KFun{Arg: arg, Result: res}, nil
	default:
		return nil, diag.Newf(diag.REN001, diag.PhaseRename, "unsupported surface kind %T", k)
	}
}

// addSym binds name to a fresh symbol of type ty in the innermost scope.
// Rebinding a name is only an error at the top level (scope 0); nested
// shadowing is always allowed.
func (r *Renamer) addSym(name string, ty types.Type, pos ast.Pos) (symbol.Symbol, error) {
	sym := symbol.New(name, ty)
	_, existed := r.names.Insert(name, sym)
	if existed && r.names.Scope() == 0 {
		return symbol.Symbol{}, diag.WithPos(
			diag.Newf(diag.REN002, diag.PhaseRename, "name %q already declared at top level", name), pos)
	}
	return sym, nil
}

func (r *Renamer) addTopLevel(sym symbol.Symbol) {
	v := r.callRefs.AddVertex(sym)
	r.vertexOf[sym.ID] = v
}

func (r *Renamer) convDecl(d ast.Decl) (idtree.Decl, error) {
	switch d := d.(type) {
	case *ast.Extern:
		ty, err := r.convTy(d.Type)
		if err != nil {
			return nil, err
		}
		sym, err := r.addSym(d.Name, ty, d.Pos)
		if err != nil {
			return nil, err
		}
		r.addTopLevel(sym)
		return &idtree.Extern{Sym: sym}, nil
	case *ast.Func:
		ty := r.newTyVar()
		sym, err := r.addSym(d.Bind.Name, ty, d.Pos)
		if err != nil {
			return nil, err
		}
		r.addTopLevel(sym)
		r.currentFn = append(r.currentFn, sym.ID)
		r.names.BeginScope()
		expr, err := r.convExpr(d.Bind.Expr)
		r.names.EndScope()
		r.currentFn = r.currentFn[:len(r.currentFn)-1]
		if err != nil {
			return nil, err
		}
		return &idtree.Let{Binds: []idtree.Bind{{Sym: sym, Expr: expr}}}, nil
	default:
		return nil, diag.Newf(diag.REN001, diag.PhaseRename, "unsupported declaration %T", d)
	}
}

func (r *Renamer) convExpr(e ast.Expr) (idtree.Expr, error) {
	switch e := e.(type) {
	case *ast.UnitLit:
		return idtree.UnitLit{}, nil
	case *ast.I32Lit:
		return idtree.I32Lit{Value: e.Value}, nil
	case *ast.BoolLit:
		return idtree.BoolLit{Value: e.Value}, nil
	case *ast.Lam:
		r.names.BeginScope()
		params := make([]symbol.Symbol, len(e.Params))
		for i, p := range e.Params {
			sym, err := r.addSym(p, r.newTyVar(), e.Pos)
			if err != nil {
				r.names.EndScope()
				return nil, err
			}
			params[i] = sym
		}
		body, err := r.convExpr(e.Body)
		r.names.EndScope()
		if err != nil {
			return nil, err
		}
		return &idtree.Lam{Params: params, Body: body}, nil
	case *ast.If:
		cond, err := r.convExpr(e.Cond)
		if err != nil {
			return nil, err
		}
		then, err := r.convExpr(e.Then)
		if err != nil {
			return nil, err
		}
		els, err := r.convExpr(e.Else)
		if err != nil {
			return nil, err
		}
		return &idtree.If{Cond: cond, Then: then, Else: els}, nil
	case *ast.App:
		callee, err := r.convExpr(e.Callee)
		if err != nil {
			return nil, err
		}
		args := make([]idtree.Expr, len(e.Args))
		for i, a := range e.Args {
			ae, err := r.convExpr(a)
			if err != nil {
				return nil, err
			}
			args[i] = ae
		}
		return &idtree.App{Callee: callee, Args: args}, nil
	case *ast.Var:
		sym, ok := r.names.Get(e.Name)
		if !ok {
			return nil, diag.WithPos(
				diag.Newf(diag.REN001, diag.PhaseRename, "could not find variable %q", e.Name), e.Pos)
		}
		r.recordCallRef(sym)
		return idtree.Var{Sym: sym}, nil
	case *ast.Let:
		ty := r.newTyVar()
		boundExpr, err := r.convExpr(e.Bound.Expr)
		if err != nil {
			return nil, err
		}
		r.names.BeginScope()
		sym, err := r.addSym(e.Bound.Name, ty, e.Pos)
		if err != nil {
			r.names.EndScope()
			return nil, err
		}
		body, err := r.convExpr(e.Body)
		r.names.EndScope()
		if err != nil {
			return nil, err
		}
		return &idtree.LetExpr{Bound: idtree.Bind{Sym: sym, Expr: boundExpr}, Body: body}, nil
	default:
		return nil, diag.Newf(diag.REN001, diag.PhaseRename, "unsupported expression %T", e)
	}
}

// recordCallRef adds an edge from the referenced top-level symbol to the
// top-level symbol currently being elaborated, mirroring the reference
// renamer's "referenced -> referrer" convention so that support.SCC's
// reverse-topological output lists callers before their callees.
func (r *Renamer) recordCallRef(referenced symbol.Symbol) {
	if len(r.currentFn) == 0 {
		return
	}
	referrerID := r.currentFn[len(r.currentFn)-1]
	referrerV, ok1 := r.vertexOf[referrerID]
	referencedV, ok2 := r.vertexOf[referenced.ID]
	if ok1 && ok2 {
		r.callRefs.AddEdge(referencedV, referrerV)
	}
}
