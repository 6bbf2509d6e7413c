package types

import "github.com/babelc/babelc/internal/support"

// cell is the value stored at a union-find representative: either an
// unbound variable (the class is still "open", Bound == nil) or a concrete
// type it has been bound to.
type cell struct {
	Unbound TyVar
	Bound   Type // nil while unbound
}

// Unifier implements level-based Hindley–Milner unification backed by a
// disjoint-set union-find keyed by tyvar id, per spec.md §4.2. Each
// unbound-variable class's current binding is held as the union-find
// node's value; Resolve chases bindings (and union-find representatives)
// to the current best-known type.
type Unifier struct {
	uf    *support.UnionFind[cell]
	keyOf map[uint32]uint32
}

// NewUnifier returns an empty Unifier.
func NewUnifier() *Unifier {
	return &Unifier{
		uf:    support.NewUnionFind[cell](),
		keyOf: make(map[uint32]uint32),
	}
}

func (u *Unifier) keyFor(v TyVar) uint32 {
	if k, ok := u.keyOf[v.ID]; ok {
		return k
	}
	k := u.uf.Add(cell{Unbound: v})
	u.keyOf[v.ID] = k
	return k
}

// Resolve dereferences ty: every bound type variable is replaced by its
// current binding, recursively, until a ground form or a still-unbound
// variable is reached.
func (u *Unifier) Resolve(ty Type) Type {
	switch t := ty.(type) {
	case Var:
		k, ok := u.keyOf[t.V.ID]
		if !ok {
			return t
		}
		c := *u.uf.Value(k)
		if c.Bound == nil {
			return Var{V: c.Unbound}
		}
		return u.Resolve(c.Bound)
	case App:
		args := make([]Type, len(t.Args))
		for i, a := range t.Args {
			args[i] = u.Resolve(a)
		}
		return App{Con: u.Resolve(t.Con), Args: args}
	default:
		return t
	}
}

// Unify attempts to unify t1 and t2, mutating the unifier's internal table
// on success. It returns *UnifyError or *OccursError on failure.
func (u *Unifier) Unify(t1, t2 Type) error {
	t1 = u.Resolve(t1)
	t2 = u.Resolve(t2)

	v1, v1IsVar := t1.(Var)
	v2, v2IsVar := t2.(Var)

	switch {
	case v1IsVar && v2IsVar:
		if v1.V.Equal(v2.V) {
			return nil
		}
		return u.unifyVars(v1.V, v2.V)
	case v1IsVar:
		return u.bindVar(v1.V, t2)
	case v2IsVar:
		return u.bindVar(v2.V, t1)
	}

	c1, c1Ok := t1.(Con)
	c2, c2Ok := t2.(Con)
	if c1Ok && c2Ok {
		if c1.TyCon == c2.TyCon && c1.K.Equals(c2.K) {
			return nil
		}
		return &UnifyError{T1: t1, T2: t2}
	}

	a1, a1Ok := t1.(App)
	a2, a2Ok := t2.(App)
	if a1Ok && a2Ok {
		if len(a1.Args) != len(a2.Args) {
			return &UnifyError{T1: t1, T2: t2}
		}
		if err := u.Unify(a1.Con, a2.Con); err != nil {
			return err
		}
		for i := range a1.Args {
			if err := u.Unify(a1.Args[i], a2.Args[i]); err != nil {
				return err
			}
		}
		return nil
	}

	return &UnifyError{T1: t1, T2: t2}
}

// unifyVars merges the equivalence classes of two distinct unbound
// variables by rank, via the union-find table.
func (u *Unifier) unifyVars(v1, v2 TyVar) error {
	k1, k2 := u.keyFor(v1), u.keyFor(v2)
	u.uf.Union(k1, k2)
	if v1.Level() < v2.Level() {
		v2.LowerLevel(v1.Level())
	} else {
		v1.LowerLevel(v2.Level())
	}
	return nil
}

// bindVar occurs-checks v against t, lowering the level of every unbound
// variable occurring in t to min(own, v.Level()) along the way, then
// records v ↦ t as v's class's binding.
func (u *Unifier) bindVar(v TyVar, t Type) error {
	if u.occursAndLowerLevels(v, t) {
		return &OccursError{Var: v, In: t}
	}
	k := u.keyFor(v)
	val := u.uf.Value(k)
	val.Bound = t
	return nil
}

// occursAndLowerLevels reports whether v occurs (strictly) inside t,
// lowering the level of every unbound variable it finds in t to
// min(own, v.Level()) regardless of the outcome.
func (u *Unifier) occursAndLowerLevels(v TyVar, t Type) bool {
	switch a := u.Resolve(t).(type) {
	case Var:
		if a.V.Equal(v) {
			return true
		}
		a.V.LowerLevel(v.Level())
		return false
	case App:
		occurs := u.occursAndLowerLevels(v, a.Con)
		for _, arg := range a.Args {
			if u.occursAndLowerLevels(v, arg) {
				occurs = true
			}
		}
		return occurs
	default:
		return false
	}
}
