package types

// Subst maps TyVar ids to Types and is applied homomorphically. The
// specializer (C3) uses Subst directly since its substitutions are small
// and short-lived; the unifier (C2) instead keeps its working substitution
// in a union-find table (see unify.go), per spec.md §9's stated trade-off.
type Subst struct {
	m map[uint32]Type
}

// NewSubst returns an empty substitution.
func NewSubst() *Subst {
	return &Subst{m: make(map[uint32]Type)}
}

// Bind records tv ↦ ty in the substitution.
func (s *Subst) Bind(tv TyVar, ty Type) {
	s.m[tv.ID] = ty
}

// Apply substitutes every bound variable in ty, applying bindings
// transitively so that chains of bound variables resolve to their final
// type.
func (s *Subst) Apply(ty Type) Type {
	switch t := ty.(type) {
	case Var:
		if bound, ok := s.m[t.V.ID]; ok {
			return s.Apply(bound)
		}
		return t
	case App:
		args := make([]Type, len(t.Args))
		for i, a := range t.Args {
			args[i] = s.Apply(a)
		}
		return App{Con: s.Apply(t.Con), Args: args}
	default:
		return t
	}
}

// ApplyForAll substitutes through a scheme's body, leaving the scheme's own
// bound variables untouched (shadowing is the caller's responsibility: a
// well-formed Subst built during specialization never binds a variable that
// is also quantified by an enclosing ForAll it is applied to).
func (s *Subst) ApplyForAll(sc ForAll) ForAll {
	return ForAll{Vars: sc.Vars, Body: s.Apply(sc.Body)}
}
