package types

import "sync/atomic"

var tyvarCounter uint32

// TyVar is an unbound type variable. It carries an id (identity for
// equality/ordering purposes) and a mutable level: the let-nesting depth at
// which it was introduced. The level may only be lowered, never raised,
// during unification, tracking the shallowest scope the variable escapes
// into. The level field lives behind a pointer so that copies of a TyVar
// share the same mutable cell, matching the "shared reference to a cell"
// representation spec.md §9 calls for.
type TyVar struct {
	ID    uint32
	level *int
}

// FreshTyVar mints a new type variable at the given level.
func FreshTyVar(level int) TyVar {
	l := level
	return TyVar{ID: atomic.AddUint32(&tyvarCounter, 1), level: &l}
}

// Level returns the variable's current generalization level.
func (v TyVar) Level() int {
	return *v.level
}

// LowerLevel sets v's level to the minimum of its current level and l. It
// never raises the level.
func (v TyVar) LowerLevel(l int) {
	if l < *v.level {
		*v.level = l
	}
}

// Equal reports whether two type variables are the same variable. Type
// variables hash and compare by id only.
func (v TyVar) Equal(o TyVar) bool {
	return v.ID == o.ID
}
