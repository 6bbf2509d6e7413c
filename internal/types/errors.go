package types

import "fmt"

// UnifyError reports a unification contradiction (spec error kind
// CannotUnify).
type UnifyError struct {
	T1, T2 Type
}

func (e *UnifyError) Error() string {
	return fmt.Sprintf("cannot unify %s with %s", e.T1, e.T2)
}

// OccursError reports an infinite type (spec error kind OccursCheck).
type OccursError struct {
	Var TyVar
	In  Type
}

func (e *OccursError) Error() string {
	return fmt.Sprintf("occurs check failed: t%d occurs in %s", e.Var.ID, e.In)
}
