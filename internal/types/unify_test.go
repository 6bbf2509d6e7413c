package types

import "testing"

func TestUnifyConEqual(t *testing.T) {
	u := NewUnifier()
	if err := u.Unify(I32Type, I32Type); err != nil {
		t.Fatalf("unify I32 I32: %v", err)
	}
}

func TestUnifyConMismatch(t *testing.T) {
	u := NewUnifier()
	err := u.Unify(I32Type, BoolType)
	if err == nil {
		t.Fatalf("expected CannotUnify error")
	}
	if _, ok := err.(*UnifyError); !ok {
		t.Fatalf("expected *UnifyError, got %T", err)
	}
}

func TestUnifyVarBindsAndResolves(t *testing.T) {
	u := NewUnifier()
	v := FreshTyVar(0)
	if err := u.Unify(Var{V: v}, I32Type); err != nil {
		t.Fatalf("unify var with I32: %v", err)
	}
	resolved := u.Resolve(Var{V: v})
	if !Equals(resolved, I32Type) {
		t.Fatalf("resolved = %v; want I32", resolved)
	}
}

func TestUnifyFuncType(t *testing.T) {
	u := NewUnifier()
	a := FreshTyVar(0)
	fn1 := FuncType([]Type{Var{V: a}}, I32Type)
	fn2 := FuncType([]Type{BoolType}, I32Type)
	if err := u.Unify(fn1, fn2); err != nil {
		t.Fatalf("unify function types: %v", err)
	}
	if !Equals(u.Resolve(Var{V: a}), BoolType) {
		t.Fatalf("param var should resolve to Bool, got %v", u.Resolve(Var{V: a}))
	}
}

func TestUnifyFuncArityMismatch(t *testing.T) {
	u := NewUnifier()
	fn1 := FuncType([]Type{I32Type}, I32Type)
	fn2 := FuncType([]Type{I32Type, I32Type}, I32Type)
	if err := u.Unify(fn1, fn2); err == nil {
		t.Fatalf("expected arity mismatch error")
	}
}

func TestOccursCheckRejectsInfiniteType(t *testing.T) {
	u := NewUnifier()
	v := FreshTyVar(0)
	// v occurs strictly inside (v) -> i32, which should fail.
	self := FuncType([]Type{Var{V: v}}, I32Type)
	err := u.Unify(Var{V: v}, self)
	if err == nil {
		t.Fatalf("expected occurs check failure")
	}
	if _, ok := err.(*OccursError); !ok {
		t.Fatalf("expected *OccursError, got %T", err)
	}
}

func TestOccursCheckAllowsTrivialSelfReference(t *testing.T) {
	u := NewUnifier()
	v := FreshTyVar(0)
	if err := u.Unify(Var{V: v}, Var{V: v}); err != nil {
		t.Fatalf("unifying a var with itself should be trivial: %v", err)
	}
}

func TestUnifyLowersLevel(t *testing.T) {
	u := NewUnifier()
	outer := FreshTyVar(0)
	inner := FreshTyVar(3)
	if err := u.Unify(Var{V: outer}, Var{V: inner}); err != nil {
		t.Fatalf("unify: %v", err)
	}
	if inner.Level() != 0 {
		t.Fatalf("inner.Level() = %d; want 0 after unifying with a shallower var", inner.Level())
	}
}
