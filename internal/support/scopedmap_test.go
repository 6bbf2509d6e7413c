package support

import "testing"

func TestScopedMapShadowing(t *testing.T) {
	m := NewScopedMap[string, string]()
	m.Insert("x", "a")
	if v, ok := m.Get("x"); !ok || v != "a" {
		t.Fatalf("Get(x) = %v, %v; want a, true", v, ok)
	}
	if _, ok := m.Get("y"); ok {
		t.Fatalf("Get(y) should be absent")
	}

	m.BeginScope()
	m.Insert("x", "b")
	m.Insert("y", "c")
	if v, _ := m.Get("x"); v != "b" {
		t.Fatalf("Get(x) in inner scope = %v; want b", v)
	}
	if v, _ := m.Get("y"); v != "c" {
		t.Fatalf("Get(y) in inner scope = %v; want c", v)
	}
	m.EndScope()

	if v, _ := m.Get("x"); v != "a" {
		t.Fatalf("Get(x) after EndScope = %v; want a", v)
	}
	if _, ok := m.Get("y"); ok {
		t.Fatalf("Get(y) should not leak out of its scope")
	}
}

func TestScopedMapScopeDepth(t *testing.T) {
	m := NewScopedMap[int, int]()
	if m.Scope() != 0 {
		t.Fatalf("initial scope = %d; want 0", m.Scope())
	}
	m.BeginScope()
	m.BeginScope()
	if m.Scope() != 2 {
		t.Fatalf("scope after two BeginScope = %d; want 2", m.Scope())
	}
	m.EndScope()
	if m.Scope() != 1 {
		t.Fatalf("scope after one EndScope = %d; want 1", m.Scope())
	}
}
