// Package support provides the shared data structures C1–C5 are built on:
// a scoped map, a union-find disjoint set, and a directed graph with Tarjan
// SCC detection.
package support

// ScopedMap is a stack of maps used for lexical scoping: BeginScope pushes
// a fresh scope, EndScope pops it, Insert writes into the top scope, and Get
// searches outward from the innermost scope.
type ScopedMap[K comparable, V any] struct {
	scopes []map[K]V
}

// NewScopedMap returns a ScopedMap with a single, empty top-level scope.
func NewScopedMap[K comparable, V any]() *ScopedMap[K, V] {
	return &ScopedMap[K, V]{scopes: []map[K]V{make(map[K]V)}}
}

// BeginScope pushes a new, empty scope.
func (m *ScopedMap[K, V]) BeginScope() {
	m.scopes = append(m.scopes, make(map[K]V))
}

// EndScope pops the innermost scope. Calling EndScope on the top-level scope
// panics; callers must balance BeginScope/EndScope.
func (m *ScopedMap[K, V]) EndScope() {
	if len(m.scopes) <= 1 {
		panic("support: EndScope called with no open scope")
	}
	m.scopes = m.scopes[:len(m.scopes)-1]
}

// Scope returns the current scope depth; the top level is depth 0.
func (m *ScopedMap[K, V]) Scope() int {
	return len(m.scopes) - 1
}

// Insert binds k to v in the innermost scope, returning the previous
// binding in that same scope, if any (shadowing bindings in enclosing
// scopes is always allowed and does not count as "previous").
func (m *ScopedMap[K, V]) Insert(k K, v V) (V, bool) {
	top := m.scopes[len(m.scopes)-1]
	prev, ok := top[k]
	top[k] = v
	return prev, ok
}

// Get searches from the innermost scope outward and returns the first
// binding found.
func (m *ScopedMap[K, V]) Get(k K) (V, bool) {
	for i := len(m.scopes) - 1; i >= 0; i-- {
		if v, ok := m.scopes[i][k]; ok {
			return v, true
		}
	}
	var zero V
	return zero, false
}
