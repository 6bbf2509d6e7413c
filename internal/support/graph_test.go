package support

import "testing"

func TestSCCDetectsCycle(t *testing.T) {
	g := NewGraph[string]()
	a := g.AddVertex("a")
	b := g.AddVertex("b")
	c := g.AddVertex("c")
	g.AddEdge(a, b)
	g.AddEdge(b, a)
	g.AddEdge(b, c)

	sccs := SCC(g)

	var foundCycle bool
	for _, scc := range sccs {
		if len(scc) == 2 {
			foundCycle = true
			has := func(v uint32) bool {
				for _, x := range scc {
					if x == v {
						return true
					}
				}
				return false
			}
			if !has(a) || !has(b) {
				t.Fatalf("cycle SCC should contain a and b, got %v", scc)
			}
		}
	}
	if !foundCycle {
		t.Fatalf("expected an SCC of size 2 for the a<->b cycle, got %v", sccs)
	}
}

func TestSCCAcyclicGraphIsAllSingletons(t *testing.T) {
	g := NewGraph[int]()
	x := g.AddVertex(1)
	y := g.AddVertex(2)
	g.AddEdge(x, y)

	sccs := SCC(g)
	if len(sccs) != 2 {
		t.Fatalf("expected 2 singleton SCCs for an acyclic graph, got %d", len(sccs))
	}
	for _, scc := range sccs {
		if len(scc) != 1 {
			t.Fatalf("expected singleton SCCs, got %v", scc)
		}
	}
}
