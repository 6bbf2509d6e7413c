package testsupport

import "testing"

func TestListReturnsSortedNonEmptyFixtures(t *testing.T) {
	fixtures := List()
	if len(fixtures) == 0 {
		t.Fatal("expected at least one fixture")
	}
	for i := 1; i < len(fixtures); i++ {
		if fixtures[i-1].Name >= fixtures[i].Name {
			t.Fatalf("expected fixtures sorted by name, got %q before %q", fixtures[i-1].Name, fixtures[i].Name)
		}
	}
}

func TestGetBuildsAFreshModuleEachCall(t *testing.T) {
	f, err := Get("identity")
	if err != nil {
		t.Fatalf("Get error = %v", err)
	}
	m1 := f.Module()
	m2 := f.Module()
	if m1 == m2 {
		t.Fatal("expected Module() to build a fresh *ast.Module each call")
	}
	if len(m1.Decls) != len(m2.Decls) {
		t.Fatalf("expected identical decl counts, got %d and %d", len(m1.Decls), len(m2.Decls))
	}
}

func TestGetRejectsUnknownFixture(t *testing.T) {
	if _, err := Get("does-not-exist"); err == nil {
		t.Fatal("expected an error for an unknown fixture name")
	}
}
