package specialize

import (
	"fmt"
	"strings"

	"github.com/babelc/babelc/internal/symbol"
	"github.com/babelc/babelc/internal/types"
)

// instanceEntry is one concrete instantiation of a polymorphic binding:
// the resolved type arguments it was instantiated with, and the fresh
// monomorphic symbol minted for it.
type instanceEntry struct {
	args []types.Type
	sym  symbol.Symbol
}

// Instances tracks, for one polymorphic top-level binding, every distinct
// instantiation discovered while specializing its callers. Grounded on
// specialize.rs's Instances (tyvars + a map keyed by the resolved type
// argument list); Go maps can't key on a type slice directly, so the key
// here is the mangled argument string instead, with order preserved
// separately for deterministic output.
type Instances struct {
	tyVars []types.TyVar
	order  []string
	byKey  map[string]instanceEntry
}

func newInstances(tyVars []types.TyVar) *Instances {
	return &Instances{tyVars: tyVars, byKey: make(map[string]instanceEntry)}
}

// resolve binds this instance's type variables to args (under sub) and
// returns the resulting ground argument list, without registering it.
func (in *Instances) resolve(sub *types.Subst, args []types.Type) []types.Type {
	for i := 0; i < len(in.tyVars) && i < len(args); i++ {
		sub.Bind(in.tyVars[i], args[i])
	}
	resolved := make([]types.Type, len(in.tyVars))
	for i, tv := range in.tyVars {
		resolved[i] = sub.Apply(types.Var{V: tv})
	}
	return resolved
}

// getOrAdd returns the symbol for the instantiation identified by key
// (mangleArgsKey(resolvedArgs)), minting one via a deterministic mangled
// name the first time it is seen.
func (in *Instances) getOrAdd(key string, resolvedArgs []types.Type, orig symbol.Symbol, sub *types.Subst) symbol.Symbol {
	if e, ok := in.byKey[key]; ok {
		return e.sym
	}
	name := mangleName(orig.Name, resolvedArgs)
	ty := sub.Apply(orig.Ty)
	sym := symbol.New(name, ty)
	in.byKey[key] = instanceEntry{args: resolvedArgs, sym: sym}
	in.order = append(in.order, key)
	return sym
}

func mangleArgsKey(args []types.Type) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = a.String()
	}
	return strings.Join(parts, ",")
}

// mangleName produces the deterministic, printable specialized name
// "originalname<[t1,...,tn]>" named in spec.md §4.3.
func mangleName(name string, args []types.Type) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = a.String()
	}
	return fmt.Sprintf("%s<[%s]>", name, strings.Join(parts, ", "))
}
