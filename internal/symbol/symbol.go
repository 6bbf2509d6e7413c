// Package symbol provides globally-unique identifiers for bindings and the
// Symbol triple (name, id, type) that every IR level carries on its
// identifiers.
package symbol

import (
	"sync/atomic"

	"github.com/babelc/babelc/internal/types"
)

var counter uint32

// Fresh returns the next value from the process-wide monotonic id counter.
// The counter is never reset; callers that need determinism in tests should
// construct Symbols directly instead of relying on specific id values.
func Fresh() uint32 {
	return atomic.AddUint32(&counter, 1)
}

// Symbol is an identifier after renaming: a printable name, a globally
// unique id, and a type. Two symbols are equal iff their ids are equal.
type Symbol struct {
	Name string
	ID   uint32
	Ty   types.Type
}

// New mints a Symbol with a fresh id.
func New(name string, ty types.Type) Symbol {
	return Symbol{Name: name, ID: Fresh(), Ty: ty}
}

// WithType returns a copy of s with its type replaced; the id and name are
// unchanged. Passes that substitute concrete types into symbols (C3, C5)
// use this instead of mutating shared Symbol values.
func (s Symbol) WithType(ty types.Type) Symbol {
	s.Ty = ty
	return s
}

// Equal reports whether two symbols refer to the same binding.
func (s Symbol) Equal(o Symbol) bool {
	return s.ID == o.ID
}

func (s Symbol) String() string {
	return s.Name
}
