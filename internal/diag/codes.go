// Package diag provides the structured error report carried across pass
// boundaries: every compiler pass (C1-C5) and the backend/linker adapters
// return errors wrapped as *ReportError so callers can recover the
// originating code and phase with errors.As.
package diag

// Code constants, one per error kind named in the pass design.
const (
	// REN001 indicates a variable reference to a name with no binding in
	// scope.
	REN001 = "REN001"

	// REN002 indicates two top-level declarations bind the same name.
	REN002 = "REN002"

	// TYP001 indicates unification failed between two incompatible types.
	TYP001 = "TYP001"

	// TYP002 indicates the occurs check rejected a type variable binding
	// that would construct an infinite type.
	TYP002 = "TYP002"

	// TYP003 indicates a symbol referenced during inference has no
	// recorded scheme.
	TYP003 = "TYP003"

	// SPZ001 indicates the specializer encountered a call to a symbol
	// with no collected instance.
	SPZ001 = "SPZ001"

	// SPZ002 indicates a recursive binding whose own body instantiates it
	// at a different type than its declared signature (unsupported:
	// polymorphic recursion).
	SPZ002 = "SPZ002"

	// LFT001 indicates lambda lifting produced a lifted binding that
	// still references a variable free in its enclosing scope.
	LFT001 = "LFT001"

	// SIM001 indicates the simplifier was asked to lower a type it
	// cannot represent in the monomorphic first-order IR (a residual
	// type variable or ForAll).
	SIM001 = "SIM001"

	// BKD001 indicates the backend adapter failed to emit an object.
	BKD001 = "BKD001"

	// LNK001 indicates the external linker process failed.
	LNK001 = "LNK001"
)

// Phase names, one per pass plus the external adapters.
const (
	PhaseRename    = "rename"
	PhaseInfer     = "infer"
	PhaseSpecialize = "specialize"
	PhaseLift      = "lift"
	PhaseSimplify  = "simplify"
	PhaseBackend   = "backend"
	PhaseLink      = "link"
)
