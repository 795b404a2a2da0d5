// Package acmatch implements the higher-order (Miller) and
// associative-commutative pattern matching engine: given a rule's
// pre-compiled left-hand side and a candidate right-hand side, it computes
// the substitution that makes them match, or reports failure. See
// SPEC_FULL.md section 5 for how this package maps onto the specification.
package acmatch

import "github.com/firewall2142/dedukti/internal/term"

// MillerVar describes a higher-order unknown's occurrence in a pattern
// (spec section 3): Arity is how many arguments it captures, Depth is the
// number of pattern binders enclosing the occurrence, Mapping sends a local
// de Bruijn position (0..Depth) to the unknown's captured argument
// position (-1 meaning "not captured"), and Vars lists the de Bruijn
// indices of the bound variables actually applied to the unknown, in
// application order.
type MillerVar struct {
	Arity   int
	Depth   int
	Mapping []int
	Vars    []int
}

// StatusKind is one of the three variants of spec section 3's Status union.
type StatusKind int

const (
	Unsolved StatusKind = iota
	Solved
	Partly
)

func (k StatusKind) String() string {
	switch k {
	case Unsolved:
		return "Unsolved"
	case Solved:
		return "Solved"
	case Partly:
		return "Partly"
	default:
		return "?"
	}
}

// VarStatus is one pattern variable's current knowledge state. Only the
// fields relevant to Kind are meaningful; this mirrors the tagged union of
// spec section 3 in a dense, array-storable shape (spec section 9's
// "keep the tag narrow" design note).
type VarStatus struct {
	Kind StatusKind
	Sol  term.Term     // Kind == Solved
	ACI  term.ACIdent  // Kind == Partly
	Bag  []term.Term   // Kind == Partly: the partial AC components seen so far
}

// AcVarOcc pairs a pattern variable's global index with its Miller
// descriptor at one particular AC equation.
type AcVarOcc struct {
	Index int
	MVar  MillerVar
}

// AcProblem is one AC (or ACU) equation awaiting solution:
// f^depth{ X1 y1, ..., Xk yk, jokers } ≡ f{ terms } (spec section 3).
type AcProblem struct {
	Depth  int
	Ident  term.ACIdent
	Jokers int
	Vars   []AcVarOcc
	Terms  []*term.Lazy[term.Term]
}

// EqSlot is one deterministic equation `mvar ≡ rhs` bound to a pattern
// variable. RE is the rule-compiler's own representation of the
// right-hand side, adapted to a term via the `convert` callback passed to
// SolveProblem (spec section 6).
type EqSlot[RE any] struct {
	MVar MillerVar
	Rhs  RE
}

// PreAcProblem is the pre-conversion counterpart of AcProblem; RA is the
// rule-compiler's representation of the right-hand side multiset, adapted
// via the `convert_ac` callback.
type PreAcProblem[RA any] struct {
	Depth  int
	Ident  term.ACIdent
	Jokers int
	Vars   []AcVarOcc
	Rhs    RA
}

// PreMatchingProblem is the immutable input to SolveProblem (spec section
// 6): one equation slot per pattern variable (possibly empty, possibly
// several equations to cross-check) plus the AC equations.
type PreMatchingProblem[RE any, RA any] struct {
	Arity      []int
	EqSlots    [][]EqSlot[RE]
	AcProblems []PreAcProblem[RA]
}

// MatchingProblem is the mutable (but persistently updated — never mutated
// in place, see spec section 9) state threaded through the AC search.
type MatchingProblem struct {
	AcProblems []AcProblem
	Status     []VarStatus
	Arities    []int
}

// Substitution is the engine's output: one lazy term per pattern variable,
// already wrapped in the variable's own arity-many lambdas (spec section
// 4.3.3).
type Substitution = []*term.Lazy[term.Term]

// clone returns a MatchingProblem that shares no mutable backing arrays
// with pb, so a branch can modify its copy freely while earlier branches'
// copies remain valid (spec section 9: status is conceptually
// copy-on-write; ac_problems is rebuilt per transition).
func (pb MatchingProblem) clone() MatchingProblem {
	status := make([]VarStatus, len(pb.Status))
	copy(status, pb.Status)
	acs := make([]AcProblem, len(pb.AcProblems))
	copy(acs, pb.AcProblems)
	return MatchingProblem{AcProblems: acs, Status: status, Arities: pb.Arities}
}

func cloneAcProblem(p AcProblem) AcProblem {
	vars := make([]AcVarOcc, len(p.Vars))
	copy(vars, p.Vars)
	terms := make([]*term.Lazy[term.Term], len(p.Terms))
	copy(terms, p.Terms)
	return AcProblem{Depth: p.Depth, Ident: p.Ident, Jokers: p.Jokers, Vars: vars, Terms: terms}
}
