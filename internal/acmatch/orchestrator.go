package acmatch

import "github.com/firewall2142/dedukti/internal/term"

// SolveProblem is the top-level orchestrator of spec section 4.4: it seeds
// variable status from the deterministic equational slots, then either
// returns directly (no AC problems at all — the fast path) or hands off to
// the AC search driver. convert/convertAC adapt the rule-compiler's own
// right-hand-side representation (RE, RA) to term.Lazy[term.Term], per the
// external-interface contract of spec section 6.
func SolveProblem[RE any, RA any](
	sg Reducer,
	convert func(RE) *term.Lazy[term.Term],
	convertAC func(RA) []*term.Lazy[term.Term],
	pb PreMatchingProblem[RE, RA],
) (Substitution, bool) {
	status, err := seedStatus(sg, convert, pb.EqSlots, pb.Arity)
	if err != nil {
		return nil, false
	}

	if len(pb.AcProblems) == 0 {
		return MaterializeSubstitution(MatchingProblem{Status: status, Arities: pb.Arity}), true
	}

	acProblems := make([]AcProblem, len(pb.AcProblems))
	for idx, p := range pb.AcProblems {
		acProblems[idx] = AcProblem{
			Depth:  p.Depth,
			Ident:  p.Ident,
			Jokers: p.Jokers,
			Vars:   p.Vars,
			Terms:  convertAC(p.Rhs),
		}
	}

	mp := MatchingProblem{AcProblems: acProblems, Status: status, Arities: pb.Arity}
	mp, err = InitAcProblems(sg, mp)
	if err != nil {
		return nil, false
	}
	AcRearrange(mp.AcProblems)
	return SolveAcProblem(sg, mp)
}

// seedStatus solves each variable's deterministic equation slot (spec
// section 4.4, item 1/2): the first equation is solved outright, every
// subsequent equation in the same slot is cross-checked for convertibility
// against the same solution reapplied at its own occurrence. A variable
// with no equations at all is left Unsolved for the AC phase to resolve
// (or, in the pure equational fast path, to be flagged by
// MaterializeSubstitution as a malformed problem — spec section 7).
//
// Both failure modes (ForceSolve's error, and a failed cross-check) are
// the ErrNotSolvable of spec section 7: SolveProblem is the only caller
// and turns it into a plain "no match" result.
func seedStatus[RE any](
	sg Reducer,
	convert func(RE) *term.Lazy[term.Term],
	eqSlots [][]EqSlot[RE],
	arity []int,
) ([]VarStatus, error) {
	status := make([]VarStatus, len(arity))
	for i, slot := range eqSlots {
		if len(slot) == 0 {
			status[i] = VarStatus{Kind: Unsolved}
			continue
		}
		first := slot[0]
		sol0, err := ForceSolve(sg, first.MVar, convert(first.Rhs))
		if err != nil {
			return nil, ErrNotSolvable
		}
		for _, eq := range slot[1:] {
			expected := term.Shift(eq.MVar.Depth, term.ApplyCaptured(arity[i], sol0, eq.MVar.Vars))
			actual := convert(eq.Rhs).Force()
			if !sg.AreConvertible(expected, actual) {
				return nil, ErrNotSolvable
			}
		}
		status[i] = VarStatus{Kind: Solved, Sol: sol0}
	}
	return status, nil
}
