package acmatch

import "github.com/firewall2142/dedukti/internal/term"

// subtractOne removes exactly one occurrence of expected (up to
// convertibility) from terms, multiset semantics. It returns the shrunk
// slice and whether a match was found; on failure the original slice is
// returned unchanged.
func subtractOne(sg Reducer, terms []*term.Lazy[term.Term], expected term.Term) ([]*term.Lazy[term.Term], bool) {
	for idx, lt := range terms {
		if sg.AreConvertible(lt.Force(), expected) {
			out := make([]*term.Lazy[term.Term], 0, len(terms)-1)
			out = append(out, terms[:idx]...)
			out = append(out, terms[idx+1:]...)
			return out, true
		}
	}
	return terms, false
}

// SetUnsolved is spec section 4.2.1: commits variable i to Solved(sol) and
// propagates that knowledge into every AC problem mentioning i, removing
// the terms that solution accounts for and dropping i from each problem's
// variable list. Returns (_, false) if any expected term is missing (a
// branch failure, not ErrNotSolvable — see spec section 7).
func SetUnsolved(sg Reducer, pb MatchingProblem, i int, sol term.Term) (MatchingProblem, bool) {
	newPb := pb.clone()
	newPb.Status[i] = VarStatus{Kind: Solved, Sol: sol}

	newAcs := make([]AcProblem, 0, len(newPb.AcProblems))
	for _, p := range newPb.AcProblems {
		hasI := false
		for _, occ := range p.Vars {
			if occ.Index == i {
				hasI = true
				break
			}
		}
		if !hasI {
			newAcs = append(newAcs, p)
			continue
		}

		solWhnf := sg.Whnf(sol)
		components := term.FlattenAC(sg.Snf, p.Ident.Symbol, solWhnf)
		if p.Ident.Flavour == term.FlavourACU {
			filtered := make([]term.Term, 0, len(components))
			for _, c := range components {
				if !sg.AreConvertible(c, p.Ident.Neutral) {
					filtered = append(filtered, c)
				}
			}
			components = filtered
		}

		terms := p.Terms
		ok := true
		for _, occ := range p.Vars {
			if occ.Index != i {
				continue
			}
			for _, s := range components {
				expected := term.Shift(p.Depth, term.ApplyCaptured(pb.Arities[i], s, occ.MVar.Vars))
				var removed bool
				terms, removed = subtractOne(sg, terms, expected)
				if !removed {
					ok = false
					break
				}
			}
			if !ok {
				break
			}
		}
		if !ok {
			return MatchingProblem{}, false
		}

		newVars := make([]AcVarOcc, 0, len(p.Vars))
		for _, occ := range p.Vars {
			if occ.Index != i {
				newVars = append(newVars, occ)
			}
		}
		if len(newVars) == 0 {
			if len(terms) != 0 && p.Jokers <= 0 {
				return MatchingProblem{}, false
			}
			continue // equation fully accounted for; drop it
		}
		newAcs = append(newAcs, AcProblem{Depth: p.Depth, Ident: p.Ident, Jokers: p.Jokers, Vars: newVars, Terms: terms})
	}
	newPb.AcProblems = newAcs
	return newPb, true
}

// SetPartly is spec section 4.2.2: opens a Partly state for i under aci.
// Precondition (enforced by callers in search.go): status[i] == Unsolved.
func SetPartly(pb MatchingProblem, i int, aci term.ACIdent) MatchingProblem {
	newPb := pb.clone()
	newPb.Status[i] = VarStatus{Kind: Partly, ACI: aci, Bag: nil}
	return newPb
}

// AddPartly is spec section 4.2.3: extends i's partial AC bag with one more
// term, subtracting the corresponding expected term from every AC problem
// that shares i's ac_ident and mentions i (i may appear in more than one
// such equation; each is kept consistent with the same growing bag).
func AddPartly(sg Reducer, pb MatchingProblem, i int, sol term.Term) (MatchingProblem, bool) {
	st := pb.Status[i]
	newAcs := make([]AcProblem, len(pb.AcProblems))
	copy(newAcs, pb.AcProblems)

	for idx, p := range pb.AcProblems {
		if !p.Ident.Equal(st.ACI) {
			continue
		}
		hasI := false
		for _, occ := range p.Vars {
			if occ.Index == i {
				hasI = true
				break
			}
		}
		if !hasI {
			continue
		}

		terms := p.Terms
		ok := true
		for _, occ := range p.Vars {
			if occ.Index != i {
				continue
			}
			expected := term.Shift(p.Depth, term.ApplyCaptured(pb.Arities[i], sol, occ.MVar.Vars))
			var removed bool
			terms, removed = subtractOne(sg, terms, expected)
			if !removed {
				ok = false
				break
			}
		}
		if !ok {
			return MatchingProblem{}, false
		}
		np := cloneAcProblem(p)
		np.Terms = terms
		newAcs[idx] = np
	}

	newStatus := make([]VarStatus, len(pb.Status))
	copy(newStatus, pb.Status)
	newBag := make([]term.Term, len(st.Bag)+1)
	copy(newBag, st.Bag)
	newBag[len(st.Bag)] = sol
	newStatus[i] = VarStatus{Kind: Partly, ACI: st.ACI, Bag: newBag}

	return MatchingProblem{AcProblems: newAcs, Status: newStatus, Arities: pb.Arities}, true
}

// ClosePartly is spec section 4.2.4: commits i's Partly bag to a final
// Solved value, checking every remaining equation under the same ac_ident
// for emptiness/acceptance (the term subtractions for those equations were
// already performed incrementally by AddPartly, so only the variable-list
// bookkeeping and acceptance check remain here).
func ClosePartly(sg Reducer, pb MatchingProblem, i int) (MatchingProblem, bool) {
	st := pb.Status[i]
	var v term.Term
	switch {
	case len(st.Bag) == 0 && st.ACI.Flavour == term.FlavourACU:
		v = st.ACI.Neutral
	case len(st.Bag) == 0:
		return MatchingProblem{}, false
	default:
		v = term.UnflattenAC(st.ACI, st.Bag)
	}

	newAcs := make([]AcProblem, 0, len(pb.AcProblems))
	for _, p := range pb.AcProblems {
		if !p.Ident.Equal(st.ACI) {
			newAcs = append(newAcs, p)
			continue
		}
		newVars := make([]AcVarOcc, 0, len(p.Vars))
		mentioned := false
		for _, occ := range p.Vars {
			if occ.Index == i {
				mentioned = true
				continue
			}
			newVars = append(newVars, occ)
		}
		if !mentioned {
			newAcs = append(newAcs, p)
			continue
		}
		if len(newVars) == 0 {
			if len(p.Terms) != 0 && p.Jokers <= 0 {
				return MatchingProblem{}, false
			}
			continue
		}
		newAcs = append(newAcs, AcProblem{Depth: p.Depth, Ident: p.Ident, Jokers: p.Jokers, Vars: newVars, Terms: p.Terms})
	}

	stripped := MatchingProblem{AcProblems: newAcs, Status: pb.Status, Arities: pb.Arities}
	return SetUnsolved(sg, stripped, i, v)
}

// InitAcProblems performs the initial bulk propagation of already-Solved
// variables (seeded by the equational fast path, spec section 4.4) into
// the AC problems, using the same subtraction discipline as SetUnsolved.
// A failed subtraction here is the AC subtraction pre-check of spec
// section 7: it is reported as ErrNotSolvable, caught by SolveProblem.
func InitAcProblems(sg Reducer, pb MatchingProblem) (MatchingProblem, error) {
	cur := pb
	for i, st := range pb.Status {
		if st.Kind != Solved {
			continue
		}
		var ok bool
		cur, ok = SetUnsolved(sg, cur, i, st.Sol)
		if !ok {
			return MatchingProblem{}, ErrNotSolvable
		}
	}
	return cur, nil
}
