package acmatch

import (
	"fmt"
	"math"
	"sort"

	"github.com/firewall2142/dedukti/internal/term"
)

// AcRearrange sorts AC problems ascending by (len(vars), -len(terms),
// jokers>0) as specified in spec section 4.3.1: fewer variables means
// tighter branching, more RHS terms given few variables means more
// constraint, and joker-bearing equations are delayed since they can
// spuriously absorb evidence another equation needs.
func AcRearrange(problems []AcProblem) {
	sort.SliceStable(problems, func(a, b int) bool {
		pa, pb := problems[a], problems[b]
		if len(pa.Vars) != len(pb.Vars) {
			return len(pa.Vars) < len(pb.Vars)
		}
		if len(pa.Terms) != len(pb.Terms) {
			return len(pa.Terms) > len(pb.Terms)
		}
		ja, jb := pa.Jokers > 0, pb.Jokers > 0
		return !ja && jb
	})
}

// scoreUnreachable is used only defensively (spec section 4.3.3: "Solved:
// unreachable").
const scoreUnreachable = math.MaxInt

// FetchVar scores every (i, mvar) in p.Vars and returns the one with the
// minimum score (spec section 4.3.2): Unsolved scores 0 (preferred),
// Partly under the same AC symbol scores 1+len(bag) (fewer accumulated
// terms preferred), Partly under a different symbol scores MaxInt-1
// (almost never picked, but — per spec's noted Open Question — still
// below a hypothetical MaxInt, a discrepancy this implementation
// reproduces intentionally).
func FetchVar(pb MatchingProblem, p AcProblem) (int, MillerVar) {
	bestScore := math.MaxInt
	bestIdx := -1
	var bestMVar MillerVar
	for _, occ := range p.Vars {
		st := pb.Status[occ.Index]
		var score int
		switch st.Kind {
		case Unsolved:
			score = 0
		case Partly:
			if st.ACI.Equal(p.Ident) {
				score = 1 + len(st.Bag)
			} else {
				score = math.MaxInt - 1
			}
		default:
			score = scoreUnreachable
		}
		if score < bestScore {
			bestScore = score
			bestIdx = occ.Index
			bestMVar = occ.MVar
		}
	}
	return bestIdx, bestMVar
}

// SolveAcProblem is the main search loop of spec section 4.3.3
// ("solve_next"): it picks the first AC problem, fetches its best
// variable, and either disposes of a variable-less equation, tries every
// candidate term against the fetched variable (backtracking on failure),
// or — once every candidate has been tried without success — commits the
// variable to Partly/Solved and recurses.
func SolveAcProblem(sg Reducer, pb MatchingProblem) (Substitution, bool) {
	if len(pb.AcProblems) == 0 {
		return MaterializeSubstitution(pb), true
	}

	p := pb.AcProblems[0]
	rest := pb.AcProblems[1:]

	if len(p.Vars) == 0 {
		if len(p.Terms) == 0 || p.Jokers > 0 {
			next := pb.clone()
			next.AcProblems = rest
			return SolveAcProblem(sg, next)
		}
		return nil, false
	}

	i, mvar := FetchVar(pb, p)
	switch pb.Status[i].Kind {
	case Partly:
		for _, t := range p.Terms {
			sol, err := ForceSolve(sg, mvar, t)
			if err != nil {
				continue
			}
			if pb2, ok := AddPartly(sg, pb, i, sol); ok {
				if sub, ok2 := SolveAcProblem(sg, pb2); ok2 {
					return sub, true
				}
			}
		}
		pb3, ok := ClosePartly(sg, pb, i)
		if !ok {
			return nil, false
		}
		return SolveAcProblem(sg, pb3)

	case Unsolved:
		for _, t := range p.Terms {
			sol, err := ForceSolve(sg, mvar, t)
			if err != nil {
				continue
			}
			if pb2, ok := SetUnsolved(sg, pb, i, sol); ok {
				if sub, ok2 := SolveAcProblem(sg, pb2); ok2 {
					return sub, true
				}
			}
		}
		return SolveAcProblem(sg, SetPartly(pb, i, p.Ident))

	default:
		panic("acmatch: a Solved variable was found in ac_problems.vars")
	}
}

// MaterializeSubstitution builds the final substitution once ac_problems is
// empty: every touched variable is Solved by construction (spec section
// 4.3.3); a variable that never appeared anywhere indicates a malformed
// problem (spec section 7: a programming error, not a match failure).
func MaterializeSubstitution(pb MatchingProblem) Substitution {
	sub := make(Substitution, len(pb.Status))
	for i, st := range pb.Status {
		if st.Kind != Solved {
			panic(fmt.Sprintf("acmatch: variable %d left unsolved at materialization", i))
		}
		sol := st.Sol
		arity := pb.Arities[i]
		sub[i] = term.NewLazy(func() term.Term { return term.AddNLambdas(arity, sol) })
	}
	return sub
}
