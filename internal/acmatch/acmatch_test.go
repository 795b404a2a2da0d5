package acmatch

import (
	"testing"

	"github.com/firewall2142/dedukti/internal/term"
)

// fakeReducer is a minimal Reducer for tests: no rewriting is needed for
// closed first-order terms, so Whnf/Snf are identity and AreConvertible is
// plain structural equality via String().
type fakeReducer struct{}

func (fakeReducer) Whnf(t term.Term) term.Term         { return t }
func (fakeReducer) Snf(t term.Term) term.Term          { return t }
func (fakeReducer) AreConvertible(a, b term.Term) bool { return a.String() == b.String() }

func zeroArityVar(idx int) AcVarOcc {
	return AcVarOcc{Index: idx, MVar: MillerVar{Arity: 0, Depth: 0}}
}

func lazyConst(name string) *term.Lazy[term.Term] {
	return term.Now[term.Term](term.Const{Name: name})
}

// 1. Pure Miller: rule LHS λx. X x vs term λx. f x x.
func TestScenarioPureMiller(t *testing.T) {
	mvar := MillerVar{Arity: 1, Depth: 1, Mapping: []int{0}, Vars: []int{0}}
	rhs := term.App{Head: term.Const{Name: "f"}, Args: []term.Term{term.DB{Index: 0}, term.DB{Index: 0}}}

	got, err := Solve(mvar, rhs)
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}
	sol := term.AddNLambdas(1, got)
	want := "λ_. f #0 #0"
	if sol.String() != want {
		t.Errorf("solution = %s, want %s", sol.String(), want)
	}
}

// 2. AC small: X + Y vs a + b, no jokers.
func TestScenarioACSmall(t *testing.T) {
	plus := term.Const{Name: "plus"}
	aci := term.ACIdent{Symbol: plus, Flavour: term.FlavourAC}
	pb := MatchingProblem{
		Arities: []int{0, 0},
		Status:  make([]VarStatus, 2),
		AcProblems: []AcProblem{{
			Depth:  0,
			Ident:  aci,
			Jokers: 0,
			Vars:   []AcVarOcc{zeroArityVar(0), zeroArityVar(1)},
			Terms:  []*term.Lazy[term.Term]{lazyConst("a"), lazyConst("b")},
		}},
	}
	AcRearrange(pb.AcProblems)
	sub, ok := SolveAcProblem(fakeReducer{}, pb)
	if !ok {
		t.Fatal("expected a solution")
	}
	if sub[0].Force().String() != "a" || sub[1].Force().String() != "b" {
		t.Errorf("X=%s Y=%s, want X=a Y=b", sub[0].Force(), sub[1].Force())
	}
}

// 3. AC with joker: X + J vs a + b + c.
func TestScenarioACJoker(t *testing.T) {
	plus := term.Const{Name: "plus"}
	aci := term.ACIdent{Symbol: plus, Flavour: term.FlavourAC}
	pb := MatchingProblem{
		Arities: []int{0},
		Status:  make([]VarStatus, 1),
		AcProblems: []AcProblem{{
			Depth:  0,
			Ident:  aci,
			Jokers: 1,
			Vars:   []AcVarOcc{zeroArityVar(0)},
			Terms:  []*term.Lazy[term.Term]{lazyConst("a"), lazyConst("b"), lazyConst("c")},
		}},
	}
	AcRearrange(pb.AcProblems)
	sub, ok := SolveAcProblem(fakeReducer{}, pb)
	if !ok {
		t.Fatal("expected a solution")
	}
	got := sub[0].Force().String()
	if got != "a" && got != "b" && got != "c" {
		t.Errorf("X=%s, want one of a/b/c", got)
	}
}

// 4. ACU neutral: X ⊕ Y vs a.
func TestScenarioACUNeutral(t *testing.T) {
	plus := term.Const{Name: "oplus"}
	zero := term.Term(term.Const{Name: "zero"})
	aci := term.ACIdent{Symbol: plus, Flavour: term.FlavourACU, Neutral: zero}
	pb := MatchingProblem{
		Arities: []int{0, 0},
		Status:  make([]VarStatus, 2),
		AcProblems: []AcProblem{{
			Depth:  0,
			Ident:  aci,
			Jokers: 0,
			Vars:   []AcVarOcc{zeroArityVar(0), zeroArityVar(1)},
			Terms:  []*term.Lazy[term.Term]{lazyConst("a")},
		}},
	}
	AcRearrange(pb.AcProblems)
	sub, ok := SolveAcProblem(fakeReducer{}, pb)
	if !ok {
		t.Fatal("expected a solution")
	}
	x, y := sub[0].Force().String(), sub[1].Force().String()
	if !((x == "a" && y == "zero") || (x == "zero" && y == "a")) {
		t.Errorf("X=%s Y=%s, want {a,zero} in some order", x, y)
	}
}

// 5. Partly solved: X + X + Y vs a + a + b + b + c.
func TestScenarioPartlySolved(t *testing.T) {
	plus := term.Const{Name: "plus"}
	aci := term.ACIdent{Symbol: plus, Flavour: term.FlavourAC}
	xOcc := zeroArityVar(0)
	pb := MatchingProblem{
		Arities: []int{0, 0},
		Status:  make([]VarStatus, 2),
		AcProblems: []AcProblem{{
			Depth:  0,
			Ident:  aci,
			Jokers: 0,
			Vars:   []AcVarOcc{xOcc, xOcc, zeroArityVar(1)},
			Terms: []*term.Lazy[term.Term]{
				lazyConst("a"), lazyConst("a"), lazyConst("b"), lazyConst("b"), lazyConst("c"),
			},
		}},
	}
	AcRearrange(pb.AcProblems)
	sub, ok := SolveAcProblem(fakeReducer{}, pb)
	if !ok {
		t.Fatal("expected a solution")
	}
	// Several assignments satisfy X+X+Y == a+a+b+b+c (e.g. X=a,Y=b+b+c or
	// X=a+b,Y=c); rather than pin the exact split the search happens to
	// find, check the soundness property of spec section 8: the flattened
	// multiset of X, X and Y together must equal {a,a,b,b,c}.
	id := func(t term.Term) term.Term { return t }
	got := map[string]int{}
	for _, part := range []term.Term{sub[0].Force(), sub[0].Force(), sub[1].Force()} {
		for _, c := range term.FlattenAC(id, plus, part) {
			got[c.String()]++
		}
	}
	want := map[string]int{"a": 2, "b": 2, "c": 1}
	if len(got) != len(want) {
		t.Fatalf("multiset mismatch: got %v, want %v", got, want)
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("multiset mismatch on %s: got %d, want %d (%v)", k, got[k], v, got)
		}
	}
}

// 6. Failure propagation: X + X vs a + b with a != b.
func TestScenarioFailurePropagation(t *testing.T) {
	plus := term.Const{Name: "plus"}
	aci := term.ACIdent{Symbol: plus, Flavour: term.FlavourAC}
	xOcc := zeroArityVar(0)
	pb := MatchingProblem{
		Arities: []int{0},
		Status:  make([]VarStatus, 1),
		AcProblems: []AcProblem{{
			Depth:  0,
			Ident:  aci,
			Jokers: 0,
			Vars:   []AcVarOcc{xOcc, xOcc},
			Terms:  []*term.Lazy[term.Term]{lazyConst("a"), lazyConst("b")},
		}},
	}
	AcRearrange(pb.AcProblems)
	if _, ok := SolveAcProblem(fakeReducer{}, pb); ok {
		t.Fatal("expected failure for X+X against a+b with a != b")
	}
}

func TestAcRearrangeOrdering(t *testing.T) {
	few := AcProblem{Vars: []AcVarOcc{zeroArityVar(0)}, Terms: make([]*term.Lazy[term.Term], 3)}
	many := AcProblem{Vars: []AcVarOcc{zeroArityVar(0), zeroArityVar(1)}, Terms: make([]*term.Lazy[term.Term], 1)}
	joker := AcProblem{Vars: []AcVarOcc{zeroArityVar(0)}, Terms: make([]*term.Lazy[term.Term], 1), Jokers: 1}
	noJoker := AcProblem{Vars: []AcVarOcc{zeroArityVar(0)}, Terms: make([]*term.Lazy[term.Term], 1)}

	probs := []AcProblem{many, joker, few, noJoker}
	AcRearrange(probs)

	if len(probs[0].Vars) != 1 || len(probs[0].Terms) != 3 {
		t.Errorf("expected 'few' first, got %+v", probs[0])
	}
	if probs[len(probs)-1].Vars[0].Index != 0 || len(probs[len(probs)-1].Vars) != 2 {
		t.Errorf("expected 'many' (more variables) last, got %+v", probs[len(probs)-1])
	}
	var jokerIdx, noJokerIdx int
	for idx, p := range probs {
		if p.Jokers > 0 {
			jokerIdx = idx
		} else if len(p.Vars) == 1 && len(p.Terms) == 1 {
			noJokerIdx = idx
		}
	}
	if jokerIdx < noJokerIdx {
		t.Errorf("expected the joker-bearing problem to sort after its non-joker twin within the same tier")
	}
}
