package term

import "testing"

func TestShiftUnshiftRoundTrip(t *testing.T) {
	// #0 under one binder, #2 free above two binders.
	body := App{Head: DB{Index: 0}, Args: []Term{DB{Index: 2}}}
	lam := Lambda{Body: body}

	shifted := Shift(3, lam)
	back, err := Unshift(3, shifted)
	if err != nil {
		t.Fatalf("unshift after shift failed: %v", err)
	}
	if back.String() != lam.String() {
		t.Errorf("round trip mismatch: got %s want %s", back.String(), lam.String())
	}
}

func TestUnshiftEscapeFails(t *testing.T) {
	// DB{1} is free but only one level below the term's own top; unshifting
	// by 2 would need a negative index.
	if _, err := Unshift(2, DB{Index: 1}); err != ErrIndexEscapes {
		t.Errorf("expected ErrIndexEscapes, got %v", err)
	}
}

func TestUnshiftKeepsBoundVariables(t *testing.T) {
	// DB{0} under the Lambda is bound locally; Unshift must never touch it.
	lam := Lambda{Body: DB{Index: 0}}
	out, err := Unshift(5, lam)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.String() != lam.String() {
		t.Errorf("bound variable was shifted: got %s", out.String())
	}
}

func TestAddNLambdasAndAppList(t *testing.T) {
	base := Const{Name: "f"}
	wrapped := AddNLambdas(2, base)
	if wrapped.String() != "λ_. λ_. f" {
		t.Errorf("unexpected wrap: %s", wrapped.String())
	}

	applied := AppList(Const{Name: "X"}, []int{1, 0})
	if applied.String() != "X #1 #0" {
		t.Errorf("unexpected AppList: %s", applied.String())
	}
}

func TestApplyCapturedBetaReduces(t *testing.T) {
	// s = #0 #1 (arity 2), vars = [3, 5]: applying (λ.λ. #0 #1) to #3 #5
	// should substitute innermost binder (#0) with #5 and outer with #3,
	// i.e. yield #5 #3.
	s := App{Head: DB{Index: 0}, Args: []Term{DB{Index: 1}}}
	got := ApplyCaptured(2, s, []int{3, 5})
	want := "#5 #3"
	if got.String() != want {
		t.Errorf("ApplyCaptured = %s, want %s", got.String(), want)
	}
}

func TestFlattenUnflattenAC(t *testing.T) {
	plus := Const{Name: "plus"}
	aci := ACIdent{Symbol: plus, Flavour: FlavourAC}
	a, b, c := Const{Name: "a"}, Const{Name: "b"}, Const{Name: "c"}
	nested := NewApp(plus, NewApp(plus, a, b), c)

	id := func(t Term) Term { return t }
	flat := FlattenAC(id, plus, nested)
	if len(flat) != 3 {
		t.Fatalf("expected 3 components, got %d: %v", len(flat), flat)
	}

	rebuilt := UnflattenAC(aci, flat)
	reflat := FlattenAC(id, plus, rebuilt)
	if len(reflat) != 3 {
		t.Errorf("unflatten/flatten round trip lost components: %v", reflat)
	}
}
