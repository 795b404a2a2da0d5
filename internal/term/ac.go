package term

// ACFlavour distinguishes a plain associative-commutative symbol from one
// that additionally carries a neutral element (ACU).
type ACFlavour int

const (
	NotAC ACFlavour = iota
	FlavourAC
	FlavourACU
)

// ACIdent names an AC (or ACU) symbol. Equality is structural on Symbol's
// name alone (spec section 3): two ACIdent values referring to the same
// global symbol are equal regardless of how Neutral happens to be
// represented in each copy.
type ACIdent struct {
	Symbol  Const
	Flavour ACFlavour
	Neutral Term // only meaningful when Flavour == FlavourACU
}

// Equal implements the "structural on the symbol name" equality from spec
// section 3.
func (a ACIdent) Equal(b ACIdent) bool {
	return a.Symbol == b.Symbol
}

// FlattenAC returns the multiset of AC components of t under sym, replacing
// f(f(a, b), c) by {a, b, c}. snf is used to expose AC spines hiding behind
// a reducible term (spec section 6: force_flatten_AC_term).
func FlattenAC(snf func(Term) Term, sym Const, t Term) []Term {
	nt := snf(t)
	if app, ok := nt.(App); ok {
		if head, ok := app.Head.(Const); ok && head == sym && len(app.Args) == 2 {
			left := FlattenAC(snf, sym, app.Args[0])
			right := FlattenAC(snf, sym, app.Args[1])
			return append(left, right...)
		}
	}
	return []Term{nt}
}

// UnflattenAC is the inverse of FlattenAC: it rebuilds a left-leaning
// spine of binary applications of aci.Symbol over ts, f(f(a, b), c). An empty ts is only
// valid for an ACU identifier, in which case the neutral element is
// returned; callers must never call it with an empty ts on a plain AC
// identifier (bookkeeping.go's ClosePartly enforces this precondition).
func UnflattenAC(aci ACIdent, ts []Term) Term {
	if len(ts) == 0 {
		return aci.Neutral
	}
	acc := ts[0]
	for _, t := range ts[1:] {
		acc = NewApp(aci.Symbol, acc, t)
	}
	return acc
}
