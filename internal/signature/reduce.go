package signature

import "github.com/firewall2142/dedukti/internal/term"

// Whnf reduces t to weak head normal form: beta redexes at the head are
// always eliminated, and a fully-applied defined symbol has each of its
// rules tried in order (SPEC_FULL.md section 4) until one fires, in which
// case reduction continues on the result. Arguments are never touched —
// that's what makes this call-by-name rather than call-by-value.
func (sg *Signature) Whnf(t term.Term) term.Term {
	for {
		switch n := t.(type) {
		case term.App:
			head := sg.Whnf(n.Head)
			if lam, ok := head.(term.Lambda); ok {
				t = term.BetaApply(lam, n.Args)
				continue
			}
			if c, ok := head.(term.Const); ok {
				if red, ok := sg.dispatch(c, n.Args); ok {
					t = red
					continue
				}
			}
			return term.NewApp(head, n.Args...)
		case term.Const:
			if red, ok := sg.dispatch(n, nil); ok {
				t = red
				continue
			}
			return n
		default:
			return t
		}
	}
}

// dispatch tries to fire one of c's rules against args, splitting off any
// arguments beyond the symbol's declared arity (a partial application of a
// saturating head further applied, e.g. `(plus x) y`, is handled one layer
// at a time by the App case above as args accumulate). It reports ok=false
// when c is undeclared, under-applied, or every rule fails to match.
func (sg *Signature) dispatch(c term.Const, args []term.Term) (term.Term, bool) {
	sym := sg.Lookup(c.Name)
	if sym == nil || len(args) < sym.Arity {
		return nil, false
	}
	own, rest := args[:sym.Arity], args[sym.Arity:]
	for _, rule := range sym.Rules {
		if rhs, ok := rule.Try(sg, own); ok {
			return term.NewApp(rhs, rest...), true
		}
	}
	return nil, false
}

// Snf fully normalizes t: Whnf at the head, then recursively under every
// remaining constructor.
func (sg *Signature) Snf(t term.Term) term.Term {
	w := sg.Whnf(t)
	switch n := w.(type) {
	case term.App:
		args := make([]term.Term, len(n.Args))
		for i, a := range n.Args {
			args[i] = sg.Snf(a)
		}
		return term.NewApp(sg.Snf(n.Head), args...)
	case term.Lambda:
		return term.Lambda{ParamName: n.ParamName, Body: sg.Snf(n.Body)}
	default:
		return w
	}
}

// AreConvertible checks beta-and-rule convertibility of t1 and t2, with AC
// symbols compared as multisets rather than as ordered spines (spec.md
// section 6: convertibility must see through AC flattening, since that is
// exactly what the bookkeeping in internal/acmatch relies on when checking
// a second equation against an already-solved variable).
func (sg *Signature) AreConvertible(t1, t2 term.Term) bool {
	w1, w2 := sg.Whnf(t1), sg.Whnf(t2)

	if app, ok := w1.(term.App); ok {
		if c, ok := app.Head.(term.Const); ok && len(app.Args) == 2 {
			if sym := sg.Lookup(c.Name); sym != nil && sym.Flavour != term.NotAC {
				return sg.acConvertible(sym.ACIdent(), w1, w2)
			}
		}
	}

	switch n1 := w1.(type) {
	case term.Const:
		n2, ok := w2.(term.Const)
		return ok && n1 == n2
	case term.DB:
		n2, ok := w2.(term.DB)
		return ok && n1.Index == n2.Index
	case term.Lambda:
		n2, ok := w2.(term.Lambda)
		return ok && sg.AreConvertible(n1.Body, n2.Body)
	case term.App:
		n2, ok := w2.(term.App)
		if !ok || len(n1.Args) != len(n2.Args) {
			return false
		}
		if !sg.AreConvertible(n1.Head, n2.Head) {
			return false
		}
		for i := range n1.Args {
			if !sg.AreConvertible(n1.Args[i], n2.Args[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// acConvertible compares w1 and w2 as AC multisets under aci: every
// component of w1's flattening must pair, up to AreConvertible, with a
// distinct component of w2's flattening.
func (sg *Signature) acConvertible(aci term.ACIdent, w1, w2 term.Term) bool {
	left := term.FlattenAC(sg.Snf, aci.Symbol, w1)
	right := term.FlattenAC(sg.Snf, aci.Symbol, w2)
	if len(left) != len(right) {
		return false
	}
	used := make([]bool, len(right))
	for _, l := range left {
		matched := false
		for i, r := range right {
			if used[i] {
				continue
			}
			if sg.AreConvertible(l, r) {
				used[i] = true
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	return true
}
