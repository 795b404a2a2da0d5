package acmatch

import "github.com/firewall2142/dedukti/internal/term"

// Solve implements the Miller solver of spec section 4.1: given a
// descriptor mvar = {depth d, arity a, mapping m} and a term t, it produces
// t' such that substituting the unknown X := λ^a. t' and beta-reducing
// λ^d. X DB(mvar.Vars[0]) ... DB(mvar.Vars[last]) yields λ^d. t.
//
// It walks t applying a uniform de Bruijn transform to every bound
// variable found k extra binders below the call:
//   - n >= k+d:  n is free above the pattern; new index = n - d + a.
//   - n <  k+d:  n is bound by one of the d pattern binders (n-k); if
//     mvar.Mapping[n-k] == -1 the variable was not captured and Solve
//     fails with ErrNotUnifiable, otherwise the new index is
//     mvar.Mapping[n-k] + k.
func Solve(mvar MillerVar, t term.Term) (term.Term, error) {
	if mvar.Arity == 0 {
		// Fast path (spec 4.1): an unapplied Miller variable is just the
		// pattern depth unshifted away. An escaping index here is the same
		// "can't express this occurrence in terms of what the pattern
		// captured" failure as the general case below, so it is reported
		// as ErrNotUnifiable too — letting ForceSolve's snf retry apply to
		// the fast path exactly as it does to the general one.
		out, err := term.Unshift(mvar.Depth, t)
		if err != nil {
			return nil, ErrNotUnifiable
		}
		return out, nil
	}
	return term.ApplySubst(func(k, n int) (term.Term, error) {
		if n >= k+mvar.Depth {
			return term.DB{Index: n - mvar.Depth + mvar.Arity}, nil
		}
		pos := mvar.Mapping[n-k]
		if pos == -1 {
			return nil, ErrNotUnifiable
		}
		return term.DB{Index: pos + k}, nil
	}, 0, t)
}

// ForceSolve wraps Solve with the reducer-escalation rule of spec section
// 4.1: on ErrNotUnifiable it retries once against sg.Snf(t); a second
// failure propagates as-is.
func ForceSolve(sg Reducer, mvar MillerVar, lazyT *term.Lazy[term.Term]) (term.Term, error) {
	t := lazyT.Force()
	sol, err := Solve(mvar, t)
	if err == nil {
		return sol, nil
	}
	if err != ErrNotUnifiable {
		return nil, err
	}
	return Solve(mvar, sg.Snf(t))
}
