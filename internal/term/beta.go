package term

// betaSubst implements one beta-reduction step: body is the term under the
// binder being eliminated, arg is what its bound variable becomes. Standard
// capture-avoiding de Bruijn substitution: the variable at exactly the
// current depth is replaced (shifted up to account for the binders already
// crossed), deeper-bound variables are left untouched, and variables free
// above the eliminated binder shift down by one.
func betaSubst(body Term, arg Term) Term {
	out, _ := ApplySubst(func(k, n int) (Term, error) {
		switch {
		case n == k:
			return Shift(k, arg), nil
		case n > k:
			return DB{Index: n - 1}, nil
		default:
			return DB{Index: n}, nil
		}
	}, 0, body)
	return out
}

// BetaApply applies t — expected to be a chain of len(args) Lambdas — to
// args in order, peeling and substituting one binder per argument. It is
// total: if t runs out of Lambdas before args does, the remaining args are
// appended as an ordinary application spine over whatever remains.
func BetaApply(t Term, args []Term) Term {
	for i, a := range args {
		lam, ok := t.(Lambda)
		if !ok {
			return NewApp(t, args[i:]...)
		}
		t = betaSubst(lam.Body, a)
	}
	return t
}

// ApplyCaptured is "the variable under `arity` lambdas, applied to its
// argument de Bruijn list" from spec section 4.2.1: it builds
// λ^arity. s and immediately beta-reduces it against the bound variables
// named by vars (innermost argument first, matching the order AppList
// would apply them in the original pattern occurrence).
func ApplyCaptured(arity int, s Term, vars []int) Term {
	args := make([]Term, len(vars))
	for i, v := range vars {
		args[i] = DB{Index: v}
	}
	return BetaApply(AddNLambdas(arity, s), args)
}
