package term

import "errors"

// ErrIndexEscapes is returned by Unshift (and by any SubstFunc that chooses
// to use it) when a free de Bruijn index would have to become negative.
var ErrIndexEscapes = errors.New("term: de Bruijn index would escape below zero")

// SubstFunc rewrites one bound-variable occurrence found k binders below
// the point ApplySubst was called from (k counts binders crossed so far,
// starting at the k0 ApplySubst was seeded with); n is the variable's own
// de Bruijn index at that occurrence. It mirrors the `f(loc, x, n, k)`
// collaborator described in spec section 6.
type SubstFunc func(k, n int) (Term, error)

// ApplySubst walks t, calling f on every DB node with the number of Lambda
// binders crossed since the call (starting at k0) and the variable's own
// index, and rebuilds t with the replacements. f may return an error (e.g.
// ErrIndexEscapes) to abort the whole walk.
func ApplySubst(f SubstFunc, k0 int, t Term) (Term, error) {
	switch n := t.(type) {
	case DB:
		return f(k0, n.Index)
	case Const:
		return n, nil
	case App:
		newHead, err := ApplySubst(f, k0, n.Head)
		if err != nil {
			return nil, err
		}
		newArgs := make([]Term, len(n.Args))
		for i, a := range n.Args {
			na, err := ApplySubst(f, k0, a)
			if err != nil {
				return nil, err
			}
			newArgs[i] = na
		}
		return NewApp(newHead, newArgs...), nil
	case Lambda:
		newBody, err := ApplySubst(f, k0+1, n.Body)
		if err != nil {
			return nil, err
		}
		return Lambda{ParamName: n.ParamName, Body: newBody}, nil
	default:
		return t, nil
	}
}

// Shift increases every free de Bruijn index in t by d (d may be negative,
// in which case this behaves like Unshift but without the escape check —
// callers wanting the check should use Unshift).
func Shift(d int, t Term) Term {
	out, _ := ApplySubst(func(k, n int) (Term, error) {
		if n >= k {
			return DB{Index: n + d}, nil
		}
		return DB{Index: n}, nil
	}, 0, t)
	return out
}

// Unshift decreases every free de Bruijn index in t by d, failing with
// ErrIndexEscapes if any free index would end up referring below the term's
// own top level (i.e. the variable it names was bound d or fewer levels
// above t and Unshift would have to invent a negative index for it).
func Unshift(d int, t Term) (Term, error) {
	return ApplySubst(func(k, n int) (Term, error) {
		if n >= k {
			if n-k < d {
				return nil, ErrIndexEscapes
			}
			return DB{Index: n - d}, nil
		}
		return DB{Index: n}, nil
	}, 0, t)
}
