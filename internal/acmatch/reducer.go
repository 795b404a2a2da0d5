package acmatch

import "github.com/firewall2142/dedukti/internal/term"

// Reducer is the capability set the engine consumes from the kernel's
// signature (spec section 6): weak-head and strong normal forms, and
// convertibility (including AC-aware equality). internal/signature.Signature
// implements this interface; acmatch never imports that package, avoiding a
// cycle since the signature needs acmatch's types to store compiled rules.
type Reducer interface {
	Whnf(t term.Term) term.Term
	Snf(t term.Term) term.Term
	AreConvertible(t1, t2 term.Term) bool
}
