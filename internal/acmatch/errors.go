package acmatch

import "errors"

// ErrNotUnifiable is the internal control-flow failure raised by the
// Miller solver when a free de Bruijn index cannot be mapped back through
// the unknown's capture list (spec section 7). It is caught by
// ForceSolve, which retries once against the strong normal form; a second
// failure becomes an ordinary branch failure (the caller returns false,
// not this error).
var ErrNotUnifiable = errors.New("acmatch: not unifiable")

// ErrNotSolvable is the internal control-flow failure raised when an
// equational cross-check or an AC subtraction pre-check fails while
// seeding the matching problem (spec section 7). It is caught only by
// SolveProblem, which turns it into a plain "no match" result.
var ErrNotSolvable = errors.New("acmatch: not solvable")
