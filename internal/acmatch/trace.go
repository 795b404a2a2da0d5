package acmatch

import "github.com/google/uuid"

// Trace identifies one top-level SolveProblem invocation. The solver itself
// stays silent (spec section 5: no I/O besides the reducer), so a Trace is
// never threaded into SolveProblem's own call graph — callers that need to
// correlate a request with its eventual substitution stamp one at the call
// site instead; today the only such caller is the gRPC server, which tags
// its per-request log lines with it.
type Trace struct {
	ID string
}

// NewTrace stamps a fresh trace id.
func NewTrace() Trace {
	return Trace{ID: uuid.New().String()}
}

func (t Trace) String() string { return t.ID }
