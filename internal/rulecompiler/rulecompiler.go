// Package rulecompiler is the concrete (simplest-possible) implementation
// of the "rule-compilation into decision trees" collaborator that spec.md
// treats as already built (SPEC_FULL.md section 6): given a parsed
// ast.RuleDecl and a signature.Signature, it produces a signature.Rule
// whose Try closure walks the call's actual arguments against the rule's
// left-hand side, deterministically for ordinary (non-AC) positions and
// via internal/acmatch.SolveProblem for each AC-headed spine it finds.
//
// Rather than pre-building one static acmatch.PreMatchingProblem per rule
// (impossible here since AC ground-component subtraction depends on the
// actual candidate multiset of each call), Compile precomputes the rule's
// shape once — variable indices, which symbols are AC — and returns a
// closure that re-derives the (cheap) PreMatchingProblem on every call.
package rulecompiler

import (
	"github.com/firewall2142/dedukti/internal/acmatch"
	"github.com/firewall2142/dedukti/internal/ast"
	"github.com/firewall2142/dedukti/internal/config"
	"github.com/firewall2142/dedukti/internal/signature"
	"github.com/firewall2142/dedukti/internal/term"
)

var zeroMVar = acmatch.MillerVar{Arity: 0, Depth: 0}

// Compile turns one parsed rule into a dispatchable signature.Rule.
func Compile(decl *ast.RuleDecl, sg *signature.Signature) (signature.Rule, error) {
	source := decl.LHS.String() + " --> " + decl.RHS.String()

	varIndex := make(map[string]int, len(decl.Vars))
	for i, v := range decl.Vars {
		varIndex[v] = i
	}

	name, args, ok := lhsHeadAndArgs(decl.LHS)
	if !ok {
		return signature.Rule{}, newCompileError(source, "left-hand side must apply a declared symbol")
	}
	sym, err := sg.MustLookup(name)
	if err != nil {
		return signature.Rule{}, err
	}
	if len(args) != sym.Arity {
		return signature.Rule{}, signature.NewArityMismatchError(name, sym.Arity, len(args))
	}
	if err := validateLHS(sg, decl.LHS, varIndex); err != nil {
		return signature.Rule{}, newCompileError(source, "%s", err.Error())
	}

	topAC := sym.Flavour != term.NotAC && sym.Arity == 2

	try := func(sg *signature.Signature, callArgs []term.Term) (term.Term, bool) {
		b := &builder{sg: sg, varIndex: varIndex, eqSlots: make([][]acmatch.EqSlot[term.Term], len(decl.Vars))}

		matched := true
		if topAC {
			matched = b.matchACSpine(name, args, callArgs)
		} else {
			for i, pa := range args {
				if !b.match(pa, callArgs[i]) {
					matched = false
					break
				}
			}
		}
		if !matched {
			return nil, false
		}

		pb := acmatch.PreMatchingProblem[term.Term, []term.Term]{
			Arity:      make([]int, len(decl.Vars)),
			EqSlots:    b.eqSlots,
			AcProblems: b.acProbs,
		}
		sub, ok := acmatch.SolveProblem(sg, identityConvert, identityConvertAC, pb)
		if !ok {
			return nil, false
		}
		return Instantiate(decl.RHS, varIndex, sub), true
	}

	return signature.Rule{Source: source, Try: try}, nil
}

func identityConvert(t term.Term) *term.Lazy[term.Term] { return term.Now(t) }

func identityConvertAC(ts []term.Term) []*term.Lazy[term.Term] {
	out := make([]*term.Lazy[term.Term], len(ts))
	for i, t := range ts {
		out[i] = term.Now(t)
	}
	return out
}

func lhsHeadAndArgs(t ast.Term) (string, []ast.Term, bool) {
	switch n := t.(type) {
	case *ast.Ident:
		return n.Name, nil, true
	case *ast.Apply:
		id, ok := n.Head.(*ast.Ident)
		if !ok {
			return "", nil, false
		}
		return id.Name, n.Args, true
	default:
		return "", nil, false
	}
}

// builder accumulates the pieces of one PreMatchingProblem while matching
// a single rule invocation's arguments against its left-hand side.
type builder struct {
	sg       *signature.Signature
	varIndex map[string]int
	eqSlots  [][]acmatch.EqSlot[term.Term]
	acProbs  []acmatch.PreAcProblem[[]term.Term]
}

func (b *builder) addEq(idx int, rhs term.Term) {
	b.eqSlots[idx] = append(b.eqSlots[idx], acmatch.EqSlot[term.Term]{MVar: zeroMVar, Rhs: rhs})
}

func (b *builder) clone() *builder {
	slots := make([][]acmatch.EqSlot[term.Term], len(b.eqSlots))
	for i, s := range b.eqSlots {
		slots[i] = append([]acmatch.EqSlot[term.Term]{}, s...)
	}
	return &builder{sg: b.sg, varIndex: b.varIndex, eqSlots: slots, acProbs: append([]acmatch.PreAcProblem[[]term.Term]{}, b.acProbs...)}
}

// match is the ordinary (non-AC) structural matcher: a declared variable
// binds the candidate outright, a bare identifier must equal a ground
// constant, and an application recurses argument-by-argument after
// checking the head symbol — unless that head is itself AC, in which case
// it hands off to matchACSpine.
func (b *builder) match(pattern ast.Term, candidate term.Term) bool {
	switch p := pattern.(type) {
	case *ast.Ident:
		if idx, ok := b.varIndex[p.Name]; ok {
			b.addEq(idx, candidate)
			return true
		}
		got := b.sg.Whnf(candidate)
		return b.sg.AreConvertible(got, term.Const{Name: p.Name})

	case *ast.Apply:
		headName, ok := identName(p.Head)
		if !ok {
			return false
		}
		sym := b.sg.Lookup(headName)
		if sym != nil && sym.Flavour != term.NotAC && len(p.Args) == 2 {
			got := b.sg.Whnf(candidate)
			app, ok := got.(term.App)
			if !ok || len(app.Args) != 2 {
				return false
			}
			if c, ok := app.Head.(term.Const); !ok || c.Name != headName {
				return false
			}
			return b.matchACSpine(headName, p.Args, app.Args)
		}

		got := b.sg.Whnf(candidate)
		var candArgs []term.Term
		switch n := got.(type) {
		case term.App:
			c, ok := n.Head.(term.Const)
			if !ok || c.Name != headName {
				return false
			}
			candArgs = n.Args
		case term.Const:
			if n.Name != headName {
				return false
			}
		default:
			return false
		}
		if len(candArgs) != len(p.Args) {
			return false
		}
		for i, pa := range p.Args {
			if !b.match(pa, candArgs[i]) {
				return false
			}
		}
		return true

	default:
		return false
	}
}

// matchACSpine handles one AC-headed spine: patternArgs is the rule's own
// (unflattened) argument list at this position, candidateArgs the actual
// term arguments found there. Both are flattened against symName, ground
// (struct) components are greedily matched against and removed from the
// candidate multiset, and whatever bare pattern variables and jokers
// remain become one acmatch.PreAcProblem over the leftover terms.
func (b *builder) matchACSpine(symName string, patternArgs []ast.Term, candidateArgs []term.Term) bool {
	components := flattenACArgs(patternArgs, symName)
	remaining := b.acFlattenCandidate(symName, candidateArgs)

	var bareVars []acmatch.AcVarOcc
	jokers := 0
	var structs []ast.Term
	for _, c := range components {
		if id, ok := c.(*ast.Ident); ok {
			if idx, ok2 := b.varIndex[id.Name]; ok2 {
				bareVars = append(bareVars, acmatch.AcVarOcc{Index: idx, MVar: zeroMVar})
				continue
			}
			if id.Name == config.JokerIdent {
				jokers++
				continue
			}
		}
		structs = append(structs, c)
	}

	for _, sPat := range structs {
		matchedAt := -1
		var trial *builder
		for i, cand := range remaining {
			t := b.clone()
			if t.match(sPat, cand) {
				matchedAt = i
				trial = t
				break
			}
		}
		if matchedAt < 0 {
			return false
		}
		b.eqSlots = trial.eqSlots
		b.acProbs = trial.acProbs
		next := make([]term.Term, 0, len(remaining)-1)
		next = append(next, remaining[:matchedAt]...)
		next = append(next, remaining[matchedAt+1:]...)
		remaining = next
	}

	if len(bareVars) == 0 && jokers == 0 {
		return len(remaining) == 0
	}
	sym := b.sg.Lookup(symName)
	b.acProbs = append(b.acProbs, acmatch.PreAcProblem[[]term.Term]{
		Depth:  0,
		Ident:  sym.ACIdent(),
		Jokers: jokers,
		Vars:   bareVars,
		Rhs:    remaining,
	})
	return true
}

func (b *builder) acFlattenCandidate(symName string, args []term.Term) []term.Term {
	sym := term.Const{Name: symName}
	out := make([]term.Term, 0, len(args))
	for _, a := range args {
		out = append(out, term.FlattenAC(b.sg.Snf, sym, a)...)
	}
	return out
}

// flattenACArgs recursively expands any direct argument that is itself an
// application of symName into its own components, the AST-level
// counterpart of term.FlattenAC.
func flattenACArgs(args []ast.Term, symName string) []ast.Term {
	out := make([]ast.Term, 0, len(args))
	for _, a := range args {
		if app, ok := a.(*ast.Apply); ok {
			if id, ok := app.Head.(*ast.Ident); ok && id.Name == symName && len(app.Args) == 2 {
				out = append(out, flattenACArgs(app.Args, symName)...)
				continue
			}
		}
		out = append(out, a)
	}
	return out
}

func identName(t ast.Term) (string, bool) {
	id, ok := t.(*ast.Ident)
	if !ok {
		return "", false
	}
	return id.Name, true
}

// validateLHS catches the one shape this reference compiler cannot serve
// — a joker appearing outside a direct AC spine position — before it ever
// reaches a Try call, where it would otherwise just silently fail to
// match. inACSpine is
// true exactly while walking a flattened component list of an AC symbol's
// two arguments, where a bare joker is meaningful.
func validateLHS(sg *signature.Signature, t ast.Term, varIndex map[string]int) error {
	return validateTerm(sg, t, varIndex, false)
}

func validateTerm(sg *signature.Signature, t ast.Term, varIndex map[string]int, inACSpine bool) error {
	switch n := t.(type) {
	case *ast.Ident:
		if _, isVar := varIndex[n.Name]; isVar {
			return nil
		}
		if n.Name == config.JokerIdent && !inACSpine {
			return newCompileError("", "joker %q is only valid directly under an AC symbol", config.JokerIdent)
		}
		return nil
	case *ast.Apply:
		headName, ok := identName(n.Head)
		if !ok {
			return newCompileError("", "unsupported higher-order application in left-hand side")
		}
		sym := sg.Lookup(headName)
		childInACSpine := sym != nil && sym.Flavour != term.NotAC && len(n.Args) == 2
		args := n.Args
		if childInACSpine {
			args = flattenACArgs(n.Args, headName)
		}
		for _, a := range args {
			if err := validateTerm(sg, a, varIndex, childInACSpine); err != nil {
				return err
			}
		}
		return nil
	default:
		return nil
	}
}
