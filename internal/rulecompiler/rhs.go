package rulecompiler

import (
	"github.com/firewall2142/dedukti/internal/acmatch"
	"github.com/firewall2142/dedukti/internal/ast"
	"github.com/firewall2142/dedukti/internal/term"
)

// Instantiate turns a parsed ast.Term into a term.Term, substituting any
// name present in varIndex by the corresponding (already-solved, forced)
// entry of sub and treating every other identifier as a nullary constant
// reference. Passing a nil varIndex/sub instantiates a ground term with no
// pattern variables at all — used both for a rule's right-hand side after
// matching and, by internal/rpc and pkg/api, for parsing a bare query term
// from a host program or RPC request.
func Instantiate(rhs ast.Term, varIndex map[string]int, sub acmatch.Substitution) term.Term {
	switch n := rhs.(type) {
	case *ast.Ident:
		if idx, ok := varIndex[n.Name]; ok {
			return sub[idx].Force()
		}
		return term.Const{Name: n.Name}
	case *ast.Apply:
		args := make([]term.Term, len(n.Args))
		for i, a := range n.Args {
			args[i] = Instantiate(a, varIndex, sub)
		}
		head := Instantiate(n.Head, varIndex, sub)
		return term.NewApp(head, args...)
	default:
		return term.Const{Name: rhs.TokenLiteral()}
	}
}
