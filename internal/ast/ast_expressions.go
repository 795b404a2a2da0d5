package ast

import (
	"strings"

	"github.com/firewall2142/dedukti/internal/token"
)

// Term is an applied-term occurrence, on either side of a rule, or the
// neutral element of an `acu` declaration. Whether an Ident names a
// constant or a pattern variable is resolved later, against a rule's `[x,
// y, ...]` context (internal/rulecompiler), not here.
type Term interface {
	Node
	termNode()
	String() string
}

// Ident is a bare name: a constant reference or a pattern variable,
// depending on context.
type Ident struct {
	Token token.Token
	Name  string
}

func (i *Ident) termNode()            {}
func (i *Ident) TokenLiteral() string { return i.Token.Lexeme }
func (i *Ident) String() string       { return i.Name }

// Apply is a term applied to one or more arguments: `f x y`.
type Apply struct {
	Token token.Token // the head's first token
	Head  Term
	Args  []Term
}

func (a *Apply) termNode()            {}
func (a *Apply) TokenLiteral() string { return a.Token.Lexeme }
func (a *Apply) String() string {
	parts := make([]string, 0, len(a.Args)+1)
	parts = append(parts, a.Head.String())
	for _, arg := range a.Args {
		parts = append(parts, paren(arg))
	}
	return strings.Join(parts, " ")
}

func paren(t Term) string {
	if a, ok := t.(*Apply); ok && len(a.Args) > 0 {
		return "(" + a.String() + ")"
	}
	return t.String()
}
