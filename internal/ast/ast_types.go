package ast

import "github.com/firewall2142/dedukti/internal/token"

// TypeExpr is the tiny type-signature language used only in `def` headers
// (`Nat -> Nat -> Nat`) to compute a symbol's arity; the kernel itself is
// untyped (SPEC_FULL.md section 13 restates spec.md's Non-goals — there is
// no type checker).
type TypeExpr interface {
	Node
	typeNode()
}

// TypeName is a base type reference, e.g. `Nat`.
type TypeName struct {
	Token token.Token
	Name  string
}

func (t *TypeName) typeNode()            {}
func (t *TypeName) TokenLiteral() string { return t.Token.Lexeme }

// TypeArrow is a right-associative function type: `Param -> Result`.
type TypeArrow struct {
	Token  token.Token // the '->' token
	Param  TypeExpr
	Result TypeExpr
}

func (t *TypeArrow) typeNode()            {}
func (t *TypeArrow) TokenLiteral() string { return t.Token.Lexeme }
