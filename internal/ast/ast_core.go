// Package ast is the surface syntax tree of SPEC_FULL.md section 7: plain
// identifiers stand in for both constants and pattern variables until
// internal/rulecompiler tells them apart against a declaration's `[x, y,
// ...]` context.
package ast

import "github.com/firewall2142/dedukti/internal/token"

// Node is the base interface for every AST node; TokenLiteral supports
// diagnostics without a full position-tracking pass.
type Node interface {
	TokenLiteral() string
}

// Decl is one top-level declaration: DefDecl, ACDecl, ACUDecl, or RuleDecl.
type Decl interface {
	Node
	declNode()
}

// Program is the root of a parsed source file.
type Program struct {
	File  string
	Decls []Decl
}

func (p *Program) TokenLiteral() string {
	if len(p.Decls) == 0 {
		return ""
	}
	return p.Decls[0].TokenLiteral()
}

// DefDecl declares a symbol and its type: `def plus : Nat -> Nat -> Nat.`
type DefDecl struct {
	Token token.Token // the 'def' token
	Name  string
	Type  TypeExpr
}

func (d *DefDecl) declNode()            {}
func (d *DefDecl) TokenLiteral() string { return d.Token.Lexeme }

// Arity is the number of arguments Type's arrow chain takes before
// reaching a non-arrow result type.
func (d *DefDecl) Arity() int { return arrowArity(d.Type) }

// ACDecl declares a previously-def'd symbol associative-commutative:
// `ac plus.`
type ACDecl struct {
	Token token.Token // the 'ac' token
	Name  string
}

func (d *ACDecl) declNode()            {}
func (d *ACDecl) TokenLiteral() string { return d.Token.Lexeme }

// ACUDecl declares a symbol AC with a neutral element: `acu plus, zero.`
type ACUDecl struct {
	Token   token.Token // the 'acu' token
	Name    string
	Neutral Term
}

func (d *ACUDecl) declNode()            {}
func (d *ACUDecl) TokenLiteral() string { return d.Token.Lexeme }

// RuleDecl is one rewrite rule: `[x, y, ...] lhs --> rhs.`
type RuleDecl struct {
	Token token.Token // the '[' token, or the lhs's first token if Vars is empty
	Vars  []string
	LHS   Term
	RHS   Term
}

func (d *RuleDecl) declNode()            {}
func (d *RuleDecl) TokenLiteral() string { return d.Token.Lexeme }

func arrowArity(t TypeExpr) int {
	n := 0
	for {
		arr, ok := t.(*TypeArrow)
		if !ok {
			return n
		}
		n++
		t = arr.Result
	}
}
