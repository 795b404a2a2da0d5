package parser

import (
	"testing"

	"github.com/firewall2142/dedukti/internal/ast"
)

func TestParseDefAcAndRule(t *testing.T) {
	src := `def plus : Nat -> Nat -> Nat.
ac plus.
[x] plus x zero --> x.
`
	p := FromString(src)
	prog := p.ParseProgram("test.dk")
	if errs := p.Errors(); len(errs) != 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}
	if len(prog.Decls) != 3 {
		t.Fatalf("got %d decls, want 3", len(prog.Decls))
	}

	def, ok := prog.Decls[0].(*ast.DefDecl)
	if !ok {
		t.Fatalf("decl 0 is %T, want *ast.DefDecl", prog.Decls[0])
	}
	if def.Name != "plus" || def.Arity() != 2 {
		t.Errorf("def = %+v, want name=plus arity=2", def)
	}

	ac, ok := prog.Decls[1].(*ast.ACDecl)
	if !ok || ac.Name != "plus" {
		t.Fatalf("decl 1 = %+v, want ACDecl{plus}", prog.Decls[1])
	}

	rule, ok := prog.Decls[2].(*ast.RuleDecl)
	if !ok {
		t.Fatalf("decl 2 is %T, want *ast.RuleDecl", prog.Decls[2])
	}
	if len(rule.Vars) != 1 || rule.Vars[0] != "x" {
		t.Errorf("rule vars = %v, want [x]", rule.Vars)
	}
	if rule.LHS.String() != "plus x zero" {
		t.Errorf("lhs = %q, want %q", rule.LHS.String(), "plus x zero")
	}
	if rule.RHS.String() != "x" {
		t.Errorf("rhs = %q, want x", rule.RHS.String())
	}
}

func TestParseACUDecl(t *testing.T) {
	p := FromString("acu plus, zero.")
	prog := p.ParseProgram("test.dk")
	if errs := p.Errors(); len(errs) != 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}
	acu, ok := prog.Decls[0].(*ast.ACUDecl)
	if !ok {
		t.Fatalf("decl is %T, want *ast.ACUDecl", prog.Decls[0])
	}
	if acu.Name != "plus" || acu.Neutral.String() != "zero" {
		t.Errorf("acu = %+v, want name=plus neutral=zero", acu)
	}
}

func TestParseRecoversPastSyntaxError(t *testing.T) {
	src := `def plus : Nat -> Nat.
garbage )) ...
ac plus.
`
	p := FromString(src)
	prog := p.ParseProgram("test.dk")
	if len(p.Errors()) == 0 {
		t.Fatal("expected a syntax error from the malformed middle line")
	}
	if len(prog.Decls) != 2 {
		t.Fatalf("got %d recovered decls, want 2 (def and ac)", len(prog.Decls))
	}
}

func TestParseNestedApplication(t *testing.T) {
	p := FromString("[x, y] plus (succ x) y --> succ (plus x y).")
	prog := p.ParseProgram("test.dk")
	if errs := p.Errors(); len(errs) != 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}
	rule := prog.Decls[0].(*ast.RuleDecl)
	if rule.RHS.String() != "succ (plus x y)" {
		t.Errorf("rhs = %q, want %q", rule.RHS.String(), "succ (plus x y)")
	}
}
