package rpc

import (
	"testing"

	"github.com/jhump/protoreflect/dynamic"

	"github.com/firewall2142/dedukti/internal/pipeline"
	"github.com/firewall2142/dedukti/internal/parser"
	"github.com/firewall2142/dedukti/internal/rulecompiler"
)

func buildTestSignature(t *testing.T) *pipeline.Context {
	t.Helper()
	ctx := pipeline.NewContext("test.dk", `def Nat : Nat.
def zero : Nat.
def succ : Nat -> Nat.
def plus : Nat -> Nat -> Nat.
ac plus.
[x] plus x zero --> x.
`)
	ctx = parser.Processor{}.Process(ctx)
	ctx = rulecompiler.CompileProcessor{}.Process(ctx)
	if len(ctx.Diagnostics) != 0 {
		t.Fatalf("unexpected diagnostics: %v", ctx.Diagnostics)
	}
	return ctx
}

func TestHandleSolveMatchesRule(t *testing.T) {
	ctx := buildTestSignature(t)
	schema, err := ParseSchema()
	if err != nil {
		t.Fatalf("ParseSchema: %v", err)
	}
	srv := NewServer(schema, ctx.Sig)

	req := dynamic.NewMessage(schema.MatchRequest)
	req.SetFieldByName("rule_symbol", "plus")
	a := EncodeTerm(schema.TermMessage, mustParseGroundTerm(t, "a"))
	zero := EncodeTerm(schema.TermMessage, mustParseGroundTerm(t, "zero"))
	if err := req.AddRepeatedFieldByName("args", a); err != nil {
		t.Fatal(err)
	}
	if err := req.AddRepeatedFieldByName("args", zero); err != nil {
		t.Fatal(err)
	}

	resp, err := srv.handleSolve(req)
	if err != nil {
		t.Fatalf("handleSolve: %v", err)
	}
	if matched, _ := resp.GetFieldByName("matched").(bool); !matched {
		t.Fatalf("expected matched=true, error=%v", resp.GetFieldByName("error"))
	}
	sub, _ := resp.GetRepeatedFieldByName("substitution").([]interface{})
	if len(sub) != 1 {
		t.Fatalf("got %d substitution entries, want 1", len(sub))
	}
	got, err := DecodeTerm(sub[0].(*dynamic.Message))
	if err != nil {
		t.Fatalf("DecodeTerm: %v", err)
	}
	if got.String() != "a" {
		t.Errorf("result = %s, want a", got)
	}
}

func TestHandleSolveReportsUnknownSymbol(t *testing.T) {
	ctx := buildTestSignature(t)
	schema, err := ParseSchema()
	if err != nil {
		t.Fatalf("ParseSchema: %v", err)
	}
	srv := NewServer(schema, ctx.Sig)

	req := dynamic.NewMessage(schema.MatchRequest)
	req.SetFieldByName("rule_symbol", "ghost")

	resp, err := srv.handleSolve(req)
	if err != nil {
		t.Fatalf("handleSolve: %v", err)
	}
	if matched, _ := resp.GetFieldByName("matched").(bool); matched {
		t.Fatal("expected matched=false for an unknown symbol")
	}
	if resp.GetFieldByName("error") == "" {
		t.Error("expected a non-empty error message")
	}
}
