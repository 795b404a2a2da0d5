package rpc

import (
	"testing"

	"github.com/firewall2142/dedukti/internal/parser"
	"github.com/firewall2142/dedukti/internal/rulecompiler"
	"github.com/firewall2142/dedukti/internal/term"
)

func mustParseGroundTerm(t *testing.T, src string) term.Term {
	t.Helper()
	astTerm, err := parser.ParseTermString(src)
	if err != nil {
		t.Fatalf("ParseTermString(%q): %v", src, err)
	}
	return rulecompiler.Instantiate(astTerm, nil, nil)
}
