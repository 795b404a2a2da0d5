package api

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/firewall2142/dedukti/internal/cache"
)

const natRules = `def Nat : Nat.
def zero : Nat.
def succ : Nat -> Nat.
def plus : Nat -> Nat -> Nat.
ac plus.
[x] plus x zero --> x.
[x, y] plus (succ x) y --> succ (plus x y).
`

func TestMatchAppliesFirstFiringRule(t *testing.T) {
	eng, err := NewFromSource("nat.dk", natRules)
	if err != nil {
		t.Fatalf("NewFromSource: %v", err)
	}
	res, err := eng.Match("plus", "a", "zero")
	if err != nil {
		t.Fatalf("Match: %v", err)
	}
	if !res.Matched || res.Term.String() != "a" {
		t.Errorf("Match(plus, a, zero) = %+v, want matched term a", res)
	}
}

func TestMatchReportsNoMatch(t *testing.T) {
	eng, err := NewFromSource("nat.dk", natRules)
	if err != nil {
		t.Fatalf("NewFromSource: %v", err)
	}
	res, err := eng.Match("plus", "a", "b")
	if err != nil {
		t.Fatalf("Match: %v", err)
	}
	if res.Matched {
		t.Errorf("expected no match for plus(a, b), got %+v", res)
	}
}

func TestMatchUnknownSymbolErrors(t *testing.T) {
	eng, err := NewFromSource("nat.dk", natRules)
	if err != nil {
		t.Fatalf("NewFromSource: %v", err)
	}
	if _, err := eng.Match("ghost", "a"); err == nil {
		t.Fatal("expected an error for an undeclared symbol")
	}
}

func TestNormalizeAppliesRulesRepeatedly(t *testing.T) {
	eng, err := NewFromSource("nat.dk", natRules)
	if err != nil {
		t.Fatalf("NewFromSource: %v", err)
	}
	got, err := eng.Normalize("plus (succ (succ zero)) zero")
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	want := "succ (succ zero)"
	if got.String() != want {
		t.Errorf("Normalize = %s, want %s", got, want)
	}
}

func TestNewRejectsCompileDiagnostics(t *testing.T) {
	if _, err := NewFromSource("bad.dk", "[x] ghost x --> x.\n"); err == nil {
		t.Fatal("expected an error for a rule over an undeclared symbol")
	}
}

func TestNewWithCachePopulatesAndIsConsultedOnRerun(t *testing.T) {
	dir := t.TempDir()
	rulePath := filepath.Join(dir, "nat.dk")
	if err := os.WriteFile(rulePath, []byte(natRules), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	c, err := cache.Open(filepath.Join(dir, "cache.sqlite"))
	if err != nil {
		t.Fatalf("cache.Open: %v", err)
	}
	defer c.Close()

	if _, err := NewWithCache(c, rulePath); err != nil {
		t.Fatalf("NewWithCache (first compile): %v", err)
	}
	n, err := c.Size()
	if err != nil {
		t.Fatalf("Size: %v", err)
	}
	if n != 1 {
		t.Fatalf("Size after first compile = %d, want 1", n)
	}

	rec, ok, err := c.Lookup(cache.HashSource(natRules))
	if err != nil || !ok {
		t.Fatalf("Lookup after first compile: ok=%v err=%v", ok, err)
	}
	if rec.ACFlavour != cache.FileFlavour {
		t.Errorf("ACFlavour = %q, want %q", rec.ACFlavour, cache.FileFlavour)
	}

	// A second compile of the same unchanged file must still produce a
	// working engine, sourcing its AST from the cache entry stored above
	// rather than re-parsing rulePath.
	eng, err := NewWithCache(c, rulePath)
	if err != nil {
		t.Fatalf("NewWithCache (second compile): %v", err)
	}
	res, err := eng.Match("plus", "a", "zero")
	if err != nil {
		t.Fatalf("Match: %v", err)
	}
	if !res.Matched || res.Term.String() != "a" {
		t.Errorf("Match(plus, a, zero) after cache hit = %+v, want matched term a", res)
	}
	if n, err := c.Size(); err != nil || n != 1 {
		t.Errorf("Size after second (cached) compile = %d, err=%v, want 1", n, err)
	}
}
