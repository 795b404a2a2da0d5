package main

import "testing"

func TestParseMatchArgsSplitsAtSeparator(t *testing.T) {
	files, symbol, termArgs, verbose, ok := parseMatchArgs([]string{"-v", "nat.dk", "--", "plus", "a", "zero"})
	if !ok {
		t.Fatal("expected ok")
	}
	if !verbose {
		t.Error("expected verbose")
	}
	if len(files) != 1 || files[0] != "nat.dk" {
		t.Errorf("files = %v", files)
	}
	if symbol != "plus" {
		t.Errorf("symbol = %q", symbol)
	}
	if len(termArgs) != 2 || termArgs[0] != "a" || termArgs[1] != "zero" {
		t.Errorf("termArgs = %v", termArgs)
	}
}

func TestParseMatchArgsRejectsMissingSeparator(t *testing.T) {
	if _, _, _, _, ok := parseMatchArgs([]string{"nat.dk", "plus"}); ok {
		t.Fatal("expected ok=false with no -- separator")
	}
}

func TestParseMatchArgsRejectsEmptyTail(t *testing.T) {
	if _, _, _, _, ok := parseMatchArgs([]string{"nat.dk", "--"}); ok {
		t.Fatal("expected ok=false when nothing follows --")
	}
}

func TestParseServeArgsDefaultsConfigPath(t *testing.T) {
	cfgPath, files, ok := parseServeArgs([]string{"nat.dk"})
	if !ok {
		t.Fatal("expected ok")
	}
	if cfgPath != "dkcheck.yaml" {
		t.Errorf("cfgPath = %q, want default", cfgPath)
	}
	if len(files) != 1 || files[0] != "nat.dk" {
		t.Errorf("files = %v", files)
	}
}

func TestParseServeArgsExplicitConfig(t *testing.T) {
	cfgPath, files, ok := parseServeArgs([]string{"-c", "custom.yaml", "nat.dk", "peano.dk"})
	if !ok {
		t.Fatal("expected ok")
	}
	if cfgPath != "custom.yaml" {
		t.Errorf("cfgPath = %q", cfgPath)
	}
	if len(files) != 2 {
		t.Errorf("files = %v", files)
	}
}
