package main

import (
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"

	"github.com/firewall2142/dedukti/pkg/api"
)

// runMatch implements `dkcheck match <rule-file>... -- <symbol> <arg>...`:
// compile every rule file into one engine, then try symbol's rules against
// the given ground-term arguments. Exit status mirrors grep's convention —
// 0 on a match, 1 on no match, 2 on a usage/compile error — so the command
// composes in shell pipelines.
func runMatch(args []string) int {
	files, symbol, termArgs, verbose, ok := parseMatchArgs(args)
	if !ok {
		fmt.Fprintln(os.Stderr, "usage: dkcheck match [-v] <rule-file>... -- <symbol> <arg>...")
		return 2
	}

	start := time.Now()
	eng, err := api.New(files...)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	res, err := eng.Match(symbol, termArgs...)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	printMatchResult(res, symbol, termArgs)
	if verbose {
		fmt.Fprintf(os.Stderr, "dkcheck: %d symbol(s) loaded, solved %s\n",
			len(eng.Symbols()), humanize.RelTime(start, time.Now(), "", "ago"))
	}

	if !res.Matched {
		return 1
	}
	return 0
}

// parseMatchArgs splits argv at the "--" separator: everything before it is
// rule-source file paths, everything after is "<symbol> <arg>...".
func parseMatchArgs(args []string) (files []string, symbol string, termArgs []string, verbose bool, ok bool) {
	sep := -1
	for i, a := range args {
		if a == "-v" {
			verbose = true
			continue
		}
		if a == "--" {
			sep = i
			break
		}
		files = append(files, a)
	}
	if sep == -1 || sep+1 >= len(args) {
		return nil, "", nil, false, false
	}
	rest := args[sep+1:]
	symbol = rest[0]
	termArgs = rest[1:]
	return files, symbol, termArgs, verbose, true
}

func printMatchResult(res *api.Result, symbol string, args []string) {
	color := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	label := "NO MATCH"
	code := "31" // red
	if res.Matched {
		label = "MATCHED"
		code = "32" // green
	}
	if color {
		fmt.Printf("\033[%sm%s\033[0m  %s(%s) -> %s\n", code, label, symbol, joinArgs(args), res)
		return
	}
	fmt.Printf("%s  %s(%s) -> %s\n", label, symbol, joinArgs(args), res)
}

func joinArgs(args []string) string {
	out := ""
	for i, a := range args {
		if i > 0 {
			out += ", "
		}
		out += a
	}
	return out
}
