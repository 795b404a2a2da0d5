// Command dkcheck is the reference CLI and gRPC server for the AC/Miller
// matching kernel (SPEC_FULL.md sections 10-11): `dkcheck match` runs one
// query against a compiled signature and exits with a grep-style status
// code, `dkcheck serve` exposes the same signature over the dkcheck.Matcher
// gRPC service for remote callers.
package main

import (
	"fmt"
	"os"

	"github.com/firewall2142/dedukti/internal/config"
)

func usage() {
	fmt.Fprintf(os.Stderr, `dkcheck %s - AC/Miller pattern matching kernel

Usage:
  dkcheck match [-v] <rule-file>... -- <symbol> <arg>...
  dkcheck serve [-c <config.yaml>] <rule-file>...
  dkcheck -help

match exits 0 on a match, 1 on no match, 2 on a usage or compile error.
`, config.Version)
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "match":
		os.Exit(runMatch(os.Args[2:]))
	case "serve":
		os.Exit(runServe(os.Args[2:]))
	case "-help", "--help", "help":
		usage()
	case "-version", "--version", "version":
		fmt.Println(config.Version)
	default:
		usage()
		os.Exit(2)
	}
}
