package main

import (
	"fmt"
	"net"
	"os"

	"github.com/dustin/go-humanize"
	"google.golang.org/grpc"

	"github.com/firewall2142/dedukti/internal/cache"
	"github.com/firewall2142/dedukti/internal/rpc"
	"github.com/firewall2142/dedukti/pkg/api"
)

// runServe implements `dkcheck serve [-c dkcheck.yaml] <rule-file>...`: it
// opens the compiled-file cache, compiles the given rule files into one
// signature through it (api.NewWithCache decodes an unchanged file's AST
// from the cache instead of re-parsing it, and stores a fresh one after a
// clean compile), and starts the dkcheck.Matcher gRPC service.
func runServe(args []string) int {
	cfgPath, files, ok := parseServeArgs(args)
	if !ok {
		fmt.Fprintln(os.Stderr, "usage: dkcheck serve [-c <config.yaml>] <rule-file>...")
		return 2
	}

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	if len(files) == 0 {
		files = cfg.Rules
	}
	if len(files) == 0 {
		fmt.Fprintln(os.Stderr, "dkcheck serve: no rule files given (pass on the command line or via `rules:` in dkcheck.yaml)")
		return 2
	}

	c, err := cache.Open(cfg.CachePath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "dkcheck: opening cache:", err)
		return 2
	}
	defer c.Close()

	eng, err := api.NewWithCache(c, files...)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	if n, err := c.Size(); err == nil {
		fi, statErr := os.Stat(cfg.CachePath)
		size := "0 B"
		if statErr == nil {
			size = humanize.Bytes(uint64(fi.Size()))
		}
		fmt.Fprintf(os.Stderr, "dkcheck: cache %s (%d entries, %s)\n", cfg.CachePath, n, size)
	}

	schema, err := rpc.ParseSchema()
	if err != nil {
		fmt.Fprintln(os.Stderr, "dkcheck: parsing embedded proto schema:", err)
		return 2
	}

	lis, err := net.Listen("tcp", cfg.ServeAddr)
	if err != nil {
		fmt.Fprintln(os.Stderr, "dkcheck: listen:", err)
		return 2
	}

	srv := rpc.NewServer(schema, eng.Signature())
	gs := grpc.NewServer()
	srv.Register(gs)

	fmt.Fprintf(os.Stderr, "dkcheck: serving %d symbol(s) on %s\n", len(eng.Symbols()), cfg.ServeAddr)
	if err := gs.Serve(lis); err != nil {
		fmt.Fprintln(os.Stderr, "dkcheck: serve:", err)
		return 1
	}
	return 0
}

func parseServeArgs(args []string) (cfgPath string, files []string, ok bool) {
	cfgPath = "dkcheck.yaml"
	for i := 0; i < len(args); i++ {
		if args[i] == "-c" {
			if i+1 >= len(args) {
				return "", nil, false
			}
			cfgPath = args[i+1]
			i++
			continue
		}
		files = append(files, args[i])
	}
	return cfgPath, files, true
}
