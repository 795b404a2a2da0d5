// Package api is a small embeddable facade over the matching engine
// (SPEC_FULL.md section 11), grounded on the teacher's pkg/embed intent of
// wrapping the pipeline behind a handful of host-friendly methods instead
// of requiring a caller to wire internal/pipeline, internal/parser and
// internal/rulecompiler itself.
package api

import (
	"fmt"
	"os"
	"time"

	"github.com/firewall2142/dedukti/internal/ast"
	"github.com/firewall2142/dedukti/internal/cache"
	"github.com/firewall2142/dedukti/internal/parser"
	"github.com/firewall2142/dedukti/internal/pipeline"
	"github.com/firewall2142/dedukti/internal/rulecompiler"
	"github.com/firewall2142/dedukti/internal/signature"
	"github.com/firewall2142/dedukti/internal/term"
)

// Engine is a compiled signature ready to match queries against.
type Engine struct {
	sig *signature.Signature
}

// Result is the outcome of one Match call.
type Result struct {
	Matched bool
	Term    term.Term
}

func (r *Result) String() string {
	if !r.Matched {
		return "no match"
	}
	return r.Term.String()
}

// New reads and compiles every source path in order into one shared
// signature, so a later file's rules can reference an earlier file's
// declarations. It returns every diagnostic raised across all of them as
// a single error. It does not consult a cache — use NewWithCache for that.
func New(sourcePaths ...string) (*Engine, error) {
	return newEngine(nil, sourcePaths)
}

// NewWithCache is New, but consults c before parsing each file and
// populates it after a clean compile (SPEC_FULL.md section 9): on a hash
// hit for a file's whole source text, the cached *ast.Program is decoded
// straight into the pipeline and parser.Processor never runs for that
// file. rulecompiler.CompileProcessor still runs unconditionally, since
// the signature.Rule.Try closures it builds are never themselves cached.
func NewWithCache(c *cache.Cache, sourcePaths ...string) (*Engine, error) {
	return newEngine(c, sourcePaths)
}

// NewFromSource compiles a single in-memory source string, for hosts that
// assemble their rule text programmatically instead of from files.
func NewFromSource(name, source string) (*Engine, error) {
	sig := signature.New()
	if errs := compileInto(sig, nil, name, source); len(errs) != 0 {
		return nil, fmt.Errorf("api: %d diagnostic(s):\n%s", len(errs), joinLines(errs))
	}
	return &Engine{sig: sig}, nil
}

func newEngine(c *cache.Cache, sourcePaths []string) (*Engine, error) {
	sig := signature.New()
	var allErrs []string
	for _, path := range sourcePaths {
		src, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("api: read %s: %w", path, err)
		}
		if errs := compileInto(sig, c, path, string(src)); len(errs) != 0 {
			allErrs = append(allErrs, errs...)
		}
	}
	if len(allErrs) != 0 {
		return nil, fmt.Errorf("api: %d diagnostic(s) across %d source(s):\n%s",
			len(allErrs), len(sourcePaths), joinLines(allErrs))
	}
	return &Engine{sig: sig}, nil
}

func compileInto(sig *signature.Signature, c *cache.Cache, path, source string) []string {
	ctx := pipeline.NewContext(path, source)
	ctx.Sig = sig

	hash := cache.HashSource(source)
	cacheHit := false
	if c != nil {
		if prog, ok := lookupCachedProgram(c, hash); ok {
			ctx.Program = prog
			cacheHit = true
		}
	}

	stages := []pipeline.Processor{rulecompiler.CompileProcessor{}}
	if !cacheHit {
		stages = append([]pipeline.Processor{parser.Processor{}}, stages...)
	}
	ctx = pipeline.New(stages...).Run(ctx)

	if c != nil && !cacheHit && ctx.Program != nil && !ctx.HasErrors() {
		storeCachedProgram(c, hash, path, ctx.Program)
	}

	errs := make([]string, 0, len(ctx.Diagnostics))
	for _, d := range ctx.Diagnostics {
		errs = append(errs, d.String())
	}
	return errs
}

// lookupCachedProgram consults c for hash, decoding its stored *ast.Program
// on a hit. A malformed or unreadable entry is treated as a miss rather
// than an error — falling back to a real parse is always safe.
func lookupCachedProgram(c *cache.Cache, hash string) (*ast.Program, bool) {
	rec, ok, err := c.Lookup(hash)
	if err != nil || !ok {
		return nil, false
	}
	prog, err := cache.DecodeProgram(rec.PreMatchingProblem)
	if err != nil {
		return nil, false
	}
	return prog, true
}

// storeCachedProgram persists prog under hash. A store failure is not
// fatal to the compile that produced it — only the cache's usefulness on
// the next run is at stake — so it is silently skipped.
func storeCachedProgram(c *cache.Cache, hash, path string, prog *ast.Program) {
	data, err := cache.EncodeProgram(prog)
	if err != nil {
		return
	}
	_ = c.Store(cache.Record{
		Hash:               hash,
		Symbol:             path,
		Arity:              len(prog.Decls),
		ACFlavour:          cache.FileFlavour,
		PreMatchingProblem: data,
		CompiledAt:         time.Now(),
	})
}

func joinLines(lines []string) string {
	out := ""
	for i, l := range lines {
		if i > 0 {
			out += "\n"
		}
		out += l
	}
	return out
}

// Match parses each of args as a ground term and tries symbol's compiled
// rules, in declaration order, against them — the same dispatch a
// Whnf-driven rewrite would perform one layer deep.
func (e *Engine) Match(symbol string, args ...string) (*Result, error) {
	sym, err := e.sig.MustLookup(symbol)
	if err != nil {
		return nil, err
	}
	if len(args) != sym.Arity {
		return nil, signature.NewArityMismatchError(symbol, sym.Arity, len(args))
	}

	parsed := make([]term.Term, len(args))
	for i, a := range args {
		astTerm, err := parser.ParseTermString(a)
		if err != nil {
			return nil, fmt.Errorf("api: argument %d: %w", i, err)
		}
		parsed[i] = rulecompiler.Instantiate(astTerm, nil, nil)
	}

	for _, rule := range sym.Rules {
		if result, ok := rule.Try(e.sig, parsed); ok {
			return &Result{Matched: true, Term: result}, nil
		}
	}
	return &Result{Matched: false}, nil
}

// Normalize reduces a ground term to strong normal form against this
// engine's signature — the full Snf, not just one rule's dispatch.
func (e *Engine) Normalize(src string) (term.Term, error) {
	astTerm, err := parser.ParseTermString(src)
	if err != nil {
		return nil, err
	}
	return e.sig.Snf(rulecompiler.Instantiate(astTerm, nil, nil)), nil
}

// Symbols lists every declared symbol name, for host-side introspection.
func (e *Engine) Symbols() []string {
	return e.sig.Symbols()
}

// Signature exposes the compiled signature directly, for hosts that need
// to hand it to a lower-level collaborator (internal/rpc.NewServer, a
// second rulecompiler.CompileProcessor pass over more source) instead of
// going through Match/Normalize.
func (e *Engine) Signature() *signature.Signature {
	return e.sig
}
