// Package pipeline threads a source file through lex -> parse -> compile
// as a sequence of Processor stages sharing one Context, grounded on the
// teacher's Pipeline/Processor pair. Each stage continues past its own
// errors (appending to Context.Diagnostics) so dkcheck can report every
// stage's diagnostics from one run instead of stopping at the first.
package pipeline

import (
	"fmt"

	"github.com/firewall2142/dedukti/internal/ast"
	"github.com/firewall2142/dedukti/internal/signature"
	"github.com/firewall2142/dedukti/internal/token"
)

// Diagnostic is one reported problem, tagged with the stage that found it.
type Diagnostic struct {
	Stage   string
	Message string
	Line    int
	Column  int
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s:%d:%d: %s", d.Stage, d.Line, d.Column, d.Message)
}

// Context is the mutable state threaded through every stage.
type Context struct {
	Path   string
	Source string

	Tokens  []token.Token
	Program *ast.Program
	Sig     *signature.Signature

	Diagnostics []Diagnostic
}

func NewContext(path, source string) *Context {
	return &Context{Path: path, Source: source}
}

// AddDiagnostic appends one diagnostic tagged with stage.
func (c *Context) AddDiagnostic(stage, message string, line, column int) {
	c.Diagnostics = append(c.Diagnostics, Diagnostic{Stage: stage, Message: message, Line: line, Column: column})
}

// HasErrors reports whether any stage has recorded a diagnostic.
func (c *Context) HasErrors() bool { return len(c.Diagnostics) > 0 }

// Processor is one pipeline stage.
type Processor interface {
	Process(ctx *Context) *Context
}

// Pipeline is an ordered sequence of stages.
type Pipeline struct {
	processors []Processor
}

func New(processors ...Processor) *Pipeline {
	return &Pipeline{processors: processors}
}

// Run executes every stage in order, always continuing to the next stage
// even if the current one added diagnostics.
func (p *Pipeline) Run(initialCtx *Context) *Context {
	ctx := initialCtx
	for _, processor := range p.processors {
		ctx = processor.Process(ctx)
	}
	return ctx
}
