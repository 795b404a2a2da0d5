package parser

import "github.com/firewall2142/dedukti/internal/pipeline"

// Processor runs the parser over ctx.Source and stores the resulting
// *ast.Program, recording every ParseError as a pipeline diagnostic rather
// than stopping the pipeline (mirrors the teacher's ParserProcessor).
type Processor struct{}

func (Processor) Process(ctx *pipeline.Context) *pipeline.Context {
	p := FromString(ctx.Source)
	ctx.Program = p.ParseProgram(ctx.Path)
	for _, err := range p.Errors() {
		ctx.AddDiagnostic("parse", err.Message, err.Line, err.Column)
	}
	return ctx
}
