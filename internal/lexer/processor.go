package lexer

import (
	"github.com/firewall2142/dedukti/internal/pipeline"
	"github.com/firewall2142/dedukti/internal/token"
)

// Processor scans ctx.Source into ctx.Tokens, for diagnostics tooling; no
// dkcheck command runs it — internal/parser.Processor lexes its own input
// independently, so a lex error here never blocks parsing.
type Processor struct{}

func (Processor) Process(ctx *pipeline.Context) *pipeline.Context {
	l := New(ctx.Source)
	var toks []token.Token
	for {
		tok := l.NextToken()
		toks = append(toks, tok)
		if tok.Type == token.EOF {
			break
		}
		if tok.Type == token.ILLEGAL {
			ctx.AddDiagnostic("lex", "illegal character: "+tok.Lexeme, tok.Line, tok.Column)
		}
	}
	ctx.Tokens = toks
	return ctx
}
