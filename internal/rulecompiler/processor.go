package rulecompiler

import (
	"github.com/firewall2142/dedukti/internal/ast"
	"github.com/firewall2142/dedukti/internal/pipeline"
	"github.com/firewall2142/dedukti/internal/signature"
)

// CompileProcessor turns ctx.Program's declarations into a populated
// *signature.Signature: it declares every symbol in source order (so a
// `def` always precedes the `ac`/`acu`/rule declarations that refer to
// it, matching the surface grammar), then compiles each rule against the
// signature being built. Any error is recorded as a "compile" diagnostic
// and its declaration is skipped rather than aborting the whole run, the
// same continue-past-errors discipline as the lex and parse stages.
type CompileProcessor struct{}

func (CompileProcessor) Process(ctx *pipeline.Context) *pipeline.Context {
	sg := ctx.Sig
	if sg == nil {
		sg = signature.New()
		ctx.Sig = sg
	}
	if ctx.Program == nil {
		return ctx
	}

	for _, decl := range ctx.Program.Decls {
		if err := processDecl(sg, decl); err != nil {
			ctx.AddDiagnostic("compile", err.Error(), declLine(decl), declColumn(decl))
		}
	}
	return ctx
}

func processDecl(sg *signature.Signature, decl ast.Decl) error {
	switch d := decl.(type) {
	case *ast.DefDecl:
		_, err := sg.Declare(d.Name, d.Arity())
		return err

	case *ast.ACDecl:
		return sg.MarkAC(d.Name)

	case *ast.ACUDecl:
		neutral := Instantiate(d.Neutral, nil, nil)
		return sg.MarkACU(d.Name, neutral)

	case *ast.RuleDecl:
		name, _, ok := lhsHeadAndArgs(d.LHS)
		if !ok {
			return newCompileError(d.LHS.String(), "left-hand side must apply a declared symbol")
		}
		rule, err := Compile(d, sg)
		if err != nil {
			return err
		}
		return sg.AddRule(name, rule)

	default:
		return nil
	}
}

// declLine and declColumn recover a declaration's source position for
// diagnostics; ast.Decl only guarantees TokenLiteral, so this switches on
// the concrete type to reach the underlying token.Token.
func declLine(decl ast.Decl) int {
	switch d := decl.(type) {
	case *ast.DefDecl:
		return d.Token.Line
	case *ast.ACDecl:
		return d.Token.Line
	case *ast.ACUDecl:
		return d.Token.Line
	case *ast.RuleDecl:
		return d.Token.Line
	default:
		return 0
	}
}

func declColumn(decl ast.Decl) int {
	switch d := decl.(type) {
	case *ast.DefDecl:
		return d.Token.Column
	case *ast.ACDecl:
		return d.Token.Column
	case *ast.ACUDecl:
		return d.Token.Column
	case *ast.RuleDecl:
		return d.Token.Column
	default:
		return 0
	}
}
