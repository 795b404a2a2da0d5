// Package parser is a small recursive-descent parser for the surface
// syntax of SPEC_FULL.md section 7, grounded on the teacher's
// lexer-feeds-parser structure (a cur/peek token pair, nextToken
// advancing both, parseXxx per construct) but sized to the much smaller
// grammar:
//
//	program  := decl*
//	decl     := defDecl | acDecl | acuDecl | ruleDecl
//	defDecl  := "def" IDENT ":" typeExpr "."
//	acDecl   := "ac" IDENT "."
//	acuDecl  := "acu" IDENT "," atom "."
//	ruleDecl := ("[" IDENT ("," IDENT)* "]")? term "-->" term "."
//	typeExpr := IDENT ("->" typeExpr)?
//	term     := atom atom*
//	atom     := IDENT | "(" term ")"
//
// An AC symbol's two arguments are written as plain juxtaposition like any
// other application (`plus x y`, not `plus(x, y)`); internal/rulecompiler
// is the one that treats a head AC symbol's spine specially.
package parser

import (
	"fmt"

	"github.com/firewall2142/dedukti/internal/ast"
	"github.com/firewall2142/dedukti/internal/lexer"
	"github.com/firewall2142/dedukti/internal/token"
)

// ParseError is one syntax error, positioned for diagnostics.
type ParseError struct {
	Line    int
	Column  int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Column, e.Message)
}

type Parser struct {
	l      *lexer.Lexer
	cur    token.Token
	peek   token.Token
	errors []*ParseError
}

func New(l *lexer.Lexer) *Parser {
	p := &Parser{l: l}
	p.nextToken()
	p.nextToken()
	return p
}

func FromString(src string) *Parser {
	return New(lexer.New(src))
}

func (p *Parser) Errors() []*ParseError { return p.errors }

// ParseTermString parses a single standalone term (no declaration syntax
// around it), for callers outside the rule-file pipeline: a query term
// given on the dkcheck command line or received over internal/rpc.
func ParseTermString(src string) (ast.Term, error) {
	p := FromString(src)
	t := p.parseTerm()
	if errs := p.Errors(); len(errs) != 0 {
		return nil, errs[0]
	}
	if p.cur.Type != token.EOF {
		return nil, &ParseError{Line: p.cur.Line, Column: p.cur.Column, Message: "unexpected trailing input after term"}
	}
	return t, nil
}

func (p *Parser) nextToken() {
	p.cur = p.peek
	p.peek = p.l.NextToken()
}

func (p *Parser) errorf(format string, args ...interface{}) {
	p.errors = append(p.errors, &ParseError{Line: p.cur.Line, Column: p.cur.Column, Message: fmt.Sprintf(format, args...)})
}

func (p *Parser) expect(t token.Type) bool {
	if p.cur.Type != t {
		p.errorf("expected %s, got %s (%q)", t, p.cur.Type, p.cur.Lexeme)
		return false
	}
	p.nextToken()
	return true
}

// ParseProgram consumes the whole input, collecting declarations and
// recovering at the next "." after a syntax error so one mistake doesn't
// hide every diagnostic after it.
func (p *Parser) ParseProgram(file string) *ast.Program {
	prog := &ast.Program{File: file}
	for p.cur.Type != token.EOF {
		start := len(p.errors)
		decl := p.parseDecl()
		if len(p.errors) == start && decl != nil {
			prog.Decls = append(prog.Decls, decl)
			continue
		}
		p.recoverToNextDot()
	}
	return prog
}

func (p *Parser) recoverToNextDot() {
	for p.cur.Type != token.DOT && p.cur.Type != token.EOF {
		p.nextToken()
	}
	if p.cur.Type == token.DOT {
		p.nextToken()
	}
}

func (p *Parser) parseDecl() ast.Decl {
	switch p.cur.Type {
	case token.DEF:
		return p.parseDefDecl()
	case token.AC:
		return p.parseACDecl()
	case token.ACU:
		return p.parseACUDecl()
	case token.LBRACKET, token.IDENT:
		return p.parseRuleDecl()
	default:
		p.errorf("unexpected token %s (%q) at top level", p.cur.Type, p.cur.Lexeme)
		return nil
	}
}

func (p *Parser) parseDefDecl() *ast.DefDecl {
	tok := p.cur
	p.nextToken() // consume 'def'
	if p.cur.Type != token.IDENT {
		p.errorf("expected symbol name after 'def', got %s", p.cur.Type)
		return nil
	}
	name := p.cur.Lexeme
	p.nextToken()
	if !p.expect(token.COLON) {
		return nil
	}
	typ := p.parseTypeExpr()
	if typ == nil {
		return nil
	}
	if !p.expect(token.DOT) {
		return nil
	}
	return &ast.DefDecl{Token: tok, Name: name, Type: typ}
}

func (p *Parser) parseTypeExpr() ast.TypeExpr {
	if p.cur.Type != token.IDENT {
		p.errorf("expected a type name, got %s", p.cur.Type)
		return nil
	}
	base := &ast.TypeName{Token: p.cur, Name: p.cur.Lexeme}
	p.nextToken()
	if p.cur.Type != token.TYPE_ARROW {
		return base
	}
	arrowTok := p.cur
	p.nextToken()
	result := p.parseTypeExpr()
	if result == nil {
		return nil
	}
	return &ast.TypeArrow{Token: arrowTok, Param: base, Result: result}
}

func (p *Parser) parseACDecl() *ast.ACDecl {
	tok := p.cur
	p.nextToken() // consume 'ac'
	if p.cur.Type != token.IDENT {
		p.errorf("expected symbol name after 'ac', got %s", p.cur.Type)
		return nil
	}
	name := p.cur.Lexeme
	p.nextToken()
	if !p.expect(token.DOT) {
		return nil
	}
	return &ast.ACDecl{Token: tok, Name: name}
}

func (p *Parser) parseACUDecl() *ast.ACUDecl {
	tok := p.cur
	p.nextToken() // consume 'acu'
	if p.cur.Type != token.IDENT {
		p.errorf("expected symbol name after 'acu', got %s", p.cur.Type)
		return nil
	}
	name := p.cur.Lexeme
	p.nextToken()
	if !p.expect(token.COMMA) {
		return nil
	}
	neutral := p.parseAtom()
	if neutral == nil {
		return nil
	}
	if !p.expect(token.DOT) {
		return nil
	}
	return &ast.ACUDecl{Token: tok, Name: name, Neutral: neutral}
}

func (p *Parser) parseRuleDecl() *ast.RuleDecl {
	tok := p.cur
	var vars []string
	if p.cur.Type == token.LBRACKET {
		p.nextToken()
		for {
			if p.cur.Type != token.IDENT {
				p.errorf("expected a pattern variable name, got %s", p.cur.Type)
				return nil
			}
			vars = append(vars, p.cur.Lexeme)
			p.nextToken()
			if p.cur.Type != token.COMMA {
				break
			}
			p.nextToken()
		}
		if !p.expect(token.RBRACKET) {
			return nil
		}
	}
	lhs := p.parseTerm()
	if lhs == nil {
		return nil
	}
	if !p.expect(token.RULE_ARROW) {
		return nil
	}
	rhs := p.parseTerm()
	if rhs == nil {
		return nil
	}
	if !p.expect(token.DOT) {
		return nil
	}
	return &ast.RuleDecl{Token: tok, Vars: vars, LHS: lhs, RHS: rhs}
}

// parseTerm reads an application spine: an atom followed by zero or more
// further atoms, e.g. `plus x y` is one Apply node with Head=plus and
// Args=[x, y]; internal/ast.Apply models plain juxtaposition only, leaving
// AC-spine recognition to internal/rulecompiler.
func (p *Parser) parseTerm() ast.Term {
	headTok := p.cur
	head := p.parseAtom()
	if head == nil {
		return nil
	}
	var args []ast.Term
	for p.cur.Type == token.IDENT || p.cur.Type == token.LPAREN {
		arg := p.parseAtom()
		if arg == nil {
			return nil
		}
		args = append(args, arg)
	}
	if len(args) == 0 {
		return head
	}
	return &ast.Apply{Token: headTok, Head: head, Args: args}
}

func (p *Parser) parseAtom() ast.Term {
	switch p.cur.Type {
	case token.IDENT:
		id := &ast.Ident{Token: p.cur, Name: p.cur.Lexeme}
		p.nextToken()
		return id
	case token.LPAREN:
		p.nextToken()
		inner := p.parseTerm()
		if inner == nil {
			return nil
		}
		if !p.expect(token.RPAREN) {
			return nil
		}
		return inner
	default:
		p.errorf("expected a term, got %s (%q)", p.cur.Type, p.cur.Lexeme)
		return nil
	}
}
