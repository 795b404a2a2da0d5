package lexer

import (
	"testing"

	"github.com/firewall2142/dedukti/internal/token"
)

func TestNextTokenCoversDeclarationAndRule(t *testing.T) {
	input := `def plus : Nat -> Nat -> Nat.
ac plus. -- declares plus AC
[x] plus x, zero --> x.`

	want := []token.Type{
		token.DEF, token.IDENT, token.COLON, token.IDENT, token.TYPE_ARROW,
		token.IDENT, token.TYPE_ARROW, token.IDENT, token.DOT,
		token.AC, token.IDENT, token.DOT,
		token.LBRACKET, token.IDENT, token.RBRACKET, token.IDENT, token.IDENT,
		token.COMMA, token.IDENT, token.RULE_ARROW, token.IDENT, token.DOT,
		token.EOF,
	}

	l := New(input)
	for i, wantType := range want {
		tok := l.NextToken()
		if tok.Type != wantType {
			t.Fatalf("token %d: got %s (%q), want %s", i, tok.Type, tok.Lexeme, wantType)
		}
	}
}

func TestLineCommentIsSkipped(t *testing.T) {
	l := New("-- just a comment\ndef")
	tok := l.NextToken()
	if tok.Type != token.DEF {
		t.Fatalf("got %s, want DEF", tok.Type)
	}
}

func TestRuleArrowNotConfusedWithComment(t *testing.T) {
	l := New("-->")
	tok := l.NextToken()
	if tok.Type != token.RULE_ARROW {
		t.Fatalf("got %s, want RULE_ARROW", tok.Type)
	}
	if l.NextToken().Type != token.EOF {
		t.Fatal("expected EOF after the arrow")
	}
}
