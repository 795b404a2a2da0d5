package rpc

import (
	"github.com/jhump/protoreflect/desc"
	"github.com/jhump/protoreflect/dynamic"

	"github.com/firewall2142/dedukti/internal/parser"
	"github.com/firewall2142/dedukti/internal/rulecompiler"
	"github.com/firewall2142/dedukti/internal/term"
)

// EncodeTerm renders t using the engine's own printer format (term.Term's
// String method), wrapped as a dynamic Term message.
func EncodeTerm(md *desc.MessageDescriptor, t term.Term) *dynamic.Message {
	msg := dynamic.NewMessage(md)
	msg.SetFieldByName("encoded", t.String())
	return msg
}

// DecodeTerm parses a Term message's encoded field back into a ground
// term.Term, reusing the surface-syntax parser and rulecompiler's
// variable-free instantiation (no pattern variables occur in a query
// term sent over the wire).
func DecodeTerm(msg *dynamic.Message) (term.Term, error) {
	encoded, _ := msg.GetFieldByName("encoded").(string)
	astTerm, err := parser.ParseTermString(encoded)
	if err != nil {
		return nil, err
	}
	return rulecompiler.Instantiate(astTerm, nil, nil), nil
}
