package rpc

import (
	"context"
	"fmt"
	"os"

	"github.com/jhump/protoreflect/dynamic"
	"google.golang.org/grpc"

	"github.com/firewall2142/dedukti/internal/acmatch"
	"github.com/firewall2142/dedukti/internal/signature"
	"github.com/firewall2142/dedukti/internal/term"
)

// Server implements the dkcheck.Matcher gRPC service by trying, in
// declaration order, every rule attached to the requested symbol
// (signature.Signature.Whnf's own dispatch discipline) and reporting
// whichever one fires, or matched=false if none does.
type Server struct {
	schema *Schema
	sig    *signature.Signature
}

func NewServer(schema *Schema, sig *signature.Signature) *Server {
	return &Server{schema: schema, sig: sig}
}

// ServiceDesc builds the grpc.ServiceDesc for dynamic registration,
// mirroring the teacher's builtinGrpcRegister: one grpc.MethodDesc per
// proto method, backed by a closure over the dynamic descriptors rather
// than a generated handler.
func (s *Server) ServiceDesc() *grpc.ServiceDesc {
	return &grpc.ServiceDesc{
		ServiceName: s.schema.MatcherService.GetFullyQualifiedName(),
		HandlerType: (*interface{})(nil),
		Metadata:    s.schema.File.GetName(),
		Methods: []grpc.MethodDesc{
			{
				MethodName: "Solve",
				Handler: func(srv interface{}, ctx context.Context, dec func(interface{}) error, _ grpc.UnaryServerInterceptor) (interface{}, error) {
					server := srv.(*Server)
					reqMsg := dynamic.NewMessage(server.schema.MatchRequest)
					if err := dec(reqMsg); err != nil {
						return nil, err
					}
					return server.handleSolve(reqMsg)
				},
			},
		},
	}
}

// Register attaches this server's ServiceDesc to an existing grpc.Server.
func (s *Server) Register(gs *grpc.Server) {
	gs.RegisterService(s.ServiceDesc(), s)
}

func (s *Server) handleSolve(req *dynamic.Message) (*dynamic.Message, error) {
	trace := acmatch.NewTrace()
	resp := dynamic.NewMessage(s.schema.MatchResponse)

	symbolName, _ := req.GetFieldByName("rule_symbol").(string)
	fmt.Fprintf(os.Stderr, "[rpc %s] Solve %s\n", trace, symbolName)
	sym, err := s.sig.MustLookup(symbolName)
	if err != nil {
		resp.SetFieldByName("matched", false)
		resp.SetFieldByName("error", err.Error())
		return resp, nil
	}

	argMsgs, _ := req.GetRepeatedFieldByName("args").([]interface{})
	if len(argMsgs) != sym.Arity {
		resp.SetFieldByName("matched", false)
		resp.SetFieldByName("error", fmt.Sprintf("%s expects %d argument(s), got %d", symbolName, sym.Arity, len(argMsgs)))
		return resp, nil
	}

	args := make([]term.Term, 0, len(argMsgs))
	for _, raw := range argMsgs {
		termMsg, ok := raw.(*dynamic.Message)
		if !ok {
			resp.SetFieldByName("matched", false)
			resp.SetFieldByName("error", "malformed Term in args")
			return resp, nil
		}
		t, err := DecodeTerm(termMsg)
		if err != nil {
			resp.SetFieldByName("matched", false)
			resp.SetFieldByName("error", err.Error())
			return resp, nil
		}
		args = append(args, t)
	}

	result, matched := s.tryRules(sym, args)
	resp.SetFieldByName("matched", matched)
	if !matched {
		fmt.Fprintf(os.Stderr, "[rpc %s] no rule matched\n", trace)
		resp.SetFieldByName("error", "no rule matched")
		return resp, nil
	}
	fmt.Fprintf(os.Stderr, "[rpc %s] matched -> %s\n", trace, result)
	termMsg := EncodeTerm(s.schema.TermMessage, result)
	if err := resp.AddRepeatedFieldByName("substitution", termMsg); err != nil {
		return nil, err
	}
	return resp, nil
}

// tryRules attempts sym's compiled rules in declaration order, the same
// dispatch discipline signature.Signature.Whnf uses internally, and
// returns the first one's instantiated right-hand side.
func (s *Server) tryRules(sym *signature.Symbol, args []term.Term) (term.Term, bool) {
	for _, rule := range sym.Rules {
		if result, ok := rule.Try(s.sig, args); ok {
			return result, true
		}
	}
	return nil, false
}
