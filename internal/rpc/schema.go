// Package rpc exposes the matching engine over gRPC using dynamically
// parsed proto descriptors (SPEC_FULL.md section 10), the same
// parse-at-startup, no-protoc-step technique as the teacher's
// internal/evaluator/builtins_grpc.go: a .proto schema is embedded as a
// string constant, parsed once with protoparse, and every request/response
// is a dynamic.Message built against the resulting descriptors rather than
// a generated Go struct.
package rpc

import (
	"fmt"

	"github.com/jhump/protoreflect/desc"
	"github.com/jhump/protoreflect/desc/protoparse"
)

const schemaFileName = "dkcheck.proto"

const schemaSource = `
syntax = "proto3";
package dkcheck;

message Term {
  string encoded = 1;
}

message MatchRequest {
  string rule_symbol = 1;
  repeated Term args = 2;
}

message MatchResponse {
  bool matched = 1;
  repeated Term substitution = 2;
  string error = 3;
}

service Matcher {
  rpc Solve(MatchRequest) returns (MatchResponse);
}
`

// Schema is the parsed form of schemaSource. Each ParseSchema call parses
// it afresh; a Server uses whichever Schema it was constructed with.
type Schema struct {
	File            *desc.FileDescriptor
	MatchRequest    *desc.MessageDescriptor
	MatchResponse   *desc.MessageDescriptor
	TermMessage     *desc.MessageDescriptor
	MatcherService  *desc.ServiceDescriptor
	SolveMethod     *desc.MethodDescriptor
}

// ParseSchema parses the embedded .proto text into descriptors. It is
// exported (rather than computed once into a package var) so a failing
// parse surfaces as a normal error to cmd/dkcheck instead of a panic at
// import time.
func ParseSchema() (*Schema, error) {
	parser := protoparse.Parser{
		Accessor: protoparse.FileContentsFromMap(map[string]string{schemaFileName: schemaSource}),
	}
	fds, err := parser.ParseFiles(schemaFileName)
	if err != nil {
		return nil, fmt.Errorf("rpc: parse embedded schema: %w", err)
	}
	file := fds[0]

	matcher := file.FindService("dkcheck.Matcher")
	if matcher == nil {
		return nil, fmt.Errorf("rpc: embedded schema missing service dkcheck.Matcher")
	}
	solve := matcher.FindMethodByName("Solve")
	if solve == nil {
		return nil, fmt.Errorf("rpc: embedded schema missing method Solve")
	}

	return &Schema{
		File:           file,
		MatchRequest:   file.FindMessage("dkcheck.MatchRequest"),
		MatchResponse:  file.FindMessage("dkcheck.MatchResponse"),
		TermMessage:    file.FindMessage("dkcheck.Term"),
		MatcherService: matcher,
		SolveMethod:    solve,
	}, nil
}
