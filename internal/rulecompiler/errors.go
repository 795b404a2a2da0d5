package rulecompiler

import "fmt"

// CompileError reports a malformed rule the reference compiler cannot
// turn into a matching problem (SPEC_FULL.md section 6: "a minimal
// reference compiler, not a decision-tree discriminator net").
type CompileError struct {
	Rule    string
	Message string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("rule %q: %s", e.Rule, e.Message)
}

func newCompileError(rule, format string, args ...interface{}) *CompileError {
	return &CompileError{Rule: rule, Message: fmt.Sprintf(format, args...)}
}
