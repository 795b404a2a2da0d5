// Package term implements the term representation consumed by the matching
// engine in internal/acmatch. The engine treats terms opaquely except
// through the operations in this package (AddNLambdas, AppList, ApplySubst,
// Shift, Unshift) — see SPEC_FULL.md section 3 for the contract.
package term

import (
	"fmt"
	"strings"
)

// Term is the interface every node of the de Bruijn lambda calculus
// implements. Node kinds are exported structs so the parser, printer and
// reducer can switch on concrete type; internal/acmatch never does — it
// only calls the functions in this package and in internal/signature.
type Term interface {
	fmt.Stringer
	isTerm()
}

// Const is a reference to a globally declared symbol.
type Const struct {
	Module string
	Name   string
}

func (Const) isTerm() {}

func (c Const) String() string {
	if c.Module == "" {
		return c.Name
	}
	return c.Module + "." + c.Name
}

// DB is a bound variable referenced by de Bruijn index: Index counts
// enclosing Lambda binders between the occurrence and the binder it refers
// to (0 = innermost). Name is carried only for pretty-printing.
type DB struct {
	Name  string
	Index int
}

func (DB) isTerm() {}

func (v DB) String() string {
	if v.Name != "" {
		return v.Name
	}
	return fmt.Sprintf("#%d", v.Index)
}

// App is a flattened application spine: Head applied to Args in order.
// Args is never empty; a bare Head with no arguments is represented by the
// Head term itself, not by App{Head, nil}.
type App struct {
	Head Term
	Args []Term
}

func (App) isTerm() {}

func (a App) String() string {
	parts := make([]string, 0, len(a.Args)+1)
	parts = append(parts, paren(a.Head))
	for _, arg := range a.Args {
		parts = append(parts, paren(arg))
	}
	return strings.Join(parts, " ")
}

// Lambda is a single binder; ParamName is cosmetic.
type Lambda struct {
	ParamName string
	Body      Term
}

func (Lambda) isTerm() {}

func (l Lambda) String() string {
	name := l.ParamName
	if name == "" {
		name = "_"
	}
	return fmt.Sprintf("%s%s. %s", lambdaGlyph, name, l.Body)
}

const lambdaGlyph = "λ"

func paren(t Term) string {
	switch t.(type) {
	case App, Lambda:
		return "(" + t.String() + ")"
	default:
		return t.String()
	}
}

// NewApp builds an application, flattening a App head into one spine.
func NewApp(head Term, args ...Term) Term {
	if len(args) == 0 {
		return head
	}
	if inner, ok := head.(App); ok {
		combined := make([]Term, 0, len(inner.Args)+len(args))
		combined = append(combined, inner.Args...)
		combined = append(combined, args...)
		return App{Head: inner.Head, Args: combined}
	}
	return App{Head: head, Args: args}
}

// AddNLambdas wraps t in n binders (used to build a Miller solution
// lambda-abstracted over its captured arguments).
func AddNLambdas(n int, t Term) Term {
	for i := 0; i < n; i++ {
		t = Lambda{ParamName: "_", Body: t}
	}
	return t
}

// AppList applies head to the de Bruijn variables named by idx, in the
// order given, e.g. AppList(X, []int{1,0}) = X #1 #0.
func AppList(head Term, idx []int) Term {
	if len(idx) == 0 {
		return head
	}
	args := make([]Term, len(idx))
	for i, n := range idx {
		args[i] = DB{Index: n}
	}
	return NewApp(head, args...)
}
