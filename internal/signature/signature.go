// Package signature is the kernel's global name table (SPEC_FULL.md section
// 4): for every declared symbol it tracks an arity and AC flavour, plus the
// rewrite rules compiled against it by internal/rulecompiler. It also
// implements acmatch.Reducer, giving the matching engine its Whnf/Snf/
// AreConvertible capability set via a small-step call-by-name reducer.
package signature

import (
	"sync"

	"github.com/firewall2142/dedukti/internal/term"
)

// Rule is one compiled rewrite rule attached to a symbol: Try attempts the
// rule's pre-built matching problem against args (already split to the
// symbol's declared arity) and, on success, returns the instantiated
// right-hand side. Source is the rule's text (`lhs --> rhs`), kept for
// reference only; it plays no role in matching and is not the cache key
// (internal/cache hashes a whole file's source instead).
type Rule struct {
	Source string
	Try    func(sg *Signature, args []term.Term) (term.Term, bool)
}

// Symbol is one entry of the signature.
type Symbol struct {
	Name    string
	Arity   int
	Flavour term.ACFlavour
	Neutral term.Term // meaningful only when Flavour == FlavourACU
	Rules   []Rule
}

// ACIdent builds the term.ACIdent the acmatch package expects to identify
// this symbol's AC spine. It panics if the symbol is NotAC — callers are
// expected to check Flavour first (internal/rulecompiler does, when
// grouping LHS occurrences by head AC symbol).
func (s *Symbol) ACIdent() term.ACIdent {
	if s.Flavour == term.NotAC {
		panic("signature: ACIdent called on a non-AC symbol " + s.Name)
	}
	return term.ACIdent{Symbol: term.Const{Name: s.Name}, Flavour: s.Flavour, Neutral: s.Neutral}
}

// Signature is the symbol table. Zero value is not usable; use New.
type Signature struct {
	mu      sync.RWMutex
	symbols map[string]*Symbol
}

func New() *Signature {
	return &Signature{symbols: make(map[string]*Symbol)}
}

// Declare adds a new symbol with the given arity and NotAC flavour. Use
// DeclareAC/DeclareACU for AC/ACU symbols.
func (sg *Signature) Declare(name string, arity int) (*Symbol, error) {
	return sg.declare(name, arity, term.NotAC, nil)
}

// DeclareAC adds a new associative-commutative symbol; arity must be 2
// (spec.md section 3's AC spines are binary).
func (sg *Signature) DeclareAC(name string) (*Symbol, error) {
	return sg.declare(name, 2, term.FlavourAC, nil)
}

// DeclareACU adds a new AC symbol with a neutral element.
func (sg *Signature) DeclareACU(name string, neutral term.Term) (*Symbol, error) {
	return sg.declare(name, 2, term.FlavourACU, neutral)
}

func (sg *Signature) declare(name string, arity int, flavour term.ACFlavour, neutral term.Term) (*Symbol, error) {
	sg.mu.Lock()
	defer sg.mu.Unlock()
	if _, exists := sg.symbols[name]; exists {
		return nil, NewDuplicateSymbolError(name)
	}
	sym := &Symbol{Name: name, Arity: arity, Flavour: flavour, Neutral: neutral}
	sg.symbols[name] = sym
	return sym, nil
}

// MarkAC upgrades an already-`def`'d, arity-2 symbol to associative-
// commutative; the surface syntax always declares a symbol's type first
// and its AC-ness second (`def plus : ... .` then `ac plus.`), so AC/ACU
// status is applied to an existing Symbol rather than redeclaring it.
func (sg *Signature) MarkAC(name string) error {
	return sg.markAC(name, term.FlavourAC, nil)
}

// MarkACU upgrades an already-`def`'d, arity-2 symbol to AC with a neutral
// element.
func (sg *Signature) MarkACU(name string, neutral term.Term) error {
	return sg.markAC(name, term.FlavourACU, neutral)
}

func (sg *Signature) markAC(name string, flavour term.ACFlavour, neutral term.Term) error {
	sg.mu.Lock()
	defer sg.mu.Unlock()
	sym, ok := sg.symbols[name]
	if !ok {
		return NewUnknownSymbolError(name)
	}
	if sym.Arity != 2 {
		return NewArityMismatchError(name, 2, sym.Arity)
	}
	sym.Flavour = flavour
	sym.Neutral = neutral
	return nil
}

// Lookup returns the named symbol, or nil if undeclared.
func (sg *Signature) Lookup(name string) *Symbol {
	sg.mu.RLock()
	defer sg.mu.RUnlock()
	return sg.symbols[name]
}

// MustLookup is Lookup with an error instead of a nil result, for call
// sites (rule compilation, RPC dispatch) where an unknown symbol is a
// request error rather than an internal invariant violation.
func (sg *Signature) MustLookup(name string) (*Symbol, error) {
	sym := sg.Lookup(name)
	if sym == nil {
		return nil, NewUnknownSymbolError(name)
	}
	return sym, nil
}

// AddRule appends a compiled rule to symbol's dispatch list; rules are
// tried in declaration order (SPEC_FULL.md section 4's documented Open
// Question resolution: "try rules in order" stands in for a real decision
// tree).
func (sg *Signature) AddRule(name string, rule Rule) error {
	sg.mu.Lock()
	defer sg.mu.Unlock()
	sym, ok := sg.symbols[name]
	if !ok {
		return NewUnknownSymbolError(name)
	}
	sym.Rules = append(sym.Rules, rule)
	return nil
}

// Symbols returns a snapshot of every declared name, for diagnostics and
// the pkg/api facade.
func (sg *Signature) Symbols() []string {
	sg.mu.RLock()
	defer sg.mu.RUnlock()
	names := make([]string, 0, len(sg.symbols))
	for n := range sg.symbols {
		names = append(names, n)
	}
	return names
}
