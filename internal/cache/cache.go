// Package cache is a sqlite-backed memo of which rule sources have already
// been compiled (SPEC_FULL.md section 9), keyed by a hash of the whole
// source file's text. A closure (signature.Rule.Try) cannot itself be
// serialized into a BLOB, so what is persisted at file granularity is the
// one thing that both is reproducible from source and is actually expensive
// to redo: the parsed *ast.Program, gob-encoded into the pre_matching_
// problem column. On a hash hit, pkg/api's compileInto decodes the cached Program instead of re-lexing and re-parsing the file;
// internal/rulecompiler.CompileProcessor still walks it to rebuild the live
// Rule.Try closures on every call, since those can't be cached at all (an
// Open Question resolution recorded in DESIGN.md).
package cache

import (
	"bytes"
	"crypto/sha256"
	"database/sql"
	"encoding/gob"
	"encoding/hex"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/firewall2142/dedukti/internal/ast"
)

func init() {
	gob.Register(&ast.DefDecl{})
	gob.Register(&ast.ACDecl{})
	gob.Register(&ast.ACUDecl{})
	gob.Register(&ast.RuleDecl{})
	gob.Register(&ast.Ident{})
	gob.Register(&ast.Apply{})
	gob.Register(&ast.TypeName{})
	gob.Register(&ast.TypeArrow{})
}

const schema = `
CREATE TABLE IF NOT EXISTS compiled_rules (
	hash                 TEXT PRIMARY KEY,
	symbol               TEXT NOT NULL,
	arity                INTEGER NOT NULL,
	ac_flavour           TEXT NOT NULL,
	pre_matching_problem BLOB NOT NULL,
	compiled_at          TEXT NOT NULL
);`

// Record is one cached file-compilation outcome: Symbol holds the source
// path, Arity the number of top-level declarations it held, and ACFlavour
// the sentinel "file" (there is no single AC flavour at file granularity;
// the column is kept rather than renamed so the schema stays one shape for
// callers that still reason about it per-rule, e.g. cache_test.go's
// synthetic entries).
type Record struct {
	Hash               string
	Symbol             string
	Arity              int
	ACFlavour          string
	PreMatchingProblem []byte
	CompiledAt         time.Time
}

// FileFlavour is the ACFlavour sentinel Store/Lookup use for whole-file
// cache entries (as opposed to cache_test.go's synthetic per-rule ones).
const FileFlavour = "file"

// EncodeProgram gob-encodes a parsed program for storage as a Record's
// PreMatchingProblem blob.
func EncodeProgram(p *ast.Program) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(p); err != nil {
		return nil, fmt.Errorf("cache: encode program: %w", err)
	}
	return buf.Bytes(), nil
}

// DecodeProgram reverses EncodeProgram.
func DecodeProgram(data []byte) (*ast.Program, error) {
	var p ast.Program
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&p); err != nil {
		return nil, fmt.Errorf("cache: decode program: %w", err)
	}
	return &p, nil
}

// Cache wraps a sqlite-backed connection pool.
type Cache struct {
	db *sql.DB
}

// Open opens (creating if necessary) the cache database at path and
// ensures its schema exists.
func Open(path string) (*Cache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("cache: open %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("cache: create schema: %w", err)
	}
	return &Cache{db: db}, nil
}

func (c *Cache) Close() error { return c.db.Close() }

// HashSource returns the cache key for a source text: the hex SHA-256 of
// the text exactly as given (pkg/api passes a whole file's contents; no
// normalization is applied).
func HashSource(source string) string {
	sum := sha256.Sum256([]byte(source))
	return hex.EncodeToString(sum[:])
}

// Lookup returns the cached record for hash, if any.
func (c *Cache) Lookup(hash string) (*Record, bool, error) {
	row := c.db.QueryRow(
		`SELECT hash, symbol, arity, ac_flavour, pre_matching_problem, compiled_at
		 FROM compiled_rules WHERE hash = ?`, hash)

	var rec Record
	var compiledAt string
	switch err := row.Scan(&rec.Hash, &rec.Symbol, &rec.Arity, &rec.ACFlavour, &rec.PreMatchingProblem, &compiledAt); err {
	case nil:
		ts, err := time.Parse(time.RFC3339, compiledAt)
		if err != nil {
			return nil, false, fmt.Errorf("cache: malformed compiled_at for %s: %w", hash, err)
		}
		rec.CompiledAt = ts
		return &rec, true, nil
	case sql.ErrNoRows:
		return nil, false, nil
	default:
		return nil, false, fmt.Errorf("cache: lookup %s: %w", hash, err)
	}
}

// Store records (or overwrites) a compiled rule's cache entry.
func (c *Cache) Store(rec Record) error {
	_, err := c.db.Exec(
		`INSERT INTO compiled_rules (hash, symbol, arity, ac_flavour, pre_matching_problem, compiled_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(hash) DO UPDATE SET
			symbol = excluded.symbol,
			arity = excluded.arity,
			ac_flavour = excluded.ac_flavour,
			pre_matching_problem = excluded.pre_matching_problem,
			compiled_at = excluded.compiled_at`,
		rec.Hash, rec.Symbol, rec.Arity, rec.ACFlavour, rec.PreMatchingProblem, rec.CompiledAt.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("cache: store %s: %w", rec.Hash, err)
	}
	return nil
}

// Size reports the number of cached entries, printed by `dkcheck serve` on
// startup (alongside the cache file's humanized byte size).
func (c *Cache) Size() (int, error) {
	var n int
	if err := c.db.QueryRow(`SELECT COUNT(*) FROM compiled_rules`).Scan(&n); err != nil {
		return 0, fmt.Errorf("cache: size: %w", err)
	}
	return n, nil
}
