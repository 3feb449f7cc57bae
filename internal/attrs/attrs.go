// Package attrs parses the attribute list attached to a type annotated for
// pipeline generation.
//
// Attributes are written either as a directive in the type's doc comment:
//
//	//pipeline:derive(skip, timeout = 500, owner = "payments")
//
// or as a struct tag on the type's single field:
//
//	Value pipeline.Option[int] `pipeline:"timeout=500"`
//
// The keys skip (bool) and timeout (integer milliseconds) are interpreted;
// any other key is kept, unevaluated, in Set.Others.
package attrs

import (
	"fmt"
	"go/ast"
	"go/token"
	"strings"

	"github.com/ecordell/pipelinegen/pipeline"
)

const (
	// Directive marks a type for generation.
	Directive = "//pipeline:derive"

	// TagKey is the struct tag key holding the tag form of the attributes.
	TagKey = "pipeline"

	KeySkip    = "skip"
	KeyTimeout = "timeout"
)

// Pair is a single `key` or `key = value` entry.
type Pair struct {
	Key string
	// Value is nil when the key was given without a value.
	Value ast.Expr
	// Raw is the source text of Value.
	Raw string

	Pos      token.Pos
	ValuePos token.Pos
}

// String returns the pair as written, normalized to `key = value`.
func (p Pair) String() string {
	if p.Value == nil {
		return p.Key
	}
	return p.Key + " = " + p.Raw
}

// Set is the parsed attribute list of one annotated type.
type Set struct {
	Skip    bool
	Timeout pipeline.Option[uint64]
	Others  []Pair
}

// String renders the set for debugging.
func (s Set) String() string {
	timeout := "none"
	if ms, ok := s.Timeout.Get(); ok {
		timeout = fmt.Sprintf("%d", ms)
	}

	others := make([]string, 0, len(s.Others))
	for _, p := range s.Others {
		others = append(others, p.String())
	}

	return fmt.Sprintf("Set{skip: %t, timeout: %s, others: [%s]}", s.Skip, timeout, strings.Join(others, ", "))
}

// FindDirective looks for the derive directive in doc. It returns the text
// following the directive name and the position of that text.
func FindDirective(doc *ast.CommentGroup) (string, token.Pos, bool) {
	if doc == nil {
		return "", token.NoPos, false
	}
	for _, c := range doc.List {
		rest, ok := strings.CutPrefix(c.Text, Directive)
		if !ok {
			continue
		}
		if rest != "" && !strings.ContainsAny(rest[:1], " \t(") {
			continue
		}
		return rest, c.Slash + token.Pos(len(Directive)), true
	}
	return "", token.NoPos, false
}
