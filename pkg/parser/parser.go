// Package parser implements the front end of the show/hide expression
// language: a hand-written lexer and a recursive descent parser.
//
// The parser uses Pratt's "Top Down Operator Precedence" technique with a
// small binding-power table. It produces an immutable AST owned by the
// returned [types.Expression], which may be cached and evaluated many times.
package parser

import (
	"github.com/dazl-dev/tokey/pkg/types"
)

// Parse parses a show/hide expression and returns the compiled Expression.
//
// The function tokenizes the input, builds an AST, and validates that the
// whole input forms exactly one expression. All failures are syntax errors;
// no context is involved at this stage.
func Parse(source string) (*types.Expression, error) {
	p := NewParser(source)
	return p.Parse()
}

// Compile is an alias for Parse, provided for API consistency.
func Compile(source string, opts ...CompileOption) (*types.Expression, error) {
	p := NewParser(source, opts...)
	return p.Parse()
}

// CompileOption configures compilation behavior.
type CompileOption func(*CompileOptions)

// CompileOptions holds parser configuration.
type CompileOptions struct {
	// MaxDepth limits expression nesting depth to prevent stack overflow
	// on adversarial inputs such as a long run of parentheses.
	MaxDepth int
}

// WithMaxDepth sets the maximum expression nesting depth.
func WithMaxDepth(depth int) CompileOption {
	return func(opts *CompileOptions) {
		opts.MaxDepth = depth
	}
}
