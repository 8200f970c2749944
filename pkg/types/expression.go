// Package types defines the core type system for the tokey expression
// language.
//
// This package contains type definitions for:
//   - Expression: compiled show/hide expressions
//   - ASTNode: Abstract Syntax Tree nodes
//   - Context: the read-only data an expression is evaluated against
//   - Undefined: the distinguished absent value
//   - Error: structured errors with a Syntax/Security kind
package types

// Context is the read-only data object an expression is evaluated against.
//
// Only keys present in the map are visible to expressions; looking up any
// other name is a security violation. This is the sandbox boundary: Go maps
// have no inherited or ambient members, so plain key presence is exactly the
// own-key visibility rule. The evaluator never mutates a Context, so one
// Context may be shared read-only across goroutines.
type Context map[string]any

// Expression represents a compiled show/hide expression.
//
// An Expression can be evaluated any number of times against different
// contexts by passing it to [evaluator.Evaluator.Eval]. It is immutable and
// safe for concurrent use by multiple goroutines.
type Expression struct {
	ast    *ASTNode
	source string
}

// NewExpression creates a new Expression from an AST.
func NewExpression(ast *ASTNode, source string) *Expression {
	return &Expression{
		ast:    ast,
		source: source,
	}
}

// AST returns the Abstract Syntax Tree of the expression.
func (e *Expression) AST() *ASTNode {
	return e.ast
}

// Source returns the original source code of the expression.
func (e *Expression) Source() string {
	return e.source
}

// String returns a string representation of the expression.
func (e *Expression) String() string {
	return e.source
}
