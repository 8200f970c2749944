// Package tokey implements a restricted expression language for show/hide
// conditions.
//
// Expressions are a small, deliberately limited boolean/comparison language
// evaluated against a read-only context object. The language supports
// literals, identifier and member access, array literals, strict and loose
// equality, numeric comparisons, short-circuiting && and ||, prefix !, and a
// single allow-listed method: includes on arrays. It is intentionally not
// Turing-complete: no assignment, loops, function declarations, arbitrary
// calls, or mutation.
//
// # Security model
//
// Expressions can only read data explicitly present in the context. A bare
// identifier that is not a context key, a property that is not a key of the
// receiving object, or any method other than includes-on-array is a security
// error. Syntax errors and security errors are distinct: the former are
// detectable at compile time, the latter depend on the context.
//
// # Quick start
//
//	// Compile once, evaluate many times
//	expr, err := tokey.Compile("element.tag === 'button'")
//	show, _ := expr.Eval(types.Context{"element": map[string]any{"tag": "button"}})
//
//	// Best-effort evaluation: any failure degrades to false
//	v := tokey.SafeEval("window.location", types.Context{}) // false
//
//	// Reduce an ordered rule list with OR semantics
//	visible := tokey.ShowWhen(rules, ctx)
package tokey

import (
	"fmt"

	"github.com/dazl-dev/tokey/pkg/evaluator"
	"github.com/dazl-dev/tokey/pkg/parser"
	"github.com/dazl-dev/tokey/pkg/types"
)

// defaultEvaluator backs the package-level helpers. Caching is enabled
// because show/hide rules are typically a small fixed set of strings
// evaluated repeatedly against many contexts.
var defaultEvaluator = evaluator.New(evaluator.WithCaching(true))

// Expression is a compiled show/hide expression paired with its evaluator.
// It is immutable after compilation and safe for concurrent reuse across
// goroutines and contexts; compiling once amortizes the lex+parse cost over
// many evaluations.
type Expression struct {
	expr *types.Expression
	eval *evaluator.Evaluator
}

// Compile compiles an expression for repeated evaluation.
//
// Syntax failures surface immediately, before any context is involved. The
// returned Expression may still fail with a security error when evaluated,
// since sandbox violations depend on the context.
func Compile(source string, opts ...parser.CompileOption) (*Expression, error) {
	expr, err := parser.Compile(source, opts...)
	if err != nil {
		return nil, err
	}
	return &Expression{
		expr: expr,
		eval: defaultEvaluator,
	}, nil
}

// MustCompile is like Compile but panics if the expression cannot be
// compiled. It simplifies safe initialization of global variables.
func MustCompile(source string) *Expression {
	expr, err := Compile(source)
	if err != nil {
		panic(fmt.Sprintf("tokey: Compile(%q): %v", source, err))
	}
	return expr
}

// Eval evaluates the compiled expression against a context.
// The result is one of: bool, float64, string, nil, types.UndefinedValue, a
// []any, or a sub-object reference from the context. Callers needing a
// boolean should apply [Truthy].
func (e *Expression) Eval(input types.Context) (any, error) {
	return e.eval.Eval(e.expr, input)
}

// Source returns the original expression source.
func (e *Expression) Source() string {
	return e.expr.Source()
}

// Eval is a convenience function that compiles and evaluates an expression
// in a single call, surfacing both syntax and security failures.
//
// For repeated evaluations of the same expression, use Compile instead.
func Eval(source string, input types.Context) (any, error) {
	return defaultEvaluator.EvalSource(source, input)
}

// SafeEval compiles and evaluates an expression, converting any failure --
// syntax or security -- to the boolean false. This is the integration point
// for untrusted or best-effort expressions.
func SafeEval(source string, input types.Context) any {
	return defaultEvaluator.SafeEval(source, input)
}

// ValidateSyntax checks that the source is a valid sentence of the grammar
// without evaluating it. It returns nil exactly when Compile would succeed;
// otherwise the returned error describes the first syntax failure in
// human-readable form.
func ValidateSyntax(source string) error {
	_, err := parser.Parse(source)
	return err
}

// ShowWhen reduces an ordered list of expressions with OR semantics: the
// result is true if any expression evaluates truthy, in list order, stopping
// at the first match. A nil or empty list means "always show" and returns
// true. Individual failures degrade to false and never abort the rest of the
// list.
func ShowWhen(rules []string, input types.Context) bool {
	if len(rules) == 0 {
		return true
	}
	for _, rule := range rules {
		if Truthy(SafeEval(rule, input)) {
			return true
		}
	}
	return false
}

// Truthy reports whether an evaluation result is truthy. The falsy set is:
// false, numeric zero, NaN, the empty string, null and undefined.
func Truthy(v any) bool {
	return evaluator.Truthy(v)
}
