package evaluator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dazl-dev/tokey/pkg/evaluator"
	"github.com/dazl-dev/tokey/pkg/parser"
	"github.com/dazl-dev/tokey/pkg/types"
)

func eval(t *testing.T, source string, input types.Context) (any, error) {
	t.Helper()
	expr, err := parser.Parse(source)
	require.NoError(t, err, "expression must compile")
	return evaluator.New().Eval(expr, input)
}

func mustEval(t *testing.T, source string, input types.Context) any {
	t.Helper()
	v, err := eval(t, source, input)
	require.NoError(t, err)
	return v
}

func buttonCtx() types.Context {
	return types.Context{
		"element": map[string]any{
			"tag":        "button",
			"childCount": 3,
			"component":  "X",
			"disabled":   false,
			"classes":    []any{"primary", "wide"},
		},
	}
}

func TestEvalLiterals(t *testing.T) {
	tests := []struct {
		source string
		want   any
	}{
		{"42", 42.0},
		{"3.14", 3.14},
		{"'hello'", "hello"},
		{"true", true},
		{"false", false},
		{"null", nil},
		{"[1, 'a', true]", []any{1.0, "a", true}},
		{"(true)", true},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			assert.Equal(t, tt.want, mustEval(t, tt.source, types.Context{}))
		})
	}
}

func TestEvalContextAccess(t *testing.T) {
	ctx := buttonCtx()

	assert.Equal(t, "button", mustEval(t, "element.tag", ctx))
	assert.Equal(t, 3, mustEval(t, "element.childCount", ctx))

	// Sub-object references come straight from the context.
	v := mustEval(t, "element", ctx)
	assert.Equal(t, ctx["element"], v)
}

func TestEvalShowHideScenarios(t *testing.T) {
	// The canonical show/hide condition shapes.
	tests := []struct {
		source string
		want   any
	}{
		{"element.tag === 'button'", true},
		{"element.tag === 'input'", false},
		{"['button','a','input'].includes(element.tag)", true},
		{"['a','input'].includes(element.tag)", false},
		{"element.childCount == '3'", true}, // loose equality
		{"element.childCount === '3'", false},
		{"element.component.doesNotExist", types.UndefinedValue}, // member on a string
		{"element.childCount > 1 && element.tag === 'button'", true},
		{"!element.disabled", true},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			assert.Equal(t, tt.want, mustEval(t, tt.source, buttonCtx()))
		})
	}
}

func TestEvalTopLevelIdentifierIsSandboxed(t *testing.T) {
	// A missing top-level identifier is always a security error, never a
	// silent undefined. Prototype-style names are blocked the same way.
	for _, name := range []string{"window", "__proto__", "constructor", "toString"} {
		t.Run(name, func(t *testing.T) {
			_, err := eval(t, name, types.Context{"element": "x"})
			require.Error(t, err)
			assert.True(t, types.IsSecurity(err), "want security error, got %v", err)
			assert.Contains(t, err.Error(), name)
		})
	}
}

func TestEvalMemberAccess(t *testing.T) {
	ctx := types.Context{
		"a": map[string]any{"b": map[string]any{"c": 1}},
		"s": "text",
		"n": nil,
	}

	t.Run("nested objects resolve", func(t *testing.T) {
		assert.Equal(t, 1, mustEval(t, "a.b.c", ctx))
	})

	t.Run("absent key on object is a security error", func(t *testing.T) {
		_, err := eval(t, "a.missing", ctx)
		require.Error(t, err)
		assert.True(t, types.IsSecurity(err))
		assert.Contains(t, err.Error(), "missing")
	})

	t.Run("non-object receivers yield undefined", func(t *testing.T) {
		assert.Equal(t, types.UndefinedValue, mustEval(t, "s.anything", ctx))
		assert.Equal(t, types.UndefinedValue, mustEval(t, "n.anything", ctx))
		// Chains on undefined stay undefined.
		assert.Equal(t, types.UndefinedValue, mustEval(t, "s.anything.deeper", ctx))
	})

	t.Run("nested context values work as objects", func(t *testing.T) {
		nested := types.Context{"inner": types.Context{"x": 7}}
		assert.Equal(t, 7, mustEval(t, "inner.x", nested))
	})
}

func TestEvalMethodAllowList(t *testing.T) {
	ctx := buttonCtx()

	t.Run("includes on array literal", func(t *testing.T) {
		assert.Equal(t, true, mustEval(t, "['a','b'].includes('b')", ctx))
		assert.Equal(t, false, mustEval(t, "['a','b'].includes('c')", ctx))
	})

	t.Run("includes on context array", func(t *testing.T) {
		assert.Equal(t, true, mustEval(t, "element.classes.includes('primary')", ctx))
	})

	t.Run("includes on typed slice from context", func(t *testing.T) {
		tagCtx := types.Context{"tags": []string{"x", "y"}}
		assert.Equal(t, true, mustEval(t, "tags.includes('y')", tagCtx))
	})

	t.Run("includes membership is strict", func(t *testing.T) {
		numCtx := types.Context{"nums": []any{1, 2, 3}}
		assert.Equal(t, true, mustEval(t, "nums.includes(2)", numCtx))
		assert.Equal(t, false, mustEval(t, "nums.includes('2')", numCtx))
	})

	t.Run("other methods are disallowed", func(t *testing.T) {
		_, err := eval(t, "element.tag.replace('a','b')", ctx)
		require.Error(t, err)
		assert.True(t, types.IsSecurity(err))
		assert.Contains(t, err.Error(), "replace")
	})

	t.Run("includes on non-array is disallowed", func(t *testing.T) {
		_, err := eval(t, "element.tag.includes('b')", ctx)
		require.Error(t, err)
		assert.True(t, types.IsSecurity(err))
	})

	t.Run("includes requires exactly one argument", func(t *testing.T) {
		_, err := eval(t, "element.classes.includes()", ctx)
		require.Error(t, err)
		assert.True(t, types.IsSecurity(err))

		_, err = eval(t, "element.classes.includes('a', 'b')", ctx)
		require.Error(t, err)
		assert.True(t, types.IsSecurity(err))
	})
}

func TestEvalShortCircuit(t *testing.T) {
	// The right side of && must never be evaluated when the left is falsy:
	// "forbidden" is not a context key, so evaluating it would be a security
	// error.
	ctx := types.Context{"zero": 0, "one": 1, "name": "x"}

	tests := []struct {
		source string
		want   any
	}{
		{"zero && forbidden", 0},
		{"false && forbidden", false},
		{"one || forbidden", 1},
		{"name || forbidden", "x"},
		// Operands pass through unchanged, not coerced to booleans.
		{"one && name", "x"},
		{"zero || name", "x"},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			assert.Equal(t, tt.want, mustEval(t, tt.source, ctx))
		})
	}

	// Sanity: the right side does fail when it is reached.
	_, err := eval(t, "one && forbidden", ctx)
	require.Error(t, err)
	assert.True(t, types.IsSecurity(err))
}

func TestEvalChainedComparison(t *testing.T) {
	// (1 < 2) < 3 folds left-to-right: true < 3 coerces true to 1.
	ctx := types.Context{}
	assert.Equal(t, true, mustEval(t, "1 < 2 < 3", ctx))
	// (3 < 2) < 1: false < 1 coerces false to 0.
	assert.Equal(t, true, mustEval(t, "3 < 2 < 1", ctx))
	// (1 < 2) < 1: true < 1 is 1 < 1.
	assert.Equal(t, false, mustEval(t, "1 < 2 < 1", ctx))
}

func TestEvalDeterminism(t *testing.T) {
	expr, err := parser.Parse("element.childCount > 1 && element.tag === 'button'")
	require.NoError(t, err)

	ev := evaluator.New()
	ctx := buttonCtx()
	first, err := ev.Eval(expr, ctx)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		v, err := ev.Eval(expr, ctx)
		require.NoError(t, err)
		assert.Equal(t, first, v)
	}
}

func TestEvalDoesNotMutateContext(t *testing.T) {
	ctx := types.Context{"element": map[string]any{"tag": "button"}}
	mustEval(t, "element.tag === 'button' || element.tag === 'a'", ctx)
	assert.Equal(t, types.Context{"element": map[string]any{"tag": "button"}}, ctx)
}

func TestEvalSource(t *testing.T) {
	ev := evaluator.New(evaluator.WithCaching(true), evaluator.WithCacheSize(8))

	for i := 0; i < 3; i++ {
		v, err := ev.EvalSource("element.tag === 'button'", buttonCtx())
		require.NoError(t, err)
		assert.Equal(t, true, v)
	}

	_, err := ev.EvalSource("a ==", buttonCtx())
	require.Error(t, err)
	assert.True(t, types.IsSyntax(err))
}

func TestSafeEval(t *testing.T) {
	ev := evaluator.New()

	// Failures of either kind degrade to false.
	assert.Equal(t, false, ev.SafeEval("a ==", types.Context{}))
	assert.Equal(t, false, ev.SafeEval("window.location", types.Context{}))

	// Successful evaluations pass the value through unchanged.
	assert.Equal(t, "button", ev.SafeEval("element.tag", buttonCtx()))
	assert.Equal(t, 0.0, ev.SafeEval("0", types.Context{}))
}

func TestEvalHandBuiltOperatorTags(t *testing.T) {
	// Malformed operator tags cannot occur on parser-produced trees; the
	// evaluator reports them as syntax errors.
	bad := types.NewASTNode(types.NodeBinary)
	bad.StrValue = "+"
	bad.LHS = types.NewASTNode(types.NodeNumber)
	bad.RHS = types.NewASTNode(types.NodeNumber)

	_, err := evaluator.New().Eval(types.NewExpression(bad, "hand built"), types.Context{})
	require.Error(t, err)
	assert.True(t, types.IsSyntax(err))

	badUnary := types.NewASTNode(types.NodeUnary)
	badUnary.StrValue = "-"
	badUnary.LHS = types.NewASTNode(types.NodeNumber)

	_, err = evaluator.New().Eval(types.NewExpression(badUnary, "hand built"), types.Context{})
	require.Error(t, err)
	assert.True(t, types.IsSyntax(err))
}
