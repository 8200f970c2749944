// Package evaluator implements the evaluation engine of the show/hide
// expression language.
//
// The evaluator receives a parsed Abstract Syntax Tree from the parser and
// walks it against a read-only [types.Context]. Evaluation is a single-pass
// recursive tree walk with no persisted state between calls: each call is
// independent, side-effect-free, and safe to run concurrently with others.
//
// # Sandbox
//
// Evaluation enforces the security model of the language at every access:
//   - a bare identifier resolves only to a key present in the context;
//     anything else (ambient globals, __proto__, constructor, ...) is a
//     security error,
//   - member access resolves only keys present on the receiving object,
//   - the only callable method is "includes" on an array value.
//
// # Example
//
//	expr, err := parser.Compile("element.tag === 'button'")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	ev := evaluator.New()
//	result, err := ev.Eval(expr, types.Context{"element": map[string]any{"tag": "button"}})
package evaluator

import (
	"log/slog"

	"github.com/dazl-dev/tokey/pkg/cache"
	"github.com/dazl-dev/tokey/pkg/parser"
	"github.com/dazl-dev/tokey/pkg/types"
)

// Evaluator evaluates show/hide expressions against context data.
// It carries no per-evaluation state and is safe for concurrent use.
type Evaluator struct {
	opts   EvalOptions
	logger *slog.Logger
	cache  *cache.Cache // non-nil when caching is enabled
}

// EvalOptions configures evaluator behavior.
type EvalOptions struct {
	// Caching enables expression compilation caching.
	// When true, compiled expressions are cached by source string.
	// The default cache holds up to 256 entries with LRU eviction.
	Caching bool
	// CacheSize sets the maximum number of cached expressions.
	// Only used when Caching is true and no explicit Cache is provided.
	// Defaults to 256.
	CacheSize int
	// Cache is a custom expression cache. If non-nil, Caching is implicitly
	// enabled.
	Cache *cache.Cache
	// Debug enables debug logging of failures swallowed by SafeEval.
	Debug bool
	// Logger for structured logging.
	Logger *slog.Logger
}

// EvalOption configures an Evaluator.
type EvalOption func(*EvalOptions)

// WithCaching enables or disables expression compilation caching.
func WithCaching(enable bool) EvalOption {
	return func(opts *EvalOptions) {
		opts.Caching = enable
	}
}

// WithCacheSize sets the compilation cache capacity.
func WithCacheSize(size int) EvalOption {
	return func(opts *EvalOptions) {
		opts.CacheSize = size
	}
}

// WithCache sets a custom expression cache.
func WithCache(c *cache.Cache) EvalOption {
	return func(opts *EvalOptions) {
		opts.Cache = c
	}
}

// WithDebug enables debug logging.
func WithDebug(enable bool) EvalOption {
	return func(opts *EvalOptions) {
		opts.Debug = enable
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) EvalOption {
	return func(opts *EvalOptions) {
		opts.Logger = logger
	}
}

// New creates a new Evaluator with the given options.
func New(opts ...EvalOption) *Evaluator {
	options := EvalOptions{}
	for _, opt := range opts {
		opt(&options)
	}

	if options.Logger == nil {
		options.Logger = slog.Default()
	}

	// Initialise the expression cache when caching is enabled.
	var c *cache.Cache
	if options.Cache != nil {
		c = options.Cache
	} else if options.Caching {
		size := options.CacheSize
		if size <= 0 {
			size = 256
		}
		c = cache.New(size)
	}

	return &Evaluator{
		opts:   options,
		logger: options.Logger,
		cache:  c,
	}
}

// Eval evaluates a compiled expression against the given context.
// The context is never mutated. Failures are security errors; syntax errors
// can only occur on hand-built trees with malformed operator tags, never on
// parser-produced ones.
func (e *Evaluator) Eval(expr *types.Expression, input types.Context) (any, error) {
	return e.evalNode(expr.AST(), input)
}

// EvalSource compiles the source (through the cache, when enabled) and
// evaluates it against the given context.
func (e *Evaluator) EvalSource(source string, input types.Context) (any, error) {
	expr, err := e.compile(source)
	if err != nil {
		return nil, err
	}
	return e.Eval(expr, input)
}

// SafeEval compiles and evaluates the source, degrading any failure -- syntax
// or security -- to the boolean false. This is the integration point for
// untrusted or best-effort expressions: one broken expression in a list never
// aborts evaluation of the others.
func (e *Evaluator) SafeEval(source string, input types.Context) any {
	v, err := e.EvalSource(source, input)
	if err != nil {
		if e.opts.Debug {
			e.logger.Debug("expression degraded to false",
				"source", source,
				"error", err)
		}
		return false
	}
	return v
}

func (e *Evaluator) compile(source string) (*types.Expression, error) {
	if e.cache != nil {
		return e.cache.GetOrCompile(source, parser.Parse)
	}
	return parser.Parse(source)
}
