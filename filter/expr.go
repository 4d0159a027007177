package filter

import (
	"maps"
	"strings"
	"sync"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/leereilly/Cinematerial/cinematerial"
)

// exprFilter implements CompiledFilter using the expr language
type exprFilter struct {
	expression string
	program    *vm.Program
	compiler   *exprCompiler
}

// ExprCompilerOption configures an expr compiler
type ExprCompilerOption func(*exprCompiler)

// WithCache enables filter caching with the specified size
func WithCache(size int) ExprCompilerOption {
	return func(c *exprCompiler) {
		if size > 0 {
			c.cache = newLRUCache(size)
		}
	}
}

// WithCustomFunctions adds custom helper functions
func WithCustomFunctions(funcs map[string]any) ExprCompilerOption {
	return func(c *exprCompiler) {
		maps.Copy(c.helperFuncs, funcs)
	}
}

// NewExprCompiler creates a new expr-based poster filter compiler
func NewExprCompiler(opts ...ExprCompilerOption) CachingCompiler {
	c := &exprCompiler{
		helperFuncs: createHelperFunctions(),
	}

	for _, opt := range opts {
		opt(c)
	}

	c.envPool.New = func() any {
		return make(map[string]any, len(c.helperFuncs)+16)
	}

	return c
}

// exprCompiler implements CachingCompiler for expr-based filters
type exprCompiler struct {
	helperFuncs map[string]any
	cache       *lruCache
	envPool     sync.Pool
}

// Compile compiles an expression into an executable filter
func (c *exprCompiler) Compile(expression string) (CompiledFilter, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "empty expression",
		}
	}

	if c.cache != nil {
		if cached, ok := c.cache.Get(expression); ok {
			return cached, nil
		}
	}

	program, err := expr.Compile(expression,
		expr.Env(c.compileEnv()),
		expr.AsBool(),
	)
	if err != nil {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "failed to compile expression",
			Err:        err,
		}
	}

	filter := &exprFilter{
		expression: expression,
		program:    program,
		compiler:   c,
	}

	if c.cache != nil {
		c.cache.Put(expression, filter)
	}

	return filter, nil
}

// Clear removes all cached filters
func (c *exprCompiler) Clear() {
	if c.cache != nil {
		c.cache.Clear()
	}
}

// Size returns the number of cached filters
func (c *exprCompiler) Size() int {
	if c.cache != nil {
		return c.cache.Len()
	}
	return 0
}

// compileEnv is a typed sample environment, so unknown identifiers and
// type mismatches are caught at compile time.
func (c *exprCompiler) compileEnv() map[string]any {
	env := make(map[string]any, len(c.helperFuncs)+16)
	maps.Copy(env, c.helperFuncs)
	addPosterFields(env, cinematerial.Poster{})
	return env
}

// Evaluate runs the filter against a poster
func (f *exprFilter) Evaluate(poster cinematerial.Poster) (bool, error) {
	env := f.compiler.envPool.Get().(map[string]any)
	defer func() {
		clear(env)
		f.compiler.envPool.Put(env)
	}()

	maps.Copy(env, f.compiler.helperFuncs)
	addPosterFields(env, poster)

	result, err := expr.Run(f.program, env)
	if err != nil {
		return false, &EvaluationError{
			Expression: f.expression,
			PosterURL:  poster.URL,
			Err:        err,
		}
	}

	// AsBool at compile time guarantees the type
	return result.(bool), nil
}

// Expression returns the original expression
func (f *exprFilter) Expression() string {
	return f.expression
}

// Apply returns the posters f accepts, in their original order. A nil
// filter accepts everything.
func Apply(f Filter, posters []cinematerial.Poster) ([]cinematerial.Poster, error) {
	if f == nil {
		return posters, nil
	}

	kept := make([]cinematerial.Poster, 0, len(posters))
	for _, p := range posters {
		ok, err := f.Evaluate(p)
		if err != nil {
			return nil, err
		}
		if ok {
			kept = append(kept, p)
		}
	}
	return kept, nil
}

// createHelperFunctions creates the helper functions available to every filter
func createHelperFunctions() map[string]any {
	funcs := make(map[string]any, 16)

	// Case-insensitive string helpers. contains, startsWith and endsWith are
	// expr operators and cannot be used as function names.
	funcs["hasText"] = func(str, substr string) bool {
		return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
	}
	funcs["hasPrefix"] = func(str, prefix string) bool {
		return strings.HasPrefix(strings.ToLower(str), strings.ToLower(prefix))
	}
	funcs["hasSuffix"] = func(str, suffix string) bool {
		return strings.HasSuffix(strings.ToLower(str), strings.ToLower(suffix))
	}
	funcs["lower"] = strings.ToLower
	funcs["upper"] = strings.ToUpper

	// Shape helpers
	funcs["between"] = func(v, lo, hi int) bool {
		return v >= lo && v <= hi
	}

	return funcs
}

func addPosterFields(env map[string]any, p cinematerial.Poster) {
	env["Poster"] = p
	env["ID"] = p.ID
	env["URL"] = p.URL
	env["Width"] = p.Width
	env["Height"] = p.Height
	env["Type"] = p.Type
	env["Language"] = p.Language
	env["Country"] = p.Country
	env["Area"] = p.Area()
	env["AspectRatio"] = p.AspectRatio()
	env["isPortrait"] = func() bool { return p.Height > p.Width }
	env["isLandscape"] = func() bool { return p.Width > p.Height }
}
