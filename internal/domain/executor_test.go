package domain

import (
	"bytes"
	"context"
	"errors"
	"go/ast"
	"go/token"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mouse-blink/smartcache/internal/adapter"
	adaptermocks "github.com/mouse-blink/smartcache/internal/adapter/mocks"
	"github.com/mouse-blink/smartcache/internal/memo"
)

const executorSource = `package main

var sumCalls int

func sum(xs []int) int {
	sumCalls++
	total := 0
	for _, x := range xs {
		total += x
	}
	return total
}

func makeSum() int { return sum([]int{1, 2, 3}) }

func report() int {
	x := makeSum()
	return x
}

func sumCount() int { return sumCalls }

func touch() { sumCalls++ }

func add(a, b int) int { return a + b }

func boom() int { panic("boom") }

func main() { touch() }
`

type executorFixture struct {
	fset     *token.FileSet
	file     *ast.File
	executor *Executor
	stderr   *bytes.Buffer
}

func newExecutorFixture(t *testing.T, instrument bool, opts ...ExecutorOption) executorFixture {
	t.Helper()

	fset, file := parseSource(t, executorSource)
	if instrument {
		opts = append([]ExecutorOption{WithVerdicts(NewRewriter(nil).Verdicts(Routines(file)))}, opts...)

		Prelude(fset, file)
		NewRewriter(nil).Instrument(fset, file, nil)
	}

	var stdout, stderr bytes.Buffer

	engine := adapter.NewYaegiEngineAdapter(&stdout, &stderr)

	return executorFixture{
		fset:     fset,
		file:     file,
		executor: NewExecutor(fset, file, engine, opts...),
		stderr:   &stderr,
	}
}

func invokeInt(t *testing.T, e *Executor, name string) int {
	t.Helper()

	v, err := e.Invoke(context.Background(), name)
	require.NoError(t, err)

	n, ok := v.(int)
	require.True(t, ok, "%s returned %T", name, v)

	return n
}

func TestExecutor_Invoke_CachesFunctionalCallee(t *testing.T) {
	f := newExecutorFixture(t, true)

	assert.Equal(t, 6, invokeInt(t, f.executor, "report"))
	assert.Equal(t, 6, invokeInt(t, f.executor, "report"))
	assert.Equal(t, 1, invokeInt(t, f.executor, "sumCount"), "sum ran more than once")

	assert.Equal(t, 6, invokeInt(t, f.executor, "makeSum"))
	assert.Equal(t, 1, invokeInt(t, f.executor, "sumCount"), "direct invocation missed the cache")
	assert.Equal(t, []string{"makeSum"}, f.executor.Cache().Keys())
}

func TestExecutor_Invoke_DirectInvocationPopulatesCache(t *testing.T) {
	f := newExecutorFixture(t, true)

	assert.Equal(t, 6, invokeInt(t, f.executor, "makeSum"))

	v, ok := f.executor.Cache().Load("makeSum")
	require.True(t, ok)
	assert.Equal(t, 6, v)

	assert.Equal(t, 6, invokeInt(t, f.executor, "makeSum"))
	assert.Equal(t, 1, invokeInt(t, f.executor, "sumCount"))

	stats := f.executor.Cache().Stats()
	assert.Equal(t, uint64(1), stats.Misses)
	assert.Equal(t, uint64(1), stats.Hits)
}

func TestExecutor_Invoke_LeavesFileUntouched(t *testing.T) {
	f := newExecutorFixture(t, true)

	before := printed(t, f.fset, f.file)
	declCount := len(f.file.Decls)

	for range 3 {
		_, err := f.executor.Invoke(context.Background(), "report")
		require.NoError(t, err)
	}

	assert.Equal(t, before, printed(t, f.fset, f.file))
	assert.Len(t, f.file.Decls, declCount)
	assert.Equal(t, "main", f.file.Name.Name)
}

func TestExecutor_Invoke_WithoutPrelude(t *testing.T) {
	f := newExecutorFixture(t, false)

	assert.Equal(t, 6, invokeInt(t, f.executor, "makeSum"))
	assert.Equal(t, 6, invokeInt(t, f.executor, "makeSum"))
	assert.Equal(t, 1, invokeInt(t, f.executor, "sumCount"))
}

func TestExecutor_Invoke_ZeroResultRoutine(t *testing.T) {
	f := newExecutorFixture(t, true)

	v, err := f.executor.Invoke(context.Background(), "touch")
	require.NoError(t, err)
	assert.Nil(t, v)

	assert.Equal(t, 1, invokeInt(t, f.executor, "sumCount"))
}

func TestExecutor_Invoke_Errors(t *testing.T) {
	f := newExecutorFixture(t, true)

	_, err := f.executor.Invoke(context.Background(), "missing")
	require.ErrorIs(t, err, ErrRoutineNotFound)

	_, err = f.executor.Invoke(context.Background(), "add")
	require.ErrorIs(t, err, ErrNotInvocable)

	_, err = f.executor.Invoke(context.Background(), "boom")
	require.ErrorIs(t, err, ErrExecution)
	assert.Contains(t, err.Error(), "boom")

	// the executor stays usable after a panic
	assert.Equal(t, 6, invokeInt(t, f.executor, "report"))
}

func TestExecutor_Invoke_CancelledContext(t *testing.T) {
	f := newExecutorFixture(t, true)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.executor.Invoke(ctx, "report")
	require.ErrorIs(t, err, context.Canceled)
}

func TestExecutor_Invoke_SharedCache(t *testing.T) {
	cache := memo.New()
	cache.Store("makeSum", 42)

	f := newExecutorFixture(t, true, WithCache(cache))

	assert.Equal(t, 42, invokeInt(t, f.executor, "report"))
	assert.Equal(t, 0, invokeInt(t, f.executor, "sumCount"))
	assert.Same(t, cache, f.executor.Cache())
}

func TestExecutor_Invoke_Concurrent(t *testing.T) {
	f := newExecutorFixture(t, true)

	var wg sync.WaitGroup

	results := make([]any, 8)
	errs := make([]error, 8)

	for i := range results {
		wg.Add(1)

		go func() {
			defer wg.Done()

			results[i], errs[i] = f.executor.Invoke(context.Background(), "makeSum")
		}()
	}

	wg.Wait()

	for i := range results {
		require.NoError(t, errs[i])
		assert.Equal(t, 6, results[i])
	}

	assert.Equal(t, 1, invokeInt(t, f.executor, "sumCount"))
}

func TestExecutor_CompilesOnce(t *testing.T) {
	fset, file := parseSource(t, executorSource)
	engine := adaptermocks.NewMockEngineAdapter(t)

	engine.EXPECT().Compile(mock.Anything, mock.Anything).Return(nil, errors.New("bad unit")).Once()

	executor := NewExecutor(fset, file, engine)

	_, err := executor.Invoke(context.Background(), "report")
	require.ErrorIs(t, err, ErrExecution)
	assert.Contains(t, err.Error(), "bad unit")

	_, err = executor.Invoke(context.Background(), "report")
	require.ErrorIs(t, err, ErrExecution)
}

func TestExecutor_CompiledUnit(t *testing.T) {
	fset, file := parseSource(t, executorSource)
	Prelude(fset, file)

	engine := adaptermocks.NewMockEngineAdapter(t)
	unit := adaptermocks.NewMockUnit(t)

	var compiled string

	engine.EXPECT().Compile(mock.Anything, mock.Anything).
		Run(func(src []byte, bindings ...adapter.Binding) {
			compiled = string(src)

			require.Len(t, bindings, 1)
			assert.Equal(t, MemoImportPath, bindings[0].ImportPath)
			assert.Equal(t, "memo", bindings[0].Name)
			assert.Contains(t, bindings[0].Symbols, "Cached")
			assert.Contains(t, bindings[0].Symbols, "CachedArgs")
		}).
		Return(unit, nil).Once()
	unit.EXPECT().Func(unitPackage, mock.Anything).Return(func() any { return "ok" }, nil)

	executor := NewExecutor(fset, file, engine)

	v, err := executor.Invoke(context.Background(), "report")
	require.NoError(t, err)
	assert.Equal(t, "ok", v)

	normalized := normalize(compiled)
	assert.Contains(t, normalized, "package smartcacheunit")
	assert.Contains(t, normalized, "func SmartcacheEntry_makeSum() (smartcacheResult any)")
	assert.Contains(t, normalized, `smartcacheResult = smartcachememo.Cached("makeSum", func() any { return makeSum() }).(int)`)
	assert.Contains(t, normalized, "smartcacheResult = report()")
	assert.Contains(t, normalized, "func SmartcacheEntry_main()")
	assert.NotContains(t, normalized, "SmartcacheEntry_add")
	assert.Equal(t, 1, countOf(normalized, "var _ = smartcachememo.Cached"))
}

func TestExecutor_ResolveFailure(t *testing.T) {
	fset, file := parseSource(t, executorSource)
	engine := adaptermocks.NewMockEngineAdapter(t)
	unit := adaptermocks.NewMockUnit(t)

	engine.EXPECT().Compile(mock.Anything, mock.Anything).Return(unit, nil).Once()
	unit.EXPECT().Func(unitPackage, mock.Anything).Return(nil, errors.New("undefined"))

	_, err := NewExecutor(fset, file, engine).Invoke(context.Background(), "report")
	require.ErrorIs(t, err, ErrExecution)
	assert.Contains(t, err.Error(), "failed to resolve")
}

func TestEntryDecl(t *testing.T) {
	fset := token.NewFileSet()
	file := &ast.File{Name: ast.NewIdent("unit"), Decls: []ast.Decl{entryDecl("total", 1), entryDecl("touch", 0)}}

	out := printed(t, fset, file)

	assert.Contains(t, out, "func SmartcacheEntry_total() (smartcacheResult any) {")
	assert.Contains(t, out, "smartcacheResult = total()")
	assert.Contains(t, out, "func SmartcacheEntry_touch() (smartcacheResult any) {")
	assert.NotContains(t, out, "smartcacheResult = touch()")
}

func TestExecutor_Invoke_UsesVerdictsFromBeforeInstrumenting(t *testing.T) {
	fset, file := parseSource(t, pureRoutineSource)
	rewriter := NewRewriter(NewClassifier(WithPureOperations("helper")))
	verdicts := rewriter.Verdicts(Routines(file))

	Prelude(fset, file)
	rewriter.Instrument(fset, file, nil)

	executor := NewExecutor(fset, file, adapter.NewYaegiEngineAdapter(nil, nil),
		WithExecutorRewriter(rewriter), WithVerdicts(verdicts))

	v, err := executor.Invoke(context.Background(), "a")
	require.NoError(t, err)
	assert.Equal(t, []int{1}, v)
	assert.Equal(t, []string{"a", "helper"}, executor.Cache().Keys())
}
