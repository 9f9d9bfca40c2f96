package domain

import (
	"go/ast"
	"go/parser"
	"go/token"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/mouse-blink/smartcache/internal/adapter"
	"github.com/mouse-blink/smartcache/internal/memo"
	m "github.com/mouse-blink/smartcache/internal/model"
)

const rewriteSource = `package unit

func total() int { return sum([]int{1, 2, 3}) }

func noop() {}

func pair() (int, int) { return sum(xs), sum(xs) }

func spread(xs ...int) int { return sum(xs) }

func impure() int {
	counter++
	return counter
}

func find() error { return sum(xs) }

func report() int {
	x := total()
	noop()
	a, b := pair()
	y := spread(xs...)
	z := impure()
	err := find()
	println(x)
	if true {
		w := total()
	}
	return x
}
`

func parseSource(t *testing.T, src string) (*token.FileSet, *ast.File) {
	t.Helper()

	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "unit.go", src, parser.ParseComments)
	require.NoError(t, err)

	return fset, file
}

// printed renders file with runs of whitespace collapsed to one space.
func printed(t *testing.T, fset *token.FileSet, file *ast.File) string {
	t.Helper()

	out, err := adapter.NewLocalGoFileAdapter().Format(fset, file)
	require.NoError(t, err)

	return strings.Join(strings.Fields(string(out)), " ")
}

func TestRewriter_Instrument(t *testing.T) {
	fset, file := parseSource(t, rewriteSource)

	sites := NewRewriter(nil).Instrument(fset, file, []byte(rewriteSource))

	assert.Equal(t, []m.CallSite{
		{Caller: "report", Callee: "total", Line: 19, Wrapped: true},
		{Caller: "report", Callee: "noop", Line: 20, Wrapped: true},
		{Caller: "report", Callee: "pair", Line: 21, Skipped: "callee returns more than one value"},
		{Caller: "report", Callee: "spread", Line: 22, Skipped: "call spreads a variadic argument"},
		{Caller: "report", Callee: "impure", Line: 23},
		{Caller: "report", Callee: "find", Line: 24, Wrapped: true},
	}, sites)

	out := printed(t, fset, file)
	assert.Contains(t, out, `x := smartcachememo.Cached("total", func() any { return total() }).(int)`)
	assert.Contains(t, out, `smartcachememo.Cached("noop", func() any {`)
	assert.Contains(t, out, `v, _ := smartcachememo.Cached("find", func() any { return find() }).(error)`)
	assert.Contains(t, out, "a, b := pair()")
	assert.Contains(t, out, "y := spread(xs...)")
	assert.Contains(t, out, "z := impure()")
	assert.Contains(t, out, "w := total()", "nested statements are not scanned")
	assert.Contains(t, out, "println(x)")
}

func TestRewriter_Instrument_Idempotent(t *testing.T) {
	fset, file := parseSource(t, rewriteSource)
	rewriter := NewRewriter(nil)

	rewriter.Instrument(fset, file, nil)
	first := printed(t, fset, file)

	sites := rewriter.Instrument(fset, file, nil)
	for _, site := range sites {
		assert.False(t, site.Wrapped, "%s was wrapped twice", site.Callee)
	}

	assert.Equal(t, first, printed(t, fset, file))
}

func TestRewriter_Instrument_ArgumentKeys(t *testing.T) {
	src := `package unit

func scaled(n int) int { return sum([]int{1}) }

func report(n int) int {
	x := scaled(2)
	y := scaled(n)
	z := scaled(n + 1)
	return x
}
`
	fset, file := parseSource(t, src)

	sites := NewRewriter(nil, WithKeyMode(memo.KeyByArguments)).Instrument(fset, file, nil)

	require.Len(t, sites, 3)
	assert.True(t, sites[0].Wrapped)
	assert.True(t, sites[1].Wrapped)
	assert.Equal(t, "arguments are not identifiers or literals", sites[2].Skipped)

	out := printed(t, fset, file)
	assert.Contains(t, out, `x := smartcachememo.CachedArgs("scaled", func() any { return scaled(2) }, 2).(int)`)
	assert.Contains(t, out, `y := smartcachememo.CachedArgs("scaled", func() any { return scaled(n) }, n).(int)`)
	assert.Contains(t, out, "z := scaled(n + 1)")
}

func TestRewriter_Instrument_IgnoreDirectives(t *testing.T) {
	src := `package unit

func total() int { return sum([]int{1}) }

func report() int {
	//smartcache:ignore
	x := total()
	y := total() //smartcache:ignore
	z := total()
	return z
}
`
	fset, file := parseSource(t, src)

	sites := NewRewriter(nil).Instrument(fset, file, []byte(src))

	require.Len(t, sites, 3)
	assert.Equal(t, "disabled by //smartcache:ignore", sites[0].Skipped)
	assert.Equal(t, "disabled by //smartcache:ignore", sites[1].Skipped)
	assert.True(t, sites[2].Wrapped)
}

func TestRewriter_Instrument_FileIgnore(t *testing.T) {
	src := `//smartcache:ignore

package unit

func total() int { return sum([]int{1}) }

func report() int {
	x := total()
	return x
}
`
	fset, file := parseSource(t, src)

	sites := NewRewriter(nil).Instrument(fset, file, []byte(src))

	require.Len(t, sites, 1)
	assert.False(t, sites[0].Wrapped)
	assert.NotEmpty(t, sites[0].Skipped)
}

func TestRewriter_Instrument_CustomClassifier(t *testing.T) {
	src := `package unit

func size() int { return len([]int{1}) }

func report() int {
	n := size()
	return n
}
`
	fset, file := parseSource(t, src)
	assert.False(t, NewRewriter(nil).Instrument(fset, file, nil)[0].Wrapped)

	fset, file = parseSource(t, src)
	assert.True(t, NewRewriter(NewClassifier(WithPureOperations("len"))).Instrument(fset, file, nil)[0].Wrapped)
}

// b is declared before a so a is wrapped in b before a's own body is rewritten.
const pureRoutineSource = `package unit

func helper() []int { return append([]int{}, 1) }

func b() []int {
	x := a()
	return x
}

func a() []int {
	helper()
	return helper()
}

func c() []int {
	y := a()
	return y
}
`

func TestRewriter_Instrument_PureOperationNamingRoutine(t *testing.T) {
	fset, file := parseSource(t, pureRoutineSource)
	rewriter := NewRewriter(NewClassifier(WithPureOperations("helper")))

	assert.Equal(t, map[string]bool{"helper": true, "a": true, "b": false, "c": false},
		rewriter.Verdicts(Routines(file)))

	sites := rewriter.Instrument(fset, file, nil)

	assert.Equal(t, []m.CallSite{
		{Caller: "b", Callee: "a", Line: 6, Wrapped: true},
		{Caller: "a", Callee: "helper", Line: 11, Wrapped: true},
		{Caller: "c", Callee: "a", Line: 16, Wrapped: true},
	}, sites)

	out := printed(t, fset, file)
	assert.Contains(t, out, `x := smartcachememo.Cached("a", func() any { return a() }).([]int)`)
	assert.Contains(t, out, `y := smartcachememo.Cached("a", func() any { return a() }).([]int)`)
	assert.Contains(t, out, `smartcachememo.Cached("helper", func() any { return helper() })`)
	assert.NotContains(t, out, `return helper() }).(`, "a discarded result is not asserted")
}

func TestRewriter_LogsVerdicts(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	fset, file := parseSource(t, rewriteSource)

	NewRewriter(nil, WithRewriterLogger(zap.New(core))).Instrument(fset, file, nil)

	assert.Equal(t, 1, logs.FilterMessage("total is functional").Len())
	assert.Equal(t, 1, logs.FilterMessage("impure is not functional").Len())
}

func TestPrelude(t *testing.T) {
	src := `package unit

import "fmt"

func hello() { fmt.Println("hi") }
`
	fset, file := parseSource(t, src)

	Prelude(fset, file)
	Prelude(fset, file)

	assert.Len(t, file.Imports, 2)
	assert.True(t, hasPrelude(file))
	assert.True(t, importsRuntime(file))

	out := printed(t, fset, file)
	assert.Contains(t, out, `smartcachememo "smartcache/memo"`)
	assert.Equal(t, 1, strings.Count(out, "var _ = smartcachememo.Cached"))
	assert.Less(t, strings.Index(out, "import"), strings.Index(out, "var _ = smartcachememo.Cached"))
	assert.Less(t, strings.Index(out, "var _ = smartcachememo.Cached"), strings.Index(out, "func hello"))
}

func TestPrelude_NoImports(t *testing.T) {
	fset, file := parseSource(t, "package unit\n\nfunc f() {}\n")

	Prelude(fset, file)

	out := printed(t, fset, file)
	assert.Contains(t, out, `import smartcachememo "smartcache/memo"`)
	assert.Contains(t, out, "var _ = smartcachememo.Cached")
}

func TestMayBeInterface(t *testing.T) {
	tests := map[string]bool{
		"int":            false,
		"string":         false,
		"[]int":          false,
		"map[string]int": false,
		"*T":             false,
		"func()":         false,
		"struct{}":       false,
		"(int)":          false,
		"error":          true,
		"any":            true,
		"T":              true,
		"io.Reader":      true,
		"interface{}":    true,
	}

	for src, want := range tests {
		expr, err := parser.ParseExpr(src)
		require.NoError(t, err, src)
		assert.Equal(t, want, mayBeInterface(expr), src)
	}
}

func normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func countOf(s, substr string) int {
	return strings.Count(s, substr)
}
