package domain

import (
	"go/parser"
	"go/token"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDirective(t *testing.T) {
	tests := []struct {
		text string
		want directive
	}{
		{text: "//smartcache:ignore", want: directiveIgnore},
		{text: "// smartcache:ignore", want: directiveIgnore},
		{text: "//smartcache:ignore reads a global", want: directiveIgnore},
		{text: "/* smartcache:functional */", want: directiveFunctional},
		{text: "//smartcache:functional", want: directiveFunctional},
		{text: "//smartcache:ignored", want: directiveNone},
		{text: "// regular comment", want: directiveNone},
		{text: "//go:noinline", want: directiveNone},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, parseDirective(tt.text))
		})
	}
}

func TestBuildDirectiveIndex_Lines(t *testing.T) {
	src := []byte("package p\n\nfunc f() {\n\t//smartcache:ignore\n\tg()\n\th() //smartcache:ignore\n\tk()\n}\n")
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "p.go", src, parser.ParseComments)
	require.NoError(t, err)

	idx := buildDirectiveIndex(fset, file, src)

	assert.False(t, idx.file)
	assert.False(t, idx.ignores(4))
	assert.True(t, idx.ignores(5), "leading comment applies to the next line")
	assert.True(t, idx.ignores(6), "trailing comment applies to its own line")
	assert.False(t, idx.ignores(7))
}

func TestBuildDirectiveIndex_WithoutSource(t *testing.T) {
	src := []byte("package p\n\nfunc f() {\n\t//smartcache:ignore\n\tg()\n\th() //smartcache:ignore\n}\n")
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "p.go", src, parser.ParseComments)
	require.NoError(t, err)

	idx := buildDirectiveIndex(fset, file, nil)

	assert.False(t, idx.ignores(5))
	assert.True(t, idx.ignores(6))
}

func TestBuildDirectiveIndex_FileScope(t *testing.T) {
	src := []byte("//smartcache:ignore\n\npackage p\n\nfunc f() { g() }\n")
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "p.go", src, parser.ParseComments)
	require.NoError(t, err)

	idx := buildDirectiveIndex(fset, file, src)

	assert.True(t, idx.file)
	assert.True(t, idx.ignores(5))
}

func TestBuildDirectiveIndex_SkipsRoutineDocs(t *testing.T) {
	src := []byte("package p\n\n//smartcache:ignore\nfunc f() { g() }\n")
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "p.go", src, parser.ParseComments)
	require.NoError(t, err)

	idx := buildDirectiveIndex(fset, file, src)

	assert.False(t, idx.file)
	assert.False(t, idx.ignores(4))
	assert.False(t, buildDirectiveIndex(nil, file, src).ignores(4))
}

func TestIsLeadingComment(t *testing.T) {
	content := []byte("a\n  // c\nb // d\n")
	starts := computeLineStarts(content)

	assert.Equal(t, []int{0, 2, 9, 16}, starts)
	assert.True(t, isLeadingComment(2, 4, starts, content))
	assert.False(t, isLeadingComment(3, 11, starts, content))
	assert.False(t, isLeadingComment(0, 0, starts, content))
	assert.False(t, isLeadingComment(9, 0, starts, content))
}
