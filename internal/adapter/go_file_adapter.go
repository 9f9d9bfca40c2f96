package adapter

import (
	"bytes"
	"go/ast"
	"go/format"
	"go/parser"
	"go/token"
)

// GoFileAdapter encapsulates Go-specific parsing and printing so the domain
// layer can focus on purity rules while delegating syntax details to an
// infrastructure component.
type GoFileAdapter interface {
	// Parse builds an AST using the provided file set and optional source bytes.
	Parse(fileSet *token.FileSet, filename string, src []byte) (*ast.File, error)
	// Format prints a (possibly rewritten) AST back to gofmt-style source.
	Format(fileSet *token.FileSet, file *ast.File) ([]byte, error)
}

// LocalGoFileAdapter provides a concrete GoFileAdapter backed by go/parser.
type LocalGoFileAdapter struct{}

// NewLocalGoFileAdapter constructs a LocalGoFileAdapter.
func NewLocalGoFileAdapter() *LocalGoFileAdapter {
	return &LocalGoFileAdapter{}
}

// Parse builds an AST for the provided filename/source pair.
func (a *LocalGoFileAdapter) Parse(fileSet *token.FileSet, filename string, src []byte) (*ast.File, error) {
	return parser.ParseFile(fileSet, filename, src, parser.ParseComments)
}

// Format renders file with go/format.
func (a *LocalGoFileAdapter) Format(fileSet *token.FileSet, file *ast.File) ([]byte, error) {
	var buf bytes.Buffer
	if err := format.Node(&buf, fileSet, file); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
