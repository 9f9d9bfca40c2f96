package domain

import (
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"sort"
	"strconv"

	"go.uber.org/zap"
	"golang.org/x/tools/go/ast/astutil"

	"github.com/mouse-blink/smartcache/internal/logging"
	"github.com/mouse-blink/smartcache/internal/memo"
	m "github.com/mouse-blink/smartcache/internal/model"
)

const (
	// MemoImportPath is the import path the memo runtime is bound under.
	MemoImportPath = "smartcache/memo"
	// MemoPackageName is the local name instrumented files import the runtime as.
	MemoPackageName = "smartcachememo"

	cachedFunc     = "Cached"
	cachedArgsFunc = "CachedArgs"
)

// RewriterOption configures a Rewriter.
type RewriterOption func(*Rewriter)

// WithKeyMode selects which memo wrapper instrumented calls go through.
func WithKeyMode(mode memo.KeyMode) RewriterOption {
	return func(r *Rewriter) {
		r.mode = mode
	}
}

// WithRewriterLogger sets the logger verdicts are reported to.
func WithRewriterLogger(log *zap.Logger) RewriterOption {
	return func(r *Rewriter) {
		r.log = logging.OrNop(log)
	}
}

// Rewriter redirects calls to functional routines through the memo runtime.
type Rewriter struct {
	classifier *Classifier
	mode       memo.KeyMode
	log        *zap.Logger
}

// NewRewriter returns a Rewriter driven by classifier. A nil classifier
// means NewClassifier().
func NewRewriter(classifier *Classifier, opts ...RewriterOption) *Rewriter {
	if classifier == nil {
		classifier = NewClassifier()
	}

	r := &Rewriter{classifier: classifier, mode: memo.KeyByName, log: zap.NewNop()}
	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Instrument rewrites, in place, the direct call statements of every routine
// in file whose callee is a functional routine. src is the text file was
// parsed from and is used to place //smartcache:ignore comments; with a nil
// src only trailing and file-level directives are honoured.
//
// Every routine is classified before any body is rewritten, so a wrapped
// call never changes the verdict of the routine containing it.
//
// Every call to a top-level routine is reported, wrapped or not. Instrument
// is idempotent: a wrapped call no longer has a bare identifier callee.
func (r *Rewriter) Instrument(fset *token.FileSet, file *ast.File, src []byte) []m.CallSite {
	routines := Routines(file)
	callers := sortedRoutines(routines)

	return r.rewrite(fset, callers, routines, r.Verdicts(routines), buildDirectiveIndex(fset, file, src))
}

// Verdicts classifies every routine and logs each verdict.
func (r *Rewriter) Verdicts(routines map[string]*ast.FuncDecl) map[string]bool {
	verdicts := make(map[string]bool, len(routines))

	for _, fd := range sortedRoutines(routines) {
		functional := r.classifier.Function(fd, routines)
		verdicts[fd.Name.Name] = functional
		r.logVerdict(fd.Name.Name, functional)
	}

	return verdicts
}

func sortedRoutines(routines map[string]*ast.FuncDecl) []*ast.FuncDecl {
	list := make([]*ast.FuncDecl, 0, len(routines))
	for _, fd := range routines {
		list = append(list, fd)
	}

	sort.Slice(list, func(i, j int) bool { return list[i].Pos() < list[j].Pos() })

	return list
}

func (r *Rewriter) rewrite(
	fset *token.FileSet,
	callers []*ast.FuncDecl,
	routines map[string]*ast.FuncDecl,
	verdicts map[string]bool,
	idx directiveIndex,
) []m.CallSite {
	var sites []m.CallSite

	for _, caller := range callers {
		if caller.Body == nil {
			continue
		}

		for _, stmt := range caller.Body.List {
			call, replace, discard := callStatement(stmt)
			if call == nil {
				continue
			}

			ident, ok := call.Fun.(*ast.Ident)
			if !ok {
				continue
			}

			callee, ok := routines[ident.Name]
			if !ok {
				continue
			}

			site := m.CallSite{Caller: caller.Name.Name, Callee: ident.Name, Line: lineOf(fset, call.Pos())}

			if verdicts[ident.Name] {
				site.Skipped = r.skipReason(call, callee, idx, site.Line)
				if site.Skipped == "" {
					replace(r.wrap(call, callee, discard))
					site.Wrapped = true
				}
			}

			sites = append(sites, site)
		}
	}

	return sites
}

func (r *Rewriter) logVerdict(name string, functional bool) {
	if functional {
		r.log.Debug(name + " is functional")
	} else {
		r.log.Debug(name + " is not functional")
	}
}

func (r *Rewriter) skipReason(call *ast.CallExpr, callee *ast.FuncDecl, idx directiveIndex, line int) string {
	switch {
	case idx.ignores(line):
		return fmt.Sprintf("disabled by //%s", directiveIgnore)
	case callee.Type.Results.NumFields() > 1:
		return "callee returns more than one value"
	case call.Ellipsis.IsValid():
		return "call spreads a variadic argument"
	case r.mode == memo.KeyByArguments && !plainArguments(call.Args):
		return "arguments are not identifiers or literals"
	default:
		return ""
	}
}

// callStatement returns the call carried by an expression statement or a
// single-value assignment, and a function that swaps it for another
// expression. discard is set for expression statements, whose result is unused.
func callStatement(stmt ast.Stmt) (call *ast.CallExpr, replace func(ast.Expr), discard bool) {
	switch s := stmt.(type) {
	case *ast.ExprStmt:
		if call, ok := s.X.(*ast.CallExpr); ok {
			return call, func(e ast.Expr) { s.X = e }, true
		}
	case *ast.AssignStmt:
		if len(s.Rhs) != 1 {
			return nil, nil, false
		}

		if call, ok := s.Rhs[0].(*ast.CallExpr); ok {
			return call, func(e ast.Expr) { s.Rhs[0] = e }, false
		}
	}

	return nil, nil, false
}

// wrap builds smartcachememo.Cached("f", func() any { return f(...) }).(T).
// A discarded result is not asserted: a type assertion cannot stand as a
// statement.
func (r *Rewriter) wrap(call *ast.CallExpr, callee *ast.FuncDecl, discard bool) ast.Expr {
	name := callee.Name.Name
	results := callee.Type.Results.NumFields()

	body := []ast.Stmt{&ast.ReturnStmt{Results: []ast.Expr{call}}}
	if results == 0 {
		body = []ast.Stmt{&ast.ExprStmt{X: call}, &ast.ReturnStmt{Results: []ast.Expr{ast.NewIdent("nil")}}}
	}

	thunk := &ast.FuncLit{
		Type: &ast.FuncType{
			Params:  &ast.FieldList{},
			Results: &ast.FieldList{List: []*ast.Field{{Type: ast.NewIdent("any")}}},
		},
		Body: &ast.BlockStmt{List: body},
	}

	fn := cachedFunc
	args := []ast.Expr{&ast.BasicLit{Kind: token.STRING, Value: strconv.Quote(name)}, thunk}

	if r.mode == memo.KeyByArguments {
		fn = cachedArgsFunc
		for _, arg := range call.Args {
			args = append(args, cloneArgument(arg))
		}
	}

	wrapped := &ast.CallExpr{
		Fun:  &ast.SelectorExpr{X: ast.NewIdent(MemoPackageName), Sel: ast.NewIdent(fn)},
		Args: args,
	}

	if results == 0 || discard {
		return wrapped
	}

	return assertResult(wrapped, types.ExprString(callee.Type.Results.List[0].Type), callee.Type.Results.List[0].Type)
}

// assertResult converts the cached any back to the callee's result type. A
// nil interface value cannot be asserted directly, so results that may be
// interfaces go through a comma-ok assertion that yields the zero value.
func assertResult(value ast.Expr, typeName string, typ ast.Expr) ast.Expr {
	if !mayBeInterface(typ) {
		return &ast.TypeAssertExpr{X: value, Type: ast.NewIdent(typeName)}
	}

	v := ast.NewIdent("v")

	return &ast.CallExpr{Fun: &ast.FuncLit{
		Type: &ast.FuncType{
			Params:  &ast.FieldList{},
			Results: &ast.FieldList{List: []*ast.Field{{Type: ast.NewIdent(typeName)}}},
		},
		Body: &ast.BlockStmt{List: []ast.Stmt{
			&ast.AssignStmt{
				Lhs: []ast.Expr{v, ast.NewIdent("_")},
				Tok: token.DEFINE,
				Rhs: []ast.Expr{&ast.TypeAssertExpr{X: value, Type: ast.NewIdent(typeName)}},
			},
			&ast.ReturnStmt{Results: []ast.Expr{ast.NewIdent("v")}},
		}},
	}}
}

var concreteBuiltins = map[string]struct{}{
	"bool": {}, "string": {}, "byte": {}, "rune": {}, "uintptr": {},
	"int": {}, "int8": {}, "int16": {}, "int32": {}, "int64": {},
	"uint": {}, "uint8": {}, "uint16": {}, "uint32": {}, "uint64": {},
	"float32": {}, "float64": {}, "complex64": {}, "complex128": {},
}

// mayBeInterface is a syntactic guess; named types are assumed to possibly
// be interfaces because the file is not type checked.
func mayBeInterface(typ ast.Expr) bool {
	switch t := typ.(type) {
	case *ast.Ident:
		_, concrete := concreteBuiltins[t.Name]
		return !concrete
	case *ast.ArrayType, *ast.MapType, *ast.StarExpr, *ast.FuncType, *ast.ChanType, *ast.StructType:
		return false
	case *ast.ParenExpr:
		return mayBeInterface(t.X)
	default:
		return true
	}
}

func plainArguments(args []ast.Expr) bool {
	for _, arg := range args {
		switch arg.(type) {
		case *ast.Ident, *ast.BasicLit:
		default:
			return false
		}
	}

	return true
}

func cloneArgument(arg ast.Expr) ast.Expr {
	switch a := arg.(type) {
	case *ast.Ident:
		return ast.NewIdent(a.Name)
	case *ast.BasicLit:
		return &ast.BasicLit{Kind: a.Kind, Value: a.Value}
	default:
		return arg
	}
}

// Prelude makes file reference the memo runtime: it adds the import and a
// blank use so the import is never unused. It is safe to call repeatedly.
func Prelude(fset *token.FileSet, file *ast.File) {
	astutil.AddNamedImport(fset, file, MemoPackageName, MemoImportPath)

	if hasPrelude(file) {
		return
	}

	at := 0
	for i, d := range file.Decls {
		if gd, ok := d.(*ast.GenDecl); ok && gd.Tok == token.IMPORT {
			at = i + 1
		}
	}

	file.Decls = append(file.Decls[:at], append([]ast.Decl{preludeUse()}, file.Decls[at:]...)...)
}

// preludeDecls returns a fresh import of the runtime and its blank use.
func preludeDecls() []ast.Decl {
	imp := &ast.GenDecl{
		Tok: token.IMPORT,
		Specs: []ast.Spec{&ast.ImportSpec{
			Name: ast.NewIdent(MemoPackageName),
			Path: &ast.BasicLit{Kind: token.STRING, Value: strconv.Quote(MemoImportPath)},
		}},
	}

	return []ast.Decl{imp, preludeUse()}
}

func preludeUse() *ast.GenDecl {
	return &ast.GenDecl{
		Tok: token.VAR,
		Specs: []ast.Spec{&ast.ValueSpec{
			Names:  []*ast.Ident{ast.NewIdent("_")},
			Values: []ast.Expr{&ast.SelectorExpr{X: ast.NewIdent(MemoPackageName), Sel: ast.NewIdent(cachedFunc)}},
		}},
	}
}

func hasPrelude(file *ast.File) bool {
	for _, d := range file.Decls {
		gd, ok := d.(*ast.GenDecl)
		if !ok || gd.Tok != token.VAR {
			continue
		}

		for _, spec := range gd.Specs {
			vs, ok := spec.(*ast.ValueSpec)
			if !ok || len(vs.Names) != 1 || vs.Names[0].Name != "_" || len(vs.Values) != 1 {
				continue
			}

			sel, ok := vs.Values[0].(*ast.SelectorExpr)
			if !ok {
				continue
			}

			if x, ok := sel.X.(*ast.Ident); ok && x.Name == MemoPackageName && sel.Sel.Name == cachedFunc {
				return true
			}
		}
	}

	return false
}
