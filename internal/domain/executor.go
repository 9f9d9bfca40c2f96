package domain

import (
	"context"
	"fmt"
	"go/ast"
	"go/token"
	"strconv"
	"sync"

	"go.uber.org/zap"

	"github.com/mouse-blink/smartcache/internal/adapter"
	"github.com/mouse-blink/smartcache/internal/logging"
	"github.com/mouse-blink/smartcache/internal/memo"
)

const (
	// unitPackage is the package name the program is compiled under, so a
	// package main is never run as a program.
	unitPackage = "smartcacheunit"
	entryPrefix = "SmartcacheEntry_"
	resultSlot  = "smartcacheResult"
	memoPackage = "memo"
)

// ExecutorOption configures an Executor.
type ExecutorOption func(*Executor)

// WithCache shares cache with the executor. Each executor otherwise owns a new one.
func WithCache(cache *memo.Cache) ExecutorOption {
	return func(e *Executor) {
		if cache != nil {
			e.cache = cache
		}
	}
}

// WithExecutorRewriter sets the rewriter applied to entry routines.
func WithExecutorRewriter(r *Rewriter) ExecutorOption {
	return func(e *Executor) {
		if r != nil {
			e.rewriter = r
		}
	}
}

// WithPrinter sets the adapter used to print the unit before compiling it.
func WithPrinter(p adapter.GoFileAdapter) ExecutorOption {
	return func(e *Executor) {
		if p != nil {
			e.printer = p
		}
	}
}

// WithVerdicts supplies the verdicts entry routines are wrapped by. Pass the
// verdicts computed before the file was instrumented: a rewritten body no
// longer classifies as it did. Without it the file is classified as it is.
func WithVerdicts(verdicts map[string]bool) ExecutorOption {
	return func(e *Executor) {
		e.verdicts = verdicts
	}
}

// WithExecutorLogger sets the executor's logger.
func WithExecutorLogger(log *zap.Logger) ExecutorOption {
	return func(e *Executor) {
		e.log = logging.OrNop(log)
	}
}

// Executor runs routines of a parsed file by name.
//
// The file is compiled once, on first use, together with one synthetic entry
// routine per invocable routine. The entry stores the routine's result in a
// well-known result slot and goes through the rewriter, so a functional
// routine invoked directly is cached under its own name. The entries live only
// in a copy of the declaration list: the caller's file is never modified.
type Executor struct {
	fset     *token.FileSet
	file     *ast.File
	engine   adapter.EngineAdapter
	printer  adapter.GoFileAdapter
	rewriter *Rewriter
	cache    *memo.Cache
	verdicts map[string]bool
	log      *zap.Logger

	once     sync.Once
	err      error
	known    map[string]struct{}
	dispatch map[string]func() any
}

// NewExecutor returns an executor for file. Nothing is compiled until the
// first Invoke.
func NewExecutor(fset *token.FileSet, file *ast.File, engine adapter.EngineAdapter, opts ...ExecutorOption) *Executor {
	e := &Executor{
		fset:    fset,
		file:    file,
		engine:  engine,
		printer: adapter.NewLocalGoFileAdapter(),
		cache:   memo.New(),
		log:     zap.NewNop(),
	}

	for _, opt := range opts {
		opt(e)
	}

	if e.rewriter == nil {
		e.rewriter = NewRewriter(nil, WithRewriterLogger(e.log))
	}

	return e
}

// Cache returns the cache instrumented calls read and write.
func (e *Executor) Cache() *memo.Cache {
	return e.cache
}

// Invoke runs the routine called name and returns its result. Routines with
// no result return nil.
func (e *Executor) Invoke(ctx context.Context, name string) (result any, err error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	e.once.Do(func() {
		e.err = e.compile()
	})

	if e.err != nil {
		return nil, e.err
	}

	fn, ok := e.dispatch[name]
	if !ok {
		if _, known := e.known[name]; known {
			return nil, fmt.Errorf("%s: %w", name, ErrNotInvocable)
		}

		return nil, fmt.Errorf("%s: %w", name, ErrRoutineNotFound)
	}

	defer func() {
		if r := recover(); r != nil {
			result, err = nil, fmt.Errorf("%s: %w: %v", name, ErrExecution, r)
		}
	}()

	return fn(), nil
}

func (e *Executor) compile() error {
	if e.file == nil {
		return fmt.Errorf("%w: no file to execute", ErrExecution)
	}

	routines := Routines(e.file)
	e.known = make(map[string]struct{}, len(routines))

	for name := range routines {
		e.known[name] = struct{}{}
	}

	unit := *e.file
	unit.Name = ast.NewIdent(unitPackage)
	unit.Decls = make([]ast.Decl, 0, len(e.file.Decls)+len(routines)+2)

	if !hasPrelude(e.file) {
		if importsRuntime(e.file) {
			unit.Decls = append(unit.Decls, preludeUse())
		} else {
			unit.Decls = append(unit.Decls, preludeDecls()...)
		}
	}

	unit.Decls = append(unit.Decls, e.file.Decls...)

	var entries []*ast.FuncDecl

	for _, r := range RoutineList(e.fset, e.file) {
		if !r.Invocable() {
			continue
		}

		entry := entryDecl(r.Name, r.Results)
		entries = append(entries, entry)
		unit.Decls = append(unit.Decls, entry)
	}

	verdicts := e.verdicts
	if verdicts == nil {
		verdicts = e.rewriter.Verdicts(routines)
	}

	e.rewriter.rewrite(e.fset, entries, routines, verdicts, buildDirectiveIndex(e.fset, e.file, nil))

	src, err := e.printer.Format(e.fset, &unit)
	if err != nil {
		return fmt.Errorf("%w: failed to print unit: %w", ErrExecution, err)
	}

	compiled, err := e.engine.Compile(src, adapter.Binding{
		ImportPath: MemoImportPath,
		Name:       memoPackage,
		Symbols: map[string]any{
			cachedFunc:     e.cache.Cached,
			cachedArgsFunc: e.cache.CachedArgs,
		},
	})
	if err != nil {
		return fmt.Errorf("%w: failed to compile: %w", ErrExecution, err)
	}

	e.dispatch = make(map[string]func() any, len(entries))

	for _, entry := range entries {
		name := entry.Name.Name[len(entryPrefix):]

		fn, err := compiled.Func(unitPackage, entry.Name.Name)
		if err != nil {
			return fmt.Errorf("%w: failed to resolve %s: %w", ErrExecution, name, err)
		}

		e.dispatch[name] = fn
	}

	e.log.Debug("compiled unit", zap.Int("entries", len(entries)))

	return nil
}

// entryDecl builds
//
//	func SmartcacheEntry_name() (smartcacheResult any) { smartcacheResult = name(); return }
//
// or, for a routine without result, a body that only calls it.
func entryDecl(name string, results int) *ast.FuncDecl {
	call := &ast.CallExpr{Fun: ast.NewIdent(name)}

	var body []ast.Stmt
	if results == 0 {
		body = []ast.Stmt{&ast.ExprStmt{X: call}, &ast.ReturnStmt{}}
	} else {
		body = []ast.Stmt{
			&ast.AssignStmt{Lhs: []ast.Expr{ast.NewIdent(resultSlot)}, Tok: token.ASSIGN, Rhs: []ast.Expr{call}},
			&ast.ReturnStmt{},
		}
	}

	return &ast.FuncDecl{
		Name: ast.NewIdent(entryPrefix + name),
		Type: &ast.FuncType{
			Params: &ast.FieldList{},
			Results: &ast.FieldList{List: []*ast.Field{{
				Names: []*ast.Ident{ast.NewIdent(resultSlot)},
				Type:  ast.NewIdent("any"),
			}}},
		},
		Body: &ast.BlockStmt{List: body},
	}
}

func importsRuntime(file *ast.File) bool {
	for _, imp := range file.Imports {
		if path, err := strconv.Unquote(imp.Path.Value); err == nil && path == MemoImportPath {
			return true
		}
	}

	return false
}
