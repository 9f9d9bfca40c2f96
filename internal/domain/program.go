package domain

import (
	"context"
	"fmt"
	"go/ast"
	"go/token"

	"go.uber.org/zap"

	"github.com/mouse-blink/smartcache/internal/adapter"
	"github.com/mouse-blink/smartcache/internal/logging"
	"github.com/mouse-blink/smartcache/internal/memo"
	m "github.com/mouse-blink/smartcache/internal/model"
)

// Options configure how a program is loaded.
type Options struct {
	PureOperations   []string
	AllowIdentReturn bool
	KeyMode          memo.KeyMode
	Logger           *zap.Logger
	Cache            *memo.Cache
	Files            adapter.GoFileAdapter
	Sources          adapter.SourceFSAdapter
	Engine           adapter.EngineAdapter
}

// Option mutates Options.
type Option func(*Options)

// WithPureOps extends the pure-operation set.
func WithPureOps(names ...string) Option {
	return func(o *Options) { o.PureOperations = append(o.PureOperations, names...) }
}

// WithAllowIdentReturn accepts returns of bare identifiers as functional.
func WithAllowIdentReturn(allow bool) Option {
	return func(o *Options) { o.AllowIdentReturn = allow }
}

// WithMemoKeyMode selects how cache keys are formed.
func WithMemoKeyMode(mode memo.KeyMode) Option {
	return func(o *Options) { o.KeyMode = mode }
}

// WithLogger sets the logger for every component of the program.
func WithLogger(log *zap.Logger) Option {
	return func(o *Options) { o.Logger = log }
}

// WithMemo shares a result cache between programs.
func WithMemo(cache *memo.Cache) Option {
	return func(o *Options) { o.Cache = cache }
}

// WithEngine replaces the execution engine.
func WithEngine(engine adapter.EngineAdapter) Option {
	return func(o *Options) { o.Engine = engine }
}

// WithAdapters replaces the file system and Go file adapters.
func WithAdapters(sources adapter.SourceFSAdapter, files adapter.GoFileAdapter) Option {
	return func(o *Options) {
		if sources != nil {
			o.Sources = sources
		}

		if files != nil {
			o.Files = files
		}
	}
}

func (o *Options) classifier() *Classifier {
	return NewClassifier(WithPureOperations(o.PureOperations...), WithIdentReturns(o.AllowIdentReturn))
}

func defaultOptions(opts []Option) Options {
	o := Options{KeyMode: memo.KeyByName}
	for _, opt := range opts {
		opt(&o)
	}

	o.Logger = logging.OrNop(o.Logger)

	if o.KeyMode == "" {
		o.KeyMode = memo.KeyByName
	}

	if o.Cache == nil {
		o.Cache = memo.New()
	}

	if o.Files == nil {
		o.Files = adapter.NewLocalGoFileAdapter()
	}

	if o.Sources == nil {
		o.Sources = adapter.NewLocalSourceFSAdapter()
	}

	if o.Engine == nil {
		o.Engine = adapter.NewYaegiEngineAdapter(nil, nil)
	}

	return o
}

// Program is a loaded, classified and instrumented source file. Routines
// are executed by name through Invoke.
type Program struct {
	path      m.Path
	fset      *token.FileSet
	file      *ast.File
	files     adapter.GoFileAdapter
	verdicts  []m.Verdict
	callSites []m.CallSite
	executor  *Executor
}

// Load reads path, parses it and instruments its call sites. A parse
// failure is returned wrapped in ErrParse.
func Load(path m.Path, opts ...Option) (*Program, error) {
	o := defaultOptions(opts)

	src, err := o.Sources.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	return load(path, src, o)
}

// LoadSource is Load for source held in memory. name is used in positions.
func LoadSource(name string, src []byte, opts ...Option) (*Program, error) {
	return load(m.Path(name), src, defaultOptions(opts))
}

func load(path m.Path, src []byte, o Options) (*Program, error) {
	fset := token.NewFileSet()

	file, err := o.Files.Parse(fset, string(path), src)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrParse, path, err)
	}

	classifier := o.classifier()
	rewriter := NewRewriter(classifier, WithKeyMode(o.KeyMode), WithRewriterLogger(o.Logger))

	p := &Program{path: path, fset: fset, file: file, files: o.Files}
	p.verdicts = Classify(fset, file, classifier)

	// Instrument classifies the bodies again before rewriting them, with the
	// same classifier, so both agree.
	Prelude(fset, file)
	p.callSites = rewriter.Instrument(fset, file, src)

	functional := make(map[string]bool, len(p.verdicts))
	for _, v := range p.verdicts {
		functional[v.Routine.Name] = v.Functional
	}

	p.executor = NewExecutor(fset, file, o.Engine,
		WithCache(o.Cache),
		WithVerdicts(functional),
		WithExecutorRewriter(rewriter),
		WithPrinter(o.Files),
		WithExecutorLogger(o.Logger),
	)

	o.Logger.Debug("loaded program",
		zap.String("path", string(path)),
		zap.Int("routines", len(p.verdicts)),
		zap.Int("call_sites", len(p.callSites)))

	return p, nil
}

// Classify explains every routine of file in source order.
func Classify(fset *token.FileSet, file *ast.File, classifier *Classifier) []m.Verdict {
	routines := Routines(file)
	list := RoutineList(fset, file)
	verdicts := make([]m.Verdict, 0, len(list))

	for _, r := range list {
		verdicts = append(verdicts, classifier.Explain(fset, routines[r.Name], routines))
	}

	return verdicts
}

// Invoke runs the routine called name with no arguments.
func (p *Program) Invoke(ctx context.Context, name string) (any, error) {
	return p.executor.Invoke(ctx, name)
}

// Path returns the file the program was loaded from.
func (p *Program) Path() m.Path {
	return p.path
}

// Routines lists the program's routines in source order.
func (p *Program) Routines() []m.Routine {
	routines := make([]m.Routine, 0, len(p.verdicts))
	for _, v := range p.verdicts {
		routines = append(routines, v.Routine)
	}

	return routines
}

// Verdicts returns the classification computed when the program was loaded.
func (p *Program) Verdicts() []m.Verdict {
	return p.verdicts
}

// CallSites returns the calls the rewriter examined.
func (p *Program) CallSites() []m.CallSite {
	return p.callSites
}

// Cache returns the program's result cache.
func (p *Program) Cache() *memo.Cache {
	return p.executor.Cache()
}

// Source prints the instrumented file.
func (p *Program) Source() ([]byte, error) {
	return p.files.Format(p.fset, p.file)
}

// Reports converts the verdicts into persisted reports stamped with hash.
// Each call site is attached to the routine it appears in.
func (p *Program) Reports(hash string) []m.Report {
	sites := make(map[string][]m.CallSite)
	for _, site := range p.callSites {
		sites[site.Caller] = append(sites[site.Caller], site)
	}

	reports := make([]m.Report, 0, len(p.verdicts))

	for _, v := range p.verdicts {
		reports = append(reports, m.Report{
			Source:     p.path,
			Hash:       hash,
			Routine:    v.Routine.Name,
			Line:       v.Routine.Line,
			Functional: v.Functional,
			Reasons:    v.Reasons,
			CallSites:  sites[v.Routine.Name],
		})
	}

	return reports
}
