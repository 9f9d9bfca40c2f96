package domain

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mouse-blink/smartcache/internal/adapter"
	"github.com/mouse-blink/smartcache/internal/controller"
	m "github.com/mouse-blink/smartcache/internal/model"
)

// DefaultRepeat is how many times Run invokes each routine: one cold run,
// one cached run.
const DefaultRepeat = 2

// AnalyzeArgs selects the sources to classify.
type AnalyzeArgs struct {
	Paths           []m.Path
	Exclude         []string
	Reports         m.Path
	UseCache        bool
	Threads         int
	ShardIndex      int
	TotalShardCount int
}

// RunArgs selects the routines to execute.
type RunArgs struct {
	Path     m.Path
	Routines []string
	Repeat   int
}

// RewriteArgs selects the file to instrument.
type RewriteArgs struct {
	Path m.Path
}

// ViewArgs points at persisted reports.
type ViewArgs struct {
	Reports m.Path
}

// Workflow drives analysis, execution and reporting for the CLI.
type Workflow interface {
	Analyze(args AnalyzeArgs) error
	Run(ctx context.Context, args RunArgs) error
	Rewrite(args RewriteArgs) error
	View(args ViewArgs) error
}

type workflow struct {
	fsAdapter   adapter.SourceFSAdapter
	goAdapter   adapter.GoFileAdapter
	reportStore adapter.ReportStore
	ui          controller.UI
	opts        []Option
}

// NewWorkflow creates a new Workflow instance with the provided adapters.
// opts configure every program the workflow loads.
func NewWorkflow(
	fsAdapter adapter.SourceFSAdapter,
	goAdapter adapter.GoFileAdapter,
	reportStore adapter.ReportStore,
	ui controller.UI,
	opts ...Option,
) Workflow {
	return &workflow{
		fsAdapter:   fsAdapter,
		goAdapter:   goAdapter,
		reportStore: reportStore,
		ui:          ui,
		opts:        opts,
	}
}

// loadOptions routes program loading through the workflow's adapters.
func (w *workflow) loadOptions() []Option {
	opts := append([]Option{}, w.opts...)

	return append(opts, WithAdapters(w.fsAdapter, w.goAdapter))
}

// Analyze classifies every routine of the selected sources and persists the
// reports. With UseCache, sources whose stored reports match their hash are
// not reparsed.
func (w *workflow) Analyze(args AnalyzeArgs) error {
	sources, err := w.fsAdapter.Get(args.Paths, args.Exclude...)
	if err != nil {
		return w.ui.DisplayVerdicts(nil, fmt.Errorf("failed to get sources: %w", err))
	}

	sources = shard(sources, args.ShardIndex, args.TotalShardCount)

	threads := args.Threads
	if threads <= 0 {
		threads = 1
	}

	w.ui.DisplayConcurrencyInfo(threads, args.ShardIndex, max(args.TotalShardCount, 1))

	pending := sources

	var cached []m.FileResult

	if args.UseCache && args.Reports != "" {
		pending, cached, err = w.splitCached(args.Reports, sources)
		if err != nil {
			return w.ui.DisplayVerdicts(nil, err)
		}
	}

	results, err := w.analyzeSources(pending, threads)
	if err != nil {
		return w.ui.DisplayVerdicts(nil, err)
	}

	if args.Reports != "" && len(results) > 0 {
		if err := w.saveReports(args.Reports, results); err != nil {
			return w.ui.DisplayVerdicts(nil, err)
		}
	}

	results = append(results, cached...)
	sortResults(results)

	return w.ui.DisplayVerdicts(results, nil)
}

func (w *workflow) analyzeSources(sources []m.Source, threads int) ([]m.FileResult, error) {
	results := make([]m.FileResult, len(sources))

	var g errgroup.Group

	g.SetLimit(threads)

	for i, source := range sources {
		g.Go(func() error {
			reports, err := w.analyzeSource(source)
			if err != nil {
				return err
			}

			results[i] = m.FileResult{Source: source, Reports: reports}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

func (w *workflow) analyzeSource(source m.Source) ([]m.Report, error) {
	if source.Origin == nil {
		return nil, fmt.Errorf("source origin is nil")
	}

	src, err := w.fsAdapter.ReadFile(source.Origin.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", source.Origin.Path, err)
	}

	p, err := load(source.Origin.Path, src, defaultOptions(w.loadOptions()))
	if err != nil {
		return nil, err
	}

	return p.Reports(source.Origin.Hash), nil
}

func (w *workflow) splitCached(reports m.Path, sources []m.Source) ([]m.Source, []m.FileResult, error) {
	changed, err := w.reportStore.CheckUpdates(reports, sources)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to check report cache: %w", err)
	}

	if len(changed) == len(sources) {
		return sources, nil, nil
	}

	stored, err := w.reportStore.LoadReports(reports)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load reports: %w", err)
	}

	pending := make(map[m.Path]struct{}, len(changed))
	for _, source := range changed {
		pending[source.Origin.Path] = struct{}{}
	}

	byPath := groupReports(stored)

	var cached []m.FileResult

	for _, source := range sources {
		if _, ok := pending[source.Origin.Path]; ok {
			continue
		}

		cached = append(cached, m.FileResult{Source: source, Reports: byPath[source.Origin.Path]})
	}

	return changed, cached, nil
}

func (w *workflow) saveReports(path m.Path, results []m.FileResult) error {
	if err := w.reportStore.SaveReports(path, results); err != nil {
		return fmt.Errorf("failed to save reports: %w", err)
	}

	if err := w.reportStore.RegenerateIndex(path); err != nil {
		return fmt.Errorf("failed to regenerate index: %w", err)
	}

	return nil
}

// Run loads one file and invokes each routine Repeat times, timing every
// run. Without routine names every invocable routine is run. Failed
// invocations are displayed and returned together once all have run.
func (w *workflow) Run(ctx context.Context, args RunArgs) error {
	p, err := Load(args.Path, w.loadOptions()...)
	if err != nil {
		return err
	}

	names := args.Routines
	if len(names) == 0 {
		for _, r := range p.Routines() {
			if r.Invocable() {
				names = append(names, r.Name)
			}
		}
	}

	repeat := args.Repeat
	if repeat <= 0 {
		repeat = DefaultRepeat
	}

	var errs []error

	for _, name := range names {
		exec := w.execute(ctx, p, name, repeat)
		if exec.Err != nil {
			errs = append(errs, exec.Err)
		}

		if err := w.ui.DisplayExecution(exec); err != nil {
			return err
		}
	}

	return errors.Join(errs...)
}

func (w *workflow) execute(ctx context.Context, p *Program, name string, repeat int) m.Execution {
	exec := m.Execution{Source: p.Path(), Routine: name}
	before := p.Cache().Stats()

	for range repeat {
		start := time.Now()
		result, err := p.Invoke(ctx, name)
		exec.Durations = append(exec.Durations, time.Since(start))

		if err != nil {
			exec.Err = err
			break
		}

		exec.Result = fmt.Sprintf("%v", result)
	}

	after := p.Cache().Stats()
	exec.Hits = after.Hits - before.Hits
	exec.Misses = after.Misses - before.Misses

	return exec
}

// Rewrite displays the instrumented source of one file.
func (w *workflow) Rewrite(args RewriteArgs) error {
	p, err := Load(args.Path, w.loadOptions()...)
	if err != nil {
		return err
	}

	src, err := p.Source()
	if err != nil {
		return fmt.Errorf("failed to print %s: %w", args.Path, err)
	}

	return w.ui.DisplaySource(args.Path, src)
}

// View displays previously persisted reports.
func (w *workflow) View(args ViewArgs) error {
	reports, err := w.reportStore.LoadReports(args.Reports)
	if err != nil {
		return w.ui.DisplayVerdicts(nil, fmt.Errorf("failed to load reports: %w", err))
	}

	byPath := groupReports(reports)
	results := make([]m.FileResult, 0, len(byPath))

	for path, reports := range byPath {
		hash := ""
		if len(reports) > 0 {
			hash = reports[0].Hash
		}

		results = append(results, m.FileResult{
			Source:  m.Source{Origin: &m.File{Path: path, Hash: hash}},
			Reports: reports,
		})
	}

	sortResults(results)

	return w.ui.DisplayVerdicts(results, nil)
}

// shard keeps every totalShards-th source starting at index. Sources are
// ordered by path first so every shard sees the same partition.
func shard(sources []m.Source, index, totalShards int) []m.Source {
	if totalShards <= 1 {
		return sources
	}

	sorted := append([]m.Source{}, sources...)
	sort.SliceStable(sorted, func(i, j int) bool { return originPath(sorted[i]) < originPath(sorted[j]) })

	var out []m.Source

	for i, source := range sorted {
		if i%totalShards == index {
			out = append(out, source)
		}
	}

	return out
}

func originPath(source m.Source) m.Path {
	if source.Origin == nil {
		return ""
	}

	return source.Origin.Path
}

func groupReports(reports []m.Report) map[m.Path][]m.Report {
	byPath := make(map[m.Path][]m.Report)
	for _, report := range reports {
		byPath[report.Source] = append(byPath[report.Source], report)
	}

	return byPath
}

func sortResults(results []m.FileResult) {
	sort.SliceStable(results, func(i, j int) bool {
		return originPath(results[i].Source) < originPath(results[j].Source)
	})
}
