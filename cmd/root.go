// Package cmd provides the root command and CLI setup for smartcache.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mouse-blink/smartcache/internal/adapter"
	"github.com/mouse-blink/smartcache/internal/config"
	"github.com/mouse-blink/smartcache/internal/controller"
	"github.com/mouse-blink/smartcache/internal/domain"
	"github.com/mouse-blink/smartcache/internal/logging"
	"github.com/mouse-blink/smartcache/internal/memo"
	m "github.com/mouse-blink/smartcache/internal/model"
)

var goFileAdapter adapter.GoFileAdapter
var fsAdapter adapter.SourceFSAdapter
var reportStore adapter.ReportStore
var workflow domain.Workflow
var settings config.Config

// workflowFactory builds the workflow once settings are resolved.
var workflowFactory = defaultWorkflow

func init() {
	goFileAdapter = adapter.NewLocalGoFileAdapter()
	fsAdapter = adapter.NewLocalSourceFSAdapter()
	reportStore = adapter.NewReportStore()
}

func defaultWorkflow(cmd *cobra.Command, cfg config.Config, log *zap.Logger) domain.Workflow {
	ui := controller.NewUI(cmd, controller.IsTTY(cmd.OutOrStdout()))

	return domain.NewWorkflow(
		fsAdapter,
		goFileAdapter,
		reportStore,
		ui,
		domain.WithPureOps(cfg.PureOperations...),
		domain.WithAllowIdentReturn(cfg.AllowIdentReturn),
		domain.WithMemoKeyMode(cfg.KeyMode),
		domain.WithLogger(log),
		domain.WithEngine(adapter.NewYaegiEngineAdapter(cmd.OutOrStdout(), cmd.ErrOrStderr())),
	)
}

var configFlag string
var verboseFlag bool
var keyModeFlag string
var allowIdentReturnFlag bool
var pureFlags []string
var reportsOutputDirFlag string

var listFlag bool
var parallelFlag int
var shardFlag string
var excludeFlags []string

const rootLongDescription = `smartcache finds the top-level functions of a Go file whose results can be
cached, rewrites the calls that target them so the first result is reused,
and runs the instrumented program on demand.

A function is functional when every statement is one of:
  - an assignment of a slice or array literal
  - a call or return of a pure operation (append, sum, and --pure names)
  - a for or range loop whose body follows the same rules

Supports Go-style path patterns:
  - ./...          recursively scan current directory
  - ./pkg/...      recursively scan pkg directory
  - ./cmd ./pkg    scan multiple directories`

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "smartcache [paths...]",
		Short:        "Cache the results of functional Go routines",
		Long:         rootLongDescription,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return configure(cmd)
		},
		RunE: func(_ *cobra.Command, args []string) error {
			return analyze(args, listFlag)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&configFlag, "config", config.DefaultFile, "path to the YAML config file")
	flags.BoolVarP(&verboseFlag, "verbose", "v", false, "log every purity verdict")
	flags.StringVar(&keyModeFlag, "key-mode", string(memo.KeyByName), "cache key mode: name or arguments")
	flags.BoolVar(&allowIdentReturnFlag, "allow-ident-return", false, "treat `return x` of a bare identifier as functional")
	flags.StringArrayVar(&pureFlags, "pure", nil, "extra pure operation name (can be repeated)")
	flags.StringVar(&reportsOutputDirFlag, "reports", config.DefaultReports, "directory analysis reports are written to")

	cmd.Flags().BoolVarP(&listFlag, "list", "l", false, "reuse stored reports for files that did not change")
	addAnalyzeFlags(cmd)

	return cmd
}

func addAnalyzeFlags(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&parallelFlag, "parallel", "p", 1, "number of files analysed in parallel")
	cmd.Flags().StringVarP(&shardFlag, "shard", "s", "", "shard index and total shard count in the format INDEX/TOTAL (e.g., 0/3)")
	cmd.Flags().StringArrayVarP(&excludeFlags, "exclude", "x", nil, "exclude files matching regex (can be repeated)")
}

// configure layers the flags that were set over the config file and builds
// the workflow.
func configure(cmd *cobra.Command) error {
	cfg, err := config.Load(configFlag)
	if err != nil {
		return err
	}

	flags := cmd.Flags()

	if flags.Changed("key-mode") {
		cfg.KeyMode = memo.KeyMode(keyModeFlag)
	}

	if flags.Changed("allow-ident-return") {
		cfg.AllowIdentReturn = allowIdentReturnFlag
	}

	if flags.Changed("verbose") {
		cfg.Verbose = verboseFlag
	}

	if flags.Changed("reports") {
		cfg.Reports = reportsOutputDirFlag
	}

	if flags.Changed("parallel") {
		cfg.Parallel = parallelFlag
	}

	cfg.PureOperations = append(cfg.PureOperations, pureFlags...)

	if err := cfg.Validate(); err != nil {
		return err
	}

	log, err := logging.New(cfg.Verbose)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}

	settings = cfg
	workflow = workflowFactory(cmd, cfg, log)

	return nil
}

// analyze classifies the sources named by args. The parallel, shard and
// exclude flags are shared by the root and list commands.
func analyze(args []string, useCache bool) error {
	shardIndex, totalShards := parseShardFlag(shardFlag)

	return workflow.Analyze(domain.AnalyzeArgs{
		Paths:           parsePaths(args),
		Exclude:         excludeFlags,
		Reports:         m.Path(settings.Reports),
		UseCache:        useCache,
		Threads:         settings.Parallel,
		ShardIndex:      shardIndex,
		TotalShardCount: totalShards,
	})
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func parsePaths(args []string) []m.Path {
	if len(args) == 0 {
		return []m.Path{"."}
	}

	paths := make([]m.Path, 0, len(args))
	for _, arg := range args {
		paths = append(paths, m.Path(arg))
	}

	return paths
}

func parseShardFlag(shard string) (int, int) {
	if shard == "" {
		return 0, 1
	}

	var index, total int

	_, err := fmt.Sscanf(shard, "%d/%d", &index, &total)
	if err != nil || total <= 0 || index < 0 || index >= total {
		return 0, 1
	}

	return index, total
}
