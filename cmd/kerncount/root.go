package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"kerncount/internal/build"
	"kerncount/internal/config"
	kerrors "kerncount/internal/errors"
	"kerncount/internal/index"
	"kerncount/internal/kernels"
	"kerncount/internal/logging"
	"kerncount/internal/report"
	"kerncount/internal/storage"
	"kerncount/internal/toolchain"
	"kerncount/internal/version"
)

var (
	buildDirFlag    string
	topNFlag        int
	skipDetailsFlag bool
	noProgressFlag  bool
	skipObjectsFlag bool
	skipKernelsFlag bool
	verboseFlag     bool
	dbFlag          string
	logFormatFlag   string
)

var rootCmd = &cobra.Command{
	Use:   "kerncount <target>",
	Short: "Report GPU kernel template instantiation counts for a build target",
	Long: `kerncount enumerates the object files contributing to a ninja build target,
extracts the demangled kernel-function templates baked into each object via
cuobjdump, and reports which objects produce the most kernel instantiations
and which kernel templates are instantiated most often. Use it to find
template-instantiation explosions that slow compilation and bloat binaries.`,
	Version:      version.Info(),
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE:         runReport,
}

func init() {
	rootCmd.SetVersionTemplate("kerncount version {{.Version}}\n")
	rootCmd.Flags().StringVar(&buildDirFlag, "build-dir", ".", "Build directory")
	rootCmd.Flags().IntVar(&topNFlag, "top-n", 0, "Log only top N most common objects/kernels (0 = all)")
	rootCmd.Flags().BoolVar(&skipDetailsFlag, "skip-details", false, "Show a summary of statistics, but no details")
	rootCmd.Flags().BoolVar(&noProgressFlag, "no-progress", false, "Do not show progress indication")
	rootCmd.Flags().BoolVar(&skipObjectsFlag, "skip-objects", false, "Do not show statistics on objects")
	rootCmd.Flags().BoolVar(&skipKernelsFlag, "skip-kernels", false, "Do not show statistics on kernels")
	rootCmd.Flags().BoolVar(&verboseFlag, "verbose", false, "Log resolved binaries and external commands")
	rootCmd.Flags().StringVar(&dbFlag, "db", "", "Export the finished run into this SQLite database")
	rootCmd.Flags().StringVar(&logFormatFlag, "log-format", "", "Log format: json or human (default from config)")
}

// loadConfig reads the optional config file and applies flag overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, err
	}
	if logFormatFlag != "" {
		cfg.Logging.Format = logFormatFlag
	}
	if verboseFlag {
		cfg.Logging.Level = string(logging.DebugLevel)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) *logging.Logger {
	return logging.NewLogger(logging.Config{
		Format: logging.Format(cfg.Logging.Format),
		Level:  logging.LogLevel(cfg.Logging.Level),
	})
}

// resolveTools performs the pre-flight binary resolution. Every missing
// binary gets its own diagnostic line before the command aborts.
func resolveTools(cfg *config.Config, logger *logging.Logger) (toolchain.Tools, error) {
	tools, resolutions := toolchain.Resolve(cfg)

	missing := toolchain.Missing(resolutions)
	if len(missing) > 0 {
		for _, m := range missing {
			if ke, ok := m.Err.(*kerrors.KernError); ok {
				fmt.Fprintln(os.Stderr, ke.Message)
			} else {
				fmt.Fprintln(os.Stderr, m.Err.Error())
			}
		}
		return tools, kerrors.NewKernError(
			kerrors.ToolMissing,
			fmt.Sprintf("%d required binaries missing", len(missing)),
			nil,
		)
	}

	for _, r := range resolutions {
		logger.Debug("Resolved binary", map[string]interface{}{
			"name": r.Name,
			"path": r.Path,
		})
	}

	return tools, nil
}

func runReport(cmd *cobra.Command, args []string) error {
	target := args[0]
	ctx := context.Background()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(cfg)

	tools, err := resolveTools(cfg, logger)
	if err != nil {
		return err
	}

	lister := build.NewLister(tools.Ninja, buildDirFlag, logger)
	objects, err := lister.ListObjects(ctx, target)
	if err != nil {
		return err
	}

	runner := kernels.NewPipelineRunner(tools.Cuobjdump, tools.CuFilt, tools.Grep, logger)
	extractor := kernels.NewExtractor(runner, logger)

	acc := index.NewAccumulator()
	progress := newProgress(os.Stderr, !noProgressFlag)
	progress.Start()
	for _, object := range objects {
		for _, kernel := range extractor.Extract(ctx, object) {
			acc.Add(index.Occurrence{Object: object, Kernel: kernel})
			progress.Tick()
		}
	}
	progress.Done()

	idx := acc.Snapshot()
	report.Render(os.Stdout, idx, report.Options{
		TopN:        topNFlag,
		SkipDetails: skipDetailsFlag,
		SkipObjects: skipObjectsFlag,
		SkipKernels: skipKernelsFlag,
	})

	if dbFlag != "" {
		db, err := storage.Open(dbFlag, logger)
		if err != nil {
			return err
		}
		defer db.Close()
		if _, err := db.SaveRun(storage.RunMeta{Target: target, BuildDir: buildDirFlag}, idx); err != nil {
			return err
		}
	}

	return nil
}
