package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"imagefilter/config"
	"imagefilter/filter"
	"imagefilter/logging"
	"imagefilter/metadata"
	"imagefilter/signalhandler"
	"imagefilter/types"
	"imagefilter/utils"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes one invocation and returns the process exit code.
// Nothing is written to stdout unless the whole run succeeds.
func run(argv []string, stdout, stderr io.Writer) int {
	args, err := utils.ParseArguments(argv)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n\n", err)
		utils.PrintUsage(stderr)
		return utils.ExitUsage
	}
	if args.Help {
		utils.PrintUsage(stdout)
		return utils.ExitOK
	}

	if args.GenerateConfig {
		text, err := config.Default().TOML()
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return utils.ExitFatal
		}
		fmt.Fprint(stdout, text)
		return utils.ExitOK
	}

	cfg, configPath, created, err := loadConfig(args.ConfigPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return utils.ExitFatal
	}

	logFile := args.LogFile
	if logFile == "" {
		logFile = cfg.LogFile
	}
	logger, cleanup, err := logging.New(logging.Options{
		Verbosity: args.Verbosity,
		Quiet:     args.Quiet,
		LogFile:   logFile,
		Console:   zapcore.AddSync(stderr),
	})
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return utils.ExitFatal
	}
	defer cleanup()

	if created {
		logger.Info("config file created", zap.String("path", configPath))
	}
	logger.Info("loaded config", zap.String("path", configPath))

	paths, err := process(args, cfg, logger)
	if err != nil {
		logger.Error("critical failure", zap.Error(err))
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return utils.ExitFatal
	}

	w := bufio.NewWriter(stdout)
	for _, p := range paths {
		fmt.Fprintln(w, p)
	}
	if err := w.Flush(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return utils.ExitFatal
	}
	return utils.ExitOK
}

// loadConfig reads the configuration, creating the default file on first use.
// An explicitly named file must already exist.
func loadConfig(explicit string) (cfg *config.Config, path string, created bool, err error) {
	path = explicit
	if path == "" {
		if path, err = config.DefaultPath(); err != nil {
			return nil, "", false, err
		}
		if created, err = config.EnsureFile(path); err != nil {
			return nil, path, false, err
		}
	}

	cfg, err = config.Load(path)
	if err != nil {
		return nil, path, created, err
	}
	config.LoadFromEnv(cfg)
	return cfg, path, created, nil
}

func process(args utils.Arguments, cfg *config.Config, logger *zap.Logger) ([]string, error) {
	opts, err := cfg.Resolve(args.Overrides())
	if err != nil {
		return nil, err
	}
	opts.Workers = signalhandler.WorkerCount(opts.Workers)

	logger.Info("resolved options",
		zap.String("root", opts.Root),
		zap.String("metadata_path", opts.MetadataPath),
		zap.Int("score_filters", len(opts.ScoreFilters)),
		zap.Stringer("width_range", opts.Width),
		zap.Stringer("height_range", opts.Height),
		zap.Int("workers", opts.Workers),
		zap.String("type", string(args.NodeType)))

	ctx, stop := signalhandler.SetupHandler(context.Background())
	defer stop()

	if args.NodeType == types.NodeDirectory {
		return filter.New(opts, nil, nil, logger).Directories(ctx)
	}

	var names []string
	if opts.HasDimensionFilter() {
		names = cfg.Probers
	}
	prober := buildProbers(names, logger)
	defer func() {
		if err := prober.Close(); err != nil {
			logger.Warn("failed to release probers", zap.Error(err))
		}
	}()

	return filter.New(opts, prober, metadata.Load, logger).Run(ctx)
}
