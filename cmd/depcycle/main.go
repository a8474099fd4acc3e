package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"depcycle/internal/core/app"
	"depcycle/internal/core/config"
	"depcycle/internal/core/ports"
	"depcycle/internal/engine/analysis"
	"depcycle/internal/engine/cycles"
	"depcycle/internal/shared/version"
)

var (
	configPath  = flag.String("config", "./depcycle.toml", "Path to config file")
	graphPath   = flag.String("graph", "", "Path to a JSON graph snapshot to analyze")
	method      = flag.String("method", "", "Detection method: dfs, tarjan or comprehensive (overrides config)")
	serve       = flag.Bool("serve", false, "Run the tool server instead of a one-shot analysis")
	once        = flag.Bool("once", false, "Force a single analysis even when the config enables the server")
	watch       = flag.Bool("watch", false, "Re-run the analysis whenever the graph file changes")
	verbose     = flag.Bool("verbose", false, "Enable verbose logging")
	showVersion = flag.Bool("version", false, "Print version and exit")
)

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Printf("depcycle v%s\n", version.Version)
		os.Exit(0)
	}

	logLevel := slog.LevelInfo
	if *verbose {
		logLevel = slog.LevelDebug
	}
	// Reports go to stdout and, in serve mode, the stdio transport owns it.
	// Logs always go to stderr.
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	cfg, err := loadConfig(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	var provider ports.GraphProvider
	if *graphPath != "" {
		provider = app.NewFileProvider(*graphPath)
	} else if flag.NArg() > 0 {
		provider = app.NewFileProvider(flag.Arg(0))
	}

	a, err := app.New(cfg, provider)
	if err != nil {
		slog.Error("failed to initialize app", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if *serve || (cfg.Server.Enabled && !*once) {
		if err := runServer(ctx, a, logger); err != nil && ctx.Err() == nil {
			slog.Error("tool server failed", "error", err)
			os.Exit(1)
		}
		return
	}

	if *watch {
		if err := runWatch(ctx, a); err != nil && ctx.Err() == nil {
			slog.Error("watch mode failed", "error", err)
			os.Exit(1)
		}
		return
	}

	if err := runOnce(ctx, a); err != nil {
		slog.Error("analysis failed", "error", err)
		os.Exit(1)
	}
}

// loadConfig falls back to built-in defaults when the default config path does
// not exist; an explicitly given path must load.
func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err == nil {
		return cfg, nil
	}
	if path == "./depcycle.toml" && errors.Is(err, os.ErrNotExist) {
		slog.Debug("no config file found, using defaults", "path", path)
		return config.Default(), nil
	}
	return nil, err
}

// analyzeAndPrint runs one analysis pass and prints the text report.
func analyzeAndPrint(ctx context.Context, a *app.App) (*analysis.Report, error) {
	report, err := a.AnalysisService().Analyze(ctx, ports.AnalysisRequest{DetectionMethod: *method})
	if err != nil {
		return nil, err
	}

	fmt.Print(app.FormatReport(report))
	slog.Debug("cycle summary", "cycles", app.FormatSummaryLine(report))
	return report, nil
}

// runOnce maps the analysis outcome onto the exit code: 0 clean, 1 cycles
// found, 2 critical cycles found.
func runOnce(ctx context.Context, a *app.App) error {
	report, err := analyzeAndPrint(ctx, a)
	if err != nil {
		return err
	}

	if report.Summary.OverallSeverity == cycles.OverallCritical {
		os.Exit(2)
	}
	if report.Summary.TotalCycles > 0 {
		os.Exit(1)
	}
	return nil
}
