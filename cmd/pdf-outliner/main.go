package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/docsift/pdf-outliner/internal/batch"
	"github.com/docsift/pdf-outliner/internal/config"
	"github.com/docsift/pdf-outliner/internal/mcp"
)

var (
	version   = "dev"     // This will be set by build flags
	buildTime = "unknown" // This will be set by build flags
	gitCommit = "unknown" // This will be set by build flags
)

// setupLogging builds the application logger. Logs always go to stderr so
// stdio-mode MCP traffic on stdout stays clean.
func setupLogging(cfg *config.Config) *slog.Logger {
	var level slog.Level
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	return slog.New(handler)
}

// runBatchMode processes the input directory once and exits. The exit code
// reflects whether anything succeeded: per-document failures alone don't
// fail the run unless every document failed.
func runBatchMode(ctx context.Context, cfg *config.Config, log *slog.Logger) {
	runner := batch.NewRunner(cfg, log)

	summary, err := runner.Run(ctx)
	if err != nil {
		log.Error("batch run failed", "error", err)
		os.Exit(1)
	}

	if summary.TotalFailure() {
		log.Error("all documents failed", "total", summary.Total)
		os.Exit(1)
	}
}

// runStdioMode serves MCP over standard I/O with signal handling
func runStdioMode(ctx context.Context, cancel context.CancelFunc, cfg *config.Config, log *slog.Logger) {
	runner := batch.NewRunner(cfg, log)

	server, err := mcp.NewServer(cfg, runner, log)
	if err != nil {
		log.Error("failed to create MCP server", "error", err)
		os.Exit(1)
	}

	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	serverErrCh := make(chan error, 1)
	go func() {
		serverErrCh <- server.Run(ctx)
	}()

	select {
	case sig := <-signalCh:
		log.Info("received signal, shutting down", "signal", sig.String())
		cancel()
	case err := <-serverErrCh:
		if err != nil {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}
}

func main() {
	// Check for version flag before parsing other flags
	for _, arg := range os.Args[1:] {
		if arg == "-version" || arg == "--version" || arg == "-v" {
			printVersion()
			return
		}
	}

	cfg, err := config.LoadFromFlags()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := setupLogging(cfg)

	// Set version if it was provided during build
	if version != "dev" {
		cfg.Version = version
	}

	if cfg.IsDebug() {
		log.Debug("starting", "config", cfg.String())
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.IsStdioMode() {
		runStdioMode(ctx, cancel, cfg, log)
	} else {
		runBatchMode(ctx, cfg, log)
	}
}

// printVersion prints version information
func printVersion() {
	fmt.Printf("PDF Outliner\n")
	fmt.Printf("Version: %s\n", version)
	fmt.Printf("Build Time: %s\n", buildTime)
	fmt.Printf("Git Commit: %s\n", gitCommit)
	fmt.Printf("Built with: %s\n", runtime.Version())
}
