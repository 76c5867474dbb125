package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ironsheep/image-taker/internal/config"
	"github.com/ironsheep/image-taker/internal/server"
	"github.com/ironsheep/image-taker/internal/taker"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

const usage = `image-taker - MCP server that captures and picks photos at a bounded size

Usage: image-taker [options]

Options:
  --config path    Configuration file (default: %s)
  --write-config   Write the effective configuration to the config file and exit
  --version, -v    Print version information
  --help, -h       Print this help message

Environment variables:
  IMAGE_TAKER_LOG_LEVEL=debug    Enable debug logging

This server communicates via MCP protocol over stdin/stdout.
Register it as a stdio server in your MCP client.
`

func main() {
	fs := flag.NewFlagSet("image-taker", flag.ContinueOnError)
	configPath := fs.String("config", config.GetConfigPath(), "configuration file")
	writeCfg := fs.Bool("write-config", false, "write the effective configuration and exit")
	showVersion := fs.Bool("version", false, "print version information")
	fs.BoolVar(showVersion, "v", false, "print version information")
	fs.Usage = func() { fmt.Fprintf(os.Stderr, usage, config.GetConfigPath()) }

	if err := fs.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		os.Exit(2)
	}

	if *showVersion {
		fmt.Printf("image-taker %s\n", Version)
		fmt.Printf("  Build time: %s\n", BuildTime)
		fmt.Printf("  Git commit: %s\n", GitCommit)
		return
	}

	logger, err := newLogger(os.Getenv("IMAGE_TAKER_LOG_LEVEL"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync() //nolint:errcheck

	if *writeCfg {
		if err := writeConfig(*configPath, logger); err != nil {
			logger.Fatal("failed to write config", zap.Error(err))
		}
		return
	}

	if err := run(*configPath, logger); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
}

func run(configPath string, logger *zap.Logger) error {
	cfg, err := loadConfig(configPath, logger)
	if err != nil {
		return err
	}

	opts, err := taker.OptionsFromConfig(cfg)
	if err != nil {
		return err
	}

	tk, err := taker.Instance(opts, logger.Named("taker"))
	if err != nil {
		return fmt.Errorf("failed to start taker: %w", err)
	}

	logger.Debug("image-taker starting",
		zap.String("version", Version),
		zap.String("build_time", BuildTime),
		zap.String("commit", GitCommit),
		zap.String("files_dir", opts.FilesDir))

	return server.New(tk, logger.Named("server")).Run(os.Stdin, os.Stdout)
}

// loadConfig reads the configuration file, using defaults when it does not
// exist.
func loadConfig(path string, logger *zap.Logger) (*config.Config, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		logger.Debug("no config file, using defaults", zap.String("path", path))
		return config.Default(), nil
	}
	return config.LoadFromFile(path)
}

// writeConfig validates the configuration at path, or the defaults when it
// does not exist, and writes it back with every key filled in.
func writeConfig(path string, logger *zap.Logger) error {
	cfg, err := loadConfig(path, logger)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := cfg.SaveToFile(path); err != nil {
		return err
	}
	logger.Info("config written", zap.String("path", path))
	return nil
}

// newLogger builds a console logger on stderr, since stdout carries the
// protocol.
func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	if level == "debug" {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	return cfg.Build()
}
