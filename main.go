package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	inputPath := flag.String("input", "", "Path to evaluations CSV (overrides config)")
	configPath := flag.String("config", "", "Optional YAML config path")
	jsonOut := flag.String("json", "", "Optional JSON output path")
	noColor := flag.Bool("no-color", false, "Disable styled output")
	verbose := flag.Bool("verbose", false, "Enable debug logging")
	flag.Parse()

	logger := newLogger(*verbose)
	err := run(*inputPath, *configPath, *jsonOut, !*noColor, logger)
	_ = logger.Sync()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// run executes one render cycle. It returns rather than exits so the caller
// can flush the logger before the process ends.
func run(inputPath, configPath, jsonOut string, color bool, logger *zap.Logger) error {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if inputPath != "" {
		cfg.Input = inputPath
	}

	report, err := buildReport(cfg.Input, cfg, logger)
	if err != nil {
		logger.Error("dashboard unrenderable", zap.Error(err))
		switch {
		case errors.Is(err, errSourceNotFound):
			return fmt.Errorf("arquivo '%s' não encontrado; verifique o caminho", cfg.Input)
		case errors.Is(err, errSourceMalformed):
			return fmt.Errorf("não foi possível processar o arquivo CSV: %v", err)
		default:
			return err
		}
	}

	fmt.Print(renderDashboard(report, color))

	if jsonOut != "" {
		if err := writeJSON(report, jsonOut); err != nil {
			return err
		}
		fmt.Printf("\nJSON report saved to %s\n", jsonOut)
	}
	return nil
}

func newLogger(verbose bool) *zap.Logger {
	config := zap.NewProductionConfig()
	if verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	} else {
		config.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	}
	logger, err := config.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
