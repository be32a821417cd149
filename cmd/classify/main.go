package main

import (
	"context"
	"flag"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"feedback-analysis/internal/batch"
	"feedback-analysis/internal/config"
	"feedback-analysis/internal/executor"
	"feedback-analysis/internal/models"
	"feedback-analysis/internal/setup"
	"feedback-analysis/internal/setup/logger"
)

func main() {
	startTime := time.Now()

	input := flag.String("input", "", "Input CSV path ('-' for stdin)")
	output := flag.String("output", "", "Output CSV path (stdout when empty)")
	contentCol := flag.Int("content-col", 5, "Content column (1-based)")
	moduleCol := flag.Int("module-col", 4, "Module column to write (1-based)")
	strategy := flag.String("strategy", "all", "Match strategy: 'first' stops at the first rule hit, 'all' joins every hit")
	mode := flag.String("mode", "append", "Write mode: 'overwrite' replaces the module value, 'append' keeps it")
	outSep := flag.String("out-sep", ",", "Output field delimiter")
	quote := flag.String("quote", "all", "Output quoting policy: 'all', 'minimal' or 'none'")
	configPath := flag.String("config", "configs/classifier.yaml", "Classifier config path")
	workers := flag.Int("workers", 1, "Concurrent classification workers")
	logLevel := flag.String("log-level", "info", "Log level: trace, debug, info, warn, error")

	flag.Parse()

	log.Logger = logger.New(*logLevel)

	if *input == "" {
		log.Fatal().Msg("required flag -input not provided")
	}
	if *contentCol < 1 || *moduleCol < 1 {
		log.Fatal().Msg("column numbers are 1-based and must be positive")
	}

	parsedStrategy, parsedMode := parsePolicies(*strategy, *mode)

	if err := godotenv.Load(); err != nil {
		log.Warn().Msg("No .env file found, using environment variables")
	}

	ctx, cancel := setupGracefulShutdown()
	defer cancel()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}

	deps, err := setup.Wire(ctx, cfg, &log.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to wire dependencies")
	}

	// Open input file
	var inputFile io.Reader
	if *input == "-" {
		inputFile = os.Stdin
		log.Info().Msg("Reading from stdin")
	} else {
		f, err := os.Open(*input)
		if err != nil {
			log.Fatal().Err(err).Str("file", *input).Msg("Failed to open input file")
		}
		defer f.Close()
		inputFile = f
		log.Info().Str("file", *input).Msg("Reading input file")
	}

	// Read records
	reader := batch.NewReader(inputFile, deps.Logger)
	recordsCh, err := reader.ReadAll(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to read input")
	}

	var records []models.Record
	for record := range recordsCh {
		records = append(records, record)
	}

	if len(records) == 0 {
		log.Fatal().Msg("Input file is empty")
	}
	log.Info().Int("total", len(records)-1).Msg("Input file parsed")

	// First row is the header; it must cover the requested columns.
	header := records[0]
	maxCol := max(*contentCol, *moduleCol)
	if header.Error != nil || len(header.Fields) < maxCol {
		log.Fatal().
			Int("columns", len(header.Fields)).
			Int("required", maxCol).
			Msg("Input does not have the requested columns")
	}

	// Open output file
	var outputFile io.Writer
	if *output == "" {
		outputFile = os.Stdout
		log.Info().Msg("Writing to stdout")
	} else {
		if dir := filepath.Dir(*output); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				log.Fatal().Err(err).Str("dir", dir).Msg("Failed to create output directory")
			}
		}
		f, err := os.Create(*output)
		if err != nil {
			log.Fatal().Err(err).Str("file", *output).Msg("Failed to create output file")
		}
		defer f.Close()
		outputFile = f
		log.Info().Str("file", *output).Msg("Writing to output file")
	}

	writer, err := batch.NewWriter(outputFile, *outSep, *quote, deps.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create writer")
	}
	defer writer.Close()

	// Process with worker pool
	exec := executor.NewExecutor(deps.Classifier, executor.Options{
		ContentCol: *contentCol - 1,
		ModuleCol:  *moduleCol - 1,
		Strategy:   parsedStrategy,
		Mode:       parsedMode,
		AppendSep:  cfg.Classifier.AppendSeparator,
	}, deps.Logger)

	processor := batch.NewProcessor(exec, *workers, deps.Logger)
	results, err := processor.Process(ctx, records[1:])
	if err != nil {
		log.Fatal().Err(err).Msg("Processing aborted")
	}

	// Write results
	if err := writer.Write(header.Fields); err != nil {
		log.Fatal().Err(err).Msg("Failed to write header")
	}

	outcomes := make(map[models.Outcome]int)
	for _, result := range results {
		outcomes[result.Result.Outcome]++

		if result.Fields == nil {
			// Malformed row already logged by the reader.
			continue
		}
		if err := writer.Write(result.Fields); err != nil {
			log.Fatal().Err(err).Int("line", result.LineNumber).Msg("Failed to write row")
		}
	}

	log.Info().
		Int("rule", outcomes[models.OutcomeRule]).
		Int("model", outcomes[models.OutcomeModel]).
		Int("unparsed", outcomes[models.OutcomeUnparsed]).
		Int("failed", outcomes[models.OutcomeFailed]).
		Int("skipped", outcomes[models.OutcomeSkipped]).
		Dur("duration", time.Since(startTime)).
		Msg("Processing complete")
}

func parsePolicies(strategy, mode string) (models.Strategy, models.WriteMode) {
	var parsedStrategy models.Strategy
	switch strategy {
	case string(models.StrategyFirst):
		parsedStrategy = models.StrategyFirst
	case string(models.StrategyAll):
		parsedStrategy = models.StrategyAll
	default:
		log.Fatal().Str("strategy", strategy).Msg("Unknown strategy (expected 'first' or 'all')")
	}

	var parsedMode models.WriteMode
	switch mode {
	case string(models.ModeOverwrite):
		parsedMode = models.ModeOverwrite
	case string(models.ModeAppend):
		parsedMode = models.ModeAppend
	default:
		log.Fatal().Str("mode", mode).Msg("Unknown mode (expected 'overwrite' or 'append')")
	}

	return parsedStrategy, parsedMode
}

func setupGracefulShutdown() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}
