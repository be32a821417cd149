package main

import (
	"context"
	"flag"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"

	"feedback-analysis/internal/batch"
	"feedback-analysis/internal/setup/logger"
	"feedback-analysis/internal/stats"
)

func main() {
	input := flag.String("input", "", "Input CSV path")
	outdir := flag.String("outdir", "plots", "Output directory")
	moduleCol := flag.Int("module-col", 4, "Module column (1-based)")
	timeCol := flag.Int("time-col", 10, "Time column (1-based)")
	freqText := flag.String("freq", "24h", "Bin frequency, e.g. 1h, 2h, 24h")
	start := flag.String("start", "", "Range start, e.g. 2025-09-01")
	end := flag.String("end", "", "Range end, e.g. 2025-09-17")
	logLevel := flag.String("log-level", "info", "Log level: trace, debug, info, warn, error")

	flag.Parse()

	log.Logger = logger.New(*logLevel)

	if *input == "" {
		log.Fatal().Msg("required flag -input not provided")
	}
	if *moduleCol < 1 || *timeCol < 1 {
		log.Fatal().Msg("column numbers are 1-based and must be positive")
	}

	freq, err := time.ParseDuration(*freqText)
	if err != nil {
		log.Fatal().Err(err).Str("freq", *freqText).Msg("Invalid -freq value")
	}

	var startTS, endTS time.Time
	if *start != "" {
		if startTS, err = stats.ParseTime(*start); err != nil {
			log.Fatal().Err(err).Msg("Invalid -start value")
		}
	}
	if *end != "" {
		if endTS, err = stats.ParseTime(*end); err != nil {
			log.Fatal().Err(err).Msg("Invalid -end value")
		}
	}

	f, err := os.Open(*input)
	if err != nil {
		log.Fatal().Err(err).Str("file", *input).Msg("Failed to open input file")
	}
	defer f.Close()

	reader := batch.NewReader(f, &log.Logger)
	recordsCh, err := reader.ReadAll(context.Background())
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to read input")
	}

	var rows [][]string
	first := true
	for record := range recordsCh {
		if first {
			// Header row carries no data.
			first = false
			continue
		}
		if record.Error == nil {
			rows = append(rows, record.Fields)
		}
	}

	result, err := stats.Aggregate(rows, *moduleCol-1, *timeCol-1, freq, startTS, endTS)
	if err != nil {
		log.Fatal().Err(err).Msg("Aggregation failed")
	}

	if len(result.Bins) == 0 {
		log.Warn().Msg("No data in the selected range, nothing to plot")
		return
	}
	if result.Skipped > 0 {
		log.Warn().Int("skipped", result.Skipped).Msg("Rows without a usable module or time were skipped")
	}

	if err := os.MkdirAll(*outdir, 0755); err != nil {
		log.Fatal().Err(err).Str("dir", *outdir).Msg("Failed to create output directory")
	}

	rangeLabel := stats.RangeLabel(startTS, endTS)
	outfile := filepath.Join(*outdir, "range_"+rangeLabel+".html")

	out, err := os.Create(outfile)
	if err != nil {
		log.Fatal().Err(err).Str("file", outfile).Msg("Failed to create chart file")
	}
	defer out.Close()

	if err := stats.RenderHTML(result, *freqText, rangeLabel, out); err != nil {
		log.Fatal().Err(err).Msg("Failed to render chart")
	}

	log.Info().
		Str("file", outfile).
		Int("bins", len(result.Bins)).
		Int("modules", len(result.Modules)).
		Msg("Chart written")
}
