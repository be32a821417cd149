package executor

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"feedback-analysis/internal/models"
)

// Labeler produces the final label for one piece of feedback.
type Labeler interface {
	Classify(ctx context.Context, content string, strategy models.Strategy) models.Classification
}

// Options fixes the column layout and write policy for a run. Columns are
// 0-based here; the CLI converts from the 1-based flags.
type Options struct {
	ContentCol int
	ModuleCol  int
	Strategy   models.Strategy
	Mode       models.WriteMode
	AppendSep  string
}

// Executor classifies one record and writes the label into the module
// column. Rows it cannot handle pass through unchanged.
type Executor struct {
	labeler Labeler
	opts    Options
	logger  *zerolog.Logger
}

func NewExecutor(labeler Labeler, opts Options, logger *zerolog.Logger) *Executor {
	if opts.AppendSep == "" {
		opts.AppendSep = ","
	}
	return &Executor{
		labeler: labeler,
		opts:    opts,
		logger:  logger,
	}
}

func (e *Executor) Execute(ctx context.Context, record models.Record) models.RowResult {
	result := models.RowResult{
		LineNumber: record.LineNumber,
		Fields:     record.Fields,
	}

	if record.Error != nil {
		result.Result = models.Classification{Outcome: models.OutcomeSkipped}
		return result
	}

	maxCol := e.opts.ContentCol
	if e.opts.ModuleCol > maxCol {
		maxCol = e.opts.ModuleCol
	}
	if len(record.Fields) <= maxCol {
		e.logger.Warn().
			Int("line", record.LineNumber).
			Int("fields", len(record.Fields)).
			Int("required", maxCol+1).
			Msg("row has too few columns, passing through unchanged")
		result.Result = models.Classification{Outcome: models.OutcomeSkipped}
		return result
	}

	classification := e.labeler.Classify(ctx, record.Fields[e.opts.ContentCol], e.opts.Strategy)
	result.Result = classification

	if classification.Outcome == models.OutcomeSkipped {
		return result
	}

	result.Fields = applyWritePolicy(record.Fields, e.opts.ModuleCol, classification.Label, e.opts.Mode, e.opts.AppendSep)
	return result
}

// applyWritePolicy returns the row with the label written into the module
// column. Append keeps the prior value; a blank prior value is simply
// replaced so output never starts with a dangling separator.
func applyWritePolicy(fields []string, moduleCol int, label string, mode models.WriteMode, sep string) []string {
	out := make([]string, len(fields))
	copy(out, fields)

	prior := out[moduleCol]
	if mode == models.ModeAppend && strings.TrimSpace(prior) != "" {
		out[moduleCol] = prior + sep + label
	} else {
		out[moduleCol] = label
	}
	return out
}
