package models

import (
	"time"
)

// Strategy controls how multiple rule matches are consolidated.
type Strategy string

const (
	StrategyFirst Strategy = "first"
	StrategyAll   Strategy = "all"
)

// WriteMode controls how the final label is written into the module column.
type WriteMode string

const (
	ModeOverwrite WriteMode = "overwrite"
	ModeAppend    WriteMode = "append"
)

// Outcome describes how a record's label was produced.
type Outcome string

const (
	// OutcomeRule means a configured keyword rule matched.
	OutcomeRule Outcome = "rule"
	// OutcomeModel means the completion service answered and the label was
	// extracted from the 【...】 bracket pair (or is the refusal override).
	OutcomeModel Outcome = "model"
	// OutcomeUnparsed means the model answer had no bracket pair and the raw
	// answer was passed through unmodified.
	OutcomeUnparsed Outcome = "unparsed"
	// OutcomeFailed means the completion call failed and the sentinel
	// failure label was written.
	OutcomeFailed Outcome = "failed"
	// OutcomeSkipped means the content cell was empty; nothing was written.
	OutcomeSkipped Outcome = "skipped"
)

// Rule pairs an output label with the keywords that select it. Keywords are
// OR'd; matching is case-sensitive substring containment.
type Rule struct {
	Label    string   `yaml:"label"`
	Keywords []string `yaml:"keywords"`
}

// Record is one CSV row plus its position in the input file. LineNumber is
// 1-based and counts the header row.
type Record struct {
	LineNumber int
	Fields     []string
	Error      error
}

// Classification is the per-record result of the pipeline.
type Classification struct {
	Label    string        `json:"label"`
	Outcome  Outcome       `json:"outcome"`
	Duration time.Duration `json:"duration_ns"`
}

// RowResult pairs a processed record with its classification so results can
// be emitted in input order.
type RowResult struct {
	LineNumber int
	Fields     []string
	Result     Classification
}
