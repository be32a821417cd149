package classifier

import (
	"strings"

	"feedback-analysis/internal/models"
)

// RefusalPhrase is the safety notice the model emits when it flags the
// feedback as rude or insulting. Its presence overrides any extracted label.
const RefusalPhrase = "使用粗鲁、不礼貌和侮辱性的语言是不恰当的"

// RefusalLabel is written when the refusal phrase is detected.
const RefusalLabel = "其他："

// ExtractBracketLabel returns the text inside the first 【...】 pair. The
// inner text is trimmed; a blank inner text counts as no label.
func ExtractBracketLabel(text string) (string, bool) {
	start := strings.Index(text, "【")
	if start == -1 {
		return "", false
	}
	rest := text[start+len("【"):]
	end := strings.Index(rest, "】")
	if end == -1 {
		return "", false
	}
	inner := strings.TrimSpace(rest[:end])
	if inner == "" {
		return "", false
	}
	return inner, true
}

// PostprocessAnswer normalizes a raw model answer into a label.
//
//  1. The refusal phrase wins over everything, including bracket content.
//  2. Otherwise the 【...】 content is the label.
//  3. With no usable bracket pair the trimmed raw answer passes through
//     unmodified, reported as OutcomeUnparsed so operators can find those
//     rows.
func PostprocessAnswer(raw string) (string, models.Outcome) {
	normalized := strings.TrimSpace(raw)

	if strings.Contains(normalized, RefusalPhrase) {
		return RefusalLabel, models.OutcomeModel
	}

	if inner, ok := ExtractBracketLabel(normalized); ok {
		return inner, models.OutcomeModel
	}

	return normalized, models.OutcomeUnparsed
}
