package batch

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
)

// Quoting policies for output fields.
const (
	QuoteAll     = "all"
	QuoteMinimal = "minimal"
	QuoteNone    = "none"
)

// Writer emits CSV rows as UTF-8 with a BOM, matching what spreadsheet tools
// expect from these exports. encoding/csv only implements minimal quoting,
// so the all/none policies are written by hand.
type Writer struct {
	buf      *bufio.Writer
	csv      *csv.Writer
	sep      rune
	quote    string
	wroteBOM bool
	logger   *zerolog.Logger
}

func NewWriter(w io.Writer, delimiter string, quote string, logger *zerolog.Logger) (*Writer, error) {
	runes := []rune(delimiter)
	if len(runes) != 1 {
		return nil, fmt.Errorf("delimiter must be a single character, got %q", delimiter)
	}
	sep := runes[0]

	switch quote {
	case QuoteAll, QuoteMinimal, QuoteNone:
	default:
		return nil, fmt.Errorf("unknown quote policy %q (expected all, minimal or none)", quote)
	}

	buf := bufio.NewWriter(w)
	writer := &Writer{
		buf:    buf,
		sep:    sep,
		quote:  quote,
		logger: logger,
	}

	if quote == QuoteMinimal {
		writer.csv = csv.NewWriter(buf)
		writer.csv.Comma = sep
	}

	return writer, nil
}

func (w *Writer) Write(fields []string) error {
	if !w.wroteBOM {
		if _, err := w.buf.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
			return fmt.Errorf("failed to write BOM: %w", err)
		}
		w.wroteBOM = true
	}

	switch w.quote {
	case QuoteMinimal:
		return w.csv.Write(fields)
	case QuoteAll:
		return w.writeQuoted(fields)
	default:
		return w.writeEscaped(fields)
	}
}

// writeQuoted wraps every field in double quotes, doubling embedded quotes.
func (w *Writer) writeQuoted(fields []string) error {
	for i, field := range fields {
		if i > 0 {
			if _, err := w.buf.WriteRune(w.sep); err != nil {
				return err
			}
		}
		quoted := `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
		if _, err := w.buf.WriteString(quoted); err != nil {
			return err
		}
	}
	return w.buf.WriteByte('\n')
}

// writeEscaped writes unquoted fields, backslash-escaping the delimiter,
// quotes, backslashes and line breaks.
func (w *Writer) writeEscaped(fields []string) error {
	escaper := strings.NewReplacer(
		`\`, `\\`,
		string(w.sep), `\`+string(w.sep),
		`"`, `\"`,
		"\r", `\`+"\r",
		"\n", `\`+"\n",
	)
	for i, field := range fields {
		if i > 0 {
			if _, err := w.buf.WriteRune(w.sep); err != nil {
				return err
			}
		}
		if _, err := w.buf.WriteString(escaper.Replace(field)); err != nil {
			return err
		}
	}
	return w.buf.WriteByte('\n')
}

func (w *Writer) Close() error {
	if w.csv != nil {
		w.csv.Flush()
		if err := w.csv.Error(); err != nil {
			return err
		}
	}
	return w.buf.Flush()
}
