package batch

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"golang.org/x/text/encoding/simplifiedchinese"

	"feedback-analysis/internal/models"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Reader parses CSV input into records, trying UTF-8 first and falling back
// to GB18030 (a superset of GBK/CP936) for legacy exports.
type Reader struct {
	r      io.Reader
	logger *zerolog.Logger
}

func NewReader(r io.Reader, logger *zerolog.Logger) *Reader {
	return &Reader{r: r, logger: logger}
}

// ReadAll decodes the whole input and streams rows over a channel. Rows that
// fail to parse are emitted with Error set so the caller can warn and skip.
// The returned error is fatal: unreadable input or undecodable encoding.
func (r *Reader) ReadAll(ctx context.Context) (<-chan models.Record, error) {
	data, err := io.ReadAll(r.r)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}

	text, err := decodeText(data)
	if err != nil {
		return nil, err
	}

	out := make(chan models.Record)

	go func() {
		defer close(out)

		csvReader := csv.NewReader(strings.NewReader(text))
		csvReader.FieldsPerRecord = -1

		lineNumber := 0
		for {
			fields, err := csvReader.Read()
			if err == io.EOF {
				return
			}
			lineNumber++

			record := models.Record{LineNumber: lineNumber}
			if err != nil {
				record.Error = err
				r.logger.Warn().Err(err).Int("line", lineNumber).Msg("skipping malformed row")
			} else {
				record.Fields = fields
			}

			select {
			case out <- record:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, nil
}

// decodeText returns the input as UTF-8, stripping a BOM if present. Input
// that is not valid UTF-8 is decoded as GB18030.
func decodeText(data []byte) (string, error) {
	data = bytes.TrimPrefix(data, utf8BOM)

	if utf8.Valid(data) {
		return string(data), nil
	}

	decoded, err := simplifiedchinese.GB18030.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("input is neither valid UTF-8 nor GB18030: %w", err)
	}
	return string(decoded), nil
}
