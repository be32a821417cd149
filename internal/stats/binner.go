package stats

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// timeLayouts are tried in order when parsing the time column.
var timeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006/1/2 15:04:05",
	"2006-01-02 15:04",
	"2006/1/2 15:04",
	"2006-01-02",
	"2006/1/2",
	time.RFC3339,
}

// Result is the binned count of feedback per module over time. Series values
// are aligned with Bins.
type Result struct {
	Bins    []time.Time
	Modules []string
	Series  map[string][]int
	Skipped int
}

// ParseTime parses a timestamp cell, trying the known layouts.
func ParseTime(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time value %q", value)
}

// Aggregate counts rows per (time bin, module). Rows with a blank module,
// missing columns or an unparsable time are skipped and tallied in
// Result.Skipped. Zero start/end leave that side of the range open.
func Aggregate(rows [][]string, moduleCol, timeCol int, freq time.Duration, start, end time.Time) (*Result, error) {
	if freq <= 0 {
		return nil, fmt.Errorf("bin frequency must be positive, got %s", freq)
	}

	maxCol := moduleCol
	if timeCol > maxCol {
		maxCol = timeCol
	}

	counts := make(map[time.Time]map[string]int)
	modules := make(map[string]bool)
	skipped := 0

	for _, row := range rows {
		if len(row) <= maxCol {
			skipped++
			continue
		}

		module := strings.TrimSpace(row[moduleCol])
		if module == "" {
			skipped++
			continue
		}

		ts, err := ParseTime(row[timeCol])
		if err != nil {
			skipped++
			continue
		}

		if !start.IsZero() && ts.Before(start) {
			continue
		}
		if !end.IsZero() && ts.After(end) {
			continue
		}

		bin := floorWall(ts, freq)
		if counts[bin] == nil {
			counts[bin] = make(map[string]int)
		}
		counts[bin][module]++
		modules[module] = true
	}

	result := &Result{
		Series:  make(map[string][]int),
		Skipped: skipped,
	}

	for bin := range counts {
		result.Bins = append(result.Bins, bin)
	}
	sort.Slice(result.Bins, func(i, j int) bool { return result.Bins[i].Before(result.Bins[j]) })

	for module := range modules {
		result.Modules = append(result.Modules, module)
	}
	sort.Strings(result.Modules)

	for _, module := range result.Modules {
		series := make([]int, len(result.Bins))
		for i, bin := range result.Bins {
			series[i] = counts[bin][module]
		}
		result.Series[module] = series
	}

	return result, nil
}

// floorWall floors ts to a multiple of freq on the wall clock, ignoring the
// zone offset. time.Truncate aligns to UTC epoch instants, which would start
// a 24h bin mid-day in any non-UTC zone; daily bins must start at local
// midnight.
func floorWall(ts time.Time, freq time.Duration) time.Time {
	naive := time.Date(ts.Year(), ts.Month(), ts.Day(), ts.Hour(), ts.Minute(), ts.Second(), ts.Nanosecond(), time.UTC)
	floored := naive.Truncate(freq)
	return time.Date(floored.Year(), floored.Month(), floored.Day(), floored.Hour(), floored.Minute(), floored.Second(), floored.Nanosecond(), ts.Location())
}

// RangeLabel names the selected time range for output file names; "full"
// when both sides are open.
func RangeLabel(start, end time.Time) string {
	if start.IsZero() && end.IsZero() {
		return "full"
	}
	const format = "20060102150405"
	s := "min"
	if !start.IsZero() {
		s = start.Format(format)
	}
	e := "max"
	if !end.IsZero() {
		e = end.Format(format)
	}
	return s + "_" + e
}
