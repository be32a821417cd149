package batch

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"feedback-analysis/internal/models"
)

// countingExecutor tags each record and counts executions per line.
type countingExecutor struct {
	mu    sync.Mutex
	calls map[int]int
	delay time.Duration
}

func (e *countingExecutor) Execute(ctx context.Context, record models.Record) models.RowResult {
	if e.delay > 0 {
		time.Sleep(e.delay)
	}
	e.mu.Lock()
	if e.calls == nil {
		e.calls = make(map[int]int)
	}
	e.calls[record.LineNumber]++
	e.mu.Unlock()

	return models.RowResult{
		LineNumber: record.LineNumber,
		Fields:     record.Fields,
		Result:     models.Classification{Label: fmt.Sprintf("label-%d", record.LineNumber)},
	}
}

func makeRecords(n int) []models.Record {
	records := make([]models.Record, n)
	for i := range records {
		records[i] = models.Record{LineNumber: i + 1, Fields: []string{fmt.Sprint(i + 1)}}
	}
	return records
}

func TestProcessor_PreservesInputOrder(t *testing.T) {
	exec := &countingExecutor{delay: time.Millisecond}
	processor := NewProcessor(exec, 8, newTestLogger())

	records := makeRecords(50)
	results, err := processor.Process(context.Background(), records)
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}

	if len(results) != 50 {
		t.Fatalf("expected 50 results, got %d", len(results))
	}
	for i, result := range results {
		if result.LineNumber != i+1 {
			t.Errorf("result %d out of order: line %d", i, result.LineNumber)
		}
	}
}

func TestProcessor_ExecutesEachRecordOnce(t *testing.T) {
	exec := &countingExecutor{}
	processor := NewProcessor(exec, 4, newTestLogger())

	records := makeRecords(20)
	if _, err := processor.Process(context.Background(), records); err != nil {
		t.Fatalf("Process failed: %v", err)
	}

	for line, count := range exec.calls {
		if count != 1 {
			t.Errorf("line %d executed %d times, expected exactly once", line, count)
		}
	}
	if len(exec.calls) != 20 {
		t.Errorf("expected 20 distinct records executed, got %d", len(exec.calls))
	}
}

func TestProcessor_SingleWorkerSequential(t *testing.T) {
	exec := &countingExecutor{}
	processor := NewProcessor(exec, 1, newTestLogger())

	results, err := processor.Process(context.Background(), makeRecords(10))
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}

	for i, result := range results {
		if result.Result.Label != fmt.Sprintf("label-%d", i+1) {
			t.Errorf("unexpected result at index %d: %s", i, result.Result.Label)
		}
	}
}

func TestProcessor_ZeroWorkersClampedToOne(t *testing.T) {
	exec := &countingExecutor{}
	processor := NewProcessor(exec, 0, newTestLogger())

	results, err := processor.Process(context.Background(), makeRecords(3))
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	if len(results) != 3 {
		t.Errorf("expected 3 results, got %d", len(results))
	}
}

func TestProcessor_ContextCancellation(t *testing.T) {
	exec := &countingExecutor{delay: 5 * time.Millisecond}
	processor := NewProcessor(exec, 1, newTestLogger())

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	_, err := processor.Process(ctx, makeRecords(1000))
	if err == nil {
		t.Error("expected cancellation error")
	}
}

func TestProcessor_EmptyInput(t *testing.T) {
	exec := &countingExecutor{}
	processor := NewProcessor(exec, 4, newTestLogger())

	results, err := processor.Process(context.Background(), nil)
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("expected no results, got %d", len(results))
	}
}
