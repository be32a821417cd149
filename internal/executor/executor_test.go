package executor

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"go.uber.org/mock/gomock"

	"feedback-analysis/internal/executor/mocks"
	"feedback-analysis/internal/models"
)

func newTestLogger() *zerolog.Logger {
	logger := zerolog.Nop()
	return &logger
}

func defaultOptions(mode models.WriteMode) Options {
	return Options{
		ContentCol: 2,
		ModuleCol:  1,
		Strategy:   models.StrategyAll,
		Mode:       mode,
		AppendSep:  ",",
	}
}

func TestExecutor_Execute_Overwrite(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLabeler := mocks.NewMockLabeler(ctrl)
	mockLabeler.EXPECT().
		Classify(gomock.Any(), "卡顿严重", models.StrategyAll).
		Return(models.Classification{Label: "卡顿", Outcome: models.OutcomeRule})

	exec := NewExecutor(mockLabeler, defaultOptions(models.ModeOverwrite), newTestLogger())

	record := models.Record{LineNumber: 2, Fields: []string{"1", "旧模块", "卡顿严重"}}
	result := exec.Execute(context.Background(), record)

	if result.Fields[1] != "卡顿" {
		t.Errorf("expected module column overwritten with 卡顿, got %s", result.Fields[1])
	}
	if result.Result.Outcome != models.OutcomeRule {
		t.Errorf("expected rule outcome, got %s", result.Result.Outcome)
	}
}

func TestExecutor_Execute_OverwriteRerunYieldsSameLabel(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLabeler := mocks.NewMockLabeler(ctrl)
	mockLabeler.EXPECT().
		Classify(gomock.Any(), "卡顿严重", models.StrategyAll).
		Return(models.Classification{Label: "卡顿", Outcome: models.OutcomeRule}).
		Times(2)

	exec := NewExecutor(mockLabeler, defaultOptions(models.ModeOverwrite), newTestLogger())

	first := exec.Execute(context.Background(), models.Record{LineNumber: 2, Fields: []string{"1", "旧模块", "卡顿严重"}})
	second := exec.Execute(context.Background(), models.Record{LineNumber: 2, Fields: first.Fields})

	if second.Fields[1] != first.Fields[1] {
		t.Errorf("rerun over classified output must not change the label, got %q then %q",
			first.Fields[1], second.Fields[1])
	}
}

func TestExecutor_Execute_AppendKeepsPriorValue(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLabeler := mocks.NewMockLabeler(ctrl)
	mockLabeler.EXPECT().
		Classify(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(models.Classification{Label: "VIP", Outcome: models.OutcomeModel})

	exec := NewExecutor(mockLabeler, defaultOptions(models.ModeAppend), newTestLogger())

	record := models.Record{LineNumber: 2, Fields: []string{"1", "卡顿", "会员太贵"}}
	result := exec.Execute(context.Background(), record)

	if result.Fields[1] != "卡顿,VIP" {
		t.Errorf("append must keep prior content, got %s", result.Fields[1])
	}
}

func TestExecutor_Execute_AppendToEmptyModule(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLabeler := mocks.NewMockLabeler(ctrl)
	mockLabeler.EXPECT().
		Classify(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(models.Classification{Label: "VIP", Outcome: models.OutcomeModel})

	exec := NewExecutor(mockLabeler, defaultOptions(models.ModeAppend), newTestLogger())

	record := models.Record{LineNumber: 2, Fields: []string{"1", "  ", "会员太贵"}}
	result := exec.Execute(context.Background(), record)

	if result.Fields[1] != "VIP" {
		t.Errorf("append to blank module must not emit a dangling separator, got %q", result.Fields[1])
	}
}

func TestExecutor_Execute_CustomAppendSeparator(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLabeler := mocks.NewMockLabeler(ctrl)
	mockLabeler.EXPECT().
		Classify(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(models.Classification{Label: "VIP", Outcome: models.OutcomeModel})

	opts := defaultOptions(models.ModeAppend)
	opts.AppendSep = " | "
	exec := NewExecutor(mockLabeler, opts, newTestLogger())

	record := models.Record{LineNumber: 2, Fields: []string{"1", "卡顿", "会员太贵"}}
	result := exec.Execute(context.Background(), record)

	if result.Fields[1] != "卡顿 | VIP" {
		t.Errorf("expected configured separator, got %q", result.Fields[1])
	}
}

func TestExecutor_Execute_ShortRowPassesThrough(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLabeler := mocks.NewMockLabeler(ctrl)
	// Classify must not be called for rows missing the needed columns.

	exec := NewExecutor(mockLabeler, defaultOptions(models.ModeOverwrite), newTestLogger())

	record := models.Record{LineNumber: 3, Fields: []string{"1", "只有两列"}}
	result := exec.Execute(context.Background(), record)

	if result.Result.Outcome != models.OutcomeSkipped {
		t.Errorf("expected skipped outcome, got %s", result.Result.Outcome)
	}
	if len(result.Fields) != 2 || result.Fields[1] != "只有两列" {
		t.Errorf("short row must pass through unchanged, got %v", result.Fields)
	}
}

func TestExecutor_Execute_MalformedRecordSkipped(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLabeler := mocks.NewMockLabeler(ctrl)
	exec := NewExecutor(mockLabeler, defaultOptions(models.ModeOverwrite), newTestLogger())

	record := models.Record{LineNumber: 4, Error: errors.New("bare quote")}
	result := exec.Execute(context.Background(), record)

	if result.Result.Outcome != models.OutcomeSkipped {
		t.Errorf("expected skipped outcome for malformed record, got %s", result.Result.Outcome)
	}
}

func TestExecutor_Execute_SkippedContentLeavesModuleUntouched(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLabeler := mocks.NewMockLabeler(ctrl)
	mockLabeler.EXPECT().
		Classify(gomock.Any(), "", models.StrategyAll).
		Return(models.Classification{Outcome: models.OutcomeSkipped})

	exec := NewExecutor(mockLabeler, defaultOptions(models.ModeOverwrite), newTestLogger())

	record := models.Record{LineNumber: 2, Fields: []string{"1", "原值", ""}}
	result := exec.Execute(context.Background(), record)

	if result.Fields[1] != "原值" {
		t.Errorf("skipped row must keep its module value, got %s", result.Fields[1])
	}
}

func TestExecutor_Execute_FailureSentinelWritten(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLabeler := mocks.NewMockLabeler(ctrl)
	mockLabeler.EXPECT().
		Classify(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(models.Classification{Label: "分类失败", Outcome: models.OutcomeFailed})

	exec := NewExecutor(mockLabeler, defaultOptions(models.ModeOverwrite), newTestLogger())

	record := models.Record{LineNumber: 2, Fields: []string{"1", "", "莫名其妙的反馈"}}
	result := exec.Execute(context.Background(), record)

	if result.Fields[1] != "分类失败" {
		t.Errorf("expected sentinel failure label in output, got %q", result.Fields[1])
	}
	if result.Result.Outcome != models.OutcomeFailed {
		t.Errorf("expected failed outcome, got %s", result.Result.Outcome)
	}
}

func TestExecutor_Execute_InputRowNotMutated(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLabeler := mocks.NewMockLabeler(ctrl)
	mockLabeler.EXPECT().
		Classify(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(models.Classification{Label: "VIP", Outcome: models.OutcomeModel})

	exec := NewExecutor(mockLabeler, defaultOptions(models.ModeOverwrite), newTestLogger())

	fields := []string{"1", "旧值", "会员太贵"}
	exec.Execute(context.Background(), models.Record{LineNumber: 2, Fields: fields})

	if fields[1] != "旧值" {
		t.Errorf("executor must not mutate the input record, got %q", fields[1])
	}
}
