package register

import (
	"errors"
	"testing"
)

func TestNewDatapoint_DefaultPassAttachesSuccess(t *testing.T) {
	dp := NewDatapoint("12345", "u1", 1, nil, ShapeDefaultPass)

	if dp.Report == nil || dp.Report.Status != ScoreSuccess {
		t.Fatalf("expected SUCCESS report, got %+v", dp.Report)
	}
}

func TestNewDatapoint_DefaultPassSkipsEmptyValue(t *testing.T) {
	dp := NewDatapoint("", "u1", 1, nil, ShapeDefaultPass)

	if dp.Report != nil {
		t.Fatalf("expected no report for empty value, got %+v", dp.Report)
	}
}

func TestNewDatapoint_PlainNeverAttachesReport(t *testing.T) {
	dp := NewDatapoint("12345", "u1", 1, nil, ShapePlain)

	if dp.Report != nil {
		t.Fatalf("expected no report for plain shape, got %+v", dp.Report)
	}
}

func TestDatapoint_AsInt(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    int64
		wantErr error
	}{
		{"valid", "42", 42, nil},
		{"negative", "-7", -7, nil},
		{"non-numeric", "abc", 0, ErrNonNumeric},
		{"empty", "", 0, ErrNonNumeric},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dp := &Datapoint{DataValue: tt.value}

			got, err := dp.AsInt()
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("AsInt() error = %v, want %v", err, tt.wantErr)
			}

			if err == nil && got != tt.want {
				t.Fatalf("AsInt() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestDatapoint_AsNonZeroInt_Zero(t *testing.T) {
	dp := &Datapoint{DataValue: "0"}

	_, err := dp.AsNonZeroInt()
	if !errors.Is(err, ErrZeroValue) {
		t.Fatalf("expected ErrZeroValue, got %v", err)
	}
}

func TestDatapoint_IsNumeric(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"12345", true},
		{"", false},
		{"12.3", false},
		{"-1", false},
		{"abc", false},
	}

	for _, tt := range tests {
		dp := &Datapoint{DataValue: tt.value}
		if got := dp.IsNumeric(); got != tt.want {
			t.Errorf("IsNumeric(%q) = %v, want %v", tt.value, got, tt.want)
		}
	}
}

func TestMergeDatapoints_NilSides(t *testing.T) {
	dp := NewDatapoint("v", "u1", 1, nil, ShapePlain)

	if got := MergeDatapoints(nil, dp); got != dp {
		t.Fatalf("merge(nil, dp) should return dp unchanged")
	}

	if got := MergeDatapoints(dp, nil); got != dp {
		t.Fatalf("merge(dp, nil) should return dp unchanged")
	}
}

func TestMergeDatapoints_HigherVersionWins(t *testing.T) {
	older := NewDatapoint("old", "u1", 1, nil, ShapePlain)
	newer := NewDatapoint("new", "u2", 2, nil, ShapePlain)

	merged := MergeDatapoints(older, newer)

	if merged.DataValue != "new" || merged.Version != 2 {
		t.Fatalf("expected newer version to win, got %+v", merged)
	}

	if merged.Previous != older {
		t.Fatalf("expected older version preserved as Previous, got %+v", merged.Previous)
	}
}

func TestMergeDatapoints_EqualVersionPrefersReport(t *testing.T) {
	withoutReport := NewDatapoint("a", "u1", 1, nil, ShapePlain)
	withReport := &Datapoint{DataValue: "b", ModifiedBy: "u2", Version: 1, Report: NewReport(ScoreFail, "bad")}

	merged := MergeDatapoints(withoutReport, withReport)
	if merged.DataValue != "b" {
		t.Fatalf("expected side carrying a report to win, got %+v", merged)
	}

	merged = MergeDatapoints(withReport, withoutReport)
	if merged.DataValue != "b" {
		t.Fatalf("expected side carrying a report to win regardless of argument order, got %+v", merged)
	}
}

func TestMergeDatapoints_EqualVersionNoReportReturnsLeft(t *testing.T) {
	left := NewDatapoint("a", "u1", 1, nil, ShapePlain)
	right := NewDatapoint("b", "u2", 1, nil, ShapePlain)

	merged := MergeDatapoints(left, right)
	if merged != left {
		t.Fatalf("expected left to win when neither side carries a report")
	}
}

func TestMergeDatapoints_RecursesThroughHistory(t *testing.T) {
	// left:  v3 -> v1
	// right: v2 -> v1 (different modifier, same version 1, no reports -> ties keep left's v1)
	leftV1 := NewDatapoint("l1", "ul", 1, nil, ShapePlain)
	leftV3 := NewDatapoint("l3", "ul", 3, leftV1, ShapePlain)

	rightV1 := NewDatapoint("r1", "ur", 1, nil, ShapePlain)
	rightV2 := NewDatapoint("r2", "ur", 2, rightV1, ShapePlain)

	merged := MergeDatapoints(leftV3, rightV2)

	if merged.Version != 3 || merged.DataValue != "l3" {
		t.Fatalf("expected v3 at head, got %+v", merged)
	}

	if merged.Previous == nil || merged.Previous.Version != 2 {
		t.Fatalf("expected v2 next in chain, got %+v", merged.Previous)
	}

	if merged.Previous.Previous == nil || merged.Previous.Previous.Version != 1 {
		t.Fatalf("expected v1 at tail, got %+v", merged.Previous.Previous)
	}
}
