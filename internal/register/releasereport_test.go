package register

import "testing"

func TestMergeReleaseReports_StatusRequiresBothReleased(t *testing.T) {
	released := &ReleaseReport{ReleaseStatus: ReleaseStatusReleased, WarningFields: map[string][]string{}, FailFields: map[string][]string{}, MissingFields: map[string][]string{}}
	unreleased := &ReleaseReport{ReleaseStatus: ReleaseStatusUnreleased, WarningFields: map[string][]string{}, FailFields: map[string][]string{}, MissingFields: map[string][]string{}}

	merged := MergeReleaseReports(released, released)
	if merged.ReleaseStatus != ReleaseStatusReleased {
		t.Fatalf("expected RELEASED when both sides released, got %s", merged.ReleaseStatus)
	}

	merged = MergeReleaseReports(released, unreleased)
	if merged.ReleaseStatus != ReleaseStatusUnreleased {
		t.Fatalf("expected default Unreleased when one side disagrees, got %s", merged.ReleaseStatus)
	}
}

func TestMergeReleaseReports_CountersSum(t *testing.T) {
	left := NewReleaseReport()
	left.SuccessCount, left.WarningCount, left.FailCount, left.MissingCount = 3, 1, 2, 1

	right := NewReleaseReport()
	right.SuccessCount, right.WarningCount, right.FailCount, right.MissingCount = 4, 0, 1, 2

	merged := MergeReleaseReports(left, right)

	if merged.SuccessCount != 7 || merged.WarningCount != 1 || merged.FailCount != 3 || merged.MissingCount != 3 {
		t.Fatalf("unexpected merged counters: %+v", merged)
	}
}

func TestMergeReleaseReports_FieldListsUnionRightBiased(t *testing.T) {
	left := NewReleaseReport()
	left.FailFields["rec1"] = []string{"Latitude"}
	left.FailFields["shared"] = []string{"left-wins-never"}

	right := NewReleaseReport()
	right.FailFields["rec2"] = []string{"Longitude"}
	right.FailFields["shared"] = []string{"right-value"}

	merged := MergeReleaseReports(left, right)

	if len(merged.FailFields["rec1"]) != 1 || merged.FailFields["rec1"][0] != "Latitude" {
		t.Fatalf("expected left-only key preserved, got %+v", merged.FailFields["rec1"])
	}

	if len(merged.FailFields["rec2"]) != 1 || merged.FailFields["rec2"][0] != "Longitude" {
		t.Fatalf("expected right-only key preserved, got %+v", merged.FailFields["rec2"])
	}

	if merged.FailFields["shared"][0] != "right-value" {
		t.Fatalf("expected right side to win on shared key, got %+v", merged.FailFields["shared"])
	}
}
