package register

// DatasetReleaseStatus is the state of a dataset in the release process
// (spec.md §5).
type DatasetReleaseStatus string

const (
	ReleaseStatusUnreleased DatasetReleaseStatus = "Unreleased"
	ReleaseStatusReleasing  DatasetReleaseStatus = "Releasing"
	ReleaseStatusReleased   DatasetReleaseStatus = "Released"
	ReleaseStatusPublishing DatasetReleaseStatus = "Publishing"
	ReleaseStatusPublished  DatasetReleaseStatus = "Published"
)

// IsValid reports whether s is one of the five recognised release states.
func (s DatasetReleaseStatus) IsValid() bool {
	switch s {
	case ReleaseStatusUnreleased, ReleaseStatusReleasing, ReleaseStatusReleased,
		ReleaseStatusPublishing, ReleaseStatusPublished:
		return true
	default:
		return false
	}
}

// ReleaseReport summarises validation outcomes across every record in a
// register, plus the missing-required-field check needed before a dataset
// can be released (spec.md §4.4).
type ReleaseReport struct {
	ReleaseStatus DatasetReleaseStatus `json:"releaseStatus"`
	SuccessCount  int                  `json:"successCount"`
	WarningCount  int                  `json:"warningCount"`
	FailCount     int                  `json:"failCount"`
	MissingCount  int                  `json:"missingCount"`

	// Keyed by record id, each value the UI names of fields in that
	// state for that record.
	WarningFields map[string][]string `json:"warningFields"`
	FailFields    map[string][]string `json:"failFields"`
	MissingFields map[string][]string `json:"missingFields"`
}

// NewReleaseReport returns a zeroed report with its status defaulted to
// Unreleased and its field maps initialised to empty (never nil).
func NewReleaseReport() *ReleaseReport {
	return &ReleaseReport{
		ReleaseStatus: ReleaseStatusUnreleased,
		WarningFields: map[string][]string{},
		FailFields:    map[string][]string{},
		MissingFields: map[string][]string{},
	}
}

// MergeReleaseReports combines two reports from shards of the same
// register: counters sum, per-record field lists union with the right
// side winning on duplicate keys, and the merged status is RELEASED only
// if both inputs already agree it is (spec.md §4.4).
func MergeReleaseReports(left, right *ReleaseReport) *ReleaseReport {
	next := NewReleaseReport()

	if left.ReleaseStatus == ReleaseStatusReleased && right.ReleaseStatus == ReleaseStatusReleased {
		next.ReleaseStatus = ReleaseStatusReleased
	}

	next.SuccessCount = left.SuccessCount + right.SuccessCount
	next.WarningCount = left.WarningCount + right.WarningCount
	next.FailCount = left.FailCount + right.FailCount
	next.MissingCount = left.MissingCount + right.MissingCount

	next.WarningFields = unionFieldLists(left.WarningFields, right.WarningFields)
	next.FailFields = unionFieldLists(left.FailFields, right.FailFields)
	next.MissingFields = unionFieldLists(left.MissingFields, right.MissingFields)

	return next
}

// unionFieldLists merges two record-id → field-name-list maps. Keys
// present on both sides take the right side's list, mirroring the
// original implementation's `|` dict-union semantics.
func unionFieldLists(left, right map[string][]string) map[string][]string {
	merged := make(map[string][]string, len(left)+len(right))

	for id, fields := range left {
		merged[id] = fields
	}

	for id, fields := range right {
		merged[id] = fields
	}

	return merged
}
