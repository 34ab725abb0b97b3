package register

import "github.com/pharos-project/register/internal/aliasing"

// Register is the top-level in-memory collection of records, keyed by
// record id (spec.md §1).
type Register struct {
	Records map[string]*Record
}

// NewRegister returns an empty register.
func NewRegister() *Register {
	return &Register{Records: map[string]*Record{}}
}

// GetReleaseReport walks every record in the register and produces a
// ReleaseReport summarising whether the register is ready to release
// (spec.md §4.4). It runs in two passes per record: a missing-required
// check, then a per-field status classification.
func (reg *Register) GetReleaseReport() *ReleaseReport {
	report := NewReleaseReport()

	for recordID, record := range reg.Records {
		reg.checkMissingRequired(report, recordID, record)
		reg.classifyFields(report, recordID, record)
	}

	if report.MissingCount == 0 && report.FailCount == 0 && report.WarningCount == 0 {
		report.ReleaseStatus = ReleaseStatusReleased
	}

	return report
}

func (reg *Register) checkMissingRequired(report *ReleaseReport, recordID string, record *Record) {
	for _, fieldName := range aliasing.RequiredFields {
		dp := record.fieldByName(fieldName)
		if dp == nil || dp.DataValue == "" {
			report.MissingCount++
			report.MissingFields[recordID] = append(report.MissingFields[recordID], aliasing.UIName(fieldName))
		}
	}
}

func (reg *Register) classifyFields(report *ReleaseReport, recordID string, record *Record) {
	for _, f := range record.fields() {
		reg.classifyDatapoint(report, recordID, f.name, *f.dp)
	}

	for extraName, dp := range record.Extras {
		reg.classifyDatapoint(report, recordID, extraName, dp)
	}
}

func (reg *Register) classifyDatapoint(report *ReleaseReport, recordID, fieldName string, dp *Datapoint) {
	if dp == nil || dp.Report == nil || dp.DataValue == "" {
		return
	}

	switch dp.Report.Status {
	case ScoreSuccess:
		report.SuccessCount++
	case ScoreWarning:
		report.WarningCount++
		report.WarningFields[recordID] = append(report.WarningFields[recordID], aliasing.UIName(fieldName))
	case ScoreFail:
		report.FailCount++
		report.FailFields[recordID] = append(report.FailFields[recordID], aliasing.UIName(fieldName))
	}
}

// fieldByName returns the recognised field's datapoint by its snake_case
// name, or nil if name is not recognised or unset.
func (r *Record) fieldByName(name string) *Datapoint {
	for _, f := range r.fields() {
		if f.name == name {
			return *f.dp
		}
	}

	return nil
}

// MergeRegisters reconciles two shards of the same register, merging any
// record id present in both (spec.md §4.1). An id present in only one
// side is carried through unchanged.
func MergeRegisters(left, right *Register) *Register {
	merged := NewRegister()

	for id, record := range left.Records {
		merged.Records[id] = record
	}

	for id, record := range right.Records {
		merged.Records[id] = MergeRecords(merged.Records[id], record)
	}

	return merged
}
