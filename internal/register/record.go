package register

import (
	"fmt"
	"time"

	"github.com/pharos-project/register/internal/aliasing"
)

// RecordMeta stores record-level metadata that is never validated or
// merged as a Datapoint, such as the caller's preferred display order
// (spec.md §6).
type RecordMeta struct {
	Order int `json:"order"`
}

// Record is one row of the register: a fixed set of recognised fields,
// each a *Datapoint, plus any unrecognised fields the caller supplied
// (spec.md §6). Recognised fields use ShapeDefaultPass; collection_day and
// collection_month use ShapePlain because their report is entirely owned
// by the collection_year composite date rule.
type Record struct {
	Meta *RecordMeta `json:"_meta,omitempty"`

	SampleID                  *Datapoint `json:"sample_id,omitempty"`
	AnimalID                  *Datapoint `json:"animal_id,omitempty"`
	HostSpecies               *Datapoint `json:"host_species,omitempty"`
	HostSpeciesNCBITaxID      *Datapoint `json:"host_species_ncbi_tax_id,omitempty"`
	Latitude                  *Datapoint `json:"latitude,omitempty"`
	Longitude                 *Datapoint `json:"longitude,omitempty"`
	SpatialUncertainty        *Datapoint `json:"spatial_uncertainty,omitempty"`
	CollectionDay             *Datapoint `json:"collection_day,omitempty"`
	CollectionMonth           *Datapoint `json:"collection_month,omitempty"`
	CollectionYear            *Datapoint `json:"collection_year,omitempty"`
	CollectionMethodOrTissue  *Datapoint `json:"collection_method_or_tissue,omitempty"`
	DetectionMethod           *Datapoint `json:"detection_method,omitempty"`
	PrimerSequence            *Datapoint `json:"primer_sequence,omitempty"`
	PrimerCitation            *Datapoint `json:"primer_citation,omitempty"`
	DetectionTarget           *Datapoint `json:"detection_target,omitempty"`
	DetectionTargetNCBITaxID  *Datapoint `json:"detection_target_ncbi_tax_id,omitempty"`
	DetectionOutcome          *Datapoint `json:"detection_outcome,omitempty"`
	DetectionMeasurement      *Datapoint `json:"detection_measurement,omitempty"`
	DetectionMeasurementUnits *Datapoint `json:"detection_measurement_units,omitempty"`
	Pathogen                  *Datapoint `json:"pathogen,omitempty"`
	PathogenNCBITaxID         *Datapoint `json:"pathogen_ncbi_tax_id,omitempty"`
	GenbankAccession          *Datapoint `json:"genbank_accession,omitempty"`
	DetectionComments         *Datapoint `json:"detection_comments,omitempty"`
	OrganismSex               *Datapoint `json:"organism_sex,omitempty"`
	DeadOrAlive               *Datapoint `json:"dead_or_alive,omitempty"`
	HealthNotes               *Datapoint `json:"health_notes,omitempty"`
	LifeStage                 *Datapoint `json:"life_stage,omitempty"`
	Age                       *Datapoint `json:"age,omitempty"`
	Mass                      *Datapoint `json:"mass,omitempty"`
	Length                    *Datapoint `json:"length,omitempty"`

	// Extras holds fields supplied under a name outside the recognised
	// set (aliasing.IsRecognised). Every extra is tagged FAIL "Column is
	// not recognized." during Validate.
	Extras map[string]*Datapoint `json:"extras,omitempty"`
}

// fields returns every recognised field in declaration order, paired with
// its snake_case name, so Validate, Merge, and the release report walk
// them identically.
func (r *Record) fields() []struct {
	name string
	dp   **Datapoint
} {
	return []struct {
		name string
		dp   **Datapoint
	}{
		{aliasing.FieldSampleID, &r.SampleID},
		{aliasing.FieldAnimalID, &r.AnimalID},
		{aliasing.FieldHostSpecies, &r.HostSpecies},
		{aliasing.FieldHostSpeciesNCBITaxID, &r.HostSpeciesNCBITaxID},
		{aliasing.FieldLatitude, &r.Latitude},
		{aliasing.FieldLongitude, &r.Longitude},
		{aliasing.FieldSpatialUncertainty, &r.SpatialUncertainty},
		{aliasing.FieldCollectionDay, &r.CollectionDay},
		{aliasing.FieldCollectionMonth, &r.CollectionMonth},
		{aliasing.FieldCollectionYear, &r.CollectionYear},
		{aliasing.FieldCollectionMethodOrTissue, &r.CollectionMethodOrTissue},
		{aliasing.FieldDetectionMethod, &r.DetectionMethod},
		{aliasing.FieldPrimerSequence, &r.PrimerSequence},
		{aliasing.FieldPrimerCitation, &r.PrimerCitation},
		{aliasing.FieldDetectionTarget, &r.DetectionTarget},
		{aliasing.FieldDetectionTargetNCBITaxID, &r.DetectionTargetNCBITaxID},
		{aliasing.FieldDetectionOutcome, &r.DetectionOutcome},
		{aliasing.FieldDetectionMeasurement, &r.DetectionMeasurement},
		{aliasing.FieldDetectionMeasurementUnits, &r.DetectionMeasurementUnits},
		{aliasing.FieldPathogen, &r.Pathogen},
		{aliasing.FieldPathogenNCBITaxID, &r.PathogenNCBITaxID},
		{aliasing.FieldGenbankAccession, &r.GenbankAccession},
		{aliasing.FieldDetectionComments, &r.DetectionComments},
		{aliasing.FieldOrganismSex, &r.OrganismSex},
		{aliasing.FieldDeadOrAlive, &r.DeadOrAlive},
		{aliasing.FieldHealthNotes, &r.HealthNotes},
		{aliasing.FieldLifeStage, &r.LifeStage},
		{aliasing.FieldAge, &r.Age},
		{aliasing.FieldMass, &r.Mass},
		{aliasing.FieldLength, &r.Length},
	}
}

// ParseRecord builds a Record from a raw field-name → value map as
// received over the wire (spec.md §7), resolving each key through
// resolver (built-in UI names and snake names always resolve; operator
// synonyms resolve when configured). Keys that resolve to a recognised
// field populate that field; keys that don't become Extras, which
// Validate always tags FAIL. Every value becomes a Datapoint at the
// given version, then the record is validated before it's returned.
func ParseRecord(raw map[string]string, modifiedBy string, version int64, resolver *aliasing.Resolver) *Record {
	r := &Record{Extras: map[string]*Datapoint{}}
	fieldSlots := r.fields()

	for name, value := range raw {
		resolved, ok := resolver.Resolve(name)
		if !ok {
			r.Extras[name] = NewDatapoint(value, modifiedBy, version, nil, ShapeDefaultPass)

			continue
		}

		shape := ShapeDefaultPass
		if resolved == aliasing.FieldCollectionDay || resolved == aliasing.FieldCollectionMonth {
			shape = ShapePlain
		}

		dp := NewDatapoint(value, modifiedBy, version, nil, shape)

		for _, slot := range fieldSlots {
			if slot.name == resolved {
				*slot.dp = dp

				break
			}
		}
	}

	r.Validate()

	return r
}

// rule is a single field check. It mutates dp.Report in place.
type rule func(dp *Datapoint)

// skipFailOrWarn wraps a rule so it leaves a datapoint that already
// carries a FAIL or WARNING report untouched: it's already invalid, and
// re-running further rules over it would only clobber the first verdict.
func skipFailOrWarn(next rule) rule {
	return func(dp *Datapoint) {
		if dp.Report != nil && (dp.Report.Status == ScoreFail || dp.Report.Status == ScoreWarning) {
			return
		}

		next(dp)
	}
}

// skipEmpty wraps a rule so an empty-string datapoint is cleared of any
// report and never reaches field-specific validation. Empty datapoints
// are kept for history but are not part of a published record.
func skipEmpty(next rule) rule {
	return func(dp *Datapoint) {
		if dp.DataValue == "" {
			dp.Report = nil

			return
		}

		next(dp)
	}
}

func checkHostSpecies(dp *Datapoint) {
	if aliasing.IsDisallowedHostSpecies(dp.DataValue) {
		dp.Report = NewReport(ScoreFail, "Please do not upload data on human infections to Pharos.")
	}
}

const ncbiMessage = "A NCBI taxonomic identifier consists of one to seven digits."

func checkNCBI(dp *Datapoint) {
	if _, err := dp.AsInt(); err != nil {
		dp.Report = NewReport(ScoreFail, err.Error())

		return
	}

	if length := dp.Len(); length <= 0 || length >= 8 {
		dp.Report = NewReport(ScoreFail, ncbiMessage)
	}
}

func checkDetectionOutcome(dp *Datapoint) {
	if !aliasing.IsValidDetectionOutcome(dp.DataValue) {
		dp.Report = NewReport(ScoreFail,
			"Detection outcome must be an unambiguous value such as 'positive', 'negative', or 'inconclusive'.")
	}
}

func checkOrganismSex(dp *Datapoint) {
	if !aliasing.IsValidOrganismSex(dp.DataValue) {
		dp.Report = NewReport(ScoreFail,
			"Organism sex must be an unambiguous value such as male, female, or unknown.")
	}
}

func checkDeadOrAlive(dp *Datapoint) {
	if !aliasing.IsValidDeadOrAlive(dp.DataValue) {
		dp.Report = NewReport(ScoreFail,
			"Dead or alive must be an unambiguous value such as dead, alive, or unknown.")
	}
}

func checkLatitude(dp *Datapoint) {
	v, err := dp.AsDecimal()
	if err != nil {
		dp.Report = NewReport(ScoreFail, err.Error())

		return
	}

	if v.LessThan(decimalOf(-90)) || v.GreaterThan(decimalOf(90)) {
		dp.Report = NewReport(ScoreFail, "Latitude must be between -90 and 90.")
	}
}

func checkLongitude(dp *Datapoint) {
	v, err := dp.AsDecimal()
	if err != nil {
		dp.Report = NewReport(ScoreFail, err.Error())

		return
	}

	if v.LessThan(decimalOf(-180)) || v.GreaterThan(decimalOf(180)) {
		dp.Report = NewReport(ScoreFail, "Longitude must be between -180 and 180.")
	}
}

func checkFloat(dp *Datapoint) {
	if _, err := dp.AsDecimal(); err != nil {
		dp.Report = NewReport(ScoreFail,
			"Must be a number, units can be configured in dataset settings (coming soon).")
	}
}

// applyDateRule implements the collection_year composite rule: it
// cross-validates day, month, and year together and, on success or
// calendar failure, writes the same Report onto all three datapoints
// (spec.md §4.3, S3).
func applyDateRule(day, month, year *Datapoint) {
	if year.DataValue == "" {
		year.Report = nil

		return
	}

	if day == nil || month == nil || day.DataValue == "" || month.DataValue == "" {
		return
	}

	if len(year.DataValue) < 4 {
		year.Report = NewReport(ScoreFail, "Year must be a four-digit year")

		return
	}

	y, yErr := year.AsInt()
	m, mErr := month.AsInt()
	d, dErr := day.AsInt()

	var report *Report

	switch {
	case yErr != nil || mErr != nil || dErr != nil:
		report = NewReport(ScoreFail, "All of day, month, and year must be numbers.")
	default:
		if reason, invalid := calendarDateError(y, m, d); invalid {
			report = NewReport(ScoreFail, fmt.Sprintf("Date %d-%d-%d is invalid, %s.", y, m, d, reason))
		} else {
			report = NewReport(ScoreSuccess, fmt.Sprintf("Date %04d-%02d-%02d is ready to release", y, m, d))
		}
	}

	day.Report = report
	month.Report = report
	year.Report = report
}

// calendarDateError reports why y-m-d is not a real calendar date, or
// invalid=false if it is. time.Date silently normalises out-of-range
// components (Feb 31 rolls into March), so the constructed date is
// compared back against the inputs to detect that, and the specific
// out-of-range component is named in the same terms Python's own
// datetime() ValueError uses for the equivalent failure.
func calendarDateError(y, m, d int64) (reason string, invalid bool) {
	if m < 1 || m > 12 {
		return "month must be in 1..12", true
	}

	lastDay := daysInMonth(y, m)
	if d < 1 || d > lastDay {
		return "day is out of range for month", true
	}

	t := time.Date(int(y), time.Month(m), int(d), 0, 0, 0, 0, time.UTC)
	if int64(t.Year()) != y || int64(t.Month()) != m || int64(t.Day()) != d {
		return "day is out of range for month", true
	}

	return "", false
}

// daysInMonth returns the number of days in month m of year y, asking
// time.Date for the last day of m by requesting day 0 of the month after.
func daysInMonth(y, m int64) int64 {
	t := time.Date(int(y), time.Month(m+1), 0, 0, 0, 0, 0, time.UTC)

	return int64(t.Day())
}

// Validate runs the field validation pipeline over every recognised and
// extra field, attaching a Report to each datapoint that needs one
// (spec.md §4). It mutates the record's datapoints in place.
func (r *Record) Validate() {
	applyRule := func(dp *Datapoint, base rule) {
		if dp == nil {
			return
		}

		skipFailOrWarn(skipEmpty(base))(dp)
	}

	applyRule(r.HostSpecies, checkHostSpecies)
	applyRule(r.HostSpeciesNCBITaxID, checkNCBI)
	applyRule(r.DetectionTargetNCBITaxID, checkNCBI)
	applyRule(r.PathogenNCBITaxID, checkNCBI)
	applyRule(r.DetectionOutcome, checkDetectionOutcome)
	applyRule(r.OrganismSex, checkOrganismSex)
	applyRule(r.DeadOrAlive, checkDeadOrAlive)
	applyRule(r.Latitude, checkLatitude)
	applyRule(r.Longitude, checkLongitude)
	applyRule(r.Age, checkFloat)
	applyRule(r.Mass, checkFloat)
	applyRule(r.Length, checkFloat)
	applyRule(r.SpatialUncertainty, checkFloat)

	if r.CollectionYear != nil {
		applyDateRule(r.CollectionDay, r.CollectionMonth, r.CollectionYear)
	}

	for name, dp := range r.Extras {
		if dp == nil {
			continue
		}

		_ = name

		dp.Report = NewReport(ScoreFail, "Column is not recognized.")
	}
}

// MergeRecords reconciles two versions of the same record field by field
// (spec.md §4.1). If either side is nil, the other is returned unchanged.
func MergeRecords(left, right *Record) *Record {
	if right == nil {
		return left
	}

	if left == nil {
		return right
	}

	next := &Record{Meta: left.Meta}
	if next.Meta == nil {
		next.Meta = right.Meta
	}

	leftFields, rightFields, nextFields := left.fields(), right.fields(), next.fields()
	for i := range nextFields {
		*nextFields[i].dp = MergeDatapoints(*leftFields[i].dp, *rightFields[i].dp)
	}

	next.Extras = mergeExtras(left.Extras, right.Extras)

	return next
}

func mergeExtras(left, right map[string]*Datapoint) map[string]*Datapoint {
	if len(left) == 0 && len(right) == 0 {
		return nil
	}

	merged := make(map[string]*Datapoint, len(left)+len(right))

	for name, dp := range left {
		merged[name] = dp
	}

	for name, dp := range right {
		merged[name] = MergeDatapoints(merged[name], dp)
	}

	return merged
}
