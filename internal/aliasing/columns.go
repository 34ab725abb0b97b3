// Package aliasing provides the bijective snake_case↔UI display name map
// for register fields and the controlled-vocabulary lookup tables used by
// field validators. Both are consumed by internal/register as opaque
// lookup tables, per spec.md §1: this package owns their one source of
// truth so the mapping cannot drift out of sync between the parser and the
// release-report aggregator.
package aliasing

// Recognised snake_case field names (spec.md §6). This set is closed: any
// other field name on a Record is an extra field.
const (
	FieldSampleID                   = "sample_id"
	FieldAnimalID                   = "animal_id"
	FieldHostSpecies                = "host_species"
	FieldHostSpeciesNCBITaxID       = "host_species_ncbi_tax_id"
	FieldLatitude                   = "latitude"
	FieldLongitude                  = "longitude"
	FieldSpatialUncertainty         = "spatial_uncertainty"
	FieldCollectionDay              = "collection_day"
	FieldCollectionMonth            = "collection_month"
	FieldCollectionYear             = "collection_year"
	FieldCollectionMethodOrTissue   = "collection_method_or_tissue"
	FieldDetectionMethod            = "detection_method"
	FieldPrimerSequence             = "primer_sequence"
	FieldPrimerCitation             = "primer_citation"
	FieldDetectionTarget            = "detection_target"
	FieldDetectionTargetNCBITaxID   = "detection_target_ncbi_tax_id"
	FieldDetectionOutcome           = "detection_outcome"
	FieldDetectionMeasurement       = "detection_measurement"
	FieldDetectionMeasurementUnits  = "detection_measurement_units"
	FieldPathogen                   = "pathogen"
	FieldPathogenNCBITaxID          = "pathogen_ncbi_tax_id"
	FieldGenbankAccession           = "genbank_accession"
	FieldDetectionComments          = "detection_comments"
	FieldOrganismSex                = "organism_sex"
	FieldDeadOrAlive                = "dead_or_alive"
	FieldHealthNotes                = "health_notes"
	FieldLifeStage                  = "life_stage"
	FieldAge                        = "age"
	FieldMass                       = "mass"
	FieldLength                     = "length"
	FieldMeta                       = "_meta"
)

// columnUINames is the single source of truth for the snake_case → UI
// display name bijection (spec.md §6). Built-in; operators may layer
// additional synonyms on top via Resolver (resolver.go).
var columnUINames = map[string]string{
	FieldSampleID:                  "Sample ID",
	FieldAnimalID:                  "Animal ID",
	FieldHostSpecies:               "Host species",
	FieldHostSpeciesNCBITaxID:      "Host species NCBI tax ID",
	FieldLatitude:                  "Latitude",
	FieldLongitude:                 "Longitude",
	FieldSpatialUncertainty:        "Spatial uncertainty",
	FieldCollectionDay:             "Collection day",
	FieldCollectionMonth:           "Collection month",
	FieldCollectionYear:            "Collection year",
	FieldCollectionMethodOrTissue:  "Collection method or tissue",
	FieldDetectionMethod:           "Detection method",
	FieldPrimerSequence:            "Primer sequence",
	FieldPrimerCitation:            "Primer citation",
	FieldDetectionTarget:           "Detection target",
	FieldDetectionTargetNCBITaxID:  "Detection target NCBI tax ID",
	FieldDetectionOutcome:          "Detection outcome",
	FieldDetectionMeasurement:      "Detection measurement",
	FieldDetectionMeasurementUnits: "Detection measurement units",
	FieldPathogen:                  "Pathogen",
	FieldPathogenNCBITaxID:         "Pathogen NCBI tax ID",
	FieldGenbankAccession:          "GenBank accession",
	FieldDetectionComments:         "Detection comments",
	FieldOrganismSex:               "Organism sex",
	FieldDeadOrAlive:               "Dead or alive",
	FieldHealthNotes:               "Health notes",
	FieldLifeStage:                 "Life stage",
	FieldAge:                       "Age",
	FieldMass:                      "Mass",
	FieldLength:                    "Length",
	FieldMeta:                      "_meta",
}

// uiToColumnNames is the reverse of columnUINames, built once at init.
var uiToColumnNames = reverseMap(columnUINames)

func reverseMap(m map[string]string) map[string]string {
	reversed := make(map[string]string, len(m))
	for k, v := range m {
		reversed[v] = k
	}

	return reversed
}

// RecognisedFields returns every recognised snake_case field name except
// "_meta".
func RecognisedFields() []string {
	fields := make([]string, 0, len(columnUINames)-1)

	for field := range columnUINames {
		if field == FieldMeta {
			continue
		}

		fields = append(fields, field)
	}

	return fields
}

// IsRecognised reports whether name is a closed recognised field.
func IsRecognised(name string) bool {
	_, ok := columnUINames[name]

	return ok
}

// UIName returns the UI display name for a recognised snake_case field. If
// the field is not recognised, it is returned unchanged (callers that need
// to distinguish unrecognised fields should check IsRecognised first).
func UIName(field string) string {
	if ui, ok := columnUINames[field]; ok {
		return ui
	}

	return field
}

// SnakeName returns the snake_case field name for a UI display name, and
// whether it was found.
func SnakeName(ui string) (string, bool) {
	field, ok := uiToColumnNames[ui]

	return field, ok
}

// RequiredFields is the set of recognised fields that must be present and
// non-empty for a dataset to be releasable (spec.md §4.4/§6).
var RequiredFields = []string{
	FieldCollectionDay,
	FieldCollectionMonth,
	FieldCollectionYear,
	FieldLatitude,
	FieldLongitude,
	FieldHostSpecies,
}
