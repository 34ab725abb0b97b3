package aliasing

import "strings"

// Value-alias tables: case-insensitive maps from accepted input strings to
// their canonical display value. spec.md §6 describes these as externally
// supplied controlled-vocabulary tables; this package is their single
// source of truth in this repository (see also Resolver for
// operator-supplied additions).

// DetectionOutcomeValues maps accepted detection_outcome strings to their
// canonical form.
var DetectionOutcomeValues = map[string]string{
	"positive":     "Positive",
	"negative":     "Negative",
	"inconclusive": "Inconclusive",
}

// OrganismSexValues maps accepted organism_sex strings to their canonical
// form.
var OrganismSexValues = map[string]string{
	"male":    "Male",
	"female":  "Female",
	"unknown": "Unknown",
}

// DeadOrAliveValues maps accepted dead_or_alive strings to their canonical
// form.
var DeadOrAliveValues = map[string]string{
	"dead":    "Dead",
	"alive":   "Alive",
	"unknown": "Unknown",
}

// humanHostSpecies lists host_species values (lowercased) that are
// rejected outright because Pharos does not accept human infection data.
var humanHostSpecies = map[string]bool{
	"homo sapiens": true,
	"homo sapien":  true,
	"human":        true,
}

// IsDisallowedHostSpecies reports whether value names a human host.
// Comparison is case-insensitive.
func IsDisallowedHostSpecies(value string) bool {
	return humanHostSpecies[strings.ToLower(value)]
}

// lookup performs a case-insensitive lookup against a vocabulary map,
// returning the canonical value and whether it was found.
func lookup(table map[string]string, value string) (string, bool) {
	canonical, ok := table[strings.ToLower(value)]

	return canonical, ok
}

// IsValidDetectionOutcome reports whether value (case-insensitive) is a
// member of the detection-outcome vocabulary.
func IsValidDetectionOutcome(value string) bool {
	_, ok := lookup(DetectionOutcomeValues, value)

	return ok
}

// IsValidOrganismSex reports whether value (case-insensitive) is a member
// of the organism-sex vocabulary.
func IsValidOrganismSex(value string) bool {
	_, ok := lookup(OrganismSexValues, value)

	return ok
}

// IsValidDeadOrAlive reports whether value (case-insensitive) is a member
// of the dead-or-alive vocabulary.
func IsValidDeadOrAlive(value string) bool {
	_, ok := lookup(DeadOrAliveValues, value)

	return ok
}
