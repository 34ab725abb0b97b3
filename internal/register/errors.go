package register

import "errors"

// Sentinel errors for datapoint coercion failures (spec.md §4.1). Rules
// catch these and materialise them as a FAIL Report rather than
// propagating them.
var (
	// ErrNonNumeric indicates a datapoint's data_value could not be
	// parsed as the requested numeric type.
	ErrNonNumeric = errors.New("value is not numeric")

	// ErrZeroValue indicates a non-zero-integer coercion received zero.
	ErrZeroValue = errors.New("value must be a non-zero integer")
)

// Sentinel errors for structural parsing (spec.md §7). These fail an
// entire parse; they are never attached to a Datapoint as a Report.
var (
	// ErrUnknownField indicates a forbidden-extra entity (User, Project,
	// Dataset, Report) received a field outside its closed schema.
	ErrUnknownField = errors.New("unknown field")

	// ErrMissingRequiredAttribute indicates a required structural field
	// was absent from the input.
	ErrMissingRequiredAttribute = errors.New("missing required attribute")

	// ErrInvalidEnumValue indicates an enum-typed field held a value
	// outside its closed set.
	ErrInvalidEnumValue = errors.New("invalid enum value")

	// ErrMergeRecordIDMismatch is returned by callers that merge
	// registers keyed by record id when a shard disagrees about identity.
	ErrMergeRecordIDMismatch = errors.New("record id mismatch during merge")
)
