package register

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// Shape selects the construction policy for a new Datapoint (design notes,
// spec.md §9): ShapePlain attaches no report; ShapeDefaultPass attaches an
// initial SUCCESS report to any non-empty value with no pre-existing
// report. Field rules may still override a default-pass report to FAIL.
type Shape int

const (
	// ShapePlain constructs a Datapoint with no automatic report.
	ShapePlain Shape = iota

	// ShapeDefaultPass constructs a Datapoint that starts out SUCCESS
	// ("Ready to release.") whenever it holds a non-empty value and was
	// not given an explicit report.
	ShapeDefaultPass
)

// defaultPassMessage is the message attached by ShapeDefaultPass.
const defaultPassMessage = "Ready to release."

// Datapoint is a single versioned cell: a raw string value, the editor who
// last touched it, a monotonic version used only for ordering, an optional
// validation verdict, and a link to its prior version forming a linear
// history chain (spec.md §3).
type Datapoint struct {
	DataValue  string     `json:"dataValue"`
	ModifiedBy string     `json:"modifiedBy"`
	Version    int64      `json:"version"`
	Report     *Report    `json:"report,omitempty"`
	Previous   *Datapoint `json:"previous,omitempty"`
}

// NewDatapoint constructs a Datapoint per the given Shape. previous may be
// nil for a datapoint with no history yet.
func NewDatapoint(value, modifiedBy string, version int64, previous *Datapoint, shape Shape) *Datapoint {
	dp := &Datapoint{
		DataValue:  value,
		ModifiedBy: modifiedBy,
		Version:    version,
		Previous:   previous,
	}

	if shape == ShapeDefaultPass && dp.Report == nil && dp.DataValue != "" {
		dp.Report = NewReport(ScoreSuccess, defaultPassMessage)
	}

	return dp
}

// decimalOf is a small convenience wrapper for building bound constants
// used by field rules.
func decimalOf(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

// AsDecimal interprets DataValue as a decimal number.
func (d *Datapoint) AsDecimal() (decimal.Decimal, error) {
	v, err := decimal.NewFromString(d.DataValue)
	if err != nil {
		return decimal.Decimal{}, ErrNonNumeric
	}

	return v, nil
}

// AsInt interprets DataValue as an integer.
func (d *Datapoint) AsInt() (int64, error) {
	v, err := strconv.ParseInt(d.DataValue, 10, 64)
	if err != nil {
		return 0, ErrNonNumeric
	}

	return v, nil
}

// AsNonZeroInt interprets DataValue as a non-zero integer.
func (d *Datapoint) AsNonZeroInt() (int64, error) {
	v, err := d.AsInt()
	if err != nil {
		return 0, err
	}

	if v == 0 {
		return 0, ErrZeroValue
	}

	return v, nil
}

// Len returns the length of the raw value string.
func (d *Datapoint) Len() int {
	return len(d.DataValue)
}

// IsNumeric reports whether DataValue consists entirely of decimal digits.
func (d *Datapoint) IsNumeric() bool {
	if d.DataValue == "" {
		return false
	}

	for _, r := range d.DataValue {
		if r < '0' || r > '9' {
			return false
		}
	}

	return true
}

// copyShallow returns a new Datapoint with the same scalar fields and
// Report, but no Previous — the caller attaches the merged Previous chain.
func (d *Datapoint) copyShallow() *Datapoint {
	next := &Datapoint{
		DataValue:  d.DataValue,
		ModifiedBy: d.ModifiedBy,
		Version:    d.Version,
	}
	if d.Report != nil {
		reportCopy := *d.Report
		next.Report = &reportCopy
	}

	return next
}

// MergeDatapoints reconciles two divergent histories of the same cell into
// a single linear chain in strictly decreasing version order (spec.md
// §4.1). It is deterministic, associative, and commutative up to the
// equal-version tie-break (which side carries a Report).
func MergeDatapoints(left, right *Datapoint) *Datapoint {
	if left == nil {
		return right
	}

	if right == nil {
		return left
	}

	if left.Version == right.Version {
		if left.Report != nil {
			next := left.copyShallow()
			next.Previous = MergeDatapoints(left.Previous, right.Previous)

			return next
		}

		if right.Report != nil {
			next := right.copyShallow()
			next.Previous = MergeDatapoints(left.Previous, right.Previous)

			return next
		}

		// Neither side carries a report: they are semantically equal.
		return left
	}

	if left.Version > right.Version {
		next := left.copyShallow()
		next.Previous = MergeDatapoints(left.Previous, right)

		return next
	}

	next := right.copyShallow()
	next.Previous = MergeDatapoints(left, right.Previous)

	return next
}
