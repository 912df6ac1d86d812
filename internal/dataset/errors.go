package dataset

import "fmt"

// DataIntegrityError reports a dataset that fails preparation-time validation:
// duplicate identifiers, ratings outside [0,10], or negative vote counts.
// Downstream statistics are meaningless on such input, so the whole dataset is
// rejected rather than repaired.
type DataIntegrityError struct {
	Reason string
	ID     string
}

func (e *DataIntegrityError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("data integrity: %s (id %s)", e.Reason, e.ID)
	}
	return fmt.Sprintf("data integrity: %s", e.Reason)
}

// InvalidRangeError reports an empty or inverted year range.
type InvalidRangeError struct {
	Start int
	End   int
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("invalid year range %d-%d", e.Start, e.End)
}
