package analysis

import "fmt"

// InsufficientDataError reports a partition or category group below its
// minimum-size floor. The affected candidate or category is skipped; the rest
// of the run proceeds.
type InsufficientDataError struct {
	Context string
	Size    int
	Min     int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("insufficient data for %s: %d observations, need at least %d", e.Context, e.Size, e.Min)
}
