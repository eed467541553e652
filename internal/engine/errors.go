package engine

import (
	"errors"
	"fmt"
)

// InsufficientDataError reports that a computation had fewer qualifying days
// or points than it needs. Gappy and noisy logs are routine, so callers
// surface this as a distinct state rather than a failure.
type InsufficientDataError struct {
	Op   string
	Need int
	Got  int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("%s: insufficient data: need %d qualifying days, have %d", e.Op, e.Need, e.Got)
}

// IsInsufficientData reports whether err is an InsufficientDataError.
func IsInsufficientData(err error) bool {
	var ide *InsufficientDataError
	return errors.As(err, &ide)
}
