package timeseries

import "fmt"

// SeriesFetchError reports that one entity's series could not be retrieved.
// Status is the HTTP status when the backend answered, 0 on transport
// failures.
type SeriesFetchError struct {
	Entity string
	Status int
	Err    error
}

func (e *SeriesFetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("series fetch for %s failed with status %d", e.Entity, e.Status)
	}
	return fmt.Sprintf("series fetch for %s failed: %v", e.Entity, e.Err)
}

func (e *SeriesFetchError) Unwrap() error {
	return e.Err
}
