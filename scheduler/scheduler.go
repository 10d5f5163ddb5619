// Package scheduler implements the Leitner-box review scheduling rule.
package scheduler

import (
	"fmt"
	"time"
)

// leitnerIntervals maps a Leitner box to the number of days until the next
// review. The mapping is fixed, not configurable.
var leitnerIntervals = map[int]int{
	1: 1,
	2: 3,
	3: 7,
	4: 14,
	5: 30,
}

// InvalidBoxError reports a Leitner box outside the valid range.
type InvalidBoxError struct {
	Box int
}

func (e *InvalidBoxError) Error() string {
	return fmt.Sprintf("invalid Leitner box number: %d. Must be between 1 and 5.", e.Box)
}

// NextReviewDate returns when a card in the given Leitner box is next due,
// measured from the moment of grading.
func NextReviewDate(box int) (time.Time, error) {
	days, ok := leitnerIntervals[box]
	if !ok {
		return time.Time{}, &InvalidBoxError{Box: box}
	}
	return time.Now().AddDate(0, 0, days), nil
}
