// Package testutil provides common utility functions for testing.
package testutil

import (
	"github.com/iwvelando/inflation-forecast/internal/projection"
)

// FindYear finds the record for year in the records slice.
// Returns a pointer to the record if found, nil otherwise.
func FindYear(records []projection.YearRecord, year int) *projection.YearRecord {
	for i := range records {
		if records[i].Year == year {
			return &records[i]
		}
	}
	return nil
}
