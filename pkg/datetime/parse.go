// Package datetime provides calendar year utility functions.
package datetime

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/iwvelando/inflation-forecast/pkg/constants"
)

var (
	// ErrNotWholeYear is returned when the text is not an integer.
	ErrNotWholeYear = errors.New("not a whole number")
	// ErrYearOutOfRange is returned for years outside [constants.MinYear, constants.MaxYear].
	ErrYearOutOfRange = errors.New("year out of range")
)

// ParseYear parses a calendar year such as "2024". Surrounding whitespace is
// ignored.
func ParseYear(s string) (int, error) {
	year, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, ErrNotWholeYear
	}
	if !InRange(year) {
		return 0, ErrYearOutOfRange
	}
	return year, nil
}

// InRange reports whether year lies within the supported calendar range.
func InRange(year int) bool {
	return year >= constants.MinYear && year <= constants.MaxYear
}

// CurrentYear returns the year of t in its own location.
func CurrentYear(t time.Time) int {
	return t.Year()
}

// YearsInclusive counts the years from start through end, zero when end is
// before start.
func YearsInclusive(start, end int) int {
	if end < start {
		return 0
	}
	return end - start + 1
}
