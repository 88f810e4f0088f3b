package testutil

import (
	"testing"

	"github.com/iwvelando/inflation-forecast/internal/projection"
)

func TestFindYear(t *testing.T) {
	records := []projection.YearRecord{
		{Year: 2024, CurrentYearlyIncome: 12000, AdjustedYearlyIncome: 12000},
		{Year: 2025, CurrentYearlyIncome: 12000, AdjustedYearlyIncome: 13200},
		{Year: 2026, CurrentYearlyIncome: 12000, AdjustedYearlyIncome: 14520},
	}

	tests := []struct {
		name             string
		year             int
		expectFound      bool
		expectedAdjusted float64
	}{
		{name: "First year", year: 2024, expectFound: true, expectedAdjusted: 12000},
		{name: "Middle year", year: 2025, expectFound: true, expectedAdjusted: 13200},
		{name: "Last year", year: 2026, expectFound: true, expectedAdjusted: 14520},
		{name: "Before range", year: 2023, expectFound: false},
		{name: "After range", year: 2027, expectFound: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FindYear(records, tt.year)

			if tt.expectFound {
				if result == nil {
					t.Fatalf("expected to find year %d", tt.year)
				}
				if result.AdjustedYearlyIncome != tt.expectedAdjusted {
					t.Errorf("expected adjusted income %v, got %v", tt.expectedAdjusted, result.AdjustedYearlyIncome)
				}
			} else if result != nil {
				t.Errorf("expected no record for year %d, got %+v", tt.year, *result)
			}
		})
	}
}

func TestFindYearReturnsPointerIntoSlice(t *testing.T) {
	records := []projection.YearRecord{{Year: 2024}}

	result := FindYear(records, 2024)
	if result == nil {
		t.Fatal("expected to find year 2024")
	}
	result.AdjustedYearlyIncome = 1

	if records[0].AdjustedYearlyIncome != 1 {
		t.Errorf("FindYear should return a pointer into the original slice")
	}
}

func TestFindYearEmpty(t *testing.T) {
	if FindYear(nil, 2024) != nil {
		t.Errorf("expected nil for nil slice")
	}
	if FindYear([]projection.YearRecord{}, 2024) != nil {
		t.Errorf("expected nil for empty slice")
	}
}
