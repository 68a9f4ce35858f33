package sheets

import (
	"testing"
)

func TestPlanCapacity(t *testing.T) {
	testCases := []struct {
		name               string
		curRows, curCols   int
		reqRows, reqCols   int
		wantRows, wantCols int
		wantResize         bool
	}{
		{"AlreadyLargeEnough", 1000, 26, 40, 10, 1000, 26, false},
		{"ExactFit", 40, 10, 40, 10, 40, 10, false},
		{"NeedsRows", 20, 26, 40, 10, 90, 26, true},
		{"NeedsColumns", 1000, 5, 40, 10, 1000, 15, true},
		{"NeedsBoth", 0, 0, 3, 4, 53, 9, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rows, cols, resize := PlanCapacity(tc.curRows, tc.curCols, tc.reqRows, tc.reqCols)
			if rows != tc.wantRows || cols != tc.wantCols || resize != tc.wantResize {
				t.Errorf("PlanCapacity(%d, %d, %d, %d) = (%d, %d, %v), want (%d, %d, %v)",
					tc.curRows, tc.curCols, tc.reqRows, tc.reqCols,
					rows, cols, resize, tc.wantRows, tc.wantCols, tc.wantResize)
			}
		})
	}
}

func TestQuoteSheetName(t *testing.T) {
	testCases := []struct {
		name     string
		expected string
	}{
		{"CWL 2026-10", "'CWL 2026-10'"},
		{"CWL", "'CWL'"},
		{"Bob's CWL", "'Bob''s CWL'"},
	}

	for _, tc := range testCases {
		if got := quoteSheetName(tc.name); got != tc.expected {
			t.Errorf("quoteSheetName(%q) = %q, want %q", tc.name, got, tc.expected)
		}
		if got := sheetFromRange(quoteSheetName(tc.name) + "!A1"); got != tc.name {
			t.Errorf("Round trip of %q gave %q", tc.name, got)
		}
	}
}
