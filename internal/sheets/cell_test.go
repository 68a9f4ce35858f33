package sheets

import "testing"

func TestCellString(t *testing.T) {
	testCases := []struct {
		raw      interface{}
		expected string
	}{
		{nil, ""},
		{"#P2Y8RL9C", "#P2Y8RL9C"},
		{float64(7), "7"},
		{-3, "-3"},
	}

	for _, tc := range testCases {
		if got := NewCell(tc.raw).String(); got != tc.expected {
			t.Errorf("NewCell(%v).String() = %q, expected %q", tc.raw, got, tc.expected)
		}
	}
}

func TestCellInt(t *testing.T) {
	testCases := []struct {
		name     string
		raw      interface{}
		expected int
		ok       bool
	}{
		{"Float", float64(12), 12, true},
		{"NegativeFloat", float64(-3), -3, true},
		{"Int", 5, 5, true},
		{"Int64", int64(9), 9, true},
		{"NumericString", " 42 ", 42, true},
		{"Text", "Player", 0, false},
		{"Nil", nil, 0, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := NewCell(tc.raw).Int()
			if got != tc.expected || ok != tc.ok {
				t.Errorf("Expected (%d, %v), got (%d, %v)", tc.expected, tc.ok, got, ok)
			}
		})
	}
}

func TestCellAt(t *testing.T) {
	row := []interface{}{"#P", "Player"}

	if CellAt(row, 1).String() != "Player" {
		t.Error("Expected second cell")
	}
	if !CellAt(row, 5).IsEmpty() || !CellAt(row, -1).IsEmpty() {
		t.Error("Out of range cells should be empty")
	}
}
