package sheets

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Cell provides type-safe access to Google Sheets cell values.
// The Google Sheets API returns [][]interface{}; numbers read with
// UNFORMATTED_VALUE arrive as float64.
type Cell struct {
	raw interface{}
}

// NewCell creates a Cell from a raw interface{} value from Google Sheets API
func NewCell(raw interface{}) Cell {
	return Cell{raw: raw}
}

// CellAt returns the cell at column col of row, or an empty cell when the
// row is shorter (the API trims trailing empty cells)
func CellAt(row []interface{}, col int) Cell {
	if col < 0 || col >= len(row) {
		return Cell{}
	}
	return NewCell(row[col])
}

// String returns the cell value as a string
func (c Cell) String() string {
	if c.raw == nil {
		return ""
	}
	if s, ok := c.raw.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", c.raw)
}

// Int returns the cell value as an int and whether it held a number
func (c Cell) Int() (int, bool) {
	switch v := c.raw.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(math.Round(v)), true
	case string:
		if i, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return i, true
		}
	}
	return 0, false
}

// IsEmpty returns true if the cell contains nil or empty string
func (c Cell) IsEmpty() bool {
	return c.raw == nil || c.raw == ""
}
