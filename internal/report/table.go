package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"cwl_stats/internal/app"
)

// Column headers of the scoreboard table
const (
	TagHeader   = "Tag"
	NameHeader  = "Name"
	TotalHeader = "Total CWL Score"
)

// WarHeader returns the header of the score column for a 1-based war index
func WarHeader(index int) string {
	return fmt.Sprintf("War %d Score", index)
}

// Headers returns Tag, Name, War 1 Score ... War N Score, Total CWL Score
func Headers(warCount int) []string {
	headers := make([]string, 0, warCount+3)
	headers = append(headers, TagHeader, NameHeader)
	for i := 1; i <= warCount; i++ {
		headers = append(headers, WarHeader(i))
	}
	return append(headers, TotalHeader)
}

// RowValues flattens a score row into cell values in header order
func RowValues(row app.ScoreRow) []interface{} {
	values := make([]interface{}, 0, len(row.WarScores)+3)
	values = append(values, row.Tag, row.Name)
	for _, score := range row.WarScores {
		values = append(values, score)
	}
	return append(values, row.Total)
}

// WriteTable renders the scoreboard as an aligned text table
func WriteTable(w io.Writer, board *app.Scoreboard) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	if _, err := fmt.Fprintln(tw, strings.Join(Headers(board.WarCount), "\t")); err != nil {
		return fmt.Errorf("failed to write table header: %w", err)
	}

	for _, row := range board.Rows {
		cells := make([]string, 0, len(row.WarScores)+3)
		cells = append(cells, row.Tag, row.Name)
		for _, score := range row.WarScores {
			cells = append(cells, strconv.Itoa(score))
		}
		cells = append(cells, strconv.Itoa(row.Total))

		if _, err := fmt.Fprintln(tw, strings.Join(cells, "\t")); err != nil {
			return fmt.Errorf("failed to write table row for %s: %w", row.Tag, err)
		}
	}

	return tw.Flush()
}
