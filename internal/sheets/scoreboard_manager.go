package sheets

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cwl_stats/internal/app"
	"cwl_stats/internal/report"

	"github.com/rs/zerolog/log"
)

// ScoreboardManager publishes CWL scoreboards to one tab per season
type ScoreboardManager struct {
	api           SheetsAPI
	spreadsheetID string
	now           func() time.Time
}

// NewScoreboardManager creates a new scoreboard manager with the given API client
func NewScoreboardManager(api SheetsAPI, spreadsheetID string) *ScoreboardManager {
	return &ScoreboardManager{
		api:           api,
		spreadsheetID: spreadsheetID,
		now:           time.Now,
	}
}

// TotalChange describes how a player's total moved since the last publication
type TotalChange struct {
	Tag      string
	Name     string
	Previous int
	Current  int
	IsNew    bool
}

// Delta returns Current minus Previous
func (c TotalChange) Delta() int {
	return c.Current - c.Previous
}

// quoteSheetName quotes a tab name for A1 notation
func quoteSheetName(name string) string {
	return "'" + strings.ReplaceAll(name, "'", "''") + "'"
}

func (m *ScoreboardManager) Name() string {
	return "sheets"
}

// Publish writes the scoreboard to the season tab, replacing what was there
func (m *ScoreboardManager) Publish(ctx context.Context, board *app.Scoreboard) error {
	tabName := report.SheetName(board.Season)

	if err := m.EnsureScoreboardSheet(ctx, tabName); err != nil {
		return err
	}

	previous, err := m.ReadPublishedTotals(ctx, tabName)
	if err != nil {
		return err
	}

	values := m.ConvertScoreboardToRows(board)
	if err := m.api.EnsureSheetCapacity(ctx, m.spreadsheetID, tabName, len(values), len(report.Headers(board.WarCount))); err != nil {
		return fmt.Errorf("failed to ensure capacity of %s: %w", tabName, err)
	}

	if err := m.api.ClearRange(ctx, m.spreadsheetID, quoteSheetName(tabName)); err != nil {
		return fmt.Errorf("failed to clear %s: %w", tabName, err)
	}

	if err := m.api.UpdateRange(ctx, m.spreadsheetID, quoteSheetName(tabName)+"!A1", values); err != nil {
		return fmt.Errorf("failed to write scoreboard to %s: %w", tabName, err)
	}

	changes := ComputeTotalChanges(previous, board.Rows)
	for _, change := range changes {
		log.Info().
			Str("tag", change.Tag).
			Str("name", change.Name).
			Int("previous", change.Previous).
			Int("current", change.Current).
			Bool("new_player", change.IsNew).
			Msg("Total CWL score changed")
	}

	log.Info().
		Str("sheet_name", tabName).
		Int("rows", len(board.Rows)).
		Int("wars", board.WarCount).
		Int("changed_totals", len(changes)).
		Msg("Updated scoreboard sheet")

	return nil
}

// EnsureScoreboardSheet creates the season tab if it doesn't exist
func (m *ScoreboardManager) EnsureScoreboardSheet(ctx context.Context, tabName string) error {
	exists, err := m.api.SheetExists(ctx, m.spreadsheetID, tabName)
	if err != nil {
		return fmt.Errorf("failed to check if scoreboard sheet exists: %w", err)
	}
	if exists {
		return nil
	}

	log.Info().
		Str("sheet_name", tabName).
		Msg("Creating scoreboard sheet")

	if err := m.api.CreateSheet(ctx, m.spreadsheetID, tabName); err != nil {
		return fmt.Errorf("failed to create scoreboard sheet: %w", err)
	}
	return nil
}

// ReadPublishedTotals reads the totals currently on the tab keyed by player
// tag. An empty or header-less tab yields an empty map.
func (m *ScoreboardManager) ReadPublishedTotals(ctx context.Context, tabName string) (map[string]int, error) {
	values, err := m.api.ReadSheet(ctx, m.spreadsheetID, quoteSheetName(tabName))
	if err != nil {
		return nil, fmt.Errorf("failed to read existing scoreboard: %w", err)
	}

	return ParsePublishedTotals(values), nil
}

// ParsePublishedTotals extracts tag -> total from previously written values.
// The total column is located by its header; rows whose first cell is not a
// tag (footer, blanks) are ignored.
func ParsePublishedTotals(values [][]interface{}) map[string]int {
	totals := make(map[string]int)
	if len(values) == 0 {
		return totals
	}

	totalCol := -1
	for col := range values[0] {
		if CellAt(values[0], col).String() == report.TotalHeader {
			totalCol = col
			break
		}
	}
	if totalCol < 0 {
		return totals
	}

	for _, row := range values[1:] {
		tag := CellAt(row, 0).String()
		if !strings.HasPrefix(tag, "#") {
			continue
		}
		if total, ok := CellAt(row, totalCol).Int(); ok {
			totals[tag] = total
		}
	}

	return totals
}

// ConvertScoreboardToRows converts a scoreboard into spreadsheet rows:
// header, one row per player, a blank row and a footer.
func (m *ScoreboardManager) ConvertScoreboardToRows(board *app.Scoreboard) [][]interface{} {
	headers := report.Headers(board.WarCount)
	headerRow := make([]interface{}, len(headers))
	for i, h := range headers {
		headerRow[i] = h
	}

	values := make([][]interface{}, 0, len(board.Rows)+3)
	values = append(values, headerRow)
	for _, row := range board.Rows {
		values = append(values, report.RowValues(row))
	}

	values = append(values,
		[]interface{}{},
		[]interface{}{"Last Updated", m.now().UTC().Format("2006-01-02 15:04:05"), "Run ID", board.RunID},
	)

	return values
}

// ComputeTotalChanges lists players whose total differs from the previously
// published one, including players that were not published before.
//
// Pure function: No I/O operations, fully testable with direct inputs.
func ComputeTotalChanges(previous map[string]int, rows []app.ScoreRow) []TotalChange {
	var changes []TotalChange

	for _, row := range rows {
		before, ok := previous[row.Tag]
		if ok && before == row.Total {
			continue
		}
		changes = append(changes, TotalChange{
			Tag:      row.Tag,
			Name:     row.Name,
			Previous: before,
			Current:  row.Total,
			IsNew:    !ok,
		})
	}

	return changes
}
