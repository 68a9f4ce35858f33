package report

import (
	"context"
	"fmt"
	"io"
	"os"

	"cwl_stats/internal/app"

	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"
)

// SheetName returns the worksheet / tab title for a season's scoreboard
func SheetName(season string) string {
	if season == "" {
		return "CWL"
	}
	return "CWL " + season
}

// WriteXLSX writes the scoreboard to w as a single-sheet workbook
func WriteXLSX(w io.Writer, board *app.Scoreboard) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := SheetName(board.Season)
	if err := f.SetSheetName(f.GetSheetName(f.GetActiveSheetIndex()), sheet); err != nil {
		return fmt.Errorf("failed to name worksheet %q: %w", sheet, err)
	}

	headers := Headers(board.WarCount)
	headerCells := make([]interface{}, len(headers))
	for i, h := range headers {
		headerCells[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &headerCells); err != nil {
		return fmt.Errorf("failed to write header row: %w", err)
	}

	for idx, row := range board.Rows {
		axis, err := excelize.CoordinatesToCellName(1, idx+2)
		if err != nil {
			return fmt.Errorf("failed to compute cell for row %d: %w", idx, err)
		}
		values := RowValues(row)
		if err := f.SetSheetRow(sheet, axis, &values); err != nil {
			return fmt.Errorf("failed to write row for %s: %w", row.Tag, err)
		}
	}

	if err := f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("failed to freeze header row: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// XLSXSink saves the scoreboard workbook to a file path
type XLSXSink struct {
	Path string
}

func (s *XLSXSink) Name() string {
	return "xlsx"
}

func (s *XLSXSink) Publish(ctx context.Context, board *app.Scoreboard) error {
	file, err := os.Create(s.Path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", s.Path, err)
	}

	if err := WriteXLSX(file, board); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", s.Path, err)
	}

	log.Debug().Str("path", s.Path).Int("rows", len(board.Rows)).Msg("Wrote scoreboard workbook")
	return nil
}
