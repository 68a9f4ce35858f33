package report

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"cwl_stats/internal/app"

	"github.com/google/go-cmp/cmp"
	"github.com/xuri/excelize/v2"
)

func sampleBoard() *app.Scoreboard {
	return &app.Scoreboard{
		RunID:    "run-1",
		Season:   "2026-10",
		ClanTag:  "#OURCLAN",
		WarCount: 2,
		Rows: []app.ScoreRow{
			{Tag: "#P", Name: "Player P", WarScores: []int{5, 2}, Total: 7},
			{Tag: "#Q", Name: "Player Q", WarScores: []int{3, -3}, Total: 0},
			{Tag: "#R", Name: "N/A", WarScores: []int{-3, -3}, Total: -6},
		},
	}
}

func TestHeaders(t *testing.T) {
	testCases := []struct {
		warCount int
		expected []string
	}{
		{0, []string{"Tag", "Name", "Total CWL Score"}},
		{2, []string{"Tag", "Name", "War 1 Score", "War 2 Score", "Total CWL Score"}},
	}

	for _, tc := range testCases {
		if diff := cmp.Diff(tc.expected, Headers(tc.warCount)); diff != "" {
			t.Errorf("Headers(%d) mismatch (-want +got):\n%s", tc.warCount, diff)
		}
	}
}

func TestRowValues(t *testing.T) {
	values := RowValues(app.ScoreRow{Tag: "#P", Name: "Player P", WarScores: []int{5, 2}, Total: 7})
	expected := []interface{}{"#P", "Player P", 5, 2, 7}

	if diff := cmp.Diff(expected, values); diff != "" {
		t.Errorf("RowValues mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteTable(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteTable(&buf, sampleBoard()); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("Expected header plus 3 rows, got %d lines:\n%s", len(lines), buf.String())
	}

	header := strings.Fields(lines[0])
	if header[0] != "Tag" || header[len(header)-1] != "Score" {
		t.Errorf("Unexpected header line %q", lines[0])
	}
	if !strings.Contains(lines[0], "War 2 Score") || !strings.Contains(lines[0], "Total CWL Score") {
		t.Errorf("Header is missing score columns: %q", lines[0])
	}

	if fields := strings.Fields(lines[1]); fields[0] != "#P" || fields[len(fields)-1] != "7" {
		t.Errorf("Unexpected first row %q", lines[1])
	}
	if fields := strings.Fields(lines[3]); fields[len(fields)-1] != "-6" {
		t.Errorf("Unexpected last row %q", lines[3])
	}
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteXLSX(&buf, sampleBoard()); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("Failed to reopen workbook: %v", err)
	}
	defer f.Close()

	if diff := cmp.Diff([]string{"CWL 2026-10"}, f.GetSheetList()); diff != "" {
		t.Errorf("Sheet list mismatch (-want +got):\n%s", diff)
	}

	rows, err := f.GetRows("CWL 2026-10")
	if err != nil {
		t.Fatalf("Failed to read rows: %v", err)
	}

	expected := [][]string{
		{"Tag", "Name", "War 1 Score", "War 2 Score", "Total CWL Score"},
		{"#P", "Player P", "5", "2", "7"},
		{"#Q", "Player Q", "3", "-3", "0"},
		{"#R", "N/A", "-3", "-3", "-6"},
	}
	if diff := cmp.Diff(expected, rows); diff != "" {
		t.Errorf("Workbook rows mismatch (-want +got):\n%s", diff)
	}
}

func TestSheetName(t *testing.T) {
	if SheetName("2026-10") != "CWL 2026-10" {
		t.Errorf("Unexpected sheet name %q", SheetName("2026-10"))
	}
	if SheetName("") != "CWL" {
		t.Errorf("Unexpected sheet name for empty season %q", SheetName(""))
	}
}

func TestRenderTotalsChart(t *testing.T) {
	png, err := RenderTotalsChart(sampleBoard())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Error("Expected PNG output")
	}
}

func TestRenderTotalsChart_AllZero(t *testing.T) {
	board := &app.Scoreboard{WarCount: 1, Rows: []app.ScoreRow{{Tag: "#P", Name: "P", WarScores: []int{0}}}}

	if _, err := RenderTotalsChart(board); err != nil {
		t.Errorf("Expected zero totals to render, got %v", err)
	}
}

func TestRenderTotalsChart_Empty(t *testing.T) {
	_, err := RenderTotalsChart(&app.Scoreboard{})
	if !errors.Is(err, ErrNothingToChart) {
		t.Errorf("Expected ErrNothingToChart, got %v", err)
	}
}

func TestFileSinks(t *testing.T) {
	dir := t.TempDir()
	xlsxPath := filepath.Join(dir, "cwl.xlsx")
	chartPath := filepath.Join(dir, "cwl.png")

	xlsxSink := &XLSXSink{Path: xlsxPath}
	chartSink := &ChartSink{Path: chartPath}

	for _, sink := range []interface {
		Name() string
		Publish(ctx context.Context, board *app.Scoreboard) error
	}{xlsxSink, chartSink} {
		if err := sink.Publish(context.Background(), sampleBoard()); err != nil {
			t.Fatalf("%s sink failed: %v", sink.Name(), err)
		}
	}

	for _, path := range []string{xlsxPath, chartPath} {
		info, err := os.Stat(path)
		if err != nil {
			t.Fatalf("Expected %s to exist: %v", path, err)
		}
		if info.Size() == 0 {
			t.Errorf("Expected %s to be non-empty", path)
		}
	}
}

func TestChartSink_EmptyBoardIsSkipped(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.png")
	sink := &ChartSink{Path: path}

	if err := sink.Publish(context.Background(), &app.Scoreboard{}); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("Expected no chart file for an empty scoreboard")
	}
}
