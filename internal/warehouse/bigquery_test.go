package warehouse

import (
	"context"
	"errors"
	"testing"
	"time"

	"cwl_stats/internal/app"

	"cloud.google.com/go/bigquery"
	"github.com/google/go-cmp/cmp"
)

var testTime = time.Date(2026, 10, 19, 12, 30, 0, 0, time.UTC)

// mockInserter records rows passed to Put
type mockInserter struct {
	puts     [][]*ScoreRecord
	err      error
	deadline bool
}

func (m *mockInserter) Put(ctx context.Context, src interface{}) error {
	if _, ok := ctx.Deadline(); ok {
		m.deadline = true
	}
	if m.err != nil {
		return m.err
	}
	m.puts = append(m.puts, src.([]*ScoreRecord))
	return nil
}

func newTestBoard() *app.Scoreboard {
	return &app.Scoreboard{
		RunID:    "run-1",
		Season:   "2026-10",
		ClanTag:  "#OURCLAN",
		WarCount: 2,
		Rows: []app.ScoreRow{
			{Tag: "#P", Name: "Player P", WarScores: []int{5, 2}, Total: 7},
			{Tag: "#Q", Name: "Player Q", WarScores: []int{3, -3}, Total: 0},
		},
	}
}

func TestBuildRecords(t *testing.T) {
	board := newTestBoard()
	records := BuildRecords(board, testTime)

	expected := []*ScoreRecord{
		{RunID: "run-1", Season: "2026-10", ClanTag: "#OURCLAN", Tag: "#P", Name: "Player P", WarScores: []int{5, 2}, Total: 7, PublishedAt: testTime},
		{RunID: "run-1", Season: "2026-10", ClanTag: "#OURCLAN", Tag: "#Q", Name: "Player Q", WarScores: []int{3, -3}, Total: 0, PublishedAt: testTime},
	}
	if diff := cmp.Diff(expected, records); diff != "" {
		t.Errorf("Records mismatch (-want +got):\n%s", diff)
	}

	records[0].WarScores[0] = 99
	if board.Rows[0].WarScores[0] != 5 {
		t.Error("Records must not share score slices with the scoreboard")
	}
}

func TestScoreRecord_Save(t *testing.T) {
	record := &ScoreRecord{
		RunID:       "run-1",
		Season:      "2026-10",
		ClanTag:     "#OURCLAN",
		Tag:         "#P",
		Name:        "Player P",
		WarScores:   []int{5, -3},
		Total:       2,
		PublishedAt: testTime,
	}

	row, insertID, err := record.Save()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if insertID != "run-1/#P" {
		t.Errorf("Expected insert ID run-1/#P, got %s", insertID)
	}

	expected := map[string]bigquery.Value{
		"run_id":       "run-1",
		"season":       "2026-10",
		"clan_tag":     "#OURCLAN",
		"tag":          "#P",
		"name":         "Player P",
		"war_scores":   []bigquery.Value{int64(5), int64(-3)},
		"total":        int64(2),
		"published_at": testTime,
	}
	if diff := cmp.Diff(expected, row); diff != "" {
		t.Errorf("Row mismatch (-want +got):\n%s", diff)
	}

	for _, field := range Schema {
		if _, ok := row[field.Name]; !ok {
			t.Errorf("Schema field %s missing from saved row", field.Name)
		}
	}
}

func TestExporter_Publish(t *testing.T) {
	now := func() time.Time { return testTime }

	t.Run("InsertsRows", func(t *testing.T) {
		inserter := &mockInserter{}
		exporter := newExporterWithInserter(inserter, time.Minute, now)

		if err := exporter.Publish(context.Background(), newTestBoard()); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if len(inserter.puts) != 1 || len(inserter.puts[0]) != 2 {
			t.Fatalf("Expected one put of 2 rows, got %v", inserter.puts)
		}
		if !inserter.deadline {
			t.Error("Expected insert to run under a deadline")
		}
	})

	t.Run("EmptyScoreboard", func(t *testing.T) {
		inserter := &mockInserter{}
		exporter := newExporterWithInserter(inserter, time.Minute, now)

		if err := exporter.Publish(context.Background(), &app.Scoreboard{RunID: "run-2"}); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if len(inserter.puts) != 0 {
			t.Error("Expected no insert for an empty scoreboard")
		}
	})

	t.Run("InsertFailure", func(t *testing.T) {
		inserter := &mockInserter{err: errors.New("quota exceeded")}
		exporter := newExporterWithInserter(inserter, 0, now)

		err := exporter.Publish(context.Background(), newTestBoard())
		if !errors.Is(err, inserter.err) {
			t.Fatalf("Expected wrapped insert error, got %v", err)
		}
	})

	t.Run("RowErrors", func(t *testing.T) {
		rowErr := bigquery.PutMultiError{
			{InsertID: "run-1/#P", RowIndex: 0, Errors: bigquery.MultiError{errors.New("invalid")}},
		}
		inserter := &mockInserter{err: rowErr}
		exporter := newExporterWithInserter(inserter, 0, now)

		err := exporter.Publish(context.Background(), newTestBoard())
		var multi bigquery.PutMultiError
		if !errors.As(err, &multi) || len(multi) != 1 {
			t.Fatalf("Expected PutMultiError to be preserved, got %v", err)
		}
	})

	if err := newExporterWithInserter(&mockInserter{}, 0, now).Close(); err != nil {
		t.Errorf("Close without a client should succeed, got %v", err)
	}
}
