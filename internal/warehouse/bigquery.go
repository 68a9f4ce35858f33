package warehouse

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"cwl_stats/internal/app"
	"cwl_stats/internal/config"

	"cloud.google.com/go/bigquery"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// Schema is the BigQuery table schema for score rows
var Schema = bigquery.Schema{
	{Name: "run_id", Type: bigquery.StringFieldType, Required: true},
	{Name: "season", Type: bigquery.StringFieldType},
	{Name: "clan_tag", Type: bigquery.StringFieldType, Required: true},
	{Name: "tag", Type: bigquery.StringFieldType, Required: true},
	{Name: "name", Type: bigquery.StringFieldType},
	{Name: "war_scores", Type: bigquery.IntegerFieldType, Repeated: true},
	{Name: "total", Type: bigquery.IntegerFieldType, Required: true},
	{Name: "published_at", Type: bigquery.TimestampFieldType, Required: true},
}

// RowInserter streams rows into a table. *bigquery.Inserter satisfies it.
type RowInserter interface {
	Put(ctx context.Context, src interface{}) error
}

var _ RowInserter = (*bigquery.Inserter)(nil)

// ScoreRecord is one scoreboard row as stored in BigQuery
type ScoreRecord struct {
	RunID       string
	Season      string
	ClanTag     string
	Tag         string
	Name        string
	WarScores   []int
	Total       int
	PublishedAt time.Time
}

// Save implements bigquery.ValueSaver. The insert ID makes retried inserts
// of the same run idempotent.
func (r *ScoreRecord) Save() (map[string]bigquery.Value, string, error) {
	scores := make([]bigquery.Value, len(r.WarScores))
	for i, score := range r.WarScores {
		scores[i] = int64(score)
	}

	row := map[string]bigquery.Value{
		"run_id":       r.RunID,
		"season":       r.Season,
		"clan_tag":     r.ClanTag,
		"tag":          r.Tag,
		"name":         r.Name,
		"war_scores":   scores,
		"total":        int64(r.Total),
		"published_at": r.PublishedAt,
	}

	return row, r.RunID + "/" + r.Tag, nil
}

// BuildRecords flattens a scoreboard into BigQuery records stamped with publishedAt
func BuildRecords(board *app.Scoreboard, publishedAt time.Time) []*ScoreRecord {
	records := make([]*ScoreRecord, 0, len(board.Rows))
	for _, row := range board.Rows {
		scores := make([]int, len(row.WarScores))
		copy(scores, row.WarScores)

		records = append(records, &ScoreRecord{
			RunID:       board.RunID,
			Season:      board.Season,
			ClanTag:     board.ClanTag,
			Tag:         row.Tag,
			Name:        row.Name,
			WarScores:   scores,
			Total:       row.Total,
			PublishedAt: publishedAt.UTC(),
		})
	}
	return records
}

// Exporter appends scoreboards to a BigQuery table
type Exporter struct {
	client   *bigquery.Client
	table    *bigquery.Table
	inserter RowInserter
	timeout  time.Duration
	now      func() time.Time
}

// NewExporter connects to BigQuery using the service account credentials file
func NewExporter(ctx context.Context, projectID, datasetID, tableID, credentialsFile string, pacing config.PacingConfig) (*Exporter, error) {
	client, err := bigquery.NewClient(ctx, projectID, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, fmt.Errorf("failed to create bigquery client: %w", err)
	}

	table := client.Dataset(datasetID).Table(tableID)

	return &Exporter{
		client:   client,
		table:    table,
		inserter: table.Inserter(),
		timeout:  pacing.Timeout,
		now:      time.Now,
	}, nil
}

// newExporterWithInserter builds an exporter around an arbitrary inserter
func newExporterWithInserter(inserter RowInserter, timeout time.Duration, now func() time.Time) *Exporter {
	return &Exporter{
		inserter: inserter,
		timeout:  timeout,
		now:      now,
	}
}

// Close releases the BigQuery client
func (e *Exporter) Close() error {
	if e.client == nil {
		return nil
	}
	return e.client.Close()
}

func (e *Exporter) Name() string {
	return "bigquery"
}

// EnsureTable creates the destination table with Schema if it doesn't exist
func (e *Exporter) EnsureTable(ctx context.Context) error {
	if e.table == nil {
		return nil
	}

	_, err := e.table.Metadata(ctx)
	if err == nil {
		return nil
	}

	var apiErr *googleapi.Error
	if !errors.As(err, &apiErr) || apiErr.Code != http.StatusNotFound {
		return fmt.Errorf("failed to read table metadata: %w", err)
	}

	log.Info().
		Str("dataset", e.table.DatasetID).
		Str("table", e.table.TableID).
		Msg("Creating BigQuery table")

	if err := e.table.Create(ctx, &bigquery.TableMetadata{Schema: Schema}); err != nil {
		return fmt.Errorf("failed to create table: %w", err)
	}
	return nil
}

// Publish streams every scoreboard row into the table
func (e *Exporter) Publish(ctx context.Context, board *app.Scoreboard) error {
	records := BuildRecords(board, e.now())
	if len(records) == 0 {
		log.Warn().
			Str("run_id", board.RunID).
			Msg("Scoreboard has no rows, nothing to insert")
		return nil
	}

	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	if err := e.EnsureTable(ctx); err != nil {
		return err
	}

	if err := e.inserter.Put(ctx, records); err != nil {
		var multi bigquery.PutMultiError
		if errors.As(err, &multi) {
			for _, rowErr := range multi {
				log.Error().
					Int("row_index", rowErr.RowIndex).
					Str("insert_id", rowErr.InsertID).
					Msg(rowErr.Errors.Error())
			}
		}
		return fmt.Errorf("failed to insert %d rows: %w", len(records), err)
	}

	log.Info().
		Str("run_id", board.RunID).
		Int("rows", len(records)).
		Msg("Inserted scoreboard into BigQuery")

	return nil
}
