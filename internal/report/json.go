package report

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"cwl_stats/internal/app"

	"github.com/rs/zerolog/log"
)

// ScoreboardJSON is the JSON export format consumed by external pages
type ScoreboardJSON struct {
	Clan     string       `json:"clan"`
	Season   string       `json:"season"`
	RunID    string       `json:"run_id"`
	Updated  string       `json:"updated"`
	Interval int          `json:"interval"`
	Wars     int          `json:"wars"`
	Players  []JSONPlayer `json:"players"`
}

// JSONPlayer is one scoreboard row in the JSON export
type JSONPlayer struct {
	Tag    string `json:"tag"`
	Name   string `json:"name"`
	Scores []int  `json:"scores"`
	Total  int    `json:"total"`
}

// ConvertToJSON converts a scoreboard to the JSON export format
func ConvertToJSON(board *app.Scoreboard, currentTime time.Time, updateInterval time.Duration) ScoreboardJSON {
	players := make([]JSONPlayer, 0, len(board.Rows))
	for _, row := range board.Rows {
		scores := row.WarScores
		if scores == nil {
			scores = []int{}
		}
		players = append(players, JSONPlayer{
			Tag:    row.Tag,
			Name:   row.Name,
			Scores: scores,
			Total:  row.Total,
		})
	}

	return ScoreboardJSON{
		Clan:     board.ClanTag,
		Season:   board.Season,
		RunID:    board.RunID,
		Updated:  currentTime.UTC().Format(time.RFC3339),
		Interval: int(updateInterval.Seconds()),
		Wars:     board.WarCount,
		Players:  players,
	}
}

// JSONSink saves the scoreboard JSON export to a file path
type JSONSink struct {
	Path     string
	Interval time.Duration
	now      func() time.Time
}

func (s *JSONSink) Name() string {
	return "json"
}

func (s *JSONSink) Publish(ctx context.Context, board *app.Scoreboard) error {
	now := time.Now
	if s.now != nil {
		now = s.now
	}

	jsonData := ConvertToJSON(board, now(), s.Interval)

	jsonBytes, err := json.MarshalIndent(jsonData, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if err := os.WriteFile(s.Path, jsonBytes, 0644); err != nil {
		return fmt.Errorf("failed to write JSON file: %w", err)
	}

	log.Info().
		Str("path", s.Path).
		Int("players", len(jsonData.Players)).
		Msg("Successfully exported scoreboard JSON")

	return nil
}
