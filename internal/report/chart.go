package report

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"

	"cwl_stats/internal/app"

	"github.com/rs/zerolog/log"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ErrNothingToChart is returned when a scoreboard has no rows
var ErrNothingToChart = errors.New("scoreboard has no rows to chart")

var (
	positiveBarColor = drawing.ColorFromHex("2e7d32")
	negativeBarColor = drawing.ColorFromHex("c62828")
)

// RenderTotalsChart produces a PNG bar chart of every player's total score,
// in scoreboard row order.
func RenderTotalsChart(board *app.Scoreboard) ([]byte, error) {
	if len(board.Rows) == 0 {
		return nil, ErrNothingToChart
	}

	bars := make([]chart.Value, len(board.Rows))
	low, high := 0.0, 0.0
	for i, row := range board.Rows {
		total := float64(row.Total)
		color := positiveBarColor
		if row.Total < 0 {
			color = negativeBarColor
		}
		bars[i] = chart.Value{
			Label: row.Name,
			Value: total,
			Style: chart.Style{
				FillColor:   color,
				StrokeColor: color,
			},
		}
		if total < low {
			low = total
		}
		if total > high {
			high = total
		}
	}

	width := 160 + 70*len(bars)
	if width < 400 {
		width = 400
	}

	// Pad the range so an all-zero board still has a non-empty axis
	graph := chart.BarChart{
		Title:      fmt.Sprintf("%s totals (%d wars)", SheetName(board.Season), board.WarCount),
		Width:      width,
		Height:     480,
		BarWidth:   40,
		BarSpacing: 30,
		Background: chart.Style{
			Padding: chart.Box{Top: 40},
		},
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: low - 1, Max: high + 1},
		},
		Bars: bars,
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, fmt.Errorf("failed to render totals chart: %w", err)
	}

	return buffer.Bytes(), nil
}

// ChartSink saves the totals chart to a PNG file
type ChartSink struct {
	Path string
}

func (s *ChartSink) Name() string {
	return "chart"
}

func (s *ChartSink) Publish(ctx context.Context, board *app.Scoreboard) error {
	png, err := RenderTotalsChart(board)
	if errors.Is(err, ErrNothingToChart) {
		log.Warn().Str("path", s.Path).Msg("Scoreboard is empty; skipping chart")
		return nil
	}
	if err != nil {
		return err
	}

	if err := os.WriteFile(s.Path, png, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", s.Path, err)
	}

	log.Debug().Str("path", s.Path).Int("bytes", len(png)).Msg("Wrote totals chart")
	return nil
}
