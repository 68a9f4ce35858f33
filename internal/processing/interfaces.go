package processing

import (
	"context"

	"cwl_stats/internal/app"
)

// CocClientInterface defines the Clash of Clans API client methods used by CWLProcessor
type CocClientInterface interface {
	GetLeagueGroup(ctx context.Context, clanTag string) (*app.LeagueGroup, error)
	GetLeagueWar(ctx context.Context, warTag string) (*app.War, error)
}

// APICallCounter is implemented by clients that count the requests they make
type APICallCounter interface {
	GetAPICallCount() int64
	ResetAPICallCount()
}

// ScoreboardSink receives a finished scoreboard: a spreadsheet, a warehouse
// table, a file on disk or a remote host.
type ScoreboardSink interface {
	Name() string
	Publish(ctx context.Context, board *app.Scoreboard) error
}
