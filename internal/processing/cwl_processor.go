package processing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cwl_stats/internal/app"
	"cwl_stats/internal/domain/attack"
	"cwl_stats/internal/domain/league"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// ErrNoWarTags is returned when the league group has no wars to process yet.
// It is a "no data" outcome, not a fetch failure.
var ErrNoWarTags = errors.New("no CWL war tags found")

// CWLProcessor runs the fetch -> aggregate -> scoreboard pipeline for one clan
type CWLProcessor struct {
	cocClient CocClientInterface
	clanTag   string
	now       func() time.Time
}

// NewCWLProcessor creates a processor for the clan configured in config
func NewCWLProcessor(cocClient CocClientInterface, config *app.Config) *CWLProcessor {
	return &CWLProcessor{
		cocClient: cocClient,
		clanTag:   config.ClanTag,
		now:       time.Now,
	}
}

// FetchWarTags fetches the league group and resolves the ordered war tags.
// Returns ErrNoWarTags when nothing can be processed.
func (p *CWLProcessor) FetchWarTags(ctx context.Context) (*app.LeagueGroup, []string, error) {
	group, err := p.cocClient.GetLeagueGroup(ctx, p.clanTag)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch league group: %w", err)
	}
	if group == nil {
		group = &app.LeagueGroup{}
	}

	warTags := league.ResolveWarTags(group)

	log.Info().
		Str("clan_tag", p.clanTag).
		Str("season", group.Season).
		Str("state", group.State).
		Int("rounds", len(group.Rounds)).
		Int("war_tags", len(warTags)).
		Int("pending_slots", league.CountPendingSlots(group)).
		Msg("Resolved CWL war tags")

	if len(warTags) == 0 {
		return group, warTags, ErrNoWarTags
	}

	return group, warTags, nil
}

// AggregateWars fetches every war in order and folds it into a fresh
// aggregator. Any fetch failure aborts the whole run.
func (p *CWLProcessor) AggregateWars(ctx context.Context, warTags []string) (*ScoreAggregator, error) {
	aggregator := NewScoreAggregator(p.clanTag)

	for position, warTag := range warTags {
		war, err := p.cocClient.GetLeagueWar(ctx, warTag)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch war %s: %w", warTag, err)
		}

		index, decision := aggregator.AddWar(war)
		if !decision.ShouldScore {
			log.Debug().
				Str("war_tag", warTag).
				Int("position", position).
				Str("reason", string(decision.Reason)).
				Msg("Skipping war")
			continue
		}

		ours := attack.CalculateAttackStatistics(decision.Clans.OurClan.Members)
		log.Info().
			Str("war_tag", warTag).
			Int("war_index", index).
			Str("state", war.State).
			Str("side", decision.Clans.Side.String()).
			Str("opponent", decision.Clans.EnemyClan.Name).
			Int("members", ours.Members).
			Int("attacks_used", ours.AttacksUsed).
			Int("attacks_missed", ours.AttacksMissed).
			Int("stars", ours.Stars).
			Int("three_stars", ours.ThreeStars).
			Int("points", ours.Points).
			Float64("avg_destruction", ours.AverageDestruction).
			Msg("Scored war")
	}

	return aggregator, nil
}

// Run executes the full pipeline and returns the scoreboard. ErrNoWarTags is
// returned unwrapped so callers can tell "no data" apart from failures.
func (p *CWLProcessor) Run(ctx context.Context) (*app.Scoreboard, error) {
	runID := uuid.NewString()
	started := p.now()

	group, warTags, err := p.FetchWarTags(ctx)
	if err != nil {
		return nil, err
	}

	aggregator, err := p.AggregateWars(ctx, warTags)
	if err != nil {
		return nil, err
	}

	board := &app.Scoreboard{
		RunID:    runID,
		Season:   group.Season,
		ClanTag:  p.clanTag,
		WarCount: aggregator.WarCount(),
		Rows:     aggregator.BuildRows(),
	}

	var apiCalls int64
	if counter, ok := p.cocClient.(APICallCounter); ok {
		apiCalls = counter.GetAPICallCount()
	}

	log.Info().
		Str("run_id", runID).
		Str("season", board.Season).
		Int("wars_fetched", len(warTags)).
		Int64("api_calls", apiCalls).
		Int("wars_scored", board.WarCount).
		Int("players", len(board.Rows)).
		Dur("duration", p.now().Sub(started)).
		Msg("Built CWL scoreboard")

	return board, nil
}

// PublishScoreboard hands the scoreboard to each sink in order, stopping at
// the first failure.
func PublishScoreboard(ctx context.Context, board *app.Scoreboard, sinks ...ScoreboardSink) error {
	for _, sink := range sinks {
		if err := sink.Publish(ctx, board); err != nil {
			return fmt.Errorf("failed to publish scoreboard to %s: %w", sink.Name(), err)
		}
		log.Info().
			Str("sink", sink.Name()).
			Str("run_id", board.RunID).
			Int("rows", len(board.Rows)).
			Msg("Published scoreboard")
	}
	return nil
}
