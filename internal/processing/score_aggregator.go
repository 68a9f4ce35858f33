package processing

import (
	"cwl_stats/internal/app"
	"cwl_stats/internal/domain/attack"
	wardomain "cwl_stats/internal/domain/war"
)

// ScoreAggregator accumulates per-player, per-war records across the wars of
// one league. Records live in a two-level map (player tag -> war index ->
// record); a missing inner key means the player was not on that war's roster,
// which is scored differently from a present record with zero attacks.
//
// An aggregator is owned by a single run and is not safe for concurrent use.
type ScoreAggregator struct {
	clanTag  string
	warCount int
	records  map[string]map[int]*app.PlayerWarRecord
	names    map[string]string
	order    []string
}

// NewScoreAggregator creates an empty aggregator tracking the given clan
func NewScoreAggregator(clanTag string) *ScoreAggregator {
	return &ScoreAggregator{
		clanTag: clanTag,
		records: make(map[string]map[int]*app.PlayerWarRecord),
		names:   make(map[string]string),
	}
}

// AddWar folds one fetched war into the aggregate. Wars in preparation and
// wars our clan is not part of are skipped without consuming a war index.
// Returns the assigned war index (0 when skipped) and the scoring decision.
func (a *ScoreAggregator) AddWar(war *app.War) (int, wardomain.WarDecision) {
	decision := wardomain.DecideWarScoring(war, a.clanTag)
	if !decision.ShouldScore {
		return 0, decision
	}

	a.warCount++
	index := a.warCount

	for _, member := range decision.Clans.OurClan.Members {
		a.recordMember(index, member)
	}

	return index, decision
}

// recordMember stores a member's participation for the given war index
func (a *ScoreAggregator) recordMember(index int, member app.Member) {
	if member.Tag == "" {
		return
	}

	perWar, seen := a.records[member.Tag]
	if !seen {
		perWar = make(map[int]*app.PlayerWarRecord)
		a.records[member.Tag] = perWar
		a.order = append(a.order, member.Tag)
	}

	name := member.Name
	if name == "" {
		name = app.PlaceholderName
	}
	a.names[member.Tag] = name

	record, ok := perWar[index]
	if !ok {
		record = &app.PlayerWarRecord{}
		perWar[index] = record
	}
	record.InWar = true
	record.AttacksCount = len(member.Attacks)
	record.Score = attack.SumAttackScores(member.Attacks)
}

// WarCount returns the number of wars that received an index
func (a *ScoreAggregator) WarCount() int {
	return a.warCount
}

// Players returns every player tag observed, in first-seen order
func (a *ScoreAggregator) Players() []string {
	players := make([]string, len(a.order))
	copy(players, a.order)
	return players
}

// Name returns the latest display name recorded for a player
func (a *ScoreAggregator) Name(tag string) string {
	if name, ok := a.names[tag]; ok {
		return name
	}
	return app.PlaceholderName
}

// Record returns the record for (tag, war index) and whether one exists
func (a *ScoreAggregator) Record(tag string, index int) (*app.PlayerWarRecord, bool) {
	record, ok := a.records[tag][index]
	return record, ok
}

// BuildRows produces one ScoreRow per observed player with every war index
// 1..WarCount filled in by the participation rules.
func (a *ScoreAggregator) BuildRows() []app.ScoreRow {
	rows := make([]app.ScoreRow, 0, len(a.order))

	for _, tag := range a.order {
		row := app.ScoreRow{
			Tag:       tag,
			Name:      a.Name(tag),
			WarScores: make([]int, a.warCount),
		}

		for i := 1; i <= a.warCount; i++ {
			record, _ := a.Record(tag, i)
			score := wardomain.AdjustedWarScore(record)
			row.WarScores[i-1] = score
			row.Total += score
		}

		rows = append(rows, row)
	}

	return rows
}
