package war

import "cwl_stats/internal/app"

// Participation scoring applied per war index
const (
	// AbsentScore is awarded when a player was not on that war's roster
	AbsentScore = 2
	// NoAttackScore is awarded when a player was on the roster but never attacked
	NoAttackScore = -3
)

// AdjustedWarScore returns the score a player receives for one war index.
// A nil record means the player was not on the roster; a record with no
// attacks is penalised; otherwise the raw attack points are used.
//
// Pure function: No I/O operations, fully testable with direct inputs.
func AdjustedWarScore(record *app.PlayerWarRecord) int {
	switch {
	case record == nil || !record.InWar:
		return AbsentScore
	case record.AttacksCount == 0:
		return NoAttackScore
	default:
		return record.Score
	}
}
