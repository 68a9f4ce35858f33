package war

import (
	"cwl_stats/internal/app"
)

// SkipReason explains why a war does not receive a war index
type SkipReason string

const (
	SkipNone        SkipReason = ""
	SkipPreparation SkipReason = "war is still in preparation"
	SkipNotOurWar   SkipReason = "tracked clan is on neither side"
	SkipMissing     SkipReason = "war payload is empty"
)

// WarDecision describes whether a fetched war should be scored
type WarDecision struct {
	ShouldScore bool
	Reason      SkipReason
	Clans       ClanPair
}

// DecideWarScoring decides whether a war counts towards the scoreboard.
// A war in preparation is skipped regardless of sides; otherwise our clan
// must be one of the two sides. Skipped wars do not consume a war index.
//
// Pure function: No I/O operations, fully testable with direct inputs.
func DecideWarScoring(war *app.War, ourClanTag string) WarDecision {
	if war == nil {
		return WarDecision{Reason: SkipMissing}
	}

	if IsPreparation(war) {
		return WarDecision{Reason: SkipPreparation}
	}

	clans := IdentifyWarClans(war, ourClanTag)
	if !clans.Found() {
		return WarDecision{Reason: SkipNotOurWar}
	}

	return WarDecision{ShouldScore: true, Clans: clans}
}

// IsPreparation reports whether a war is still in its preparation day. An
// absent state is treated as preparation.
func IsPreparation(war *app.War) bool {
	return war.State == "" || war.State == app.WarStatePreparation
}
