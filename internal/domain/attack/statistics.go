package attack

import "cwl_stats/internal/app"

// AttackStatistics holds calculated attack statistics for one side of a war:
// how many attacks were used, stars earned, triples, missed attacks and the
// mean destruction of the attacks that were made.
type AttackStatistics struct {
	Members            int
	AttacksUsed        int
	AttacksMissed      int
	Stars              int
	ThreeStars         int
	Points             int
	AverageDestruction float64
}

// CalculateAttackStatistics computes attack statistics for the members of one
// war side. In CWL every member has exactly one attack, so a member without
// attacks counts as one missed attack.
//
// Pure function: No I/O operations, fully testable with direct inputs.
func CalculateAttackStatistics(members []app.Member) AttackStatistics {
	stats := AttackStatistics{Members: len(members)}
	var destructionTotal float64

	for _, member := range members {
		if len(member.Attacks) == 0 {
			stats.AttacksMissed++
			continue
		}
		for _, a := range member.Attacks {
			stats = processAttack(stats, a)
			destructionTotal += a.DestructionPercentage
		}
	}

	if stats.AttacksUsed > 0 {
		stats.AverageDestruction = destructionTotal / float64(stats.AttacksUsed)
	}

	return stats
}

// processAttack folds a single attack into the running statistics
func processAttack(stats AttackStatistics, a app.Attack) AttackStatistics {
	stats.AttacksUsed++
	stats.Stars += a.Stars
	stats.Points += AttackScore(a.Stars, a.DestructionPercentage)

	if IsTriple(a) {
		stats.ThreeStars++
	}

	return stats
}
