package attack

import "cwl_stats/internal/app"

// HighDestructionThreshold is the destruction percentage at which a two-star
// attack earns the bonus point
const HighDestructionThreshold = 90.0

// AttackScore converts an attack result into CWL points:
//
//	3 stars          -> 5
//	2 stars, >= 90%  -> 4
//	2 stars, <  90%  -> 3
//	1 star           -> 1
//	anything else    -> 0
//
// Star counts outside 0-3 never come from the API; they fall through to 0
// rather than being rejected.
//
// Pure function: No I/O operations, fully testable with direct inputs.
func AttackScore(stars int, destruction float64) int {
	switch stars {
	case 3:
		return 5
	case 2:
		if destruction >= HighDestructionThreshold {
			return 4
		}
		return 3
	case 1:
		return 1
	default:
		return 0
	}
}

// SumAttackScores totals AttackScore over every attack of a member
func SumAttackScores(attacks []app.Attack) int {
	total := 0
	for _, a := range attacks {
		total += AttackScore(a.Stars, a.DestructionPercentage)
	}
	return total
}
