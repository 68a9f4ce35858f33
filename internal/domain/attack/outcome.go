package attack

import "cwl_stats/internal/app"

// IsTriple reports whether an attack earned all three stars.
//
// Pure function: No I/O operations, fully testable with direct inputs.
func IsTriple(a app.Attack) bool {
	return a.Stars == 3
}

// IsHighDestruction reports whether an attack reached the two-star bonus threshold
func IsHighDestruction(a app.Attack) bool {
	return a.DestructionPercentage >= HighDestructionThreshold
}
