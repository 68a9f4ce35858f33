package league

import "cwl_stats/internal/app"

// ResolveWarTags flattens the league rounds into the ordered list of wars to
// process. Rounds and the tags inside each round keep their order, every
// NoWarTag placeholder is dropped, and duplicates are kept.
//
// Pure function: No I/O operations, fully testable with direct inputs.
func ResolveWarTags(group *app.LeagueGroup) []string {
	warTags := []string{}
	if group == nil {
		return warTags
	}

	for _, round := range group.Rounds {
		for _, tag := range round.WarTags {
			if tag == app.NoWarTag {
				continue
			}
			warTags = append(warTags, tag)
		}
	}

	return warTags
}

// CountPendingSlots returns how many round slots still hold the placeholder
func CountPendingSlots(group *app.LeagueGroup) int {
	if group == nil {
		return 0
	}

	pending := 0
	for _, round := range group.Rounds {
		for _, tag := range round.WarTags {
			if tag == app.NoWarTag {
				pending++
			}
		}
	}
	return pending
}
