package processing

import (
	"cwl_stats/internal/app"
)

const testClanTag = "#OURCLAN"

// newTestConfig creates a Config tracking the test clan
func newTestConfig() *app.Config {
	return &app.Config{ClanTag: testClanTag}
}

// newTestWar builds an ended war with our clan on the clan side
func newTestWar(members ...app.Member) *app.War {
	return &app.War{
		State:    app.WarStateEnded,
		Clan:     app.WarClan{Tag: testClanTag, Name: "Our Clan", Members: members},
		Opponent: app.WarClan{Tag: "#ENEMY", Name: "Enemy Clan"},
	}
}

// newTestMember builds a roster entry with the given attacks
func newTestMember(tag, name string, attacks ...app.Attack) app.Member {
	return app.Member{Tag: tag, Name: name, Attacks: attacks}
}

// stars builds an attack with the given stars and destruction
func stars(n int, destruction float64) app.Attack {
	return app.Attack{Stars: n, DestructionPercentage: destruction}
}
