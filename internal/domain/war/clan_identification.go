package war

import "cwl_stats/internal/app"

// ClanSide names which side of a war the tracked clan is on
type ClanSide int

const (
	SideNone ClanSide = iota
	SideClan
	SideOpponent
)

func (s ClanSide) String() string {
	switch s {
	case SideClan:
		return "clan"
	case SideOpponent:
		return "opponent"
	default:
		return "none"
	}
}

// ClanPair represents our clan and the enemy clan in a war
type ClanPair struct {
	Side      ClanSide
	OurClan   *app.WarClan
	EnemyClan *app.WarClan
}

// Found reports whether our clan is one of the two sides
func (p ClanPair) Found() bool {
	return p.Side != SideNone
}

// IdentifyWarClans determines which side of the war is ours and which is the
// enemy based on our known clan tag. The clan side is checked before the
// opponent side. If neither matches, Side is SideNone and both pointers are nil.
//
// Pure function: No I/O operations, fully testable with direct inputs.
func IdentifyWarClans(war *app.War, ourClanTag string) ClanPair {
	if war == nil || ourClanTag == "" {
		return ClanPair{}
	}

	switch {
	case war.Clan.Tag == ourClanTag:
		return ClanPair{Side: SideClan, OurClan: &war.Clan, EnemyClan: &war.Opponent}
	case war.Opponent.Tag == ourClanTag:
		return ClanPair{Side: SideOpponent, OurClan: &war.Opponent, EnemyClan: &war.Clan}
	default:
		return ClanPair{}
	}
}
