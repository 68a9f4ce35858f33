package war

import (
	"testing"

	"cwl_stats/internal/app"
)

const ourTag = "#OURS"

func TestIdentifyWarClans(t *testing.T) {
	testCases := []struct {
		name         string
		war          *app.War
		expectedSide ClanSide
		expectedOurs string
		expectedFoe  string
	}{
		{
			name:         "OurClanOnClanSide",
			war:          &app.War{Clan: app.WarClan{Tag: ourTag}, Opponent: app.WarClan{Tag: "#FOE"}},
			expectedSide: SideClan,
			expectedOurs: ourTag,
			expectedFoe:  "#FOE",
		},
		{
			name:         "OurClanOnOpponentSide",
			war:          &app.War{Clan: app.WarClan{Tag: "#FOE"}, Opponent: app.WarClan{Tag: ourTag}},
			expectedSide: SideOpponent,
			expectedOurs: ourTag,
			expectedFoe:  "#FOE",
		},
		{
			name:         "NeitherSide",
			war:          &app.War{Clan: app.WarClan{Tag: "#X"}, Opponent: app.WarClan{Tag: "#Y"}},
			expectedSide: SideNone,
		},
		{
			name:         "NilWar",
			war:          nil,
			expectedSide: SideNone,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			pair := IdentifyWarClans(tc.war, ourTag)

			if pair.Side != tc.expectedSide {
				t.Fatalf("Expected side %v, got %v", tc.expectedSide, pair.Side)
			}
			if tc.expectedSide == SideNone {
				if pair.Found() || pair.OurClan != nil || pair.EnemyClan != nil {
					t.Errorf("Expected empty pair, got %+v", pair)
				}
				return
			}
			if pair.OurClan.Tag != tc.expectedOurs {
				t.Errorf("Expected our clan %s, got %s", tc.expectedOurs, pair.OurClan.Tag)
			}
			if pair.EnemyClan.Tag != tc.expectedFoe {
				t.Errorf("Expected enemy clan %s, got %s", tc.expectedFoe, pair.EnemyClan.Tag)
			}
		})
	}
}

func TestIdentifyWarClans_EmptyTrackedTag(t *testing.T) {
	// Sides with missing tags must not match an unset clan tag
	war := &app.War{}
	if pair := IdentifyWarClans(war, ""); pair.Found() {
		t.Errorf("Expected no match for empty clan tag, got %v", pair.Side)
	}
}

func TestIdentifyWarClans_PointsIntoWar(t *testing.T) {
	war := &app.War{Clan: app.WarClan{Tag: "#FOE"}, Opponent: app.WarClan{Tag: ourTag, Name: "Home"}}
	pair := IdentifyWarClans(war, ourTag)

	if pair.OurClan != &war.Opponent {
		t.Error("Expected OurClan to reference the war's opponent side")
	}
}

func TestDecideWarScoring(t *testing.T) {
	testCases := []struct {
		name           string
		war            *app.War
		expectedScore  bool
		expectedReason SkipReason
	}{
		{
			name:           "Preparation",
			war:            &app.War{State: app.WarStatePreparation, Clan: app.WarClan{Tag: ourTag}},
			expectedReason: SkipPreparation,
		},
		{
			name:           "MissingState",
			war:            &app.War{Clan: app.WarClan{Tag: ourTag}},
			expectedReason: SkipPreparation,
		},
		{
			name:           "InWarNotOurs",
			war:            &app.War{State: app.WarStateInWar, Clan: app.WarClan{Tag: "#X"}, Opponent: app.WarClan{Tag: "#Y"}},
			expectedReason: SkipNotOurWar,
		},
		{
			name:          "InWarOurs",
			war:           &app.War{State: app.WarStateInWar, Clan: app.WarClan{Tag: ourTag}},
			expectedScore: true,
		},
		{
			name:          "EndedOursAsOpponent",
			war:           &app.War{State: app.WarStateEnded, Opponent: app.WarClan{Tag: ourTag}},
			expectedScore: true,
		},
		{
			name:          "UnknownStateIsReportable",
			war:           &app.War{State: "notInWar", Clan: app.WarClan{Tag: ourTag}},
			expectedScore: true,
		},
		{
			name:           "NilWar",
			war:            nil,
			expectedReason: SkipMissing,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			decision := DecideWarScoring(tc.war, ourTag)

			if decision.ShouldScore != tc.expectedScore {
				t.Errorf("Expected ShouldScore %v, got %v", tc.expectedScore, decision.ShouldScore)
			}
			if decision.Reason != tc.expectedReason {
				t.Errorf("Expected reason %q, got %q", tc.expectedReason, decision.Reason)
			}
			if decision.ShouldScore && !decision.Clans.Found() {
				t.Error("Scored war must carry the identified clans")
			}
		})
	}
}

func TestAdjustedWarScore(t *testing.T) {
	testCases := []struct {
		name     string
		record   *app.PlayerWarRecord
		expected int
	}{
		{"Absent", nil, 2},
		{"PresentNoAttack", &app.PlayerWarRecord{InWar: true}, -3},
		{"PresentZeroPointAttack", &app.PlayerWarRecord{InWar: true, AttacksCount: 1, Score: 0}, 0},
		{"PresentTriple", &app.PlayerWarRecord{InWar: true, AttacksCount: 1, Score: 5}, 5},
		{"MultipleAttacks", &app.PlayerWarRecord{InWar: true, AttacksCount: 2, Score: 8}, 8},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := AdjustedWarScore(tc.record); got != tc.expected {
				t.Errorf("Expected %d, got %d", tc.expected, got)
			}
		})
	}
}

func TestClanSideString(t *testing.T) {
	if SideClan.String() != "clan" || SideOpponent.String() != "opponent" || SideNone.String() != "none" {
		t.Error("Unexpected ClanSide string values")
	}
}
