package app

// NoWarTag is the placeholder the API puts in a round slot that has no war yet.
const NoWarTag = "#0"

// PlaceholderName is used when a member arrives without a display name.
const PlaceholderName = "N/A"

// War states reported by the API. Only WarStatePreparation is treated specially.
const (
	WarStatePreparation = "preparation"
	WarStateInWar       = "inWar"
	WarStateEnded       = "warEnded"
)

// LeagueGroup represents the response from /clans/{clanTag}/currentwar/leaguegroup
type LeagueGroup struct {
	State  string        `json:"state"`
	Season string        `json:"season"`
	Clans  []LeagueClan  `json:"clans"`
	Rounds []LeagueRound `json:"rounds"`
}

// LeagueClan is one of the clans competing in the league group
type LeagueClan struct {
	Tag       string `json:"tag"`
	Name      string `json:"name"`
	ClanLevel int    `json:"clanLevel"`
}

// LeagueRound is an ordered stage of the league; unused slots hold NoWarTag
type LeagueRound struct {
	WarTags []string `json:"warTags"`
}

// War represents the response from /clanwarleagues/wars/{warTag}
type War struct {
	State                string  `json:"state"`
	TeamSize             int     `json:"teamSize"`
	PreparationStartTime string  `json:"preparationStartTime"`
	StartTime            string  `json:"startTime"`
	EndTime              string  `json:"endTime"`
	Clan                 WarClan `json:"clan"`
	Opponent             WarClan `json:"opponent"`
}

// WarClan is one side of a war
type WarClan struct {
	Tag                   string   `json:"tag"`
	Name                  string   `json:"name"`
	ClanLevel             int      `json:"clanLevel"`
	Attacks               int      `json:"attacks"`
	Stars                 int      `json:"stars"`
	DestructionPercentage float64  `json:"destructionPercentage"`
	Members               []Member `json:"members"`
}

// Member is a roster entry on one side of a war
type Member struct {
	Tag           string   `json:"tag"`
	Name          string   `json:"name"`
	TownhallLevel int      `json:"townhallLevel"`
	MapPosition   int      `json:"mapPosition"`
	Attacks       []Attack `json:"attacks"`
}

// Attack represents a single attack made by a member
type Attack struct {
	AttackerTag           string  `json:"attackerTag"`
	DefenderTag           string  `json:"defenderTag"`
	Stars                 int     `json:"stars"`
	DestructionPercentage float64 `json:"destructionPercentage"`
	Order                 int     `json:"order"`
	Duration              int     `json:"duration"`
}

// APIErrorBody is the JSON error payload returned on non-2xx responses
type APIErrorBody struct {
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

// PlayerWarRecord is one player's participation in one reportable war.
// The absence of a record means the player was not on that war's roster.
type PlayerWarRecord struct {
	InWar        bool
	AttacksCount int
	Score        int
}

// ScoreRow is one player's adjusted score per war plus the total
type ScoreRow struct {
	Tag       string
	Name      string
	WarScores []int
	Total     int
}

// Scoreboard is the rendered result of a CWL run
type Scoreboard struct {
	RunID    string
	Season   string
	ClanTag  string
	WarCount int
	Rows     []ScoreRow
}
