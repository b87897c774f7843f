package game

import "time"

const (
	RecruitCost      = 200
	RecycleCoins     = 10
	ChampionCoins    = 1000
	SlotExpandCost   = 10000
	SlotExpandAmount = 1

	RosterSize = 5

	// Grind and sleep cannot be interrupted once started.
	GrindDuration   = 5 * time.Minute
	SleepDuration   = 5 * time.Minute
	GrindEnergyCost = 20
	SleepEnergyGain = 20

	// Passive income sweep: coins per streaming player per tick, and the
	// energy each streamer burns.
	StreamTickInterval = 10 * time.Second
	StreamIncome       = 10
	StreamEnergyDrain  = 2
)

// StatCap bounds what grinding can reach for a tier, so a Common can't
// outgrow a Mythic.
type StatCap struct {
	Mechanics int `yaml:"mechanics"`
	Mental    int `yaml:"mental"`
}

// TierRate is one row of the gacha table. Rates are percentages and the
// table is walked in order, so it must sum to exactly 100.
type TierRate struct {
	Tier Tier `json:"tier" yaml:"tier"`
	Rate int  `json:"rate" yaml:"rate"`
}

// Config holds the gameplay tables. Defaults are the single source of
// truth for both rolling and the /api/recruit-config endpoint; a YAML file
// may override them (see Load).
type Config struct {
	RecruitRates []TierRate        `yaml:"rates"`
	RecruitPool  map[Tier][]string `yaml:"pool"`
	TierCaps     map[Tier]StatCap  `yaml:"caps"`
}

// Default returns the built-in gameplay tables.
func Default() Config {
	return Config{
		RecruitRates: []TierRate{
			{Tier: TierCommon, Rate: 45},
			{Tier: TierRare, Rate: 28},
			{Tier: TierEpic, Rate: 14},
			{Tier: TierLegendary, Rate: 10},
			{Tier: TierMythic, Rate: 3},
		},
		RecruitPool: map[Tier][]string{
			TierCommon:    {"Hubris", "Lashsegway", "Sunshine", "Chupaeng", "Alo", "Badong", "SirCherry"},
			TierRare:      {"Nevertheless", "Joevy", "JTZ", "Sep", "Mepweet", "Jabolero"},
			TierEpic:      {"Kokz", "Yowe", "JG", "Jwl", "Jing", "Abat"},
			TierLegendary: {"Gabbi", "Armel", "Palos", "Karl", "Tino", "Natsumi", "Skem", "Nikko"},
			TierMythic:    {"Kuku", "DJ", "Tims"},
		},
		TierCaps: map[Tier]StatCap{
			TierCommon:    {Mechanics: 40, Mental: 40},
			TierRare:      {Mechanics: 55, Mental: 55},
			TierEpic:      {Mechanics: 70, Mental: 70},
			TierLegendary: {Mechanics: 85, Mental: 85},
			TierMythic:    {Mechanics: 99, Mental: 99},
			// Legacy tier from older saves.
			"Ultra Rare": {Mechanics: 70, Mental: 70},
		},
	}
}

// CapFor returns the grind cap for a tier, falling back to Common for
// unknown tiers.
func (c Config) CapFor(t Tier) StatCap {
	if caps, ok := c.TierCaps[t]; ok {
		return caps
	}
	return c.TierCaps[TierCommon]
}

// TierBase is the fixed per-tier floor added to the four rolled attributes.
func TierBase(t Tier) int {
	switch t {
	case TierMythic:
		return 45
	case TierLegendary:
		return 38
	case TierEpic:
		return 28
	case TierRare:
		return 15
	default:
		return 5
	}
}

// KukuysTeam is the synthetic team built from the player's roster.
const KukuysTeam = "Kukuys"

// RealTeams is the opponent pool the tournament draws from.
var RealTeams = []string{
	"Team Spirit", "Gaimin Gladiators", "Team Falcons", "Tundra Esports",
	"T1", "Talon Esports", "Team Secret", "OG", "Virtus.pro", "Natus Vincere",
	"Entity", "LGD Gaming", "Xtreme Gaming", "Azure Ray", "Team Liquid",
	"Evil Geniuses", "beastcoast", "Thunder Awaken", "PSG.Quest", "9Pandas",
}

// RealTournaments provides the flavor name attached to a tournament run.
var RealTournaments = []string{
	"The International", "Riyadh Masters", "ESL One", "DreamLeague",
	"Bali Major", "Berlin Major", "BetBoom Dacha", "BB Dacha",
	"Predator League", "PGL Wallachia", "IEM Katowice",
}
