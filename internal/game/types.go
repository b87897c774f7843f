package game

// Tier is a player's rarity classification. Order matters for gacha rates
// and grind caps: Common < Rare < Epic < Legendary < Mythic.
type Tier string

const (
	TierCommon    Tier = "Common"
	TierRare      Tier = "Rare"
	TierEpic      Tier = "Epic"
	TierLegendary Tier = "Legendary"
	TierMythic    Tier = "Mythic"
)

// Roles a player can be drafted into. Assigned uniformly at recruit time;
// may later be overwritten by Liquipedia enrichment.
var Roles = []string{"Carry", "Mid", "Offlane", "Soft Support", "Hard Support"}

type Player struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Tier           Tier    `json:"tier"`
	Role           string  `json:"role"`
	Drafting       int     `json:"drafting"`
	Mechanics      int     `json:"mechanics"`
	MentalStrength int     `json:"mental_strength"`
	Leadership     int     `json:"leadership"`
	Trashtalk      int     `json:"trashtalk"`
	Energy         int     `json:"energy"`
	IsRoster       bool    `json:"is_roster"`
	IsStreaming    bool    `json:"is_streaming"`
	ImageURL       *string `json:"image_url"`
	Team           *string `json:"team"`
	// Unix millis. At most one of these may be in the future at any instant.
	GrindingUntil *int64 `json:"grinding_until"`
	SleepingUntil *int64 `json:"sleeping_until"`
}

// Grinding reports whether the player's grind timer is still running at now
// (unix millis).
func (p *Player) Grinding(now int64) bool {
	return p.GrindingUntil != nil && *p.GrindingUntil > now
}

// Sleeping reports whether the player's sleep timer is still running at now.
func (p *Player) Sleeping(now int64) bool {
	return p.SleepingUntil != nil && *p.SleepingUntil > now
}

// Busy reports whether either cooldown is still running. A busy player
// cannot start a new grind or sleep.
func (p *Player) Busy(now int64) bool {
	return p.Grinding(now) || p.Sleeping(now)
}

// GameState is the singleton game record. Coins never goes negative.
type GameState struct {
	Coins           int `json:"coins"`
	InternetLevel   int `json:"internet_level"`
	FoodLevel       int `json:"food_level"`
	CollectionSlots int `json:"collection_slots"`
}
