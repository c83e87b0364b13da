package model

// RankedScale is an ordered set of named levels addressed by integer codes 0..Len()-1.
type RankedScale struct {
	name   string
	levels []string
}

// Level is one decoded position on a RankedScale.
type Level struct {
	Scale string `json:"scale" yaml:"scale"`
	Code  int    `json:"code" yaml:"code"`
	Name  string `json:"name" yaml:"name"`
}

func (l Level) String() string { return l.Name }

// NewRankedScale declares a scale. Scales are package-level values and never mutated.
func NewRankedScale(name string, levels ...string) *RankedScale {
	return &RankedScale{name: name, levels: append([]string(nil), levels...)}
}

// Name returns the scale's name, used in InvalidOrdinal errors.
func (s *RankedScale) Name() string { return s.name }

// Len returns the number of levels.
func (s *RankedScale) Len() int { return len(s.levels) }

// Level maps code to its named level. Codes outside 0..Len()-1 report false.
func (s *RankedScale) Level(code int64) (Level, bool) {
	if code < 0 || code >= int64(len(s.levels)) {
		return Level{}, false
	}
	return Level{Scale: s.name, Code: int(code), Name: s.levels[code]}, true
}

// Names returns a copy of the level names in code order.
func (s *RankedScale) Names() []string {
	return append([]string(nil), s.levels...)
}

var eliteTiers = []string{"Elite", "Elite I", "Elite II", "Elite III", "Elite IV", "Elite V"}

func withElite(levels ...string) []string {
	return append(levels, eliteTiers...)
}

// Rank scales as written by the game in Rank events.
var (
	CombatScale = NewRankedScale("combat",
		"Harmless", "Mostly Harmless", "Novice", "Competent", "Expert",
		"Master", "Dangerous", "Deadly", "Elite")

	TradeScale = NewRankedScale("trade", withElite(
		"Penniless", "Mostly Penniless", "Peddler", "Dealer",
		"Merchant", "Broker", "Entrepreneur", "Tycoon")...)

	ExplorationScale = NewRankedScale("exploration", withElite(
		"Aimless", "Mostly Aimless", "Scout", "Surveyor",
		"Trailblazer", "Pathfinder", "Ranger", "Pioneer")...)

	MercenaryScale = NewRankedScale("mercenary", withElite(
		"Defenceless", "Mostly Defenceless", "Rookie", "Soldier",
		"Gunslinger", "Warrior", "Gladiator", "Deadeye")...)

	ExobiologistScale = NewRankedScale("exobiologist", withElite(
		"Directionless", "Mostly Directionless", "Compiler", "Collector",
		"Cataloguer", "Taxonomist", "Ecologist", "Geneticist")...)

	EmpireScale = NewRankedScale("empire",
		"None", "Outsider", "Serf", "Master", "Squire", "Knight", "Lord", "Baron",
		"Viscount", "Count", "Earl", "Marquis", "Duke", "Prince", "King")

	FederationScale = NewRankedScale("federation",
		"None", "Recruit", "Cadet", "Midshipman", "Petty Officer", "Chief Petty Officer",
		"Warrant Officer", "Ensign", "Lieutenant", "Lieutenant Commander", "Post Commander",
		"Post Captain", "Rear Admiral", "Vice Admiral", "Admiral")

	CQCScale = NewRankedScale("cqc", withElite(
		"Helpless", "Mostly Helpless", "Amateur", "Semi Professional",
		"Professional", "Champion", "Hero", "Legend")...)
)
