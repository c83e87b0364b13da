package model

// Statistics is the commander's lifetime statistics, written at startup.
type Statistics struct {
	Envelope        `yaml:",inline"`
	BankAccount     BankStats            `json:"bank_account" yaml:"bank_account"`
	Combat          CombatStats          `json:"combat" yaml:"combat"`
	Crime           CrimeStats           `json:"crime" yaml:"crime"`
	Smuggling       SmugglingStats       `json:"smuggling" yaml:"smuggling"`
	Trading         TradingStats         `json:"trading" yaml:"trading"`
	Mining          MiningStats          `json:"mining" yaml:"mining"`
	Exploration     ExplorationStats     `json:"exploration" yaml:"exploration"`
	Passengers      PassengerStats       `json:"passengers" yaml:"passengers"`
	SearchAndRescue SearchAndRescueStats `json:"search_and_rescue" yaml:"search_and_rescue"`
	Crafting        CraftingStats        `json:"crafting" yaml:"crafting"`
	Crew            CrewStats            `json:"crew" yaml:"crew"`
	Multicrew       MulticrewStats       `json:"multicrew" yaml:"multicrew"`
	MaterialTrader  MaterialTraderStats  `json:"material_trader" yaml:"material_trader"`
	CQC             CQCStats             `json:"cqc" yaml:"cqc"`
}

func (Statistics) Kind() string { return TagStatistics }

type BankStats struct {
	CurrentWealth          uint64 `json:"current_wealth" yaml:"current_wealth"`
	SpentOnShips           uint64 `json:"spent_on_ships" yaml:"spent_on_ships"`
	SpentOnOutfitting      uint64 `json:"spent_on_outfitting" yaml:"spent_on_outfitting"`
	SpentOnRepairs         uint64 `json:"spent_on_repairs" yaml:"spent_on_repairs"`
	SpentOnFuel            uint64 `json:"spent_on_fuel" yaml:"spent_on_fuel"`
	SpentOnAmmoConsumables uint64 `json:"spent_on_ammo_consumables" yaml:"spent_on_ammo_consumables"`
	InsuranceClaims        uint64 `json:"insurance_claims" yaml:"insurance_claims"`
	SpentOnInsurance       uint64 `json:"spent_on_insurance" yaml:"spent_on_insurance"`
	OwnedShipCount         uint64 `json:"owned_ship_count" yaml:"owned_ship_count"`
}

type CombatStats struct {
	BountiesClaimed      uint64 `json:"bounties_claimed" yaml:"bounties_claimed"`
	BountyHuntingProfit  uint64 `json:"bounty_hunting_profit" yaml:"bounty_hunting_profit"`
	CombatBonds          uint64 `json:"combat_bonds" yaml:"combat_bonds"`
	CombatBondProfits    uint64 `json:"combat_bond_profits" yaml:"combat_bond_profits"`
	Assassinations       uint64 `json:"assassinations" yaml:"assassinations"`
	AssassinationProfits uint64 `json:"assassination_profits" yaml:"assassination_profits"`
	HighestSingleReward  uint64 `json:"highest_single_reward" yaml:"highest_single_reward"`
	SkimmersKilled       uint64 `json:"skimmers_killed" yaml:"skimmers_killed"`
}

type CrimeStats struct {
	Notoriety        float64 `json:"notoriety" yaml:"notoriety"`
	Fines            uint64  `json:"fines" yaml:"fines"`
	TotalFines       uint64  `json:"total_fines" yaml:"total_fines"`
	BountiesReceived uint64  `json:"bounties_received" yaml:"bounties_received"`
	TotalBounties    uint64  `json:"total_bounties" yaml:"total_bounties"`
	HighestBounty    uint64  `json:"highest_bounty" yaml:"highest_bounty"`
}

type SmugglingStats struct {
	BlackMarketsTradedWith   uint64  `json:"black_markets_traded_with" yaml:"black_markets_traded_with"`
	BlackMarketsProfits      uint64  `json:"black_markets_profits" yaml:"black_markets_profits"`
	ResourcesSmuggled        uint64  `json:"resources_smuggled" yaml:"resources_smuggled"`
	AverageProfit            float64 `json:"average_profit" yaml:"average_profit"`
	HighestSingleTransaction uint64  `json:"highest_single_transaction" yaml:"highest_single_transaction"`
}

type TradingStats struct {
	MarketsTradedWith        uint64  `json:"markets_traded_with" yaml:"markets_traded_with"`
	MarketProfits            uint64  `json:"market_profits" yaml:"market_profits"`
	ResourcesTraded          uint64  `json:"resources_traded" yaml:"resources_traded"`
	AverageProfit            float64 `json:"average_profit" yaml:"average_profit"`
	HighestSingleTransaction uint64  `json:"highest_single_transaction" yaml:"highest_single_transaction"`
}

type MiningStats struct {
	MiningProfits      uint64 `json:"mining_profits" yaml:"mining_profits"`
	QuantityMined      uint64 `json:"quantity_mined" yaml:"quantity_mined"`
	MaterialsCollected uint64 `json:"materials_collected" yaml:"materials_collected"`
}

type ExplorationStats struct {
	SystemsVisited            uint64  `json:"systems_visited" yaml:"systems_visited"`
	ExplorationProfits        uint64  `json:"exploration_profits" yaml:"exploration_profits"`
	PlanetsScannedToLevel2    uint64  `json:"planets_scanned_to_level_2" yaml:"planets_scanned_to_level_2"`
	PlanetsScannedToLevel3    uint64  `json:"planets_scanned_to_level_3" yaml:"planets_scanned_to_level_3"`
	EfficientScans            uint64  `json:"efficient_scans" yaml:"efficient_scans"`
	HighestPayout             uint64  `json:"highest_payout" yaml:"highest_payout"`
	TotalHyperspaceDistance   uint64  `json:"total_hyperspace_distance" yaml:"total_hyperspace_distance"`
	TotalHyperspaceJumps      uint64  `json:"total_hyperspace_jumps" yaml:"total_hyperspace_jumps"`
	GreatestDistanceFromStart float64 `json:"greatest_distance_from_start" yaml:"greatest_distance_from_start"`
	TimePlayed                float64 `json:"time_played" yaml:"time_played"`
}

// PassengerStats is read from Passengers_Missions_* fields.
type PassengerStats struct {
	Bulk      uint64 `json:"bulk" yaml:"bulk"`
	VIP       uint64 `json:"vip" yaml:"vip"`
	Delivered uint64 `json:"delivered" yaml:"delivered"`
	Ejected   uint64 `json:"ejected" yaml:"ejected"`
}

// SearchAndRescueStats is read from SearchRescue_* fields.
type SearchAndRescueStats struct {
	Traded uint64 `json:"traded" yaml:"traded"`
	Profit uint64 `json:"profit" yaml:"profit"`
	Count  uint64 `json:"count" yaml:"count"`
}

type CraftingStats struct {
	CountOfUsedEngineers  uint64 `json:"count_of_used_engineers" yaml:"count_of_used_engineers"`
	RecipesGenerated      uint64 `json:"recipes_generated" yaml:"recipes_generated"`
	RecipesGeneratedRank1 uint64 `json:"recipes_generated_rank_1" yaml:"recipes_generated_rank_1"`
	RecipesGeneratedRank2 uint64 `json:"recipes_generated_rank_2" yaml:"recipes_generated_rank_2"`
	RecipesGeneratedRank3 uint64 `json:"recipes_generated_rank_3" yaml:"recipes_generated_rank_3"`
	RecipesGeneratedRank4 uint64 `json:"recipes_generated_rank_4" yaml:"recipes_generated_rank_4"`
	RecipesGeneratedRank5 uint64 `json:"recipes_generated_rank_5" yaml:"recipes_generated_rank_5"`
}

// CrewStats is read from NpcCrew_* fields.
type CrewStats struct {
	TotalWages uint64 `json:"total_wages" yaml:"total_wages"`
	Hired      uint64 `json:"hired" yaml:"hired"`
	Fired      uint64 `json:"fired" yaml:"fired"`
	Died       uint64 `json:"died" yaml:"died"`
}

// MulticrewStats is read from Multicrew_* fields.
type MulticrewStats struct {
	TimeTotal        uint64 `json:"time_total" yaml:"time_total"`
	GunnerTimeTotal  uint64 `json:"gunner_time_total" yaml:"gunner_time_total"`
	FighterTimeTotal uint64 `json:"fighter_time_total" yaml:"fighter_time_total"`
	CreditsTotal     uint64 `json:"credits_total" yaml:"credits_total"`
	FinesTotal       uint64 `json:"fines_total" yaml:"fines_total"`
}

type MaterialTraderStats struct {
	TradesCompleted uint64 `json:"trades_completed" yaml:"trades_completed"`
	MaterialsTraded uint64 `json:"materials_traded" yaml:"materials_traded"`
}

// CQCStats is read from CQC_* fields.
type CQCStats struct {
	TimePlayed uint64  `json:"time_played" yaml:"time_played"`
	KD         float64 `json:"kd" yaml:"kd"`
	Kills      uint64  `json:"kills" yaml:"kills"`
	WL         float64 `json:"wl" yaml:"wl"`
}
