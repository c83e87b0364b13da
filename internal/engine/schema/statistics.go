package schema

import (
	"github.com/crimson-sun/journal/internal/engine/coerce"
	"github.com/crimson-sun/journal/internal/model"
)

// Statistics sub-blocks. Several of them repeat their group name as a
// prefix on every key, which is stripped before matching.
var (
	statisticsLayout = coerce.NewLayout(model.TagStatistics, coerce.PascalSnake,
		"bank_account", "combat", "crime", "smuggling", "trading", "mining", "exploration",
		"passengers", "search_and_rescue", "crafting", "crew", "multicrew",
		"material_trader_stats", "cqc").
		Override("cqc", "CQC")
	statisticsSchema = coerce.MustMerge(model.TagStatistics, envelopeLayout, statisticsLayout)

	bankStatsLayout = coerce.NewLayout("Bank_Account", coerce.PascalSnake,
		"current_wealth", "spent_on_ships", "spent_on_outfitting", "spent_on_repairs",
		"spent_on_fuel", "spent_on_ammo_consumables", "insurance_claims",
		"spent_on_insurance", "owned_ship_count")

	combatStatsLayout = coerce.NewLayout("Combat", coerce.PascalSnake,
		"bounties_claimed", "bounty_hunting_profit", "combat_bonds", "combat_bond_profits",
		"assassinations", "assassination_profits", "highest_single_reward", "skimmers_killed")

	crimeStatsLayout = coerce.NewLayout("Crime", coerce.PascalSnake,
		"notoriety", "fines", "total_fines", "bounties_received", "total_bounties", "highest_bounty")

	smugglingStatsLayout = coerce.NewLayout("Smuggling", coerce.PascalSnake,
		"black_markets_traded_with", "black_markets_profits", "resources_smuggled",
		"average_profit", "highest_single_transaction")

	tradingStatsLayout = coerce.NewLayout("Trading", coerce.PascalSnake,
		"markets_traded_with", "market_profits", "resources_traded",
		"average_profit", "highest_single_transaction")

	miningStatsLayout = coerce.NewLayout("Mining", coerce.PascalSnake,
		"mining_profits", "quantity_mined", "materials_collected")

	explorationStatsLayout = coerce.NewLayout("Exploration", coerce.PascalSnake,
		"systems_visited", "exploration_profits", "planets_scanned_to_level_2",
		"planets_scanned_to_level_3", "efficient_scans", "highest_payout",
		"total_hyperspace_distance", "total_hyperspace_jumps",
		"greatest_distance_from_start", "time_played")

	passengerStatsLayout = coerce.NewLayout("Passengers", coerce.Pascal,
		"bulk", "vip", "delivered", "ejected").
		Override("vip", "VIP").
		WithPrefix("Passengers_Missions_")

	searchAndRescueStatsLayout = coerce.NewLayout("Search_And_Rescue", coerce.Pascal,
		"traded", "profit", "count").
		WithPrefix("SearchRescue_")

	craftingStatsLayout = coerce.NewLayout("Crafting", coerce.PascalSnake,
		"count_of_used_engineers", "recipes_generated",
		"recipes_generated_rank_1", "recipes_generated_rank_2", "recipes_generated_rank_3",
		"recipes_generated_rank_4", "recipes_generated_rank_5")

	crewStatsLayout = coerce.NewLayout("Crew", coerce.Pascal,
		"total_wages", "hired", "fired", "died").
		WithPrefix("NpcCrew_")

	multicrewStatsLayout = coerce.NewLayout("Multicrew", coerce.PascalSnake,
		"time_total", "gunner_time_total", "fighter_time_total", "credits_total", "fines_total").
		WithPrefix("Multicrew_")

	materialTraderStatsLayout = coerce.NewLayout("Material_Trader_Stats", coerce.PascalSnake,
		"trades_completed", "materials_traded")

	cqcStatsLayout = coerce.NewLayout("CQC", coerce.PascalSnake,
		"time_played", "kd", "kills", "wl").
		Override("kd", "KD").
		Override("wl", "WL").
		WithPrefix("CQC_")
)

func decodeStatistics(obj coerce.Object) (model.Event, error) {
	r := coerce.NewReader(statisticsLayout, obj)
	ev := model.Statistics{
		Envelope:        decodeEnvelope(r),
		BankAccount:     decodeBankStats(r.Object("bank_account", bankStatsLayout)),
		Combat:          decodeCombatStats(r.Object("combat", combatStatsLayout)),
		Crime:           decodeCrimeStats(r.Object("crime", crimeStatsLayout)),
		Smuggling:       decodeSmugglingStats(r.Object("smuggling", smugglingStatsLayout)),
		Trading:         decodeTradingStats(r.Object("trading", tradingStatsLayout)),
		Mining:          decodeMiningStats(r.Object("mining", miningStatsLayout)),
		Exploration:     decodeExplorationStats(r.Object("exploration", explorationStatsLayout)),
		Passengers:      decodePassengerStats(r.Object("passengers", passengerStatsLayout)),
		SearchAndRescue: decodeSearchAndRescueStats(r.Object("search_and_rescue", searchAndRescueStatsLayout)),
		Crafting:        decodeCraftingStats(r.Object("crafting", craftingStatsLayout)),
		Crew:            decodeCrewStats(r.Object("crew", crewStatsLayout)),
		Multicrew:       decodeMulticrewStats(r.Object("multicrew", multicrewStatsLayout)),
		MaterialTrader:  decodeMaterialTraderStats(r.Object("material_trader_stats", materialTraderStatsLayout)),
		CQC:             decodeCQCStats(r.Object("cqc", cqcStatsLayout)),
	}
	return finish(r, ev)
}

func decodeBankStats(r *coerce.Reader) model.BankStats {
	return model.BankStats{
		CurrentWealth:          r.Uint64("current_wealth"),
		SpentOnShips:           r.Uint64("spent_on_ships"),
		SpentOnOutfitting:      r.Uint64("spent_on_outfitting"),
		SpentOnRepairs:         r.Uint64("spent_on_repairs"),
		SpentOnFuel:            r.Uint64("spent_on_fuel"),
		SpentOnAmmoConsumables: r.Uint64("spent_on_ammo_consumables"),
		InsuranceClaims:        r.Uint64("insurance_claims"),
		SpentOnInsurance:       r.Uint64("spent_on_insurance"),
		OwnedShipCount:         r.Uint64("owned_ship_count"),
	}
}

func decodeCombatStats(r *coerce.Reader) model.CombatStats {
	return model.CombatStats{
		BountiesClaimed:      r.Uint64("bounties_claimed"),
		BountyHuntingProfit:  r.Uint64("bounty_hunting_profit"),
		CombatBonds:          r.Uint64("combat_bonds"),
		CombatBondProfits:    r.Uint64("combat_bond_profits"),
		Assassinations:       r.Uint64("assassinations"),
		AssassinationProfits: r.Uint64("assassination_profits"),
		HighestSingleReward:  r.Uint64("highest_single_reward"),
		SkimmersKilled:       r.Uint64("skimmers_killed"),
	}
}

func decodeCrimeStats(r *coerce.Reader) model.CrimeStats {
	return model.CrimeStats{
		Notoriety:        r.Float64("notoriety"),
		Fines:            r.Uint64("fines"),
		TotalFines:       r.Uint64("total_fines"),
		BountiesReceived: r.Uint64("bounties_received"),
		TotalBounties:    r.Uint64("total_bounties"),
		HighestBounty:    r.Uint64("highest_bounty"),
	}
}

func decodeSmugglingStats(r *coerce.Reader) model.SmugglingStats {
	return model.SmugglingStats{
		BlackMarketsTradedWith:   r.Uint64("black_markets_traded_with"),
		BlackMarketsProfits:      r.Uint64("black_markets_profits"),
		ResourcesSmuggled:        r.Uint64("resources_smuggled"),
		AverageProfit:            r.Float64("average_profit"),
		HighestSingleTransaction: r.Uint64("highest_single_transaction"),
	}
}

func decodeTradingStats(r *coerce.Reader) model.TradingStats {
	return model.TradingStats{
		MarketsTradedWith:        r.Uint64("markets_traded_with"),
		MarketProfits:            r.Uint64("market_profits"),
		ResourcesTraded:          r.Uint64("resources_traded"),
		AverageProfit:            r.Float64("average_profit"),
		HighestSingleTransaction: r.Uint64("highest_single_transaction"),
	}
}

func decodeMiningStats(r *coerce.Reader) model.MiningStats {
	return model.MiningStats{
		MiningProfits:      r.Uint64("mining_profits"),
		QuantityMined:      r.Uint64("quantity_mined"),
		MaterialsCollected: r.Uint64("materials_collected"),
	}
}

func decodeExplorationStats(r *coerce.Reader) model.ExplorationStats {
	return model.ExplorationStats{
		SystemsVisited:            r.Uint64("systems_visited"),
		ExplorationProfits:        r.Uint64("exploration_profits"),
		PlanetsScannedToLevel2:    r.Uint64("planets_scanned_to_level_2"),
		PlanetsScannedToLevel3:    r.Uint64("planets_scanned_to_level_3"),
		EfficientScans:            r.Uint64("efficient_scans"),
		HighestPayout:             r.Uint64("highest_payout"),
		TotalHyperspaceDistance:   r.Uint64("total_hyperspace_distance"),
		TotalHyperspaceJumps:      r.Uint64("total_hyperspace_jumps"),
		GreatestDistanceFromStart: r.Float64("greatest_distance_from_start"),
		TimePlayed:                r.Float64("time_played"),
	}
}

func decodePassengerStats(r *coerce.Reader) model.PassengerStats {
	return model.PassengerStats{
		Bulk:      r.Uint64("bulk"),
		VIP:       r.Uint64("vip"),
		Delivered: r.Uint64("delivered"),
		Ejected:   r.Uint64("ejected"),
	}
}

func decodeSearchAndRescueStats(r *coerce.Reader) model.SearchAndRescueStats {
	return model.SearchAndRescueStats{
		Traded: r.Uint64("traded"),
		Profit: r.Uint64("profit"),
		Count:  r.Uint64("count"),
	}
}

func decodeCraftingStats(r *coerce.Reader) model.CraftingStats {
	return model.CraftingStats{
		CountOfUsedEngineers:  r.Uint64("count_of_used_engineers"),
		RecipesGenerated:      r.Uint64("recipes_generated"),
		RecipesGeneratedRank1: r.Uint64("recipes_generated_rank_1"),
		RecipesGeneratedRank2: r.Uint64("recipes_generated_rank_2"),
		RecipesGeneratedRank3: r.Uint64("recipes_generated_rank_3"),
		RecipesGeneratedRank4: r.Uint64("recipes_generated_rank_4"),
		RecipesGeneratedRank5: r.Uint64("recipes_generated_rank_5"),
	}
}

func decodeCrewStats(r *coerce.Reader) model.CrewStats {
	return model.CrewStats{
		TotalWages: r.Uint64("total_wages"),
		Hired:      r.Uint64("hired"),
		Fired:      r.Uint64("fired"),
		Died:       r.Uint64("died"),
	}
}

func decodeMulticrewStats(r *coerce.Reader) model.MulticrewStats {
	return model.MulticrewStats{
		TimeTotal:        r.Uint64("time_total"),
		GunnerTimeTotal:  r.Uint64("gunner_time_total"),
		FighterTimeTotal: r.Uint64("fighter_time_total"),
		CreditsTotal:     r.Uint64("credits_total"),
		FinesTotal:       r.Uint64("fines_total"),
	}
}

func decodeMaterialTraderStats(r *coerce.Reader) model.MaterialTraderStats {
	return model.MaterialTraderStats{
		TradesCompleted: r.Uint64("trades_completed"),
		MaterialsTraded: r.Uint64("materials_traded"),
	}
}

func decodeCQCStats(r *coerce.Reader) model.CQCStats {
	return model.CQCStats{
		TimePlayed: r.Uint64("time_played"),
		KD:         r.Float64("kd"),
		Kills:      r.Uint64("kills"),
		WL:         r.Float64("wl"),
	}
}
