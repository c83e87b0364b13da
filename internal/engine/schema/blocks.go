package schema

import (
	"github.com/crimson-sun/journal/internal/engine/coerce"
	"github.com/crimson-sun/journal/internal/model"
)

// Blocks shared by several records. Each is flattened into the top level of
// the records that use it.
var (
	envelopeLayout = coerce.NewLayout("Envelope", coerce.Lower, "timestamp")

	versionLayout = coerce.NewLayout("Version", coerce.Lower, "game_version", "build", "language")

	identityLayout = coerce.NewLayout("Identity", coerce.Pascal, "fid", "name").
			Override("fid", "FID")

	gameTypeLayout = coerce.NewLayout("GameType", coerce.Pascal, "horizons", "odyssey", "game_mode")

	shipLayout = coerce.NewLayout("Ship", coerce.Pascal,
		"ship", "ship_localised", "ship_id", "ship_name", "ship_ident", "fuel_level", "fuel_capacity").
		Override("ship_localised", "Ship_Localised").
		Override("ship_id", "ShipID")

	starSystemLayout = coerce.NewLayout("StarSystem", coerce.Pascal,
		"system_address", "system_allegiance", "system_economy", "system_economy_localised").
		Override("system_economy_localised", "SystemEconomy_Localised")
)

var gameModes = []string{string(model.ModeOpen), string(model.ModeGroup), string(model.ModeSolo)}

var allegiances = []string{
	string(model.AllegianceIndependent),
	string(model.AllegianceFederation),
	string(model.AllegianceEmpire),
	string(model.AllegianceAlliance),
	string(model.AllegiancePilotsFederation),
	string(model.AllegianceThargoid),
	string(model.AllegianceGuardian),
}

func decodeEnvelope(r *coerce.Reader) model.Envelope {
	return model.Envelope{Timestamp: r.With(envelopeLayout).NullableTime("timestamp")}
}

func decodeVersion(r *coerce.Reader) model.Version {
	v := r.With(versionLayout)
	return model.Version{
		GameVersion: v.String("game_version"),
		Build:       v.String("build"),
		Language:    v.String("language"),
	}
}

func decodeIdentity(r *coerce.Reader) model.Identity {
	return model.Identity{
		FID:  model.FID(r.String("fid")),
		Name: r.String("name"),
	}
}

func decodeGameType(r *coerce.Reader) model.GameType {
	g := r.With(gameTypeLayout)
	return model.GameType{
		Horizons: g.Bool("horizons"),
		Odyssey:  g.Bool("odyssey"),
		GameMode: model.GameMode(g.Enum("game_mode", gameModes...)),
	}
}

func decodeShip(r *coerce.Reader) model.Ship {
	s := r.With(shipLayout)
	return model.Ship{
		Ship:          s.String("ship"),
		ShipLocalised: s.NullableString("ship_localised"),
		ShipID:        s.Uint64("ship_id"),
		ShipName:      s.OptionalString("ship_name"),
		ShipIdent:     s.OptionalString("ship_ident"),
		FuelLevel:     s.Float64("fuel_level"),
		FuelCapacity:  s.Float64("fuel_capacity"),
	}
}

func decodeStarSystem(r *coerce.Reader) model.StarSystem {
	s := r.With(starSystemLayout)
	allegiance := s.OptionalEnum("system_allegiance", allegiances...)
	return model.StarSystem{
		Address:          s.Uint64("system_address"),
		Allegiance:       model.Optional[model.Allegiance]{Value: model.Allegiance(allegiance.Value), Present: allegiance.Present},
		Economy:          s.String("system_economy"),
		EconomyLocalised: s.NullableString("system_economy_localised"),
	}
}
