package schema

import (
	"github.com/crimson-sun/journal/internal/engine/coerce"
	"github.com/crimson-sun/journal/internal/model"
)

var (
	fileheaderLayout = coerce.NewLayout(model.TagFileheader, coerce.Lower, "part", "odyssey").
				Override("odyssey", "Odyssey")
	fileheaderSchema = coerce.MustMerge(model.TagFileheader, envelopeLayout, fileheaderLayout, versionLayout)

	commanderSchema = coerce.MustMerge(model.TagCommander, envelopeLayout, identityLayout)

	materialsLayout = coerce.NewLayout(model.TagMaterials, coerce.Pascal, "raw", "manufactured", "encoded")
	materialLayout  = coerce.NewLayout("Material", coerce.PascalSnake, "name", "name_localised", "count")
	materialsSchema = coerce.MustMerge(model.TagMaterials, envelopeLayout, materialsLayout)

	// Rank and Progress name the same eight scales.
	scaleFields = []string{"combat", "trade", "explore", "soldier", "exobiologist", "empire", "federation", "cqc"}

	rankLayout = coerce.NewLayout(model.TagRank, coerce.Pascal, scaleFields...).
			Override("cqc", "CQC")
	rankSchema = coerce.MustMerge(model.TagRank, envelopeLayout, rankLayout)

	progressLayout = coerce.NewLayout(model.TagProgress, coerce.Pascal, scaleFields...).
			Override("cqc", "CQC")
	progressSchema = coerce.MustMerge(model.TagProgress, envelopeLayout, progressLayout)

	reputationLayout = coerce.NewLayout(model.TagReputation, coerce.Pascal,
		"empire", "federation", "independent", "alliance")
	reputationSchema = coerce.MustMerge(model.TagReputation, envelopeLayout, reputationLayout)

	engineerProgressLayout = coerce.NewLayout(model.TagEngineerProgress, coerce.Pascal, "engineers")
	engineerLayout         = coerce.NewLayout("Engineer", coerce.Pascal,
		"engineer", "engineer_id", "progress", "rank", "rank_progress").
		Override("engineer_id", "EngineerID")
	// The in-game form puts one engineer's fields next to Engineers.
	engineerProgressSchema = coerce.MustMerge(model.TagEngineerProgress, envelopeLayout, engineerProgressLayout, engineerLayout)

	loadGameIdentityLayout = identityLayout.Override("name", "Commander")
	loadGameLayout         = coerce.NewLayout(model.TagLoadGame, coerce.Pascal, "credits", "loan")
	loadGameSchema         = coerce.MustMerge(model.TagLoadGame,
		envelopeLayout, loadGameIdentityLayout, gameTypeLayout, shipLayout, loadGameLayout, versionLayout)

	receiveTextLayout = coerce.NewLayout(model.TagReceiveText, coerce.PascalSnake,
		"from", "from_localised", "message", "message_localised", "channel")
	receiveTextSchema = coerce.MustMerge(model.TagReceiveText, envelopeLayout, receiveTextLayout)

	sendTextLayout = coerce.NewLayout(model.TagSendText, coerce.Pascal, "to", "message", "sent")
	sendTextSchema = coerce.MustMerge(model.TagSendText, envelopeLayout, sendTextLayout)

	locationLayout = coerce.NewLayout(model.TagLocation, coerce.Pascal,
		"docked", "taxi", "multicrew", "star_system", "star_pos")
	locationSchema = coerce.MustMerge(model.TagLocation, envelopeLayout, locationLayout, starSystemLayout)
)

var engineerStages = []string{
	string(model.StageKnown),
	string(model.StageInvited),
	string(model.StageAcquainted),
	string(model.StageUnlocked),
	string(model.StageBarred),
}

var channels = []string{
	string(model.ChannelNPC),
	string(model.ChannelPlayer),
	string(model.ChannelLocal),
	string(model.ChannelWing),
	string(model.ChannelFriend),
	string(model.ChannelVoiceChat),
	string(model.ChannelSquadron),
	string(model.ChannelSquadLeaders),
	string(model.ChannelStarSystem),
}

func decodeFileheader(obj coerce.Object) (model.Event, error) {
	r := coerce.NewReader(fileheaderLayout, obj)
	ev := model.Fileheader{
		Envelope: decodeEnvelope(r),
		Part:     r.Int64("part"),
		Odyssey:  r.Bool("odyssey"),
		Version:  decodeVersion(r),
	}
	return finish(r, ev)
}

func decodeCommander(obj coerce.Object) (model.Event, error) {
	r := coerce.NewReader(identityLayout, obj)
	ev := model.Commander{
		Envelope: decodeEnvelope(r),
		Identity: decodeIdentity(r),
	}
	return finish(r, ev)
}

func decodeMaterials(obj coerce.Object) (model.Event, error) {
	r := coerce.NewReader(materialsLayout, obj)
	ev := model.Materials{
		Envelope:     decodeEnvelope(r),
		Raw:          decodeMaterialList(r, "raw"),
		Manufactured: decodeMaterialList(r, "manufactured"),
		Encoded:      decodeMaterialList(r, "encoded"),
	}
	return finish(r, ev)
}

func decodeMaterialList(r *coerce.Reader, field string) []model.Material {
	items := r.Objects(field, materialLayout)
	out := make([]model.Material, 0, len(items))
	for _, item := range items {
		out = append(out, model.Material{
			Name:          item.String("name"),
			NameLocalised: item.NullableString("name_localised"),
			Count:         item.Uint64("count"),
		})
	}
	return out
}

func decodeRank(obj coerce.Object) (model.Event, error) {
	r := coerce.NewReader(rankLayout, obj)
	ev := model.Rank{
		Envelope:     decodeEnvelope(r),
		Combat:       r.Ordinal("combat", model.CombatScale),
		Trade:        r.Ordinal("trade", model.TradeScale),
		Explore:      r.Ordinal("explore", model.ExplorationScale),
		Soldier:      r.Ordinal("soldier", model.MercenaryScale),
		Exobiologist: r.Ordinal("exobiologist", model.ExobiologistScale),
		Empire:       r.Ordinal("empire", model.EmpireScale),
		Federation:   r.Ordinal("federation", model.FederationScale),
		CQC:          r.Ordinal("cqc", model.CQCScale),
	}
	return finish(r, ev)
}

func decodeProgress(obj coerce.Object) (model.Event, error) {
	r := coerce.NewReader(progressLayout, obj)
	ev := model.Progress{
		Envelope:     decodeEnvelope(r),
		Combat:       r.Uint32("combat"),
		Trade:        r.Uint32("trade"),
		Explore:      r.Uint32("explore"),
		Soldier:      r.Uint32("soldier"),
		Exobiologist: r.Uint32("exobiologist"),
		Empire:       r.Uint32("empire"),
		Federation:   r.Uint32("federation"),
		CQC:          r.Uint32("cqc"),
	}
	return finish(r, ev)
}

func decodeReputation(obj coerce.Object) (model.Event, error) {
	r := coerce.NewReader(reputationLayout, obj)
	ev := model.Reputation{
		Envelope:    decodeEnvelope(r),
		Empire:      r.Float64("empire"),
		Federation:  r.Float64("federation"),
		Independent: r.Float64("independent"),
		Alliance:    r.Float64("alliance"),
	}
	return finish(r, ev)
}

// decodeEngineerProgress accepts both the startup form, with an Engineers
// array, and the in-game form carrying one engineer at the top level.
func decodeEngineerProgress(obj coerce.Object) (model.Event, error) {
	r := coerce.NewReader(engineerProgressLayout, obj)
	ev := model.EngineerProgress{Envelope: decodeEnvelope(r)}
	if r.Has("engineers") {
		entries := r.Objects("engineers", engineerLayout)
		ev.Engineers = make([]model.Engineer, 0, len(entries))
		for _, e := range entries {
			ev.Engineers = append(ev.Engineers, decodeEngineer(e))
		}
	} else {
		ev.Engineers = []model.Engineer{decodeEngineer(r.With(engineerLayout))}
	}
	return finish(r, ev)
}

func decodeEngineer(r *coerce.Reader) model.Engineer {
	return model.Engineer{
		Name:         r.String("engineer"),
		ID:           r.Uint64("engineer_id"),
		Progress:     model.EngineerStage(r.Enum("progress", engineerStages...)),
		Rank:         r.NullableUint64("rank"),
		RankProgress: r.NullableUint64("rank_progress"),
	}
}

func decodeLoadGame(obj coerce.Object) (model.Event, error) {
	r := coerce.NewReader(loadGameLayout, obj)
	ev := model.LoadGame{
		Envelope:  decodeEnvelope(r),
		Commander: decodeIdentity(r.With(loadGameIdentityLayout)),
		GameType:  decodeGameType(r),
		Ship:      decodeShip(r),
		Credits:   r.Uint64("credits"),
		Loan:      r.Uint64("loan"),
		Version:   decodeVersion(r),
	}
	return finish(r, ev)
}

func decodeReceiveText(obj coerce.Object) (model.Event, error) {
	r := coerce.NewReader(receiveTextLayout, obj)
	ev := model.ReceiveText{
		Envelope:         decodeEnvelope(r),
		From:             r.String("from"),
		FromLocalised:    r.NullableString("from_localised"),
		Message:          r.String("message"),
		MessageLocalised: r.NullableString("message_localised"),
		Channel:          model.Channel(r.Enum("channel", channels...)),
	}
	return finish(r, ev)
}

func decodeSendText(obj coerce.Object) (model.Event, error) {
	r := coerce.NewReader(sendTextLayout, obj)
	ev := model.SendText{
		Envelope: decodeEnvelope(r),
		To:       r.String("to"),
		Message:  r.String("message"),
		Sent:     r.Bool("sent"),
	}
	return finish(r, ev)
}

func decodeLocation(obj coerce.Object) (model.Event, error) {
	r := coerce.NewReader(locationLayout, obj)
	pos := r.Float3("star_pos")
	ev := model.Location{
		Envelope:   decodeEnvelope(r),
		Docked:     r.Bool("docked"),
		Taxi:       r.Bool("taxi"),
		Multicrew:  r.Bool("multicrew"),
		StarSystem: r.String("star_system"),
		StarPos:    model.StarPos{X: pos[0], Y: pos[1], Z: pos[2]},
		System:     decodeStarSystem(r),
	}
	return finish(r, ev)
}
