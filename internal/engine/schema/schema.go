// Package schema declares the record shape of every known journal event kind.
//
// Layouts are package-level values, so name resolution and the overlap check
// for flattened blocks run once at initialization. A definition error panics
// during init rather than surfacing while decoding.
package schema

import (
	"github.com/crimson-sun/journal/internal/engine/coerce"
	"github.com/crimson-sun/journal/internal/model"
)

// DecodeFunc decodes one record of a known kind.
type DecodeFunc func(obj coerce.Object) (model.Event, error)

// Variant is the schema of one known event kind.
type Variant struct {
	Tag    string
	Layout *coerce.Layout // every top-level key the variant reads
	Decode DecodeFunc
}

var variants = []Variant{
	{model.TagFileheader, fileheaderSchema, decodeFileheader},
	{model.TagCommander, commanderSchema, decodeCommander},
	{model.TagMaterials, materialsSchema, decodeMaterials},
	{model.TagRank, rankSchema, decodeRank},
	{model.TagProgress, progressSchema, decodeProgress},
	{model.TagReputation, reputationSchema, decodeReputation},
	{model.TagEngineerProgress, engineerProgressSchema, decodeEngineerProgress},
	{model.TagLoadGame, loadGameSchema, decodeLoadGame},
	{model.TagStatistics, statisticsSchema, decodeStatistics},
	{model.TagReceiveText, receiveTextSchema, decodeReceiveText},
	{model.TagSendText, sendTextSchema, decodeSendText},
	{model.TagLocation, locationSchema, decodeLocation},
}

// All returns the schemas of every known event kind.
func All() []Variant {
	out := make([]Variant, len(variants))
	copy(out, variants)
	return out
}

// finish returns ev, or the reader's failure.
func finish(r *coerce.Reader, ev model.Event) (model.Event, error) {
	if err := r.Err(); err != nil {
		return nil, err
	}
	return ev, nil
}
