package journal

import "github.com/crimson-sun/journal/internal/model"

// Event is one decoded journal record. The concrete type is one of the
// structs below or UnknownEvent.
type Event = model.Event

// Decoded event kinds.
type (
	Fileheader       = model.Fileheader
	Commander        = model.Commander
	Materials        = model.Materials
	Rank             = model.Rank
	Progress         = model.Progress
	Reputation       = model.Reputation
	EngineerProgress = model.EngineerProgress
	LoadGame         = model.LoadGame
	Statistics       = model.Statistics
	ReceiveText      = model.ReceiveText
	SendText         = model.SendText
	Location         = model.Location
	UnknownEvent     = model.UnknownEvent
)

// Building blocks of the decoded events.
type (
	Envelope = model.Envelope
	FID      = model.FID
	Level    = model.Level
)

// Line is one journal line with its origin.
type Line = model.RawLog

// Result is the outcome of decoding one Line.
type Result = model.Outcome

// Errors reported for lines that do not decode.
type (
	LineError       = model.LineError
	ErrorKind       = model.ErrorKind
	SchemaViolation = model.SchemaViolation
	InvalidOrdinal  = model.InvalidOrdinal
)

// Error kinds of a LineError.
const (
	KindMalformedInput       = model.KindMalformedInput
	KindMissingDiscriminator = model.KindMissingDiscriminator
	KindSchemaViolation      = model.KindSchemaViolation
	KindInvalidOrdinal       = model.KindInvalidOrdinal
)

// Sentinels for errors.Is, matching any LineError of the same kind.
var (
	ErrMalformedInput       = model.ErrMalformedInput
	ErrMissingDiscriminator = model.ErrMissingDiscriminator
	ErrSchemaViolation      = model.ErrSchemaViolation
	ErrInvalidOrdinal       = model.ErrInvalidOrdinal
)
