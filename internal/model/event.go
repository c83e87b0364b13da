package model

import "time"

// Event is a decoded journal record. The variants are the known event kinds
// declared in this package plus UnknownEvent.
type Event interface {
	// Kind returns the value of the record's "event" field.
	Kind() string
	event()
}

// Tags of the known event kinds.
const (
	TagFileheader       = "Fileheader"
	TagCommander        = "Commander"
	TagMaterials        = "Materials"
	TagRank             = "Rank"
	TagProgress         = "Progress"
	TagReputation       = "Reputation"
	TagEngineerProgress = "EngineerProgress"
	TagLoadGame         = "LoadGame"
	TagStatistics       = "Statistics"
	TagReceiveText      = "ReceiveText"
	TagSendText         = "SendText"
	TagLocation         = "Location"
)

// Envelope carries the fields every journal record may have.
type Envelope struct {
	Timestamp Optional[time.Time] `json:"timestamp" yaml:"timestamp"`
}

func (Envelope) event() {}

// Time returns the record's timestamp, if it had one.
func (e Envelope) Time() (time.Time, bool) {
	return e.Timestamp.Get()
}

// UnknownEvent holds a record whose kind has no schema. Every input field is
// kept as parsed; numbers are json.Number so their text is unchanged.
type UnknownEvent struct {
	Fields map[string]any `json:"fields" yaml:"fields"`
}

func (UnknownEvent) event() {}

func (u UnknownEvent) Kind() string {
	s, _ := u.Fields["event"].(string)
	return s
}

// Time parses the record's "timestamp" field when it holds an RFC 3339 string.
func (u UnknownEvent) Time() (time.Time, bool) {
	s, ok := u.Fields["timestamp"].(string)
	if !ok {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Timestamped is implemented by every Event: known variants through their
// Envelope, UnknownEvent by reading its raw fields.
type Timestamped interface {
	Time() (time.Time, bool)
}

// Version is the game version block written in Fileheader and LoadGame.
type Version struct {
	GameVersion string `json:"game_version" yaml:"game_version"`
	Build       string `json:"build" yaml:"build"`
	Language    string `json:"language" yaml:"language"`
}

// Fileheader is the first record of every journal file.
type Fileheader struct {
	Envelope `yaml:",inline"`
	Part     int64   `json:"part" yaml:"part"`
	Odyssey  bool    `json:"odyssey" yaml:"odyssey"`
	Version  Version `json:"version" yaml:"version"`
}

func (Fileheader) Kind() string { return TagFileheader }

// Identity names a commander.
type Identity struct {
	FID  FID    `json:"fid" yaml:"fid"`
	Name string `json:"name" yaml:"name"`
}

// Commander is written once the commander is selected.
type Commander struct {
	Envelope `yaml:",inline"`
	Identity `yaml:",inline"`
}

func (Commander) Kind() string { return TagCommander }

// Material is one entry of a Materials inventory list.
type Material struct {
	Name          string           `json:"name" yaml:"name"`
	NameLocalised Optional[string] `json:"name_localised" yaml:"name_localised"`
	Count         uint64           `json:"count" yaml:"count"`
}

// Materials lists the commander's engineering materials by category.
type Materials struct {
	Envelope     `yaml:",inline"`
	Raw          []Material `json:"raw" yaml:"raw"`
	Manufactured []Material `json:"manufactured" yaml:"manufactured"`
	Encoded      []Material `json:"encoded" yaml:"encoded"`
}

func (Materials) Kind() string { return TagMaterials }

// Rank holds the commander's level on each ranked scale.
type Rank struct {
	Envelope     `yaml:",inline"`
	Combat       Level `json:"combat" yaml:"combat"`
	Trade        Level `json:"trade" yaml:"trade"`
	Explore      Level `json:"explore" yaml:"explore"`
	Soldier      Level `json:"soldier" yaml:"soldier"`
	Exobiologist Level `json:"exobiologist" yaml:"exobiologist"`
	Empire       Level `json:"empire" yaml:"empire"`
	Federation   Level `json:"federation" yaml:"federation"`
	CQC          Level `json:"cqc" yaml:"cqc"`
}

func (Rank) Kind() string { return TagRank }

// Progress holds the percentage towards the next level on each scale.
type Progress struct {
	Envelope     `yaml:",inline"`
	Combat       uint32 `json:"combat" yaml:"combat"`
	Trade        uint32 `json:"trade" yaml:"trade"`
	Explore      uint32 `json:"explore" yaml:"explore"`
	Soldier      uint32 `json:"soldier" yaml:"soldier"`
	Exobiologist uint32 `json:"exobiologist" yaml:"exobiologist"`
	Empire       uint32 `json:"empire" yaml:"empire"`
	Federation   uint32 `json:"federation" yaml:"federation"`
	CQC          uint32 `json:"cqc" yaml:"cqc"`
}

func (Progress) Kind() string { return TagProgress }

// Reputation holds the commander's standing with the major factions.
type Reputation struct {
	Envelope    `yaml:",inline"`
	Empire      float64 `json:"empire" yaml:"empire"`
	Federation  float64 `json:"federation" yaml:"federation"`
	Independent float64 `json:"independent" yaml:"independent"`
	Alliance    float64 `json:"alliance" yaml:"alliance"`
}

func (Reputation) Kind() string { return TagReputation }

// EngineerStage is how far the commander has got with an engineer.
type EngineerStage string

const (
	StageKnown      EngineerStage = "Known"
	StageInvited    EngineerStage = "Invited"
	StageAcquainted EngineerStage = "Acquainted"
	StageUnlocked   EngineerStage = "Unlocked"
	StageBarred     EngineerStage = "Barred"
)

// Engineer is one engineer's progress entry.
type Engineer struct {
	Name         string           `json:"name" yaml:"name"`
	ID           uint64           `json:"id" yaml:"id"`
	Progress     EngineerStage    `json:"progress" yaml:"progress"`
	Rank         Optional[uint64] `json:"rank" yaml:"rank"`
	RankProgress Optional[uint64] `json:"rank_progress" yaml:"rank_progress"`
}

// EngineerProgress is written at startup with every engineer, and during play
// with the single engineer whose progress changed.
type EngineerProgress struct {
	Envelope  `yaml:",inline"`
	Engineers []Engineer `json:"engineers" yaml:"engineers"`
}

func (EngineerProgress) Kind() string { return TagEngineerProgress }

// GameMode is the session's network mode.
type GameMode string

const (
	ModeOpen  GameMode = "Open"
	ModeGroup GameMode = "Group"
	ModeSolo  GameMode = "Solo"
)

// GameType describes the product and mode of a session.
type GameType struct {
	Horizons bool     `json:"horizons" yaml:"horizons"`
	Odyssey  bool     `json:"odyssey" yaml:"odyssey"`
	GameMode GameMode `json:"game_mode" yaml:"game_mode"`
}

// Ship is the current ship block shared by ship-related records.
type Ship struct {
	Ship          string           `json:"ship" yaml:"ship"`
	ShipLocalised Optional[string] `json:"ship_localised" yaml:"ship_localised"`
	ShipID        uint64           `json:"ship_id" yaml:"ship_id"`
	ShipName      Optional[string] `json:"ship_name" yaml:"ship_name"`
	ShipIdent     Optional[string] `json:"ship_ident" yaml:"ship_ident"`
	FuelLevel     float64          `json:"fuel_level" yaml:"fuel_level"`
	FuelCapacity  float64          `json:"fuel_capacity" yaml:"fuel_capacity"`
}

// LoadGame is written when a session starts.
type LoadGame struct {
	Envelope  `yaml:",inline"`
	Commander Identity `json:"commander" yaml:"commander"`
	GameType  GameType `json:"game_type" yaml:"game_type"`
	Ship      Ship     `json:"ship" yaml:"ship"`
	Credits   uint64   `json:"credits" yaml:"credits"`
	Loan      uint64   `json:"loan" yaml:"loan"`
	Version   Version  `json:"version" yaml:"version"`
}

func (LoadGame) Kind() string { return TagLoadGame }

// Channel is the comms channel a message arrived on.
type Channel string

const (
	ChannelNPC          Channel = "npc"
	ChannelPlayer       Channel = "player"
	ChannelLocal        Channel = "local"
	ChannelWing         Channel = "wing"
	ChannelFriend       Channel = "friend"
	ChannelVoiceChat    Channel = "voicechat"
	ChannelSquadron     Channel = "squadron"
	ChannelSquadLeaders Channel = "squadleaders"
	ChannelStarSystem   Channel = "starsystem"
)

// ReceiveText is an incoming comms message.
type ReceiveText struct {
	Envelope         `yaml:",inline"`
	From             string           `json:"from" yaml:"from"`
	FromLocalised    Optional[string] `json:"from_localised" yaml:"from_localised"`
	Message          string           `json:"message" yaml:"message"`
	MessageLocalised Optional[string] `json:"message_localised" yaml:"message_localised"`
	Channel          Channel          `json:"channel" yaml:"channel"`
}

func (ReceiveText) Kind() string { return TagReceiveText }

// SendText is an outgoing comms message.
type SendText struct {
	Envelope `yaml:",inline"`
	To       string `json:"to" yaml:"to"`
	Message  string `json:"message" yaml:"message"`
	Sent     bool   `json:"sent" yaml:"sent"`
}

func (SendText) Kind() string { return TagSendText }

// Allegiance is the superpower a system is aligned with.
type Allegiance string

const (
	AllegianceIndependent      Allegiance = "Independent"
	AllegianceFederation       Allegiance = "Federation"
	AllegianceEmpire           Allegiance = "Empire"
	AllegianceAlliance         Allegiance = "Alliance"
	AllegiancePilotsFederation Allegiance = "PilotsFederation"
	AllegianceThargoid         Allegiance = "Thargoid"
	AllegianceGuardian         Allegiance = "Guardian"
)

// StarPos is a position in galactic coordinates, in light years from Sol.
type StarPos struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
	Z float64 `json:"z" yaml:"z"`
}

// StarSystem is the system block flattened into Location.
type StarSystem struct {
	Address          uint64               `json:"address" yaml:"address"`
	Allegiance       Optional[Allegiance] `json:"allegiance" yaml:"allegiance"`
	Economy          string               `json:"economy" yaml:"economy"`
	EconomyLocalised Optional[string]     `json:"economy_localised" yaml:"economy_localised"`
}

// Location is written at startup and after respawn.
type Location struct {
	Envelope   `yaml:",inline"`
	Docked     bool       `json:"docked" yaml:"docked"`
	Taxi       bool       `json:"taxi" yaml:"taxi"`
	Multicrew  bool       `json:"multicrew" yaml:"multicrew"`
	StarSystem string     `json:"star_system" yaml:"star_system"`
	StarPos    StarPos    `json:"star_pos" yaml:"star_pos"`
	System     StarSystem `json:"system" yaml:"system"`
}

func (Location) Kind() string { return TagLocation }
