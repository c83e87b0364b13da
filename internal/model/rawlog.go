package model

// RawLog is one journal line as produced by a connector and consumed by the engine.
type RawLog struct {
	Source string // file name or other origin label
	Line   int    // 1-based line number within Source
	Text   string // original line, without the trailing newline
}
