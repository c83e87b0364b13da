// Package testdata provides a corpus of journal lines for decoder tests.
package testdata

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed corpus.yaml
var corpusYAML []byte

// CorpusEntry is a journal line with its expected outcome. Exactly one of
// Kind and Error is set.
type CorpusEntry struct {
	Description string `yaml:"description"`
	Raw         string `yaml:"raw"`
	Kind        string `yaml:"kind"`
	Error       string `yaml:"error"`
}

// LoadCorpus parses the embedded corpus.yaml and returns all entries.
func LoadCorpus() ([]CorpusEntry, error) {
	var entries []CorpusEntry
	if err := yaml.Unmarshal(corpusYAML, &entries); err != nil {
		return nil, fmt.Errorf("parse corpus.yaml: %w", err)
	}
	return entries, nil
}

// Lines returns the raw lines of the corpus in order.
func Lines() ([]string, error) {
	entries, err := LoadCorpus()
	if err != nil {
		return nil, err
	}
	lines := make([]string, len(entries))
	for i, e := range entries {
		lines[i] = e.Raw
	}
	return lines, nil
}
