package common

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Replacement is one ordered character-normalization rule. Order matters:
// multi-byte mojibake forms must be rewritten before their single-byte tails.
type Replacement struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

// Tables bundles the lookup tables the pipeline depends on. They are loaded
// once at startup and injected, never referenced as ambient globals, so the
// scoring stages stay pure and testable with alternate tables.
type Tables struct {
	UnitSynonyms     map[string]string `yaml:"unit_synonyms"`
	CharReplacements []Replacement     `yaml:"char_replacements"`
}

// DefaultTables returns the built-in tables for engineering-drawing OCR.
func DefaultTables() Tables {
	return Tables{
		UnitSynonyms: map[string]string{
			"millimeter":  "mm",
			"millimeters": "mm",
			"mm":          "mm",
			"centimeter":  "cm",
			"centimeters": "cm",
			"cm":          "cm",
			"inch":        "inch",
			"inches":      "inch",
			"in":          "inch",
		},
		CharReplacements: []Replacement{
			// mojibake first: UTF-8 bytes decoded as Latin-1
			{From: "Ã", To: " DIAMETER "}, // Ã˜
			{From: "Ã¸", To: " DIAMETER "}, // Ã¸
			{From: "Â±", To: " +/- "},      // Â±
			{From: "Ø", To: " DIAMETER "},
			{From: "ø", To: " DIAMETER "},
			{From: "φ", To: " DIAMETER "},
			{From: "⌀", To: " DIAMETER "},
			{From: "±", To: " +/- "},
			{From: "–", To: "-"},
			{From: "—", To: "-"},
		},
	}
}

// LoadTables reads a YAML override file. Fields present in the file replace
// the corresponding default table wholesale; absent fields keep the default.
func LoadTables(path string) (Tables, error) {
	tables := DefaultTables()
	if path == "" {
		return tables, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return Tables{}, fmt.Errorf("read tables file: %w", err)
	}

	var override Tables
	if err := yaml.Unmarshal(raw, &override); err != nil {
		return Tables{}, fmt.Errorf("parse tables file: %w", err)
	}

	if len(override.UnitSynonyms) > 0 {
		tables.UnitSynonyms = override.UnitSynonyms
	}
	if len(override.CharReplacements) > 0 {
		tables.CharReplacements = override.CharReplacements
	}
	return tables, nil
}
