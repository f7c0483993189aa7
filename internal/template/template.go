// Package template holds the builder-template catalog: per-builder detection
// signatures plus declarative {field, pattern, priority} extraction cascades.
// The registry is built once at startup and read-only afterwards, so it can
// be shared across concurrent extractions without coordination.
package template

import (
	"fmt"
	"regexp"
	"sort"

	"github.com/atozflooring/xtracr/constants"
)

// GenericID is the id of the fallback template selected when no builder
// signature clears the detection threshold. Its cascades are label-based
// patterns meant to work reasonably across unseen layouts.
const GenericID = "generic"

// RawFieldPattern is one declarative cascade entry as it appears in a
// definition file. Lower priority runs first.
type RawFieldPattern struct {
	Field    string `json:"field"`
	Pattern  string `json:"pattern"`
	Priority int    `json:"priority"`
}

// RawDefinition is a builder template as authored in configuration. Adding a
// builder is a new RawDefinition, not a code change.
type RawDefinition struct {
	ID           string            `json:"id"`
	DisplayName  string            `json:"display_name"`
	POPattern    string            `json:"po_pattern,omitempty"`
	Keywords     []string          `json:"keywords,omitempty"`
	EmailDomains []string          `json:"email_domains,omitempty"`
	Patterns     []RawFieldPattern `json:"patterns"`
}

// Signature is the compiled detection signature for one builder.
type Signature struct {
	PONumber     *regexp.Regexp // nil when the builder has no PO shape
	Keywords     []string       // matched case-insensitively in the first five lines
	EmailDomains []string
}

// FieldPattern is one compiled cascade entry.
type FieldPattern struct {
	Field    constants.Field
	Pattern  *regexp.Regexp
	Priority int
}

// Definition is a compiled, immutable builder template.
type Definition struct {
	ID          string
	DisplayName string
	// Rank is the registration order, used as the final detection
	// tie-break. Lower ranks win.
	Rank      int
	Signature Signature
	patterns  map[constants.Field][]FieldPattern
}

// PatternsFor returns the cascade for field in priority order.
func (d *Definition) PatternsFor(field constants.Field) []FieldPattern {
	return d.patterns[field]
}

func compileDefinition(raw RawDefinition, rank int) (*Definition, error) {
	if raw.ID == "" {
		return nil, fmt.Errorf("template at rank %d: id is required", rank)
	}
	def := &Definition{
		ID:          raw.ID,
		DisplayName: raw.DisplayName,
		Rank:        rank,
		Signature: Signature{
			Keywords:     raw.Keywords,
			EmailDomains: raw.EmailDomains,
		},
		patterns: make(map[constants.Field][]FieldPattern),
	}
	if raw.POPattern != "" {
		re, err := regexp.Compile(raw.POPattern)
		if err != nil {
			return nil, fmt.Errorf("template %s: po_pattern: %w", raw.ID, err)
		}
		def.Signature.PONumber = re
	}
	for _, rp := range raw.Patterns {
		if !constants.IsCascadeField(rp.Field) {
			return nil, fmt.Errorf("template %s: unknown field %q", raw.ID, rp.Field)
		}
		re, err := regexp.Compile(rp.Pattern)
		if err != nil {
			return nil, fmt.Errorf("template %s: field %s: %w", raw.ID, rp.Field, err)
		}
		if re.NumSubexp() < 1 {
			return nil, fmt.Errorf("template %s: field %s: pattern needs a capture group", raw.ID, rp.Field)
		}
		f := constants.Field(rp.Field)
		def.patterns[f] = append(def.patterns[f], FieldPattern{Field: f, Pattern: re, Priority: rp.Priority})
	}
	for f := range def.patterns {
		ps := def.patterns[f]
		sort.SliceStable(ps, func(i, j int) bool { return ps[i].Priority < ps[j].Priority })
	}
	return def, nil
}
