package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/atozflooring/xtracr/constants"
	"github.com/atozflooring/xtracr/internal/template"
)

// runCascades applies one template's field cascades to text, closing each
// cascade with the generic fallback patterns. Fields fail independently; a
// miss is recorded by absence, never by error.
func runCascades(text string, def *template.Definition, generic *template.Definition) ExtractionResult {
	out := make(ExtractionResult, len(constants.CascadeFields))
	for _, field := range constants.CascadeFields {
		if res, ok := runCascade(text, field, def, generic); ok {
			out[field] = res
		}
	}
	return out
}

func runCascade(text string, field constants.Field, def, generic *template.Definition) (FieldResult, bool) {
	// When detection fell back, the selected template IS the generic one and
	// its hits are generic-tier hits, not template-specific ones.
	prov := ProvenanceTemplate
	if def.ID == generic.ID {
		prov = ProvenanceGeneric
	}
	for _, fp := range def.PatternsFor(field) {
		if v, ok := applyPattern(text, field, fp.Pattern); ok {
			return FieldResult{Value: v, Provenance: prov}, true
		}
	}
	if def.ID == generic.ID {
		return FieldResult{}, false
	}
	for _, fp := range generic.PatternsFor(field) {
		if v, ok := applyPattern(text, field, fp.Pattern); ok {
			return FieldResult{Value: v, Provenance: ProvenanceGeneric}, true
		}
	}
	return FieldResult{}, false
}

// applyPattern runs one pattern and post-processes the capture by field
// shape. Returning false moves the cascade to its next pattern.
func applyPattern(text string, field constants.Field, re *regexp.Regexp) (string, bool) {
	m := re.FindStringSubmatch(text)
	if len(m) < 2 {
		return "", false
	}
	switch field {
	case constants.FieldDollarValue:
		return normalizeMoney(m[1])
	case constants.FieldDescriptionOfWorks:
		v := trimDescription(m[1])
		return v, v != ""
	default:
		v := collapseWhitespace(m[1])
		return v, v != ""
	}
}

var wsRe = regexp.MustCompile(`\s+`)

// collapseWhitespace trims and squashes internal whitespace runs to one space.
func collapseWhitespace(s string) string {
	return wsRe.ReplaceAllString(strings.TrimSpace(s), " ")
}

// normalizeMoney strips currency symbols and thousands separators and
// requires a non-negative decimal. A failed parse is a pattern miss, not an
// error, so the cascade can try the next pattern.
func normalizeMoney(raw string) (string, bool) {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f < 0 {
		return "", false
	}
	return strconv.FormatFloat(f, 'f', 2, 64), true
}

// descriptionTerminators end a multi-line description capture. Builders
// print totals or tax blocks straight after the works description.
var descriptionTerminators = regexp.MustCompile(`(?im)^[ \t]*(?:Totals?|Sub ?Total|Grand Total|GST|Invoice Total)\b`)

// boilerplateLine recognizes signature and disclaimer tails that PDF text
// extraction drags into the last captured block.
var boilerplateLine = regexp.MustCompile(`(?i)^[ \t]*(?:kind regards|regards|thank you|yours sincerely|please (?:contact|call|do not)|this (?:email|document).*confiden|page \d+ of \d+|abn[ :]).*$`)

// trimDescription cuts a description capture at its terminating marker (or
// the first blank line, whichever comes first), then strips trailing
// boilerplate lines and collapses whitespace per line.
func trimDescription(raw string) string {
	s := raw
	if loc := descriptionTerminators.FindStringIndex(s); loc != nil {
		s = s[:loc[0]]
	}
	if idx := strings.Index(s, "\n\n"); idx >= 0 {
		s = s[:idx]
	}

	lines := strings.Split(s, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, ln := range lines {
		if v := collapseWhitespace(ln); v != "" {
			cleaned = append(cleaned, v)
		}
	}
	for len(cleaned) > 0 && boilerplateLine.MatchString(cleaned[len(cleaned)-1]) {
		cleaned = cleaned[:len(cleaned)-1]
	}
	return strings.Join(cleaned, "\n")
}
