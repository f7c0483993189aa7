package extract

import (
	"log/slog"
	"strings"

	"github.com/atozflooring/xtracr/constants"
	"github.com/atozflooring/xtracr/internal/template"
)

// minUsableLength is the shortest trimmed input worth running cascades over.
// Anything below it returns the all-empty record with NotExtractable set.
const minUsableLength = 40

// placeholderTokens are low-information values a blind pattern match can
// capture where a name belongs — structural labels, not data. A field that
// resolves to one of these is reported empty instead.
var placeholderTokens = map[string]struct{}{
	"unit":    {},
	"n/a":     {},
	"na":      {},
	"tba":     {},
	"tbc":     {},
	"unknown": {},
	"site":    {},
}

func isPlaceholder(v string) bool {
	_, ok := placeholderTokens[strings.ToLower(strings.TrimSpace(v))]
	return ok
}

// Engine runs the whole pipeline for one document: detect the builder
// template, run the field cascades, resolve contacts, check for a declared
// builder mismatch, and assemble the canonical record. It holds no state
// across calls and is safe for concurrent use.
type Engine struct {
	reg    *template.Registry
	det    *template.Detector
	logger *slog.Logger
}

func NewEngine(reg *template.Registry, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{reg: reg, det: template.NewDetector(reg), logger: logger}
}

// Extract produces a best-effort canonical record for one document.
// declaredID is the caller-selected builder, used only for the mismatch
// check; it never influences detection. Data-quality problems degrade to
// empty fields, never to errors.
func (e *Engine) Extract(doc RawDocument, declaredID string) CanonicalRecord {
	text := strings.TrimSpace(doc.Text)
	if len(text) < minUsableLength {
		e.logger.Warn("extract.input_too_short", "filename", doc.Filename, "len", len(text))
		return CanonicalRecord{NotExtractable: true, NeedsReview: true}
	}

	detection := e.det.Detect(doc.Text)
	def, _ := e.reg.Get(detection.TemplateID)
	if def == nil {
		def = e.reg.Generic()
	}

	fields := runCascades(doc.Text, def, e.reg.Generic())
	rec := e.assemble(doc.Text, detection, fields)
	rec.MismatchWarning = CheckMismatch(declaredID, detection.TemplateID, e.reg)

	rec.NeedsReview = detection.FellBack() ||
		rec.PONumber == "" || rec.CustomerName == "" || rec.DollarValue == "" ||
		rec.MismatchWarning != nil

	e.logger.Info("extract.ok",
		"filename", doc.Filename,
		"template", detection.TemplateID,
		"score", detection.Score,
		"po_number", rec.PONumber,
		"needs_review", rec.NeedsReview,
	)
	return rec
}

func (e *Engine) assemble(text string, detection template.Detection, fields ExtractionResult) CanonicalRecord {
	rec := CanonicalRecord{
		DetectedTemplateID: detection.TemplateID,
		DetectionScore:     detection.Score,
		Provenance:         make(map[string]string, len(fields)),
	}

	value := func(f constants.Field) string {
		return fields[f].Value
	}
	// keep stamps provenance only for values that survived cleanup; a field
	// dropped as a placeholder leaves no provenance entry behind.
	keep := func(f constants.Field, v string) string {
		if v != "" {
			rec.Provenance[string(f)] = string(fields[f].Provenance)
		}
		return v
	}

	rec.CustomerName = keep(constants.FieldCustomerName, dropPlaceholder(value(constants.FieldCustomerName)))
	rec.PONumber = keep(constants.FieldPONumber, value(constants.FieldPONumber))
	rec.DollarValue = keep(constants.FieldDollarValue, value(constants.FieldDollarValue))
	rec.DescriptionOfWorks = keep(constants.FieldDescriptionOfWorks, value(constants.FieldDescriptionOfWorks))
	rec.SupervisorName = keep(constants.FieldSupervisorName, dropPlaceholder(value(constants.FieldSupervisorName)))
	rec.Email = keep(constants.FieldEmail, value(constants.FieldEmail))

	if rec.CustomerName != "" {
		rec.FirstName, rec.LastName = SplitName(rec.CustomerName)
	}

	if blob := value(constants.FieldSiteAddress); blob != "" {
		addr := ParseAddress(blob)
		rec.Address1, rec.Address2 = addr.Address1, addr.Address2
		rec.City, rec.State, rec.Zip = addr.City, addr.State, addr.Zip
		prov := string(fields[constants.FieldSiteAddress].Provenance)
		for _, f := range []constants.Field{
			constants.FieldAddress1, constants.FieldAddress2,
			constants.FieldCity, constants.FieldState, constants.FieldZip,
		} {
			if rec.Field(f) != "" {
				rec.Provenance[string(f)] = prov
			}
		}
	}

	phones := collectPhones(text)

	// supervisor phone: the cascade capture when it normalizes, otherwise
	// the strongest labeled phone in the document
	if raw := value(constants.FieldSupervisorPhone); raw != "" {
		if digits, ok := NormalizePhone(raw); ok {
			rec.SupervisorPhone = keep(constants.FieldSupervisorPhone, digits)
		}
	}
	if rec.SupervisorPhone == "" && len(phones) > 0 {
		rec.SupervisorPhone = phones[0].Digits
	}

	alternates := collectAlternateContacts(text)
	for i := range alternates {
		if isPlaceholder(alternates[i].Name) {
			alternates[i].Name = ""
		}
	}
	if len(alternates) > 0 {
		rec.AlternateContact = &alternates[0]
		rec.AlternateContacts = alternates
	}
	return rec
}

func dropPlaceholder(v string) string {
	if isPlaceholder(v) {
		return ""
	}
	return v
}
