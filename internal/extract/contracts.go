// Package extract turns decoded purchase-order text into a canonical record:
// template detection, per-field pattern cascades, contact normalization, and
// final assembly. Everything here is pure computation over strings; document
// decoding and persistence live with the callers.
package extract

import (
	"context"
	"time"

	"github.com/atozflooring/xtracr/constants"
)

// RawDocument is decoded, line-oriented plain text plus where it came from.
type RawDocument struct {
	Text     string
	Filename string
}

// Provenance records which cascade tier produced a field value.
type Provenance string

const (
	ProvenanceTemplate Provenance = "template"
	ProvenanceGeneric  Provenance = "generic"
)

// FieldResult is one field's matched value, empty when every pattern missed.
type FieldResult struct {
	Value      string
	Provenance Provenance
}

// ExtractionResult maps canonical fields to their cascade outcomes. Missing
// keys mean the cascade exhausted all patterns for that field.
type ExtractionResult map[constants.Field]FieldResult

// AlternateContact is a secondary named contact found in the document.
type AlternateContact struct {
	Name   string `json:"name,omitempty"`
	Type   string `json:"type,omitempty"`
	Phone  string `json:"phone,omitempty"`
	Phone2 string `json:"phone2,omitempty"`
	Email  string `json:"email,omitempty"`
}

// MismatchWarning flags disagreement between the builder the caller declared
// and the one detection landed on. Advisory only.
type MismatchWarning struct {
	DetectedTemplateID string `json:"detected_template_id"`
	SelectedTemplateID string `json:"selected_template_id"`
	Mismatch           bool   `json:"mismatch"`
	Message            string `json:"message"`
}

// CanonicalRecord is the fixed-shape output handed to callers. Empty strings
// mean the field could not be extracted; nothing here is an error. Callers
// are expected to show the record to a human before acting on it.
type CanonicalRecord struct {
	CustomerName string `json:"customer_name"`
	FirstName    string `json:"first_name,omitempty"`
	LastName     string `json:"last_name,omitempty"`

	Address1 string `json:"address1"`
	Address2 string `json:"address2"`
	City     string `json:"city"`
	State    string `json:"state"`
	Zip      string `json:"zip"`

	PONumber           string `json:"po_number"`
	DollarValue        string `json:"dollar_value"` // decimal string, two places
	DescriptionOfWorks string `json:"description_of_works"`
	SupervisorName     string `json:"supervisor_name"`
	SupervisorPhone    string `json:"supervisor_phone"`
	Email              string `json:"email"`

	AlternateContact  *AlternateContact  `json:"alternate_contact,omitempty"`
	AlternateContacts []AlternateContact `json:"alternate_contacts,omitempty"`

	DetectedTemplateID string            `json:"detected_template_id"`
	DetectionScore     int               `json:"detection_score"`
	Provenance         map[string]string `json:"provenance,omitempty"` // field -> template|generic

	MismatchWarning *MismatchWarning `json:"mismatch_warning,omitempty"`

	// NotExtractable is set when the input text was empty or too short to
	// work with; every field above is empty in that case.
	NotExtractable bool `json:"not_extractable,omitempty"`
	// NeedsReview is set when detection fell back to generic, a key field
	// came up empty, or a mismatch warning fired.
	NeedsReview bool `json:"needs_review,omitempty"`
}

// Field returns the canonical field's value by name, for consumers that walk
// the record generically (export, payload building).
func (r *CanonicalRecord) Field(f constants.Field) string {
	switch f {
	case constants.FieldCustomerName:
		return r.CustomerName
	case constants.FieldAddress1:
		return r.Address1
	case constants.FieldAddress2:
		return r.Address2
	case constants.FieldCity:
		return r.City
	case constants.FieldState:
		return r.State
	case constants.FieldZip:
		return r.Zip
	case constants.FieldPONumber:
		return r.PONumber
	case constants.FieldDollarValue:
		return r.DollarValue
	case constants.FieldDescriptionOfWorks:
		return r.DescriptionOfWorks
	case constants.FieldSupervisorName:
		return r.SupervisorName
	case constants.FieldSupervisorPhone:
		return r.SupervisorPhone
	case constants.FieldEmail:
		return r.Email
	}
	return ""
}

// TextDecoder is the document-decoding collaborator: file path -> plain text.
type TextDecoder interface {
	Decode(ctx context.Context, path string) (DecodeResult, error)
}

// DecodeResult summarizes one decode run.
type DecodeResult struct {
	Text     string
	Pages    int
	Method   string // "pdf-text" | "txt"
	Duration time.Duration
}
