package extract

import (
	"fmt"

	"github.com/atozflooring/xtracr/internal/template"
)

// CheckMismatch compares the caller-declared builder against the detected
// one. A warning fires only when both ids are present, disagree, and the
// detection did not fall back to generic; it never stops extraction — the
// decision to ask the user belongs to the calling workflow.
func CheckMismatch(declaredID, detectedID string, reg *template.Registry) *MismatchWarning {
	if declaredID == "" || detectedID == "" {
		return nil
	}
	if declaredID == detectedID || template.IsGeneric(detectedID) {
		return nil
	}

	declaredName, detectedName := declaredID, detectedID
	if d, ok := reg.Get(declaredID); ok {
		declaredName = d.DisplayName
	}
	if d, ok := reg.Get(detectedID); ok {
		detectedName = d.DisplayName
	}
	return &MismatchWarning{
		DetectedTemplateID: detectedID,
		SelectedTemplateID: declaredID,
		Mismatch:           true,
		Message: fmt.Sprintf("document looks like a %s purchase order, but %s was selected; please confirm before proceeding",
			detectedName, declaredName),
	}
}
