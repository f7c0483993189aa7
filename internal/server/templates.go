package server

import (
	"net/http"

	"github.com/atozflooring/xtracr/internal/template"
)

type templateSummary struct {
	ID           string   `json:"id"`
	DisplayName  string   `json:"display_name"`
	Keywords     []string `json:"keywords,omitempty"`
	EmailDomains []string `json:"email_domains,omitempty"`
	HasPOPattern bool     `json:"has_po_pattern"`
	Generic      bool     `json:"generic"`
}

func (s *Server) handleListTemplates(w http.ResponseWriter, r *http.Request) {
	defs := append([]*template.Definition{}, s.registry.Definitions()...)
	defs = append(defs, s.registry.Generic())
	out := make([]templateSummary, 0, len(defs))
	for _, d := range defs {
		out = append(out, templateSummary{
			ID:           d.ID,
			DisplayName:  d.DisplayName,
			Keywords:     d.Signature.Keywords,
			EmailDomains: d.Signature.EmailDomains,
			HasPOPattern: d.Signature.PONumber != nil,
			Generic:      template.IsGeneric(d.ID),
		})
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"templates": out})
}
