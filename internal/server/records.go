package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/atozflooring/xtracr/internal/common"
)

func (s *Server) handleGetRecord(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		s.writeError(w, r, common.InvalidInputError("id must be a UUID"))
		return
	}

	rec, err := s.records.GetByID(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, rec)
}

// handleListRecords lists records, optionally windowed by ?from=YYYY-MM-DD
// and ?to=YYYY-MM-DD (both inclusive).
func (s *Server) handleListRecords(w http.ResponseWriter, r *http.Request) {
	from, to, err := parseDateWindow(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	recs, err := s.records.List(r.Context(), from, to)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"records": recs, "count": len(recs)})
}

func (s *Server) handleExportRecords(w http.ResponseWriter, r *http.Request) {
	from, to, err := parseDateWindow(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	xlsx, err := s.exporter.ExportRecordsXLSX(r.Context(), from, to)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	filename := "orders-" + time.Now().UTC().Format("20060102") + ".xlsx"
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(xlsx)
}

func parseDateWindow(r *http.Request) (*time.Time, *time.Time, error) {
	var from, to *time.Time
	if v := strings.TrimSpace(r.URL.Query().Get("from")); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return nil, nil, common.InvalidInputError("from must be YYYY-MM-DD")
		}
		from = &t
	}
	if v := strings.TrimSpace(r.URL.Query().Get("to")); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return nil, nil, common.InvalidInputError("to must be YYYY-MM-DD")
		}
		to = &t
	}
	return from, to, nil
}
