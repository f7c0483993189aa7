// Package server exposes the HTTP surface: document upload, record
// retrieval, XLSX export, and the template catalog.
package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/jmoiron/sqlx"

	"github.com/atozflooring/xtracr/internal/common"
	"github.com/atozflooring/xtracr/internal/export"
	"github.com/atozflooring/xtracr/internal/pipeline"
	"github.com/atozflooring/xtracr/internal/repository"
	"github.com/atozflooring/xtracr/internal/template"
)

type Server struct {
	cfg       common.ServerConfig
	db        *sqlx.DB
	docs      repository.DocumentRepository
	records   repository.RecordRepository
	processor *pipeline.Processor
	exporter  *export.Service
	registry  *template.Registry
	logger    *slog.Logger
}

func New(
	cfg common.ServerConfig,
	db *sqlx.DB,
	docs repository.DocumentRepository,
	records repository.RecordRepository,
	processor *pipeline.Processor,
	exporter *export.Service,
	registry *template.Registry,
	logger *slog.Logger,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		cfg:       cfg,
		db:        db,
		docs:      docs,
		records:   records,
		processor: processor,
		exporter:  exporter,
		registry:  registry,
		logger:    logger,
	}
}

// Router wires all routes under /v1.
func (s *Server) Router() http.Handler {
	r := mux.NewRouter()

	api := r.PathPrefix("/v1").Subrouter()
	api.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	api.HandleFunc("/documents", s.handleUploadDocument).Methods(http.MethodPost)
	api.HandleFunc("/records", s.handleListRecords).Methods(http.MethodGet)
	api.HandleFunc("/records/export", s.handleExportRecords).Methods(http.MethodGet)
	api.HandleFunc("/records/{id}", s.handleGetRecord).Methods(http.MethodGet)
	api.HandleFunc("/templates", s.handleListTemplates).Methods(http.MethodGet)

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := repository.HealthCheck(r.Context(), s.db, 2*time.Second); err != nil {
		s.writeError(w, r, common.NewAppError("UNHEALTHY", "database unreachable", err))
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
