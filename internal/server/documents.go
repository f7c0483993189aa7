package server

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/atozflooring/xtracr/constants"
	"github.com/atozflooring/xtracr/internal/common"
)

// handleUploadDocument accepts a multipart upload under the "file" field,
// stores it, and runs the full decode+parse pipeline synchronously. An
// optional "template_id" form value pins a builder template.
func (s *Server) handleUploadDocument(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadSize)
	if err := r.ParseMultipartForm(s.cfg.MaxUploadSize); err != nil {
		s.writeError(w, r, common.InvalidInputErrorf("upload too large or malformed: %v", err))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		s.writeError(w, r, common.InvalidInputError("missing file field"))
		return
	}
	defer file.Close()

	ext := constants.NormalizeExt(filepath.Ext(header.Filename))
	if _, ok := constants.AllowedExtensions[ext]; !ok {
		s.writeError(w, r, common.InvalidInputErrorf("unsupported file type %q, expected pdf or txt", ext))
		return
	}

	templateID := r.FormValue("template_id")
	if templateID != "" {
		if _, ok := s.registry.Get(templateID); !ok {
			s.writeError(w, r, common.InvalidInputErrorf("unknown template_id %q", templateID))
			return
		}
	}

	destPath, err := s.saveUpload(file, ext)
	if err != nil {
		s.writeError(w, r, common.NewAppError("UPLOAD_STORE_FAILED", "could not store upload", err))
		return
	}

	doc, err := s.docs.Create(r.Context(), header.Filename, destPath, ext)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	rec, err := s.processor.Process(r.Context(), doc.ID, templateID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.logger.Info("upload.ok", "document_id", doc.ID.String(), "filename", header.Filename, "record_id", rec.ID.String())
	s.writeJSON(w, http.StatusCreated, rec)
}

func (s *Server) saveUpload(src io.Reader, ext string) (string, error) {
	if err := os.MkdirAll(s.cfg.UploadDir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}
	destPath := filepath.Join(s.cfg.UploadDir, uuid.NewString()+"."+ext)
	dest, err := os.Create(destPath)
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer dest.Close()
	if _, err := io.Copy(dest, src); err != nil {
		os.Remove(destPath)
		return "", fmt.Errorf("write upload file: %w", err)
	}
	return destPath, nil
}
