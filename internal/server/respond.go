package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/atozflooring/xtracr/internal/common"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("http.encode.failed", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := common.HTTPStatus(err)
	resp := errorResponse{Error: err.Error()}

	var appErr *common.AppError
	if errors.As(err, &appErr) {
		resp.Code = appErr.Code
		resp.Error = appErr.Message
	}

	if status >= http.StatusInternalServerError {
		s.logger.Error("http.request.failed", "method", r.Method, "path", r.URL.Path, "status", status, "error", err)
	} else {
		s.logger.Warn("http.request.rejected", "method", r.Method, "path", r.URL.Path, "status", status, "error", err)
	}
	s.writeJSON(w, status, resp)
}
