package server

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atozflooring/xtracr/internal/common"
	"github.com/atozflooring/xtracr/internal/template"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	reg, err := template.Builtin()
	require.NoError(t, err)

	cfg := common.ServerConfig{
		MaxUploadSize: 1 << 20,
		UploadDir:     t.TempDir(),
	}
	// handlers under test never reach the database or pipeline
	return New(cfg, nil, nil, nil, nil, nil, reg, nil)
}

func TestHandleListTemplates(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/templates", nil)
	rr := httptest.NewRecorder()
	srv.Router().ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var body struct {
		Templates []templateSummary `json:"templates"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	require.Len(t, body.Templates, 8)

	byID := make(map[string]templateSummary, len(body.Templates))
	for _, tmpl := range body.Templates {
		byID[tmpl.ID] = tmpl
	}
	amb, ok := byID["ambrose"]
	require.True(t, ok)
	assert.Equal(t, "Ambrose Construct Group", amb.DisplayName)
	assert.True(t, amb.HasPOPattern)
	assert.False(t, amb.Generic)

	gen, ok := byID["generic"]
	require.True(t, ok)
	assert.True(t, gen.Generic)
	assert.False(t, gen.HasPOPattern)
}

func multipartBody(t *testing.T, fields map[string]string, filename string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if filename != "" {
		fw, err := w.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, err = fw.Write([]byte("Purchase Order content"))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func TestHandleUploadDocument_Validation(t *testing.T) {
	srv := newTestServer(t)

	t.Run("missing file field", func(t *testing.T) {
		body, contentType := multipartBody(t, map[string]string{"note": "x"}, "")
		req := httptest.NewRequest(http.MethodPost, "/v1/documents", body)
		req.Header.Set("Content-Type", contentType)
		rr := httptest.NewRecorder()
		srv.Router().ServeHTTP(rr, req)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("unsupported extension", func(t *testing.T) {
		body, contentType := multipartBody(t, nil, "order.docx")
		req := httptest.NewRequest(http.MethodPost, "/v1/documents", body)
		req.Header.Set("Content-Type", contentType)
		rr := httptest.NewRecorder()
		srv.Router().ServeHTTP(rr, req)
		assert.Equal(t, http.StatusBadRequest, rr.Code)

		var resp errorResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, "INVALID_INPUT", resp.Code)
	})

	t.Run("unknown template id", func(t *testing.T) {
		body, contentType := multipartBody(t, map[string]string{"template_id": "nope"}, "order.txt")
		req := httptest.NewRequest(http.MethodPost, "/v1/documents", body)
		req.Header.Set("Content-Type", contentType)
		rr := httptest.NewRecorder()
		srv.Router().ServeHTTP(rr, req)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("not multipart", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/v1/documents", bytes.NewBufferString("plain"))
		rr := httptest.NewRecorder()
		srv.Router().ServeHTTP(rr, req)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestHandleGetRecord_BadID(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/records/not-a-uuid", nil)
	rr := httptest.NewRecorder()
	srv.Router().ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestParseDateWindow(t *testing.T) {
	t.Run("bad from", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/records?from=yesterday", nil)
		_, _, err := parseDateWindow(req)
		require.Error(t, err)
	})

	t.Run("valid window", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/records?from=2026-01-01&to=2026-02-01", nil)
		from, to, err := parseDateWindow(req)
		require.NoError(t, err)
		require.NotNil(t, from)
		require.NotNil(t, to)
		assert.True(t, from.Before(*to))
	})

	t.Run("empty", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/records", nil)
		from, to, err := parseDateWindow(req)
		require.NoError(t, err)
		assert.Nil(t, from)
		assert.Nil(t, to)
	})
}
