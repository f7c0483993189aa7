package extract

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ledongthuc/pdf"

	"github.com/atozflooring/xtracr/constants"
	"github.com/atozflooring/xtracr/internal/common"
)

// FileDecoder decodes local purchase-order files to plain text. PDFs go
// through the pdf text layer; .txt files pass straight through. There is no
// OCR path: a PDF without a text layer decodes to nothing and surfaces as a
// decode failure.
type FileDecoder struct{}

func NewFileDecoder() *FileDecoder { return &FileDecoder{} }

func (d *FileDecoder) Decode(ctx context.Context, path string) (DecodeResult, error) {
	start := time.Now()
	ext := constants.NormalizeExt(filepath.Ext(path))

	data, err := os.ReadFile(path)
	if err != nil {
		return DecodeResult{}, fmt.Errorf("read document: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return DecodeResult{}, err
	}

	switch ext {
	case "txt":
		return DecodeResult{
			Text:     string(data),
			Pages:    1,
			Method:   "txt",
			Duration: time.Since(start),
		}, nil
	case "pdf":
		text, pages, err := decodePDF(data)
		if err != nil {
			return DecodeResult{}, common.NewAppError("DECODE_FAILED", "could not decode PDF text", common.ErrDecode)
		}
		return DecodeResult{
			Text:     text,
			Pages:    pages,
			Method:   "pdf-text",
			Duration: time.Since(start),
		}, nil
	default:
		return DecodeResult{}, common.InvalidInputErrorf("unsupported file extension %q", ext)
	}
}

func decodePDF(data []byte) (string, int, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", 0, fmt.Errorf("open pdf: %w", err)
	}

	var sb strings.Builder
	pages := reader.NumPage()
	for i := 1; i <= pages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			// keep going; a single broken page should not sink the document
			continue
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}

	out := strings.TrimSpace(sb.String())
	if out == "" {
		return "", pages, fmt.Errorf("no text layer in pdf")
	}
	return out, pages, nil
}
