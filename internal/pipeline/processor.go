package pipeline

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/atozflooring/xtracr/internal/pipeline/parsefields"
	"github.com/atozflooring/xtracr/internal/pipeline/textextract"
	"github.com/atozflooring/xtracr/internal/repository"
)

// Processor runs a document through both stages: decode to text, then parse
// the text into a canonical record.
type Processor struct {
	Log    *slog.Logger
	Decode *textextract.Pipeline
	Parse  *parsefields.Pipeline
}

func NewProcessor(decode *textextract.Pipeline, parse *parsefields.Pipeline, log *slog.Logger) *Processor {
	if log == nil {
		log = slog.Default()
	}
	return &Processor{Log: log, Decode: decode, Parse: parse}
}

// Process decodes documentID and parses the result in one pass.
// declaredTemplateID may be empty to let detection pick the template.
func (p *Processor) Process(ctx context.Context, documentID uuid.UUID, declaredTemplateID string) (*repository.Record, error) {
	jobID, _, err := p.Decode.Run(ctx, documentID)
	if err != nil {
		p.Log.Error("process.decode.failed", "document_id", documentID.String(), "error", err)
		return nil, err
	}

	rec, err := p.Parse.Run(ctx, jobID, declaredTemplateID)
	if err != nil {
		p.Log.Error("process.parse.failed", "document_id", documentID.String(), "job_id", jobID.String(), "error", err)
		return nil, err
	}

	p.Log.Info("process.ok", "document_id", documentID.String(), "record_id", rec.ID.String())
	return rec, nil
}
