package textextract

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/atozflooring/xtracr/constants"
	"github.com/atozflooring/xtracr/internal/extract"
	"github.com/atozflooring/xtracr/internal/repository"
)

// Pipeline is stage 1: decode an uploaded document to plain text and persist
// it on an extract job.
type Pipeline struct {
	DocsRepo repository.DocumentRepository
	JobsRepo repository.JobRepository
	Decoder  extract.TextDecoder
	Log      *slog.Logger
}

func NewPipeline(docs repository.DocumentRepository, jobs repository.JobRepository, dec extract.TextDecoder, log *slog.Logger) *Pipeline {
	if log == nil {
		log = slog.Default()
	}
	return &Pipeline{DocsRepo: docs, JobsRepo: jobs, Decoder: dec, Log: log}
}

// Run starts an extract job for documentID, decodes the file, and persists
// the text. The parse stage is NOT called. Returns the job ID and the
// decode summary.
func (p *Pipeline) Run(ctx context.Context, documentID uuid.UUID) (uuid.UUID, extract.DecodeResult, error) {
	doc, err := p.DocsRepo.GetByID(ctx, documentID)
	if err != nil {
		return uuid.Nil, extract.DecodeResult{}, fmt.Errorf("get document: %w", err)
	}

	format := constants.MapExtToFormat(doc.FileExt)
	if format == "" {
		return uuid.Nil, extract.DecodeResult{}, fmt.Errorf("unsupported format: %s", doc.FileExt)
	}

	job, err := p.JobsRepo.Start(ctx, doc.ID, format)
	if err != nil {
		return uuid.Nil, extract.DecodeResult{}, err
	}

	res, err := p.Decoder.Decode(ctx, doc.SourcePath)
	if err != nil {
		_ = p.JobsRepo.FinishFailure(ctx, job.ID, err.Error())
		return job.ID, res, err
	}

	if err := p.JobsRepo.FinishDecodeSuccess(ctx, job.ID, res.Text, res.Method, res.Pages); err != nil {
		return job.ID, res, err
	}
	p.Log.Info("decode.ok",
		"job_id", job.ID.String(),
		"document_id", doc.ID.String(),
		"method", res.Method,
		"pages", res.Pages,
		"chars", len(res.Text),
		"duration_ms", res.Duration.Milliseconds())
	return job.ID, res, nil
}
