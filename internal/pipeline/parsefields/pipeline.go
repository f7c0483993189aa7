package parsefields

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/atozflooring/xtracr/constants"
	"github.com/atozflooring/xtracr/internal/extract"
	"github.com/atozflooring/xtracr/internal/repository"
)

// Pipeline is stage 2: run the extraction engine over a job's decoded text
// and upsert the canonical record for its document.
type Pipeline struct {
	JobsRepo    repository.JobRepository
	RecordsRepo repository.RecordRepository
	Engine      *extract.Engine
	Log         *slog.Logger
}

func NewPipeline(jobs repository.JobRepository, records repository.RecordRepository, engine *extract.Engine, log *slog.Logger) *Pipeline {
	if log == nil {
		log = slog.Default()
	}
	return &Pipeline{JobsRepo: jobs, RecordsRepo: records, Engine: engine, Log: log}
}

// Run parses jobID's decoded text. The job must be in DECODE_OK.
// declaredTemplateID may be empty; when set it pins the
// template and a detector disagreement is recorded as a mismatch warning.
func (p *Pipeline) Run(ctx context.Context, jobID uuid.UUID, declaredTemplateID string) (*repository.Record, error) {
	job, doc, err := p.JobsRepo.GetWithDocument(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("get job: %w", err)
	}
	if job.Status != constants.JobStatusDecodeOK {
		return nil, fmt.Errorf("job %s not ready for parse: status %s", jobID, job.Status)
	}

	// Empty decoded text is a valid (if useless) input: the engine returns
	// an all-empty record flagged not-extractable rather than failing.
	canonical := p.Engine.Extract(extract.RawDocument{
		Text:     job.DecodedText,
		Filename: doc.Filename,
	}, declaredTemplateID)

	rec, err := p.RecordsRepo.Upsert(ctx, doc.ID, job.ID, &canonical)
	if err != nil {
		_ = p.JobsRepo.FinishFailure(ctx, jobID, err.Error())
		return nil, err
	}
	if err := p.JobsRepo.FinishParseSuccess(ctx, jobID); err != nil {
		return nil, err
	}

	p.Log.Info("parse.ok",
		"job_id", jobID.String(),
		"record_id", rec.ID.String(),
		"template_id", canonical.DetectedTemplateID,
		"score", canonical.DetectionScore,
		"needs_review", canonical.NeedsReview)
	return rec, nil
}
