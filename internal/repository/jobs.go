package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/atozflooring/xtracr/constants"
	"github.com/atozflooring/xtracr/internal/common"
)

// ExtractJob tracks one document through decode and parse.
type ExtractJob struct {
	ID          uuid.UUID
	DocumentID  uuid.UUID
	Format      string
	Status      constants.JobStatus
	DecodedText string
	Pages       int
	Method      string
	Error       string
	StartedAt   time.Time
	FinishedAt  *time.Time
}

// JobRepository persists extract jobs.
type JobRepository interface {
	Start(ctx context.Context, documentID uuid.UUID, format string) (*ExtractJob, error)
	GetWithDocument(ctx context.Context, id uuid.UUID) (*ExtractJob, *Document, error)
	FinishDecodeSuccess(ctx context.Context, id uuid.UUID, text, method string, pages int) error
	FinishParseSuccess(ctx context.Context, id uuid.UUID) error
	FinishFailure(ctx context.Context, id uuid.UUID, errMsg string) error
}

type jobRepository struct {
	db *sqlx.DB
}

func NewJobRepository(db *sqlx.DB) JobRepository {
	return &jobRepository{db: db}
}

func (r *jobRepository) Start(ctx context.Context, documentID uuid.UUID, format string) (*ExtractJob, error) {
	job := &ExtractJob{
		ID:         uuid.New(),
		DocumentID: documentID,
		Format:     format,
		Status:     constants.JobStatusRunning,
		StartedAt:  time.Now().UTC(),
	}
	const query = `
		INSERT INTO extract_jobs (id, document_id, format, status, started_at)
		VALUES (?, ?, ?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, query,
		job.ID.String(), job.DocumentID.String(), job.Format, string(job.Status), job.StartedAt,
	); err != nil {
		return nil, fmt.Errorf("insert job: %w", err)
	}
	return job, nil
}

func (r *jobRepository) GetWithDocument(ctx context.Context, id uuid.UUID) (*ExtractJob, *Document, error) {
	var row struct {
		ID          string       `db:"id"`
		DocumentID  string       `db:"document_id"`
		Format      string       `db:"format"`
		Status      string       `db:"status"`
		DecodedText string       `db:"decoded_text"`
		Pages       int          `db:"pages"`
		Method      string       `db:"method"`
		Error       string       `db:"error"`
		StartedAt   time.Time    `db:"started_at"`
		FinishedAt  sql.NullTime `db:"finished_at"`

		Filename   string    `db:"filename"`
		SourcePath string    `db:"source_path"`
		FileExt    string    `db:"file_ext"`
		UploadedAt time.Time `db:"uploaded_at"`
	}
	const query = `
		SELECT j.id, j.document_id, j.format, j.status,
		       COALESCE(j.decoded_text, '') AS decoded_text,
		       COALESCE(j.pages, 0) AS pages,
		       COALESCE(j.method, '') AS method,
		       COALESCE(j.error, '') AS error,
		       j.started_at, j.finished_at,
		       d.filename, d.source_path, d.file_ext, d.uploaded_at
		FROM extract_jobs j
		JOIN documents d ON d.id = j.document_id
		WHERE j.id = ?`
	if err := r.db.GetContext(ctx, &row, query, id.String()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, common.NotFoundError(fmt.Sprintf("job %s", id))
		}
		return nil, nil, fmt.Errorf("get job: %w", err)
	}

	jobID, err := uuid.Parse(row.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("job id: %w", err)
	}
	docID, err := uuid.Parse(row.DocumentID)
	if err != nil {
		return nil, nil, fmt.Errorf("job document id: %w", err)
	}

	job := &ExtractJob{
		ID:          jobID,
		DocumentID:  docID,
		Format:      row.Format,
		Status:      constants.JobStatus(row.Status),
		DecodedText: row.DecodedText,
		Pages:       row.Pages,
		Method:      row.Method,
		Error:       row.Error,
		StartedAt:   row.StartedAt,
	}
	if row.FinishedAt.Valid {
		t := row.FinishedAt.Time
		job.FinishedAt = &t
	}
	doc := &Document{
		ID:         docID,
		Filename:   row.Filename,
		SourcePath: row.SourcePath,
		FileExt:    row.FileExt,
		UploadedAt: row.UploadedAt,
	}
	return job, doc, nil
}

func (r *jobRepository) FinishDecodeSuccess(ctx context.Context, id uuid.UUID, text, method string, pages int) error {
	const query = `
		UPDATE extract_jobs
		SET status = ?, decoded_text = ?, method = ?, pages = ?
		WHERE id = ?`
	return r.exec(ctx, query, string(constants.JobStatusDecodeOK), text, method, pages, id.String())
}

func (r *jobRepository) FinishParseSuccess(ctx context.Context, id uuid.UUID) error {
	const query = `
		UPDATE extract_jobs SET status = ?, finished_at = ? WHERE id = ?`
	return r.exec(ctx, query, string(constants.JobStatusParseOK), time.Now().UTC(), id.String())
}

func (r *jobRepository) FinishFailure(ctx context.Context, id uuid.UUID, errMsg string) error {
	const query = `
		UPDATE extract_jobs SET status = ?, error = ?, finished_at = ? WHERE id = ?`
	return r.exec(ctx, query, string(constants.JobStatusFailed), errMsg, time.Now().UTC(), id.String())
}

func (r *jobRepository) exec(ctx context.Context, query string, args ...any) error {
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update job: %w", err)
	}
	return nil
}
