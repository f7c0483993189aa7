package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/atozflooring/xtracr/internal/common"
	"github.com/atozflooring/xtracr/internal/extract"
)

// Record is a persisted canonical record plus its document linkage. The
// extracted record itself is stored as its JSON form alongside the columns
// the back office filters and exports on.
type Record struct {
	ID             uuid.UUID
	DocumentID     uuid.UUID
	JobID          uuid.UUID
	Filename       string
	Canonical      extract.CanonicalRecord
	NeedsReview    bool
	NotExtractable bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// RecordRepository persists extracted canonical records, one per document.
type RecordRepository interface {
	Upsert(ctx context.Context, documentID, jobID uuid.UUID, rec *extract.CanonicalRecord) (*Record, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Record, error)
	GetByDocumentID(ctx context.Context, documentID uuid.UUID) (*Record, error)
	List(ctx context.Context, from, to *time.Time) ([]*Record, error)
}

type recordRepository struct {
	db *sqlx.DB
}

func NewRecordRepository(db *sqlx.DB) RecordRepository {
	return &recordRepository{db: db}
}

func (r *recordRepository) Upsert(ctx context.Context, documentID, jobID uuid.UUID, rec *extract.CanonicalRecord) (*Record, error) {
	payload, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("marshal record: %w", err)
	}
	now := time.Now().UTC()
	id := uuid.New()

	const query = `
		INSERT INTO records (
			id, document_id, job_id, detected_template_id,
			customer_name, po_number, dollar_value, supervisor_name,
			canonical_json, needs_review, not_extractable, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(document_id) DO UPDATE SET
			job_id = excluded.job_id,
			detected_template_id = excluded.detected_template_id,
			customer_name = excluded.customer_name,
			po_number = excluded.po_number,
			dollar_value = excluded.dollar_value,
			supervisor_name = excluded.supervisor_name,
			canonical_json = excluded.canonical_json,
			needs_review = excluded.needs_review,
			not_extractable = excluded.not_extractable,
			updated_at = excluded.updated_at`
	if _, err := r.db.ExecContext(ctx, query,
		id.String(), documentID.String(), jobID.String(), rec.DetectedTemplateID,
		rec.CustomerName, rec.PONumber, rec.DollarValue, rec.SupervisorName,
		string(payload), rec.NeedsReview, rec.NotExtractable, now, now,
	); err != nil {
		return nil, fmt.Errorf("upsert record: %w", err)
	}
	return r.GetByDocumentID(ctx, documentID)
}

func (r *recordRepository) GetByID(ctx context.Context, id uuid.UUID) (*Record, error) {
	return r.get(ctx, `WHERE r.id = ?`, id.String())
}

func (r *recordRepository) GetByDocumentID(ctx context.Context, documentID uuid.UUID) (*Record, error) {
	return r.get(ctx, `WHERE r.document_id = ?`, documentID.String())
}

const recordSelect = `
	SELECT r.id, r.document_id, r.job_id, r.canonical_json,
	       r.needs_review, r.not_extractable, r.created_at, r.updated_at,
	       d.filename
	FROM records r
	JOIN documents d ON d.id = r.document_id `

type recordRow struct {
	ID             string    `db:"id"`
	DocumentID     string    `db:"document_id"`
	JobID          string    `db:"job_id"`
	CanonicalJSON  string    `db:"canonical_json"`
	NeedsReview    bool      `db:"needs_review"`
	NotExtractable bool      `db:"not_extractable"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
	Filename       string    `db:"filename"`
}

func (r *recordRepository) get(ctx context.Context, where string, arg any) (*Record, error) {
	var row recordRow
	if err := r.db.GetContext(ctx, &row, recordSelect+where, arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NotFoundError(fmt.Sprintf("record for %v", arg))
		}
		return nil, fmt.Errorf("get record: %w", err)
	}
	return rowToRecord(row)
}

func (r *recordRepository) List(ctx context.Context, from, to *time.Time) ([]*Record, error) {
	query := recordSelect + `WHERE 1=1`
	args := make([]any, 0, 2)
	if from != nil {
		query += ` AND r.created_at >= ?`
		args = append(args, from.UTC())
	}
	if to != nil {
		query += ` AND r.created_at < ?`
		args = append(args, to.UTC())
	}
	query += ` ORDER BY r.created_at DESC`

	var rows []recordRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	out := make([]*Record, 0, len(rows))
	for _, row := range rows {
		rec, err := rowToRecord(row)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

func rowToRecord(row recordRow) (*Record, error) {
	id, err := uuid.Parse(row.ID)
	if err != nil {
		return nil, fmt.Errorf("record id: %w", err)
	}
	docID, err := uuid.Parse(row.DocumentID)
	if err != nil {
		return nil, fmt.Errorf("record document id: %w", err)
	}
	jobID, err := uuid.Parse(row.JobID)
	if err != nil {
		return nil, fmt.Errorf("record job id: %w", err)
	}
	rec := &Record{
		ID:             id,
		DocumentID:     docID,
		JobID:          jobID,
		Filename:       row.Filename,
		NeedsReview:    row.NeedsReview,
		NotExtractable: row.NotExtractable,
		CreatedAt:      row.CreatedAt,
		UpdatedAt:      row.UpdatedAt,
	}
	if err := json.Unmarshal([]byte(row.CanonicalJSON), &rec.Canonical); err != nil {
		return nil, fmt.Errorf("decode record json: %w", err)
	}
	return rec, nil
}
