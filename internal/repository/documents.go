package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/atozflooring/xtracr/internal/common"
)

// Document is one uploaded purchase-order file.
type Document struct {
	ID         uuid.UUID `db:"id"`
	Filename   string    `db:"filename"`
	SourcePath string    `db:"source_path"`
	FileExt    string    `db:"file_ext"`
	UploadedAt time.Time `db:"uploaded_at"`
}

// DocumentRepository persists uploaded documents.
type DocumentRepository interface {
	Create(ctx context.Context, filename, sourcePath, fileExt string) (*Document, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Document, error)
}

type documentRepository struct {
	db *sqlx.DB
}

func NewDocumentRepository(db *sqlx.DB) DocumentRepository {
	return &documentRepository{db: db}
}

func (r *documentRepository) Create(ctx context.Context, filename, sourcePath, fileExt string) (*Document, error) {
	doc := &Document{
		ID:         uuid.New(),
		Filename:   filename,
		SourcePath: sourcePath,
		FileExt:    fileExt,
		UploadedAt: time.Now().UTC(),
	}
	const query = `
		INSERT INTO documents (id, filename, source_path, file_ext, uploaded_at)
		VALUES (?, ?, ?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, query,
		doc.ID.String(), doc.Filename, doc.SourcePath, doc.FileExt, doc.UploadedAt,
	); err != nil {
		return nil, fmt.Errorf("insert document: %w", err)
	}
	return doc, nil
}

func (r *documentRepository) GetByID(ctx context.Context, id uuid.UUID) (*Document, error) {
	var row struct {
		ID         string    `db:"id"`
		Filename   string    `db:"filename"`
		SourcePath string    `db:"source_path"`
		FileExt    string    `db:"file_ext"`
		UploadedAt time.Time `db:"uploaded_at"`
	}
	const query = `
		SELECT id, filename, source_path, file_ext, uploaded_at
		FROM documents WHERE id = ?`
	if err := r.db.GetContext(ctx, &row, query, id.String()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NotFoundError(fmt.Sprintf("document %s", id))
		}
		return nil, fmt.Errorf("get document: %w", err)
	}
	parsed, err := uuid.Parse(row.ID)
	if err != nil {
		return nil, fmt.Errorf("document id: %w", err)
	}
	return &Document{
		ID:         parsed,
		Filename:   row.Filename,
		SourcePath: row.SourcePath,
		FileExt:    row.FileExt,
		UploadedAt: row.UploadedAt,
	}, nil
}
