package pipeline

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atozflooring/xtracr/constants"
	"github.com/atozflooring/xtracr/internal/extract"
	"github.com/atozflooring/xtracr/internal/pipeline/parsefields"
	"github.com/atozflooring/xtracr/internal/pipeline/textextract"
	"github.com/atozflooring/xtracr/internal/repository"
	"github.com/atozflooring/xtracr/internal/template"
)

const sampleDoc = `Ambrose Construct Group
Purchase Order 20123456-01
Insured Owner/Customer: Jane Smith
Address: 12 High St, HOPE ISLAND QLD 4212
Total: $5,808.00
`

type fakeDocs struct {
	docs map[uuid.UUID]*repository.Document
}

func (f *fakeDocs) Create(ctx context.Context, filename, sourcePath, fileExt string) (*repository.Document, error) {
	doc := &repository.Document{ID: uuid.New(), Filename: filename, SourcePath: sourcePath, FileExt: fileExt, UploadedAt: time.Now()}
	f.docs[doc.ID] = doc
	return doc, nil
}

func (f *fakeDocs) GetByID(ctx context.Context, id uuid.UUID) (*repository.Document, error) {
	doc, ok := f.docs[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return doc, nil
}

type fakeJobs struct {
	jobs map[uuid.UUID]*repository.ExtractJob
	docs *fakeDocs
}

func (f *fakeJobs) Start(ctx context.Context, documentID uuid.UUID, format string) (*repository.ExtractJob, error) {
	job := &repository.ExtractJob{ID: uuid.New(), DocumentID: documentID, Format: format, Status: constants.JobStatusRunning}
	f.jobs[job.ID] = job
	return job, nil
}

func (f *fakeJobs) GetWithDocument(ctx context.Context, id uuid.UUID) (*repository.ExtractJob, *repository.Document, error) {
	job, ok := f.jobs[id]
	if !ok {
		return nil, nil, errors.New("job not found")
	}
	doc, err := f.docs.GetByID(ctx, job.DocumentID)
	if err != nil {
		return nil, nil, err
	}
	return job, doc, nil
}

func (f *fakeJobs) FinishDecodeSuccess(ctx context.Context, id uuid.UUID, text, method string, pages int) error {
	j := f.jobs[id]
	j.Status = constants.JobStatusDecodeOK
	j.DecodedText = text
	j.Method = method
	j.Pages = pages
	return nil
}

func (f *fakeJobs) FinishParseSuccess(ctx context.Context, id uuid.UUID) error {
	f.jobs[id].Status = constants.JobStatusParseOK
	return nil
}

func (f *fakeJobs) FinishFailure(ctx context.Context, id uuid.UUID, errMsg string) error {
	j := f.jobs[id]
	j.Status = constants.JobStatusFailed
	j.Error = errMsg
	return nil
}

type fakeRecords struct {
	byDoc map[uuid.UUID]*repository.Record
}

func (f *fakeRecords) Upsert(ctx context.Context, documentID, jobID uuid.UUID, rec *extract.CanonicalRecord) (*repository.Record, error) {
	row, ok := f.byDoc[documentID]
	if !ok {
		row = &repository.Record{ID: uuid.New(), DocumentID: documentID}
	}
	row.JobID = jobID
	row.Canonical = *rec
	row.NeedsReview = rec.NeedsReview
	row.NotExtractable = rec.NotExtractable
	f.byDoc[documentID] = row
	return row, nil
}

func (f *fakeRecords) GetByID(ctx context.Context, id uuid.UUID) (*repository.Record, error) {
	for _, r := range f.byDoc {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, errors.New("not found")
}

func (f *fakeRecords) GetByDocumentID(ctx context.Context, documentID uuid.UUID) (*repository.Record, error) {
	r, ok := f.byDoc[documentID]
	if !ok {
		return nil, errors.New("not found")
	}
	return r, nil
}

func (f *fakeRecords) List(ctx context.Context, from, to *time.Time) ([]*repository.Record, error) {
	out := make([]*repository.Record, 0, len(f.byDoc))
	for _, r := range f.byDoc {
		out = append(out, r)
	}
	return out, nil
}

type fakeDecoder struct {
	text string
	err  error
}

func (f *fakeDecoder) Decode(ctx context.Context, path string) (extract.DecodeResult, error) {
	if f.err != nil {
		return extract.DecodeResult{}, f.err
	}
	return extract.DecodeResult{Text: f.text, Pages: 1, Method: "txt"}, nil
}

func newTestProcessor(t *testing.T, dec extract.TextDecoder) (*Processor, *fakeDocs, *fakeJobs, *fakeRecords) {
	t.Helper()
	reg, err := template.Builtin()
	require.NoError(t, err)

	docs := &fakeDocs{docs: make(map[uuid.UUID]*repository.Document)}
	jobs := &fakeJobs{jobs: make(map[uuid.UUID]*repository.ExtractJob), docs: docs}
	records := &fakeRecords{byDoc: make(map[uuid.UUID]*repository.Record)}

	engine := extract.NewEngine(reg, nil)
	decode := textextract.NewPipeline(docs, jobs, dec, nil)
	parse := parsefields.NewPipeline(jobs, records, engine, nil)
	return NewProcessor(decode, parse, nil), docs, jobs, records
}

func TestProcessor_Process(t *testing.T) {
	proc, docs, jobs, records := newTestProcessor(t, &fakeDecoder{text: sampleDoc})

	doc, err := docs.Create(context.Background(), "po.txt", "/tmp/po.txt", "txt")
	require.NoError(t, err)

	rec, err := proc.Process(context.Background(), doc.ID, "")
	require.NoError(t, err)

	assert.Equal(t, "20123456-01", rec.Canonical.PONumber)
	assert.Equal(t, "ambrose", rec.Canonical.DetectedTemplateID)
	assert.False(t, rec.NeedsReview)

	require.Len(t, jobs.jobs, 1)
	for _, j := range jobs.jobs {
		assert.Equal(t, constants.JobStatusParseOK, j.Status)
		assert.Equal(t, sampleDoc, j.DecodedText)
	}

	stored, err := records.GetByDocumentID(context.Background(), doc.ID)
	require.NoError(t, err)
	assert.Equal(t, rec.ID, stored.ID)
}

func TestProcessor_Process_Reprocess(t *testing.T) {
	proc, docs, _, records := newTestProcessor(t, &fakeDecoder{text: sampleDoc})

	doc, err := docs.Create(context.Background(), "po.txt", "/tmp/po.txt", "txt")
	require.NoError(t, err)

	first, err := proc.Process(context.Background(), doc.ID, "")
	require.NoError(t, err)
	second, err := proc.Process(context.Background(), doc.ID, "")
	require.NoError(t, err)

	// one record per document, refreshed in place
	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, records.byDoc, 1)
}

func TestProcessor_Process_EmptyText(t *testing.T) {
	// a decode can legitimately yield no text (blank txt upload, image-only
	// pdf); that is a not-extractable record, not a failed job
	proc, docs, jobs, _ := newTestProcessor(t, &fakeDecoder{text: ""})

	doc, err := docs.Create(context.Background(), "blank.txt", "/tmp/blank.txt", "txt")
	require.NoError(t, err)

	rec, err := proc.Process(context.Background(), doc.ID, "")
	require.NoError(t, err)

	assert.True(t, rec.NotExtractable)
	assert.True(t, rec.NeedsReview)
	assert.Empty(t, rec.Canonical.PONumber)

	require.Len(t, jobs.jobs, 1)
	for _, j := range jobs.jobs {
		assert.Equal(t, constants.JobStatusParseOK, j.Status)
	}
}

func TestProcessor_Process_DecodeFailure(t *testing.T) {
	proc, docs, jobs, _ := newTestProcessor(t, &fakeDecoder{err: errors.New("unreadable pdf")})

	doc, err := docs.Create(context.Background(), "po.pdf", "/tmp/po.pdf", "pdf")
	require.NoError(t, err)

	_, err = proc.Process(context.Background(), doc.ID, "")
	require.Error(t, err)

	require.Len(t, jobs.jobs, 1)
	for _, j := range jobs.jobs {
		assert.Equal(t, constants.JobStatusFailed, j.Status)
		assert.Contains(t, j.Error, "unreadable pdf")
	}
}

func TestProcessor_Process_UnknownDocument(t *testing.T) {
	proc, _, _, _ := newTestProcessor(t, &fakeDecoder{text: sampleDoc})
	_, err := proc.Process(context.Background(), uuid.New(), "")
	require.Error(t, err)
}
