package export

import (
	"bytes"
	"context"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/atozflooring/xtracr/internal/extract"
	"github.com/atozflooring/xtracr/internal/repository"
)

type stubRecords struct {
	recs []*repository.Record
	from *time.Time
	to   *time.Time
}

func (s *stubRecords) Upsert(ctx context.Context, documentID, jobID uuid.UUID, rec *extract.CanonicalRecord) (*repository.Record, error) {
	panic("not used")
}

func (s *stubRecords) GetByID(ctx context.Context, id uuid.UUID) (*repository.Record, error) {
	panic("not used")
}

func (s *stubRecords) GetByDocumentID(ctx context.Context, documentID uuid.UUID) (*repository.Record, error) {
	panic("not used")
}

func (s *stubRecords) List(ctx context.Context, from, to *time.Time) ([]*repository.Record, error) {
	s.from, s.to = from, to
	return s.recs, nil
}

func TestExportRecordsXLSX(t *testing.T) {
	created := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	stub := &stubRecords{recs: []*repository.Record{{
		ID:       uuid.New(),
		Filename: "po.pdf",
		Canonical: extract.CanonicalRecord{
			CustomerName:       "Jane Smith",
			PONumber:           "20123456-01",
			DollarValue:        "5808.00",
			Address1:           "12 High St",
			City:               "HOPE ISLAND",
			State:              "QLD",
			Zip:                "4212",
			DetectedTemplateID: "ambrose",
		},
		NeedsReview: false,
		CreatedAt:   created,
	}}}

	svc := NewService(stub, nil)
	data, err := svc.ExportRecordsXLSX(context.Background(), nil, nil)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	got, err := f.GetCellValue("Orders", "B1")
	require.NoError(t, err)
	assert.Equal(t, "PO Number", got)

	got, err = f.GetCellValue("Orders", "B2")
	require.NoError(t, err)
	assert.Equal(t, "20123456-01", got)

	got, err = f.GetCellValue("Orders", "E2")
	require.NoError(t, err)
	assert.Equal(t, "12 High St, HOPE ISLAND, QLD, 4212", got)

	got, err = f.GetCellValue("Orders", "A2")
	require.NoError(t, err)
	assert.Equal(t, "2026-08-01", got)
}

func TestExportRecordsXLSX_DateNormalization(t *testing.T) {
	stub := &stubRecords{}
	svc := NewService(stub, nil)

	from := time.Date(2026, 8, 15, 13, 45, 0, 0, time.UTC)
	_, err := svc.ExportRecordsXLSX(context.Background(), &from, nil)
	require.NoError(t, err)

	// from is truncated to midnight; a missing to becomes today
	require.NotNil(t, stub.from)
	assert.Equal(t, time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC), *stub.from)
	require.NotNil(t, stub.to)
	assert.Equal(t, 0, stub.to.Hour())
}

func TestExportRecordsXLSX_Empty(t *testing.T) {
	svc := NewService(&stubRecords{}, nil)
	data, err := svc.ExportRecordsXLSX(context.Background(), nil, nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	got, err := f.GetCellValue("Orders", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Created", got)
}

func TestTruncate(t *testing.T) {
	cases := []struct {
		in   string
		n    int
		want string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"elevenchars", 10, "elevencha…"},
		{"unlimited", 0, "unlimited"},
		// rune-wise cut: a multibyte character is never split
		{"6m² vinyl to wet areas", 5, "6m² …"},
		{"日本語のテキスト", 4, "日本語…"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, truncate(tc.in, tc.n), "input %q n=%d", tc.in, tc.n)
		assert.True(t, utf8.ValidString(truncate(tc.in, tc.n)))
	}
}
