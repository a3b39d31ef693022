package report

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/phrazzld/todo-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubLister struct {
	tasks []domain.Task
	err   error
}

func (s stubLister) List(context.Context) ([]domain.Task, error) {
	return s.tasks, s.err
}

func sampleTasks() []domain.Task {
	created := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	completed := created.Add(time.Hour)
	return []domain.Task{
		{ID: 1, Description: "Buy milk", CreatedAt: created},
		{ID: 2, Description: "Write, then \"quote\"", Completed: true, CreatedAt: created, CompletedAt: &completed},
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input    string
		expected Format
		wantErr  bool
	}{
		{input: "", expected: FormatJSON},
		{input: "json", expected: FormatJSON},
		{input: "CSV", expected: FormatCSV},
		{input: " pdf ", expected: FormatPDF},
		{input: "xml", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			got, err := ParseFormat(tc.input)
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrUnsupportedFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestFormatContentType(t *testing.T) {
	assert.Equal(t, "application/json", FormatJSON.ContentType())
	assert.Equal(t, "text/csv", FormatCSV.ContentType())
	assert.Equal(t, "application/pdf", FormatPDF.ContentType())
}

func TestExporter_JSON(t *testing.T) {
	doc, err := NewExporter(stubLister{tasks: sampleTasks()}).Export(context.Background(), "json")
	require.NoError(t, err)

	assert.Equal(t, FormatJSON, doc.Format)
	assert.Equal(t, "tasks.json", doc.Filename)

	var decoded []domain.Task
	require.NoError(t, json.Unmarshal(doc.Body, &decoded))
	assert.Equal(t, sampleTasks(), decoded)
}

func TestExporter_JSONEmpty(t *testing.T) {
	doc, err := NewExporter(stubLister{tasks: []domain.Task{}}).Export(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "[]", string(doc.Body))
}

func TestExporter_CSV(t *testing.T) {
	doc, err := NewExporter(stubLister{tasks: sampleTasks()}).Export(context.Background(), "csv")
	require.NoError(t, err)
	assert.Equal(t, "tasks.csv", doc.Filename)

	records, err := csv.NewReader(bytes.NewReader(doc.Body)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, csvHeader, records[0])
	assert.Equal(t, []string{"1", "Buy milk", "false", "2026-03-01T09:00:00Z", ""}, records[1])
	assert.Equal(t, []string{"2", "Write, then \"quote\"", "true", "2026-03-01T09:00:00Z", "2026-03-01T10:00:00Z"}, records[2])
}

func TestExporter_PDF(t *testing.T) {
	exporter := NewExporter(stubLister{tasks: sampleTasks()})
	exporter.now = func() time.Time { return time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC) }

	doc, err := exporter.Export(context.Background(), "pdf")
	require.NoError(t, err)

	assert.Equal(t, FormatPDF, doc.Format)
	assert.True(t, bytes.HasPrefix(doc.Body, []byte("%PDF-")), "body should be a PDF document")
}

func TestExporter_Errors(t *testing.T) {
	t.Run("unknown format", func(t *testing.T) {
		doc, err := NewExporter(stubLister{}).Export(context.Background(), "xml")
		assert.Nil(t, doc)
		assert.ErrorIs(t, err, ErrUnsupportedFormat)
	})

	t.Run("list failure", func(t *testing.T) {
		listErr := errors.New("store unavailable")
		doc, err := NewExporter(stubLister{err: listErr}).Export(context.Background(), "csv")
		assert.Nil(t, doc)
		assert.ErrorIs(t, err, listErr)
	})
}
