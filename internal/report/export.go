// Package report renders snapshots of the task list as downloadable documents.
package report

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/phrazzld/todo-api/internal/domain"
)

// ErrUnsupportedFormat is returned when an export is requested in an unknown format.
var ErrUnsupportedFormat = errors.New("unsupported export format")

// Format identifies an export encoding.
type Format string

// Supported export formats.
const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatPDF  Format = "pdf"
)

// ParseFormat resolves a case-insensitive format name. An empty name selects JSON.
func ParseFormat(name string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(name))) {
	case "", FormatJSON:
		return FormatJSON, nil
	case FormatCSV:
		return FormatCSV, nil
	case FormatPDF:
		return FormatPDF, nil
	default:
		return "", fmt.Errorf("%w: %q (want json, csv or pdf)", ErrUnsupportedFormat, name)
	}
}

// ContentType returns the MIME type of documents in this format.
func (f Format) ContentType() string {
	switch f {
	case FormatCSV:
		return "text/csv"
	case FormatPDF:
		return "application/pdf"
	default:
		return "application/json"
	}
}

// Document is a rendered export.
type Document struct {
	Format   Format
	Filename string
	Body     []byte
}

// TaskLister supplies the tasks to export.
type TaskLister interface {
	List(ctx context.Context) ([]domain.Task, error)
}

// Exporter renders the current task list.
type Exporter struct {
	tasks TaskLister
	now   func() time.Time
}

// NewExporter creates an Exporter reading from tasks.
func NewExporter(tasks TaskLister) *Exporter {
	return &Exporter{tasks: tasks, now: time.Now}
}

// Export renders a snapshot of all tasks in the named format.
func (e *Exporter) Export(ctx context.Context, formatName string) (*Document, error) {
	format, err := ParseFormat(formatName)
	if err != nil {
		return nil, err
	}

	tasks, err := e.tasks.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks for export: %w", err)
	}

	var body []byte
	switch format {
	case FormatCSV:
		body, err = renderCSV(tasks)
	case FormatPDF:
		body, err = renderPDF(tasks, e.now())
	default:
		body, err = json.MarshalIndent(tasks, "", "  ")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to render %s export: %w", format, err)
	}

	return &Document{
		Format:   format,
		Filename: "tasks." + string(format),
		Body:     body,
	}, nil
}

var csvHeader = []string{"id", "description", "completed", "created_at", "completed_at"}

func renderCSV(tasks []domain.Task) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}
	for _, t := range tasks {
		completedAt := ""
		if t.CompletedAt != nil {
			completedAt = t.CompletedAt.Format(time.RFC3339)
		}
		record := []string{
			strconv.Itoa(t.ID),
			t.Description,
			strconv.FormatBool(t.Completed),
			t.CreatedAt.Format(time.RFC3339),
			completedAt,
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func renderPDF(tasks []domain.Task, generatedAt time.Time) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(40, 10, "Task Report")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 9)
	pdf.Cell(40, 6, fmt.Sprintf("Generated %s, %d task(s)", generatedAt.UTC().Format(time.RFC3339), len(tasks)))
	pdf.Ln(10)

	pdf.SetFont("Arial", "", 10)
	for _, t := range tasks {
		status := "open"
		if t.Completed {
			status = "done"
			if t.CompletedAt != nil {
				status = "done " + t.CompletedAt.Format(time.RFC3339)
			}
		}
		line := fmt.Sprintf("#%d [%s] %s", t.ID, status, t.Description)
		pdf.MultiCell(0, 6, tr(line), "0", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
