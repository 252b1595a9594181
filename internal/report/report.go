// Package report turns record lists into downloadable PDF and XLSX reports:
// a formatted table plus a metadata block describing when and how it was
// produced.
package report

import (
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"
)

// Row is one record keyed by column key. Nested relations use dotted keys,
// e.g. "personal.nombres".
type Row map[string]any

// Column describes one report column. The title is Label, else Header,
// else Key. Format, when set, replaces the raw value.
type Column struct {
	Key    string
	Label  string
	Header string
	Format func(any) string
}

func (c Column) Title() string {
	switch {
	case c.Label != "":
		return c.Label
	case c.Header != "":
		return c.Header
	}
	return c.Key
}

// Table is the formatted content of a report.
type Table struct {
	Headers []string
	Rows    [][]any
}

// Format builds the header row and one cell slice per row, each with exactly
// one cell per column. Missing or nil values become "".
func Format(rows []Row, columns []Column) Table {
	t := Table{
		Headers: make([]string, len(columns)),
		Rows:    make([][]any, len(rows)),
	}
	for i, c := range columns {
		t.Headers[i] = c.Title()
	}
	for r, row := range rows {
		cells := make([]any, len(columns))
		for i, c := range columns {
			v := row[c.Key]
			switch {
			case c.Format != nil:
				cells[i] = c.Format(v)
			case v == nil:
				cells[i] = ""
			default:
				cells[i] = v
			}
		}
		t.Rows[r] = cells
	}
	return t
}

// Filter is one applied filter as shown in the report metadata.
type Filter struct {
	Key   string
	Value any
}

const NoFilters = "Ninguno"

// DescribeFilters renders "key: value" for every filter with a non-empty
// value, joined by ", ", or NoFilters when none apply.
func DescribeFilters(filters []Filter) string {
	parts := make([]string, 0, len(filters))
	for _, f := range filters {
		if f.Value == nil {
			continue
		}
		v := CellText(f.Value)
		if v == "" {
			continue
		}
		parts = append(parts, f.Key+": "+v)
	}
	if len(parts) == 0 {
		return NoFilters
	}
	return strings.Join(parts, ", ")
}

// Kind selects the output document type.
type Kind string

const (
	PDF   Kind = "pdf"
	Excel Kind = "excel"
)

// ParseKind accepts pdf, excel and xlsx; blank means PDF.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "pdf":
		return PDF, nil
	case "excel", "xlsx":
		return Excel, nil
	}
	return "", fmt.Errorf("unsupported report format %q", s)
}

func (k Kind) Extension() string {
	if k == Excel {
		return "xlsx"
	}
	return "pdf"
}

func (k Kind) ContentType() string {
	if k == Excel {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "application/pdf"
}

var whitespace = regexp.MustCompile(`\s+`)

// FileName is the title with whitespace runs replaced by "_", followed by
// the UTC date and the extension.
func FileName(title string, kind Kind, now time.Time) string {
	return fmt.Sprintf("%s_%s.%s", whitespace.ReplaceAllString(title, "_"), now.UTC().Format(time.DateOnly), kind.Extension())
}

// Metadata is printed after the PDF table and on the XLSX info sheet.
type Metadata struct {
	GeneratedAt  time.Time
	GeneratedBy  string
	Filters      string
	TotalRecords int
}

const (
	DefaultGeneratedBy = "Sistema SGSC"
	timestampLayout    = "02/01/2006 15:04:05"
)

// Document is everything a writer needs to render a report.
type Document struct {
	Title string
	Table
	Metadata
}

// Generator renders reports. It is safe for concurrent use.
type Generator struct {
	now         func() time.Time
	generatedBy string
	location    *time.Location
}

type Option func(*Generator)

func WithClock(now func() time.Time) Option {
	return func(g *Generator) { g.now = now }
}

func WithGeneratedBy(name string) Option {
	return func(g *Generator) { g.generatedBy = name }
}

// WithLocation sets the zone of the generation timestamp.
func WithLocation(loc *time.Location) Option {
	return func(g *Generator) { g.location = loc }
}

func NewGenerator(opts ...Option) *Generator {
	g := &Generator{now: time.Now, generatedBy: DefaultGeneratedBy, location: time.Local}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Build formats rows and assembles the document without rendering it.
func (g *Generator) Build(title string, rows []Row, columns []Column, filters []Filter) Document {
	return Document{
		Title: title,
		Table: Format(rows, columns),
		Metadata: Metadata{
			GeneratedAt:  g.now().In(g.location),
			GeneratedBy:  g.generatedBy,
			Filters:      DescribeFilters(filters),
			TotalRecords: len(rows),
		},
	}
}

// Generate writes the report to w and returns the download file name.
// Formatter panics are not recovered.
func (g *Generator) Generate(w io.Writer, title string, rows []Row, columns []Column, filters []Filter, kind Kind) (string, error) {
	doc := g.Build(title, rows, columns, filters)
	var err error
	switch kind {
	case PDF:
		err = WritePDF(w, doc)
	case Excel:
		err = WriteXLSX(w, doc)
	default:
		err = fmt.Errorf("unsupported report format %q", kind)
	}
	if err != nil {
		return "", fmt.Errorf("generate %s report %q: %w", kind, title, err)
	}
	return FileName(title, kind, g.now()), nil
}
