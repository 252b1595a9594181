package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

var fixedNow = time.Date(2024, 5, 1, 14, 30, 5, 0, time.UTC)

func TestFormatAppliesFormatters(t *testing.T) {
	t.Parallel()

	rows := []Row{{"a": 1, "b": "x"}}
	columns := []Column{
		{Key: "a"},
		{Key: "b", Format: func(v any) string { return "#" + v.(string) }},
	}

	got := Format(rows, columns)
	assert.Equal(t, []string{"a", "b"}, got.Headers)
	assert.Equal(t, [][]any{{1, "#x"}}, got.Rows)
}

func TestFormatShape(t *testing.T) {
	t.Parallel()

	rows := []Row{
		{"dni": "12345678", "nombres": "Ana", "extra": true},
		{"dni": "87654321"},
		{},
	}
	columns := []Column{
		{Key: "dni", Label: "DNI", Header: "ignored"},
		{Key: "nombres", Header: "Nombres"},
		{Key: "estado", Format: Status},
	}

	got := Format(rows, columns)
	assert.Equal(t, []string{"DNI", "Nombres", "estado"}, got.Headers)
	require.Len(t, got.Rows, len(rows))
	for _, row := range got.Rows {
		assert.Len(t, row, len(columns))
	}
	assert.Equal(t, []any{"87654321", "", ""}, got.Rows[1])
}

func TestFormatPropagatesFormatterPanic(t *testing.T) {
	t.Parallel()

	columns := []Column{{Key: "n", Format: func(v any) string { return v.(string) }}}
	assert.Panics(t, func() { Format([]Row{{"n": 5}}, columns) })
}

func TestDescribeFilters(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		filters []Filter
		want    string
	}{
		{name: "none", filters: nil, want: "Ninguno"},
		{name: "all empty", filters: []Filter{{Key: "fecha", Value: ""}, {Key: "sector", Value: nil}}, want: "Ninguno"},
		{
			name: "keeps order and skips empty",
			filters: []Filter{
				{Key: "fecha", Value: "2024-05-01"},
				{Key: "turno", Value: ""},
				{Key: "sector", Value: "Centro"},
			},
			want: "fecha: 2024-05-01, sector: Centro",
		},
		{name: "non string values", filters: []Filter{{Key: "limite", Value: 5}, {Key: "activo", Value: false}}, want: "limite: 5, activo: false"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, DescribeFilters(tt.filters))
		})
	}
}

func TestColumnWidths(t *testing.T) {
	t.Parallel()

	table := Table{
		Headers: []string{"ID", "Descripción", "Nombre"},
		Rows: [][]any{
			{1, strings.Repeat("x", 80), "Ana"},
			{22, "corta", "Bartolomé Ñañez"},
		},
	}
	// "ID" -> clamp(2+2) = 10, long text -> 50, "Bartolomé Ñañez" (15 runes) -> 17.
	assert.Equal(t, []int{10, 50, 17}, ColumnWidths(table))
}

func TestFileName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Reporte_de_Personal_2024-05-01.pdf", FileName("Reporte de  Personal", PDF, fixedNow))
	assert.Equal(t, "Vouchers_2024-05-01.xlsx", FileName("Vouchers", Excel, fixedNow))
	assert.Equal(t, "Reporte_Diario_2024-05-01.pdf", FileName("Reporte\tDiario", PDF, fixedNow))
}

func TestParseKind(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]Kind{"": PDF, "pdf": PDF, "PDF": PDF, "excel": Excel, "xlsx": Excel} {
		got, err := ParseKind(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseKind("csv")
	assert.Error(t, err)
}

func sampleReport() ([]Row, []Column, []Filter) {
	rows := []Row{
		{"fecha": "2024-05-01", "descripcion": "Robo al paso en la plaza de armas", "estado": "pendiente", "monto": "1234.5"},
		{"fecha": "2024-05-02", "descripcion": "Accidente de tránsito", "estado": "derivado_pnp", "monto": 20},
	}
	columns := []Column{
		{Key: "fecha", Label: "Fecha", Format: Date},
		{Key: "descripcion", Label: "Descripción"},
		{Key: "estado", Label: "Estado", Format: Status},
		{Key: "monto", Label: "Monto", Format: Currency},
	}
	filters := []Filter{{Key: "estado", Value: "pendiente"}, {Key: "sector", Value: ""}}
	return rows, columns, filters
}

func TestGenerateExcel(t *testing.T) {
	t.Parallel()

	rows, columns, filters := sampleReport()
	g := NewGenerator(WithClock(func() time.Time { return fixedNow }), WithLocation(time.UTC))

	var buf bytes.Buffer
	name, err := g.Generate(&buf, "Reporte de Incidencias", rows, columns, filters, Excel)
	require.NoError(t, err)
	assert.Equal(t, "Reporte_de_Incidencias_2024-05-01.xlsx", name)

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{DataSheet, InfoSheet}, f.GetSheetList())

	data, err := f.GetRows(DataSheet)
	require.NoError(t, err)
	require.Len(t, data, 3)
	assert.Equal(t, []string{"Fecha", "Descripción", "Estado", "Monto"}, data[0])
	assert.Equal(t, []string{"01/05/2024", "Robo al paso en la plaza de armas", "Pendiente", "S/ 1,234.50"}, data[1])
	assert.Equal(t, []string{"02/05/2024", "Accidente de tránsito", "Derivado PNP", "S/ 20.00"}, data[2])

	width, err := f.GetColWidth(DataSheet, "B")
	require.NoError(t, err)
	assert.Equal(t, float64(35), width)

	style, err := f.GetCellStyle(DataSheet, "A1")
	require.NoError(t, err)
	assert.NotZero(t, style)

	info, err := f.GetRows(InfoSheet)
	require.NoError(t, err)
	require.Len(t, info, 6)
	assert.Equal(t, []string{"Título", "Reporte de Incidencias"}, info[1])
	assert.Equal(t, []string{"Fecha de generación", "01/05/2024 14:30:05"}, info[2])
	assert.Equal(t, []string{"Generado por", "Sistema SGSC"}, info[3])
	assert.Equal(t, []string{"Filtros aplicados", "estado: pendiente"}, info[4])
	assert.Equal(t, []string{"Total de registros", "2"}, info[5])
}

func TestGeneratePDF(t *testing.T) {
	t.Parallel()

	rows, columns, filters := sampleReport()
	for i := 0; i < 120; i++ {
		rows = append(rows, Row{"fecha": "2024-05-03", "descripcion": "Ronda preventiva", "estado": "resuelto", "monto": i})
	}
	g := NewGenerator(WithClock(func() time.Time { return fixedNow }))

	var buf bytes.Buffer
	name, err := g.Generate(&buf, "Reporte de Incidencias", rows, columns, filters, PDF)
	require.NoError(t, err)
	assert.Equal(t, "Reporte_de_Incidencias_2024-05-01.pdf", name)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
	pages := bytes.Count(buf.Bytes(), []byte("/Type /Page")) - bytes.Count(buf.Bytes(), []byte("/Type /Pages"))
	assert.Greater(t, pages, 1, "long tables span several pages")
}

func TestGenerateEmptyReport(t *testing.T) {
	t.Parallel()

	_, columns, _ := sampleReport()
	g := NewGenerator(WithClock(func() time.Time { return fixedNow }))
	for _, kind := range []Kind{PDF, Excel} {
		var buf bytes.Buffer
		_, err := g.Generate(&buf, "Sin datos", nil, columns, nil, kind)
		require.NoError(t, err, kind)
		assert.NotZero(t, buf.Len(), kind)
	}
}

func TestGenerateUnknownKind(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	_, err := NewGenerator().Generate(&buf, "x", nil, nil, nil, Kind("csv"))
	assert.Error(t, err)
}
