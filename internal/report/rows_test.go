package report

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRowsFromJSON(t *testing.T) {
	t.Parallel()

	rows, err := RowsFromJSON([]byte(`[
		{"id":"1","monto":"12.5","activo":true,"hora_fin":null,
		 "personal":{"nombres":"Ana","apellidos":"Quispe"},"tags":["a","b"]}
	]`))
	require.NoError(t, err)
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, "1", row["id"])
	assert.Equal(t, "12.5", row["monto"])
	assert.Equal(t, true, row["activo"])
	assert.Contains(t, row, "hora_fin")
	assert.Nil(t, row["hora_fin"])
	assert.Equal(t, "Ana", row["personal.nombres"])
	assert.Equal(t, "Quispe", row["personal.apellidos"])
	assert.Equal(t, `["a","b"]`, row["tags"])
	assert.NotContains(t, row, "personal")
}

func TestRowsFromJSONRejectsNonArrays(t *testing.T) {
	t.Parallel()

	for _, in := range []string{`{"a":1}`, `[1,2]`, `not json`} {
		_, err := RowsFromJSON([]byte(in))
		assert.Error(t, err, in)
	}
}

type voucherRecord struct {
	Numero string          `json:"numero_voucher"`
	Monto  decimal.Decimal `json:"monto"`
	Pers   *struct {
		Nombres string `json:"nombres"`
	} `json:"personal_solicitante"`
}

func TestRowsFeedFormat(t *testing.T) {
	t.Parallel()

	records := []voucherRecord{
		{Numero: "VCH-20240501-0042", Monto: decimal.RequireFromString("2500"), Pers: &struct {
			Nombres string `json:"nombres"`
		}{Nombres: "Luis"}},
		{Numero: "VCH-20240501-0043", Monto: decimal.RequireFromString("10.1")},
	}
	rows, err := Rows(records)
	require.NoError(t, err)

	table := Format(rows, []Column{
		{Key: "numero_voucher", Label: "Número"},
		{Key: "monto", Label: "Monto", Format: Currency},
		{Key: "personal_solicitante.nombres", Label: "Solicitante"},
	})
	assert.Equal(t, [][]any{
		{"VCH-20240501-0042", "S/ 2,500.00", "Luis"},
		{"VCH-20240501-0043", "S/ 10.10", ""},
	}, table.Rows)

	empty, err := Rows[voucherRecord](nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
