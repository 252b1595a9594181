package report

import (
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

const (
	dateLayout     = "02/01/2006"
	datetimeLayout = "02/01/2006 15:04:05"
)

var inputLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999Z07",
	"2006-01-02 15:04:05",
	time.DateOnly,
}

func parseTime(v any) (time.Time, bool) {
	switch v := v.(type) {
	case time.Time:
		return v, !v.IsZero()
	case *time.Time:
		if v == nil {
			return time.Time{}, false
		}
		return *v, !v.IsZero()
	case string:
		s := strings.TrimSpace(v)
		for _, layout := range inputLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t, true
			}
		}
	}
	return time.Time{}, false
}

// Date renders dd/mm/yyyy. Blank input is "" and unparseable text is
// returned unchanged.
func Date(v any) string {
	if t, ok := parseTime(v); ok {
		return t.Format(dateLayout)
	}
	return fallbackText(v)
}

// DateTime renders dd/mm/yyyy hh:mm:ss.
func DateTime(v any) string {
	if t, ok := parseTime(v); ok {
		return t.Format(datetimeLayout)
	}
	return fallbackText(v)
}

func fallbackText(v any) string {
	if _, ok := v.(time.Time); ok {
		return ""
	}
	return CellText(v)
}

func toDecimal(v any) (decimal.Decimal, bool) {
	switch v := v.(type) {
	case decimal.Decimal:
		return v, true
	case *decimal.Decimal:
		if v == nil {
			return decimal.Decimal{}, false
		}
		return *v, true
	case float64:
		return decimal.NewFromFloat(v), true
	case float32:
		return decimal.NewFromFloat32(v), true
	case int:
		return decimal.NewFromInt(int64(v)), true
	case int64:
		return decimal.NewFromInt(v), true
	case int32:
		return decimal.NewFromInt32(v), true
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(v))
		return d, err == nil
	}
	return decimal.Decimal{}, false
}

// Currency renders soles with thousands separators and two decimals,
// e.g. "S/ 1,234.50". Non-numeric input renders as "".
func Currency(v any) string {
	d, ok := toDecimal(v)
	if !ok {
		return ""
	}
	d = d.Round(2)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}
	whole := d.Truncate(0)
	cents := d.Sub(whole).StringFixed(2)[1:]
	return "S/ " + sign + humanize.Comma(whole.IntPart()) + cents
}

// Boolean renders "Sí" for true and "No" for anything else.
func Boolean(v any) string {
	switch v := v.(type) {
	case bool:
		if v {
			return "Sí"
		}
	case *bool:
		if v != nil && *v {
			return "Sí"
		}
	}
	return "No"
}

var statusLabels = map[string]string{
	"activo":           "Activo",
	"inactivo":         "Inactivo",
	"pendiente":        "Pendiente",
	"completado":       "Completado",
	"en_progreso":      "En Progreso",
	"en_curso":         "En Curso",
	"interrumpido":     "Interrumpido",
	"cancelado":        "Cancelado",
	"resuelto":         "Resuelto",
	"derivado_pnp":     "Derivado PNP",
	"operativo":        "Operativo",
	"mantenimiento":    "Mantenimiento",
	"fuera_servicio":   "Fuera de Servicio",
	"con_fallas":       "Con Fallas",
	"aprobado":         "Aprobado",
	"rechazado":        "Rechazado",
	"pagado":           "Pagado",
	"vencido":          "Vencido",
	"asistio_firmo":    "Asistió y Firmó",
	"falta":            "Falta",
	"descanso_semanal": "Descanso Semanal",
	"feriado":          "Feriado",
	"permiso_medico":   "Permiso Médico",
}

// Status maps a stored state to its display label; unknown states pass
// through unchanged.
func Status(v any) string {
	s := CellText(v)
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return s
}
