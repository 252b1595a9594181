package report

import (
	"fmt"
	"strconv"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
)

const (
	minColumnWidth = 10
	maxColumnWidth = 50
)

// CellText renders a cell value as plain text.
func CellText(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return humanize.Ftoa(v)
	case float32:
		return humanize.Ftoa(float64(v))
	case *string:
		if v == nil {
			return ""
		}
		return *v
	case fmt.Stringer:
		return v.String()
	}
	return fmt.Sprint(v)
}

// ColumnWidths returns, per column, the longest text among the header and
// its cells plus 2, clamped to [10, 50] character units.
func ColumnWidths(t Table) []int {
	widths := make([]int, len(t.Headers))
	for i, h := range t.Headers {
		longest := utf8.RuneCountInString(h)
		for _, row := range t.Rows {
			if i >= len(row) {
				continue
			}
			if n := utf8.RuneCountInString(CellText(row[i])); n > longest {
				longest = n
			}
		}
		widths[i] = min(max(longest+2, minColumnWidth), maxColumnWidth)
	}
	return widths
}
