package report

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
)

// RowsFromJSON reads a JSON array of objects into rows. Nested objects are
// flattened into dotted keys, so {"personal":{"nombres":"Ana"}} yields the
// key "personal.nombres". Arrays are kept as their raw JSON text.
func RowsFromJSON(data []byte) ([]Row, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.New("rows: invalid JSON")
	}
	doc := gjson.ParseBytes(data)
	if !doc.IsArray() {
		return nil, errors.New("rows: expected a JSON array")
	}
	items := doc.Array()
	rows := make([]Row, 0, len(items))
	for i, item := range items {
		if !item.IsObject() {
			return nil, fmt.Errorf("rows: element %d is not an object", i)
		}
		row := Row{}
		flatten(row, "", item)
		rows = append(rows, row)
	}
	return rows, nil
}

func flatten(row Row, prefix string, obj gjson.Result) {
	obj.ForEach(func(key, value gjson.Result) bool {
		name := key.String()
		if prefix != "" {
			name = prefix + "." + name
		}
		switch {
		case value.IsObject():
			flatten(row, name, value)
		case value.IsArray():
			row[name] = value.Raw
		default:
			row[name] = value.Value()
		}
		return true
	})
}

// Rows encodes records as JSON and flattens them with RowsFromJSON.
func Rows[T any](records []T) ([]Row, error) {
	if records == nil {
		records = []T{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return RowsFromJSON(data)
}
