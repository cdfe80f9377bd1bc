/*
Package dataset loads the header/row tables that dictable indexes.

A dataset is a single document with a header list and a list of rows:

	{"headers": ["word", "meaning"], "rows": [["ho2", "good"], ["bo5", "no/not have"]]}

Sources are local files or http(s) URLs. JSON and msgpack encodings share the
same shape. Row arity is not validated; rows with more or fewer cells than the
header list are passed through as they are.
*/
package dataset

// Row is an ordered list of cells. Its RowId is its position in Dataset.Rows.
type Row []string

// Dataset holds the column headers and every row of a loaded table.
// It is never mutated after loading.
type Dataset struct {
	Headers []string `json:"headers" msgpack:"headers"`
	Rows    []Row    `json:"rows" msgpack:"rows"`
}

// Len returns the number of rows.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Rows)
}

// Row returns the row with the given id, or nil when out of range.
func (d *Dataset) Row(id int) Row {
	if d == nil || id < 0 || id >= len(d.Rows) {
		return nil
	}
	return d.Rows[id]
}
