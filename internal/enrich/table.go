package enrich

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"

	"github.com/rotisserie/eris"
)

// Table is the final result: one row per input record, joined with the
// original input columns. Columns are the index, every input column, then the
// union of every enrichment key observed across all records, sorted for
// determinism. Cells missing for a record (an enricher that omitted fields or
// failed) are filled with zero.
type Table struct {
	Columns []string
	Rows    [][]string
}

// emptyCell fills gaps left by enrichers that omit fields on failure.
const emptyCell = "0"

// BuildTable joins enrichment results back onto the input rows, keeping every
// original column. results must be index-aligned with input.Records.
// Enrichment keys shadowed by an input column name are skipped rather than
// duplicated in the header.
func BuildTable(input *Input, results []Attributes) *Table {
	orig := make(map[string]struct{}, len(input.Columns))
	for _, c := range input.Columns {
		orig[c] = struct{}{}
	}

	keySet := make(map[string]struct{})
	for _, attrs := range results {
		for k := range attrs {
			if _, taken := orig[k]; !taken {
				keySet[k] = struct{}{}
			}
		}
	}
	keys := make([]string, 0, len(keySet))
	for k := range keySet {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	columns := make([]string, 0, 1+len(input.Columns)+len(keys))
	columns = append(columns, "index")
	columns = append(columns, input.Columns...)
	columns = append(columns, keys...)

	rows := make([][]string, len(input.Records))
	for i, rec := range input.Records {
		row := make([]string, 0, len(columns))
		row = append(row, strconv.Itoa(rec.Index))
		for j := range input.Columns {
			if j < len(rec.Fields) {
				row = append(row, rec.Fields[j])
			} else {
				row = append(row, "")
			}
		}

		var attrs Attributes
		if i < len(results) {
			attrs = results[i]
		}
		for _, k := range keys {
			v, ok := attrs[k]
			if !ok {
				row = append(row, emptyCell)
				continue
			}
			row = append(row, formatCell(v))
		}
		rows[i] = row
	}

	return &Table{Columns: columns, Rows: rows}
}

func formatCell(v any) string {
	switch c := v.(type) {
	case string:
		return c
	case float64:
		return strconv.FormatFloat(c, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(c)
	case int:
		return strconv.Itoa(c)
	default:
		return fmt.Sprintf("%v", c)
	}
}

// WriteCSV writes the table to w.
func (t *Table) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Columns); err != nil {
		return eris.Wrap(err, "enrich: write csv header")
	}
	for _, row := range t.Rows {
		if err := cw.Write(row); err != nil {
			return eris.Wrap(err, "enrich: write csv row")
		}
	}
	cw.Flush()
	return eris.Wrap(cw.Error(), "enrich: flush csv")
}

// SaveCSV writes the table to a CSV file.
func (t *Table) SaveCSV(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrap(err, "enrich: create output file")
	}
	defer f.Close() //nolint:errcheck

	if err := t.WriteCSV(f); err != nil {
		return err
	}
	return eris.Wrap(f.Close(), "enrich: close output file")
}
