package enrich

import (
	"encoding/csv"
	"os"
	"strings"

	"github.com/rotisserie/eris"
)

// Input is the parsed input file: the original header plus one record per
// data row. The header is carried through so every input column survives
// into the output table, not just the CEP.
type Input struct {
	Columns []string
	Records []Record
}

// ReadRecords reads the input CSV and returns its header and one Record per
// data row. The file must carry a "cep" column (matched case-insensitively);
// the record index is the row position. Rows with an empty CEP are kept; they
// fail geocoding downstream and surface in the output with an error marker
// instead of silently vanishing.
func ReadRecords(path string) (*Input, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrap(err, "enrich: open input csv")
	}
	defer f.Close() //nolint:errcheck

	reader := csv.NewReader(f)
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, eris.Wrap(err, "enrich: read input csv")
	}

	if len(rows) < 2 {
		return nil, eris.New("enrich: input csv has no data rows")
	}

	columns := make([]string, len(rows[0]))
	cepCol := -1
	for i, col := range rows[0] {
		columns[i] = strings.TrimSpace(col)
		if cepCol < 0 && strings.EqualFold(columns[i], "cep") {
			cepCol = i
		}
	}
	if cepCol < 0 {
		return nil, eris.Errorf("enrich: input csv missing required column %q", "cep")
	}

	records := make([]Record, 0, len(rows)-1)
	for i, row := range rows[1:] {
		var cep string
		if cepCol < len(row) {
			cep = strings.TrimSpace(row[cepCol])
		}
		records = append(records, Record{Index: i, CEP: cep, Fields: row})
	}

	return &Input{Columns: columns, Records: records}, nil
}
