package enrich

import (
	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
)

// SaveXLSX writes the table to an XLSX workbook with a single sheet.
func (t *Table) SaveXLSX(path string) error {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet("enriched")
	if err != nil {
		return eris.Wrap(err, "enrich: add xlsx sheet")
	}

	header := sheet.AddRow()
	for _, col := range t.Columns {
		header.AddCell().Value = col
	}

	for _, row := range t.Rows {
		r := sheet.AddRow()
		for _, cell := range row {
			r.AddCell().Value = cell
		}
	}

	if err := f.Save(path); err != nil {
		return eris.Wrap(err, "enrich: save xlsx")
	}
	return nil
}
