package dataset

import (
	"github.com/xuri/excelize/v2"
)

const sheetName = "Sheet1"

func readXLSX(path string) ([]Record, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		sheet = sheetName
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}

	start := 0
	if len(rows[0]) > 0 && rows[0][0] == Columns[0] {
		start = 1
	}
	recs := make([]Record, 0, len(rows)-start)
	for _, row := range rows[start:] {
		if len(row) == 0 {
			continue
		}
		recs = append(recs, recordFromRow(row))
	}
	return recs, nil
}

func writeXLSX(path string, recs []Record) error {
	f := excelize.NewFile()
	defer f.Close()

	header := make([]any, len(Columns))
	for i, c := range Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return err
	}
	for i, rec := range recs {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []any{rec.ID, rec.Title, rec.Content, rec.CreatedAt, rec.TagNames}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return err
		}
	}
	return f.SaveAs(path)
}
