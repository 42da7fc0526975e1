package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
)

func readCSV(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	// Header row is optional in legacy files; skip it when present.
	start := 0
	if rows[0][0] == Columns[0] {
		start = 1
	}
	recs := make([]Record, 0, len(rows)-start)
	for _, row := range rows[start:] {
		recs = append(recs, recordFromRow(row))
	}
	return recs, nil
}

func writeCSV(path string, recs []Record) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := csv.NewWriter(f)
	if err := w.Write(Columns); err != nil {
		f.Close()
		return err
	}
	for _, rec := range recs {
		if err := w.Write(rec.row()); err != nil {
			f.Close()
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
