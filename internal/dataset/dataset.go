// Package dataset reads and writes the tabular news dataset. Two codecs
// are supported, selected by file extension: .csv and .xlsx. Columns are
// fixed: id, title, content, created_at, tag_names.
//
// Writes replace the whole file via a temp file in the same directory
// followed by a rename, so a failed write never truncates prior state.
// A single process instance is assumed; there is no file locking.
package dataset

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"saveticker-sync/internal/types"
)

// Columns is the on-disk column order.
var Columns = []string{"id", "title", "content", "created_at", "tag_names"}

// Record is one dataset row. All fields are strings: the dataset must
// round-trip legacy cells untouched, including the bracketed tag list.
type Record struct {
	ID        string
	Title     string
	Content   string
	CreatedAt string
	TagNames  string
}

// FromNewsItem converts an API news item into a dataset row. The caller
// is responsible for timestamp normalization.
func FromNewsItem(n types.NewsItem) Record {
	return Record{
		ID:        strconv.FormatInt(n.ID, 10),
		Title:     n.Title,
		Content:   n.Content,
		CreatedAt: n.CreatedAt,
		TagNames:  FormatTags(n.TagNames),
	}
}

// FormatTags renders a tag list the way legacy datasets store it, as a
// bracketed, quoted list in a single cell.
func FormatTags(tags []string) string {
	if len(tags) == 0 {
		return "[]"
	}
	quoted := make([]string, len(tags))
	for i, t := range tags {
		quoted[i] = "'" + t + "'"
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}

func (r Record) row() []string {
	return []string{r.ID, r.Title, r.Content, r.CreatedAt, r.TagNames}
}

func recordFromRow(row []string) Record {
	var cells [5]string
	copy(cells[:], row)
	return Record{
		ID:        cells[0],
		Title:     cells[1],
		Content:   cells[2],
		CreatedAt: cells[3],
		TagNames:  cells[4],
	}
}

// Load reads the dataset at path. A missing file is not an error: it
// returns an empty dataset, the "start from empty" case.
func Load(path string) ([]Record, error) {
	var (
		recs []Record
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		recs, err = readXLSX(path)
	default:
		recs, err = readCSV(path)
	}
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	return recs, err
}

// Write replaces the dataset at path with recs.
func Write(path string, recs []Record) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp := filepath.Join(filepath.Dir(path), "."+filepath.Base(path)+".tmp")
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		err = writeXLSX(tmp, recs)
	default:
		err = writeCSV(tmp, recs)
	}
	if err != nil {
		os.Remove(tmp)
		return fmt.Errorf("write dataset %s: %w", path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replace dataset %s: %w", path, err)
	}
	return nil
}
