package source

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// CSVFile reads a comma separated file whose first record is the header.
// A byte order mark selects UTF-16; without one the file is UTF-8 and a
// leading UTF-8 mark is dropped.
type CSVFile struct {
	Path string
}

func (s CSVFile) Name() string { return "csv:" + s.Path }

func (s CSVFile) Load(ctx context.Context) (Dataset, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return Dataset{}, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	dec := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	r := csv.NewReader(transform.NewReader(f, dec))
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return Dataset{}, fmt.Errorf("read csv %s: %w", s.Path, err)
	}
	if err := ctx.Err(); err != nil {
		return Dataset{}, err
	}

	ds := Dataset{Name: filepath.Base(s.Path)}
	if len(records) == 0 {
		return ds, nil
	}
	ds.Columns = uniqueHeader(records[0])
	ds.Rows = make([]map[string]any, 0, len(records)-1)
	for _, rec := range records[1:] {
		row := make(map[string]any, len(ds.Columns))
		for i, col := range ds.Columns {
			if i < len(rec) {
				row[col] = rec[i]
			}
		}
		ds.Rows = append(ds.Rows, row)
	}
	return ds, nil
}

// uniqueHeader names empty header fields by position and suffixes repeats.
func uniqueHeader(header []string) []string {
	out := make([]string, len(header))
	used := make(map[string]bool, len(header))
	for i, h := range header {
		if h == "" {
			h = fmt.Sprintf("column_%d", i+1)
		}
		name := h
		for n := 2; used[name]; n++ {
			name = fmt.Sprintf("%s_%d", h, n)
		}
		used[name] = true
		out[i] = name
	}
	return out
}
