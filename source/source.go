// Package source loads the datasets the table viewer displays.
//
// A Source is named by a short spec string on the command line:
//
//	csv:PATH          comma separated file, first line is the header
//	json:PATH         array of objects, or {"rows": [...]}
//	parquet:PATH      Parquet file, read through Arrow
//	delta:PROFILE#SHARE.SCHEMA.TABLE
//	                  Delta Sharing table, PROFILE is a profile file
//	git:PATH          commit log of the repository containing PATH
//	procs             running processes
//	http(s)://URL     JSON rows from an HTTP endpoint
//
// Without a prefix the kind is inferred from the file extension, and a
// directory is read as a git repository.
package source

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Dataset is a loaded table: ordered column keys and one map per row.
type Dataset struct {
	Name    string
	Columns []string
	Rows    []map[string]any
}

// Source loads a Dataset.
type Source interface {
	Name() string
	Load(ctx context.Context) (Dataset, error)
}

// Open parses spec into a Source.
func Open(spec string) (Source, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return nil, fmt.Errorf("empty source")
	}
	if strings.HasPrefix(spec, "http://") || strings.HasPrefix(spec, "https://") {
		return NewHTTP(spec), nil
	}
	if spec == "procs" {
		return Processes{}, nil
	}

	kind, arg, ok := strings.Cut(spec, ":")
	if ok && len(kind) > 1 {
		switch kind {
		case "csv":
			return CSVFile{Path: arg}, nil
		case "json":
			return JSONFile{Path: arg}, nil
		case "parquet":
			return ParquetFile{Path: arg}, nil
		case "git":
			return GitLog{Path: arg}, nil
		case "delta":
			d, err := ParseDelta(arg)
			if err != nil {
				return nil, err
			}
			return d, nil
		}
		return nil, fmt.Errorf("unknown source kind %q", kind)
	}

	switch strings.ToLower(filepath.Ext(spec)) {
	case ".csv":
		return CSVFile{Path: spec}, nil
	case ".json":
		return JSONFile{Path: spec}, nil
	case ".parquet":
		return ParquetFile{Path: spec}, nil
	}
	if fi, err := os.Stat(spec); err == nil && fi.IsDir() {
		return GitLog{Path: spec}, nil
	}
	return nil, fmt.Errorf("cannot infer source kind of %q", spec)
}

// columnsOf returns the keys of rows in first-seen order. Keys new to a
// row are sorted among themselves since maps carry no order.
func columnsOf(rows []map[string]any) []string {
	var cols []string
	seen := make(map[string]bool)
	for _, row := range rows {
		var keys []string
		for k := range row {
			if !seen[k] {
				keys = append(keys, k)
			}
		}
		sort.Strings(keys)
		for _, k := range keys {
			seen[k] = true
			cols = append(cols, k)
		}
	}
	return cols
}
