package source

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/miosa/window-table/client"
)

// JSONFile reads an array of objects, or an object holding one under "rows"
// or "data".
type JSONFile struct {
	Path string
}

func (s JSONFile) Name() string { return "json:" + s.Path }

func (s JSONFile) Load(ctx context.Context) (Dataset, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return Dataset{}, fmt.Errorf("read json: %w", err)
	}
	rows, err := client.DecodeRows(data)
	if err != nil {
		return Dataset{}, fmt.Errorf("decode %s: %w", s.Path, err)
	}
	return Dataset{
		Name:    filepath.Base(s.Path),
		Columns: columnsOf(rows),
		Rows:    rows,
	}, nil
}
