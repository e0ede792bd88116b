package source

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet"
	"github.com/apache/arrow-go/v18/parquet/file"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"
)

// ParquetFile reads a Parquet file through Arrow.
type ParquetFile struct {
	Path string
}

func (s ParquetFile) Name() string { return "parquet:" + s.Path }

func (s ParquetFile) Load(ctx context.Context) (Dataset, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return Dataset{}, fmt.Errorf("open parquet file: %w", err)
	}
	defer f.Close()

	pf, err := file.NewParquetReader(f, file.WithReadProps(&parquet.ReaderProperties{}))
	if err != nil {
		return Dataset{}, fmt.Errorf("create parquet reader: %w", err)
	}
	defer pf.Close()

	reader, err := pqarrow.NewFileReader(pf, pqarrow.ArrowReadProperties{}, memory.NewGoAllocator())
	if err != nil {
		return Dataset{}, fmt.Errorf("create arrow reader: %w", err)
	}
	tbl, err := reader.ReadTable(ctx)
	if err != nil {
		return Dataset{}, fmt.Errorf("read parquet data: %w", err)
	}
	defer tbl.Release()

	cols, rows, err := arrowRows(tbl)
	if err != nil {
		return Dataset{}, fmt.Errorf("convert %s: %w", s.Path, err)
	}
	return Dataset{Name: filepath.Base(s.Path), Columns: cols, Rows: rows}, nil
}
