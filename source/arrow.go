package source

import (
	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
)

// arrowRows converts an Arrow table into column keys and row maps.
func arrowRows(tbl arrow.Table) ([]string, []map[string]any, error) {
	schema := tbl.Schema()
	cols := make([]string, schema.NumFields())
	for i, f := range schema.Fields() {
		cols[i] = f.Name
	}
	if tbl.NumRows() == 0 {
		return cols, nil, nil
	}

	tr := array.NewTableReader(tbl, tbl.NumRows())
	defer tr.Release()

	rows := make([]map[string]any, 0, tbl.NumRows())
	for tr.Next() {
		rec := tr.Record()
		for r := 0; r < int(rec.NumRows()); r++ {
			row := make(map[string]any, len(cols))
			for c, col := range rec.Columns() {
				row[cols[c]] = arrowValue(col, r)
			}
			rows = append(rows, row)
		}
	}
	if err := tr.Err(); err != nil {
		return nil, nil, err
	}
	return cols, rows, nil
}

// arrowValue returns the value at pos, typed where the table can format it
// and as Arrow's own string form otherwise.
func arrowValue(col arrow.Array, pos int) any {
	if col.IsNull(pos) {
		return nil
	}
	switch a := col.(type) {
	case *array.String:
		return a.Value(pos)
	case *array.LargeString:
		return a.Value(pos)
	case *array.Binary:
		return string(a.Value(pos))
	case *array.Boolean:
		return a.Value(pos)
	case *array.Int8:
		return int64(a.Value(pos))
	case *array.Int16:
		return int64(a.Value(pos))
	case *array.Int32:
		return int64(a.Value(pos))
	case *array.Int64:
		return a.Value(pos)
	case *array.Uint8:
		return uint64(a.Value(pos))
	case *array.Uint16:
		return uint64(a.Value(pos))
	case *array.Uint32:
		return uint64(a.Value(pos))
	case *array.Uint64:
		return a.Value(pos)
	case *array.Float32:
		return float64(a.Value(pos))
	case *array.Float64:
		return a.Value(pos)
	case *array.Date32:
		return a.Value(pos).ToTime().Format("2006-01-02")
	case *array.Date64:
		return a.Value(pos).ToTime().Format("2006-01-02")
	case *array.Timestamp:
		unit := a.DataType().(*arrow.TimestampType).Unit
		return a.Value(pos).ToTime(unit).Format("2006-01-02 15:04:05")
	default:
		return col.ValueStr(pos)
	}
}
