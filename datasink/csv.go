package datasink

import (
	"context"
	"encoding/csv"
	"io"

	"github.com/go-sif/frames"
)

// WriteCSV materializes a DataFrame and writes its Rows to w as delimited text
func WriteCSV(ctx context.Context, c Collector, df frames.DataFrame, w io.Writer, opts *Options) error {
	opts = defaultOptions(opts)
	rows, err := c.Collect(ctx, df)
	if err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if opts.Delimiter != 0 {
		cw.Comma = opts.Delimiter
	}
	s := df.GetSchema()
	if opts.Header {
		if err := cw.Write(s.ColumnNames()); err != nil {
			return err
		}
	}
	types := s.ColumnTypes()
	record := make([]string, len(types))
	for _, row := range rows {
		for i, colType := range types {
			v := row.GetAt(i)
			if v == nil {
				record[i] = opts.NullValue
			} else {
				record[i] = colType.ToString(v)
			}
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
