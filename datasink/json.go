package datasink

import (
	"bufio"
	"context"
	"io"

	"github.com/go-sif/frames"
)

// WriteJSONLines materializes a DataFrame and writes each of its Rows to w as a JSON object
// on its own line. Null values are written explicitly.
func WriteJSONLines(ctx context.Context, c Collector, df frames.DataFrame, w io.Writer) error {
	rows, err := c.Collect(ctx, df)
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(w)
	var buf []byte
	for _, row := range rows {
		if buf, err = encodeJSONRow(buf[:0], row); err != nil {
			return err
		}
		buf = append(buf, '\n')
		if _, err := bw.Write(buf); err != nil {
			return err
		}
	}
	return bw.Flush()
}
