package cli

import (
	"fmt"
	"unicode/utf8"

	"github.com/go-sif/frames"
	"github.com/go-sif/frames/session"
	"github.com/spf13/cobra"
)

// readFlags are shared by every command which reads a file
type readFlags struct {
	format      string
	header      bool
	inferSchema bool
	multiLine   bool
	schema      string
	delimiter   string
	nullValue   string
}

func (f *readFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.format, "format", session.FormatCSV, "Source format (csv, json)")
	cmd.Flags().BoolVar(&f.header, "header", false, "csv: the first line holds column names")
	cmd.Flags().BoolVar(&f.inferSchema, "infer-schema", false, "csv: infer column types")
	cmd.Flags().BoolVar(&f.multiLine, "multi-line", false, "json: files hold an array of objects")
	cmd.Flags().StringVar(&f.schema, "schema", "", "Schema as DDL, such as \"id string, weight double\"")
	cmd.Flags().StringVar(&f.delimiter, "delimiter", ",", "csv: field delimiter")
	cmd.Flags().StringVar(&f.nullValue, "null-value", "", "csv: string representing null")
}

func (f *readFlags) read(sess *session.Session, path string) (frames.DataFrame, error) {
	d, size := utf8.DecodeRuneInString(f.delimiter)
	if size == 0 || size != len(f.delimiter) {
		return nil, fmt.Errorf("delimiter %q must be a single character", f.delimiter)
	}
	return sess.Read(path, &session.ReadOptions{
		Format:      f.format,
		Header:      f.header,
		InferSchema: f.inferSchema,
		MultiLine:   f.multiLine,
		SchemaDDL:   f.schema,
		Delimiter:   d,
		NullValue:   f.nullValue,
	})
}
