package session

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/go-sif/frames"
	"golang.org/x/text/width"
)

// DefaultTruncate is the number of characters at which Show truncates cells
const DefaultTruncate = 20

// Show renders up to n Rows of a DataFrame as a grid. Cells longer than 20 characters are truncated.
func (s *Session) Show(ctx context.Context, df frames.DataFrame, n int, w io.Writer) error {
	return s.ShowTruncated(ctx, df, n, DefaultTruncate, w)
}

// ShowTruncated renders up to n Rows of a DataFrame as a grid, truncating cells to the given
// number of characters. A truncate of 0 disables truncation, and left-aligns cells.
func (s *Session) ShowTruncated(ctx context.Context, df frames.DataFrame, n int, truncate int, w io.Writer) error {
	if n < 0 {
		n = 0
	}
	// one extra Row tells us whether there are more to show
	rows, err := s.CollectN(ctx, df, int64(n)+1)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, FormatGrid(df.GetSchema(), rows, n, truncate))
	return err
}

// PrintSchema renders the Schema of a DataFrame as a tree
func (s *Session) PrintSchema(df frames.DataFrame, w io.Writer) error {
	_, err := io.WriteString(w, df.GetSchema().ToString())
	return err
}

// displayWidth counts the terminal columns occupied by a string, where wide
// East Asian characters occupy two
func displayWidth(str string) int {
	total := 0
	for _, r := range str {
		switch width.LookupRune(r).Kind() {
		case width.EastAsianWide, width.EastAsianFullwidth:
			total += 2
		default:
			total++
		}
	}
	return total
}

func pad(str string, size int, left bool) string {
	padding := size - displayWidth(str)
	if padding <= 0 {
		return str
	}
	if left {
		return strings.Repeat(" ", padding) + str
	}
	return str + strings.Repeat(" ", padding)
}

func cellString(colType frames.ColumnType, v interface{}, truncate int) string {
	str := "null"
	if v != nil {
		str = colType.ToString(v)
	}
	runes := []rune(str)
	if truncate > 0 && len(runes) > truncate {
		if truncate < 4 {
			return string(runes[:truncate])
		}
		return string(runes[:truncate-3]) + "..."
	}
	return str
}

// FormatGrid renders up to n Rows as a grid with a header, followed by a note if Rows were omitted
func FormatGrid(schema frames.Schema, rows []frames.Row, n int, truncate int) string {
	names := schema.ColumnNames()
	types := schema.ColumnTypes()
	shown := rows
	if len(shown) > n {
		shown = shown[:n]
	}
	cells := make([][]string, 0, len(shown)+1)
	header := make([]string, len(names))
	for i, name := range names {
		header[i] = cellString(&frames.StringColumnType{}, name, truncate)
	}
	cells = append(cells, header)
	for _, row := range shown {
		line := make([]string, len(names))
		for i := range names {
			line[i] = cellString(types[i], row.GetAt(i), truncate)
		}
		cells = append(cells, line)
	}
	widths := make([]int, len(names))
	for i := range widths {
		widths[i] = 3
		for _, line := range cells {
			if cw := displayWidth(line[i]); cw > widths[i] {
				widths[i] = cw
			}
		}
	}
	var sep strings.Builder
	sep.WriteString("+")
	for _, cw := range widths {
		sep.WriteString(strings.Repeat("-", cw))
		sep.WriteString("+")
	}
	sep.WriteString("\n")

	var res strings.Builder
	res.WriteString(sep.String())
	for l, line := range cells {
		res.WriteString("|")
		for i, cell := range line {
			res.WriteString(pad(cell, widths[i], truncate > 0))
			res.WriteString("|")
		}
		res.WriteString("\n")
		if l == 0 {
			res.WriteString(sep.String())
		}
	}
	res.WriteString(sep.String())
	if len(rows) > n {
		noun := "rows"
		if n == 1 {
			noun = "row"
		}
		fmt.Fprintf(&res, "only showing top %d %s\n", n, noun)
	}
	return res.String()
}
