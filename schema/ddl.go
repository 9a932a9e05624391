package schema

import (
	"fmt"
	"strings"

	"github.com/go-sif/frames"
)

// Parse produces a Schema from a DDL string of comma-separated
// "name type" pairs, such as "id int, name string, tags array<string>".
// Names may be quoted with backticks to include spaces.
func Parse(ddl string) (frames.Schema, error) {
	s := CreateSchema()
	for _, field := range splitTopLevel(ddl) {
		field = strings.TrimSpace(field)
		if len(field) == 0 {
			continue
		}
		name, typeName, err := splitField(field)
		if err != nil {
			return nil, err
		}
		colType, err := frames.ParseColumnType(typeName)
		if err != nil {
			return nil, err
		}
		if _, err := s.CreateColumn(name, colType); err != nil {
			return nil, err
		}
	}
	if s.NumColumns() == 0 {
		return nil, fmt.Errorf("Schema definition %q contains no columns", ddl)
	}
	return s, nil
}

// MustParse is like Parse but panics if the DDL string cannot be parsed
func MustParse(ddl string) frames.Schema {
	s, err := Parse(ddl)
	if err != nil {
		panic(err)
	}
	return s
}

// FromColumns produces a Schema from parallel slices of names and types
func FromColumns(names []string, types []frames.ColumnType) (frames.Schema, error) {
	if len(names) != len(types) {
		return nil, fmt.Errorf("%d column names provided for %d column types", len(names), len(types))
	}
	s := CreateSchema()
	for i, name := range names {
		if _, err := s.CreateColumn(name, types[i]); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// ToDDL renders a Schema as a DDL string which can be read by Parse
func ToDDL(s frames.Schema) string {
	fields := make([]string, 0, s.NumColumns())
	types := s.ColumnTypes()
	for i, name := range s.ColumnNames() {
		if strings.ContainsAny(name, " ,`<>") {
			name = "`" + name + "`"
		}
		fields = append(fields, fmt.Sprintf("%s %s", name, types[i].Name()))
	}
	return strings.Join(fields, ", ")
}

// splitTopLevel splits on commas which are not nested within <> or backticks
func splitTopLevel(ddl string) []string {
	var fields []string
	depth := 0
	quoted := false
	start := 0
	for i, r := range ddl {
		switch {
		case r == '`':
			quoted = !quoted
		case quoted:
		case r == '<':
			depth++
		case r == '>':
			depth--
		case r == ',' && depth == 0:
			fields = append(fields, ddl[start:i])
			start = i + 1
		}
	}
	return append(fields, ddl[start:])
}

func splitField(field string) (name string, typeName string, err error) {
	if strings.HasPrefix(field, "`") {
		end := strings.Index(field[1:], "`")
		if end < 0 {
			return "", "", fmt.Errorf("Unterminated column name in %q", field)
		}
		name = field[1 : end+1]
		typeName = strings.TrimSpace(field[end+2:])
	} else {
		parts := strings.Fields(field)
		if len(parts) < 2 {
			return "", "", fmt.Errorf("Column definition %q must be of the form \"name type\"", field)
		}
		name = parts[0]
		typeName = strings.Join(parts[1:], "")
	}
	typeName = strings.TrimPrefix(strings.TrimPrefix(typeName, ":"), " ")
	if len(typeName) == 0 {
		return "", "", fmt.Errorf("Column %s has no type", name)
	}
	return name, typeName, nil
}
