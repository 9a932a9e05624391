package dsv

import (
	"path"
	"strings"
	"testing"

	"github.com/go-sif/frames"
	file "github.com/go-sif/frames/datasource/file"
	"github.com/go-sif/frames/datasource/memory"
	"github.com/go-sif/frames/errors"
	"github.com/go-sif/frames/schema"
	"github.com/stretchr/testify/require"
)

func loadAll(t *testing.T, df frames.DataFrame) []frames.Row {
	pm, err := df.GetDataSource().Analyze()
	require.Nil(t, err, "Analyze err should be null")
	rows := []frames.Row{}
	for pm.HasNext() {
		pl := pm.Next()
		ps, err := pl.Load(df.GetParser(), df.GetSchema())
		require.Nil(t, err)
		for ps.HasNextPartition() {
			part, err := ps.NextPartition()
			require.Nil(t, err)
			for i := 0; i < part.GetNumRows(); i++ {
				rows = append(rows, part.GetRow(i))
			}
		}
	}
	require.False(t, pm.HasNext())
	return rows
}

func TestDSVDatasourceParserInfersSchema(t *testing.T) {
	parser := CreateParser(&ParserConf{
		Header:        true,
		InferSchema:   true,
		PartitionSize: 3,
	})
	df, err := file.CreateDataFrame(path.Join("testdata", "*.csv"), parser, nil, nil)
	require.Nil(t, err)
	s := df.GetSchema()
	require.Equal(t, 12, s.NumColumns())
	require.Equal(t, "Item_Identifier", s.ColumnNames()[0])
	require.Equal(t, "string, double, string, double, string, double, string, int, string, string, string, double",
		strings.Join(typeNames(s), ", "))

	rows := loadAll(t, df)
	require.Equal(t, 8, len(rows))
	weight, err := rows[0].GetFloat64("Item_Weight")
	require.Nil(t, err)
	require.Equal(t, 9.3, weight)
	year, err := rows[0].GetInt32("Outlet_Establishment_Year")
	require.Nil(t, err)
	require.Equal(t, int32(1999), year)
	require.True(t, rows[7].IsNil("Item_Weight"))
	require.True(t, rows[3].IsNil("Outlet_Size"))
}

func TestDSVWithoutInferenceUsesStrings(t *testing.T) {
	parser := CreateParser(&ParserConf{Header: true})
	df, err := file.CreateDataFrame(path.Join("testdata", "items.csv"), parser, nil, nil)
	require.Nil(t, err)
	for _, name := range typeNames(df.GetSchema()) {
		require.Equal(t, "string", name)
	}
	rows := loadAll(t, df)
	weight, err := rows[0].GetString("Item_Weight")
	require.Nil(t, err)
	require.Equal(t, "9.3", weight)
}

func TestDSVWithoutHeader(t *testing.T) {
	parser := CreateParser(&ParserConf{InferSchema: true})
	df, err := memory.CreateDataFrame([][]byte{[]byte("a,1\nb,2\n")}, parser, nil)
	require.Nil(t, err)
	require.Equal(t, []string{"_c0", "_c1"}, df.GetSchema().ColumnNames())
	rows := loadAll(t, df)
	require.Equal(t, 2, len(rows))
	require.Equal(t, []interface{}{"b", int32(2)}, rows[1].Values())
}

func TestDSVExplicitSchema(t *testing.T) {
	parser := CreateParser(&ParserConf{Header: true, NilValue: "NA"})
	data := [][]byte{[]byte("id,weight,tags\n1,2.5,x\n2,heavy,NA\n3\n")}
	df, err := memory.CreateDataFrame(data, parser, schema.MustParse("id int, weight double, tags string"))
	require.Nil(t, err)
	rows := loadAll(t, df)
	require.Equal(t, 3, len(rows))
	require.Equal(t, []interface{}{int32(1), 2.5, "x"}, rows[0].Values())
	// unparseable values and nil markers become null
	require.Equal(t, []interface{}{int32(2), nil, nil}, rows[1].Values())
	// short rows are padded with null
	require.Equal(t, []interface{}{int32(3), nil, nil}, rows[2].Values())

	_, err = memory.CreateDataFrame(data, parser, schema.MustParse("id int, weight double"))
	require.IsType(t, errors.SchemaMismatchError{}, err)
}

func TestDSVMissingSource(t *testing.T) {
	parser := CreateParser(&ParserConf{Header: true})
	_, err := file.CreateDataFrame(path.Join("testdata", "*.nothing"), parser, nil, nil)
	require.Equal(t, errors.SourceNotFoundError{Path: path.Join("testdata", "*.nothing")}, err)
}

func TestHeaderNames(t *testing.T) {
	require.Equal(t, []string{"a0", "b", "a2", "_c3"}, headerNames([]string{"a", " b ", "a", ""}))
}

func typeNames(s frames.Schema) []string {
	names := []string{}
	for _, t := range s.ColumnTypes() {
		names = append(names, t.Name())
	}
	return names
}
