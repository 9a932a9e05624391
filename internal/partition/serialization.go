package partition

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"time"

	"github.com/go-sif/frames"
)

const (
	nilCell = iota
	stringCell
	boolCell
	int32Cell
	int64Cell
	float64Cell
	timeCell
	listCell
)

// cell is the serialized form of a single Row value
type cell struct {
	Kind uint8
	S    string
	B    bool
	I    int64
	F    float64
	T    time.Time
	L    []cell
}

// serializedPartition is the serialized form of a Partition
type serializedPartition struct {
	ID      string
	MaxRows int
	Rows    [][]cell
}

func toCell(v interface{}) (cell, error) {
	switch tv := v.(type) {
	case nil:
		return cell{Kind: nilCell}, nil
	case string:
		return cell{Kind: stringCell, S: tv}, nil
	case bool:
		return cell{Kind: boolCell, B: tv}, nil
	case int32:
		return cell{Kind: int32Cell, I: int64(tv)}, nil
	case int64:
		return cell{Kind: int64Cell, I: tv}, nil
	case float64:
		return cell{Kind: float64Cell, F: tv}, nil
	case time.Time:
		return cell{Kind: timeCell, T: tv}, nil
	case []interface{}:
		l := make([]cell, len(tv))
		for i, e := range tv {
			c, err := toCell(e)
			if err != nil {
				return cell{}, err
			}
			l[i] = c
		}
		return cell{Kind: listCell, L: l}, nil
	default:
		return cell{}, fmt.Errorf("Cannot serialize value %#v of type %T", v, v)
	}
}

func fromCell(c cell) interface{} {
	switch c.Kind {
	case stringCell:
		return c.S
	case boolCell:
		return c.B
	case int32Cell:
		return int32(c.I)
	case int64Cell:
		return c.I
	case float64Cell:
		return c.F
	case timeCell:
		return c.T
	case listCell:
		l := make([]interface{}, len(c.L))
		for i, e := range c.L {
			l[i] = fromCell(e)
		}
		return l
	default:
		return nil
	}
}

// ToBytes serializes a Partition into bytes
func ToBytes(part frames.Partition) ([]byte, error) {
	ser := serializedPartition{
		ID:      part.ID(),
		MaxRows: part.GetMaxRows(),
		Rows:    make([][]cell, part.GetNumRows()),
	}
	for i := 0; i < part.GetNumRows(); i++ {
		values := part.GetRow(i).Values()
		cells := make([]cell, len(values))
		for j, v := range values {
			c, err := toCell(v)
			if err != nil {
				return nil, err
			}
			cells[j] = c
		}
		ser.Rows[i] = cells
	}
	buff := new(bytes.Buffer)
	if err := gob.NewEncoder(buff).Encode(ser); err != nil {
		return nil, err
	}
	return buff.Bytes(), nil
}

// FromBytes deserializes a Partition from bytes, associating it with a Schema
func FromBytes(buff []byte, schema frames.Schema) (frames.OperablePartition, error) {
	var ser serializedPartition
	if err := gob.NewDecoder(bytes.NewReader(buff)).Decode(&ser); err != nil {
		return nil, err
	}
	part := &partitionImpl{
		id:      ser.ID,
		maxRows: ser.MaxRows,
		rows:    make([][]interface{}, len(ser.Rows)),
		schema:  schema,
	}
	for i, cells := range ser.Rows {
		if len(cells) != schema.NumColumns() {
			return nil, fmt.Errorf("Serialized row %d has %d values, but the schema has %d columns", i, len(cells), schema.NumColumns())
		}
		values := make([]interface{}, len(cells))
		for j, c := range cells {
			values[j] = fromCell(c)
		}
		part.rows[i] = values
	}
	return part, nil
}
