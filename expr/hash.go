package expr

import (
	"encoding/binary"
	"math"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/go-sif/frames"
)

type xxhash64Expr struct {
	children []Expression
}

// XXHash64 hashes its inputs into a bigint. Nulls contribute nothing to the hash.
func XXHash64(exprs ...Expression) Expression {
	return &xxhash64Expr{children: exprs}
}

func (x *xxhash64Expr) String() string {
	names := make([]string, len(x.children))
	for i, c := range x.children {
		names[i] = c.String()
	}
	return "xxhash64(" + strings.Join(names, ", ") + ")"
}

func (x *xxhash64Expr) Bind(schema frames.Schema) (Evaluator, error) {
	children, err := BindAll(schema, x.children...)
	if err != nil {
		return nil, err
	}
	return &evaluator{colType: &frames.Int64ColumnType{}, fn: func(env Env, row frames.Row) (interface{}, error) {
		hasher := xxhash.New()
		for _, c := range children {
			v, err := c.Eval(env, row)
			if err != nil {
				return nil, err
			}
			if _, err := hasher.Write(HashBytes(v)); err != nil {
				return nil, err
			}
		}
		return int64(hasher.Sum64()), nil
	}}, nil
}

// HashBytes produces a stable byte encoding of a canonical value. Values of different
// Go types never share an encoding.
func HashBytes(v interface{}) []byte {
	buf := make([]byte, 9)
	switch t := v.(type) {
	case nil:
		return nil
	case string:
		return append([]byte{'s'}, t...)
	case bool:
		if t {
			return []byte{'b', 1}
		}
		return []byte{'b', 0}
	case int32:
		buf[0] = 'i'
		binary.LittleEndian.PutUint32(buf[1:], uint32(t))
		return buf[:5]
	case int64:
		buf[0] = 'l'
		binary.LittleEndian.PutUint64(buf[1:], uint64(t))
	case float64:
		buf[0] = 'd'
		binary.LittleEndian.PutUint64(buf[1:], math.Float64bits(t))
	case interface{ UnixNano() int64 }:
		buf[0] = 't'
		binary.LittleEndian.PutUint64(buf[1:], uint64(t.UnixNano()))
	case []interface{}:
		res := []byte{'a'}
		for _, e := range t {
			eb := HashBytes(e)
			res = binary.LittleEndian.AppendUint32(res, uint32(len(eb)))
			res = append(res, eb...)
		}
		return res
	}
	return buf
}
