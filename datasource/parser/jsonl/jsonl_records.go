package jsonl

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/tidwall/gjson"
)

// recordReader produces one JSON document at a time, returning io.EOF at the end of the stream
type recordReader interface {
	Next() (gjson.Result, error)
}

// lineRecordReader reads one JSON document per line, skipping blank lines
type lineRecordReader struct {
	scanner *bufio.Scanner
}

func createLineRecordReader(r io.Reader, maxBufferSize int) recordReader {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), maxBufferSize)
	return &lineRecordReader{scanner: scanner}
}

func (lr *lineRecordReader) Next() (gjson.Result, error) {
	for lr.scanner.Scan() {
		line := bytes.TrimSpace(lr.scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		// an invalid line produces a null record, rather than failing the whole file
		return gjson.ParseBytes(line), nil
	}
	if err := lr.scanner.Err(); err != nil {
		return gjson.Result{}, err
	}
	return gjson.Result{}, io.EOF
}

// multiLineRecordReader reads the elements of a top-level JSON array,
// or a sequence of whitespace-separated JSON documents
type multiLineRecordReader struct {
	reader  *bufio.Reader
	decoder *json.Decoder
	inArray bool
}

func createMultiLineRecordReader(r io.Reader) recordReader {
	return &multiLineRecordReader{reader: bufio.NewReader(r)}
}

// start decides whether records are wrapped in an array, by peeking at the first non-space byte
func (mr *multiLineRecordReader) start() error {
	for {
		b, err := mr.reader.Peek(1)
		if err != nil {
			return err
		}
		if b[0] != ' ' && b[0] != '\t' && b[0] != '\n' && b[0] != '\r' {
			break
		}
		if _, err := mr.reader.Discard(1); err != nil {
			return err
		}
	}
	mr.decoder = json.NewDecoder(mr.reader)
	if b, _ := mr.reader.Peek(1); b[0] == '[' {
		if _, err := mr.decoder.Token(); err != nil {
			return fmt.Errorf("Malformed JSON: %w", err)
		}
		mr.inArray = true
	}
	return nil
}

func (mr *multiLineRecordReader) Next() (gjson.Result, error) {
	if mr.decoder == nil {
		if err := mr.start(); err != nil {
			return gjson.Result{}, err
		}
	}
	if mr.inArray && !mr.decoder.More() {
		return gjson.Result{}, io.EOF
	}
	var raw json.RawMessage
	if err := mr.decoder.Decode(&raw); err == io.EOF {
		return gjson.Result{}, io.EOF
	} else if err != nil {
		return gjson.Result{}, fmt.Errorf("Malformed JSON: %w", err)
	}
	return gjson.ParseBytes(raw), nil
}
