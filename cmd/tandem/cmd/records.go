package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/goccy/go-json"

	"github.com/kode4food/tandem/join"
	"github.com/kode4food/tandem/window"
)

type (
	// inputRecord is a single line of join input
	inputRecord struct {
		Side      string           `json:"side"`
		Key       json.RawMessage  `json:"key"`
		Value     string           `json:"value"`
		Timestamp window.Timestamp `json:"timestamp"`
	}

	// outputRecord is a single line of join output
	outputRecord struct {
		Key   json.RawMessage `json:"key"`
		Value string          `json:"value"`
	}

	// recordReader decodes a stream of JSON input records
	recordReader struct {
		dec  *json.Decoder
		line int
	}
)

// ErrMissingKey is returned for input records that carry no key at all
var ErrMissingKey = errors.New("record has no key")

func newRecordReader(r io.Reader) *recordReader {
	return &recordReader{
		dec: json.NewDecoder(r),
	}
}

// next decodes the next record, returning io.EOF once the input is drained.
// Keys are compacted so that equal JSON keys compare as equal strings
func (r *recordReader) next() (join.Side, string, string, window.Timestamp, error) {
	var rec inputRecord
	if err := r.dec.Decode(&rec); err != nil {
		if errors.Is(err, io.EOF) {
			return 0, "", "", 0, io.EOF
		}
		return 0, "", "", 0, fmt.Errorf("record %d: %w", r.line+1, err)
	}
	r.line++

	side, err := join.ParseSide(rec.Side)
	if err != nil {
		return 0, "", "", 0, fmt.Errorf("record %d: %w", r.line, err)
	}
	if len(rec.Key) == 0 || string(rec.Key) == "null" {
		return 0, "", "", 0, fmt.Errorf("record %d: %w", r.line, ErrMissingKey)
	}
	var key bytes.Buffer
	if err := json.Compact(&key, rec.Key); err != nil {
		return 0, "", "", 0, fmt.Errorf("record %d: %w", r.line, err)
	}
	return side, key.String(), rec.Value, rec.Timestamp, nil
}

// recordWriter returns a join.Sink that encodes each joined record as a
// line of JSON
func recordWriter(w io.Writer) join.Sink[string, string] {
	enc := json.NewEncoder(w)
	return func(k string, v string) error {
		return enc.Encode(outputRecord{
			Key:   json.RawMessage(k),
			Value: v,
		})
	}
}
