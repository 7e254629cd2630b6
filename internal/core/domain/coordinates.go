package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// NullCoordinates is the serialized form of an absent shape.
const NullCoordinates = "null"

// EncodeCoordinates serializes a raw coordinates tree into its stored text form.
// Whitespace is compacted; numbers keep their original textual form so the
// value decodes back to the same structure. A nil or empty input encodes as "null".
func EncodeCoordinates(raw []byte) (string, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return NullCoordinates, nil
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return "", &MalformedInputError{Reason: fmt.Sprintf("shape.coordinates: %v", err)}
	}
	return buf.String(), nil
}

// DecodeCoordinates parses stored coordinates text back into a tree of
// []any, map[string]any, json.Number, string, bool and nil.
func DecodeCoordinates(text string) (any, error) {
	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("decode coordinates: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode coordinates: trailing data after value")
	}
	return v, nil
}
