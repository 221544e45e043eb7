// Package jsondoc converts between Go values and the loosely typed documents
// exchanged with document stores. A normalized document only holds the values
// encoding/json produces when decoding into any: string, float64, bool, nil,
// []any and map[string]any.
package jsondoc

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"reflect"
)

// Encode turns a tagged struct (or any JSON-marshalable value with an object
// shape) into a normalized document.
func Encode(v any) (map[string]any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}

	var doc map[string]any
	if err = json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	if doc == nil {
		return nil, fmt.Errorf("encode document: %T is not an object", v)
	}
	return doc, nil
}

// Decode fills the struct pointed to by out from doc.
func Decode(doc map[string]any, out any) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("decode document: %w", err)
	}
	if err = json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode document: %w", err)
	}
	return nil
}

// Normalize returns a deep copy of doc in normalized form.
func Normalize(doc map[string]any) (map[string]any, error) {
	if doc == nil {
		return map[string]any{}, nil
	}
	return Encode(doc)
}

// NormalizeValue returns v as it would appear inside a normalized document.
func NormalizeValue(v any) (any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("normalize value: %w", err)
	}
	var out any
	if err = json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("normalize value: %w", err)
	}
	return out, nil
}

// Marshal renders a document as compact JSON.
func Marshal(doc map[string]any) ([]byte, error) {
	return json.Marshal(doc)
}

// Unmarshal parses JSON into a normalized document.
func Unmarshal(raw []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	var doc map[string]any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("unmarshal document: %w", err)
	}
	return doc, nil
}

// Equal compares two normalized values.
func Equal(a, b any) bool {
	return reflect.DeepEqual(a, b)
}

// Int64 reads an integral number from a normalized value. Missing values read
// as 0.
func Int64(v any) (int64, error) {
	switch n := v.(type) {
	case nil:
		return 0, nil
	case float64:
		if n != math.Trunc(n) || math.IsInf(n, 0) {
			return 0, fmt.Errorf("%v is not an integer", n)
		}
		return int64(n), nil
	case int64:
		return n, nil
	case int:
		return int64(n), nil
	default:
		return 0, fmt.Errorf("%T is not a number", v)
	}
}
