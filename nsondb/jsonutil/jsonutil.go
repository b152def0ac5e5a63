//
// Copyright (c) 2024, 2026 the nson-go-sdk authors. All rights reserved.
//
// Licensed under the Universal Permissive License v 1.0 as shown at
//  https://oss.oracle.com/licenses/upl/
//

// Package jsonutil provides utility functions for manipulating JSON.
package jsonutil

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// AsJSON encodes the specified value into a JSON string.
// It returns the error message if it fails to encode.
func AsJSON(v interface{}) string {
	return asJSON(v, false)
}

// AsPrettyJSON encodes the specified value into a JSON string with
// indentation.
// It returns the error message if it fails to encode.
func AsPrettyJSON(v interface{}) string {
	return asJSON(v, true)
}

func asJSON(v interface{}, pretty bool) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	// Keep "<", ">" and "&" literal. The output is for humans, not HTML.
	enc.SetEscapeHTML(false)
	if pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(v); err != nil {
		return fmt.Sprintf("JSON encoding failed: %v", err)
	}
	return string(bytes.TrimRight(buf.Bytes(), "\n"))
}

// ExpectObject unmarshals data as a generic JSON object, preserving
// number precision by decoding numbers as json.Number rather than
// float64.
func ExpectObject(data []byte) (map[string]interface{}, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var m map[string]interface{}
	if err := dec.Decode(&m); err != nil {
		return nil, err
	}
	return m, nil
}

// ExpectValue unmarshals data as a single JSON value of any kind, with
// numbers decoded as json.Number.
func ExpectValue(data []byte) (interface{}, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}
