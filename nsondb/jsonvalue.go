//
// Copyright (c) 2024, 2026 the nson-go-sdk authors. All rights reserved.
//
// Licensed under the Universal Permissive License v 1.0 as shown at
//  https://oss.oracle.com/licenses/upl/
//

package nsondb

import (
	"encoding/json"
	"math/big"
	"time"

	"github.com/nsondb/nson-go-sdk/nsondb/nsonerr"
	"github.com/nsondb/nson-go-sdk/nsondb/types"
)

// JSONValue converts a value tree into plain Go values that encoding/json
// renders faithfully. Numbers become json.Number in canonical decimal
// form rather than big.Rat's fraction notation, Timestamps become their
// ISO 8601 text, Binary values stay []byte, which encoding/json renders
// as base64, and all three null kinds become JSON null.
func JSONValue(value types.FieldValue) (interface{}, error) {
	switch v := value.(type) {
	case nil, *types.NullValue, *types.JSONNullValue, *types.EmptyValue:
		return nil, nil

	case *types.MapValue:
		out := make(map[string]interface{}, v.Len())
		for _, k := range v.Keys() {
			fv, _ := v.Get(k)
			jv, err := JSONValue(fv)
			if err != nil {
				return nil, err
			}
			out[k] = jv
		}
		return out, nil

	case *types.RecordValue:
		return JSONValue(v.AsMapValue())

	case map[string]interface{}:
		out := make(map[string]interface{}, len(v))
		for k, fv := range v {
			jv, err := JSONValue(fv)
			if err != nil {
				return nil, err
			}
			out[k] = jv
		}
		return out, nil

	case []types.FieldValue:
		out := make([]interface{}, len(v))
		for i, fv := range v {
			jv, err := JSONValue(fv)
			if err != nil {
				return nil, err
			}
			out[i] = jv
		}
		return out, nil

	case []interface{}:
		out := make([]interface{}, len(v))
		for i, fv := range v {
			jv, err := JSONValue(fv)
			if err != nil {
				return nil, err
			}
			out[i] = jv
		}
		return out, nil

	case *big.Rat:
		s, err := types.NumberString(v)
		if err != nil {
			return nil, err
		}
		return json.Number(s), nil

	case time.Time:
		s, err := types.FormatTimestamp(v)
		if err != nil {
			// Sub-microsecond instants cannot round-trip on the wire but
			// can still be rendered for display.
			s = v.UTC().Format(time.RFC3339Nano)
		}
		return s, nil

	case string, bool, int, int64, float64, []byte, json.Number:
		return v, nil

	case int8, int16, int32, uint, uint8, uint16, uint32, uint64, float32:
		return v, nil

	default:
		return nil, nsonerr.NewIllegalArgument("nson: unsupported value of type %T", value)
	}
}
