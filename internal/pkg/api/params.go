package api

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/canvastools/canvas-as-code/internal/pkg/utils/errors"
)

// Params flattens the value to the form fields expected by the Canvas API.
// Nested keys use the bracket syntax and list items are numbered, for example
// "assignment[assignment_overrides][0][student_ids][0]" -> "123".
func Params(key string, value any) map[string]string {
	out := make(map[string]string)
	flattenParam(out, key, toJsonValue(value))
	return out
}

// MergeParams from all maps, the last value wins.
func MergeParams(all ...map[string]string) map[string]string {
	out := make(map[string]string)
	for _, params := range all {
		for k, v := range params {
			out[k] = v
		}
	}
	return out
}

func flattenParam(out map[string]string, key string, value any) {
	switch v := value.(type) {
	case nil:
		// nil values are not sent
	case map[string]any:
		for k, item := range v {
			flattenParam(out, fmt.Sprintf("%s[%s]", key, k), item)
		}
	case []any:
		for i, item := range v {
			flattenParam(out, fmt.Sprintf("%s[%d]", key, i), item)
		}
	case json.Number:
		out[key] = v.String()
	case string:
		out[key] = v
	case bool:
		out[key] = fmt.Sprintf("%t", v)
	default:
		out[key] = fmt.Sprintf("%v", v)
	}
}

// toJsonValue converts the value to maps/slices/scalars through the JSON encoding,
// so the form field names follow the "json" struct tags.
func toJsonValue(value any) any {
	data, err := json.Marshal(value)
	if err != nil {
		panic(errors.Errorf(`cannot convert value to API params: %s`, err))
	}

	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()
	var parsed any
	if err := decoder.Decode(&parsed); err != nil {
		panic(errors.Errorf(`cannot convert value to API params: %s`, err))
	}
	return parsed
}
