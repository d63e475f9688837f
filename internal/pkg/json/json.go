package json

import (
	"bytes"
	"encoding/json"

	"github.com/canvastools/canvas-as-code/internal/pkg/utils/errors"
)

// Encode without HTML escaping, "> " stays readable in the stored files.
func Encode(v any, pretty bool) ([]byte, error) {
	var out bytes.Buffer
	enc := json.NewEncoder(&out)
	enc.SetEscapeHTML(false)
	if pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(v); err != nil {
		return nil, processJSONError(err)
	}
	data := out.Bytes()
	if !pretty {
		// Encoder appends a newline, the compact form is used inline
		data = bytes.TrimRight(data, "\n")
	}
	return data, nil
}

func MustEncode(v any, pretty bool) []byte {
	data, err := Encode(v, pretty)
	if err != nil {
		panic(err)
	}
	return data
}

func EncodeString(v any, pretty bool) (string, error) {
	data, err := Encode(v, pretty)
	return string(data), err
}

func MustEncodeString(v any, pretty bool) string {
	data, err := EncodeString(v, pretty)
	if err != nil {
		panic(err)
	}
	return data
}

func Decode(data []byte, m any) error {
	if err := json.Unmarshal(data, m); err != nil {
		return processJSONError(err)
	}
	return nil
}

func MustDecode(data []byte, m any) {
	if err := Decode(data, m); err != nil {
		panic(err)
	}
}

func DecodeString(data string, m any) error {
	return Decode([]byte(data), m)
}

func MustDecodeString(data string, m any) {
	if err := DecodeString(data, m); err != nil {
		panic(err)
	}
}

// DecodeStrict fails on a key not present in the target struct.
func DecodeStrict(data []byte, m any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(m); err != nil {
		return processJSONError(err)
	}
	return nil
}

func processJSONError(err error) error {
	var typeError *json.UnmarshalTypeError
	var syntaxError *json.SyntaxError

	switch {
	// Custom error message
	case errors.As(err, &typeError):
		return errors.Errorf(`key "%s" has invalid type "%s"`, typeError.Field, typeError.Value)
	case errors.As(err, &syntaxError):
		return errors.Errorf(`%s, offset: %d`, syntaxError, syntaxError.Offset)
	default:
		return err
	}
}
