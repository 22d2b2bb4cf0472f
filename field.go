package logctx

import (
	"fmt"

	"github.com/valyala/fastjson"
)

// JSONNull is the text form of an absent or null structured value.
// Stored context values that are logically null carry this sentinel so
// downstream renderers can emit a real JSON null instead of an empty string.
const JSONNull = "null"

// Field is an immutable key/value logging field. The value is always carried
// as text; Structured marks values that are pre-serialized JSON, which a
// structured renderer may emit inline rather than as a quoted string.
//
// Within any single field list passed to one call, only the first occurrence
// of a key is honored. Later duplicates are inert.
type Field struct {
	Key        string
	Value      string
	Structured bool
}

// String creates a plain text field.
func String(key, value string) Field {
	return Field{Key: key, Value: value}
}

// Value creates a structured field by serializing v to JSON text.
// If no serializer is configured or serialization fails, it falls back to
// the value's plain text representation. Field construction never fails.
func Value(key string, v any) Field {
	s := activeSerializer()
	if s == nil {
		return String(key, fmt.Sprint(v))
	}
	text, err := s.ToJSONText(v)
	if err != nil {
		return String(key, fmt.Sprint(v))
	}
	return Field{Key: key, Value: text, Structured: true}
}

// JSON creates a structured field from raw JSON text of unknown validity.
// Valid input is minified to a single line so the assembled record stays
// single-line even for pretty-printed payloads. Invalid input is demoted to
// a plain text field, which renderers escape like any other string.
func JSON(key, raw string) Field {
	if compact, ok := minifyJSON(raw); ok {
		return Field{Key: key, Value: compact, Structured: true}
	}
	return String(key, raw)
}

// ValidJSON creates a structured field from raw JSON text the caller
// guarantees is valid, compact JSON. The text is passed through unchecked
// and validity is never re-examined.
func ValidJSON(key, raw string) Field {
	return Field{Key: key, Value: raw, Structured: true}
}

// Err creates a plain field with the standard key "error".
func Err(err error) Field {
	if err == nil {
		return String("error", JSONNull)
	}
	return String("error", err.Error())
}

// minifyJSON validates raw against the permissive JSON grammar (objects,
// arrays, quoted strings, numbers, true/false/null all accepted) and
// returns it with insignificant whitespace removed. Reports false when the
// text is not valid JSON.
func minifyJSON(raw string) (string, bool) {
	v, err := fastjson.Parse(raw)
	if err != nil {
		return "", false
	}
	return string(v.MarshalTo(nil)), true
}

// keySeenBefore reports whether fields[i].Key already occurred at a lower
// index, implementing the first-wins duplicate rule within one call.
func keySeenBefore(fields []Field, i int) bool {
	for j := 0; j < i; j++ {
		if fields[j].Key == fields[i].Key {
			return true
		}
	}
	return false
}
