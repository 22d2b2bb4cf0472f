package logctx

import (
	"encoding/json"
	"sync/atomic"
)

// Serializer converts arbitrary application values into JSON text for
// structured fields. Implementations must be safe for concurrent use.
type Serializer interface {
	ToJSONText(v any) (string, error)
}

// jsonSerializer is the default Serializer backed by encoding/json.
type jsonSerializer struct{}

func (jsonSerializer) ToJSONText(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

var serializer atomic.Pointer[Serializer]

func init() {
	var s Serializer = jsonSerializer{}
	serializer.Store(&s)
}

// SetSerializer replaces the process-wide serializer used by Value.
// Passing nil disables serialization; Value then falls back to plain text.
func SetSerializer(s Serializer) {
	if s == nil {
		serializer.Store(new(Serializer))
		return
	}
	serializer.Store(&s)
}

func activeSerializer() Serializer {
	return *serializer.Load()
}
