package logctx

import (
	"bytes"
	"encoding/json"
	"sync/atomic"
)

// Renderer turns a finished record into bytes. The Structured tag on each
// field tells the renderer whether the value is pre-serialized JSON to be
// emitted inline or a plain string to be quoted and escaped.
type Renderer interface {
	Render(level, msg string, fields []Field) []byte
}

var structuredRenderer atomic.Bool

// RegisterStructuredRenderer declares, once per process and before any
// Context is created, that a structured-field-aware renderer is in use.
// Contexts created afterwards suffix-mark stored keys of structured values
// so the kind survives the text-only store. This registration is the only
// side channel between renderer and engine; calling it again is a no-op.
func RegisterStructuredRenderer() {
	structuredRenderer.Store(true)
}

// StructuredRendererRegistered reports whether a structured renderer has
// been registered.
func StructuredRendererRegistered() bool {
	return structuredRenderer.Load()
}

// JSONRenderer renders records as single-line JSON objects with a trailing
// newline. Structured field values are emitted inline, unescaped; plain
// values are emitted as JSON strings.
type JSONRenderer struct{}

// NewJSONRenderer creates a JSONRenderer and registers it as a structured
// renderer.
func NewJSONRenderer() JSONRenderer {
	RegisterStructuredRenderer()
	return JSONRenderer{}
}

func (JSONRenderer) Render(level, msg string, fields []Field) []byte {
	var buf bytes.Buffer
	buf.WriteString(`{"level":`)
	writeJSONString(&buf, level)
	buf.WriteString(`,"msg":`)
	writeJSONString(&buf, msg)
	for _, f := range fields {
		buf.WriteByte(',')
		writeJSONString(&buf, f.Key)
		buf.WriteByte(':')
		if f.Structured {
			buf.WriteString(f.Value)
		} else {
			writeJSONString(&buf, f.Value)
		}
	}
	buf.WriteString("}\n")
	return buf.Bytes()
}

func writeJSONString(buf *bytes.Buffer, s string) {
	// json.Marshal of a string cannot fail and handles all escaping.
	b, _ := json.Marshal(s)
	buf.Write(b)
}
