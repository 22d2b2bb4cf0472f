// Package fields provides field-constructor helpers with consistent naming
// for common request-scoped data.
//
// Usage:
//
//	import "github.com/JupiterMetaLabs/logctx/fields"
//
//	frame := lc.Enter(
//	    fields.RequestID(id),
//	    fields.Component("billing"),
//	    fields.Payload(rawJSON),
//	)
package fields

import (
	"strconv"
	"time"

	"github.com/JupiterMetaLabs/logctx"
)

// --- Request fields ---

// RequestID creates a request identifier field.
func RequestID(id string) logctx.Field {
	return logctx.String("request_id", id)
}

// UserID creates a user identifier field.
func UserID(id string) logctx.Field {
	return logctx.String("user_id", id)
}

// TenantID creates a tenant identifier field.
func TenantID(id string) logctx.Field {
	return logctx.String("tenant_id", id)
}

// RemoteAddr creates a peer address field.
func RemoteAddr(addr string) logctx.Field {
	return logctx.String("remote_addr", addr)
}

// --- Application fields ---

// Component creates a component name field.
func Component(name string) logctx.Field {
	return logctx.String("component", name)
}

// Operation creates an operation name field.
func Operation(name string) logctx.Field {
	return logctx.String("operation", name)
}

// Attempt creates a retry attempt counter field.
func Attempt(n int) logctx.Field {
	return logctx.String("attempt", strconv.Itoa(n))
}

// DurationMs creates an elapsed-time field in milliseconds.
func DurationMs(d time.Duration) logctx.Field {
	return logctx.String("duration_ms", strconv.FormatInt(d.Milliseconds(), 10))
}

// StatusCode creates an HTTP status code field.
func StatusCode(code int) logctx.Field {
	return logctx.String("status_code", strconv.Itoa(code))
}

// --- Structured fields ---

// Payload creates a structured field from raw JSON of unknown validity
// under the standard key "payload".
func Payload(rawJSON string) logctx.Field {
	return logctx.JSON("payload", rawJSON)
}

// Object serializes v into a structured field.
func Object(key string, v any) logctx.Field {
	return logctx.Value(key, v)
}
