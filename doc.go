// Package logctx is a scoped structured-logging context engine: it attaches
// key/value fields to every record emitted within a dynamic scope, including
// records emitted by code the scope's author does not control, and records
// emitted after an error has already left the scope.
//
// # Guarantees
//
//   - Exact restoration: after a scope exits, the field store is bit-for-bit
//     what it was before the scope entered, under arbitrary nesting.
//   - Confinement: a Context belongs to one goroutine; fields only cross
//     goroutines through explicit Snapshot transfer.
//   - Totality: entering scopes, assembling records, and logging never fail
//     and never abort the caller's control flow.
//
// # Basic usage
//
//	lc := logctx.New()
//	_ = lc.Run([]logctx.Field{logctx.String("order", "O-1")}, func() error {
//	    logger.Info(logctx.IntoContext(ctx, lc), "validating") // order=O-1
//	    return process()                                       // errors carry order=O-1 out
//	})
//
// Structured fields hold pre-serialized JSON and survive the text-only
// store; a registered structured renderer emits them inline:
//
//	logctx.JSON("payload", `{"id": 1}`)   // validated, minified
//	logctx.Value("user", user)            // serialized via encoding/json
//
// The zap-backed Logger assembles every record from call-site fields, fields
// carried by the error, and the active context, in that precedence, with
// first-occurrence-wins de-duplication.
package logctx
