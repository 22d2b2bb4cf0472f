package logctx

import "sync/atomic"

// maxErrorDepth bounds cause-graph traversal. Carriers are deduplicated by
// identity, but an adversarial Unwrap cycle of non-carrier errors would
// otherwise loop forever.
const maxErrorDepth = 100

// ContextError wraps an error with the fields that were active when it
// crossed a scope boundary, so those fields are still visible when the
// error is logged after the scope has exited.
//
// The wrapper is transparent: Error returns the cause's message unchanged
// and Unwrap exposes the cause for errors.Is and errors.As.
type ContextError struct {
	cause    error
	snapshot Snapshot
	consumed atomic.Bool
}

func (e *ContextError) Error() string {
	return e.cause.Error()
}

func (e *ContextError) Unwrap() error {
	return e.cause
}

// Fields returns the carried fields in capture order. Inspecting them does
// not mark the carrier consumed.
func (e *ContextError) Fields() []Field {
	return e.snapshot.Fields()
}

// AttachContext wraps err with the fields currently active on c, unless
// something reachable through err's cause graph already carries context.
// Only the first scope boundary an error crosses attaches a carrier; inner
// captures win over outer ones. Attaching an empty context, or to a nil
// error, returns err unchanged.
//
// Run and WithSnapshot call this automatically at their scope boundary;
// AttachContext is for hand-rolled boundaries such as interceptors.
func AttachContext(c *Context, err error) error {
	if err == nil {
		return nil
	}
	return c.attachIfAbsent(err)
}

func (c *Context) attachIfAbsent(err error) error {
	if HasAttachedContext(err) {
		return err
	}
	snap := c.Capture()
	if snap.Empty() {
		return err
	}
	return &ContextError{cause: err, snapshot: snap}
}

// HasAttachedContext reports whether err or anything in its cause graph
// carries attached context fields.
func HasAttachedContext(err error) bool {
	found := false
	walkCarriers(err, func(*ContextError) bool {
		found = true
		return false
	})
	return found
}

// AttachedFields collects the fields of every distinct carrier reachable
// from err, outermost first. Carriers reachable through several paths of
// the graph contribute once. The result is not key-deduplicated; the
// record assembler does that across all field sources.
func AttachedFields(err error) []Field {
	var out []Field
	walkCarriers(err, func(ce *ContextError) bool {
		out = append(out, ce.snapshot.fields...)
		return true
	})
	return out
}

// consumeAttachedFields is the assembly-time variant of AttachedFields: a
// carrier merged into one record is marked consumed and skipped by later
// assemblies, so the same fields are not attributed twice when the same
// error is logged through different paths.
func consumeAttachedFields(err error, visit func(Field)) {
	walkCarriers(err, func(ce *ContextError) bool {
		if ce.consumed.CompareAndSwap(false, true) {
			for _, f := range ce.snapshot.fields {
				visit(f)
			}
		}
		return true
	})
}

// walkCarriers visits every distinct *ContextError reachable from err in
// discovery (pre-)order, following both single Unwrap chains and joined
// error lists. Identity deduplication keeps cyclic graphs from visiting a
// carrier twice. The visit callback returns false to stop early.
func walkCarriers(err error, visit func(*ContextError) bool) {
	seen := make(map[*ContextError]struct{})
	walkErrorGraph(err, 0, seen, visit)
}

func walkErrorGraph(err error, depth int, seen map[*ContextError]struct{}, visit func(*ContextError) bool) bool {
	if err == nil || depth > maxErrorDepth {
		return true
	}
	if ce, ok := err.(*ContextError); ok {
		if _, dup := seen[ce]; dup {
			return true
		}
		seen[ce] = struct{}{}
		if !visit(ce) {
			return false
		}
	}
	switch x := err.(type) {
	case interface{ Unwrap() error }:
		return walkErrorGraph(x.Unwrap(), depth+1, seen, visit)
	case interface{ Unwrap() []error }:
		for _, sub := range x.Unwrap() {
			if !walkErrorGraph(sub, depth+1, seen, visit) {
				return false
			}
		}
	}
	return true
}
