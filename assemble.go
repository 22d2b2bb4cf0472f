package logctx

// Assemble merges the three field sources of a finished log record into
// the final rendered field list:
//
//  1. eventFields, in the order they were added,
//  2. fields carried by cause's error-context carriers, outermost first,
//  3. the fields currently active on c.
//
// The first occurrence of a key across the whole merged sequence wins;
// later duplicates from any source are dropped. The returned order is the
// discovery order and is used directly as the rendered field order.
//
// Assemble is total: it never fails and never mutates the store. Carriers
// merged here are marked consumed so re-logging the same error does not
// attribute the same fields twice.
func (c *Context) Assemble(eventFields []Field, cause error) []Field {
	var out []Field
	seen := make(map[string]struct{}, len(eventFields))
	add := func(f Field) {
		if _, dup := seen[f.Key]; dup {
			return
		}
		seen[f.Key] = struct{}{}
		out = append(out, f)
	}

	for _, f := range eventFields {
		add(f)
	}
	if cause != nil {
		consumeAttachedFields(cause, add)
	}
	for _, f := range c.ActiveFields() {
		add(f)
	}
	return out
}
