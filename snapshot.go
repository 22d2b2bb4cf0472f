package logctx

// Snapshot is an immutable copy of all fields active on a Context at a
// point in time, including kind metadata. It is a plain shareable value
// with no ties back to the scope that captured it, and is the only way
// fields cross goroutine boundaries.
type Snapshot struct {
	fields []Field
}

// SnapshotOf builds a Snapshot directly from a field list, applying the
// first-wins duplicate rule. Useful for handing a fixed context to
// WithSnapshot without a live capturing Context.
func SnapshotOf(fields ...Field) Snapshot {
	out := make([]Field, 0, len(fields))
	for i := range fields {
		if !keySeenBefore(fields, i) {
			out = append(out, fields[i])
		}
	}
	return Snapshot{fields: out}
}

// Capture copies the currently active fields into a Snapshot. The live
// store is not touched; capturing with no active scope yields an empty
// Snapshot.
func (c *Context) Capture() Snapshot {
	return Snapshot{fields: c.ActiveFields()}
}

// Fields returns a copy of the snapshot's fields in capture order.
func (s Snapshot) Fields() []Field {
	if len(s.fields) == 0 {
		return nil
	}
	out := make([]Field, len(s.fields))
	copy(out, s.fields)
	return out
}

// Len returns the number of captured fields.
func (s Snapshot) Len() int {
	return len(s.fields)
}

// Empty reports whether the snapshot holds no fields.
func (s Snapshot) Empty() bool {
	return len(s.fields) == 0
}

// WithSnapshot re-enters a previously captured context for the duration of
// fn, layered on top of whatever is already active. It follows the same
// duplicate-key and exact-restore rules as Run, and likewise attaches the
// active fields to a propagating error at the scope boundary.
func (c *Context) WithSnapshot(s Snapshot, fn func() error) error {
	return c.Run(s.fields, fn)
}
