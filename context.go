package logctx

import (
	"sort"
	"strings"
)

// StructuredKeySuffix marks a stored key whose value is pre-serialized JSON.
// It is appended to keys inside the Store only while a structured renderer
// is registered; without one, structured values degrade to plain strings
// under the unmodified key. A logical key is stored under at most one of
// the two variants at any instant.
const StructuredKeySuffix = " (json)"

// Context owns the active logging fields of one goroutine. Fields are added
// for the dynamic extent of a scope via Enter/Run and restored exactly on
// exit, regardless of nesting depth or duplicate keys across levels.
//
// A Context is not safe for concurrent use. Each goroutine works with its
// own Context; use Capture and WithSnapshot (or Propagate) to move fields
// across goroutines.
type Context struct {
	store    Store
	markKeys bool
	depth    int
}

// New creates a Context backed by a fresh MapStore. Whether structured
// values get suffix-marked keys follows the process-wide renderer
// registration at the time of the call.
func New() *Context {
	return NewWithStore(NewMapStore())
}

// NewWithStore creates a Context on top of an existing diagnostic store,
// for hosts that bring their own Store implementation.
func NewWithStore(store Store) *Context {
	return &Context{store: store, markKeys: StructuredRendererRegistered()}
}

// StructuredKeys overrides the renderer-registration default for this
// Context. It must be called before the first Enter and returns the
// Context for chaining.
func (c *Context) StructuredKeys(on bool) *Context {
	c.markKeys = on
	return c
}

// Store exposes the underlying diagnostic store.
func (c *Context) Store() Store {
	return c.store
}

// restoreEntry records what Exit must do for one stored key: either put a
// prior value back or remove the key the frame introduced.
type restoreEntry struct {
	key     string
	value   string
	restore bool
}

// Frame is the undo token of one Enter call. It must be exited exactly
// once, by the same logical call path that entered it; frames nest in
// strict LIFO order on one goroutine.
type Frame struct {
	ctx     *Context
	depth   int
	entries []restoreEntry
	exited  bool
}

// Enter activates fields for a new scope and returns the frame that undoes
// it. Within the call, the first occurrence of a key wins and later
// duplicates are ignored. For every key written, any prior value under
// either stored-key variant is captured for restoration, and a conflicting
// opposite-kind entry is removed rather than left orphaned.
//
// Prefer Run, which ties the frame's lifetime to a function scope. When
// using Enter directly, pair it with a deferred Exit:
//
//	frame := lc.Enter(logctx.String("order", id))
//	defer frame.Exit()
func (c *Context) Enter(fields ...Field) Frame {
	c.depth++
	frame := Frame{ctx: c, depth: c.depth}
	for i, f := range fields {
		if keySeenBefore(fields, i) {
			continue
		}
		stored := c.storedKey(f)
		if prev, ok := c.store.Get(stored); ok {
			// Identical value under the identical stored key needs no
			// restore entry; Exit leaving it in place is already exact.
			if prev != f.Value {
				frame.entries = append(frame.entries, restoreEntry{key: stored, value: prev, restore: true})
			}
		} else {
			frame.entries = append(frame.entries, restoreEntry{key: stored})
		}
		if other := c.otherStoredKey(f); other != stored {
			if prev, ok := c.store.Get(other); ok {
				frame.entries = append(frame.entries, restoreEntry{key: other, value: prev, restore: true})
				c.store.Remove(other)
			}
		}
		c.store.Put(stored, f.Value)
	}
	return frame
}

// Exit restores the store to its exact state before the matching Enter.
// Exiting a frame twice, or out of LIFO order, is a programming error and
// panics; the Run and WithSnapshot helpers make that structurally
// impossible.
func (f *Frame) Exit() {
	if f.ctx == nil {
		panic("logctx: Exit on zero Frame")
	}
	if f.exited {
		panic("logctx: frame exited twice")
	}
	if f.depth != f.ctx.depth {
		panic("logctx: scope frames exited out of order")
	}
	f.exited = true
	f.ctx.depth--
	// Entries touch distinct stored keys, so order is irrelevant.
	for _, e := range f.entries {
		if e.restore {
			f.ctx.store.Put(e.key, e.value)
		} else {
			f.ctx.store.Remove(e.key)
		}
	}
}

// Run activates fields for the duration of fn and restores prior state on
// every exit path, including panics. If fn returns an error that does not
// already carry context, the fields active at this boundary are attached
// to it so they remain visible when the error is logged after the scope
// has exited.
func (c *Context) Run(fields []Field, fn func() error) error {
	frame := c.Enter(fields...)
	defer frame.Exit()
	if err := fn(); err != nil {
		return c.attachIfAbsent(err)
	}
	return nil
}

// ActiveFields returns the currently active fields as logical Fields, with
// stored-key suffixes decoded back into the Structured flag. The result is
// in insertion order when the store supports KeyLister, otherwise sorted
// by stored key.
func (c *Context) ActiveFields() []Field {
	all := c.store.CopyAll()
	if len(all) == 0 {
		return nil
	}
	var keys []string
	if kl, ok := c.store.(KeyLister); ok {
		keys = kl.Keys()
	} else {
		keys = make([]string, 0, len(all))
		for k := range all {
			keys = append(keys, k)
		}
		sort.Strings(keys)
	}
	fields := make([]Field, 0, len(all))
	for _, k := range keys {
		v, ok := all[k]
		if !ok {
			continue
		}
		logical, structured := c.splitStoredKey(k)
		fields = append(fields, Field{Key: logical, Value: v, Structured: structured})
	}
	return fields
}

// Depth returns the number of currently active scopes, mainly for tests
// and debugging.
func (c *Context) Depth() int {
	return c.depth
}

func (c *Context) storedKey(f Field) string {
	if f.Structured && c.markKeys {
		return f.Key + StructuredKeySuffix
	}
	return f.Key
}

// otherStoredKey returns the stored key a same-logical-key field of the
// opposite kind would have used. Equal to storedKey when marking is off.
func (c *Context) otherStoredKey(f Field) string {
	if !c.markKeys {
		return f.Key
	}
	if f.Structured {
		return f.Key
	}
	return f.Key + StructuredKeySuffix
}

func (c *Context) splitStoredKey(stored string) (string, bool) {
	if c.markKeys && strings.HasSuffix(stored, StructuredKeySuffix) {
		return strings.TrimSuffix(stored, StructuredKeySuffix), true
	}
	return stored, false
}
