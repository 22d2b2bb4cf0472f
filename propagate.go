package logctx

import "context"

// Propagate captures parent's active fields now and returns a unit of work
// that runs fn with those fields re-entered on a fresh child Context. The
// returned func is what you hand to an executor or worker pool; the parent
// Context is never touched by the child and both sides may keep entering
// and exiting scopes independently.
func Propagate(parent *Context, fn func(*Context)) func() {
	snap := parent.Capture()
	markKeys := parent.markKeys
	return func() {
		child := New()
		child.markKeys = markKeys
		_ = child.WithSnapshot(snap, func() error {
			fn(child)
			return nil
		})
	}
}

// Go runs fn on a new goroutine with the caller's current fields
// re-entered, via Propagate.
func (c *Context) Go(fn func(*Context)) {
	go Propagate(c, fn)()
}

// PropagateContext is the context.Context flavor of Propagate: it captures
// the fields of the Context carried by ctx and returns a unit of work in
// which fn receives a context carrying the re-entered child. Deadlines and
// values of ctx are preserved.
func PropagateContext(ctx context.Context, fn func(context.Context)) func() {
	parent := FromContext(ctx)
	return Propagate(parent, func(child *Context) {
		fn(IntoContext(ctx, child))
	})
}
