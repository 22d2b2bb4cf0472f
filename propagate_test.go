package logctx

import (
	"context"
	"reflect"
	"testing"
)

func TestPropagate_CapturesAtWrapTime(t *testing.T) {
	parent := newTestContext(true)
	frame := parent.Enter(String("a", "1"))

	task := Propagate(parent, func(child *Context) {
		want := []Field{{Key: "a", Value: "1"}}
		if got := child.ActiveFields(); !reflect.DeepEqual(got, want) {
			t.Errorf("child fields: got %v, want %v", got, want)
		}
	})

	// Fields entered after wrapping are not part of the captured snapshot.
	late := parent.Enter(String("b", "2"))
	task()
	late.Exit()
	frame.Exit()
}

func TestGo_RunsWithParentFields(t *testing.T) {
	parent := newTestContext(true)
	frame := parent.Enter(String("a", "1"), ValidJSON("b", `{"x":2}`))
	defer frame.Exit()

	results := make(chan []Field, 1)
	parent.Go(func(child *Context) {
		results <- child.ActiveFields()
	})

	want := []Field{
		{Key: "a", Value: "1"},
		{Key: "b", Value: `{"x":2}`, Structured: true},
	}
	if got := <-results; !reflect.DeepEqual(got, want) {
		t.Errorf("goroutine fields: got %v, want %v", got, want)
	}

	// The parent is untouched by the child's scope lifecycle.
	if got := parent.ActiveFields(); !reflect.DeepEqual(got, want) {
		t.Errorf("parent fields changed: %v", got)
	}
}

func TestPropagateContext_CarriesChildContext(t *testing.T) {
	parent := newTestContext(true)
	frame := parent.Enter(String("a", "1"))
	defer frame.Exit()

	ctx := IntoContext(context.Background(), parent)

	done := make(chan struct{})
	task := PropagateContext(ctx, func(childCtx context.Context) {
		defer close(done)
		child := FromContext(childCtx)
		if child == parent {
			t.Error("child shares the parent Context")
		}
		if v, _ := child.Store().Get("a"); v != "1" {
			t.Errorf("child missing propagated field, got %q", v)
		}
	})
	go task()
	<-done
}
