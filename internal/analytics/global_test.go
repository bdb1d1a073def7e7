package analytics

import (
	"context"
	"testing"

	"github.com/tweenmart/storefront-backend/pkg/enums"
)

type countingEmitter struct {
	calls int
}

func (c *countingEmitter) Emit(context.Context, enums.AnalyticsEventType, string, any) {
	c.calls++
}

func TestInitBindsOnce(t *testing.T) {
	t.Cleanup(Reset)
	Reset()

	first := &countingEmitter{}
	second := &countingEmitter{}

	if !Init(first) {
		t.Fatal("first Init should bind")
	}
	if Init(second) {
		t.Fatal("second Init must be a no-op")
	}

	Emit(context.Background(), enums.AnalyticsEventViewItem, "", nil)
	if first.calls != 1 {
		t.Fatalf("expected first emitter to receive the event, got %d", first.calls)
	}
	if second.calls != 0 {
		t.Fatalf("second emitter must stay unbound, got %d", second.calls)
	}
}

func TestSinkFollowsLateBinding(t *testing.T) {
	t.Cleanup(Reset)
	Reset()

	handle := Sink()

	// Held before Init: events are dropped, not buffered.
	handle.Emit(context.Background(), enums.AnalyticsEventAddToCart, "sess-1", nil)

	bound := &countingEmitter{}
	if !Init(bound) {
		t.Fatal("Init should bind")
	}

	handle.Emit(context.Background(), enums.AnalyticsEventAddToCart, "sess-1", nil)
	if bound.calls != 1 {
		t.Fatalf("expected the bound emitter to receive the post-Init event, got %d", bound.calls)
	}
}

func TestInitRejectsNil(t *testing.T) {
	t.Cleanup(Reset)
	Reset()

	if Init(nil) {
		t.Fatal("nil emitter must not bind")
	}
	// Emitting with nothing bound must not panic.
	Emit(context.Background(), enums.AnalyticsEventViewItem, "", nil)
}
