package analytics

import (
	"context"
	"sync"

	"github.com/tweenmart/storefront-backend/pkg/enums"
)

// The process-wide sink mirrors a shared page-level event queue: it exists
// before Init and buffers nothing, Init binds it exactly once, and later
// Init calls are no-ops.

var (
	globalMu      sync.RWMutex
	globalEmitter Emitter = NopEmitter{}
	globalBound   bool
)

// Init binds the process-wide emitter. The first call wins; subsequent
// calls are ignored so repeated bootstrap paths stay safe.
func Init(emitter Emitter) bool {
	if emitter == nil {
		return false
	}
	globalMu.Lock()
	defer globalMu.Unlock()
	if globalBound {
		return false
	}
	globalEmitter = emitter
	globalBound = true
	return true
}

// Emit forwards to the bound emitter, or drops the event when none is
// bound yet.
func Emit(ctx context.Context, eventType enums.AnalyticsEventType, sessionID string, payload any) {
	globalMu.RLock()
	emitter := globalEmitter
	globalMu.RUnlock()
	emitter.Emit(ctx, eventType, sessionID, payload)
}

// Sink returns an Emitter that forwards every event through the
// process-wide sink. Handlers can hold it before Init runs; events emitted
// before binding are dropped, events after binding reach the bound emitter.
func Sink() Emitter {
	return sink{}
}

type sink struct{}

func (sink) Emit(ctx context.Context, eventType enums.AnalyticsEventType, sessionID string, payload any) {
	Emit(ctx, eventType, sessionID, payload)
}

// Reset unbinds the global emitter. Test helper.
func Reset() {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalEmitter = NopEmitter{}
	globalBound = false
}
