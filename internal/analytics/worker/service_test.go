package worker

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	gcppubsub "cloud.google.com/go/pubsub/v2"
	"github.com/google/uuid"
	"github.com/tweenmart/storefront-backend/internal/analytics"
	"github.com/tweenmart/storefront-backend/pkg/enums"
	"github.com/tweenmart/storefront-backend/pkg/logger"
)

func TestProcessForwardsEnvelope(t *testing.T) {
	dedup := &stubDedup{first: true}
	handler := &stubHandler{}
	svc := newTestServiceWithDeps(t, handler, dedup)

	msg := buildAnalyticsMessage(t, enums.AnalyticsEventAddToCart)
	res := svc.process(context.Background(), msg)
	if res.nack {
		t.Fatalf("expected ack, got nack")
	}
	if !handler.called {
		t.Fatal("handler should be invoked")
	}
	if handler.envelope.EventType != enums.AnalyticsEventAddToCart {
		t.Fatalf("unexpected event type %v", handler.envelope.EventType)
	}
	if len(dedup.marked) != 1 {
		t.Fatalf("expected one dedup mark, got %d", len(dedup.marked))
	}
}

func TestProcessAlreadyForwarded(t *testing.T) {
	dedup := &stubDedup{first: false}
	handler := &stubHandler{}
	svc := newTestServiceWithDeps(t, handler, dedup)

	msg := buildAnalyticsMessage(t, enums.AnalyticsEventViewItem)
	res := svc.process(context.Background(), msg)
	if res.nack {
		t.Fatalf("expected ack, got nack")
	}
	if handler.called {
		t.Fatal("handler should not be invoked for duplicate")
	}
}

func TestProcessDedupErrorNacks(t *testing.T) {
	dedup := &stubDedup{err: errors.New("redis down")}
	handler := &stubHandler{}
	svc := newTestServiceWithDeps(t, handler, dedup)

	msg := buildAnalyticsMessage(t, enums.AnalyticsEventViewItem)
	res := svc.process(context.Background(), msg)
	if !res.nack {
		t.Fatal("expected nack on dedup error")
	}
	if handler.called {
		t.Fatal("handler should not be invoked")
	}
}

func TestProcessHandlerErrorStillAcks(t *testing.T) {
	dedup := &stubDedup{first: true}
	handler := &stubHandler{err: errors.New("collector down")}
	svc := newTestServiceWithDeps(t, handler, dedup)

	msg := buildAnalyticsMessage(t, enums.AnalyticsEventPurchase)
	res := svc.process(context.Background(), msg)
	if res.nack {
		t.Fatal("forwarding is best-effort; handler failure must ack")
	}
	if !handler.called {
		t.Fatal("handler should be invoked")
	}
}

func TestProcessInvalidEnvelope(t *testing.T) {
	dedup := &stubDedup{first: true}
	handler := &stubHandler{}
	svc := newTestServiceWithDeps(t, handler, dedup)

	msg := &gcppubsub.Message{ID: "msg-1", Data: []byte("invalid json")}
	res := svc.process(context.Background(), msg)
	if res.nack {
		t.Fatal("invalid envelope should ack")
	}
	if handler.called {
		t.Fatal("handler should not be invoked")
	}
	if len(dedup.marked) != 0 {
		t.Fatal("dedup store should not be touched")
	}
}

func buildAnalyticsMessage(t *testing.T, eventType enums.AnalyticsEventType) *gcppubsub.Message {
	t.Helper()
	envelope := analytics.Envelope{
		EventID:    uuid.NewString(),
		EventType:  eventType,
		SessionID:  "sess-1",
		OccurredAt: time.Now().UTC(),
		Payload:    json.RawMessage(`{"ecommerce":{"items":[]}}`),
	}
	data, err := envelope.Marshal()
	if err != nil {
		t.Fatalf("marshal envelope: %v", err)
	}
	return &gcppubsub.Message{ID: "msg-1", Data: data}
}

func newTestServiceWithDeps(t *testing.T, handler Handler, dedup *stubDedup) *Service {
	t.Helper()
	return &Service{
		handler: handler,
		dedup:   dedup,
		logg:    logger.New(logger.Options{ServiceName: "analytics-test"}),
	}
}

type stubHandler struct {
	called   bool
	envelope analytics.Envelope
	err      error
}

func (h *stubHandler) Handle(ctx context.Context, envelope analytics.Envelope) error {
	h.called = true
	h.envelope = envelope
	return h.err
}

type stubDedup struct {
	first  bool
	err    error
	marked []string
}

func (s *stubDedup) MarkFirstSight(_ context.Context, _, region string, _ time.Duration) (bool, error) {
	s.marked = append(s.marked, region)
	return s.first, s.err
}
