package worker

import (
	"context"
	"errors"
	"time"

	gcppubsub "cloud.google.com/go/pubsub/v2"
	"github.com/tweenmart/storefront-backend/internal/analytics"
	"github.com/tweenmart/storefront-backend/pkg/logger"
)

const (
	consumerName = "analytics"
	dedupTTL     = 24 * time.Hour
)

// Handler processes decoded analytics envelopes.
type Handler interface {
	Handle(ctx context.Context, envelope analytics.Envelope) error
}

// HandlerFunc adapts functions to the Handler interface.
type HandlerFunc func(ctx context.Context, envelope analytics.Envelope) error

// Handle calls the underlying function.
func (fn HandlerFunc) Handle(ctx context.Context, envelope analytics.Envelope) error {
	if fn == nil {
		return nil
	}
	return fn(ctx, envelope)
}

type dedupStore interface {
	MarkFirstSight(ctx context.Context, viewer, region string, ttl time.Duration) (bool, error)
}

// Service consumes analytics envelopes from Pub/Sub, dedupes them via
// Redis, and forwards them to the handler. Forwarding is best-effort:
// handler failures are logged and the message acked so analytics can never
// wedge the subscription.
type Service struct {
	subscription *gcppubsub.Subscriber
	handler      Handler
	dedup        dedupStore
	logg         *logger.Logger
}

// NewService creates the analytics forwarding worker.
func NewService(subscription *gcppubsub.Subscriber, handler Handler, dedup dedupStore, logg *logger.Logger) (*Service, error) {
	if subscription == nil {
		return nil, errors.New("analytics subscription is required")
	}
	if handler == nil {
		return nil, errors.New("analytics handler is required")
	}
	if dedup == nil {
		return nil, errors.New("dedup store is required")
	}
	if logg == nil {
		return nil, errors.New("logger is required")
	}

	return &Service{
		subscription: subscription,
		handler:      handler,
		dedup:        dedup,
		logg:         logg,
	}, nil
}

type processResult struct {
	nack bool
}

// Run starts consuming analytics messages until the context is canceled.
func (s *Service) Run(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	return s.subscription.Receive(ctx, func(innerCtx context.Context, msg *gcppubsub.Message) {
		if s.process(innerCtx, msg).nack {
			msg.Nack()
			return
		}
		msg.Ack()
	})
}

func (s *Service) process(ctx context.Context, msg *gcppubsub.Message) processResult {
	fields := map[string]any{"message_id": msg.ID}
	logCtx := s.logg.WithFields(ctx, fields)

	envelope, err := analytics.DecodeEnvelope(msg.Data)
	if err != nil {
		fields["error"] = err.Error()
		s.logg.Warn(s.logg.WithFields(ctx, fields), "invalid analytics envelope")
		return processResult{}
	}

	fields["event_id"] = envelope.EventID
	fields["event_type"] = string(envelope.EventType)
	if envelope.SessionID != "" {
		fields["session_id"] = envelope.SessionID
	}
	logCtx = s.logg.WithFields(ctx, fields)

	first, err := s.dedup.MarkFirstSight(logCtx, consumerName, envelope.EventID, dedupTTL)
	if err != nil {
		s.logg.Error(logCtx, "dedup check failed", err)
		return processResult{nack: true}
	}
	if !first {
		s.logg.Info(logCtx, "event already forwarded")
		return processResult{}
	}

	if err := s.handler.Handle(logCtx, *envelope); err != nil {
		// Best effort: the event is dropped rather than retried.
		s.logg.Error(logCtx, "collector forward failed", err)
		return processResult{}
	}

	s.logg.Info(logCtx, "analytics event forwarded")
	return processResult{}
}
