package analytics

import (
	"context"
	"errors"
	"time"

	gcppubsub "cloud.google.com/go/pubsub/v2"
	"github.com/tweenmart/storefront-backend/pkg/enums"
	"github.com/tweenmart/storefront-backend/pkg/logger"
)

const publishTimeout = 10 * time.Second

// Emitter pushes analytics events toward the collector pipeline.
// Emission is fire-and-forget: implementations swallow failures so that
// analytics can never break a commerce flow.
type Emitter interface {
	Emit(ctx context.Context, eventType enums.AnalyticsEventType, sessionID string, payload any)
}

type publisher interface {
	Publish(context.Context, *gcppubsub.Message) publishResult
}

type publishResult interface {
	Get(context.Context) (string, error)
}

// PubSubEmitter publishes envelopes to the analytics topic.
type PubSubEmitter struct {
	pub  publisher
	logg *logger.Logger
}

// NewPubSubEmitter wraps the analytics topic publisher.
func NewPubSubEmitter(pub *gcppubsub.Publisher, logg *logger.Logger) (*PubSubEmitter, error) {
	if pub == nil {
		return nil, errors.New("analytics publisher is required")
	}
	if logg == nil {
		return nil, errors.New("logger is required")
	}
	return &PubSubEmitter{pub: newGCPPublisher(pub), logg: logg}, nil
}

// Emit publishes the payload wrapped in an envelope. Errors are logged and
// dropped.
func (e *PubSubEmitter) Emit(ctx context.Context, eventType enums.AnalyticsEventType, sessionID string, payload any) {
	if e == nil || e.pub == nil {
		return
	}

	envelope, err := NewEnvelope(eventType, sessionID, payload)
	if err != nil {
		e.logg.Error(ctx, "analytics envelope rejected", err)
		return
	}

	data, err := envelope.Marshal()
	if err != nil {
		e.logg.Error(ctx, "analytics envelope marshal failed", err)
		return
	}

	logCtx := e.logg.WithFields(ctx, map[string]any{
		"event_id":   envelope.EventID,
		"event_type": string(envelope.EventType),
	})

	publishCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	result := e.pub.Publish(publishCtx, &gcppubsub.Message{
		Data: data,
		Attributes: map[string]string{
			"event_id":   envelope.EventID,
			"event_type": string(envelope.EventType),
		},
	})
	if result == nil {
		cancel()
		e.logg.Warn(logCtx, "analytics publish skipped: publisher unavailable")
		return
	}

	go func() {
		defer cancel()
		if _, err := result.Get(publishCtx); err != nil {
			e.logg.Error(logCtx, "analytics publish failed", err)
			return
		}
		e.logg.Info(logCtx, "analytics event published")
	}()
}

// NopEmitter drops every event. Used when analytics is disabled and in
// tests.
type NopEmitter struct{}

func (NopEmitter) Emit(context.Context, enums.AnalyticsEventType, string, any) {}

func newGCPPublisher(p *gcppubsub.Publisher) publisher {
	if p == nil {
		return nil
	}
	return &gcpPublisher{Publisher: p}
}

type gcpPublisher struct {
	*gcppubsub.Publisher
}

func (p *gcpPublisher) Publish(ctx context.Context, msg *gcppubsub.Message) publishResult {
	if p == nil || p.Publisher == nil {
		return nil
	}
	return p.Publisher.Publish(ctx, msg)
}
