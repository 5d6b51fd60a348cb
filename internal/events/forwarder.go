package events

import (
	"context"
	"encoding/json"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/quizforge/quiz-core/internal/models"
	"github.com/quizforge/quiz-core/internal/utils"
)

// EventLogger delivers one attempt event to the backend telemetry sink.
type EventLogger interface {
	LogEvent(ctx context.Context, attemptID string, event models.AttemptEvent) error
}

// Forwarder drains the telemetry topic and posts each event to the backend.
// Delivery is strictly best-effort: malformed payloads and sink failures are
// logged and acknowledged so the stream never backs up behind a bad event.
type Forwarder struct {
	publisher *ChannelEventPublisher
	sink      EventLogger
	logger    utils.Logger
}

func NewForwarder(publisher *ChannelEventPublisher, sink EventLogger, logger utils.Logger) *Forwarder {
	return &Forwarder{
		publisher: publisher,
		sink:      sink,
		logger:    logger,
	}
}

// Run consumes telemetry until ctx is cancelled or the publisher closes.
// It blocks; callers start it on its own goroutine.
func (f *Forwarder) Run(ctx context.Context) error {
	messages, err := f.publisher.Subscribe(ctx)
	if err != nil {
		return err
	}

	for msg := range messages {
		f.forward(ctx, msg)
		msg.Ack()
	}
	return nil
}

func (f *Forwarder) forward(ctx context.Context, msg *message.Message) {
	var envelope Envelope
	if err := json.Unmarshal(msg.Payload, &envelope); err != nil {
		f.logger.Warn("discarding malformed attempt event", "message_id", msg.UUID, "error", err)
		return
	}

	if err := f.sink.LogEvent(ctx, envelope.AttemptID, envelope.Event); err != nil {
		f.logger.Debug("failed to deliver attempt event",
			"attempt_id", envelope.AttemptID,
			"event_type", envelope.Event.Type,
			"error", err)
	}
}
