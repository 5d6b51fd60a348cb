package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"github.com/quizforge/quiz-core/internal/models"
)

// TopicAttemptEvents carries anti-cheat telemetry from the session to
// whatever forwards it.
const TopicAttemptEvents = "attempt.events"

// Envelope is the bus payload: one attempt event plus the attempt it
// belongs to.
type Envelope struct {
	AttemptID string              `json:"attemptId"`
	Event     models.AttemptEvent `json:"event"`
}

// EventPublisher defines the interface for publishing attempt telemetry
type EventPublisher interface {
	PublishEvent(ctx context.Context, attemptID string, event models.AttemptEvent) error
	Close() error
}

// ChannelEventPublisher implements EventPublisher using Watermill's
// in-process GoChannel pub/sub. Telemetry terminates at the backend's REST
// sink, so no broker sits between the session and the forwarder.
type ChannelEventPublisher struct {
	pubSub *gochannel.GoChannel
	logger *slog.Logger
}

// NewChannelEventPublisher creates an in-process event publisher.
func NewChannelEventPublisher(logger *slog.Logger) *ChannelEventPublisher {
	wmLogger := watermill.NewSlogLogger(logger)

	pubSub := gochannel.NewGoChannel(gochannel.Config{
		OutputChannelBuffer: 64,
	}, wmLogger)

	return &ChannelEventPublisher{
		pubSub: pubSub,
		logger: logger,
	}
}

// PublishEvent publishes one attempt event to the telemetry topic.
func (p *ChannelEventPublisher) PublishEvent(ctx context.Context, attemptID string, event models.AttemptEvent) error {
	envelopeBytes, err := json.Marshal(Envelope{AttemptID: attemptID, Event: event})
	if err != nil {
		return fmt.Errorf("failed to marshal attempt event: %w", err)
	}

	msg := message.NewMessage(watermill.NewUUID(), envelopeBytes)
	msg.Metadata.Set("event_type", string(event.Type))
	msg.Metadata.Set("attempt_id", attemptID)
	msg.Metadata.Set("timestamp", event.Timestamp.Format("2006-01-02T15:04:05Z07:00"))

	if err := p.pubSub.Publish(TopicAttemptEvents, msg); err != nil {
		p.logger.Error("Failed to publish attempt event",
			"attempt_id", attemptID,
			"event_type", event.Type,
			"error", err)
		return fmt.Errorf("failed to publish attempt event: %w", err)
	}

	return nil
}

// Subscribe returns the telemetry message stream for a forwarder.
func (p *ChannelEventPublisher) Subscribe(ctx context.Context) (<-chan *message.Message, error) {
	return p.pubSub.Subscribe(ctx, TopicAttemptEvents)
}

// Close closes the pub/sub and releases resources
func (p *ChannelEventPublisher) Close() error {
	return p.pubSub.Close()
}

// MockEventPublisher is a mock implementation for testing
type MockEventPublisher struct {
	mu     sync.Mutex
	events []Envelope

	// FailWith, when set, is returned from every publish.
	FailWith error
}

// NewMockEventPublisher creates a new mock event publisher
func NewMockEventPublisher() *MockEventPublisher {
	return &MockEventPublisher{}
}

// PublishEvent stores the event in memory (for testing)
func (m *MockEventPublisher) PublishEvent(_ context.Context, attemptID string, event models.AttemptEvent) error {
	if m.FailWith != nil {
		return m.FailWith
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, Envelope{AttemptID: attemptID, Event: event})
	return nil
}

// Close is a no-op for the mock publisher
func (m *MockEventPublisher) Close() error {
	return nil
}

// PublishedEvents returns all published events (for testing)
func (m *MockEventPublisher) PublishedEvents() []Envelope {
	m.mu.Lock()
	defer m.mu.Unlock()
	events := make([]Envelope, len(m.events))
	copy(events, m.events)
	return events
}
