package models

import "time"

type AttemptEventType string

const (
	EventBlur             AttemptEventType = "blur"
	EventFocus            AttemptEventType = "focus"
	EventPaste            AttemptEventType = "paste"
	EventVisibilityChange AttemptEventType = "visibility_change"
)

// AttemptEvent is one anti-cheat telemetry record captured while a learner
// works through an attempt. Delivery is best-effort; events never block or
// fail the taking flow.
type AttemptEvent struct {
	Type      AttemptEventType       `json:"type" validate:"required,event_type"`
	Timestamp time.Time              `json:"timestamp"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}
