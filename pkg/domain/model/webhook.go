package model

import "time"

// WebhookEventType represents the type of webhook event received
type WebhookEventType string

const (
	EventTypePullRequest WebhookEventType = "pull_request"
	EventTypePing        WebhookEventType = "ping"
	EventTypeUnknown     WebhookEventType = "unknown"
)

// WebhookEvent represents a webhook event received from GitHub
type WebhookEvent struct {
	ID             string           // Retrieved from X-GitHub-Delivery header
	Type           WebhookEventType // Retrieved from X-GitHub-Event header
	Action         string           // Event action (e.g., opened, synchronize)
	Repository     string           // Repository full name
	Sender         string           // Sender username
	InstallationID int64            // GitHub App installation, 0 if absent
	PullRequest    *PullRequest     // Set for pull_request events
	ReceivedAt     time.Time
	RawPayload     []byte
}

// IsSupportedEvent reports whether the event triggers a risk assessment
func (e *WebhookEvent) IsSupportedEvent() bool {
	switch e.Type {
	case EventTypePullRequest:
		return e.Action == "opened" || e.Action == "synchronize"
	default:
		return false
	}
}
