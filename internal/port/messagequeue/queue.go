// Package messagequeue defines the message queue port (interface).
package messagequeue

import "context"

// Handler processes a message received from the queue. A non-nil error
// signals the transport to redeliver the message.
type Handler func(ctx context.Context, subject string, data []byte) error

// Queue is the port interface for publishing and subscribing to messages.
type Queue interface {
	// Publish sends a message to the given subject.
	Publish(ctx context.Context, subject string, data []byte) error

	// Subscribe registers a handler for messages on the given subject.
	// The returned function cancels the subscription.
	Subscribe(ctx context.Context, subject string, handler Handler) (cancel func(), err error)

	// Close shuts down the queue connection.
	Close() error
}

// SubjectMarketingSync carries bulk marketing-export jobs.
const SubjectMarketingSync = "sync.vehicles"

// SyncJobPayload is the schema for sync.vehicles messages.
type SyncJobPayload struct {
	JobID        string `json:"job_id"`
	DealershipID string `json:"dealership_id"`
	Message      string `json:"message"`
	Timestamp    string `json:"timestamp"`
}
