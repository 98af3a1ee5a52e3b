// Package queue contains the work publisher abstraction for handing stored
// uploads off to the conversion workers.
package queue

import (
	"context"

	"vidconv/internal/model"
)

// Publisher durably enqueues a conversion task on the named work queue.
// Publish must not report success before the broker has confirmed the
// delivery; a crash between publish and ack would otherwise drop work
// silently. Implementations must be safe for concurrent use.
type Publisher interface {
	// Publish enqueues the task and waits for broker confirmation.
	Publish(ctx context.Context, task model.ConvertTask) error
	// Close releases the broker channel and connection.
	Close() error
}
