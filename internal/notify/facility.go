// Package notify abstracts the local-notification delivery facility.
// Scheduling hands a content payload and a wall-clock instant to the
// facility and gets back an opaque handle, which is the only way to
// cancel the pending notification later.
package notify

import (
	"context"
	"errors"
	"time"
)

// ErrUnavailable is returned when the facility cannot deliver
// notifications at all (no broker, permission denied). Callers treat
// scheduling against an unavailable facility as a silent no-op.
var ErrUnavailable = errors.New("notification facility unavailable")

// Content is the payload of a notification. Data carries the deep-link
// fields (meal_id, screen) the client uses on tap.
type Content struct {
	Title string            `json:"title"`
	Body  string            `json:"body"`
	Data  map[string]string `json:"data,omitempty"`
}

// Facility schedules and cancels pending local notifications.
type Facility interface {
	// Schedule registers content for delivery at the given instant and
	// returns an opaque handle.
	Schedule(ctx context.Context, content Content, at time.Time) (string, error)
	// Cancel removes a pending notification. Cancelling a handle the
	// facility no longer knows is not an error.
	Cancel(ctx context.Context, handle string) error
	// ListScheduled returns the handles of all pending notifications.
	ListScheduled(ctx context.Context) ([]string, error)
}

// Noop is the facility used when delivery capability is absent. Every
// schedule attempt reports ErrUnavailable; cancels succeed.
type Noop struct{}

// Schedule implements Facility.
func (Noop) Schedule(ctx context.Context, content Content, at time.Time) (string, error) {
	return "", ErrUnavailable
}

// Cancel implements Facility.
func (Noop) Cancel(ctx context.Context, handle string) error { return nil }

// ListScheduled implements Facility.
func (Noop) ListScheduled(ctx context.Context) ([]string, error) { return nil, nil }
