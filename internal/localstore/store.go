// Package localstore is the device-local key-value persistence used for
// notification settings and the reminder indexes. Values are stored as
// whole JSON blobs and read-modify-written as a unit; callers that
// mutate shared keys serialize with their own lock.
package localstore

import "context"

// Keys under which the notification state lives.
const (
	KeyMealNotifications    = "meal_notifications"
	KeyPlanningReminders    = "meal_planning_reminders"
	KeyNotificationSettings = "notification_settings"
)

// Store persists small JSON documents under string keys.
type Store interface {
	// Get unmarshals the value stored under key into v. The boolean
	// reports whether the key existed.
	Get(ctx context.Context, key string, v interface{}) (bool, error)
	// Set marshals v and stores it under key, replacing any prior value.
	Set(ctx context.Context, key string, v interface{}) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}
