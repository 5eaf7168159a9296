package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

// TaskReminderDeliver is the task type for a reminder reaching its
// trigger instant.
const TaskReminderDeliver = "reminder:deliver"

// DefaultQueue is the asynq queue reminders are scheduled on.
const DefaultQueue = "reminders"

// AsynqFacility implements Facility on top of asynq delayed tasks. The
// task ID doubles as the notification handle, so a pending reminder can
// be deleted through the inspector before it fires.
type AsynqFacility struct {
	client    *asynq.Client
	inspector *asynq.Inspector
	queue     string
}

// NewAsynqFacility creates a facility backed by the given Redis
// connection.
func NewAsynqFacility(redisOpt asynq.RedisConnOpt, queue string) *AsynqFacility {
	if queue == "" {
		queue = DefaultQueue
	}
	return &AsynqFacility{
		client:    asynq.NewClient(redisOpt),
		inspector: asynq.NewInspector(redisOpt),
		queue:     queue,
	}
}

// Schedule implements Facility.
func (f *AsynqFacility) Schedule(ctx context.Context, content Content, at time.Time) (string, error) {
	payload, err := json.Marshal(content)
	if err != nil {
		return "", fmt.Errorf("failed to marshal notification content: %w", err)
	}

	task := asynq.NewTask(
		TaskReminderDeliver,
		payload,
		asynq.MaxRetry(3),
		asynq.Retention(24*time.Hour),
	)

	info, err := f.client.EnqueueContext(ctx, task,
		asynq.Queue(f.queue),
		asynq.ProcessAt(at),
		asynq.TaskID(uuid.New().String()),
	)
	if err != nil {
		return "", fmt.Errorf("failed to schedule reminder: %w", err)
	}
	return info.ID, nil
}

// Cancel implements Facility. A handle the broker no longer knows is
// treated as already cancelled.
func (f *AsynqFacility) Cancel(ctx context.Context, handle string) error {
	err := f.inspector.DeleteTask(f.queue, handle)
	if err == nil ||
		errors.Is(err, asynq.ErrTaskNotFound) ||
		errors.Is(err, asynq.ErrQueueNotFound) {
		return nil
	}
	return fmt.Errorf("failed to cancel reminder %s: %w", handle, err)
}

// ListScheduled implements Facility.
func (f *AsynqFacility) ListScheduled(ctx context.Context) ([]string, error) {
	tasks, err := f.inspector.ListScheduledTasks(f.queue)
	if err != nil {
		if errors.Is(err, asynq.ErrQueueNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to list scheduled reminders: %w", err)
	}
	handles := make([]string, 0, len(tasks))
	for _, t := range tasks {
		handles = append(handles, t.ID)
	}
	return handles, nil
}

// Close releases the underlying broker connections.
func (f *AsynqFacility) Close() error {
	ierr := f.inspector.Close()
	cerr := f.client.Close()
	if cerr != nil {
		return cerr
	}
	return ierr
}

// DeliveryFunc handles a reminder whose trigger instant has arrived.
type DeliveryFunc func(ctx context.Context, content Content) error

// LogDelivery writes the firing reminder to the process log. Actual
// device delivery happens on the client once it observes the reminder.
func LogDelivery(ctx context.Context, content Content) error {
	log.Printf("[Notify] delivering reminder: %s / %s (data=%v)", content.Title, content.Body, content.Data)
	return nil
}

// StartDeliveryWorker starts the asynq server that processes due
// reminders. Returns a stop function for graceful shutdown.
func StartDeliveryWorker(redisOpt asynq.RedisConnOpt, queue string, deliver DeliveryFunc) (stop func(), err error) {
	if queue == "" {
		queue = DefaultQueue
	}
	if deliver == nil {
		deliver = LogDelivery
	}

	srv := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency:     5,
		Queues:          map[string]int{queue: 1},
		ShutdownTimeout: 30 * time.Second,
	})

	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskReminderDeliver, func(ctx context.Context, task *asynq.Task) error {
		var content Content
		if err := json.Unmarshal(task.Payload(), &content); err != nil {
			// Invalid payload - don't retry
			return fmt.Errorf("invalid payload: %w", asynq.SkipRetry)
		}
		return deliver(ctx, content)
	})

	if err := srv.Start(mux); err != nil {
		return nil, fmt.Errorf("failed to start delivery worker: %w", err)
	}
	log.Printf("[Notify] delivery worker started on queue %q", queue)
	return func() { srv.Shutdown() }, nil
}
