package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/catalog/internal/scheduler"
)

const maintenanceQueueName = "catalog_maintenance"

// MaintenanceRunner runs one maintenance pass. Implemented by *scheduler.Maintenance.
type MaintenanceRunner interface {
	Run(ctx context.Context) (scheduler.MaintenanceResult, error)
}

// MaintenanceTask prunes expired access tokens and audit events past retention.
type MaintenanceTask struct {
	RequestedAt time.Time `json:"requested_at"`
}

// Config returns the queue configuration for maintenance tasks.
func (t MaintenanceTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        maintenanceQueueName,
		MaxAttempts: 3,
		Backoff:     5 * time.Minute,
		Timeout:     2 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// MaintenanceProcessor creates a processor function for MaintenanceTask.
// A returned error makes backlite retry the task.
func MaintenanceProcessor(runner MaintenanceRunner) backlite.QueueProcessor[MaintenanceTask] {
	return func(ctx context.Context, task MaintenanceTask) error {
		if runner == nil {
			return fmt.Errorf("maintenance runner not configured")
		}

		result, err := runner.Run(ctx)
		if err != nil {
			return fmt.Errorf("maintenance: %w", err)
		}

		log.Printf("[TASK] Maintenance requested at %s pruned %d expired tokens and %d audit events",
			task.RequestedAt.Format(time.RFC3339), result.TokensPruned, result.EventsPruned)
		return nil
	}
}

// NewMaintenanceQueue creates a backlite queue for maintenance tasks.
func NewMaintenanceQueue(runner MaintenanceRunner) backlite.Queue {
	return backlite.NewQueue(MaintenanceProcessor(runner))
}

// MaintenanceDispatcher enqueues maintenance tasks instead of running them
// inline, so failed runs are retried by the queue.
type MaintenanceDispatcher struct {
	client *Client
	now    func() time.Time
}

func NewMaintenanceDispatcher(client *Client) *MaintenanceDispatcher {
	return &MaintenanceDispatcher{client: client, now: time.Now}
}

// RunMaintenance enqueues one maintenance task.
func (d *MaintenanceDispatcher) RunMaintenance(_ context.Context) error {
	ids, err := d.client.Add(MaintenanceTask{RequestedAt: d.now()}).Save()
	if err != nil {
		return fmt.Errorf("enqueue maintenance: %w", err)
	}
	log.Printf("Maintenance: enqueued task %v", ids)
	return nil
}
