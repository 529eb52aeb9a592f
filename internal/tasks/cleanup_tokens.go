package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"
)

// Queue names, also accepted by the admin run endpoint.
const (
	QueueCleanupAuditEvents   = "cleanup_audit_events"
	QueueCleanupRevokedTokens = "cleanup_revoked_tokens"
)

// ExpiredTokenPurger deletes revocation records whose token has expired.
type ExpiredTokenPurger interface {
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// CleanupRevokedTokensTask drops denylist rows for tokens that can no
// longer be presented anyway.
type CleanupRevokedTokensTask struct{}

// Config returns the queue configuration for revoked-token cleanup tasks.
func (t CleanupRevokedTokensTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        QueueCleanupRevokedTokens,
		MaxAttempts: 1,
		Backoff:     time.Minute,
		Timeout:     time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// CleanupRevokedTokensProcessor creates a processor function for CleanupRevokedTokensTask.
func CleanupRevokedTokensProcessor(purger ExpiredTokenPurger) backlite.QueueProcessor[CleanupRevokedTokensTask] {
	return func(ctx context.Context, task CleanupRevokedTokensTask) error {
		if purger == nil {
			return fmt.Errorf("revoked token purger not configured")
		}

		deleted, err := purger.DeleteExpired(ctx, time.Now())
		if err != nil {
			return fmt.Errorf("cleanup revoked tokens: %w", err)
		}

		log.Printf("[TASK] Cleaned up %d expired revoked tokens", deleted)
		return nil
	}
}

// NewCleanupRevokedTokensQueue creates a backlite queue for revoked-token cleanup tasks.
func NewCleanupRevokedTokensQueue(purger ExpiredTokenPurger) backlite.Queue {
	return backlite.NewQueue(CleanupRevokedTokensProcessor(purger))
}

// MaintenanceJob describes a queue the admin API can trigger by name.
type MaintenanceJob struct {
	Name        string
	Description string
}

// MaintenanceJobs lists the maintenance queues in scheduling order.
func MaintenanceJobs() []MaintenanceJob {
	return []MaintenanceJob{
		{Name: QueueCleanupAuditEvents, Description: "Delete audit events past the retention period"},
		{Name: QueueCleanupRevokedTokens, Description: "Delete revocation records of expired tokens"},
	}
}

// MaintenanceTask builds the task for a named maintenance queue.
func MaintenanceTask(name string, auditRetentionDays int) (backlite.Task, error) {
	switch name {
	case QueueCleanupAuditEvents:
		return CleanupAuditEventsTask{RetentionDays: auditRetentionDays}, nil
	case QueueCleanupRevokedTokens:
		return CleanupRevokedTokensTask{}, nil
	default:
		return nil, fmt.Errorf("unknown task type: %s", name)
	}
}
