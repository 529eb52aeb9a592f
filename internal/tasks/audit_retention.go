package tasks

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/mikestefanello/backlite"
)

// DefaultAuditRetentionDays is used when a task is enqueued without a
// retention, e.g. by an older scheduler build.
const DefaultAuditRetentionDays = 30

// AuditEventCleaner is implemented by the audit service.
type AuditEventCleaner interface {
	DeleteOldEvents(ctx context.Context, retention time.Duration) (int64, error)
}

// CleanupAuditEventsTask trims the review, like and login trail down to the
// last RetentionDays days.
type CleanupAuditEventsTask struct {
	RetentionDays int `json:"retention_days"`
}

// Window is the age beyond which events are dropped.
func (t CleanupAuditEventsTask) Window() time.Duration {
	days := t.RetentionDays
	if days <= 0 {
		days = DefaultAuditRetentionDays
	}
	return time.Duration(days) * 24 * time.Hour
}

func (t CleanupAuditEventsTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name: QueueCleanupAuditEvents,
		// A failed sweep is picked up again by the next nightly run anyway.
		MaxAttempts: 3,
		Backoff:     5 * time.Minute,
		Timeout:     2 * time.Minute,
		Retention: &backlite.Retention{
			Duration: 24 * time.Hour,
			Data:     &backlite.RetainData{OnlyFailed: true},
		},
	}
}

var errNoAuditCleaner = errors.New("audit retention: no cleaner wired")

// CleanupAuditEventsProcessor deletes events older than the task's window.
func CleanupAuditEventsProcessor(cleaner AuditEventCleaner) backlite.QueueProcessor[CleanupAuditEventsTask] {
	return func(ctx context.Context, task CleanupAuditEventsTask) error {
		if cleaner == nil {
			return errNoAuditCleaner
		}

		window := task.Window()
		removed, err := cleaner.DeleteOldEvents(ctx, window)
		if err != nil {
			return err
		}

		cutoff := time.Now().Add(-window).Format(time.DateOnly)
		log.Printf("[TASK] %s: removed %d events recorded before %s", QueueCleanupAuditEvents, removed, cutoff)
		return nil
	}
}

func NewCleanupAuditEventsQueue(cleaner AuditEventCleaner) backlite.Queue {
	return backlite.NewQueue(CleanupAuditEventsProcessor(cleaner))
}
