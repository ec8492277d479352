// Package jobs defines the operator-triggered background tasks. There is
// no scheduler: entries stored with the unknown sentinel stay that way
// until an operator decides the classifier is healthy again and enqueues
// a reclassify run.
package jobs

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskMoodReclassify re-runs the classifier over unknown-labeled entries.
	TaskMoodReclassify = "mood:reclassify"
)

// ReclassifyPayload optionally narrows a reclassify run to one owner.
// An empty OwnerID means all owners.
type ReclassifyPayload struct {
	OwnerID string `json:"owner_id,omitempty"`
}

// NewReclassifyTask constructs an Asynq task.
func NewReclassifyTask(payload ReclassifyPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskMoodReclassify, data), nil
}

// ReclassifyService is implemented by the journal service.
type ReclassifyService interface {
	ReclassifyUnknown(ctx context.Context, ownerID *uuid.UUID) (int, error)
}

// NewReclassifyHandler builds the Asynq handler for TaskMoodReclassify.
func NewReclassifyHandler(service ReclassifyService, logger *slog.Logger) asynq.HandlerFunc {
	if logger == nil {
		logger = slog.Default()
	}
	return func(ctx context.Context, t *asynq.Task) error {
		var payload ReclassifyPayload
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return asynq.SkipRetry
		}

		var ownerID *uuid.UUID
		if payload.OwnerID != "" {
			parsed, err := uuid.Parse(payload.OwnerID)
			if err != nil {
				logger.Error("jobs: invalid owner id in payload", slog.String("owner_id", payload.OwnerID))
				return asynq.SkipRetry
			}
			ownerID = &parsed
		}

		updated, err := service.ReclassifyUnknown(ctx, ownerID)
		if err != nil {
			return err
		}
		logger.Info("jobs: reclassify run finished", slog.Int("updated", updated))
		return nil
	}
}
