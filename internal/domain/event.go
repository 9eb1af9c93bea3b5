package domain

import (
	"time"

	"github.com/google/uuid"
)

type AlertEventKind string

const (
	AlertCreated AlertEventKind = "alert.created"
	AlertUpdated AlertEventKind = "alert.updated"
	AlertDeleted AlertEventKind = "alert.deleted"
)

// AlertEvent is the mutation feed payload queued on every successful write
// and drained to the broker by the background sender.
type AlertEvent struct {
	Kind       AlertEventKind `json:"kind"`
	AlertID    uuid.UUID      `json:"alert_id"`
	Type       AlertType      `json:"type,omitempty"`
	Severity   AlertSeverity  `json:"severity,omitempty"`
	ActorID    uuid.UUID      `json:"actor_id"`
	OccurredAt time.Time      `json:"occurred_at"`
}
