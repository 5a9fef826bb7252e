package dto

import (
	"time"

	"github.com/google/uuid"
)

// AuditEventMessage travels over the in-process bus to the audit consumer.
type AuditEventMessage struct {
	Action     string    `json:"action"`
	DocumentId uuid.UUID `json:"document_id"`
	UserId     uuid.UUID `json:"user_id"`
	OccurredAt time.Time `json:"occurred_at"`
}
