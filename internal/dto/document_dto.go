package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/yiwenkang0128/qualitative-analysis-AI-tool/internal/entity"
)

// SessionSummaryResponse is one row in the authenticated user's session list.
type SessionSummaryResponse struct {
	Id        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"createdAt"`
}

// SessionDetailResponse carries a full session: document metadata plus the
// complete chat transcript in chronological order.
type SessionDetailResponse struct {
	Id          uuid.UUID             `json:"id"`
	Title       string                `json:"title"`
	Summary     string                `json:"summary"`
	Topics      []entity.Topic        `json:"topics"`
	ChatHistory []ChatMessageResponse `json:"chatHistory"`
}

// UploadResponse is returned after a successful ingestion.
type UploadResponse struct {
	DocumentId uuid.UUID      `json:"documentId"`
	Title      string         `json:"title"`
	Summary    string         `json:"summary"`
	Topics     []entity.Topic `json:"topics"`
}

type DeleteSessionResponse struct {
	Success bool `json:"success"`
}
