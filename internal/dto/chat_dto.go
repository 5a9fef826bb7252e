package dto

import (
	"time"

	"github.com/google/uuid"
)

type ChatRequest struct {
	DocumentId uuid.UUID `json:"documentId" validate:"required"`
	Query      string    `json:"query" validate:"required"`
}

type ChatResponse struct {
	Answer string `json:"answer"`
}

type ChatMessageResponse struct {
	Id        uuid.UUID `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}
