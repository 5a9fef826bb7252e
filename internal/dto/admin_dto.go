package dto

import (
	"time"

	"github.com/google/uuid"
)

// AdminUserResponse is one row in the admin account browser.
type AdminUserResponse struct {
	Id            uuid.UUID `json:"id"`
	Email         string    `json:"email"`
	Role          string    `json:"role"`
	CreatedAt     time.Time `json:"createdAt"`
	DocumentCount int64     `json:"documentCount"`
}

// AdminDocumentResponse describes a document when listed across owners.
type AdminDocumentResponse struct {
	Id           uuid.UUID `json:"id"`
	Title        string    `json:"title"`
	OriginalName string    `json:"originalName"`
	CreatedAt    time.Time `json:"createdAt"`
}

type RegisterAdminRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type DeleteUserResponse struct {
	Success bool `json:"success"`
}
