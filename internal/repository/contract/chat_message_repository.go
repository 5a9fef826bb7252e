package contract

import (
	"context"

	"github.com/google/uuid"

	"github.com/yiwenkang0128/qualitative-analysis-AI-tool/internal/entity"
	"github.com/yiwenkang0128/qualitative-analysis-AI-tool/internal/repository/specification"
)

type ChatMessageRepository interface {
	Create(ctx context.Context, message *entity.ChatMessage) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatMessage, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	DeleteByDocumentId(ctx context.Context, documentId uuid.UUID) error
	// DeleteByOwnerUserId removes messages of every document owned by the user,
	// via subquery, so a user purge cannot leave orphans.
	DeleteByOwnerUserId(ctx context.Context, userId uuid.UUID) error
}
