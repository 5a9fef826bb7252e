package unitofwork

import (
	"context"

	"github.com/yiwenkang0128/qualitative-analysis-AI-tool/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	DocumentRepository() contract.DocumentRepository
	ChatMessageRepository() contract.ChatMessageRepository
}
