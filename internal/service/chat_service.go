package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/yiwenkang0128/qualitative-analysis-AI-tool/internal/constant"
	"github.com/yiwenkang0128/qualitative-analysis-AI-tool/internal/dto"
	"github.com/yiwenkang0128/qualitative-analysis-AI-tool/internal/entity"
	"github.com/yiwenkang0128/qualitative-analysis-AI-tool/internal/pkg/apperror"
	"github.com/yiwenkang0128/qualitative-analysis-AI-tool/internal/pkg/serverutils"
	"github.com/yiwenkang0128/qualitative-analysis-AI-tool/internal/repository/memory"
	"github.com/yiwenkang0128/qualitative-analysis-AI-tool/internal/repository/specification"
	"github.com/yiwenkang0128/qualitative-analysis-AI-tool/internal/repository/unitofwork"
	"github.com/yiwenkang0128/qualitative-analysis-AI-tool/pkg/conversation"
	"github.com/yiwenkang0128/qualitative-analysis-AI-tool/pkg/events"
	"github.com/yiwenkang0128/qualitative-analysis-AI-tool/pkg/llm"
	pktNats "github.com/yiwenkang0128/qualitative-analysis-AI-tool/pkg/nats"
)

type IChatService interface {
	Chat(ctx context.Context, auth *serverutils.AuthContext, req *dto.ChatRequest) (*dto.ChatResponse, error)
}

type chatService struct {
	uowFactory     unitofwork.RepositoryFactory
	llmProvider    llm.Provider
	textCache      *memory.DocumentTextCache
	eventPublisher *pktNats.Publisher
}

func NewChatService(
	uowFactory unitofwork.RepositoryFactory,
	llmProvider llm.Provider,
	textCache *memory.DocumentTextCache,
	eventPublisher *pktNats.Publisher,
) IChatService {
	return &chatService{
		uowFactory:     uowFactory,
		llmProvider:    llmProvider,
		textCache:      textCache,
		eventPublisher: eventPublisher,
	}
}

// Chat runs one turn: persist the query, replay the recent window with the
// document text as grounding, call the model, persist the answer. The steps
// are deliberately not one transaction; a model failure leaves the user
// message stored so the transcript reflects what was asked.
func (s *chatService) Chat(ctx context.Context, auth *serverutils.AuthContext, req *dto.ChatRequest) (*dto.ChatResponse, error) {
	query := strings.TrimSpace(req.Query)
	if query == "" {
		return nil, apperror.ErrInvalidQuery
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	doc, err := uow.DocumentRepository().FindOne(ctx, specification.ByID{ID: req.DocumentId})
	if err != nil {
		return nil, apperror.FromPersistence(err)
	}
	if doc == nil {
		return nil, apperror.ErrNotFound
	}
	if !doc.AccessibleBy(auth.UserId, auth.Role) {
		return nil, apperror.ErrAccessDenied
	}

	userMessage := &entity.ChatMessage{
		Id:         uuid.New(),
		DocumentId: doc.Id,
		Role:       constant.ChatMessageRoleUser,
		Content:    query,
		CreatedAt:  time.Now(),
	}
	if err := uow.ChatMessageRepository().Create(ctx, userMessage); err != nil {
		return nil, apperror.FromPersistence(err)
	}

	// Newest first; the window includes the message persisted above.
	recent, err := uow.ChatMessageRepository().FindAll(ctx,
		specification.ByDocumentID{DocumentID: doc.Id},
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Limit{N: conversation.WindowSize},
	)
	if err != nil {
		return nil, apperror.FromPersistence(err)
	}

	fullText := s.documentText(doc)

	answer, err := s.llmProvider.Chat(ctx, conversation.BuildMessages(fullText, recent, query))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperror.ErrLLMUnavailable, err)
	}

	aiMessage := &entity.ChatMessage{
		Id:         uuid.New(),
		DocumentId: doc.Id,
		Role:       constant.ChatMessageRoleAI,
		Content:    answer,
		CreatedAt:  time.Now(),
	}
	if err := uow.ChatMessageRepository().Create(ctx, aiMessage); err != nil {
		return nil, apperror.FromPersistence(err)
	}

	if s.eventPublisher != nil {
		evt := events.NewChatTurnCompleted(doc.Id.String(), auth.UserId.String())
		if pubErr := s.eventPublisher.Publish(ctx, evt); pubErr != nil {
			fmt.Printf("[WARN] Failed to publish %s event: %v\n", evt.EventType(), pubErr)
		}
	}

	return &dto.ChatResponse{Answer: answer}, nil
}

func (s *chatService) documentText(doc *entity.Document) string {
	if text, ok := s.textCache.Get(doc.Id.String()); ok {
		return text
	}
	s.textCache.Set(doc.Id.String(), doc.FullText)
	return doc.FullText
}
