package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/yiwenkang0128/qualitative-analysis-AI-tool/internal/dto"
	"github.com/yiwenkang0128/qualitative-analysis-AI-tool/internal/entity"
	"github.com/yiwenkang0128/qualitative-analysis-AI-tool/internal/pkg/apperror"
	"github.com/yiwenkang0128/qualitative-analysis-AI-tool/internal/pkg/serverutils"
	"github.com/yiwenkang0128/qualitative-analysis-AI-tool/internal/repository/memory"
	"github.com/yiwenkang0128/qualitative-analysis-AI-tool/internal/repository/specification"
	"github.com/yiwenkang0128/qualitative-analysis-AI-tool/internal/repository/unitofwork"
	"github.com/yiwenkang0128/qualitative-analysis-AI-tool/pkg/analyzer"
	"github.com/yiwenkang0128/qualitative-analysis-AI-tool/pkg/events"
	pktNats "github.com/yiwenkang0128/qualitative-analysis-AI-tool/pkg/nats"
)

type IDocumentService interface {
	List(ctx context.Context, userId uuid.UUID) ([]*dto.SessionSummaryResponse, error)
	Show(ctx context.Context, auth *serverutils.AuthContext, id uuid.UUID) (*dto.SessionDetailResponse, error)
	Ingest(ctx context.Context, userId uuid.UUID, req *IngestRequest) (*dto.UploadResponse, error)
	Delete(ctx context.Context, auth *serverutils.AuthContext, id uuid.UUID) error
}

// IngestRequest describes a stored upload awaiting analysis. FilePath points
// at the saved file the analyzer is invoked on.
type IngestRequest struct {
	FilePath       string
	OriginalName   string
	ServerFilename string
	Title          string
}

type documentService struct {
	uowFactory       unitofwork.RepositoryFactory
	docAnalyzer      analyzer.Analyzer
	textCache        *memory.DocumentTextCache
	publisherService IPublisherService
	eventPublisher   *pktNats.Publisher
}

func NewDocumentService(
	uowFactory unitofwork.RepositoryFactory,
	docAnalyzer analyzer.Analyzer,
	textCache *memory.DocumentTextCache,
	publisherService IPublisherService,
	eventPublisher *pktNats.Publisher,
) IDocumentService {
	return &documentService{
		uowFactory:       uowFactory,
		docAnalyzer:      docAnalyzer,
		textCache:        textCache,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
	}
}

func (s *documentService) List(ctx context.Context, userId uuid.UUID) ([]*dto.SessionSummaryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	docs, err := uow.DocumentRepository().FindAll(ctx,
		specification.OwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, apperror.FromPersistence(err)
	}

	sessions := make([]*dto.SessionSummaryResponse, 0, len(docs))
	for _, doc := range docs {
		sessions = append(sessions, &dto.SessionSummaryResponse{
			Id:        doc.Id,
			Title:     doc.Title,
			CreatedAt: doc.CreatedAt,
		})
	}
	return sessions, nil
}

func (s *documentService) Show(ctx context.Context, auth *serverutils.AuthContext, id uuid.UUID) (*dto.SessionDetailResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	doc, err := uow.DocumentRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, apperror.FromPersistence(err)
	}
	if doc == nil {
		return nil, apperror.ErrNotFound
	}
	if !doc.AccessibleBy(auth.UserId, auth.Role) {
		return nil, apperror.ErrAccessDenied
	}

	messages, err := uow.ChatMessageRepository().FindAll(ctx,
		specification.ByDocumentID{DocumentID: doc.Id},
		specification.OrderBy{Field: "created_at", Desc: false},
	)
	if err != nil {
		return nil, apperror.FromPersistence(err)
	}

	history := make([]dto.ChatMessageResponse, 0, len(messages))
	for _, m := range messages {
		history = append(history, dto.ChatMessageResponse{
			Id:        m.Id,
			Role:      m.Role,
			Content:   m.Content,
			CreatedAt: m.CreatedAt,
		})
	}

	return &dto.SessionDetailResponse{
		Id:          doc.Id,
		Title:       doc.Title,
		Summary:     doc.Summary,
		Topics:      doc.Topics,
		ChatHistory: history,
	}, nil
}

func (s *documentService) Ingest(ctx context.Context, userId uuid.UUID, req *IngestRequest) (*dto.UploadResponse, error) {
	result, err := s.docAnalyzer.Analyze(ctx, req.FilePath)
	if err != nil {
		var procErr *analyzer.ProcessError
		if errors.As(err, &procErr) {
			return nil, fmt.Errorf("%w: %s", apperror.ErrAnalysisFailed, procErr.Diagnostics)
		}
		var parseErr *analyzer.ParseError
		if errors.As(err, &parseErr) {
			return nil, apperror.ErrMalformedAnalysisOutput
		}
		return nil, fmt.Errorf("%w: %v", apperror.ErrAnalysisFailed, err)
	}

	title := req.Title
	if title == "" {
		title = req.OriginalName
	}

	doc := &entity.Document{
		Id:             uuid.New(),
		UserId:         userId,
		Title:          title,
		OriginalName:   req.OriginalName,
		ServerFilename: req.ServerFilename,
		FullText:       result.FullText,
		Summary:        result.Summary,
		Topics:         result.Topics,
		CreatedAt:      time.Now(),
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.DocumentRepository().Create(ctx, doc); err != nil {
		return nil, apperror.FromPersistence(err)
	}

	s.textCache.Set(doc.Id.String(), doc.FullText)

	s.audit(ctx, "document.ingested", doc.Id, userId)
	s.publishEvent(ctx, events.NewDocumentIngested(doc.Id.String(), userId.String(), doc.Title))

	return &dto.UploadResponse{
		DocumentId: doc.Id,
		Title:      doc.Title,
		Summary:    doc.Summary,
		Topics:     doc.Topics,
	}, nil
}

func (s *documentService) Delete(ctx context.Context, auth *serverutils.AuthContext, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	doc, err := uow.DocumentRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return apperror.FromPersistence(err)
	}
	if doc == nil {
		return apperror.ErrNotFound
	}
	// Session deletion stays owner-only; admins purge via the admin surface.
	if doc.UserId != auth.UserId {
		return apperror.ErrAccessDenied
	}

	if err := uow.Begin(ctx); err != nil {
		return apperror.FromPersistence(err)
	}
	defer uow.Rollback()

	if err := uow.ChatMessageRepository().DeleteByDocumentId(ctx, doc.Id); err != nil {
		return apperror.FromPersistence(err)
	}
	if err := uow.DocumentRepository().Delete(ctx, doc.Id); err != nil {
		return apperror.FromPersistence(err)
	}
	if err := uow.Commit(); err != nil {
		return apperror.FromPersistence(err)
	}

	s.textCache.Delete(doc.Id.String())

	s.audit(ctx, "document.deleted", doc.Id, auth.UserId)
	s.publishEvent(ctx, events.NewDocumentDeleted(doc.Id.String(), doc.UserId.String()))

	return nil
}

func (s *documentService) audit(ctx context.Context, action string, documentId, userId uuid.UUID) {
	if s.publisherService == nil {
		return
	}
	payload, err := json.Marshal(dto.AuditEventMessage{
		Action:     action,
		DocumentId: documentId,
		UserId:     userId,
		OccurredAt: time.Now(),
	})
	if err != nil {
		return
	}
	if err := s.publisherService.Publish(ctx, payload); err != nil {
		fmt.Printf("[WARN] Failed to publish audit message %s: %v\n", action, err)
	}
}

func (s *documentService) publishEvent(ctx context.Context, evt events.Event) {
	if s.eventPublisher == nil {
		return
	}
	if err := s.eventPublisher.Publish(ctx, evt); err != nil {
		fmt.Printf("[WARN] Failed to publish %s event: %v\n", evt.EventType(), err)
	}
}
