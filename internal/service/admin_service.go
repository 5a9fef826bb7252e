package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/yiwenkang0128/qualitative-analysis-AI-tool/internal/dto"
	"github.com/yiwenkang0128/qualitative-analysis-AI-tool/internal/entity"
	"github.com/yiwenkang0128/qualitative-analysis-AI-tool/internal/pkg/apperror"
	"github.com/yiwenkang0128/qualitative-analysis-AI-tool/internal/pkg/serverutils"
	"github.com/yiwenkang0128/qualitative-analysis-AI-tool/internal/repository/memory"
	"github.com/yiwenkang0128/qualitative-analysis-AI-tool/internal/repository/specification"
	"github.com/yiwenkang0128/qualitative-analysis-AI-tool/internal/repository/unitofwork"
	"github.com/yiwenkang0128/qualitative-analysis-AI-tool/pkg/events"
	pktNats "github.com/yiwenkang0128/qualitative-analysis-AI-tool/pkg/nats"
)

type IAdminService interface {
	ListUsers(ctx context.Context, search string) ([]*dto.AdminUserResponse, error)
	ListUserDocuments(ctx context.Context, userId uuid.UUID) ([]*dto.AdminDocumentResponse, error)
	DeleteUser(ctx context.Context, auth *serverutils.AuthContext, targetId uuid.UUID) error
	DeleteDocument(ctx context.Context, id uuid.UUID) error
	RegisterAdmin(ctx context.Context, req *dto.RegisterAdminRequest) error
}

type adminService struct {
	uowFactory     unitofwork.RepositoryFactory
	textCache      *memory.DocumentTextCache
	eventPublisher *pktNats.Publisher
}

func NewAdminService(uowFactory unitofwork.RepositoryFactory, textCache *memory.DocumentTextCache, eventPublisher *pktNats.Publisher) IAdminService {
	return &adminService{
		uowFactory:     uowFactory,
		textCache:      textCache,
		eventPublisher: eventPublisher,
	}
}

func (s *adminService) ListUsers(ctx context.Context, search string) ([]*dto.AdminUserResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{
		specification.OrderBy{Field: "created_at", Desc: true},
	}
	if search != "" {
		specs = append(specs, specification.EmailContains{Term: search})
	}

	users, err := uow.UserRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, apperror.FromPersistence(err)
	}

	rows := make([]*dto.AdminUserResponse, 0, len(users))
	for _, user := range users {
		count, err := uow.DocumentRepository().Count(ctx, specification.OwnedBy{UserID: user.Id})
		if err != nil {
			return nil, apperror.FromPersistence(err)
		}
		rows = append(rows, &dto.AdminUserResponse{
			Id:            user.Id,
			Email:         user.Email,
			Role:          string(user.Role),
			CreatedAt:     user.CreatedAt,
			DocumentCount: count,
		})
	}
	return rows, nil
}

func (s *adminService) ListUserDocuments(ctx context.Context, userId uuid.UUID) ([]*dto.AdminDocumentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	docs, err := uow.DocumentRepository().FindAll(ctx,
		specification.OwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, apperror.FromPersistence(err)
	}

	rows := make([]*dto.AdminDocumentResponse, 0, len(docs))
	for _, doc := range docs {
		rows = append(rows, &dto.AdminDocumentResponse{
			Id:           doc.Id,
			Title:        doc.Title,
			OriginalName: doc.OriginalName,
			CreatedAt:    doc.CreatedAt,
		})
	}
	return rows, nil
}

func (s *adminService) DeleteUser(ctx context.Context, auth *serverutils.AuthContext, targetId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	target, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: targetId})
	if err != nil {
		return apperror.FromPersistence(err)
	}
	if target == nil {
		return apperror.ErrNotFound
	}

	// The root admin account is permanent; nobody may remove it, not even
	// itself. Other admins fall only to the root admin.
	if target.Email == serverutils.RootAdminEmail() {
		return apperror.ErrForbidden
	}
	if target.IsAdmin() && auth.Email != serverutils.RootAdminEmail() {
		return apperror.ErrForbidden
	}

	docs, err := uow.DocumentRepository().FindAll(ctx, specification.OwnedBy{UserID: target.Id})
	if err != nil {
		return apperror.FromPersistence(err)
	}

	if err := uow.Begin(ctx); err != nil {
		return apperror.FromPersistence(err)
	}
	defer uow.Rollback()

	if err := uow.ChatMessageRepository().DeleteByOwnerUserId(ctx, target.Id); err != nil {
		return apperror.FromPersistence(err)
	}
	if err := uow.DocumentRepository().DeleteByUserId(ctx, target.Id); err != nil {
		return apperror.FromPersistence(err)
	}
	if err := uow.UserRepository().Delete(ctx, target.Id); err != nil {
		return apperror.FromPersistence(err)
	}
	if err := uow.Commit(); err != nil {
		return apperror.FromPersistence(err)
	}

	for _, doc := range docs {
		s.textCache.Delete(doc.Id.String())
	}

	s.publishEvent(ctx, events.NewUserDeleted(target.Id.String(), target.Email, auth.Email))

	return nil
}

func (s *adminService) DeleteDocument(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	doc, err := uow.DocumentRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return apperror.FromPersistence(err)
	}
	if doc == nil {
		return apperror.ErrNotFound
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

	s.publishEvent(ctx, events.NewDocumentDeleted(doc.Id.String(), doc.UserId.String()))

	return nil
}

func (s *adminService) RegisterAdmin(ctx context.Context, req *dto.RegisterAdminRequest) error {
	if len(req.Password) < 8 {
		return apperror.ErrWeakPassword
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	existing, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
	if err != nil {
		return apperror.FromPersistence(err)
	}
	if existing != nil {
		return apperror.ErrDuplicateEmail
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := &entity.User{
		Id:           uuid.New(),
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         entity.UserRoleAdmin,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := uow.UserRepository().Create(ctx, admin); err != nil {
		return apperror.FromPersistence(err)
	}

	s.publishEvent(ctx, events.NewUserRegistered(admin.Id.String(), admin.Email, string(admin.Role)))

	return nil
}

func (s *adminService) publishEvent(ctx context.Context, evt events.Event) {
	if s.eventPublisher == nil {
		return
	}
	if err := s.eventPublisher.Publish(ctx, evt); err != nil {
		fmt.Printf("[WARN] Failed to publish %s event: %v\n", evt.EventType(), err)
	}
}
