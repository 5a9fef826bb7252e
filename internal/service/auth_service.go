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
	"github.com/yiwenkang0128/qualitative-analysis-AI-tool/internal/pkg/mailer"
	"github.com/yiwenkang0128/qualitative-analysis-AI-tool/internal/pkg/serverutils"
	"github.com/yiwenkang0128/qualitative-analysis-AI-tool/internal/repository/specification"
	"github.com/yiwenkang0128/qualitative-analysis-AI-tool/internal/repository/unitofwork"
	"github.com/yiwenkang0128/qualitative-analysis-AI-tool/pkg/events"
	pktNats "github.com/yiwenkang0128/qualitative-analysis-AI-tool/pkg/nats"
)

type IAuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) error
	Login(ctx context.Context, req *dto.LoginRequest) (string, *dto.SessionResponse, error)
	// EnsureRootAdmin creates the distinguished admin account if it does not
	// exist yet. Safe to call on every startup.
	EnsureRootAdmin(ctx context.Context, email, password string) error
}

type authService struct {
	uowFactory     unitofwork.RepositoryFactory
	emailService   mailer.IEmailService
	eventPublisher *pktNats.Publisher
}

func NewAuthService(uowFactory unitofwork.RepositoryFactory, emailService mailer.IEmailService, eventPublisher *pktNats.Publisher) IAuthService {
	return &authService{
		uowFactory:     uowFactory,
		emailService:   emailService,
		eventPublisher: eventPublisher,
	}
}

func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) error {
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

	user := &entity.User{
		Id:           uuid.New(),
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         entity.UserRoleUser,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := uow.UserRepository().Create(ctx, user); err != nil {
		// A concurrent registration can still race past the lookup above; the
		// unique index on email is authoritative.
		return apperror.FromPersistence(err)
	}

	go func() {
		if mailErr := s.emailService.SendWelcome(user.Email); mailErr != nil {
			fmt.Printf("Error sending welcome email: %v\n", mailErr)
		}
	}()

	s.publishEvent(ctx, events.NewUserRegistered(user.Id.String(), user.Email, string(user.Role)))

	return nil
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (string, *dto.SessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
	if err != nil || user == nil {
		return "", nil, apperror.ErrInvalidCredential
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return "", nil, apperror.ErrInvalidCredential
	}

	token, err := serverutils.IssueToken(user)
	if err != nil {
		return "", nil, err
	}

	s.publishEvent(ctx, events.NewUserLoggedIn(user.Id.String(), user.Email))

	return token, &dto.SessionResponse{
		Role:  string(user.Role),
		Email: user.Email,
	}, nil
}

func (s *authService) EnsureRootAdmin(ctx context.Context, email, password string) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	existing, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: email})
	if err != nil {
		return apperror.FromPersistence(err)
	}
	if existing != nil {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := &entity.User{
		Id:           uuid.New(),
		Email:        email,
		PasswordHash: string(hash),
		Role:         entity.UserRoleAdmin,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := uow.UserRepository().Create(ctx, admin); err != nil {
		return apperror.FromPersistence(err)
	}
	return nil
}

func (s *authService) publishEvent(ctx context.Context, evt events.Event) {
	if s.eventPublisher == nil {
		return
	}
	// Events feed auxiliary consumers; a bus outage must not fail the request.
	if err := s.eventPublisher.Publish(ctx, evt); err != nil {
		fmt.Printf("[WARN] Failed to publish %s event: %v\n", evt.EventType(), err)
	}
}
