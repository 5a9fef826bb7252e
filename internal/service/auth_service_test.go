package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yiwenkang0128/qualitative-analysis-AI-tool/internal/dto"
	"github.com/yiwenkang0128/qualitative-analysis-AI-tool/internal/entity"
	"github.com/yiwenkang0128/qualitative-analysis-AI-tool/internal/pkg/apperror"
	"github.com/yiwenkang0128/qualitative-analysis-AI-tool/internal/pkg/mailer"
	"github.com/yiwenkang0128/qualitative-analysis-AI-tool/internal/pkg/serverutils"
)

func newAuthService(factory *fakeFactory) IAuthService {
	return NewAuthService(factory, mailer.NewEmailService("", 0, "", "", ""), nil)
}

func TestRegisterThenLogin(t *testing.T) {
	factory := newFakeFactory()
	svc := newAuthService(factory)
	ctx := context.Background()

	err := svc.Register(ctx, &dto.RegisterRequest{Email: "new@example.com", Password: "longenough"})
	require.NoError(t, err)

	token, session, err := svc.Login(ctx, &dto.LoginRequest{Email: "new@example.com", Password: "longenough"})
	require.NoError(t, err)
	assert.Equal(t, "user", session.Role)
	assert.Equal(t, "new@example.com", session.Email)

	auth, err := serverutils.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", auth.Email)
	assert.Equal(t, entity.UserRoleUser, auth.Role)
}

func TestRegisterWeakPassword(t *testing.T) {
	svc := newAuthService(newFakeFactory())

	err := svc.Register(context.Background(), &dto.RegisterRequest{Email: "a@example.com", Password: "short"})
	assert.ErrorIs(t, err, apperror.ErrWeakPassword)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newAuthService(newFakeFactory())
	ctx := context.Background()

	require.NoError(t, svc.Register(ctx, &dto.RegisterRequest{Email: "dup@example.com", Password: "longenough"}))

	err := svc.Register(ctx, &dto.RegisterRequest{Email: "dup@example.com", Password: "otherlongenough"})
	assert.ErrorIs(t, err, apperror.ErrDuplicateEmail)
}

func TestLoginWrongPassword(t *testing.T) {
	svc := newAuthService(newFakeFactory())
	ctx := context.Background()

	require.NoError(t, svc.Register(ctx, &dto.RegisterRequest{Email: "u@example.com", Password: "longenough"}))

	_, _, err := svc.Login(ctx, &dto.LoginRequest{Email: "u@example.com", Password: "wrongwrong"})
	assert.ErrorIs(t, err, apperror.ErrInvalidCredential)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc := newAuthService(newFakeFactory())

	_, _, err := svc.Login(context.Background(), &dto.LoginRequest{Email: "ghost@example.com", Password: "whatever123"})
	assert.ErrorIs(t, err, apperror.ErrInvalidCredential)
}

func TestEnsureRootAdminIsIdempotent(t *testing.T) {
	factory := newFakeFactory()
	svc := newAuthService(factory)
	ctx := context.Background()

	require.NoError(t, svc.EnsureRootAdmin(ctx, "admin@test.com", "!admin123"))
	require.NoError(t, svc.EnsureRootAdmin(ctx, "admin@test.com", "!admin123"))

	require.Len(t, factory.store.users, 1)
	assert.Equal(t, entity.UserRoleAdmin, factory.store.users[0].Role)
	assert.Equal(t, "admin@test.com", factory.store.users[0].Email)

	// The seeded credentials must actually work.
	_, session, err := svc.Login(ctx, &dto.LoginRequest{Email: "admin@test.com", Password: "!admin123"})
	require.NoError(t, err)
	assert.Equal(t, "admin", session.Role)
}
