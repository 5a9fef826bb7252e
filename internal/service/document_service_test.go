package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yiwenkang0128/qualitative-analysis-AI-tool/internal/entity"
	"github.com/yiwenkang0128/qualitative-analysis-AI-tool/internal/pkg/apperror"
	"github.com/yiwenkang0128/qualitative-analysis-AI-tool/internal/pkg/serverutils"
	"github.com/yiwenkang0128/qualitative-analysis-AI-tool/internal/repository/memory"
	"github.com/yiwenkang0128/qualitative-analysis-AI-tool/pkg/analyzer"
)

func seedUser(factory *fakeFactory, email string, role entity.UserRole) *entity.User {
	user := &entity.User{Id: uuid.New(), Email: email, Role: role, CreatedAt: time.Now()}
	factory.store.users = append(factory.store.users, user)
	return user
}

func seedDocument(factory *fakeFactory, owner *entity.User, title string) *entity.Document {
	doc := &entity.Document{
		Id:        uuid.New(),
		UserId:    owner.Id,
		Title:     title,
		FullText:  "full text of " + title,
		CreatedAt: time.Now(),
	}
	factory.store.documents = append(factory.store.documents, doc)
	return doc
}

func authFor(user *entity.User) *serverutils.AuthContext {
	return &serverutils.AuthContext{UserId: user.Id, Email: user.Email, Role: user.Role}
}

func newDocService(factory *fakeFactory, a analyzer.Analyzer) (IDocumentService, *memory.DocumentTextCache) {
	cache := memory.NewDocumentTextCache()
	return NewDocumentService(factory, a, cache, nil, nil), cache
}

func TestIngestSuccessDefaultsTitle(t *testing.T) {
	factory := newFakeFactory()
	owner := seedUser(factory, "owner@example.com", entity.UserRoleUser)
	fa := &fakeAnalyzer{result: &analyzer.Result{
		FullText: "T",
		Summary:  "S",
		Topics:   []entity.Topic{{Title: "A", Emoji: "E", Description: "D"}},
	}}
	svc, cache := newDocService(factory, fa)

	res, err := svc.Ingest(context.Background(), owner.Id, &IngestRequest{
		FilePath:       "uploads/123-report.pdf",
		OriginalName:   "report.pdf",
		ServerFilename: "123-report.pdf",
	})

	require.NoError(t, err)
	assert.Equal(t, "report.pdf", res.Title)
	assert.Equal(t, "S", res.Summary)
	require.Len(t, res.Topics, 1)
	assert.Equal(t, "uploads/123-report.pdf", fa.lastPath)

	require.Len(t, factory.store.documents, 1)
	assert.Equal(t, owner.Id, factory.store.documents[0].UserId)

	cached, ok := cache.Get(res.DocumentId.String())
	assert.True(t, ok)
	assert.Equal(t, "T", cached)
}

func TestIngestKeepsExplicitTitle(t *testing.T) {
	factory := newFakeFactory()
	owner := seedUser(factory, "owner@example.com", entity.UserRoleUser)
	fa := &fakeAnalyzer{result: &analyzer.Result{FullText: "T"}}
	svc, _ := newDocService(factory, fa)

	res, err := svc.Ingest(context.Background(), owner.Id, &IngestRequest{
		FilePath:     "uploads/1-x.pdf",
		OriginalName: "x.pdf",
		Title:        "Quarterly Report",
	})

	require.NoError(t, err)
	assert.Equal(t, "Quarterly Report", res.Title)
}

func TestIngestAnalyzerFailureCreatesNothing(t *testing.T) {
	factory := newFakeFactory()
	owner := seedUser(factory, "owner@example.com", entity.UserRoleUser)
	fa := &fakeAnalyzer{err: &analyzer.ProcessError{ExitCode: 1, Diagnostics: "bad pdf header"}}
	svc, _ := newDocService(factory, fa)

	_, err := svc.Ingest(context.Background(), owner.Id, &IngestRequest{FilePath: "f", OriginalName: "f.pdf"})

	require.ErrorIs(t, err, apperror.ErrAnalysisFailed)
	assert.Contains(t, err.Error(), "bad pdf header")
	assert.Empty(t, factory.store.documents)
}

func TestIngestMalformedOutput(t *testing.T) {
	factory := newFakeFactory()
	owner := seedUser(factory, "owner@example.com", entity.UserRoleUser)
	fa := &fakeAnalyzer{err: &analyzer.ParseError{}}
	svc, _ := newDocService(factory, fa)

	_, err := svc.Ingest(context.Background(), owner.Id, &IngestRequest{FilePath: "f", OriginalName: "f.pdf"})

	assert.ErrorIs(t, err, apperror.ErrMalformedAnalysisOutput)
	assert.Empty(t, factory.store.documents)
}

func TestShowAuthorization(t *testing.T) {
	factory := newFakeFactory()
	owner := seedUser(factory, "owner@example.com", entity.UserRoleUser)
	stranger := seedUser(factory, "stranger@example.com", entity.UserRoleUser)
	admin := seedUser(factory, "admin@example.com", entity.UserRoleAdmin)
	doc := seedDocument(factory, owner, "Doc")
	svc, _ := newDocService(factory, &fakeAnalyzer{})
	ctx := context.Background()

	_, err := svc.Show(ctx, authFor(stranger), doc.Id)
	assert.ErrorIs(t, err, apperror.ErrAccessDenied)

	res, err := svc.Show(ctx, authFor(owner), doc.Id)
	require.NoError(t, err)
	assert.Equal(t, "Doc", res.Title)

	_, err = svc.Show(ctx, authFor(admin), doc.Id)
	assert.NoError(t, err)

	_, err = svc.Show(ctx, authFor(owner), uuid.New())
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestDeleteIsOwnerOnlyAndCascades(t *testing.T) {
	factory := newFakeFactory()
	owner := seedUser(factory, "owner@example.com", entity.UserRoleUser)
	admin := seedUser(factory, "admin@example.com", entity.UserRoleAdmin)
	doc := seedDocument(factory, owner, "Doc")
	factory.store.messages = append(factory.store.messages,
		&entity.ChatMessage{Id: uuid.New(), DocumentId: doc.Id, Role: "user", Content: "q"},
		&entity.ChatMessage{Id: uuid.New(), DocumentId: doc.Id, Role: "ai", Content: "a"},
	)
	svc, _ := newDocService(factory, &fakeAnalyzer{})
	ctx := context.Background()

	// Admins go through the admin surface, not session delete.
	err := svc.Delete(ctx, authFor(admin), doc.Id)
	assert.ErrorIs(t, err, apperror.ErrAccessDenied)

	require.NoError(t, svc.Delete(ctx, authFor(owner), doc.Id))
	assert.Empty(t, factory.store.documents)
	assert.Empty(t, factory.store.messages)
}

func TestListReturnsOwnSessionsNewestFirst(t *testing.T) {
	factory := newFakeFactory()
	owner := seedUser(factory, "owner@example.com", entity.UserRoleUser)
	other := seedUser(factory, "other@example.com", entity.UserRoleUser)

	older := seedDocument(factory, owner, "Older")
	older.CreatedAt = time.Now().Add(-time.Hour)
	newer := seedDocument(factory, owner, "Newer")
	seedDocument(factory, other, "NotMine")

	svc, _ := newDocService(factory, &fakeAnalyzer{})

	sessions, err := svc.List(context.Background(), owner.Id)
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, newer.Id, sessions[0].Id)
	assert.Equal(t, older.Id, sessions[1].Id)
}
