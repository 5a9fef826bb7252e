package service

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/yiwenkang0128/qualitative-analysis-AI-tool/internal/entity"
	"github.com/yiwenkang0128/qualitative-analysis-AI-tool/internal/repository/contract"
	"github.com/yiwenkang0128/qualitative-analysis-AI-tool/internal/repository/specification"
	"github.com/yiwenkang0128/qualitative-analysis-AI-tool/internal/repository/unitofwork"
	"github.com/yiwenkang0128/qualitative-analysis-AI-tool/pkg/analyzer"
	"github.com/yiwenkang0128/qualitative-analysis-AI-tool/pkg/llm"
)

// The fakes below keep everything in slices and interpret the same
// specification values the gorm implementations translate to SQL.

type queryShape struct {
	id            *uuid.UUID
	email         string
	emailContains string
	ownerId       *uuid.UUID
	documentId    *uuid.UUID
	orderDesc     bool
	ordered       bool
	limit         int
}

func shapeOf(specs []specification.Specification) queryShape {
	q := queryShape{limit: -1}
	for _, s := range specs {
		switch spec := s.(type) {
		case specification.ByID:
			id := spec.ID
			q.id = &id
		case specification.ByEmail:
			q.email = spec.Email
		case specification.EmailContains:
			q.emailContains = spec.Term
		case specification.OwnedBy:
			ownerId := spec.UserID
			q.ownerId = &ownerId
		case specification.ByDocumentID:
			documentId := spec.DocumentID
			q.documentId = &documentId
		case specification.OrderBy:
			q.ordered = true
			q.orderDesc = spec.Desc
		case specification.Limit:
			q.limit = spec.N
		}
	}
	return q
}

type memoryStore struct {
	users     []*entity.User
	documents []*entity.Document
	messages  []*entity.ChatMessage
}

type fakeUserRepo struct{ store *memoryStore }

func (r *fakeUserRepo) matching(specs []specification.Specification) []*entity.User {
	q := shapeOf(specs)
	out := make([]*entity.User, 0)
	for _, u := range r.store.users {
		if q.id != nil && u.Id != *q.id {
			continue
		}
		if q.email != "" && u.Email != q.email {
			continue
		}
		if q.emailContains != "" && !strings.Contains(strings.ToLower(u.Email), strings.ToLower(q.emailContains)) {
			continue
		}
		out = append(out, u)
	}
	if q.ordered {
		sort.SliceStable(out, func(i, j int) bool {
			if q.orderDesc {
				return out[i].CreatedAt.After(out[j].CreatedAt)
			}
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		})
	}
	if q.limit >= 0 && len(out) > q.limit {
		out = out[:q.limit]
	}
	return out
}

func (r *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	for _, u := range r.store.users {
		if u.Email == user.Email {
			return errors.New("duplicate key value violates unique constraint")
		}
	}
	r.store.users = append(r.store.users, user)
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	kept := r.store.users[:0]
	for _, u := range r.store.users {
		if u.Id != id {
			kept = append(kept, u)
		}
	}
	r.store.users = kept
	return nil
}

func (r *fakeUserRepo) FindOne(_ context.Context, specs ...specification.Specification) (*entity.User, error) {
	matches := r.matching(specs)
	if len(matches) == 0 {
		return nil, nil
	}
	return matches[0], nil
}

func (r *fakeUserRepo) FindAll(_ context.Context, specs ...specification.Specification) ([]*entity.User, error) {
	return r.matching(specs), nil
}

func (r *fakeUserRepo) Count(_ context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(r.matching(specs))), nil
}

type fakeDocumentRepo struct{ store *memoryStore }

func (r *fakeDocumentRepo) matching(specs []specification.Specification) []*entity.Document {
	q := shapeOf(specs)
	out := make([]*entity.Document, 0)
	for _, d := range r.store.documents {
		if q.id != nil && d.Id != *q.id {
			continue
		}
		if q.ownerId != nil && d.UserId != *q.ownerId {
			continue
		}
		out = append(out, d)
	}
	if q.ordered {
		sort.SliceStable(out, func(i, j int) bool {
			if q.orderDesc {
				return out[i].CreatedAt.After(out[j].CreatedAt)
			}
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		})
	}
	if q.limit >= 0 && len(out) > q.limit {
		out = out[:q.limit]
	}
	return out
}

func (r *fakeDocumentRepo) Create(_ context.Context, doc *entity.Document) error {
	r.store.documents = append(r.store.documents, doc)
	return nil
}

func (r *fakeDocumentRepo) Delete(_ context.Context, id uuid.UUID) error {
	kept := r.store.documents[:0]
	for _, d := range r.store.documents {
		if d.Id != id {
			kept = append(kept, d)
		}
	}
	r.store.documents = kept
	return nil
}

func (r *fakeDocumentRepo) DeleteByUserId(_ context.Context, userId uuid.UUID) error {
	kept := r.store.documents[:0]
	for _, d := range r.store.documents {
		if d.UserId != userId {
			kept = append(kept, d)
		}
	}
	r.store.documents = kept
	return nil
}

func (r *fakeDocumentRepo) FindOne(_ context.Context, specs ...specification.Specification) (*entity.Document, error) {
	matches := r.matching(specs)
	if len(matches) == 0 {
		return nil, nil
	}
	return matches[0], nil
}

func (r *fakeDocumentRepo) FindAll(_ context.Context, specs ...specification.Specification) ([]*entity.Document, error) {
	return r.matching(specs), nil
}

func (r *fakeDocumentRepo) Count(_ context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(r.matching(specs))), nil
}

type fakeChatRepo struct{ store *memoryStore }

func (r *fakeChatRepo) matching(specs []specification.Specification) []*entity.ChatMessage {
	q := shapeOf(specs)
	out := make([]*entity.ChatMessage, 0)
	for _, m := range r.store.messages {
		if q.documentId != nil && m.DocumentId != *q.documentId {
			continue
		}
		out = append(out, m)
	}
	if q.ordered {
		sort.SliceStable(out, func(i, j int) bool {
			if q.orderDesc {
				return out[i].CreatedAt.After(out[j].CreatedAt)
			}
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		})
	}
	if q.limit >= 0 && len(out) > q.limit {
		out = out[:q.limit]
	}
	return out
}

func (r *fakeChatRepo) Create(_ context.Context, message *entity.ChatMessage) error {
	r.store.messages = append(r.store.messages, message)
	return nil
}

func (r *fakeChatRepo) FindAll(_ context.Context, specs ...specification.Specification) ([]*entity.ChatMessage, error) {
	return r.matching(specs), nil
}

func (r *fakeChatRepo) Count(_ context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(r.matching(specs))), nil
}

func (r *fakeChatRepo) DeleteByDocumentId(_ context.Context, documentId uuid.UUID) error {
	kept := r.store.messages[:0]
	for _, m := range r.store.messages {
		if m.DocumentId != documentId {
			kept = append(kept, m)
		}
	}
	r.store.messages = kept
	return nil
}

func (r *fakeChatRepo) DeleteByOwnerUserId(_ context.Context, userId uuid.UUID) error {
	owned := make(map[uuid.UUID]bool)
	for _, d := range r.store.documents {
		if d.UserId == userId {
			owned[d.Id] = true
		}
	}
	kept := r.store.messages[:0]
	for _, m := range r.store.messages {
		if !owned[m.DocumentId] {
			kept = append(kept, m)
		}
	}
	r.store.messages = kept
	return nil
}

type fakeUnitOfWork struct {
	store *memoryStore
}

func (u *fakeUnitOfWork) Begin(context.Context) error { return nil }
func (u *fakeUnitOfWork) Commit() error               { return nil }
func (u *fakeUnitOfWork) Rollback() error             { return nil }

func (u *fakeUnitOfWork) UserRepository() contract.UserRepository {
	return &fakeUserRepo{store: u.store}
}

func (u *fakeUnitOfWork) DocumentRepository() contract.DocumentRepository {
	return &fakeDocumentRepo{store: u.store}
}

func (u *fakeUnitOfWork) ChatMessageRepository() contract.ChatMessageRepository {
	return &fakeChatRepo{store: u.store}
}

type fakeFactory struct {
	store *memoryStore
}

func newFakeFactory() *fakeFactory {
	return &fakeFactory{store: &memoryStore{}}
}

func (f *fakeFactory) NewUnitOfWork(context.Context) unitofwork.UnitOfWork {
	return &fakeUnitOfWork{store: f.store}
}

type fakeLLM struct {
	answer   string
	err      error
	lastCall []llm.Message
}

func (p *fakeLLM) Chat(_ context.Context, history []llm.Message, _ ...llm.Option) (string, error) {
	p.lastCall = history
	if p.err != nil {
		return "", p.err
	}
	return p.answer, nil
}

type fakeAnalyzer struct {
	result   *analyzer.Result
	err      error
	lastPath string
}

func (a *fakeAnalyzer) Analyze(_ context.Context, filePath string) (*analyzer.Result, error) {
	a.lastPath = filePath
	if a.err != nil {
		return nil, a.err
	}
	return a.result, nil
}
