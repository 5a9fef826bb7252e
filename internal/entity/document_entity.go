package entity

import (
	"time"

	"github.com/google/uuid"
)

// Topic is one analyzer-extracted theme of a document.
type Topic struct {
	Title       string `json:"title"`
	Emoji       string `json:"emoji"`
	Description string `json:"description"`
}

type Document struct {
	Id             uuid.UUID
	UserId         uuid.UUID
	Title          string
	OriginalName   string
	ServerFilename string
	FullText       string
	Summary        string
	Topics         []Topic
	CreatedAt      time.Time
}

// AccessibleBy reports whether the given caller may read or mutate the
// document: its owner or any admin. Derived from current data on every call,
// never cached.
func (d *Document) AccessibleBy(userId uuid.UUID, role UserRole) bool {
	return d.UserId == userId || role == UserRoleAdmin
}
