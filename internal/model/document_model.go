package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Document struct {
	Id             uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId         uuid.UUID      `gorm:"type:uuid;not null;index"` // Owner, for data isolation
	Title          string         `gorm:"type:text;not null"`
	OriginalName   string         `gorm:"type:text;not null"`
	ServerFilename string         `gorm:"type:text"`
	FullText       string         `gorm:"type:text"`
	Summary        string         `gorm:"type:text"`
	Topics         datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt      time.Time      `gorm:"autoCreateTime"`
}

func (Document) TableName() string {
	return "documents"
}
