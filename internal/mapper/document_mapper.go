package mapper

import (
	"encoding/json"

	"gorm.io/datatypes"

	"github.com/yiwenkang0128/qualitative-analysis-AI-tool/internal/entity"
	"github.com/yiwenkang0128/qualitative-analysis-AI-tool/internal/model"
)

type DocumentMapper struct{}

func NewDocumentMapper() *DocumentMapper {
	return &DocumentMapper{}
}

func (m *DocumentMapper) ToEntity(d *model.Document) *entity.Document {
	if d == nil {
		return nil
	}
	var topics []entity.Topic
	if len(d.Topics) > 0 {
		// Rows written before topics existed hold null; treat bad JSON as empty.
		_ = json.Unmarshal(d.Topics, &topics)
	}
	return &entity.Document{
		Id:             d.Id,
		UserId:         d.UserId,
		Title:          d.Title,
		OriginalName:   d.OriginalName,
		ServerFilename: d.ServerFilename,
		FullText:       d.FullText,
		Summary:        d.Summary,
		Topics:         topics,
		CreatedAt:      d.CreatedAt,
	}
}

func (m *DocumentMapper) ToModel(d *entity.Document) *model.Document {
	if d == nil {
		return nil
	}
	topics := d.Topics
	if topics == nil {
		topics = []entity.Topic{}
	}
	raw, _ := json.Marshal(topics)
	return &model.Document{
		Id:             d.Id,
		UserId:         d.UserId,
		Title:          d.Title,
		OriginalName:   d.OriginalName,
		ServerFilename: d.ServerFilename,
		FullText:       d.FullText,
		Summary:        d.Summary,
		Topics:         datatypes.JSON(raw),
		CreatedAt:      d.CreatedAt,
	}
}

func (m *DocumentMapper) ToEntities(docs []*model.Document) []*entity.Document {
	entities := make([]*entity.Document, len(docs))
	for i, d := range docs {
		entities[i] = m.ToEntity(d)
	}
	return entities
}
