package repository

import (
	"context"

	"Chirpio/internal/model"

	"gorm.io/gorm"
)

type SuggestionLogRepository interface {
	Create(ctx context.Context, entry *model.SuggestionLog) error
}

type suggestionLogRepository struct {
	db *gorm.DB
}

func NewSuggestionLogRepository(db *gorm.DB) SuggestionLogRepository {
	return &suggestionLogRepository{db: db}
}

func (r *suggestionLogRepository) Create(ctx context.Context, entry *model.SuggestionLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}
