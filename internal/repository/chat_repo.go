package repository

import (
	"vendshop/internal/model"

	"gorm.io/gorm"
)

type ChatRepository interface {
	Create(message *model.ChatMessage) error
	FindRecent(limit int) ([]model.ChatMessage, error)
}

type chatRepo struct {
	db *gorm.DB
}

func NewChatRepo(db *gorm.DB) ChatRepository {
	return &chatRepo{db}
}

func (r *chatRepo) Create(message *model.ChatMessage) error {
	return r.db.Create(message).Error
}

// FindRecent returns the newest limit messages in chronological order
func (r *chatRepo) FindRecent(limit int) ([]model.ChatMessage, error) {
	var messages []model.ChatMessage
	err := r.db.Order("created_at DESC").Limit(limit).Find(&messages).Error
	if err != nil {
		return nil, err
	}
	// reverse so the oldest of the window comes first
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}
