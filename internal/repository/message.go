package repository

import (
	"context"

	"skillswap/internal/models"

	"gorm.io/gorm"
)

// MessageRepository defines the interface for platform message operations
type MessageRepository interface {
	Create(ctx context.Context, msg *models.PlatformMessage) error
	List(ctx context.Context, limit, offset int) ([]models.PlatformMessage, error)
	Delete(ctx context.Context, id uint) error
}

type messageRepository struct {
	db *gorm.DB
}

// NewMessageRepository creates a new platform message repository
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(ctx context.Context, msg *models.PlatformMessage) error {
	if err := r.db.WithContext(ctx).Create(msg).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *messageRepository) List(ctx context.Context, limit, offset int) ([]models.PlatformMessage, error) {
	var msgs []models.PlatformMessage
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&msgs).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return msgs, nil
}

func (r *messageRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.PlatformMessage{}, id)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Platform message", id)
	}
	return nil
}
