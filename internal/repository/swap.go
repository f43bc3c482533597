package repository

import (
	"context"
	"errors"

	"skillswap/internal/models"

	"gorm.io/gorm"
)

// SwapRepository defines the interface for swap data operations
type SwapRepository interface {
	Create(ctx context.Context, swap *models.Swap) error
	GetByID(ctx context.Context, id uint) (*models.Swap, error)
	ListByUser(ctx context.Context, userID uint) ([]models.Swap, error)
	ListByStatus(ctx context.Context, status models.SwapStatus, limit, offset int) ([]models.Swap, error)
	ListAll(ctx context.Context, limit, offset int) ([]models.Swap, error)
	ListPendingForOthers(ctx context.Context, excludeUserID uint, limit int) ([]models.Swap, error)
	HasPendingDuplicate(ctx context.Context, fromUserID, toUserID, offeredID, requestedID uint) (bool, error)
	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status models.SwapStatus) (int64, error)
	CountCompletedForUser(ctx context.Context, userID uint) (int64, error)
}

type swapRepository struct {
	db *gorm.DB
}

// NewSwapRepository creates a new swap repository
func NewSwapRepository(db *gorm.DB) SwapRepository {
	return &swapRepository{db: db}
}

func (r *swapRepository) Create(ctx context.Context, swap *models.Swap) error {
	if err := r.db.WithContext(ctx).Create(swap).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *swapRepository) GetByID(ctx context.Context, id uint) (*models.Swap, error) {
	var swap models.Swap
	if err := r.db.WithContext(ctx).
		Preload("Sender").
		Preload("Receiver").
		Preload("SkillOffered").
		Preload("SkillRequested").
		First(&swap, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Swap", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &swap, nil
}

func (r *swapRepository) ListByUser(ctx context.Context, userID uint) ([]models.Swap, error) {
	var swaps []models.Swap
	if err := r.db.WithContext(ctx).
		Where("from_user_id = ? OR to_user_id = ?", userID, userID).
		Preload("Sender").
		Preload("Receiver").
		Preload("SkillOffered").
		Preload("SkillRequested").
		Order("created_at DESC").
		Find(&swaps).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return swaps, nil
}

func (r *swapRepository) ListByStatus(ctx context.Context, status models.SwapStatus, limit, offset int) ([]models.Swap, error) {
	var swaps []models.Swap
	if err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Preload("Sender").
		Preload("Receiver").
		Preload("SkillOffered").
		Preload("SkillRequested").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&swaps).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return swaps, nil
}

func (r *swapRepository) ListAll(ctx context.Context, limit, offset int) ([]models.Swap, error) {
	var swaps []models.Swap
	if err := r.db.WithContext(ctx).
		Preload("Sender").
		Preload("Receiver").
		Preload("SkillOffered").
		Preload("SkillRequested").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&swaps).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return swaps, nil
}

// ListPendingForOthers returns pending swaps not addressed to the given user,
// used for replacement suggestions.
func (r *swapRepository) ListPendingForOthers(ctx context.Context, excludeUserID uint, limit int) ([]models.Swap, error) {
	var swaps []models.Swap
	if err := r.db.WithContext(ctx).
		Where("status = ? AND to_user_id != ? AND from_user_id != ?",
			models.SwapStatusPending, excludeUserID, excludeUserID).
		Preload("SkillOffered").
		Preload("SkillRequested").
		Order("created_at DESC").
		Limit(limit).
		Find(&swaps).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return swaps, nil
}

func (r *swapRepository) HasPendingDuplicate(ctx context.Context, fromUserID, toUserID, offeredID, requestedID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Swap{}).
		Where("from_user_id = ? AND to_user_id = ? AND skill_offered_id = ? AND skill_requested_id = ? AND status = ?",
			fromUserID, toUserID, offeredID, requestedID, models.SwapStatusPending).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *swapRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Swap{}).Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

func (r *swapRepository) CountByStatus(ctx context.Context, status models.SwapStatus) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Swap{}).
		Where("status = ?", status).
		Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

func (r *swapRepository) CountCompletedForUser(ctx context.Context, userID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Swap{}).
		Where("(from_user_id = ? OR to_user_id = ?) AND status = ?",
			userID, userID, models.SwapStatusCompleted).
		Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}
