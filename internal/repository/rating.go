package repository

import (
	"context"

	"skillswap/internal/models"

	"gorm.io/gorm"
)

// RatingRepository defines the interface for rating data operations
type RatingRepository interface {
	Create(ctx context.Context, rating *models.Rating) error
	ListBySwap(ctx context.Context, swapID uint) ([]models.Rating, error)
	ListAll(ctx context.Context, limit, offset int) ([]models.Rating, error)
	ExistsForRater(ctx context.Context, swapID, raterID uint) (bool, error)
	AverageForUser(ctx context.Context, userID uint) (float64, error)
	AveragePlatform(ctx context.Context) (float64, error)
	Count(ctx context.Context) (int64, error)
}

type ratingRepository struct {
	db *gorm.DB
}

// NewRatingRepository creates a new rating repository
func NewRatingRepository(db *gorm.DB) RatingRepository {
	return &ratingRepository{db: db}
}

func (r *ratingRepository) Create(ctx context.Context, rating *models.Rating) error {
	if err := r.db.WithContext(ctx).Create(rating).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *ratingRepository) ListBySwap(ctx context.Context, swapID uint) ([]models.Rating, error) {
	var ratings []models.Rating
	if err := r.db.WithContext(ctx).
		Where("swap_id = ?", swapID).
		Order("created_at ASC").
		Find(&ratings).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return ratings, nil
}

func (r *ratingRepository) ListAll(ctx context.Context, limit, offset int) ([]models.Rating, error) {
	var ratings []models.Rating
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&ratings).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return ratings, nil
}

func (r *ratingRepository) ExistsForRater(ctx context.Context, swapID, raterID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Rating{}).
		Where("swap_id = ? AND from_user_id = ?", swapID, raterID).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

// AverageForUser aggregates stars across ratings where the user is ratee,
// defaulting to 0.0 when none exist.
func (r *ratingRepository) AverageForUser(ctx context.Context, userID uint) (float64, error) {
	var avg *float64
	if err := r.db.WithContext(ctx).
		Model(&models.Rating{}).
		Select("AVG(stars)").
		Where("to_user_id = ?", userID).
		Scan(&avg).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	if avg == nil {
		return 0, nil
	}
	return *avg, nil
}

func (r *ratingRepository) AveragePlatform(ctx context.Context) (float64, error) {
	var avg *float64
	if err := r.db.WithContext(ctx).
		Model(&models.Rating{}).
		Select("AVG(stars)").
		Scan(&avg).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	if avg == nil {
		return 0, nil
	}
	return *avg, nil
}

func (r *ratingRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Rating{}).Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}
