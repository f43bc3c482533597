package service

import (
	"context"
	"errors"

	"skillswap/internal/models"
	"skillswap/internal/observability"
	"skillswap/internal/repository"

	"gorm.io/gorm"
)

// RatingService records post-swap ratings and answers rating queries.
type RatingService struct {
	ratingRepo repository.RatingRepository
	swapRepo   repository.SwapRepository
	db         *gorm.DB
}

// NewRatingService returns a new RatingService.
func NewRatingService(ratingRepo repository.RatingRepository, swapRepo repository.SwapRepository, db *gorm.DB) *RatingService {
	return &RatingService{
		ratingRepo: ratingRepo,
		swapRepo:   swapRepo,
		db:         db,
	}
}

// RateInput carries the parameters for a rating submission.
type RateInput struct {
	SwapID   uint
	RaterID  uint
	RateeID  uint
	Stars    int
	Feedback string
}

// Rate records a rating for a completed swap. The rater must be a swap
// participant, the ratee must be the counterpart, stars must be in [1,5] and
// only one rating per (swap, rater) is allowed. The duplicate check and the
// insert run in one transaction; the unique index backs the check against
// concurrent submissions.
func (s *RatingService) Rate(ctx context.Context, in RateInput) (*models.Rating, error) {
	if in.Stars < 1 || in.Stars > 5 {
		return nil, models.NewValidationError("Stars must be between 1 and 5")
	}

	swap, err := s.swapRepo.GetByID(ctx, in.SwapID)
	if err != nil {
		return nil, err
	}

	if !swap.Participant(in.RaterID) {
		return nil, models.NewNotFoundError("Swap", in.SwapID)
	}
	if swap.Status != models.SwapStatusCompleted {
		return nil, models.NewValidationError("Only completed swaps can be rated")
	}
	if in.RateeID == 0 {
		in.RateeID = swap.Counterpart(in.RaterID)
	} else if in.RateeID != swap.Counterpart(in.RaterID) {
		return nil, models.NewValidationError("Ratee must be the other participant of the swap")
	}

	rating := &models.Rating{
		SwapID:     in.SwapID,
		FromUserID: in.RaterID,
		ToUserID:   in.RateeID,
		Stars:      in.Stars,
		Feedback:   in.Feedback,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Rating{}).
			Where("swap_id = ? AND from_user_id = ?", in.SwapID, in.RaterID).
			Count(&count).Error; err != nil {
			return models.NewInternalError(err)
		}
		if count > 0 {
			return models.NewConflictError("You have already rated this swap")
		}
		if err := tx.Create(rating).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return models.NewConflictError("You have already rated this swap")
			}
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	observability.RatingsSubmitted.Inc()
	return rating, nil
}

// RatingsFor returns the ratings of a swap, restricted to its participants.
func (s *RatingService) RatingsFor(ctx context.Context, viewerID, swapID uint) ([]models.Rating, error) {
	swap, err := s.swapRepo.GetByID(ctx, swapID)
	if err != nil {
		return nil, err
	}
	if !swap.Participant(viewerID) {
		return nil, models.NewNotFoundError("Swap", swapID)
	}
	return s.ratingRepo.ListBySwap(ctx, swapID)
}

// AverageRating aggregates stars across all ratings where the user is ratee.
func (s *RatingService) AverageRating(ctx context.Context, userID uint) (float64, error) {
	return s.ratingRepo.AverageForUser(ctx, userID)
}
