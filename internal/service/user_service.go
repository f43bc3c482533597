package service

import (
	"context"

	"skillswap/internal/models"
	"skillswap/internal/repository"
)

// UserService provides profile-level operations for authenticated users.
type UserService struct {
	userRepo   repository.UserRepository
	skillRepo  repository.SkillRepository
	swapRepo   repository.SwapRepository
	ratingRepo repository.RatingRepository
	coinRepo   repository.CoinRepository
}

// NewUserService returns a new UserService.
func NewUserService(
	userRepo repository.UserRepository,
	skillRepo repository.SkillRepository,
	swapRepo repository.SwapRepository,
	ratingRepo repository.RatingRepository,
	coinRepo repository.CoinRepository,
) *UserService {
	return &UserService{
		userRepo:   userRepo,
		skillRepo:  skillRepo,
		swapRepo:   swapRepo,
		ratingRepo: ratingRepo,
		coinRepo:   coinRepo,
	}
}

// GetByID returns the user with the given ID.
func (s *UserService) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// SetVisibility flips the user's public-directory flag.
func (s *UserService) SetVisibility(ctx context.Context, userID uint, isPublic bool) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.IsPublic = isPublic
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// SetAvailability updates the user's free-form availability text.
func (s *UserService) SetAvailability(ctx context.Context, userID uint, availability string) (*models.User, error) {
	if len(availability) > 255 {
		return nil, models.NewValidationError("Availability must not exceed 255 characters")
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.Availability = availability
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// SetPhotoPath stores the uploaded photo reference on the user record.
func (s *UserService) SetPhotoPath(ctx context.Context, userID uint, path string) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.PhotoPath = path
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// UserStats aggregates a user's activity for the profile dashboard.
type UserStats struct {
	TotalSkills    int     `json:"total_skills"`
	TotalSwaps     int     `json:"total_swaps"`
	CompletedSwaps int64   `json:"completed_swaps"`
	AverageRating  float64 `json:"average_rating"`
	Coins          int     `json:"coins"`
}

// Stats returns the aggregate activity counts for a user.
func (s *UserService) Stats(ctx context.Context, userID uint) (*UserStats, error) {
	skills, err := s.skillRepo.ListByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}
	swaps, err := s.swapRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	completed, err := s.swapRepo.CountCompletedForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	avg, err := s.ratingRepo.AverageForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	balance, err := s.coinRepo.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &UserStats{
		TotalSkills:    len(skills),
		TotalSwaps:     len(swaps),
		CompletedSwaps: completed,
		AverageRating:  avg,
		Coins:          balance.Coins,
	}, nil
}

// PublicDirectory returns public, non-admin users with their approved skills,
// excluding the viewer.
func (s *UserService) PublicDirectory(ctx context.Context, viewerID uint) ([]models.User, error) {
	return s.userRepo.ListPublicWithSkills(ctx, viewerID)
}
