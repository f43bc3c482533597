package service

import (
	"context"
	"errors"

	"skillswap/internal/models"
	"skillswap/internal/observability"
	"skillswap/internal/repository"
)

// CoinService is the only mutation path for coin balances outside the swap
// completion transaction.
type CoinService struct {
	coinRepo repository.CoinRepository
	swapRepo repository.SwapRepository
}

// NewCoinService returns a new CoinService.
func NewCoinService(coinRepo repository.CoinRepository, swapRepo repository.SwapRepository) *CoinService {
	return &CoinService{coinRepo: coinRepo, swapRepo: swapRepo}
}

// Balance returns the user's coin balance, lazily creating the record.
func (s *CoinService) Balance(ctx context.Context, userID uint) (*models.CoinBalance, error) {
	return s.coinRepo.GetOrCreate(ctx, userID)
}

// Add credits a positive amount to the user's balance.
func (s *CoinService) Add(ctx context.Context, userID uint, amount int) (*models.CoinBalance, error) {
	if amount <= 0 {
		return nil, models.NewValidationError("Amount must be positive")
	}
	balance, err := s.coinRepo.Credit(ctx, userID, amount)
	if err != nil {
		return nil, err
	}
	observability.CoinsAwarded.WithLabelValues("manual").Add(float64(amount))
	return balance, nil
}

// Deduct subtracts a positive amount, failing with a conflict when the
// balance is insufficient.
func (s *CoinService) Deduct(ctx context.Context, userID uint, amount int) (*models.CoinBalance, error) {
	if amount <= 0 {
		return nil, models.NewValidationError("Amount must be positive")
	}
	balance, err := s.coinRepo.Debit(ctx, userID, amount)
	if err != nil {
		if errors.Is(err, repository.ErrInsufficientCoins) {
			return nil, models.NewConflictError("Insufficient coins")
		}
		return nil, err
	}
	return balance, nil
}

// BonusResult reports the outcome of a retroactive bonus check.
type BonusResult struct {
	Coins          int   `json:"coins"`
	BonusAwarded   int   `json:"bonus_awarded"`
	CompletedSwaps int64 `json:"completed_swaps"`
}

// CheckSwapBonus counts the user's completed swaps and credits the
// completion bonus for each, mirroring the retroactive award endpoint.
func (s *CoinService) CheckSwapBonus(ctx context.Context, userID uint) (*BonusResult, error) {
	completed, err := s.swapRepo.CountCompletedForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	bonus := int(completed) * CompletionBonus
	if bonus == 0 {
		balance, err := s.coinRepo.GetOrCreate(ctx, userID)
		if err != nil {
			return nil, err
		}
		return &BonusResult{Coins: balance.Coins, BonusAwarded: 0, CompletedSwaps: completed}, nil
	}

	balance, err := s.coinRepo.Credit(ctx, userID, bonus)
	if err != nil {
		return nil, err
	}
	observability.CoinsAwarded.WithLabelValues("swap_bonus_check").Add(float64(bonus))
	return &BonusResult{Coins: balance.Coins, BonusAwarded: bonus, CompletedSwaps: completed}, nil
}
