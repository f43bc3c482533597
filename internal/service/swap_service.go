// Package service contains the business logic for the skill swap platform.
package service

import (
	"context"
	"errors"

	"skillswap/internal/models"
	"skillswap/internal/observability"
	"skillswap/internal/repository"

	"gorm.io/gorm"
)

// CompletionBonus is the fixed coin award credited to each participant when a
// swap completes.
const CompletionBonus = 5

// SwapService governs the swap lifecycle:
//
//	pending -> accepted -> completed
//	pending -> rejected
//	pending|accepted -> cancelled
//
// Completion credits CompletionBonus coins to both participants inside the
// same transaction as the status transition.
type SwapService struct {
	swapRepo  repository.SwapRepository
	skillRepo repository.SkillRepository
	userRepo  repository.UserRepository
	coinRepo  repository.CoinRepository
	db        *gorm.DB
}

// NewSwapService returns a new SwapService. The db handle is used for
// transactional transitions that carry side effects.
func NewSwapService(
	swapRepo repository.SwapRepository,
	skillRepo repository.SkillRepository,
	userRepo repository.UserRepository,
	coinRepo repository.CoinRepository,
	db *gorm.DB,
) *SwapService {
	return &SwapService{
		swapRepo:  swapRepo,
		skillRepo: skillRepo,
		userRepo:  userRepo,
		coinRepo:  coinRepo,
		db:        db,
	}
}

// ProposeInput carries the parameters for a new swap proposal.
type ProposeInput struct {
	FromUserID       uint
	ToUserID         uint
	SkillOfferedID   uint
	SkillRequestedID uint
}

// Propose creates a pending swap after verifying skill ownership on both
// sides and the absence of an identical pending proposal.
func (s *SwapService) Propose(ctx context.Context, in ProposeInput) (*models.Swap, error) {
	if in.FromUserID == in.ToUserID {
		return nil, models.NewValidationError("Cannot propose a swap with yourself")
	}

	if _, err := s.userRepo.GetByID(ctx, in.ToUserID); err != nil {
		return nil, err
	}

	offered, err := s.skillRepo.GetByID(ctx, in.SkillOfferedID)
	if err != nil {
		return nil, err
	}
	if offered.UserID != in.FromUserID {
		return nil, models.NewValidationError("Offered skill ownership mismatch")
	}

	requested, err := s.skillRepo.GetByID(ctx, in.SkillRequestedID)
	if err != nil {
		return nil, err
	}
	if requested.UserID != in.ToUserID {
		return nil, models.NewValidationError("Requested skill ownership mismatch")
	}

	dup, err := s.swapRepo.HasPendingDuplicate(ctx, in.FromUserID, in.ToUserID, in.SkillOfferedID, in.SkillRequestedID)
	if err != nil {
		return nil, err
	}
	if dup {
		return nil, models.NewConflictError("An identical swap proposal is already pending")
	}

	swap := &models.Swap{
		FromUserID:       in.FromUserID,
		ToUserID:         in.ToUserID,
		SkillOfferedID:   in.SkillOfferedID,
		SkillRequestedID: in.SkillRequestedID,
		Status:           models.SwapStatusPending,
	}
	if err := s.swapRepo.Create(ctx, swap); err != nil {
		return nil, err
	}
	return s.swapRepo.GetByID(ctx, swap.ID)
}

// ListForUser returns all swaps where the user is sender or receiver.
func (s *SwapService) ListForUser(ctx context.Context, userID uint) ([]models.Swap, error) {
	return s.swapRepo.ListByUser(ctx, userID)
}

// Accept transitions a pending swap to accepted. Only the receiver may accept.
func (s *SwapService) Accept(ctx context.Context, actorID, swapID uint) (*models.Swap, error) {
	return s.transition(ctx, actorID, swapID, models.SwapStatusAccepted, func(swap *models.Swap) bool {
		return swap.Status == models.SwapStatusPending && swap.ToUserID == actorID
	})
}

// Reject transitions a pending swap to rejected. Only the receiver may reject.
func (s *SwapService) Reject(ctx context.Context, actorID, swapID uint) (*models.Swap, error) {
	return s.transition(ctx, actorID, swapID, models.SwapStatusRejected, func(swap *models.Swap) bool {
		return swap.Status == models.SwapStatusPending && swap.ToUserID == actorID
	})
}

// Cancel withdraws a pending or accepted swap. Only the sender may cancel
// their own proposal.
func (s *SwapService) Cancel(ctx context.Context, actorID, swapID uint) (*models.Swap, error) {
	return s.transition(ctx, actorID, swapID, models.SwapStatusCancelled, func(swap *models.Swap) bool {
		if swap.FromUserID != actorID {
			return false
		}
		return swap.Status == models.SwapStatusPending || swap.Status == models.SwapStatusAccepted
	})
}

// Complete transitions an accepted swap to completed and credits the
// completion bonus to both participants. The guard re-check, status update
// and coin credits run in one transaction: a concurrent duplicate call loses
// the conditional update and surfaces as not-found, so coins are never
// double-awarded.
func (s *SwapService) Complete(ctx context.Context, actorID, swapID uint) (*models.Swap, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var swap models.Swap
		if err := tx.First(&swap, swapID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Swap", swapID)
			}
			return models.NewInternalError(err)
		}

		if !swap.Participant(actorID) || swap.Status != models.SwapStatusAccepted {
			return models.NewNotFoundError("Swap", swapID)
		}

		res := tx.Model(&models.Swap{}).
			Where("id = ? AND status = ?", swapID, models.SwapStatusAccepted).
			Update("status", models.SwapStatusCompleted)
		if res.Error != nil {
			return models.NewInternalError(res.Error)
		}
		if res.RowsAffected == 0 {
			// Lost the race to a concurrent transition.
			return models.NewNotFoundError("Swap", swapID)
		}

		if err := s.coinRepo.CreditTx(tx, swap.FromUserID, CompletionBonus); err != nil {
			return models.NewInternalError(err)
		}
		if err := s.coinRepo.CreditTx(tx, swap.ToUserID, CompletionBonus); err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	observability.SwapsCompleted.Inc()
	observability.CoinsAwarded.WithLabelValues("swap_completion").Add(2 * CompletionBonus)

	return s.swapRepo.GetByID(ctx, swapID)
}

// SuggestReplacements returns up to three pending swaps between other users,
// offered as alternatives when a swap falls through.
func (s *SwapService) SuggestReplacements(ctx context.Context, userID uint) ([]models.Swap, error) {
	return s.swapRepo.ListPendingForOthers(ctx, userID, 3)
}

// transition applies a guarded status change atomically. The guard runs on a
// row read inside the transaction and is enforced again by the conditional
// update, so concurrent conflicting transitions cannot both succeed. A failed
// guard maps to not-found: callers cannot distinguish a missing swap from one
// they are not allowed to touch.
func (s *SwapService) transition(ctx context.Context, actorID, swapID uint, to models.SwapStatus, allowed func(*models.Swap) bool) (*models.Swap, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var swap models.Swap
		if err := tx.First(&swap, swapID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Swap", swapID)
			}
			return models.NewInternalError(err)
		}

		if !allowed(&swap) {
			return models.NewNotFoundError("Swap", swapID)
		}

		res := tx.Model(&models.Swap{}).
			Where("id = ? AND status = ?", swapID, swap.Status).
			Update("status", to)
		if res.Error != nil {
			return models.NewInternalError(res.Error)
		}
		if res.RowsAffected == 0 {
			return models.NewNotFoundError("Swap", swapID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.swapRepo.GetByID(ctx, swapID)
}
