package repository

import (
	"context"
	"errors"

	"skillswap/internal/models"

	"gorm.io/gorm"
)

// ErrInsufficientCoins is returned by Debit when the balance cannot cover the
// requested amount (or no balance row exists yet).
var ErrInsufficientCoins = errors.New("insufficient coins")

// CoinRepository defines the interface for coin balance operations.
// Credit and Debit are also usable inside a caller-managed transaction via
// the Tx variants so status transitions and awards commit atomically.
type CoinRepository interface {
	GetOrCreate(ctx context.Context, userID uint) (*models.CoinBalance, error)
	Credit(ctx context.Context, userID uint, amount int) (*models.CoinBalance, error)
	Debit(ctx context.Context, userID uint, amount int) (*models.CoinBalance, error)
	CreditTx(tx *gorm.DB, userID uint, amount int) error
}

type coinRepository struct {
	db *gorm.DB
}

// NewCoinRepository creates a new coin repository
func NewCoinRepository(db *gorm.DB) CoinRepository {
	return &coinRepository{db: db}
}

// GetOrCreate returns the user's balance, creating a zero row on first access.
func (r *coinRepository) GetOrCreate(ctx context.Context, userID uint) (*models.CoinBalance, error) {
	var balance models.CoinBalance
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&balance).Error
	if err == nil {
		return &balance, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.NewInternalError(err)
	}

	balance = models.CoinBalance{UserID: userID, Coins: 0}
	if err := r.db.WithContext(ctx).Create(&balance).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return &balance, nil
}

func (r *coinRepository) Credit(ctx context.Context, userID uint, amount int) (*models.CoinBalance, error) {
	if err := r.CreditTx(r.db.WithContext(ctx), userID, amount); err != nil {
		return nil, models.NewInternalError(err)
	}
	return r.GetOrCreate(ctx, userID)
}

// Debit atomically subtracts amount, guarding against negative balances with
// a conditional update. Zero rows affected means the balance was insufficient.
func (r *coinRepository) Debit(ctx context.Context, userID uint, amount int) (*models.CoinBalance, error) {
	res := r.db.WithContext(ctx).
		Model(&models.CoinBalance{}).
		Where("user_id = ? AND coins >= ?", userID, amount).
		UpdateColumn("coins", gorm.Expr("coins - ?", amount))
	if res.Error != nil {
		return nil, models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrInsufficientCoins
	}
	return r.GetOrCreate(ctx, userID)
}

// CreditTx adds amount to the user's balance within the given transaction,
// creating the balance row if absent.
func (r *coinRepository) CreditTx(tx *gorm.DB, userID uint, amount int) error {
	res := tx.Model(&models.CoinBalance{}).
		Where("user_id = ?", userID).
		UpdateColumn("coins", gorm.Expr("coins + ?", amount))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return tx.Create(&models.CoinBalance{UserID: userID, Coins: amount}).Error
	}
	return nil
}
