package service

import (
	"context"
	"testing"

	"skillswap/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoinBalanceLazyCreation(t *testing.T) {
	d := newDeps(t)
	alice := d.createUser(t, "alice")

	balance, err := d.coinSvc.Balance(context.Background(), alice.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, balance.Coins)
	assert.Equal(t, alice.ID, balance.UserID)
}

func TestCoinAddAndDeduct(t *testing.T) {
	d := newDeps(t)
	ctx := context.Background()
	alice := d.createUser(t, "alice")

	balance, err := d.coinSvc.Add(ctx, alice.ID, 10)
	require.NoError(t, err)
	assert.Equal(t, 10, balance.Coins)

	balance, err = d.coinSvc.Deduct(ctx, alice.ID, 4)
	require.NoError(t, err)
	assert.Equal(t, 6, balance.Coins)
}

func TestCoinAmountMustBePositive(t *testing.T) {
	d := newDeps(t)
	ctx := context.Background()
	alice := d.createUser(t, "alice")

	_, err := d.coinSvc.Add(ctx, alice.ID, 0)
	assertAppErrorCode(t, err, models.CodeValidation)
	_, err = d.coinSvc.Add(ctx, alice.ID, -5)
	assertAppErrorCode(t, err, models.CodeValidation)
	_, err = d.coinSvc.Deduct(ctx, alice.ID, -5)
	assertAppErrorCode(t, err, models.CodeValidation)
}

func TestCoinDeductInsufficient(t *testing.T) {
	d := newDeps(t)
	ctx := context.Background()
	alice := d.createUser(t, "alice")

	_, err := d.coinSvc.Add(ctx, alice.ID, 3)
	require.NoError(t, err)

	_, err = d.coinSvc.Deduct(ctx, alice.ID, 5)
	assertAppErrorCode(t, err, models.CodeConflict)

	// balance is untouched after a failed deduction
	assert.Equal(t, 3, d.coinsOf(t, alice.ID))
}

func TestCheckSwapBonusRetroactive(t *testing.T) {
	d := newDeps(t)
	ctx := context.Background()

	alice := d.createUser(t, "alice")
	bob := d.createUser(t, "bob")
	cooking := d.createSkill(t, alice, "Cooking", models.SkillTypeOffered)
	guitar := d.createSkill(t, bob, "Guitar", models.SkillTypeOffered)
	d.createSwap(t, alice, bob, cooking, guitar, models.SwapStatusCompleted)
	d.createSwap(t, bob, alice, guitar, cooking, models.SwapStatusCompleted)
	d.createSwap(t, alice, bob, cooking, guitar, models.SwapStatusPending)

	result, err := d.coinSvc.CheckSwapBonus(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), result.CompletedSwaps)
	assert.Equal(t, 2*CompletionBonus, result.BonusAwarded)
	assert.Equal(t, 2*CompletionBonus, result.Coins)
}

func TestCheckSwapBonusNoCompletedSwaps(t *testing.T) {
	d := newDeps(t)
	alice := d.createUser(t, "alice")

	result, err := d.coinSvc.CheckSwapBonus(context.Background(), alice.ID)
	require.NoError(t, err)
	assert.Zero(t, result.BonusAwarded)
	assert.Zero(t, result.Coins)
	assert.Zero(t, result.CompletedSwaps)
}
