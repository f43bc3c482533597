package service

import (
	"context"
	"testing"

	"skillswap/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (d *deps) completedSwap(t *testing.T) (*models.User, *models.User, *models.Swap) {
	t.Helper()
	alice := d.createUser(t, "alice")
	bob := d.createUser(t, "bob")
	cooking := d.createSkill(t, alice, "Cooking", models.SkillTypeOffered)
	guitar := d.createSkill(t, bob, "Guitar", models.SkillTypeOffered)
	swap := d.createSwap(t, alice, bob, cooking, guitar, models.SwapStatusCompleted)
	return alice, bob, swap
}

func TestRateCompletedSwap(t *testing.T) {
	d := newDeps(t)
	alice, bob, swap := d.completedSwap(t)

	rating, err := d.rateSvc.Rate(context.Background(), RateInput{
		SwapID:   swap.ID,
		RaterID:  alice.ID,
		RateeID:  bob.ID,
		Stars:    5,
		Feedback: "Great teacher",
	})
	require.NoError(t, err)
	assert.Equal(t, 5, rating.Stars)
	assert.Equal(t, alice.ID, rating.FromUserID)
	assert.Equal(t, bob.ID, rating.ToUserID)
}

func TestRateStarsBounds(t *testing.T) {
	d := newDeps(t)
	alice, bob, swap := d.completedSwap(t)

	for _, stars := range []int{0, -1, 6} {
		_, err := d.rateSvc.Rate(context.Background(), RateInput{
			SwapID:  swap.ID,
			RaterID: alice.ID,
			RateeID: bob.ID,
			Stars:   stars,
		})
		assertAppErrorCode(t, err, models.CodeValidation)
	}
}

func TestRateOnlyCompleted(t *testing.T) {
	d := newDeps(t)
	ctx := context.Background()

	alice := d.createUser(t, "alice")
	bob := d.createUser(t, "bob")
	cooking := d.createSkill(t, alice, "Cooking", models.SkillTypeOffered)
	guitar := d.createSkill(t, bob, "Guitar", models.SkillTypeOffered)
	swap := d.createSwap(t, alice, bob, cooking, guitar, models.SwapStatusAccepted)

	_, err := d.rateSvc.Rate(ctx, RateInput{
		SwapID:  swap.ID,
		RaterID: alice.ID,
		RateeID: bob.ID,
		Stars:   4,
	})
	assertAppErrorCode(t, err, models.CodeValidation)
}

func TestRateOncePerRater(t *testing.T) {
	d := newDeps(t)
	ctx := context.Background()
	alice, bob, swap := d.completedSwap(t)

	_, err := d.rateSvc.Rate(ctx, RateInput{SwapID: swap.ID, RaterID: alice.ID, RateeID: bob.ID, Stars: 4})
	require.NoError(t, err)

	_, err = d.rateSvc.Rate(ctx, RateInput{SwapID: swap.ID, RaterID: alice.ID, RateeID: bob.ID, Stars: 2})
	assertAppErrorCode(t, err, models.CodeConflict)

	// the other participant still gets their one rating
	_, err = d.rateSvc.Rate(ctx, RateInput{SwapID: swap.ID, RaterID: bob.ID, RateeID: alice.ID, Stars: 5})
	require.NoError(t, err)
}

func TestRateOutsiderCollapsesToNotFound(t *testing.T) {
	d := newDeps(t)
	_, _, swap := d.completedSwap(t)
	mallory := d.createUser(t, "mallory")

	_, err := d.rateSvc.Rate(context.Background(), RateInput{
		SwapID:  swap.ID,
		RaterID: mallory.ID,
		Stars:   3,
	})
	assertAppErrorCode(t, err, models.CodeNotFound)
}

func TestRateDerivesRatee(t *testing.T) {
	d := newDeps(t)
	alice, bob, swap := d.completedSwap(t)

	rating, err := d.rateSvc.Rate(context.Background(), RateInput{
		SwapID:  swap.ID,
		RaterID: alice.ID,
		Stars:   4,
	})
	require.NoError(t, err)
	assert.Equal(t, bob.ID, rating.ToUserID)

	// rating anyone but the counterpart is rejected
	carol := d.createUser(t, "carol")
	_, err = d.rateSvc.Rate(context.Background(), RateInput{
		SwapID:  swap.ID,
		RaterID: bob.ID,
		RateeID: carol.ID,
		Stars:   4,
	})
	assertAppErrorCode(t, err, models.CodeValidation)
}

func TestRatingsForParticipantsOnly(t *testing.T) {
	d := newDeps(t)
	ctx := context.Background()
	alice, bob, swap := d.completedSwap(t)
	mallory := d.createUser(t, "mallory")

	_, err := d.rateSvc.Rate(ctx, RateInput{SwapID: swap.ID, RaterID: alice.ID, RateeID: bob.ID, Stars: 5})
	require.NoError(t, err)

	ratings, err := d.rateSvc.RatingsFor(ctx, bob.ID, swap.ID)
	require.NoError(t, err)
	assert.Len(t, ratings, 1)

	_, err = d.rateSvc.RatingsFor(ctx, mallory.ID, swap.ID)
	assertAppErrorCode(t, err, models.CodeNotFound)
}

func TestAverageRating(t *testing.T) {
	d := newDeps(t)
	ctx := context.Background()

	alice := d.createUser(t, "alice")
	bob := d.createUser(t, "bob")
	cooking := d.createSkill(t, alice, "Cooking", models.SkillTypeOffered)
	guitar := d.createSkill(t, bob, "Guitar", models.SkillTypeOffered)
	swap1 := d.createSwap(t, alice, bob, cooking, guitar, models.SwapStatusCompleted)
	swap2 := d.createSwap(t, bob, alice, guitar, cooking, models.SwapStatusCompleted)

	_, err := d.rateSvc.Rate(ctx, RateInput{SwapID: swap1.ID, RaterID: alice.ID, RateeID: bob.ID, Stars: 5})
	require.NoError(t, err)
	_, err = d.rateSvc.Rate(ctx, RateInput{SwapID: swap2.ID, RaterID: alice.ID, RateeID: bob.ID, Stars: 2})
	require.NoError(t, err)

	avg, err := d.rateSvc.AverageRating(ctx, bob.ID)
	require.NoError(t, err)
	assert.InDelta(t, 3.5, avg, 0.001)

	// no ratings yet reads as zero
	avg, err = d.rateSvc.AverageRating(ctx, alice.ID)
	require.NoError(t, err)
	assert.Zero(t, avg)
}
