package service

import (
	"context"
	"strings"
	"testing"

	"skillswap/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserService(d *deps) *UserService {
	return NewUserService(d.users, d.skills, d.swaps, d.ratings, d.coins)
}

func TestUserSetVisibility(t *testing.T) {
	d := newDeps(t)
	svc := newUserService(d)
	ctx := context.Background()

	alice := d.createUser(t, "alice")
	require.True(t, alice.IsPublic)

	updated, err := svc.SetVisibility(ctx, alice.ID, false)
	require.NoError(t, err)
	assert.False(t, updated.IsPublic)

	var reloaded models.User
	require.NoError(t, d.db.First(&reloaded, alice.ID).Error)
	assert.False(t, reloaded.IsPublic)
}

func TestUserSetAvailability(t *testing.T) {
	d := newDeps(t)
	svc := newUserService(d)
	ctx := context.Background()

	alice := d.createUser(t, "alice")

	updated, err := svc.SetAvailability(ctx, alice.ID, "Weekends")
	require.NoError(t, err)
	assert.Equal(t, "Weekends", updated.Availability)

	_, err = svc.SetAvailability(ctx, alice.ID, strings.Repeat("x", 256))
	assertAppErrorCode(t, err, models.CodeValidation)
}

func TestUserStats(t *testing.T) {
	d := newDeps(t)
	svc := newUserService(d)
	ctx := context.Background()

	alice := d.createUser(t, "alice")
	bob := d.createUser(t, "bob")
	cooking := d.createSkill(t, alice, "Cooking", models.SkillTypeOffered)
	french := d.createSkill(t, alice, "French", models.SkillTypeWanted)
	_ = french
	guitar := d.createSkill(t, bob, "Guitar", models.SkillTypeOffered)

	d.createSwap(t, alice, bob, cooking, guitar, models.SwapStatusPending)
	swap := d.createSwap(t, alice, bob, cooking, guitar, models.SwapStatusAccepted)

	_, err := d.swapSvc.Complete(ctx, alice.ID, swap.ID)
	require.NoError(t, err)

	_, err = d.rateSvc.Rate(ctx, RateInput{SwapID: swap.ID, RaterID: bob.ID, RateeID: alice.ID, Stars: 4})
	require.NoError(t, err)

	stats, err := svc.Stats(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalSkills)
	assert.Equal(t, 2, stats.TotalSwaps)
	assert.Equal(t, int64(1), stats.CompletedSwaps)
	assert.InDelta(t, 4.0, stats.AverageRating, 0.001)
	assert.Equal(t, CompletionBonus, stats.Coins)
}

func TestUserPublicDirectory(t *testing.T) {
	d := newDeps(t)
	svc := newUserService(d)
	ctx := context.Background()

	alice := d.createUser(t, "alice")
	bob := d.createUser(t, "bob")
	d.createSkill(t, bob, "Guitar", models.SkillTypeOffered)
	pendingSkill := d.createSkill(t, bob, "Drums", models.SkillTypeOffered)
	require.NoError(t, d.db.Model(pendingSkill).Update("status", models.SkillStatusPending).Error)

	hermit := d.createUser(t, "hermit")
	require.NoError(t, d.db.Model(hermit).Update("is_public", false).Error)

	banned := d.createUser(t, "banned")
	require.NoError(t, d.db.Model(banned).Update("is_banned", true).Error)

	root := d.createUser(t, "root")
	require.NoError(t, d.db.Model(root).Update("is_admin", true).Error)

	users, err := svc.PublicDirectory(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, bob.ID, users[0].ID)
	// only approved skills ride along
	require.Len(t, users[0].Skills, 1)
	assert.Equal(t, "Guitar", users[0].Skills[0].Name)
}
