package service

import (
	"context"
	"testing"

	"skillswap/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSwapProposeHappyPath(t *testing.T) {
	d := newDeps(t)
	ctx := context.Background()

	alice := d.createUser(t, "alice")
	bob := d.createUser(t, "bob")
	cooking := d.createSkill(t, alice, "Cooking", models.SkillTypeOffered)
	guitar := d.createSkill(t, bob, "Guitar", models.SkillTypeOffered)

	swap, err := d.swapSvc.Propose(ctx, ProposeInput{
		FromUserID:       alice.ID,
		ToUserID:         bob.ID,
		SkillOfferedID:   cooking.ID,
		SkillRequestedID: guitar.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, models.SwapStatusPending, swap.Status)
	assert.Equal(t, alice.ID, swap.FromUserID)
	assert.Equal(t, bob.ID, swap.ToUserID)
}

func TestSwapProposeSelf(t *testing.T) {
	d := newDeps(t)
	alice := d.createUser(t, "alice")

	_, err := d.swapSvc.Propose(context.Background(), ProposeInput{
		FromUserID: alice.ID,
		ToUserID:   alice.ID,
	})
	assertAppErrorCode(t, err, models.CodeValidation)
}

func TestSwapProposeOwnershipMismatch(t *testing.T) {
	d := newDeps(t)
	ctx := context.Background()

	alice := d.createUser(t, "alice")
	bob := d.createUser(t, "bob")
	carol := d.createUser(t, "carol")
	carolSkill := d.createSkill(t, carol, "Painting", models.SkillTypeOffered)
	bobSkill := d.createSkill(t, bob, "Guitar", models.SkillTypeOffered)

	// offered skill belongs to carol, not the sender
	_, err := d.swapSvc.Propose(ctx, ProposeInput{
		FromUserID:       alice.ID,
		ToUserID:         bob.ID,
		SkillOfferedID:   carolSkill.ID,
		SkillRequestedID: bobSkill.ID,
	})
	assertAppErrorCode(t, err, models.CodeValidation)

	// requested skill belongs to carol, not the receiver
	aliceSkill := d.createSkill(t, alice, "Cooking", models.SkillTypeOffered)
	_, err = d.swapSvc.Propose(ctx, ProposeInput{
		FromUserID:       alice.ID,
		ToUserID:         bob.ID,
		SkillOfferedID:   aliceSkill.ID,
		SkillRequestedID: carolSkill.ID,
	})
	assertAppErrorCode(t, err, models.CodeValidation)
}

func TestSwapProposeDuplicatePending(t *testing.T) {
	d := newDeps(t)
	ctx := context.Background()

	alice := d.createUser(t, "alice")
	bob := d.createUser(t, "bob")
	cooking := d.createSkill(t, alice, "Cooking", models.SkillTypeOffered)
	guitar := d.createSkill(t, bob, "Guitar", models.SkillTypeOffered)

	in := ProposeInput{
		FromUserID:       alice.ID,
		ToUserID:         bob.ID,
		SkillOfferedID:   cooking.ID,
		SkillRequestedID: guitar.ID,
	}
	_, err := d.swapSvc.Propose(ctx, in)
	require.NoError(t, err)

	_, err = d.swapSvc.Propose(ctx, in)
	assertAppErrorCode(t, err, models.CodeConflict)
}

func TestSwapProposeAgainAfterRejection(t *testing.T) {
	d := newDeps(t)
	ctx := context.Background()

	alice := d.createUser(t, "alice")
	bob := d.createUser(t, "bob")
	cooking := d.createSkill(t, alice, "Cooking", models.SkillTypeOffered)
	guitar := d.createSkill(t, bob, "Guitar", models.SkillTypeOffered)

	in := ProposeInput{
		FromUserID:       alice.ID,
		ToUserID:         bob.ID,
		SkillOfferedID:   cooking.ID,
		SkillRequestedID: guitar.ID,
	}
	first, err := d.swapSvc.Propose(ctx, in)
	require.NoError(t, err)

	_, err = d.swapSvc.Reject(ctx, bob.ID, first.ID)
	require.NoError(t, err)

	// only pending duplicates block a new proposal
	_, err = d.swapSvc.Propose(ctx, in)
	require.NoError(t, err)
}

func TestSwapAcceptOnlyReceiver(t *testing.T) {
	d := newDeps(t)
	ctx := context.Background()

	alice := d.createUser(t, "alice")
	bob := d.createUser(t, "bob")
	cooking := d.createSkill(t, alice, "Cooking", models.SkillTypeOffered)
	guitar := d.createSkill(t, bob, "Guitar", models.SkillTypeOffered)
	swap := d.createSwap(t, alice, bob, cooking, guitar, models.SwapStatusPending)

	// the sender cannot accept their own proposal
	_, err := d.swapSvc.Accept(ctx, alice.ID, swap.ID)
	assertAppErrorCode(t, err, models.CodeNotFound)

	accepted, err := d.swapSvc.Accept(ctx, bob.ID, swap.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SwapStatusAccepted, accepted.Status)

	// accepting twice fails: the swap is no longer pending
	_, err = d.swapSvc.Accept(ctx, bob.ID, swap.ID)
	assertAppErrorCode(t, err, models.CodeNotFound)
}

func TestSwapCancelOnlySender(t *testing.T) {
	d := newDeps(t)
	ctx := context.Background()

	alice := d.createUser(t, "alice")
	bob := d.createUser(t, "bob")
	cooking := d.createSkill(t, alice, "Cooking", models.SkillTypeOffered)
	guitar := d.createSkill(t, bob, "Guitar", models.SkillTypeOffered)

	swap := d.createSwap(t, alice, bob, cooking, guitar, models.SwapStatusPending)
	_, err := d.swapSvc.Cancel(ctx, bob.ID, swap.ID)
	assertAppErrorCode(t, err, models.CodeNotFound)

	cancelled, err := d.swapSvc.Cancel(ctx, alice.ID, swap.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SwapStatusCancelled, cancelled.Status)

	// accepted swaps can be cancelled too
	accepted := d.createSwap(t, alice, bob, cooking, guitar, models.SwapStatusAccepted)
	cancelled, err = d.swapSvc.Cancel(ctx, alice.ID, accepted.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SwapStatusCancelled, cancelled.Status)

	// completed swaps cannot
	completed := d.createSwap(t, alice, bob, cooking, guitar, models.SwapStatusCompleted)
	_, err = d.swapSvc.Cancel(ctx, alice.ID, completed.ID)
	assertAppErrorCode(t, err, models.CodeNotFound)
}

func TestSwapCompleteAwardsBonusOnce(t *testing.T) {
	d := newDeps(t)
	ctx := context.Background()

	alice := d.createUser(t, "alice")
	bob := d.createUser(t, "bob")
	cooking := d.createSkill(t, alice, "Cooking", models.SkillTypeOffered)
	guitar := d.createSkill(t, bob, "Guitar", models.SkillTypeOffered)
	swap := d.createSwap(t, alice, bob, cooking, guitar, models.SwapStatusAccepted)

	completed, err := d.swapSvc.Complete(ctx, alice.ID, swap.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SwapStatusCompleted, completed.Status)

	assert.Equal(t, CompletionBonus, d.coinsOf(t, alice.ID))
	assert.Equal(t, CompletionBonus, d.coinsOf(t, bob.ID))

	// a second completion attempt does not double-award
	_, err = d.swapSvc.Complete(ctx, bob.ID, swap.ID)
	assertAppErrorCode(t, err, models.CodeNotFound)
	assert.Equal(t, CompletionBonus, d.coinsOf(t, alice.ID))
	assert.Equal(t, CompletionBonus, d.coinsOf(t, bob.ID))
}

func TestSwapCompleteRequiresAccepted(t *testing.T) {
	d := newDeps(t)
	ctx := context.Background()

	alice := d.createUser(t, "alice")
	bob := d.createUser(t, "bob")
	cooking := d.createSkill(t, alice, "Cooking", models.SkillTypeOffered)
	guitar := d.createSkill(t, bob, "Guitar", models.SkillTypeOffered)
	swap := d.createSwap(t, alice, bob, cooking, guitar, models.SwapStatusPending)

	_, err := d.swapSvc.Complete(ctx, alice.ID, swap.ID)
	assertAppErrorCode(t, err, models.CodeNotFound)
	assert.Equal(t, 0, d.coinsOf(t, alice.ID))
}

func TestSwapCompleteOutsiderCollapsesToNotFound(t *testing.T) {
	d := newDeps(t)
	ctx := context.Background()

	alice := d.createUser(t, "alice")
	bob := d.createUser(t, "bob")
	mallory := d.createUser(t, "mallory")
	cooking := d.createSkill(t, alice, "Cooking", models.SkillTypeOffered)
	guitar := d.createSkill(t, bob, "Guitar", models.SkillTypeOffered)
	swap := d.createSwap(t, alice, bob, cooking, guitar, models.SwapStatusAccepted)

	_, err := d.swapSvc.Complete(ctx, mallory.ID, swap.ID)
	assertAppErrorCode(t, err, models.CodeNotFound)
}

func TestSwapSuggestReplacementsExcludesOwn(t *testing.T) {
	d := newDeps(t)
	ctx := context.Background()

	alice := d.createUser(t, "alice")
	bob := d.createUser(t, "bob")
	carol := d.createUser(t, "carol")
	cooking := d.createSkill(t, alice, "Cooking", models.SkillTypeOffered)
	guitar := d.createSkill(t, bob, "Guitar", models.SkillTypeOffered)
	painting := d.createSkill(t, carol, "Painting", models.SkillTypeOffered)

	d.createSwap(t, alice, bob, cooking, guitar, models.SwapStatusPending)
	d.createSwap(t, bob, carol, guitar, painting, models.SwapStatusPending)

	suggestions, err := d.swapSvc.SuggestReplacements(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, suggestions, 1)
	assert.Equal(t, bob.ID, suggestions[0].FromUserID)
	assert.Equal(t, carol.ID, suggestions[0].ToUserID)
}
