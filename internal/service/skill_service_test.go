package service

import (
	"context"
	"strings"
	"testing"

	"skillswap/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSkillCreate(t *testing.T) {
	d := newDeps(t)
	svc := NewSkillService(d.skills)
	alice := d.createUser(t, "alice")

	skill, err := svc.Create(context.Background(), CreateSkillInput{
		OwnerID: alice.ID,
		Name:    "  Cooking  ",
		Type:    models.SkillTypeOffered,
		Level:   models.SkillLevelIntermediate,
	})
	require.NoError(t, err)
	assert.Equal(t, "Cooking", skill.Name)
	assert.Equal(t, models.SkillStatusApproved, skill.Status)
	assert.Equal(t, alice.ID, skill.UserID)
}

func TestSkillCreateValidation(t *testing.T) {
	d := newDeps(t)
	svc := NewSkillService(d.skills)
	alice := d.createUser(t, "alice")
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateSkillInput{OwnerID: alice.ID, Name: "", Type: models.SkillTypeOffered, Level: models.SkillLevelPro})
	assertAppErrorCode(t, err, models.CodeValidation)

	_, err = svc.Create(ctx, CreateSkillInput{OwnerID: alice.ID, Name: strings.Repeat("x", 101), Type: models.SkillTypeOffered, Level: models.SkillLevelPro})
	assertAppErrorCode(t, err, models.CodeValidation)

	_, err = svc.Create(ctx, CreateSkillInput{OwnerID: alice.ID, Name: "Chess", Type: "teaching", Level: models.SkillLevelPro})
	assertAppErrorCode(t, err, models.CodeValidation)

	_, err = svc.Create(ctx, CreateSkillInput{OwnerID: alice.ID, Name: "Chess", Type: models.SkillTypeOffered, Level: "Expert"})
	assertAppErrorCode(t, err, models.CodeValidation)
}

func TestSkillRankMatches(t *testing.T) {
	d := newDeps(t)
	svc := NewSkillService(d.skills)
	ctx := context.Background()

	alice := d.createUser(t, "alice")
	bob := d.createUser(t, "bob")
	d.createSkill(t, alice, "Italian Cooking", models.SkillTypeOffered)
	d.createSkill(t, bob, "Cooking", models.SkillTypeOffered)
	d.createSkill(t, bob, "Guitar", models.SkillTypeOffered)
	// wanted skills never appear in match results
	d.createSkill(t, alice, "Cooking", models.SkillTypeWanted)

	matches, err := svc.RankMatches(ctx, "cooking", 10)
	require.NoError(t, err)
	require.Len(t, matches, 2)
	for _, m := range matches {
		assert.Equal(t, models.SkillTypeOffered, m.Skill.Type)
		assert.Contains(t, m.Skill.Name, "Cooking")
	}

	_, err = svc.RankMatches(ctx, "   ", 10)
	assertAppErrorCode(t, err, models.CodeValidation)
}

func TestSkillRankMatchesExcludesPrivateOwners(t *testing.T) {
	d := newDeps(t)
	svc := NewSkillService(d.skills)

	hermit := d.createUser(t, "hermit")
	require.NoError(t, d.db.Model(hermit).Update("is_public", false).Error)
	d.createSkill(t, hermit, "Cooking", models.SkillTypeOffered)

	matches, err := svc.RankMatches(context.Background(), "cooking", 10)
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestAssessLevel(t *testing.T) {
	t.Parallel()
	assert.Equal(t, models.SkillLevelBeginner, AssessLevel(0))
	assert.Equal(t, models.SkillLevelBeginner, AssessLevel(3))
	assert.Equal(t, models.SkillLevelIntermediate, AssessLevel(4))
	assert.Equal(t, models.SkillLevelIntermediate, AssessLevel(6))
	assert.Equal(t, models.SkillLevelPro, AssessLevel(7))
	assert.Equal(t, models.SkillLevelPro, AssessLevel(10))
}
