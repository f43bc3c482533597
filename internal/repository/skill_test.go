package repository

import (
	"context"
	"testing"

	"skillswap/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSkillRepositoryUpdateStatus(t *testing.T) {
	db := newTestDB(t)
	repo := NewSkillRepository(db)
	ctx := context.Background()

	owner := mustCreateUser(t, db, "owner@example.com")
	skill := mustCreateSkill(t, db, owner.ID, "Cooking", models.SkillTypeOffered, models.SkillStatusPending)

	require.NoError(t, repo.UpdateStatus(ctx, skill.ID, models.SkillStatusApproved))

	got, err := repo.GetByID(ctx, skill.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SkillStatusApproved, got.Status)
}

func TestSkillRepositoryUpdateStatusMissing(t *testing.T) {
	db := newTestDB(t)
	repo := NewSkillRepository(db)

	err := repo.UpdateStatus(context.Background(), 9999, models.SkillStatusApproved)
	require.Error(t, err)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeNotFound, appErr.Code)
}

func TestSkillRepositoryListPublicCatalog(t *testing.T) {
	db := newTestDB(t)
	repo := NewSkillRepository(db)
	ctx := context.Background()

	public := mustCreateUser(t, db, "public@example.com")
	private := mustCreateUser(t, db, "private@example.com")
	require.NoError(t, db.Model(private).Update("is_public", false).Error)
	banned := mustCreateUser(t, db, "banned@example.com")
	require.NoError(t, db.Model(banned).Update("is_banned", true).Error)

	visible := mustCreateSkill(t, db, public.ID, "Guitar", models.SkillTypeOffered, models.SkillStatusApproved)
	mustCreateSkill(t, db, public.ID, "Welding", models.SkillTypeOffered, models.SkillStatusPending)
	mustCreateSkill(t, db, private.ID, "Chess", models.SkillTypeOffered, models.SkillStatusApproved)
	mustCreateSkill(t, db, banned.ID, "Painting", models.SkillTypeOffered, models.SkillStatusApproved)

	skills, err := repo.ListPublicCatalog(ctx)
	require.NoError(t, err)
	require.Len(t, skills, 1)
	assert.Equal(t, visible.ID, skills[0].ID)
	assert.Equal(t, public.ID, skills[0].User.ID, "owner should be preloaded")
}

func TestSkillRepositoryListByStatus(t *testing.T) {
	db := newTestDB(t)
	repo := NewSkillRepository(db)
	ctx := context.Background()

	owner := mustCreateUser(t, db, "owner@example.com")
	mustCreateSkill(t, db, owner.ID, "Cooking", models.SkillTypeOffered, models.SkillStatusPending)
	mustCreateSkill(t, db, owner.ID, "Guitar", models.SkillTypeOffered, models.SkillStatusApproved)
	mustCreateSkill(t, db, owner.ID, "Chess", models.SkillTypeWanted, models.SkillStatusPending)

	pending, err := repo.ListByStatus(ctx, models.SkillStatusPending, 50, 0)
	require.NoError(t, err)
	assert.Len(t, pending, 2)

	approved, err := repo.ListByStatus(ctx, models.SkillStatusApproved, 50, 0)
	require.NoError(t, err)
	assert.Len(t, approved, 1)
}

func TestSkillRepositoryCounts(t *testing.T) {
	db := newTestDB(t)
	repo := NewSkillRepository(db)
	ctx := context.Background()

	owner := mustCreateUser(t, db, "owner@example.com")
	mustCreateSkill(t, db, owner.ID, "Cooking", models.SkillTypeOffered, models.SkillStatusApproved)
	mustCreateSkill(t, db, owner.ID, "Guitar", models.SkillTypeOffered, models.SkillStatusApproved)
	mustCreateSkill(t, db, owner.ID, "Chess", models.SkillTypeWanted, models.SkillStatusPending)

	total, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)

	pending, err := repo.CountByStatus(ctx, models.SkillStatusPending)
	require.NoError(t, err)
	assert.EqualValues(t, 1, pending)
}
