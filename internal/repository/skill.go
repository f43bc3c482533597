package repository

import (
	"context"
	"errors"

	"skillswap/internal/models"

	"gorm.io/gorm"
)

// SkillRepository defines the interface for skill data operations
type SkillRepository interface {
	Create(ctx context.Context, skill *models.Skill) error
	GetByID(ctx context.Context, id uint) (*models.Skill, error)
	ListByOwner(ctx context.Context, userID uint) ([]models.Skill, error)
	ListPublicCatalog(ctx context.Context) ([]models.Skill, error)
	ListByStatus(ctx context.Context, status models.SkillStatus, limit, offset int) ([]models.Skill, error)
	ListAll(ctx context.Context, limit, offset int) ([]models.Skill, error)
	UpdateStatus(ctx context.Context, id uint, status models.SkillStatus) error
	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status models.SkillStatus) (int64, error)
}

type skillRepository struct {
	db *gorm.DB
}

// NewSkillRepository creates a new skill repository
func NewSkillRepository(db *gorm.DB) SkillRepository {
	return &skillRepository{db: db}
}

func (r *skillRepository) Create(ctx context.Context, skill *models.Skill) error {
	if err := r.db.WithContext(ctx).Create(skill).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *skillRepository) GetByID(ctx context.Context, id uint) (*models.Skill, error) {
	var skill models.Skill
	if err := r.db.WithContext(ctx).First(&skill, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Skill", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &skill, nil
}

func (r *skillRepository) ListByOwner(ctx context.Context, userID uint) ([]models.Skill, error) {
	var skills []models.Skill
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&skills).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return skills, nil
}

// ListPublicCatalog returns approved skills whose owners are public,
// non-admin and non-banned.
func (r *skillRepository) ListPublicCatalog(ctx context.Context) ([]models.Skill, error) {
	var skills []models.Skill
	if err := r.db.WithContext(ctx).
		Joins("JOIN users ON users.id = skills.user_id").
		Where("skills.status = ? AND users.is_public = ? AND users.is_admin = ? AND users.is_banned = ?",
			models.SkillStatusApproved, true, false, false).
		Preload("User").
		Find(&skills).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return skills, nil
}

func (r *skillRepository) ListByStatus(ctx context.Context, status models.SkillStatus, limit, offset int) ([]models.Skill, error) {
	var skills []models.Skill
	if err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Preload("User").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&skills).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return skills, nil
}

func (r *skillRepository) ListAll(ctx context.Context, limit, offset int) ([]models.Skill, error) {
	var skills []models.Skill
	if err := r.db.WithContext(ctx).
		Preload("User").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&skills).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return skills, nil
}

func (r *skillRepository) UpdateStatus(ctx context.Context, id uint, status models.SkillStatus) error {
	res := r.db.WithContext(ctx).
		Model(&models.Skill{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Skill", id)
	}
	return nil
}

func (r *skillRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Skill{}).Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

func (r *skillRepository) CountByStatus(ctx context.Context, status models.SkillStatus) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Skill{}).
		Where("status = ?", status).
		Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}
