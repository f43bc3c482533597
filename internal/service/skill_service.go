package service

import (
	"context"
	"sort"
	"strings"

	"skillswap/internal/models"
	"skillswap/internal/repository"

	"github.com/sahilm/fuzzy"
)

// SkillService manages the skill registry. Skills are auto-approved on
// creation; admins may later reject or re-approve them.
type SkillService struct {
	skillRepo repository.SkillRepository
}

// NewSkillService returns a new SkillService.
func NewSkillService(skillRepo repository.SkillRepository) *SkillService {
	return &SkillService{skillRepo: skillRepo}
}

// CreateSkillInput carries the parameters for a new skill.
type CreateSkillInput struct {
	OwnerID uint
	Name    string
	Type    models.SkillType
	Level   models.SkillLevel
}

// Create registers a new skill for its owner.
func (s *SkillService) Create(ctx context.Context, in CreateSkillInput) (*models.Skill, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, models.NewValidationError("Skill name is required")
	}
	if len(name) > 100 {
		return nil, models.NewValidationError("Skill name must not exceed 100 characters")
	}
	if !in.Type.Valid() {
		return nil, models.NewValidationError("Skill type must be 'offered' or 'wanted'")
	}
	if !in.Level.Valid() {
		return nil, models.NewValidationError("Skill level must be Beginner, Intermediate or Pro")
	}

	skill := &models.Skill{
		UserID: in.OwnerID,
		Name:   name,
		Type:   in.Type,
		Level:  in.Level,
		Status: models.SkillStatusApproved,
	}
	if err := s.skillRepo.Create(ctx, skill); err != nil {
		return nil, err
	}
	return skill, nil
}

// ListByOwner returns the owner's skills.
func (s *SkillService) ListByOwner(ctx context.Context, ownerID uint) ([]models.Skill, error) {
	return s.skillRepo.ListByOwner(ctx, ownerID)
}

// SkillMatch pairs a catalog skill with its fuzzy match score against a query.
type SkillMatch struct {
	Skill models.Skill `json:"skill"`
	Score int          `json:"score"`
}

// RankMatches fuzzy-ranks the public offered-skill catalog against a query
// string, best match first.
func (s *SkillService) RankMatches(ctx context.Context, query string, limit int) ([]SkillMatch, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, models.NewValidationError("Search query is required")
	}
	if limit <= 0 {
		limit = 10
	}

	catalog, err := s.skillRepo.ListPublicCatalog(ctx)
	if err != nil {
		return nil, err
	}

	offered := make([]models.Skill, 0, len(catalog))
	names := make([]string, 0, len(catalog))
	for _, skill := range catalog {
		if skill.Type != models.SkillTypeOffered {
			continue
		}
		offered = append(offered, skill)
		names = append(names, skill.Name)
	}

	results := fuzzy.Find(query, names)
	sort.Stable(results)

	matches := make([]SkillMatch, 0, len(results))
	for _, res := range results {
		matches = append(matches, SkillMatch{Skill: offered[res.Index], Score: res.Score})
		if len(matches) >= limit {
			break
		}
	}
	return matches, nil
}

// AssessLevel maps a self-assessment score to a skill level.
func AssessLevel(score int) models.SkillLevel {
	switch {
	case score < 4:
		return models.SkillLevelBeginner
	case score < 7:
		return models.SkillLevelIntermediate
	default:
		return models.SkillLevelPro
	}
}
