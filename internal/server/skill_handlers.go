package server

import (
	"skillswap/internal/models"
	"skillswap/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateSkill handles POST /api/v1/skills
func (s *Server) CreateSkill(c *fiber.Ctx) error {
	var req struct {
		Name  string `json:"name"`
		Type  string `json:"type"`
		Level string `json:"level"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	skill, err := s.skillService.Create(c.Context(), service.CreateSkillInput{
		OwnerID: currentUserID(c),
		Name:    req.Name,
		Type:    models.SkillType(req.Type),
		Level:   models.SkillLevel(req.Level),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(skill)
}

// GetMySkills handles GET /api/v1/skills
func (s *Server) GetMySkills(c *fiber.Ctx) error {
	skills, err := s.skillService.ListByOwner(c.Context(), currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(skills)
}

// MatchSkills handles GET /api/v1/skills/match. Matching is fuzzy over the
// public catalog of offered skills, best scores first.
func (s *Server) MatchSkills(c *fiber.Ctx) error {
	query := c.Query("q")
	if query == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Query parameter q is required"))
	}

	limit := c.QueryInt("limit", 10)
	matches, err := s.skillService.RankMatches(c.Context(), query, limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(matches)
}
