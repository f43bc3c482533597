package server

import (
	"skillswap/internal/models"
	"skillswap/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateSwap handles POST /api/v1/swaps
func (s *Server) CreateSwap(c *fiber.Ctx) error {
	var req struct {
		ToUserID         uint `json:"to_user_id"`
		SkillOfferedID   uint `json:"skill_offered_id"`
		SkillRequestedID uint `json:"skill_requested_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	swap, err := s.swapService.Propose(c.Context(), service.ProposeInput{
		FromUserID:       currentUserID(c),
		ToUserID:         req.ToUserID,
		SkillOfferedID:   req.SkillOfferedID,
		SkillRequestedID: req.SkillRequestedID,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(swap)
}

// GetMySwaps handles GET /api/v1/swaps
func (s *Server) GetMySwaps(c *fiber.Ctx) error {
	swaps, err := s.swapService.ListForUser(c.Context(), currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(swaps)
}

// SuggestSwaps handles GET /api/v1/swaps/suggestions
func (s *Server) SuggestSwaps(c *fiber.Ctx) error {
	swaps, err := s.swapService.SuggestReplacements(c.Context(), currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(swaps)
}

// AcceptSwap handles PUT /api/v1/swaps/:id/accept
func (s *Server) AcceptSwap(c *fiber.Ctx) error {
	swapID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	swap, err := s.swapService.Accept(c.Context(), currentUserID(c), swapID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(swap)
}

// RejectSwap handles PUT /api/v1/swaps/:id/reject
func (s *Server) RejectSwap(c *fiber.Ctx) error {
	swapID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	swap, err := s.swapService.Reject(c.Context(), currentUserID(c), swapID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(swap)
}

// CompleteSwap handles PUT /api/v1/swaps/:id/complete
func (s *Server) CompleteSwap(c *fiber.Ctx) error {
	swapID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	swap, err := s.swapService.Complete(c.Context(), currentUserID(c), swapID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(swap)
}

// CancelSwap handles DELETE /api/v1/swaps/:id
func (s *Server) CancelSwap(c *fiber.Ctx) error {
	swapID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	swap, err := s.swapService.Cancel(c.Context(), currentUserID(c), swapID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(swap)
}

// RateSwap handles POST /api/v1/swaps/:id/rate
func (s *Server) RateSwap(c *fiber.Ctx) error {
	swapID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		RateeID  uint   `json:"ratee_id"`
		Stars    int    `json:"stars"`
		Feedback string `json:"feedback"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	rating, err := s.ratingService.Rate(c.Context(), service.RateInput{
		SwapID:   swapID,
		RaterID:  currentUserID(c),
		RateeID:  req.RateeID,
		Stars:    req.Stars,
		Feedback: req.Feedback,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(rating)
}

// GetSwapRatings handles GET /api/v1/swaps/:id/ratings
func (s *Server) GetSwapRatings(c *fiber.Ctx) error {
	swapID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	ratings, err := s.ratingService.RatingsFor(c.Context(), currentUserID(c), swapID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(ratings)
}
