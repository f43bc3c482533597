package server

import (
	"skillswap/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetCoins handles GET /api/v1/coins
func (s *Server) GetCoins(c *fiber.Ctx) error {
	balance, err := s.coinService.Balance(c.Context(), currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(balance)
}

// AddCoins handles POST /api/v1/coins/add
func (s *Server) AddCoins(c *fiber.Ctx) error {
	var req struct {
		Amount int `json:"amount"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	balance, err := s.coinService.Add(c.Context(), currentUserID(c), req.Amount)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(balance)
}

// DeductCoins handles POST /api/v1/coins/deduct
func (s *Server) DeductCoins(c *fiber.Ctx) error {
	var req struct {
		Amount int `json:"amount"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	balance, err := s.coinService.Deduct(c.Context(), currentUserID(c), req.Amount)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(balance)
}

// CheckSwapBonus handles POST /api/v1/coins/check-swap-bonus
func (s *Server) CheckSwapBonus(c *fiber.Ctx) error {
	result, err := s.coinService.CheckSwapBonus(c.Context(), currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}
