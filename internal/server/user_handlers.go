package server

import (
	"os"
	"path/filepath"
	"strings"

	"skillswap/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// allowedPhotoExtensions is the whitelist for profile photo uploads.
var allowedPhotoExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

const maxPhotoSize = 5 * 1024 * 1024 // 5 MB

// GetMe handles GET /api/v1/me
func (s *Server) GetMe(c *fiber.Ctx) error {
	user, err := s.userService.GetByID(c.Context(), currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}

// UpdateVisibility handles PUT /api/v1/me/visibility
func (s *Server) UpdateVisibility(c *fiber.Ctx) error {
	var req struct {
		IsPublic *bool `json:"is_public"`
	}
	if err := c.BodyParser(&req); err != nil || req.IsPublic == nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("is_public is required"))
	}

	user, err := s.userService.SetVisibility(c.Context(), currentUserID(c), *req.IsPublic)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}

// UpdateAvailability handles PUT /api/v1/me/availability
func (s *Server) UpdateAvailability(c *fiber.Ctx) error {
	var req struct {
		Availability string `json:"availability"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.SetAvailability(c.Context(), currentUserID(c), req.Availability)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}

// GetMyStats handles GET /api/v1/me/stats
func (s *Server) GetMyStats(c *fiber.Ctx) error {
	stats, err := s.userService.Stats(c.Context(), currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(stats)
}

// UploadPhoto handles POST /api/v1/upload-photo. The file is stored under
// the upload directory with a random name; only the path is kept on the user.
func (s *Server) UploadPhoto(c *fiber.Ctx) error {
	file, err := c.FormFile("photo")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("A photo file is required"))
	}
	if file.Size > maxPhotoSize {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Photo must not exceed 5 MB"))
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedPhotoExtensions[ext] {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Photo must be a jpg, jpeg, png, gif or webp file"))
	}

	uploadDir := s.config.UploadDir
	if uploadDir == "" {
		uploadDir = "uploads"
	}
	if mkErr := os.MkdirAll(uploadDir, 0o755); mkErr != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(mkErr))
	}

	filename := uuid.New().String() + ext
	if saveErr := c.SaveFile(file, filepath.Join(uploadDir, filename)); saveErr != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(saveErr))
	}

	user, err := s.userService.SetPhotoPath(c.Context(), currentUserID(c), "/uploads/"+filename)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}

// GetPublicUsers handles GET /api/v1/public-users
func (s *Server) GetPublicUsers(c *fiber.Ctx) error {
	users, err := s.userService.PublicDirectory(c.Context(), currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(users)
}
