package server

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"skillswap/internal/models"
	"skillswap/internal/service"

	"github.com/gofiber/fiber/v2"
)

// AdminDashboard handles GET /api/v1/admin/dashboard
func (s *Server) AdminDashboard(c *fiber.Ctx) error {
	dashboard, err := s.adminService.Dashboard(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dashboard)
}

// AdminStats handles GET /api/v1/admin/stats
func (s *Server) AdminStats(c *fiber.Ctx) error {
	stats, err := s.adminService.Stats(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(stats)
}

// AdminListUsers handles GET /api/v1/admin/users
func (s *Server) AdminListUsers(c *fiber.Ctx) error {
	p := parsePagination(c, 50)
	users, err := s.adminService.ListUsers(c.Context(), c.Query("status"), p.Limit, p.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(users)
}

// AdminBanUser handles POST /api/v1/admin/users/ban
func (s *Server) AdminBanUser(c *fiber.Ctx) error {
	var req struct {
		UserID uint   `json:"user_id"`
		Reason string `json:"reason"`
	}
	if err := c.BodyParser(&req); err != nil || req.UserID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("user_id is required"))
	}

	user, err := s.adminService.BanUser(c.Context(), req.UserID, req.Reason)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}

// AdminUnbanUser handles POST /api/v1/admin/users/unban
func (s *Server) AdminUnbanUser(c *fiber.Ctx) error {
	var req struct {
		UserID uint `json:"user_id"`
	}
	if err := c.BodyParser(&req); err != nil || req.UserID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("user_id is required"))
	}

	user, err := s.adminService.UnbanUser(c.Context(), req.UserID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}

// AdminListSkills handles GET /api/v1/admin/skills
func (s *Server) AdminListSkills(c *fiber.Ctx) error {
	p := parsePagination(c, 50)
	skills, err := s.adminService.ListSkills(c.Context(), c.Query("status"), p.Limit, p.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(skills)
}

// AdminApproveSkill handles POST /api/v1/admin/skills/approve
func (s *Server) AdminApproveSkill(c *fiber.Ctx) error {
	var req struct {
		SkillID uint `json:"skill_id"`
	}
	if err := c.BodyParser(&req); err != nil || req.SkillID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("skill_id is required"))
	}

	if err := s.adminService.ApproveSkill(c.Context(), req.SkillID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Skill approved"})
}

// AdminRejectSkill handles POST /api/v1/admin/skills/reject
func (s *Server) AdminRejectSkill(c *fiber.Ctx) error {
	var req struct {
		SkillID uint   `json:"skill_id"`
		Reason  string `json:"reason"`
	}
	if err := c.BodyParser(&req); err != nil || req.SkillID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("skill_id is required"))
	}

	if err := s.adminService.RejectSkill(c.Context(), req.SkillID, req.Reason); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Skill rejected"})
}

// AdminListSwaps handles GET /api/v1/admin/swaps
func (s *Server) AdminListSwaps(c *fiber.Ctx) error {
	p := parsePagination(c, 50)
	swaps, err := s.adminService.ListSwaps(c.Context(), c.Query("status"), p.Limit, p.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(swaps)
}

// AdminCreateMessage handles POST /api/v1/admin/messages
func (s *Server) AdminCreateMessage(c *fiber.Ctx) error {
	var req struct {
		Title       string `json:"title"`
		Message     string `json:"message"`
		MessageType string `json:"message_type"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	msg, err := s.adminService.CreateMessage(c.Context(), currentUserID(c),
		req.Title, req.Message, req.MessageType)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(msg)
}

// AdminListMessages handles GET /api/v1/admin/messages
func (s *Server) AdminListMessages(c *fiber.Ctx) error {
	p := parsePagination(c, 50)
	messages, err := s.adminService.ListMessages(c.Context(), p.Limit, p.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(messages)
}

// AdminDeleteMessage handles DELETE /api/v1/admin/messages/:id
func (s *Server) AdminDeleteMessage(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.adminService.DeleteMessage(c.Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Message deleted"})
}

// AdminGenerateReport handles POST /api/v1/admin/reports. CSV reports are
// returned as a download; any other format falls back to JSON.
func (s *Server) AdminGenerateReport(c *fiber.Ctx) error {
	var req service.ReportRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	report, err := s.adminService.GenerateReport(c.Context(), req)
	if err != nil {
		return respondError(c, err)
	}

	if req.Format == "csv" {
		var buf bytes.Buffer
		w := csv.NewWriter(&buf)
		if err := w.Write(report.Headers); err != nil {
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		}
		if err := w.WriteAll(report.Rows); err != nil {
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		}

		filename := fmt.Sprintf("%s_report_%s.csv",
			report.ReportType, report.GeneratedAt.Format("2006-01-02"))
		c.Set(fiber.HeaderContentType, "text/csv")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
		return c.Send(buf.Bytes())
	}

	return c.JSON(fiber.Map{
		"report_type":  report.ReportType,
		"generated_at": report.GeneratedAt,
		"records":      report.Records(),
	})
}
