package service

import (
	"context"
	"strconv"
	"time"

	"skillswap/internal/models"
	"skillswap/internal/repository"

	"gorm.io/gorm"
)

// AdminService aggregates platform statistics and performs moderation
// actions. Authorization (is_admin) is enforced at the HTTP boundary; every
// method here assumes an admin actor.
type AdminService struct {
	userRepo    repository.UserRepository
	skillRepo   repository.SkillRepository
	swapRepo    repository.SwapRepository
	ratingRepo  repository.RatingRepository
	messageRepo repository.MessageRepository
	db          *gorm.DB
}

// NewAdminService returns a new AdminService. The db handle is used for the
// ad-hoc report queries that don't fit the repository interfaces.
func NewAdminService(
	userRepo repository.UserRepository,
	skillRepo repository.SkillRepository,
	swapRepo repository.SwapRepository,
	ratingRepo repository.RatingRepository,
	messageRepo repository.MessageRepository,
	db *gorm.DB,
) *AdminService {
	return &AdminService{
		userRepo:    userRepo,
		skillRepo:   skillRepo,
		swapRepo:    swapRepo,
		ratingRepo:  ratingRepo,
		messageRepo: messageRepo,
		db:          db,
	}
}

// PlatformStats holds the platform-wide aggregate counters.
type PlatformStats struct {
	TotalUsers     int64   `json:"total_users"`
	ActiveUsers    int64   `json:"active_users"`
	BannedUsers    int64   `json:"banned_users"`
	TotalSwaps     int64   `json:"total_swaps"`
	PendingSwaps   int64   `json:"pending_swaps"`
	CompletedSwaps int64   `json:"completed_swaps"`
	TotalSkills    int64   `json:"total_skills"`
	PendingSkills  int64   `json:"pending_skills"`
	TotalRatings   int64   `json:"total_ratings"`
	AverageRating  float64 `json:"average_rating"`
}

// Stats computes the platform-wide aggregate counters.
func (s *AdminService) Stats(ctx context.Context) (*PlatformStats, error) {
	totalUsers, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	bannedUsers, err := s.userRepo.CountBanned(ctx)
	if err != nil {
		return nil, err
	}
	totalSwaps, err := s.swapRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	pendingSwaps, err := s.swapRepo.CountByStatus(ctx, models.SwapStatusPending)
	if err != nil {
		return nil, err
	}
	completedSwaps, err := s.swapRepo.CountByStatus(ctx, models.SwapStatusCompleted)
	if err != nil {
		return nil, err
	}
	totalSkills, err := s.skillRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	pendingSkills, err := s.skillRepo.CountByStatus(ctx, models.SkillStatusPending)
	if err != nil {
		return nil, err
	}
	totalRatings, err := s.ratingRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	avgRating, err := s.ratingRepo.AveragePlatform(ctx)
	if err != nil {
		return nil, err
	}

	return &PlatformStats{
		TotalUsers:     totalUsers,
		ActiveUsers:    totalUsers - bannedUsers,
		BannedUsers:    bannedUsers,
		TotalSwaps:     totalSwaps,
		PendingSwaps:   pendingSwaps,
		CompletedSwaps: completedSwaps,
		TotalSkills:    totalSkills,
		PendingSkills:  pendingSkills,
		TotalRatings:   totalRatings,
		AverageRating:  avgRating,
	}, nil
}

// Dashboard bundles stats with recent activity and the moderation queue.
type Dashboard struct {
	Stats         *PlatformStats  `json:"stats"`
	RecentUsers   []models.User   `json:"recent_users"`
	RecentSwaps   []models.Swap   `json:"recent_swaps"`
	PendingSkills []models.Skill  `json:"pending_skills"`
}

// Dashboard returns the admin landing page aggregate.
func (s *AdminService) Dashboard(ctx context.Context) (*Dashboard, error) {
	stats, err := s.Stats(ctx)
	if err != nil {
		return nil, err
	}
	recentUsers, err := s.userRepo.List(ctx, 5, 0)
	if err != nil {
		return nil, err
	}
	recentSwaps, err := s.swapRepo.ListAll(ctx, 5, 0)
	if err != nil {
		return nil, err
	}
	pendingSkills, err := s.skillRepo.ListByStatus(ctx, models.SkillStatusPending, 10, 0)
	if err != nil {
		return nil, err
	}

	return &Dashboard{
		Stats:         stats,
		RecentUsers:   recentUsers,
		RecentSwaps:   recentSwaps,
		PendingSkills: pendingSkills,
	}, nil
}

// ListUsers returns users, optionally filtered to "active" or "banned".
func (s *AdminService) ListUsers(ctx context.Context, statusFilter string, limit, offset int) ([]models.User, error) {
	switch statusFilter {
	case "":
		return s.userRepo.List(ctx, limit, offset)
	case "active":
		return s.userRepo.ListByBanned(ctx, false, limit, offset)
	case "banned":
		return s.userRepo.ListByBanned(ctx, true, limit, offset)
	default:
		return nil, models.NewValidationError("Status filter must be 'active' or 'banned'")
	}
}

// BanUser flags a user as banned, blocking future logins and invalidating
// existing tokens at the auth boundary. Admin accounts cannot be banned.
func (s *AdminService) BanUser(ctx context.Context, userID uint, reason string) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.IsAdmin {
		return nil, models.NewValidationError("Admin accounts cannot be banned")
	}
	if user.IsBanned {
		return nil, models.NewConflictError("User is already banned")
	}
	if err := s.userRepo.SetBanned(ctx, userID, true); err != nil {
		return nil, err
	}
	user.IsBanned = true
	return user, nil
}

// UnbanUser clears a user's banned flag.
func (s *AdminService) UnbanUser(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.IsBanned {
		return nil, models.NewConflictError("User is not banned")
	}
	if err := s.userRepo.SetBanned(ctx, userID, false); err != nil {
		return nil, err
	}
	user.IsBanned = false
	return user, nil
}

// ListSkills returns skills, optionally filtered by moderation status.
func (s *AdminService) ListSkills(ctx context.Context, statusFilter string, limit, offset int) ([]models.Skill, error) {
	if statusFilter == "" {
		return s.skillRepo.ListAll(ctx, limit, offset)
	}
	status := models.SkillStatus(statusFilter)
	if !status.Valid() {
		return nil, models.NewValidationError("Status filter must be pending, approved or rejected")
	}
	return s.skillRepo.ListByStatus(ctx, status, limit, offset)
}

// ApproveSkill marks a skill as approved.
func (s *AdminService) ApproveSkill(ctx context.Context, skillID uint) error {
	return s.skillRepo.UpdateStatus(ctx, skillID, models.SkillStatusApproved)
}

// RejectSkill marks a skill as rejected.
func (s *AdminService) RejectSkill(ctx context.Context, skillID uint, reason string) error {
	return s.skillRepo.UpdateStatus(ctx, skillID, models.SkillStatusRejected)
}

// ListSwaps returns swaps, optionally filtered by status.
func (s *AdminService) ListSwaps(ctx context.Context, statusFilter string, limit, offset int) ([]models.Swap, error) {
	if statusFilter == "" {
		return s.swapRepo.ListAll(ctx, limit, offset)
	}
	status := models.SwapStatus(statusFilter)
	if !status.Valid() {
		return nil, models.NewValidationError("Unknown swap status filter")
	}
	return s.swapRepo.ListByStatus(ctx, status, limit, offset)
}

// CreateMessage publishes a platform-wide announcement.
func (s *AdminService) CreateMessage(ctx context.Context, adminID uint, title, message, messageType string) (*models.PlatformMessage, error) {
	if title == "" || message == "" {
		return nil, models.NewValidationError("Title and message are required")
	}
	if messageType == "" {
		messageType = models.MessageTypeInfo
	}
	if !models.ValidMessageType(messageType) {
		return nil, models.NewValidationError("Message type must be info, warning, error or success")
	}

	msg := &models.PlatformMessage{
		Title:       title,
		Message:     message,
		MessageType: messageType,
		IsActive:    true,
		CreatedBy:   adminID,
	}
	if err := s.messageRepo.Create(ctx, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

// ListMessages returns platform announcements, newest first.
func (s *AdminService) ListMessages(ctx context.Context, limit, offset int) ([]models.PlatformMessage, error) {
	return s.messageRepo.List(ctx, limit, offset)
}

// DeleteMessage removes a platform announcement.
func (s *AdminService) DeleteMessage(ctx context.Context, id uint) error {
	return s.messageRepo.Delete(ctx, id)
}

// ReportRequest selects the dataset, window and format of an export.
type ReportRequest struct {
	ReportType string     `json:"report_type"`
	StartDate  *time.Time `json:"start_date"`
	EndDate    *time.Time `json:"end_date"`
	Format     string     `json:"format"`
}

// Report is a tabular export. Headers and Rows render directly to CSV; the
// JSON encoding zips each row against the headers.
type Report struct {
	ReportType  string
	GeneratedAt time.Time
	Headers     []string
	Rows        [][]string
}

// Records returns the report rows as header-keyed maps for JSON exports.
func (r *Report) Records() []map[string]string {
	records := make([]map[string]string, 0, len(r.Rows))
	for _, row := range r.Rows {
		rec := make(map[string]string, len(r.Headers))
		for i, h := range r.Headers {
			if i < len(row) {
				rec[h] = row[i]
			}
		}
		records = append(records, rec)
	}
	return records
}

func (s *AdminService) reportScope(ctx context.Context, req ReportRequest) *gorm.DB {
	q := s.db.WithContext(ctx)
	if req.StartDate != nil {
		q = q.Where("created_at >= ?", *req.StartDate)
	}
	if req.EndDate != nil {
		q = q.Where("created_at <= ?", *req.EndDate)
	}
	return q
}

// GenerateReport builds a tabular export of users, swaps, skills or ratings,
// optionally restricted to a creation-date window.
func (s *AdminService) GenerateReport(ctx context.Context, req ReportRequest) (*Report, error) {
	report := &Report{ReportType: req.ReportType, GeneratedAt: time.Now().UTC()}

	switch req.ReportType {
	case "users":
		var users []models.User
		if err := s.reportScope(ctx, req).Order("id").Find(&users).Error; err != nil {
			return nil, models.NewInternalError(err)
		}
		report.Headers = []string{"id", "name", "email", "location", "is_public", "is_banned", "created_at"}
		for _, u := range users {
			report.Rows = append(report.Rows, []string{
				formatUint(u.ID), u.Name, u.Email, u.Location,
				strconv.FormatBool(u.IsPublic), strconv.FormatBool(u.IsBanned),
				u.CreatedAt.Format(time.RFC3339),
			})
		}
	case "swaps":
		var swaps []models.Swap
		if err := s.reportScope(ctx, req).Order("id").Find(&swaps).Error; err != nil {
			return nil, models.NewInternalError(err)
		}
		report.Headers = []string{"id", "from_user_id", "to_user_id", "skill_offered_id", "skill_requested_id", "status", "created_at"}
		for _, sw := range swaps {
			report.Rows = append(report.Rows, []string{
				formatUint(sw.ID), formatUint(sw.FromUserID), formatUint(sw.ToUserID),
				formatUint(sw.SkillOfferedID), formatUint(sw.SkillRequestedID),
				string(sw.Status), sw.CreatedAt.Format(time.RFC3339),
			})
		}
	case "skills":
		var skills []models.Skill
		if err := s.reportScope(ctx, req).Order("id").Find(&skills).Error; err != nil {
			return nil, models.NewInternalError(err)
		}
		report.Headers = []string{"id", "user_id", "name", "type", "level", "status", "created_at"}
		for _, sk := range skills {
			report.Rows = append(report.Rows, []string{
				formatUint(sk.ID), formatUint(sk.UserID), sk.Name,
				string(sk.Type), string(sk.Level), string(sk.Status),
				sk.CreatedAt.Format(time.RFC3339),
			})
		}
	case "ratings":
		var ratings []models.Rating
		if err := s.reportScope(ctx, req).Order("id").Find(&ratings).Error; err != nil {
			return nil, models.NewInternalError(err)
		}
		report.Headers = []string{"id", "swap_id", "from_user_id", "to_user_id", "stars", "created_at"}
		for _, r := range ratings {
			report.Rows = append(report.Rows, []string{
				formatUint(r.ID), formatUint(r.SwapID), formatUint(r.FromUserID),
				formatUint(r.ToUserID), strconv.Itoa(r.Stars),
				r.CreatedAt.Format(time.RFC3339),
			})
		}
	default:
		return nil, models.NewValidationError("Report type must be users, swaps, skills or ratings")
	}

	return report, nil
}

func formatUint(v uint) string {
	return strconv.FormatUint(uint64(v), 10)
}
