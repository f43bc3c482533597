// Package seed provides helpers to create demo data for development and
// testing.
package seed

import (
	"math/rand"
	"time"

	"skillswap/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// skillNames is the pool of skills used for demo data, split by rough
// category so offered/wanted pairs look plausible.
var skillNames = []string{
	"Cooking", "Baking", "Guitar", "Piano", "Singing", "Photography",
	"Spanish", "French", "Japanese", "German", "Yoga", "Pilates",
	"Woodworking", "Knitting", "Painting", "Drawing", "Pottery",
	"Web Design", "Programming", "Public Speaking", "Creative Writing",
	"Gardening", "Chess", "Swimming", "Tennis", "Rock Climbing",
}

var skillLevels = []models.SkillLevel{
	models.SkillLevelBeginner,
	models.SkillLevelIntermediate,
	models.SkillLevelPro,
}

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db  *gorm.DB
	rng *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		db:  db,
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// CreateUser persists a user with a hashed password and a realistic profile.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte("Password123"), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:         gofakeit.Name(),
		Email:        gofakeit.Email(),
		PasswordHash: string(hash),
		Location:     gofakeit.City(),
		Availability: f.randomAvailability(),
		IsPublic:     f.rng.Intn(10) > 1,
		CreatedAt:    f.pastTimestamp(90),
	}
	for _, override := range overrides {
		override(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreateSkill persists a skill for the given owner.
func (f *Factory) CreateSkill(owner *models.User, skillType models.SkillType, overrides ...func(*models.Skill)) (*models.Skill, error) {
	skill := &models.Skill{
		UserID:    owner.ID,
		Name:      skillNames[f.rng.Intn(len(skillNames))],
		Type:      skillType,
		Level:     skillLevels[f.rng.Intn(len(skillLevels))],
		Status:    models.SkillStatusApproved,
		CreatedAt: f.pastTimestamp(60),
	}
	for _, override := range overrides {
		override(skill)
	}

	if err := f.db.Create(skill).Error; err != nil {
		return nil, err
	}
	return skill, nil
}

// CreateSwap persists a swap between two users covering the given skills.
func (f *Factory) CreateSwap(from, to *models.User, offered, requested *models.Skill, status models.SwapStatus) (*models.Swap, error) {
	swap := &models.Swap{
		FromUserID:       from.ID,
		ToUserID:         to.ID,
		SkillOfferedID:   offered.ID,
		SkillRequestedID: requested.ID,
		Status:           status,
		CreatedAt:        f.pastTimestamp(30),
	}
	if err := f.db.Create(swap).Error; err != nil {
		return nil, err
	}
	return swap, nil
}

// CreateRating persists a rating from one swap participant to the other.
func (f *Factory) CreateRating(swap *models.Swap, raterID, rateeID uint) (*models.Rating, error) {
	rating := &models.Rating{
		SwapID:     swap.ID,
		FromUserID: raterID,
		ToUserID:   rateeID,
		Stars:      3 + f.rng.Intn(3),
		Feedback:   gofakeit.Sentence(8),
		CreatedAt:  f.pastTimestamp(14),
	}
	if err := f.db.Create(rating).Error; err != nil {
		return nil, err
	}
	return rating, nil
}

func (f *Factory) randomAvailability() string {
	options := []string{
		"Weekends", "Weekday evenings", "Flexible", "Mornings only",
		"Sundays", "After 6pm",
	}
	return options[f.rng.Intn(len(options))]
}

// pastTimestamp returns a random time up to maxDays in the past.
func (f *Factory) pastTimestamp(maxDays int) time.Time {
	daysBack := f.rng.Intn(maxDays)
	hoursBack := f.rng.Intn(24)
	minsBack := f.rng.Intn(60)
	return time.Now().Add(-time.Duration(daysBack)*24*time.Hour -
		time.Duration(hoursBack)*time.Hour -
		time.Duration(minsBack)*time.Minute)
}
