package seed

import (
	"fmt"
	"log"

	"skillswap/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumSwaps    int
	ShouldClean bool
}

// Seed populates the database with demo data: an admin account, users with
// offered and wanted skills, swaps across every lifecycle state, ratings on
// completed swaps and the matching coin balances.
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("Seeding database with %d users and %d swaps...", opts.NumUsers, opts.NumSwaps)

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("Warning: could not clear all existing data, continuing anyway...")
		}
	}

	factory := NewFactory(db)

	if err := createAdmin(db); err != nil {
		return fmt.Errorf("failed to create admin: %w", err)
	}

	users := make([]*models.User, 0, opts.NumUsers)
	offered := make(map[uint][]*models.Skill)
	wanted := make(map[uint][]*models.Skill)
	for i := 0; i < opts.NumUsers; i++ {
		user, err := factory.CreateUser()
		if err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}
		users = append(users, user)

		for j := 0; j < 1+factory.rng.Intn(3); j++ {
			skill, err := factory.CreateSkill(user, models.SkillTypeOffered)
			if err != nil {
				return fmt.Errorf("failed to create skill: %w", err)
			}
			offered[user.ID] = append(offered[user.ID], skill)
		}
		for j := 0; j < 1+factory.rng.Intn(2); j++ {
			skill, err := factory.CreateSkill(user, models.SkillTypeWanted)
			if err != nil {
				return fmt.Errorf("failed to create skill: %w", err)
			}
			wanted[user.ID] = append(wanted[user.ID], skill)
		}
	}
	log.Printf("Created %d users with skills", len(users))

	if len(users) < 2 {
		return nil
	}

	statuses := []models.SwapStatus{
		models.SwapStatusPending,
		models.SwapStatusAccepted,
		models.SwapStatusCompleted,
		models.SwapStatusRejected,
		models.SwapStatusCancelled,
	}

	completedBy := make(map[uint]int)
	for i := 0; i < opts.NumSwaps; i++ {
		from := users[factory.rng.Intn(len(users))]
		to := users[factory.rng.Intn(len(users))]
		if from.ID == to.ID {
			continue
		}

		fromSkills := offered[from.ID]
		toSkills := offered[to.ID]
		if len(fromSkills) == 0 || len(toSkills) == 0 {
			continue
		}

		status := statuses[factory.rng.Intn(len(statuses))]
		swap, err := factory.CreateSwap(from, to,
			fromSkills[factory.rng.Intn(len(fromSkills))],
			toSkills[factory.rng.Intn(len(toSkills))],
			status)
		if err != nil {
			return fmt.Errorf("failed to create swap: %w", err)
		}

		if status == models.SwapStatusCompleted {
			completedBy[from.ID]++
			completedBy[to.ID]++
			if _, err := factory.CreateRating(swap, from.ID, to.ID); err != nil {
				return fmt.Errorf("failed to create rating: %w", err)
			}
			if factory.rng.Intn(2) == 0 {
				if _, err := factory.CreateRating(swap, to.ID, from.ID); err != nil {
					return fmt.Errorf("failed to create rating: %w", err)
				}
			}
		}
	}
	log.Println("Created swaps and ratings")

	// Balances reflect the completion bonus each participant earned.
	for userID, completed := range completedBy {
		balance := &models.CoinBalance{UserID: userID, Coins: completed * 5}
		if err := db.Create(balance).Error; err != nil {
			return fmt.Errorf("failed to create coin balance: %w", err)
		}
	}
	log.Printf("Created %d coin balances", len(completedBy))

	return nil
}

// createAdmin ensures the well-known admin login exists.
func createAdmin(db *gorm.DB) error {
	var existing models.User
	err := db.Where("email = ?", "admin@skillswap.local").First(&existing).Error
	if err == nil {
		return nil
	}
	if err != gorm.ErrRecordNotFound {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("Admin123!"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := &models.User{
		Name:         "Admin",
		Email:        "admin@skillswap.local",
		PasswordHash: string(hash),
		IsAdmin:      true,
		IsPublic:     false,
	}
	return db.Create(admin).Error
}

// clearData removes seeded rows in dependency order.
func clearData(db *gorm.DB) error {
	tables := []interface{}{
		&models.Rating{},
		&models.Swap{},
		&models.Skill{},
		&models.CoinBalance{},
		&models.PlatformMessage{},
		&models.User{},
	}
	for _, table := range tables {
		if err := db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(table).Error; err != nil {
			return err
		}
	}
	return nil
}
