// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// User represents a registered member of the skill swap platform.
type User struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	Name         string     `gorm:"not null" json:"name"`
	Email        string     `gorm:"unique;not null" json:"email"`
	PasswordHash string     `gorm:"not null" json:"-"`
	Location     string     `json:"location,omitempty"`
	PhotoPath    string     `json:"photo_path,omitempty"`
	Availability string     `json:"availability,omitempty"`
	IsPublic     bool       `json:"is_public"`
	IsAdmin      bool       `json:"is_admin"`
	IsBanned     bool       `json:"is_banned"`
	CreatedAt    time.Time  `json:"created_at"`
	LastLogin    *time.Time `json:"last_login,omitempty"`

	Skills []Skill `gorm:"foreignKey:UserID" json:"skills,omitempty"`
}

// TableName specifies the table name for GORM
func (User) TableName() string {
	return "users"
}
