package models

import "time"

// SkillType distinguishes skills a user offers from skills they want to learn.
type SkillType string

const (
	// SkillTypeOffered marks a skill the owner can teach.
	SkillTypeOffered SkillType = "offered"
	// SkillTypeWanted marks a skill the owner wants to learn.
	SkillTypeWanted SkillType = "wanted"
)

// Valid reports whether the skill type is one of the known values.
func (t SkillType) Valid() bool {
	return t == SkillTypeOffered || t == SkillTypeWanted
}

// SkillLevel is the self-assessed proficiency of the owner.
type SkillLevel string

const (
	SkillLevelBeginner     SkillLevel = "Beginner"
	SkillLevelIntermediate SkillLevel = "Intermediate"
	SkillLevelPro          SkillLevel = "Pro"
)

// Valid reports whether the skill level is one of the known values.
func (l SkillLevel) Valid() bool {
	return l == SkillLevelBeginner || l == SkillLevelIntermediate || l == SkillLevelPro
}

// SkillStatus is the moderation state attached to a skill.
type SkillStatus string

const (
	SkillStatusPending  SkillStatus = "pending"
	SkillStatusApproved SkillStatus = "approved"
	SkillStatusRejected SkillStatus = "rejected"
)

// Valid reports whether the skill status is one of the known values.
func (s SkillStatus) Valid() bool {
	return s == SkillStatusPending || s == SkillStatusApproved || s == SkillStatusRejected
}

// Skill belongs to exactly one user. Skills are immutable once created except
// for moderation status transitions performed by admins.
type Skill struct {
	ID        uint        `gorm:"primaryKey" json:"id"`
	UserID    uint        `gorm:"not null;index" json:"user_id"`
	Name      string      `gorm:"not null" json:"name"`
	Type      SkillType   `gorm:"type:varchar(10);not null" json:"type"`
	Level     SkillLevel  `gorm:"type:varchar(16);not null" json:"level"`
	Status    SkillStatus `gorm:"type:varchar(16);not null;index:idx_skills_status" json:"status"`
	CreatedAt time.Time   `json:"created_at"`

	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// TableName specifies the table name for GORM
func (Skill) TableName() string {
	return "skills"
}
