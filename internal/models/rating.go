package models

import "time"

// Rating records post-swap feedback from one participant about the other.
// At most one rating may exist per (swap, rater) pair.
type Rating struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	SwapID     uint      `gorm:"not null;uniqueIndex:idx_ratings_swap_rater" json:"swap_id"`
	FromUserID uint      `gorm:"not null;uniqueIndex:idx_ratings_swap_rater" json:"from_user_id"`
	ToUserID   uint      `gorm:"not null;index:idx_ratings_ratee" json:"to_user_id"`
	Stars      int       `gorm:"not null" json:"stars"`
	Feedback   string    `json:"feedback,omitempty"`
	CreatedAt  time.Time `json:"created_at"`

	Rater User `gorm:"foreignKey:FromUserID" json:"rater,omitempty"`
	Ratee User `gorm:"foreignKey:ToUserID" json:"ratee,omitempty"`
}

// TableName specifies the table name for GORM
func (Rating) TableName() string {
	return "ratings"
}
