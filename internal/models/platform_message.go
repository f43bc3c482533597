package models

import "time"

// Platform message severities.
const (
	MessageTypeInfo    = "info"
	MessageTypeWarning = "warning"
	MessageTypeError   = "error"
	MessageTypeSuccess = "success"
)

// ValidMessageType reports whether t is a known platform message type.
func ValidMessageType(t string) bool {
	switch t {
	case MessageTypeInfo, MessageTypeWarning, MessageTypeError, MessageTypeSuccess:
		return true
	}
	return false
}

// PlatformMessage is a platform-wide announcement created by an admin.
type PlatformMessage struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	Message     string    `gorm:"type:text;not null" json:"message"`
	MessageType string    `gorm:"type:varchar(16);not null" json:"message_type"`
	IsActive    bool      `json:"is_active"`
	CreatedBy   uint      `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM
func (PlatformMessage) TableName() string {
	return "platform_messages"
}
