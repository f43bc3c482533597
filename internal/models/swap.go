package models

import "time"

// SwapStatus represents the lifecycle state of a swap proposal.
type SwapStatus string

const (
	// SwapStatusPending indicates a proposal awaiting the receiver's decision.
	SwapStatusPending SwapStatus = "pending"
	// SwapStatusAccepted indicates the receiver agreed to the swap.
	SwapStatusAccepted SwapStatus = "accepted"
	// SwapStatusRejected indicates the receiver declined the proposal.
	SwapStatusRejected SwapStatus = "rejected"
	// SwapStatusCancelled indicates the sender withdrew the proposal.
	SwapStatusCancelled SwapStatus = "cancelled"
	// SwapStatusCompleted indicates both sides finished the exchange.
	SwapStatusCompleted SwapStatus = "completed"
)

// Valid reports whether the swap status is one of the known values.
func (s SwapStatus) Valid() bool {
	switch s {
	case SwapStatusPending, SwapStatusAccepted, SwapStatusRejected,
		SwapStatusCancelled, SwapStatusCompleted:
		return true
	}
	return false
}

// Terminal reports whether no further transitions are possible from this state.
func (s SwapStatus) Terminal() bool {
	switch s {
	case SwapStatusRejected, SwapStatusCancelled, SwapStatusCompleted:
		return true
	}
	return false
}

// Swap is a proposal to exchange the sender's offered skill for one of the
// receiver's skills. At creation time the offered skill must belong to the
// sender and the requested skill to the receiver.
type Swap struct {
	ID               uint       `gorm:"primaryKey" json:"id"`
	FromUserID       uint       `gorm:"not null;index:idx_swaps_from" json:"from_user_id"`
	ToUserID         uint       `gorm:"not null;index:idx_swaps_to" json:"to_user_id"`
	SkillOfferedID   uint       `gorm:"not null" json:"skill_offered_id"`
	SkillRequestedID uint       `gorm:"not null" json:"skill_requested_id"`
	Status           SwapStatus `gorm:"type:varchar(20);not null;index:idx_swaps_status" json:"status"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`

	Sender         User  `gorm:"foreignKey:FromUserID" json:"sender,omitempty"`
	Receiver       User  `gorm:"foreignKey:ToUserID" json:"receiver,omitempty"`
	SkillOffered   Skill `gorm:"foreignKey:SkillOfferedID" json:"skill_offered,omitempty"`
	SkillRequested Skill `gorm:"foreignKey:SkillRequestedID" json:"skill_requested,omitempty"`
}

// TableName specifies the table name for GORM
func (Swap) TableName() string {
	return "swaps"
}

// Participant reports whether the given user is either side of the swap.
func (s *Swap) Participant(userID uint) bool {
	return s.FromUserID == userID || s.ToUserID == userID
}

// Counterpart returns the other participant's ID. The caller must already be
// a participant.
func (s *Swap) Counterpart(userID uint) uint {
	if s.FromUserID == userID {
		return s.ToUserID
	}
	return s.FromUserID
}
