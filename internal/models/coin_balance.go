package models

// CoinBalance holds a user's swap coin total. Rows are created lazily on
// first access or first award, and only the coin service mutates them.
type CoinBalance struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"not null;uniqueIndex" json:"user_id"`
	Coins  int  `gorm:"not null;default:0" json:"coins"`
}

// TableName specifies the table name for GORM
func (CoinBalance) TableName() string {
	return "coin_balances"
}
