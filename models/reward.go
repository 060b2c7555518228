package models

import "time"

type RewardCode struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	Code         string     `gorm:"uniqueIndex;not null" json:"code"`
	UserID       uint       `gorm:"not null;index" json:"user_id"`
	GameRoundID  uint       `gorm:"not null;index" json:"game_round_id"`
	Amount       int64      `gorm:"not null" json:"amount"`
	ExpiryDate   time.Time  `gorm:"not null" json:"expiry_date"`
	IsUsed       bool       `gorm:"not null;default:false" json:"is_used"`
	RedeemedDate *time.Time `json:"redeemed_date,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}
