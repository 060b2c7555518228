package models

import "time"

type Bet struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	GameRoundID    uint      `gorm:"not null;index" json:"game_round_id"`
	UserID         uint      `gorm:"not null;index" json:"user_id"`
	SelectedNumber string    `gorm:"not null" json:"selected_number"`
	Amount         int64     `gorm:"not null" json:"amount"`
	IsWinner       *bool     `json:"is_winner,omitempty"` // null until the round settles
	CreatedAt      time.Time `json:"created_at"`
}
