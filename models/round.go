package models

import "time"

type RoundStatus string

const (
	RoundPending   RoundStatus = "pending"
	RoundActive    RoundStatus = "active"
	RoundCompleted RoundStatus = "completed"
	RoundCancelled RoundStatus = "cancelled"
)

// IsTerminal reports whether no further transition may leave the status.
func (s RoundStatus) IsTerminal() bool {
	return s == RoundCompleted || s == RoundCancelled
}

type GameRound struct {
	ID            uint        `gorm:"primaryKey" json:"id"`
	Status        RoundStatus `gorm:"type:varchar(16);not null;default:pending;index" json:"status"`
	StartTime     time.Time   `gorm:"not null" json:"start_time"`
	EndTime       *time.Time  `json:"end_time,omitempty"`
	WinningNumber *string     `json:"winning_number,omitempty"`
	TotalBets     int64       `gorm:"not null;default:0" json:"total_bets"`
	TotalPayout   *int64      `json:"total_payout,omitempty"`
	CreatedBy     uint        `gorm:"not null" json:"created_by"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}
