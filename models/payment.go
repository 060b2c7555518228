package models

import "time"

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentApproved PaymentStatus = "approved"
	PaymentRejected PaymentStatus = "rejected"
)

// PaymentRequest is a user-submitted deposit claim reviewed by an admin.
// Approval is the only balance credit outside betting/settlement/redemption.
type PaymentRequest struct {
	ID          uint          `gorm:"primaryKey" json:"id"`
	UserID      uint          `gorm:"not null;index" json:"user_id"`
	Amount      int64         `gorm:"not null" json:"amount"`
	ProofImage  string        `gorm:"not null" json:"proof_image"`
	Status      PaymentStatus `gorm:"type:varchar(16);not null;default:pending;index" json:"status"`
	ProcessedBy *uint         `json:"processed_by,omitempty"`
	ProcessedAt *time.Time    `json:"processed_at,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}
