package models

import (
	"time"

	"gorm.io/datatypes"
)

// SystemLog is the append-only audit trail for admin-triggered transitions.
// Writes are best-effort: a failed append never rolls back the money move it
// describes.
type SystemLog struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	ActionType  string         `gorm:"not null;index" json:"action_type"`
	Description string         `json:"description"`
	ActorID     *uint          `json:"actor_id,omitempty"`
	Metadata    datatypes.JSON `gorm:"type:json" json:"metadata,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
}
